package config

import (
	"os"
	"path/filepath"
)

type StorageConfig interface {
	GetTokenFilePath() string
	GetEncryptTokenFile() bool
	GetTokenPassphrase() string
}

type Storage struct{}

var _ StorageConfig = Storage{}

// GetTokenFilePath returns where the persisted token pair lives. Defaults to
// the user config dir so tokens survive reloads of the CLI the same way
// origin-scoped browser storage survives page reloads.
func (Storage) GetTokenFilePath() string {
	if path := GetEnv("INSIGHT_TOKEN_FILE", ""); path != "" {
		return path
	}
	configDir, err := os.UserConfigDir()
	if err != nil {
		return filepath.Join(".", ".insight", "tokens.json")
	}
	return filepath.Join(configDir, "insight", "tokens.json")
}

func (Storage) GetEncryptTokenFile() bool {
	return GetEnv("INSIGHT_TOKEN_ENCRYPT", "") == "true"
}

func (Storage) GetTokenPassphrase() string {
	return GetEnv("INSIGHT_TOKEN_PASSPHRASE", "")
}
