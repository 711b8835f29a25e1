package config

import (
	"os"
)

const (
	apiURLEnvVar   = "INSIGHT_API_URL"
	appNameVar     = "INSIGHT_APP_NAME"
	logLevelEnvVar = "INSIGHT_LOG_LEVEL"
)

type EnvVars struct{}

var _ EnvConfig = EnvVars{}

func (EnvVars) GetAPIBaseURL() string {
	return GetEnv(apiURLEnvVar, "https://api.insightcode.dev")
}

func (EnvVars) GetAppName() string {
	return GetEnv(appNameVar, "Insight Code")
}

func (EnvVars) GetLogLevel() string {
	return GetEnv(logLevelEnvVar, "info")
}

func (EnvVars) GetEnv() string {
	env := os.Getenv("ENV")
	if env == "" {
		return "DEV"
	}
	return env
}

func GetEnv(envVar, defaultValue string) string {
	value := os.Getenv(envVar)
	if value == "" {
		return defaultValue
	}
	return value
}
