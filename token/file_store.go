package token

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"

	clienterrors "github.com/yogendraft21/insight-code-sub000/internal/errors"
)

var _ Store = (*FileStore)(nil)

// FileStore persists tokens as a small JSON object on disk. Every operation
// reads or rewrites the whole file; the pair is two short strings, so
// synchronous whole-file IO keeps the semantics of browser local storage.
type FileStore struct {
	path string
	lock sync.Mutex
}

// NewFileStore creates a store backed by the file at path. The parent
// directory is created on first write, not here.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (fs *FileStore) Get(key string) (string, error) {
	fs.lock.Lock()
	defer fs.lock.Unlock()

	values, err := fs.load()
	if err != nil {
		return "", err
	}
	value, ok := values[key]
	if !ok {
		return "", errors.Wrapf(clienterrors.ErrKeyNotFound, "[FileStore.Get] %q", key)
	}
	return value, nil
}

func (fs *FileStore) Set(key, value string) error {
	fs.lock.Lock()
	defer fs.lock.Unlock()

	values, err := fs.load()
	if err != nil {
		return err
	}
	values[key] = value
	return fs.save(values)
}

func (fs *FileStore) Remove(key string) error {
	fs.lock.Lock()
	defer fs.lock.Unlock()

	values, err := fs.load()
	if err != nil {
		return err
	}
	if _, ok := values[key]; !ok {
		return errors.Wrapf(clienterrors.ErrKeyNotFound, "[FileStore.Remove] %q", key)
	}
	delete(values, key)
	return fs.save(values)
}

func (fs *FileStore) load() (map[string]string, error) {
	data, err := os.ReadFile(fs.path)
	if os.IsNotExist(err) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, errors.Wrap(clienterrors.ErrStorageUnavailable, err.Error())
	}
	values := map[string]string{}
	if len(data) == 0 {
		return values, nil
	}
	if err := json.Unmarshal(data, &values); err != nil {
		// A corrupt token file is treated as empty storage; the session
		// degrades to anonymous rather than wedging every operation.
		return map[string]string{}, nil
	}
	return values, nil
}

func (fs *FileStore) save(values map[string]string) error {
	if err := os.MkdirAll(filepath.Dir(fs.path), 0o700); err != nil {
		return errors.Wrap(clienterrors.ErrStorageUnavailable, err.Error())
	}
	data, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return errors.Wrap(err, "[FileStore.save] marshal")
	}
	if err := os.WriteFile(fs.path, data, 0o600); err != nil {
		return errors.Wrap(clienterrors.ErrStorageUnavailable, err.Error())
	}
	return nil
}
