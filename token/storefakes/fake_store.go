package storefakes

import (
	"sync"

	"github.com/pkg/errors"

	clienterrors "github.com/yogendraft21/insight-code-sub000/internal/errors"
	"github.com/yogendraft21/insight-code-sub000/token"
)

var _ token.Store = (*FakeStore)(nil)

// FakeStore is an in-memory token.Store for tests.
type FakeStore struct {
	values map[string]string
	lock   sync.RWMutex

	// FailNextSet, when set, makes the next Set call return this error.
	FailNextSet error
}

func NewFakeStore() *FakeStore {
	return &FakeStore{values: make(map[string]string)}
}

func (fs *FakeStore) Get(key string) (string, error) {
	fs.lock.RLock()
	defer fs.lock.RUnlock()

	value, ok := fs.values[key]
	if !ok {
		return "", errors.Wrapf(clienterrors.ErrKeyNotFound, "%q", key)
	}
	return value, nil
}

func (fs *FakeStore) Set(key, value string) error {
	fs.lock.Lock()
	defer fs.lock.Unlock()

	if fs.FailNextSet != nil {
		err := fs.FailNextSet
		fs.FailNextSet = nil
		return err
	}
	fs.values[key] = value
	return nil
}

func (fs *FakeStore) Remove(key string) error {
	fs.lock.Lock()
	defer fs.lock.Unlock()

	if _, ok := fs.values[key]; !ok {
		return errors.Wrapf(clienterrors.ErrKeyNotFound, "%q", key)
	}
	delete(fs.values, key)
	return nil
}

// Len reports how many keys are stored, for asserting full teardown.
func (fs *FakeStore) Len() int {
	fs.lock.RLock()
	defer fs.lock.RUnlock()
	return len(fs.values)
}
