package token_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	clienterrors "github.com/yogendraft21/insight-code-sub000/internal/errors"
	"github.com/yogendraft21/insight-code-sub000/token"
)

func newFileStore(t *testing.T) *token.FileStore {
	t.Helper()
	return token.NewFileStore(filepath.Join(t.TempDir(), "tokens.json"))
}

func TestFileStoreRoundTrip(t *testing.T) {
	store := newFileStore(t)

	require.NoError(t, store.Set(token.AccessTokenKey, "a1"))
	require.NoError(t, store.Set(token.RefreshTokenKey, "r1"))

	access, err := store.Get(token.AccessTokenKey)
	require.NoError(t, err)
	require.Equal(t, "a1", access)

	refresh, err := store.Get(token.RefreshTokenKey)
	require.NoError(t, err)
	require.Equal(t, "r1", refresh)
}

func TestFileStoreMissingKey(t *testing.T) {
	store := newFileStore(t)

	_, err := store.Get(token.AccessTokenKey)
	require.ErrorIs(t, err, clienterrors.ErrKeyNotFound)

	err = store.Remove(token.AccessTokenKey)
	require.ErrorIs(t, err, clienterrors.ErrKeyNotFound)
}

func TestFileStoreSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tokens.json")

	first := token.NewFileStore(path)
	require.NoError(t, first.Set(token.AccessTokenKey, "a1"))

	second := token.NewFileStore(path)
	access, err := second.Get(token.AccessTokenKey)
	require.NoError(t, err)
	require.Equal(t, "a1", access)
}

func TestFileStoreCorruptFileReadsAsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tokens.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0o600))

	store := token.NewFileStore(path)
	_, err := store.Get(token.AccessTokenKey)
	require.ErrorIs(t, err, clienterrors.ErrKeyNotFound)

	// Writes still work after a corrupt read.
	require.NoError(t, store.Set(token.AccessTokenKey, "a1"))
	access, err := store.Get(token.AccessTokenKey)
	require.NoError(t, err)
	require.Equal(t, "a1", access)
}

func TestPairHelpers(t *testing.T) {
	store := newFileStore(t)

	require.NoError(t, token.SavePair(store, token.Pair{AccessToken: "a1", RefreshToken: "r1"}))

	pair, err := token.LoadPair(store)
	require.NoError(t, err)
	require.Equal(t, "a1", pair.AccessToken)
	require.Equal(t, "r1", pair.RefreshToken)

	require.NoError(t, token.ClearPair(store))
	_, err = store.Get(token.AccessTokenKey)
	require.ErrorIs(t, err, clienterrors.ErrKeyNotFound)
	_, err = store.Get(token.RefreshTokenKey)
	require.ErrorIs(t, err, clienterrors.ErrKeyNotFound)

	// Clearing an already-empty store is not an error.
	require.NoError(t, token.ClearPair(store))
}

func TestLoadPairPartial(t *testing.T) {
	store := newFileStore(t)
	require.NoError(t, store.Set(token.AccessTokenKey, "a1"))

	pair, err := token.LoadPair(store)
	require.NoError(t, err)
	require.Equal(t, "a1", pair.AccessToken)
	require.Empty(t, pair.RefreshToken)
}

func TestEncryptedStoreRoundTrip(t *testing.T) {
	inner := newFileStore(t)
	store := token.NewEncryptedStore(inner, "correct horse battery staple")

	require.NoError(t, store.Set(token.AccessTokenKey, "a1"))

	// The inner store must not hold the plaintext.
	sealed, err := inner.Get(token.AccessTokenKey)
	require.NoError(t, err)
	require.NotEqual(t, "a1", sealed)

	access, err := store.Get(token.AccessTokenKey)
	require.NoError(t, err)
	require.Equal(t, "a1", access)
}

func TestEncryptedStoreWrongPassphrase(t *testing.T) {
	inner := newFileStore(t)
	require.NoError(t, token.NewEncryptedStore(inner, "right").Set(token.AccessTokenKey, "a1"))

	_, err := token.NewEncryptedStore(inner, "wrong").Get(token.AccessTokenKey)
	require.Error(t, err)
}
