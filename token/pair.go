package token

import (
	"github.com/pkg/errors"

	clienterrors "github.com/yogendraft21/insight-code-sub000/internal/errors"
)

// Pair is the credential pair the auth endpoints issue. The access token is
// short-lived and sent on every request; the refresh token's only use is
// minting a replacement pair.
type Pair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// SavePair writes both tokens to the store. The pair is always written
// together so storage never holds a new access token next to a stale refresh
// token.
func SavePair(store Store, pair Pair) error {
	if err := store.Set(AccessTokenKey, pair.AccessToken); err != nil {
		return errors.Wrap(err, "[SavePair] store access token")
	}
	if err := store.Set(RefreshTokenKey, pair.RefreshToken); err != nil {
		return errors.Wrap(err, "[SavePair] store refresh token")
	}
	return nil
}

// LoadPair reads both tokens. A missing key leaves the corresponding field
// empty rather than failing; callers check the field they need.
func LoadPair(store Store) (Pair, error) {
	var pair Pair
	access, err := store.Get(AccessTokenKey)
	if err != nil && !errors.Is(err, clienterrors.ErrKeyNotFound) {
		return Pair{}, errors.Wrap(err, "[LoadPair] read access token")
	}
	refresh, err := store.Get(RefreshTokenKey)
	if err != nil && !errors.Is(err, clienterrors.ErrKeyNotFound) {
		return Pair{}, errors.Wrap(err, "[LoadPair] read refresh token")
	}
	pair.AccessToken = access
	pair.RefreshToken = refresh
	return pair, nil
}

// ClearPair removes both tokens. Removing an absent key is not an error;
// logout must succeed even when nothing is stored.
func ClearPair(store Store) error {
	if err := store.Remove(AccessTokenKey); err != nil && !errors.Is(err, clienterrors.ErrKeyNotFound) {
		return errors.Wrap(err, "[ClearPair] remove access token")
	}
	if err := store.Remove(RefreshTokenKey); err != nil && !errors.Is(err, clienterrors.ErrKeyNotFound) {
		return errors.Wrap(err, "[ClearPair] remove refresh token")
	}
	return nil
}
