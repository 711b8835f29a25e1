package token

import (
	"crypto/rand"
	"encoding/base64"

	"github.com/pkg/errors"
	"golang.org/x/crypto/nacl/secretbox"
	"golang.org/x/crypto/scrypt"

	clienterrors "github.com/yogendraft21/insight-code-sub000/internal/errors"
)

const (
	saltLength  = 16
	nonceLength = 24
	keyLength   = 32

	// scrypt cost parameters, interactive-login strength
	scryptN = 1 << 15
	scryptR = 8
	scryptP = 1
)

var _ Store = (*EncryptedStore)(nil)

// EncryptedStore wraps another Store and encrypts values at rest with a key
// derived from a passphrase. Each value carries its own salt and nonce, so
// rotating a token never reuses a nonce.
type EncryptedStore struct {
	inner      Store
	passphrase []byte
}

func NewEncryptedStore(inner Store, passphrase string) *EncryptedStore {
	return &EncryptedStore{inner: inner, passphrase: []byte(passphrase)}
}

func (es *EncryptedStore) Get(key string) (string, error) {
	sealed, err := es.inner.Get(key)
	if err != nil {
		return "", err
	}
	raw, err := base64.StdEncoding.DecodeString(sealed)
	if err != nil {
		return "", errors.Wrap(err, "[EncryptedStore.Get] decode")
	}
	if len(raw) < saltLength+nonceLength {
		return "", errors.New("[EncryptedStore.Get] sealed value too short")
	}

	var salt [saltLength]byte
	var nonce [nonceLength]byte
	copy(salt[:], raw[:saltLength])
	copy(nonce[:], raw[saltLength:saltLength+nonceLength])

	boxKey, err := es.deriveKey(salt[:])
	if err != nil {
		return "", err
	}

	plaintext, ok := secretbox.Open(nil, raw[saltLength+nonceLength:], &nonce, boxKey)
	if !ok {
		return "", errors.Wrapf(clienterrors.ErrStorageUnavailable, "[EncryptedStore.Get] decrypt %q", key)
	}
	return string(plaintext), nil
}

func (es *EncryptedStore) Set(key, value string) error {
	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return errors.Wrap(err, "[EncryptedStore.Set] salt")
	}
	var nonce [nonceLength]byte
	if _, err := rand.Read(nonce[:]); err != nil {
		return errors.Wrap(err, "[EncryptedStore.Set] nonce")
	}

	boxKey, err := es.deriveKey(salt)
	if err != nil {
		return err
	}

	sealed := secretbox.Seal(nil, []byte(value), &nonce, boxKey)
	raw := make([]byte, 0, saltLength+nonceLength+len(sealed))
	raw = append(raw, salt...)
	raw = append(raw, nonce[:]...)
	raw = append(raw, sealed...)
	return es.inner.Set(key, base64.StdEncoding.EncodeToString(raw))
}

func (es *EncryptedStore) Remove(key string) error {
	return es.inner.Remove(key)
}

func (es *EncryptedStore) deriveKey(salt []byte) (*[keyLength]byte, error) {
	derived, err := scrypt.Key(es.passphrase, salt, scryptN, scryptR, scryptP, keyLength)
	if err != nil {
		return nil, errors.Wrap(err, "[EncryptedStore.deriveKey] scrypt")
	}
	var boxKey [keyLength]byte
	copy(boxKey[:], derived)
	return &boxKey, nil
}
