package keystore

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/nacl/secretbox"
	"golang.org/x/crypto/scrypt"
)

// ErrSealBroken is returned when a stored value fails to decrypt, either
// because the passphrase changed or the value was tampered with.
var ErrSealBroken = errors.New("keystore: cannot open sealed value")

// scrypt parameters for deriving the sealing key from the passphrase.
const (
	scryptN = 1 << 15
	scryptR = 8
	scryptP = 1
)

// keyDerivationSalt is fixed: the passphrase is per-install, the salt only
// needs to separate this usage from other scrypt users.
var keyDerivationSalt = []byte("cityhop/keystore/v1")

// Sealed wraps another store and encrypts every value at rest with a key
// derived from a passphrase. Useful when the token file lives on a shared
// disk.
type Sealed struct {
	inner Store
	key   [32]byte
}

// NewSealed derives the sealing key from passphrase and wraps inner.
func NewSealed(inner Store, passphrase string) (*Sealed, error) {
	if passphrase == "" {
		return nil, errors.New("keystore: passphrase is required")
	}

	derived, err := scrypt.Key([]byte(passphrase), keyDerivationSalt, scryptN, scryptR, scryptP, 32)
	if err != nil {
		return nil, fmt.Errorf("derive sealing key: %w", err)
	}

	s := &Sealed{inner: inner}
	copy(s.key[:], derived)
	return s, nil
}

func (s *Sealed) Get(ctx context.Context, key string) (string, error) {
	stored, err := s.inner.Get(ctx, key)
	if err != nil {
		return "", err
	}

	raw, err := base64.StdEncoding.DecodeString(stored)
	if err != nil || len(raw) < 24 {
		return "", ErrSealBroken
	}

	var nonce [24]byte
	copy(nonce[:], raw[:24])
	plain, ok := secretbox.Open(nil, raw[24:], &nonce, &s.key)
	if !ok {
		return "", ErrSealBroken
	}
	return string(plain), nil
}

func (s *Sealed) Set(ctx context.Context, key, value string) error {
	var nonce [24]byte
	if _, err := io.ReadFull(rand.Reader, nonce[:]); err != nil {
		return fmt.Errorf("generate nonce: %w", err)
	}

	sealed := secretbox.Seal(nonce[:], []byte(value), &nonce, &s.key)
	return s.inner.Set(ctx, key, base64.StdEncoding.EncodeToString(sealed))
}

func (s *Sealed) Delete(ctx context.Context, key string) error {
	return s.inner.Delete(ctx, key)
}
