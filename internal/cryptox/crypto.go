// Package cryptox implements the one-way password digests used for stored
// accounts.
//
// The default scheme is an unsalted hex-encoded SHA-256 of the UTF-8 password.
// It is kept for compatibility with existing account data and is weak against
// precomputed dictionaries. The argon2id scheme is opt-in and stores its
// parameters and salt next to the key, so both kinds of hashes verify side by
// side.
package cryptox

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/budgetkeeper/internal/common"
	"golang.org/x/crypto/argon2"
)

const (
	SchemeSHA256   = "sha256"
	SchemeArgon2ID = "argon2id"

	argon2Prefix  = SchemeArgon2ID + "$"
	argon2SaltLen = 16
)

var ErrUnknownScheme = errors.New("unknown password hashing scheme")

// Hasher turns a plaintext password into a storable digest.
type Hasher interface {
	Hash(password []byte) (string, error)
}

// NewHasher returns the Hasher registered under scheme.
func NewHasher(scheme string) (Hasher, error) {
	switch strings.ToLower(strings.TrimSpace(scheme)) {
	case "", SchemeSHA256:
		return SHA256Hasher{}, nil
	case SchemeArgon2ID:
		return Argon2Hasher{}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownScheme, scheme)
}

// SHA256Hasher produces lowercase hex SHA-256 digests without salt.
type SHA256Hasher struct{}

func (SHA256Hasher) Hash(password []byte) (string, error) {
	return HashSHA256(password), nil
}

// HashSHA256 returns the lowercase hex SHA-256 of password.
func HashSHA256(password []byte) string {
	sum := sha256.Sum256(password)
	return hex.EncodeToString(sum[:])
}

// Argon2Hasher produces "argon2id$<salt hex>$<key hex>" digests with a random salt.
type Argon2Hasher struct{}

func (Argon2Hasher) Hash(password []byte) (string, error) {
	salt := common.GenerateRandByteArray(argon2SaltLen)
	key := DeriveKey(password, salt)
	return argon2Prefix + hex.EncodeToString(salt) + "$" + hex.EncodeToString(key), nil
}

// DeriveKey stretches password with argon2id.
func DeriveKey(password []byte, salt []byte) []byte {
	return argon2.IDKey(password, salt, 1, 64*1024, 4, 32)
}

// VerifyPassword reports whether password matches the stored digest.
// The comparison is constant-time. Malformed digests never match.
func VerifyPassword(stored string, password []byte) bool {
	if rest, ok := strings.CutPrefix(stored, argon2Prefix); ok {
		saltHex, keyHex, ok := strings.Cut(rest, "$")
		if !ok {
			return false
		}
		salt, err := hex.DecodeString(saltHex)
		if err != nil {
			return false
		}
		key, err := hex.DecodeString(keyHex)
		if err != nil {
			return false
		}
		return subtle.ConstantTimeCompare(key, DeriveKey(password, salt)) == 1
	}

	candidate := HashSHA256(password)
	return subtle.ConstantTimeCompare([]byte(stored), []byte(candidate)) == 1
}
