// Package cryptox holds the password schemes an account store can use.
//
// The default scheme stores and compares passwords as given. The argon2id
// scheme stores "argon2id$<salt hex>$<verifier hex>" instead, where the
// verifier is SHA-256 of the argon2id key derived from password and salt.
package cryptox

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/profilekeeper/internal/common"
	"golang.org/x/crypto/argon2"
)

const (
	SchemePlain    = "plain"
	SchemeArgon2id = "argon2id"

	saltSize = 16
)

var ErrUnknownScheme = errors.New("unknown password scheme")

var randomSalt = common.GenerateRandByteArray

// PasswordScheme turns a password into its stored form and checks a
// candidate against a stored value.
type PasswordScheme interface {
	Name() string
	Encode(password string) (string, error)
	Verify(stored, candidate string) bool
}

// SchemeByName resolves a configured scheme name. An empty name means plain.
func SchemeByName(name string) (PasswordScheme, error) {
	switch name {
	case "", SchemePlain:
		return Plain{}, nil
	case SchemeArgon2id:
		return Argon2id{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownScheme, name)
	}
}

// Plain keeps passwords as they are.
type Plain struct{}

func (Plain) Name() string { return SchemePlain }

func (Plain) Encode(password string) (string, error) { return password, nil }

func (Plain) Verify(stored, candidate string) bool { return stored == candidate }

// Argon2id stores a salted verifier. Records written before the scheme was
// switched on are still compared as plain text.
type Argon2id struct{}

func (Argon2id) Name() string { return SchemeArgon2id }

func (Argon2id) Encode(password string) (string, error) {
	salt, err := randomSalt(saltSize)
	if err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}
	verifier := MakeVerifier(DeriveMasterKey([]byte(password), salt))
	return SchemeArgon2id + "$" + hex.EncodeToString(salt) + "$" + hex.EncodeToString(verifier), nil
}

func (Argon2id) Verify(stored, candidate string) bool {
	salt, verifier, ok := parseArgon2id(stored)
	if !ok {
		return subtle.ConstantTimeCompare([]byte(stored), []byte(candidate)) == 1
	}
	got := MakeVerifier(DeriveMasterKey([]byte(candidate), salt))
	return subtle.ConstantTimeCompare(verifier, got) == 1
}

func parseArgon2id(stored string) (salt, verifier []byte, ok bool) {
	parts := strings.Split(stored, "$")
	if len(parts) != 3 || parts[0] != SchemeArgon2id {
		return nil, nil, false
	}
	salt, err := hex.DecodeString(parts[1])
	if err != nil || len(salt) == 0 {
		return nil, nil, false
	}
	verifier, err = hex.DecodeString(parts[2])
	if err != nil || len(verifier) != sha256.Size {
		return nil, nil, false
	}
	return salt, verifier, true
}

func MakeVerifier(masterKey []byte) []byte {
	hash := sha256.Sum256(masterKey)
	return hash[:]
}

func DeriveMasterKey(password []byte, salt []byte) []byte {
	return argon2.IDKey(password, salt, 1, 64*1024, 4, 32)
}
