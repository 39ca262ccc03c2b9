package auth

import (
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"hash"
	"strconv"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/crypto/pbkdf2"
	"golang.org/x/crypto/scrypt"
)

var errVerification = errors.New("password verification failed")

type BcryptPasswordHasher struct {
	cost int
}

func NewBcryptPasswordHasher(cost int) *BcryptPasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptPasswordHasher{cost: cost}
}

func (h *BcryptPasswordHasher) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("failed to generate password hash: %w", err)
	}
	return string(hash), nil
}

// Verify accepts bcrypt hashes and salted pbkdf2/scrypt hashes in the "method$salt$hex"
// layout used by older stores. Every failure returns the same error.
func (h *BcryptPasswordHasher) Verify(password, hash string) error {
	if isLegacyHash(hash) {
		if verifyLegacy(password, hash) {
			return nil
		}
		return errVerification
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return errVerification
	}
	return nil
}

// NeedsRehash reports whether hash should be replaced after a successful login.
func (h *BcryptPasswordHasher) NeedsRehash(hash string) bool {
	if isLegacyHash(hash) {
		return true
	}
	cost, err := bcrypt.Cost([]byte(hash))
	return err != nil || cost < h.cost
}

func isLegacyHash(hash string) bool {
	return strings.HasPrefix(hash, "pbkdf2:") || strings.HasPrefix(hash, "scrypt:")
}

func verifyLegacy(password, encoded string) bool {
	parts := strings.SplitN(encoded, "$", 3)
	if len(parts) != 3 {
		return false
	}
	method, salt, want := parts[0], parts[1], parts[2]
	expected, err := hex.DecodeString(want)
	if err != nil || len(expected) == 0 {
		return false
	}

	got, ok := deriveLegacy(method, []byte(password), []byte(salt), len(expected))
	if !ok {
		return false
	}
	return subtle.ConstantTimeCompare(got, expected) == 1
}

// deriveLegacy handles "pbkdf2:<digest>:<iterations>" and "scrypt:<n>:<r>:<p>".
func deriveLegacy(method string, password, salt []byte, keyLen int) ([]byte, bool) {
	fields := strings.Split(method, ":")
	switch fields[0] {
	case "pbkdf2":
		if len(fields) != 3 {
			return nil, false
		}
		var newHash func() hash.Hash
		switch fields[1] {
		case "sha256":
			newHash = sha256.New
		case "sha512":
			newHash = sha512.New
		case "sha1":
			newHash = sha1.New
		default:
			return nil, false
		}
		iterations, err := strconv.Atoi(fields[2])
		if err != nil || iterations < 1 {
			return nil, false
		}
		return pbkdf2.Key(password, salt, iterations, keyLen, newHash), true
	case "scrypt":
		if len(fields) != 4 {
			return nil, false
		}
		n, errN := strconv.Atoi(fields[1])
		r, errR := strconv.Atoi(fields[2])
		p, errP := strconv.Atoi(fields[3])
		if errN != nil || errR != nil || errP != nil {
			return nil, false
		}
		key, err := scrypt.Key(password, salt, n, r, p, keyLen)
		if err != nil {
			return nil, false
		}
		return key, true
	default:
		return nil, false
	}
}
