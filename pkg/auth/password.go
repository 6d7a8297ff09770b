package auth

import (
	"crypto/subtle"
	"fmt"
	"strings"

	"github.com/alexedwards/argon2id"
	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/bcrypt"
)

// PasswordHasher hashes passwords with a per-call random salt and checks
// candidates against stored hashes.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, encoded string) bool
}

const (
	argon2idPrefix = "$argon2id$"

	// maxArgon2Memory bounds the m= parameter (KiB) of a stored hash.
	maxArgon2Memory = 1024 * 1024
)

type BcryptHasher struct {
	cost int
}

func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

func (h *BcryptHasher) Hash(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("bcrypt hash: %w", err)
	}
	return string(b), nil
}

func (h *BcryptHasher) Verify(password, encoded string) bool {
	return verifyEncoded(password, encoded)
}

type Argon2idHasher struct {
	params *argon2id.Params
}

func NewArgon2idHasher(params *argon2id.Params) *Argon2idHasher {
	if params == nil {
		params = argon2id.DefaultParams
	}
	return &Argon2idHasher{params: params}
}

func (h *Argon2idHasher) Hash(password string) (string, error) {
	encoded, err := argon2id.CreateHash(password, h.params)
	if err != nil {
		return "", fmt.Errorf("argon2id hash: %w", err)
	}
	return encoded, nil
}

func (h *Argon2idHasher) Verify(password, encoded string) bool {
	return verifyEncoded(password, encoded)
}

// NewPasswordHasher picks the hashing algorithm for new hashes. Verification
// accepts either encoding regardless of the algorithm chosen here.
func NewPasswordHasher(algorithm string, bcryptCost int) (PasswordHasher, error) {
	switch algorithm {
	case "", "bcrypt":
		return NewBcryptHasher(bcryptCost), nil
	case "argon2id":
		return NewArgon2idHasher(nil), nil
	default:
		return nil, fmt.Errorf("unknown password hasher %q", algorithm)
	}
}

// verifyEncoded never returns an error: a malformed hash simply fails to match.
func verifyEncoded(password, encoded string) bool {
	if strings.HasPrefix(encoded, argon2idPrefix) {
		return verifyArgon2id(password, encoded)
	}
	return bcrypt.CompareHashAndPassword([]byte(encoded), []byte(password)) == nil
}

// verifyArgon2id rejects parameters argon2.IDKey would panic on or that
// would allocate without bound before deriving the candidate key.
func verifyArgon2id(password, encoded string) bool {
	params, salt, key, err := argon2id.DecodeHash(encoded)
	if err != nil {
		return false
	}
	if params.Iterations < 1 || params.Parallelism < 1 || params.Memory > maxArgon2Memory {
		return false
	}
	if len(salt) == 0 || len(key) == 0 {
		return false
	}

	candidate := argon2.IDKey([]byte(password), salt, params.Iterations, params.Memory, params.Parallelism, uint32(len(key)))
	return subtle.ConstantTimeCompare(candidate, key) == 1
}
