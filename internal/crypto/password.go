package crypto

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// DefaultCost is the bcrypt work factor used for new passwords.
const DefaultCost = 12

// saltPrefixLen covers "$2a$NN$" plus the 22 radix-64 salt characters
// at the start of every bcrypt hash.
const saltPrefixLen = 29

var ErrHashFailed = errors.New("password hashing failed")

// HashPassword derives a salted bcrypt hash of the password. The
// returned salt is the hash's version/cost/salt prefix, stored in its
// own column alongside the full hash. Empty passwords are accepted;
// strength policy is the caller's concern.
func HashPassword(password string) (hash, salt []byte, err error) {
	hash, err = bcrypt.GenerateFromPassword([]byte(password), DefaultCost)
	if err != nil {
		return nil, nil, ErrHashFailed
	}
	if len(hash) < saltPrefixLen {
		return nil, nil, ErrHashFailed
	}
	salt = make([]byte, saltPrefixLen)
	copy(salt, hash[:saltPrefixLen])
	return hash, salt, nil
}

// VerifyPassword recomputes the hash of the candidate with the salt
// embedded in the stored hash and compares in constant time. A wrong
// password is an expected false, never an error.
func VerifyPassword(password string, hash []byte) bool {
	return bcrypt.CompareHashAndPassword(hash, []byte(password)) == nil
}
