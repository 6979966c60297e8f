// Package passhash wraps bcrypt behind the two operations the rest of
// the application needs: producing a digest and checking a candidate
// password against one.
//
// The digest is self-describing (algorithm, cost and salt travel
// inside the string), so verification needs nothing beyond the digest
// itself. bcrypt's comparison runs in time independent of where a
// mismatch occurs.
package passhash

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// cost 10 matches what the rest of our deployments use; raising it is
// a data migration, not a code change, because old digests keep their
// embedded cost.
const cost = bcrypt.DefaultCost

var errEmptyPassword = errors.New("passhash: refusing to hash an empty password")

// Hash derives a salted digest from plain. Empty input is rejected so
// a bug upstream can never mint an account with a blank password.
func Hash(plain string) (string, error) {
	if plain == "" {
		return "", errEmptyPassword
	}
	digest, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

// Verify reports whether plain reproduces digest. It never panics and
// never returns an error: a malformed digest is simply a mismatch,
// the caller cannot do anything smarter with the distinction.
func Verify(plain, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plain)) == nil
}
