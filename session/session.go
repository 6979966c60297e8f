// Package session maps opaque tokens to login sessions. A session's
// existence is the sole authorization signal: handlers that find one
// proceed, handlers that don't redirect to login.
//
// Username and profile image are denormalized snapshots taken at
// login time. The image copy is mutated in place when the user
// uploads a new profile picture, so it can transiently diverge from
// the persisted user row.
package session

import (
	"context"
	"errors"
)

type (
	// Session is the record behind one issued token. UserID is a weak
	// reference to the users table, looked up on demand.
	Session struct {
		UserID       int64  `json:"user_id"`
		Username     string `json:"username"`
		ProfileImage string `json:"profile_image"`
	}

	// Store is implemented by the in-memory and redis backends.
	// Absent tokens are a state, not an error: Get signals them with
	// the bool, Destroy ignores them, only UpdateProfileImage treats
	// them as a failure (mutating nothing is not what the caller
	// asked for).
	Store interface {
		// Create issues a fresh unguessable token for sess. A live
		// token is never reused.
		Create(ctx context.Context, sess Session) (string, error)
		// Get looks up the session behind token. The bool is false
		// when the token is unknown or expired.
		Get(ctx context.Context, token string) (Session, bool, error)
		// UpdateProfileImage rewrites the cached image, leaving the
		// rest of the record untouched, and returns the new record.
		UpdateProfileImage(ctx context.Context, token, image string) (Session, error)
		// Destroy removes the session. Destroying an absent token is
		// a no-op.
		Destroy(ctx context.Context, token string) error
	}
)

// ErrNoSession is returned by UpdateProfileImage when the token does
// not map to a live session.
var ErrNoSession = errors.New("session: no session for token")
