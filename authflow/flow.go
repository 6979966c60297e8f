// Package authflow runs the login sequence: look the user up, verify
// the password, mint a session. The three steps happen strictly in
// that order; a session is never created before verification
// succeeds.
package authflow

import (
	"context"
	"errors"
	"fmt"

	"github.com/askele/borealis/passhash"
	"github.com/askele/borealis/session"
	"github.com/askele/borealis/userstore"
)

// RejectionMessage is the only thing a failed login ever tells the
// client. Unknown username and wrong password produce the identical
// text so the response does not reveal which field was wrong.
const RejectionMessage = "Incorrect username or password."

// ErrStoreUnavailable marks infrastructure failures during lookup,
// as opposed to a credential mismatch.
var ErrStoreUnavailable = errors.New("authflow: credential store unavailable")

type (
	State int

	// CredentialSource is the slice of the user store login needs.
	CredentialSource interface {
		FindByUsername(ctx context.Context, username string) (*userstore.User, error)
	}

	Flow struct {
		Users    CredentialSource
		Sessions session.Store
		// DefaultImage fills the session snapshot for users who
		// never uploaded a profile picture.
		DefaultImage string
	}

	// Result is the terminal state of one login attempt.
	Result struct {
		State   State
		Token   string          // set when Authenticated
		Session session.Session // set when Authenticated
		Message string          // set when Rejected
	}
)

const (
	Anonymous State = iota
	Authenticating
	Authenticated
	Rejected
)

func (s State) String() string {
	switch s {
	case Anonymous:
		return "anonymous"
	case Authenticating:
		return "authenticating"
	case Authenticated:
		return "authenticated"
	case Rejected:
		return "rejected"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Submit drives one attempt from Anonymous to a terminal state.
// Rejected is not an error: the error return carries only
// infrastructure failures (wrapped in ErrStoreUnavailable for the
// lookup, raw for session creation), and no session exists when it
// is non-nil.
func (f *Flow) Submit(ctx context.Context, username, password string) (Result, error) {
	user, err := f.Users.FindByUsername(ctx, username)
	if err != nil {
		var notFound userstore.NotFound
		if errors.As(err, &notFound) {
			// same rejection as a bad password on purpose
			return Result{State: Rejected, Message: RejectionMessage}, nil
		}
		return Result{State: Authenticating}, fmt.Errorf("%w, cause %v", ErrStoreUnavailable, err)
	}
	if !passhash.Verify(password, user.PasswordDigest) {
		return Result{State: Rejected, Message: RejectionMessage}, nil
	}
	sess := session.Session{
		UserID:       user.ID,
		Username:     user.Username,
		ProfileImage: user.Image,
	}
	if sess.ProfileImage == "" {
		sess.ProfileImage = f.DefaultImage
	}
	token, err := f.Sessions.Create(ctx, sess)
	if err != nil {
		return Result{State: Authenticating}, fmt.Errorf("unable to create session for %v, cause %w", username, err)
	}
	return Result{State: Authenticated, Token: token, Session: sess}, nil
}
