package webapp

import (
	"context"
	"net/http"

	"github.com/askele/borealis/internal/logutil"
	"github.com/askele/borealis/session"
)

type (
	ctxKey byte

	sessionInfo struct {
		token string
		sess  session.Session
	}
)

const sessionCtxKey = ctxKey(1)

// guarded is the auth guard: a single coarse predicate ("is there a
// session") in front of every protected route. Absent or expired
// sessions short-circuit with a redirect to the login page; the
// wrapped handler never runs. On success the session travels in the
// request context.
func (a *App) guarded(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, token, found := a.currentSession(r)
		if !found {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		ctx := context.WithValue(r.Context(), sessionCtxKey, sessionInfo{token: token, sess: sess})
		next(w, r.WithContext(ctx))
	}
}

// currentSession resolves the session cookie against the store. A
// store failure is logged and read as "no session": the client gets
// the login redirect, never the error.
func (a *App) currentSession(r *http.Request) (session.Session, string, bool) {
	c, err := r.Cookie(CookieName)
	if err != nil || c.Value == "" {
		return session.Session{}, "", false
	}
	sess, found, err := a.Sessions.Get(r.Context(), c.Value)
	if err != nil {
		logger := logutil.GetOrDefault(r.Context())
		logger.Error().Err(err).Msg("Unable to look up session")
		return session.Session{}, "", false
	}
	if !found {
		return session.Session{}, "", false
	}
	return sess, c.Value, true
}

// requestSession returns the session the guard attached. Handlers
// behind the guard can rely on it being present.
func requestSession(r *http.Request) (session.Session, string) {
	info, _ := r.Context().Value(sessionCtxKey).(sessionInfo)
	return info.sess, info.token
}
