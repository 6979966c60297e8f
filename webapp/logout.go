package webapp

import (
	"net/http"
	"time"

	"github.com/askele/borealis/internal/logutil"
)

// HandleLogout destroys the current session and tells the browser to
// drop the cookie. Even if a stale token is re-sent afterwards, the
// guard reads it as absent. Destroy is idempotent so a double click
// on "log out" is harmless.
func (a *App) HandleLogout(w http.ResponseWriter, r *http.Request) {
	_, token := requestSession(r)
	if err := a.Sessions.Destroy(r.Context(), token); err != nil {
		// the cookie still gets expired; the record will age out
		logger := logutil.GetOrDefault(r.Context())
		logger.Error().Err(err).Msg("Unable to destroy session")
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	a.render(w, r, http.StatusOK, "logout.html", map[string]any{"User": nil})
}
