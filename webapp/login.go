package webapp

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/askele/borealis/authflow"
	"github.com/askele/borealis/internal/logutil"
)

// storeFailureMessage is what the user sees when the credential store
// itself is down. Deliberately different from the rejection message:
// retrying with the same password is the right move here.
const storeFailureMessage = "Something went wrong, please try again."

// HandleLogin renders the login form and, on POST, runs the login
// flow. Success issues the session cookie and redirects to the
// profile; any rejection re-renders the form with the generic
// message.
func (a *App) HandleLogin(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		a.render(w, r, http.StatusOK, "login.html", nil)
	case http.MethodPost:
		username, password, ok := credentials(r)
		if !ok {
			a.render(w, r, http.StatusOK, "login.html", map[string]any{
				"Message": authflow.RejectionMessage,
			})
			return
		}
		res, err := a.flow.Submit(r.Context(), username, password)
		if err != nil {
			logger := logutil.GetOrDefault(r.Context())
			logger.Error().Err(err).Msg("Login flow failed")
			a.render(w, r, http.StatusOK, "login.html", map[string]any{
				"Message": storeFailureMessage,
			})
			return
		}
		if res.State != authflow.Authenticated {
			a.render(w, r, http.StatusOK, "login.html", map[string]any{
				"Message": res.Message,
			})
			return
		}
		http.SetCookie(w, &http.Cookie{
			Name:     CookieName,
			Value:    res.Token,
			Path:     "/",
			Expires:  time.Now().Add(a.SessionTTL),
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
		http.Redirect(w, r, "/profile", http.StatusSeeOther)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

// credentials accepts both the HTML form and a JSON body. Anything
// that is not a pair of non-empty strings reads
// as a failed attempt, never as a different error.
func credentials(r *http.Request) (username, password string, ok bool) {
	if isJSON(r) {
		var body struct {
			Username string `json:"username"`
			Password string `json:"password"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			return "", "", false
		}
		username, password = body.Username, body.Password
	} else {
		username, password = r.FormValue("username"), r.FormValue("password")
	}
	return username, password, username != "" && password != ""
}

func isJSON(r *http.Request) bool {
	return strings.HasPrefix(r.Header.Get("Content-Type"), "application/json")
}
