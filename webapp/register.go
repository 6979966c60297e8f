package webapp

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/askele/borealis/internal/logutil"
	"github.com/askele/borealis/passhash"
	"github.com/askele/borealis/userstore"
)

// HandleRegister shows the registration form and creates the user on
// POST. Registration never creates a session: the new user goes
// through the login flow like everyone else.
func (a *App) HandleRegister(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		a.render(w, r, http.StatusOK, "register.html", nil)
	case http.MethodPost:
		username, email, password, ok := registration(r)
		if !ok {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(map[string]string{"message": "Invalid input"})
			return
		}
		digest, err := passhash.Hash(password)
		if err != nil {
			logger := logutil.GetOrDefault(r.Context())
			logger.Error().Err(err).Msg("Unable to hash password")
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
		_, err = a.Users.Insert(r.Context(), username, email, digest, DefaultProfileImage)
		if err != nil {
			var conflict userstore.Conflict
			if errors.As(err, &conflict) {
				a.render(w, r, http.StatusOK, "register.html", map[string]any{
					"Message": "Username or email already taken.",
				})
				return
			}
			logger := logutil.GetOrDefault(r.Context())
			logger.Error().Err(err).Msg("Unable to register user")
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
		http.Redirect(w, r, "/login", http.StatusSeeOther)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

// registration validates the signup fields. JSON bodies must carry
// strings in all three fields; anything else is invalid input, which
// mirrors how the form behaves with missing fields.
func registration(r *http.Request) (username, email, password string, ok bool) {
	if isJSON(r) {
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			return "", "", "", false
		}
		var uok, eok, pok bool
		username, uok = body["username"].(string)
		email, eok = body["email"].(string)
		password, pok = body["password"].(string)
		if !uok || !eok || !pok {
			return "", "", "", false
		}
	} else {
		username = r.FormValue("username")
		email = r.FormValue("email")
		password = r.FormValue("password")
	}
	return username, email, password, username != "" && email != "" && password != ""
}
