package webapp

import (
	"encoding/json"
	"net/http"
)

// HandleWelcome is the JSON liveness probe.
func (a *App) HandleWelcome(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"status":  "success",
		"message": "Welcome!",
	})
}

// HandleIndex sends visitors to the home page.
func (a *App) HandleIndex(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/home", http.StatusSeeOther)
}

// HandleHome renders the landing page. It is not guarded: the page
// works for anonymous visitors and simply shows more when a session
// exists.
func (a *App) HandleHome(w http.ResponseWriter, r *http.Request) {
	a.render(w, r, http.StatusOK, "home.html", nil)
}
