package webapp

import (
	"net/http"

	"github.com/askele/borealis/internal/logutil"
)

// render executes the named page template. The session user (when
// logged in) is attached under "User" so the layout can show the
// right navigation; handlers can override it by setting the key
// themselves.
func (a *App) render(w http.ResponseWriter, r *http.Request, status int, page string, data map[string]any) {
	tpl, ok := a.templates[page]
	if !ok {
		logger := logutil.GetOrDefault(r.Context())
		logger.Error().Str("template", page).Msg("Unknown template")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if data == nil {
		data = map[string]any{}
	}
	if _, ok := data["User"]; !ok {
		if sess, _, found := a.currentSession(r); found {
			data["User"] = sess
		} else {
			data["User"] = nil
		}
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := tpl.ExecuteTemplate(w, page, data); err != nil {
		logger := logutil.GetOrDefault(r.Context())
		logger.Error().Err(err).Str("template", page).Msg("Unable to render template")
	}
}
