package webapp

import (
	"net/http"

	"github.com/askele/borealis/internal/logutil"
)

// HandleProfile shows the logged-in user's own posts. Guarded.
func (a *App) HandleProfile(w http.ResponseWriter, r *http.Request) {
	sess, _ := requestSession(r)
	posts, err := a.Posts.ByUser(r.Context(), sess.UserID)
	if err != nil {
		logger := logutil.GetOrDefault(r.Context())
		logger.Error().Err(err).Msg("Unable to load posts")
		http.Error(w, "Error retrieving posts", http.StatusInternalServerError)
		return
	}
	a.render(w, r, http.StatusOK, "profile.html", map[string]any{
		"User":  sess,
		"Posts": posts,
	})
}

// HandleSocial shows the shared feed, newest first. Guarded.
func (a *App) HandleSocial(w http.ResponseWriter, r *http.Request) {
	posts, err := a.Posts.All(r.Context())
	if err != nil {
		logger := logutil.GetOrDefault(r.Context())
		logger.Error().Err(err).Msg("Unable to load feed")
		http.Error(w, "Error retrieving posts", http.StatusInternalServerError)
		return
	}
	a.render(w, r, http.StatusOK, "social.html", map[string]any{
		"Posts": posts,
	})
}
