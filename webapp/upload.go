package webapp

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/askele/borealis/internal/logutil"
	"github.com/askele/borealis/session"
)

// uploads larger than this are rejected before decoding
const maxUploadBytes = 10 << 20

// HandleUpload turns the multipart image into a data-URI and appends
// it to the feed. Guarded.
func (a *App) HandleUpload(w http.ResponseWriter, r *http.Request) {
	sess, _ := requestSession(r)
	image, err := imageFromForm(r)
	if err != nil {
		http.Error(w, "No file uploaded", http.StatusBadRequest)
		return
	}
	caption := r.FormValue("text")
	if _, err := a.Posts.Insert(r.Context(), sess.UserID, image, caption); err != nil {
		logger := logutil.GetOrDefault(r.Context())
		logger.Error().Err(err).Msg("Unable to store post")
		http.Error(w, "Error uploading image", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/profile", http.StatusSeeOther)
}

// HandleUpdateProfilePicGet exists because some hosts replay POST
// targets as GET after a redirect chain; just go back to the profile.
func (a *App) HandleUpdateProfilePicGet(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/profile", http.StatusSeeOther)
}

// HandleUpdateProfilePic stores a new profile picture on the user row
// and refreshes the in-session copy, so the change shows up without
// a re-login. The two can transiently diverge if the row update
// lands and the session write races a logout; the next login resyncs
// from the row. Guarded.
func (a *App) HandleUpdateProfilePic(w http.ResponseWriter, r *http.Request) {
	sess, token := requestSession(r)
	image, err := imageFromForm(r)
	if err != nil {
		http.Error(w, "No file uploaded", http.StatusBadRequest)
		return
	}
	stored, err := a.Users.UpdateImage(r.Context(), sess.UserID, image)
	if err != nil {
		logger := logutil.GetOrDefault(r.Context())
		logger.Error().Err(err).Msg("Unable to update profile picture")
		http.Error(w, "Error uploading profile picture", http.StatusInternalServerError)
		return
	}
	if _, err := a.Sessions.UpdateProfileImage(r.Context(), token, stored); err != nil {
		if !errors.Is(err, session.ErrNoSession) {
			logger := logutil.GetOrDefault(r.Context())
			logger.Error().Err(err).Msg("Unable to refresh session picture")
		}
		// the row is updated either way; the session catches up on
		// the next login
	}
	http.Redirect(w, r, "/profile", http.StatusSeeOther)
}

// imageFromForm reads the "image" part of a multipart body and
// returns it as a data-URI, the same shape the templates inline into
// <img> tags.
func imageFromForm(r *http.Request) (string, error) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		return "", err
	}
	file, header, err := r.FormFile("image")
	if err != nil {
		return "", err
	}
	defer file.Close()
	buf, err := io.ReadAll(io.LimitReader(file, maxUploadBytes))
	if err != nil {
		return "", err
	}
	mime := header.Header.Get("Content-Type")
	if mime == "" {
		mime = http.DetectContentType(buf)
	}
	return fmt.Sprintf("data:%v;base64,%v", mime, base64.StdEncoding.EncodeToString(buf)), nil
}
