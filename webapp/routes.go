package webapp

import (
	"io/fs"
	"net/http"

	"github.com/julienschmidt/httprouter"
)

// Handler assembles the full route table. Everything below the guard
// comment requires a session; the guard redirects the rest to /login.
func (a *App) Handler() http.Handler {
	router := httprouter.New()

	router.HandlerFunc(http.MethodGet, "/welcome", a.HandleWelcome)
	router.HandlerFunc(http.MethodGet, "/", a.HandleIndex)
	router.HandlerFunc(http.MethodGet, "/home", a.HandleHome)
	router.HandlerFunc(http.MethodGet, "/register", a.HandleRegister)
	router.HandlerFunc(http.MethodPost, "/register", a.HandleRegister)
	router.HandlerFunc(http.MethodGet, "/login", a.HandleLogin)
	router.HandlerFunc(http.MethodPost, "/login", a.HandleLogin)
	router.HandlerFunc(http.MethodGet, "/update-profile-pic", a.HandleUpdateProfilePicGet)
	router.HandlerFunc(http.MethodGet, "/aurora", a.HandleAurora)

	// guarded routes
	router.HandlerFunc(http.MethodGet, "/logout", a.guarded(a.HandleLogout))
	router.HandlerFunc(http.MethodGet, "/profile", a.guarded(a.HandleProfile))
	router.HandlerFunc(http.MethodGet, "/social", a.guarded(a.HandleSocial))
	router.HandlerFunc(http.MethodGet, "/finder", a.guarded(a.HandleFinder))
	router.HandlerFunc(http.MethodPost, "/upload", a.guarded(a.HandleUpload))
	router.HandlerFunc(http.MethodPost, "/update-profile-pic", a.guarded(a.HandleUpdateProfilePic))

	static, err := fs.Sub(staticFS, "static")
	if err == nil {
		router.Handler(http.MethodGet, "/static/*filepath",
			http.StripPrefix("/static/", http.FileServer(http.FS(static))))
	}

	return requestLog(router)
}
