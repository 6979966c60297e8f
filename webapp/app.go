// Package webapp wires the stores, the login flow and the templates
// into the HTTP surface of the application.
package webapp

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"path"
	"time"

	"github.com/askele/borealis/aurora"
	"github.com/askele/borealis/authflow"
	"github.com/askele/borealis/feed"
	"github.com/askele/borealis/session"
	"github.com/askele/borealis/userstore"
)

// CookieName carries the session token between requests.
const CookieName = "borealis_session"

// DefaultProfileImage is shown for users who never uploaded a
// picture (1x1 transparent png).
const DefaultProfileImage = "data:image/png;base64,iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAYAAAAfFcSJAAAADUlEQVR42mNk+M9QDwADhgGAWjR9awAAAABJRU5ErkJggg=="

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

type (
	App struct {
		Users    *userstore.Store
		Posts    *feed.Store
		Sessions session.Store
		Aurora   *aurora.Client

		SessionTTL time.Duration

		flow      *authflow.Flow
		templates map[string]*template.Template
	}
)

// New builds the application around its collaborators. Templates are
// embedded so the binary carries its own views.
func New(users *userstore.Store, posts *feed.Store, sessions session.Store, forecast *aurora.Client, sessionTTL time.Duration) (*App, error) {
	tpls, err := loadTemplates()
	if err != nil {
		return nil, err
	}
	return &App{
		Users:      users,
		Posts:      posts,
		Sessions:   sessions,
		Aurora:     forecast,
		SessionTTL: sessionTTL,
		flow: &authflow.Flow{
			Users:        users,
			Sessions:     sessions,
			DefaultImage: DefaultProfileImage,
		},
		templates: tpls,
	}, nil
}

// loadTemplates parses every page together with the shared layout.
// The map is keyed by filename (e.g. login.html).
func loadTemplates() (map[string]*template.Template, error) {
	pages, err := fs.Glob(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	m := make(map[string]*template.Template)
	for _, page := range pages {
		name := path.Base(page)
		if name == "layout.html" {
			continue
		}
		t, err := template.ParseFS(templateFS, "templates/layout.html", page)
		if err != nil {
			return nil, fmt.Errorf("unable to parse template %v, cause %w", name, err)
		}
		m[name] = t
	}
	return m, nil
}
