// Package frontend serves the server-rendered board screen under /ui.
package frontend

import (
	"context"
	"embed"
	"html/template"
	"net/http"
	"time"

	"github.com/taskboards/boards/internal/config"
	"github.com/taskboards/boards/internal/markdown"
	"github.com/taskboards/boards/internal/ui"
)

const (
	baseTemplate      = "base.html"
	sessionCookieName = "boards_session"
	uiPath            = "/ui"
)

//go:embed templates/*.html
var templateFS embed.FS

type Handler struct {
	templates     map[string]*template.Template
	sessions      *ui.Sessions
	textProcessor *markdown.TextProcessor
	public        config.Public
}

func New(sessions *ui.Sessions, textProcessor *markdown.TextProcessor, public config.Public) *Handler {
	return &Handler{
		templates:     MustLoadTemplates(),
		sessions:      sessions,
		textProcessor: textProcessor,
		public:        public,
	}
}

// MustLoadTemplates parses every page template together with the base layout.
func MustLoadTemplates() map[string]*template.Template {
	templates := make(map[string]*template.Template)
	entries, err := templateFS.ReadDir("templates")
	if err != nil {
		panic("can't read templates: " + err.Error())
	}
	for _, e := range entries {
		if e.Name() == baseTemplate {
			continue
		}
		templates[e.Name()] = template.Must(template.New("base").ParseFS(
			templateFS,
			"templates/"+baseTemplate,
			"templates/"+e.Name(),
		))
	}
	return templates
}

// session resolves the caller's UI session, issuing a cookie for new ones.
func (h *Handler) session(w http.ResponseWriter, r *http.Request) *ui.Session {
	var id string
	if cookie, err := r.Cookie(sessionCookieName); err == nil {
		id = cookie.Value
	}
	sess, created := h.sessions.Get(id)
	if created {
		http.SetCookie(w, &http.Cookie{
			Name:     sessionCookieName,
			Value:    sess.ID,
			Path:     uiPath,
			HttpOnly: true,
			Secure:   h.public.SecureCookies,
			SameSite: http.SameSiteLaxMode,
		})
	}
	return sess
}

// viewSession returns the caller's live session, or an unstored one when the
// caller has none yet. Sessions are only created by actions.
func (h *Handler) viewSession(r *http.Request) *ui.Session {
	if cookie, err := r.Cookie(sessionCookieName); err == nil {
		if sess, ok := h.sessions.Lookup(cookie.Value); ok {
			return sess
		}
	}
	return h.sessions.Transient()
}

func (h *Handler) storeContext(r *http.Request) (context.Context, context.CancelFunc) {
	timeout := h.public.StoreTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return context.WithTimeout(r.Context(), timeout)
}
