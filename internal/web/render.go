package web

import (
	"bytes"
	"embed"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"fyyur/internal/forms"
	"fyyur/internal/logging"
)

//go:embed templates
var templateFS embed.FS

const (
	layoutTemplate = "templates/layouts/main.html"
	flashCookie    = "fyyur_flash"
)

// Flash categories understood by the layout.
const (
	flashInfo   = "info"
	flashDanger = "danger"
)

type flash struct {
	Category string `json:"c"`
	Message  string `json:"m"`
}

// view is the data every page template receives.
type view struct {
	Title   string
	Flashes []flash
	Data    any
}

// formView carries a create or edit form back into its template.
type formView struct {
	Form    any
	Errors  forms.Errors
	Action  string
	States  []string
	Genres  []string
	Editing bool
}

type templates map[string]*template.Template

func loadTemplates(now func() time.Time) (templates, error) {
	funcs := template.FuncMap{
		"datetime": func(t time.Time) string {
			return t.Format("Mon Jan 2, 2006 3:04PM")
		},
		"since": func(t time.Time) string {
			return humanize.RelTime(t, now(), "ago", "from now")
		},
		"contains": func(values []string, v string) bool {
			for _, value := range values {
				if value == v {
					return true
				}
			}
			return false
		},
		"join": strings.Join,
	}

	pages, err := fs.Glob(templateFS, "templates/pages/*.html")
	if err != nil {
		return nil, err
	}

	out := make(templates, len(pages))
	for _, page := range pages {
		t, err := template.New(path.Base(page)).Funcs(funcs).ParseFS(templateFS, layoutTemplate, "templates/partials/*.html", page)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", page, err)
		}
		out[path.Base(page)] = t
	}
	return out, nil
}

// render executes the named page into a buffer first so a template failure
// never leaves a half-written response behind.
func (s *Server) render(w http.ResponseWriter, r *http.Request, status int, name string, v view) {
	t, ok := s.templates[name]
	if !ok {
		logging.WithContext(r.Context()).Error().Str("template", name).Msg("template not found")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	v.Flashes = append(s.popFlashes(w, r), v.Flashes...)

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", v); err != nil {
		logging.WithContext(r.Context()).Error().Err(err).Str("template", name).Msg("render template")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func (s *Server) notFound(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusNotFound, "404.html", view{Title: "Not Found"})
}

func (s *Server) methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusMethodNotAllowed, "405.html", view{Title: "Method Not Allowed", Data: r.Method})
}

func (s *Server) serverError(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusInternalServerError, "500.html", view{Title: "Server Error"})
}

// addFlash queues a message for the next rendered page.
func (s *Server) addFlash(w http.ResponseWriter, r *http.Request, category, message string) {
	pending := s.pendingFlashes(r)
	pending = append(pending, flash{Category: category, Message: message})

	payload, err := json.Marshal(pending)
	if err != nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookie,
		Value:    base64.RawURLEncoding.EncodeToString(payload),
		Path:     "/",
		HttpOnly: true,
		Secure:   s.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}

// popFlashes returns the queued messages and expires the cookie.
func (s *Server) popFlashes(w http.ResponseWriter, r *http.Request) []flash {
	pending := s.pendingFlashes(r)
	if pending == nil {
		return nil
	}
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
	return pending
}

func (s *Server) pendingFlashes(r *http.Request) []flash {
	cookie, err := r.Cookie(flashCookie)
	if err != nil || cookie.Value == "" {
		return nil
	}
	payload, err := base64.RawURLEncoding.DecodeString(cookie.Value)
	if err != nil {
		return nil
	}
	var out []flash
	if err := json.Unmarshal(payload, &out); err != nil {
		return nil
	}
	return out
}
