package web

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"fyyur/internal/app/artists"
	"fyyur/internal/app/shows"
	"fyyur/internal/app/venues"
	"fyyur/internal/middleware"
)

// GenreLister exposes the genre registry for the home page.
type GenreLister interface {
	ListGenres(ctx context.Context) ([]string, error)
}

// Options tune a Server. The zero value is usable.
type Options struct {
	Metrics        *middleware.Metrics
	MetricsHandler http.Handler
	Genres         GenreLister
	Location       *time.Location
	SecureCookies  bool
	Now            func() time.Time
}

// Server renders the Fyyur site.
type Server struct {
	venues  venues.Service
	artists artists.Service
	shows   shows.Service

	genres         GenreLister
	metrics        *middleware.Metrics
	metricsHandler http.Handler
	location       *time.Location
	secureCookies  bool
	now            func() time.Time

	templates templates
}

// New constructs a Server and parses its templates.
func New(venueService venues.Service, artistService artists.Service, showService shows.Service, opts Options) (*Server, error) {
	s := &Server{
		venues:         venueService,
		artists:        artistService,
		shows:          showService,
		genres:         opts.Genres,
		metrics:        opts.Metrics,
		metricsHandler: opts.MetricsHandler,
		location:       opts.Location,
		secureCookies:  opts.SecureCookies,
		now:            opts.Now,
	}
	if s.location == nil {
		s.location = time.Local
	}
	if s.now == nil {
		s.now = time.Now
	}

	t, err := loadTemplates(s.now)
	if err != nil {
		return nil, fmt.Errorf("load templates: %w", err)
	}
	s.templates = t
	return s, nil
}

// Routes builds the router with logging, recovery and metrics applied.
func (s *Server) Routes() http.Handler {
	r := mux.NewRouter()
	r.NotFoundHandler = http.HandlerFunc(s.notFound)
	r.MethodNotAllowedHandler = http.HandlerFunc(s.methodNotAllowed)
	if s.metrics != nil {
		r.Use(middleware.LabelRoute)
	}

	r.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	if s.metricsHandler != nil {
		r.Handle("/metrics", s.metricsHandler).Methods(http.MethodGet)
	}

	r.HandleFunc("/", s.handleHome).Methods(http.MethodGet)

	r.HandleFunc("/venues", s.handleListVenues).Methods(http.MethodGet)
	r.HandleFunc("/venues/search", s.handleSearchVenues).Methods(http.MethodPost)
	r.HandleFunc("/venues/create", s.handleNewVenue).Methods(http.MethodGet)
	r.HandleFunc("/venues/create", s.handleCreateVenue).Methods(http.MethodPost)
	r.HandleFunc("/venues/{id:[0-9]+}", s.handleShowVenue).Methods(http.MethodGet)
	r.HandleFunc("/venues/{id:[0-9]+}", s.handleDeleteVenue).Methods(http.MethodDelete)
	r.HandleFunc("/venues/{id:[0-9]+}/delete", s.handleDeleteVenue).Methods(http.MethodPost)
	r.HandleFunc("/venues/{id:[0-9]+}/edit", s.handleEditVenueForm).Methods(http.MethodGet)
	r.HandleFunc("/venues/{id:[0-9]+}/edit", s.handleEditVenue).Methods(http.MethodPost)

	r.HandleFunc("/artists", s.handleListArtists).Methods(http.MethodGet)
	r.HandleFunc("/artists/search", s.handleSearchArtists).Methods(http.MethodPost)
	r.HandleFunc("/artists/create", s.handleNewArtist).Methods(http.MethodGet)
	r.HandleFunc("/artists/create", s.handleCreateArtist).Methods(http.MethodPost)
	r.HandleFunc("/artists/{id:[0-9]+}", s.handleShowArtist).Methods(http.MethodGet)
	r.HandleFunc("/artists/{id:[0-9]+}", s.handleDeleteArtist).Methods(http.MethodDelete)
	r.HandleFunc("/artists/{id:[0-9]+}/delete", s.handleDeleteArtist).Methods(http.MethodPost)
	r.HandleFunc("/artists/{id:[0-9]+}/edit", s.handleEditArtistForm).Methods(http.MethodGet)
	r.HandleFunc("/artists/{id:[0-9]+}/edit", s.handleEditArtist).Methods(http.MethodPost)

	r.HandleFunc("/shows", s.handleListShows).Methods(http.MethodGet)
	r.HandleFunc("/shows/create", s.handleNewShow).Methods(http.MethodGet)
	r.HandleFunc("/shows/create", s.handleCreateShow).Methods(http.MethodPost)

	// Wrapped outside the router so unmatched paths and methods are logged,
	// recovered and counted too.
	var h http.Handler = r
	if s.metrics != nil {
		h = s.metrics.Instrument()(h)
	}
	h = middleware.Recovery(http.HandlerFunc(s.serverError))(h)
	return middleware.RequestLogging()(h)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

type homeView struct {
	Genres []string
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	s.renderHome(w, r, http.StatusOK, nil)
}

func (s *Server) renderHome(w http.ResponseWriter, r *http.Request, status int, flashes []flash) {
	var data homeView
	if s.genres != nil {
		// The genre strip is decorative; a failure still renders the page.
		genres, err := s.genres.ListGenres(r.Context())
		if err == nil {
			data.Genres = genres
		}
	}
	s.render(w, r, status, "home.html", view{Title: "Fyyur", Flashes: flashes, Data: data})
}

func (s *Server) observe(entity, op string, err error) {
	if s.metrics != nil {
		s.metrics.ObserveMutation(entity, op, err)
	}
}

func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// finishMutation sends the user home with msg. DELETE requests come from
// script and get the page body directly; form posts are redirected.
func (s *Server) finishMutation(w http.ResponseWriter, r *http.Request, category, msg string) {
	if r.Method == http.MethodDelete {
		s.renderHome(w, r, http.StatusOK, []flash{{Category: category, Message: msg}})
		return
	}
	s.addFlash(w, r, category, msg)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
