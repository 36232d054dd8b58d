package web

import (
	"errors"
	"net/http"

	"fyyur/internal/forms"
	"fyyur/internal/logging"
	"fyyur/internal/models"
	"fyyur/internal/store"
)

func (s *Server) handleListShows(w http.ResponseWriter, r *http.Request) {
	list, err := s.shows.List(r.Context())
	if err != nil {
		logging.WithContext(r.Context()).Error().Err(err).Msg("list shows")
		s.serverError(w, r)
		return
	}
	s.render(w, r, http.StatusOK, "shows.html", view{Title: "Shows", Data: list})
}

func (s *Server) handleNewShow(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, "show_form.html", view{
		Title: "List a new show",
		Data:  formView{Form: forms.ShowForm{}, Action: "/shows/create"},
	})
}

func (s *Server) handleCreateShow(w http.ResponseWriter, r *http.Request) {
	var (
		form forms.ShowForm
		errs forms.Errors
	)
	if err := r.ParseForm(); err != nil {
		errs = forms.Errors{"form": "The form could not be read."}
	} else if form, err = forms.DecodeShow(r.PostForm); err != nil {
		errs = forms.Errors{"form": "The form could not be read."}
	}

	if len(errs) == 0 {
		show, parseErrs := form.Parse(s.location)
		if len(parseErrs) == 0 {
			s.createShow(w, r, show)
			return
		}
		errs = parseErrs
	}

	s.render(w, r, http.StatusUnprocessableEntity, "show_form.html", view{
		Title: "List a new show",
		Data:  formView{Form: form, Errors: errs, Action: "/shows/create"},
	})
}

func (s *Server) createShow(w http.ResponseWriter, r *http.Request, show *models.Show) {
	id, err := s.shows.Create(r.Context(), show)
	s.observe("show", "create", err)
	if err != nil {
		event := logging.WithContext(r.Context()).Error()
		if errors.Is(err, store.ErrShowReferences) {
			event = logging.WithContext(r.Context()).Warn()
		}
		event.Err(err).
			Int64("venue_id", show.VenueID).
			Int64("artist_id", show.ArtistID).
			Msg("create show")
		s.finishMutation(w, r, flashDanger, "An error occurred. Show could not be listed.")
		return
	}

	logging.WithContext(r.Context()).Info().Int64("show_id", id).Msg("show listed")
	s.finishMutation(w, r, flashInfo, "Show was successfully listed!")
}
