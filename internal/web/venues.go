package web

import (
	"errors"
	"fmt"
	"net/http"

	"fyyur/internal/forms"
	"fyyur/internal/logging"
	"fyyur/internal/models"
	"fyyur/internal/store"
)

type searchView struct {
	SearchTerm string
	Count      int
	Results    any
	Kind       string
}

func (s *Server) handleListVenues(w http.ResponseWriter, r *http.Request) {
	areas, err := s.venues.ListByLocation(r.Context())
	if err != nil {
		logging.WithContext(r.Context()).Error().Err(err).Msg("list venues")
		s.serverError(w, r)
		return
	}
	s.render(w, r, http.StatusOK, "venues.html", view{Title: "Venues", Data: areas})
}

func (s *Server) handleSearchVenues(w http.ResponseWriter, r *http.Request) {
	term := r.PostFormValue("search_term")
	results, err := s.venues.Search(r.Context(), term)
	if err != nil {
		logging.WithContext(r.Context()).Error().Err(err).Str("search_term", term).Msg("search venues")
		s.serverError(w, r)
		return
	}
	s.render(w, r, http.StatusOK, "search.html", view{
		Title: "Venue Search",
		Data:  searchView{SearchTerm: term, Count: len(results), Results: results, Kind: "venues"},
	})
}

func (s *Server) handleShowVenue(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		s.notFound(w, r)
		return
	}

	detail, err := s.venues.Detail(r.Context(), id)
	if errors.Is(err, store.ErrVenueNotFound) {
		s.notFound(w, r)
		return
	}
	if err != nil {
		logging.WithContext(r.Context()).Error().Err(err).Int64("venue_id", id).Msg("load venue")
		s.serverError(w, r)
		return
	}
	s.render(w, r, http.StatusOK, "show_venue.html", view{Title: detail.Name, Data: detail})
}

func (s *Server) venueForm(form forms.VenueForm, errs forms.Errors, action string, editing bool) formView {
	return formView{
		Form:    form,
		Errors:  errs,
		Action:  action,
		States:  forms.States,
		Genres:  forms.Genres,
		Editing: editing,
	}
}

func (s *Server) handleNewVenue(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, "venue_form.html", view{
		Title: "List a new venue",
		Data:  s.venueForm(forms.VenueForm{}, nil, "/venues/create", false),
	})
}

// decodeVenue parses the posted form. It reports false once it has already
// rendered the form back with its errors.
func (s *Server) decodeVenue(w http.ResponseWriter, r *http.Request, title, action string, editing bool) (*models.Venue, bool) {
	var (
		form forms.VenueForm
		errs forms.Errors
	)
	if err := r.ParseForm(); err != nil {
		errs = forms.Errors{"form": "The form could not be read."}
	} else if form, err = forms.DecodeVenue(r.PostForm); err != nil {
		errs = forms.Errors{"form": "The form could not be read."}
	} else {
		errs = form.Validate()
	}

	if len(errs) > 0 {
		s.render(w, r, http.StatusUnprocessableEntity, "venue_form.html", view{
			Title: title,
			Data:  s.venueForm(form, errs, action, editing),
		})
		return nil, false
	}
	return form.Venue(), true
}

func (s *Server) handleCreateVenue(w http.ResponseWriter, r *http.Request) {
	venue, ok := s.decodeVenue(w, r, "List a new venue", "/venues/create", false)
	if !ok {
		return
	}

	id, err := s.venues.Create(r.Context(), venue)
	s.observe("venue", "create", err)
	if err != nil {
		logging.WithContext(r.Context()).Error().Err(err).Str("venue", venue.Name).Msg("create venue")
		s.finishMutation(w, r, flashDanger, fmt.Sprintf("An error occurred. Venue %s could not be listed.", venue.Name))
		return
	}

	logging.WithContext(r.Context()).Info().Int64("venue_id", id).Str("venue", venue.Name).Msg("venue listed")
	s.finishMutation(w, r, flashInfo, fmt.Sprintf("Venue %s was successfully listed!", venue.Name))
}

func (s *Server) handleEditVenueForm(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		s.notFound(w, r)
		return
	}

	venue, err := s.venues.Get(r.Context(), id)
	if errors.Is(err, store.ErrVenueNotFound) {
		s.notFound(w, r)
		return
	}
	if err != nil {
		logging.WithContext(r.Context()).Error().Err(err).Int64("venue_id", id).Msg("load venue")
		s.serverError(w, r)
		return
	}

	s.render(w, r, http.StatusOK, "venue_form.html", view{
		Title: "Edit venue",
		Data:  s.venueForm(forms.VenueFormFrom(venue), nil, fmt.Sprintf("/venues/%d/edit", id), true),
	})
}

func (s *Server) handleEditVenue(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		s.notFound(w, r)
		return
	}

	existing, err := s.venues.Get(r.Context(), id)
	if errors.Is(err, store.ErrVenueNotFound) {
		s.notFound(w, r)
		return
	}
	if err != nil {
		logging.WithContext(r.Context()).Error().Err(err).Int64("venue_id", id).Msg("load venue")
		s.serverError(w, r)
		return
	}

	venue, ok := s.decodeVenue(w, r, "Edit venue", fmt.Sprintf("/venues/%d/edit", id), true)
	if !ok {
		return
	}

	err = s.venues.Update(r.Context(), id, venue)
	s.observe("venue", "update", err)
	if errors.Is(err, store.ErrVenueNotFound) {
		s.notFound(w, r)
		return
	}
	if err != nil {
		logging.WithContext(r.Context()).Error().Err(err).Int64("venue_id", id).Msg("update venue")
		s.addFlash(w, r, flashDanger, fmt.Sprintf("An error occurred. Venue %s could not be updated.", existing.Name))
		http.Redirect(w, r, fmt.Sprintf("/venues/%d", id), http.StatusSeeOther)
		return
	}

	s.addFlash(w, r, flashInfo, fmt.Sprintf("Venue %s was successfully updated!", venue.Name))
	http.Redirect(w, r, fmt.Sprintf("/venues/%d", id), http.StatusSeeOther)
}

func (s *Server) handleDeleteVenue(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		s.notFound(w, r)
		return
	}

	existing, err := s.venues.Get(r.Context(), id)
	if errors.Is(err, store.ErrVenueNotFound) {
		s.notFound(w, r)
		return
	}
	if err != nil {
		logging.WithContext(r.Context()).Error().Err(err).Int64("venue_id", id).Msg("load venue")
		s.serverError(w, r)
		return
	}

	err = s.venues.Delete(r.Context(), id)
	s.observe("venue", "delete", err)
	if errors.Is(err, store.ErrVenueNotFound) {
		s.notFound(w, r)
		return
	}
	if err != nil {
		logging.WithContext(r.Context()).Error().Err(err).Int64("venue_id", id).Msg("delete venue")
		s.finishMutation(w, r, flashDanger, fmt.Sprintf("An error occurred. Venue %s could not be deleted.", existing.Name))
		return
	}

	logging.WithContext(r.Context()).Info().Int64("venue_id", id).Str("venue", existing.Name).Msg("venue deleted")
	s.finishMutation(w, r, flashInfo, fmt.Sprintf("Venue %s was successfully deleted.", existing.Name))
}
