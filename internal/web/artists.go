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

func (s *Server) handleListArtists(w http.ResponseWriter, r *http.Request) {
	list, err := s.artists.List(r.Context())
	if err != nil {
		logging.WithContext(r.Context()).Error().Err(err).Msg("list artists")
		s.serverError(w, r)
		return
	}
	s.render(w, r, http.StatusOK, "artists.html", view{Title: "Artists", Data: list})
}

func (s *Server) handleSearchArtists(w http.ResponseWriter, r *http.Request) {
	term := r.PostFormValue("search_term")
	results, err := s.artists.Search(r.Context(), term)
	if err != nil {
		logging.WithContext(r.Context()).Error().Err(err).Str("search_term", term).Msg("search artists")
		s.serverError(w, r)
		return
	}
	s.render(w, r, http.StatusOK, "search.html", view{
		Title: "Artist Search",
		Data:  searchView{SearchTerm: term, Count: len(results), Results: results, Kind: "artists"},
	})
}

func (s *Server) handleShowArtist(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		s.notFound(w, r)
		return
	}

	detail, err := s.artists.Detail(r.Context(), id)
	if errors.Is(err, store.ErrArtistNotFound) {
		s.notFound(w, r)
		return
	}
	if err != nil {
		logging.WithContext(r.Context()).Error().Err(err).Int64("artist_id", id).Msg("load artist")
		s.serverError(w, r)
		return
	}
	s.render(w, r, http.StatusOK, "show_artist.html", view{Title: detail.Name, Data: detail})
}

func (s *Server) artistForm(form forms.ArtistForm, errs forms.Errors, action string, editing bool) formView {
	return formView{
		Form:    form,
		Errors:  errs,
		Action:  action,
		States:  forms.States,
		Genres:  forms.Genres,
		Editing: editing,
	}
}

func (s *Server) handleNewArtist(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, "artist_form.html", view{
		Title: "List a new artist",
		Data:  s.artistForm(forms.ArtistForm{}, nil, "/artists/create", false),
	})
}

func (s *Server) decodeArtist(w http.ResponseWriter, r *http.Request, title, action string, editing bool) (*models.Artist, bool) {
	var (
		form forms.ArtistForm
		errs forms.Errors
	)
	if err := r.ParseForm(); err != nil {
		errs = forms.Errors{"form": "The form could not be read."}
	} else if form, err = forms.DecodeArtist(r.PostForm); err != nil {
		errs = forms.Errors{"form": "The form could not be read."}
	} else {
		errs = form.Validate()
	}

	if len(errs) > 0 {
		s.render(w, r, http.StatusUnprocessableEntity, "artist_form.html", view{
			Title: title,
			Data:  s.artistForm(form, errs, action, editing),
		})
		return nil, false
	}
	return form.Artist(), true
}

func (s *Server) handleCreateArtist(w http.ResponseWriter, r *http.Request) {
	artist, ok := s.decodeArtist(w, r, "List a new artist", "/artists/create", false)
	if !ok {
		return
	}

	id, err := s.artists.Create(r.Context(), artist)
	s.observe("artist", "create", err)
	if err != nil {
		logging.WithContext(r.Context()).Error().Err(err).Str("artist", artist.Name).Msg("create artist")
		s.finishMutation(w, r, flashDanger, fmt.Sprintf("An error occurred. Artist %s could not be listed.", artist.Name))
		return
	}

	logging.WithContext(r.Context()).Info().Int64("artist_id", id).Str("artist", artist.Name).Msg("artist listed")
	s.finishMutation(w, r, flashInfo, fmt.Sprintf("Artist %s was successfully listed!", artist.Name))
}

func (s *Server) handleEditArtistForm(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		s.notFound(w, r)
		return
	}

	artist, err := s.artists.Get(r.Context(), id)
	if errors.Is(err, store.ErrArtistNotFound) {
		s.notFound(w, r)
		return
	}
	if err != nil {
		logging.WithContext(r.Context()).Error().Err(err).Int64("artist_id", id).Msg("load artist")
		s.serverError(w, r)
		return
	}

	s.render(w, r, http.StatusOK, "artist_form.html", view{
		Title: "Edit artist",
		Data:  s.artistForm(forms.ArtistFormFrom(artist), nil, fmt.Sprintf("/artists/%d/edit", id), true),
	})
}

func (s *Server) handleEditArtist(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		s.notFound(w, r)
		return
	}

	existing, err := s.artists.Get(r.Context(), id)
	if errors.Is(err, store.ErrArtistNotFound) {
		s.notFound(w, r)
		return
	}
	if err != nil {
		logging.WithContext(r.Context()).Error().Err(err).Int64("artist_id", id).Msg("load artist")
		s.serverError(w, r)
		return
	}

	artist, ok := s.decodeArtist(w, r, "Edit artist", fmt.Sprintf("/artists/%d/edit", id), true)
	if !ok {
		return
	}

	err = s.artists.Update(r.Context(), id, artist)
	s.observe("artist", "update", err)
	if errors.Is(err, store.ErrArtistNotFound) {
		s.notFound(w, r)
		return
	}
	if err != nil {
		logging.WithContext(r.Context()).Error().Err(err).Int64("artist_id", id).Msg("update artist")
		s.addFlash(w, r, flashDanger, fmt.Sprintf("An error occurred. Artist %s could not be updated.", existing.Name))
		http.Redirect(w, r, fmt.Sprintf("/artists/%d", id), http.StatusSeeOther)
		return
	}

	s.addFlash(w, r, flashInfo, fmt.Sprintf("Artist %s was successfully updated!", artist.Name))
	http.Redirect(w, r, fmt.Sprintf("/artists/%d", id), http.StatusSeeOther)
}

func (s *Server) handleDeleteArtist(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		s.notFound(w, r)
		return
	}

	existing, err := s.artists.Get(r.Context(), id)
	if errors.Is(err, store.ErrArtistNotFound) {
		s.notFound(w, r)
		return
	}
	if err != nil {
		logging.WithContext(r.Context()).Error().Err(err).Int64("artist_id", id).Msg("load artist")
		s.serverError(w, r)
		return
	}

	err = s.artists.Delete(r.Context(), id)
	s.observe("artist", "delete", err)
	if errors.Is(err, store.ErrArtistNotFound) {
		s.notFound(w, r)
		return
	}
	if err != nil {
		logging.WithContext(r.Context()).Error().Err(err).Int64("artist_id", id).Msg("delete artist")
		s.finishMutation(w, r, flashDanger, fmt.Sprintf("An error occurred. Artist %s could not be deleted.", existing.Name))
		return
	}

	logging.WithContext(r.Context()).Info().Int64("artist_id", id).Str("artist", existing.Name).Msg("artist deleted")
	s.finishMutation(w, r, flashInfo, fmt.Sprintf("Artist %s was successfully deleted.", existing.Name))
}
