package store

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"fyyur/internal/models"
)

func sampleArtist() *models.Artist {
	return &models.Artist{
		Name:         "Guns N Petals",
		City:         "San Francisco",
		State:        "CA",
		Phone:        "326-123-5000",
		FacebookLink: "https://www.facebook.com/GunsNPetals",
		ImageLink:    "https://images.example.com/petals.jpg",
		WebsiteLink:  "https://www.gunsnpetalsband.com",
		SeekingVenue: false,
	}
}

func TestCreateArtist(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	artist := sampleArtist()
	artist.Genres = []string{"Rock n Roll"}

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO artists`)).
		WithArgs(artist.Name, artist.City, artist.State, artist.Phone, artist.FacebookLink,
			artist.ImageLink, artist.WebsiteLink, false, nil).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(4)))
	expectGenreCreated(mock, "Rock n Roll")
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO artist_genres (artist_id, genre_name)`)).
		WithArgs(int64(4), "Rock n Roll").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	id, err := New(db).CreateArtist(context.Background(), artist)
	if err != nil {
		t.Fatalf("CreateArtist: %v", err)
	}
	if id != 4 {
		t.Fatalf("expected artist ID 4, got %d", id)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreateArtistRollsBackOnInsertFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	boom := errors.New("disk full")

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO artists`)).
		WillReturnError(boom)
	mock.ExpectRollback()

	if _, err := New(db).CreateArtist(context.Background(), sampleArtist()); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped insert error, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUpdateArtistWithDisjointGenres(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	artist := sampleArtist()
	artist.SeekingVenue = true
	artist.SeekingDescription = "Looking for shows in the Bay Area."
	artist.Genres = []string{"Blues"}

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE artists`)).
		WithArgs(artist.Name, artist.City, artist.State, artist.Phone, artist.FacebookLink,
			artist.ImageLink, artist.WebsiteLink, true, artist.SeekingDescription, int64(4)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM artist_genres WHERE artist_id = $1`)).
		WithArgs(int64(4)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	expectGenreExists(mock, "Blues")
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO artist_genres`)).
		WithArgs(int64(4), "Blues").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	if err := New(db).UpdateArtist(context.Background(), 4, artist); err != nil {
		t.Fatalf("UpdateArtist: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUpdateArtistWithNoGenresClearsAssociations(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE artists`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM artist_genres WHERE artist_id = $1`)).
		WithArgs(int64(4)).
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectCommit()

	if err := New(db).UpdateArtist(context.Background(), 4, sampleArtist()); err != nil {
		t.Fatalf("UpdateArtist: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestDeleteArtist(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM artists WHERE id = $1`)).
		WithArgs(int64(4)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	if err := New(db).DeleteArtist(context.Background(), 4); err != nil {
		t.Fatalf("DeleteArtist: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestDeleteArtistRollsBackOnFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM artists WHERE id = $1`)).
		WithArgs(int64(4)).
		WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	if err := New(db).DeleteArtist(context.Background(), 4); err == nil {
		t.Fatal("expected error from DeleteArtist")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestDeleteArtistNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM artists WHERE id = $1`)).
		WithArgs(int64(8)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	if err := New(db).DeleteArtist(context.Background(), 8); !errors.Is(err, ErrArtistNotFound) {
		t.Fatalf("expected ErrArtistNotFound, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestSearchArtists(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	now := time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta(`WHERE a.name ILIKE $2`)).
		WithArgs(now, "%band%").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "num_upcoming_shows"}).
			AddRow(int64(6), "The Wild Sax Band", 3))

	got, err := New(db).SearchArtists(context.Background(), "band", now)
	if err != nil {
		t.Fatalf("SearchArtists: %v", err)
	}
	if len(got) != 1 || got[0].NumUpcomingShows != 3 {
		t.Fatalf("unexpected results: %+v", got)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestGetArtistNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta(`FROM artists WHERE id = $1`)).
		WithArgs(int64(77)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	if _, err := New(db).GetArtist(context.Background(), 77); !errors.Is(err, ErrArtistNotFound) {
		t.Fatalf("expected ErrArtistNotFound, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
