package store

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"

	"fyyur/internal/models"
)

func TestCreateShow(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	start := time.Date(2035, 4, 1, 20, 0, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO shows (venue_id, artist_id, start_time)`)).
		WithArgs(int64(1), int64(4), start).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(11)))
	mock.ExpectCommit()

	show := &models.Show{VenueID: 1, ArtistID: 4, StartTime: start}
	id, err := New(db).CreateShow(context.Background(), show)
	if err != nil {
		t.Fatalf("CreateShow: %v", err)
	}
	if id != 11 || show.ID != 11 {
		t.Fatalf("expected show ID 11, got %d / %d", id, show.ID)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreateShowUnknownArtistWritesNothing(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO shows`)).
		WithArgs(int64(1), int64(999), sqlmock.AnyArg()).
		WillReturnError(&pgconn.PgError{Code: "23503", ConstraintName: "shows_artist_id_fkey"})
	mock.ExpectRollback()

	show := &models.Show{VenueID: 1, ArtistID: 999, StartTime: time.Now()}
	_, err = New(db).CreateShow(context.Background(), show)
	if !errors.Is(err, ErrShowReferences) {
		t.Fatalf("expected ErrShowReferences, got %v", err)
	}
	if show.ID != 0 {
		t.Fatalf("expected show ID to stay unset, got %d", show.ID)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreateShowCommitFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	boom := errors.New("commit failed")

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO shows`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(12)))
	mock.ExpectCommit().WillReturnError(boom)

	if _, err := New(db).CreateShow(context.Background(), &models.Show{VenueID: 1, ArtistID: 1}); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped commit error, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestListShowsOrderedByStartTime(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	early := time.Date(2019, 5, 21, 21, 30, 0, 0, time.UTC)
	late := time.Date(2035, 4, 1, 20, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta(`ORDER BY s.start_time ASC, s.id ASC`)).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "venue_id", "artist_id", "start_time",
			"venue_name", "venue_image_link", "artist_name", "artist_image_link",
		}).
			AddRow(int64(1), int64(1), int64(4), early, "The Musical Hop", "hop.jpg", "Guns N Petals", "petals.jpg").
			AddRow(int64(3), int64(3), int64(6), late, "Park Square Live Music & Coffee", "park.jpg", "The Wild Sax Band", "sax.jpg"))

	shows, err := New(db).ListShows(context.Background())
	if err != nil {
		t.Fatalf("ListShows: %v", err)
	}
	if len(shows) != 2 {
		t.Fatalf("expected 2 shows, got %d", len(shows))
	}
	if shows[0].ArtistName != "Guns N Petals" || !shows[0].StartTime.Equal(early) {
		t.Fatalf("unexpected first show: %+v", shows[0])
	}
	if shows[1].VenueName != "Park Square Live Music & Coffee" {
		t.Fatalf("unexpected second show: %+v", shows[1])
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestListShowsByVenue(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta(`WHERE s.venue_id = $1`)).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "venue_id", "artist_id", "start_time",
			"venue_name", "venue_image_link", "artist_name", "artist_image_link",
		}))

	shows, err := New(db).ListShowsByVenue(context.Background(), 1)
	if err != nil {
		t.Fatalf("ListShowsByVenue: %v", err)
	}
	if len(shows) != 0 {
		t.Fatalf("expected no shows, got %+v", shows)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
