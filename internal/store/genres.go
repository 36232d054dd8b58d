package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// GenreRegistry resolves genre names to stored rows, creating rows on first use.
// Implementations must run inside the caller's transaction.
type GenreRegistry interface {
	Ensure(ctx context.Context, tx *sql.Tx, name string) error
}

// Genres is the Postgres-backed GenreRegistry.
//
// Lookups are check-then-insert. The insert runs under a savepoint so that a
// concurrent request creating the same name surfaces as a unique violation
// that is absorbed here instead of aborting the caller's transaction.
type Genres struct{}

// NewGenres returns the default registry.
func NewGenres() *Genres {
	return &Genres{}
}

// Ensure makes sure a genre row named name exists.
func (g *Genres) Ensure(ctx context.Context, tx *sql.Tx, name string) error {
	var exists bool
	if err := tx.QueryRowContext(ctx, `
		SELECT EXISTS (SELECT 1 FROM genres WHERE name = $1)
	`, name).Scan(&exists); err != nil {
		return fmt.Errorf("lookup genre: %w", err)
	}
	if exists {
		return nil
	}

	if _, err := tx.ExecContext(ctx, `SAVEPOINT ensure_genre`); err != nil {
		return fmt.Errorf("savepoint genre: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO genres (name)
		VALUES ($1)
	`, name); err != nil {
		if !isUniqueViolation(err) {
			return fmt.Errorf("insert genre: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `ROLLBACK TO SAVEPOINT ensure_genre`); err != nil {
			return fmt.Errorf("rollback genre savepoint: %w", err)
		}
		return nil
	}

	if _, err := tx.ExecContext(ctx, `RELEASE SAVEPOINT ensure_genre`); err != nil {
		return fmt.Errorf("release genre savepoint: %w", err)
	}
	return nil
}

// ListGenres returns every genre name ever used, alphabetically.
func (s *Store) ListGenres(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT name
		FROM genres
		ORDER BY name ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("select genres: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan genre: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate genres: %w", err)
	}
	return names, nil
}

// genreLinks holds the junction statements of one entity kind.
type genreLinks struct {
	entity string
	list   string
	clear  string
	insert string
}

var (
	venueGenreLinks = genreLinks{
		entity: "venue",
		list: `
		SELECT genre_name
		FROM venue_genres
		WHERE venue_id = $1
		ORDER BY genre_name ASC
	`,
		clear: `
		DELETE FROM venue_genres
		WHERE venue_id = $1
	`,
		insert: `
		INSERT INTO venue_genres (venue_id, genre_name)
		VALUES ($1, $2)
	`,
	}

	artistGenreLinks = genreLinks{
		entity: "artist",
		list: `
		SELECT genre_name
		FROM artist_genres
		WHERE artist_id = $1
		ORDER BY genre_name ASC
	`,
		clear: `
		DELETE FROM artist_genres
		WHERE artist_id = $1
	`,
		insert: `
		INSERT INTO artist_genres (artist_id, genre_name)
		VALUES ($1, $2)
	`,
	}
)

// linkGenres registers each distinct name and associates it with the entity.
func (s *Store) linkGenres(ctx context.Context, tx *sql.Tx, links genreLinks, id int64, names []string) error {
	for _, name := range distinctGenres(names) {
		if err := s.genres.Ensure(ctx, tx, name); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, links.insert, id, name); err != nil {
			return fmt.Errorf("link %s genre %q: %w", links.entity, name, err)
		}
	}
	return nil
}

// replaceGenres drops every association of the entity and links names afresh.
func (s *Store) replaceGenres(ctx context.Context, tx *sql.Tx, links genreLinks, id int64, names []string) error {
	if _, err := tx.ExecContext(ctx, links.clear, id); err != nil {
		return fmt.Errorf("clear %s genres: %w", links.entity, err)
	}
	return s.linkGenres(ctx, tx, links, id, names)
}

func (s *Store) genresFor(ctx context.Context, links genreLinks, id int64) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, links.list, id)
	if err != nil {
		return nil, fmt.Errorf("select %s genres: %w", links.entity, err)
	}
	defer rows.Close()

	names := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan %s genre: %w", links.entity, err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s genres: %w", links.entity, err)
	}
	return names, nil
}

// distinctGenres trims names, drops blanks and keeps the first occurrence of each.
func distinctGenres(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return out
}
