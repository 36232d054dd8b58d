package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// Store provides persistence backed by Postgres.
type Store struct {
	db     *sql.DB
	genres GenreRegistry
}

// Option customises a Store.
type Option func(*Store)

// WithGenres replaces the registry used to resolve genre names during writes.
func WithGenres(genres GenreRegistry) Option {
	return func(s *Store) {
		s.genres = genres
	}
}

// New sets up a Store using the provided database handle.
func New(db *sql.DB, opts ...Option) *Store {
	s := &Store{db: db, genres: NewGenres()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// withTx runs fn inside a single transaction. The transaction is committed
// when fn returns nil and rolled back otherwise.
func (s *Store) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if tx != nil {
			_ = tx.Rollback()
		}
	}()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	tx = nil

	return nil
}

func isUniqueViolation(err error) bool {
	return hasPgCode(err, pgUniqueViolation)
}

func isForeignKeyViolation(err error) bool {
	return hasPgCode(err, pgForeignKeyViolation)
}

func hasPgCode(err error, code string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == code
	}
	return false
}

// escapeLike quotes LIKE metacharacters so the keyword matches literally.
func escapeLike(keyword string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(keyword)
}

func nullableDescription(seeking bool, description string) sql.NullString {
	description = strings.TrimSpace(description)
	if !seeking || description == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: description, Valid: true}
}
