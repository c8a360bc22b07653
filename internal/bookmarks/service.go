// Package bookmarks persists the user's saved media items.
package bookmarks

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/hassaancode/CineSage/internal/media"
)

// ErrNotFound means no bookmark exists for the given identity key.
var ErrNotFound = errors.New("bookmark not found")

// Bookmark is a saved media item.
type Bookmark struct {
	media.Item
	CreatedAt time.Time `json:"createdAt"`
}

// Service provides bookmark persistence.
type Service struct {
	db     *sql.DB
	logger zerolog.Logger
}

// NewService creates a new bookmarks service.
func NewService(db *sql.DB, logger zerolog.Logger) *Service {
	return &Service{
		db:     db,
		logger: logger.With().Str("component", "bookmarks").Logger(),
	}
}

// Add saves a media item. Saving an already-bookmarked item refreshes its
// stored snapshot and is not an error.
func (s *Service) Add(ctx context.Context, item media.Item) (*Bookmark, error) {
	genreIDs, err := json.Marshal(item.GenreIDs)
	if err != nil {
		return nil, err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO bookmarks (media_id, media_type, title, overview, poster_path, release_date, vote_average, popularity, genre_ids, reason)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (media_id, media_type) DO UPDATE SET
			title = excluded.title,
			overview = excluded.overview,
			poster_path = excluded.poster_path,
			release_date = excluded.release_date,
			vote_average = excluded.vote_average,
			popularity = excluded.popularity,
			genre_ids = excluded.genre_ids,
			reason = excluded.reason`,
		item.ID, string(item.MediaType), item.Title, item.Overview, item.PosterPath,
		item.ReleaseDate, item.VoteAverage, item.Popularity, string(genreIDs), item.Reason,
	)
	if err != nil {
		return nil, err
	}

	s.logger.Debug().
		Int("mediaId", item.ID).
		Str("mediaType", string(item.MediaType)).
		Str("title", item.Title).
		Msg("Bookmark saved")

	return s.Get(ctx, item.Key())
}

// Get returns the bookmark for an identity key.
func (s *Service) Get(ctx context.Context, key media.Key) (*Bookmark, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT media_id, media_type, title, overview, poster_path, release_date, vote_average, popularity, genre_ids, reason, created_at
		FROM bookmarks
		WHERE media_id = ? AND media_type = ?`,
		key.ID, string(key.MediaType),
	)

	bookmark, err := scanBookmark(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return bookmark, nil
}

// List returns all bookmarks, most recently saved first.
func (s *Service) List(ctx context.Context) ([]Bookmark, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT media_id, media_type, title, overview, poster_path, release_date, vote_average, popularity, genre_ids, reason, created_at
		FROM bookmarks
		ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bookmarks := make([]Bookmark, 0)
	for rows.Next() {
		bookmark, err := scanBookmark(rows)
		if err != nil {
			return nil, err
		}
		bookmarks = append(bookmarks, *bookmark)
	}
	return bookmarks, rows.Err()
}

// Delete removes the bookmark for an identity key.
func (s *Service) Delete(ctx context.Context, key media.Key) error {
	result, err := s.db.ExecContext(ctx,
		`DELETE FROM bookmarks WHERE media_id = ? AND media_type = ?`,
		key.ID, string(key.MediaType),
	)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}

	s.logger.Debug().
		Int("mediaId", key.ID).
		Str("mediaType", string(key.MediaType)).
		Msg("Bookmark deleted")

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBookmark(row rowScanner) (*Bookmark, error) {
	var (
		bookmark  Bookmark
		mediaType string
		genreIDs  string
	)

	err := row.Scan(
		&bookmark.ID, &mediaType, &bookmark.Title, &bookmark.Overview,
		&bookmark.PosterPath, &bookmark.ReleaseDate, &bookmark.VoteAverage,
		&bookmark.Popularity, &genreIDs, &bookmark.Reason, &bookmark.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	bookmark.MediaType = media.Type(mediaType)
	if err := json.Unmarshal([]byte(genreIDs), &bookmark.GenreIDs); err != nil {
		bookmark.GenreIDs = nil
	}

	return &bookmark, nil
}
