package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/lightbolt/backend/internal/playlist/models"
	"github.com/lightbolt/backend/internal/playlist/repository"
)

// PlaylistRepo is the Postgres playlist repository, an alternative to the
// flat-file default. Songs are kept as a JSONB array on the playlist row so
// updates stay wholesale, matching the file store's semantics.
type PlaylistRepo struct {
	db *sqlx.DB
}

var _ repository.PlaylistRepository = (*PlaylistRepo)(nil)

func NewPlaylistRepo(db *sqlx.DB) *PlaylistRepo {
	return &PlaylistRepo{db: db}
}

func (r *PlaylistRepo) List(ctx context.Context) ([]models.Playlist, error) {
	const q = `
		SELECT id, name, description, songs
		FROM playlists
		ORDER BY id
	`
	playlists := []models.Playlist{}
	if err := r.db.SelectContext(ctx, &playlists, q); err != nil {
		return nil, fmt.Errorf("playlist list: %w", err)
	}
	return playlists, nil
}

func (r *PlaylistRepo) Get(ctx context.Context, id string) (*models.Playlist, error) {
	const q = `
		SELECT id, name, description, songs
		FROM playlists
		WHERE id = $1
	`
	var p models.Playlist
	if err := r.db.GetContext(ctx, &p, q, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("playlist get: %w", err)
	}
	return &p, nil
}

func (r *PlaylistRepo) Create(ctx context.Context, p *models.Playlist) error {
	const q = `
		INSERT INTO playlists (id, name, description, songs)
		VALUES ($1, $2, $3, $4)
	`
	_, err := r.db.ExecContext(ctx, q, p.ID, p.Name, p.Description, p.Songs)
	if err != nil {
		return fmt.Errorf("playlist create: %w", err)
	}
	return nil
}

func (r *PlaylistRepo) Update(ctx context.Context, p *models.Playlist) error {
	const q = `
		UPDATE playlists
		SET name = $2, description = $3, songs = $4
		WHERE id = $1
	`
	res, err := r.db.ExecContext(ctx, q, p.ID, p.Name, p.Description, p.Songs)
	if err != nil {
		return fmt.Errorf("playlist update: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (r *PlaylistRepo) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM playlists WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return fmt.Errorf("playlist delete: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return models.ErrNotFound
	}
	return nil
}
