package repository

import (
	"context"

	"github.com/lightbolt/backend/internal/playlist/models"
)

// PlaylistRepository persists playlists. Update overwrites the stored
// playlist with the same ID wholesale.
type PlaylistRepository interface {
	List(ctx context.Context) ([]models.Playlist, error)
	Get(ctx context.Context, id string) (*models.Playlist, error)
	Create(ctx context.Context, p *models.Playlist) error
	Update(ctx context.Context, p *models.Playlist) error
	Delete(ctx context.Context, id string) error
}
