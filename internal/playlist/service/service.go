// Package service owns playlist invariants: required names, unique songs,
// time-derived IDs.
package service

import (
	"context"
	"strconv"
	"time"

	"github.com/lightbolt/backend/internal/playlist/models"
	"github.com/lightbolt/backend/internal/playlist/repository"
)

// Service implements playlist CRUD on top of a repository.
type Service struct {
	repo  repository.PlaylistRepository
	idGen func() string
}

// New builds a Service with millisecond-epoch ID generation.
func New(repo repository.PlaylistRepository) *Service {
	return &Service{
		repo: repo,
		idGen: func() string {
			return strconv.FormatInt(time.Now().UnixMilli(), 10)
		},
	}
}

// List returns every stored playlist.
func (s *Service) List(ctx context.Context) ([]models.Playlist, error) {
	return s.repo.List(ctx)
}

// Get returns one playlist by ID.
func (s *Service) Get(ctx context.Context, id string) (*models.Playlist, error) {
	if id == "" {
		return nil, models.ErrInvalidArgument
	}
	return s.repo.Get(ctx, id)
}

// Create stores a new empty playlist. The name is required.
func (s *Service) Create(ctx context.Context, name, description string) (*models.Playlist, error) {
	if name == "" {
		return nil, models.ErrInvalidArgument
	}
	p := &models.Playlist{
		ID:          s.idGen(),
		Name:        name,
		Description: description,
		Songs:       models.SongList{},
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Delete removes a playlist by ID.
func (s *Service) Delete(ctx context.Context, id string) error {
	if id == "" {
		return models.ErrInvalidArgument
	}
	return s.repo.Delete(ctx, id)
}

// AddSong appends a song ID to the playlist. Duplicates are rejected.
func (s *Service) AddSong(ctx context.Context, playlistID, songID string) (*models.Playlist, error) {
	if songID == "" {
		return nil, models.ErrInvalidArgument
	}
	p, err := s.repo.Get(ctx, playlistID)
	if err != nil {
		return nil, err
	}
	if p.Songs.Contains(songID) {
		return nil, models.ErrDuplicateSong
	}
	p.Songs = append(p.Songs, songID)
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// RemoveSong deletes a song ID from the playlist, keeping the order of the
// remaining songs.
func (s *Service) RemoveSong(ctx context.Context, playlistID, songID string) (*models.Playlist, error) {
	p, err := s.repo.Get(ctx, playlistID)
	if err != nil {
		return nil, err
	}
	idx := -1
	for i, id := range p.Songs {
		if id == songID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil, models.ErrSongNotFound
	}
	p.Songs = append(p.Songs[:idx], p.Songs[idx+1:]...)
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}
