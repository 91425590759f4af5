package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/lightbolt/backend/internal/playlist/models"
)

// FileRepository stores all playlists as one pretty-printed JSON array file.
// Every mutation rewrites the whole file under a process-level lock.
type FileRepository struct {
	path string
	mu   sync.Mutex
}

var _ PlaylistRepository = (*FileRepository)(nil)

// NewFileRepository initialises the backing file with an empty array when it
// does not exist yet.
func NewFileRepository(path string) (*FileRepository, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create playlists dir: %w", err)
		}
		if err := os.WriteFile(path, []byte("[]"), 0o644); err != nil {
			return nil, fmt.Errorf("init playlists file: %w", err)
		}
	}
	return &FileRepository{path: path}, nil
}

func (r *FileRepository) load() ([]models.Playlist, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		return nil, fmt.Errorf("read playlists file: %w", err)
	}
	var playlists []models.Playlist
	if err := json.Unmarshal(data, &playlists); err != nil {
		return nil, fmt.Errorf("parse playlists file: %w", err)
	}
	return playlists, nil
}

func (r *FileRepository) save(playlists []models.Playlist) error {
	data, err := json.MarshalIndent(playlists, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal playlists: %w", err)
	}
	if err := os.WriteFile(r.path, data, 0o644); err != nil {
		return fmt.Errorf("write playlists file: %w", err)
	}
	return nil
}

func (r *FileRepository) List(ctx context.Context) ([]models.Playlist, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	playlists, err := r.load()
	if err != nil {
		return nil, err
	}
	if playlists == nil {
		playlists = []models.Playlist{}
	}
	return playlists, nil
}

func (r *FileRepository) Get(ctx context.Context, id string) (*models.Playlist, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	playlists, err := r.load()
	if err != nil {
		return nil, err
	}
	for i := range playlists {
		if playlists[i].ID == id {
			cp := playlists[i]
			return &cp, nil
		}
	}
	return nil, models.ErrNotFound
}

func (r *FileRepository) Create(ctx context.Context, p *models.Playlist) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	playlists, err := r.load()
	if err != nil {
		return err
	}
	playlists = append(playlists, *p)
	return r.save(playlists)
}

func (r *FileRepository) Update(ctx context.Context, p *models.Playlist) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	playlists, err := r.load()
	if err != nil {
		return err
	}
	for i := range playlists {
		if playlists[i].ID == p.ID {
			playlists[i] = *p
			return r.save(playlists)
		}
	}
	return models.ErrNotFound
}

func (r *FileRepository) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	playlists, err := r.load()
	if err != nil {
		return err
	}
	for i := range playlists {
		if playlists[i].ID == id {
			playlists = append(playlists[:i], playlists[i+1:]...)
			return r.save(playlists)
		}
	}
	return models.ErrNotFound
}
