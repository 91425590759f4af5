package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/lightbolt/backend/internal/music/models"
)

// FileStore keeps one <id>.json file per video under a base directory.
// Staleness is discovered lazily at read time; stale files are never cleaned
// up actively.
type FileStore struct {
	dir    string
	ttl    time.Duration
	clock  func() time.Time
	logger zerolog.Logger
}

var _ Store = (*FileStore)(nil)

// NewFileStore creates the base directory if needed and returns a store with
// the default TTL.
func NewFileStore(dir string, logger zerolog.Logger) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create cache dir: %w", err)
	}
	return &FileStore{
		dir:    dir,
		ttl:    TTL,
		clock:  time.Now,
		logger: logger,
	}, nil
}

func (s *FileStore) path(videoID string) (string, bool) {
	// A video ID must not be able to escape the cache directory.
	if videoID == "" || filepath.Base(videoID) != videoID {
		return "", false
	}
	return filepath.Join(s.dir, videoID+".json"), true
}

// Get reads a record from disk. Missing files, unparsable content and expired
// records all degrade to a miss.
func (s *FileStore) Get(ctx context.Context, videoID string) (*models.StreamInfo, bool) {
	if err := ctx.Err(); err != nil {
		return nil, false
	}
	path, ok := s.path(videoID)
	if !ok {
		return nil, false
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, false
	}
	var rec models.StreamInfo
	if err := json.Unmarshal(data, &rec); err != nil {
		s.logger.Warn().Err(err).Str("video_id", videoID).Msg("unreadable cache record")
		return nil, false
	}
	if rec.Age(s.clock()) >= s.ttl {
		return nil, false
	}
	return &rec, true
}

// Put overwrites the record for the given video ID.
func (s *FileStore) Put(ctx context.Context, videoID string, rec *models.StreamInfo) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	path, ok := s.path(videoID)
	if !ok {
		return models.ErrInvalidArgument
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal cache record: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write cache record: %w", err)
	}
	return nil
}
