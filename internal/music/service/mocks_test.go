package service

import (
	"context"
	"sync"

	"github.com/stretchr/testify/mock"

	"github.com/lightbolt/backend/internal/music/models"
)

type ExtractorMock struct {
	mock.Mock
}

func (m *ExtractorMock) Search(ctx context.Context, query string) ([]models.SearchResult, error) {
	args := m.Called(ctx, query)
	if v := args.Get(0); v != nil {
		return v.([]models.SearchResult), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ExtractorMock) Resolve(ctx context.Context, videoID string) (*models.VideoMetadata, error) {
	args := m.Called(ctx, videoID)
	if v := args.Get(0); v != nil {
		return v.(*models.VideoMetadata), args.Error(1)
	}
	return nil, args.Error(1)
}

// memoryStore is a map-backed cache.Store for tests.
type memoryStore struct {
	mu   sync.Mutex
	data map[string]*models.StreamInfo
}

func newMemoryStore() *memoryStore {
	return &memoryStore{data: make(map[string]*models.StreamInfo)}
}

func (s *memoryStore) Get(ctx context.Context, videoID string) (*models.StreamInfo, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.data[videoID]
	return rec, ok
}

func (s *memoryStore) Put(ctx context.Context, videoID string, rec *models.StreamInfo) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[videoID] = rec
	return nil
}
