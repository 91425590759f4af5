package httpapi

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	musicmodels "github.com/lightbolt/backend/internal/music/models"
	musicservice "github.com/lightbolt/backend/internal/music/service"
	"github.com/lightbolt/backend/internal/playlist/repository"
	playlistservice "github.com/lightbolt/backend/internal/playlist/service"
)

// extractorStub is an instrumentable Extractor double.
type extractorStub struct {
	searchFn     func(ctx context.Context, query string) ([]musicmodels.SearchResult, error)
	resolveFn    func(ctx context.Context, videoID string) (*musicmodels.VideoMetadata, error)
	resolveCalls atomic.Int32
}

func (s *extractorStub) Search(ctx context.Context, query string) ([]musicmodels.SearchResult, error) {
	return s.searchFn(ctx, query)
}

func (s *extractorStub) Resolve(ctx context.Context, videoID string) (*musicmodels.VideoMetadata, error) {
	s.resolveCalls.Add(1)
	return s.resolveFn(ctx, videoID)
}

// memoryStore is a map-backed cache.Store double.
type memoryStore struct {
	mu   sync.Mutex
	data map[string]*musicmodels.StreamInfo
}

func newMemoryStore() *memoryStore {
	return &memoryStore{data: make(map[string]*musicmodels.StreamInfo)}
}

func (s *memoryStore) Get(ctx context.Context, videoID string) (*musicmodels.StreamInfo, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.data[videoID]
	return rec, ok
}

func (s *memoryStore) Put(ctx context.Context, videoID string, rec *musicmodels.StreamInfo) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[videoID] = rec
	return nil
}

// apiServer spins up the full router over stubbed dependencies.
func apiServer(t *testing.T, extractor *extractorStub, store *memoryStore) *httptest.Server {
	t.Helper()

	resolver, err := musicservice.NewResolver(musicservice.ResolverConfig{
		Extractor: extractor,
		Cache:     store,
		Logger:    zerolog.Nop(),
	})
	require.NoError(t, err)

	repo, err := repository.NewFileRepository(filepath.Join(t.TempDir(), "playlists.json"))
	require.NoError(t, err)

	h := New(HandlerConfig{
		Music:     resolver,
		Playlists: playlistservice.New(repo),
		Logger:    zerolog.Nop(),
	})
	router := NewRouter(h, RouterConfig{Logger: zerolog.Nop()})

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

func noSearch(ctx context.Context, query string) ([]musicmodels.SearchResult, error) {
	panic("search not expected")
}

func noResolve(ctx context.Context, videoID string) (*musicmodels.VideoMetadata, error) {
	panic("resolve not expected")
}

func doJSON(t *testing.T, method, url, body string) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decodeBody[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}
