package ytdlp

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/lightbolt/backend/internal/music/models"
)

func newTestClient(runner CommandRunner) *Client {
	return New(Config{Runner: runner})
}

func TestSearch_ParsesJSONLines(t *testing.T) {
	ctx := context.Background()
	runner := new(RunnerMock)
	out := `{"id":"abc123def45","title":"First","uploader":"Artist One","duration":210,"thumbnail":"https://i.example/1.jpg"}
{"id":"xyz987uvw65","title":"Second","channel":"Channel Two","duration":95.5,"thumbnail":"https://i.example/2.jpg"}
`
	runner.On("Run", mock.Anything, "yt-dlp",
		[]string{"ytsearch10:test query", "-j", "--flat-playlist", "--no-warnings"}).
		Return([]byte(out), nil).Once()

	results, err := newTestClient(runner).Search(ctx, "test query")
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, models.SearchResult{
		ID:       "abc123def45",
		Title:    "First",
		Artist:   "Artist One",
		Duration: 210,
		AlbumArt: "https://i.example/1.jpg",
	}, results[0])
	// Channel is the artist fallback when uploader is absent.
	assert.Equal(t, "Channel Two", results[1].Artist)
	runner.AssertExpectations(t)
}

func TestSearch_MalformedLineFailsWholeCall(t *testing.T) {
	ctx := context.Background()
	runner := new(RunnerMock)
	out := `{"id":"abc123def45","title":"Fine"}
{broken json line
{"id":"xyz987uvw65","title":"Never seen"}
`
	runner.On("Run", mock.Anything, mock.Anything, mock.Anything).
		Return([]byte(out), nil).Once()

	results, err := newTestClient(runner).Search(ctx, "anything")
	require.Error(t, err)
	assert.Nil(t, results)
}

func TestSearch_EmptyQuery(t *testing.T) {
	runner := new(RunnerMock)
	_, err := newTestClient(runner).Search(context.Background(), "")
	require.ErrorIs(t, err, models.ErrInvalidArgument)
	runner.AssertNotCalled(t, "Run", mock.Anything, mock.Anything, mock.Anything)
}

func TestSearch_SubprocessErrorSurfaces(t *testing.T) {
	runner := new(RunnerMock)
	runner.On("Run", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, errors.New("yt-dlp: exit status 1: ERROR: unable to search")).Once()

	_, err := newTestClient(runner).Search(context.Background(), "query")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unable to search")
	// A single failed invocation is not retried.
	runner.AssertNumberOfCalls(t, "Run", 1)
}

func TestResolve_ParsesMetadata(t *testing.T) {
	ctx := context.Background()
	runner := new(RunnerMock)
	out := `{
		"title": "A Song",
		"uploader": "Someone",
		"duration": 183,
		"thumbnail": "https://i.example/t.jpg",
		"formats": [
			{"ext":"m4a","acodec":"aac","vcodec":"none","abr":127.9,"url":"https://cdn.example/a"},
			{"ext":"mp4","acodec":"aac","vcodec":"avc1","abr":0,"url":"https://cdn.example/v"}
		]
	}`
	runner.On("Run", mock.Anything, "yt-dlp",
		[]string{"https://youtube.com/watch?v=dQw4w9WgXcQ", "-J", "--no-warnings", "--skip-download"}).
		Return([]byte(out), nil).Once()

	meta, err := newTestClient(runner).Resolve(ctx, "dQw4w9WgXcQ")
	require.NoError(t, err)
	assert.Equal(t, "A Song", meta.Title)
	assert.Equal(t, "Someone", meta.Artist)
	assert.Equal(t, float64(183), meta.Duration)
	// The format list comes back unfiltered; selection happens elsewhere.
	require.Len(t, meta.Formats, 2)
	assert.Equal(t, "avc1", meta.Formats[1].VCodec)
	runner.AssertExpectations(t)
}

func TestResolve_EmptyOutput(t *testing.T) {
	runner := new(RunnerMock)
	runner.On("Run", mock.Anything, mock.Anything, mock.Anything).
		Return([]byte("  \n"), nil).Once()

	_, err := newTestClient(runner).Resolve(context.Background(), "dQw4w9WgXcQ")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no video data")
}

func TestResolve_UnparsableOutput(t *testing.T) {
	runner := new(RunnerMock)
	runner.On("Run", mock.Anything, mock.Anything, mock.Anything).
		Return([]byte("ERROR: not json"), nil).Once()

	_, err := newTestClient(runner).Resolve(context.Background(), "dQw4w9WgXcQ")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse")
}

func TestSetDefaults(t *testing.T) {
	cfg := Config{}
	setDefaults(&cfg)
	assert.Equal(t, "yt-dlp", cfg.Path)
	assert.NotZero(t, cfg.SearchTimeout)
	assert.NotZero(t, cfg.ResolveTimeout)
	assert.NotNil(t, cfg.Runner)
}
