// Package ytdlp adapts the external yt-dlp command-line tool.
package ytdlp

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/lightbolt/backend/internal/music/models"
)

const searchLimit = 10

// Config configures a Client.
type Config struct {
	Path           string        // yt-dlp binary, defaults to "yt-dlp" on PATH
	SearchTimeout  time.Duration // defaults to 30s
	ResolveTimeout time.Duration // defaults to 45s
	Runner         CommandRunner // defaults to a real subprocess runner
	Logger         zerolog.Logger
}

func setDefaults(cfg *Config) {
	if cfg.Path == "" {
		cfg.Path = "yt-dlp"
	}
	if cfg.SearchTimeout <= 0 {
		cfg.SearchTimeout = 30 * time.Second
	}
	if cfg.ResolveTimeout <= 0 {
		cfg.ResolveTimeout = 45 * time.Second
	}
	if cfg.Runner == nil {
		cfg.Runner = execRunner{}
	}
}

// Client invokes yt-dlp for search and format resolution. A single failed
// invocation surfaces as an error; nothing is retried here.
type Client struct {
	config Config
}

// New builds a Client. Zero-value config fields fall back to defaults.
func New(cfg Config) *Client {
	setDefaults(&cfg)
	return &Client{config: cfg}
}

// searchLine is one JSON object of yt-dlp's flat-playlist search output.
type searchLine struct {
	ID        string  `json:"id"`
	Title     string  `json:"title"`
	Uploader  string  `json:"uploader"`
	Channel   string  `json:"channel"`
	Duration  float64 `json:"duration"`
	Thumbnail string  `json:"thumbnail"`
}

// videoInfo is the full metadata document yt-dlp emits for a single video.
type videoInfo struct {
	Title     string      `json:"title"`
	Uploader  string      `json:"uploader"`
	Channel   string      `json:"channel"`
	Duration  float64     `json:"duration"`
	Thumbnail string      `json:"thumbnail"`
	Formats   []rawFormat `json:"formats"`
}

type rawFormat struct {
	Ext    string  `json:"ext"`
	ACodec string  `json:"acodec"`
	VCodec string  `json:"vcodec"`
	ABR    float64 `json:"abr"`
	URL    string  `json:"url"`
}

// Search runs a free-text search and returns up to 10 results. The query is
// passed as a discrete argument, never through a shell. A single malformed
// output line fails the whole call; there is no partial-result tolerance.
func (c *Client) Search(ctx context.Context, query string) ([]models.SearchResult, error) {
	if query == "" {
		return nil, models.ErrInvalidArgument
	}

	ctx, cancel := context.WithTimeout(ctx, c.config.SearchTimeout)
	defer cancel()

	started := time.Now()
	out, err := c.config.Runner.Run(ctx, c.config.Path,
		fmt.Sprintf("ytsearch%d:%s", searchLimit, query),
		"-j", "--flat-playlist", "--no-warnings",
	)
	if err != nil {
		return nil, fmt.Errorf("yt-dlp search: %w", err)
	}

	results := make([]models.SearchResult, 0, searchLimit)
	scanner := bufio.NewScanner(bytes.NewReader(out))
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var item searchLine
		if err := json.Unmarshal([]byte(line), &item); err != nil {
			return nil, fmt.Errorf("yt-dlp search output parse: %w", err)
		}
		artist := item.Uploader
		if artist == "" {
			artist = item.Channel
		}
		results = append(results, models.SearchResult{
			ID:       item.ID,
			Title:    item.Title,
			Artist:   artist,
			Duration: item.Duration,
			AlbumArt: item.Thumbnail,
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("yt-dlp search output scan: %w", err)
	}

	c.config.Logger.Debug().
		Str("query", query).
		Int("results", len(results)).
		Dur("elapsed", time.Since(started)).
		Msg("search completed")

	return results, nil
}

// Resolve fetches the full metadata document for a video ID from its
// canonical watch URL. The returned format list is unfiltered; picking one is
// the format selector's job.
func (c *Client) Resolve(ctx context.Context, videoID string) (*models.VideoMetadata, error) {
	if videoID == "" {
		return nil, models.ErrInvalidArgument
	}

	ctx, cancel := context.WithTimeout(ctx, c.config.ResolveTimeout)
	defer cancel()

	watchURL := "https://youtube.com/watch?v=" + videoID
	out, err := c.config.Runner.Run(ctx, c.config.Path,
		watchURL, "-J", "--no-warnings", "--skip-download",
	)
	if err != nil {
		return nil, fmt.Errorf("yt-dlp resolve: %w", err)
	}
	if len(bytes.TrimSpace(out)) == 0 {
		return nil, fmt.Errorf("no video data received from yt-dlp for %s", videoID)
	}

	var info videoInfo
	if err := json.Unmarshal(out, &info); err != nil {
		return nil, fmt.Errorf("yt-dlp metadata parse: %w", err)
	}

	artist := info.Uploader
	if artist == "" {
		artist = info.Channel
	}

	meta := &models.VideoMetadata{
		Title:     info.Title,
		Artist:    artist,
		Duration:  info.Duration,
		Thumbnail: info.Thumbnail,
		Formats:   make([]models.CandidateFormat, 0, len(info.Formats)),
	}
	for _, f := range info.Formats {
		meta.Formats = append(meta.Formats, models.CandidateFormat{
			Ext:    f.Ext,
			ACodec: f.ACodec,
			VCodec: f.VCodec,
			ABR:    f.ABR,
			URL:    f.URL,
		})
	}
	return meta, nil
}
