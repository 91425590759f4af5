// Package service composes the extraction adapter, format selector and cache
// into the stream-resolution flow.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/lightbolt/backend/internal/cache"
	"github.com/lightbolt/backend/internal/music/domain"
	"github.com/lightbolt/backend/internal/music/models"
)

// Extractor is the external-tool adapter the resolver shells out through.
type Extractor interface {
	Search(ctx context.Context, query string) ([]models.SearchResult, error)
	Resolve(ctx context.Context, videoID string) (*models.VideoMetadata, error)
}

// Events receives playback events. Implementations must not block the
// request path.
type Events interface {
	TrackResolved(ctx context.Context, videoID string, info *models.StreamInfo)
}

// NopEvents discards all events.
type NopEvents struct{}

func (NopEvents) TrackResolved(context.Context, string, *models.StreamInfo) {}

// ResolverConfig wires a Resolver's dependencies.
type ResolverConfig struct {
	Extractor Extractor
	Cache     cache.Store
	Events    Events // optional
	Logger    zerolog.Logger
}

// Resolver answers search and stream-resolution requests. Resolution results
// are cached per video ID and concurrent resolutions of the same ID are
// collapsed into a single extraction-tool invocation.
type Resolver struct {
	extractor Extractor
	cache     cache.Store
	events    Events
	group     singleflight.Group
	clock     func() time.Time
	logger    zerolog.Logger
}

// NewResolver validates the config and builds a Resolver.
func NewResolver(cfg ResolverConfig) (*Resolver, error) {
	if cfg.Extractor == nil {
		return nil, fmt.Errorf("extractor is required")
	}
	if cfg.Cache == nil {
		return nil, fmt.Errorf("cache store is required")
	}
	if cfg.Events == nil {
		cfg.Events = NopEvents{}
	}
	return &Resolver{
		extractor: cfg.Extractor,
		cache:     cfg.Cache,
		events:    cfg.Events,
		clock:     time.Now,
		logger:    cfg.Logger,
	}, nil
}

// Search passes a free-text query through to the extraction adapter. Results
// are never cached.
func (r *Resolver) Search(ctx context.Context, query string) ([]models.SearchResult, error) {
	if query == "" {
		return nil, models.ErrInvalidArgument
	}
	return r.extractor.Search(ctx, query)
}

// Resolve returns the stream record for a video ID, from cache when fresh.
// On a miss the extraction tool is invoked once regardless of how many
// requests arrive concurrently for the same ID.
func (r *Resolver) Resolve(ctx context.Context, videoID string) (*models.StreamInfo, error) {
	if !models.ValidVideoID(videoID) {
		return nil, models.ErrInvalidArgument
	}

	if rec, ok := r.cache.Get(ctx, videoID); ok {
		return rec, nil
	}

	v, err, _ := r.group.Do(videoID, func() (any, error) {
		// A concurrent caller may have finished while we queued.
		if rec, ok := r.cache.Get(ctx, videoID); ok {
			return rec, nil
		}
		return r.resolve(ctx, videoID)
	})
	if err != nil {
		return nil, err
	}
	return v.(*models.StreamInfo), nil
}

func (r *Resolver) resolve(ctx context.Context, videoID string) (*models.StreamInfo, error) {
	meta, err := r.extractor.Resolve(ctx, videoID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrResolutionFailed, err)
	}

	sel, err := domain.SelectFormat(meta.Formats)
	if err != nil {
		if errors.Is(err, models.ErrNoSuitableFormat) || errors.Is(err, models.ErrNoStreamURL) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", models.ErrResolutionFailed, err)
	}

	title := meta.Title
	if title == "" {
		title = "Unknown Title"
	}
	artist := meta.Artist
	if artist == "" {
		artist = "Unknown Artist"
	}

	info := &models.StreamInfo{
		StreamURL: sel.URL,
		Title:     title,
		Artist:    artist,
		Duration:  meta.Duration,
		Thumbnail: meta.Thumbnail,
		Format:    sel.Format,
		Timestamp: r.clock().UnixMilli(),
	}

	if err := r.cache.Put(ctx, videoID, info); err != nil {
		return nil, fmt.Errorf("cache stream record: %w", err)
	}

	r.logger.Info().
		Str("video_id", videoID).
		Str("ext", info.Format.Ext).
		Int("abr", info.Format.ABR).
		Msg("stream resolved")

	r.events.TrackResolved(ctx, videoID, info)

	return info, nil
}
