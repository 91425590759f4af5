// Package cache stores resolved stream records with a freshness window.
package cache

import (
	"context"
	"time"

	"github.com/lightbolt/backend/internal/music/models"
)

// TTL is the freshness window for a stream record. The upstream stream URLs
// inside the records are themselves time-limited, so anything older must be
// re-resolved.
const TTL = time.Hour

// Store is a per-video-ID record store. Get treats read failures and expired
// records as a miss rather than an error; Put overwrites any prior record
// wholesale. Concurrent writers to the same ID race with last-write-wins,
// which is acceptable because records for an ID are idempotent within the TTL.
type Store interface {
	Get(ctx context.Context, videoID string) (*models.StreamInfo, bool)
	Put(ctx context.Context, videoID string, rec *models.StreamInfo) error
}
