package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/lightbolt/backend/internal/music/models"
)

// RedisConfig holds Redis connection settings.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// RedisStore keeps stream records as JSON blobs with a server-side TTL.
// Expiry is enforced both by Redis and by the record timestamp, so a record
// written by an older instance with a different TTL still ages out correctly.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
	clock  func() time.Time
	logger zerolog.Logger
}

var _ Store = (*RedisStore)(nil)

// NewRedisStore connects to Redis and verifies the connection.
func NewRedisStore(cfg RedisConfig, logger zerolog.Logger) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis connect: %w", err)
	}

	logger.Info().Str("addr", cfg.Addr).Int("db", cfg.DB).Msg("connected to redis cache")

	return &RedisStore{
		client: client,
		ttl:    TTL,
		clock:  time.Now,
		logger: logger,
	}, nil
}

func (s *RedisStore) key(videoID string) string {
	return "stream:" + videoID
}

// Get reads a record from Redis. Connection errors and unparsable blobs
// degrade to a miss.
func (s *RedisStore) Get(ctx context.Context, videoID string) (*models.StreamInfo, bool) {
	val, err := s.client.Get(ctx, s.key(videoID)).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		s.logger.Warn().Err(err).Str("video_id", videoID).Msg("redis get failed")
		return nil, false
	}
	var rec models.StreamInfo
	if err := json.Unmarshal(val, &rec); err != nil {
		s.logger.Warn().Err(err).Str("video_id", videoID).Msg("unreadable cache record")
		return nil, false
	}
	if rec.Age(s.clock()) >= s.ttl {
		return nil, false
	}
	return &rec, true
}

// Put overwrites the record for the given video ID.
func (s *RedisStore) Put(ctx context.Context, videoID string, rec *models.StreamInfo) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal cache record: %w", err)
	}
	if err := s.client.Set(ctx, s.key(videoID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// Close releases the underlying Redis connection.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
