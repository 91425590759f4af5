// Package config loads service configuration from the environment.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds every runtime setting for the server. All values come from the
// environment, optionally seeded from a .env file.
type Config struct {
	Addr string // listen address, e.g. ":8000"

	// Extraction tool.
	YTDLPPath      string
	SearchTimeout  time.Duration
	ResolveTimeout time.Duration

	// Storage.
	CacheDir      string
	PlaylistsFile string
	PlaylistsDSN  string // optional: Postgres playlist storage instead of the flat file

	// Optional Redis cache backend for stream records.
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// Optional Kafka playback-event producer.
	KafkaBrokers []string
	KafkaTopic   string

	// HTTP surface.
	CORSOrigins []string
	RateLimit   float64 // requests per second, 0 disables limiting
	RateBurst   int

	LogLevel string
}

// Load reads configuration from the environment. A .env file in the working
// directory is applied first when present.
func Load() Config {
	_ = godotenv.Load()

	cfg := Config{
		Addr:           ":" + getEnv("PORT", "8000"),
		YTDLPPath:      getEnv("YTDLP_PATH", "yt-dlp"),
		SearchTimeout:  getDuration("SEARCH_TIMEOUT", 30*time.Second),
		ResolveTimeout: getDuration("RESOLVE_TIMEOUT", 45*time.Second),
		CacheDir:       getEnv("CACHE_DIR", "cache"),
		PlaylistsFile:  getEnv("PLAYLISTS_FILE", "data/playlists.json"),
		PlaylistsDSN:   os.Getenv("PLAYLISTS_DSN"),
		RedisAddr:      os.Getenv("REDIS_ADDR"),
		RedisPassword:  os.Getenv("REDIS_PASSWORD"),
		RedisDB:        getInt("REDIS_DB", 0),
		KafkaTopic:     getEnv("KAFKA_TOPIC", "playback-events"),
		RateLimit:      getFloat("RATE_LIMIT_RPS", 100),
		RateBurst:      getInt("RATE_LIMIT_BURST", 200),
		LogLevel:       os.Getenv("LOG_LEVEL"),
	}

	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		cfg.KafkaBrokers = splitList(v)
	}
	if v := os.Getenv("CORS_ORIGINS"); v != "" {
		cfg.CORSOrigins = splitList(v)
	} else {
		cfg.CORSOrigins = []string{
			"https://lightboltwebapp.netlify.app",
			"http://localhost:3000",
			"http://localhost:8000",
		}
	}

	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func getDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
