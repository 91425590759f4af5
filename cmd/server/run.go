package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/lightbolt/backend/internal/cache"
	"github.com/lightbolt/backend/internal/config"
	"github.com/lightbolt/backend/internal/httpapi"
	"github.com/lightbolt/backend/internal/log"
	"github.com/lightbolt/backend/internal/music/kafka"
	musicservice "github.com/lightbolt/backend/internal/music/service"
	"github.com/lightbolt/backend/internal/music/ytdlp"
	"github.com/lightbolt/backend/internal/playlist/repository"
	playlistservice "github.com/lightbolt/backend/internal/playlist/service"
	"github.com/lightbolt/backend/internal/storage/postgres"
)

func run(ctx context.Context) error {
	cfg := config.Load()
	log.Configure(log.Config{Level: cfg.LogLevel})
	logger := log.WithComponent("server")

	// Stream-record cache: Redis when configured, per-ID files otherwise.
	var store cache.Store
	if cfg.RedisAddr != "" {
		redisStore, err := cache.NewRedisStore(cache.RedisConfig{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		}, log.WithComponent("cache"))
		if err != nil {
			return fmt.Errorf("redis cache: %w", err)
		}
		defer redisStore.Close()
		store = redisStore
	} else {
		fileStore, err := cache.NewFileStore(cfg.CacheDir, log.WithComponent("cache"))
		if err != nil {
			return fmt.Errorf("file cache: %w", err)
		}
		store = fileStore
	}

	extractor := ytdlp.New(ytdlp.Config{
		Path:           cfg.YTDLPPath,
		SearchTimeout:  cfg.SearchTimeout,
		ResolveTimeout: cfg.ResolveTimeout,
		Logger:         log.WithComponent("ytdlp"),
	})

	// Optional playback-event producer.
	var events musicservice.Events = musicservice.NopEvents{}
	var errorSink httpapi.ErrorSink
	if len(cfg.KafkaBrokers) > 0 {
		producer, err := kafka.NewProducer(kafka.ProducerConfig{
			Brokers: cfg.KafkaBrokers,
			Topic:   cfg.KafkaTopic,
			Logger:  log.WithComponent("kafka"),
		})
		if err != nil {
			return fmt.Errorf("kafka producer: %w", err)
		}
		defer producer.Close()
		sink := kafka.NewEventSink(producer, log.WithComponent("events"))
		events = sink
		errorSink = sink
	}

	resolver, err := musicservice.NewResolver(musicservice.ResolverConfig{
		Extractor: extractor,
		Cache:     store,
		Events:    events,
		Logger:    log.WithComponent("resolver"),
	})
	if err != nil {
		return fmt.Errorf("resolver: %w", err)
	}

	// Playlist storage: Postgres when configured, the flat file otherwise.
	var playlistRepo repository.PlaylistRepository
	if cfg.PlaylistsDSN != "" {
		db, err := postgres.Connect(ctx, cfg.PlaylistsDSN)
		if err != nil {
			return fmt.Errorf("playlist db: %w", err)
		}
		defer db.Close()
		if err := postgres.EnsureSchema(ctx, db); err != nil {
			return err
		}
		playlistRepo = postgres.NewPlaylistRepo(db)
	} else {
		fileRepo, err := repository.NewFileRepository(cfg.PlaylistsFile)
		if err != nil {
			return fmt.Errorf("playlist file: %w", err)
		}
		playlistRepo = fileRepo
	}

	handler := httpapi.New(httpapi.HandlerConfig{
		Music:     resolver,
		Playlists: playlistservice.New(playlistRepo),
		Errors:    errorSink,
		Logger:    log.WithComponent("http"),
	})
	router := httpapi.NewRouter(handler, httpapi.RouterConfig{
		CORSOrigins: cfg.CORSOrigins,
		RateLimit:   cfg.RateLimit,
		RateBurst:   cfg.RateBurst,
		Logger:      log.WithComponent("http"),
	})

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", cfg.Addr).Msg("listening")
		if err := srv.ListenAndServe(); err != nil {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("listen and serve: %w", err)
	}
}
