package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// RouterConfig configures the middleware stack around the handlers.
type RouterConfig struct {
	CORSOrigins []string
	RateLimit   float64 // requests per second, 0 disables limiting
	RateBurst   int
	Logger      zerolog.Logger
}

// NewRouter assembles the full HTTP surface.
func NewRouter(h *Handler, cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(RequestID)
	r.Use(RequestLogger(cfg.Logger))
	r.Use(CORS(cfg.CORSOrigins))
	if cfg.RateLimit > 0 {
		r.Use(RateLimit(cfg.RateLimit, cfg.RateBurst))
	}

	r.Get("/health", h.Health)

	r.Route("/api", func(r chi.Router) {
		r.Post("/search", h.Search)
		r.Get("/stream/{id}", h.StreamInfo)
		r.Get("/proxy/stream/{id}", h.ProxyStream)
		r.Post("/error", h.ClientError)

		r.Route("/playlists", func(r chi.Router) {
			r.Get("/", h.ListPlaylists)
			r.Post("/", h.CreatePlaylist)
			r.Get("/{id}", h.GetPlaylist)
			r.Delete("/{id}", h.DeletePlaylist)
			r.Post("/{id}/songs", h.AddSong)
			r.Delete("/{playlistId}/songs/{songId}", h.RemoveSong)
		})
	})

	return r
}
