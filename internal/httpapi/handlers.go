// Package httpapi is the externally facing request layer.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	musicmodels "github.com/lightbolt/backend/internal/music/models"
	musicservice "github.com/lightbolt/backend/internal/music/service"
	playlistmodels "github.com/lightbolt/backend/internal/playlist/models"
	playlistservice "github.com/lightbolt/backend/internal/playlist/service"
)

// ErrorSink forwards client-reported errors to an event stream. Optional.
type ErrorSink interface {
	ClientError(ctx context.Context, message string)
}

// HandlerConfig wires a Handler's dependencies.
type HandlerConfig struct {
	Music     *musicservice.Resolver
	Playlists *playlistservice.Service
	Errors    ErrorSink // optional
	Upstream  *http.Client
	Logger    zerolog.Logger
}

// Handler carries the endpoint implementations.
type Handler struct {
	music     *musicservice.Resolver
	playlists *playlistservice.Service
	errors    ErrorSink
	upstream  *http.Client
	logger    zerolog.Logger
}

// New builds a Handler. The upstream client defaults to one with connection
// timeouts but no overall deadline, since proxied streams are long-lived.
func New(cfg HandlerConfig) *Handler {
	if cfg.Upstream == nil {
		cfg.Upstream = newUpstreamClient()
	}
	return &Handler{
		music:     cfg.Music,
		playlists: cfg.Playlists,
		errors:    cfg.Errors,
		upstream:  cfg.Upstream,
		logger:    cfg.Logger,
	}
}

// Search handles POST /api/search.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON body", "")
		return
	}
	if req.Query == "" {
		writeError(w, http.StatusBadRequest, "Query is required", "")
		return
	}

	results, err := h.music.Search(r.Context(), req.Query)
	if err != nil {
		h.logger.Error().Err(err).Str("query", req.Query).Msg("search failed")
		writeError(w, http.StatusInternalServerError, "Internal server error", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, results)
}

// StreamInfo handles GET /api/stream/{id}: resolve the stream record and
// return it with the proxy URL in place of the upstream one.
func (h *Handler) StreamInfo(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !musicmodels.ValidVideoID(id) {
		writeError(w, http.StatusBadRequest, "Invalid video ID", "Video ID must be a valid string")
		return
	}

	info, err := h.music.Resolve(r.Context(), id)
	if err != nil {
		if errors.Is(err, musicmodels.ErrInvalidArgument) {
			writeError(w, http.StatusBadRequest, "Invalid video ID", "Video ID must be a valid string")
			return
		}
		h.logger.Error().Err(err).Str("video_id", id).Msg("stream resolution failed")
		writeError(w, http.StatusInternalServerError, "Internal server error", err.Error())
		return
	}
	if info.StreamURL == "" {
		writeError(w, http.StatusNotFound, "Stream not found", "Could not get stream URL for the video")
		return
	}

	out := *info
	out.StreamURL = "/api/proxy/stream/" + id
	writeJSON(w, http.StatusOK, out)
}

// ListPlaylists handles GET /api/playlists.
func (h *Handler) ListPlaylists(w http.ResponseWriter, r *http.Request) {
	playlists, err := h.playlists.List(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("list playlists failed")
		writeError(w, http.StatusInternalServerError, "Internal server error", "")
		return
	}
	writeJSON(w, http.StatusOK, playlists)
}

// CreatePlaylist handles POST /api/playlists.
func (h *Handler) CreatePlaylist(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var req createPlaylistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON body", "")
		return
	}
	p, err := h.playlists.Create(r.Context(), req.Name, req.Description)
	if err != nil {
		if errors.Is(err, playlistmodels.ErrInvalidArgument) {
			writeError(w, http.StatusBadRequest, "Name is required", "")
			return
		}
		h.logger.Error().Err(err).Msg("create playlist failed")
		writeError(w, http.StatusInternalServerError, "Internal server error", "")
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

// GetPlaylist handles GET /api/playlists/{id}.
func (h *Handler) GetPlaylist(w http.ResponseWriter, r *http.Request) {
	p, err := h.playlists.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writePlaylistError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// DeletePlaylist handles DELETE /api/playlists/{id}.
func (h *Handler) DeletePlaylist(w http.ResponseWriter, r *http.Request) {
	if err := h.playlists.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.writePlaylistError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "Playlist deleted"})
}

// AddSong handles POST /api/playlists/{id}/songs.
func (h *Handler) AddSong(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var req addSongRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON body", "")
		return
	}
	if req.SongID == "" {
		writeError(w, http.StatusBadRequest, "Song ID is required", "")
		return
	}

	p, err := h.playlists.AddSong(r.Context(), chi.URLParam(r, "id"), req.SongID)
	if err != nil {
		if errors.Is(err, playlistmodels.ErrDuplicateSong) {
			writeError(w, http.StatusBadRequest, "Song already in playlist", "")
			return
		}
		h.writePlaylistError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// RemoveSong handles DELETE /api/playlists/{playlistId}/songs/{songId}.
func (h *Handler) RemoveSong(w http.ResponseWriter, r *http.Request) {
	p, err := h.playlists.RemoveSong(r.Context(), chi.URLParam(r, "playlistId"), chi.URLParam(r, "songId"))
	if err != nil {
		if errors.Is(err, playlistmodels.ErrSongNotFound) {
			writeError(w, http.StatusNotFound, "Song not found in playlist", "")
			return
		}
		h.writePlaylistError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// ClientError handles POST /api/error: best-effort logging of client-side
// failures, always answered with 200.
func (h *Handler) ClientError(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var req errorReportRequest
	_ = json.NewDecoder(r.Body).Decode(&req)

	h.logger.Error().Str("client_error", req.Error).Msg("client error reported")
	if h.errors != nil {
		h.errors.ClientError(r.Context(), req.Error)
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "Error logged"})
}

// Health handles GET /health.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

func (h *Handler) writePlaylistError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, playlistmodels.ErrNotFound):
		writeError(w, http.StatusNotFound, "Playlist not found", "")
	case errors.Is(err, playlistmodels.ErrInvalidArgument):
		writeError(w, http.StatusBadRequest, "Invalid request", "")
	default:
		h.logger.Error().Err(err).Msg("playlist operation failed")
		writeError(w, http.StatusInternalServerError, "Internal server error", "")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message, details string) {
	writeJSON(w, status, errorResponse{Error: message, Details: details})
}
