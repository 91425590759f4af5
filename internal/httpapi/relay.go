package httpapi

import (
	"io"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/lightbolt/backend/internal/music/domain"
	"github.com/lightbolt/backend/internal/music/models"
)

// Upstream platforms block requests without a realistic browser signature.
const browserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/93.0.4577.63 Safari/537.36"

// newUpstreamClient builds the client used to fetch resolved stream URLs.
// Connection setup is bounded but there is no overall deadline: the body is
// piped to the caller for as long as playback continues.
func newUpstreamClient() *http.Client {
	return &http.Client{
		Transport: &http.Transport{
			DialContext: (&net.Dialer{
				Timeout:   10 * time.Second,
				KeepAlive: 30 * time.Second,
			}).DialContext,
			TLSHandshakeTimeout:   10 * time.Second,
			ResponseHeaderTimeout: 30 * time.Second,
			MaxIdleConns:          10,
			IdleConnTimeout:       90 * time.Second,
		},
	}
}

// ProxyStream handles GET /api/proxy/stream/{id}: resolve the stream record
// (cache-checked) and pipe the upstream bytes to the caller, forwarding range
// semantics in both directions.
func (h *Handler) ProxyStream(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !models.ValidVideoID(id) {
		writeError(w, http.StatusBadRequest, "Invalid video ID", "Video ID must be a valid string")
		return
	}

	info, err := h.music.Resolve(r.Context(), id)
	if err != nil {
		h.logger.Error().Err(err).Str("video_id", id).Msg("stream resolution failed")
		writeError(w, http.StatusInternalServerError, "Internal server error", err.Error())
		return
	}
	if info.StreamURL == "" {
		writeError(w, http.StatusNotFound, "Stream not found", "Could not get stream URL for the video")
		return
	}

	req, err := http.NewRequestWithContext(r.Context(), http.MethodGet, info.StreamURL, nil)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Internal server error", err.Error())
		return
	}
	req.Header.Set("User-Agent", browserUserAgent)

	rangeHeader := r.Header.Get("Range")
	if rangeHeader != "" {
		req.Header.Set("Range", rangeHeader)
	}

	resp, err := h.upstream.Do(req)
	if err != nil {
		h.logger.Error().Err(err).Str("video_id", id).Msg("upstream fetch failed")
		writeError(w, http.StatusBadGateway, "Stream fetch failed", err.Error())
		return
	}
	defer resp.Body.Close()

	if rangeHeader == "" && (resp.StatusCode < 200 || resp.StatusCode >= 300) {
		h.logger.Error().
			Int("upstream_status", resp.StatusCode).
			Str("video_id", id).
			Msg("upstream returned non-success status")
		writeError(w, http.StatusBadGateway, "Stream fetch failed",
			"stream fetch failed with status "+resp.Status)
		return
	}

	w.Header().Set("Content-Type", domain.MIMEForExt(info.Format.Ext))
	w.Header().Set("Accept-Ranges", "bytes")
	// The upstream URL is time-limited; nothing downstream may cache it.
	w.Header().Set("Cache-Control", "no-cache, no-transform")

	if rangeHeader != "" && resp.StatusCode == http.StatusPartialContent {
		if cr := resp.Header.Get("Content-Range"); cr != "" {
			w.Header().Set("Content-Range", cr)
		}
		if cl := resp.Header.Get("Content-Length"); cl != "" {
			w.Header().Set("Content-Length", cl)
		}
		w.WriteHeader(http.StatusPartialContent)
	} else {
		if cl := resp.Header.Get("Content-Length"); cl != "" {
			w.Header().Set("Content-Length", cl)
		}
		w.WriteHeader(http.StatusOK)
	}

	// Once bytes are moving no error recovery is possible; a failed copy just
	// ends the connection.
	if _, err := io.Copy(w, resp.Body); err != nil {
		h.logger.Debug().Err(err).Str("video_id", id).Msg("stream copy ended")
	}
}
