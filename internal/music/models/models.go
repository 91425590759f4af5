package models

import "time"

// Format describes one audio encoding: container extension, average bitrate
// in kbps, audio codec and the MIME type derived from the extension.
type Format struct {
	Ext    string `json:"ext"`
	ABR    int    `json:"abr"`
	ACodec string `json:"acodec"`
	MIME   string `json:"mime"`
}

// StreamInfo is the resolution result for a single video ID. It is cached
// wholesale and considered fresh while Timestamp is younger than the cache
// TTL; the upstream StreamURL itself is usually time-limited.
type StreamInfo struct {
	StreamURL string  `json:"streamUrl"`
	Title     string  `json:"title"`
	Artist    string  `json:"artist"`
	Duration  float64 `json:"duration"`
	Thumbnail string  `json:"thumbnail"`
	Format    Format  `json:"format"`
	Timestamp int64   `json:"timestamp"` // epoch milliseconds
}

// Age returns how old the record is relative to now.
func (s *StreamInfo) Age(now time.Time) time.Duration {
	return time.Duration(now.UnixMilli()-s.Timestamp) * time.Millisecond
}

// SearchResult is one hit of a free-text search. Produced fresh per call,
// never cached.
type SearchResult struct {
	ID       string  `json:"id"`
	Title    string  `json:"title"`
	Artist   string  `json:"artist"`
	Duration float64 `json:"duration"`
	AlbumArt string  `json:"albumArt"`
}

// VideoMetadata is the unfiltered extraction-tool output for one video.
// Filtering and selection of Formats is the format selector's job.
type VideoMetadata struct {
	Title     string
	Artist    string
	Duration  float64
	Thumbnail string
	Formats   []CandidateFormat
}

// CandidateFormat is one candidate encoding reported by the extraction tool.
type CandidateFormat struct {
	Ext    string
	ACodec string
	VCodec string
	ABR    float64
	URL    string
}
