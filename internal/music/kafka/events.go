package kafka

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/lightbolt/backend/internal/music/models"
)

// trackResolvedEvent is the payload published when a stream is resolved.
type trackResolvedEvent struct {
	EventID    uuid.UUID `json:"event_id"`
	EventType  string    `json:"event_type"`
	VideoID    string    `json:"video_id"`
	Title      string    `json:"title"`
	Artist     string    `json:"artist"`
	Ext        string    `json:"ext"`
	ABR        int       `json:"abr"`
	OccurredAt time.Time `json:"occurred_at"`
}

// clientErrorEvent is the payload published for client-reported errors.
type clientErrorEvent struct {
	EventID    uuid.UUID `json:"event_id"`
	EventType  string    `json:"event_type"`
	Error      string    `json:"error"`
	OccurredAt time.Time `json:"occurred_at"`
}

// EventSink publishes playback events fire-and-forget. Publish failures are
// logged, never surfaced to the request path.
type EventSink struct {
	producer *Producer
	logger   zerolog.Logger
}

// NewEventSink wraps a producer.
func NewEventSink(producer *Producer, logger zerolog.Logger) *EventSink {
	return &EventSink{producer: producer, logger: logger}
}

// TrackResolved publishes a resolution event keyed by video ID.
func (s *EventSink) TrackResolved(ctx context.Context, videoID string, info *models.StreamInfo) {
	evt := trackResolvedEvent{
		EventID:    uuid.New(),
		EventType:  "TrackResolved",
		VideoID:    videoID,
		Title:      info.Title,
		Artist:     info.Artist,
		Ext:        info.Format.Ext,
		ABR:        info.Format.ABR,
		OccurredAt: time.Now(),
	}
	s.publish(videoID, evt)
}

// ClientError publishes a client-reported error event.
func (s *EventSink) ClientError(ctx context.Context, message string) {
	evt := clientErrorEvent{
		EventID:    uuid.New(),
		EventType:  "ClientError",
		Error:      message,
		OccurredAt: time.Now(),
	}
	s.publish(evt.EventID.String(), evt)
}

func (s *EventSink) publish(key string, evt any) {
	payload, err := json.Marshal(evt)
	if err != nil {
		s.logger.Warn().Err(err).Msg("marshal event")
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.producer.Publish(ctx, key, payload); err != nil {
			s.logger.Warn().Err(err).Str("key", key).Msg("publish event")
		}
	}()
}
