package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// SongList is an ordered list of song IDs. It serializes to a JSON array both
// on the wire and in SQL storage.
type SongList []string

// Contains reports whether songID is already in the list.
func (s SongList) Contains(songID string) bool {
	for _, id := range s {
		if id == songID {
			return true
		}
	}
	return false
}

// Value implements driver.Valuer for JSONB columns.
func (s SongList) Value() (driver.Value, error) {
	if s == nil {
		s = SongList{}
	}
	return json.Marshal(s)
}

// Scan implements sql.Scanner for JSONB columns.
func (s *SongList) Scan(src any) error {
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, s)
	case string:
		return json.Unmarshal([]byte(v), s)
	case nil:
		*s = SongList{}
		return nil
	default:
		return fmt.Errorf("unsupported song list source %T", src)
	}
}

// Playlist is a named, ordered collection of song IDs. IDs are
// millisecond-epoch strings assigned at creation.
type Playlist struct {
	ID          string   `json:"id" db:"id"`
	Name        string   `json:"name" db:"name"`
	Description string   `json:"description" db:"description"`
	Songs       SongList `json:"songs" db:"songs"`
}
