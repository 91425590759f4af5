package models

import "regexp"

// videoIDPattern accepts the characters platform video IDs are built from.
// Anything shorter than 5 characters or carrying path separators is rejected
// before it can reach the extraction tool or the cache filesystem.
var videoIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{5,}$`)

// ValidVideoID reports whether id is safe to resolve.
func ValidVideoID(id string) bool {
	return videoIDPattern.MatchString(id)
}
