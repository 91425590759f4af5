package models

import "errors"

var (
	ErrNotFound        = errors.New("playlist not found")
	ErrInvalidArgument = errors.New("invalid arguments")
	ErrDuplicateSong   = errors.New("song already in playlist")
	ErrSongNotFound    = errors.New("song not found in playlist")
)
