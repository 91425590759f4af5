package models

import "errors"

var (
	ErrInvalidArgument  = errors.New("invalid arguments")
	ErrNoSuitableFormat = errors.New("no suitable audio format found")
	ErrNoStreamURL      = errors.New("no stream URL found in the selected format")
	ErrResolutionFailed = errors.New("resolution failed")
)
