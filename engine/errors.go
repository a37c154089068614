package engine

import "errors"

var (
	ErrUnknownWorld  = errors.New("unknown world")
	ErrUnknownArea   = errors.New("unknown area")
	ErrPlayerExists  = errors.New("player already joined")
	ErrUnknownPlayer = errors.New("unknown player")
)
