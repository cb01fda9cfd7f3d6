package local

import "errors"

// Sentinel kinds for local model errors.
var (
	ErrModelLoad = errors.New("local model load failed")
)
