package tui

import "errors"

// ErrMissingController is returned when the search controller is not provided.
var ErrMissingController = errors.New("tui: search controller is required")
