package timerotator

import "errors"

// ErrBadPath is returned by Dirs for an unusable log file path.
var ErrBadPath = errors.New("invalid log file path")
