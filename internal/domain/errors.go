package domain

import "errors"

// Sentinel errors for the viewer's error taxonomy. Read and parse failures are
// surfaced as plain wrapped errors: artifacts are static once written, so they
// are never retried and carry no dedicated sentinel.
var (
	// ErrNotFound marks a missing experiment directory or expected file.
	ErrNotFound = errors.New("not found")

	// ErrBadRequest marks an identifier containing a parent-directory
	// segment. Checked before any filesystem access.
	ErrBadRequest = errors.New("bad request")
)
