package models

import "errors"

// Sentinel errors classifying failures across the service and repository
// layers. Handlers translate them to 404/400/409; anything unwrapped is a
// 500 with the detail logged server-side only.
var (
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("validation failed")
	ErrConflict   = errors.New("conflict")
)
