// Package store defines the persistence interface and query types for the
// Inkwell catalog.
package store

import (
	apperrors "github.com/inkwellapp/inkwell-server/internal/errors"
)

// Sentinel errors returned by store implementations. They carry coded
// application errors so callers can map them to HTTP statuses directly.
var (
	ErrBookNotFound     = apperrors.NotFound("book not found")
	ErrUserNotFound     = apperrors.NotFound("user not found")
	ErrSessionNotFound  = apperrors.NotFound("session not found")
	ErrRelationNotFound = apperrors.NotFound("relation not found")
	ErrEmailTaken       = apperrors.AlreadyExists("a user with this email already exists")
)
