package models

import (
	"errors"
	"fmt"
)

// Domain error taxonomy. Handlers translate these to HTTP codes; services
// and stores return them wrapped with context so callers match via errors.Is.
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrExpired      = errors.New("expired")
	ErrInvalidToken = errors.New("invalid token")
	ErrUnauthorized = errors.New("unauthorized")
	ErrValidation   = errors.New("validation failed")
)

// ErrAlreadyRequested is the duplicate join request case. It is a Conflict,
// so errors.Is(err, ErrConflict) also holds.
var ErrAlreadyRequested = fmt.Errorf("%w: join already requested", ErrConflict)
