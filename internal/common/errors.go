// Package common defines shared constants and sentinel errors used across
// the Flax server layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Validation / input errors (400-class).
	ErrValidation = errors.New("validation error")
	ErrConflict   = errors.New("already exists")

	// Authentication errors (401-class).
	ErrUnauthorized = errors.New("unauthorized")

	// Authorization errors (403-class): the caller is known but not entitled.
	ErrForbidden = errors.New("forbidden")

	// Repository-level errors (404-class).
	ErrNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrInternal = errors.New("internal error")

	// Token lifecycle errors (both map to 401 at the boundary).
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)
