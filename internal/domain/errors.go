package domain

import "errors"

// Sentinel errors for domain-level error discrimination.
// Repos and services wrap these so callers can branch without leaking
// infrastructure details.
var (
	ErrNotFound  = errors.New("not found")
	ErrConflict  = errors.New("conflict")
	ErrForbidden = errors.New("forbidden")
)
