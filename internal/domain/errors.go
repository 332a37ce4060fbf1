package domain

import "errors"

// ErrNotFound is returned by repo and service functions when the requested
// resource does not exist in the database.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. missing required field, short description too long).
// Handlers should map this to HTTP 400 Bad Request.
var ErrValidation = errors.New("validation error")

// ErrConflict is returned when a write collides with a unique constraint.
// Only traveller registration produces it. Handlers map it to HTTP 409.
var ErrConflict = errors.New("conflict")

// ErrForbidden is returned when the supplied traveller email does not own the
// itinerary being mutated. Handlers map it to HTTP 403.
var ErrForbidden = errors.New("forbidden")
