// Package domain defines the flight model and the sentinel errors shared
// across the service, repository and API layers. Handlers match these with
// errors.Is to pick a status code; lower layers wrap them with context via
// fmt.Errorf and %w.
package domain

import "errors"

// ErrInvalidFilter is returned when a search parameter has bad syntax:
// a malformed route or price range, an unparsable date, an unknown sort
// field. Maps to HTTP 400.
var ErrInvalidFilter = errors.New("invalid search filter")

// ErrInvalidRequest is returned for malformed seat adjustments and create
// requests, e.g. a non-positive seat count. Maps to HTTP 400.
var ErrInvalidRequest = errors.New("invalid request")

// ErrNotFound is returned when the referenced flight does not exist.
// Maps to HTTP 404.
var ErrNotFound = errors.New("flight not found")

// ErrNoSeats is returned when a reservation asks for more seats than are
// left. The write never happened. Maps to HTTP 409.
var ErrNoSeats = errors.New("not enough seats remaining")

// ErrSeatLimit is returned when a release would push the remaining count
// above the flight's total capacity, e.g. a double cancellation. The write
// never happened. Maps to HTTP 409.
var ErrSeatLimit = errors.New("seat count would exceed capacity")

// ErrConflict is returned when concurrent adjustments on the same flight
// exhausted the retry budget. Transient; safe to retry with backoff.
var ErrConflict = errors.New("conflicting concurrent update")
