package services

import "errors"

// Error kinds surfaced to the transport layer. Handlers map these to
// 404, 409 and 422.
var (
	ErrNotFound      = errors.New("person not found")
	ErrConflict      = errors.New("person with this name already exists")
	ErrUnprocessable = errors.New("person could not be processed")
)
