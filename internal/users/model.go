package users

import "errors"

// User records are opaque JSON documents with at least an id; this layer
// only guarantees the type discriminator and the id rename on the way out.
const TypeUser = "user"

var (
	// ErrNotFound indicates no user matched.
	ErrNotFound = errors.New("user not found")

	// ErrInvalidInput indicates an unusable user id or payload.
	ErrInvalidInput = errors.New("invalid input")
)
