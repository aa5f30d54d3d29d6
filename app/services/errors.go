package services

import "errors"

var (
	// ErrForbidden signals that the acting user does not own the entity
	// they are trying to mutate.
	ErrForbidden = errors.New("operation not allowed for this user")

	// ErrSelfFollow signals an attempt to follow oneself.
	ErrSelfFollow = errors.New("cannot follow yourself")
)
