package inventory

import "errors"

// ErrItemNotTracked is returned when a mutation targets an item absent from the local mirror.
var ErrItemNotTracked = errors.New("item is not tracked locally")

var (
	ErrEmptyUserID     = errors.New("user id is required")
	ErrInvalidLocation = errors.New("item has no valid storage location")
)
