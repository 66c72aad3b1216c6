package member

import "errors"

var (
	// ErrNotFound is returned when the member id does not resolve
	ErrNotFound = errors.New("member not found")
)
