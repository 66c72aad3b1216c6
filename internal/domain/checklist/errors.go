package checklist

import "errors"

var (
	// ErrMemberNotFound is returned when the member id does not resolve
	ErrMemberNotFound = errors.New("member not found")

	// ErrUnknownItem is returned when an outcome references an item that is
	// not active and applicable to the member
	ErrUnknownItem = errors.New("outcome references an unknown checklist item")
)
