package catalog

import "errors"

var (
	// ErrNotFound is returned when a mission, reward or checklist item id does not resolve
	ErrNotFound = errors.New("catalog entry not found")

	// ErrTargetMemberNotFound is returned when a checklist item references a member that does not exist
	ErrTargetMemberNotFound = errors.New("target member not found")
)
