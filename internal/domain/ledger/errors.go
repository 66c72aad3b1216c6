package ledger

import "errors"

var (
	// ErrMemberNotFound is returned when the member id does not resolve
	ErrMemberNotFound = errors.New("member not found")

	// ErrMissionNotFound is returned when a mission grant references an unknown mission
	ErrMissionNotFound = errors.New("mission not found")

	// ErrRewardNotFound is returned when a redemption references an unknown reward
	ErrRewardNotFound = errors.New("reward not found")

	// ErrInsufficientBalance is returned when an operation would drive the balance negative
	ErrInsufficientBalance = errors.New("insufficient point balance")

	// ErrInvalidOperation is returned for malformed operations, e.g. a deduction
	// through the mission-grant path or a non-positive point amount
	ErrInvalidOperation = errors.New("invalid ledger operation")

	// ErrConflict is returned when a concurrent write on the same member was
	// detected; the caller must retry with a fresh balance read
	ErrConflict = errors.New("concurrent balance update conflict")
)
