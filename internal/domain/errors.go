package domain

import "errors"

var (
	// ErrInvalidActivity: the name resolves in neither the built-in nor the
	// custom catalog.
	ErrInvalidActivity = errors.New("invalid activity")

	// ErrInvalidName: a custom activity name is empty after trimming.
	ErrInvalidName = errors.New("invalid activity name")

	// ErrInvalidXP: an XP value is not a positive integer.
	ErrInvalidXP = errors.New("invalid xp value")

	// ErrDuplicateName: a custom activity name collides with a built-in or
	// an existing custom activity.
	ErrDuplicateName = errors.New("activity name already exists")

	// ErrGenerationFailed: the text-generation collaborator gave no usable
	// response. Recoverable.
	ErrGenerationFailed = errors.New("generation failed")

	// ErrPersistenceUnavailable: the store could not be read or written.
	// The operation aborted without partial writes.
	ErrPersistenceUnavailable = errors.New("persistence unavailable")

	ErrInvalidLedger = errors.New("invalid ledger state")
	ErrInvalidUser   = errors.New("invalid user id")
)

// Rejection reason codes for activity definitions.
const (
	ReasonDuplicateName = "DuplicateName"
	ReasonInvalidName   = "InvalidName"
	ReasonInvalidXP     = "InvalidXp"
)

// RejectionReason maps a definition error to its reason code, or "" when the
// error is not a definition rejection.
func RejectionReason(err error) string {
	switch {
	case errors.Is(err, ErrDuplicateName):
		return ReasonDuplicateName
	case errors.Is(err, ErrInvalidName):
		return ReasonInvalidName
	case errors.Is(err, ErrInvalidXP):
		return ReasonInvalidXP
	default:
		return ""
	}
}
