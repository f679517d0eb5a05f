package service

import "errors"

// Typed failures surfaced across the governance core boundary.
// Handlers map these to HTTP status codes; none of them is a silent no-op.
var (
	// ErrNotFound — document, vendor, user, or approval id unknown.
	ErrNotFound = errors.New("not found")

	// ErrInvalidTransition — requested action is not legal from the current
	// status, or the approval stage order would be skipped.
	ErrInvalidTransition = errors.New("invalid transition")

	// ErrConcurrentModification — a stale writer lost the version race on a
	// document. Callers decide whether to retry.
	ErrConcurrentModification = errors.New("concurrent modification")

	// ErrDuplicatePendingApproval — a pending, non-expired login approval
	// already exists for the vendor.
	ErrDuplicatePendingApproval = errors.New("pending login approval already exists")

	// ErrAlreadyDecided — the login approval has left PENDING.
	ErrAlreadyDecided = errors.New("login approval already decided")

	// ErrApprovalExpired — the login approval is past its expiry.
	ErrApprovalExpired = errors.New("login approval expired")

	// ErrStorageUnavailable — the persistence layer failed. Fatal, never
	// retried inside the core; propagated for the caller's retry policy.
	ErrStorageUnavailable = errors.New("storage unavailable")
)
