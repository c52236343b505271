package services

import "errors"

// Failure kinds returned by the service layer. Controllers translate these to
// HTTP status codes with errors.Is. Every kind except ErrStoreUnavailable is
// permanent for the given input and must not be retried.
var (
	ErrNotFound          = errors.New("not found")
	ErrInvalidArgument   = errors.New("invalid argument")
	ErrInvalidState      = errors.New("invalid state")
	ErrDuplicateEmail    = errors.New("email already in use")
	ErrOwnershipConflict = errors.New("another driver is already tracking this bus")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrForbidden         = errors.New("forbidden")
	ErrInvalidCredential = errors.New("invalid email or password")
	ErrPendingApproval   = errors.New("account is awaiting admin approval")
	ErrRoleMismatch      = errors.New("incorrect role selected")
	ErrStoreUnavailable  = errors.New("store unavailable")
)
