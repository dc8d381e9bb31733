// Package errs holds the sentinel errors shared by the store, service and handler layers.
package errs

import (
	"errors"
	"fmt"
)

// Error classes. Every error returned by a service wraps exactly one of these.
var (
	ErrNotFound     = errors.New("not found")
	ErrForbidden    = errors.New("forbidden")
	ErrConflict     = errors.New("conflict")
	ErrInvalidInput = errors.New("invalid input")
	ErrUnavailable  = errors.New("service unavailable")
	ErrUnauthorized = errors.New("unauthorized")
)

// Domain errors.
var (
	ErrBanned          = fmt.Errorf("%w: account is banned", ErrForbidden)
	ErrNotOwner        = fmt.Errorf("%w: only the owner can do this", ErrForbidden)
	ErrNotAdmin        = fmt.Errorf("%w: admin access required", ErrForbidden)
	ErrItemLocked      = fmt.Errorf("%w: item has an active claim", ErrForbidden)
	ErrPermBanDisabled = fmt.Errorf("%w: permanent bans are disabled", ErrForbidden)

	ErrSelfReport      = fmt.Errorf("%w: cannot report your own item", ErrInvalidInput)
	ErrSelfClaim       = fmt.Errorf("%w: cannot claim your own item", ErrInvalidInput)
	ErrSelfModeration  = fmt.Errorf("%w: cannot moderate yourself", ErrInvalidInput)
	ErrNotClaimable    = fmt.Errorf("%w: only found items can be claimed", ErrInvalidInput)
	ErrImageTooLarge   = fmt.Errorf("%w: image exceeds size limit", ErrInvalidInput)
	ErrImageRequired   = fmt.Errorf("%w: image is required", ErrInvalidInput)
	ErrUnsupportedType = fmt.Errorf("%w: unsupported image type", ErrInvalidInput)

	ErrDuplicateReport = fmt.Errorf("%w: you already reported this item", ErrConflict)
	ErrAlreadyClaimed  = fmt.Errorf("%w: item already has an active claim", ErrConflict)
	ErrAlreadyDecided  = fmt.Errorf("%w: claim already decided", ErrConflict)
	ErrPhoneAlreadySet = fmt.Errorf("%w: phone number already set", ErrConflict)
)

// Invalid builds an ErrInvalidInput with a caller-facing message.
func Invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

// Unavailable wraps a collaborator failure.
func Unavailable(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrUnavailable, op, err)
}
