package domain

import "errors"

// Error taxonomy returned by the core operations. Handlers map these onto
// HTTP status codes; everything else is treated as an internal error.
var (
	ErrNotFound             = errors.New("not found")
	ErrForbidden            = errors.New("forbidden")
	ErrInvalidState         = errors.New("operation not valid for current status")
	ErrValidation           = errors.New("invalid input")
	ErrDuplicateApplication = errors.New("already applied to this job")
	ErrAlreadyRated         = errors.New("already rated")

	// ErrLedgerInvariant marks a wallet or amount failing a sanity guard.
	// It always aborts the enclosing transaction and is never exposed to the
	// caller beyond a generic internal error.
	ErrLedgerInvariant = errors.New("ledger invariant violation")
)
