package domain

import (
	"errors"
	"fmt"
)

// Kind classifies a domain error so transports can map it without string matching.
type Kind string

const (
	KindValidation     Kind = "validation"
	KindNotFound       Kind = "not_found"
	KindConflict       Kind = "conflict"
	KindPartialFailure Kind = "partial_failure"
	KindTransient      Kind = "transient"
	// KindIndeterminate marks a write whose commit outcome is unknown. It may
	// have been applied, so it must not be retried blindly.
	KindIndeterminate  Kind = "indeterminate"
)

// Error is a classified domain error. A sentinel with an empty Message matches
// every error of the same Kind under errors.Is.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	switch {
	case e.Message != "" && e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	case e.Message != "":
		return e.Message
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	default:
		return string(e.Kind)
	}
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches kind sentinels (ErrValidation, ErrNotFound, ...) by kind and every
// other *Error by identity.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Message == "" && t.Err == nil {
		return t.Kind == e.Kind
	}
	return e == t
}

// Kind sentinels.
var (
	ErrValidation = &Error{Kind: KindValidation}
	ErrNotFound   = &Error{Kind: KindNotFound}
	ErrConflict   = &Error{Kind: KindConflict}
	ErrTransient  = &Error{Kind: KindTransient}

	ErrIndeterminate = &Error{Kind: KindIndeterminate}
)

// ErrPartialFailure matches every *PartialFailureError.
var ErrPartialFailure = errors.New("partial failure")

func newError(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

var (
	// Account errors
	ErrAccountNotFound      = newError(KindNotFound, "account not found")
	ErrAccountQuotaExceeded = newError(KindConflict, "account quota exceeded")
	ErrInvalidAccountType   = newError(KindValidation, "invalid account type")

	// Movement errors
	ErrMovementNotFound      = newError(KindNotFound, "movement not found")
	ErrInvalidAmount         = newError(KindValidation, "amount must be positive")
	ErrInvalidKind           = newError(KindValidation, "kind must be income or expense")
	ErrMissingCategory       = newError(KindValidation, "category is required")
	ErrReservedCategory      = newError(KindValidation, "category is reserved for transfers")
	ErrCounterpartNotAllowed = newError(KindValidation, "counterpart account is only allowed on transfers")
	ErrCounterpartRequired   = newError(KindValidation, "transfer requires a counterpart account")
	ErrTransferKind          = newError(KindValidation, "transfer must be posted as an expense")
	ErrSameAccount           = newError(KindValidation, "cannot transfer to same account")
	ErrSelfReference         = newError(KindValidation, "movement cannot reference itself")
	ErrCategoryImmutable     = newError(KindValidation, "category of a transfer leg or rectification cannot change")
	ErrEmptyEdit             = newError(KindValidation, "nothing to edit")

	ErrCategoryLinkedToBudget = newError(KindConflict, "category change blocked: linked to active budget")
	ErrAlreadyRectified       = newError(KindConflict, "movement already rectified")
	ErrRectifyRectification   = newError(KindConflict, "a rectification cannot be rectified")
	ErrRectifiedNotDeletable  = newError(KindConflict, "rectified movement cannot be deleted; delete its rectification first")
	ErrTransferLegMissing     = newError(KindConflict, "transfer sibling leg missing")

	// Budget errors
	ErrBudgetNotFound      = newError(KindNotFound, "budget not found")
	ErrBudgetActiveExists  = newError(KindConflict, "an active budget already exists for this category")
	ErrInvalidBudgetLimit  = newError(KindValidation, "budget limit must be positive")
	ErrInvalidBudgetWindow = newError(KindValidation, "budget window start must not be after end")
	ErrBudgetReservedCat   = newError(KindValidation, "budgets cannot target transfer categories")
)

// Validationf wraps a sentinel with request-specific detail while keeping errors.Is intact.
func Validationf(format string, args ...any) error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

// NewTransientStoreError marks a storage failure as retryable.
func NewTransientStoreError(op string, err error) error {
	return &Error{Kind: KindTransient, Message: op, Err: err}
}

// NewIndeterminateCommitError reports a commit that failed after it was sent to
// the store, so the transaction may or may not have been applied.
func NewIndeterminateCommitError(op string, err error) error {
	return &Error{Kind: KindIndeterminate, Message: op + ": outcome unknown", Err: err}
}

// PartialFailureError reports a multi-write operation (a mirrored transfer) whose
// second write failed. RolledBack is false when compensation failed too and the
// store needs manual reconciliation.
type PartialFailureError struct {
	Op         string
	RolledBack bool
	Err        error
}

func (e *PartialFailureError) Error() string {
	state := "rolled back"
	if !e.RolledBack {
		state = "rollback failed"
	}
	return fmt.Sprintf("partial failure in %s (%s): %v", e.Op, state, e.Err)
}

func (e *PartialFailureError) Unwrap() error { return e.Err }

func (e *PartialFailureError) Is(target error) bool { return target == ErrPartialFailure }

// KindOf returns the classification of err, or "" for unclassified errors.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	var pf *PartialFailureError
	if errors.As(err, &pf) {
		return KindPartialFailure
	}
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return ""
}

// IsRetryable reports whether the caller may retry the operation unchanged.
func IsRetryable(err error) bool {
	var pf *PartialFailureError
	if errors.As(err, &pf) {
		return pf.RolledBack
	}
	return errors.Is(err, ErrTransient)
}
