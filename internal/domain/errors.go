package domain

import (
	"errors"
	"fmt"
)

var (
	ErrInvoiceNotFound        = errors.New("invoice not found")
	ErrClientNotFound         = errors.New("client not found")
	ErrProductNotFound        = errors.New("product not found")
	ErrSellerProfileNotFound  = errors.New("seller profile not configured")
	ErrDuplicateInvoiceNumber = errors.New("invoice number already exists")
	ErrInvalidStatus          = errors.New("invalid invoice status")
	ErrInvalidFollowUpUnit    = errors.New("invalid follow-up unit")
	ErrInvalidTransition      = errors.New("status transition not allowed")
	ErrReminderNotDue         = errors.New("reminder no longer due")
)

// ValidationError reports rejected user input. The operation aborts with
// no partial writes.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Reason)
}

// NewValidationError creates a ValidationError for a single field.
func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// ReconstructionError reports a failed history replay: the archive holds no
// items for the invoice number, or the client master has no matching party.
// The caller reverts the invoice to its prior status.
type ReconstructionError struct {
	InvoiceNumber string
	Err           error
}

func (e *ReconstructionError) Error() string {
	return fmt.Sprintf("reconstructing invoice %s: %v", e.InvoiceNumber, e.Err)
}

func (e *ReconstructionError) Unwrap() error {
	return e.Err
}

// DeliveryError reports a failed document render, upload or email dispatch.
// An invoice is never marked Sent on a delivery failure.
type DeliveryError struct {
	Stage string // "render", "upload" or "email"
	Err   error
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("delivery failed during %s: %v", e.Stage, e.Err)
}

func (e *DeliveryError) Unwrap() error {
	return e.Err
}
