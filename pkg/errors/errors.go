package errors

import (
	"fmt"

	"github.com/lojinha/storefront/internal/domain"
)

// ErrInvalidStateTransition is returned when a checkout state change is not allowed
type ErrInvalidStateTransition struct {
	From domain.CheckoutState
	To   domain.CheckoutState
}

func (e *ErrInvalidStateTransition) Error() string {
	return fmt.Sprintf("invalid state transition from %s to %s", e.From, e.To)
}

// PartialCheckoutError is returned when the invoice was created but one of the
// line-item attachments failed. The invoice is not rolled back; Attached says
// how many lines made it before the failure.
type PartialCheckoutError struct {
	InvoiceID int64
	Attached  int
	Total     int
	Err       error
}

func (e *PartialCheckoutError) Error() string {
	return fmt.Sprintf("invoice %d created but only %d of %d line items attached: %v",
		e.InvoiceID, e.Attached, e.Total, e.Err)
}

func (e *PartialCheckoutError) Unwrap() error {
	return e.Err
}
