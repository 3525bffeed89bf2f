package domain

// PaymentMethod represents how an invoice is paid
type PaymentMethod string

const (
	PaymentMethodCash   PaymentMethod = "CASH"
	PaymentMethodCard   PaymentMethod = "CARD"
	PaymentMethodMobile PaymentMethod = "MOBILE"
)

// IsValid checks if the payment method is valid
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodCash, PaymentMethodCard, PaymentMethodMobile:
		return true
	default:
		return false
	}
}

// CheckoutState represents the stage of a checkout run
type CheckoutState string

const (
	CheckoutStateIdle               CheckoutState = "IDLE"
	CheckoutStateCreatingInvoice    CheckoutState = "CREATING_INVOICE"
	CheckoutStateAttachingLineItems CheckoutState = "ATTACHING_LINE_ITEMS"
	CheckoutStateSucceeded          CheckoutState = "SUCCEEDED"
	CheckoutStateFailed             CheckoutState = "FAILED"
)

// CanTransitionTo checks if a checkout state transition is valid
func (s CheckoutState) CanTransitionTo(newState CheckoutState) bool {
	switch s {
	case CheckoutStateIdle:
		return newState == CheckoutStateCreatingInvoice
	case CheckoutStateCreatingInvoice:
		return newState == CheckoutStateAttachingLineItems ||
			newState == CheckoutStateFailed
	case CheckoutStateAttachingLineItems:
		return newState == CheckoutStateSucceeded ||
			newState == CheckoutStateFailed
	case CheckoutStateSucceeded, CheckoutStateFailed:
		return false // Terminal states
	default:
		return false
	}
}

// IsTerminal reports whether the run is over
func (s CheckoutState) IsTerminal() bool {
	return s == CheckoutStateSucceeded || s == CheckoutStateFailed
}

// String representation (for logging)
func (s CheckoutState) String() string {
	return string(s)
}
