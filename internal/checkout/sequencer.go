package checkout

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/lojinha/storefront/internal/domain"
	pkgerrors "github.com/lojinha/storefront/pkg/errors"
)

var (
	ErrEmptyCart            = errors.New("cart is empty, nothing to check out")
	ErrInvalidPaymentMethod = errors.New("invalid payment method")
)

// InvoiceAPI is the slice of the backend client the sequencer needs
type InvoiceAPI interface {
	CreateInvoice(ctx context.Context, token string, req domain.InvoiceRequest) (*domain.Invoice, error)
	AddInvoiceLine(ctx context.Context, token string, line domain.InvoiceLine) error
}

// Result reports a finished checkout run
type Result struct {
	InvoiceID     int64
	LinesAttached int
}

// Sequencer runs one checkout: create the invoice, then attach line
// items one request at a time, in cart order. Sequential on purpose:
// the backend records lines in arrival order and carts are small. No
// retries, no rollback; a created invoice stays created on failure.
type Sequencer struct {
	api    InvoiceAPI
	logger *zap.Logger
	state  domain.CheckoutState
}

// NewSequencer creates an idle sequencer for a single run
func NewSequencer(api InvoiceAPI, logger *zap.Logger) *Sequencer {
	return &Sequencer{
		api:    api,
		logger: logger,
		state:  domain.CheckoutStateIdle,
	}
}

// State returns the sequencer's current state
func (s *Sequencer) State() domain.CheckoutState {
	return s.state
}

// Run executes the checkout for the given cart lines
func (s *Sequencer) Run(ctx context.Context, token string, userID int64, method domain.PaymentMethod, items []domain.CartLineItem) (*Result, error) {
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}
	if !method.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPaymentMethod, method)
	}

	if err := s.transition(domain.CheckoutStateCreatingInvoice); err != nil {
		return nil, err
	}

	invoice, err := s.api.CreateInvoice(ctx, token, domain.InvoiceRequest{
		User:      userID,
		PayMethod: method,
	})
	if err != nil {
		s.fail()
		return nil, fmt.Errorf("failed to create invoice: %w", err)
	}

	if err := s.transition(domain.CheckoutStateAttachingLineItems); err != nil {
		return nil, err
	}

	// One request per line, awaiting each before issuing the next. The
	// first failure aborts the rest; the invoice is left as-is.
	for i, item := range items {
		err := s.api.AddInvoiceLine(ctx, token, domain.InvoiceLine{
			IDInvoice: invoice.ID,
			IDProduct: item.Product.ID,
			Quantity:  item.Quantity,
		})
		if err != nil {
			s.fail()
			s.logger.Error("Invoice line attachment failed",
				zap.Int64("invoice_id", invoice.ID),
				zap.Int("attached", i),
				zap.Int("total", len(items)),
				zap.Error(err),
			)
			return nil, &pkgerrors.PartialCheckoutError{
				InvoiceID: invoice.ID,
				Attached:  i,
				Total:     len(items),
				Err:       err,
			}
		}
	}

	if err := s.transition(domain.CheckoutStateSucceeded); err != nil {
		return nil, err
	}

	s.logger.Info("Checkout succeeded",
		zap.Int64("invoice_id", invoice.ID),
		zap.Int("lines", len(items)),
	)
	return &Result{
		InvoiceID:     invoice.ID,
		LinesAttached: len(items),
	}, nil
}

func (s *Sequencer) transition(next domain.CheckoutState) error {
	if !s.state.CanTransitionTo(next) {
		return &pkgerrors.ErrInvalidStateTransition{From: s.state, To: next}
	}
	s.state = next
	return nil
}

func (s *Sequencer) fail() {
	if s.state.CanTransitionTo(domain.CheckoutStateFailed) {
		s.state = domain.CheckoutStateFailed
	}
}
