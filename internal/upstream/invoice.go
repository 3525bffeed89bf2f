package upstream

import (
	"context"
	"fmt"
	"net/http"

	"github.com/lojinha/storefront/internal/domain"
)

const (
	invoicePath        = "/invoice"
	invoiceLinePath    = "/invoiceLine"
	invoiceHistoryPath = "/invoice/user/history"
)

// CreateInvoice opens a new invoice for the given payer and payment method
func (c *Client) CreateInvoice(ctx context.Context, token string, req domain.InvoiceRequest) (*domain.Invoice, error) {
	resp, err := c.Do(ctx, http.MethodPost, invoicePath, token, nil, req)
	if err != nil {
		return nil, err
	}

	var invoice domain.Invoice
	if err := c.decode(resp, &invoice); err != nil {
		return nil, err
	}
	if invoice.ID == 0 {
		return nil, fmt.Errorf("backend returned invoice without an id")
	}
	return &invoice, nil
}

// AddInvoiceLine attaches one cart line to an already created invoice
func (c *Client) AddInvoiceLine(ctx context.Context, token string, line domain.InvoiceLine) error {
	resp, err := c.Do(ctx, http.MethodPost, invoiceLinePath, token, nil, line)
	if err != nil {
		return err
	}
	return c.decode(resp, nil)
}

// InvoiceHistory returns the caller's past invoices. An empty or non-JSON
// body degrades to an empty list, matching how the history page treats it.
func (c *Client) InvoiceHistory(ctx context.Context, token string) ([]domain.Invoice, error) {
	resp, err := c.Do(ctx, http.MethodGet, invoiceHistoryPath, token, nil, nil)
	if err != nil {
		return nil, err
	}
	if resp.Status < 200 || resp.Status > 299 {
		return nil, ParseError(resp.Status, resp.Body)
	}

	var invoices []domain.Invoice
	if err := c.decode(resp, &invoices); err != nil {
		return []domain.Invoice{}, nil
	}
	if invoices == nil {
		invoices = []domain.Invoice{}
	}
	return invoices, nil
}
