package domain

import (
	"github.com/shopspring/decimal"
)

// Category represents a product category from the catalog
type Category struct {
	ID   int64  `json:"idCategory"`
	Name string `json:"name"`
}

// Product is an immutable catalog snapshot as returned by the backend.
// Stock is the backend's "quantity" field: units available, not units in a cart.
type Product struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"quantity"`
	Description string          `json:"description"`
	ImageURL    string          `json:"imageURL"`
	Category    Category        `json:"category"`
}

// CartLineItem is one line of the remote cart: a product plus the desired quantity
type CartLineItem struct {
	Date     string  `json:"date"`
	Quantity int     `json:"quantity"`
	Product  Product `json:"product"`
}

// Subtotal returns quantity * unit price for this line
func (li CartLineItem) Subtotal() decimal.Decimal {
	return li.Product.Price.Mul(decimal.NewFromInt(int64(li.Quantity)))
}

// CartUpdate is the simplified line payload sent on cart pushes
type CartUpdate struct {
	IDProduct string `json:"idProduct"`
	Quantity  int    `json:"quantity"`
}

// InvoiceRequest is the invoice creation payload
type InvoiceRequest struct {
	User      int64         `json:"user"`
	PayMethod PaymentMethod `json:"payMethod"`
}

// Invoice represents a server-side invoice record
type Invoice struct {
	ID         int64            `json:"idInvoice"`
	StartDate  string           `json:"startDate"`
	TotalPrice decimal.Decimal  `json:"totalPrice"`
	PayMethod  PaymentMethod    `json:"payMethod"`
	Products   []InvoiceProduct `json:"products"`
}

// InvoiceProduct is one invoiced product as returned in invoice history
type InvoiceProduct struct {
	IDProduct string          `json:"idProduct"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
}

// InvoiceLine is the payload attaching one cart line to an invoice
type InvoiceLine struct {
	IDInvoice int64  `json:"idInvoice"`
	IDProduct string `json:"idProduct"`
	Quantity  int    `json:"quantity"`
}

// Account represents the authenticated user as returned by the backend
type Account struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	FullName string `json:"fullName"`
}
