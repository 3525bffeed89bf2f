package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/lojinha/storefront/internal/api/middleware"
	"github.com/lojinha/storefront/internal/cart"
	"github.com/lojinha/storefront/internal/checkout"
	"github.com/lojinha/storefront/internal/domain"
	"github.com/lojinha/storefront/internal/upstream"
	pkgerrors "github.com/lojinha/storefront/pkg/errors"
)

// CheckoutRequest triggers payment for the session cart
type CheckoutRequest struct {
	PayMethod domain.PaymentMethod `json:"payMethod" binding:"required"`
}

// CheckoutResponse reports a completed checkout
type CheckoutResponse struct {
	InvoiceID     int64  `json:"idInvoice"`
	LinesAttached int    `json:"linesAttached"`
	Total         string `json:"total"`
}

// HandleCheckout handles POST /api/checkout. It runs the sequencer over
// the session cart and, on success, resets the cart and refetches the
// authoritative (now empty) remote state.
func HandleCheckout(client *upstream.Client, carts *cart.Manager, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := middleware.GetSessionFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
			return
		}

		var req CheckoutRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "payMethod is required"})
			return
		}

		session := carts.Get(claims.ID, claims.AccessToken, claims.ExpiresAt.Time)
		items := session.Items()
		if len(items) == 0 {
			// The session may be fresh; the remote cart decides
			loaded, err := session.Load(c.Request.Context())
			if err != nil {
				renderError(c, logger, err)
				return
			}
			items = loaded
		}
		total := session.Total()

		sequencer := checkout.NewSequencer(client, logger)
		result, err := sequencer.Run(c.Request.Context(), claims.AccessToken, claims.UserID, req.PayMethod, items)
		if err != nil {
			renderCheckoutError(c, logger, err)
			return
		}

		// Full reload, not incremental: discard the pushed state and
		// adopt whatever the backend holds after invoicing.
		session.Invalidate(c.Request.Context())
		if _, err := session.Refresh(c.Request.Context()); err != nil {
			logger.Warn("Cart refresh after checkout failed", zap.Error(err))
		}

		c.JSON(http.StatusOK, CheckoutResponse{
			InvoiceID:     result.InvoiceID,
			LinesAttached: result.LinesAttached,
			Total:         total.StringFixed(2),
		})
	}
}

func renderCheckoutError(c *gin.Context, logger *zap.Logger, err error) {
	var partial *pkgerrors.PartialCheckoutError
	if errors.As(err, &partial) {
		logger.Error("Partial checkout failure", zap.Int64("invoice_id", partial.InvoiceID), zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{
			"message":   "checkout failed after the invoice was created; some items were not attached",
			"idInvoice": partial.InvoiceID,
			"attached":  partial.Attached,
			"total":     partial.Total,
		})
		return
	}
	if errors.Is(err, checkout.ErrEmptyCart) || errors.Is(err, checkout.ErrInvalidPaymentMethod) {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	renderError(c, logger, err)
}

// HandleListInvoices handles GET /api/invoices - the caller's purchase
// history. Empty or malformed upstream bodies degrade to an empty list.
func HandleListInvoices(client *upstream.Client, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := middleware.GetSessionFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
			return
		}

		invoices, err := client.InvoiceHistory(c.Request.Context(), claims.AccessToken)
		if err != nil {
			renderError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, invoices)
	}
}
