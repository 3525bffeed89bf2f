package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/lojinha/storefront/internal/api/middleware"
	"github.com/lojinha/storefront/internal/cart"
	"github.com/lojinha/storefront/internal/domain"
	"github.com/lojinha/storefront/internal/upstream"
)

// QuantityEditRequest is one quantity edit against a cart line. Quantity
// arrives as the raw input text so non-numeric edits coerce to 0 instead
// of failing the request.
type QuantityEditRequest struct {
	Quantity  string `json:"quantity"`
	Immediate bool   `json:"immediate"`
}

func cartSession(c *gin.Context, carts *cart.Manager) (*cart.Session, bool) {
	claims, ok := middleware.GetSessionFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return nil, false
	}
	return carts.Get(claims.ID, claims.AccessToken, claims.ExpiresAt.Time), true
}

// HandleGetCart handles GET /api/shoppingCart
func HandleGetCart(carts *cart.Manager, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, ok := cartSession(c, carts)
		if !ok {
			return
		}

		items, err := session.Load(c.Request.Context())
		if err != nil {
			renderError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, items)
	}
}

// HandleReplaceCart handles PATCH /api/shoppingCart - full replace with
// the given simplified lines, pushed immediately. The response is the
// backend's new authoritative cart.
func HandleReplaceCart(carts *cart.Manager, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, ok := cartSession(c, carts)
		if !ok {
			return
		}

		var updates []domain.CartUpdate
		if err := c.ShouldBindJSON(&updates); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "invalid cart payload"})
			return
		}

		items, err := session.PushUpdates(c.Request.Context(), updates)
		if err != nil {
			renderError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, items)
	}
}

// HandleAppendItem handles POST /api/shoppingCart - add one product,
// relaying the backend's verdict (including validation details) as-is.
// The quantity is clamped to the product's available stock first.
func HandleAppendItem(client *upstream.Client, carts *cart.Manager, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, ok := cartSession(c, carts)
		if !ok {
			return
		}

		var update domain.CartUpdate
		if err := c.ShouldBindJSON(&update); err != nil || update.IDProduct == "" {
			c.JSON(http.StatusBadRequest, gin.H{"message": "invalid cart payload"})
			return
		}

		product, err := client.GetProduct(c.Request.Context(), session.Token(), update.IDProduct)
		if err != nil {
			renderError(c, logger, err)
			return
		}
		update.Quantity = cart.ClampQuantity(strconv.Itoa(update.Quantity), product.Stock)

		resp, err := client.AppendCartItem(c.Request.Context(), session.Token(), update)
		if err != nil {
			renderError(c, logger, err)
			return
		}

		// The view-model snapshot is stale now; next load refetches
		session.Invalidate(c.Request.Context())
		relay(c, resp)
	}
}

// HandleUpdateQuantity handles PUT /api/shoppingCart/items/:index - a
// quantity edit, clamped to available stock, synced via the debounced
// controller unless immediate is set.
func HandleUpdateQuantity(carts *cart.Manager, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, ok := cartSession(c, carts)
		if !ok {
			return
		}

		index, err := strconv.Atoi(c.Param("index"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "invalid line index"})
			return
		}

		var req QuantityEditRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "invalid edit payload"})
			return
		}

		items, err := session.UpdateQuantity(c.Request.Context(), index, req.Quantity, req.Immediate)
		if err != nil {
			if errors.Is(err, cart.ErrLineIndexOutOfRange) {
				c.JSON(http.StatusNotFound, gin.H{"message": "cart line not found"})
				return
			}
			renderError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, items)
	}
}

// HandleRemoveItem handles DELETE /api/shoppingCart/items/:index
func HandleRemoveItem(carts *cart.Manager, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, ok := cartSession(c, carts)
		if !ok {
			return
		}

		index, err := strconv.Atoi(c.Param("index"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "invalid line index"})
			return
		}

		items, err := session.RemoveItem(c.Request.Context(), index)
		if err != nil {
			if errors.Is(err, cart.ErrLineIndexOutOfRange) {
				c.JSON(http.StatusNotFound, gin.H{"message": "cart line not found"})
				return
			}
			renderError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, items)
	}
}

// HandleResetCart handles POST /api/shoppingCart/reset - push an empty cart
func HandleResetCart(carts *cart.Manager, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, ok := cartSession(c, carts)
		if !ok {
			return
		}

		if err := session.Reset(c.Request.Context()); err != nil {
			renderError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, session.Items())
	}
}
