package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/lojinha/storefront/internal/upstream"
)

// relay passes a backend response through unchanged: same status, body
// normalized to JSON when the backend sent something else.
func relay(c *gin.Context, resp *upstream.Response) {
	c.Data(resp.Status, "application/json", resp.NormalizedBody())
}

// renderError turns an operation failure into user-visible JSON. Backend
// rejections keep their status and details; transport failures become a
// generic 502.
func renderError(c *gin.Context, logger *zap.Logger, err error) {
	var apiErr *upstream.APIError
	if errors.As(err, &apiErr) {
		body := gin.H{"message": apiErr.Message}
		if len(apiErr.Details) > 0 {
			body["details"] = apiErr.Details
		}
		c.JSON(apiErr.Status, body)
		return
	}

	logger.Error("Upstream request failed", zap.Error(err))
	c.JSON(http.StatusBadGateway, gin.H{"message": "upstream request failed"})
}
