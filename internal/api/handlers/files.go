package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/lojinha/storefront/internal/api/middleware"
	"github.com/lojinha/storefront/internal/upstream"
)

// HandleFetchFile handles GET /api/file?url= - authorized image proxy.
// The fetched bytes are relayed with their content type and a one-hour
// cache header.
func HandleFetchFile(client *upstream.Client, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := middleware.GetSessionFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
			return
		}

		rawURL := c.Query("url")
		if rawURL == "" {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Missing 'url' parameter"})
			return
		}

		resp, err := client.FetchFile(c.Request.Context(), claims.AccessToken, rawURL)
		if err != nil {
			logger.Error("File fetch failed", zap.String("url", rawURL), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Error fetching file"})
			return
		}
		if resp.Status < 200 || resp.Status > 299 {
			c.JSON(resp.Status, gin.H{"message": "Failed to fetch file"})
			return
		}

		contentType := resp.Header.Get("Content-Type")
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		c.Header("Cache-Control", "public, max-age=3600")
		c.Data(http.StatusOK, contentType, resp.Body)
	}
}
