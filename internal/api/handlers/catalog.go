package handlers

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/lojinha/storefront/internal/api/middleware"
	"github.com/lojinha/storefront/internal/upstream"
)

// HandleListProducts handles GET /api/products - pass-through to the
// backend catalog with paging and filter params forwarded verbatim.
func HandleListProducts(client *upstream.Client, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, ok := middleware.GetSessionFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
			return
		}

		params := url.Values{}
		params.Set("page", c.DefaultQuery("page", "0"))
		params.Set("size", c.DefaultQuery("size", "8"))
		if query := c.Query("query"); query != "" {
			params.Set("query", query)
		}
		if category := c.Query("category"); category != "" {
			params.Set("category", category)
		}

		resp, err := client.Do(c.Request.Context(), http.MethodGet, "/product", session.AccessToken, params, nil)
		if err != nil {
			renderError(c, logger, err)
			return
		}
		relay(c, resp)
	}
}

// HandleGetProduct handles GET /api/product/:id
func HandleGetProduct(client *upstream.Client, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, ok := middleware.GetSessionFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
			return
		}

		resp, err := client.Do(c.Request.Context(), http.MethodGet, "/product/"+url.PathEscape(c.Param("id")), session.AccessToken, nil, nil)
		if err != nil {
			renderError(c, logger, err)
			return
		}
		relay(c, resp)
	}
}

// HandleListCategories handles GET /api/categories
func HandleListCategories(client *upstream.Client, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, ok := middleware.GetSessionFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
			return
		}

		categories, err := client.ListCategories(c.Request.Context(), session.AccessToken)
		if err != nil {
			renderError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, categories)
	}
}
