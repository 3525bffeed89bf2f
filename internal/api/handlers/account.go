package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/lojinha/storefront/internal/api/middleware"
	"github.com/lojinha/storefront/internal/auth"
	"github.com/lojinha/storefront/internal/cart"
	"github.com/lojinha/storefront/internal/config"
	"github.com/lojinha/storefront/internal/upstream"
)

// LoginRequest carries credentials to forward to the identity provider
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RegisterRequest is the registration form payload
type RegisterRequest struct {
	Username   string `json:"username"`
	Password   string `json:"password"`
	RePassword string `json:"rePassword"`
	FullName   string `json:"fullName"`
}

// HandleLogin handles POST /api/login. Credentials go straight to the
// backend; the bearer token it returns is wrapped in a signed session
// cookie. Nothing credential-shaped is stored here.
func HandleLogin(cfg *config.Config, client *upstream.Client, sessions *auth.Sessions, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Username and password are required"})
			return
		}

		account, token, err := client.Login(c.Request.Context(), req.Username, req.Password)
		if err != nil {
			renderError(c, logger, err)
			return
		}

		signed, _, err := sessions.Issue(account, token)
		if err != nil {
			logger.Error("Failed to issue session", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"message": "internal error"})
			return
		}

		secure := cfg.Environment == "production"
		c.SetCookie(cfg.Session.CookieName, signed, int(sessions.TTL().Seconds()), "/", "", secure, true)
		c.JSON(http.StatusOK, account)
	}
}

// HandleLogout handles POST /api/logout - drops the cart session and
// clears the cookie. In-flight pushes are simply abandoned.
func HandleLogout(cfg *config.Config, carts *cart.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		if claims, ok := middleware.GetSessionFromContext(c); ok {
			carts.Drop(c.Request.Context(), claims.ID)
		}
		c.SetCookie(cfg.Session.CookieName, "", -1, "/", "", false, true)
		c.Status(http.StatusNoContent)
	}
}

// HandleRegister handles POST /api/register - validates presence of the
// form fields, forces the CUSTOMER authority and forwards. Backend
// validation errors are relayed as-is.
func HandleRegister(client *upstream.Client, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RegisterRequest
		if err := c.ShouldBindJSON(&req); err != nil || req.Username == "" || req.Password == "" || req.RePassword == "" || req.FullName == "" {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Username, password, rePassword and full name are required"})
			return
		}

		resp, err := client.Register(c.Request.Context(), upstream.RegisterRequest{
			Username:   req.Username,
			Password:   req.Password,
			RePassword: req.RePassword,
			FullName:   req.FullName,
		})
		if err != nil {
			renderError(c, logger, err)
			return
		}
		relay(c, resp)
	}
}

// HandleGetAccount handles GET /api/account - the backend's
// current-user record for the session's bearer token.
func HandleGetAccount(client *upstream.Client, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := middleware.GetSessionFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
			return
		}

		account, err := client.Me(c.Request.Context(), claims.AccessToken)
		if err != nil {
			renderError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, account)
	}
}
