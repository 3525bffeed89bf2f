package upstream

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/lojinha/storefront/internal/domain"
)

const (
	loginPath    = "/account/login"
	registerPath = "/account/register"
	mePath       = "/user/me"
)

// RegisterRequest is the account registration payload forwarded to the
// identity provider. Authorities is always set to CUSTOMER here.
type RegisterRequest struct {
	Username    string   `json:"username"`
	Password    string   `json:"password"`
	RePassword  string   `json:"rePassword"`
	FullName    string   `json:"fullName"`
	Authorities []string `json:"authorities"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login forwards credentials to the identity provider. The bearer token
// comes back in the Authorization response header, the account info in
// the body.
func (c *Client) Login(ctx context.Context, username, password string) (*domain.Account, string, error) {
	resp, err := c.Do(ctx, http.MethodPost, loginPath, "", nil, loginRequest{
		Username: username,
		Password: password,
	})
	if err != nil {
		return nil, "", err
	}
	if resp.Status < 200 || resp.Status > 299 {
		return nil, "", ParseError(resp.Status, resp.Body)
	}

	token := strings.TrimSpace(strings.TrimPrefix(resp.Header.Get("Authorization"), "Bearer"))
	if token == "" {
		return nil, "", fmt.Errorf("login response missing Authorization header")
	}

	var account domain.Account
	if err := c.decode(resp, &account); err != nil {
		return nil, "", err
	}
	return &account, token, nil
}

// Register creates a new account with the identity provider
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*Response, error) {
	if len(req.Authorities) == 0 {
		req.Authorities = []string{"CUSTOMER"}
	}
	return c.Do(ctx, http.MethodPost, registerPath, "", nil, req)
}

// Me returns the account behind the given bearer token
func (c *Client) Me(ctx context.Context, token string) (*domain.Account, error) {
	resp, err := c.Do(ctx, http.MethodGet, mePath, token, nil, nil)
	if err != nil {
		return nil, err
	}

	var account domain.Account
	if err := c.decode(resp, &account); err != nil {
		return nil, err
	}
	return &account, nil
}
