package upstream

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/lojinha/storefront/internal/config"
	"github.com/lojinha/storefront/internal/domain"
)

func newTestClient(baseURL string) *Client {
	return NewClient(config.UpstreamConfig{
		BaseURL: baseURL,
		Timeout: 5 * time.Second,
	}, zap.NewNop())
}

func TestDoInjectsBearerToken(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	resp, err := client.Do(context.Background(), http.MethodGet, "/shopingCart", "tok-123", nil, nil)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.Status)
	assert.Equal(t, "Bearer tok-123", gotAuth)
}

func TestNormalizedBodyWrapsNonJSON(t *testing.T) {
	resp := &Response{Status: http.StatusServiceUnavailable, Body: []byte("Service Unavailable")}
	assert.JSONEq(t, `{"message":"Service Unavailable"}`, string(resp.NormalizedBody()))
}

func TestNormalizedBodyPassesJSONThrough(t *testing.T) {
	resp := &Response{Status: http.StatusOK, Body: []byte(`{"idInvoice":42}`)}
	assert.Equal(t, `{"idInvoice":42}`, string(resp.NormalizedBody()))
}

func TestNormalizedBodyEmptyBecomesObject(t *testing.T) {
	resp := &Response{Status: http.StatusBadGateway, Body: nil}
	assert.Equal(t, `{}`, string(resp.NormalizedBody()))
}

func TestParseErrorJoinsDetails(t *testing.T) {
	apiErr := ParseError(http.StatusUnprocessableEntity, []byte(`{"message":"validation failed","details":["quantity too high","product missing"]}`))

	assert.Equal(t, http.StatusUnprocessableEntity, apiErr.Status)
	assert.Equal(t, "quantity too high, product missing", apiErr.Error())
}

func TestParseErrorFallsBackToRawText(t *testing.T) {
	apiErr := ParseError(http.StatusBadGateway, []byte("upstream exploded"))
	assert.Equal(t, "upstream exploded", apiErr.Error())

	apiErr = ParseError(http.StatusBadGateway, nil)
	assert.Equal(t, "Bad Gateway", apiErr.Error())
}

func TestReplaceCartAdoptsServerResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/shopingCart/multiple", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"quantity":2,"product":{"id":"P1","name":"Coffee","price":5.0,"quantity":9}}]`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	items, err := client.ReplaceCart(context.Background(), "tok", []domain.CartUpdate{{IDProduct: "P1", Quantity: 2}})
	require.NoError(t, err)

	require.Len(t, items, 1)
	assert.Equal(t, "P1", items[0].Product.ID)
	assert.Equal(t, 2, items[0].Quantity)
	assert.Equal(t, 9, items[0].Product.Stock)
}

func TestFetchCartSurfacesBackendRejection(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"token expired"}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.FetchCart(context.Background(), "stale")
	require.Error(t, err)

	apiErr, ok := err.(*APIError)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	assert.Equal(t, "token expired", apiErr.Message)
}

func TestLoginReadsTokenFromHeader(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/account/login", r.URL.Path)
		w.Header().Set("Authorization", "Bearer backend-token")
		w.Write([]byte(`{"id":7,"username":"maria","fullName":"Maria Silva"}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	account, token, err := client.Login(context.Background(), "maria", "pw")
	require.NoError(t, err)

	assert.Equal(t, "backend-token", token)
	assert.Equal(t, int64(7), account.ID)
	assert.Equal(t, "Maria Silva", account.FullName)
}
