package worldpay_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/railzwaylabs/swagshop/internal/config"
	"github.com/railzwaylabs/swagshop/internal/payment/adapters/worldpay"
	"github.com/railzwaylabs/swagshop/internal/payment/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testConfig(baseURL string) config.Config {
	cfg := config.Config{}
	cfg.Worldpay.BaseURL = baseURL
	cfg.Worldpay.Username = "merchant-user"
	cfg.Worldpay.Password = "merchant-pass"
	cfg.Worldpay.Timeout = 2 * time.Second
	cfg.Merchant.Entity = "default"
	return cfg
}

func newAdapter(baseURL string) domain.Authorizer {
	return worldpay.New(testConfig(baseURL), zap.NewNop(), prometheus.NewRegistry())
}

func authRequest() domain.AuthorizationRequest {
	return domain.AuthorizationRequest{
		TransactionReference: "sess_abc",
		Token:                "https://try.access.worldpay.com/tokens/123",
		Amount:               4000,
		Currency:             "USD",
		CustomerEmail:        "buyer@example.com",
	}
}

func TestAuthorizeAuthorized(t *testing.T) {
	var captured map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/payments", r.URL.Path)

		user, pass, ok := r.BasicAuth()
		require.True(t, ok)
		assert.Equal(t, "merchant-user", user)
		assert.Equal(t, "merchant-pass", pass)

		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"outcome": "authorized"})
	}))
	defer srv.Close()

	result, err := newAdapter(srv.URL).Authorize(context.Background(), authRequest())
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeAuthorized, result.Outcome)

	assert.Equal(t, "sess_abc", captured["transactionReference"])
	instruction := captured["instruction"].(map[string]any)
	value := instruction["value"].(map[string]any)
	assert.Equal(t, float64(4000), value["amount"])
	assert.Equal(t, "USD", value["currency"])
	instrument := instruction["paymentInstrument"].(map[string]any)
	assert.Equal(t, "https://try.access.worldpay.com/tokens/123", instrument["tokenHref"])
	assert.Equal(t, map[string]any{"email": "buyer@example.com"}, captured["customer"])
}

func TestAuthorizeRefusedOutcome(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"outcome":            "refused",
			"refusalCode":        "5",
			"refusalDescription": "do not honor",
		})
	}))
	defer srv.Close()

	result, err := newAdapter(srv.URL).Authorize(context.Background(), authRequest())
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeDeclined, result.Outcome)
	assert.Equal(t, "5", result.ErrorName)
	assert.Equal(t, "do not honor", result.ErrorMessage)
}

func TestAuthorizeNon2xxIsDeclined(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"errorName": "unauthorized",
			"message":   "invalid credentials",
		})
	}))
	defer srv.Close()

	result, err := newAdapter(srv.URL).Authorize(context.Background(), authRequest())
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeDeclined, result.Outcome)
	assert.Equal(t, "unauthorized", result.ErrorName)
	assert.Equal(t, "invalid credentials", result.ErrorMessage)
}

func TestAuthorizeGarbledBodyIsGatewayError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html>not json</html>"))
	}))
	defer srv.Close()

	result, err := newAdapter(srv.URL).Authorize(context.Background(), authRequest())
	require.Error(t, err)
	assert.Nil(t, result)
}

func TestAuthorizeUnreachableGatewayIsGatewayError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	result, err := newAdapter(srv.URL).Authorize(context.Background(), authRequest())
	require.Error(t, err)
	assert.Nil(t, result)
}

func TestAuthorizeOmitsEmptyCustomer(t *testing.T) {
	var captured map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		_ = json.NewEncoder(w).Encode(map[string]any{"outcome": "authorized"})
	}))
	defer srv.Close()

	req := authRequest()
	req.CustomerEmail = ""
	_, err := newAdapter(srv.URL).Authorize(context.Background(), req)
	require.NoError(t, err)

	_, hasCustomer := captured["customer"]
	assert.False(t, hasCustomer)
}
