package mcpshop

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/prometheus/client_golang/prometheus"
	cartrepo "github.com/railzwaylabs/swagshop/internal/cart/repository"
	catalogservice "github.com/railzwaylabs/swagshop/internal/catalog/service"
	checkoutdomain "github.com/railzwaylabs/swagshop/internal/checkout/domain"
	"github.com/railzwaylabs/swagshop/internal/widget"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestRouter(t *testing.T) (*Router, *mockCheckout) {
	t.Helper()

	s, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(s.Close)
	rdb := redis.NewClient(&redis.Options{Addr: s.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	cfg := testConfig()
	checkout := &mockCheckout{}
	rt := NewRouter(RouterParams{
		Config:   cfg,
		Catalog:  catalogservice.New(),
		Carts:    cartrepo.NewRedisStore(rdb, cfg, zap.NewNop()),
		Checkout: checkout,
		Widget:   widget.New(cfg),
		Logger:   zap.NewNop(),
		Registry: prometheus.NewRegistry(),
	})
	return rt, checkout
}

func connect(t *testing.T, url string) *mcpsdk.ClientSession {
	t.Helper()
	client := mcpsdk.NewClient(&mcpsdk.Implementation{
		Name:    "swagshop-test-client",
		Version: "0.1.0",
	}, nil)
	session, err := client.Connect(context.Background(), &mcpsdk.StreamableClientTransport{
		Endpoint: url,
	}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = session.Close() })
	return session
}

func callTool(t *testing.T, session *mcpsdk.ClientSession, name string, args map[string]any) *mcpsdk.CallToolResult {
	t.Helper()
	result, err := session.CallTool(context.Background(), &mcpsdk.CallToolParams{
		Name:      name,
		Arguments: args,
	})
	require.NoError(t, err)
	return result
}

func TestRoundTripAddToCart(t *testing.T) {
	rt, _ := newTestRouter(t)
	ts := httptest.NewServer(rt)
	t.Cleanup(ts.Close)

	session := connect(t, ts.URL)
	result := callTool(t, session, "add_to_cart", map[string]any{"productId": "tshirt"})
	assert.False(t, result.IsError)

	text := result.Content[0].(*mcpsdk.TextContent).Text
	assert.Equal(t, "Added Worldpay T-Shirt to cart.", text)

	content := structured(t, result)
	cart := content["cart"].(map[string]interface{})
	assert.Equal(t, float64(1), cart["tshirt"])
}

func TestRoundTripCartsAreIsolated(t *testing.T) {
	rt, _ := newTestRouter(t)
	ts := httptest.NewServer(rt)
	t.Cleanup(ts.Close)

	first := connect(t, ts.URL)
	callTool(t, first, "add_to_cart", map[string]any{"productId": "tshirt"})
	callTool(t, first, "add_to_cart", map[string]any{"productId": "tshirt"})

	second := connect(t, ts.URL)
	result := callTool(t, second, "add_to_cart", map[string]any{"productId": "tshirt"})

	cart := structured(t, result)["cart"].(map[string]interface{})
	assert.Equal(t, float64(1), cart["tshirt"])
}

func TestRoundTripSessionIDStableAcrossCalls(t *testing.T) {
	rt, checkout := newTestRouter(t)
	ts := httptest.NewServer(rt)
	t.Cleanup(ts.Close)

	var seen []string
	checkout.On("CreateSession", mock.Anything, mock.Anything, mock.Anything).
		Return(&checkoutdomain.SessionView{ID: "sess_abc"}, nil).
		Run(func(args mock.Arguments) {
			seen = append(seen, args.String(1))
		})

	session := connect(t, ts.URL)
	callTool(t, session, "create_checkout_session", map[string]any{})
	callTool(t, session, "create_checkout_session", map[string]any{})

	other := connect(t, ts.URL)
	callTool(t, other, "create_checkout_session", map[string]any{})

	require.Len(t, seen, 3)
	assert.NotEmpty(t, seen[0])
	assert.Equal(t, seen[0], seen[1])
	assert.NotEqual(t, seen[0], seen[2])
}

func TestRoundTripReadWidget(t *testing.T) {
	rt, _ := newTestRouter(t)
	ts := httptest.NewServer(rt)
	t.Cleanup(ts.Close)

	session := connect(t, ts.URL)
	result, err := session.ReadResource(context.Background(), &mcpsdk.ReadResourceParams{
		URI: widget.URI,
	})
	require.NoError(t, err)
	require.Len(t, result.Contents, 1)
	assert.Equal(t, widget.MIMEType, result.Contents[0].MIMEType)
	assert.Contains(t, result.Contents[0].Text, "<!DOCTYPE html>")
}
