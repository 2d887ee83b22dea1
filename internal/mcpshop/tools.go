package mcpshop

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/prometheus/client_golang/prometheus"
	cartdomain "github.com/railzwaylabs/swagshop/internal/cart/domain"
	catalogdomain "github.com/railzwaylabs/swagshop/internal/catalog/domain"
	checkoutdomain "github.com/railzwaylabs/swagshop/internal/checkout/domain"
	"github.com/railzwaylabs/swagshop/internal/widget"
	"go.uber.org/zap"
)

type handlers struct {
	catalog     catalogdomain.Service
	carts       cartdomain.Store
	checkout    checkoutdomain.Service
	widget      *widget.Widget
	log         *zap.Logger
	invocations *prometheus.CounterVec

	// sessionID resolves the session identifier for a tool call; swapped out
	// in tests.
	sessionID func(req *mcpsdk.CallToolRequest) string
}

// sessionFromRequest keys per-conversation state by the id the streamable
// transport assigned on initialize.
func sessionFromRequest(req *mcpsdk.CallToolRequest) string {
	if req.Session != nil {
		return req.Session.ID()
	}
	return ""
}

type addToCartInput struct {
	ProductID string `json:"productId"`
}

type createCheckoutSessionInput struct {
	Cart map[string]int64 `json:"cart"`
}

type completeCheckoutInput struct {
	CheckoutSessionID string `json:"checkout_session_id"`
	Buyer             *struct {
		Email string `json:"email"`
	} `json:"buyer"`
	PaymentData *struct {
		Token          string          `json:"token"`
		BillingAddress json.RawMessage `json:"billing_address"`
	} `json:"payment_data"`
}

func (h *handlers) addToCart(ctx context.Context, req *mcpsdk.CallToolRequest) (*mcpsdk.CallToolResult, error) {
	var in addToCartInput
	if err := unmarshalArgs(req, &in); err != nil || in.ProductID == "" {
		return h.errorResult("add_to_cart", "productId is required."), nil
	}

	product, err := h.catalog.Find(in.ProductID)
	if err != nil {
		return h.errorResult("add_to_cart", fmt.Sprintf("Product %q not found.", in.ProductID)), nil
	}

	sid := h.sessionID(req)
	cart, err := h.carts.Add(ctx, sid, in.ProductID)
	if err != nil {
		h.log.Error("failed to update cart",
			zap.String("mcp_session_id", sid),
			zap.Error(err))
		return h.errorResult("add_to_cart", "Could not update the cart."), nil
	}

	h.invocations.WithLabelValues("add_to_cart", "ok").Inc()
	return cartResult(cart, fmt.Sprintf("Added %s to cart.", product.Name)), nil
}

func (h *handlers) resetCart(ctx context.Context, req *mcpsdk.CallToolRequest) (*mcpsdk.CallToolResult, error) {
	sid := h.sessionID(req)
	if err := h.carts.Reset(ctx, sid); err != nil {
		h.log.Error("failed to reset cart",
			zap.String("mcp_session_id", sid),
			zap.Error(err))
		return h.errorResult("reset_cart", "Could not reset the cart."), nil
	}

	h.invocations.WithLabelValues("reset_cart", "ok").Inc()
	return cartResult(cartdomain.Cart{}, "Cart cleared."), nil
}

func (h *handlers) createCheckoutSession(ctx context.Context, req *mcpsdk.CallToolRequest) (*mcpsdk.CallToolResult, error) {
	var in createCheckoutSessionInput
	if err := unmarshalArgs(req, &in); err != nil {
		return h.errorResult("create_checkout_session", "Request body is not valid JSON."), nil
	}

	var explicit cartdomain.Cart
	if in.Cart != nil {
		explicit = cartdomain.Cart(in.Cart)
	}

	view, err := h.checkout.CreateSession(ctx, h.sessionID(req), explicit)
	if err != nil {
		if errors.Is(err, checkoutdomain.ErrEmptyCart) {
			return h.errorResult("create_checkout_session", "Cart is empty or invalid."), nil
		}
		h.log.Error("failed to create checkout session", zap.Error(err))
		return h.errorResult("create_checkout_session", "Could not create a checkout session."), nil
	}

	h.invocations.WithLabelValues("create_checkout_session", "ok").Inc()
	return &mcpsdk.CallToolResult{
		Content: []mcpsdk.Content{
			&mcpsdk.TextContent{Text: "Checkout session created"},
		},
		StructuredContent: view,
	}, nil
}

func (h *handlers) completeCheckout(ctx context.Context, req *mcpsdk.CallToolRequest) (*mcpsdk.CallToolResult, error) {
	var in completeCheckoutInput
	if err := unmarshalArgs(req, &in); err != nil {
		return h.errorResult("complete_checkout", "Request body is not valid JSON."), nil
	}
	if in.CheckoutSessionID == "" || in.PaymentData == nil || in.PaymentData.Token == "" {
		return h.errorResult("complete_checkout", "checkout_session_id and payment_data.token are required."), nil
	}

	input := checkoutdomain.CompleteInput{
		CheckoutSessionID: in.CheckoutSessionID,
		PaymentToken:      in.PaymentData.Token,
	}
	if in.Buyer != nil {
		input.BuyerEmail = in.Buyer.Email
	}

	view, err := h.checkout.Complete(ctx, h.sessionID(req), input)
	if err != nil {
		if errors.Is(err, checkoutdomain.ErrSessionNotFound) {
			return h.errorResult("complete_checkout", "Checkout session not found."), nil
		}
		h.log.Error("failed to complete checkout", zap.Error(err))
		return h.errorResult("complete_checkout", "Could not complete checkout."), nil
	}

	if !view.Confirmed() {
		h.invocations.WithLabelValues("complete_checkout", "error").Inc()
		message := "Payment failed."
		if view.Error != nil && view.Error.Message != "" {
			message = view.Error.Message
		}
		return &mcpsdk.CallToolResult{
			IsError: true,
			Content: []mcpsdk.Content{
				&mcpsdk.TextContent{Text: message},
			},
			StructuredContent: view,
		}, nil
	}

	h.invocations.WithLabelValues("complete_checkout", "ok").Inc()
	return &mcpsdk.CallToolResult{
		Content: []mcpsdk.Content{
			&mcpsdk.TextContent{Text: "Order confirmed"},
		},
		StructuredContent: view,
	}, nil
}

func (h *handlers) errorResult(tool, message string) *mcpsdk.CallToolResult {
	h.invocations.WithLabelValues(tool, "error").Inc()
	return &mcpsdk.CallToolResult{
		IsError: true,
		Content: []mcpsdk.Content{
			&mcpsdk.TextContent{Text: message},
		},
	}
}

func cartResult(cart cartdomain.Cart, message string) *mcpsdk.CallToolResult {
	result := &mcpsdk.CallToolResult{
		StructuredContent: map[string]interface{}{"cart": cart},
	}
	if message != "" {
		result.Content = []mcpsdk.Content{
			&mcpsdk.TextContent{Text: message},
		}
	}
	return result
}

func unmarshalArgs(req *mcpsdk.CallToolRequest, v interface{}) error {
	if len(req.Params.Arguments) == 0 {
		return nil
	}
	return json.Unmarshal(req.Params.Arguments, v)
}
