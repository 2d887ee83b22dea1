package mcpshop

import (
	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/railzwaylabs/swagshop/internal/widget"
)

const (
	serverName    = "swagshop"
	serverVersion = "0.1.0"
)

// buildServer assembles the MCP server: the four shop tools plus the widget
// resource. Tool metadata carries the host rendering hints so results display
// through the widget.
func (rt *Router) buildServer() *mcpsdk.Server {
	srv := mcpsdk.NewServer(&mcpsdk.Implementation{
		Name:    serverName,
		Version: serverVersion,
	}, nil)

	h := &handlers{
		catalog:     rt.catalog,
		carts:       rt.carts,
		checkout:    rt.checkout,
		widget:      rt.widget,
		log:         rt.log,
		invocations: rt.invocations,
		sessionID:   sessionFromRequest,
	}

	srv.AddTool(&mcpsdk.Tool{
		Name:        "add_to_cart",
		Title:       "Add to cart",
		Description: "Adds a product to the cart by ID.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"productId": map[string]interface{}{"type": "string"},
			},
			"required": []interface{}{"productId"},
		},
		Meta: toolMeta("Adding to cart", "Added to cart"),
	}, h.addToCart)

	srv.AddTool(&mcpsdk.Tool{
		Name:        "reset_cart",
		Title:       "Reset cart",
		Description: "Clears the shopping cart.",
		InputSchema: map[string]interface{}{"type": "object"},
		Meta:        toolMeta("Resetting cart", "Reset cart"),
	}, h.resetCart)

	srv.AddTool(&mcpsdk.Tool{
		Name:        "create_checkout_session",
		Title:       "Create checkout session",
		Description: "Creates a checkout session for the current cart.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"cart": map[string]interface{}{
					"type":        "object",
					"description": "Optional explicit cart of product id to quantity; replaces the stored cart.",
					"additionalProperties": map[string]interface{}{
						"type": "integer",
					},
				},
			},
		},
		Meta: toolMeta("Creating checkout session", "Created checkout session"),
	}, h.createCheckoutSession)

	srv.AddTool(&mcpsdk.Tool{
		Name:        "complete_checkout",
		Title:       "Complete checkout",
		Description: "Completes payment for a checkout session and returns the order.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"checkout_session_id": map[string]interface{}{"type": "string"},
				"buyer": map[string]interface{}{
					"type": "object",
					"properties": map[string]interface{}{
						"email": map[string]interface{}{"type": "string"},
					},
				},
				"payment_data": map[string]interface{}{
					"type": "object",
					"properties": map[string]interface{}{
						"token":           map[string]interface{}{"type": "string"},
						"billing_address": map[string]interface{}{"type": "object"},
					},
					"required": []interface{}{"token"},
				},
			},
			"required": []interface{}{"checkout_session_id", "payment_data"},
		},
		Meta: toolMeta("Completing checkout", "Completed checkout"),
	}, h.completeCheckout)

	srv.AddResource(&mcpsdk.Resource{
		Name:     widget.Name,
		URI:      widget.URI,
		MIMEType: widget.MIMEType,
	}, h.readWidget)

	return srv
}

func toolMeta(invoking, invoked string) mcpsdk.Meta {
	return mcpsdk.Meta{
		"openai/outputTemplate":          widget.URI,
		"openai/toolInvocation/invoking": invoking,
		"openai/toolInvocation/invoked":  invoked,
	}
}
