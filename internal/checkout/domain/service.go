package domain

import (
	"context"

	cartdomain "github.com/railzwaylabs/swagshop/internal/cart/domain"
)

type CompleteInput struct {
	CheckoutSessionID string
	BuyerEmail        string
	PaymentToken      string
}

type Service interface {
	// CreateSession snapshots the cart into a persisted checkout session.
	// When explicit is non-nil it replaces the stored cart for this call.
	// Returns ErrEmptyCart when no valid line item survives filtering.
	CreateSession(ctx context.Context, mcpSessionID string, explicit cartdomain.Cart) (*SessionView, error)

	// Complete authorizes payment for a previously created session. Declines
	// and gateway failures are reported in the view, not as errors; the cart
	// is cleared only on a confirmed completion. Returns ErrSessionNotFound
	// for an unknown session id. Completing an already completed session
	// returns the stored order without a second authorization.
	Complete(ctx context.Context, mcpSessionID string, in CompleteInput) (*CompletionView, error)
}
