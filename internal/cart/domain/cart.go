package domain

import "context"

// Cart maps product id to quantity for one conversational session.
// Quantities are always >= 1; entries that would drop to zero are removed
// rather than stored.
type Cart map[string]int64

func (c Cart) IsEmpty() bool {
	return len(c) == 0
}

func (c Cart) Quantity(productID string) int64 {
	return c[productID]
}

// Store holds one cart per MCP session identifier. Implementations must
// serialize concurrent mutations for the same session.
type Store interface {
	// Add increments the quantity for productID and returns the updated cart.
	Add(ctx context.Context, sessionID, productID string) (Cart, error)
	// Get returns the current cart, never nil.
	Get(ctx context.Context, sessionID string) (Cart, error)
	// Reset removes every entry for the session.
	Reset(ctx context.Context, sessionID string) error
}
