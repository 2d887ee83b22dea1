package domain

import (
	"errors"
	"time"

	"gorm.io/datatypes"
)

var (
	ErrEmptyCart       = errors.New("cart is empty or invalid")
	ErrSessionNotFound = errors.New("checkout session not found")
)

const (
	SessionStatusReadyForPayment = "ready_for_payment"
	SessionStatusCompleted       = "completed"

	OrderStatusCompleted = "completed"
	OrderStatusFailed    = "failed"

	// ErrorCodeDeclined marks an explicit refusal from the gateway,
	// ErrorCodeGateway a transport or parse failure talking to it.
	ErrorCodeDeclined = "payment_declined"
	ErrorCodeGateway  = "payment_error"
)

// CheckoutSession is the persisted snapshot of a cart at session-creation
// time. Line items and the total are frozen here so completion authorizes the
// amount the buyer was shown, not whatever the cart holds later.
type CheckoutSession struct {
	ID           string `gorm:"primaryKey"`
	MCPSessionID string `gorm:"index"`
	Status       string
	Currency     string
	LineItems    datatypes.JSON
	AmountTotal  int64
	OrderID      string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (CheckoutSession) TableName() string {
	return "checkout_sessions"
}

// Order records one completion attempt against a checkout session. Failed
// attempts are kept so a later retry does not erase the decline history.
type Order struct {
	ID                string `gorm:"primaryKey"`
	CheckoutSessionID string `gorm:"index"`
	Status            string
	ErrorCode         string
	ErrorMessage      string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func (Order) TableName() string {
	return "orders"
}
