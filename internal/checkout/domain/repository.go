package domain

import (
	"context"

	"gorm.io/gorm"
)

// Repository persists checkout sessions and orders. Finders return (nil, nil)
// when the row does not exist. The db argument lets callers run inside a
// transaction; nil falls back to the repository's own handle.
type Repository interface {
	InsertSession(ctx context.Context, db *gorm.DB, session *CheckoutSession) error
	UpdateSession(ctx context.Context, db *gorm.DB, session *CheckoutSession) error
	FindSessionByID(ctx context.Context, db *gorm.DB, id string) (*CheckoutSession, error)
	InsertOrder(ctx context.Context, db *gorm.DB, order *Order) error
	FindOrderByID(ctx context.Context, db *gorm.DB, id string) (*Order, error)
}
