package repository

import (
	"context"
	"errors"

	"github.com/railzwaylabs/swagshop/internal/checkout/domain"
	"gorm.io/gorm"
)

type checkoutRepo struct {
	db *gorm.DB
}

func New(db *gorm.DB) domain.Repository {
	return &checkoutRepo{
		db: db,
	}
}

func (r *checkoutRepo) InsertSession(ctx context.Context, db *gorm.DB, session *domain.CheckoutSession) error {
	if db == nil {
		db = r.db
	}
	return db.WithContext(ctx).Create(session).Error
}

func (r *checkoutRepo) UpdateSession(ctx context.Context, db *gorm.DB, session *domain.CheckoutSession) error {
	if db == nil {
		db = r.db
	}
	return db.WithContext(ctx).Save(session).Error
}

func (r *checkoutRepo) FindSessionByID(ctx context.Context, db *gorm.DB, id string) (*domain.CheckoutSession, error) {
	if db == nil {
		db = r.db
	}
	var session domain.CheckoutSession
	if err := db.WithContext(ctx).Where("id = ?", id).First(&session).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &session, nil
}

func (r *checkoutRepo) InsertOrder(ctx context.Context, db *gorm.DB, order *domain.Order) error {
	if db == nil {
		db = r.db
	}
	return db.WithContext(ctx).Create(order).Error
}

func (r *checkoutRepo) FindOrderByID(ctx context.Context, db *gorm.DB, id string) (*domain.Order, error) {
	if db == nil {
		db = r.db
	}
	var order domain.Order
	if err := db.WithContext(ctx).Where("id = ?", id).First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}
