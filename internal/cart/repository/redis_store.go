package repository

import (
	"context"
	"strconv"
	"time"

	"github.com/railzwaylabs/swagshop/internal/cart/domain"
	"github.com/railzwaylabs/swagshop/internal/config"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const cartKeyPrefix = "cart:"

type redisStore struct {
	client *redis.Client
	log    *zap.Logger
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, cfg config.Config, log *zap.Logger) domain.Store {
	return &redisStore{
		client: client,
		log:    log.Named("cart.store"),
		ttl:    cfg.Shop.CartTTL,
	}
}

func cartKey(sessionID string) string {
	return cartKeyPrefix + sessionID
}

func (s *redisStore) Add(ctx context.Context, sessionID, productID string) (domain.Cart, error) {
	key := cartKey(sessionID)

	pipe := s.client.TxPipeline()
	pipe.HIncrBy(ctx, key, productID, 1)
	if s.ttl > 0 {
		pipe.Expire(ctx, key, s.ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, err
	}

	return s.Get(ctx, sessionID)
}

func (s *redisStore) Get(ctx context.Context, sessionID string) (domain.Cart, error) {
	key := cartKey(sessionID)

	entries, err := s.client.HGetAll(ctx, key).Result()
	if err != nil {
		return nil, err
	}

	cart := make(domain.Cart, len(entries))
	for productID, raw := range entries {
		qty, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || qty <= 0 {
			// Zero or garbage entries violate the cart invariant; prune them.
			if delErr := s.client.HDel(ctx, key, productID).Err(); delErr != nil {
				s.log.Warn("failed to prune invalid cart entry",
					zap.String("session_id", sessionID),
					zap.String("product_id", productID),
					zap.Error(delErr))
			}
			continue
		}
		cart[productID] = qty
	}

	return cart, nil
}

func (s *redisStore) Reset(ctx context.Context, sessionID string) error {
	return s.client.Del(ctx, cartKey(sessionID)).Err()
}
