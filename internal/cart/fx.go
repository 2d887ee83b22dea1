package cart

import (
	"github.com/railzwaylabs/swagshop/internal/cart/repository"
	"go.uber.org/fx"
)

var Module = fx.Module("cart.store",
	fx.Provide(repository.NewRedisStore),
)
