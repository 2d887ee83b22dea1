package checkout

import (
	"github.com/railzwaylabs/swagshop/internal/checkout/domain"
	"github.com/railzwaylabs/swagshop/internal/checkout/repository"
	"github.com/railzwaylabs/swagshop/internal/checkout/service"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("checkout.service",
	fx.Provide(repository.New),
	fx.Provide(service.New),
	fx.Invoke(migrate),
)

func migrate(db *gorm.DB) error {
	return db.AutoMigrate(&domain.CheckoutSession{}, &domain.Order{})
}
