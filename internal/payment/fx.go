package payment

import (
	"github.com/railzwaylabs/swagshop/internal/payment/adapters/worldpay"
	"go.uber.org/fx"
)

var Module = fx.Module("payment.gateway",
	fx.Provide(worldpay.New),
)
