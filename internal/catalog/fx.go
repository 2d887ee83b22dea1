package catalog

import (
	"github.com/railzwaylabs/swagshop/internal/catalog/service"
	"go.uber.org/fx"
)

var Module = fx.Module("catalog.service",
	fx.Provide(service.New),
)
