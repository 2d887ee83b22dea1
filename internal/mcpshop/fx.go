package mcpshop

import (
	"go.uber.org/fx"
)

var Module = fx.Module("mcpshop",
	fx.Provide(NewRouter),
)
