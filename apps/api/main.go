package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/joho/godotenv"
	"github.com/railzwaylabs/swagshop/internal/cart"
	"github.com/railzwaylabs/swagshop/internal/catalog"
	"github.com/railzwaylabs/swagshop/internal/checkout"
	"github.com/railzwaylabs/swagshop/internal/config"
	"github.com/railzwaylabs/swagshop/internal/mcpshop"
	"github.com/railzwaylabs/swagshop/internal/observability"
	"github.com/railzwaylabs/swagshop/internal/payment"
	"github.com/railzwaylabs/swagshop/internal/redis"
	"github.com/railzwaylabs/swagshop/internal/server"
	"github.com/railzwaylabs/swagshop/internal/widget"
	"github.com/railzwaylabs/swagshop/pkg/db"
	"go.uber.org/fx"
)

func main() {
	_ = godotenv.Load()

	app := fx.New(
		config.Module,
		observability.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		redis.Module,

		catalog.Module,
		cart.Module,
		payment.Module,
		checkout.Module,
		widget.Module,
		mcpshop.Module,

		fx.Provide(server.NewEngine),
		fx.Provide(server.NewServer),
		fx.Invoke(func(s *server.Server) {
			s.RegisterRoutes()
		}),
		fx.Invoke(server.RunHTTP),
	)
	app.Run()
}

func RegisterSnowflake() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}
