package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/railzwaylabs/swagshop/internal/config"
	"github.com/railzwaylabs/swagshop/internal/mcpshop"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

func NewEngine() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())
	return engine
}

type ServerParams struct {
	fx.In

	Engine   *gin.Engine
	Router   *mcpshop.Router
	Config   config.Config
	Registry *prometheus.Registry
	Logger   *zap.Logger
}

type Server struct {
	engine   *gin.Engine
	router   *mcpshop.Router
	cfg      config.Config
	registry *prometheus.Registry
	logger   *zap.Logger
}

func NewServer(p ServerParams) *Server {
	return &Server{
		engine:   p.Engine,
		router:   p.Router,
		cfg:      p.Config,
		registry: p.Registry,
		logger:   p.Logger.Named("server"),
	}
}

// RegisterRoutes wires the plain HTTP surface. Everything outside the named
// routes falls through to the MCP transport, which owns its own protocol
// semantics per method and path.
func (s *Server) RegisterRoutes() {
	s.engine.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "Shop MCP server")
	})

	s.engine.GET("/.well-known/openai-apps-challenge", func(c *gin.Context) {
		c.String(http.StatusOK, s.cfg.Shop.ChallengeToken)
	})

	s.engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	s.engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{})))

	s.engine.NoRoute(gin.WrapH(s.router))
}

func RunHTTP(lc fx.Lifecycle, s *Server) {
	srv := &http.Server{
		Addr:    s.cfg.Server.Addr,
		Handler: s.engine,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			s.logger.Info("starting http server", zap.String("addr", srv.Addr))
			go func() {
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					s.logger.Error("http server stopped", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			s.logger.Info("stopping http server")
			return srv.Shutdown(ctx)
		},
	})
}
