package mcpshop

import (
	"net/http"
	"time"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/prometheus/client_golang/prometheus"
	cartdomain "github.com/railzwaylabs/swagshop/internal/cart/domain"
	catalogdomain "github.com/railzwaylabs/swagshop/internal/catalog/domain"
	checkoutdomain "github.com/railzwaylabs/swagshop/internal/checkout/domain"
	"github.com/railzwaylabs/swagshop/internal/config"
	"github.com/railzwaylabs/swagshop/internal/widget"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const defaultSessionTTL = time.Hour

type RouterParams struct {
	fx.In

	Config   config.Config
	Catalog  catalogdomain.Service
	Carts    cartdomain.Store
	Checkout checkoutdomain.Service
	Widget   *widget.Widget
	Logger   *zap.Logger
	Registry *prometheus.Registry
}

// Router is the MCP surface. A single server backs every connection; the
// streamable transport owns the Mcp-Session-Id handshake (issued on
// initialize, validated afterwards, closed on DELETE), and tool handlers key
// cart and checkout state by the transport session id so each conversation
// gets an isolated cart.
type Router struct {
	cfg         config.Config
	catalog     catalogdomain.Service
	carts       cartdomain.Store
	checkout    checkoutdomain.Service
	widget      *widget.Widget
	log         *zap.Logger
	invocations *prometheus.CounterVec

	server  *mcpsdk.Server
	handler http.Handler
}

func NewRouter(p RouterParams) *Router {
	invocations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "swagshop_tool_invocations_total",
		Help: "MCP tool invocations by tool name and result.",
	}, []string{"tool", "result"})
	p.Registry.MustRegister(invocations)

	ttl := p.Config.Shop.SessionTTL
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}

	rt := &Router{
		cfg:         p.Config,
		catalog:     p.Catalog,
		carts:       p.Carts,
		checkout:    p.Checkout,
		widget:      p.Widget,
		log:         p.Logger.Named("mcpshop"),
		invocations: invocations,
	}
	rt.server = rt.buildServer()
	rt.handler = mcpsdk.NewStreamableHTTPHandler(func(*http.Request) *mcpsdk.Server {
		return rt.server
	}, &mcpsdk.StreamableHTTPOptions{
		// Idle sessions are torn down by the transport; carts outlive them in
		// redis until shop.cart_ttl expires.
		SessionTimeout: ttl,
	})
	return rt
}

func (rt *Router) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	rt.handler.ServeHTTP(w, r)
}
