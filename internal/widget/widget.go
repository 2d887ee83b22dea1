package widget

import (
	_ "embed"

	"github.com/railzwaylabs/swagshop/internal/config"
	"go.uber.org/fx"
)

//go:embed shop.html
var shopHTML string

const (
	// URI is the resource identifier the host resolves tool output against.
	URI = "ui://widget/shop.html"
	// MIMEType marks the resource as a host-rendered widget.
	MIMEType = "text/html+skybridge"

	Name = "Swag Shop"
)

var Module = fx.Module("widget",
	fx.Provide(New),
)

// Widget serves the embedded storefront HTML together with the rendering
// hints the host reads from resource metadata.
type Widget struct {
	origin string
}

func New(cfg config.Config) *Widget {
	return &Widget{
		origin: cfg.Shop.WidgetOrigin,
	}
}

func (w *Widget) HTML() string {
	return shopHTML
}

// Meta returns the host rendering hints, including the CSP allow-lists
// pinned to the configured widget origin.
func (w *Widget) Meta() map[string]any {
	return map[string]any{
		"openai/widgetPrefersBorder": true,
		"openai/widgetDomain":        w.origin,
		"openai/widgetCSP": map[string]any{
			"connect_domains":  []string{w.origin},
			"resource_domains": []string{w.origin},
		},
	}
}
