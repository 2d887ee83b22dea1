package mcpshop

import (
	"context"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/railzwaylabs/swagshop/internal/widget"
)

func (h *handlers) readWidget(ctx context.Context, req *mcpsdk.ReadResourceRequest) (*mcpsdk.ReadResourceResult, error) {
	return &mcpsdk.ReadResourceResult{
		Contents: []*mcpsdk.ResourceContents{
			{
				URI:      widget.URI,
				MIMEType: widget.MIMEType,
				Text:     h.widget.HTML(),
				Meta:     mcpsdk.Meta(h.widget.Meta()),
			},
		},
	}, nil
}
