package mcptools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/dshills/lenscheck/internal/lens"
)

// ListTool handles the lens_list MCP tool.
type ListTool struct{}

// NewListTool creates a ListTool.
func NewListTool() *ListTool {
	return &ListTool{}
}

// Definition returns the MCP tool definition for registration.
func (t *ListTool) Definition() mcp.Tool {
	return mcp.NewTool("lens_list",
		mcp.WithDescription("List the available assessment lenses with their question counts."),
	)
}

// Handle processes the lens_list tool call.
func (t *ListTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	names, err := lens.List()
	if err != nil {
		return nil, fmt.Errorf("listing lenses: %w", err)
	}

	var b strings.Builder
	b.WriteString("## Lenses\n\n")
	for _, name := range names {
		l, err := lens.LoadBuiltin(name)
		if err != nil {
			return nil, fmt.Errorf("loading lens %s: %w", name, err)
		}
		fmt.Fprintf(&b, "- **%s** (`%s`): %d questions", l.Title, l.Name, len(l.Bank))
		if l.Description != "" {
			fmt.Fprintf(&b, ". %s", strings.TrimSpace(l.Description))
		}
		b.WriteString("\n")
	}
	return mcp.NewToolResultText(b.String()), nil
}
