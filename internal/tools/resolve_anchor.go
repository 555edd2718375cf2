package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"chatanchor/internal/anchor"
	"chatanchor/internal/config"
	"chatanchor/pkg/types"
)

// ResolveAnchorTool classifies an inline reference and reports its derived
// display data
type ResolveAnchorTool struct {
	icons  types.IconResolver
	labels types.LabelService
	config config.File
}

// NewResolveAnchorTool creates a new resolve-anchor tool
func NewResolveAnchorTool(icons types.IconResolver, labels types.LabelService, config config.File) *ResolveAnchorTool {
	return &ResolveAnchorTool{
		icons:  icons,
		labels: labels,
		config: config,
	}
}

// GetTool returns the MCP tool definition
func (t *ResolveAnchorTool) GetTool() mcp.Tool {
	tool := mcp.NewTool(ToolResolveAnchor,
		mcp.WithDescription("Classify a chat inline reference and derive its display data"),
		mcp.WithString("file", mcp.Description("File path or URI the reference points at")),
		mcp.WithString("symbol", mcp.Description("Symbol name, for symbol references")),
		mcp.WithNumber("kind", mcp.Description("LSP symbol kind, for symbol references")),
		mcp.WithNumber("line", mcp.Description("Zero-based symbol line, for symbol references")),
		mcp.WithNumber("character", mcp.Description("Zero-based symbol character, for symbol references")),
		mcp.WithNumber("start_line", mcp.Description("One-based range start, for resource references")),
		mcp.WithNumber("end_line", mcp.Description("One-based range end, for resource references")),
	)
	return tool
}

// Handle processes the tool request
func (t *ResolveAnchorTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ref := parseReference(req, t.config.WorkspaceRoot)

	classified, err := anchor.Classify(ref)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to classify reference: %v", err)), nil
	}

	display := anchor.DeriveDisplay(classified, t.icons, t.labels)
	return mcp.NewToolResultText(fmt.Sprintf("Variant: %s\nLabel: %s\nIcons: %s\nTarget: %s",
		classified.Variant, display.Label, strings.Join(display.IconClasses, " "), display.LinkTarget)), nil
}
