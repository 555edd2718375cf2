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

// AnchorActionsTool reports which context-menu actions apply to a reference
type AnchorActionsTool struct {
	registry  *anchor.Registry
	providers types.ProviderRegistry
	metadata  types.ResourceMetadata
	config    config.File
}

// NewAnchorActionsTool creates a new anchor-actions tool
func NewAnchorActionsTool(registry *anchor.Registry, providers types.ProviderRegistry, metadata types.ResourceMetadata, config config.File) *AnchorActionsTool {
	return &AnchorActionsTool{
		registry:  registry,
		providers: providers,
		metadata:  metadata,
		config:    config,
	}
}

// GetTool returns the MCP tool definition
func (t *AnchorActionsTool) GetTool() mcp.Tool {
	tool := mcp.NewTool(ToolAnchorActions,
		mcp.WithDescription("List the context-menu actions applicable to a chat inline reference"),
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
func (t *AnchorActionsTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ref := parseReference(req, t.config.WorkspaceRoot)

	classified, err := anchor.Classify(ref)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to classify reference: %v", err)), nil
	}

	scope, menuID := t.buildScope(ctx, classified)
	actions := t.registry.ActionsFor(menuID, scope)
	if len(actions) == 0 {
		return mcp.NewToolResultText(fmt.Sprintf("No actions apply to this %s reference", classified.Variant)), nil
	}

	var lines []string
	for _, action := range actions {
		lines = append(lines, fmt.Sprintf("%s (%s)", action.Title, action.ID))
	}
	return mcp.NewToolResultText(fmt.Sprintf("Found %d action(s):\n- %s",
		len(actions), strings.Join(lines, "\n- "))), nil
}

// buildScope evaluates the anchor context keys the menu filter reads. Unlike
// the interactive widget, the tool resolves the folder flag synchronously.
func (t *AnchorActionsTool) buildScope(ctx context.Context, classified anchor.Classified) (*anchor.ContextScope, string) {
	scope := anchor.NewContextScope()
	scope.Set(anchor.KeyVariant, string(classified.Variant))

	if classified.Variant == anchor.VariantSymbol {
		uri := classified.TargetURI()
		if t.providers != nil {
			scope.Set(anchor.KeyHasDefinition, t.providers.HasDefinitionProvider(uri))
			scope.Set(anchor.KeyHasReference, t.providers.HasReferenceProvider(uri))
		}
		return scope, anchor.MenuSymbolAnchor
	}

	isFolder := strings.HasSuffix(strings.TrimPrefix(classified.URI, "file://"), "/")
	if t.metadata != nil {
		if stat, err := t.metadata.Stat(ctx, classified.URI); err == nil {
			isFolder = stat.IsDirectory
		}
	}
	scope.Set(anchor.KeyIsFolder, isFolder)
	return scope, anchor.MenuResourceAnchor
}
