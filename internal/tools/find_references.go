package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"chatanchor/internal/config"
	"chatanchor/internal/navigation"
)

// FindReferencesTool handles find-references requests
type FindReferencesTool struct {
	navigator navigation.LanguageNavigator
	config    config.File
}

// NewFindReferencesTool creates a new find-references tool
func NewFindReferencesTool(navigator navigation.LanguageNavigator, config config.File) *FindReferencesTool {
	return &FindReferencesTool{
		navigator: navigator,
		config:    config,
	}
}

// GetTool returns the MCP tool definition
func (t *FindReferencesTool) GetTool() mcp.Tool {
	tool := mcp.NewTool(ToolFindReferences,
		mcp.WithDescription("Find all references to the symbol at a position in a Go file"),
		mcp.WithString("file", mcp.Required(), mcp.Description("File path or URI")),
		mcp.WithNumber("line", mcp.Required(), mcp.Description("Zero-based line number")),
		mcp.WithNumber("character", mcp.Required(), mcp.Description("Zero-based character offset")),
	)
	return tool
}

// Handle processes the tool request
func (t *FindReferencesTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	file := mcp.ParseString(req, "file", "")
	if file == "" {
		return mcp.NewToolResultError("file parameter is required"), nil
	}
	uri := getFileURI(file, t.config.WorkspaceRoot)
	line := int(mcp.ParseFloat64(req, "line", 0))
	character := int(mcp.ParseFloat64(req, "character", 0))

	if err := t.navigator.OpenDocument(ctx, uri); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to open document: %v", err)), nil
	}

	references, err := t.navigator.References(ctx, uri, line, character)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to find references: %v", err)), nil
	}
	if len(references) == 0 {
		return mcp.NewToolResultText(fmt.Sprintf("No references found at %s:%d:%d", uri, line, character)), nil
	}

	var results []string
	for _, ref := range references {
		results = append(results, fmt.Sprintf("%s:%d:%d",
			ref.URI, ref.Range.Start.Line, ref.Range.Start.Character))
	}
	return mcp.NewToolResultText(fmt.Sprintf("Found %d reference(s):\n- %s",
		len(references), strings.Join(results, "\n- "))), nil
}
