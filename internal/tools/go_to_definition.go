package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"chatanchor/internal/config"
	"chatanchor/internal/navigation"
)

// GoToDefinitionTool handles go-to-definition requests
type GoToDefinitionTool struct {
	navigator navigation.LanguageNavigator
	config    config.File
}

// NewGoToDefinitionTool creates a new go-to-definition tool
func NewGoToDefinitionTool(navigator navigation.LanguageNavigator, config config.File) *GoToDefinitionTool {
	return &GoToDefinitionTool{
		navigator: navigator,
		config:    config,
	}
}

// GetTool returns the MCP tool definition
func (t *GoToDefinitionTool) GetTool() mcp.Tool {
	tool := mcp.NewTool(ToolGoToDefinition,
		mcp.WithDescription("Find the definition of the symbol at a position in a Go file"),
		mcp.WithString("file", mcp.Required(), mcp.Description("File path or URI")),
		mcp.WithNumber("line", mcp.Required(), mcp.Description("Zero-based line number")),
		mcp.WithNumber("character", mcp.Required(), mcp.Description("Zero-based character offset")),
	)
	return tool
}

// Handle processes the tool request
func (t *GoToDefinitionTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
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

	definitions, err := t.navigator.Definition(ctx, uri, line, character)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to get definition: %v", err)), nil
	}
	if len(definitions) == 0 {
		return mcp.NewToolResultText(fmt.Sprintf("No definition found at %s:%d:%d", uri, line, character)), nil
	}

	var results []string
	for _, def := range definitions {
		results = append(results, fmt.Sprintf("%s:%d:%d",
			def.URI, def.Range.Start.Line, def.Range.Start.Character))
	}
	return mcp.NewToolResultText(fmt.Sprintf("Found %d definition(s):\n- %s",
		len(definitions), strings.Join(results, "\n- "))), nil
}
