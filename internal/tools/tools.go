package tools

import (
	"path/filepath"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"chatanchor/pkg/types"
)

// Tool name prefix for all MCP tools
const ToolPrefix = "anchor."

// Tool names
const (
	ToolResolveAnchor  = ToolPrefix + "resolve"
	ToolAnchorActions  = ToolPrefix + "actions"
	ToolGoToDefinition = ToolPrefix + "go_to_definition"
	ToolFindReferences = ToolPrefix + "find_references"
)

// getFileURI converts a file path to a file URI
func getFileURI(filePath string, workspaceRoot string) string {
	if strings.HasPrefix(filePath, "file://") {
		return filePath
	}

	if !filepath.IsAbs(filePath) {
		filePath = filepath.Join(workspaceRoot, filePath)
	}

	return "file://" + filePath
}

// parseReference builds an inline reference from MCP request arguments. A
// request with a symbol name must also carry file, line and character; a
// request without one is a resource reference with an optional line range.
func parseReference(req mcp.CallToolRequest, workspaceRoot string) types.InlineReference {
	file := mcp.ParseString(req, "file", "")
	uri := ""
	if file != "" {
		uri = getFileURI(file, workspaceRoot)
	}

	symbol := mcp.ParseString(req, "symbol", "")
	if symbol != "" {
		line := int(mcp.ParseFloat64(req, "line", 0))
		character := int(mcp.ParseFloat64(req, "character", 0))
		kind := int(mcp.ParseFloat64(req, "kind", 0))
		ref := types.InlineReference{
			Name: symbol,
			Kind: kind,
		}
		if uri != "" {
			ref.Location = &types.Location{
				URI: uri,
				Range: types.Range{
					Start: types.Position{Line: line, Character: character},
					End:   types.Position{Line: line, Character: character},
				},
			}
		}
		return ref
	}

	ref := types.InlineReference{URI: uri}
	startLine := int(mcp.ParseFloat64(req, "start_line", 0))
	endLine := int(mcp.ParseFloat64(req, "end_line", 0))
	if startLine > 0 {
		if endLine < startLine {
			endLine = startLine
		}
		ref.Range = &types.LineRange{StartLine: startLine, EndLine: endLine}
	}
	return ref
}
