package server

import (
	"context"
	"fmt"
	"log"

	"github.com/mark3labs/mcp-go/server"

	"chatanchor/internal/anchor"
	"chatanchor/internal/config"
	"chatanchor/internal/fsmeta"
	"chatanchor/internal/icons"
	"chatanchor/internal/labels"
	"chatanchor/internal/lsp"
	"chatanchor/internal/providers"
	"chatanchor/internal/tools"
	"chatanchor/pkg/types"
)

// Server identity reported during the MCP handshake
const (
	Name    = "chatanchor"
	Version = "0.1.0"
)

var _ types.Server = (*AnchorServer)(nil)

// AnchorServer exposes anchor resolution and navigation as MCP tools over
// stdio. It owns the gopls client whose capabilities feed the provider
// registry.
type AnchorServer struct {
	mcpServer *server.MCPServer
	lspClient *lsp.Client
	providers *providers.Registry
	config    config.File
}

// NewAnchorServer creates a new anchor MCP server
func NewAnchorServer(cfg config.File) *AnchorServer {
	return &AnchorServer{
		mcpServer: server.NewMCPServer(Name, Version),
		lspClient: lsp.NewClient(cfg.GoplsPath),
		providers: providers.NewRegistry(nil),
		config:    cfg,
	}
}

// Start launches the gopls client, registers the tools, and serves MCP over
// stdio until the client disconnects.
func (s *AnchorServer) Start(ctx context.Context) error {
	log.Printf("Starting anchor MCP server in %s", s.config.WorkspaceRoot)

	if err := s.lspClient.Start(ctx, s.config.WorkspaceRoot); err != nil {
		return fmt.Errorf("failed to start gopls client: %w", err)
	}
	s.providers.AttachSource(s.lspClient)

	s.registerTools()

	if err := server.ServeStdio(s.mcpServer); err != nil {
		return fmt.Errorf("failed to serve MCP server: %w", err)
	}

	return nil
}

func (s *AnchorServer) registerTools() {
	iconResolver := icons.NewThemeResolver()
	labelService := labels.NewService(s.config.WorkspaceRoot)
	metadata := fsmeta.NewService()
	registry := anchor.NewRegistry()

	resolveTool := tools.NewResolveAnchorTool(iconResolver, labelService, s.config)
	s.mcpServer.AddTool(resolveTool.GetTool(), resolveTool.Handle)

	actionsTool := tools.NewAnchorActionsTool(registry, s.providers, metadata, s.config)
	s.mcpServer.AddTool(actionsTool.GetTool(), actionsTool.Handle)

	goToDefTool := tools.NewGoToDefinitionTool(s.lspClient, s.config)
	s.mcpServer.AddTool(goToDefTool.GetTool(), goToDefTool.Handle)

	findRefsTool := tools.NewFindReferencesTool(s.lspClient, s.config)
	s.mcpServer.AddTool(findRefsTool.GetTool(), findRefsTool.Handle)
}

// Shutdown gracefully shuts down the server
func (s *AnchorServer) Shutdown(ctx context.Context) error {
	if err := s.lspClient.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown gopls client: %w", err)
	}

	return nil
}
