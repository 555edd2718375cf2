package lsp

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"sync"
	"time"

	"chatanchor/pkg/types"
)

const (
	defaultGoplsPath = "gopls"
	serverStartDelay = 100 * time.Millisecond
)

// Capabilities is the subset of the server's advertised capabilities the
// anchor widget cares about.
type Capabilities struct {
	Definition bool
	References bool
}

// Client is a gopls language client. It owns the server process, tracks which
// documents have been opened, and exposes the definition and reference
// queries that back anchor navigation.
type Client struct {
	goplsPath string
	cmd       *exec.Cmd
	transport *Transport

	mu       sync.RWMutex
	caps     Capabilities
	openDocs map[string]bool
	started  bool
}

// NewClient creates a client for the given gopls binary
func NewClient(goplsPath string) *Client {
	if goplsPath == "" {
		goplsPath = defaultGoplsPath
	}
	return &Client{
		goplsPath: goplsPath,
		openDocs:  make(map[string]bool),
	}
}

// Start launches gopls and performs the initialize handshake, capturing the
// server's provider capabilities.
func (c *Client) Start(ctx context.Context, workspaceRoot string) error {
	cmd := exec.CommandContext(ctx, c.goplsPath, "serve")

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return fmt.Errorf("failed to create stdin pipe: %w", err)
	}

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("failed to create stdout pipe: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start gopls: %w", err)
	}

	c.cmd = cmd
	c.transport = NewTransport(stdin, stdout)
	c.transport.Start()

	// Give gopls a moment to start
	time.Sleep(serverStartDelay)

	if err := c.initialize(ctx, "file://"+workspaceRoot); err != nil {
		return err
	}

	c.mu.Lock()
	c.started = true
	c.mu.Unlock()
	return nil
}

// initialize performs the LSP handshake and records provider capabilities
func (c *Client) initialize(ctx context.Context, rootURI string) error {
	params := map[string]any{
		"processId": nil,
		"clientInfo": map[string]any{
			"name": "chatanchor",
		},
		"rootUri":      rootURI,
		"capabilities": map[string]any{},
	}

	response, err := c.transport.SendRequest(ctx, "initialize", params)
	if err != nil {
		return fmt.Errorf("failed to initialize: %w", err)
	}

	var result struct {
		Capabilities struct {
			DefinitionProvider json.RawMessage `json:"definitionProvider"`
			ReferencesProvider json.RawMessage `json:"referencesProvider"`
		} `json:"capabilities"`
	}
	if err := json.Unmarshal(response, &result); err != nil {
		return fmt.Errorf("failed to unmarshal initialize response: %w", err)
	}

	c.mu.Lock()
	c.caps = Capabilities{
		Definition: providerAdvertised(result.Capabilities.DefinitionProvider),
		References: providerAdvertised(result.Capabilities.ReferencesProvider),
	}
	c.mu.Unlock()

	return c.transport.SendNotification("initialized", map[string]any{})
}

// providerAdvertised interprets an LSP capability value, which may be a
// boolean or a registration options object.
func providerAdvertised(raw json.RawMessage) bool {
	if len(raw) == 0 {
		return false
	}
	s := strings.TrimSpace(string(raw))
	return s != "null" && s != "false"
}

// Capabilities returns the capabilities captured during the handshake
func (c *Client) Capabilities() Capabilities {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.caps
}

// IsOpen reports whether a document model is loaded for the URI
func (c *Client) IsOpen(uri string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.openDocs[uri]
}

// OpenDocument sends didOpen for the URI so the server builds its document
// model. Reopening an already-open document is a no-op.
func (c *Client) OpenDocument(ctx context.Context, uri string) error {
	c.mu.RLock()
	open := c.openDocs[uri]
	c.mu.RUnlock()
	if open {
		return nil
	}

	content, err := os.ReadFile(strings.TrimPrefix(uri, "file://"))
	if err != nil {
		return fmt.Errorf("failed to read document %s: %w", uri, err)
	}

	params := map[string]any{
		"textDocument": map[string]any{
			"uri":        uri,
			"languageId": "go",
			"version":    1,
			"text":       string(content),
		},
	}
	if err := c.transport.SendNotification("textDocument/didOpen", params); err != nil {
		return fmt.Errorf("failed to open document %s: %w", uri, err)
	}

	c.mu.Lock()
	c.openDocs[uri] = true
	c.mu.Unlock()
	return nil
}

// Definition resolves the definition locations for a position
func (c *Client) Definition(ctx context.Context, uri string, line, character int) ([]types.Location, error) {
	params := map[string]any{
		"textDocument": map[string]any{"uri": uri},
		"position":     map[string]any{"line": line, "character": character},
	}

	response, err := c.transport.SendRequest(ctx, "textDocument/definition", params)
	if err != nil {
		return nil, fmt.Errorf("failed to get definition: %w", err)
	}

	return decodeLocations(response)
}

// References resolves all references to the symbol at a position, including
// the declaration.
func (c *Client) References(ctx context.Context, uri string, line, character int) ([]types.Location, error) {
	params := map[string]any{
		"textDocument": map[string]any{"uri": uri},
		"position":     map[string]any{"line": line, "character": character},
		"context":      map[string]any{"includeDeclaration": true},
	}

	response, err := c.transport.SendRequest(ctx, "textDocument/references", params)
	if err != nil {
		return nil, fmt.Errorf("failed to find references: %w", err)
	}

	return decodeLocations(response)
}

// decodeLocations handles the null, single-location, and location-array
// shapes the LSP allows.
func decodeLocations(response json.RawMessage) ([]types.Location, error) {
	if strings.TrimSpace(string(response)) == "null" {
		return []types.Location{}, nil
	}

	var locations []types.Location
	if err := json.Unmarshal(response, &locations); err != nil {
		var single types.Location
		if err := json.Unmarshal(response, &single); err != nil {
			return nil, fmt.Errorf("failed to unmarshal locations: %w", err)
		}
		locations = []types.Location{single}
	}
	return locations, nil
}

// Shutdown stops the server gracefully and reaps the process
func (c *Client) Shutdown(ctx context.Context) error {
	c.mu.Lock()
	started := c.started
	c.started = false
	c.mu.Unlock()
	if !started {
		return nil
	}

	if _, err := c.transport.SendRequest(ctx, "shutdown", nil); err != nil {
		return fmt.Errorf("failed to shutdown: %w", err)
	}
	if err := c.transport.SendNotification("exit", nil); err != nil {
		return fmt.Errorf("failed to send exit: %w", err)
	}
	_ = c.transport.Close()

	if c.cmd != nil && c.cmd.Process != nil {
		_ = c.cmd.Process.Kill()
		_ = c.cmd.Wait()
	}

	return nil
}
