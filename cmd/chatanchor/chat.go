package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"chatanchor/internal/clipboard"
	"chatanchor/internal/fsmeta"
	"chatanchor/internal/icons"
	"chatanchor/internal/labels"
	"chatanchor/internal/lsp"
	"chatanchor/internal/providers"
	"chatanchor/internal/telemetry"
	"chatanchor/internal/ui"
	"chatanchor/pkg/types"
)

var chatCmd = &cobra.Command{
	Use:   "chat [file...]",
	Short: "Open an interactive chat transcript with inline anchors",
	Long: `Render a demo chat transcript in the terminal. Every file argument becomes a
clickable inline anchor: left click focuses it, right click opens its context
menu, and the configured keybindings act on the last-focused anchor.`,
	RunE: runChat,
}

func init() {
	chatCmd.Flags().Bool("gopls", false, "start gopls for symbol navigation")
	chatCmd.Flags().String("symbol", "", "symbol name to anchor in the transcript")
	chatCmd.Flags().String("symbol-file", "", "file containing the symbol")
	chatCmd.Flags().Int("symbol-line", 0, "zero-based line of the symbol")
	chatCmd.Flags().Int("symbol-char", 0, "zero-based character of the symbol")
	chatCmd.Flags().Int("symbol-kind", 12, "LSP symbol kind")
}

func runChat(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	deps := ui.Deps{
		Icons:     icons.NewThemeResolver(),
		Labels:    labels.NewService(cfg.WorkspaceRoot),
		Metadata:  fsmeta.NewService(),
		Clipboard: clipboard.NewSink(),
		Telemetry: telemetry.NopSink{},
	}

	if cfg.TelemetryPath != "" {
		f, err := os.OpenFile(cfg.TelemetryPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("failed to open telemetry log: %w", err)
		}
		defer f.Close()
		deps.Telemetry = telemetry.NewJSONSink(f)
	}

	useGopls, err := cmd.Flags().GetBool("gopls")
	if err != nil {
		return fmt.Errorf("failed to get gopls flag: %w", err)
	}
	if useGopls {
		client := lsp.NewClient(cfg.GoplsPath)
		if err := client.Start(cmd.Context(), cfg.WorkspaceRoot); err != nil {
			return fmt.Errorf("failed to start gopls: %w", err)
		}
		defer func() {
			if err := client.Shutdown(context.Background()); err != nil {
				log.Printf("failed to shutdown gopls: %v", err)
			}
		}()
		deps.Providers = providers.NewRegistry(client)
		deps.Navigator = client

		// Symbol anchors gate their menu items on an open document model
		if symbolFile, _ := cmd.Flags().GetString("symbol-file"); symbolFile != "" {
			if err := client.OpenDocument(cmd.Context(), fileURI(symbolFile, cfg.WorkspaceRoot)); err != nil {
				return fmt.Errorf("failed to open symbol file: %w", err)
			}
		}
	}

	model := ui.NewModel(cfg, deps)
	if err := seedTranscript(cmd, model, cfg.WorkspaceRoot, args); err != nil {
		return err
	}

	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run chat: %w", err)
	}
	return nil
}

func seedTranscript(cmd *cobra.Command, model *ui.Model, workspaceRoot string, files []string) error {
	if err := model.AddMessage("you", ui.Text("show me the files we talked about")); err != nil {
		return err
	}

	if len(files) == 0 {
		if err := model.AddMessage("bot", ui.Text("pass file paths as arguments to anchor them here")); err != nil {
			return err
		}
	}
	for _, file := range files {
		ref := types.InlineReference{URI: fileURI(file, workspaceRoot)}
		if err := model.AddMessage("bot", ui.Text("here is "), ui.Anchor(ref)); err != nil {
			return err
		}
	}

	symbol, err := cmd.Flags().GetString("symbol")
	if err != nil {
		return fmt.Errorf("failed to get symbol flag: %w", err)
	}
	if symbol == "" {
		return nil
	}

	symbolFile, _ := cmd.Flags().GetString("symbol-file")
	if symbolFile == "" {
		return fmt.Errorf("symbol-file is required when symbol is set")
	}
	line, _ := cmd.Flags().GetInt("symbol-line")
	character, _ := cmd.Flags().GetInt("symbol-char")
	kind, _ := cmd.Flags().GetInt("symbol-kind")

	ref := types.InlineReference{
		Name: symbol,
		Kind: kind,
		Location: &types.Location{
			URI: fileURI(symbolFile, workspaceRoot),
			Range: types.Range{
				Start: types.Position{Line: line, Character: character},
				End:   types.Position{Line: line, Character: character},
			},
		},
	}
	return model.AddMessage("bot", ui.Text("the symbol lives at "), ui.Anchor(ref))
}

func fileURI(path, workspaceRoot string) string {
	if strings.HasPrefix(path, "file://") {
		return path
	}
	if !strings.HasPrefix(path, "/") {
		path = workspaceRoot + "/" + path
	}
	return "file://" + path
}
