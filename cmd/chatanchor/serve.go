package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"chatanchor/internal/config"
	"chatanchor/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve anchor resolution and navigation as MCP tools over stdio",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	anchorServer := server.NewAnchorServer(cfg)
	defer func() {
		if err := anchorServer.Shutdown(context.Background()); err != nil {
			log.Printf("failed to shutdown server: %v", err)
		}
	}()

	if err := anchorServer.Start(cmd.Context()); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// loadConfig resolves the effective configuration from the config file and
// the root command's override flags, normalizing the workspace root to an
// absolute directory.
func loadConfig(cmd *cobra.Command) (config.File, error) {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return config.File{}, fmt.Errorf("failed to get config flag: %w", err)
	}

	cfg, err := config.Load(path)
	if err != nil {
		return config.File{}, err
	}

	root, err := cmd.Flags().GetString("workspace-root")
	if err != nil {
		return config.File{}, fmt.Errorf("failed to get workspace-root flag: %w", err)
	}
	if root != "" {
		cfg.WorkspaceRoot = root
	}

	if stat, err := os.Stat(cfg.WorkspaceRoot); err != nil || !stat.IsDir() {
		return config.File{}, fmt.Errorf("invalid workspace root: %s", cfg.WorkspaceRoot)
	}
	if absPath, err := filepath.Abs(cfg.WorkspaceRoot); err == nil {
		cfg.WorkspaceRoot = absPath
	}

	return cfg, nil
}
