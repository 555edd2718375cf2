package main

import (
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"chatanchor/internal/server"
)

var rootCmd = &cobra.Command{
	Use:   "chatanchor",
	Short: "Inline anchors for chat transcripts",
	Long:  `chatanchor renders clickable source references inside chat transcripts and resolves them through gopls`,
}

func main() {
	rootCmd.Version = server.Version

	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(serveCmd)

	rootCmd.PersistentFlags().String("config", "", "path to a chatanchor.toml config file")
	rootCmd.PersistentFlags().String("workspace-root", "", "root directory of the workspace (overrides config)")

	if err := rootCmd.Execute(); err != nil {
		color.New(color.FgRed).Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
