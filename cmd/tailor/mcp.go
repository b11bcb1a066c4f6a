package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/mark3labs/tailor/internal/logger"
	"github.com/mark3labs/tailor/internal/mcpserver"
	"github.com/mark3labs/tailor/internal/orchestrator"
	"github.com/spf13/cobra"
)

var mcpFlags struct {
	addr      string
	noJournal bool
}

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve the design tools over MCP",
	Long: `Serve list-catalog, generate-design and generation-history as MCP tools
over streamable HTTP. Calls never prompt for a key, so one must be configured.`,
	RunE: runMCP,
}

func init() {
	mcpCmd.Flags().StringVar(&mcpFlags.addr, "addr", "127.0.0.1:7456", "Listen address")
	mcpCmd.Flags().BoolVar(&mcpFlags.noJournal, "no-history", false, "Do not keep a generation history")
}

func runMCP(cmd *cobra.Command, args []string) error {
	cfg, err := loadSettings()
	if err != nil {
		return err
	}

	orch, err := orchestrator.New(orchestrator.Config{
		Settings:    cfg,
		SessionName: "mcp",
		NoJournal:   mcpFlags.noJournal,
	})
	if err != nil {
		return fmt.Errorf("failed to create orchestrator: %w", err)
	}
	if err := orch.Start(); err != nil {
		return fmt.Errorf("failed to start orchestrator: %w", err)
	}
	defer func() {
		if err := orch.Stop(); err != nil {
			fmt.Fprintf(os.Stderr, "Error during shutdown: %v\n", err)
		}
	}()

	srv := mcpserver.New(orch.Catalog(), orch.Generator(), mcpserver.Options{
		Addr:       mcpFlags.addr,
		Currency:   cfg.Currency,
		ServiceFee: orch.Pricing().ServiceFee(),
		History:    orch.History(),
	})
	if _, err := srv.Start(orch.Context()); err != nil {
		return fmt.Errorf("failed to start MCP server: %w", err)
	}
	defer func() { _ = srv.Stop() }()

	fmt.Fprintf(cmd.OutOrStdout(), "MCP server listening on %s\n", srv.URL())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	select {
	case <-sigChan:
		fmt.Fprintln(cmd.OutOrStdout(), "\nShutting down gracefully...")
	case <-cmd.Context().Done():
	}
	logger.Info("MCP server stopping")
	return nil
}
