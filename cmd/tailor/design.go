package main

import (
	"fmt"
	"os"

	"github.com/mark3labs/tailor/internal/orchestrator"
	"github.com/spf13/cobra"
)

var designFlags struct {
	name      string
	noJournal bool
}

var designCmd = &cobra.Command{
	Use:   "design",
	Short: "Open the interactive design wizard",
	Long: `Open the six-step design wizard.

Choose a fabric, a garment style, a standard size, your bust and hip
measurements and a fit, then generate the mockups. If no API key is
configured you are asked for one when you first generate.`,
	RunE: runDesign,
}

func init() {
	designCmd.Flags().StringVarP(&designFlags.name, "name", "n", "", "Session name for the generation history (default: time based)")
	designCmd.Flags().BoolVar(&designFlags.noJournal, "no-history", false, "Do not keep a generation history")
}

func runDesign(cmd *cobra.Command, args []string) error {
	cfg, err := loadSettings()
	if err != nil {
		return err
	}

	orch, err := orchestrator.New(orchestrator.Config{
		Settings:    cfg,
		SessionName: designFlags.name,
		NoJournal:   designFlags.noJournal,
	})
	if err != nil {
		return fmt.Errorf("failed to create orchestrator: %w", err)
	}
	defer func() {
		if err := orch.Stop(); err != nil {
			fmt.Fprintf(os.Stderr, "Error during shutdown: %v\n", err)
		}
	}()

	return orch.RunTUI()
}
