package main

import (
	"fmt"
	"os"

	"github.com/mark3labs/tailor/internal/config"
	"github.com/spf13/cobra"
)

var setupFlags struct {
	project  bool
	force    bool
	baseURL  string
	currency string
}

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Create tailor configuration file",
	Long: `Create a tailor configuration file with sensible defaults.

By default, creates a global config at ~/.config/tailor/tailor.yml.
Use --project to create a project-local config in the current directory.
The global --api-key and --model flags are written into the file.`,
	RunE: runSetup,
}

func init() {
	setupCmd.Flags().BoolVarP(&setupFlags.project, "project", "p", false, "Create config in current directory instead of global location")
	setupCmd.Flags().BoolVarP(&setupFlags.force, "force", "f", false, "Overwrite existing config file")
	setupCmd.Flags().StringVar(&setupFlags.baseURL, "base-url", config.DefaultBaseURL, "Image API base URL")
	setupCmd.Flags().StringVar(&setupFlags.currency, "currency", config.DefaultCurrency, "Currency symbol for prices")
}

// setupConfig builds the config written by setup.
func setupConfig() *config.Config {
	cfg := &config.Config{
		BaseURL:    setupFlags.baseURL,
		APIKey:     rootFlags.apiKey,
		Model:      config.DefaultModel,
		ImageSize:  config.DefaultImageSize,
		Timeout:    config.DefaultTimeout,
		Currency:   setupFlags.currency,
		ServiceFee: config.DefaultServiceFee,
		LogLevel:   "info",
	}
	if rootFlags.model != "" {
		cfg.Model = rootFlags.model
	}
	if rootFlags.logLevel != "" {
		cfg.LogLevel = rootFlags.logLevel
	}
	return cfg
}

func runSetup(cmd *cobra.Command, args []string) error {
	targetPath := config.GlobalPath()
	if setupFlags.project {
		targetPath = config.ProjectPath()
	}

	if !setupFlags.force && fileExists(targetPath) {
		return fmt.Errorf("config file already exists at %s\n\nUse --force to overwrite", targetPath)
	}

	cfg := setupConfig()
	if err := cfg.Validate(); err != nil {
		return err
	}

	var err error
	if setupFlags.project {
		err = config.WriteProject(cfg)
	} else {
		err = config.WriteGlobal(cfg)
	}
	if err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Config written to: %s\n\n", targetPath)
	if cfg.APIKey == "" {
		fmt.Fprintln(cmd.OutOrStdout(), "No API key saved; you will be asked for one when you generate.")
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Run 'tailor design' to get started.")
	return nil
}

// fileExists checks if a file exists (helper for setup command).
func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
