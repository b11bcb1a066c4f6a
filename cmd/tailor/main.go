package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/fang"
	"github.com/mark3labs/tailor/internal/config"
	"github.com/mark3labs/tailor/internal/logger"
	"github.com/mark3labs/tailor/internal/tui/theme"
	"github.com/spf13/cobra"
)

const (
	logoText1 = "▀█▀ ▄▀█ █ █   █▀█ █▀█"
	logoText2 = " █  █▀█ █ █▄▄ █▄█ █▀▄"
)

// Version set via ldflags during build
var version = "dev"

var rootFlags struct {
	apiKey   string
	model    string
	logLevel string
}

func main() {
	defer func() { _ = logger.Close() }()

	if err := fang.Execute(context.Background(), rootCmd, fang.WithVersion(version)); err != nil {
		logger.Error("Command execution failed: %v", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "tailor",
	Short: "Design a custom garment and render photorealistic mockups",
}

// renderLogo creates the logo with gradient colors
func renderLogo() string {
	t := theme.NewCatppuccinMocha()
	line1 := theme.ApplyGradient(logoText1, t.Primary, t.Secondary, true)
	line2 := theme.ApplyGradient(logoText2, t.Primary, t.Secondary, true)
	return strings.Join([]string{line1, line2}, "\n")
}

func init() {
	rootCmd.Long = renderLogo() + `

tailor walks you through a garment design (fabric, style, size, body
measurements and fit), then asks an image model for front, side and back
mockups and quotes a price for the piece.`

	rootCmd.PersistentFlags().StringVar(&rootFlags.apiKey, "api-key", "", "Image API key (overrides config and TAILOR_API_KEY)")
	rootCmd.PersistentFlags().StringVarP(&rootFlags.model, "model", "m", "", "Image model (overrides config)")
	rootCmd.PersistentFlags().StringVar(&rootFlags.logLevel, "log-level", "", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(designCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(catalogCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(setupCmd)
}

// loadSettings loads the config, applies the global flags and configures
// logging.
func loadSettings() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if rootFlags.apiKey != "" {
		cfg.APIKey = rootFlags.apiKey
	}
	if rootFlags.model != "" {
		cfg.Model = rootFlags.model
	}
	if rootFlags.logLevel != "" {
		cfg.LogLevel = rootFlags.logLevel
	}

	if err := logger.Configure(cfg.LogLevel, cfg.LogFile); err != nil {
		return nil, fmt.Errorf("failed to configure logging: %w", err)
	}
	return cfg, nil
}
