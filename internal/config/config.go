// Package config provides centralized configuration management using Viper.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration values for tailor.
type Config struct {
	BaseURL     string        `mapstructure:"base_url" yaml:"base_url"`
	APIKey      string        `mapstructure:"api_key" yaml:"api_key,omitempty"`
	Model       string        `mapstructure:"model" yaml:"model"`
	ImageSize   string        `mapstructure:"image_size" yaml:"image_size"`
	Timeout     time.Duration `mapstructure:"timeout" yaml:"timeout"`
	Currency    string        `mapstructure:"currency" yaml:"currency"`
	ServiceFee  float64       `mapstructure:"service_fee" yaml:"service_fee"`
	CatalogFile string        `mapstructure:"catalog_file" yaml:"catalog_file,omitempty"`
	PromptFile  string        `mapstructure:"prompt_file" yaml:"prompt_file,omitempty"`
	LogLevel    string        `mapstructure:"log_level" yaml:"log_level"`
	LogFile     string        `mapstructure:"log_file" yaml:"log_file,omitempty"`
}

// Defaults used when neither a config file nor the environment sets a key.
const (
	DefaultBaseURL    = "https://ark.cn-beijing.volces.com/api/v3"
	DefaultModel      = "doubao-seedream-4-5-251128"
	DefaultImageSize  = "1536x2048"
	DefaultTimeout    = 3 * time.Minute
	DefaultCurrency   = "¥"
	DefaultServiceFee = 50.0
)

var envKeys = []string{
	"base_url",
	"api_key",
	"model",
	"image_size",
	"timeout",
	"currency",
	"service_fee",
	"catalog_file",
	"prompt_file",
	"log_level",
	"log_file",
}

// Load loads configuration with full precedence:
// ENV vars > project config > XDG global config > defaults.
// CLI flags are applied on top by the commands.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetConfigName("tailor")

	v.SetDefault("base_url", DefaultBaseURL)
	v.SetDefault("api_key", "")
	v.SetDefault("model", DefaultModel)
	v.SetDefault("image_size", DefaultImageSize)
	v.SetDefault("timeout", DefaultTimeout)
	v.SetDefault("currency", DefaultCurrency)
	v.SetDefault("service_fee", DefaultServiceFee)
	v.SetDefault("catalog_file", "")
	v.SetDefault("prompt_file", "")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_file", "")

	v.SetEnvPrefix("TAILOR")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	for _, key := range envKeys {
		if err := v.BindEnv(key, "TAILOR_"+strings.ToUpper(key)); err != nil {
			return nil, fmt.Errorf("binding %s env: %w", key, err)
		}
	}

	globalPath := GlobalPath()
	if fileExists(globalPath) {
		v.SetConfigFile(globalPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading global config: %w", err)
		}
	}

	projectPath := ProjectPath()
	if fileExists(projectPath) {
		v.SetConfigFile(projectPath)
		if err := v.MergeInConfig(); err != nil {
			return nil, fmt.Errorf("merging project config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate rejects values no component can work with.
// A missing API key is not an error: the credential prompt asks for one.
func (c *Config) Validate() error {
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must be >= 0, got %s", c.Timeout)
	}
	if c.ServiceFee < 0 {
		return fmt.Errorf("service_fee must be >= 0, got %v", c.ServiceFee)
	}
	if _, _, ok := strings.Cut(c.ImageSize, "x"); c.ImageSize != "" && !ok {
		return fmt.Errorf("image_size must look like WIDTHxHEIGHT, got %q", c.ImageSize)
	}
	return nil
}

// Exists returns true if any config file exists (global or project).
func Exists() bool {
	return fileExists(GlobalPath()) || fileExists(ProjectPath())
}

// GlobalPath returns the XDG global config path.
// Returns ~/.config/tailor/tailor.yml or $XDG_CONFIG_HOME/tailor/tailor.yml.
func GlobalPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "tailor", "tailor.yml")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "tailor", "tailor.yml")
}

// ProjectPath returns the project-local config path.
func ProjectPath() string {
	return "tailor.yml"
}

// WriteGlobal writes the config to the XDG global location.
func WriteGlobal(cfg *Config) error {
	path := GlobalPath()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	return write(path, cfg)
}

// WriteProject writes the config to the project-local location.
func WriteProject(cfg *Config) error {
	return write(ProjectPath(), cfg)
}

func write(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	// The file may carry an API key.
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

// fileExists checks if a file exists.
func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
