package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// isolate points the global config at a temp dir and runs the test from
// another temp dir so no real config leaks in.
func isolate(t *testing.T) string {
	t.Helper()
	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "config"))
	for _, key := range envKeys {
		// Empty values count as unset for viper.
		t.Setenv("TAILOR_"+strings.ToUpper(key), "")
	}
	t.Chdir(tmpDir)
	return tmpDir
}

func TestGlobalPath(t *testing.T) {
	t.Run("with XDG_CONFIG_HOME set", func(t *testing.T) {
		t.Setenv("XDG_CONFIG_HOME", "/custom/config")
		require.Equal(t, "/custom/config/tailor/tailor.yml", GlobalPath())
	})

	t.Run("without XDG_CONFIG_HOME", func(t *testing.T) {
		t.Setenv("XDG_CONFIG_HOME", "")
		got := GlobalPath()
		require.True(t, filepath.IsAbs(got), "GlobalPath() should be absolute, got %s", got)
		require.Equal(t, "tailor.yml", filepath.Base(got))
	})
}

func TestProjectPath(t *testing.T) {
	require.Equal(t, "tailor.yml", ProjectPath())
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, DefaultBaseURL, cfg.BaseURL)
	require.Equal(t, DefaultModel, cfg.Model)
	require.Equal(t, DefaultImageSize, cfg.ImageSize)
	require.Equal(t, DefaultTimeout, cfg.Timeout)
	require.Equal(t, DefaultCurrency, cfg.Currency)
	require.Equal(t, DefaultServiceFee, cfg.ServiceFee)
	require.Empty(t, cfg.APIKey)
	require.Equal(t, "info", cfg.LogLevel)
	require.False(t, Exists())
}

func TestLoad_ProjectOverridesGlobal(t *testing.T) {
	isolate(t)

	require.NoError(t, WriteGlobal(&Config{
		BaseURL:    "https://global.example/v1",
		Model:      "global-model",
		ImageSize:  "1024x1024",
		Timeout:    time.Minute,
		Currency:   "$",
		ServiceFee: 40,
		LogLevel:   "warn",
	}))
	require.True(t, Exists())

	require.NoError(t, os.WriteFile(ProjectPath(), []byte("model: project-model\nservice_fee: 65\n"), 0644))

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "https://global.example/v1", cfg.BaseURL)
	require.Equal(t, "project-model", cfg.Model)
	require.Equal(t, 65.0, cfg.ServiceFee)
	require.Equal(t, time.Minute, cfg.Timeout)
	require.Equal(t, "$", cfg.Currency)
	require.Equal(t, "warn", cfg.LogLevel)
}

func TestLoad_EnvOverridesFiles(t *testing.T) {
	isolate(t)

	require.NoError(t, os.WriteFile(ProjectPath(), []byte("api_key: from-file\ntimeout: 10s\n"), 0644))
	t.Setenv("TAILOR_API_KEY", "from-env")
	t.Setenv("TAILOR_TIMEOUT", "45s")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "from-env", cfg.APIKey)
	require.Equal(t, 45*time.Second, cfg.Timeout)
}

func TestLoad_InvalidValues(t *testing.T) {
	isolate(t)

	require.NoError(t, os.WriteFile(ProjectPath(), []byte("image_size: huge\n"), 0644))
	_, err := Load()
	require.ErrorContains(t, err, "image_size")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{name: "zero value", cfg: Config{}},
		{name: "negative timeout", cfg: Config{Timeout: -time.Second}, wantErr: "timeout"},
		{name: "negative fee", cfg: Config{ServiceFee: -1}, wantErr: "service_fee"},
		{name: "bad size", cfg: Config{ImageSize: "1024"}, wantErr: "image_size"},
		{name: "good size", cfg: Config{ImageSize: "1024x1536"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestWriteProject_RoundTripsThroughLoad(t *testing.T) {
	isolate(t)

	require.NoError(t, WriteProject(&Config{
		BaseURL:    DefaultBaseURL,
		APIKey:     "sk-test",
		Model:      "m",
		ImageSize:  "1024x1024",
		Timeout:    90 * time.Second,
		Currency:   "€",
		ServiceFee: 12.5,
		LogLevel:   "debug",
	}))

	info, err := os.Stat(ProjectPath())
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0600), info.Mode().Perm())

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "sk-test", cfg.APIKey)
	require.Equal(t, 90*time.Second, cfg.Timeout)
	require.Equal(t, "€", cfg.Currency)
	require.Equal(t, 12.5, cfg.ServiceFee)
}
