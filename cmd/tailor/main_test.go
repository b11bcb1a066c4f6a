package main

import (
	"bytes"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/mark3labs/tailor/internal/catalog"
	"github.com/mark3labs/tailor/internal/design"
	"github.com/mark3labs/tailor/internal/pricing"
	"github.com/mark3labs/tailor/internal/session"
	"github.com/stretchr/testify/require"
)

func TestGenerateFlags_BuildReviewableDesign(t *testing.T) {
	saved := generateFlags
	t.Cleanup(func() { generateFlags = saved })

	require.NoError(t, generateCmd.Flags().Parse([]string{
		"--fabric", "silk", "--style", "dress", "--size", "s", "--fit", "slim",
		"--gender", "male", "--bust", "84", "--hips", "92",
	}))
	require.Equal(t, session.Input{
		Fabric: "silk", Style: "dress", Size: "s", Fit: "slim", Gender: "male", Bust: 84, Hips: 92,
	}, generateFlags.Input)

	c, err := session.Build(catalog.Default(), generateFlags.Input)
	require.NoError(t, err)
	require.Equal(t, session.StepReview, c.Step())

	sel := c.Session().Selection
	require.Equal(t, "silk", sel.Fabric.ID)
	require.Equal(t, design.SizeS, sel.Size)
	require.Equal(t, design.FitSlim, sel.Fit)
	require.Equal(t, design.Measurements{Bust: 84, Hips: 92, Gender: design.GenderMale}, sel.Measurements)
}

func TestGenerateFlags_RejectOutOfRangeMeasurement(t *testing.T) {
	in := session.Input{Fabric: "cotton", Style: "tshirt", Size: "M", Fit: "regular", Bust: 150, Hips: 95}
	_, err := session.Build(catalog.Default(), in)
	require.ErrorContains(t, err, "bust must be between 70 and 130 cm")
}

func TestPrintResult(t *testing.T) {
	var buf bytes.Buffer
	r := design.Result{Front: "https://a/f.png", Back: "data:image/png;base64,AAAA", Price: 180}
	printResult(&buf, r, pricing.Split(180, 50), "¥")

	out := ansi.Strip(buf.String())
	require.Contains(t, out, "Front https://a/f.png")
	require.Contains(t, out, "Side  not available")
	require.Contains(t, out, "Back  inline image")
	require.Contains(t, out, "¥130")
	require.Contains(t, out, "Total              ¥180")
}

func TestSetupConfig(t *testing.T) {
	t.Cleanup(func() {
		rootFlags.apiKey, rootFlags.model, rootFlags.logLevel = "", "", ""
	})
	setupFlags.baseURL, setupFlags.currency = "https://img.example/v1", "$"
	rootFlags.apiKey, rootFlags.model = "sk-x", "gpt-image-1"

	cfg := setupConfig()
	require.Equal(t, "https://img.example/v1", cfg.BaseURL)
	require.Equal(t, "sk-x", cfg.APIKey)
	require.Equal(t, "gpt-image-1", cfg.Model)
	require.Equal(t, "$", cfg.Currency)
	require.Equal(t, "info", cfg.LogLevel)
	require.NoError(t, cfg.Validate())
}
