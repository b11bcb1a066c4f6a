// Package template renders the image prompt sent for each garment view.
package template

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/mark3labs/tailor/internal/design"
	"github.com/mark3labs/tailor/internal/logger"
)

// View is one of the three rendered angles of a garment.
type View string

const (
	ViewFront View = "front"
	ViewSide  View = "side"
	ViewBack  View = "back"
)

// Views lists every view in render order. Front comes first; it is the only
// one a generation cannot do without.
func Views() []View {
	return []View{ViewFront, ViewSide, ViewBack}
}

// Variables holds the data to be injected into template placeholders.
type Variables struct {
	View             string
	ViewInstructions string
	Fabric           string
	Style            string
	Size             string
	Fit              string
	FitDescription   string
	Gender           string
	Bust             string
	Hips             string
}

// Render replaces {{variable}} placeholders in template with actual values.
// Supports the following variables:
// - {{view}}, {{view_instructions}}
// - {{fabric}}, {{style}}
// - {{size}}, {{fit}}, {{fit_description}}
// - {{gender}}, {{bust}}, {{hips}}
// Unknown placeholders are left as they are.
func Render(template string, vars Variables) string {
	replacer := strings.NewReplacer(
		"{{view}}", vars.View,
		"{{view_instructions}}", vars.ViewInstructions,
		"{{fabric}}", vars.Fabric,
		"{{style}}", vars.Style,
		"{{size}}", vars.Size,
		"{{fit}}", vars.Fit,
		"{{fit_description}}", vars.FitDescription,
		"{{gender}}", vars.Gender,
		"{{bust}}", vars.Bust,
		"{{hips}}", vars.Hips,
	)
	return strings.TrimSpace(replacer.Replace(template))
}

// LoadFromFile loads a template from a file.
func LoadFromFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read template file %s: %w", path, err)
	}
	if strings.TrimSpace(string(data)) == "" {
		return "", fmt.Errorf("template file %s is empty", path)
	}
	return string(data), nil
}

// GetTemplate returns the template content.
// If customPath is non-empty, loads from that file.
// Otherwise returns the default embedded template.
func GetTemplate(customPath string) (string, error) {
	if customPath == "" {
		return DefaultTemplate, nil
	}
	logger.Debug("Using custom prompt template: %s", customPath)
	return LoadFromFile(customPath)
}

// VariablesFor derives the placeholder values for one view of a request.
func VariablesFor(req design.Request, view View) Variables {
	return Variables{
		View:             string(view) + " view",
		ViewInstructions: viewInstructions[view],
		Fabric:           req.FabricName,
		Style:            req.StyleName,
		Size:             req.Size,
		Fit:              req.FitType,
		FitDescription:   strings.TrimSuffix(design.Fit(req.FitType).Description(), "."),
		Gender:           strings.ToLower(req.Gender),
		Bust:             formatCm(req.BustCm),
		Hips:             formatCm(req.HipsCm),
	}
}

// BuildPrompt renders tmpl for one view of a request.
func BuildPrompt(tmpl string, req design.Request, view View) string {
	prompt := Render(tmpl, VariablesFor(req, view))
	logger.Debug("Prompt for %s view rendered: %d characters", view, len(prompt))
	return prompt
}

func formatCm(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
