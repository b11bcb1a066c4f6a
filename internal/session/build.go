package session

import (
	"fmt"
	"strings"

	"github.com/mark3labs/tailor/internal/design"
)

// Catalog resolves fabric and style ids.
type Catalog interface {
	Fabric(id string) (design.CatalogItem, bool)
	Style(id string) (design.CatalogItem, bool)
}

// Input is a whole design given at once, as entered on a command line or in
// a tool call. Empty strings and zero measurements mean "not given".
type Input struct {
	Fabric string
	Style  string
	Size   string
	Fit    string
	Gender string
	Bust   float64
	Hips   float64
}

// Build walks a fresh controller through steps 1-5 with in, holding it to the
// same gates as the wizard. The returned controller is on the review step.
// Measurements outside the range the wizard offers are rejected.
func Build(cat Catalog, in Input) (*Controller, error) {
	c := New()

	if in.Fabric != "" {
		item, ok := cat.Fabric(in.Fabric)
		if !ok {
			return nil, fmt.Errorf("unknown fabric %q", in.Fabric)
		}
		c.SelectFabric(item)
	}
	if in.Style != "" {
		item, ok := cat.Style(in.Style)
		if !ok {
			return nil, fmt.Errorf("unknown style %q", in.Style)
		}
		c.SelectStyle(item)
	}
	if in.Size != "" {
		size, err := design.ParseSize(in.Size)
		if err != nil {
			return nil, err
		}
		c.SelectSize(size)
	}
	if in.Fit != "" {
		fit, err := design.ParseFit(in.Fit)
		if err != nil {
			return nil, err
		}
		c.SelectFit(fit)
	}
	if in.Gender != "" {
		g, err := design.ParseGender(in.Gender)
		if err != nil {
			return nil, err
		}
		c.SetGender(g)
	}
	for _, m := range []struct {
		field design.MeasurementField
		cm    float64
	}{{design.FieldBust, in.Bust}, {design.FieldHips, in.Hips}} {
		if m.cm != 0 && (m.cm < design.MinMeasurementCm || m.cm > design.MaxMeasurementCm) {
			return nil, fmt.Errorf("%s must be between %d and %d cm, got %v",
				m.field, design.MinMeasurementCm, design.MaxMeasurementCm, m.cm)
		}
		c.UpdateMeasurement(m.field, m.cm)
	}

	for c.Step() < LastStep {
		step := c.Step()
		if !c.Advance() {
			missing := c.Session().Selection.Missing()
			return nil, fmt.Errorf("step %d (%s) is incomplete, missing: %s", int(step), step, strings.Join(missing, ", "))
		}
	}
	return c, nil
}
