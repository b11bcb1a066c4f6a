package session

import (
	"testing"

	"github.com/mark3labs/tailor/internal/design"
	"github.com/stretchr/testify/require"
)

type mapCatalog map[string]design.CatalogItem

func (m mapCatalog) Fabric(id string) (design.CatalogItem, bool) {
	item, ok := m["fabric/"+id]
	return item, ok
}

func (m mapCatalog) Style(id string) (design.CatalogItem, bool) {
	item, ok := m["style/"+id]
	return item, ok
}

var testCatalog = mapCatalog{
	"fabric/cotton": cotton,
	"style/tshirt":  tshirt,
}

func scenarioInput() Input {
	return Input{Fabric: "cotton", Style: "tshirt", Size: "m", Fit: "Regular Fit", Bust: 90, Hips: 95}
}

func TestBuild(t *testing.T) {
	in := scenarioInput()
	in.Gender = "male"

	c, err := Build(testCatalog, in)
	require.NoError(t, err)
	require.Equal(t, StepReview, c.Step())

	sel := c.Session().Selection
	require.Equal(t, &cotton, sel.Fabric)
	require.Equal(t, &tshirt, sel.Style)
	require.Equal(t, design.SizeM, sel.Size)
	require.Equal(t, design.FitRegular, sel.Fit)
	require.Equal(t, design.Measurements{Bust: 90, Hips: 95, Gender: design.GenderMale}, sel.Measurements)
}

func TestBuild_DefaultsToFemale(t *testing.T) {
	c, err := Build(testCatalog, scenarioInput())
	require.NoError(t, err)
	require.Equal(t, design.GenderFemale, c.Session().Selection.Measurements.Gender)
}

func TestBuild_Errors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Input)
		wantErr string
	}{
		{"unknown fabric", func(in *Input) { in.Fabric = "tweed" }, `unknown fabric "tweed"`},
		{"unknown style", func(in *Input) { in.Style = "cape" }, `unknown style "cape"`},
		{"bad size", func(in *Input) { in.Size = "XXXL" }, "unknown size"},
		{"bad fit", func(in *Input) { in.Fit = "baggy" }, "unknown fit"},
		{"bad gender", func(in *Input) { in.Gender = "x" }, "unknown gender"},
		{"bust above range", func(in *Input) { in.Bust = 150 }, "bust must be between 70 and 130 cm"},
		{"hips below range", func(in *Input) { in.Hips = 40 }, "hips must be between 70 and 130 cm"},
		{"negative bust", func(in *Input) { in.Bust = -90 }, "bust must be between 70 and 130 cm"},
		{"missing style", func(in *Input) { in.Style = "" }, "step 2 (Style) is incomplete, missing: style"},
		{"missing hips", func(in *Input) { in.Hips = 0 }, "step 4 (Measurements) is incomplete, missing: hips"},
		{"missing fit", func(in *Input) { in.Fit = "" }, "step 5 (Fit) is incomplete, missing: fit"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := scenarioInput()
			tt.mutate(&in)
			c, err := Build(testCatalog, in)
			require.ErrorContains(t, err, tt.wantErr)
			require.Nil(t, c)
		})
	}
}
