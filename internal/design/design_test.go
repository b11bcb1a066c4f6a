package design

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func completeSelection() Selection {
	s := NewSelection()
	s.Fabric = &CatalogItem{ID: "cotton", DisplayName: "Premium Cotton"}
	s.Style = &CatalogItem{ID: "tshirt", DisplayName: "Basic T-Shirt"}
	s.Size = SizeM
	s.Fit = FitRegular
	s.Measurements.Bust = 90
	s.Measurements.Hips = 95
	return s
}

func TestNewSelection(t *testing.T) {
	s := NewSelection()
	require.Nil(t, s.Fabric)
	require.Nil(t, s.Style)
	require.Empty(t, s.Size)
	require.Empty(t, s.Fit)
	require.Equal(t, Measurements{Gender: GenderFemale}, s.Measurements)
	require.Equal(t, []string{"fabric", "style", "size", "bust", "hips", "fit"}, s.Missing())
}

func TestSelectionClone(t *testing.T) {
	s := completeSelection()
	c := s.Clone()
	c.Fabric.DisplayName = "changed"
	c.Style.ID = "changed"
	require.Equal(t, "Premium Cotton", s.Fabric.DisplayName)
	require.Equal(t, "tshirt", s.Style.ID)
}

func TestNewRequest(t *testing.T) {
	req, err := NewRequest(completeSelection())
	require.NoError(t, err)
	require.Equal(t, Request{
		FabricName: "Premium Cotton",
		StyleName:  "Basic T-Shirt",
		Size:       "M",
		FitType:    "Regular Fit",
		Gender:     "Female",
		BustCm:     90,
		HipsCm:     95,
		FabricID:   "cotton",
		StyleID:    "tshirt",
	}, req)

	incomplete := completeSelection()
	incomplete.Fit = ""
	incomplete.Measurements.Hips = 0
	_, err = NewRequest(incomplete)
	require.EqualError(t, err, "selection incomplete: missing hips, fit")
}

func TestParsers(t *testing.T) {
	size, err := ParseSize("xxl")
	require.NoError(t, err)
	require.Equal(t, SizeXXL, size)
	_, err = ParseSize("XXXL")
	require.Error(t, err)

	fit, err := ParseFit("regular fit")
	require.NoError(t, err)
	require.Equal(t, FitRegular, fit)
	fit, err = ParseFit("Loose")
	require.NoError(t, err)
	require.Equal(t, FitLoose, fit)
	_, err = ParseFit("baggy")
	require.Error(t, err)

	g, err := ParseGender("M")
	require.NoError(t, err)
	require.Equal(t, GenderMale, g)
	_, err = ParseGender("other")
	require.Error(t, err)
}

func TestGenderToggleAndGuides(t *testing.T) {
	require.Equal(t, GenderMale, GenderFemale.Toggle())
	require.Equal(t, GenderFemale, GenderMale.Toggle())

	female := Measurements{Gender: GenderFemale}
	male := Measurements{Gender: GenderMale}
	require.Equal(t, "standard: 80-100cm", female.StandardRange(FieldBust))
	require.Equal(t, "standard: 90-110cm", male.StandardRange(FieldBust))
	require.Equal(t, "standard: 85-105cm", male.StandardRange(FieldHips))
	require.Empty(t, male.StandardRange(FieldGender))
}

func TestFitLabels(t *testing.T) {
	require.Equal(t, "Tailored", FitTailored.Label())
	require.Equal(t, "Refined, structured construction.", FitTailored.Description())
	require.Equal(t, "Custom", Fit("Custom").Label())
}
