// Package design defines the garment design selection assembled by the wizard
// and the shapes exchanged with the image generation provider.
package design

import (
	"fmt"
	"strings"
)

// CatalogItem is an immutable entry of the fabric or style catalog.
type CatalogItem struct {
	ID           string `yaml:"id" json:"id"`
	DisplayName  string `yaml:"name" json:"name"`
	PreviewImage string `yaml:"image" json:"image"`
}

// Size is a standard garment size.
type Size string

const (
	SizeXS  Size = "XS"
	SizeS   Size = "S"
	SizeM   Size = "M"
	SizeL   Size = "L"
	SizeXL  Size = "XL"
	SizeXXL Size = "XXL"
)

// Sizes lists every size in display order.
var Sizes = []Size{SizeXS, SizeS, SizeM, SizeL, SizeXL, SizeXXL}

// ParseSize accepts a size case-insensitively.
func ParseSize(s string) (Size, error) {
	for _, size := range Sizes {
		if strings.EqualFold(string(size), strings.TrimSpace(s)) {
			return size, nil
		}
	}
	return "", fmt.Errorf("unknown size %q", s)
}

// Fit is the silhouette of the garment.
type Fit string

const (
	FitSlim     Fit = "Slim Fit"
	FitRegular  Fit = "Regular Fit"
	FitLoose    Fit = "Loose/Oversized"
	FitTailored Fit = "Tailored"
)

// Fits lists every fit in display order.
var Fits = []Fit{FitSlim, FitRegular, FitLoose, FitTailored}

var fitLabels = map[Fit]struct{ label, description string }{
	FitSlim:     {"Slim", "Close-fitting, body-hugging silhouette."},
	FitRegular:  {"Regular", "Standard, comfortable cut."},
	FitLoose:    {"Loose", "Relaxed, airy silhouette."},
	FitTailored: {"Tailored", "Refined, structured construction."},
}

// Label is the short display name of the fit.
func (f Fit) Label() string {
	if l, ok := fitLabels[f]; ok {
		return l.label
	}
	return string(f)
}

// Description is the one-line explanation shown next to the fit.
func (f Fit) Description() string {
	return fitLabels[f].description
}

// ParseFit accepts either the full fit name or its short label.
func ParseFit(s string) (Fit, error) {
	s = strings.TrimSpace(s)
	for _, fit := range Fits {
		if strings.EqualFold(string(fit), s) || strings.EqualFold(fit.Label(), s) {
			return fit, nil
		}
	}
	return "", fmt.Errorf("unknown fit %q", s)
}

// Gender selects the body block used for the mockup.
type Gender string

const (
	GenderFemale Gender = "Female"
	GenderMale   Gender = "Male"
)

// ParseGender accepts a gender case-insensitively.
func ParseGender(s string) (Gender, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "female", "f":
		return GenderFemale, nil
	case "male", "m":
		return GenderMale, nil
	}
	return "", fmt.Errorf("unknown gender %q", s)
}

// Toggle returns the other gender.
func (g Gender) Toggle() Gender {
	if g == GenderMale {
		return GenderFemale
	}
	return GenderMale
}

// Measurement bounds offered by the measurement step, in centimetres.
const (
	MinMeasurementCm = 70
	MaxMeasurementCm = 130
)

// MeasurementField names one of the editable body measurements.
type MeasurementField int

const (
	FieldBust MeasurementField = iota
	FieldHips
	FieldGender
)

func (f MeasurementField) String() string {
	switch f {
	case FieldBust:
		return "bust"
	case FieldHips:
		return "hips"
	case FieldGender:
		return "gender"
	default:
		return "unknown"
	}
}

// Measurements are body measurements in centimetres.
type Measurements struct {
	Bust   float64 `json:"bust"`
	Hips   float64 `json:"hips"`
	Gender Gender  `json:"gender"`
}

// StandardRange returns the guide text shown for a measurement field.
func (m Measurements) StandardRange(field MeasurementField) string {
	switch {
	case field == FieldBust && m.Gender == GenderMale:
		return "standard: 90-110cm"
	case field == FieldBust:
		return "standard: 80-100cm"
	case field == FieldHips:
		return "standard: 85-105cm"
	}
	return ""
}

// Selection is the in-progress garment design.
// Nil pointers and empty strings mean "not chosen yet".
type Selection struct {
	Fabric       *CatalogItem `json:"fabric,omitempty"`
	Style        *CatalogItem `json:"style,omitempty"`
	Size         Size         `json:"size,omitempty"`
	Fit          Fit          `json:"fit,omitempty"`
	Measurements Measurements `json:"measurements"`
}

// NewSelection returns the empty selection the wizard starts from.
func NewSelection() Selection {
	return Selection{Measurements: Measurements{Gender: GenderFemale}}
}

// Clone returns a deep copy so a snapshot cannot alias the wizard's state.
func (s Selection) Clone() Selection {
	out := s
	if s.Fabric != nil {
		f := *s.Fabric
		out.Fabric = &f
	}
	if s.Style != nil {
		st := *s.Style
		out.Style = &st
	}
	return out
}

// Missing lists the unset parts of the selection, in wizard order.
func (s Selection) Missing() []string {
	var missing []string
	if s.Fabric == nil {
		missing = append(missing, "fabric")
	}
	if s.Style == nil {
		missing = append(missing, "style")
	}
	if s.Size == "" {
		missing = append(missing, "size")
	}
	if s.Measurements.Bust <= 0 {
		missing = append(missing, "bust")
	}
	if s.Measurements.Hips <= 0 {
		missing = append(missing, "hips")
	}
	if s.Fit == "" {
		missing = append(missing, "fit")
	}
	return missing
}

// Request is the payload sent to the image generation provider.
type Request struct {
	FabricName string  `json:"fabricName"`
	StyleName  string  `json:"styleName"`
	Size       string  `json:"size"`
	FitType    string  `json:"fitType"`
	Gender     string  `json:"gender"`
	BustCm     float64 `json:"bustCm"`
	HipsCm     float64 `json:"hipsCm"`

	// FabricID and StyleID let providers key prices and prompts on stable ids.
	FabricID string `json:"fabricId,omitempty"`
	StyleID  string `json:"styleId,omitempty"`
}

// NewRequest builds the provider request from a complete selection.
func NewRequest(s Selection) (Request, error) {
	if missing := s.Missing(); len(missing) > 0 {
		return Request{}, fmt.Errorf("selection incomplete: missing %s", strings.Join(missing, ", "))
	}
	return Request{
		FabricName: s.Fabric.DisplayName,
		StyleName:  s.Style.DisplayName,
		Size:       string(s.Size),
		FitType:    string(s.Fit),
		Gender:     string(s.Measurements.Gender),
		BustCm:     s.Measurements.Bust,
		HipsCm:     s.Measurements.Hips,
		FabricID:   s.Fabric.ID,
		StyleID:    s.Style.ID,
	}, nil
}

// Response is the raw provider answer. Image fields are opaque references
// (URLs or data URIs) that a display surface can resolve.
type Response struct {
	Front *string  `json:"front"`
	Side  *string  `json:"side"`
	Back  *string  `json:"back"`
	Price *float64 `json:"price,omitempty"`
}

// Result is the normalized outcome of a successful generation.
type Result struct {
	Front string  `json:"front"`
	Side  string  `json:"side,omitempty"`
	Back  string  `json:"back,omitempty"`
	Price float64 `json:"price"`
}
