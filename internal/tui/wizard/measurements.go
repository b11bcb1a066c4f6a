package wizard

import (
	"fmt"
	"strconv"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/bubbles/v2/textinput"
	"github.com/mark3labs/tailor/internal/design"
	"github.com/mark3labs/tailor/internal/tui/theme"
)

// MeasurementsStep edits bust, hips and gender. Rows are focused in
// MeasurementField order.
type MeasurementsStep struct {
	bust   textinput.Model
	hips   textinput.Model
	gender design.Gender
	focus  design.MeasurementField
}

// NewMeasurementsStep creates the step from the current measurements.
// Unset values start empty.
func NewMeasurementsStep(m design.Measurements) *MeasurementsStep {
	s := &MeasurementsStep{
		bust:   newInput("Bust (cm): ", fmt.Sprintf("%d-%d", design.MinMeasurementCm, design.MaxMeasurementCm), 12),
		hips:   newInput("Hips (cm): ", fmt.Sprintf("%d-%d", design.MinMeasurementCm, design.MaxMeasurementCm), 12),
		gender: m.Gender,
	}
	if m.Bust > 0 {
		s.bust.SetValue(strconv.FormatFloat(m.Bust, 'f', -1, 64))
	}
	if m.Hips > 0 {
		s.hips.SetValue(strconv.FormatFloat(m.Hips, 'f', -1, 64))
	}
	if s.gender == "" {
		s.gender = design.GenderFemale
	}
	return s
}

// Focus focuses the current row and returns the cursor blink command.
func (s *MeasurementsStep) Focus() tea.Cmd {
	s.bust.Blur()
	s.hips.Blur()
	switch s.focus {
	case design.FieldBust:
		return s.bust.Focus()
	case design.FieldHips:
		return s.hips.Focus()
	}
	return nil
}

// Blur removes focus from both inputs.
func (s *MeasurementsStep) Blur() {
	s.bust.Blur()
	s.hips.Blur()
}

// Focused returns the focused row.
func (s *MeasurementsStep) Focused() design.MeasurementField {
	return s.focus
}

// MoveFocus cycles the focus by delta rows.
func (s *MeasurementsStep) MoveFocus(delta int) tea.Cmd {
	rows := int(design.FieldGender) + 1
	s.focus = design.MeasurementField(((int(s.focus)+delta)%rows + rows) % rows)
	return s.Focus()
}

// Gender returns the chosen gender.
func (s *MeasurementsStep) Gender() design.Gender {
	return s.gender
}

// ToggleGender switches between the two body forms.
func (s *MeasurementsStep) ToggleGender() {
	s.gender = s.gender.Toggle()
}

// Value parses a numeric field. A value is valid only inside the offered
// range; anything else reads as 0 (unset).
func (s *MeasurementsStep) Value(field design.MeasurementField) float64 {
	var raw string
	switch field {
	case design.FieldBust:
		raw = s.bust.Value()
	case design.FieldHips:
		raw = s.hips.Value()
	default:
		return 0
	}
	return parseMeasurement(raw)
}

func parseMeasurement(raw string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || v < design.MinMeasurementCm || v > design.MaxMeasurementCm {
		return 0
	}
	return v
}

// Update forwards a key to the focused input. Only digits and a decimal
// point reach the inputs.
func (s *MeasurementsStep) Update(msg tea.KeyPressMsg) tea.Cmd {
	if msg.Text != "" && strings.Trim(msg.Text, "0123456789.") != "" {
		return nil
	}
	var cmd tea.Cmd
	switch s.focus {
	case design.FieldBust:
		s.bust, cmd = s.bust.Update(msg)
	case design.FieldHips:
		s.hips, cmd = s.hips.Update(msg)
	}
	return cmd
}

// View renders the three rows with their guide text.
func (s *MeasurementsStep) View() string {
	st := theme.Current().S()
	m := design.Measurements{Gender: s.gender}

	row := func(field design.MeasurementField, input textinput.Model) string {
		line := input.View() + "  " + st.Muted.Render(m.StandardRange(field))
		if raw := strings.TrimSpace(input.Value()); raw != "" && parseMeasurement(raw) == 0 {
			line += "\n  " + st.Error.Render(fmt.Sprintf("enter a value between %d and %d", design.MinMeasurementCm, design.MaxMeasurementCm))
		}
		return line
	}

	female, male := "( ) Female", "( ) Male"
	if s.gender == design.GenderMale {
		male = "(•) Male"
	} else {
		female = "(•) Female"
	}
	genderLine := st.Label.Render("Body form: ") + female + "   " + male
	if s.focus == design.FieldGender {
		genderLine = st.ItemCursor.Render(" Body form: ") + " " + female + "   " + male
	}

	return strings.Join([]string{
		row(design.FieldBust, s.bust),
		row(design.FieldHips, s.hips),
		"",
		genderLine,
	}, "\n")
}
