package session

import (
	"fmt"

	"github.com/mark3labs/tailor/internal/design"
)

// Step is a position in the six-step design wizard.
type Step int

// Step enumeration for wizard flow
const (
	StepFabric       Step = 1 // Fabric selection
	StepStyle        Step = 2 // Garment style selection
	StepSize         Step = 3 // Standard size
	StepMeasurements Step = 4 // Bust, hips and gender
	StepFit          Step = 5 // Fit selection
	StepReview       Step = 6 // Review and generate

	FirstStep = StepFabric
	LastStep  = StepReview
)

// stepHandler holds what differs between steps.
type stepHandler struct {
	title    string
	complete func(design.Selection) bool
}

var stepHandlers = map[Step]stepHandler{
	StepFabric: {
		title:    "Fabric",
		complete: func(s design.Selection) bool { return s.Fabric != nil },
	},
	StepStyle: {
		title:    "Style",
		complete: func(s design.Selection) bool { return s.Style != nil },
	},
	StepSize: {
		title:    "Size",
		complete: func(s design.Selection) bool { return s.Size != "" },
	},
	StepMeasurements: {
		title: "Measurements",
		complete: func(s design.Selection) bool {
			return s.Measurements.Bust > 0 && s.Measurements.Hips > 0
		},
	},
	StepFit: {
		title:    "Fit",
		complete: func(s design.Selection) bool { return s.Fit != "" },
	},
	StepReview: {
		title:    "Generate",
		complete: func(design.Selection) bool { return true },
	},
}

// Steps lists every step in order.
func Steps() []Step {
	return []Step{StepFabric, StepStyle, StepSize, StepMeasurements, StepFit, StepReview}
}

// Valid reports whether s is one of the six steps.
func (s Step) Valid() bool {
	return s >= FirstStep && s <= LastStep
}

// Title is the short display name of the step.
func (s Step) Title() string {
	if h, ok := stepHandlers[s]; ok {
		return h.title
	}
	return fmt.Sprintf("Step %d", int(s))
}

func (s Step) String() string {
	return s.Title()
}

// complete evaluates the step's gate against a selection. Unknown steps are
// never complete.
func (s Step) complete(sel design.Selection) bool {
	h, ok := stepHandlers[s]
	return ok && h.complete(sel)
}
