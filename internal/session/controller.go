// Package session owns the state of one design wizard session: the step
// cursor, the accumulating design selection and the transient generation
// state (busy flag, last error, last result).
package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/mark3labs/tailor/internal/design"
	"github.com/mark3labs/tailor/internal/generation"
	"github.com/mark3labs/tailor/internal/logger"
)

// ErrGenerationInFlight is returned when a generation is started while
// another one has not finished.
var ErrGenerationInFlight = errors.New("a generation is already in progress")

// State is a read-only snapshot of a wizard session.
type State struct {
	Step       Step
	Selection  design.Selection
	Generating bool
	LastError  string         // empty when unset
	LastResult *design.Result // nil when unset
}

// Generator produces a result for a selection.
type Generator interface {
	Generate(ctx context.Context, sel design.Selection) (design.Result, error)
}

// Ticket is handed out by StartGeneration and must be passed back to
// FinishGeneration. It carries the selection snapshot to generate from.
type Ticket struct {
	Selection design.Selection
	epoch     uint64
}

// Controller is the wizard state machine. It is not safe for concurrent use;
// a session has exactly one owner.
type Controller struct {
	state State
	epoch uint64 // bumped by Reset so late completions are dropped
}

// New creates a controller at step 1 with an empty selection.
func New() *Controller {
	c := &Controller{}
	c.state = initialState()
	return c
}

func initialState() State {
	return State{
		Step:      FirstStep,
		Selection: design.NewSelection(),
	}
}

// Session returns a snapshot of the current state.
func (c *Controller) Session() State {
	s := c.state
	s.Selection = c.state.Selection.Clone()
	if c.state.LastResult != nil {
		r := *c.state.LastResult
		s.LastResult = &r
	}
	return s
}

// Step returns the current step.
func (c *Controller) Step() Step {
	return c.state.Step
}

// SelectFabric sets the fabric.
func (c *Controller) SelectFabric(item design.CatalogItem) {
	c.state.Selection.Fabric = &item
}

// SelectStyle sets the garment style.
func (c *Controller) SelectStyle(item design.CatalogItem) {
	c.state.Selection.Style = &item
}

// SelectSize sets the standard size.
func (c *Controller) SelectSize(size design.Size) {
	c.state.Selection.Size = size
}

// SelectFit sets the fit.
func (c *Controller) SelectFit(fit design.Fit) {
	c.state.Selection.Fit = fit
}

// UpdateMeasurement sets the bust or hips measurement in centimetres.
func (c *Controller) UpdateMeasurement(field design.MeasurementField, cm float64) {
	switch field {
	case design.FieldBust:
		c.state.Selection.Measurements.Bust = cm
	case design.FieldHips:
		c.state.Selection.Measurements.Hips = cm
	default:
		logger.Warn("UpdateMeasurement: %s is not a numeric field", field)
	}
}

// SetGender sets the gender used for the body block.
func (c *Controller) SetGender(g design.Gender) {
	c.state.Selection.Measurements.Gender = g
}

// IsStepComplete reports whether the selection satisfies the gate of step.
func (c *Controller) IsStepComplete(step Step) bool {
	return step.complete(c.state.Selection)
}

// CanAdvance reports whether Advance would move forward.
func (c *Controller) CanAdvance() bool {
	return c.state.Step < LastStep && c.IsStepComplete(c.state.Step)
}

// CanRetreat reports whether Retreat would move back.
func (c *Controller) CanRetreat() bool {
	return c.state.Step > FirstStep
}

// Advance moves to the next step if the current one is complete.
// It reports whether the step changed.
func (c *Controller) Advance() bool {
	if !c.IsStepComplete(c.state.Step) || c.state.Step >= LastStep {
		return false
	}
	c.state.Step++
	return true
}

// Retreat moves to the previous step, stopping at the first one.
// It reports whether the step changed.
func (c *Controller) Retreat() bool {
	if c.state.Step <= FirstStep {
		return false
	}
	c.state.Step--
	return true
}

// Reset restores the initial state. A generation still running when Reset
// is called will have its completion ignored.
func (c *Controller) Reset() {
	c.epoch++
	c.state = initialState()
}

// StartGeneration marks the session busy, clears the previous error and
// result and returns a ticket holding a snapshot of the selection.
func (c *Controller) StartGeneration() (Ticket, error) {
	if c.state.Generating {
		return Ticket{}, ErrGenerationInFlight
	}
	c.state.Generating = true
	c.state.LastError = ""
	c.state.LastResult = nil
	return Ticket{Selection: c.state.Selection.Clone(), epoch: c.epoch}, nil
}

// FinishGeneration releases the busy flag and records the outcome:
// a result on success, nothing on cancellation, the fixed user message on
// any failure. A ticket issued before the last Reset is ignored.
func (c *Controller) FinishGeneration(t Ticket, result design.Result, err error) {
	if t.epoch != c.epoch {
		logger.Debug("Dropping generation outcome from before reset")
		return
	}
	c.state.Generating = false

	switch {
	case err == nil && result.Front != "":
		c.state.LastResult = &result
	case err == nil:
		logger.Error("Generation returned without a front image")
		c.state.LastError = generation.UserMessage
	case generation.IsCancelled(err):
		logger.Debug("Generation cancelled before invocation")
	default:
		c.state.LastError = generation.UserMessage
	}
}

// Generate runs a full generation synchronously. The busy flag is released
// on every exit path, including a panicking generator.
func (c *Controller) Generate(ctx context.Context, gen Generator) (err error) {
	ticket, err := c.StartGeneration()
	if err != nil {
		return err
	}

	var result design.Result
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: generator panic: %v", generation.ErrGenerationFailed, r)
			logger.Error("Generation panicked: %v", r)
		}
		c.FinishGeneration(ticket, result, err)
	}()

	result, err = gen.Generate(ctx, ticket.Selection)
	return err
}
