package journal

import (
	"encoding/json"
	"time"

	"github.com/mark3labs/tailor/internal/design"
	"github.com/mark3labs/tailor/internal/generation"
	"github.com/mark3labs/tailor/internal/nats"
)

// Entry is the folded state of one generation attempt.
type Entry struct {
	ID         string
	Outcome    generation.Outcome
	Request    design.Request
	Result     *design.Result
	Cause      string
	StartedAt  time.Time
	FinishedAt time.Time
	Duration   time.Duration
}

// Finished reports whether the attempt reached a final outcome.
func (e *Entry) Finished() bool {
	return e.Outcome != generation.OutcomeStarted
}

// History is the reduced view of a session's events.
type History struct {
	Session string
	Entries []*Entry
	byID    map[string]*Entry
}

func newHistory(session string) *History {
	return &History{Session: session, byID: make(map[string]*Entry)}
}

// Apply folds an event into the history. Events of other types and events
// whose attempt cannot be decoded are ignored.
func (h *History) Apply(event Event) {
	if event.Type != nats.EventTypeGeneration {
		return
	}
	var a generation.Attempt
	if err := json.Unmarshal(event.Meta, &a); err != nil || a.ID == "" {
		return
	}

	e, ok := h.byID[a.ID]
	if !ok {
		e = &Entry{ID: a.ID, StartedAt: a.At}
		h.byID[a.ID] = e
		h.Entries = append(h.Entries, e)
	}

	e.Outcome = a.Outcome
	if a.Request != (design.Request{}) {
		e.Request = a.Request
	}
	if a.Outcome != generation.OutcomeStarted {
		e.Result = a.Result
		e.Cause = a.Cause
		e.Duration = a.Duration
		e.FinishedAt = a.At.Add(a.Duration)
	}
}

// Counts tallies finished attempts by outcome.
func (h *History) Counts() map[generation.Outcome]int {
	counts := make(map[generation.Outcome]int)
	for _, e := range h.Entries {
		counts[e.Outcome]++
	}
	return counts
}

// LastSuccess returns the most recent successful entry, or nil.
func (h *History) LastSuccess() *Entry {
	for i := len(h.Entries) - 1; i >= 0; i-- {
		if h.Entries[i].Outcome == generation.OutcomeSucceeded {
			return h.Entries[i]
		}
	}
	return nil
}
