package nats

import (
	"context"
	"fmt"
	"time"

	"github.com/nats-io/nats.go/jetstream"
)

const (
	streamName = "tailor_events"

	// EventTypeGeneration marks generation attempt events.
	EventTypeGeneration = "generation"
)

// SubjectForSession returns the wildcard subject for all events of a session.
// Example: "tailor.design-1a2b.>"
func SubjectForSession(session string) string {
	return fmt.Sprintf("tailor.%s.>", session)
}

// SubjectForEvent returns the subject of one event type in a session.
// Example: "tailor.design-1a2b.generation"
func SubjectForEvent(session, eventType string) string {
	return fmt.Sprintf("tailor.%s.%s", session, eventType)
}

// SetupStream creates or updates the memory-backed event stream. Events die
// with the process.
func SetupStream(ctx context.Context, js jetstream.JetStream) (jetstream.Stream, error) {
	return js.CreateOrUpdateStream(ctx, jetstream.StreamConfig{
		Name:     streamName,
		Subjects: []string{"tailor.>"},
		Storage:  jetstream.MemoryStorage,
		MaxAge:   24 * time.Hour,
		MaxMsgs:  10_000,
	})
}
