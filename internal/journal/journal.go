// Package journal keeps an in-memory event log of generation attempts on the
// embedded NATS server and folds it back into a per-session history.
package journal

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/gosimple/slug"
	"github.com/mark3labs/tailor/internal/generation"
	"github.com/mark3labs/tailor/internal/logger"
	"github.com/mark3labs/tailor/internal/nats"
	natsgo "github.com/nats-io/nats.go"
	"github.com/nats-io/nats-server/v2/server"
	"github.com/nats-io/nats.go/jetstream"
)

// Event is one entry of the event log.
type Event struct {
	ID        string          `json:"id"`        // stream sequence when not set by the publisher
	Timestamp time.Time       `json:"timestamp"` // when the event occurred
	Session   string          `json:"session"`
	Type      string          `json:"type"`   // generation
	Action    string          `json:"action"` // started, succeeded, cancelled, failed
	Meta      json.RawMessage `json:"meta"`   // the attempt
}

// Journal records generation attempts for one session. It implements
// generation.Recorder.
type Journal struct {
	session string
	js      jetstream.JetStream
	stream  jetstream.Stream

	// owned when created by Open
	nc      *natsgo.Conn
	ns      *server.Server
	tempDir string
}

// New wraps an existing JetStream context and stream.
func New(js jetstream.JetStream, stream jetstream.Stream, session string) *Journal {
	return &Journal{session: SessionName(session), js: js, stream: stream}
}

// Open starts an embedded server and returns a journal backed by it. Close
// stops the server.
func Open(ctx context.Context, session string) (*Journal, error) {
	tempDir, err := os.MkdirTemp("", "tailor-nats-")
	if err != nil {
		return nil, fmt.Errorf("failed to create nats store dir: %w", err)
	}

	ns, err := nats.StartEmbeddedNATS(tempDir)
	if err != nil {
		os.RemoveAll(tempDir)
		return nil, fmt.Errorf("failed to start nats: %w", err)
	}

	nc, err := nats.ConnectInProcess(ns)
	if err != nil {
		_ = nats.Shutdown(nil, ns)
		os.RemoveAll(tempDir)
		return nil, fmt.Errorf("failed to connect to nats: %w", err)
	}

	fail := func(err error) (*Journal, error) {
		_ = nats.Shutdown(nc, ns)
		os.RemoveAll(tempDir)
		return nil, err
	}

	js, err := nats.CreateJetStream(nc)
	if err != nil {
		return fail(fmt.Errorf("failed to create jetstream context: %w", err))
	}
	stream, err := nats.SetupStream(ctx, js)
	if err != nil {
		return fail(fmt.Errorf("failed to set up stream: %w", err))
	}

	j := New(js, stream, session)
	j.nc, j.ns, j.tempDir = nc, ns, tempDir
	logger.Debug("Journal open for session %s", j.session)
	return j, nil
}

// Close shuts down the embedded server if the journal owns one.
func (j *Journal) Close() error {
	if j.ns == nil {
		return nil
	}
	err := nats.Shutdown(j.nc, j.ns)
	if j.tempDir != "" {
		os.RemoveAll(j.tempDir)
	}
	j.nc, j.ns = nil, nil
	return err
}

// Session returns the subject-safe session name.
func (j *Journal) Session() string {
	return j.session
}

// SessionName turns a free-form name into a subject token. An empty name
// gets a time-based one.
func SessionName(name string) string {
	s := slug.Make(name)
	if s == "" {
		s = "design-" + time.Now().UTC().Format("20060102-150405")
	}
	return s
}

// Record publishes one attempt.
func (j *Journal) Record(ctx context.Context, attempt generation.Attempt) error {
	meta, err := json.Marshal(attempt)
	if err != nil {
		return fmt.Errorf("failed to marshal attempt: %w", err)
	}
	_, err = j.PublishEvent(ctx, Event{
		Timestamp: attempt.At,
		Session:   j.session,
		Type:      nats.EventTypeGeneration,
		Action:    string(attempt.Outcome),
		Meta:      meta,
	})
	return err
}

// PublishEvent appends an event to the log on tailor.{session}.{type}.
func (j *Journal) PublishEvent(ctx context.Context, event Event) (*jetstream.PubAck, error) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	if event.Session == "" {
		event.Session = j.session
	}

	data, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal event: %w", err)
	}

	subject := nats.SubjectForEvent(event.Session, event.Type)
	ack, err := j.js.Publish(ctx, subject, data)
	if err != nil {
		logger.Error("Failed to publish event to subject %s: %v", subject, err)
		return nil, fmt.Errorf("failed to publish event: %w", err)
	}

	logger.Debug("Event published: session=%s type=%s action=%s seq=%d", event.Session, event.Type, event.Action, ack.Sequence)
	return ack, nil
}

// History replays the session's events into one entry per attempt, oldest
// first.
func (j *Journal) History(ctx context.Context) (*History, error) {
	if j.stream == nil {
		return nil, errors.New("journal has no stream")
	}

	consumer, err := j.stream.CreateOrUpdateConsumer(ctx, jetstream.ConsumerConfig{
		FilterSubject: nats.SubjectForSession(j.session),
		DeliverPolicy: jetstream.DeliverAllPolicy,
		AckPolicy:     jetstream.AckExplicitPolicy,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create consumer: %w", err)
	}

	h := newHistory(j.session)

	const batchSize = 500
	malformed := 0
	for {
		msgs, err := consumer.FetchNoWait(batchSize)
		if err != nil {
			break
		}

		n := 0
		for msg := range msgs.Messages() {
			n++
			var event Event
			if err := json.Unmarshal(msg.Data(), &event); err != nil {
				malformed++
				_ = msg.Ack()
				continue
			}
			if event.ID == "" {
				if meta, err := msg.Metadata(); err == nil {
					event.ID = fmt.Sprintf("%d", meta.Sequence.Stream)
				}
			}
			h.Apply(event)
			_ = msg.Ack()
		}

		if n < batchSize {
			break
		}
	}

	if malformed > 0 {
		logger.Warn("Skipped %d malformed journal events", malformed)
	}
	return h, nil
}
