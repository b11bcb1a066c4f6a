// Package generation turns a completed design selection into rendered mockups
// through an external provider, after making sure a credential is selected.
package generation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mark3labs/tailor/internal/design"
	"github.com/mark3labs/tailor/internal/logger"
)

// CredentialProvider gates access to the image provider.
type CredentialProvider interface {
	// HasSelectedCredential reports whether a credential is already selected.
	HasSelectedCredential(ctx context.Context) (bool, error)
	// PromptSelectCredential runs the provider's own selection flow.
	PromptSelectCredential(ctx context.Context) error
}

// ImageProvider renders the garment views for a request.
type ImageProvider interface {
	Generate(ctx context.Context, req design.Request) (design.Response, error)
}

// Outcome classifies a journaled generation attempt.
type Outcome string

const (
	OutcomeStarted   Outcome = "started"
	OutcomeSucceeded Outcome = "succeeded"
	OutcomeCancelled Outcome = "cancelled"
	OutcomeFailed    Outcome = "failed"
)

// Attempt describes one step of a generation attempt for the journal.
type Attempt struct {
	ID       string         `json:"id"`
	Outcome  Outcome        `json:"outcome"`
	Request  design.Request `json:"request"`
	Result   *design.Result `json:"result,omitempty"`
	Cause    string         `json:"cause,omitempty"`
	At       time.Time      `json:"at"`
	Duration time.Duration  `json:"duration,omitempty"`
}

// Recorder receives generation attempts. Recording is best effort and never
// changes the outcome of a generation.
type Recorder interface {
	Record(ctx context.Context, attempt Attempt) error
}

// Options configures a Client.
type Options struct {
	Credentials CredentialProvider
	Provider    ImageProvider
	Recorder    Recorder      // optional
	Timeout     time.Duration // per provider call; 0 means no limit
}

// Client runs the authorization check, the provider call and the response
// normalization for one generation at a time per caller.
type Client struct {
	creds    CredentialProvider
	provider ImageProvider
	recorder Recorder
	timeout  time.Duration
	now      func() time.Time
}

// NewClient creates a generation client.
func NewClient(opts Options) (*Client, error) {
	if opts.Credentials == nil {
		return nil, errors.New("generation: credential provider is required")
	}
	if opts.Provider == nil {
		return nil, errors.New("generation: image provider is required")
	}
	return &Client{
		creds:    opts.Credentials,
		provider: opts.Provider,
		recorder: opts.Recorder,
		timeout:  opts.Timeout,
		now:      time.Now,
	}, nil
}

// Generate produces mockups for the selection.
//
// It returns ErrAuthorizationDeclined when no credential could be selected,
// and an error wrapping ErrGenerationFailed for every other failure. The
// underlying cause is logged, never meant for display.
func (c *Client) Generate(ctx context.Context, sel design.Selection) (result design.Result, err error) {
	attempt := Attempt{ID: uuid.NewString(), At: c.now()}
	start := attempt.At

	defer func() {
		if r := recover(); r != nil {
			result, err = c.fail(ctx, attempt, start, fmt.Errorf("provider panic: %v", r))
		}
	}()

	ready, err := c.authorize(ctx)
	if err != nil {
		return c.fail(ctx, attempt, start, fmt.Errorf("authorization check: %w", err))
	}
	if !ready {
		logger.Info("Generation %s cancelled: no credential selected", attempt.ID)
		attempt.Outcome = OutcomeCancelled
		c.record(ctx, attempt)
		return design.Result{}, ErrAuthorizationDeclined
	}

	req, err := design.NewRequest(sel)
	if err != nil {
		return c.fail(ctx, attempt, start, fmt.Errorf("%w: %w", ErrMalformedSelection, err))
	}
	attempt.Request = req

	started := attempt
	started.Outcome = OutcomeStarted
	c.record(ctx, started)

	logger.Info("Generation %s: %s %s, size %s, %s, %s bust %.0fcm hips %.0fcm",
		attempt.ID, req.FabricName, req.StyleName, req.Size, req.FitType, req.Gender, req.BustCm, req.HipsCm)

	callCtx := ctx
	if c.timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	resp, err := c.provider.Generate(callCtx, req)
	if err != nil {
		return c.fail(ctx, attempt, start, fmt.Errorf("provider call: %w", err))
	}

	logger.Debug("Generation %s raw response: front=%q side=%q back=%q price=%s",
		attempt.ID, deref(resp.Front), deref(resp.Side), deref(resp.Back), formatPrice(resp.Price))

	result, err = Normalize(resp)
	if err != nil {
		return c.fail(ctx, attempt, start, err)
	}

	attempt.Outcome = OutcomeSucceeded
	attempt.Result = &result
	attempt.Duration = c.now().Sub(start)
	c.record(ctx, attempt)
	logger.Info("Generation %s succeeded in %s, price %.2f", attempt.ID, attempt.Duration, result.Price)
	return result, nil
}

// authorize checks for a selected credential and, if there is none, delegates
// to the provider's selection flow and checks again. A selection flow that
// fails counts as "not ready" rather than as an error.
func (c *Client) authorize(ctx context.Context) (bool, error) {
	ok, err := c.creds.HasSelectedCredential(ctx)
	if err != nil {
		return false, err
	}
	if ok {
		return true, nil
	}

	if err := c.creds.PromptSelectCredential(ctx); err != nil {
		logger.Info("Credential selection did not complete: %v", err)
		return false, nil
	}
	return c.creds.HasSelectedCredential(ctx)
}

func (c *Client) fail(ctx context.Context, attempt Attempt, start time.Time, cause error) (design.Result, error) {
	logger.Error("Generation %s failed: %v", attempt.ID, cause)
	attempt.Outcome = OutcomeFailed
	attempt.Cause = cause.Error()
	attempt.Duration = c.now().Sub(start)
	c.record(ctx, attempt)
	return design.Result{}, fmt.Errorf("%w: %w", ErrGenerationFailed, cause)
}

func (c *Client) record(ctx context.Context, attempt Attempt) {
	if c.recorder == nil {
		return
	}
	if err := c.recorder.Record(context.WithoutCancel(ctx), attempt); err != nil {
		logger.Warn("Failed to journal generation %s (%s): %v", attempt.ID, attempt.Outcome, err)
	}
}

// Normalize maps a raw provider response onto a Result. A non-empty front
// image is the only success criterion; side and back are best effort and a
// missing price becomes 0.
func Normalize(resp design.Response) (design.Result, error) {
	front := strings.TrimSpace(deref(resp.Front))
	if front == "" {
		return design.Result{}, ErrNoFrontImage
	}

	result := design.Result{
		Front: front,
		Side:  strings.TrimSpace(deref(resp.Side)),
		Back:  strings.TrimSpace(deref(resp.Back)),
	}
	if resp.Price != nil {
		result.Price = *resp.Price
	}
	return result, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func formatPrice(p *float64) string {
	if p == nil {
		return "<none>"
	}
	return fmt.Sprintf("%.2f", *p)
}
