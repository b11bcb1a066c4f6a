package session

import (
	"context"
	"errors"
	"testing"

	"github.com/mark3labs/tailor/internal/design"
	"github.com/mark3labs/tailor/internal/generation"
	"github.com/stretchr/testify/require"
)

type stubCredentials struct {
	selected  bool
	promptErr error
}

func (s *stubCredentials) HasSelectedCredential(context.Context) (bool, error) {
	return s.selected, nil
}

func (s *stubCredentials) PromptSelectCredential(context.Context) error {
	return s.promptErr
}

type stubProvider struct {
	resp design.Response
	err  error
}

func (s stubProvider) Generate(context.Context, design.Request) (design.Response, error) {
	return s.resp, s.err
}

func ptr[T any](v T) *T { return &v }

// End to end through the real generation client.
func TestGenerate_WithClient(t *testing.T) {
	tests := []struct {
		name       string
		creds      *stubCredentials
		provider   stubProvider
		wantError  string
		wantResult *design.Result
	}{
		{
			name:  "full scenario",
			creds: &stubCredentials{selected: true},
			provider: stubProvider{resp: design.Response{
				Front: ptr("https://a/f.png"),
				Side:  ptr("https://a/s.png"),
				Back:  ptr("https://a/b.png"),
				Price: ptr(180.0),
			}},
			wantResult: &design.Result{Front: "https://a/f.png", Side: "https://a/s.png", Back: "https://a/b.png", Price: 180},
		},
		{
			name:       "price missing",
			creds:      &stubCredentials{selected: true},
			provider:   stubProvider{resp: design.Response{Front: ptr("https://x/img.png")}},
			wantResult: &design.Result{Front: "https://x/img.png"},
		},
		{
			name:     "not ready after prompt",
			creds:    &stubCredentials{promptErr: errors.New("dismissed")},
			provider: stubProvider{resp: design.Response{Front: ptr("https://x/img.png")}},
		},
		{
			name:      "front null",
			creds:     &stubCredentials{selected: true},
			provider:  stubProvider{resp: design.Response{Side: ptr("https://a/s.png"), Price: ptr(99.0)}},
			wantError: generation.UserMessage,
		},
		{
			name:      "provider throws",
			creds:     &stubCredentials{selected: true},
			provider:  stubProvider{err: errors.New("connection reset")},
			wantError: generation.UserMessage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := generation.NewClient(generation.Options{Credentials: tt.creds, Provider: tt.provider})
			require.NoError(t, err)

			c := scenarioController(t)
			_ = c.Generate(context.Background(), client)

			s := c.Session()
			require.False(t, s.Generating)
			require.Equal(t, tt.wantError, s.LastError)
			require.Equal(t, tt.wantResult, s.LastResult)
			require.Equal(t, StepReview, s.Step)
		})
	}
}
