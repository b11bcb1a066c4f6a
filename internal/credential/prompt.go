package credential

import "context"

// PromptRequest is sent to the UI when a key is needed. The requesting
// goroutine blocks on ResultCh until the UI replies.
type PromptRequest struct {
	ResultCh chan PromptResult
}

// PromptResult is the UI's reply. Declined is set when the user closed the
// prompt without entering a key.
type PromptResult struct {
	Answer   Answer
	Declined bool
}

// ChannelPrompter bridges prompts raised from a background goroutine to an
// event loop that owns the screen.
type ChannelPrompter struct {
	requests chan PromptRequest
}

// NewChannelPrompter creates a prompter whose requests are read from
// Requests.
func NewChannelPrompter() *ChannelPrompter {
	return &ChannelPrompter{requests: make(chan PromptRequest, 1)}
}

// Requests returns the channel the UI listens on.
func (p *ChannelPrompter) Requests() <-chan PromptRequest {
	return p.requests
}

// Prompt sends a request and waits for the reply.
func (p *ChannelPrompter) Prompt(ctx context.Context) (Answer, error) {
	resultCh := make(chan PromptResult, 1)

	select {
	case p.requests <- PromptRequest{ResultCh: resultCh}:
	case <-ctx.Done():
		return Answer{}, ctx.Err()
	}

	select {
	case res := <-resultCh:
		if res.Declined {
			return Answer{}, ErrDeclined
		}
		return res.Answer, nil
	case <-ctx.Done():
		return Answer{}, ctx.Err()
	}
}
