// Package credential decides whether an API key is available for image
// generation and, when it is not, asks the user for one.
package credential

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/mark3labs/tailor/internal/logger"
)

// ErrDeclined is returned by a Prompter when the user dismissed the prompt
// or no prompt can be shown.
var ErrDeclined = errors.New("credential prompt declined")

// Keyring holds the API key for the lifetime of the process.
type Keyring struct {
	mu  sync.RWMutex
	key string
}

// NewKeyring returns a keyring seeded with key, which may be empty.
func NewKeyring(key string) *Keyring {
	return &Keyring{key: strings.TrimSpace(key)}
}

// Key returns the current key.
func (k *Keyring) Key() string {
	k.mu.RLock()
	defer k.mu.RUnlock()
	return k.key
}

// Set replaces the key.
func (k *Keyring) Set(key string) {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.key = strings.TrimSpace(key)
}

// Selected reports whether a non-empty key is present.
func (k *Keyring) Selected() bool {
	return k.Key() != ""
}

// Answer is what the user gave back to a prompt.
type Answer struct {
	Key      string
	Remember bool // persist the key to the global config
}

// Prompter asks the user for a key. It blocks until the user answers or ctx
// ends.
type Prompter interface {
	Prompt(ctx context.Context) (Answer, error)
}

// NoPrompt is the prompter for headless callers: it always declines.
type NoPrompt struct{}

func (NoPrompt) Prompt(context.Context) (Answer, error) {
	return Answer{}, ErrDeclined
}

// Selector implements the credential contract used by the generation
// client on top of a Keyring and a Prompter.
type Selector struct {
	keyring  *Keyring
	prompter Prompter
	persist  func(key string) error
}

// Option configures a Selector.
type Option func(*Selector)

// WithPersist sets the function used to store a key the user asked to
// remember.
func WithPersist(fn func(key string) error) Option {
	return func(s *Selector) { s.persist = fn }
}

// NewSelector creates a Selector. A nil prompter behaves like NoPrompt.
func NewSelector(keyring *Keyring, prompter Prompter, opts ...Option) *Selector {
	if prompter == nil {
		prompter = NoPrompt{}
	}
	s := &Selector{keyring: keyring, prompter: prompter}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// HasSelectedCredential reports whether the keyring holds a key.
func (s *Selector) HasSelectedCredential(ctx context.Context) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	return s.keyring.Selected(), nil
}

// PromptSelectCredential runs the prompter and stores a non-empty answer.
// Failing to persist a remembered key is logged; the key is still used for
// this process.
func (s *Selector) PromptSelectCredential(ctx context.Context) error {
	answer, err := s.prompter.Prompt(ctx)
	if err != nil {
		return err
	}
	key := strings.TrimSpace(answer.Key)
	if key == "" {
		return ErrDeclined
	}
	s.keyring.Set(key)
	logger.Info("API key selected (remember=%v)", answer.Remember)

	if answer.Remember && s.persist != nil {
		if err := s.persist(key); err != nil {
			logger.Warn("Failed to save API key: %v", err)
		}
	}
	return nil
}
