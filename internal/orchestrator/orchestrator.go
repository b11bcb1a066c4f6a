// Package orchestrator wires configuration, catalog, credentials, provider,
// journal and user interface into one running design session.
package orchestrator

import (
	"context"
	"errors"
	"fmt"

	tea "charm.land/bubbletea/v2"
	"github.com/mark3labs/tailor/internal/catalog"
	"github.com/mark3labs/tailor/internal/config"
	"github.com/mark3labs/tailor/internal/credential"
	"github.com/mark3labs/tailor/internal/generation"
	"github.com/mark3labs/tailor/internal/journal"
	"github.com/mark3labs/tailor/internal/logger"
	"github.com/mark3labs/tailor/internal/pricing"
	"github.com/mark3labs/tailor/internal/provider/openai"
	"github.com/mark3labs/tailor/internal/template"
	"github.com/mark3labs/tailor/internal/tui/wizard"
)

// Config holds configuration for the orchestrator.
type Config struct {
	Settings    *config.Config           // loaded tailor.yml / env settings
	SessionName string                   // journal session; empty picks a time-based name
	Prompter    credential.Prompter      // nil means headless: never prompt
	NoJournal   bool                     // skip the embedded NATS journal
	Provider    generation.ImageProvider // overrides the OpenAI-compatible provider
}

// Orchestrator owns every long-lived component of a session.
type Orchestrator struct {
	cfg      Config
	catalog  *catalog.Catalog
	keyring  *credential.Keyring
	pricing  *pricing.Engine
	journal  *journal.Journal
	client   *generation.Client
	prompter *credential.ChannelPrompter // set by RunTUI
	ctx      context.Context
	cancel   context.CancelFunc
	started  bool
	stopped  bool
}

// New creates an orchestrator. Nothing is started until Start.
func New(cfg Config) (*Orchestrator, error) {
	if cfg.Settings == nil {
		return nil, errors.New("orchestrator: settings are required")
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Orchestrator{cfg: cfg, ctx: ctx, cancel: cancel}, nil
}

// Start loads the catalog and prompt template, opens the journal and builds
// the generation client.
func (o *Orchestrator) Start() error {
	if o.started {
		return errors.New("orchestrator already started")
	}
	s := o.cfg.Settings

	cat, err := catalog.Load(s.CatalogFile)
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}
	o.catalog = cat

	tmpl, err := template.GetTemplate(s.PromptFile)
	if err != nil {
		return fmt.Errorf("failed to load prompt template: %w", err)
	}

	var recorder generation.Recorder
	if !o.cfg.NoJournal {
		// The journal only feeds history and diagnostics; run without it rather than fail.
		j, err := journal.Open(o.ctx, o.cfg.SessionName)
		if err != nil {
			logger.Warn("Generation journal unavailable: %v", err)
		} else {
			o.journal = j
			recorder = j
		}
	}

	o.keyring = credential.NewKeyring(s.APIKey)
	o.pricing = pricing.NewEngine(pricing.DefaultPricebook(), s.ServiceFee)

	provider := o.cfg.Provider
	if provider == nil {
		provider, err = openai.NewProvider(openai.Options{
			BaseURL:    s.BaseURL,
			Model:      s.Model,
			Size:       s.ImageSize,
			Template:   tmpl,
			MaxRetries: 2,
			Keys:       o.keyring,
			Quoter:     o.pricing,
		})
		if err != nil {
			o.closeJournal()
			return fmt.Errorf("failed to create image provider: %w", err)
		}
	}

	prompter := o.cfg.Prompter
	if prompter == nil {
		prompter = credential.NoPrompt{}
	}
	selector := credential.NewSelector(o.keyring, prompter, credential.WithPersist(o.rememberKey))

	o.client, err = generation.NewClient(generation.Options{
		Credentials: selector,
		Provider:    provider,
		Recorder:    recorder,
		Timeout:     s.Timeout,
	})
	if err != nil {
		o.closeJournal()
		return fmt.Errorf("failed to create generation client: %w", err)
	}

	o.started = true
	logger.Info("Orchestrator started: model=%s base_url=%s journal=%v key=%v",
		s.Model, s.BaseURL, o.journal != nil, o.keyring.Selected())
	return nil
}

// rememberKey writes the key into the global config file, keeping the
// other settings as loaded.
func (o *Orchestrator) rememberKey(key string) error {
	cfg := *o.cfg.Settings
	cfg.APIKey = key
	if err := config.WriteGlobal(&cfg); err != nil {
		return err
	}
	logger.Info("API key saved to %s", config.GlobalPath())
	return nil
}

// RunTUI runs the design wizard until the user quits. The credential prompt
// is shown as a modal inside the wizard.
func (o *Orchestrator) RunTUI() error {
	if o.started {
		return errors.New("RunTUI must be called before Start")
	}
	o.prompter = credential.NewChannelPrompter()
	o.cfg.Prompter = o.prompter
	if err := o.Start(); err != nil {
		return err
	}

	model := wizard.New(wizard.Deps{
		Ctx:        o.ctx,
		Catalog:    o.catalog,
		Generator:  o.client,
		Prompts:    o.prompter.Requests(),
		History:    o.History(),
		Currency:   o.cfg.Settings.Currency,
		ServiceFee: o.pricing.ServiceFee(),
	})

	program := tea.NewProgram(model, tea.WithContext(o.ctx))
	if _, err := program.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("wizard exited: %w", err)
	}
	return nil
}

// Catalog returns the loaded catalog.
func (o *Orchestrator) Catalog() *catalog.Catalog {
	return o.catalog
}

// Generator returns the generation client.
func (o *Orchestrator) Generator() *generation.Client {
	return o.client
}

// Pricing returns the pricing engine.
func (o *Orchestrator) Pricing() *pricing.Engine {
	return o.pricing
}

// Context is cancelled by Stop.
func (o *Orchestrator) Context() context.Context {
	return o.ctx
}

// History returns the journal as a history source, or nil without one.
func (o *Orchestrator) History() wizard.HistorySource {
	if o.journal == nil {
		return nil
	}
	return o.journal
}

// Stop cancels the session context and closes the journal.
// Multiple calls to Stop() are safe.
func (o *Orchestrator) Stop() error {
	if o.stopped {
		return nil
	}
	o.stopped = true

	if o.cancel != nil {
		o.cancel()
	}
	err := o.closeJournal()
	logger.Info("Orchestrator stopped")
	return err
}

func (o *Orchestrator) closeJournal() error {
	if o.journal == nil {
		return nil
	}
	err := o.journal.Close()
	o.journal = nil
	if err != nil {
		logger.Error("Journal shutdown failed: %v", err)
		return fmt.Errorf("journal shutdown failed: %w", err)
	}
	return nil
}
