// Package openai renders garment views through an OpenAI-compatible images
// API.
package openai

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/mark3labs/tailor/internal/design"
	"github.com/mark3labs/tailor/internal/logger"
	"github.com/mark3labs/tailor/internal/template"
	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// KeySource returns the API key to use for the next request.
type KeySource interface {
	Key() string
}

// Quoter prices a request. The images API has no notion of price.
type Quoter interface {
	Quote(req design.Request) float64
}

// Options configures a Provider.
type Options struct {
	BaseURL    string
	Model      string
	Size       string
	Template   string // prompt template; empty means template.DefaultTemplate
	MaxRetries int
	Keys       KeySource
	Quoter     Quoter // optional; without it the response carries no price
}

// Provider implements the image provider contract with one images request
// per view.
type Provider struct {
	opts Options
}

// NewProvider creates a provider.
func NewProvider(opts Options) (*Provider, error) {
	if opts.Keys == nil {
		return nil, errors.New("openai: key source is required")
	}
	if opts.Model == "" {
		return nil, errors.New("openai: model is required")
	}
	if opts.Template == "" {
		opts.Template = template.DefaultTemplate
	}
	return &Provider{opts: opts}, nil
}

// Generate renders the front view, then the side and back views in
// parallel. Only the front view is required; a failed side or back view
// is logged and left empty.
func (p *Provider) Generate(ctx context.Context, req design.Request) (design.Response, error) {
	client := p.client()

	front, err := p.render(ctx, client, req, template.ViewFront)
	if err != nil {
		return design.Response{}, fmt.Errorf("front view: %w", err)
	}
	resp := design.Response{Front: &front}

	var wg sync.WaitGroup
	var side, back *string
	for _, view := range []template.View{template.ViewSide, template.ViewBack} {
		wg.Add(1)
		go func(view template.View) {
			defer wg.Done()
			img, err := p.render(ctx, client, req, view)
			if err != nil {
				logger.Warn("Optional %s view failed: %v", view, err)
				return
			}
			if view == template.ViewSide {
				side = &img
			} else {
				back = &img
			}
		}(view)
	}
	wg.Wait()
	resp.Side, resp.Back = side, back

	if p.opts.Quoter != nil {
		price := p.opts.Quoter.Quote(req)
		resp.Price = &price
	}
	return resp, nil
}

func (p *Provider) client() openai.Client {
	opts := []option.RequestOption{
		option.WithAPIKey(p.opts.Keys.Key()),
		option.WithMaxRetries(p.opts.MaxRetries),
	}
	if p.opts.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(p.opts.BaseURL))
	}
	return openai.NewClient(opts...)
}

func (p *Provider) render(ctx context.Context, client openai.Client, req design.Request, view template.View) (string, error) {
	params := openai.ImageGenerateParams{
		Prompt: template.BuildPrompt(p.opts.Template, req, view),
		Model:  openai.ImageModel(p.opts.Model),
		N:      openai.Int(1),
	}
	if p.opts.Size != "" {
		params.Size = openai.ImageGenerateParamsSize(p.opts.Size)
	}

	res, err := client.Images.Generate(ctx, params)
	if err != nil {
		return "", fmt.Errorf("images request failed: %w", err)
	}
	if len(res.Data) == 0 {
		return "", errors.New("images response has no data")
	}
	return imageRef(res.Data[0])
}

// imageRef prefers a hosted URL and falls back to an inline data URI.
func imageRef(img openai.Image) (string, error) {
	if u := strings.TrimSpace(img.URL); u != "" {
		return u, nil
	}
	if b := strings.TrimSpace(img.B64JSON); b != "" {
		return "data:image/png;base64," + b, nil
	}
	return "", errors.New("image has neither url nor b64_json")
}
