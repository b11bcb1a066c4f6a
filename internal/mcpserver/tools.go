package mcpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/tailor/internal/design"
	"github.com/mark3labs/tailor/internal/generation"
	"github.com/mark3labs/tailor/internal/logger"
	"github.com/mark3labs/tailor/internal/pricing"
	"github.com/mark3labs/tailor/internal/session"
)

func (s *Server) registerTools() {
	s.mcpServer.AddTool(
		mcp.NewTool("list-catalog",
			mcp.WithDescription("List the fabrics, garment styles, sizes and fits a design can use"),
			mcp.WithString("kind",
				mcp.Description("Only list one kind of option"),
				mcp.Enum("fabrics", "styles", "sizes", "fits"),
			),
		),
		s.handleListCatalog,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("generate-design",
			mcp.WithDescription("Render front, side and back mockups of a custom garment and quote its price"),
			mcp.WithString("fabric", mcp.Required(), mcp.Description("Fabric id from list-catalog")),
			mcp.WithString("style", mcp.Required(), mcp.Description("Garment style id from list-catalog")),
			mcp.WithString("size", mcp.Required(), mcp.Enum("XS", "S", "M", "L", "XL", "XXL")),
			mcp.WithString("fit", mcp.Required(), mcp.Description("Fit name or short label, e.g. \"Regular Fit\" or \"Slim\"")),
			mcp.WithNumber("bust", mcp.Required(), mcp.Description("Bust in centimetres, 70-130")),
			mcp.WithNumber("hips", mcp.Required(), mcp.Description("Hips in centimetres, 70-130")),
			mcp.WithString("gender", mcp.Description("Body form, Female (default) or Male")),
		),
		s.handleGenerateDesign,
	)

	if s.opts.History != nil {
		s.mcpServer.AddTool(
			mcp.NewTool("generation-history",
				mcp.WithDescription("List generation attempts made by this server"),
			),
			s.handleHistory,
		)
	}
}

type catalogEntry struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type fitEntry struct {
	Name        string `json:"name"`
	Label       string `json:"label"`
	Description string `json:"description"`
}

type catalogListing struct {
	Fabrics []catalogEntry `json:"fabrics,omitempty"`
	Styles  []catalogEntry `json:"styles,omitempty"`
	Sizes   []string       `json:"sizes,omitempty"`
	Fits    []fitEntry     `json:"fits,omitempty"`
}

func (s *Server) handleListCatalog(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	kind := request.GetString("kind", "")

	var out catalogListing
	if kind == "" || kind == "fabrics" {
		for _, f := range s.catalog.Fabrics() {
			out.Fabrics = append(out.Fabrics, catalogEntry{ID: f.ID, Name: f.DisplayName})
		}
	}
	if kind == "" || kind == "styles" {
		for _, st := range s.catalog.Styles() {
			out.Styles = append(out.Styles, catalogEntry{ID: st.ID, Name: st.DisplayName})
		}
	}
	if kind == "" || kind == "sizes" {
		for _, sz := range design.Sizes {
			out.Sizes = append(out.Sizes, string(sz))
		}
	}
	if kind == "" || kind == "fits" {
		for _, f := range design.Fits {
			out.Fits = append(out.Fits, fitEntry{Name: string(f), Label: f.Label(), Description: f.Description()})
		}
	}

	data, err := json.Marshal(out)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal catalog: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

type designResult struct {
	Front      string  `json:"front"`
	Side       string  `json:"side,omitempty"`
	Back       string  `json:"back,omitempty"`
	Price      float64 `json:"price"`
	FabricCost float64 `json:"fabric_cost"`
	ServiceFee float64 `json:"service_fee"`
	Display    string  `json:"display"`
}

func (s *Server) handleGenerateDesign(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	c, err := session.Build(s.catalog, designInput(request))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	err = c.Generate(ctx, s.gen)
	state := c.Session()

	switch {
	case generation.IsCancelled(err):
		return mcp.NewToolResultError("cancelled: no API key is selected"), nil
	case errors.Is(err, session.ErrGenerationInFlight):
		return mcp.NewToolResultError(err.Error()), nil
	case state.LastError != "":
		return mcp.NewToolResultError(state.LastError), nil
	case state.LastResult == nil:
		return mcp.NewToolResultError(generation.UserMessage), nil
	}

	r := state.LastResult
	b := pricing.Split(r.Price, s.opts.ServiceFee)
	data, err := json.Marshal(designResult{
		Front:      r.Front,
		Side:       r.Side,
		Back:       r.Back,
		Price:      r.Price,
		FabricCost: b.FabricCost,
		ServiceFee: b.ServiceFee,
		Display:    pricing.Format(s.opts.Currency, b.Total),
	})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

// designInput maps the call's arguments onto a session input.
func designInput(request mcp.CallToolRequest) session.Input {
	return session.Input{
		Fabric: request.GetString("fabric", ""),
		Style:  request.GetString("style", ""),
		Size:   request.GetString("size", ""),
		Fit:    request.GetString("fit", ""),
		Gender: request.GetString("gender", ""),
		Bust:   request.GetFloat("bust", 0),
		Hips:   request.GetFloat("hips", 0),
	}
}

type historyEntry struct {
	ID       string  `json:"id"`
	Outcome  string  `json:"outcome"`
	Fabric   string  `json:"fabric,omitempty"`
	Style    string  `json:"style,omitempty"`
	Front    string  `json:"front,omitempty"`
	Price    float64 `json:"price,omitempty"`
	Duration string  `json:"duration,omitempty"`
}

func (s *Server) handleHistory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	h, err := s.opts.History.History(ctx)
	if err != nil {
		logger.Warn("Failed to load generation history: %v", err)
		return mcp.NewToolResultError("failed to load history"), nil
	}

	out := make([]historyEntry, 0, len(h.Entries))
	for _, e := range h.Entries {
		entry := historyEntry{
			ID:      e.ID,
			Outcome: string(e.Outcome),
			Fabric:  e.Request.FabricName,
			Style:   e.Request.StyleName,
		}
		if e.Result != nil {
			entry.Front = e.Result.Front
			entry.Price = e.Result.Price
		}
		if e.Duration > 0 {
			entry.Duration = e.Duration.String()
		}
		out = append(out, entry)
	}

	data, err := json.Marshal(out)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal history: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
