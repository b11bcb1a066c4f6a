package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/mark3labs/tailor/internal/design"
	"github.com/mark3labs/tailor/internal/generation"
	"github.com/mark3labs/tailor/internal/orchestrator"
	"github.com/mark3labs/tailor/internal/pricing"
	"github.com/mark3labs/tailor/internal/session"
	"github.com/mark3labs/tailor/internal/tui/theme"
	"github.com/spf13/cobra"
)

var generateFlags struct {
	session.Input
	json bool
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate mockups without the wizard",
	Long: `Generate front, side and back mockups for a design given on the
command line. The API key must come from the config, TAILOR_API_KEY or
--api-key; nothing is prompted.`,
	Example: `  tailor generate --fabric silk --style dress --size S --bust 84 --hips 92 --fit slim`,
	RunE:    runGenerate,
}

func init() {
	f := generateCmd.Flags()
	f.StringVar(&generateFlags.Fabric, "fabric", "", "Fabric id (see tailor catalog)")
	f.StringVar(&generateFlags.Style, "style", "", "Garment style id (see tailor catalog)")
	f.StringVar(&generateFlags.Size, "size", "", "Standard size: XS, S, M, L, XL, XXL")
	f.StringVar(&generateFlags.Fit, "fit", "", "Fit: slim, regular, loose, tailored")
	f.StringVar(&generateFlags.Gender, "gender", "female", "Body form: female or male")
	f.Float64Var(&generateFlags.Bust, "bust", 0, "Bust in centimetres, 70-130")
	f.Float64Var(&generateFlags.Hips, "hips", 0, "Hips in centimetres, 70-130")
	f.BoolVar(&generateFlags.json, "json", false, "Print the result as JSON")
}

type generateOutput struct {
	Front      string  `json:"front"`
	Side       string  `json:"side,omitempty"`
	Back       string  `json:"back,omitempty"`
	Price      float64 `json:"price"`
	FabricCost float64 `json:"fabric_cost"`
	ServiceFee float64 `json:"service_fee"`
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := loadSettings()
	if err != nil {
		return err
	}

	orch, err := orchestrator.New(orchestrator.Config{Settings: cfg, NoJournal: true})
	if err != nil {
		return fmt.Errorf("failed to create orchestrator: %w", err)
	}
	if err := orch.Start(); err != nil {
		return fmt.Errorf("failed to start orchestrator: %w", err)
	}
	defer func() { _ = orch.Stop() }()

	c, err := session.Build(orch.Catalog(), generateFlags.Input)
	if err != nil {
		return err
	}

	err = c.Generate(cmd.Context(), orch.Generator())
	state := c.Session()
	switch {
	case generation.IsCancelled(err):
		return errors.New("no API key is configured; run tailor setup or pass --api-key")
	case state.LastError != "":
		return errors.New(state.LastError)
	case state.LastResult == nil:
		return errors.New(generation.UserMessage)
	}

	r := *state.LastResult
	b := pricing.Split(r.Price, orch.Pricing().ServiceFee())
	if generateFlags.json {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(generateOutput{
			Front: r.Front, Side: r.Side, Back: r.Back,
			Price: r.Price, FabricCost: b.FabricCost, ServiceFee: b.ServiceFee,
		})
	}
	printResult(cmd.OutOrStdout(), r, b, cfg.Currency)
	return nil
}

func printResult(out io.Writer, r design.Result, b pricing.Breakdown, currency string) {
	s := theme.Current().S()
	view := func(name, ref string) {
		switch {
		case ref == "":
			fmt.Fprintf(out, "%s not available\n", s.Label.Render(name))
		case strings.HasPrefix(ref, "data:"):
			fmt.Fprintf(out, "%s inline image\n", s.Label.Render(name))
		default:
			fmt.Fprintf(out, "%s %s\n", s.Label.Render(name), ref)
		}
	}
	view("Front", r.Front)
	view("Side ", r.Side)
	view("Back ", r.Back)
	fmt.Fprintln(out)
	fmt.Fprintf(out, "Fabric & materials %s\n", pricing.Format(currency, b.FabricCost))
	fmt.Fprintf(out, "Tailoring service  %s\n", pricing.Format(currency, b.ServiceFee))
	fmt.Fprintf(out, "Total              %s\n", s.Price.Render(pricing.Format(currency, b.Total)))
}
