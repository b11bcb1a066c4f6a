package wizard

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"charm.land/glamour/v2"
	"github.com/mark3labs/tailor/internal/design"
	"github.com/mark3labs/tailor/internal/journal"
	"github.com/mark3labs/tailor/internal/pricing"
	"github.com/mark3labs/tailor/internal/tui/theme"
)

// renderMarkdown renders markdown with glamour, falling back to the raw text.
func renderMarkdown(content string, width int) string {
	if width < 20 {
		width = 20
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return content
	}
	out, err := r.Render(content)
	if err != nil {
		return content
	}
	return strings.TrimRight(out, "\n")
}

func cm(v float64) string {
	if v <= 0 {
		return "not set"
	}
	return strconv.FormatFloat(v, 'f', -1, 64) + " cm"
}

// summaryMarkdown lists the selection for the review step.
func summaryMarkdown(sel design.Selection) string {
	name := func(item *design.CatalogItem) string {
		if item == nil {
			return "not set"
		}
		return item.DisplayName
	}
	orUnset := func(s string) string {
		if s == "" {
			return "not set"
		}
		return s
	}

	var b strings.Builder
	b.WriteString("## Your garment\n\n")
	fmt.Fprintf(&b, "- **Fabric:** %s\n", name(sel.Fabric))
	fmt.Fprintf(&b, "- **Style:** %s\n", name(sel.Style))
	fmt.Fprintf(&b, "- **Size:** %s\n", orUnset(string(sel.Size)))
	fmt.Fprintf(&b, "- **Measurements:** bust %s, hips %s (%s)\n",
		cm(sel.Measurements.Bust), cm(sel.Measurements.Hips), sel.Measurements.Gender)
	if sel.Fit != "" {
		fmt.Fprintf(&b, "- **Fit:** %s, %s\n", sel.Fit.Label(), strings.ToLower(sel.Fit.Description()))
	} else {
		b.WriteString("- **Fit:** not set\n")
	}
	return b.String()
}

// imageLine describes one rendered view. Inline images are summarized.
func imageLine(view, ref string) string {
	switch {
	case ref == "":
		return fmt.Sprintf("- **%s:** not available", view)
	case strings.HasPrefix(ref, "data:"):
		return fmt.Sprintf("- **%s:** inline image (%d KB)", view, len(ref)*3/4/1024)
	default:
		return fmt.Sprintf("- **%s:** %s", view, ref)
	}
}

// resultMarkdown lists the rendered views of a result.
func resultMarkdown(r design.Result) string {
	return strings.Join([]string{
		"## Your design is ready",
		"",
		imageLine("Front", r.Front),
		imageLine("Side", r.Side),
		imageLine("Back", r.Back),
	}, "\n")
}

// priceBreakdown renders the fabric cost, service fee and total lines.
func priceBreakdown(price, serviceFee float64, currency string) string {
	s := theme.Current().S()
	b := pricing.Split(price, serviceFee)

	return strings.Join([]string{
		s.Label.Render("Fabric & materials ") + pricing.Format(currency, b.FabricCost),
		s.Label.Render("Tailoring service  ") + pricing.Format(currency, b.ServiceFee),
		s.Label.Render("Total              ") + s.Price.Render(pricing.Format(currency, b.Total)),
	}, "\n")
}

// historyView renders the generation attempts of the session.
func historyView(h *journal.History, currency string) string {
	s := theme.Current().S()
	if h == nil || len(h.Entries) == 0 {
		return s.Muted.Render("No generations yet.")
	}

	lines := make([]string, 0, len(h.Entries))
	for i, e := range h.Entries {
		what := strings.TrimSpace(e.Request.FabricName + " " + e.Request.StyleName)
		if what == "" {
			what = "(no selection)"
		}
		line := fmt.Sprintf("%2d. %-10s %s", i+1, e.Outcome, what)
		if e.Result != nil {
			line += "  " + s.Price.Render(pricing.Format(currency, e.Result.Price))
		}
		if e.Duration > 0 {
			line += "  " + s.Muted.Render(e.Duration.Round(100*time.Millisecond).String())
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}
