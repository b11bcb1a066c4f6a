package main

import (
	"fmt"

	"github.com/mark3labs/tailor/internal/catalog"
	"github.com/mark3labs/tailor/internal/design"
	"github.com/mark3labs/tailor/internal/tui/theme"
	"github.com/spf13/cobra"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "List fabrics, styles, sizes and fits",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadSettings()
		if err != nil {
			return err
		}
		cat, err := catalog.Load(cfg.CatalogFile)
		if err != nil {
			return fmt.Errorf("failed to load catalog: %w", err)
		}

		s := theme.Current().S()
		out := cmd.OutOrStdout()

		fmt.Fprintln(out, s.Label.Render("Fabrics"))
		for _, f := range cat.Fabrics() {
			fmt.Fprintf(out, "  %-12s %s\n", f.ID, f.DisplayName)
		}
		fmt.Fprintln(out, s.Label.Render("Styles"))
		for _, st := range cat.Styles() {
			fmt.Fprintf(out, "  %-12s %s\n", st.ID, st.DisplayName)
		}
		fmt.Fprintln(out, s.Label.Render("Sizes"))
		for _, sz := range design.Sizes {
			fmt.Fprintf(out, "  %s\n", sz)
		}
		fmt.Fprintln(out, s.Label.Render("Fits"))
		for _, f := range design.Fits {
			fmt.Fprintf(out, "  %-12s %s\n", f.Label(), s.Muted.Render(f.Description()))
		}
		return nil
	},
}
