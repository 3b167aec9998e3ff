package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"flashing-designer/internal/designer/cutlist"
	"flashing-designer/internal/designer/render"

	"github.com/spf13/cobra"
)

var (
	renderFormat  string
	renderOut     string
	renderDensity float64
)

var renderCmd = &cobra.Command{
	Use:   "render <profiles.json>",
	Short: "Render fabrication cards to SVG sheets or PNG cards",
	Long: `Lay the order out on landscape A4 sheets. The svg format writes one file
per page, the png format one file per profile card.

Examples:
  flashctl render order.json --out sheets
  flashctl render order.json --format png --density 3 --out cards`,
	Args: cobra.ExactArgs(1),
	RunE: runRender,
}

func init() {
	rootCmd.AddCommand(renderCmd)

	renderCmd.Flags().StringVarP(&renderFormat, "format", "f", "svg",
		"output format (svg or png)")
	renderCmd.Flags().StringVarP(&renderOut, "out", "o", ".",
		"output directory")
	renderCmd.Flags().Float64Var(&renderDensity, "density", 2,
		"pixels per layout unit for png output")
}

func runRender(cmd *cobra.Command, args []string) error {
	profiles, err := loadProfiles(args[0])
	if err != nil {
		return err
	}
	if err := os.MkdirAll(renderOut, 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", renderOut, err)
	}

	spec := cutlist.DefaultPageSpec()
	pages := cutlist.Paginate(cutlist.Build(profiles), spec, cutlist.DefaultLayoutOptions())

	var written []string
	switch renderFormat {
	case "svg":
		written, err = writeSheets(pages, spec)
	case "png":
		written, err = writeCards(pages)
	default:
		return fmt.Errorf("unknown format %q", renderFormat)
	}
	if err != nil {
		return err
	}

	for _, name := range written {
		fmt.Fprintln(cmd.OutOrStdout(), name)
	}
	return nil
}

func writeSheets(pages []cutlist.Page, spec cutlist.PageSpec) ([]string, error) {
	var written []string
	for _, page := range pages {
		name := filepath.Join(renderOut, fmt.Sprintf("sheet-%02d.svg", page.Number))
		if err := writeFile(name, func(f *os.File) error {
			return render.SVGSheet(f, page, spec)
		}); err != nil {
			return written, err
		}
		written = append(written, name)
	}
	return written, nil
}

func writeCards(pages []cutlist.Page) ([]string, error) {
	var written []string
	for _, page := range pages {
		for _, card := range page.Cards {
			name := filepath.Join(renderOut, fmt.Sprintf("card-%03d.png", card.Entry.Index))
			if err := writeFile(name, func(f *os.File) error {
				return render.PNGCard(f, card, renderDensity)
			}); err != nil {
				return written, err
			}
			written = append(written, name)
		}
	}
	return written, nil
}

func writeFile(name string, fn func(f *os.File) error) error {
	f, err := os.Create(name)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", name, err)
	}
	if err := fn(f); err != nil {
		f.Close()
		return fmt.Errorf("failed to render %s: %w", name, err)
	}
	return f.Close()
}
