package cmd

import (
	"encoding/json"
	"errors"
	"fmt"

	"flashing-designer/internal/designer/geometry"
	"flashing-designer/internal/designer/models"
	"flashing-designer/internal/designer/parser"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"
)

var (
	importClipboard bool
	importGrid      float64
	importMaterial  string
)

var importCmd = &cobra.Command{
	Use:   "import [path-data]",
	Short: "Convert SVG path data or a whole SVG document into profiles",
	Long: `Read path data (or an SVG document) from the argument or the clipboard
and print one profile per shape as JSON, ready to append to an order file.

Examples:
  flashctl import "M0 0 L100 0 L100 40"
  flashctl import --clipboard --grid 5 --material Colorbond`,
	Args: cobra.MaximumNArgs(1),
	RunE: runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)

	importCmd.Flags().BoolVarP(&importClipboard, "clipboard", "c", false,
		"read the input from the clipboard")
	importCmd.Flags().Float64Var(&importGrid, "grid", 0,
		"snap points to this grid size (0 keeps them as drawn)")
	importCmd.Flags().StringVarP(&importMaterial, "material", "m", "",
		"material to set on every profile")
}

func runImport(cmd *cobra.Command, args []string) error {
	var text string
	switch {
	case importClipboard:
		s, err := clipboard.ReadAll()
		if err != nil {
			return fmt.Errorf("failed to read clipboard: %w", err)
		}
		text = s
	case len(args) == 1:
		text = args[0]
	default:
		return errors.New("pass path data or use --clipboard")
	}

	profiles, err := importProfiles(text, importGrid, importMaterial)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(profiles)
}

// importProfiles turns every shape with at least two points into a profile.
func importProfiles(text string, grid float64, material string) ([]models.Profile, error) {
	shapes, err := parser.Import(text)
	if err != nil {
		return nil, err
	}

	var out []models.Profile
	for _, s := range shapes {
		pts := s.Points
		if grid > 0 {
			pts = make([]geometry.Point, len(s.Points))
			for i, p := range s.Points {
				pts[i] = geometry.SnapPoint(p, grid)
			}
		}
		p := models.Profile{Points: pts, Material: material, Quantity: 1}
		if !p.Complete() {
			continue
		}
		out = append(out, p)
	}
	if len(out) == 0 {
		return nil, parser.ErrNoShapes
	}
	return out, nil
}
