package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"flashing-designer/internal/designer/cutlist"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var (
	accentFg  = lipgloss.Color("#7C3AED")
	baseDimFg = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#6B7280"}
	borderCol = lipgloss.Color("#243141")

	titleStyle = lipgloss.NewStyle().Foreground(accentFg).Bold(true)
	headStyle  = lipgloss.NewStyle().Bold(true).Underline(true)
	dimStyle   = lipgloss.NewStyle().Foreground(baseDimFg)
	boxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(borderCol).Padding(0, 1)
)

var cutlistCmd = &cobra.Command{
	Use:   "cutlist <profiles.json>",
	Short: "Print the cutting list of an order",
	Long: `Group the profiles by material, sort each group by girth and print the
quantities, fold counts and totals the workshop cuts from.

Examples:
  flashctl cutlist order.json`,
	Args: cobra.ExactArgs(1),
	RunE: runCutlist,
}

func init() {
	rootCmd.AddCommand(cutlistCmd)
}

func runCutlist(cmd *cobra.Command, args []string) error {
	profiles, err := loadProfiles(args[0])
	if err != nil {
		return err
	}
	if verbose {
		fmt.Fprintf(cmd.ErrOrStderr(), "Loaded %d profiles from %s\n", len(profiles), args[0])
	}
	fmt.Fprintln(cmd.OutOrStdout(), formatCutlist(cutlist.Build(profiles)))
	return nil
}

var cutlistColumns = []struct {
	title string
	width int
	align lipgloss.Position
}{
	{"#", 4, lipgloss.Right},
	{"Material", 18, lipgloss.Left},
	{"Thick", 7, lipgloss.Right},
	{"Girth", 7, lipgloss.Right},
	{"Folds", 6, lipgloss.Right},
	{"Qty", 5, lipgloss.Right},
	{"Length", 8, lipgloss.Right},
	{"m", 8, lipgloss.Right},
	{"m²", 8, lipgloss.Right},
}

func row(cells []string, style lipgloss.Style) string {
	parts := make([]string, len(cells))
	for i, cell := range cells {
		col := cutlistColumns[i]
		parts[i] = style.Copy().Width(col.width).Align(col.align).Render(cell)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

// formatCutlist renders the list as a table followed by the per-material and
// order totals.
func formatCutlist(list cutlist.List) string {
	if len(list.Entries) == 0 {
		return dimStyle.Render("no profiles")
	}

	head := make([]string, len(cutlistColumns))
	for i, col := range cutlistColumns {
		head[i] = col.title
	}

	lines := []string{titleStyle.Render("Cutting list"), row(head, headStyle)}
	plain := lipgloss.NewStyle()
	for _, e := range list.Entries {
		material := e.Profile.Material
		if material == "" {
			material = "-"
		}
		lines = append(lines, row([]string{
			strconv.Itoa(e.Index),
			material,
			num(e.Profile.Thickness, 2),
			strconv.Itoa(e.Girth),
			strconv.Itoa(e.Folds),
			strconv.Itoa(e.Profile.Quantity),
			num(e.Profile.LengthMm, 0),
			num(e.LinearMetres, 2),
			num(e.AreaM2, 3),
		}, plain))
	}

	var summary []string
	for _, m := range list.Materials {
		summary = append(summary, fmt.Sprintf("%-18s %3d pcs  %8.2f m  %8.3f m²", m.Material, m.Pieces, m.LinearMetres, m.AreaM2))
	}
	t := list.Totals
	summary = append(summary, titleStyle.Render(fmt.Sprintf("%d profiles, %d pieces, %d folds, %.2f m, %.3f m²",
		t.Profiles, t.Pieces, t.Folds, t.LinearMetres, t.AreaM2)))

	return lipgloss.JoinVertical(lipgloss.Left,
		boxStyle.Render(strings.Join(lines, "\n")),
		boxStyle.Render(strings.Join(summary, "\n")),
	)
}

func num(v float64, prec int) string {
	return strconv.FormatFloat(v, 'f', prec, 64)
}
