package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"flashing-designer/internal/designer/models"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "flashctl",
	Short: "Offline tools for flashing profile orders",
	Long: `Work with exported flashing profiles without the designer service.

Examples:
  flashctl cutlist order.json                      # Print the cutting list
  flashctl render order.json --format png --out out # Rasterise every card
  flashctl import "M0 0 L100 0 L100 40"             # Turn path data into a profile`,
	Version:       "0.1.0",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// loadProfiles reads a JSON array of profiles as written by the orders API.
func loadProfiles(path string) ([]models.Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	var profiles []models.Profile
	if err := json.Unmarshal(data, &profiles); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return profiles, nil
}
