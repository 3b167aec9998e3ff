package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"flashing-designer/internal/designer/cutlist"
	"flashing-designer/internal/designer/geometry"
	"flashing-designer/internal/designer/models"
	"flashing-designer/internal/designer/parser"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeOrder(t *testing.T, profiles []models.Profile) string {
	t.Helper()
	data, err := json.Marshal(profiles)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "order.json")
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func sampleProfiles() []models.Profile {
	return []models.Profile{
		{ID: "a", Material: "Zinc", Quantity: 2, LengthMm: 2000,
			Points: []geometry.Point{{X: 0, Y: 0}, {X: 100, Y: 0}, {X: 100, Y: 50}}},
		{ID: "b", Material: "Colorbond", Quantity: 1, LengthMm: 1000,
			Points: []geometry.Point{{X: 0, Y: 0}, {X: 80, Y: 0}}},
	}
}

func TestImportProfiles(t *testing.T) {
	profiles, err := importProfiles("M0 0 L101 0 L101 49", 5, "Zinc")
	require.NoError(t, err)
	require.Len(t, profiles, 1)
	assert.Equal(t, []geometry.Point{{X: 0, Y: 0}, {X: 100, Y: 0}, {X: 100, Y: 50}}, profiles[0].Points)
	assert.Equal(t, "Zinc", profiles[0].Material)
	assert.Equal(t, 1, profiles[0].Quantity)

	_, err = importProfiles("M0 0", 0, "")
	assert.ErrorIs(t, err, parser.ErrNoShapes)
}

func TestFormatCutlist(t *testing.T) {
	out := formatCutlist(cutlist.Build(sampleProfiles()))
	assert.Contains(t, out, "Cutting list")
	assert.Contains(t, out, "Zinc")
	assert.Contains(t, out, "Colorbond")
	assert.Contains(t, out, "2 profiles, 3 pieces")

	assert.Contains(t, formatCutlist(cutlist.List{}), "no profiles")
}

func TestLoadProfiles(t *testing.T) {
	path := writeOrder(t, sampleProfiles())
	profiles, err := loadProfiles(path)
	require.NoError(t, err)
	assert.Len(t, profiles, 2)

	_, err = loadProfiles(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestRenderCommand(t *testing.T) {
	path := writeOrder(t, sampleProfiles())
	out := t.TempDir()

	var stdout bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetArgs([]string{"render", path, "--format", "svg", "--out", out})
	require.NoError(t, rootCmd.Execute())

	data, err := os.ReadFile(filepath.Join(out, "sheet-01.svg"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "<svg")
	assert.Contains(t, stdout.String(), "sheet-01.svg")

	rootCmd.SetArgs([]string{"render", path, "--format", "pdf", "--out", out})
	assert.Error(t, rootCmd.Execute())
}
