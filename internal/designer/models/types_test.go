package models

import (
	"testing"

	"flashing-designer/internal/designer/geometry"

	"github.com/stretchr/testify/assert"
)

func TestComplete(t *testing.T) {
	assert.False(t, Profile{}.Complete())
	assert.False(t, Profile{Points: []geometry.Point{{X: 1, Y: 1}}}.Complete())
	assert.True(t, Profile{Points: []geometry.Point{{X: 0, Y: 0}, {X: 10, Y: 0}}}.Complete())
}

func TestCloneIsDeep(t *testing.T) {
	p := Profile{
		Points:       []geometry.Point{{X: 0, Y: 0}, {X: 10, Y: 0}},
		StartFold:    &EndFold{Type: FoldHook, Length: 10},
		LabelOffsets: map[string]geometry.Point{DimensionKey(1): {X: 1, Y: 2}},
	}
	c := p.Clone()
	c.Points[0].X = 5
	c.StartFold.Length = 20
	c.LabelOffsets[DimensionKey(1)] = geometry.Point{}

	assert.Zero(t, p.Points[0].X)
	assert.Equal(t, 10.0, p.StartFold.Length)
	assert.Equal(t, geometry.Point{X: 1, Y: 2}, p.LabelOffsets[DimensionKey(1)])
	assert.True(t, c.Complete())
}
