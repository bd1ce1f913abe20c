package flexure

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMinClearSpacing(t *testing.T) {
	e := testEngine()

	// 4/3 of a 25 mm aggregate governs over the 25 mm floor and small bars.
	assert.InDelta(t, 100.0/3, e.MinClearSpacing(16), 1e-9)
	// A 40 mm bar governs over both.
	assert.Equal(t, 40.0, e.MinClearSpacing(40))
}

func TestAvailableWidth(t *testing.T) {
	e := testEngine()
	// 300 - 2x40 cover - 2x10 stirrup.
	assert.Equal(t, 200.0, e.AvailableWidth(300))
}

func TestResolveArrangementSingleLayer(t *testing.T) {
	e := testEngine()
	arr := e.ResolveArrangement(300, 25, 4)

	require.True(t, arr.OK)
	assert.Equal(t, 1, arr.Layers)
	assert.Equal(t, []int{4}, arr.BarsPerLayer)
	assert.GreaterOrEqual(t, arr.ClearSpacing, arr.MinSpacing-1e-9)
}

func TestResolveArrangementEscalatesLayers(t *testing.T) {
	e := testEngine()

	// Five 25 mm bars do not fit one layer of a 300 mm beam; the split is
	// 3 over 2 with the extra bar in the lower layer.
	arr := e.ResolveArrangement(300, 25, 5)
	require.True(t, arr.OK)
	assert.Equal(t, 2, arr.Layers)
	assert.Equal(t, []int{3, 2}, arr.BarsPerLayer)
}

func TestResolveArrangementSingleBar(t *testing.T) {
	e := testEngine()

	// One bar has no spacing requirement; it fits as long as the bar
	// itself fits the available width.
	arr := e.ResolveArrangement(300, 25, 1)
	require.True(t, arr.OK)
	assert.Equal(t, 1, arr.Layers)

	narrow := e.ResolveArrangement(120, 25, 1)
	assert.False(t, narrow.OK)
	assert.NotEmpty(t, narrow.Hints)
}

func TestResolveArrangementFailsWithHints(t *testing.T) {
	e := testEngine()

	arr := e.ResolveArrangement(300, 25, 20)
	assert.False(t, arr.OK)
	assert.Equal(t, MaxLayers, arr.Layers)
	assert.Contains(t, arr.Hints, HintIncreaseWidth)
	assert.Contains(t, arr.Hints, HintReduceBarDia)
	assert.Contains(t, arr.Hints, HintDoublyReinforced)
}

func TestDistributeBarsRemainderToLowerLayers(t *testing.T) {
	assert.Equal(t, []int{3, 3, 2}, distributeBars(8, 3))
	assert.Equal(t, []int{2, 2, 2, 1}, distributeBars(7, 4))
	assert.Equal(t, []int{5}, distributeBars(5, 1))
}
