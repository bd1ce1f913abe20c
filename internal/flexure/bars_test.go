package flexure

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEfficiencyScore(t *testing.T) {
	assert.Equal(t, 100.0, EfficiencyScore(0, 4))
	assert.Equal(t, 94.0, EfficiencyScore(10, 3))
	// The score never leaves 0..100.
	assert.Equal(t, 0.0, EfficiencyScore(500, 12))
	assert.Equal(t, 100.0, EfficiencyScore(-10, 4))
}

func TestCombinationsInvariants(t *testing.T) {
	e := testEngine()
	combos := e.Combinations(1500)
	require.NotEmpty(t, combos)

	for _, c := range combos {
		assert.GreaterOrEqual(t, c.Count, e.cfg.MinBars, "%s", c.Describe())
		assert.LessOrEqual(t, c.Count, maxBarsPerGroup, "%s", c.Describe())
		assert.GreaterOrEqual(t, c.TotalArea, 1500.0, "%s", c.Describe())
		assert.LessOrEqual(t, c.ExcessPercent, maxExcessPercent, "%s", c.Describe())
	}
	for i := 1; i < len(combos); i++ {
		assert.GreaterOrEqual(t, combos[i-1].Score, combos[i].Score)
	}
}

func TestCombinationsDeterministic(t *testing.T) {
	e := testEngine()
	a := e.Combinations(1850)
	b := e.Combinations(1850)
	assert.Equal(t, a, b)
}

func TestCombinationsZeroRequirement(t *testing.T) {
	e := testEngine()
	assert.Nil(t, e.Combinations(0))
	assert.Nil(t, e.Combinations(-100))
}

func TestSelectBarsPicksSmallestExcess(t *testing.T) {
	e := testEngine()

	best, d, ok := e.selectBars(250e6, 300, 500, 1706)
	require.True(t, ok)
	require.NotNil(t, best)
	assert.Greater(t, d, 400.0)
	assert.GreaterOrEqual(t, best.TotalArea, 1706.0)
	assert.Equal(t, 16.0, best.Diameter)
}

func TestSelectBarsFailsOnExcessiveMoment(t *testing.T) {
	e := testEngine()

	// No singly-reinforced candidate can carry 900 kN·m in a 300x500.
	_, _, ok := e.selectBars(900e6, 300, 500, 3315)
	assert.False(t, ok)
}

func TestProvisionalBarsUsesSmallestDiameter(t *testing.T) {
	e := testEngine()
	c := e.provisionalBars(3000)
	assert.Equal(t, 16.0, c.Diameter)
	assert.GreaterOrEqual(t, c.TotalArea, 3000.0)
}

func TestBarCombinationDescribe(t *testing.T) {
	c := BarCombination{Diameter: 25, Count: 4}
	assert.Equal(t, "4-#25", c.Describe())
}

func TestArrangementDescribe(t *testing.T) {
	single := Arrangement{Layers: 1, BarsPerLayer: []int{4}, Diameter: 25}
	assert.Equal(t, "4-#25", single.Describe())

	layered := Arrangement{Layers: 2, BarsPerLayer: []int{3, 2}, Diameter: 25}
	assert.Equal(t, "L1:3-#25/L2:2-#25", layered.Describe())
}
