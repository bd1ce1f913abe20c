package shear

import (
	"io"
	"math"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexiusacademia/gorcd/internal/beamdata"
	"github.com/alexiusacademia/gorcd/internal/config"
)

func testConfig() config.Config {
	return config.Config{
		ConcreteGrade:     "C28",
		Fc:                28,
		MainFy:            415,
		ShearFy:           275,
		Cover:             40,
		MaxAggregate:      25,
		Frame:             config.FrameOrdinary,
		PhiFlexure:        0.90,
		PhiShear:          0.75,
		PhiTorsion:        0.75,
		Lambda:            1,
		MainBars:          []float64{16, 20, 25, 28, 32},
		StirrupBars:       []float64{10, 12},
		MinStirrupSpacing: 75,
		MaxStirrupSpacing: 300,
		SpacingRoundOff:   25,
		MinBars:           2,
		ConsiderTorsion:   true,
	}
}

func testEngine() *Engine {
	return New(testConfig(), log.New(io.Discard))
}

func testDims() beamdata.Dimensions {
	return beamdata.Dimensions{Base: 300, Height: 500, Length: 6000}
}

func TestRequiredSteelShear(t *testing.T) {
	// Vu=150, Vc=80, φ=0.75: Vs = 150/0.75 - 80 = 120.
	assert.InDelta(t, 120, RequiredSteelShear(150, 80, 0.75), 1e-9)
	// Concrete alone carries the demand.
	assert.Zero(t, RequiredSteelShear(50, 80, 0.75))
}

func TestStirrupLegs(t *testing.T) {
	assert.Equal(t, 2, StirrupLegs(250))
	assert.Equal(t, 2, StirrupLegs(300))
	assert.Equal(t, 4, StirrupLegs(301))
	assert.Equal(t, 4, StirrupLegs(500))
	assert.Equal(t, 6, StirrupLegs(650))
}

func TestAxialFactor(t *testing.T) {
	ag := 300.0 * 500.0
	assert.Equal(t, 1.0, axialFactor(0, ag))
	assert.Greater(t, axialFactor(100e3, ag), 1.0)
	assert.Less(t, axialFactor(-100e3, ag), 1.0)
}

func TestConcreteCapacityBasic(t *testing.T) {
	e := testEngine()

	// 0.29·√28·300·440 with no axial load or moment.
	vc := e.concreteCapacity(300, 440, 0.015, 0, 0, 0, 300*500)
	assert.InDelta(t, 0.29*math.Sqrt(28)*300*440, vc, 1)
}

func TestConcreteCapacityDetailedGoverns(t *testing.T) {
	e := testEngine()

	basic := e.concreteCapacity(300, 440, 0.01, 150e3, 0, 0, 300*500)
	withMoment := e.concreteCapacity(300, 440, 0.01, 150e3, 200e6, 0, 300*500)
	assert.Less(t, withMoment, basic)
}

func TestDesignSectionStirrupsRequired(t *testing.T) {
	e := testEngine()
	forces := beamdata.SectionForces{MaxShear: 150, MaxMomentTop: 200}
	steel := MainSteel{BarDiameter: 20, AreaTop: 1200, AreaBottom: 1400}

	rec := e.DesignSection(testDims(), forces, beamdata.SectionLeft, steel)
	require.NotNil(t, rec)
	require.Empty(t, rec.Error)

	assert.True(t, rec.ReinforcementRequired)
	assert.Equal(t, 440.0, rec.EffectiveDepth)
	assert.Equal(t, 2, rec.StirrupLegs)
	assert.Equal(t, 10.0, rec.StirrupDia)
	assert.Greater(t, rec.VsKN, 0.0)

	// Spacing is clamped to the code maximum d/2=220, then rounded down
	// to the 25 mm increment.
	assert.Equal(t, 220.0, rec.Limits.Max)
	assert.Equal(t, 200.0, rec.Spacing)
	assert.GreaterOrEqual(t, rec.SpacingRequired, rec.Spacing)
}

func TestDesignSectionMinimumReinforcementOnly(t *testing.T) {
	e := testEngine()
	forces := beamdata.SectionForces{MaxShear: 20}

	rec := e.DesignSection(testDims(), forces, beamdata.SectionMid, MainSteel{BarDiameter: 20})
	require.Empty(t, rec.Error)

	assert.False(t, rec.ReinforcementRequired)
	assert.Zero(t, rec.VsKN)
	assert.Equal(t, 220.0, rec.Spacing)
	assert.Contains(t, rec.Note, "minimum shear reinforcement")
}

func TestDesignSectionMinSpacingGovernsNoted(t *testing.T) {
	// A large configured minimum spacing can override the spacing
	// tightened for Av/s >= 0.35b/fyv; the deficit is surfaced on the
	// record.
	cfg := testConfig()
	cfg.MinStirrupSpacing = 450
	cfg.MaxStirrupSpacing = 600
	e := New(cfg, log.New(io.Discard))

	dims := beamdata.Dimensions{Base: 300, Height: 1300, Length: 8000}
	forces := beamdata.SectionForces{MaxShear: 500}

	rec := e.DesignSection(dims, forces, beamdata.SectionMid, MainSteel{BarDiameter: 20})
	require.Empty(t, rec.Error)
	require.True(t, rec.ReinforcementRequired)

	assert.Equal(t, 450.0, rec.Spacing)
	assert.Less(t, rec.StirrupArea/rec.Spacing, 0.35*300/cfg.ShearFy)
	assert.Contains(t, rec.Note, "minimum stirrup spacing governs")
}

func TestDesignSectionDefaultsMainBar(t *testing.T) {
	e := testEngine()

	rec := e.DesignSection(testDims(), beamdata.SectionForces{MaxShear: 100}, beamdata.SectionRight, MainSteel{})
	require.Empty(t, rec.Error)
	assert.Equal(t, DefaultMainBarDia, rec.MainBarDia)
	// No flexural steel on record: the nominal 1.5% estimate stands in.
	assert.InDelta(t, 0.015, rec.Rho, 1e-9)
}

func TestDesignSectionSpecialFrameTightensSpacing(t *testing.T) {
	cfg := testConfig()
	cfg.Frame = config.FrameSpecial
	e := New(cfg, log.New(io.Discard))
	forces := beamdata.SectionForces{MaxShear: 150, MaxMomentTop: 200}

	rec := e.DesignSection(testDims(), forces, beamdata.SectionLeft, MainSteel{BarDiameter: 20})
	require.Empty(t, rec.Error)

	// d/4 = 110 governs over both the ordinary limit and 150.
	assert.Equal(t, 110.0, rec.Limits.Max)
	assert.LessOrEqual(t, rec.Spacing, 110.0)
	assert.GreaterOrEqual(t, rec.Spacing, rec.Limits.Min)
}

func TestDesignSectionAxialCompressionRaisesCapacity(t *testing.T) {
	e := testEngine()
	base := e.DesignSection(testDims(), beamdata.SectionForces{MaxShear: 200}, beamdata.SectionLeft, MainSteel{BarDiameter: 20})
	comp := e.DesignSection(testDims(), beamdata.SectionForces{MaxShear: 200, MaxAxial: 200}, beamdata.SectionLeft, MainSteel{BarDiameter: 20})

	assert.Greater(t, comp.VcKN, base.VcKN)
	assert.Less(t, comp.VsKN, base.VsKN)
}

func TestDesignSectionInvalidDimensions(t *testing.T) {
	e := testEngine()
	dims := beamdata.Dimensions{Base: 0, Height: 500, Length: 6000}

	rec := e.DesignSection(dims, beamdata.SectionForces{MaxShear: 100}, beamdata.SectionLeft, MainSteel{})
	assert.NotEmpty(t, rec.Error)
	assert.False(t, rec.ReinforcementRequired)
}

func TestDesignBeamCoversAllSections(t *testing.T) {
	e := testEngine()
	beam := beamdata.Beam{
		Dimensions: testDims(),
		Forces: map[string]beamdata.SectionForces{
			beamdata.SectionLeft:  {MaxShear: 150, MaxMomentTop: 220},
			beamdata.SectionMid:   {MaxShear: 60},
			beamdata.SectionRight: {MaxShear: 140, MaxMomentTop: 210},
		},
	}
	steel := map[string]MainSteel{
		beamdata.SectionLeft:  {BarDiameter: 25, AreaTop: 1963, AreaBottom: 981},
		beamdata.SectionMid:   {BarDiameter: 20, AreaTop: 628, AreaBottom: 1256},
		beamdata.SectionRight: {BarDiameter: 25, AreaTop: 1963, AreaBottom: 981},
	}

	bd := e.DesignBeam(beam, steel)
	require.NotNil(t, bd)
	for _, section := range beamdata.Sections {
		rec := bd.Sections[section]
		require.NotNil(t, rec, section)
		assert.Empty(t, rec.Error)
		assert.GreaterOrEqual(t, rec.Spacing, 0.0)
	}
}

func TestRoundSpacingFloors(t *testing.T) {
	e := testEngine()
	assert.Equal(t, 225.0, e.roundSpacing(235.1))
	assert.Equal(t, 225.0, e.roundSpacing(249.9))
	assert.Equal(t, 250.0, e.roundSpacing(250))
}
