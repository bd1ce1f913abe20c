package flexure

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexiusacademia/gorcd/internal/beamdata"
	"github.com/alexiusacademia/gorcd/internal/config"
	"github.com/alexiusacademia/gorcd/internal/nscp"
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
	logger := log.New(io.Discard)
	return New(testConfig(), logger)
}

func testDims() beamdata.Dimensions {
	return beamdata.Dimensions{Base: 300, Height: 500, Length: 6000}
}

func TestDesignSectionModerateMoment(t *testing.T) {
	e := testEngine()
	forces := beamdata.SectionForces{MaxMomentBottom: 250}

	rec := e.DesignSection(testDims(), forces, beamdata.SectionMid, beamdata.LocationBottom)
	require.NotNil(t, rec)

	// b=300, h=500, f'c=28, fy=415, Mu=250 kN·m lands around 1700 mm².
	assert.Equal(t, KindSingly, rec.Kind)
	assert.InDelta(t, 1700, rec.RequiredArea, 100)
	require.NotNil(t, rec.Bars)
	require.NotNil(t, rec.Capacity)
	assert.GreaterOrEqual(t, rec.Capacity.Ratio, 1.0)
	assert.True(t, rec.SteelYields)
	assert.Equal(t, StatusPass, rec.Status)
	require.NotNil(t, rec.Arrangement)
	assert.True(t, rec.Arrangement.OK)
}

func TestDesignSectionZeroMoment(t *testing.T) {
	e := testEngine()

	rec := e.DesignSection(testDims(), beamdata.SectionForces{}, beamdata.SectionMid, beamdata.LocationTop)
	require.NotNil(t, rec)

	// With no demand the code minimum governs.
	assert.Equal(t, rec.MinArea, rec.RequiredArea)
	d0 := EffectiveDepth(500, 40, 10, 16)
	assert.InDelta(t, nscp.RhoMin(28, 415)*300*d0, rec.RequiredArea, 1)
	assert.Equal(t, StatusPass, rec.Status)
	require.NotNil(t, rec.Capacity)
	assert.True(t, rec.Capacity.Passes)
	assert.Zero(t, rec.Capacity.Ratio)
}

func TestDesignSectionNegativeMomentUsesMagnitude(t *testing.T) {
	e := testEngine()
	pos := e.DesignSection(testDims(), beamdata.SectionForces{MaxMomentTop: 180}, beamdata.SectionLeft, beamdata.LocationTop)
	neg := e.DesignSection(testDims(), beamdata.SectionForces{MaxMomentTop: -180}, beamdata.SectionLeft, beamdata.LocationTop)

	assert.Equal(t, pos.RequiredArea, neg.RequiredArea)
	assert.Equal(t, pos.MuKNm, neg.MuKNm)
}

func TestDesignSectionInvalidDimensions(t *testing.T) {
	e := testEngine()
	dims := beamdata.Dimensions{Base: -300, Height: 500, Length: 6000}

	rec := e.DesignSection(dims, beamdata.SectionForces{MaxMomentBottom: 100}, beamdata.SectionLeft, beamdata.LocationBottom)
	assert.Equal(t, StatusError, rec.Status)
	assert.NotEmpty(t, rec.Error)
	assert.Nil(t, rec.Bars)
}

func TestDesignSectionDoublyReinforced(t *testing.T) {
	e := testEngine()
	forces := beamdata.SectionForces{MaxMomentBottom: 900}

	rec := e.DesignSection(testDims(), forces, beamdata.SectionMid, beamdata.LocationBottom)
	require.NotNil(t, rec)

	require.Equal(t, KindDoubly, rec.Kind)
	require.NotNil(t, rec.Doubly)
	assert.Greater(t, rec.Doubly.Mn2KNm, 0.0)
	assert.Greater(t, rec.Doubly.AscProvided, 0.0)
	assert.InDelta(t, rec.Doubly.As1+rec.Doubly.As2, rec.Doubly.AsTotal, 1e-6)
	assert.Equal(t, rec.Doubly.AsTotal, rec.RequiredArea)
	require.NotNil(t, rec.Capacity)
	assert.True(t, rec.Capacity.Passes)
	assert.InDelta(t, 1.0, rec.Capacity.Ratio, 0.05)
}

func TestDesignDoublySinglySufficient(t *testing.T) {
	e := testEngine()

	// Mu/φ below the singly-reinforced maximum: Mn2 goes non-positive.
	dbl := e.designDoubly(300e6, 300, 442)
	assert.True(t, dbl.SinglySufficient)
	assert.LessOrEqual(t, dbl.Mn2KNm, 0.0)
	assert.Equal(t, dbl.As1, dbl.AsTotal)
	assert.Zero(t, dbl.AscRequired)
}

func TestDesignDoublyCompressionSteelMinimum(t *testing.T) {
	e := testEngine()

	// Just past the singly maximum: a tiny Asc demand is raised to the
	// two-bar constructible minimum.
	as1 := nscp.RhoMax(28, 415) * 300 * 442
	a1 := as1 * 415 / (0.85 * 28 * 300)
	mn1 := as1 * 415 * (442 - a1/2)
	mu := (mn1 + 5e6) * 0.90

	dbl := e.designDoubly(mu, 300, 442)
	require.False(t, dbl.SinglySufficient)
	minComp := nscp.MinimumBarArea(e.cfg.MainBars, e.cfg.MinBars)
	assert.Equal(t, minComp, dbl.AscProvided)
	assert.Greater(t, dbl.AscProvided, dbl.AscRequired)
}

func TestDesignBeamProducesAllRecords(t *testing.T) {
	e := testEngine()
	beam := beamdata.Beam{
		Dimensions: testDims(),
		Forces: map[string]beamdata.SectionForces{
			beamdata.SectionLeft:  {MaxMomentTop: 220, MaxMomentBottom: 120},
			beamdata.SectionMid:   {MaxMomentBottom: 180},
			beamdata.SectionRight: {MaxMomentTop: 210, MaxMomentBottom: 110},
		},
	}

	bd := e.DesignBeam(beam)
	require.NotNil(t, bd)
	assert.Nil(t, bd.Ductile)
	for _, section := range beamdata.Sections {
		for _, location := range beamdata.Locations {
			rec := bd.Record(section, location)
			require.NotNil(t, rec, "%s/%s", section, location)
			assert.NotEqual(t, StatusError, rec.Status)
		}
	}
}

func TestComputeDuctileRequirements(t *testing.T) {
	sections := map[string]map[string]*Record{
		beamdata.SectionLeft: {
			beamdata.LocationTop:    {RequiredArea: 1200},
			beamdata.LocationBottom: {RequiredArea: 400},
		},
		beamdata.SectionMid: {
			beamdata.LocationTop:    {RequiredArea: 500},
			beamdata.LocationBottom: {RequiredArea: 2000},
		},
		beamdata.SectionRight: {
			beamdata.LocationTop:    {RequiredArea: 1100},
			beamdata.LocationBottom: {RequiredArea: 400},
		},
	}

	req := ComputeDuctileRequirements(sections)
	assert.Equal(t, 2000.0, req.MaxZoneSteel)
	assert.Equal(t, 1200.0, req.MaxTopSteel)
	// Bottom at the supports: max(50% of peak top, 25% of peak anywhere).
	assert.Equal(t, 600.0, req.BottomEnds)
	assert.Equal(t, 500.0, req.TopEnds)
	assert.Equal(t, 500.0, req.BottomMid)
	assert.Equal(t, 500.0, req.TopMid)
}

func TestDesignBeamSpecialFrameOverride(t *testing.T) {
	cfg := testConfig()
	cfg.Frame = config.FrameSpecial
	e := New(cfg, log.New(io.Discard))

	beam := beamdata.Beam{
		Dimensions: testDims(),
		Forces: map[string]beamdata.SectionForces{
			beamdata.SectionLeft:  {MaxMomentTop: 300, MaxMomentBottom: 20},
			beamdata.SectionMid:   {MaxMomentBottom: 60},
			beamdata.SectionRight: {MaxMomentTop: 300, MaxMomentBottom: 20},
		},
	}

	bd := e.DesignBeam(beam)
	require.NotNil(t, bd.Ductile)

	bottomLeft := bd.Record(beamdata.SectionLeft, beamdata.LocationBottom)
	require.NotNil(t, bottomLeft)
	assert.True(t, bottomLeft.DuctileControlling)
	assert.Equal(t, bd.Ductile.BottomEnds, bottomLeft.RequiredArea)
	require.NotNil(t, bottomLeft.Bars)
	assert.GreaterOrEqual(t, bottomLeft.Bars.TotalArea, bottomLeft.RequiredArea)

	// The governing top record is not raised by its own floor.
	topLeft := bd.Record(beamdata.SectionLeft, beamdata.LocationTop)
	require.NotNil(t, topLeft)
	assert.False(t, topLeft.DuctileControlling)
}

func TestVerifyCapacityKnownSection(t *testing.T) {
	// 4-#25 in a 300x500 section, d=437.5: φMn ≈ 279 kN·m.
	as := 4 * nscp.BarArea(25)
	check := VerifyCapacity(as, 0.90, 300, 437.5, 28, 415, 250e6)
	assert.InDelta(t, 279, check.PhiMnKNm, 2)
	assert.True(t, check.Passes)
	assert.InDelta(t, 1.12, check.Ratio, 0.02)
}

func TestSteelRatioClampedToBounds(t *testing.T) {
	// A tiny moment clamps up to ρ_min, a huge one down to ρ_max.
	low := SteelRatio(1e6, 0.90, 300, 440, 28, 415)
	assert.InDelta(t, nscp.RhoMin(28, 415), low, 1e-12)

	high := SteelRatio(5000e6, 0.90, 300, 440, 28, 415)
	assert.InDelta(t, nscp.RhoMax(28, 415), high, 1e-12)
}

func TestEffectiveDepthFloor(t *testing.T) {
	assert.Equal(t, 437.5, EffectiveDepth(500, 40, 10, 25))
	assert.Equal(t, 25.0, EffectiveDepth(60, 40, 10, 25))
}
