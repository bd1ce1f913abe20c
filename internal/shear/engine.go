// Package shear implements the shear reinforcement engine: concrete
// shear capacity with axial and moment interaction, required stirrups
// and code-limited spacing. It runs after the flexural engine, which
// supplies the chosen main bar diameters per section.
package shear

import (
	"fmt"
	"math"

	"github.com/charmbracelet/log"

	"github.com/alexiusacademia/gorcd/internal/beamdata"
	"github.com/alexiusacademia/gorcd/internal/config"
	"github.com/alexiusacademia/gorcd/internal/nscp"
)

// DefaultMainBarDia is assumed when a section has no flexural bar
// selection to read from.
const DefaultMainBarDia = 20.0

// MainSteel carries the flexural selection a shear design reads: the
// governing main bar diameter and the provided steel areas per face.
// A zero diameter means no selection was available.
type MainSteel struct {
	BarDiameter float64
	AreaTop     float64
	AreaBottom  float64
}

// SpacingLimits are the resolved stirrup spacing bounds (mm).
type SpacingLimits struct {
	Min float64 `json:"minimum"`
	Max float64 `json:"maximum"`
}

// Record is the shear design result for one beam section.
type Record struct {
	Section string `json:"section"`

	Width          float64 `json:"width"`
	Height         float64 `json:"height"`
	EffectiveDepth float64 `json:"effective_depth"`
	MainBarDia     float64 `json:"main_bar_diameter"`

	VuKN  float64 `json:"factored_shear_kn"`
	MuKNm float64 `json:"factored_moment_knm"`
	NuKN  float64 `json:"axial_force_kn"`
	Rho   float64 `json:"rho"`

	VcKN float64 `json:"concrete_capacity_kn"`
	VsKN float64 `json:"required_steel_shear_kn"`

	ReinforcementRequired bool          `json:"shear_reinforcement_required"`
	StirrupLegs           int           `json:"stirrup_legs"`
	StirrupDia            float64       `json:"stirrup_diameter"`
	StirrupArea           float64       `json:"stirrup_area,omitempty"`
	SpacingRequired       float64       `json:"spacing_required,omitempty"`
	Spacing               float64       `json:"spacing"`
	Limits                SpacingLimits `json:"spacing_limits"`

	Note  string `json:"note,omitempty"`
	Error string `json:"error,omitempty"`
}

// Describe formats the stirrup call-out, e.g. "#10 2-leg @ 150mm".
func (r *Record) Describe() string {
	if r == nil || r.Error != "" {
		return "-"
	}
	return describeStirrups(r.StirrupDia, r.StirrupLegs, r.Spacing)
}

// BeamDesign is the shear output for a whole beam.
type BeamDesign struct {
	Dimensions beamdata.Dimensions `json:"dimensions"`
	Sections   map[string]*Record  `json:"sections"`
}

// Engine designs shear reinforcement. Stateless apart from the immutable
// configuration; safe for concurrent use.
type Engine struct {
	cfg config.Config
	log *log.Logger
}

// New creates a shear engine for the given configuration.
func New(cfg config.Config, logger *log.Logger) *Engine {
	if logger == nil {
		logger = log.Default()
	}
	return &Engine{cfg: cfg, log: logger}
}

// DesignBeam designs stirrups for all three sections of a beam. steel
// maps section name to the flexural selection; missing entries fall back
// to the default main bar diameter.
func (e *Engine) DesignBeam(beam beamdata.Beam, steel map[string]MainSteel) *BeamDesign {
	bd := &BeamDesign{
		Dimensions: beam.Dimensions,
		Sections:   make(map[string]*Record, len(beamdata.Sections)),
	}
	for _, section := range beamdata.Sections {
		bd.Sections[section] = e.DesignSection(beam.Dimensions, beam.ForcesAt(section), section, steel[section])
	}
	return bd
}

// DesignSection designs the stirrups at one beam section. Internal
// computation is in N and mm; the record reports kN.
func (e *Engine) DesignSection(dims beamdata.Dimensions, forces beamdata.SectionForces, section string, steel MainSteel) *Record {
	rec := &Record{Section: section}

	if !dims.Valid() {
		inputErr := &beamdata.InputError{
			Section: section,
			Field:   "dimensions",
			Reason:  "base, height and length must be positive",
		}
		rec.Error = inputErr.Error()
		e.log.Error("shear design skipped", "section", section, "err", inputErr)
		return rec
	}

	b, h := dims.Base, dims.Height
	vu := forces.MaxShear * 1e3
	mu := math.Max(math.Abs(forces.MaxMomentTop), math.Abs(forces.MaxMomentBottom)) * 1e6
	nu := forces.MaxAxial * 1e3

	mainBar := steel.BarDiameter
	if mainBar <= 0 {
		mainBar = DefaultMainBarDia
	}
	stirrup := e.cfg.StirrupDia()
	d := effectiveDepth(h, e.cfg.Cover, stirrup, mainBar)
	ag := b * h

	// Longitudinal ratio from the provided flexural steel; a nominal
	// 1.5% estimate stands in when no bars were selected.
	asAvg := (steel.AreaTop + steel.AreaBottom) / 2
	if asAvg <= 0 {
		asAvg = 0.015 * b * d
	}
	rho := asAvg / (b * d)

	vc := e.concreteCapacity(b, d, rho, vu, mu, nu, ag)
	vs := RequiredSteelShear(vu, vc, e.cfg.PhiShear)
	legs := StirrupLegs(b)

	rec.Width = b
	rec.Height = h
	rec.EffectiveDepth = d
	rec.MainBarDia = mainBar
	rec.VuKN = vu / 1e3
	rec.MuKNm = mu / 1e6
	rec.NuKN = nu / 1e3
	rec.Rho = rho
	rec.VcKN = vc / 1e3
	rec.VsKN = vs / 1e3
	rec.StirrupLegs = legs
	rec.StirrupDia = stirrup
	rec.ReinforcementRequired = vs > 0

	if vs <= 0 {
		_, maxS := e.spacingLimits(d, 0, b)
		rec.Spacing = maxS
		rec.Limits = SpacingLimits{Min: e.cfg.MinStirrupSpacing, Max: maxS}
		rec.Note = "minimum shear reinforcement provided"
		return rec
	}

	av := float64(legs) * nscp.BarArea(stirrup)
	sRequired := av * e.cfg.ShearFy * d / vs

	minS, maxS := e.spacingLimits(d, vs, b)
	s := math.Max(minS, math.Min(sRequired, maxS))

	// Tighten until Av/s meets the minimum shear reinforcement ratio.
	if av/s < 0.35*b/e.cfg.ShearFy {
		s = math.Min(s, av*e.cfg.ShearFy/(0.35*b))
	}

	// Round down to the practical increment, never below the minimum.
	s = e.roundSpacing(s)
	if s < minS {
		s = minS
		if av/s < 0.35*b/e.cfg.ShearFy {
			rec.Note = "minimum stirrup spacing governs; Av/s falls below 0.35b/fyv"
		}
	}

	rec.StirrupArea = av
	rec.SpacingRequired = sRequired
	rec.Spacing = s
	rec.Limits = SpacingLimits{Min: minS, Max: maxS}
	return rec
}

// concreteCapacity returns Vc in N. The basic form 0.29λ√f'c·b·d is
// scaled for axial load; when the section carries moment, the detailed
// shear-moment interaction form is computed as well and the lesser
// governs.
func (e *Engine) concreteCapacity(b, d, rho, vu, mu, nu, ag float64) float64 {
	fc := e.cfg.Fc
	lambda := e.cfg.Lambda

	basic := 0.29 * lambda * math.Sqrt(fc) * b * d
	basic *= axialFactor(nu, ag)

	if mu != 0 {
		detailed := (0.16*lambda*math.Sqrt(fc) + 17*rho*vu*d/mu) * b * d
		detailed *= axialFactor(nu, ag)
		return math.Min(basic, detailed)
	}
	return basic
}

// axialFactor scales Vc for axial load: compression raises capacity,
// tension reduces it.
func axialFactor(nu, ag float64) float64 {
	if nu == 0 || ag <= 0 {
		return 1
	}
	if nu > 0 {
		return 1 + nu/(14*ag)
	}
	return 1 + nu/(3.5*ag)
}

// spacingLimits resolves the stirrup spacing bounds: the code maximum
// depends on the steel shear demand and tightens for special frames,
// and the configured bounds apply on top.
func (e *Engine) spacingLimits(d, vs, b float64) (minS, maxS float64) {
	var codeMax float64
	if vs <= 0.33*math.Sqrt(e.cfg.Fc)*b*d {
		codeMax = math.Min(d/2, 600)
	} else {
		codeMax = math.Min(d/4, 300)
	}
	if e.cfg.Frame == config.FrameSpecial {
		codeMax = math.Min(codeMax, math.Min(d/4, 150))
	}
	return e.cfg.MinStirrupSpacing, math.Min(codeMax, e.cfg.MaxStirrupSpacing)
}

// RequiredSteelShear returns Vs = max(0, Vu/φ − Vc). Inputs and result
// share whatever force unit the caller uses.
func RequiredSteelShear(vu, vc, phi float64) float64 {
	return math.Max(0, vu/phi-vc)
}

// StirrupLegs selects the stirrup leg count from the beam width.
func StirrupLegs(b float64) int {
	switch {
	case b <= 300:
		return 2
	case b <= 500:
		return 4
	default:
		return 6
	}
}

// roundSpacing rounds a spacing down to the configured increment.
func (e *Engine) roundSpacing(s float64) float64 {
	round := e.cfg.SpacingRoundOff
	if round <= 0 {
		return s
	}
	return math.Floor(s/round) * round
}

func effectiveDepth(h, cover, stirrupDia, mainBarDia float64) float64 {
	d := h - cover - stirrupDia - mainBarDia/2
	return math.Max(d, 25)
}

func describeStirrups(dia float64, legs int, spacing float64) string {
	return fmt.Sprintf("#%.0f %d-leg @ %.0fmm", dia, legs, spacing)
}
