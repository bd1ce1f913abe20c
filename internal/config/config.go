// Package config builds the immutable design configuration shared by all
// engines in a run. The configuration is constructed once from the loaded
// beam-data record and passed by value; no engine mutates design state
// after construction.
package config

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/alexiusacademia/gorcd/internal/beamdata"
	"github.com/alexiusacademia/gorcd/internal/nscp"
)

// FrameType identifies the seismic detailing category of the moment frame.
type FrameType string

const (
	FrameOrdinary     FrameType = "ordinary"
	FrameIntermediate FrameType = "intermediate"
	FrameSpecial      FrameType = "special"
)

// ParseFrameType normalizes a frame type string. The second return value
// is false when the input was not recognized and the ordinary default was
// substituted.
func ParseFrameType(s string) (FrameType, bool) {
	switch FrameType(strings.ToLower(strings.TrimSpace(s))) {
	case FrameOrdinary:
		return FrameOrdinary, true
	case FrameIntermediate:
		return FrameIntermediate, true
	case FrameSpecial:
		return FrameSpecial, true
	default:
		return FrameOrdinary, false
	}
}

// Defaults applied when the input record omits or mangles a setting.
const (
	DefaultMinBars           = 2
	DefaultCover             = 40.0  // mm
	DefaultAggregate         = 25.0  // mm
	DefaultMainFy            = 415.0 // MPa
	DefaultShearFy           = 275.0 // MPa
	DefaultMinStirrupSpacing = 75.0  // mm
	DefaultMaxStirrupSpacing = 300.0 // mm
	DefaultSpacingRoundOff   = 25.0  // mm
	DefaultLambda            = 1.0   // normal-weight concrete
)

// Config is the immutable per-run design configuration.
type Config struct {
	// Materials (MPa, mm)
	ConcreteGrade string
	Fc            float64
	MainFy        float64
	ShearFy       float64
	Cover         float64
	MaxAggregate  float64

	// Seismic detailing category
	Frame FrameType

	// Strength reduction factors
	PhiFlexure float64
	PhiShear   float64
	PhiTorsion float64

	// Lightweight-aggregate factor λ
	Lambda float64

	// Candidate bar diameters (mm), already filtered to the allowed range
	MainBars    []float64
	StirrupBars []float64

	// Stirrup spacing bounds and round-off (mm)
	MinStirrupSpacing float64
	MaxStirrupSpacing float64
	SpacingRoundOff   float64

	// Minimum bars per reinforcement group
	MinBars int

	ConsiderTorsion bool

	// Warnings recorded while substituting defaults for invalid settings.
	Warnings []string
}

// New builds the design configuration from a loaded beam-data record.
// Invalid or missing settings are replaced by safe defaults and recorded
// as configuration warnings, both on the returned value and on the
// logger; construction never fails.
func New(doc *beamdata.Document, logger *log.Logger) Config {
	if logger == nil {
		logger = log.Default()
	}

	cfg := Config{
		PhiFlexure:      nscp.PhiFlexure,
		PhiShear:        nscp.PhiShear,
		PhiTorsion:      nscp.PhiTorsion,
		Lambda:          DefaultLambda,
		MinBars:         DefaultMinBars,
		ConsiderTorsion: true,
	}
	warn := func(format string, args ...any) {
		msg := fmt.Sprintf(format, args...)
		cfg.Warnings = append(cfg.Warnings, msg)
		logger.Warn(msg)
	}

	mat := doc.MaterialProperties
	cfg.ConcreteGrade = mat.ConcreteGrade
	if cfg.ConcreteGrade == "" {
		cfg.ConcreteGrade = "C28"
		warn("missing concrete grade, using C28")
	}
	cfg.Fc = nscp.ConcreteStrength(cfg.ConcreteGrade)

	cfg.MainFy = mat.MainSteelFy
	if cfg.MainFy <= 0 {
		cfg.MainFy = DefaultMainFy
		warn("missing main steel fy, using %.0f MPa", DefaultMainFy)
	}
	cfg.ShearFy = mat.ShearSteelFy
	if cfg.ShearFy <= 0 {
		cfg.ShearFy = DefaultShearFy
		warn("missing shear steel fy, using %.0f MPa", DefaultShearFy)
	}
	cfg.Cover = mat.ConcreteCover
	if cfg.Cover <= 0 {
		cfg.Cover = DefaultCover
	}
	cfg.MaxAggregate = mat.MaxAggregateSize
	if cfg.MaxAggregate <= 0 {
		cfg.MaxAggregate = DefaultAggregate
	}

	set := doc.DesignSettings
	frame, ok := ParseFrameType(set.FrameType)
	if !ok && set.FrameType != "" {
		warn("invalid frame type %q, using ordinary", set.FrameType)
	}
	cfg.Frame = frame

	cfg.PhiFlexure = reductionFactor("flexure", set.ReductionFactorFlexure, nscp.PhiFlexure, warn)
	cfg.PhiShear = reductionFactor("shear", set.ReductionFactorShear, nscp.PhiShear, warn)
	cfg.PhiTorsion = reductionFactor("torsion", set.ReductionFactorTorsion, nscp.PhiTorsion, warn)

	if set.LightweightFactorShear > 0 {
		cfg.Lambda = set.LightweightFactorShear
	}
	cfg.SpacingRoundOff = set.StirrupSpacingRoundOff
	if cfg.SpacingRoundOff <= 0 {
		cfg.SpacingRoundOff = DefaultSpacingRoundOff
	}
	if set.ConsiderTorsionDesign != nil {
		cfg.ConsiderTorsion = *set.ConsiderTorsionDesign
	}

	reinf := doc.ReinforcementParameters
	cfg.MainBars = barRange(reinf.MainBarRange)
	cfg.StirrupBars = barRange(reinf.StirrupBarRange)
	if len(cfg.StirrupBars) == len(nscp.StandardBarSizes) && len(reinf.StirrupBarRange) == 0 {
		// No stirrup range given: restrict to the common stirrup sizes.
		cfg.StirrupBars = []float64{10, 12, 16}
	}

	cfg.MinStirrupSpacing = reinf.MinStirrupSpacing
	if cfg.MinStirrupSpacing <= 0 {
		cfg.MinStirrupSpacing = DefaultMinStirrupSpacing
	}
	cfg.MaxStirrupSpacing = reinf.MaxStirrupSpacing
	if cfg.MaxStirrupSpacing <= 0 {
		cfg.MaxStirrupSpacing = DefaultMaxStirrupSpacing
	}
	if cfg.MaxStirrupSpacing < cfg.MinStirrupSpacing {
		warn("max stirrup spacing %.0f < min %.0f, swapping", cfg.MaxStirrupSpacing, cfg.MinStirrupSpacing)
		cfg.MinStirrupSpacing, cfg.MaxStirrupSpacing = cfg.MaxStirrupSpacing, cfg.MinStirrupSpacing
	}

	return cfg
}

// StirrupDia returns the smallest allowed stirrup diameter, the size
// assumed when computing effective depth.
func (c Config) StirrupDia() float64 {
	return nscp.SmallestBar(c.StirrupBars)
}

func reductionFactor(name string, v, def float64, warn func(string, ...any)) float64 {
	if v == 0 {
		return def
	}
	if v <= 0 || v > 1 {
		warn("reduction factor %s = %.2f out of range, using %.2f", name, v, def)
		return def
	}
	return v
}

func barRange(r []float64) []float64 {
	if len(r) == 0 {
		return append([]float64(nil), nscp.StandardBarSizes...)
	}
	min := r[0]
	max := min
	for _, v := range r[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	if len(r) == 1 {
		max = min
	}
	return nscp.BarsInRange(min, max)
}
