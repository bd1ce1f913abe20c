// Package torsion implements the torsion reinforcement engine: cracking
// threshold capacity for solid rectangular sections, closed stirrup
// intensity and side-face reinforcement for deep beams. It reads only
// geometry and forces, never flexural output.
package torsion

import (
	"fmt"
	"math"

	"github.com/charmbracelet/log"

	"github.com/alexiusacademia/gorcd/internal/beamdata"
	"github.com/alexiusacademia/gorcd/internal/config"
	"github.com/alexiusacademia/gorcd/internal/nscp"
)

const (
	// StirrupDia is the closed stirrup diameter assumed for torsion.
	StirrupDia = 10.0

	// Practical closed-stirrup spacing bounds (mm).
	MinSpacing = 50.0
	MaxSpacing = 300.0

	// Side-face reinforcement applies above this beam height (mm).
	SFAHeightThreshold = 750.0

	// Minimum side-face steel per face as a fraction of b·h.
	SFAMinRatio = 0.0010

	// Effectiveness and geometric factors of the simplified closed
	// stirrup model.
	alpha = 0.85
	beta  = 0.85
)

// SideFace is the side-face reinforcement requirement for deep sections.
type SideFace struct {
	Required        bool    `json:"required"`
	MinAreaPerFace  float64 `json:"min_area_per_face"`
	MaxSpacing      float64 `json:"max_spacing"`
	HeightThreshold float64 `json:"height_threshold"`
	Justification   string  `json:"justification"`
}

// Record is the torsion design result for one beam section.
type Record struct {
	Section string `json:"section"`

	Width          float64 `json:"width"`
	Height         float64 `json:"height"`
	EffectiveDepth float64 `json:"effective_depth"`

	TuKNm float64 `json:"torsion_knm"`
	NuKN  float64 `json:"axial_kn"`

	TcKNm                 float64 `json:"concrete_capacity_knm"`
	PhiTcKNm              float64 `json:"factored_capacity_knm"`
	CapacityRatio         float64 `json:"capacity_ratio"`
	ReinforcementRequired bool    `json:"reinforcement_required"`

	StirrupDia    float64  `json:"stirrup_diameter"`
	Spacing       float64  `json:"spacing"`
	AreaRequired  float64  `json:"area_required"`
	AreaPerLength float64  `json:"area_per_unit_length"`
	SideFace      SideFace `json:"side_face_reinforcement"`

	Error string `json:"error,omitempty"`
}

// BeamDesign is the torsion output for a whole beam.
type BeamDesign struct {
	Dimensions beamdata.Dimensions `json:"dimensions"`
	Sections   map[string]*Record  `json:"sections"`

	TorsionRequired  bool `json:"torsion_reinforcement_required"`
	SideFaceRequired bool `json:"side_face_reinforcement_required"`
}

// Engine designs torsion reinforcement. Stateless apart from the
// immutable configuration; safe for concurrent use.
type Engine struct {
	cfg config.Config
	log *log.Logger
}

// New creates a torsion engine for the given configuration.
func New(cfg config.Config, logger *log.Logger) *Engine {
	if logger == nil {
		logger = log.Default()
	}
	return &Engine{cfg: cfg, log: logger}
}

// ConcreteCapacity returns the cracking torsion capacity Tc in N·mm for
// a solid rectangular section: 0.33·√f'c·x²·y with x and y the shorter
// and longer dimensions.
func ConcreteCapacity(fc, b, h float64) float64 {
	x := math.Min(b, h)
	y := math.Max(b, h)
	return 0.33 * math.Sqrt(fc) * x * x * y
}

// DesignBeam designs torsion reinforcement for all three sections of a
// beam and rolls up the per-beam requirement flags.
func (e *Engine) DesignBeam(beam beamdata.Beam) *BeamDesign {
	bd := &BeamDesign{
		Dimensions: beam.Dimensions,
		Sections:   make(map[string]*Record, len(beamdata.Sections)),
	}
	for _, section := range beamdata.Sections {
		rec := e.DesignSection(beam.Dimensions, beam.ForcesAt(section), section)
		bd.Sections[section] = rec
		if rec.ReinforcementRequired {
			bd.TorsionRequired = true
		}
		if rec.SideFace.Required {
			bd.SideFaceRequired = true
		}
	}
	return bd
}

// DesignSection designs the torsion reinforcement at one beam section.
func (e *Engine) DesignSection(dims beamdata.Dimensions, forces beamdata.SectionForces, section string) *Record {
	rec := &Record{Section: section, StirrupDia: StirrupDia}

	if !dims.Valid() {
		inputErr := &beamdata.InputError{
			Section: section,
			Field:   "dimensions",
			Reason:  "base, height and length must be positive",
		}
		rec.Error = inputErr.Error()
		e.log.Error("torsion design skipped", "section", section, "err", inputErr)
		return rec
	}

	b, h := dims.Base, dims.Height
	tu := forces.MaxTorsion * 1e6 // N·mm
	d := h - e.cfg.Cover - StirrupDia

	rec.Width = b
	rec.Height = h
	rec.EffectiveDepth = d
	rec.TuKNm = forces.MaxTorsion
	rec.NuKN = forces.MaxAxial

	tc := ConcreteCapacity(e.cfg.Fc, b, h)
	phiTc := e.cfg.PhiTorsion * tc
	rec.TcKNm = tc / 1e6
	rec.PhiTcKNm = phiTc / 1e6
	if phiTc > 0 {
		rec.CapacityRatio = math.Abs(tu) / phiTc
	}
	rec.ReinforcementRequired = rec.CapacityRatio > 1.0

	if rec.ReinforcementRequired {
		avOverS := math.Abs(tu) / (e.cfg.MainFy * d * alpha * beta)
		spacing := math.Inf(1)
		if avOverS > 0 {
			spacing = nscp.BarArea(StirrupDia) / avOverS
		}
		spacing = math.Max(MinSpacing, math.Min(spacing, MaxSpacing))

		rec.AreaPerLength = avOverS
		rec.Spacing = spacing
		rec.AreaRequired = avOverS * spacing
	} else {
		rec.Spacing = MaxSpacing
	}

	rec.SideFace = sideFaceRequirement(b, h, tu)
	return rec
}

// sideFaceRequirement checks the deep-beam side-face reinforcement rule:
// required when the height exceeds the threshold and the web carries a
// positive torsion.
func sideFaceRequirement(b, h, tu float64) SideFace {
	sfa := SideFace{
		MaxSpacing:      MaxSpacing,
		HeightThreshold: SFAHeightThreshold,
	}
	if h > SFAHeightThreshold && tu > 0 {
		sfa.Required = true
		sfa.MinAreaPerFace = SFAMinRatio * b * h
	}
	cmp := "<="
	if h > SFAHeightThreshold {
		cmp = ">"
	}
	sfa.Justification = fmt.Sprintf("height %.0fmm %s %.0fmm", h, cmp, SFAHeightThreshold)
	return sfa
}
