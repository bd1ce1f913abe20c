// Package flexure implements the flexural reinforcement engine: required
// steel from the Whitney limit-state equation, constructible bar
// selection, spacing and layering resolution, the doubly-reinforced
// fallback and the seismic ductile override for special moment frames.
//
// All internal computation is in N, mm and MPa; kN·m appears only on the
// record boundary.
package flexure

import (
	"math"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/alexiusacademia/gorcd/internal/beamdata"
	"github.com/alexiusacademia/gorcd/internal/config"
	"github.com/alexiusacademia/gorcd/internal/nscp"
)

// Engine designs flexural reinforcement for beam sections. It is
// stateless apart from the immutable configuration and is safe for
// concurrent use.
type Engine struct {
	cfg config.Config
	log *log.Logger
}

// New creates a flexural engine for the given configuration.
func New(cfg config.Config, logger *log.Logger) *Engine {
	if logger == nil {
		logger = log.Default()
	}
	return &Engine{cfg: cfg, log: logger}
}

// DesignBeam designs all six section/location records of a beam and, for
// special moment frames, applies the ductile minimum-steel override.
func (e *Engine) DesignBeam(beam beamdata.Beam) *BeamDesign {
	bd := &BeamDesign{
		Dimensions: beam.Dimensions,
		FrameType:  string(e.cfg.Frame),
		Sections:   make(map[string]map[string]*Record, len(beamdata.Sections)),
	}

	for _, section := range beamdata.Sections {
		bd.Sections[section] = make(map[string]*Record, len(beamdata.Locations))
		forces := beam.ForcesAt(section)
		for _, location := range beamdata.Locations {
			bd.Sections[section][location] = e.DesignSection(beam.Dimensions, forces, section, location)
		}
	}

	if e.cfg.Frame == config.FrameSpecial {
		req := ComputeDuctileRequirements(bd.Sections)
		bd.Ductile = &req
		for _, section := range beamdata.Sections {
			for _, location := range beamdata.Locations {
				e.applyDuctile(bd.Sections[section][location], req, beam.Dimensions.Base, beam.Dimensions.Height)
			}
		}
	}
	return bd
}

// DesignSection designs the reinforcement at one section and location.
// Input problems are returned as error records, never as panics; the
// caller keeps processing sibling sections.
func (e *Engine) DesignSection(dims beamdata.Dimensions, forces beamdata.SectionForces, section, location string) *Record {
	rec := &Record{
		Section:  section,
		Location: location,
	}

	if !dims.Valid() {
		inputErr := &beamdata.InputError{
			Section: section,
			Field:   "dimensions",
			Reason:  "base, height and length must be positive",
		}
		rec.Status = StatusError
		rec.Error = inputErr.Error()
		e.log.Error("flexural design skipped", "section", section, "location", location, "err", inputErr)
		return rec
	}

	b, h := dims.Base, dims.Height
	muKNm := math.Abs(momentFor(forces, location))
	mu := muKNm * 1e6 // N·mm
	rec.MuKNm = muKNm

	fc, fy := e.cfg.Fc, e.cfg.MainFy
	rec.RhoMin = nscp.RhoMin(fc, fy)
	rec.RhoMax = nscp.RhoMax(fc, fy)
	rec.RhoBalanced = nscp.RhoBalanced(fc, fy)

	// Theoretical requirement with the smallest candidate giving the
	// reference effective depth.
	d0 := EffectiveDepth(h, e.cfg.Cover, e.cfg.StirrupDia(), nscp.SmallestBar(e.cfg.MainBars))
	rho := SteelRatio(mu, e.cfg.PhiFlexure, b, d0, fc, fy)
	theoretical := rho * b * d0

	rec.MinArea = math.Max(rec.RhoMin*b*d0, nscp.MinimumBarArea(e.cfg.MainBars, e.cfg.MinBars))
	asRequired := math.Max(theoretical, rec.MinArea)
	rec.RequiredArea = asRequired

	best, d, ok := e.selectBars(mu, b, h, asRequired)
	if !ok {
		return e.designSectionDoubly(rec, b, h, mu, asRequired)
	}

	rec.Kind = KindSingly
	rec.Singly = &SinglyReinforcedDesign{
		Rho:             rho,
		TheoreticalArea: theoretical,
	}
	rec.EffectiveDepth = d
	rec.Bars = best
	rec.Combinations = e.Combinations(asRequired)

	arr := e.ResolveArrangement(b, best.Diameter, best.Count)
	rec.Arrangement = &arr

	e.verifyRecord(rec, b, d)
	e.noteArrangement(rec)
	return rec
}

// designSectionDoubly completes a record through the doubly-reinforced
// fallback when no singly-reinforced candidate passes the capacity check.
func (e *Engine) designSectionDoubly(rec *Record, b, h, mu, asRequired float64) *Record {
	smallest := nscp.SmallestBar(e.cfg.MainBars)
	d := EffectiveDepth(h, e.cfg.Cover, e.cfg.StirrupDia(), smallest)
	rec.EffectiveDepth = d

	dbl := e.designDoubly(mu, b, d)
	if dbl.SinglySufficient {
		// The ductile maximum alone carries the moment: singly
		// reinforced is actually sufficient.
		rec.Kind = KindSingly
		rec.Singly = &SinglyReinforcedDesign{
			Rho:             dbl.As1 / (b * d),
			TheoreticalArea: dbl.As1,
		}
		rec.RequiredArea = math.Max(dbl.As1, rec.MinArea)
		rec.Note = "initially flagged doubly reinforced; singly reinforced is sufficient"
	} else {
		rec.Kind = KindDoubly
		rec.Doubly = dbl
		rec.RequiredArea = dbl.AsTotal
		rec.Note = "section requires doubly reinforced design or larger dimensions"
	}

	rec.Combinations = e.Combinations(rec.RequiredArea)
	if len(rec.Combinations) > 0 {
		chosen := rec.Combinations[0]
		rec.Bars = &chosen
	} else {
		chosen := e.provisionalBars(rec.RequiredArea)
		rec.Bars = &chosen
	}

	arr := e.ResolveArrangement(b, rec.Bars.Diameter, rec.Bars.Count)
	rec.Arrangement = &arr

	if rec.Kind == KindDoubly {
		e.verifyDoublyRecord(rec, b, d, mu)
	} else {
		e.verifyRecord(rec, b, d)
	}
	e.noteArrangement(rec)
	return rec
}

// verifyRecord runs the verification chain for a singly reinforced
// record: capacity on the provided steel, strain compatibility and the
// ductility index on the required steel ratio.
func (e *Engine) verifyRecord(rec *Record, b, d float64) {
	fc, fy := e.cfg.Fc, e.cfg.MainFy
	mu := rec.MuKNm * 1e6

	provided := rec.RequiredArea
	if rec.Bars != nil {
		provided = rec.Bars.TotalArea
	}
	rec.Capacity = VerifyCapacity(provided, e.cfg.PhiFlexure, b, d, fc, fy, mu)
	rec.Strain = VerifyStrain(rec.RequiredArea, b, d, fc, fy)
	rec.Ductility = VerifyDuctility(rec.RequiredArea/(b*d), fc, fy)

	rec.NeutralAxis = rec.Strain.NeutralAxis
	rec.SteelStrain = rec.Strain.EpsilonS
	rec.SteelYields = rec.Strain.Yields

	if rec.Capacity.Passes && rec.SteelYields {
		rec.Status = StatusPass
	} else {
		rec.Status = StatusRevise
	}
}

// verifyDoublyRecord builds the verification chain from the moment
// components of the doubly-reinforced design.
func (e *Engine) verifyDoublyRecord(rec *Record, b, d, mu float64) {
	fc, fy := e.cfg.Fc, e.cfg.MainFy
	dbl := rec.Doubly

	mn := dbl.Mn1KNm * 1e6
	if dbl.AscProvided > 0 {
		mn += dbl.AscProvided * dbl.CompStress * (d - dbl.DPrime)
	}
	phiMn := e.cfg.PhiFlexure * mn

	check := &CapacityCheck{
		MnKNm:    mn / 1e6,
		PhiMnKNm: phiMn / 1e6,
		MuKNm:    mu / 1e6,
	}
	if mu > 0 {
		check.Ratio = phiMn / mu
		check.ExcessPercent = (check.Ratio - 1) * 100
		// Exact sizing lands the ratio on 1; tolerate float noise.
		check.Passes = check.Ratio >= 1.0-1e-9
	} else {
		check.Passes = true
	}
	rec.Capacity = check

	// Tension side sits at the ductile maximum by construction.
	rec.Strain = VerifyStrain(dbl.As1, b, d, fc, fy)
	rec.Ductility = VerifyDuctility(dbl.AsTotal/(b*d), fc, fy)

	rec.NeutralAxis = rec.Strain.NeutralAxis
	rec.SteelStrain = rec.Strain.EpsilonS
	rec.SteelYields = rec.Strain.Yields

	if rec.Capacity.Passes && rec.SteelYields {
		rec.Status = StatusPass
	} else {
		rec.Status = StatusRevise
	}
}

// noteArrangement downgrades the record when spacing could not be
// resolved within the practical layer ceiling.
func (e *Engine) noteArrangement(rec *Record) {
	if rec.Arrangement == nil || rec.Arrangement.OK {
		return
	}
	infeasible := &beamdata.InfeasibleError{
		Detail: "bar spacing cannot be resolved within 4 layers",
		Hints:  rec.Arrangement.Hints,
	}
	if rec.Note != "" {
		rec.Note += "; "
	}
	rec.Note += infeasible.Error()
	rec.Status = StatusRevise
	e.log.Warn("spacing unresolved", "section", rec.Section, "location", rec.Location,
		"bars", rec.Bars.Describe(), "hints", strings.Join(rec.Arrangement.Hints, ", "))
}

func momentFor(forces beamdata.SectionForces, location string) float64 {
	if location == beamdata.LocationTop {
		return forces.MaxMomentTop
	}
	return forces.MaxMomentBottom
}
