package flexure

import (
	"fmt"
	"math"

	"github.com/alexiusacademia/gorcd/internal/beamdata"
)

// ComputeDuctileRequirements derives the seismic minimum steel floors
// for a special moment frame beam from its completed section records.
// Bottom steel at the ends must reach max(50% of the peak top steel,
// 25% of the peak steel anywhere); every other zone must reach 25% of
// the peak steel anywhere.
func ComputeDuctileRequirements(sections map[string]map[string]*Record) DuctileRequirements {
	var maxZone, maxTop float64
	for _, section := range beamdata.Sections {
		for _, location := range beamdata.Locations {
			rec, ok := sections[section][location]
			if !ok || rec == nil || rec.RequiredArea <= 0 {
				continue
			}
			maxZone = math.Max(maxZone, rec.RequiredArea)
			if location == beamdata.LocationTop {
				maxTop = math.Max(maxTop, rec.RequiredArea)
			}
		}
	}

	ast25 := 0.25 * maxZone
	ast50Top := 0.50 * maxTop
	return DuctileRequirements{
		MaxZoneSteel:    maxZone,
		MaxTopSteel:     maxTop,
		Ast25Percent:    ast25,
		Ast50PercentTop: ast50Top,
		BottomEnds:      math.Max(ast50Top, ast25),
		TopEnds:         ast25,
		BottomMid:       ast25,
		TopMid:          ast25,
	}
}

// applyDuctile overrides a record's required area when the seismic floor
// governs, re-running bar selection and verification against the new
// target. Records that already satisfy the floor only get it noted.
func (e *Engine) applyDuctile(rec *Record, req DuctileRequirements, b, h float64) {
	if rec == nil || rec.Status == StatusError {
		return
	}
	floor := req.For(rec.Section, rec.Location)
	rec.DuctileRequirement = floor
	if floor <= rec.RequiredArea {
		if floor > 0 {
			rec.Note = fmt.Sprintf("ductile requirement %.0f mm² satisfied", floor)
		}
		return
	}

	rec.RequiredArea = floor
	rec.DuctileControlling = true
	rec.Note = fmt.Sprintf("ductile requirement controls (%.0f mm²)", floor)

	rec.Combinations = e.Combinations(floor)
	if len(rec.Combinations) > 0 {
		chosen := rec.Combinations[0]
		rec.Bars = &chosen
	} else {
		chosen := e.provisionalBars(floor)
		rec.Bars = &chosen
	}
	arr := e.ResolveArrangement(b, rec.Bars.Diameter, rec.Bars.Count)
	rec.Arrangement = &arr

	d := EffectiveDepth(h, e.cfg.Cover, e.cfg.StirrupDia(), rec.Bars.Diameter)
	rec.EffectiveDepth = d
	e.verifyRecord(rec, b, d)
}
