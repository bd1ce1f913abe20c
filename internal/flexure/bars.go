package flexure

import (
	"math"
	"sort"

	"github.com/alexiusacademia/gorcd/internal/nscp"
)

// Practical limits on a bar combination.
const (
	maxBarsPerGroup  = 12
	maxExcessPercent = 50.0
	optimalBarCount  = 4
)

// EfficiencyScore rates a combination on 0..100, penalizing excess steel
// and deviation from the optimal bar count.
func EfficiencyScore(excessPercent float64, count int) float64 {
	score := 100 - excessPercent/2 - math.Abs(float64(count-optimalBarCount))
	return math.Max(0, math.Min(100, score))
}

// Combinations enumerates the practical bar combinations covering the
// required area, best efficiency first. Combinations with more than 12
// bars or more than 50% excess are discarded.
func (e *Engine) Combinations(asRequired float64) []BarCombination {
	if asRequired <= 0 {
		return nil
	}
	var combos []BarCombination
	for _, dia := range e.cfg.MainBars {
		area := nscp.BarArea(dia)
		base := int(math.Ceil(asRequired / area))
		if base < e.cfg.MinBars {
			base = e.cfg.MinBars
		}
		for count := base; count < base+3; count++ {
			total := float64(count) * area
			if total < asRequired {
				continue
			}
			excess := (total - asRequired) / asRequired * 100
			if count > maxBarsPerGroup || excess > maxExcessPercent {
				continue
			}
			combos = append(combos, BarCombination{
				Diameter:      dia,
				Count:         count,
				BarArea:       area,
				TotalArea:     total,
				ExcessPercent: excess,
				Score:         EfficiencyScore(excess, count),
			})
		}
	}
	sort.SliceStable(combos, func(i, j int) bool {
		if combos[i].Score != combos[j].Score {
			return combos[i].Score > combos[j].Score
		}
		if combos[i].Diameter != combos[j].Diameter {
			return combos[i].Diameter < combos[j].Diameter
		}
		return combos[i].Count < combos[j].Count
	})
	return combos
}

// selectBars evaluates each candidate diameter with its minimum bar count
// against both the required area and a direct moment-capacity check, and
// returns the passing candidate with the smallest absolute excess area.
// ok is false when no candidate passes, signalling the doubly-reinforced
// fallback.
func (e *Engine) selectBars(mu, b, h, asRequired float64) (best *BarCombination, d float64, ok bool) {
	minExcess := math.Inf(1)
	for _, dia := range e.cfg.MainBars {
		area := nscp.BarArea(dia)
		count := int(math.Ceil(asRequired / area))
		if count < e.cfg.MinBars {
			count = e.cfg.MinBars
		}
		total := float64(count) * area

		dCand := EffectiveDepth(h, e.cfg.Cover, e.cfg.StirrupDia(), dia)
		capacity := VerifyCapacity(total, e.cfg.PhiFlexure, b, dCand, e.cfg.Fc, e.cfg.MainFy, mu)
		if !capacity.Passes {
			continue
		}
		excess := math.Abs(total - asRequired)
		if excess < minExcess {
			minExcess = excess
			best = &BarCombination{
				Diameter:      dia,
				Count:         count,
				BarArea:       area,
				TotalArea:     total,
				ExcessPercent: safeExcessPercent(total, asRequired),
				Score:         EfficiencyScore(safeExcessPercent(total, asRequired), count),
			}
			d = dCand
		}
	}
	return best, d, best != nil
}

// provisionalBars builds the smallest-diameter fallback combination used
// when no candidate passes the capacity check.
func (e *Engine) provisionalBars(asRequired float64) BarCombination {
	dia := nscp.SmallestBar(e.cfg.MainBars)
	area := nscp.BarArea(dia)
	count := int(math.Ceil(asRequired / area))
	if count < e.cfg.MinBars {
		count = e.cfg.MinBars
	}
	total := float64(count) * area
	return BarCombination{
		Diameter:      dia,
		Count:         count,
		BarArea:       area,
		TotalArea:     total,
		ExcessPercent: safeExcessPercent(total, asRequired),
		Score:         EfficiencyScore(safeExcessPercent(total, asRequired), count),
	}
}

func safeExcessPercent(total, required float64) float64 {
	if required <= 0 {
		return 0
	}
	return (total - required) / required * 100
}
