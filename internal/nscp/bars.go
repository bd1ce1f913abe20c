package nscp

import "math"

// StandardBarSizes lists the deformed bar diameters (mm) commercially
// available per the NSCP referenced standards.
var StandardBarSizes = []float64{10, 12, 16, 20, 25, 28, 32, 36, 40}

// BarArea returns the nominal cross-sectional area (mm²) of a single bar.
func BarArea(dia float64) float64 {
	return math.Pi * (dia / 2) * (dia / 2)
}

// BarsInRange filters the standard bar sizes to [min, max] inclusive.
// If no standard size falls inside the range, the full standard set is
// returned so a design can always proceed.
func BarsInRange(min, max float64) []float64 {
	var out []float64
	for _, dia := range StandardBarSizes {
		if dia >= min && dia <= max {
			out = append(out, dia)
		}
	}
	if len(out) == 0 {
		out = append(out, StandardBarSizes...)
	}
	return out
}

// SmallestBar returns the smallest diameter in the candidate set.
func SmallestBar(bars []float64) float64 {
	if len(bars) == 0 {
		return StandardBarSizes[0]
	}
	min := bars[0]
	for _, dia := range bars[1:] {
		if dia < min {
			min = dia
		}
	}
	return min
}

// MinimumBarArea returns the steel area of the configured minimum bar
// count placed with the smallest candidate diameter.
func MinimumBarArea(bars []float64, minBars int) float64 {
	return float64(minBars) * BarArea(SmallestBar(bars))
}
