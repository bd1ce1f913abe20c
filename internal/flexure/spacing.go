package flexure

import "math"

// MaxLayers is the practical ceiling on reinforcement layers.
const MaxLayers = 4

// Remediation hints attached to a failed arrangement.
const (
	HintIncreaseWidth    = "increase beam width"
	HintReduceBarDia     = "reduce bar diameter"
	HintDoublyReinforced = "use doubly reinforced design"
)

// MinClearSpacing returns the ACI/NSCP minimum clear spacing between
// parallel bars: max(25 mm, bar diameter, 4/3 of the aggregate size).
func (e *Engine) MinClearSpacing(barDia float64) float64 {
	return math.Max(25, math.Max(barDia, 4.0/3.0*e.cfg.MaxAggregate))
}

// AvailableWidth is the width left for bars after cover and stirrups on
// both faces.
func (e *Engine) AvailableWidth(b float64) float64 {
	return b - 2*e.cfg.Cover - 2*e.cfg.StirrupDia()
}

// ResolveArrangement distributes a bar group across layers. It escalates
// through layer counts 1, 2, ... MaxLayers, attempting each exactly once;
// bars are spread as evenly as possible with any remainder assigned to
// the lower layers, keeping tension steel near the tension face. The
// terminal failed state carries remediation hints.
func (e *Engine) ResolveArrangement(b, barDia float64, count int) Arrangement {
	minSpacing := e.MinClearSpacing(barDia)
	avail := e.AvailableWidth(b)

	arr := Arrangement{
		Diameter:   barDia,
		MinSpacing: minSpacing,
	}
	if avail < barDia || count <= 0 {
		arr.Layers = 1
		arr.BarsPerLayer = []int{count}
		arr.Hints = []string{HintIncreaseWidth}
		return arr
	}

	for layers := 1; layers <= MaxLayers; layers++ {
		dist := distributeBars(count, layers)
		widest := dist[0]

		spacing, fits := layerSpacing(widest, barDia, minSpacing, avail)
		if !fits {
			continue
		}
		arr.Layers = layers
		arr.BarsPerLayer = dist
		arr.ClearSpacing = spacing
		arr.OK = true
		return arr
	}

	arr.Layers = MaxLayers
	arr.BarsPerLayer = distributeBars(count, MaxLayers)
	arr.Hints = []string{HintIncreaseWidth, HintReduceBarDia, HintDoublyReinforced}
	return arr
}

// layerSpacing checks whether n bars fit in the available width and
// returns the resulting clear spacing.
func layerSpacing(n int, barDia, minSpacing, avail float64) (float64, bool) {
	if n <= 1 {
		return avail - barDia, barDia <= avail
	}
	required := float64(n)*barDia + float64(n-1)*minSpacing
	if required > avail {
		return 0, false
	}
	return (avail - float64(n)*barDia) / float64(n-1), true
}

// distributeBars splits count bars over layers as evenly as possible,
// remainder to the lowest layers first.
func distributeBars(count, layers int) []int {
	if layers < 1 {
		layers = 1
	}
	base := count / layers
	extra := count % layers
	dist := make([]int, layers)
	for i := range dist {
		dist[i] = base
		if i < extra {
			dist[i]++
		}
	}
	return dist
}
