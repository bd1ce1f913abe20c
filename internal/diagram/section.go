// Package diagram renders designed beam sections: the concrete outline,
// the equivalent stress block and neutral axis, and the selected bars at
// their resolved layer positions.
package diagram

import (
	"fmt"
	"strings"

	"github.com/alexiusacademia/gorcd/internal/beamdata"
	"github.com/alexiusacademia/gorcd/internal/flexure"
)

// Point is a bar center in section coordinates (mm, origin at the
// bottom-left corner of the section).
type Point struct {
	X float64
	Y float64
}

// SectionData holds everything needed to draw one designed section.
type SectionData struct {
	Width  float64 // mm
	Height float64 // mm

	Cover      float64
	StirrupDia float64

	NeutralAxis float64 // c, from top (mm)
	StressBlock float64 // a, from top (mm)

	BarDia       float64
	Layers       []int // bars per layer, lowest first
	TensionAtTop bool  // top reinforcement: layers hang from the top face

	Title    string
	Subtitle string
}

// FromRecord builds drawing data from a completed flexural record.
func FromRecord(dims beamdata.Dimensions, rec *flexure.Record, cover, stirrupDia float64) SectionData {
	data := SectionData{
		Width:        dims.Base,
		Height:       dims.Height,
		Cover:        cover,
		StirrupDia:   stirrupDia,
		NeutralAxis:  rec.NeutralAxis,
		TensionAtTop: rec.Location == beamdata.LocationTop,
		Title:        fmt.Sprintf("%s / %s", rec.Section, rec.Location),
		Subtitle:     fmt.Sprintf("Mu = %.1f kN·m, As = %.0f mm²", rec.MuKNm, rec.RequiredArea),
	}
	if rec.Strain != nil {
		data.StressBlock = rec.Strain.StressBlock
	}
	if rec.Bars != nil {
		data.BarDia = rec.Bars.Diameter
	}
	if rec.Arrangement != nil && len(rec.Arrangement.BarsPerLayer) > 0 {
		data.Layers = rec.Arrangement.BarsPerLayer
	} else if rec.Bars != nil {
		data.Layers = []int{rec.Bars.Count}
	}
	return data
}

// BarPositions returns the bar centers, layer by layer from the tension
// face inward. Bars in a layer are spread evenly between the stirrup
// faces.
func BarPositions(data SectionData) []Point {
	var pts []Point
	edge := data.Cover + data.StirrupDia + data.BarDia/2
	layerStep := data.BarDia + barClearance

	for li, count := range data.Layers {
		if count <= 0 {
			continue
		}
		y := edge + float64(li)*layerStep
		if data.TensionAtTop {
			y = data.Height - y
		}
		if count == 1 {
			pts = append(pts, Point{X: data.Width / 2, Y: y})
			continue
		}
		span := data.Width - 2*edge
		step := span / float64(count-1)
		for i := 0; i < count; i++ {
			pts = append(pts, Point{X: edge + float64(i)*step, Y: y})
		}
	}
	return pts
}

// barClearance is the vertical clear distance assumed between layers
// when drawing.
const barClearance = 25.0

// asciiWidth and asciiHeight size the character grid of the ASCII view.
const (
	asciiWidth  = 30
	asciiHeight = 20
)

// DrawASCII renders the section as text: outline, compression zone
// shading, neutral axis marker and bar rows per layer.
func DrawASCII(data SectionData) string {
	var sb strings.Builder

	sb.WriteString("\n")
	if data.Title != "" {
		sb.WriteString(fmt.Sprintf("  SECTION %s\n", strings.ToUpper(data.Title)))
	}
	if data.Subtitle != "" {
		sb.WriteString(fmt.Sprintf("  %s\n", data.Subtitle))
	}
	sb.WriteString("\n")

	// aLine and naLine count rows from the compression face: the top
	// for bottom steel, the bottom for top steel.
	aLine := 0
	if data.Height > 0 {
		aLine = int(data.StressBlock / data.Height * asciiHeight)
	}
	naLine := 0
	if data.Height > 0 {
		naLine = int(data.NeutralAxis / data.Height * asciiHeight)
	}
	compressed := func(row int) bool {
		if data.TensionAtTop {
			return aLine > 0 && row >= asciiHeight-aLine
		}
		return row <= aLine
	}
	naRow := naLine
	if data.TensionAtTop {
		naRow = asciiHeight - naLine
	}

	barLines := map[int]int{} // grid row -> bar count
	for _, p := range BarPositions(data) {
		row := asciiHeight - int(p.Y/data.Height*float64(asciiHeight))
		if row < 1 {
			row = 1
		}
		if row > asciiHeight-1 {
			row = asciiHeight - 1
		}
		barLines[row]++
	}

	for i := 0; i <= asciiHeight; i++ {
		switch i {
		case 0:
			sb.WriteString(fmt.Sprintf("  ┌%s┐\n", strings.Repeat("─", asciiWidth)))
		case asciiHeight:
			sb.WriteString(fmt.Sprintf("  └%s┘\n", strings.Repeat("─", asciiWidth)))
		default:
			fill := strings.Repeat(" ", asciiWidth)
			if compressed(i) {
				fill = strings.Repeat("░", asciiWidth)
			}
			if n, ok := barLines[i]; ok {
				fill = barRow(n, asciiWidth, compressed(i))
			}
			if i == naRow && naLine > 0 {
				sb.WriteString(fmt.Sprintf("  │%s│ ◄─ N.A. c = %.1f mm\n", fill, data.NeutralAxis))
			} else {
				sb.WriteString(fmt.Sprintf("  │%s│\n", fill))
			}
		}
	}

	sb.WriteString("\n")
	sb.WriteString("  ░░░ compression zone   ● bars\n")
	if data.StressBlock > 0 {
		sb.WriteString(fmt.Sprintf("  a = %.1f mm\n", data.StressBlock))
	}
	return sb.String()
}

// barRow renders count bar glyphs spread across a row of the grid.
func barRow(count, width int, shaded bool) string {
	background := " "
	if shaded {
		background = "░"
	}
	if count > width/2 {
		count = width / 2
	}
	row := make([]string, width)
	for i := range row {
		row[i] = background
	}
	if count == 1 {
		row[width/2] = "●"
	} else {
		step := float64(width-5) / float64(count-1)
		for i := 0; i < count; i++ {
			pos := 2 + int(float64(i)*step)
			row[pos] = "●"
		}
	}
	return strings.Join(row, "")
}

// DrawSummaryBox renders a titled box of result lines.
func DrawSummaryBox(title string, lines []string) string {
	var sb strings.Builder

	maxLen := len(title)
	for _, line := range lines {
		if len(line) > maxLen {
			maxLen = len(line)
		}
	}
	maxLen += 4

	border := strings.Repeat("═", maxLen)
	sb.WriteString(fmt.Sprintf("  ╔%s╗\n", border))
	sb.WriteString(fmt.Sprintf("  ║  %-*s  ║\n", maxLen-2, title))
	sb.WriteString(fmt.Sprintf("  ╠%s╣\n", border))
	for _, line := range lines {
		sb.WriteString(fmt.Sprintf("  ║  %-*s  ║\n", maxLen-2, line))
	}
	sb.WriteString(fmt.Sprintf("  ╚%s╝\n", border))
	return sb.String()
}
