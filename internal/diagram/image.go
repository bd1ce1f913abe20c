package diagram

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// ExportSection writes the section diagram to filename. The image format
// follows the file extension (.png, .svg, .pdf, .jpg).
func ExportSection(data SectionData, filename string) error {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("Beam Section %s", data.Title)
	if data.Subtitle != "" {
		p.Title.Text += "\n" + data.Subtitle
	}
	p.X.Label.Text = "Width (mm)"
	p.Y.Label.Text = "Height (mm)"

	outline := plotter.XYs{
		{X: 0, Y: 0},
		{X: data.Width, Y: 0},
		{X: data.Width, Y: data.Height},
		{X: 0, Y: data.Height},
	}
	section, err := plotter.NewPolygon(outline)
	if err != nil {
		return fmt.Errorf("section outline: %w", err)
	}
	section.Color = color.RGBA{R: 200, G: 200, B: 200, A: 255}
	section.LineStyle.Width = vg.Points(2)
	section.LineStyle.Color = color.Black
	p.Add(section)

	if data.StressBlock > 0 {
		if err := addStressBlock(p, data); err != nil {
			return err
		}
	}
	if data.NeutralAxis > 0 {
		if err := addNeutralAxis(p, data); err != nil {
			return err
		}
	}
	if err := addBars(p, data); err != nil {
		return err
	}

	p.X.Min = -data.Width * 0.15
	p.X.Max = data.Width * 1.15
	p.Y.Min = -data.Height * 0.1
	p.Y.Max = data.Height * 1.1

	width := vg.Points(400)
	height := width * vg.Length(data.Height/data.Width)
	if height > vg.Points(600) {
		height = vg.Points(600)
	}
	return p.Save(width, height, filename)
}

// addStressBlock shades the equivalent rectangular stress zone. The
// compression face is the top for bottom steel and the bottom for top
// steel.
func addStressBlock(p *plot.Plot, data SectionData) error {
	top := data.Height
	bottom := data.Height - data.StressBlock
	if data.TensionAtTop {
		top = data.StressBlock
		bottom = 0
	}
	block, err := plotter.NewPolygon(plotter.XYs{
		{X: 0, Y: bottom},
		{X: data.Width, Y: bottom},
		{X: data.Width, Y: top},
		{X: 0, Y: top},
	})
	if err != nil {
		return fmt.Errorf("stress block: %w", err)
	}
	block.Color = color.RGBA{R: 255, G: 180, B: 180, A: 170}
	block.LineStyle.Width = vg.Points(0.5)
	p.Add(block)
	return nil
}

// addNeutralAxis draws the neutral axis as a dashed line with a label.
func addNeutralAxis(p *plot.Plot, data SectionData) error {
	y := data.Height - data.NeutralAxis
	if data.TensionAtTop {
		y = data.NeutralAxis
	}
	line, err := plotter.NewLine(plotter.XYs{
		{X: -data.Width * 0.05, Y: y},
		{X: data.Width * 1.05, Y: y},
	})
	if err != nil {
		return fmt.Errorf("neutral axis: %w", err)
	}
	line.LineStyle.Width = vg.Points(1.5)
	line.LineStyle.Color = color.RGBA{R: 255, A: 255}
	line.LineStyle.Dashes = []vg.Length{vg.Points(6), vg.Points(3)}
	p.Add(line)

	labels, err := plotter.NewLabels(plotter.XYLabels{
		XYs:    plotter.XYs{{X: data.Width * 1.02, Y: y}},
		Labels: []string{fmt.Sprintf("N.A. c=%.0f", data.NeutralAxis)},
	})
	if err != nil {
		return fmt.Errorf("neutral axis label: %w", err)
	}
	p.Add(labels)
	return nil
}

// addBars draws the bars at their resolved positions.
func addBars(p *plot.Plot, data SectionData) error {
	positions := BarPositions(data)
	if len(positions) == 0 {
		return nil
	}
	pts := make(plotter.XYs, len(positions))
	for i, pos := range positions {
		pts[i] = plotter.XY{X: pos.X, Y: pos.Y}
	}
	scatter, err := plotter.NewScatter(pts)
	if err != nil {
		return fmt.Errorf("bars: %w", err)
	}
	scatter.GlyphStyle.Shape = draw.CircleGlyph{}
	scatter.GlyphStyle.Radius = vg.Points(5)
	scatter.GlyphStyle.Color = color.RGBA{B: 180, A: 255}
	p.Add(scatter)
	return nil
}
