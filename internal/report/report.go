// Package report flattens a design run into a per-beam reinforcement
// schedule and renders it as CSV, XLSX or PDF.
package report

import (
	"fmt"
	"sort"

	"github.com/alexiusacademia/gorcd/internal/beamdata"
	"github.com/alexiusacademia/gorcd/internal/designer"
	"github.com/alexiusacademia/gorcd/internal/flexure"
	"github.com/alexiusacademia/gorcd/internal/torsion"
)

// Row is one beam of the reinforcement schedule.
type Row struct {
	Floor string
	Group string
	Beam  string
	Size  string

	LeftTop     string
	LeftBottom  string
	MidTop      string
	MidBottom   string
	RightTop    string
	RightBottom string

	StirrupsLeft  string
	StirrupsMid   string
	StirrupsRight string

	SideFace string
	Status   string
}

// Header lists the schedule columns in output order.
var Header = []string{
	"Floor", "Group", "Beam", "Size (mm)",
	"Left Top", "Left Bottom", "Mid Top", "Mid Bottom", "Right Top", "Right Bottom",
	"Stirrups Left", "Stirrups Mid", "Stirrups Right",
	"Side Face", "Status",
}

func (r Row) fields() []string {
	return []string{
		r.Floor, r.Group, r.Beam, r.Size,
		r.LeftTop, r.LeftBottom, r.MidTop, r.MidBottom, r.RightTop, r.RightBottom,
		r.StirrupsLeft, r.StirrupsMid, r.StirrupsRight,
		r.SideFace, r.Status,
	}
}

// Rows flattens a result hierarchy into schedule rows sorted by floor,
// group and beam name.
func Rows(res *designer.Results) []Row {
	var rows []Row
	for _, floor := range sortedKeys(res.Flexure) {
		groups := res.Flexure[floor]
		for _, group := range sortedKeys(groups) {
			beams := groups[group]
			for _, name := range sortedKeys(beams) {
				rows = append(rows, buildRow(res, floor, group, name, beams[name]))
			}
		}
	}
	return rows
}

func buildRow(res *designer.Results, floor, group, name string, flex *flexure.BeamDesign) Row {
	row := Row{
		Floor: floor,
		Group: group,
		Beam:  name,
		Size:  fmt.Sprintf("%.0fx%.0f", flex.Dimensions.Base, flex.Dimensions.Height),
	}

	row.LeftTop = flex.Record(beamdata.SectionLeft, beamdata.LocationTop).BarDescription()
	row.LeftBottom = flex.Record(beamdata.SectionLeft, beamdata.LocationBottom).BarDescription()
	row.MidTop = flex.Record(beamdata.SectionMid, beamdata.LocationTop).BarDescription()
	row.MidBottom = flex.Record(beamdata.SectionMid, beamdata.LocationBottom).BarDescription()
	row.RightTop = flex.Record(beamdata.SectionRight, beamdata.LocationTop).BarDescription()
	row.RightBottom = flex.Record(beamdata.SectionRight, beamdata.LocationBottom).BarDescription()
	row.Status = beamStatus(flex)

	if sh := res.Shear[floor][group][name]; sh != nil {
		row.StirrupsLeft = sh.Sections[beamdata.SectionLeft].Describe()
		row.StirrupsMid = sh.Sections[beamdata.SectionMid].Describe()
		row.StirrupsRight = sh.Sections[beamdata.SectionRight].Describe()
	}

	row.SideFace = "-"
	if !res.Torsion.Skipped {
		if tr := res.Torsion.Beams[floor][group][name]; tr != nil {
			row.SideFace = sideFaceSummary(tr)
		}
	}
	return row
}

// beamStatus rolls the six section verdicts up: any ERROR wins, then any
// REVISE, else PASS.
func beamStatus(flex *flexure.BeamDesign) string {
	status := flexure.StatusPass
	for _, locs := range flex.Sections {
		for _, rec := range locs {
			switch rec.Status {
			case flexure.StatusError:
				return string(flexure.StatusError)
			case flexure.StatusRevise:
				status = flexure.StatusRevise
			}
		}
	}
	return string(status)
}

func sideFaceSummary(tr *torsion.BeamDesign) string {
	if !tr.SideFaceRequired {
		return "-"
	}
	// All sections of a beam share geometry; report the largest demand.
	var area float64
	for _, rec := range tr.Sections {
		if rec.SideFace.Required && rec.SideFace.MinAreaPerFace > area {
			area = rec.SideFace.MinAreaPerFace
		}
	}
	return fmt.Sprintf("%.0f mm²/face", area)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
