package flexure

import (
	"fmt"
	"strings"

	"github.com/alexiusacademia/gorcd/internal/beamdata"
)

// Status is the overall verdict of a section design.
type Status string

const (
	StatusPass   Status = "PASS"
	StatusRevise Status = "REVISE"
	StatusError  Status = "ERROR"
)

// Kind discriminates the two mutually exclusive design variants carried
// by a Record.
type Kind string

const (
	KindSingly Kind = "singly_reinforced"
	KindDoubly Kind = "doubly_reinforced"
)

// BarCombination is a constructible choice of bar diameter and count.
// Invariants: TotalArea covers the requirement, Count is at least the
// configured minimum and at most 12, and ExcessPercent is at most 50.
type BarCombination struct {
	Diameter      float64 `json:"bar_diameter"`
	Count         int     `json:"num_bars"`
	BarArea       float64 `json:"bar_area"`
	TotalArea     float64 `json:"total_area"`
	ExcessPercent float64 `json:"excess_percentage"`
	Score         float64 `json:"efficiency_score"`
}

// Describe formats a combination as e.g. "4-#25".
func (c BarCombination) Describe() string {
	return fmt.Sprintf("%d-#%.0f", c.Count, c.Diameter)
}

// Arrangement is the resolved layering of a bar combination within the
// beam width.
type Arrangement struct {
	Layers       int      `json:"layers"`
	BarsPerLayer []int    `json:"bars_per_layer"`
	Diameter     float64  `json:"bar_diameter"`
	ClearSpacing float64  `json:"clear_spacing"`
	MinSpacing   float64  `json:"min_spacing_required"`
	OK           bool     `json:"spacing_ok"`
	Hints        []string `json:"hints,omitempty"`
}

// Describe formats an arrangement as "4-#25" for a single layer or
// "L1:3-#25/L2:2-#25" across layers.
func (a Arrangement) Describe() string {
	if len(a.BarsPerLayer) == 0 {
		return "-"
	}
	if a.Layers <= 1 {
		return fmt.Sprintf("%d-#%.0f", a.BarsPerLayer[0], a.Diameter)
	}
	parts := make([]string, 0, len(a.BarsPerLayer))
	for i, n := range a.BarsPerLayer {
		parts = append(parts, fmt.Sprintf("L%d:%d-#%.0f", i+1, n, a.Diameter))
	}
	return strings.Join(parts, "/")
}

// CapacityCheck verifies φMn against Mu for a provided steel area.
type CapacityCheck struct {
	MnKNm         float64 `json:"mn_knm"`
	PhiMnKNm      float64 `json:"phi_mn_knm"`
	MuKNm         float64 `json:"mu_knm"`
	Ratio         float64 `json:"capacity_ratio"`
	ExcessPercent float64 `json:"excess_capacity_percent"`
	Passes        bool    `json:"passes"`
}

// StrainCheck verifies that the tension steel yields at ultimate.
type StrainCheck struct {
	StressBlock float64 `json:"a"`
	NeutralAxis float64 `json:"c"`
	EpsilonS    float64 `json:"eps_s"`
	EpsilonY    float64 `json:"eps_y"`
	SteelStress float64 `json:"fs"`
	Yields      bool    `json:"steel_yields"`
}

// DuctilityCheck verifies the curvature ductility index and the steel
// ratio against the balanced ratio.
type DuctilityCheck struct {
	Index       float64 `json:"ductility_index"`
	MinIndex    float64 `json:"min_ductility_index"`
	RhoRatio    float64 `json:"rho_ratio"`
	MaxRhoRatio float64 `json:"max_rho_ratio"`
	Passes      bool    `json:"passes"`
}

// SinglyReinforcedDesign is the variant payload for tension-only steel.
type SinglyReinforcedDesign struct {
	Rho             float64 `json:"rho"`
	TheoreticalArea float64 `json:"theoretical_area"`
}

// DoublyReinforcedDesign is the variant payload when compression steel
// is required to supplement the ductile singly-reinforced maximum.
type DoublyReinforcedDesign struct {
	As1              float64 `json:"as1"`
	As2              float64 `json:"as2"`
	AsTotal          float64 `json:"as_total"`
	AscRequired      float64 `json:"asc_required"`
	AscProvided      float64 `json:"asc_provided"`
	Mn1KNm           float64 `json:"mn1_knm"`
	Mn2KNm           float64 `json:"mn2_knm"`
	MnTotalKNm       float64 `json:"mn_total_knm"`
	DPrime           float64 `json:"d_prime"`
	StressBlock      float64 `json:"a1"`
	NeutralAxis      float64 `json:"c1"`
	CompStrain       float64 `json:"eps_sc"`
	CompStress       float64 `json:"fsc"`
	CompYields       bool    `json:"compression_yields"`
	SinglySufficient bool    `json:"singly_sufficient"`
}

// Record is the design result for one section/location. It is created
// once by the flexural engine and read-only thereafter.
type Record struct {
	Section  string  `json:"section"`
	Location string  `json:"location"`
	MuKNm    float64 `json:"moment_knm"`

	EffectiveDepth float64 `json:"effective_depth"`
	NeutralAxis    float64 `json:"neutral_axis_depth"`
	SteelStrain    float64 `json:"strain_in_steel"`
	SteelYields    bool    `json:"steel_yields"`

	RhoMin      float64 `json:"rho_min"`
	RhoMax      float64 `json:"rho_max"`
	RhoBalanced float64 `json:"rho_balanced"`

	MinArea      float64 `json:"minimum_area"`
	RequiredArea float64 `json:"required_area"`

	Kind   Kind                    `json:"design_type"`
	Singly *SinglyReinforcedDesign `json:"singly,omitempty"`
	Doubly *DoublyReinforcedDesign `json:"doubly,omitempty"`

	Combinations []BarCombination `json:"bar_combinations,omitempty"`
	Bars         *BarCombination  `json:"recommended_bars,omitempty"`
	Arrangement  *Arrangement     `json:"final_arrangement,omitempty"`

	Capacity  *CapacityCheck  `json:"capacity_check,omitempty"`
	Strain    *StrainCheck    `json:"strain_check,omitempty"`
	Ductility *DuctilityCheck `json:"ductility_check,omitempty"`

	Status Status `json:"design_status"`

	DuctileControlling bool    `json:"ductile_controlling,omitempty"`
	DuctileRequirement float64 `json:"ductile_requirement,omitempty"`

	Note  string `json:"note,omitempty"`
	Error string `json:"error,omitempty"`
}

// BarDescription formats the chosen reinforcement of the record,
// preferring the resolved arrangement over the bare combination.
func (r *Record) BarDescription() string {
	if r == nil {
		return "-"
	}
	if r.Arrangement != nil && r.Arrangement.OK {
		return r.Arrangement.Describe()
	}
	if r.Bars != nil {
		return r.Bars.Describe()
	}
	return "-"
}

// DuctileRequirements are the seismic minimum steel floors computed per
// beam for special moment frames.
type DuctileRequirements struct {
	MaxZoneSteel    float64 `json:"max_ast_all_zones"`
	MaxTopSteel     float64 `json:"max_top_steel"`
	Ast25Percent    float64 `json:"ast_25_percent"`
	Ast50PercentTop float64 `json:"ast_50_percent_top"`
	BottomEnds      float64 `json:"bottom_left_right"`
	TopEnds         float64 `json:"top_left_right"`
	BottomMid       float64 `json:"bottom_mid"`
	TopMid          float64 `json:"top_mid"`
}

// For returns the governing ductile floor for a section/location.
func (d DuctileRequirements) For(section, location string) float64 {
	switch {
	case section == beamdata.SectionMid:
		if location == beamdata.LocationBottom {
			return d.BottomMid
		}
		return d.TopMid
	case location == beamdata.LocationBottom:
		return d.BottomEnds
	default:
		return d.TopEnds
	}
}

// BeamDesign is the flexural output for a whole beam: a record per
// section and location, plus the seismic floors when they apply.
type BeamDesign struct {
	Dimensions beamdata.Dimensions           `json:"dimensions"`
	FrameType  string                        `json:"frame_type"`
	Sections   map[string]map[string]*Record `json:"sections"`
	Ductile    *DuctileRequirements          `json:"ductile_requirements,omitempty"`
}

// Record returns the design record at a section/location, or nil.
func (bd *BeamDesign) Record(section, location string) *Record {
	if bd == nil {
		return nil
	}
	if locs, ok := bd.Sections[section]; ok {
		return locs[location]
	}
	return nil
}

// MainBarDia reports the chosen main bar diameters at a section. Zero is
// returned for a location with no selected bars.
func (bd *BeamDesign) MainBarDia(section string) (top, bottom float64) {
	if r := bd.Record(section, beamdata.LocationTop); r != nil && r.Bars != nil {
		top = r.Bars.Diameter
	}
	if r := bd.Record(section, beamdata.LocationBottom); r != nil && r.Bars != nil {
		bottom = r.Bars.Diameter
	}
	return top, bottom
}

// SteelArea reports the provided steel areas at a section. Zero is
// returned for a location with no selected bars.
func (bd *BeamDesign) SteelArea(section string) (top, bottom float64) {
	if r := bd.Record(section, beamdata.LocationTop); r != nil && r.Bars != nil {
		top = r.Bars.TotalArea
	}
	if r := bd.Record(section, beamdata.LocationBottom); r != nil && r.Bars != nil {
		bottom = r.Bars.TotalArea
	}
	return top, bottom
}
