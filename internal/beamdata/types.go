// Package beamdata defines the structural input record consumed by the
// design engines: the floor → beam-group → beam hierarchy together with
// the global material, reinforcement and design settings blocks.
//
// The package only models and loads the record. Validation of the values
// themselves happens when the immutable design configuration is built;
// partially missing beams are tolerated and surfaced as flagged records
// by the engines, never as a fatal load error.
package beamdata

// Section names in span order.
const (
	SectionLeft  = "left"
	SectionMid   = "mid"
	SectionRight = "right"
)

// Locations of main reinforcement in a section.
const (
	LocationBottom = "bottom"
	LocationTop    = "top"
)

// Sections lists the design stations of a beam in span order.
var Sections = []string{SectionLeft, SectionMid, SectionRight}

// Locations lists the reinforcement faces designed per section.
var Locations = []string{LocationBottom, LocationTop}

// Document is the complete beam-data input record.
type Document struct {
	MaterialProperties      MaterialProperties      `json:"material_properties" yaml:"material_properties"`
	ReinforcementParameters ReinforcementParameters `json:"reinforcement_parameters" yaml:"reinforcement_parameters"`
	DesignSettings          DesignSettings          `json:"design_settings" yaml:"design_settings"`
	FloorGroups             map[string]BeamGroups   `json:"floor_groups" yaml:"floor_groups"`
}

// BeamGroups maps a beam-group name to its beams.
type BeamGroups map[string]Beams

// Beams maps a beam name to its input data.
type Beams map[string]Beam

// Beam carries the geometry and section forces of a single beam.
type Beam struct {
	Dimensions Dimensions               `json:"dimensions" yaml:"dimensions"`
	Forces     map[string]SectionForces `json:"forces" yaml:"forces"`
}

// ForcesAt returns the forces at a section, defaulting missing entries
// to zeros rather than failing.
func (b Beam) ForcesAt(section string) SectionForces {
	if f, ok := b.Forces[section]; ok {
		return f
	}
	return SectionForces{}
}

// Dimensions holds beam geometry in mm. Base is the width b, Height the
// total depth h and Length the span L.
type Dimensions struct {
	Base   float64 `json:"base" yaml:"base"`
	Height float64 `json:"height" yaml:"height"`
	Length float64 `json:"length" yaml:"length"`
}

// Valid reports whether all dimensions are positive.
func (d Dimensions) Valid() bool {
	return d.Base > 0 && d.Height > 0 && d.Length > 0
}

// SectionForces holds the governing factored section forces.
// Moments are kN·m, shear and axial force kN, torsion kN·m.
type SectionForces struct {
	MaxMomentTop    float64 `json:"max_moment_top" yaml:"max_moment_top"`
	MaxMomentBottom float64 `json:"max_moment_bottom" yaml:"max_moment_bottom"`
	MaxShear        float64 `json:"max_shear" yaml:"max_shear"`
	MaxAxial        float64 `json:"max_axial" yaml:"max_axial"`
	MaxTorsion      float64 `json:"max_torsion" yaml:"max_torsion"`
}

// MaterialProperties is the global material block of the input record.
type MaterialProperties struct {
	ConcreteGrade    string  `json:"concrete_grade" yaml:"concrete_grade"`
	MainSteelFy      float64 `json:"main_steel_rebar_fy" yaml:"main_steel_rebar_fy"`
	ShearSteelFy     float64 `json:"shear_steel_fy" yaml:"shear_steel_fy"`
	ConcreteCover    float64 `json:"concrete_cover" yaml:"concrete_cover"`
	MaxAggregateSize float64 `json:"max_aggregate_size" yaml:"max_aggregate_size"`
}

// ReinforcementParameters filters the standard bar set and bounds the
// stirrup spacing search.
type ReinforcementParameters struct {
	MainBarRange      []float64 `json:"main_bar_range" yaml:"main_bar_range"`
	StirrupBarRange   []float64 `json:"stirrup_bar_range" yaml:"stirrup_bar_range"`
	MinStirrupSpacing float64   `json:"min_stirrup_spacing" yaml:"min_stirrup_spacing"`
	MaxStirrupSpacing float64   `json:"max_stirrup_spacing" yaml:"max_stirrup_spacing"`
}

// DesignSettings carries run-wide design switches.
type DesignSettings struct {
	FrameType              string  `json:"frame_type" yaml:"frame_type"`
	ReductionFactorFlexure float64 `json:"reduction_factor_flexure" yaml:"reduction_factor_flexure"`
	ReductionFactorShear   float64 `json:"reduction_factor_shear" yaml:"reduction_factor_shear"`
	ReductionFactorTorsion float64 `json:"reduction_factor_torsion" yaml:"reduction_factor_torsion"`
	LightweightFactorShear float64 `json:"lightweight_factor_shear" yaml:"lightweight_factor_shear"`
	StirrupSpacingRoundOff float64 `json:"stirrup_spacing_round_off" yaml:"stirrup_spacing_round_off"`
	ConsiderTorsionDesign  *bool   `json:"consider_torsion_design" yaml:"consider_torsion_design"`
}
