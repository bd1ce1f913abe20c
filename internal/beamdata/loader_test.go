package beamdata

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const jsonInput = `{
  "material_properties": {
    "concrete_grade": "C28",
    "main_steel_rebar_fy": 415,
    "shear_steel_fy": 275,
    "concrete_cover": 40,
    "max_aggregate_size": 25
  },
  "reinforcement_parameters": {
    "main_bar_range": [16, 32],
    "stirrup_bar_range": [10, 12],
    "min_stirrup_spacing": 75,
    "max_stirrup_spacing": 300
  },
  "design_settings": {
    "frame_type": "special",
    "stirrup_spacing_round_off": 25,
    "consider_torsion_design": false
  },
  "floor_groups": {
    "2nd_floor": {
      "girders": {
        "B-1": {
          "dimensions": {"base": 300, "height": 500, "length": 6000},
          "forces": {
            "left": {"max_moment_top": 220.5, "max_shear": 150, "max_torsion": 12}
          }
        }
      }
    }
  }
}`

const yamlInput = `material_properties:
  concrete_grade: C28
  main_steel_rebar_fy: 415
design_settings:
  frame_type: ordinary
floor_groups:
  roof:
    beams:
      RB-1:
        dimensions: {base: 250, height: 400, length: 4000}
        forces:
          mid: {max_moment_bottom: 95}
`

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadJSON(t *testing.T) {
	doc, err := Load(writeTemp(t, "beams.json", jsonInput))
	require.NoError(t, err)

	assert.Equal(t, "C28", doc.MaterialProperties.ConcreteGrade)
	assert.Equal(t, "special", doc.DesignSettings.FrameType)
	require.NotNil(t, doc.DesignSettings.ConsiderTorsionDesign)
	assert.False(t, *doc.DesignSettings.ConsiderTorsionDesign)

	beam := doc.FloorGroups["2nd_floor"]["girders"]["B-1"]
	assert.True(t, beam.Dimensions.Valid())
	assert.Equal(t, 220.5, beam.ForcesAt(SectionLeft).MaxMomentTop)

	// Sections without forces default to zeros.
	assert.Zero(t, beam.ForcesAt(SectionMid).MaxShear)
}

func TestLoadYAML(t *testing.T) {
	doc, err := Load(writeTemp(t, "beams.yaml", yamlInput))
	require.NoError(t, err)

	beam := doc.FloorGroups["roof"]["beams"]["RB-1"]
	assert.Equal(t, 250.0, beam.Dimensions.Base)
	assert.Equal(t, 95.0, beam.ForcesAt(SectionMid).MaxMomentBottom)
	// Omitted torsion setting stays unset for the config layer to default.
	assert.Nil(t, doc.DesignSettings.ConsiderTorsionDesign)
}

func TestLoadRejectsEmptyHierarchy(t *testing.T) {
	_, err := Load(writeTemp(t, "empty.json", `{"floor_groups": {}}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "floor_groups")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	assert.Error(t, err)
}

func TestLoadMalformedJSON(t *testing.T) {
	_, err := Load(writeTemp(t, "broken.json", `{"floor_groups":`))
	assert.Error(t, err)
}

func TestDimensionsValid(t *testing.T) {
	assert.True(t, Dimensions{Base: 300, Height: 500, Length: 6000}.Valid())
	assert.False(t, Dimensions{Base: 0, Height: 500, Length: 6000}.Valid())
	assert.False(t, Dimensions{Base: 300, Height: -1, Length: 6000}.Valid())
}

func TestInputErrorMessage(t *testing.T) {
	err := &InputError{Section: "left", Field: "dimensions", Reason: "must be positive"}
	assert.Contains(t, err.Error(), "left")
	assert.Contains(t, err.Error(), "dimensions")
}

func TestInfeasibleErrorMessage(t *testing.T) {
	err := &InfeasibleError{Detail: "spacing unresolved", Hints: []string{"increase beam width"}}
	assert.Contains(t, err.Error(), "increase beam width")

	bare := &InfeasibleError{Detail: "spacing unresolved"}
	assert.Equal(t, "spacing unresolved", bare.Error())
}
