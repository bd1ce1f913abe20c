package report

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexiusacademia/gorcd/internal/beamdata"
	"github.com/alexiusacademia/gorcd/internal/config"
	"github.com/alexiusacademia/gorcd/internal/designer"
)

func testResults(t *testing.T) *designer.Results {
	t.Helper()
	doc := &beamdata.Document{
		MaterialProperties: beamdata.MaterialProperties{
			ConcreteGrade: "C28",
			MainSteelFy:   415,
			ShearSteelFy:  275,
			ConcreteCover: 40,
		},
		ReinforcementParameters: beamdata.ReinforcementParameters{
			MainBarRange:    []float64{16, 32},
			StirrupBarRange: []float64{10, 12},
		},
		DesignSettings: beamdata.DesignSettings{FrameType: "ordinary"},
		FloorGroups: map[string]beamdata.BeamGroups{
			"2nd_floor": {
				"girders": {
					"B-2": {
						Dimensions: beamdata.Dimensions{Base: 400, Height: 800, Length: 8000},
						Forces: map[string]beamdata.SectionForces{
							"left": {MaxMomentTop: 300, MaxShear: 250, MaxTorsion: 200},
						},
					},
					"B-1": {
						Dimensions: beamdata.Dimensions{Base: 300, Height: 500, Length: 6000},
						Forces: map[string]beamdata.SectionForces{
							"left": {MaxMomentTop: 220, MaxShear: 150},
							"mid":  {MaxMomentBottom: 180, MaxShear: 60},
						},
					},
				},
			},
		},
	}
	logger := log.New(io.Discard)
	runner := designer.NewRunner(config.New(doc, logger), logger, 1)
	res, err := runner.Run(context.Background(), doc)
	require.NoError(t, err)
	return res
}

func TestRowsSortedAndComplete(t *testing.T) {
	res := testResults(t)
	rows := Rows(res)
	require.Len(t, rows, 2)

	// Beams come out name-sorted regardless of map order.
	assert.Equal(t, "B-1", rows[0].Beam)
	assert.Equal(t, "B-2", rows[1].Beam)

	assert.Equal(t, "300x500", rows[0].Size)
	assert.Equal(t, "400x800", rows[1].Size)

	// Every zone carries a bar description, minimum steel included.
	for _, cell := range []string{
		rows[0].LeftTop, rows[0].LeftBottom, rows[0].MidTop,
		rows[0].MidBottom, rows[0].RightTop, rows[0].RightBottom,
	} {
		assert.NotEmpty(t, cell)
		assert.NotEqual(t, "-", cell)
	}
	assert.Contains(t, rows[0].StirrupsLeft, "leg")
	assert.Equal(t, "PASS", rows[0].Status)

	// The deep beam under 200 kN·m of torsion reports side-face steel.
	assert.Contains(t, rows[1].SideFace, "mm²/face")
}

func TestWriteCSV(t *testing.T) {
	res := testResults(t)
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, Rows(res)))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "Floor")
	assert.Contains(t, lines[1], "B-1")
	assert.Contains(t, lines[2], "B-2")
}

func TestWriteXLSX(t *testing.T) {
	res := testResults(t)
	path := filepath.Join(t.TempDir(), "schedule.xlsx")
	require.NoError(t, WriteXLSX(path, Rows(res)))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestWritePDF(t *testing.T) {
	res := testResults(t)
	path := filepath.Join(t.TempDir(), "schedule.pdf")
	require.NoError(t, WritePDF(path, Rows(res)))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(raw, []byte("%PDF")))
}
