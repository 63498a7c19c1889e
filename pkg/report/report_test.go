package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dicesim/pkg/dice"
	"dicesim/pkg/simulation"
)

func runTwoD6(t *testing.T) *simulation.Result {
	t.Helper()
	res, err := simulation.RunSeeded(dice.Params{Dice: 2, Sides: 6, Trials: 36000}, 3)
	require.NoError(t, err)
	return res
}

func TestBar(t *testing.T) {
	assert.Equal(t, strings.Repeat("#", 30), Bar(100, 100))
	assert.Equal(t, strings.Repeat("#", 15), Bar(50, 100))
	assert.Equal(t, strings.Repeat("#", 33), Bar(110, 100))
	assert.Equal(t, "", Bar(0, 100))
	assert.Equal(t, "", Bar(10, 0))
}

func TestRows(t *testing.T) {
	res := runTwoD6(t)
	rows := Rows(res)
	require.Len(t, rows, 11)
	assert.Equal(t, 2, rows[0].Sum)
	assert.Equal(t, 12, rows[10].Sum)
	assert.InDelta(t, 6000.0, rows[5].Expected, 1e-6)

	var total int64
	for _, row := range rows {
		total += row.Observed
	}
	assert.Equal(t, int64(36000), total)
}

func TestWriteText(t *testing.T) {
	res := runTwoD6(t)
	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, res, ""))

	out := buf.String()
	assert.Contains(t, out, "Simulation Results for 36000 trials of rolling 2d6 (seed 3)")
	assert.Contains(t, out, "Expected Count")
	assert.Contains(t, out, "Distribution Bar")
	assert.Contains(t, out, "6000.00")
	assert.Contains(t, out, "Degrees of Freedom: 10")
	assert.Contains(t, out, DefaultInterpretation)
}

func TestWriteText_CustomInterpretation(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, runTwoD6(t), "looks fair"))
	assert.Contains(t, buf.String(), "Interpretation: looks fair")
	assert.NotContains(t, buf.String(), DefaultInterpretation)
}

func TestWriteJSON(t *testing.T) {
	res := runTwoD6(t)
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, res, ""))

	var decoded struct {
		Params     dice.Params `json:"params"`
		Seed       int64       `json:"seed"`
		Range      dice.Range  `json:"range"`
		ChiSquared struct {
			Statistic        float64 `json:"statistic"`
			DegreesOfFreedom int     `json:"degrees_of_freedom"`
		} `json:"chi_squared"`
		Rows []Row `json:"rows"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, res.Params, decoded.Params)
	assert.Equal(t, int64(3), decoded.Seed)
	assert.Equal(t, dice.Range{Min: 2, Max: 12}, decoded.Range)
	assert.Equal(t, 10, decoded.ChiSquared.DegreesOfFreedom)
	assert.InDelta(t, res.Fit.Statistic, decoded.ChiSquared.Statistic, 1e-9)
	assert.Len(t, decoded.Rows, 11)
	assert.NotContains(t, buf.String(), "interpretation")
}

func TestCompact(t *testing.T) {
	out := Compact(runTwoD6(t))
	lines := strings.Split(out, "\n")
	assert.Equal(t, "2d6 x 36000 (seed 3)", lines[0])
	assert.Len(t, lines, 13)
	assert.True(t, strings.HasPrefix(lines[12], "χ² = "))
	assert.True(t, strings.HasSuffix(lines[12], "df = 10"))
}

func TestCompact_LargeRangeOmitsTable(t *testing.T) {
	res, err := simulation.RunSeeded(dice.Params{Dice: 5, Sides: 20, Trials: 100}, 1)
	require.NoError(t, err)
	out := Compact(res)
	assert.Contains(t, out, "(96 sums, table omitted)")
	assert.Len(t, strings.Split(out, "\n"), 3)
}
