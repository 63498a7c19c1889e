// Package report renders a simulation result for people and for machines.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"

	"dicesim/pkg/dice"
	"dicesim/pkg/fit"
	"dicesim/pkg/simulation"
)

// BarWidth is the bar length of the most likely sum.
const BarWidth = 30

// DefaultInterpretation explains the statistic when no other text is supplied.
const DefaultInterpretation = "A smaller Chi-Squared value indicates a better fit between " +
	"the observed results and the theoretical probabilities. As the number of " +
	"trials increases, this value should approach the degrees of freedom."

// Bar draws observed as '#' scaled so that maxExpected maps to BarWidth.
func Bar(observed int64, maxExpected float64) string {
	if maxExpected <= 0 || observed <= 0 {
		return ""
	}
	return strings.Repeat("#", int(float64(observed)/maxExpected*BarWidth))
}

// Row is one sum of the report.
type Row struct {
	Sum      int     `json:"sum"`
	Expected float64 `json:"expected"`
	Observed int64   `json:"observed"`
}

// Rows lists every sum of res in ascending order.
func Rows(res *simulation.Result) []Row {
	r := res.Range()
	rows := make([]Row, 0, r.Len())
	for sum := r.Min; sum <= r.Max; sum++ {
		rows = append(rows, Row{Sum: sum, Expected: res.Expected.At(sum), Observed: res.Observed.At(sum)})
	}
	return rows
}

// WriteText prints the full table report. An empty interpretation falls back to
// DefaultInterpretation.
func WriteText(w io.Writer, res *simulation.Result, interpretation string) error {
	if interpretation == "" {
		interpretation = DefaultInterpretation
	}
	p := res.Params
	if _, err := fmt.Fprintf(w, "\n--- Simulation Results for %d trials of rolling %dd%d (seed %d) ---\n",
		p.Trials, p.Dice, p.Sides, res.Seed); err != nil {
		return err
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Sum", "Expected Count", "Observed Count", "Distribution Bar"})
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	maxExpected := res.Expected.Max()
	for _, row := range Rows(res) {
		table.Append([]string{
			strconv.Itoa(row.Sum),
			strconv.FormatFloat(row.Expected, 'f', 2, 64),
			strconv.FormatInt(row.Observed, 10),
			Bar(row.Observed, maxExpected),
		})
	}
	table.Render()

	_, err := fmt.Fprintf(w, "Statistical Analysis:\n"+
		"  - Chi-Squared (χ²) Statistic: %.4f\n"+
		"  - Degrees of Freedom: %d\n"+
		"\nInterpretation: %s\n",
		res.Fit.Statistic, res.Fit.DegreesOfFreedom, interpretation)
	return err
}

type jsonReport struct {
	Params         dice.Params `json:"params"`
	Seed           int64       `json:"seed"`
	Range          dice.Range  `json:"range"`
	ChiSquared     fit.Result  `json:"chi_squared"`
	Rows           []Row       `json:"rows"`
	Interpretation string      `json:"interpretation,omitempty"`
}

// WriteJSON encodes res as indented JSON.
func WriteJSON(w io.Writer, res *simulation.Result, interpretation string) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(jsonReport{
		Params:         res.Params,
		Seed:           res.Seed,
		Range:          res.Range(),
		ChiSquared:     res.Fit,
		Rows:           Rows(res),
		Interpretation: interpretation,
	})
}

// compactRows is the most sums Compact will list one per line.
const compactRows = 40

// Compact is a short multi-line summary sized for chat messages.
func Compact(res *simulation.Result) string {
	var sb strings.Builder
	p := res.Params
	sb.WriteString(fmt.Sprintf("%dd%d x %d (seed %d)\n", p.Dice, p.Sides, p.Trials, res.Seed))
	if n := res.Range().Len(); n > compactRows {
		sb.WriteString(fmt.Sprintf("(%d sums, table omitted)\n", n))
	} else {
		maxExpected := res.Expected.Max()
		for _, row := range Rows(res) {
			sb.WriteString(fmt.Sprintf("%3d | %10.1f | %8d %s\n", row.Sum, row.Expected, row.Observed,
				Bar(row.Observed, maxExpected)))
		}
	}
	sb.WriteString(fmt.Sprintf("χ² = %.4f, df = %d", res.Fit.Statistic, res.Fit.DegreesOfFreedom))
	return sb.String()
}
