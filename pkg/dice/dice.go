package dice

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ErrInvalidExpression is returned when a dice expression cannot be parsed.
var ErrInvalidExpression = errors.New("invalid dice expression")

// Source 均匀随机源，*rand.Rand 满足此接口
type Source interface {
	// Intn returns a uniform integer in [0, n).
	Intn(n int) int
}

var expressionRe = regexp.MustCompile(`^(\d*)d(\d+)(?:([+-])(\d+))?$`)

// Expression 解析后的骰子表达式 (XdY[+-Z])
type Expression struct {
	Count    int
	Sides    int
	Modifier int
}

// ParseExpression parses "XdY", "dY" or "XdY+Z"/"XdY-Z". It is case-insensitive and
// ignores surrounding whitespace. Only the syntax is checked here; bounds are left to
// the caller.
func ParseExpression(expression string) (Expression, error) {
	expression = strings.ToLower(strings.TrimSpace(expression))
	matches := expressionRe.FindStringSubmatch(expression)
	if matches == nil {
		return Expression{}, fmt.Errorf("%w: %q, use [count]d[sides] (e.g. d20, 1d20, 2d6)", ErrInvalidExpression, expression)
	}

	expr := Expression{Count: 1}
	var err error
	if matches[1] != "" {
		if expr.Count, err = strconv.Atoi(matches[1]); err != nil {
			return Expression{}, fmt.Errorf("%w: count %q", ErrInvalidExpression, matches[1])
		}
	}
	if expr.Sides, err = strconv.Atoi(matches[2]); err != nil {
		return Expression{}, fmt.Errorf("%w: sides %q", ErrInvalidExpression, matches[2])
	}
	if matches[4] != "" {
		if expr.Modifier, err = strconv.Atoi(matches[4]); err != nil {
			return Expression{}, fmt.Errorf("%w: modifier %q", ErrInvalidExpression, matches[4])
		}
		if matches[3] == "-" {
			expr.Modifier = -expr.Modifier
		}
	}
	return expr, nil
}

func (e Expression) String() string {
	s := fmt.Sprintf("%dd%d", e.Count, e.Sides)
	switch {
	case e.Modifier > 0:
		s += fmt.Sprintf("+%d", e.Modifier)
	case e.Modifier < 0:
		s += fmt.Sprintf("%d", e.Modifier)
	}
	return s
}

// RollResult 投掷结果
type RollResult struct {
	Expression string
	Total      int
	Details    []int
	Modifier   int
}

// maxRollDice caps a single ad-hoc roll.
const maxRollDice = 100

// Roll rolls one expression against src.
func Roll(src Source, expression string) (*RollResult, error) {
	expr, err := ParseExpression(expression)
	if err != nil {
		return nil, err
	}
	if expr.Count < 1 || expr.Count > maxRollDice {
		return nil, fmt.Errorf("%w: dice count must be between 1 and %d", ErrInvalidExpression, maxRollDice)
	}
	if expr.Sides < 1 {
		return nil, fmt.Errorf("%w: dice need at least one side", ErrInvalidExpression)
	}

	result := &RollResult{
		Expression: strings.ToLower(strings.TrimSpace(expression)),
		Details:    make([]int, 0, expr.Count),
		Modifier:   expr.Modifier,
	}
	total := 0
	for i := 0; i < expr.Count; i++ {
		val := Face(src, expr.Sides)
		result.Details = append(result.Details, val)
		total += val
	}
	result.Total = total + expr.Modifier
	return result, nil
}

// Face draws a single die face in [1, sides].
func Face(src Source, sides int) int {
	return src.Intn(sides) + 1
}

func (r *RollResult) String() string {
	parts := make([]string, len(r.Details))
	for i, d := range r.Details {
		parts[i] = strconv.Itoa(d)
	}
	s := fmt.Sprintf("🎲 %s: [%s]", r.Expression, strings.Join(parts, ", "))
	switch {
	case r.Modifier > 0:
		s += fmt.Sprintf(" + %d", r.Modifier)
	case r.Modifier < 0:
		s += fmt.Sprintf(" - %d", -r.Modifier)
	}
	return s + fmt.Sprintf(" = %d", r.Total)
}
