package cmd

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"dicesim/pkg/dice"
)

// promptParams asks for each parameter until it is within bounds.
func promptParams(in io.Reader, out io.Writer) (dice.Params, error) {
	scanner := bufio.NewScanner(in)
	ask := func(label string, ok func(int64) bool) (int64, error) {
		for {
			fmt.Fprintf(out, "  - %s: ", label)
			if !scanner.Scan() {
				if err := scanner.Err(); err != nil {
					return 0, fmt.Errorf("read %s: %w", label, err)
				}
				return 0, fmt.Errorf("read %s: %w", label, io.ErrUnexpectedEOF)
			}
			n, err := strconv.ParseInt(strings.TrimSpace(scanner.Text()), 10, 64)
			if err == nil && ok(n) {
				return n, nil
			}
		}
	}

	fmt.Fprintln(out, "Enter simulation parameters:")
	numDice, err := ask("Number of dice to roll (e.g., 2)", func(n int64) bool {
		return n >= dice.MinDice && n <= dice.MaxDice
	})
	if err != nil {
		return dice.Params{}, err
	}
	sides, err := ask("Number of sides on each die (e.g., 6)", func(n int64) bool {
		return n >= dice.MinSides && n <= dice.MaxSides
	})
	if err != nil {
		return dice.Params{}, err
	}
	trials, err := ask("Total number of trials (e.g., 1000000)", func(n int64) bool {
		return n >= dice.MinTrials
	})
	if err != nil {
		return dice.Params{}, err
	}
	return dice.Params{Dice: int(numDice), Sides: int(sides), Trials: trials}, nil
}
