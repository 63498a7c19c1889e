package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"dicesim/pkg/ai"
	"dicesim/pkg/config"
	"dicesim/pkg/dice"
	"dicesim/pkg/random"
	"dicesim/pkg/report"
	"dicesim/pkg/simulation"
)

const interpretTimeout = time.Minute

func newRunCommand() *cobra.Command {
	runCmd := &cobra.Command{
		Use:   "run [NdM]",
		Short: "Run one simulation and print the goodness-of-fit report",
		Long: "Run one simulation and print the goodness-of-fit report.\n\n" +
			"Without an expression or --dice/--sides/--trials the parameters are read interactively.",
		Args: cobra.MaximumNArgs(1),
		RunE: runSimulation,
	}
	flags := runCmd.Flags()
	flags.Int(config.KeyDice, 2, "Number of dice to roll (1-10)")
	flags.Int(config.KeySides, 6, "Number of sides on each die (2-100)")
	flags.Int64(config.KeyTrials, 1_000_000, "Total number of trials")
	flags.Int64(config.KeySeed, 0, "Seed of the random source (default: drawn from crypto/rand)")
	flags.String(config.KeyFormat, config.FormatText, "Output format: text or json")
	flags.Bool(config.KeyInterpret, false, "Ask an OpenAI-compatible model to interpret the result")
	return runCmd
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	params := cfg.Params
	switch {
	case len(args) == 1:
		expr, err := dice.ParseExpression(args[0])
		if err != nil {
			return err
		}
		if expr.Modifier != 0 {
			return fmt.Errorf("%w: modifiers are not simulated", dice.ErrInvalidExpression)
		}
		params.Dice, params.Sides = expr.Count, expr.Sides
	case !cfg.ParamsSet:
		if params, err = promptParams(cmd.InOrStdin(), cmd.OutOrStdout()); err != nil {
			return err
		}
	}
	if err := params.Validate(); err != nil {
		return err
	}

	seed := cfg.Seed
	if !cfg.SeedSet {
		if seed, err = random.NewSeed(); err != nil {
			return err
		}
	}

	res, err := simulation.RunSeeded(params, seed)
	if err != nil {
		return err
	}

	interpretation := ""
	if cfg.Interpret {
		interpretation = interpret(cmd.Context(), cfg.AI, res)
	}

	out := cmd.OutOrStdout()
	if cfg.Format == config.FormatJSON {
		return report.WriteJSON(out, res, interpretation)
	}
	return report.WriteText(out, res, interpretation)
}

// interpret returns the model's reading of res, or "" when it is unavailable.
func interpret(ctx context.Context, cfg config.AI, res *simulation.Result) string {
	client, err := ai.New(cfg)
	if err != nil {
		logrus.Warnf("Skipping AI interpretation: %v", err)
		return ""
	}
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, interpretTimeout)
	defer cancel()

	text, err := client.Interpret(ctx, res)
	if err != nil {
		logrus.Warnf("AI interpretation failed, using the default text: %v", err)
		return ""
	}
	return text
}
