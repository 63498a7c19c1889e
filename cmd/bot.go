package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"dicesim/pkg/bot"
	"dicesim/pkg/config"
	"dicesim/pkg/random"
)

func newBotCommand() *cobra.Command {
	botCmd := &cobra.Command{
		Use:   "bot",
		Short: "Answer .sim commands in OneBot group chats",
		Args:  cobra.NoArgs,
		RunE:  runBot,
	}
	flags := botCmd.Flags()
	flags.String(config.KeyWSURL, "", "OneBot websocket URL (env ONEBOT_WS_URL)")
	flags.String(config.KeyAccessToken, "", "OneBot access token (env ONEBOT_ACCESS_TOKEN)")
	flags.Int64(config.KeyBotMaxTrials, 1_000_000, "Largest trial count accepted per .sim")
	flags.Int64(config.KeyBotTrials, 10_000, "Trial count used when .sim omits it")
	return botCmd
}

func runBot(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if cfg.Bot.WSURL == "" {
		return fmt.Errorf("%w: ONEBOT_WS_URL is not set", config.ErrInvalidConfig)
	}

	fmt.Fprintln(cmd.OutOrStdout(), "========================================")
	fmt.Fprintln(cmd.OutOrStdout(), "      Dice Simulator - OneBot Mode      ")
	fmt.Fprintln(cmd.OutOrStdout(), "========================================")

	client := bot.New(bot.Config{WSURL: cfg.Bot.WSURL, AccessToken: cfg.Bot.AccessToken})
	bot.Attach(client, &bot.Commands{
		DefaultTrials: cfg.Bot.DefaultTrials,
		MaxTrials:     cfg.Bot.MaxTrials,
		NewSeed:       random.NewSeed,
	})

	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := client.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
