package cmd

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"dicesim/pkg/config"
)

const defaultEnvFile = ".env"

// NewRootCommand builds the dicesim command tree.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "dicesim",
		Short:         "Compare simulated dice sums with their exact distribution",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().String(config.KeyLogLevel, logrus.InfoLevel.String(), "Log verbosity level")
	rootCmd.PersistentFlags().String("env-file", defaultEnvFile, "Optional .env file loaded before reading the environment")

	rootCmd.AddCommand(newRunCommand(), newBotCommand())
	return rootCmd
}

// Execute runs the command line.
func Execute() error {
	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		logrus.Error(err)
		return err
	}
	return nil
}

// loadConfig resolves the configuration of cmd and applies the log level.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	envFile, err := cmd.Flags().GetString("env-file")
	if err != nil {
		return nil, err
	}
	config.LoadDotEnv(envFile)

	v := config.New()
	if err := config.Bind(v, cmd.Flags()); err != nil {
		return nil, err
	}
	cfg, err := config.Load(v)
	if err != nil {
		return nil, err
	}
	logrus.SetLevel(cfg.LogLevel)
	return cfg, nil
}
