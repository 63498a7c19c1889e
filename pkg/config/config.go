// Package config layers flags, DICESIM_* environment variables and defaults.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"dicesim/pkg/dice"
)

// Configuration keys. Flags use the same names.
const (
	KeyDice          = "dice"
	KeySides         = "sides"
	KeyTrials        = "trials"
	KeySeed          = "seed"
	KeyFormat        = "format"
	KeyLogLevel      = "log-level"
	KeyInterpret     = "interpret"
	KeyAPIKey        = "openai-api-key"
	KeyBaseURL       = "openai-base-url"
	KeyModel         = "model-name"
	KeyWSURL         = "onebot-ws-url"
	KeyAccessToken   = "onebot-access-token"
	KeyBotMaxTrials  = "bot-max-trials"
	KeyBotTrials     = "bot-default-trials"
	envPrefix        = "DICESIM"
	defaultBaseURL   = "https://api.deepseek.com"
	defaultModelName = "deepseek-chat"
)

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// ErrInvalidConfig is returned for values no command can work with.
var ErrInvalidConfig = errors.New("invalid configuration")

// AI configures the optional interpretation client.
type AI struct {
	APIKey  string
	BaseURL string
	Model   string
}

// Bot configures the OneBot chat mode.
type Bot struct {
	WSURL         string
	AccessToken   string
	MaxTrials     int64
	DefaultTrials int64
}

// Config is the resolved configuration of one invocation.
type Config struct {
	Params    dice.Params
	// ParamsSet is false when none of dice, sides or trials was supplied.
	ParamsSet bool
	Seed      int64
	SeedSet   bool
	Format    string
	LogLevel  logrus.Level
	Interpret bool
	AI        AI
	Bot       Bot
}

// LoadDotEnv loads path into the process environment. A missing file is not an error.
func LoadDotEnv(path string) {
	if err := godotenv.Load(path); err != nil {
		logrus.Debugf("Error loading %s file, relying on system environment variables", path)
	}
}

// New returns a viper instance with defaults and environment bindings.
func New() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault(KeyFormat, FormatText)
	v.SetDefault(KeyLogLevel, logrus.InfoLevel.String())
	v.SetDefault(KeyBaseURL, defaultBaseURL)
	v.SetDefault(KeyModel, defaultModelName)
	v.SetDefault(KeyBotMaxTrials, 1_000_000)
	v.SetDefault(KeyBotTrials, 10_000)

	// Names used by existing .env files.
	_ = v.BindEnv(KeyAPIKey, "DICESIM_OPENAI_API_KEY", "OPENAI_API_KEY")
	_ = v.BindEnv(KeyBaseURL, "DICESIM_OPENAI_BASE_URL", "OPENAI_BASE_URL")
	_ = v.BindEnv(KeyModel, "DICESIM_MODEL_NAME", "MODEL_NAME")
	_ = v.BindEnv(KeyWSURL, "DICESIM_ONEBOT_WS_URL", "ONEBOT_WS_URL")
	_ = v.BindEnv(KeyAccessToken, "DICESIM_ONEBOT_ACCESS_TOKEN", "ONEBOT_ACCESS_TOKEN")
	return v
}

// Bind attaches a flag set so explicitly set flags win over the environment.
func Bind(v *viper.Viper, flags *pflag.FlagSet) error {
	if err := v.BindPFlags(flags); err != nil {
		return fmt.Errorf("bind flags: %w", err)
	}
	return nil
}

// Load resolves v into a Config. Simulation bounds are not checked here; see
// dice.Params.Validate.
func Load(v *viper.Viper) (*Config, error) {
	level, err := logrus.ParseLevel(v.GetString(KeyLogLevel))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	format := strings.ToLower(v.GetString(KeyFormat))
	if format != FormatText && format != FormatJSON {
		return nil, fmt.Errorf("%w: unknown format %q (want %s or %s)", ErrInvalidConfig, format, FormatText, FormatJSON)
	}

	cfg := &Config{
		Params: dice.Params{
			Dice:   v.GetInt(KeyDice),
			Sides:  v.GetInt(KeySides),
			Trials: v.GetInt64(KeyTrials),
		},
		ParamsSet: v.IsSet(KeyDice) || v.IsSet(KeySides) || v.IsSet(KeyTrials),
		Seed:      v.GetInt64(KeySeed),
		SeedSet:   v.IsSet(KeySeed),
		Format:    format,
		LogLevel:  level,
		Interpret: v.GetBool(KeyInterpret),
		AI: AI{
			APIKey:  v.GetString(KeyAPIKey),
			BaseURL: v.GetString(KeyBaseURL),
			Model:   v.GetString(KeyModel),
		},
		Bot: Bot{
			WSURL:         v.GetString(KeyWSURL),
			AccessToken:   v.GetString(KeyAccessToken),
			MaxTrials:     v.GetInt64(KeyBotMaxTrials),
			DefaultTrials: v.GetInt64(KeyBotTrials),
		},
	}
	if cfg.Bot.MaxTrials < dice.MinTrials {
		return nil, fmt.Errorf("%w: %s must be at least %d", ErrInvalidConfig, KeyBotMaxTrials, dice.MinTrials)
	}
	if cfg.Bot.DefaultTrials < dice.MinTrials || cfg.Bot.DefaultTrials > cfg.Bot.MaxTrials {
		return nil, fmt.Errorf("%w: %s must be between %d and %d", ErrInvalidConfig, KeyBotTrials, dice.MinTrials, cfg.Bot.MaxTrials)
	}
	return cfg, nil
}
