// Package config provides configuration loading and validation for the bot.
// Values come from a YAML file, overridden by BOT_* environment variables,
// on top of defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Destination names used in per-task notification routing.
const (
	DestinationGroup    = "group"
	DestinationPersonal = "personal"
)

// ErrConfiguration wraps any failure to load or validate the configuration.
var ErrConfiguration = errors.New("configuration error")

// Config defines the application configuration.
type Config struct {
	Timezone     string `mapstructure:"timezone"      validate:"required"`
	DefaultGroup string `mapstructure:"default_group" validate:"required"`

	Logger    LoggerConfig    `mapstructure:"logger"`
	Telegram  TelegramConfig  `mapstructure:"telegram"`
	Store     StoreConfig     `mapstructure:"store"`
	Bitcoin   BitcoinConfig   `mapstructure:"bitcoin"`
	Scheduler SchedulerConfig `mapstructure:"scheduler"`
	Messages  MessagesConfig  `mapstructure:"messages"`

	// Location is resolved from Timezone during loading.
	Location *time.Location `mapstructure:"-"`
}

// LoggerConfig controls log output.
type LoggerConfig struct {
	Level string `mapstructure:"level" validate:"oneof=debug info warn error"`
	JSON  bool   `mapstructure:"json"`
}

// TelegramConfig holds the transport credential and chat identities.
type TelegramConfig struct {
	Token          string `mapstructure:"token"            validate:"required"`
	AdminUserID    int64  `mapstructure:"admin_user_id"    validate:"required,gt=0"`
	GroupChatID    int64  `mapstructure:"group_chat_id"    validate:"required"`
	PersonalChatID int64  `mapstructure:"personal_chat_id" validate:"required"`
}

// StoreConfig locates the birthday file.
type StoreConfig struct {
	Path string `mapstructure:"path" validate:"required"`
}

// BitcoinConfig controls the price client and alert thresholds.
type BitcoinConfig struct {
	CoinGeckoAPIKey    string  `mapstructure:"coingecko_api_key"`
	ThresholdStep      float64 `mapstructure:"threshold_step"       validate:"gt=0"`
	ChangeAlertPercent float64 `mapstructure:"change_alert_percent" validate:"gt=0"`
}

// SchedulerConfig holds the scheduled notification tasks.
type SchedulerConfig struct {
	Tasks map[string]TaskConfig `mapstructure:"tasks" validate:"dive"`
}

// TaskConfig configures one scheduled task: its cron schedule (evaluated in
// the bot's timezone) and which chats its notifications go to.
type TaskConfig struct {
	Enabled      bool     `mapstructure:"enabled"`
	Schedule     string   `mapstructure:"schedule"`
	Destinations []string `mapstructure:"destinations" validate:"dive,oneof=group personal"`
}

// MessagesConfig holds the static user-facing reply texts.
type MessagesConfig struct {
	Welcome          string `mapstructure:"welcome"`
	Help             string `mapstructure:"help"`
	NotAuthorized    string `mapstructure:"not_authorized"`
	UnknownCommand   string `mapstructure:"unknown_command"`
	GeneralError     string `mapstructure:"general_error"`
	PriceUnavailable string `mapstructure:"price_unavailable"`
	NoneUpcoming     string `mapstructure:"none_upcoming"`
	AllBirthdaysSet  string `mapstructure:"all_birthdays_set"`
	Startup          string `mapstructure:"startup"`
}

// LoadConfig loads configuration from the given YAML file (which may be
// absent), BOT_* environment variables, and defaults, then validates it.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigFile(path)
	v.SetEnvPrefix("BOT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// A missing config file is fine; defaults plus environment variables
	// may be a complete configuration.
	if err := v.ReadInConfig(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: failed to read %s: %v", ErrConfiguration, path, err)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("%w: failed to parse config: %v", ErrConfiguration, err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfiguration, err)
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("%w: unknown timezone %q: %v", ErrConfiguration, cfg.Timezone, err)
	}
	cfg.Location = loc

	return cfg, nil
}

// ChatID resolves a destination name to its configured chat id.
func (c *Config) ChatID(destination string) (int64, bool) {
	switch destination {
	case DestinationGroup:
		return c.Telegram.GroupChatID, true
	case DestinationPersonal:
		return c.Telegram.PersonalChatID, true
	default:
		return 0, false
	}
}
