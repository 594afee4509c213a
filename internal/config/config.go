// Package config assembles the program configuration from defaults, an
// optional YAML file, WARMAC_* environment variables, and command-line
// flags, in ascending precedence. Validation happens before any network
// request so the pipeline only ever sees well-formed queries.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/wfm-tools/warmac/internal/average"
	"github.com/wfm-tools/warmac/internal/wfmarket"
)

// Time-range bounds in days. The bound is inclusive on both ends; the
// default keeps listings recent enough to reflect the current market.
const (
	DefaultTimeRange = 30
	MaxTimeRange     = 750
)

// Platforms lists the marketplaces warframe.market serves.
var Platforms = []string{"pc", "ps4", "xbox", "switch"}

// Config represents the complete application configuration
type Config struct {
	Query    QueryConfig    `mapstructure:"query"`
	API      APIConfig      `mapstructure:"api"`
	Telegram TelegramConfig `mapstructure:"telegram"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// QueryConfig holds the parameters of a single price query.
// MaxRank and Radiant are mutually exclusive: rank filtering applies to
// mods/arcanes, refinement filtering to relics, never both to one item.
type QueryConfig struct {
	Item      string `mapstructure:"item"`       // Normalized item identifier
	Platform  string `mapstructure:"platform"`   // One of Platforms
	Statistic string `mapstructure:"statistic"`  // One of average.StatisticNames()
	TimeRange int    `mapstructure:"time_range"` // Maximum order age in days
	MaxRank   bool   `mapstructure:"max_rank"`   // Price mods at max rank instead of unranked
	Radiant   bool   `mapstructure:"radiant"`    // Price relics at radiant instead of intact
	UseBuyers bool   `mapstructure:"use_buyers"` // Aggregate buy orders instead of sell orders
	Verbose   int    `mapstructure:"verbose"`    // -v count; raises log level and output detail
}

// APIConfig holds warframe.market API configuration
type APIConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// TelegramConfig holds optional price-alert delivery configuration
type TelegramConfig struct {
	BotToken       string        `mapstructure:"bot_token"`
	ChatID         string        `mapstructure:"chat_id"`
	Enabled        bool          `mapstructure:"enabled"`
	MaxRetries     int           `mapstructure:"max_retries"`
	RetryDelayBase time.Duration `mapstructure:"retry_delay_base"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// flagBindings maps viper keys to the long flag names defined in cmd/warmac.
var flagBindings = map[string]string{
	"query.statistic":  "stats",
	"query.platform":   "platform",
	"query.time_range": "timerange",
	"query.max_rank":   "maxrank",
	"query.radiant":    "radiant",
	"query.use_buyers": "buyers",
	"query.verbose":    "verbose",
}

// Load reads configuration from defaults, an optional file, environment
// variables, and the given flag set. path may be empty; flags may be nil.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetEnvPrefix("WARMAC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if flags != nil {
		for key, name := range flagBindings {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("failed to bind flag %q: %w", name, err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.Query.Item = NormalizeItemName(cfg.Query.Item)
	return &cfg, nil
}

// setDefaults configures default values for all configuration options
func setDefaults(v *viper.Viper) {
	v.SetDefault("query.platform", "pc")
	v.SetDefault("query.statistic", "median")
	v.SetDefault("query.time_range", DefaultTimeRange)

	v.SetDefault("api.base_url", wfmarket.DefaultBaseURL)
	v.SetDefault("api.timeout", "10s")

	v.SetDefault("telegram.enabled", false)
	v.SetDefault("telegram.max_retries", 3)
	v.SetDefault("telegram.retry_delay_base", "1s")

	v.SetDefault("logging.level", "")
	v.SetDefault("logging.format", "text")
}

// NormalizeItemName converts a user-supplied item name into the identifier
// form the API expects: lowercased, spaces to underscores, "&" to "and".
func NormalizeItemName(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	name = strings.ReplaceAll(name, " ", "_")
	name = strings.ReplaceAll(name, "&", "and")
	return name
}

// Validate checks that all configuration values are valid.
func (c *Config) Validate() error {
	if c.Query.Item == "" {
		return fmt.Errorf("an item name is required")
	}

	validPlatform := false
	for _, p := range Platforms {
		if c.Query.Platform == p {
			validPlatform = true
			break
		}
	}
	if !validPlatform {
		return fmt.Errorf("platform must be one of: %s", strings.Join(Platforms, ", "))
	}

	if _, err := average.ParseStatistic(c.Query.Statistic); err != nil {
		return fmt.Errorf("statistic must be one of: %s", strings.Join(average.StatisticNames(), ", "))
	}

	if c.Query.TimeRange < 1 || c.Query.TimeRange > MaxTimeRange {
		return fmt.Errorf("time range must be between 1 and %d days", MaxTimeRange)
	}

	if c.Query.MaxRank && c.Query.Radiant {
		return fmt.Errorf("max rank and radiant filtering are mutually exclusive")
	}

	if c.API.BaseURL == "" {
		return fmt.Errorf("api.base_url is required")
	}
	if c.API.Timeout <= 0 {
		return fmt.Errorf("api.timeout must be positive")
	}

	if c.Telegram.Enabled {
		if c.Telegram.BotToken == "" {
			return fmt.Errorf("telegram.bot_token is required when telegram is enabled")
		}
		if c.Telegram.ChatID == "" {
			return fmt.Errorf("telegram.chat_id is required when telegram is enabled")
		}
	}

	if c.Logging.Level != "" {
		validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
		if !validLogLevels[c.Logging.Level] {
			return fmt.Errorf("logging.level must be one of: debug, info, warn, error")
		}
	}
	validFormats := map[string]bool{"json": true, "text": true}
	if !validFormats[c.Logging.Format] {
		return fmt.Errorf("logging.format must be one of: json, text")
	}

	return nil
}

// Statistic returns the parsed statistic. Call only after Validate.
func (c *Config) Statistic() average.Statistic {
	s, err := average.ParseStatistic(c.Query.Statistic)
	if err != nil {
		return average.Median
	}
	return s
}

// Filters returns the order-admission filters for this query.
func (c *Config) Filters() average.Filters {
	return average.Filters{
		UseBuyers: c.Query.UseBuyers,
		MaxRank:   c.Query.MaxRank,
		Radiant:   c.Query.Radiant,
		TimeRange: c.Query.TimeRange,
	}
}
