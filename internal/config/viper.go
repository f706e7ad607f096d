// Package config provides Viper-based hierarchical configuration management
package config

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// LogConfig controls the logrus adapter.
type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// InputConfig locates the extraction artifact written by "parse".
type InputConfig struct {
	ExtractionsFile string `mapstructure:"extractions_file" yaml:"extractions_file"`
}

// OutputConfig controls where reports are written.
type OutputConfig struct {
	Directory string `mapstructure:"directory" yaml:"directory"`
	PlansFile string `mapstructure:"plans_file" yaml:"plans_file"`
	CSV       bool   `mapstructure:"csv" yaml:"csv"`
}

// CSVConfig controls CSV exports.
type CSVConfig struct {
	Delimiter string `mapstructure:"delimiter" yaml:"delimiter"`
}

// EMIConfig holds the plan reconstruction tunables.
type EMIConfig struct {
	MinGapDays          int     `mapstructure:"min_gap_days" yaml:"min_gap_days"`
	PriorityBurdenScale float64 `mapstructure:"priority_burden_scale" yaml:"priority_burden_scale"`
}

// ParserConfig controls statement text parsing.
type ParserConfig struct {
	Workers int `mapstructure:"workers" yaml:"workers"`
}

// Config represents the complete application configuration
type Config struct {
	Log    LogConfig    `mapstructure:"log" yaml:"log"`
	Input  InputConfig  `mapstructure:"input" yaml:"input"`
	Output OutputConfig `mapstructure:"output" yaml:"output"`
	CSV    CSVConfig    `mapstructure:"csv" yaml:"csv"`
	EMI    EMIConfig    `mapstructure:"emi" yaml:"emi"`
	Parser ParserConfig `mapstructure:"parser" yaml:"parser"`
}

// EnvPrefix is prepended to every environment override, e.g. EMI_LOG_LEVEL.
const EnvPrefix = "EMI"

// InitializeConfig initializes Viper configuration with hierarchical loading
func InitializeConfig() (*Config, error) {
	return InitializeConfigFromFile("")
}

// InitializeConfigFromFile behaves like InitializeConfig but reads configFile
// instead of searching the default locations when it is not empty.
func InitializeConfigFromFile(configFile string) (*Config, error) {
	v := viper.New()

	// 1. Set defaults
	setDefaults(v)

	// 2. Config file locations
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("$HOME/.emi-tracker")
		v.AddConfigPath(".emi-tracker")
		v.AddConfigPath(".")
	}

	// 3. Environment variables
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// 4. Read config file (optional unless named explicitly)
	if err := v.ReadInConfig(); err != nil {
		if configFile != "" {
			return nil, fmt.Errorf("failed to read config file %s: %w", configFile, err)
		}
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			fmt.Printf("Warning: error reading config file %s: %v\n", v.ConfigFileUsed(), err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// 5. Validate configuration
	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("input.extractions_file", "data/statement_extractions.json")

	v.SetDefault("output.directory", "data")
	v.SetDefault("output.plans_file", "emi_plans.json")
	v.SetDefault("output.csv", false)

	v.SetDefault("csv.delimiter", ",")

	v.SetDefault("emi.min_gap_days", DefaultMinGapDays)
	v.SetDefault("emi.priority_burden_scale", DefaultPriorityBurdenScale)

	v.SetDefault("parser.workers", 4)
}

// Defaults for the plan reconstruction tunables.
const (
	DefaultMinGapDays          = 20
	DefaultPriorityBurdenScale = 100000.0
)

// validateConfig validates the configuration values
func validateConfig(config *Config) error {
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}

	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}

	if len([]rune(config.CSV.Delimiter)) != 1 {
		return fmt.Errorf("CSV delimiter must be a single character, got: %s", config.CSV.Delimiter)
	}

	if config.Input.ExtractionsFile == "" {
		return fmt.Errorf("input.extractions_file must not be empty")
	}

	if config.Output.PlansFile == "" {
		return fmt.Errorf("output.plans_file must not be empty")
	}

	if config.EMI.MinGapDays < 0 || config.EMI.MinGapDays > 366 {
		return fmt.Errorf("emi.min_gap_days must be between 0 and 366, got: %d", config.EMI.MinGapDays)
	}

	if config.EMI.PriorityBurdenScale <= 0 {
		return fmt.Errorf("emi.priority_burden_scale must be positive, got: %f", config.EMI.PriorityBurdenScale)
	}

	if config.Parser.Workers < 1 || config.Parser.Workers > 64 {
		return fmt.Errorf("parser.workers must be between 1 and 64, got: %d", config.Parser.Workers)
	}

	return nil
}

// Validate re-checks the configuration after command-line overrides.
func (c *Config) Validate() error {
	return validateConfig(c)
}

// DelimiterRune returns the configured CSV delimiter as a rune.
func (c *Config) DelimiterRune() rune {
	r := []rune(c.CSV.Delimiter)
	if len(r) == 0 {
		return ','
	}
	return r[0]
}

// ConfigureLoggingFromConfig configures logging based on the Config struct
func ConfigureLoggingFromConfig(config *Config) *logrus.Logger {
	logger := logrus.New()

	logLevel, err := logrus.ParseLevel(strings.ToLower(config.Log.Level))
	if err != nil {
		logger.Warnf("Invalid log level '%s', using 'info'", config.Log.Level)
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	if strings.ToLower(config.Log.Format) == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	return logger
}
