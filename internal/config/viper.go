// Package config provides Viper-based hierarchical configuration management
package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"acordos/debt-parser/internal/calculator"
	"acordos/debt-parser/internal/models"
	"acordos/debt-parser/internal/pdfparser"
	"acordos/debt-parser/internal/report"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. DEBTPARSER_LOG_LEVEL.
const EnvPrefix = "DEBTPARSER"

// Config represents the complete application configuration
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"log" yaml:"log"`

	CSV struct {
		Delimiter string `mapstructure:"delimiter" yaml:"delimiter"`
	} `mapstructure:"csv" yaml:"csv"`

	Extraction struct {
		MaxFileBytes int64 `mapstructure:"max_file_bytes" yaml:"max_file_bytes"`
		MaxTextBytes int   `mapstructure:"max_text_bytes" yaml:"max_text_bytes"`
		MinTextChars int   `mapstructure:"min_text_chars" yaml:"min_text_chars"`
	} `mapstructure:"extraction" yaml:"extraction"`

	Parsers struct {
		PDF struct {
			Backend string `mapstructure:"backend" yaml:"backend"`
		} `mapstructure:"pdf" yaml:"pdf"`
		XML struct {
			MaxDepth int `mapstructure:"max_depth" yaml:"max_depth"`
			MaxNodes int `mapstructure:"max_nodes" yaml:"max_nodes"`
		} `mapstructure:"xml" yaml:"xml"`
	} `mapstructure:"parsers" yaml:"parsers"`

	Profile struct {
		File string `mapstructure:"file" yaml:"file"`
	} `mapstructure:"profile" yaml:"profile"`

	// Simulation holds default settlement terms as text so that both "2,5"
	// and "2.5" are accepted.
	Simulation struct {
		InterestRateMonthly string `mapstructure:"interest_rate_monthly" yaml:"interest_rate_monthly"`
		PenaltyRate         string `mapstructure:"penalty_rate" yaml:"penalty_rate"`
		FeeRate             string `mapstructure:"fee_rate" yaml:"fee_rate"`
		BreachPenaltyRate   string `mapstructure:"breach_penalty_rate" yaml:"breach_penalty_rate"`
		CorrectionIndex     string `mapstructure:"correction_index" yaml:"correction_index"`
		InstallmentCount    int    `mapstructure:"installment_count" yaml:"installment_count"`
		DownPayment         string `mapstructure:"down_payment" yaml:"down_payment"`
	} `mapstructure:"simulation" yaml:"simulation"`

	Render struct {
		City   string `mapstructure:"city" yaml:"city"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"render" yaml:"render"`

	Batch struct {
		Workers int `mapstructure:"workers" yaml:"workers"`
	} `mapstructure:"batch" yaml:"batch"`
}

// InitializeConfig initializes Viper configuration with hierarchical loading
func InitializeConfig() (*Config, error) {
	return InitializeConfigFile("")
}

// InitializeConfigFile is InitializeConfig with an explicit config file; an
// empty path searches the default locations.
func InitializeConfigFile(configFile string) (*Config, error) {
	v := viper.New()

	// 1. Set defaults
	setDefaults(v)

	// 2. Config file locations
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("$HOME/.debt-parser")
		v.AddConfigPath(".debt-parser")
		v.AddConfigPath(".")
	}

	// 3. Environment variables
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// 4. Read config file (optional unless named explicitly)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file %s: %w", v.ConfigFileUsed(), err)
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

// Default returns the built-in configuration, ignoring files and the
// environment.
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		panic(fmt.Sprintf("invalid built-in configuration: %v", err))
	}
	return &config
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Log defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	// CSV defaults
	v.SetDefault("csv.delimiter", ";")

	// Extraction defaults
	v.SetDefault("extraction.max_file_bytes", 20<<20)
	v.SetDefault("extraction.max_text_bytes", pdfparser.DefaultMaxTextBytes)
	v.SetDefault("extraction.min_text_chars", pdfparser.DefaultMinTextChars)

	// Parser defaults
	v.SetDefault("parsers.pdf.backend", pdfparser.BackendNative)
	v.SetDefault("parsers.xml.max_depth", 128)
	v.SetDefault("parsers.xml.max_nodes", 100000)

	// Profile defaults
	v.SetDefault("profile.file", "")

	// Simulation defaults
	v.SetDefault("simulation.interest_rate_monthly", "1")
	v.SetDefault("simulation.penalty_rate", "2")
	v.SetDefault("simulation.fee_rate", "10")
	v.SetDefault("simulation.breach_penalty_rate", "30")
	v.SetDefault("simulation.correction_index", "0")
	v.SetDefault("simulation.installment_count", 12)
	v.SetDefault("simulation.down_payment", "0")

	// Render defaults
	v.SetDefault("render.city", report.DefaultCity)
	v.SetDefault("render.format", report.FormatPDF)

	// Batch defaults
	v.SetDefault("batch.workers", 4)
}

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

	if config.Extraction.MaxFileBytes < 0 {
		return fmt.Errorf("extraction.max_file_bytes must not be negative, got: %d", config.Extraction.MaxFileBytes)
	}
	if config.Extraction.MaxTextBytes < 0 || config.Extraction.MinTextChars < 0 {
		return fmt.Errorf("extraction limits must not be negative")
	}

	switch strings.ToLower(config.Parsers.PDF.Backend) {
	case pdfparser.BackendNative, pdfparser.BackendPdftotext, pdfparser.BackendAuto:
	default:
		return fmt.Errorf("parsers.pdf.backend must be one of native, pdftotext, auto, got: %s", config.Parsers.PDF.Backend)
	}

	if config.Parsers.XML.MaxDepth < 1 || config.Parsers.XML.MaxNodes < 1 {
		return fmt.Errorf("parsers.xml limits must be positive, got depth %d and nodes %d",
			config.Parsers.XML.MaxDepth, config.Parsers.XML.MaxNodes)
	}

	if _, err := config.SimulationParameters(); err != nil {
		return fmt.Errorf("invalid simulation defaults: %w", err)
	}

	switch config.Render.Format {
	case report.FormatPDF, report.FormatJSON, report.FormatXML:
	default:
		return fmt.Errorf("render.format must be pdf, json or xml, got: %s", config.Render.Format)
	}

	if config.Batch.Workers < 1 || config.Batch.Workers > 256 {
		return fmt.Errorf("batch.workers must be between 1 and 256, got: %d", config.Batch.Workers)
	}

	return nil
}

// SimulationParameters converts the configured defaults.
func (c *Config) SimulationParameters() (models.SimulationParameters, error) {
	s := c.Simulation
	return calculator.ParseParameters(map[string]string{
		calculator.ParamInterestRateMonthly: s.InterestRateMonthly,
		calculator.ParamPenaltyRate:         s.PenaltyRate,
		calculator.ParamFeeRate:             s.FeeRate,
		calculator.ParamBreachPenaltyRate:   s.BreachPenaltyRate,
		calculator.ParamCorrectionIndex:     s.CorrectionIndex,
		calculator.ParamInstallmentCount:    strconv.Itoa(s.InstallmentCount),
		calculator.ParamDownPayment:         s.DownPayment,
	})
}

// Delimiter returns the CSV delimiter as a rune.
func (c *Config) Delimiter() rune {
	if r := []rune(c.CSV.Delimiter); len(r) > 0 {
		return r[0]
	}
	return ';'
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
