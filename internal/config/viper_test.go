package config

import (
	"os"
	"path/filepath"
	"testing"

	"acordos/debt-parser/internal/logging"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdir switches to dir for the duration of the test.
func chdir(t *testing.T, dir string) {
	t.Helper()
	originalDir, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { require.NoError(t, os.Chdir(originalDir)) })
}

func isolate(t *testing.T) {
	t.Helper()
	clearTestEnvVars(t)
	t.Setenv("HOME", t.TempDir())
	chdir(t, t.TempDir())
}

func TestInitializeConfig_Defaults(t *testing.T) {
	isolate(t)

	config, err := InitializeConfig()
	require.NoError(t, err)

	assert.Equal(t, "info", config.Log.Level)
	assert.Equal(t, "text", config.Log.Format)
	assert.Equal(t, ";", config.CSV.Delimiter)
	assert.Equal(t, ';', config.Delimiter())
	assert.Equal(t, int64(20<<20), config.Extraction.MaxFileBytes)
	assert.Equal(t, 2<<20, config.Extraction.MaxTextBytes)
	assert.Equal(t, 50, config.Extraction.MinTextChars)
	assert.Equal(t, "native", config.Parsers.PDF.Backend)
	assert.Equal(t, 128, config.Parsers.XML.MaxDepth)
	assert.Equal(t, 100000, config.Parsers.XML.MaxNodes)
	assert.Equal(t, "", config.Profile.File)
	assert.Equal(t, "São Paulo", config.Render.City)
	assert.Equal(t, "pdf", config.Render.Format)
	assert.Equal(t, 4, config.Batch.Workers)

	params, err := config.SimulationParameters()
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(1).Equal(params.InterestRateMonthly))
	assert.True(t, decimal.NewFromInt(2).Equal(params.PenaltyRate))
	assert.True(t, decimal.NewFromInt(10).Equal(params.FeeRate))
	assert.True(t, decimal.NewFromInt(30).Equal(params.BreachPenaltyRate))
	assert.True(t, params.CorrectionIndex.IsZero())
	assert.Equal(t, 12, params.InstallmentCount)
	assert.True(t, params.DownPayment.IsZero())
}

func TestInitializeConfig_EnvironmentVariables(t *testing.T) {
	isolate(t)

	testEnvVars := map[string]string{
		"DEBTPARSER_LOG_LEVEL":                        "debug",
		"DEBTPARSER_LOG_FORMAT":                       "json",
		"DEBTPARSER_CSV_DELIMITER":                    ",",
		"DEBTPARSER_PARSERS_PDF_BACKEND":              "auto",
		"DEBTPARSER_PARSERS_XML_MAX_DEPTH":            "16",
		"DEBTPARSER_SIMULATION_INTEREST_RATE_MONTHLY": "1,5",
		"DEBTPARSER_BATCH_WORKERS":                    "8",
	}
	for key, value := range testEnvVars {
		t.Setenv(key, value)
	}

	config, err := InitializeConfig()
	require.NoError(t, err)

	assert.Equal(t, "debug", config.Log.Level)
	assert.Equal(t, "json", config.Log.Format)
	assert.Equal(t, ",", config.CSV.Delimiter)
	assert.Equal(t, "auto", config.Parsers.PDF.Backend)
	assert.Equal(t, 16, config.Parsers.XML.MaxDepth)
	assert.Equal(t, 8, config.Batch.Workers)

	params, err := config.SimulationParameters()
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("1.5").Equal(params.InterestRateMonthly))
}

func TestInitializeConfig_ConfigFile(t *testing.T) {
	isolate(t)
	dir, err := os.Getwd()
	require.NoError(t, err)

	configContent := `
log:
  level: "warn"
  format: "json"
csv:
  delimiter: "|"
extraction:
  min_text_chars: 80
profile:
  file: "profile.yaml"
simulation:
  installment_count: 6
  down_payment: "250,00"
render:
  city: "Campinas"
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(configContent), 0600))

	config, err := InitializeConfig()
	require.NoError(t, err)

	assert.Equal(t, "warn", config.Log.Level)
	assert.Equal(t, "json", config.Log.Format)
	assert.Equal(t, "|", config.CSV.Delimiter)
	assert.Equal(t, 80, config.Extraction.MinTextChars)
	assert.Equal(t, "profile.yaml", config.Profile.File)
	assert.Equal(t, "Campinas", config.Render.City)

	params, err := config.SimulationParameters()
	require.NoError(t, err)
	assert.Equal(t, 6, params.InstallmentCount)
	assert.True(t, decimal.NewFromInt(250).Equal(params.DownPayment))
	assert.True(t, decimal.NewFromInt(2).Equal(params.PenaltyRate))
}

func TestInitializeConfig_HierarchicalPrecedence(t *testing.T) {
	isolate(t)
	dir, err := os.Getwd()
	require.NoError(t, err)

	configContent := `
log:
  level: "warn"
csv:
  delimiter: "|"
batch:
  workers: 2
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(configContent), 0600))

	t.Setenv("DEBTPARSER_LOG_LEVEL", "error")
	t.Setenv("DEBTPARSER_BATCH_WORKERS", "6")

	config, err := InitializeConfig()
	require.NoError(t, err)

	assert.Equal(t, "error", config.Log.Level) // env var wins
	assert.Equal(t, "|", config.CSV.Delimiter) // config file value
	assert.Equal(t, 6, config.Batch.Workers)   // env var wins
}

func TestInitializeConfigFile_Explicit(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("batch:\n  workers: 3\n"), 0600))

	config, err := InitializeConfigFile(path)
	require.NoError(t, err)
	assert.Equal(t, 3, config.Batch.Workers)

	_, err = InitializeConfigFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestValidateConfig_InvalidValues(t *testing.T) {
	isolate(t)

	tests := []struct {
		name         string
		modifyConfig func(*Config)
		expectError  string
	}{
		{"invalid log level", func(c *Config) { c.Log.Level = "invalid" }, "invalid log level"},
		{"invalid log format", func(c *Config) { c.Log.Format = "invalid" }, "invalid log format"},
		{"invalid CSV delimiter", func(c *Config) { c.CSV.Delimiter = "abc" }, "CSV delimiter must be a single character"},
		{"negative file limit", func(c *Config) { c.Extraction.MaxFileBytes = -1 }, "extraction.max_file_bytes"},
		{"negative text limit", func(c *Config) { c.Extraction.MinTextChars = -1 }, "extraction limits"},
		{"unknown backend", func(c *Config) { c.Parsers.PDF.Backend = "ocr" }, "parsers.pdf.backend"},
		{"zero xml depth", func(c *Config) { c.Parsers.XML.MaxDepth = 0 }, "parsers.xml limits"},
		{"non-numeric rate", func(c *Config) { c.Simulation.FeeRate = "ten" }, "invalid simulation defaults"},
		{"unknown render format", func(c *Config) { c.Render.Format = "docx" }, "render.format"},
		{"too many workers", func(c *Config) { c.Batch.Workers = 1000 }, "batch.workers"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config, err := InitializeConfig()
			require.NoError(t, err)

			tt.modifyConfig(config)
			err = validateConfig(config)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.expectError)
		})
	}
}

func TestConfigureLoggingFromConfig(t *testing.T) {
	config := &Config{}
	config.Log.Level = "debug"
	config.Log.Format = "json"
	logger := ConfigureLoggingFromConfig(config)
	assert.Equal(t, "debug", logger.GetLevel().String())

	config.Log.Level = "nonsense"
	config.Log.Format = "text"
	logger = ConfigureLoggingFromConfig(config)
	assert.Equal(t, "info", logger.GetLevel().String())
}

func TestLoadEnvFile(t *testing.T) {
	clearTestEnvVars(t)
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("DEBTPARSER_LOG_LEVEL=debug\n"), 0600))
	t.Cleanup(func() { _ = os.Unsetenv("DEBTPARSER_LOG_LEVEL") })

	logger := logging.NewMockLogger()
	assert.Equal(t, "", loadEnvFile(logger, filepath.Join(dir, "missing.env")))
	assert.Equal(t, envFile, loadEnvFile(logger, filepath.Join(dir, "missing.env"), envFile))
	assert.Equal(t, "debug", GetEnv("DEBTPARSER_LOG_LEVEL", "info"))
	assert.Equal(t, "fallback", GetEnv("DEBTPARSER_UNSET_FOR_TEST", "fallback"))
}

// Helper function to clear test environment variables
func clearTestEnvVars(t *testing.T) {
	for _, envVar := range []string{
		"DEBTPARSER_LOG_LEVEL",
		"DEBTPARSER_LOG_FORMAT",
		"DEBTPARSER_CSV_DELIMITER",
		"DEBTPARSER_EXTRACTION_MAX_FILE_BYTES",
		"DEBTPARSER_EXTRACTION_MAX_TEXT_BYTES",
		"DEBTPARSER_EXTRACTION_MIN_TEXT_CHARS",
		"DEBTPARSER_PARSERS_PDF_BACKEND",
		"DEBTPARSER_PARSERS_XML_MAX_DEPTH",
		"DEBTPARSER_PARSERS_XML_MAX_NODES",
		"DEBTPARSER_PROFILE_FILE",
		"DEBTPARSER_SIMULATION_INTEREST_RATE_MONTHLY",
		"DEBTPARSER_RENDER_CITY",
		"DEBTPARSER_RENDER_FORMAT",
		"DEBTPARSER_BATCH_WORKERS",
	} {
		// t.Setenv restores the previous value when the test ends.
		t.Setenv(envVar, "")
		require.NoError(t, os.Unsetenv(envVar))
	}
}

func TestDefault(t *testing.T) {
	t.Setenv("DEBTPARSER_BATCH_WORKERS", "9")

	config := Default()
	assert.Equal(t, 4, config.Batch.Workers)
	assert.Equal(t, "native", config.Parsers.PDF.Backend)
	assert.NoError(t, validateConfig(config))
}
