// Package root contains the root command for the application
package root

import (
	"fmt"

	"acordos/debt-parser/internal/config"
	"acordos/debt-parser/internal/container"
	"acordos/debt-parser/internal/logging"
	"acordos/debt-parser/internal/validation"

	"github.com/spf13/cobra"
)

// CommonFlags represents the flags that are common to multiple commands
type CommonFlags struct {
	Input    string
	Output   string
	Validate bool
}

// ConfigFlags override values loaded from the configuration file.
type ConfigFlags struct {
	File         string
	LogLevel     string
	LogFormat    string
	CSVDelimiter string
	PDFBackend   string
	ProfileFile  string
}

var (
	// Log is the shared logger instance for commands
	Log logging.Logger = logging.NewLogrusAdapter("info", "text")

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "debt-parser",
		Short: "Extract condominium debt statements and draft settlement agreements.",
		Long: `debt-parser reads condominium debt statements (digital PDF or XML),
extracts the debtor, amounts, dates and itemized fees, computes settlement
terms and renders an installment agreement.`,
		Run: func(cmd *cobra.Command, args []string) {
			Log.Info("Welcome to debt-parser!")
			Log.Info("Use --help to see available commands")
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			c, err := Setup(cmd)
			if err != nil {
				return err
			}
			appContainer = c
			Log = c.GetLogger()
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if appContainer != nil {
				if err := appContainer.Close(); err != nil {
					Log.WithError(err).Warn("Failed to close container")
				}
			}
		},
		SilenceUsage: true,
	}

	// Common flags accessible to all commands
	SharedFlags = CommonFlags{}

	// Configuration overrides
	Overrides = ConfigFlags{}

	appContainer *container.Container
)

// Init initializes the root command and all flags
func Init() {
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Input, "input", "i", "", "Input file")
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Output, "output", "o", "", "Output file")
	Cmd.PersistentFlags().BoolVarP(&SharedFlags.Validate, "validate", "v", false, "Validate file format before parsing")

	Cmd.PersistentFlags().StringVar(&Overrides.File, "config", "", "Config file (default searches $HOME/.debt-parser, .debt-parser and .)")
	Cmd.PersistentFlags().StringVar(&Overrides.LogLevel, "log-level", "", "Log level (trace, debug, info, warn, error)")
	Cmd.PersistentFlags().StringVar(&Overrides.LogFormat, "log-format", "", "Log format (text, json)")
	Cmd.PersistentFlags().StringVar(&Overrides.CSVDelimiter, "csv-delimiter", "", "CSV delimiter character")
	Cmd.PersistentFlags().StringVar(&Overrides.PDFBackend, "pdf-backend", "", "PDF text backend (native, pdftotext, auto)")
	Cmd.PersistentFlags().StringVar(&Overrides.ProfileFile, "profile", "", "Heuristic profile YAML file")
}

// Setup loads .env and the configuration, applies the flag overrides and
// builds the dependency container.
func Setup(cmd *cobra.Command) (*container.Container, error) {
	config.LoadEnv(Log)

	cfg, err := config.InitializeConfigFile(Overrides.File)
	if err != nil {
		return nil, err
	}
	if err := applyOverrides(cmd, cfg); err != nil {
		return nil, err
	}
	return container.NewContainer(cfg)
}

func applyOverrides(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.Log.Level = Overrides.LogLevel
	}
	if flags.Changed("log-format") {
		cfg.Log.Format = Overrides.LogFormat
	}
	if flags.Changed("csv-delimiter") {
		if err := validation.IsValidDelimiter(Overrides.CSVDelimiter); err != nil {
			return err
		}
		cfg.CSV.Delimiter = Overrides.CSVDelimiter
	}
	if flags.Changed("pdf-backend") {
		cfg.Parsers.PDF.Backend = Overrides.PDFBackend
	}
	if flags.Changed("profile") {
		cfg.Profile.File = Overrides.ProfileFile
	}
	return nil
}

// GetContainer returns the container built for the running command.
func GetContainer() *container.Container {
	return appContainer
}

// MustContainer returns the container or exits when setup did not run.
func MustContainer() *container.Container {
	if appContainer == nil {
		Log.Fatal("Container not initialized")
	}
	return appContainer
}

// SetContainer installs c, for tests that drive command functions directly.
func SetContainer(c *container.Container) {
	appContainer = c
	if c != nil {
		Log = c.GetLogger()
	}
}

// RequireInput fails when the shared --input flag is empty.
func RequireInput() (string, error) {
	if SharedFlags.Input == "" {
		return "", fmt.Errorf("an input file must be specified with --input")
	}
	return SharedFlags.Input, nil
}
