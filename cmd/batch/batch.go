// Package batch handles batch processing of statement files
package batch

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"acordos/debt-parser/cmd/root"
	"acordos/debt-parser/internal/batch"
	"acordos/debt-parser/internal/common"
	"acordos/debt-parser/internal/container"
	"acordos/debt-parser/internal/logging"
	"acordos/debt-parser/internal/models"

	"github.com/spf13/cobra"
)

// Options for a batch run.
type Options struct {
	InputDir  string
	Output    string
	GroupsDir string
	Workers   int
}

// Report is what a batch run produced.
type Report struct {
	Files     int
	Failed    int
	Summary   string
	GroupsOut []string
}

var opts Options

// Cmd represents the batch command
var Cmd = &cobra.Command{
	Use:   "batch",
	Short: "Parse every statement in a directory",
	Long: `Parse all PDF and XML statements under a directory concurrently and write
one summary CSV row per file. A failing document never stops the run.

With --groups-dir, the debt items of each debtor are merged across their
statements and written to one CSV per debtor.

Example:
  debt-parser batch --input-dir extratos/ -o resumo.csv --groups-dir devedores/`,
	Run: batchFunc,
}

func init() {
	Cmd.Flags().StringVar(&opts.InputDir, "input-dir", "", "Directory to scan for statements (defaults to --input)")
	Cmd.Flags().StringVar(&opts.GroupsDir, "groups-dir", "", "Write one debt item CSV per debtor to this directory")
	Cmd.Flags().IntVar(&opts.Workers, "workers", 0, "Concurrent parsers (default from config)")

	// Override the usage text for the input/output flags in batch context
	Cmd.SetUsageTemplate(`Usage:{{if .Runnable}}
  {{.UseLine}}{{end}}{{if .HasExample}}

Examples:
{{.Example}}{{end}}{{if .HasAvailableLocalFlags}}

Flags:
{{.LocalFlags.FlagUsages | trimTrailingWhitespaces}}{{end}}{{if .HasAvailableInheritedFlags}}

Global Flags (for batch, -i is the input directory and -o the summary CSV):
{{.InheritedFlags.FlagUsages | trimTrailingWhitespaces}}{{end}}
`)
}

func batchFunc(cmd *cobra.Command, args []string) {
	logger := root.Log
	run := opts
	if run.InputDir == "" {
		run.InputDir = root.SharedFlags.Input
	}
	run.Output = root.SharedFlags.Output
	if run.InputDir == "" || run.Output == "" {
		logger.Fatal("Input directory and summary output file must be specified")
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	report, err := Run(ctx, root.MustContainer(), run)
	if err != nil {
		logger.Fatalf("Error during batch processing: %v", err)
	}
	logger.Info(fmt.Sprintf("Batch processing completed. %d files, %d failed.", report.Files, report.Failed))
}

// Run scans opts.InputDir, parses every statement and writes the summary
// and, optionally, the per-debtor item files.
func Run(ctx context.Context, c *container.Container, opts Options) (Report, error) {
	logger := c.GetLogger()
	var report Report

	files, err := c.GetScanner().Scan(opts.InputDir)
	if err != nil {
		return report, fmt.Errorf("failed to read input directory: %w", err)
	}
	if len(files) == 0 {
		logger.Warn("No supported files found in input directory",
			logging.F(logging.FieldFile, opts.InputDir))
	}

	processor := c.GetProcessor()
	if opts.Workers > 0 {
		processor = batch.NewProcessor(c.GetRegistry(), logger, batch.Options{
			Workers:      opts.Workers,
			MaxFileBytes: c.GetConfig().Extraction.MaxFileBytes,
		})
	}

	results, runErr := processor.Run(ctx, files)
	if err := common.WriteCSVFile(batch.Summarize(results), opts.Output); err != nil {
		return report, err
	}

	report.Files = len(results)
	report.Summary = opts.Output
	for _, r := range results {
		if !r.OK() {
			report.Failed++
		}
	}

	if opts.GroupsDir != "" && runErr == nil {
		if report.GroupsOut, err = writeGroups(c, results, opts.GroupsDir); err != nil {
			return report, err
		}
	}
	return report, runErr
}

func writeGroups(c *container.Container, results []batch.Result, dir string) ([]string, error) {
	logger := c.GetLogger()
	groups := c.GetAggregator().GroupByDebtor(results)

	var written []string
	for _, g := range groups {
		items := g.Items
		if items == nil {
			items = []models.DebtItem{}
		}
		out := filepath.Join(dir, batch.GenerateOutputFilename(g.Key, g.DateRange))
		if err := common.WriteDebtItemsToCSV(items, out); err != nil {
			logger.WithError(err).Error("Failed to write debtor file",
				logging.F(logging.FieldOutputFile, out))
			continue
		}
		logger.Info("Created consolidated file",
			logging.F("debtor", g.Key),
			logging.F("files", len(g.Files)),
			logging.F(logging.FieldOutputFile, out))
		written = append(written, out)
	}
	return written, nil
}
