package batch

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sort"
	"time"

	"acordos/debt-parser/internal/dateutils"
	"acordos/debt-parser/internal/fileutils"
	"acordos/debt-parser/internal/logging"
	"acordos/debt-parser/internal/models"
	"acordos/debt-parser/internal/parser"
	"acordos/debt-parser/internal/parsererror"

	"golang.org/x/sync/errgroup"
)

// Summary statuses
const (
	StatusOK      = "ok"
	StatusError   = "error"
	StatusSkipped = "skipped"
)

// DocumentParser is the dispatch surface the processor needs; parser.Registry
// implements it.
type DocumentParser interface {
	ParseDocument(doc models.RawDocument) (*models.ParsedDocument, error)
}

// Result is the outcome of one file.
type Result struct {
	Path     string
	Document *models.ParsedDocument
	Err      error
	Duration time.Duration
}

// OK reports whether the file parsed.
func (r Result) OK() bool {
	return r.Err == nil && r.Document != nil
}

// Summary is the CSV row written for each processed file.
type Summary struct {
	File        string `csv:"file"`
	Status      string `csv:"status"`
	ErrorKind   string `csv:"error_kind"`
	Error       string `csv:"error"`
	Source      string `csv:"source"`
	Debtor      string `csv:"debtor"`
	CpfCnpj     string `csv:"cpf_cnpj"`
	Unit        string `csv:"unit"`
	Block       string `csv:"block"`
	Condominium string `csv:"condominium"`
	Amount      string `csv:"amount"`
	DueDate     string `csv:"due_date"`
	Items       int    `csv:"items"`
	Pages       int    `csv:"pages"`
}

// Options configures a Processor.
type Options struct {
	// Workers bounds concurrent parses. Zero means runtime.NumCPU().
	Workers int
	// MaxFileBytes rejects larger files before parsing. Zero disables the check.
	MaxFileBytes int64
}

// Processor parses many statement files concurrently.
type Processor struct {
	parser DocumentParser
	logger logging.Logger
	opts   Options
}

// NewProcessor creates a Processor.
func NewProcessor(p DocumentParser, logger logging.Logger, opts Options) *Processor {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	if opts.Workers <= 0 {
		opts.Workers = runtime.NumCPU()
	}
	return &Processor{parser: p, logger: logger, opts: opts}
}

// Run parses files with at most Options.Workers in flight. A failing file
// never aborts the run; its error is kept on its Result. Results are sorted
// by path. When ctx is cancelled no new file is started, the files never
// started are reported as skipped, and ctx.Err() is returned alongside the
// results.
func (p *Processor) Run(ctx context.Context, files []string) ([]Result, error) {
	start := time.Now()
	results := make([]Result, len(files))
	started := make([]bool, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.opts.Workers)

	for i, file := range files {
		if gctx.Err() != nil {
			break
		}
		started[i] = true
		g.Go(func() error {
			results[i] = p.process(gctx, file)
			return nil
		})
	}
	_ = g.Wait()

	ctxErr := ctx.Err()
	failed := 0
	for i, file := range files {
		if !started[i] {
			results[i] = Result{Path: file, Err: ctxErr}
		}
		if !results[i].OK() {
			failed++
		}
	}

	sort.SliceStable(results, func(a, b int) bool { return results[a].Path < results[b].Path })

	p.logger.Info("Batch finished",
		logging.F(logging.FieldCount, len(files)),
		logging.F("failed", failed),
		logging.F(logging.FieldDuration, time.Since(start).Milliseconds()))
	return results, ctxErr
}

func (p *Processor) process(ctx context.Context, path string) (res Result) {
	start := time.Now()
	log := p.logger.WithField(logging.FieldFile, path)
	res.Path = path
	defer func() { res.Duration = time.Since(start) }()

	if err := ctx.Err(); err != nil {
		res.Err = err
		return res
	}

	mediaType, err := parser.DetectMediaType(path)
	if err != nil {
		res.Err = err
		log.WithError(err).Warn("Skipping file")
		return res
	}
	data, err := fileutils.ReadFile(path, p.opts.MaxFileBytes)
	if err != nil {
		res.Err = err
		log.WithError(err).Warn("Failed to read file")
		return res
	}

	doc, err := p.parser.ParseDocument(models.RawDocument{Name: path, MediaType: mediaType, Data: data})
	if err != nil {
		res.Err = err
		log.WithError(err).Warn("Failed to parse file", logging.F("error_kind", ErrorKind(err)))
		return res
	}
	res.Document = doc
	log.Debug("Parsed file", logging.F(logging.FieldCount, len(doc.DebtItems)))
	return res
}

// ErrorKind classifies an error for the summary report.
func ErrorKind(err error) string {
	var (
		invalid    *parsererror.InvalidFormatError
		validation *parsererror.ValidationError
		parseErr   *parsererror.ParseError
	)
	switch {
	case err == nil:
		return ""
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "canceled"
	case errors.Is(err, parsererror.ErrNonDigital):
		return "non_digital"
	case errors.Is(err, parsererror.ErrUnextractable):
		return "unextractable"
	case errors.Is(err, parsererror.ErrUnsupportedMediaType):
		return "unsupported_media_type"
	case errors.As(err, &invalid):
		return "invalid_format"
	case errors.As(err, &validation):
		return "validation"
	case errors.As(err, &parseErr):
		return "parse"
	default:
		return "io"
	}
}

// Summarize turns results into CSV rows, in the same order.
func Summarize(results []Result) []Summary {
	rows := make([]Summary, 0, len(results))
	for _, r := range results {
		row := Summary{File: r.Path}
		switch {
		case r.OK():
			row.Status = StatusOK
			doc := r.Document
			row.Source = string(doc.Source)
			row.Debtor = doc.DebtorName
			row.CpfCnpj = doc.CpfCnpj
			row.Unit = doc.Unit
			row.Block = doc.Block
			row.Condominium = doc.CondominiumName
			if doc.Amount != nil {
				row.Amount = doc.Amount.StringFixed(2)
			}
			if doc.DueDate != nil {
				row.DueDate = dateutils.FormatBR(*doc.DueDate)
			}
			row.Items = len(doc.DebtItems)
			row.Pages = doc.PageCount
		case ErrorKind(r.Err) == "canceled":
			row.Status = StatusSkipped
			row.ErrorKind = "canceled"
			row.Error = r.Err.Error()
		default:
			row.Status = StatusError
			if r.Err == nil {
				r.Err = fmt.Errorf("parser returned no document")
			}
			row.ErrorKind = ErrorKind(r.Err)
			row.Error = r.Err.Error()
		}
		rows = append(rows, row)
	}
	return rows
}
