// Package batch parses many statement files concurrently while keeping their
// results in input order.
package batch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"fjacquet/emi-tracker/internal/logging"
	"fjacquet/emi-tracker/internal/models"
	"fjacquet/emi-tracker/internal/stmtparser"
	"fjacquet/emi-tracker/internal/textsource"

	"golang.org/x/sync/errgroup"
)

// DateRange represents a date range with start and end dates
type DateRange struct {
	Start time.Time
	End   time.Time
}

// String returns the date range in the format "YYYY-MM-DD_YYYY-MM-DD"
func (dr DateRange) String() string {
	if dr.Start.IsZero() || dr.End.IsZero() {
		return ""
	}
	return fmt.Sprintf("%s_%s",
		dr.Start.Format("2006-01-02"),
		dr.End.Format("2006-01-02"))
}

// StatementPeriod returns the range covered by the parseable transaction
// dates of st.
func StatementPeriod(st models.StatementExtraction) DateRange {
	return DateRange{Start: st.PeriodStart().Time, End: st.PeriodEnd().Time}
}

// FileResult is the outcome of parsing one statement file.
type FileResult struct {
	Path      string
	Statement models.StatementExtraction
	Result    stmtparser.Result
	Err       error
}

// Processor extracts and parses statement files with a bounded worker pool.
type Processor struct {
	extractor textsource.Extractor
	parser    *stmtparser.Parser
	workers   int
	logger    logging.Logger
}

// NewProcessor creates a new Processor. workers below 1 means 1.
func NewProcessor(extractor textsource.Extractor, parser *stmtparser.Parser, workers int, logger logging.Logger) *Processor {
	if workers < 1 {
		workers = 1
	}
	return &Processor{
		extractor: extractor,
		parser:    parser,
		workers:   workers,
		logger:    logger,
	}
}

// ParseFiles parses paths concurrently. results[i] always corresponds to
// paths[i]; a file that fails carries its error in Err and does not stop the
// others. The returned error is non-nil only when ctx is cancelled.
func (p *Processor) ParseFiles(ctx context.Context, paths []string) ([]FileResult, error) {
	results := make([]FileResult, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(p.workers)

	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = p.parseFile(path)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (p *Processor) parseFile(path string) FileResult {
	res := FileResult{Path: path}
	logger := p.logger.WithField(logging.FieldFile, path)

	text, err := p.extractor.ExtractText(path)
	if err != nil {
		logger.WithError(err).Error("Failed to extract statement text")
		res.Err = fmt.Errorf("extracting %s: %w", path, err)
		return res
	}

	res.Statement, res.Result = p.parser.ParseStatement(filepath.Base(path), text)

	logger.Debug("Statement period",
		logging.F("period", StatementPeriod(res.Statement).String()),
		logging.F(logging.FieldCount, len(res.Statement.Transactions)))
	return res
}

// statementExtensions are the inputs picked up when a directory is given.
var statementExtensions = map[string]bool{".txt": true, ".pdf": true}

// CollectFiles expands inputs into statement files. Directories contribute
// their .txt and .pdf files in name order; files are kept as given.
func CollectFiles(inputs []string) ([]string, error) {
	var files []string
	for _, input := range inputs {
		info, err := os.Stat(input)
		if err != nil {
			return nil, fmt.Errorf("cannot access %s: %w", input, err)
		}
		if !info.IsDir() {
			files = append(files, input)
			continue
		}

		entries, err := os.ReadDir(input)
		if err != nil {
			return nil, fmt.Errorf("error reading directory %s: %w", input, err)
		}
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			if statementExtensions[strings.ToLower(filepath.Ext(entry.Name()))] {
				files = append(files, filepath.Join(input, entry.Name()))
			}
		}
	}
	return files, nil
}
