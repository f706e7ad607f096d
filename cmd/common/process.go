// Package common contains shared functionality for command handlers
package common

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"fjacquet/emi-tracker/internal/batch"
	internalcommon "fjacquet/emi-tracker/internal/common"
	"fjacquet/emi-tracker/internal/container"
	"fjacquet/emi-tracker/internal/logging"
	"fjacquet/emi-tracker/internal/models"
	"fjacquet/emi-tracker/internal/report"
	"fjacquet/emi-tracker/internal/store"
	"fjacquet/emi-tracker/internal/validation"
)

// ParseStatementFiles extracts and parses every statement file reachable from
// inputs and returns them in chronological order. Files that cannot be read are
// logged and skipped; it is an error if none could be parsed.
func ParseStatementFiles(ctx context.Context, c *container.Container, inputs []string) ([]models.StatementExtraction, error) {
	logger := c.GetLogger()

	if err := validation.IsValidStatementPaths(inputs); err != nil {
		return nil, err
	}
	files, err := batch.CollectFiles(inputs)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no .txt or .pdf statement files found in %v", inputs)
	}

	logger.Info("Found statement files", logging.F(logging.FieldCount, len(files)))

	results, err := c.GetProcessor().ParseFiles(ctx, files)
	if err != nil {
		return nil, err
	}

	statements := make([]models.StatementExtraction, 0, len(results))
	failed := 0
	for _, res := range results {
		if res.Err != nil {
			failed++
			continue
		}
		statements = append(statements, res.Statement)
	}
	if len(statements) == 0 {
		return nil, fmt.Errorf("none of the %d statement files could be read", len(files))
	}
	models.SortStatementsChronologically(statements)
	if failed > 0 {
		logger.Warn("Some statement files were skipped",
			logging.F(logging.FieldSkipped, failed),
			logging.F(logging.FieldCount, len(statements)))
	}
	return statements, nil
}

// SaveStatements merges statements into the extraction store.
func SaveStatements(c *container.Container, statements []models.StatementExtraction) (*store.Document, error) {
	doc, err := c.GetStore().MergeAndSave(statements)
	if err != nil {
		return nil, fmt.Errorf("failed to save statement extractions: %w", err)
	}
	return doc, nil
}

// ExportTransactions writes every transaction of statements to the CSV export
// when CSV output is enabled, and returns the file written.
func ExportTransactions(c *container.Container, statements []models.StatementExtraction) (string, error) {
	cfg := c.GetConfig()
	if !cfg.Output.CSV {
		return "", nil
	}
	csvFile := filepath.Join(cfg.Output.Directory, report.TransactionsCSVFile)
	if err := internalcommon.WriteTransactionsToCSV(statements, csvFile, c.GetLogger()); err != nil {
		return "", err
	}
	return csvFile, nil
}

// BuildPlans reconstructs plans from statements, writes the report artifacts
// and prints the summary to w.
func BuildPlans(c *container.Container, statements []models.StatementExtraction, w io.Writer) (models.EMIReport, report.Artifacts, error) {
	cfg := c.GetConfig()

	emiReport := c.GetEngine().Run(statements)

	arts, err := c.GetReporter().WriteReport(emiReport, report.WriteOptions{
		Directory:  cfg.Output.Directory,
		PlansFile:  cfg.Output.PlansFile,
		CSV:        cfg.Output.CSV,
		Statements: statements,
	})
	if err != nil {
		return emiReport, arts, err
	}

	report.PrintSummary(w, emiReport)
	return emiReport, arts, nil
}
