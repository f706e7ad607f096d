package common

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"fjacquet/emi-tracker/internal/logging"
	"fjacquet/emi-tracker/internal/models"

	"github.com/gocarina/gocsv"
)

// Delimiter is the field separator used for every CSV export.
var Delimiter rune = ','

// SetDelimiter allows setting the delimiter for CSV output
func SetDelimiter(delim rune) {
	Delimiter = delim
}

// PlanCSVRow is the flattened CSV form of an EMI plan.
type PlanCSVRow struct {
	PlanKey               string `csv:"PlanKey"`
	Bank                  string `csv:"Bank"`
	Last4                 string `csv:"Last4Digits"`
	Merchant              string `csv:"Merchant"`
	TotalInstallments     int    `csv:"TotalInstallments"`
	InstallmentsPaid      int    `csv:"InstallmentsPaid"`
	RemainingInstallments int    `csv:"RemainingInstallments"`
	Status                string `csv:"Status"`
	AmountFinanced        string `csv:"AmountFinanced"`
	TotalInterest         string `csv:"TotalInterest"`
	TotalGST              string `csv:"TotalGST"`
	TotalAmount           string `csv:"TotalAmount"`
	MonthlyEMI            string `csv:"MonthlyEMI"`
	FirstInstallmentDate  string `csv:"FirstInstallmentDate"`
	LastInstallmentDate   string `csv:"LastInstallmentDate"`
	EffectiveAnnualRate   string `csv:"EffectiveAnnualRate"`
	EstimatedCompletion   string `csv:"EstimatedCompletion"`
	Priority              string `csv:"Priority"`
}

// TransactionCSVRow is the CSV form of a parsed statement line.
type TransactionCSVRow struct {
	File        string `csv:"File"`
	Seq         int    `csv:"Seq"`
	Date        string `csv:"Date"`
	Description string `csv:"Description"`
	Amount      string `csv:"Amount"`
	Type        string `csv:"Type"`
}

// NewPlanCSVRow flattens p; money columns carry two decimals.
func NewPlanCSVRow(p models.EMIPlan) PlanCSVRow {
	row := PlanCSVRow{
		PlanKey:               p.Key,
		Bank:                  p.Bank,
		Last4:                 p.Last4,
		Merchant:              p.Merchant,
		TotalInstallments:     p.TotalInstallments,
		InstallmentsPaid:      p.InstallmentsPaid,
		RemainingInstallments: p.RemainingInstallments,
		Status:                string(p.Status),
		AmountFinanced:        p.AmountFinanced.StringFixed(2),
		TotalInterest:         p.TotalInterest.StringFixed(2),
		TotalGST:              p.TotalGST.StringFixed(2),
		TotalAmount:           p.TotalAmount.StringFixed(2),
		MonthlyEMI:            p.MonthlyEMI.StringFixed(2),
		FirstInstallmentDate:  p.FirstInstallmentDate.String(),
		LastInstallmentDate:   p.LastInstallmentDate.String(),
	}
	if p.Metrics != nil {
		row.EffectiveAnnualRate = p.Metrics.EffectiveAnnualRate.StringFixed(2)
		row.EstimatedCompletion = p.Metrics.EstimatedCompletion.String()
		row.Priority = string(p.Metrics.Priority)
	}
	return row
}

// WritePlansToCSV writes one row per plan to csvFile.
func WritePlansToCSV(plans []models.EMIPlan, csvFile string, logger logging.Logger) error {
	rows := make([]PlanCSVRow, 0, len(plans))
	for _, p := range plans {
		rows = append(rows, NewPlanCSVRow(p))
	}
	return writeRows(rows, csvFile, logger)
}

// WriteTransactionsToCSV writes every transaction of every statement, in
// statement order, to csvFile.
func WriteTransactionsToCSV(statements []models.StatementExtraction, csvFile string, logger logging.Logger) error {
	var rows []TransactionCSVRow
	for _, st := range statements {
		for _, tx := range st.Transactions {
			rows = append(rows, TransactionCSVRow{
				File:        st.Filename,
				Seq:         tx.Seq,
				Date:        tx.Date.String(),
				Description: tx.Description,
				Amount:      tx.Amount.StringFixed(2),
				Type:        string(tx.Type),
			})
		}
	}
	if rows == nil {
		rows = []TransactionCSVRow{}
	}
	return writeRows(rows, csvFile, logger)
}

func writeRows[TRow any](rows []TRow, csvFile string, logger logging.Logger) error {
	logger = logger.WithFields(
		logging.F(logging.FieldOutputFile, csvFile),
		logging.F(logging.FieldCount, len(rows)),
	)
	logger.Debug("Writing CSV file")

	if err := os.MkdirAll(filepath.Dir(csvFile), models.PermissionDirectory); err != nil {
		logger.WithError(err).Error("Failed to create directory")
		return fmt.Errorf("error creating directory: %w", err)
	}

	file, err := os.Create(csvFile) // #nosec G304 -- output path comes from configuration
	if err != nil {
		logger.WithError(err).Error("Failed to create CSV file")
		return fmt.Errorf("error creating CSV file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			logger.WithError(err).Warn("Failed to close file")
		}
	}()

	csvWriter := csv.NewWriter(file)
	csvWriter.Comma = Delimiter

	if err := gocsv.MarshalCSV(rows, gocsv.NewSafeCSVWriter(csvWriter)); err != nil {
		logger.WithError(err).Error("Failed to marshal rows to CSV")
		return fmt.Errorf("error writing CSV data: %w", err)
	}

	logger.Info("Successfully wrote CSV file")
	return nil
}
