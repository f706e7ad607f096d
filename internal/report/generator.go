// Package report writes the EMI report artifacts and the console summary.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"fjacquet/emi-tracker/internal/common"
	"fjacquet/emi-tracker/internal/currencyutils"
	"fjacquet/emi-tracker/internal/fileutils"
	"fjacquet/emi-tracker/internal/logging"
	"fjacquet/emi-tracker/internal/models"

	"github.com/fatih/color"
)

// TransactionsCSVFile is the name of the optional transaction export.
const TransactionsCSVFile = "transactions.csv"

// ReportGenerator renders EMI reports to files and terminals.
type ReportGenerator struct {
	logger logging.Logger
}

// NewReportGenerator creates a new instance of ReportGenerator.
func NewReportGenerator(logger logging.Logger) *ReportGenerator {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &ReportGenerator{logger: logger}
}

// GenerateReport renders report in the given format. Only "json" is
// supported; the output carries no timestamps so reruns are byte-identical.
func (g *ReportGenerator) GenerateReport(report models.EMIReport, format string) ([]byte, error) {
	switch format {
	case "json":
		return g.generateJSONReport(report)
	default:
		return nil, fmt.Errorf("unsupported report format: %s", format)
	}
}

func (g *ReportGenerator) generateJSONReport(report models.EMIReport) ([]byte, error) {
	if report.Plans == nil {
		report.Plans = []models.EMIPlan{}
	}
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		g.logger.WithError(err).Error("Failed to marshal JSON report")
		return nil, fmt.Errorf("failed to marshal JSON report: %w", err)
	}
	return append(data, '\n'), nil
}

// Artifacts lists the files written by WriteReport.
type Artifacts struct {
	PlansJSON       string
	PlansCSV        string
	TransactionsCSV string
}

// WriteOptions controls where WriteReport puts its files.
type WriteOptions struct {
	Directory string
	PlansFile string
	// CSV also writes the plans and, when statements are given, the
	// transactions as CSV next to the JSON report.
	CSV        bool
	Statements []models.StatementExtraction
}

// WriteReport writes the JSON report and the optional CSV exports.
func (g *ReportGenerator) WriteReport(report models.EMIReport, opts WriteOptions) (Artifacts, error) {
	var out Artifacts

	if err := fileutils.EnsureDirectoryExists(opts.Directory); err != nil {
		return out, fmt.Errorf("failed to create output directory: %w", err)
	}

	data, err := g.GenerateReport(report, "json")
	if err != nil {
		return out, err
	}

	out.PlansJSON = filepath.Join(opts.Directory, opts.PlansFile)
	if err := fileutils.WriteFile(out.PlansJSON, data, models.PermissionReportFile); err != nil {
		return out, fmt.Errorf("failed to write report: %w", err)
	}
	g.logger.Info("Wrote EMI report",
		logging.F(logging.FieldOutputFile, out.PlansJSON),
		logging.F(logging.FieldCount, len(report.Plans)))

	if !opts.CSV {
		return out, nil
	}

	out.PlansCSV = strings.TrimSuffix(out.PlansJSON, filepath.Ext(out.PlansJSON)) + ".csv"
	if err := common.WritePlansToCSV(report.Plans, out.PlansCSV, g.logger); err != nil {
		return out, err
	}

	if len(opts.Statements) > 0 {
		out.TransactionsCSV = filepath.Join(opts.Directory, TransactionsCSVFile)
		if err := common.WriteTransactionsToCSV(opts.Statements, out.TransactionsCSV, g.logger); err != nil {
			return out, err
		}
	}
	return out, nil
}

var priorityColors = map[models.Priority]*color.Color{
	models.PriorityHigh:   color.New(color.FgRed, color.Bold),
	models.PriorityMedium: color.New(color.FgYellow),
	models.PriorityLow:    color.New(color.FgGreen),
	models.PriorityClosed: color.New(color.FgHiBlack),
}

// PrintSummary writes a human-readable overview of report to w.
// Colors follow fatih/color's terminal detection and NO_COLOR.
func PrintSummary(w io.Writer, report models.EMIReport) {
	s := report.Summary
	header := color.New(color.Bold, color.FgCyan)

	_, _ = header.Fprintln(w, "EMI summary")
	_, _ = fmt.Fprintf(w, "  Plans:           %d (active %d, completed %d)\n", s.TotalPlans, s.ActivePlans, s.CompletedPlans)
	_, _ = fmt.Fprintf(w, "  Amount financed: %s\n", currencyutils.FormatINR(s.TotalAmountFinanced))
	_, _ = fmt.Fprintf(w, "  Interest paid:   %s\n", currencyutils.FormatINR(s.TotalInterestPaid))
	_, _ = fmt.Fprintf(w, "  GST paid:        %s\n", currencyutils.FormatINR(s.TotalGSTPaid))

	if len(report.Plans) == 0 {
		return
	}

	_, _ = fmt.Fprintln(w)
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "PLAN\tPROGRESS\tMONTHLY EMI\tRATE %\tPRIORITY")
	for _, p := range report.Plans {
		rate, priority := "-", "-"
		if p.Metrics != nil {
			rate = p.Metrics.EffectiveAnnualRate.StringFixed(2)
			priority = string(p.Metrics.Priority)
			if c, ok := priorityColors[p.Metrics.Priority]; ok {
				priority = c.Sprint(priority)
			}
		}
		_, _ = fmt.Fprintf(tw, "%s\t%d/%d\t%s\t%s\t%s\n",
			p.Key, p.InstallmentsPaid, p.TotalInstallments,
			currencyutils.FormatINR(p.MonthlyEMI), rate, priority)
	}
	_ = tw.Flush()
}
