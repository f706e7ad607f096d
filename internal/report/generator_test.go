package report

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"fjacquet/emi-tracker/internal/emi"
	"fjacquet/emi-tracker/internal/logging"
	"fjacquet/emi-tracker/internal/models"

	"github.com/fatih/color"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tx(seq int, date, desc, amount string) models.Transaction {
	return models.Transaction{
		Seq:         seq,
		Date:        models.ParseDate(date),
		Description: desc,
		Amount:      decimal.RequireFromString(amount),
		Type:        models.TypeDebit,
	}
}

func sampleStatements() []models.StatementExtraction {
	return []models.StatementExtraction{{
		Filename: "hdfc_xx4417_jan.txt",
		Bank:     models.BankHDFC,
		Transactions: []models.Transaction{
			tx(1, "2024-01-07", "Principal Amount Amortization - <2/6>NETFLIX", "500.00"),
			tx(2, "2024-01-07", "Interest Amount Amortization - <2/6>NETFLIX", "45.00"),
			tx(3, "2024-01-07", "IGST-CI@18%", "8.10"),
		},
	}}
}

func sampleReport() models.EMIReport {
	engine := emi.NewEngine(emi.DefaultOptions(), logging.NewMockLogger())
	return engine.Run(sampleStatements())
}

func TestGenerateReport_JSONIsDeterministic(t *testing.T) {
	g := NewReportGenerator(logging.NewMockLogger())

	first, err := g.GenerateReport(sampleReport(), "json")
	require.NoError(t, err)
	second, err := g.GenerateReport(sampleReport(), "json")
	require.NoError(t, err)
	assert.Equal(t, first, second)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(first, &decoded))
	plans, ok := decoded["plans"].([]any)
	require.True(t, ok)
	require.Len(t, plans, 1)
	plan := plans[0].(map[string]any)
	assert.Equal(t, "4417_NETFLIX_6_1", plan["planKey"])
	assert.Equal(t, "2024-01-07", plan["firstInstallmentDate"])
}

func TestGenerateReport_EmptyPlansRenderAsArray(t *testing.T) {
	g := NewReportGenerator(logging.NewMockLogger())
	data, err := g.GenerateReport(models.EMIReport{}, "json")
	require.NoError(t, err)
	assert.Contains(t, string(data), `"plans": []`)
}

func TestGenerateReport_UnsupportedFormat(t *testing.T) {
	g := NewReportGenerator(logging.NewMockLogger())
	_, err := g.GenerateReport(models.EMIReport{}, "xml")
	assert.EqualError(t, err, "unsupported report format: xml")
}

func TestWriteReport(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	logger := logging.NewMockLogger()
	g := NewReportGenerator(logger)

	t.Run("json only", func(t *testing.T) {
		arts, err := g.WriteReport(sampleReport(), WriteOptions{Directory: dir, PlansFile: "emi_plans.json"})
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "emi_plans.json"), arts.PlansJSON)
		assert.Empty(t, arts.PlansCSV)
		assert.FileExists(t, arts.PlansJSON)
		assert.True(t, logger.HasEntry("INFO", "Wrote EMI report"))
	})

	t.Run("with csv", func(t *testing.T) {
		arts, err := g.WriteReport(sampleReport(), WriteOptions{
			Directory:  dir,
			PlansFile:  "emi_plans.json",
			CSV:        true,
			Statements: sampleStatements(),
		})
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "emi_plans.csv"), arts.PlansCSV)
		assert.Equal(t, filepath.Join(dir, TransactionsCSVFile), arts.TransactionsCSV)

		plans, err := os.ReadFile(arts.PlansCSV)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(string(plans), "PlanKey,"))
		assert.Contains(t, string(plans), "4417_NETFLIX_6_1")

		txs, err := os.ReadFile(arts.TransactionsCSV)
		require.NoError(t, err)
		assert.Equal(t, 4, strings.Count(string(txs), "\n"))
	})

	t.Run("rerun is byte identical", func(t *testing.T) {
		path := filepath.Join(dir, "emi_plans.json")
		before, err := os.ReadFile(path)
		require.NoError(t, err)

		_, err = g.WriteReport(sampleReport(), WriteOptions{Directory: dir, PlansFile: "emi_plans.json"})
		require.NoError(t, err)

		after, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, before, after)
	})
}

func TestPrintSummary(t *testing.T) {
	prev := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = prev })

	var buf bytes.Buffer
	PrintSummary(&buf, sampleReport())
	out := buf.String()

	assert.Contains(t, out, "EMI summary")
	assert.Contains(t, out, "Plans:           1 (active 1, completed 0)")
	assert.Contains(t, out, "Amount financed: ₹500.00")
	assert.Contains(t, out, "Interest paid:   ₹45.00")
	assert.Contains(t, out, "GST paid:        ₹8.10")
	assert.Contains(t, out, "4417_NETFLIX_6_1")
	assert.Contains(t, out, "2/6")
	assert.Contains(t, out, "₹553.10")
}

func TestPrintSummary_NoPlans(t *testing.T) {
	var buf bytes.Buffer
	PrintSummary(&buf, models.EMIReport{})
	assert.NotContains(t, buf.String(), "PLAN")
}
