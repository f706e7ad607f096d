package emi

import (
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"fjacquet/emi-tracker/internal/logging"
	"fjacquet/emi-tracker/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine() (*Engine, *logging.MockLogger) {
	logger := logging.NewMockLogger()
	return NewEngine(DefaultOptions(), logger), logger
}

func TestRun_PrincipalAndInterestMerge(t *testing.T) {
	d := day(2024, time.February, 10)
	st := newStatement("icici_XX7003_feb.txt").
		principal(d, 2, 6, "NETFLIX", "500").
		interest(d, 2, 6, "NETFLIX", "45").
		build()

	engine, _ := newTestEngine()
	report := engine.Run([]models.StatementExtraction{st})

	require.Len(t, report.Plans, 1)
	plan := report.Plans[0]
	require.Len(t, plan.Installments, 1)

	rec := plan.Installments[0]
	assert.True(t, rec.Principal.Equal(dec("500")))
	assert.True(t, rec.Interest.Equal(dec("45")))
	assert.True(t, rec.GST.IsZero())
	assert.True(t, rec.TotalAmount().Equal(dec("545")))

	assert.Equal(t, "7003_NETFLIX_6_1", plan.Key)
	assert.Equal(t, models.BankICICI, plan.Bank)
	assert.Equal(t, 2, plan.InstallmentsPaid)
	assert.Equal(t, 4, plan.RemainingInstallments)
	assert.Equal(t, models.StatusActive, plan.Status)
}

func TestRun_ComponentsAccumulate(t *testing.T) {
	d := day(2024, time.March, 5)
	st := newStatement("hdfc_card_4417.txt").
		principal(d, 1, 3, "CROMA", "300").
		principal(d, 1, 3, "CROMA", "200").
		interest(d, 1, 3, "CROMA", "20").
		build()

	engine, _ := newTestEngine()
	report := engine.Run([]models.StatementExtraction{st})

	require.Len(t, report.Plans, 1)
	require.Len(t, report.Plans[0].Installments, 1)
	assert.True(t, report.Plans[0].Installments[0].Principal.Equal(dec("500")))
	assert.True(t, report.Plans[0].AmountFinanced.Equal(dec("500")))
}

func TestRun_OrphanGST(t *testing.T) {
	d := day(2024, time.April, 12)
	st := newStatement("icici_XX7003.txt").
		principal(d, 3, 6, "NETFLIX", "500").
		interest(d, 3, 6, "NETFLIX", "45").
		tax(d, "18").
		tax(d, "9").
		build()

	engine, logger := newTestEngine()
	report := engine.Run([]models.StatementExtraction{st})

	require.Len(t, report.Plans, 1)
	rec := report.Plans[0].Installments[0]
	assert.True(t, rec.GST.Equal(dec("18")))
	assert.True(t, rec.TotalAmount().Equal(dec("563")))
	assert.True(t, report.Summary.TotalGSTPaid.Equal(dec("18")))
	assert.True(t, logger.HasEntry("DEBUG", "Dropping tax line without an open installment"))
}

func TestRun_OrphanGSTPicksNearestRecord(t *testing.T) {
	d := day(2024, time.May, 3)
	st := newStatement("icici_XX7003.txt").
		principal(d, 1, 6, "NETFLIX", "500"). // seq 1
		interest(d, 1, 6, "NETFLIX", "45").   // seq 2
		line(d, "SWIGGY", "250", models.TypeDebit).
		line(d, "UBER", "120", models.TypeDebit).
		principal(d, 1, 3, "AMAZON", "1000"). // seq 5
		interest(d, 1, 3, "AMAZON", "80").    // seq 6
		tax(d, "14.40").                      // seq 7 -> AMAZON
		tax(d, "8.10").                       // seq 8 -> NETFLIX, the only open one
		tax(day(2024, time.May, 4), "5").     // no same-date record
		build()

	engine, _ := newTestEngine()
	report := engine.Run([]models.StatementExtraction{st})

	require.Len(t, report.Plans, 2)
	byMerchant := map[string]models.EMIPlan{}
	for _, p := range report.Plans {
		byMerchant[p.Merchant] = p
	}
	assert.True(t, byMerchant["AMAZON"].TotalGST.Equal(dec("14.40")))
	assert.True(t, byMerchant["NETFLIX"].TotalGST.Equal(dec("8.10")))
}

func TestAssignOrphans_TieGoesToEarlierRecord(t *testing.T) {
	d := day(2024, time.May, 3)
	batch := newStatementInstallments(models.CardIdentity{Last4: "7003"})
	first := &models.InstallmentRecord{Date: d, Merchant: "A", SourceSeq: 1}
	second := &models.InstallmentRecord{Date: d, Merchant: "B", SourceSeq: 5}
	batch.records = []*models.InstallmentRecord{second, first}

	tax := models.Transaction{Seq: 3, Date: d, Description: "GST", Amount: dec("18")}
	assigned, dropped := assignOrphans(batch, []models.Transaction{tax}, logging.NewMockLogger())

	assert.Equal(t, 1, assigned)
	assert.Equal(t, 0, dropped)
	assert.True(t, first.GST.Equal(dec("18")))
	assert.True(t, second.GST.IsZero())
}

// Two unrelated AMAZON 6-month plans on the same card: the second starts in
// March, 10 days after the first plan's March installment.
func concurrentPlanStatements() []models.StatementExtraction {
	var statements []models.StatementExtraction
	for m := 1; m <= 8; m++ {
		b := newStatement(fmt.Sprintf("icici_XX7003_2024-%02d.txt", m))
		if m <= 6 {
			d := day(2024, time.Month(m), 10)
			b.principal(d, m, 6, "AMAZON", "1000").interest(d, m, 6, "AMAZON", "90").tax(d, "16.20")
		}
		if m >= 3 {
			d := day(2024, time.Month(m), 20)
			b.principal(d, m-2, 6, "AMAZON", "2500").interest(d, m-2, 6, "AMAZON", "200")
		}
		statements = append(statements, b.build())
	}
	return statements
}

func TestRun_ConcurrentPlansSplit(t *testing.T) {
	engine, _ := newTestEngine()
	report := engine.Run(concurrentPlanStatements())

	require.Len(t, report.Plans, 2)
	assert.Equal(t, "7003_AMAZON_6_1", report.Plans[0].Key)
	assert.Equal(t, "7003_AMAZON_6_2", report.Plans[1].Key)
	assert.NotEqual(t, report.Plans[0].ID, report.Plans[1].ID)

	for i, plan := range report.Plans {
		require.Len(t, plan.Installments, 6, "plan %d", i+1)
		for n, inst := range plan.Installments {
			assert.Equal(t, n+1, inst.InstallmentNumber)
		}
		assert.Equal(t, models.StatusCompleted, plan.Status)
	}

	assert.Equal(t, "2024-01-10", report.Plans[0].FirstInstallmentDate.String())
	assert.Equal(t, "2024-03-20", report.Plans[1].FirstInstallmentDate.String())
	assert.True(t, report.Plans[0].AmountFinanced.Equal(dec("6000")))
	assert.True(t, report.Plans[1].AmountFinanced.Equal(dec("15000")))
	assert.True(t, report.Plans[0].TotalGST.Equal(dec("97.20")))
	assert.True(t, report.Plans[1].TotalGST.IsZero())
}

func TestRun_MinimumGapSeparatesPlans(t *testing.T) {
	statements := []models.StatementExtraction{
		newStatement("icici_XX7003_a.txt").principal(day(2024, time.January, 10), 1, 6, "CROMA", "100").build(),
		newStatement("icici_XX7003_b.txt").principal(day(2024, time.January, 25), 2, 6, "CROMA", "100").build(),
	}

	engine, _ := newTestEngine()
	report := engine.Run(statements)
	require.Len(t, report.Plans, 2, "15 days is below the default 20-day gap")

	opts := DefaultOptions()
	opts.MinGapDays = 10
	report = NewEngine(opts, logging.NewMockLogger()).Run(statements)
	require.Len(t, report.Plans, 1)
	assert.Equal(t, 2, report.Plans[0].InstallmentsPaid)
}

func TestRun_UnparseableDatesSkipGapTest(t *testing.T) {
	statements := []models.StatementExtraction{
		newStatement("icici_XX7003_a.txt").principal(models.ParseDate("N/A-1"), 1, 3, "CROMA", "100").build(),
		newStatement("icici_XX7003_b.txt").principal(models.ParseDate("N/A-2"), 2, 3, "CROMA", "100").build(),
	}

	engine, _ := newTestEngine()
	report := engine.Run(statements)
	require.Len(t, report.Plans, 1)
	assert.Equal(t, []string{"N/A-1", "N/A-2"}, []string{
		report.Plans[0].Installments[0].Date.String(),
		report.Plans[0].Installments[1].Date.String(),
	})
}

func TestRun_CompletionTransition(t *testing.T) {
	var statements []models.StatementExtraction
	for n := 1; n <= 6; n++ {
		d := day(2024, time.Month(n), 15)
		statements = append(statements, newStatement(fmt.Sprintf("icici_XX7003_%d.txt", n)).
			principal(d, n, 6, "FLIPKART", "800").
			interest(d, n, 6, "FLIPKART", "60").
			build())
	}

	engine, _ := newTestEngine()

	before := engine.Run(statements[:5])
	require.Len(t, before.Plans, 1)
	assert.Equal(t, models.StatusActive, before.Plans[0].Status)
	assert.Equal(t, 1, before.Plans[0].RemainingInstallments)
	assert.Equal(t, 1, before.Summary.ActivePlans)

	after := engine.Run(statements)
	require.Len(t, after.Plans, 1)
	assert.Equal(t, models.StatusCompleted, after.Plans[0].Status)
	assert.Equal(t, 0, after.Plans[0].RemainingInstallments)
	assert.Equal(t, 1, after.Summary.CompletedPlans)
	assert.Equal(t, models.PriorityClosed, after.Plans[0].Metrics.Priority)
	assert.Equal(t, before.Plans[0].ID, after.Plans[0].ID, "plan identity is stable across runs")
}

func TestRun_OverlappingStatementsDoNotDoubleCount(t *testing.T) {
	d := day(2024, time.February, 10)
	st := newStatement("icici_XX7003_feb.txt").principal(d, 2, 6, "NETFLIX", "500").build()
	again := newStatement("icici_XX7003_feb_copy.txt").principal(d, 2, 6, "NETFLIX", "500").build()

	engine, logger := newTestEngine()
	report := engine.Run([]models.StatementExtraction{st, again})

	require.Len(t, report.Plans, 1)
	require.Len(t, report.Plans[0].Installments, 1)
	assert.True(t, report.Plans[0].AmountFinanced.Equal(dec("500")))
	assert.True(t, logger.HasEntry("DEBUG", "Installment already seen in an earlier statement"))
}

func TestRun_CreditLinesAreIgnored(t *testing.T) {
	d := day(2024, time.February, 10)
	st := newStatement("icici_XX7003.txt").
		principal(d, 2, 6, "NETFLIX", "500").
		line(d, "Principal Amount Amortization - <2/6>NETFLIX", "500", models.TypeCredit).
		build()

	engine, _ := newTestEngine()
	report := engine.Run([]models.StatementExtraction{st})
	require.Len(t, report.Plans, 1)
	assert.True(t, report.Plans[0].AmountFinanced.Equal(dec("500")))
}

func TestRun_SeparateCardsSeparatePlans(t *testing.T) {
	d := day(2024, time.February, 10)
	engine, _ := newTestEngine()
	report := engine.Run([]models.StatementExtraction{
		newStatement("icici_XX7003.txt").principal(d, 1, 6, "NETFLIX", "500").build(),
		newStatement("icici_XX1111.txt").principal(d, 1, 6, "NETFLIX", "500").build(),
	})

	require.Len(t, report.Plans, 2)
	assert.Equal(t, "7003_NETFLIX_6_1", report.Plans[0].Key)
	assert.Equal(t, "1111_NETFLIX_6_1", report.Plans[1].Key)
}

func TestRun_Invariants(t *testing.T) {
	engine, _ := newTestEngine()
	statements := concurrentPlanStatements()
	report := engine.Run(statements[:5])

	for _, plan := range report.Plans {
		sum := decimal.Zero
		maxN := 0
		for _, inst := range plan.Installments {
			assert.True(t, inst.Principal.Add(inst.Interest).Add(inst.GST).Equal(inst.TotalAmount()))
			sum = sum.Add(inst.TotalAmount())
			if inst.InstallmentNumber > maxN {
				maxN = inst.InstallmentNumber
			}
		}
		assert.True(t, sum.Equal(plan.TotalAmount))
		assert.Equal(t, maxN, plan.InstallmentsPaid)

		remaining := plan.TotalInstallments - plan.InstallmentsPaid
		if remaining < 0 {
			remaining = 0
		}
		assert.Equal(t, remaining, plan.RemainingInstallments)
		assert.Equal(t, plan.RemainingInstallments == 0, plan.Status == models.StatusCompleted)
	}
}

func TestRun_Deterministic(t *testing.T) {
	statements := concurrentPlanStatements()

	first, err := json.MarshalIndent(NewEngine(DefaultOptions(), logging.NewMockLogger()).Run(statements), "", "  ")
	require.NoError(t, err)
	second, err := json.MarshalIndent(NewEngine(DefaultOptions(), logging.NewMockLogger()).Run(statements), "", "  ")
	require.NoError(t, err)

	assert.Equal(t, string(first), string(second))
}

func TestRun_OrdersStatementsByPeriod(t *testing.T) {
	statements := concurrentPlanStatements()
	shuffled := []models.StatementExtraction{
		statements[3], statements[7], statements[0], statements[5],
		statements[1], statements[6], statements[4], statements[2],
	}

	want, err := json.Marshal(NewEngine(DefaultOptions(), logging.NewMockLogger()).Run(statements))
	require.NoError(t, err)
	got, err := json.Marshal(NewEngine(DefaultOptions(), logging.NewMockLogger()).Run(shuffled))
	require.NoError(t, err)

	assert.JSONEq(t, string(want), string(got))
	assert.Equal(t, "icici_XX7003_2024-04.txt", shuffled[0].Filename, "input slice is left untouched")
}

func TestRun_Empty(t *testing.T) {
	engine, _ := newTestEngine()
	report := engine.Run(nil)
	assert.Equal(t, 0, report.Summary.TotalPlans)
	assert.NotNil(t, report.Plans)

	out, err := json.Marshal(report)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"plans":[]`)
}

func TestCardFor(t *testing.T) {
	card := CardFor(models.StatementExtraction{Filename: "statement_XX4417.txt", Bank: models.BankHDFC})
	assert.Equal(t, models.CardIdentity{Bank: models.BankHDFC, Last4: "4417"}, card)

	card = CardFor(models.StatementExtraction{Filename: "sbi_statement.txt", Bank: models.BankHDFC})
	assert.Equal(t, models.CardIdentity{Bank: models.BankSBI, Last4: models.UnknownLast4}, card)
}
