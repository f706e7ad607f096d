package emi

import (
	"fjacquet/emi-tracker/internal/models"

	"github.com/shopspring/decimal"
)

var (
	hundred    = decimal.NewFromInt(100)
	twelve     = decimal.NewFromInt(12)
	one        = decimal.NewFromInt(1)
	rateCeil   = decimal.NewFromInt(36)
	rateWeight = decimal.NewFromInt(50)
	tailWeight = decimal.NewFromInt(30)
	sizeWeight = decimal.NewFromInt(20)
)

// Priority label thresholds on the 0-100 score.
var (
	HighPriorityScore   = decimal.NewFromInt(60)
	MediumPriorityScore = decimal.NewFromInt(35)
)

// Finalize computes plan totals, the observed monthly EMI, status and the
// first/last installment dates.
func Finalize(plan *models.EMIPlan) {
	plan.AmountFinanced = decimal.Zero
	plan.TotalInterest = decimal.Zero
	plan.TotalGST = decimal.Zero

	for _, inst := range plan.Installments {
		plan.AmountFinanced = plan.AmountFinanced.Add(inst.Principal)
		plan.TotalInterest = plan.TotalInterest.Add(inst.Interest)
		plan.TotalGST = plan.TotalGST.Add(inst.GST)
	}
	plan.TotalAmount = plan.AmountFinanced.Add(plan.TotalInterest).Add(plan.TotalGST)

	plan.MonthlyEMI = decimal.Zero
	if n := len(plan.Installments); n > 0 {
		plan.MonthlyEMI = plan.TotalAmount.Div(decimal.NewFromInt(int64(n))).Round(2)
		plan.FirstInstallmentDate = plan.Installments[0].Date
		plan.LastInstallmentDate = plan.Installments[n-1].Date
	}

	plan.RefreshProgress()
}

// ComputeMetrics derives the presentation metrics of a finalized plan.
// burdenScale is the remaining burden at which the size component of the
// priority score bottoms out.
func ComputeMetrics(plan *models.EMIPlan, burdenScale decimal.Decimal) *models.PlanMetrics {
	m := &models.PlanMetrics{
		EffectiveAnnualRate: EffectiveAnnualRate(plan),
		CompletionPercent:   decimal.Zero,
		EstimatedCompletion: plan.LastInstallmentDate.AddMonths(plan.RemainingInstallments),
		RemainingBurden:     plan.MonthlyEMI.Mul(decimal.NewFromInt(int64(plan.RemainingInstallments))).Round(2),
	}

	if plan.TotalInstallments > 0 {
		tenure := decimal.NewFromInt(int64(plan.TotalInstallments))
		m.CompletionPercent = decimal.Min(
			decimal.NewFromInt(int64(plan.InstallmentsPaid)).Div(tenure).Mul(hundred),
			hundred,
		).Round(2)
	}

	if plan.IsCompleted() {
		m.PriorityScore = decimal.Zero
		m.Priority = models.PriorityClosed
		return m
	}

	m.PriorityScore = priorityScore(plan, m, burdenScale)
	m.Priority = priorityLabel(m.PriorityScore)
	return m
}

// EffectiveAnnualRate approximates the annualized interest rate in percent:
// interest / financed / (tenure / 12) * 100.
func EffectiveAnnualRate(plan *models.EMIPlan) decimal.Decimal {
	if plan.TotalInterest.IsZero() || plan.AmountFinanced.IsZero() || plan.TotalInstallments <= 0 {
		return decimal.Zero
	}
	years := decimal.NewFromInt(int64(plan.TotalInstallments)).Div(twelve)
	return plan.TotalInterest.Div(plan.AmountFinanced).Div(years).Mul(hundred).Round(2)
}

func priorityScore(plan *models.EMIPlan, m *models.PlanMetrics, burdenScale decimal.Decimal) decimal.Decimal {
	rate := decimal.Min(m.EffectiveAnnualRate.Div(rateCeil), one)

	tail := decimal.Zero
	if plan.TotalInstallments > 0 {
		tail = decimal.NewFromInt(int64(plan.RemainingInstallments)).
			Div(decimal.NewFromInt(int64(plan.TotalInstallments)))
	}

	size := one
	if burdenScale.IsPositive() {
		size = one.Sub(decimal.Min(m.RemainingBurden.Div(burdenScale), one))
	}

	return rateWeight.Mul(rate).
		Add(tailWeight.Mul(tail)).
		Add(sizeWeight.Mul(size)).
		Round(2)
}

func priorityLabel(score decimal.Decimal) models.Priority {
	switch {
	case score.GreaterThanOrEqual(HighPriorityScore):
		return models.PriorityHigh
	case score.GreaterThanOrEqual(MediumPriorityScore):
		return models.PriorityMedium
	default:
		return models.PriorityLow
	}
}

// Summarize computes the aggregate counters over plans.
func Summarize(plans []models.EMIPlan) models.Summary {
	s := models.Summary{
		TotalPlans:          len(plans),
		TotalAmountFinanced: decimal.Zero,
		TotalInterestPaid:   decimal.Zero,
		TotalGSTPaid:        decimal.Zero,
	}
	for _, p := range plans {
		if p.IsCompleted() {
			s.CompletedPlans++
		} else {
			s.ActivePlans++
		}
		s.TotalAmountFinanced = s.TotalAmountFinanced.Add(p.AmountFinanced)
		s.TotalInterestPaid = s.TotalInterestPaid.Add(p.TotalInterest)
		s.TotalGSTPaid = s.TotalGSTPaid.Add(p.TotalGST)
	}
	return s
}
