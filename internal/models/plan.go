package models

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// PlanStatus is the completion state of an EMI plan.
type PlanStatus string

const (
	StatusActive    PlanStatus = "active"
	StatusCompleted PlanStatus = "completed"
)

// Priority buckets for closing a plan early.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
	PriorityClosed Priority = "closed"
)

// PlanPrefix groups installments that could belong to the same plan.
type PlanPrefix struct {
	Last4             string
	Merchant          string
	TotalInstallments int
}

// PlanKey is a PlanPrefix plus the 1-based sequence index that separates
// unrelated purchases financed the same way.
type PlanKey struct {
	PlanPrefix
	Sequence int
}

// String renders the key as <last4>_<merchant>_<tenure>_<sequence>.
func (k PlanKey) String() string {
	return fmt.Sprintf("%s_%s_%d_%d", k.Last4, k.Merchant, k.TotalInstallments, k.Sequence)
}

// PlanMetrics are presentation-level derivations over a finalized plan.
type PlanMetrics struct {
	EffectiveAnnualRate decimal.Decimal `json:"effectiveAnnualRate"`
	CompletionPercent   decimal.Decimal `json:"completionPercent"`
	EstimatedCompletion Date            `json:"estimatedCompletionDate"`
	RemainingBurden     decimal.Decimal `json:"remainingBurden"`
	PriorityScore       decimal.Decimal `json:"priorityScore"`
	Priority            Priority        `json:"priority"`
}

// EMIPlan aggregates the installments of one financed purchase.
type EMIPlan struct {
	ID                    string              `json:"id"`
	Key                   string              `json:"planKey"`
	Bank                  string              `json:"bank"`
	Last4                 string              `json:"last4Digits"`
	Merchant              string              `json:"merchant"`
	TotalInstallments     int                 `json:"totalInstallments"`
	InstallmentsPaid      int                 `json:"installmentsPaid"`
	RemainingInstallments int                 `json:"remainingInstallments"`
	Status                PlanStatus          `json:"status"`
	AmountFinanced        decimal.Decimal     `json:"amountFinanced"`
	TotalInterest         decimal.Decimal     `json:"totalInterest"`
	TotalGST              decimal.Decimal     `json:"totalGst"`
	TotalAmount           decimal.Decimal     `json:"totalAmount"`
	MonthlyEMI            decimal.Decimal     `json:"monthlyEmi"`
	FirstInstallmentDate  Date                `json:"firstInstallmentDate"`
	LastInstallmentDate   Date                `json:"lastInstallmentDate"`
	Installments          []InstallmentRecord `json:"installments"`
	Metrics               *PlanMetrics        `json:"metrics,omitempty"`
}

// MaxInstallment returns the highest installment number recorded so far.
func (p *EMIPlan) MaxInstallment() int {
	maxN := 0
	for _, inst := range p.Installments {
		if inst.InstallmentNumber > maxN {
			maxN = inst.InstallmentNumber
		}
	}
	return maxN
}

// LatestDate returns the date of the most recent installment, assuming the
// installment list is date-sorted.
func (p *EMIPlan) LatestDate() Date {
	if len(p.Installments) == 0 {
		return Date{}
	}
	return p.Installments[len(p.Installments)-1].Date
}

// RefreshProgress recomputes installmentsPaid, remainingInstallments and
// status from the current installment list.
func (p *EMIPlan) RefreshProgress() {
	p.InstallmentsPaid = p.MaxInstallment()
	p.RemainingInstallments = p.TotalInstallments - p.InstallmentsPaid
	if p.RemainingInstallments < 0 {
		p.RemainingInstallments = 0
	}
	if p.RemainingInstallments == 0 {
		p.Status = StatusCompleted
	} else {
		p.Status = StatusActive
	}
}

// IsCompleted reports whether every installment has been observed.
func (p *EMIPlan) IsCompleted() bool {
	return p.Status == StatusCompleted
}
