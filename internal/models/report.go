package models

import "github.com/shopspring/decimal"

// Summary holds the aggregate counters written next to the plans.
type Summary struct {
	TotalPlans          int             `json:"totalPlans"`
	ActivePlans         int             `json:"activePlans"`
	CompletedPlans      int             `json:"completedPlans"`
	TotalAmountFinanced decimal.Decimal `json:"totalAmountFinanced"`
	TotalInterestPaid   decimal.Decimal `json:"totalInterestPaid"`
	TotalGSTPaid        decimal.Decimal `json:"totalGSTPaid"`
}

// EMIReport is the output document of a run.
type EMIReport struct {
	Summary Summary   `json:"summary"`
	Plans   []EMIPlan `json:"plans"`
}
