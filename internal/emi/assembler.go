package emi

import (
	"sort"

	"fjacquet/emi-tracker/internal/logging"
	"fjacquet/emi-tracker/internal/models"

	"github.com/google/uuid"
)

// planNamespace seeds the name-based plan IDs so a key always maps to the
// same ID.
var planNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("emi-tracker/plans"))

// PlanID returns the deterministic ID of key.
func PlanID(key models.PlanKey) string {
	return uuid.NewSHA1(planNamespace, []byte(key.String())).String()
}

// Assembler groups installment records into plans. Plans sharing a prefix
// are told apart by their sequence index.
type Assembler struct {
	minGapDays int
	logger     logging.Logger

	plans    []*models.EMIPlan
	byPrefix map[models.PlanPrefix][]*models.EMIPlan
}

// NewAssembler creates an Assembler. minGapDays is the smallest number of
// days between consecutive installments of one plan.
func NewAssembler(minGapDays int, logger logging.Logger) *Assembler {
	return &Assembler{
		minGapDays: minGapDays,
		logger:     logger,
		byPrefix:   make(map[models.PlanPrefix][]*models.EMIPlan),
	}
}

// Add places rec into the first eligible plan for its prefix, creating a new
// plan when none is eligible, and returns that plan.
func (a *Assembler) Add(card models.CardIdentity, rec models.InstallmentRecord) *models.EMIPlan {
	prefix := models.PlanPrefix{
		Last4:             card.Last4,
		Merchant:          rec.Merchant,
		TotalInstallments: rec.TotalInstallments,
	}

	candidates := a.byPrefix[prefix]
	for _, plan := range candidates {
		if a.eligible(plan, rec) {
			insert(plan, rec)
			return plan
		}
	}

	key := models.PlanKey{PlanPrefix: prefix, Sequence: len(candidates) + 1}
	plan := &models.EMIPlan{
		ID:                PlanID(key),
		Key:               key.String(),
		Bank:              card.Bank,
		Last4:             card.Last4,
		Merchant:          rec.Merchant,
		TotalInstallments: rec.TotalInstallments,
	}
	insert(plan, rec)

	a.byPrefix[prefix] = append(candidates, plan)
	a.plans = append(a.plans, plan)

	a.logger.Debug("Created EMI plan",
		logging.F(logging.FieldPlan, plan.Key),
		logging.F(logging.FieldInstallment, rec.InstallmentNumber),
		logging.F(logging.FieldDate, rec.Date.String()))

	return plan
}

// eligible reports whether rec continues plan: its number must exceed the
// plan's highest so far and it must fall at least minGapDays after the
// plan's latest installment. Unparsed dates skip the gap test.
func (a *Assembler) eligible(plan *models.EMIPlan, rec models.InstallmentRecord) bool {
	if rec.InstallmentNumber <= plan.MaxInstallment() {
		return false
	}
	gap, ok := plan.LatestDate().DaysUntil(rec.Date)
	if !ok {
		return true
	}
	return gap >= a.minGapDays
}

// Plans returns the plans in creation order.
func (a *Assembler) Plans() []*models.EMIPlan {
	return a.plans
}

func insert(plan *models.EMIPlan, rec models.InstallmentRecord) {
	plan.Installments = append(plan.Installments, rec)
	sort.SliceStable(plan.Installments, func(i, j int) bool {
		x, y := plan.Installments[i], plan.Installments[j]
		if c := x.Date.Compare(y.Date); c != 0 {
			return c < 0
		}
		if x.InstallmentNumber != y.InstallmentNumber {
			return x.InstallmentNumber < y.InstallmentNumber
		}
		return x.SourceSeq < y.SourceSeq
	})
	plan.RefreshProgress()
}
