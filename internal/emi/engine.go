package emi

import (
	"sort"

	"fjacquet/emi-tracker/internal/common"
	"fjacquet/emi-tracker/internal/logging"
	"fjacquet/emi-tracker/internal/models"

	"github.com/shopspring/decimal"
)

// Options tunes plan reconstruction.
type Options struct {
	MinGapDays          int
	PriorityBurdenScale decimal.Decimal
}

// DefaultOptions returns the standard tunables.
func DefaultOptions() Options {
	return Options{
		MinGapDays:          20,
		PriorityBurdenScale: decimal.NewFromInt(100000),
	}
}

// Engine runs the reconstruction pipeline over statement extractions.
type Engine struct {
	opts   Options
	logger logging.Logger
}

// NewEngine creates a new Engine.
func NewEngine(opts Options, logger logging.Logger) *Engine {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &Engine{opts: opts, logger: logger}
}

// Run reconstructs plans from statements. Statements are reduced one at a
// time in chronological order (see models.SortStatementsChronologically) and
// transactions in Seq order, so identical input always yields identical
// output regardless of how the statements were named or supplied.
func (e *Engine) Run(statements []models.StatementExtraction) models.EMIReport {
	ordered := make([]models.StatementExtraction, len(statements))
	copy(ordered, statements)
	models.SortStatementsChronologically(ordered)

	extractor := NewTokenExtractor(e.logger)
	assembler := NewAssembler(e.opts.MinGapDays, e.logger)

	for _, st := range ordered {
		card := CardFor(st)
		logger := e.logger.WithFields(
			logging.F(logging.FieldStatement, st.Filename),
			logging.F(logging.FieldCard, card.Last4))

		txs := make([]models.Transaction, len(st.Transactions))
		copy(txs, st.Transactions)
		sort.SliceStable(txs, func(i, j int) bool { return txs[i].Seq < txs[j].Seq })

		batch := newStatementInstallments(card)
		taxLines := extractor.extract(batch, txs)
		assigned, dropped := assignOrphans(batch, taxLines, logger)
		extractor.commit(batch)

		for _, rec := range batch.records {
			assembler.Add(card, *rec)
		}

		logger.Debug("Statement reduced",
			logging.F(logging.FieldCount, len(batch.records)),
			logging.F("gst_assigned", assigned),
			logging.F("gst_dropped", dropped))
	}

	plans := make([]models.EMIPlan, 0, len(assembler.Plans()))
	for _, plan := range assembler.Plans() {
		Finalize(plan)
		plan.Metrics = ComputeMetrics(plan, e.opts.PriorityBurdenScale)
		plans = append(plans, *plan)
	}

	report := models.EMIReport{
		Summary: Summarize(plans),
		Plans:   plans,
	}

	e.logger.Info("EMI plans reconstructed",
		logging.F("statements", len(statements)),
		logging.F("plans", report.Summary.TotalPlans),
		logging.F("active", report.Summary.ActivePlans),
		logging.F("completed", report.Summary.CompletedPlans))

	return report
}

// CardFor derives the card identity of a statement from its filename,
// falling back to the bank recorded at parse time.
func CardFor(st models.StatementExtraction) models.CardIdentity {
	card := common.ExtractCardFromFilename(st.Filename).CardIdentity
	if card.Bank == models.BankUnknown && st.Bank != "" {
		card.Bank = st.Bank
	}
	return card
}
