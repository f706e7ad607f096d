package models

import (
	"sort"

	"github.com/shopspring/decimal"
)

// TransactionType is the direction of a statement line.
type TransactionType string

const (
	TypeDebit  TransactionType = "debit"
	TypeCredit TransactionType = "credit"
)

// Transaction is one deduplicated statement line. Seq is the run-wide ordering
// key assigned when the line was parsed or loaded; it is never reused.
type Transaction struct {
	Seq         int             `json:"seq"`
	Date        Date            `json:"date"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Type        TransactionType `json:"type"`
}

// IsCredit reports whether the line reduces the card balance.
func (t Transaction) IsCredit() bool {
	return t.Type == TypeCredit
}

// DedupKey is the conservative identity used to collapse exact repeats.
type DedupKey struct {
	Date        string
	Amount      string
	Description string
}

// DedupKey returns the (date, amount, description) identity of t.
func (t Transaction) DedupKey() DedupKey {
	return DedupKey{
		Date:        t.Date.String(),
		Amount:      t.Amount.String(),
		Description: t.Description,
	}
}

// StatementExtraction is the per-file record that crosses the boundary
// between the text parser and the EMI engine.
type StatementExtraction struct {
	Filename     string        `json:"filename"`
	Bank         string        `json:"bank,omitempty"`
	Transactions []Transaction `json:"transactions"`
}

// PeriodStart returns the earliest parsed transaction date of s, or the zero
// Date when none parsed.
func (s StatementExtraction) PeriodStart() Date {
	var start Date
	for _, tx := range s.Transactions {
		if tx.Date.Valid() && (!start.Valid() || tx.Date.Time.Before(start.Time)) {
			start = tx.Date
		}
	}
	return start
}

// PeriodEnd returns the latest parsed transaction date of s, or the zero Date
// when none parsed.
func (s StatementExtraction) PeriodEnd() Date {
	var end Date
	for _, tx := range s.Transactions {
		if tx.Date.Valid() && (!end.Valid() || tx.Date.Time.After(end.Time)) {
			end = tx.Date
		}
	}
	return end
}

// SortStatementsChronologically orders statements by PeriodStart. Equal
// starts keep their relative order; statements without a parsed date go last.
func SortStatementsChronologically(statements []StatementExtraction) {
	keys := make([]Date, len(statements))
	for i := range statements {
		keys[i] = statements[i].PeriodStart()
	}
	sort.Stable(byPeriod{statements: statements, keys: keys})
}

type byPeriod struct {
	statements []StatementExtraction
	keys       []Date
}

func (b byPeriod) Len() int { return len(b.statements) }

func (b byPeriod) Swap(i, j int) {
	b.statements[i], b.statements[j] = b.statements[j], b.statements[i]
	b.keys[i], b.keys[j] = b.keys[j], b.keys[i]
}

func (b byPeriod) Less(i, j int) bool {
	x, y := b.keys[i], b.keys[j]
	if x.Valid() != y.Valid() {
		return x.Valid()
	}
	return x.Valid() && x.Time.Before(y.Time)
}
