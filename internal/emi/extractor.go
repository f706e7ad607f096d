// Package emi reconstructs EMI (installment) plans from parsed statement
// transactions.
package emi

import (
	"regexp"
	"strconv"
	"strings"

	"fjacquet/emi-tracker/internal/logging"
	"fjacquet/emi-tracker/internal/models"
)

// Component is the part of an installment a statement line carries.
type Component string

const (
	ComponentPrincipal Component = "principal"
	ComponentInterest  Component = "interest"
)

// Token is the installment marker found in a transaction description.
type Token struct {
	Component Component
	Number    int
	Total     int
	Merchant  string
}

var (
	// "Principal Amount Amortization - <2/6>NETFLIX", also "2 of 6" and a bare "2/6".
	tokenPattern = regexp.MustCompile(`(?i)\b(principal|interest)\s+amount\s+amortization\b\s*[-:]?\s*<?\s*(\d{1,3})\s*(?:/|\bof\b)\s*(\d{1,3})\s*>?\s*(.*)$`)
	merchantTail = regexp.MustCompile(`[\s\-:.,]+$`)
)

// ParseToken extracts the installment marker from desc.
func ParseToken(desc string) (Token, bool) {
	m := tokenPattern.FindStringSubmatch(desc)
	if m == nil {
		return Token{}, false
	}
	n, errN := strconv.Atoi(m[2])
	total, errT := strconv.Atoi(m[3])
	if errN != nil || errT != nil || n < 1 || total < 1 {
		return Token{}, false
	}
	return Token{
		Component: Component(strings.ToLower(m[1])),
		Number:    n,
		Total:     total,
		Merchant:  NormalizeMerchant(m[4]),
	}, true
}

// NormalizeMerchant upper-cases the merchant text and collapses whitespace so
// the same merchant keys identically across statements.
func NormalizeMerchant(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	s = merchantTail.ReplaceAllString(s, "")
	if s == "" {
		return "UNKNOWN"
	}
	return strings.ToUpper(s)
}

// statementInstallments accumulates the records built from one statement.
type statementInstallments struct {
	card    models.CardIdentity
	records []*models.InstallmentRecord
	index   map[models.InstallmentKey]*models.InstallmentRecord
}

func newStatementInstallments(card models.CardIdentity) *statementInstallments {
	return &statementInstallments{
		card:  card,
		index: make(map[models.InstallmentKey]*models.InstallmentRecord),
	}
}

// TokenExtractor turns amortization lines into installment records.
// Keys produced by an earlier statement are remembered so overlapping
// statements do not double-count a charge.
type TokenExtractor struct {
	logger logging.Logger
	seen   map[models.InstallmentKey]struct{}
}

// NewTokenExtractor creates a new TokenExtractor with empty history.
func NewTokenExtractor(logger logging.Logger) *TokenExtractor {
	return &TokenExtractor{
		logger: logger,
		seen:   make(map[models.InstallmentKey]struct{}),
	}
}

// extract builds the statement's installment records from txs (in Seq order).
// It returns the tax lines left for orphan assignment.
func (x *TokenExtractor) extract(batch *statementInstallments, txs []models.Transaction) []models.Transaction {
	var orphans []models.Transaction

	for _, tx := range txs {
		if tx.IsCredit() {
			continue
		}
		tok, ok := ParseToken(tx.Description)
		if !ok {
			if IsTaxLine(tx.Description) {
				orphans = append(orphans, tx)
			}
			continue
		}

		key := models.InstallmentKey{
			Last4:    batch.card.Last4,
			Date:     tx.Date.String(),
			Merchant: tok.Merchant,
			Number:   tok.Number,
			Total:    tok.Total,
		}
		if _, dup := x.seen[key]; dup {
			x.logger.Debug("Installment already seen in an earlier statement",
				logging.F(logging.FieldMerchant, tok.Merchant),
				logging.F(logging.FieldInstallment, tok.Number),
				logging.F(logging.FieldDate, key.Date),
				logging.F(logging.FieldSeq, tx.Seq))
			continue
		}

		rec, exists := batch.index[key]
		if !exists {
			rec = &models.InstallmentRecord{
				Date:              tx.Date,
				Merchant:          tok.Merchant,
				InstallmentNumber: tok.Number,
				TotalInstallments: tok.Total,
				SourceSeq:         tx.Seq,
			}
			batch.index[key] = rec
			batch.records = append(batch.records, rec)
		}

		switch tok.Component {
		case ComponentPrincipal:
			rec.Principal = rec.Principal.Add(tx.Amount)
		case ComponentInterest:
			rec.Interest = rec.Interest.Add(tx.Amount)
		}
	}

	return orphans
}

// commit marks the statement's keys as seen for later statements.
func (x *TokenExtractor) commit(batch *statementInstallments) {
	for key := range batch.index {
		x.seen[key] = struct{}{}
	}
}
