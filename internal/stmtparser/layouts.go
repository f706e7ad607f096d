package stmtparser

import (
	"regexp"
	"strings"

	"fjacquet/emi-tracker/internal/currencyutils"
	"fjacquet/emi-tracker/internal/models"
)

// Rule is one named statement line layout. Match is pure: it either binds a
// transaction from a logical line or reports false.
type Rule struct {
	Name  string
	Banks []string

	// Fallback rules only run when no bank rule produced a transaction.
	Fallback bool

	// MergeContinuations requests the multi-line pre-merge before matching.
	MergeContinuations bool

	Match func(line string) (models.Transaction, bool)
}

// AppliesTo reports whether r is a bank rule for bank.
func (r Rule) AppliesTo(bank string) bool {
	if r.Fallback {
		return false
	}
	if bank == "" || bank == models.BankUnknown {
		return true
	}
	for _, b := range r.Banks {
		if b == bank {
			return true
		}
	}
	return false
}

const amountExpr = `(?:₹|Rs\.?|INR)?\s*(-?[\d,]+\.\d{2})`

var (
	// Layout A: 05 Jan 2024  AMAZON PAY INDIA  1,234.00 [Cr|Dr]
	monthNameLine = regexp.MustCompile(`^(\d{2} [A-Za-z]{3} \d{4})\s+(.+?)\s+` + amountExpr + `(?:\s+(?i:cr|dr|c|d))?$`)

	// Layout B: 05/01/2024 12345678901 AMAZON PAY INDIA 1,234.00 [CR]
	serialLine  = regexp.MustCompile(`^(\d{2}/\d{2}/\d{4})\s+(\d{8,})\s+(.+?)\s+` + amountExpr + `(?:\s*((?i:cr)))?$`)
	serialStart = regexp.MustCompile(`^\s*\d{2}/\d{2}/\d{4}\s+\d{8,}(?:\s|$)`)

	// Statement summary and page furniture that ends a Layout B transaction.
	summaryLine = regexp.MustCompile(`(?i)^(?:total\b|minimum (?:amount )?due|(?:opening|closing|previous) balance|payment due|statement (?:summary|date)|(?:available )?(?:credit|cash) limit|reward points|page \d+)`)

	genericNumeric = regexp.MustCompile(`^(\d{2}[/-]\d{2}[/-]\d{4})\s+(.+?)\s+` + amountExpr + `(?:\s*((?i:cr|dr)))?$`)
	genericMonth   = regexp.MustCompile(`^(\d{1,2}[ -][A-Za-z]{3}[ -]\d{4})\s+(.+?)\s+` + amountExpr + `(?:\s*((?i:cr|dr)))?$`)

	creditKeywords = []string{"payment", "refund", "reversal", "cashback", "received"}
)

// DefaultRules returns the layout registry in priority order: bank layouts
// first, then the generic fallback tier.
func DefaultRules() []Rule {
	return []Rule{
		{
			Name:               "serial-slash",
			Banks:              []string{models.BankICICI},
			MergeContinuations: true,
			Match:              matchSerialLine,
		},
		{
			Name:  "month-name",
			Banks: []string{models.BankHDFC, models.BankSBI, models.BankAxis, models.BankKotak},
			Match: matchMonthNameLine,
		},
		{
			Name:     "generic-numeric",
			Fallback: true,
			Match:    genericMatcher(genericNumeric),
		},
		{
			Name:     "generic-month",
			Fallback: true,
			Match:    genericMatcher(genericMonth),
		},
	}
}

func matchMonthNameLine(line string) (models.Transaction, bool) {
	m := monthNameLine.FindStringSubmatch(line)
	if m == nil {
		return models.Transaction{}, false
	}
	desc := cleanDescription(m[2])
	return build(m[1], desc, m[3], hasCreditKeyword(desc))
}

func matchSerialLine(line string) (models.Transaction, bool) {
	m := serialLine.FindStringSubmatch(line)
	if m == nil {
		return models.Transaction{}, false
	}
	return build(m[1], cleanDescription(m[3]), m[4], m[5] != "")
}

func genericMatcher(pattern *regexp.Regexp) func(string) (models.Transaction, bool) {
	return func(line string) (models.Transaction, bool) {
		m := pattern.FindStringSubmatch(line)
		if m == nil {
			return models.Transaction{}, false
		}
		desc := cleanDescription(m[2])
		credit := strings.EqualFold(m[4], "cr") || hasCreditKeyword(desc)
		return build(m[1], desc, m[3], credit)
	}
}

func build(date, desc, amount string, credit bool) (models.Transaction, bool) {
	value, err := currencyutils.ParseAmount(amount)
	if err != nil || desc == "" {
		return models.Transaction{}, false
	}
	tx := models.Transaction{
		Date:        models.ParseDate(date),
		Description: desc,
		Amount:      value.Abs(),
		Type:        models.TypeDebit,
	}
	if credit {
		tx.Type = models.TypeCredit
	}
	return tx, true
}

func hasCreditKeyword(desc string) bool {
	lower := strings.ToLower(desc)
	for _, kw := range creditKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

var spaceRun = regexp.MustCompile(`\s+`)

func cleanDescription(desc string) string {
	return strings.TrimSpace(spaceRun.ReplaceAllString(desc, " "))
}
