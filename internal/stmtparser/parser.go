// Package stmtparser converts raw credit-card statement text into dated,
// deduplicated transactions using an ordered registry of line layouts.
package stmtparser

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	"fjacquet/emi-tracker/internal/logging"
	"fjacquet/emi-tracker/internal/models"
	"fjacquet/emi-tracker/internal/parser"
)

// Result is the outcome of parsing one statement.
type Result struct {
	Transactions []models.Transaction
	Bank         string

	// UsedFallback is set when no bank layout matched and the generic tier ran.
	UsedFallback bool

	Unrecognized int
	Discarded    int // header and zero-amount rows
	Duplicates   int
}

// Parser applies the layout registry to statement text.
type Parser struct {
	parser.BaseParser
	rules []Rule
}

var _ parser.Parser = (*Parser)(nil)

// NewParser returns a Parser using DefaultRules.
func NewParser(logger logging.Logger) *Parser {
	return NewParserWithRules(logger, DefaultRules())
}

// NewParserWithRules returns a Parser over a custom registry. Rules are
// evaluated in slice order, first match wins.
func NewParserWithRules(logger logging.Logger, rules []Rule) *Parser {
	return &Parser{
		BaseParser: parser.NewBaseParser(logger),
		rules:      rules,
	}
}

// Parse implements parser.Parser.
func (p *Parser) Parse(r io.Reader, hint string) ([]models.Transaction, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read statement text: %w", err)
	}
	return p.ParseText(string(data), hint).Transactions, nil
}

// ParseStatement detects the bank for filename and parses text into a
// statement extraction record.
func (p *Parser) ParseStatement(filename, text string) (models.StatementExtraction, Result) {
	hint := DetectBank(filename, text)
	res := p.ParseText(text, hint)

	p.GetLogger().Info("Parsed statement",
		logging.F(logging.FieldFile, filename),
		logging.F(logging.FieldBank, res.Bank),
		logging.F(logging.FieldCount, len(res.Transactions)),
		logging.F(logging.FieldSkipped, res.Unrecognized))

	return models.StatementExtraction{
		Filename:     filename,
		Bank:         res.Bank,
		Transactions: res.Transactions,
	}, res
}

// ParseText runs the bank layouts selected by hint over text, falling back to
// the generic tier only when they found nothing. Seq is numbered from 1 in
// line order.
func (p *Parser) ParseText(text, hint string) Result {
	if hint == "" {
		hint = models.BankUnknown
	}
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")

	var bankRules, fallbackRules []Rule
	for _, rule := range p.rules {
		switch {
		case rule.Fallback:
			fallbackRules = append(fallbackRules, rule)
		case rule.AppliesTo(hint):
			bankRules = append(bankRules, rule)
		}
	}

	res := Result{Bank: hint}
	matched, unrecognized := p.apply(lines, bankRules)
	if len(matched) == 0 && len(fallbackRules) > 0 {
		matched, unrecognized = p.apply(lines, fallbackRules)
		res.UsedFallback = true
	}
	res.Unrecognized = unrecognized

	seen := make(map[models.DedupKey]struct{}, len(matched))
	for _, tx := range matched {
		if tx.Amount.IsZero() || isHeader(tx.Description) {
			res.Discarded++
			continue
		}
		key := tx.DedupKey()
		if _, dup := seen[key]; dup {
			res.Duplicates++
			continue
		}
		seen[key] = struct{}{}
		tx.Seq = len(res.Transactions) + 1
		res.Transactions = append(res.Transactions, tx)
	}

	p.GetLogger().Debug("Statement text parsed",
		logging.F(logging.FieldBank, hint),
		logging.F(logging.FieldCount, len(res.Transactions)),
		logging.F(logging.FieldSkipped, res.Unrecognized),
		logging.F("discarded", res.Discarded),
		logging.F("duplicates", res.Duplicates),
		logging.F("fallback", res.UsedFallback))

	return res
}

// apply evaluates rules over lines; it returns the matched transactions and
// the number of non-blank lines nothing matched.
func (p *Parser) apply(lines []string, rules []Rule) ([]models.Transaction, int) {
	if len(rules) == 0 {
		return nil, countNonBlank(lines)
	}

	logical := lines
	for _, rule := range rules {
		if rule.MergeContinuations {
			logical = mergeContinuations(lines)
			break
		}
	}

	var out []models.Transaction
	unrecognized := 0
	for _, line := range logical {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		tx, ok := matchFirst(rules, line)
		if !ok {
			unrecognized++
			continue
		}
		out = append(out, tx)
	}
	return out, unrecognized
}

func matchFirst(rules []Rule, line string) (models.Transaction, bool) {
	for _, rule := range rules {
		if tx, ok := rule.Match(line); ok {
			return tx, true
		}
	}
	return models.Transaction{}, false
}

func countNonBlank(lines []string) int {
	n := 0
	for _, l := range lines {
		if strings.TrimSpace(l) != "" {
			n++
		}
	}
	return n
}

var headerPattern = regexp.MustCompile(`(?i)\b(?:transaction details|description|particulars|serial no|date)\b|amount\s*\(in`)

func isHeader(desc string) bool {
	return headerPattern.MatchString(desc)
}
