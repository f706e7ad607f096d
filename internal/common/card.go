// Package common provides helpers shared by the statement parser, the EMI
// engine and the exporters.
package common

import (
	"path/filepath"
	"regexp"
	"strings"

	"fjacquet/emi-tracker/internal/models"
)

// CardIdentifier is a CardIdentity plus where it was derived from.
type CardIdentifier struct {
	models.CardIdentity
	Source string // "filename" or "default"
}

var (
	bankPattern = regexp.MustCompile(`(?i)(?:^|[^a-z])(icici|hdfc|sbi|axis|kotak)(?:[^a-z]|$)`)

	// Ordered from most to least specific.
	last4Patterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:x{2,}|\*{2,})[\s_-]*(\d{4})(?:\D|$)`),
		regexp.MustCompile(`(?i)(?:card|ending|last4)[\s_-]*(?:no[\s_.-]*)?(\d{4})(?:\D|$)`),
	}
	digitGroup = regexp.MustCompile(`\d+`)
)

// DetectBankFromFilename returns the bank named in a statement filename, or
// models.BankUnknown.
func DetectBankFromFilename(filename string) string {
	m := bankPattern.FindStringSubmatch(filepath.Base(filename))
	if len(m) < 2 {
		return models.BankUnknown
	}
	return strings.ToLower(m[1])
}

// ExtractCardFromFilename derives the card identity from statement filename
// conventions such as "ICICI_XXXX7003_Mar2024.pdf" or "hdfc-card-4417-2024-01.txt".
func ExtractCardFromFilename(filename string) CardIdentifier {
	base := filepath.Base(filename)
	base = strings.TrimSuffix(base, filepath.Ext(base))

	id := CardIdentifier{
		CardIdentity: models.CardIdentity{
			Bank:  DetectBankFromFilename(base),
			Last4: models.UnknownLast4,
		},
		Source: "default",
	}

	for _, pattern := range last4Patterns {
		if m := pattern.FindStringSubmatch(base); len(m) > 1 {
			id.Last4 = m[1]
			id.Source = "filename"
			return id
		}
	}

	// Last standalone four-digit group that does not look like a year.
	var candidate string
	for _, group := range digitGroup.FindAllString(base, -1) {
		if len(group) == 4 && !looksLikeYear(group) {
			candidate = group
		}
	}
	if candidate != "" {
		id.Last4 = candidate
		id.Source = "filename"
	}
	return id
}

func looksLikeYear(s string) bool {
	return strings.HasPrefix(s, "19") || strings.HasPrefix(s, "20")
}
