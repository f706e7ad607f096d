package stmtparser

import (
	"strings"

	"fjacquet/emi-tracker/internal/common"
	"fjacquet/emi-tracker/internal/models"
)

var contentMarkers = []struct {
	bank    string
	needles []string
}{
	{models.BankICICI, []string{"icici bank", "icicibank.com"}},
	{models.BankHDFC, []string{"hdfc bank", "hdfcbank.com"}},
	{models.BankSBI, []string{"sbi card", "state bank of india", "sbicard.com"}},
	{models.BankAxis, []string{"axis bank", "axisbank.com"}},
	{models.BankKotak, []string{"kotak mahindra", "kotak.com"}},
}

// DetectBank derives the weak bank hint for a statement: filename markers
// first, then content markers, then the serial-number layout signature.
func DetectBank(filename, text string) string {
	if bank := common.DetectBankFromFilename(filename); bank != models.BankUnknown {
		return bank
	}

	lower := strings.ToLower(text)
	for _, marker := range contentMarkers {
		for _, needle := range marker.needles {
			if strings.Contains(lower, needle) {
				return marker.bank
			}
		}
	}

	for _, line := range strings.Split(text, "\n") {
		if serialStart.MatchString(line) {
			return models.BankICICI
		}
	}
	return models.BankUnknown
}
