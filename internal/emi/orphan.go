package emi

import (
	"regexp"

	"fjacquet/emi-tracker/internal/logging"
	"fjacquet/emi-tracker/internal/models"
)

var taxPattern = regexp.MustCompile(`(?i)\b(?:i|c|s)?gst\b`)

// IsTaxLine reports whether desc is a GST/IGST charge line.
func IsTaxLine(desc string) bool {
	return taxPattern.MatchString(desc)
}

// assignOrphans attaches each tax line to the same-date record without GST
// whose source line is nearest by Seq; ties go to the earlier record. Tax
// lines without a candidate are dropped.
func assignOrphans(batch *statementInstallments, taxLines []models.Transaction, logger logging.Logger) (assigned, dropped int) {
	for _, tax := range taxLines {
		date := tax.Date.String()

		var best *models.InstallmentRecord
		bestDist := 0
		for _, rec := range batch.records {
			if rec.Date.String() != date || rec.HasGST() {
				continue
			}
			dist := abs(rec.SourceSeq - tax.Seq)
			if best == nil || dist < bestDist || (dist == bestDist && rec.SourceSeq < best.SourceSeq) {
				best = rec
				bestDist = dist
			}
		}

		if best == nil {
			dropped++
			logger.Debug("Dropping tax line without an open installment",
				logging.F(logging.FieldDate, date),
				logging.F(logging.FieldAmount, tax.Amount.String()),
				logging.F(logging.FieldSeq, tax.Seq))
			continue
		}

		best.GST = tax.Amount
		assigned++
	}
	return assigned, dropped
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
