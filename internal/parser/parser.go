package parser

import (
	"io"

	"fjacquet/emi-tracker/internal/logging"
	"fjacquet/emi-tracker/internal/models"
)

// Parser turns the text of one statement into transactions.
type Parser interface {
	// Parse reads statement text from r. hint is a bank name from the
	// models.Bank* constants; models.BankUnknown tries every known layout.
	Parse(r io.Reader, hint string) ([]models.Transaction, error)
}

// LoggerConfigurable is implemented by components whose logger can be swapped.
type LoggerConfigurable interface {
	SetLogger(logger logging.Logger)
}
