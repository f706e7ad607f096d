package emi

import (
	"fmt"
	"time"

	"fjacquet/emi-tracker/internal/models"

	"github.com/shopspring/decimal"
)

func day(y int, m time.Month, d int) models.Date {
	return models.NewDate(time.Date(y, m, d, 0, 0, 0, 0, time.UTC))
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// statementBuilder assigns Seq in append order.
type statementBuilder struct {
	st models.StatementExtraction
}

func newStatement(filename string) *statementBuilder {
	return &statementBuilder{st: models.StatementExtraction{Filename: filename}}
}

func (b *statementBuilder) line(date models.Date, desc, amount string, typ models.TransactionType) *statementBuilder {
	b.st.Transactions = append(b.st.Transactions, models.Transaction{
		Seq:         len(b.st.Transactions) + 1,
		Date:        date,
		Description: desc,
		Amount:      dec(amount),
		Type:        typ,
	})
	return b
}

func (b *statementBuilder) principal(date models.Date, n, total int, merchant, amount string) *statementBuilder {
	return b.line(date, fmt.Sprintf("Principal Amount Amortization - <%d/%d>%s", n, total, merchant), amount, models.TypeDebit)
}

func (b *statementBuilder) interest(date models.Date, n, total int, merchant, amount string) *statementBuilder {
	return b.line(date, fmt.Sprintf("Interest Amount Amortization - <%d/%d>%s", n, total, merchant), amount, models.TypeDebit)
}

func (b *statementBuilder) tax(date models.Date, amount string) *statementBuilder {
	return b.line(date, "IGST-CI@18%", amount, models.TypeDebit)
}

func (b *statementBuilder) build() models.StatementExtraction {
	return b.st
}
