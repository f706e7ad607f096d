package store

import (
	"fmt"

	"fjacquet/emi-tracker/internal/currencyutils"
	"fjacquet/emi-tracker/internal/models"
)

type yamlDocument struct {
	Statements []yamlStatement `yaml:"statements"`
}

type yamlStatement struct {
	Filename     string            `yaml:"filename"`
	Bank         string            `yaml:"bank,omitempty"`
	Transactions []yamlTransaction `yaml:"transactions"`
}

type yamlTransaction struct {
	Seq         int    `yaml:"seq"`
	Date        string `yaml:"date"`
	Description string `yaml:"description"`
	Amount      string `yaml:"amount"`
	Type        string `yaml:"type"`
}

func newYAMLDocument(doc *Document) yamlDocument {
	out := yamlDocument{Statements: make([]yamlStatement, 0, len(doc.Statements))}
	for _, st := range doc.Statements {
		ys := yamlStatement{
			Filename:     st.Filename,
			Bank:         st.Bank,
			Transactions: make([]yamlTransaction, 0, len(st.Transactions)),
		}
		for _, tx := range st.Transactions {
			ys.Transactions = append(ys.Transactions, yamlTransaction{
				Seq:         tx.Seq,
				Date:        tx.Date.String(),
				Description: tx.Description,
				Amount:      tx.Amount.String(),
				Type:        string(tx.Type),
			})
		}
		out.Statements = append(out.Statements, ys)
	}
	return out
}

func (y yamlDocument) toDocument() (*Document, error) {
	doc := &Document{Statements: make([]models.StatementExtraction, 0, len(y.Statements))}
	for _, ys := range y.Statements {
		st := models.StatementExtraction{Filename: ys.Filename, Bank: ys.Bank}
		for _, yt := range ys.Transactions {
			amount, err := currencyutils.ParseAmount(yt.Amount)
			if err != nil {
				return nil, fmt.Errorf("statement %s: %w", ys.Filename, err)
			}
			typ := models.TransactionType(yt.Type)
			if typ != models.TypeCredit {
				typ = models.TypeDebit
			}
			st.Transactions = append(st.Transactions, models.Transaction{
				Seq:         yt.Seq,
				Date:        models.ParseDate(yt.Date),
				Description: yt.Description,
				Amount:      amount,
				Type:        typ,
			})
		}
		doc.Statements = append(doc.Statements, st)
	}
	return doc, nil
}
