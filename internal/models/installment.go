package models

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// InstallmentKey identifies one logical installment charge: the principal and
// interest lines of the same charge share it.
type InstallmentKey struct {
	Last4    string
	Date     string
	Merchant string
	Number   int
	Total    int
}

// InstallmentRecord is one month of an EMI plan, built from the principal,
// interest and tax lines of a statement.
type InstallmentRecord struct {
	Date              Date            `json:"date"`
	Merchant          string          `json:"merchant"`
	InstallmentNumber int             `json:"installmentNumber"`
	TotalInstallments int             `json:"totalInstallments"`
	Principal         decimal.Decimal `json:"principal"`
	Interest          decimal.Decimal `json:"interest"`
	GST               decimal.Decimal `json:"gst"`

	// SourceSeq is the Seq of the transaction that created the record.
	SourceSeq int `json:"-"`
}

// TotalAmount is always derived so it cannot drift from its components.
func (r InstallmentRecord) TotalAmount() decimal.Decimal {
	return r.Principal.Add(r.Interest).Add(r.GST)
}

// HasGST reports whether a tax line was attributed to the record.
func (r InstallmentRecord) HasGST() bool {
	return !r.GST.IsZero()
}

// MarshalJSON adds the derived totalAmount to the serialized record.
func (r InstallmentRecord) MarshalJSON() ([]byte, error) {
	type plain InstallmentRecord
	return json.Marshal(struct {
		plain
		TotalAmount decimal.Decimal `json:"totalAmount"`
	}{
		plain:       plain(r),
		TotalAmount: r.TotalAmount(),
	})
}
