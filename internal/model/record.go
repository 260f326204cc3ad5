package model

import "time"

// Status is the canonical three-state classification of a payable.
// Raw files encode it inconsistently ("A Pagar"/"Pago"/"Cancelado" in newer
// exports, "A"/"F" in older ones); the ledger normalizer maps every accepted
// encoding onto this enum.
type Status string

const (
	StatusPending   Status = "pendente"
	StatusPaid      Status = "pago"
	StatusCancelled Status = "cancelado"
)

// PaymentRecord is one normalized row of the accounts-payable ledger.
// Records are read-only after normalization. Money is kept in centavos so
// aggregation is exact.
type PaymentRecord struct {
	Row             int       `json:"row"` // 1-based data row in the source file
	Supplier        string    `json:"supplier"`
	DocumentNumber  string    `json:"documentNumber"`
	DueDate         time.Time `json:"dueDate"`
	PaymentDate     time.Time `json:"paymentDate"` // zero when absent
	AmountOpenCents int64     `json:"amountOpenCents"`
	AmountPaidCents int64     `json:"amountPaidCents"`
	Status          Status    `json:"status"`
	Account         string    `json:"account"`
	PlanningNote    string    `json:"planningNote"`
	Note            string    `json:"note"`
}

// AmountCents returns the amount relevant to the record's status:
// the open amount for pending records, the paid amount for paid ones.
func (r *PaymentRecord) AmountCents() int64 {
	if r.Status == StatusPaid {
		return r.AmountPaidCents
	}
	return r.AmountOpenCents
}

// DueOn reports whether the record is due on the given calendar date.
func (r *PaymentRecord) DueOn(year int, month time.Month, day int) bool {
	y, m, d := r.DueDate.Date()
	return y == year && m == month && d == day
}
