// Package ledger turns raw tabular uploads into normalized payment records.
// Malformed rows are dropped and counted, never fatal; only a structurally
// broken file (missing required columns) rejects the whole upload.
package ledger

import (
	"fmt"
	"strings"
	"time"

	"github.com/fante86/calenpag/internal/format"
	"github.com/fante86/calenpag/internal/model"
)

// Column names of the consolidated accounts-payable export.
const (
	ColSupplier    = "fornecedor_nome"
	ColDocument    = "numero_documento"
	ColDueDate     = "data_vencimento"
	ColPaymentDate = "data_pagamento"
	ColAmountOpen  = "valor_em_aberto"
	ColAmountPaid  = "valor_pago_total"
	ColStatus      = "status_consolidado"
	ColNote        = "observacao"
	ColAccount     = "conta_financeira"
	ColPlanning    = "descricao_planejamento"
)

// RequiredColumns must all be present in the header or the upload is
// rejected as a whole.
var RequiredColumns = []string{
	ColSupplier,
	ColDueDate,
	ColAmountOpen,
	ColAmountPaid,
	ColStatus,
}

// MissingColumnsError names every required column absent from the upload.
type MissingColumnsError struct {
	Columns []string
}

func (e *MissingColumnsError) Error() string {
	return "missing required columns: " + strings.Join(e.Columns, ", ")
}

// Result is the outcome of normalizing one upload.
type Result struct {
	Records   []*model.PaymentRecord
	Skipped   int // rows dropped: bad due date or unknown status
	Cancelled int // rows dropped because the status mapped to cancelado
}

// Normalizer maps raw rows to PaymentRecords using a configurable status
// mapping, so new status encodings only need a config change.
type Normalizer struct {
	mapping StatusMapping
}

// NewNormalizer creates a normalizer. A nil mapping uses the default.
func NewNormalizer(mapping StatusMapping) *Normalizer {
	if mapping == nil {
		mapping = DefaultStatusMapping()
	}
	return &Normalizer{mapping: mapping}
}

// Normalize converts data rows into records, preserving file order.
func (n *Normalizer) Normalize(header []string, rows [][]string) (*Result, error) {
	colIndex := make(map[string]int, len(header))
	for i, col := range header {
		colIndex[strings.ToLower(strings.TrimSpace(col))] = i
	}

	var missing []string
	for _, col := range RequiredColumns {
		if _, ok := colIndex[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, &MissingColumnsError{Columns: missing}
	}

	res := &Result{Records: make([]*model.PaymentRecord, 0, len(rows))}
	for i, row := range rows {
		rec, status := n.normalizeRow(row, colIndex, i+2)
		switch status {
		case rowOK:
			res.Records = append(res.Records, rec)
		case rowCancelled:
			res.Cancelled++
		case rowSkipped:
			res.Skipped++
		}
	}
	return res, nil
}

type rowStatus int

const (
	rowOK rowStatus = iota
	rowSkipped
	rowCancelled
)

func (n *Normalizer) normalizeRow(row []string, colIndex map[string]int, rowNum int) (*model.PaymentRecord, rowStatus) {
	getValue := func(col string) string {
		if idx, ok := colIndex[col]; ok && idx < len(row) {
			return strings.TrimSpace(row[idx])
		}
		return ""
	}

	status, ok := n.mapping.Lookup(getValue(ColStatus))
	if !ok {
		return nil, rowSkipped
	}
	if status == model.StatusCancelled {
		return nil, rowCancelled
	}

	dueDate, ok := parseDate(getValue(ColDueDate))
	if !ok {
		return nil, rowSkipped
	}

	openCents, _ := format.ParseValor(getValue(ColAmountOpen))
	paidCents, _ := format.ParseValor(getValue(ColAmountPaid))
	paymentDate, _ := parseDate(getValue(ColPaymentDate))

	return &model.PaymentRecord{
		Row:             rowNum,
		Supplier:        getValue(ColSupplier),
		DocumentNumber:  getValue(ColDocument),
		DueDate:         dueDate,
		PaymentDate:     paymentDate,
		AmountOpenCents: openCents,
		AmountPaidCents: paidCents,
		Status:          status,
		Account:         getValue(ColAccount),
		PlanningNote:    getValue(ColPlanning),
		Note:            getValue(ColNote),
	}, rowOK
}

var dateLayouts = []string{
	"2006-01-02",
	"02/01/2006",
	"2006-01-02 15:04:05",
	"02/01/2006 15:04:05",
	"2006-01-02T15:04:05",
}

// parseDate accepts the date conventions seen across ledger exports and
// truncates any time-of-day part.
func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		t, err := time.ParseInLocation(layout, s, time.Local)
		if err != nil {
			continue
		}
		y, m, d := t.Date()
		return time.Date(y, m, d, 0, 0, 0, 0, time.Local), true
	}
	return time.Time{}, false
}

// StatusMapping resolves raw status strings to the canonical enum. Keys are
// stored lowercase and trimmed; lookups are case-insensitive.
type StatusMapping map[string]model.Status

// DefaultStatusMapping covers both encodings observed across export
// revisions: full words and the older single-letter scheme.
func DefaultStatusMapping() StatusMapping {
	return StatusMapping{
		"a pagar":   model.StatusPending,
		"pago":      model.StatusPaid,
		"cancelado": model.StatusCancelled,
		"a":         model.StatusPending,
		"f":         model.StatusPaid,
	}
}

// NewStatusMapping builds a mapping from config strings. Values must be one
// of "pendente", "pago", "cancelado".
func NewStatusMapping(raw map[string]string) (StatusMapping, error) {
	m := make(StatusMapping, len(raw))
	for key, val := range raw {
		var status model.Status
		switch strings.ToLower(strings.TrimSpace(val)) {
		case string(model.StatusPending):
			status = model.StatusPending
		case string(model.StatusPaid):
			status = model.StatusPaid
		case string(model.StatusCancelled):
			status = model.StatusCancelled
		default:
			return nil, fmt.Errorf("status_mapping: unknown canonical status %q for %q", val, key)
		}
		m[strings.ToLower(strings.TrimSpace(key))] = status
	}
	return m, nil
}

// Lookup resolves a raw status cell. Unknown and empty values report false.
func (m StatusMapping) Lookup(raw string) (model.Status, bool) {
	status, ok := m[strings.ToLower(strings.TrimSpace(raw))]
	return status, ok
}
