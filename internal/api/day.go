package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/fante86/calenpag/internal/calendario"
	"github.com/fante86/calenpag/internal/format"
	"github.com/fante86/calenpag/internal/model"
)

type dayRecord struct {
	Row            int    `json:"row"`
	Supplier       string `json:"supplier"`
	DocumentNumber string `json:"documentNumber"`
	Account        string `json:"account"`
	PlanningNote   string `json:"planningNote"`
	Note           string `json:"note"`
	Status         string `json:"status"`
	StatusLabel    string `json:"statusLabel"`
	Amount         string `json:"amount"`
	AmountCents    int64  `json:"amountCents"`
	DueDate        string `json:"dueDate"`
	PaymentDate    string `json:"paymentDate,omitempty"`
}

type dayResponse struct {
	Date    string      `json:"date"`
	Count   int         `json:"count"`
	Records []dayRecord `json:"records"`
}

// GetDay returns the line items due on one exact date, in file order. Zero
// matches is a normal empty response.
// GET /api/day?year=&month=&day=
func (h *Handler) GetDay(c *gin.Context) {
	up, err := h.sessions.Current()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "nenhuma planilha carregada"})
		return
	}

	sel := h.sessions.Selection()
	year := queryIntDefault(c, "year", sel.Year)
	month := queryIntDefault(c, "month", sel.Month)
	day := queryIntDefault(c, "day", sel.Day)
	if year <= 0 || month < 1 || month > 12 || day < 1 || day > 31 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "data inválida"})
		return
	}

	monthRecords := calendario.FilterMonth(up.Records, year, month)
	records := calendario.RecordsOn(monthRecords, year, time.Month(month), day)

	out := make([]dayRecord, 0, len(records))
	for _, r := range records {
		out = append(out, toDayRecord(r))
	}

	date := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.Local)
	c.JSON(http.StatusOK, dayResponse{
		Date:    format.DataBR(date),
		Count:   len(out),
		Records: out,
	})
}

func toDayRecord(r *model.PaymentRecord) dayRecord {
	rec := dayRecord{
		Row:            r.Row,
		Supplier:       r.Supplier,
		DocumentNumber: r.DocumentNumber,
		Account:        r.Account,
		PlanningNote:   r.PlanningNote,
		Note:           r.Note,
		Status:         string(r.Status),
		Amount:         format.Real(r.AmountCents()),
		AmountCents:    r.AmountCents(),
		DueDate:        format.DataBR(r.DueDate),
	}
	switch r.Status {
	case model.StatusPaid:
		rec.StatusLabel = "PAGO"
	default:
		rec.StatusLabel = "A PAGAR"
	}
	if !r.PaymentDate.IsZero() {
		rec.PaymentDate = format.DataBR(r.PaymentDate)
	}
	return rec
}

type selectDayRequest struct {
	Day int `json:"day"`
}

// SelectDay opens the drilldown for a day of the selected month.
// POST /api/day/select
func (h *Handler) SelectDay(c *gin.Context) {
	var req selectDayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "requisição inválida"})
		return
	}
	if req.Day < 1 || req.Day > 31 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "dia inválido"})
		return
	}
	h.sessions.SelectDay(req.Day)
	c.JSON(http.StatusOK, gin.H{"selection": toSelectionResponse(h.sessions.Selection())})
}

// ClearDay closes the drilldown.
// POST /api/day/clear
func (h *Handler) ClearDay(c *gin.Context) {
	h.sessions.ClearDay()
	c.JSON(http.StatusOK, gin.H{"selection": toSelectionResponse(h.sessions.Selection())})
}

func queryIntDefault(c *gin.Context, key string, fallback int) int {
	v := c.Query(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return -1
	}
	return n
}
