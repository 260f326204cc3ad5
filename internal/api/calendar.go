package api

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/fante86/calenpag/internal/calendario"
	"github.com/fante86/calenpag/internal/model"
	"github.com/fante86/calenpag/internal/session"
)

type selectionResponse struct {
	Year  int `json:"year"`
	Month int `json:"month"`
	Day   int `json:"day,omitempty"`
}

func toSelectionResponse(sel session.Selection) selectionResponse {
	return selectionResponse{Year: sel.Year, Month: sel.Month, Day: sel.Day}
}

// GetYears lists the years present in the current ledger.
// GET /api/years
func (h *Handler) GetYears(c *gin.Context) {
	up, err := h.sessions.Current()
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"years": []int{}})
		return
	}
	c.JSON(http.StatusOK, gin.H{"years": calendario.AvailableYears(up.Records)})
}

type selectMonthRequest struct {
	Year  int `json:"year"`
	Month int `json:"month"`
}

// SelectMonth switches the viewed month and closes any open drilldown.
// POST /api/select
func (h *Handler) SelectMonth(c *gin.Context) {
	var req selectMonthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "requisição inválida"})
		return
	}
	if req.Month < 1 || req.Month > 12 || req.Year <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ano ou mês inválido"})
		return
	}

	h.sessions.SelectMonth(req.Year, req.Month)
	if h.store != nil {
		if err := h.store.SetCurrentYearMonth(req.Year, req.Month); err != nil {
			log.Printf("persist selection: %v", err)
		}
	}
	c.JSON(http.StatusOK, gin.H{"selection": toSelectionResponse(h.sessions.Selection())})
}

type calendarResponse struct {
	Calendar       *model.Calendar             `json:"calendar"`
	MonthAggregate *model.MonthAggregate       `json:"monthAggregate"`
	Days           map[int]*model.DayAggregate `json:"days"`
	Years          []int                       `json:"years"`
	Selection      selectionResponse           `json:"selection"`
}

// GetCalendar renders the month view. Explicit ?year=&month= override the
// session selection (and update it).
// GET /api/calendar
func (h *Handler) GetCalendar(c *gin.Context) {
	up, err := h.sessions.Current()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "nenhuma planilha carregada"})
		return
	}

	sel := h.sessions.Selection()
	year, month := sel.Year, sel.Month
	if v := c.Query("year"); v != "" {
		year, err = strconv.Atoi(v)
		if err != nil || year <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "ano inválido"})
			return
		}
	}
	if v := c.Query("month"); v != "" {
		month, err = strconv.Atoi(v)
		if err != nil || month < 1 || month > 12 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "mês inválido"})
			return
		}
	}
	if year != sel.Year || month != sel.Month {
		h.sessions.SelectMonth(year, month)
	}

	monthRecords := calendario.FilterMonth(up.Records, year, month)
	monthAgg, days := calendario.AggregateMonth(year, month, monthRecords)
	cal := calendario.BuildCalendar(year, month, monthRecords, h.now())

	// The per-day records travel through /api/day; strip them here.
	trimmed := make(map[int]*model.DayAggregate, len(days))
	for day, agg := range days {
		trimmed[day] = &model.DayAggregate{
			PendingCount:      agg.PendingCount,
			PendingTotalCents: agg.PendingTotalCents,
			PaidCount:         agg.PaidCount,
			PaidTotalCents:    agg.PaidTotalCents,
		}
	}

	c.JSON(http.StatusOK, calendarResponse{
		Calendar:       cal,
		MonthAggregate: monthAgg,
		Days:           trimmed,
		Years:          calendario.AvailableYears(up.Records),
		Selection:      toSelectionResponse(h.sessions.Selection()),
	})
}

// GetStatus reports whether a ledger is loaded and what is selected.
// GET /api/status
func (h *Handler) GetStatus(c *gin.Context) {
	up, err := h.sessions.Current()
	if err != nil {
		resp := gin.H{"initialized": false}
		if h.store != nil {
			// A previous run's selection, if any, lets the page reopen
			// on the same month after the next upload.
			if year, month, err := h.store.GetCurrentYearMonth(); err == nil {
				resp["lastSelection"] = selectionResponse{Year: year, Month: month}
			}
		}
		c.JSON(http.StatusOK, resp)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"initialized": true,
		"uploadId":    up.ID,
		"filename":    up.Filename,
		"recordCount": len(up.Records),
		"skipped":     up.Skipped,
		"cancelled":   up.Cancelled,
		"selection":   toSelectionResponse(h.sessions.Selection()),
	})
}
