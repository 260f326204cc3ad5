package api

import (
	"fmt"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/fante86/calenpag/internal/calendario"
	"github.com/fante86/calenpag/internal/exporter"
	"github.com/fante86/calenpag/internal/format"
)

const downloadTTL = 10 * time.Minute

type exportRequest struct {
	Year  int `json:"year"`
	Month int `json:"month"`
}

// Export renders a month to .xlsx on disk and hands back a one-shot
// download token.
// POST /api/export
func (h *Handler) Export(c *gin.Context) {
	up, err := h.sessions.Current()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "nenhuma planilha carregada"})
		return
	}

	var req exportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "requisição inválida"})
		return
	}
	sel := h.sessions.Selection()
	if req.Year == 0 {
		req.Year = sel.Year
	}
	if req.Month == 0 {
		req.Month = sel.Month
	}
	if req.Year <= 0 || req.Month < 1 || req.Month > 12 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ano ou mês inválido"})
		return
	}

	monthRecords := calendario.FilterMonth(up.Records, req.Year, req.Month)
	cal := calendario.BuildCalendar(req.Year, req.Month, monthRecords, h.now())

	f, err := exporter.NewExporter().Export(cal, monthRecords)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "falha ao gerar a planilha"})
		return
	}
	defer f.Close()

	exportDir := h.exportDir
	if exportDir == "" {
		exportDir = os.TempDir()
	}
	filePath := filepath.Join(exportDir, fmt.Sprintf("pagamentos-%d-%02d-%s.xlsx", req.Year, req.Month, uuid.New().String()))
	if err := f.SaveAs(filePath); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "falha ao salvar a planilha"})
		return
	}

	token := h.downloads.put(filePath, req.Year, req.Month, downloadTTL)
	c.JSON(http.StatusOK, gin.H{
		"token":       token,
		"downloadUrl": "/api/export/download/" + token,
		"expiresInS":  int(downloadTTL.Seconds()),
	})
}

// DownloadExport serves a previously generated export once and deletes it.
// GET /api/export/download/:token
func (h *Handler) DownloadExport(c *gin.Context) {
	token := c.Param("token")
	item, ok := h.downloads.get(token)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "download expirado ou inexistente"})
		return
	}

	c.Header("Content-Disposition", buildExportContentDisposition(item.year, item.month))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.File(item.filePath)

	h.downloads.delete(token)
	_ = os.Remove(item.filePath)
}

// buildExportContentDisposition emits an ASCII fallback filename plus the
// RFC 5987 UTF-8 one carrying the accented month name.
func buildExportContentDisposition(year, month int) string {
	ascii := fmt.Sprintf("pagamentos-%d-%02d.xlsx", year, month)
	pretty := fmt.Sprintf("Pagamentos %s %d.xlsx", format.NomeMes(month), year)
	return fmt.Sprintf("attachment; filename=%q; filename*=UTF-8''%s", ascii, url.PathEscape(pretty))
}
