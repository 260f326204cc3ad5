package api

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/fante86/calenpag/internal/calendario"
	"github.com/fante86/calenpag/internal/ledger"
	"github.com/fante86/calenpag/internal/store"
)

type uploadResponse struct {
	UploadID    string `json:"uploadId"`
	Filename    string `json:"filename"`
	RecordCount int    `json:"recordCount"`
	Skipped     int    `json:"skipped"`
	Cancelled   int    `json:"cancelled"`
	Years       []int  `json:"years"`

	Selection selectionResponse `json:"selection"`
}

// Upload receives a ledger file, normalizes it and makes it the working set.
// POST /api/upload
func (h *Handler) Upload(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "envie um arquivo no campo 'file'"})
		return
	}
	defer file.Close()

	if header.Size > h.maxUploadBytes {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": fmt.Sprintf("arquivo muito grande (máximo %d MB)", h.maxUploadBytes/(1024*1024)),
		})
		return
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if ext != ".csv" && ext != ".xlsx" && ext != ".xls" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "apenas arquivos .csv, .xlsx e .xls são aceitos"})
		return
	}

	content, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "falha ao ler o arquivo"})
		return
	}
	sum := sha256.Sum256(content)
	hash := hex.EncodeToString(sum[:])

	headerRow, rows, err := ledger.Read(header.Filename, bytes.NewReader(content))
	if err != nil {
		h.logUpload("", header, hash, nil, 0, "rejected", err.Error())
		c.JSON(http.StatusBadRequest, gin.H{"error": "falha ao interpretar o arquivo: " + err.Error()})
		return
	}

	res, err := h.normalizer.Normalize(headerRow, rows)
	if err != nil {
		var missing *ledger.MissingColumnsError
		if errors.As(err, &missing) {
			h.logUpload("", header, hash, nil, len(rows), "rejected", err.Error())
			c.JSON(http.StatusBadRequest, gin.H{
				"error":           "colunas obrigatórias ausentes: " + strings.Join(missing.Columns, ", "),
				"missingColumns":  missing.Columns,
				"requiredColumns": ledger.RequiredColumns,
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	up := h.sessions.NewUpload(header.Filename, res.Records, res.Skipped, res.Cancelled, h.now())

	sel := h.sessions.Selection()
	if h.store != nil {
		if err := h.store.SetCurrentYearMonth(sel.Year, sel.Month); err != nil {
			log.Printf("persist selection: %v", err)
		}
	}
	h.logUpload(up.ID, header, hash, res, len(rows), "ok", "")

	c.JSON(http.StatusOK, uploadResponse{
		UploadID:    up.ID,
		Filename:    up.Filename,
		RecordCount: len(up.Records),
		Skipped:     up.Skipped,
		Cancelled:   up.Cancelled,
		Years:       calendario.AvailableYears(up.Records),
		Selection:   toSelectionResponse(sel),
	})
}

// logUpload writes the audit entry; audit failures are logged, never
// surfaced to the uploader.
func (h *Handler) logUpload(uploadID string, header *multipart.FileHeader, hash string, res *ledger.Result, totalRows int, status, message string) {
	if h.store == nil {
		return
	}
	entry := &store.UploadLog{
		UploadID:     uploadID,
		Filename:     header.Filename,
		FileSize:     header.Size,
		FileHash:     hash,
		TotalRows:    totalRows,
		Status:       status,
		ErrorMessage: message,
	}
	if res != nil {
		entry.ImportedRows = len(res.Records)
		entry.SkippedRows = res.Skipped
		entry.CancelledRows = res.Cancelled
	}
	if _, err := h.store.InsertUploadLog(entry); err != nil {
		log.Printf("upload audit: %v", err)
	}
}

// ListUploads returns the recent upload audit entries.
// GET /api/uploads
func (h *Handler) ListUploads(c *gin.Context) {
	if h.store == nil {
		c.JSON(http.StatusOK, gin.H{"items": []*store.UploadLog{}})
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	logs, err := h.store.ListUploadLogs(limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if logs == nil {
		logs = []*store.UploadLog{}
	}
	c.JSON(http.StatusOK, gin.H{"items": logs})
}
