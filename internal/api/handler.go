// Package api implements the JSON API consumed by the calendar page.
package api

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/fante86/calenpag/internal/ledger"
	"github.com/fante86/calenpag/internal/session"
	"github.com/fante86/calenpag/internal/store"
)

// Handler owns the API endpoints and their collaborators.
type Handler struct {
	sessions   *session.Store
	store      *store.Store
	normalizer *ledger.Normalizer
	downloads  *exportDownloadStore

	exportDir      string
	maxUploadBytes int64

	// now is swapped in tests to pin "today".
	now func() time.Time
}

// Options configures a Handler.
type Options struct {
	Store         *store.Store
	StatusMapping ledger.StatusMapping
	ExportDir     string
	MaxUploadMB   int
}

// NewHandler creates the API handler.
func NewHandler(opts Options) *Handler {
	maxMB := opts.MaxUploadMB
	if maxMB <= 0 {
		maxMB = 10
	}
	return &Handler{
		sessions:       session.NewStore(),
		store:          opts.Store,
		normalizer:     ledger.NewNormalizer(opts.StatusMapping),
		downloads:      newExportDownloadStore(),
		exportDir:      opts.ExportDir,
		maxUploadBytes: int64(maxMB) * 1024 * 1024,
		now:            time.Now,
	}
}

// RegisterRoutes mounts the API under the given group.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/status", h.GetStatus)

	router.POST("/upload", h.Upload)
	router.GET("/uploads", h.ListUploads)

	router.GET("/years", h.GetYears)
	router.POST("/select", h.SelectMonth)
	router.GET("/calendar", h.GetCalendar)

	router.GET("/day", h.GetDay)
	router.POST("/day/select", h.SelectDay)
	router.POST("/day/clear", h.ClearDay)

	router.POST("/export", h.Export)
	router.GET("/export/download/:token", h.DownloadExport)
}
