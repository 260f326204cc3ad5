package server

import (
	"embed"
	"io/fs"
	"log"
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"github.com/fante86/calenpag/internal/api"
	"github.com/fante86/calenpag/internal/config"
	"github.com/fante86/calenpag/internal/ledger"
	"github.com/fante86/calenpag/internal/store"
)

//go:embed all:dist
var staticFiles embed.FS

// Server is the HTTP front: the JSON API plus the embedded calendar page.
type Server struct {
	router *gin.Engine
	store  *store.Store
	api    *api.Handler
}

// NewServer wires the store, the API handler and the routes.
func NewServer(cfg *config.AppConfig) *Server {
	if !cfg.Server.DevMode {
		gin.SetMode(gin.ReleaseMode)
	}

	dataDir, err := config.EnsureDataDir(cfg)
	if err != nil {
		dataDir = cfg.Data.DataDir
	}

	sqliteStore, err := store.New(filepath.Join(dataDir, "calenpag.db"))
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	mapping, err := ledger.NewStatusMapping(cfg.StatusMapping)
	if err != nil {
		log.Printf("invalid status_mapping in config, using defaults: %v", err)
		mapping = ledger.DefaultStatusMapping()
	}

	apiHandler := api.NewHandler(api.Options{
		Store:         sqliteStore,
		StatusMapping: mapping,
		ExportDir:     filepath.Join(dataDir, "exports"),
		MaxUploadMB:   cfg.Upload.MaxSizeMB,
	})

	s := &Server{
		router: gin.Default(),
		store:  sqliteStore,
		api:    apiHandler,
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	// CORS
	s.router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	apiGroup := s.router.Group("/api")
	{
		s.api.RegisterRoutes(apiGroup)
	}

	sub, _ := fs.Sub(staticFiles, "dist")
	s.router.GET("/", func(c *gin.Context) {
		data, _ := fs.ReadFile(sub, "index.html")
		c.Data(http.StatusOK, "text/html; charset=utf-8", data)
	})
	s.router.NoRoute(func(c *gin.Context) {
		data, _ := fs.ReadFile(sub, "index.html")
		c.Data(http.StatusOK, "text/html; charset=utf-8", data)
	})
}

// Run starts the server.
func (s *Server) Run(addr string) error {
	return s.router.Run(addr)
}

// Close releases the database.
func (s *Server) Close() error {
	return s.store.Close()
}

// GetStore exposes the store for tests.
func (s *Server) GetStore() *store.Store {
	return s.store
}
