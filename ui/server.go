package ui

import (
	"log"
	"time"

	"watchlens/adapters/excel"
	"watchlens/internal/api"
	"watchlens/internal/config"
	"watchlens/internal/importer"
	"watchlens/ports"

	"github.com/gin-gonic/gin"
)

// Server is the HTTP surface: upload, import status, SSE progress, dashboard
// JSON, and exports.
type Server struct {
	router      *gin.Engine
	cfg         *config.Config
	historyRepo ports.HistoryRepository
	importRepo  ports.ImportRepository
	files       ports.FileStorage
	hub         *api.SSEHub
	worker      *importer.Worker
	exporter    *excel.Exporter

	// now is injectable so time-anchored aggregations are reproducible in
	// tests; production wiring passes time.Now.
	now func() time.Time
}

// NewServer creates the web server and wires its routes.
func NewServer(cfg *config.Config, historyRepo ports.HistoryRepository, importRepo ports.ImportRepository, files ports.FileStorage, hub *api.SSEHub, worker *importer.Worker) *Server {
	if cfg.Server.GinMode != "" {
		gin.SetMode(cfg.Server.GinMode)
	}

	s := &Server{
		router:      gin.Default(),
		cfg:         cfg,
		historyRepo: historyRepo,
		importRepo:  importRepo,
		files:       files,
		hub:         hub,
		worker:      worker,
		exporter:    excel.NewExporter(),
		now:         time.Now,
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.GET("/health", s.handleHealth)

	apiGroup := s.router.Group("/api")
	{
		apiGroup.POST("/imports", s.handleUpload)
		apiGroup.GET("/imports", s.handleListImports)
		apiGroup.GET("/imports/:id", s.handleGetImport)
		apiGroup.GET("/events", s.hub.HandleSSE)
		apiGroup.GET("/dashboard", s.handleDashboard)
		apiGroup.GET("/export", s.handleExport)
		apiGroup.GET("/report", s.handleReport)
	}
}

// Start runs the server on the configured port. Blocks until the listener
// fails.
func (s *Server) Start() error {
	addr := ":" + s.cfg.Server.Port
	log.Printf("[Server] Listening on %s", addr)
	return s.router.Run(addr)
}

// Router exposes the gin engine for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}
