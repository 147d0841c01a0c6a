package ui

import (
	"context"
	"errors"
	"fmt"
	"log"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"watchlens/domain/core"
	"watchlens/domain/watch"
	"watchlens/internal/analytics"

	"github.com/gin-gonic/gin"
)

func (s *Server) handleHealth(c *gin.Context) {
	count, err := s.historyRepo.Count(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "records": count})
}

// handleUpload accepts a multipart watch-history file, stores it, records the
// import, and hands it to the background worker. Responds immediately with
// the pending import; progress flows over /api/events.
func (s *Server) handleUpload(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing file field"})
		return
	}

	if err := s.validateUpload(file); err != nil {
		c.JSON(uploadErrorStatus(err), gin.H{"error": err.Error()})
		return
	}

	src, err := file.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read upload"})
		return
	}
	defer src.Close()

	path, err := s.files.Store(c.Request.Context(), src, file.Filename)
	if err != nil {
		log.Printf("[Upload] Failed to store %s: %v", file.Filename, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store upload"})
		return
	}

	meta := &watch.ImportMeta{
		ID:         core.ImportID(core.NewID()),
		Filename:   file.Filename,
		FileSize:   file.Size,
		FilePath:   path,
		Status:     watch.ImportStatusPending,
		ImportedAt: core.Now(),
	}
	if err := s.importRepo.Create(c.Request.Context(), meta); err != nil {
		log.Printf("[Upload] Failed to record import %s: %v", meta.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to record import"})
		return
	}

	// Detach from the request context: the import outlives the response.
	go s.worker.Run(context.Background(), meta)

	log.Printf("[Upload] Accepted %s (%d bytes) as import %s", file.Filename, file.Size, meta.ID)
	c.JSON(http.StatusAccepted, meta)
}

func (s *Server) handleListImports(c *gin.Context) {
	imports, err := s.importRepo.List(c.Request.Context(), 50)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list imports"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"imports": imports})
}

func (s *Server) handleGetImport(c *gin.Context) {
	id, err := core.ParseImportID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid import id"})
		return
	}

	meta, err := s.importRepo.GetByID(c.Request.Context(), id)
	if err != nil {
		if core.IsNotFoundError(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "import not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load import"})
		return
	}
	c.JSON(http.StatusOK, meta)
}

func (s *Server) handleDashboard(c *gin.Context) {
	dash, _, err := s.buildDashboard(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load history"})
		return
	}
	c.JSON(http.StatusOK, dash)
}

func (s *Server) handleExport(c *gin.Context) {
	dash, _, err := s.buildDashboard(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load history"})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="watch-history.xlsx"`)
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if err := s.exporter.Write(dash, c.Writer); err != nil {
		log.Printf("[Export] Failed to write workbook: %v", err)
	}
}

func (s *Server) handleReport(c *gin.Context) {
	dash, now, err := s.buildDashboard(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load history"})
		return
	}

	md := BuildReport(dash, now)
	if c.Query("format") == "markdown" {
		c.Data(http.StatusOK, "text/markdown; charset=utf-8", []byte(md))
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", RenderHTML(md))
}

// validateUpload rejects files the importer cannot use before anything is
// stored. The export is always an HTML document.
func (s *Server) validateUpload(file *multipart.FileHeader) error {
	if s.cfg.Storage.MaxFileSize > 0 && file.Size > s.cfg.Storage.MaxFileSize {
		return fmt.Errorf("%w: %d bytes, limit %d", core.ErrImportTooBig, file.Size, s.cfg.Storage.MaxFileSize)
	}

	switch strings.ToLower(filepath.Ext(file.Filename)) {
	case ".html", ".htm":
		return nil
	}
	return fmt.Errorf("%w: %s", core.ErrUnsupported, file.Filename)
}

func uploadErrorStatus(err error) int {
	switch {
	case errors.Is(err, core.ErrImportTooBig):
		return http.StatusRequestEntityTooLarge
	case core.IsIngestionError(err):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// buildDashboard loads the stored history and aggregates it under the
// request's filter.
func (s *Server) buildDashboard(c *gin.Context) (analytics.Dashboard, time.Time, error) {
	records, err := s.historyRepo.ListAll(c.Request.Context())
	if err != nil {
		return analytics.Dashboard{}, time.Time{}, err
	}

	now := s.now()
	if at := c.Query("at"); at != "" {
		if parsed, perr := time.Parse(time.RFC3339, at); perr == nil {
			now = parsed
		}
	}

	return analytics.BuildDashboard(records, filterFromQuery(c), now, s.cfg.Import.TopChannels), now, nil
}

// filterFromQuery maps query parameters onto the aggregation filter. Unknown
// or empty values fall through to the identity filter.
func filterFromQuery(c *gin.Context) watch.FilterOptions {
	f := watch.FilterOptions{
		Timeframe: watch.Timeframe(c.DefaultQuery("timeframe", string(watch.TimeframeAll))),
		Search:    c.Query("search"),
	}

	switch c.Query("product") {
	case string(watch.ProductYouTube):
		f.Product = watch.ProductYouTube
	case string(watch.ProductYouTubeMusic):
		f.Product = watch.ProductYouTubeMusic
	}

	if topics := c.Query("topics"); topics != "" {
		f.Topics = splitCSV(topics)
	}
	if channels := c.Query("channels"); channels != "" {
		f.Channels = splitCSV(channels)
	}
	return f
}

func splitCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
