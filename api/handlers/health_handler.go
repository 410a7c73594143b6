package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yourusername/ytdl-go/internal/doctor"
	"github.com/yourusername/ytdl-go/internal/domain"
)

// Version is reported by the health endpoint
const Version = "0.1.0"

// HealthHandler handles health check requests
type HealthHandler struct {
	config *domain.Config
	lookup domain.ExecutableLocator
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(config *domain.Config, lookup domain.ExecutableLocator) *HealthHandler {
	return &HealthHandler{
		config: config,
		lookup: lookup,
	}
}

// HealthResponse represents a health check response
type HealthResponse struct {
	Status  string              `json:"status"`
	Version string              `json:"version"`
	Doctor  domain.DoctorReport `json:"doctor"`
}

func (h *HealthHandler) check() domain.DoctorReport {
	downloader := h.config.Downloader.Binary
	if downloader == "" {
		downloader = h.config.Downloader.Name
	}
	return doctor.Check(h.config.Download.OutputDir, downloader, h.config.Transcoder.Binary, h.lookup)
}

// Health handles GET /health
func (h *HealthHandler) Health(c *gin.Context) {
	report := h.check()

	response := HealthResponse{
		Status:  "ok",
		Version: Version,
		Doctor:  report,
	}
	if !report.Ready() {
		response.Status = "degraded"
	}

	c.JSON(http.StatusOK, response)
}

// Ready handles GET /ready
func (h *HealthHandler) Ready(c *gin.Context) {
	report := h.check()
	if !report.Ready() {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "not ready",
			"doctor": report,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}
