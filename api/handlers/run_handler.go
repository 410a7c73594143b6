package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yourusername/ytdl-go/internal/domain"
	"go.uber.org/zap"
)

// DefaultRunLimit caps list responses when no limit is given
const DefaultRunLimit = 50

// workflowCounter is implemented by repositories that can group counts
type workflowCounter interface {
	CountByWorkflow() (map[domain.Workflow]int64, error)
}

// RunHandler serves the run history
type RunHandler struct {
	repo   domain.RunRepository
	logger *zap.Logger
}

// NewRunHandler creates a new run handler. repo may be nil when history
// is disabled; every endpoint then answers 503.
func NewRunHandler(repo domain.RunRepository, logger *zap.Logger) *RunHandler {
	return &RunHandler{
		repo:   repo,
		logger: logger,
	}
}

func (h *RunHandler) available(c *gin.Context) bool {
	if h.repo == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "run history is disabled"})
		return false
	}
	return true
}

// ListRuns handles GET /api/v1/runs
func (h *RunHandler) ListRuns(c *gin.Context) {
	if !h.available(c) {
		return
	}

	limit := DefaultRunLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a non-negative integer"})
			return
		}
		limit = n
	}

	var (
		runs []*domain.RunRecord
		err  error
	)
	if w := c.Query("workflow"); w != "" {
		workflow := domain.Workflow(w)
		if !domain.ValidateWorkflow(workflow) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown workflow: " + w})
			return
		}
		runs, err = h.repo.FindByWorkflow(workflow, limit)
	} else {
		runs, err = h.repo.FindRecent(limit)
	}

	if err != nil {
		h.logger.Error("Failed to list runs", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if runs == nil {
		runs = []*domain.RunRecord{}
	}

	c.JSON(http.StatusOK, runs)
}

// GetRun handles GET /api/v1/runs/:id
func (h *RunHandler) GetRun(c *gin.Context) {
	if !h.available(c) {
		return
	}

	id := c.Param("id")
	run, err := h.repo.FindByID(id)
	if err != nil {
		h.logger.Error("Failed to get run", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if run == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "run not found"})
		return
	}

	c.JSON(http.StatusOK, run)
}

// GetStats handles GET /api/v1/runs/stats
func (h *RunHandler) GetStats(c *gin.Context) {
	if !h.available(c) {
		return
	}

	total, err := h.repo.Count()
	if err != nil {
		h.logger.Error("Failed to count runs", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	stats := gin.H{"total": total}
	if counter, ok := h.repo.(workflowCounter); ok {
		byWorkflow, err := counter.CountByWorkflow()
		if err != nil {
			h.logger.Error("Failed to count runs by workflow", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		stats["by_workflow"] = byWorkflow
	}

	c.JSON(http.StatusOK, stats)
}
