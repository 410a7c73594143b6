package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/yourusername/ytdl-go/api/handlers"
	"github.com/yourusername/ytdl-go/api/middleware"
	"github.com/yourusername/ytdl-go/internal/command"
	"github.com/yourusername/ytdl-go/internal/domain"
)

// SetupRouter sets up the read-only HTTP API. repo may be nil when
// history is disabled.
func SetupRouter(
	config *domain.Config,
	repo domain.RunRepository,
	lookup domain.ExecutableLocator,
	launcher command.Launcher,
	log *zap.Logger,
) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	router.Use(middleware.Logger(log))
	router.Use(middleware.Recovery(log))

	healthHandler := handlers.NewHealthHandler(config, lookup)
	router.GET("/health", healthHandler.Health)
	router.GET("/ready", healthHandler.Ready)

	v1 := router.Group("/api/v1")
	{
		runHandler := handlers.NewRunHandler(repo, log)
		runs := v1.Group("/runs")
		{
			runs.GET("", runHandler.ListRuns)
			runs.GET("/stats", runHandler.GetStats)
			runs.GET("/:id", runHandler.GetRun)
		}

		commandHandler := handlers.NewCommandHandler(config, launcher)
		v1.GET("/commands/preview", commandHandler.Preview)
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	})

	return router
}
