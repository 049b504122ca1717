package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"resume-coach/internal/extract"
	"resume-coach/internal/feedback"
	"resume-coach/internal/files"
	"resume-coach/internal/history"
	"resume-coach/internal/shared/auth"
	"resume-coach/internal/shared/config"
	"resume-coach/internal/shared/metrics"
	"resume-coach/internal/shared/server/middleware"
	"resume-coach/internal/shared/server/respond"
	"resume-coach/internal/users"
)

// RouterDeps carries the wired handlers the router mounts.
type RouterDeps struct {
	Config          config.Config
	Auth            auth.Provider
	UsersHandler    *users.Handler
	ExtractHandler  *extract.Handler
	FeedbackHandler *feedback.Handler
	HistoryHandler  *history.Handler

	// FilesHandler is nil when blob storage signs its own URLs.
	FilesHandler *files.Handler
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
	)

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})
	api.GET("/metrics", metrics.Handler())
	deps.UsersHandler.RegisterPublicRoutes(api)
	if deps.FilesHandler != nil {
		deps.FilesHandler.RegisterRoutes(api)
	}

	protected := api.Group("")
	protected.Use(middleware.Auth(deps.Auth))
	deps.UsersHandler.RegisterRoutes(protected)
	deps.ExtractHandler.RegisterRoutes(protected)
	deps.FeedbackHandler.RegisterRoutes(protected)
	deps.HistoryHandler.RegisterRoutes(protected)

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
