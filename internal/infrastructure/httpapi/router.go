package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RouterConfig collects the handlers mounted on the engine. Nil entries are skipped.
type RouterConfig struct {
	Dashboard      *DashboardHandler
	AuthMiddleware *AuthMiddleware
	Metrics        http.Handler
}

// NewRouter builds the gin engine serving the dashboard API.
func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/healthz", Health)
	if cfg.Metrics != nil {
		r.GET("/metrics", gin.WrapH(cfg.Metrics))
	}

	r.NoRoute(func(c *gin.Context) {
		NotFound(c, "route not found", gin.H{"path": c.Request.URL.Path})
	})

	api := r.Group("/api/dashboard")
	if cfg.AuthMiddleware != nil {
		api.Use(cfg.AuthMiddleware.RequireRole())
	}

	if cfg.Dashboard != nil {
		api.GET("/infolote/:id", cfg.Dashboard.Overview)
		api.GET("/:family/:idLote/:periodo", cfg.Dashboard.Report)
	}

	return r
}
