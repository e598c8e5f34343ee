package api

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mburu1/ReceiptReprintApplication/app/config"
	"github.com/mburu1/ReceiptReprintApplication/app/services"
)

// NewRouter wires the HTTP surface: the reprint API under /api/v1 plus
// health and metrics endpoints.
func NewRouter(receipts *services.ReceiptService, printer *services.PrintService, cfg *config.Config) *gin.Engine {
	if !cfg.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	registerMetrics()

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(cors.Default())
	r.Use(metricsMiddleware())

	h := NewHandlers(receipts, printer, cfg)

	v1 := r.Group("/api/v1")
	{
		v1.POST("/reprint", h.Reprint)
		v1.GET("/stores", h.Stores)
		v1.GET("/printers", h.Printers)
	}

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}
