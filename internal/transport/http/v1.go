package http

import (
	"github.com/gin-gonic/gin"

	"github.com/triswaplabs/triswap-backend/internal/handler"
	"github.com/triswaplabs/triswap-backend/internal/utils/config"
	"github.com/triswaplabs/triswap-backend/internal/utils/logger"
)

func loadV1Routes(r *gin.Engine, h *handler.Handler, appConfig *config.AppConfig, logger *logger.Logger) {
	v1 := r.Group("/api/v1")

	orders := v1.Group("/orders")
	{
		orders.POST("", h.SwapHandler.CreateOrder)
		orders.GET("", h.SwapHandler.ListOrders)
		orders.GET("/:id", h.SwapHandler.GetOrder)
		orders.POST("/:id/consensus", h.SwapHandler.InitializeOrder)
		orders.POST("/:id/poll", h.SwapHandler.PollConsensus)
		orders.POST("/:id/claim", h.SwapHandler.ClaimOrder)
		orders.POST("/:id/refund", h.SwapHandler.RefundOrder)
	}

	healthGroup := v1.Group("/health")
	{
		healthGroup.GET("/db", h.HealthHandler.Database)
		healthGroup.GET("/external", h.HealthHandler.External)
	}

	// health check
	r.GET("/healthz", h.HealthHandler.Basic)

	// prometheus metrics
	r.GET("/metrics", h.MetricsHandler.Handler())
}
