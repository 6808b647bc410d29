package handler

import (
	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/gorm"

	"github.com/triswaplabs/triswap-backend/internal/chainrpc"
	"github.com/triswaplabs/triswap-backend/internal/controller"
	"github.com/triswaplabs/triswap-backend/internal/handler/health"
	"github.com/triswaplabs/triswap-backend/internal/handler/metrics"
	"github.com/triswaplabs/triswap-backend/internal/handler/swap"
	"github.com/triswaplabs/triswap-backend/internal/utils/config"
	"github.com/triswaplabs/triswap-backend/internal/utils/logger"
)

type Handler struct {
	SwapHandler    swap.IHandler
	HealthHandler  health.IHealthHandler
	MetricsHandler *metrics.MetricsHandler
}

func New(appConfig *config.AppConfig, logger *logger.Logger,
	ctrl controller.IController,
	clients []chainrpc.IChainClient,
	db *gorm.DB,
	metricsRegistry *prometheus.Registry) *Handler {
	return &Handler{
		SwapHandler:    swap.New(ctrl, logger, appConfig),
		HealthHandler:  health.New(appConfig, logger, db, clients),
		MetricsHandler: metrics.NewMetricsHandler(metricsRegistry),
	}
}
