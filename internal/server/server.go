package server

import (
	"context"

	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	"github.com/triswaplabs/triswap-backend/internal/aggregator"
	"github.com/triswaplabs/triswap-backend/internal/chainrpc"
	"github.com/triswaplabs/triswap-backend/internal/consensus"
	"github.com/triswaplabs/triswap-backend/internal/controller"
	"github.com/triswaplabs/triswap-backend/internal/dex"
	"github.com/triswaplabs/triswap-backend/internal/guard"
	"github.com/triswaplabs/triswap-backend/internal/handler"
	"github.com/triswaplabs/triswap-backend/internal/model"
	"github.com/triswaplabs/triswap-backend/internal/monitoring"
	"github.com/triswaplabs/triswap-backend/internal/oracle"
	"github.com/triswaplabs/triswap-backend/internal/store"
	pgstore "github.com/triswaplabs/triswap-backend/internal/store/postgres"
	"github.com/triswaplabs/triswap-backend/internal/sweeper"
	"github.com/triswaplabs/triswap-backend/internal/transport/http"
	"github.com/triswaplabs/triswap-backend/internal/utils/config"
	"github.com/triswaplabs/triswap-backend/internal/utils/logger"
)

func Init() {
	appConfig := config.New()
	logger := logger.New(appConfig.Environment)

	var db *gorm.DB
	if appConfig.DatabaseEnabled() {
		db = pgstore.New(appConfig, logger)
	}
	s := store.New(db)

	clients := initChainClients(appConfig, logger)

	verifierClient, err := ethclient.Dial(appConfig.Evm.EthereumRPCEndpoint)
	if err != nil {
		logger.Fatal("failed to dial consensus verifier endpoint", map[string]string{
			"error": err.Error(),
		})
		return
	}

	gateway, err := consensus.New(appConfig, logger, verifierClient)
	if err != nil {
		logger.Fatal("failed to init consensus gateway", map[string]string{
			"error": err.Error(),
		})
		return
	}

	metricsRegistry := prometheus.NewRegistry()
	apiMetrics := monitoring.NewExternalAPIMetrics()
	apiMetrics.MustRegister(metricsRegistry)
	orderMetrics := monitoring.NewOrderMetrics()
	orderMetrics.MustRegister(metricsRegistry)
	httpMetrics := monitoring.NewHTTPMetrics()
	httpMetrics.MustRegister(metricsRegistry)

	guardedGateway := monitoring.NewCircuitBreakerGateway(
		gateway,
		monitoring.CircuitBreakerConfigs["consensus_verifier"],
		apiMetrics,
		logger,
	)

	registry := dex.NewRegistryFromConfig(appConfig, logger)
	agg := aggregator.New(registry, logger)
	priceOracle := oracle.New(agg, logger)
	abuseGuard := guard.New(s.RateLimit, priceOracle, logger)

	ctrl := controller.New(s, abuseGuard, agg, guardedGateway, orderMetrics, logger)

	sw := sweeper.New(s.Order, logger)

	c := cron.New()

	c.AddFunc("@every 6h", func() {
		swept := sw.Sweep()
		if swept > 0 {
			orderMetrics.RecordSwept(swept)
		}
	})

	c.AddFunc("@every 2m", func() {
		pollPendingConsensus(s, ctrl, logger)
	})

	c.Start()

	h := handler.New(appConfig, logger, ctrl, clients, db, metricsRegistry)
	httpServer := http.NewHttpServer(appConfig, logger, h, httpMetrics)

	httpServer.Run(":" + appConfig.ApiServer.Port)
}

func initChainClients(appConfig *config.AppConfig, logger *logger.Logger) []chainrpc.IChainClient {
	var clients []chainrpc.IChainClient

	evmEndpoints := map[model.Network]string{
		model.NetworkEthereum: appConfig.Evm.EthereumRPCEndpoint,
		model.NetworkBase:     appConfig.Evm.BaseRPCEndpoint,
	}
	for _, network := range []model.Network{model.NetworkEthereum, model.NetworkBase} {
		endpoint := evmEndpoints[network]
		if endpoint == "" {
			logger.Warn("no RPC endpoint configured, skipping network", map[string]string{
				"network": string(network),
			})
			continue
		}
		client, err := chainrpc.NewEvmClient(network, endpoint, logger)
		if err != nil {
			logger.Error("failed to init EVM client", map[string]string{
				"network": string(network),
				"error":   err.Error(),
			})
			continue
		}
		clients = append(clients, client)
	}

	if appConfig.Solana.RPCEndpoint != "" {
		clients = append(clients, chainrpc.NewSolanaClient(appConfig.Solana.RPCEndpoint, logger))
	}

	return clients
}

// pollPendingConsensus refreshes the proof count of every order still
// waiting on the 2-of-3 threshold.
func pollPendingConsensus(s *store.Store, ctrl controller.IController, logger *logger.Logger) {
	orders, err := s.Order.ListByStatus(model.SwapOrderStatusConsensusPending)
	if err != nil {
		logger.Error("[pollPendingConsensus][ListByStatus]", map[string]string{
			"error": err.Error(),
		})
		return
	}

	for _, order := range orders {
		if _, err := ctrl.PollConsensus(context.Background(), order.ID); err != nil {
			logger.Error("[pollPendingConsensus][PollConsensus]", map[string]string{
				"order_id": order.ID,
				"error":    err.Error(),
			})
		}
	}
}
