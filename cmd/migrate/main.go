package main

import (
	"os"

	"github.com/triswaplabs/triswap-backend/internal/model"
	pgstore "github.com/triswaplabs/triswap-backend/internal/store/postgres"
	"github.com/triswaplabs/triswap-backend/internal/utils/config"
	"github.com/triswaplabs/triswap-backend/internal/utils/logger"
)

func main() {
	appConfig := config.New()
	logger := logger.New(appConfig.Environment)

	db := pgstore.New(appConfig, logger)

	if err := db.AutoMigrate(&model.SwapOrder{}); err != nil {
		logger.Error("[main][AutoMigrate] failed to run migrations", map[string]string{
			"error": err.Error(),
		})
		os.Exit(1)
	}

	logger.Info("Migrations completed successfully")
}
