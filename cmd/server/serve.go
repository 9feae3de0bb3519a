package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"refbooks/internal/api"
	"refbooks/internal/config"
	"refbooks/internal/refbook"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Запустить HTTP API",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := openStore(ctx, cfg.AutoMigrate)
	if err != nil {
		return err
	}
	defer store.Close()

	// in-memory хранилище пустое, наполняем из папки справочников, если она есть
	if cfg.DBDriver == config.DriverMemory && cfg.SeedDir != "" {
		if _, statErr := os.Stat(cfg.SeedDir); statErr == nil {
			if err := seedFrom(ctx, store, cfg.SeedDir); err != nil {
				return err
			}
		} else {
			logger.Warn("seed dir not found, starting empty", "dir", cfg.SeedDir)
		}
	}

	svc, err := refbook.NewService(store, refbook.WithLogger(logger))
	if err != nil {
		return err
	}

	gin.SetMode(gin.ReleaseMode)
	router := api.NewRouter(svc, logger, api.NewMetrics())
	logger.Info("starting refbooks", "driver", cfg.DBDriver, "port", cfg.Port)
	return api.RunServer(ctx, cfg.Addr(), router, logger)
}
