package main

import (
	"github.com/spf13/cobra"

	"refbooks/internal/config"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Создать таблицы и индексы (postgres/sqlite)",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if cfg.DBDriver == config.DriverMemory {
			logger.Warn("memory driver has no schema, nothing to migrate")
			return nil
		}
		store, err := openStore(cmd.Context(), true)
		if err != nil {
			return err
		}
		defer store.Close()
		logger.Info("schema is up to date", "driver", cfg.DBDriver)
		return nil
	},
}
