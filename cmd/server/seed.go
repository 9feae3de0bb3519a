package main

import (
	"github.com/spf13/cobra"
)

var seedDir string

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Загрузить справочники из YAML-файлов",
	Long: `Читает *.yaml из папки (по умолчанию seed_dir), проверяет их линтером
и записывает справочники, версии и элементы в хранилище.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		dir := seedDir
		if dir == "" {
			dir = cfg.SeedDir
		}
		store, err := openStore(cmd.Context(), cfg.AutoMigrate)
		if err != nil {
			return err
		}
		defer store.Close()
		return seedFrom(cmd.Context(), store, dir)
	},
}

func init() {
	seedCmd.Flags().StringVar(&seedDir, "dir", "", "directory with YAML catalogs (default: seed_dir)")
}
