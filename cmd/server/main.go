package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"refbooks/internal/config"
	"refbooks/internal/logging"
)

var (
	// configFile задаётся флагом --config.
	configFile string

	cfg    config.Config
	logger *slog.Logger
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "refbooks",
	Short: "Сервис справочников с версиями",
	Long: `refbooks отдаёт справочники, их версии и элементы по HTTP (только чтение).
Без подкоманды запускает сервер (то же, что "refbooks serve").`,
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
	RunE:              runServe,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (yaml/json)")
	config.RegisterFlags(rootCmd.PersistentFlags())

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(listCmd)
}

// loadConfig: файл -> ENV -> флаги, затем логгер.
func loadConfig(cmd *cobra.Command, _ []string) error {
	c, err := config.Load(configFile, cmd.Flags())
	if err != nil {
		return err
	}
	cfg = c
	logger = logging.New(cfg.LogLevel, cfg.LogFormat, os.Stderr)
	slog.SetDefault(logger)
	return nil
}
