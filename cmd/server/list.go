package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"refbooks/internal/config"
	"refbooks/internal/refbook"
)

var listDate string

// list печатает справочники как список в админке: текущая версия и дата её начала.
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Показать справочники с текущими версиями",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		store, err := openStore(ctx, cfg.AutoMigrate)
		if err != nil {
			return err
		}
		defer store.Close()

		if cfg.DBDriver == config.DriverMemory && cfg.SeedDir != "" {
			if err := seedFrom(ctx, store, cfg.SeedDir); err != nil {
				return err
			}
		}

		svc, err := refbook.NewService(store, refbook.WithLogger(logger))
		if err != nil {
			return err
		}
		on := svc.Today()
		if listDate != "" {
			if on, err = refbook.ParseDate(listDate); err != nil {
				return err
			}
		}
		sums, err := svc.Summaries(ctx, on)
		if err != nil {
			return err
		}
		return printSummaries(cmd.OutOrStdout(), sums)
	},
}

func init() {
	listCmd.Flags().StringVar(&listDate, "date", "", "reference date YYYY-MM-DD (default: today)")
}

func printSummaries(w io.Writer, sums []refbook.Summary) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tCODE\tNAME\tVERSION\tSTART_DATE")
	for _, s := range sums {
		start := ""
		if s.StartDate != nil {
			start = s.StartDate.String()
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", s.ID, s.Code, s.Name, s.CurrentVersion, start)
	}
	return tw.Flush()
}
