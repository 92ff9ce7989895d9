package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"assetbot/api"
	"assetbot/internal/render"

	"github.com/spf13/cobra"
)

func main() {
	var configPath string

	root := &cobra.Command{
		Use:   "assetbot",
		Short: "client for the portfolio backtesting service",
	}
	root.PersistentFlags().StringVar(&configPath, "config", "assetbot.yaml", "path to yaml config")

	var (
		tickers   []string
		capital   float64
		exportCsv bool
	)
	allocateCmd := &cobra.Command{
		Use:   "allocate",
		Short: "submit a backtest and render the per-symbol results",
		RunE: func(c *cobra.Command, args []string) error {
			c.SilenceUsage = true

			deps, err := InitializeDependencies(configPath)
			if err != nil {
				return err
			}

			resultSet, err := deps.AllocateHandler.Run(context.Background(), tickers, capital)
			if err != nil {
				return fmt.Errorf("%s", presentError(err))
			}
			if resultSet == nil {
				// superseded by a newer submission; nothing to show
				return nil
			}

			if err := render.ResultSet(os.Stdout, resultSet.Response, resultSet.Requested); err != nil {
				return err
			}

			if exportCsv {
				return exportLedgers(deps, resultSet)
			}
			return nil
		},
	}
	allocateCmd.Flags().StringSliceVar(&tickers, "tickers", nil, "ticker symbols, e.g. AAPL,MSFT")
	allocateCmd.Flags().Float64Var(&capital, "capital", 0, "capital to allocate across the tickers")
	allocateCmd.Flags().BoolVar(&exportCsv, "export", false, "write each symbol's ledger to a csv file")
	root.AddCommand(allocateCmd)

	var port int
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "run the stub allocation service locally",
		RunE: func(c *cobra.Command, args []string) error {
			c.SilenceUsage = true
			return api.ApiHandler{InitialMoney: 100000}.StartApi(port)
		},
	}
	serveCmd.Flags().IntVar(&port, "port", 8000, "port to listen on")
	root.AddCommand(serveCmd)

	if err := root.Execute(); err != nil {
		log.Fatal(err)
	}
}
