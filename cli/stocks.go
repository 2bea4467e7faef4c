package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"b3-dashboard/config"
	"b3-dashboard/service"
)

func newStocksCmd(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stocks TICKER [TICKER...]",
		Short: "Show B3 price history, optionally with indicators",
		Example: `  b3dash stocks PETR4 VALE3 --period 3mo
  b3dash stocks ITUB4.SA --indicators`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			period, _ := cmd.Flags().GetString("period")
			interval, _ := cmd.Flags().GetString("interval")
			withIndicators, _ := cmd.Flags().GetBool("indicators")

			a := newApp(cmd.Context(), cfg)
			defer a.Close()

			tickers := service.ParseTickers(strings.Join(args, ","))
			bars, err := a.stocks.GetStockData(cmd.Context(), tickers, period, interval)
			if err != nil {
				return err
			}
			if withIndicators {
				return renderAnnotated(cmd.OutOrStdout(), service.AnnotateIndicators(bars))
			}
			return renderBars(cmd.OutOrStdout(), bars)
		},
	}

	cmd.Flags().String("period", "", "History period: 1d 5d 1mo 3mo 6mo 1y 2y 5y 10y ytd max")
	cmd.Flags().String("interval", "", "Bar interval: 1d 1wk 1mo ...")
	cmd.Flags().Bool("indicators", false, "Add RSI, MACD and SMA columns")

	return cmd
}

func newFXCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "fx",
		Short: "Show the USD/BRL exchange rate",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := newApp(cmd.Context(), cfg)
			defer a.Close()

			return renderFX(cmd.OutOrStdout(), a.fx.USDToBRL(cmd.Context()))
		},
	}
}
