package cmd

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/allanboury/ao-trading-dasboard/internal/config"
	"github.com/allanboury/ao-trading-dasboard/internal/domain"
	"github.com/allanboury/ao-trading-dasboard/internal/repository"
	"github.com/allanboury/ao-trading-dasboard/internal/service"
	"github.com/allanboury/ao-trading-dasboard/internal/util"

	"github.com/allanboury/ao-trading-dasboard/pkg/exchangerate"
	"github.com/spf13/cobra"
)

var parseCmd = &cobra.Command{
	Use:   "parse <file.html>",
	Short: "Run the extraction pipeline on a saved closed-positions page",
	Long: `Parse reads a saved HTML file, extracts the closed positions and prints
the dashboard summary. Useful for checking what a paste would produce
without starting the server.

Example:
  aodash parse positions.html --currency EUR --csv trades.csv`,
	Args: cobra.ExactArgs(1),
	RunE: runParse,
}

var (
	parseCsvPath    string
	parseCurrency   string
	parseConfigPath string
)

func init() {
	rootCmd.AddCommand(parseCmd)

	parseCmd.Flags().StringVarP(&parseCsvPath, "csv", "o", "", "write the normalized trades to a CSV file")
	parseCmd.Flags().StringVarP(&parseCurrency, "currency", "c", "", "display currency (conversion needs rate API credentials in secrets.json)")
	parseCmd.Flags().StringVar(&parseConfigPath, "config", "", "path to a YAML config file")
}

func runParse(cmd *cobra.Command, args []string) error {
	cfg := config.Default()
	if parseConfigPath != "" {
		var err error
		cfg, err = config.LoadFromFile(parseConfigPath)
		if err != nil {
			return err
		}
	}

	html, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read input file: %w", err)
	}

	// secrets are only needed when a foreign display currency forces a
	// rate fetch; an all-source-currency parse works without them
	apiKey := ""
	if secrets, err := util.LoadSecrets(); err == nil {
		apiKey = secrets.ExchangeRateApi.Key
	}

	rateClient := exchangerate.Client{
		HttpClient: &http.Client{Timeout: 10 * time.Second},
		ApiKey:     apiKey,
		BaseUrl:    cfg.RateApiBaseUrl,
	}
	dashboardService := service.NewDashboardService(
		service.NewRatesService(repository.NewRatesRepository(rateClient)),
		cfg.BaseCurrency,
		cfg.DefaultDisplayCurrency,
		cfg.TopTradesCount,
	)

	session := domain.NewSession()
	imported, err := dashboardService.ImportTrades(cmd.Context(), session, string(html))
	if err != nil {
		return err
	}
	fmt.Printf("parsed %d trades (%d rows skipped)\n\n", imported.TradeCount, imported.SkippedRows)

	result, err := dashboardService.BuildDashboard(cmd.Context(), session, service.DashboardInput{
		DisplayCurrency: parseCurrency,
	})
	if err != nil {
		return err
	}
	printSummary(result)

	if parseCsvPath != "" {
		csvBytes, err := service.NewExportService().TradesToCsv(result.Trades, parseCurrency != "")
		if err != nil {
			return err
		}
		if err := os.WriteFile(parseCsvPath, csvBytes, 0o644); err != nil {
			return fmt.Errorf("write csv: %w", err)
		}
		fmt.Printf("\nwrote %d trades to %s\n", len(result.Trades), parseCsvPath)
	}

	return nil
}

func printSummary(result *service.DashboardResult) {
	summary := result.Summary

	if summary.OldestClose != nil && summary.NewestClose != nil {
		fmt.Printf("period:          %s to %s\n",
			summary.OldestClose.Format(time.DateOnly),
			summary.NewestClose.Format(time.DateOnly))
	}
	fmt.Printf("trades:          %d\n", summary.TradeCount)
	fmt.Printf("total p/l:       %s\n", summary.TotalProfit.StringFixed(2))
	fmt.Printf("win rate:        %.1f%%\n", summary.WinRate)
	if summary.ProfitFactor != nil {
		fmt.Printf("profit factor:   %.2f\n", *summary.ProfitFactor)
	} else {
		fmt.Printf("profit factor:   undefined (no losing trades)\n")
	}
	fmt.Printf("avg p/l per day: %s\n", summary.AvgProfitPerDay.StringFixed(2))
	if summary.AvgReturnPct != nil {
		fmt.Printf("avg return:      %.2f%%\n", *summary.AvgReturnPct)
	}
	fmt.Printf("max drawdown:    %s\n", summary.MaxDrawdown.StringFixed(2))

	if len(summary.ProfitByAssetClass) > 0 {
		fmt.Println("\np/l by asset class:")
		for _, entry := range summary.ProfitByAssetClass {
			fmt.Printf("  %-8s %s\n", entry.AssetClass, entry.Profit.StringFixed(2))
		}
	}

	if result.RateNotice != "" {
		fmt.Printf("\nnote: %s (%d trades unconverted)\n", result.RateNotice, result.UnconvertedTrades)
	}
}
