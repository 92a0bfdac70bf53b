package cmd

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/allanboury/ao-trading-dasboard/api"
	"github.com/allanboury/ao-trading-dasboard/internal/config"
	"github.com/allanboury/ao-trading-dasboard/internal/repository"
	"github.com/allanboury/ao-trading-dasboard/internal/service"
	"github.com/allanboury/ao-trading-dasboard/internal/util"
	"github.com/allanboury/ao-trading-dasboard/pkg/exchangerate"
)

// LoadConfig picks up the YAML config named by AODASH_CONFIG, or the
// defaults when the variable is unset.
func LoadConfig() (*config.Config, error) {
	if path := os.Getenv("AODASH_CONFIG"); path != "" {
		return config.LoadFromFile(path)
	}
	return config.Default(), nil
}

// InitializeDependencies wires the whole dashboard together. Every
// entrypoint (HTTP server, lambda, CLI serve) goes through here so they all
// agree on the stack.
func InitializeDependencies(cfg *config.Config) (*api.ApiHandler, error) {
	secrets, err := util.LoadSecrets()
	if err != nil {
		return nil, fmt.Errorf("failed to load secrets: %w", err)
	}

	sessionTtl, err := cfg.SessionTtlDuration()
	if err != nil {
		return nil, fmt.Errorf("invalid session ttl: %w", err)
	}

	rateClient := exchangerate.Client{
		HttpClient: &http.Client{Timeout: 10 * time.Second},
		ApiKey:     secrets.ExchangeRateApi.Key,
		BaseUrl:    cfg.RateApiBaseUrl,
	}
	ratesService := service.NewRatesService(repository.NewRatesRepository(rateClient))
	dashboardService := service.NewDashboardService(
		ratesService,
		cfg.BaseCurrency,
		cfg.DefaultDisplayCurrency,
		cfg.TopTradesCount,
	)

	return &api.ApiHandler{
		SessionRepository: repository.NewSessionRepository(sessionTtl),
		DashboardService:  dashboardService,
		ExportService:     service.NewExportService(),
		AccessCode:        secrets.AccessCode,
		JwtSigningSecret:  secrets.Jwt,
	}, nil
}
