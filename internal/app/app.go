// Package app wires configuration, storage, clients, and services into one
// shared core used by cmd/finsight-server.
package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/finsightlabs/finsight/internal/clients/gemini"
	"github.com/finsightlabs/finsight/internal/clients/yahoo"
	"github.com/finsightlabs/finsight/internal/common"
	"github.com/finsightlabs/finsight/internal/interfaces"
	"github.com/finsightlabs/finsight/internal/services/summary"
	"github.com/finsightlabs/finsight/internal/storage/financedb"
)

// App holds all initialized services and clients.
type App struct {
	Config         *common.Config
	Logger         *common.Logger
	Store          interfaces.FinanceStore
	MarketClient   interfaces.MarketClient
	GeminiClient   interfaces.AIClient
	SummaryService interfaces.SummaryService
	StartupTime    time.Time
}

// getBinaryDir returns the directory containing the executable.
func getBinaryDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	return filepath.Dir(exe)
}

// NewApp initializes configuration, logging, storage, clients, and services.
// configPath may be empty, in which case the default resolution logic is used.
func NewApp(configPath string) (*App, error) {
	startupStart := time.Now()

	binDir := getBinaryDir()

	// Config resolution: explicit path, FINSIGHT_CONFIG, binary dir, then
	// the development fallback.
	if configPath == "" {
		configPath = os.Getenv("FINSIGHT_CONFIG")
	}
	if configPath == "" {
		configPath = filepath.Join(binDir, "finsight.toml")
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			configPath = "config/finsight.toml"
		}
	}

	config, err := common.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// Resolve relative storage path to binary directory
	if config.Storage.Path != "" && !filepath.IsAbs(config.Storage.Path) {
		config.Storage.Path = filepath.Join(binDir, config.Storage.Path)
	}

	logger := common.NewLoggerFromConfig(config.Logging)

	store, err := financedb.NewStore(logger, config.Storage.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	marketClient := yahoo.NewClient(
		yahoo.WithLogger(logger),
		yahoo.WithBaseURL(config.Clients.Yahoo.BaseURL),
		yahoo.WithRateLimit(config.Clients.Yahoo.RateLimit),
		yahoo.WithTimeout(config.Clients.Yahoo.GetTimeout()),
	)

	var geminiClient interfaces.AIClient
	if config.Clients.Gemini.APIKey != "" {
		client, err := gemini.NewClient(context.Background(), config.Clients.Gemini.APIKey,
			gemini.WithLogger(logger),
			gemini.WithModel(config.Clients.Gemini.Model),
		)
		if err != nil {
			logger.Warn().Err(err).Msg("Failed to initialize Gemini client - AI analysis will be unavailable")
		} else {
			geminiClient = client
		}
	} else {
		logger.Warn().Msg("Gemini API key not configured - AI analysis will be unavailable")
	}

	summaryService := summary.NewService(store, marketClient,
		summary.WithLogger(logger),
		summary.WithPriceTimeout(config.Clients.Yahoo.GetTimeout()),
		summary.WithRecentTransactionLimit(config.Dashboard.GetRecentTransactions()),
		summary.WithIncludeClosedHoldings(config.Dashboard.GetIncludeClosedHoldings()),
	)

	a := &App{
		Config:         config,
		Logger:         logger,
		Store:          store,
		MarketClient:   marketClient,
		GeminiClient:   geminiClient,
		SummaryService: summaryService,
		StartupTime:    startupStart,
	}

	logger.Info().Dur("startup", time.Since(startupStart)).Msg("App initialized")

	return a, nil
}

// Close releases all resources held by the App.
func (a *App) Close() {
	if a.Store != nil {
		a.Store.Close()
		a.Store = nil
	}
}
