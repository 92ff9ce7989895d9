package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"assetbot/internal/app"
	"assetbot/internal/clientconfig"
	"assetbot/internal/export"
	"assetbot/internal/logger"
	"assetbot/pkg/allocation"
)

type Dependencies struct {
	Config          *clientconfig.Config
	AllocateHandler *app.AllocateHandler
}

func InitializeDependencies(configPath string) (*Dependencies, error) {
	config, err := clientconfig.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}

	client := allocation.NewClient(config.ApiUrl, time.Duration(config.TimeoutSeconds)*time.Second)

	return &Dependencies{
		Config: config,
		AllocateHandler: &app.AllocateHandler{
			Client: client,
			Logger: logger.New(),
		},
	}, nil
}

// presentError turns a typed submission failure into the single message the
// user sees. Rate limiting gets its own wording so people know the request
// itself was fine.
func presentError(err error) string {
	validationErr := allocation.ValidationError{}
	if errors.As(err, &validationErr) {
		return validationErr.Error()
	}
	rateLimited := allocation.RateLimitedError{}
	if errors.As(err, &rateLimited) {
		return "the backtest service is rate limiting requests - wait a moment and retry"
	}
	apiErr := allocation.ApiError{}
	if errors.As(err, &apiErr) {
		return fmt.Sprintf("the backtest service rejected the request: %s", apiErr.Detail)
	}
	netErr := allocation.NetworkError{}
	if errors.As(err, &netErr) {
		return "could not reach the backtest service - check the api_url setting"
	}
	malformed := allocation.MalformedResponseError{}
	if errors.As(err, &malformed) {
		return fmt.Sprintf("the backtest service sent an unusable response: %s", malformed.Reason)
	}
	return err.Error()
}

// exportLedgers writes one csv per symbol into the configured output
// directory. A symbol with a misaligned or empty ledger is skipped with a
// warning; the remaining symbols still export.
func exportLedgers(deps *Dependencies, resultSet *app.ResultSet) error {
	for _, symbol := range resultSet.Response.OrderedSymbols(resultSet.Requested) {
		result := resultSet.Response.Results[symbol]

		records, err := result.Transactions.Records()
		if err != nil {
			logger.Warn("skipping csv for %s: %v", symbol, err)
			continue
		}

		artifact, err := export.Ledger(records, symbol)
		if err != nil {
			return err
		}
		if artifact == nil {
			logger.Info("no transactions for %s, nothing to export", symbol)
			continue
		}

		path := filepath.Join(deps.Config.OutputDir, artifact.Filename)
		if err := os.WriteFile(path, artifact.Content, 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
		fmt.Printf("wrote %s\n", path)
	}
	return nil
}
