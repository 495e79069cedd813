// Package interfaces defines the client and service contracts for yfin.
package interfaces

import (
	"context"

	"github.com/bobmcallan/yfin/internal/models"
)

// YahooClient provides access to the Yahoo Finance API.
type YahooClient interface {
	// GetStockInfo retrieves the profile and headline quote for a ticker
	GetStockInfo(ctx context.Context, symbol string) (*models.StockInfo, error)

	// GetHistory retrieves OHLCV bars for a period/interval combination
	GetHistory(ctx context.Context, symbol, period, interval string) ([]models.Bar, error)

	// GetFinancials retrieves a financial statement history.
	// statementType is one of "income", "balance", "cashflow".
	GetFinancials(ctx context.Context, symbol, statementType string) (*models.FinancialStatements, error)

	// GetUpgradeDowngrades retrieves analyst rating changes, most recent first
	GetUpgradeDowngrades(ctx context.Context, symbol string) ([]models.GradeChange, error)

	// GetNews retrieves recent news articles for a ticker
	GetNews(ctx context.Context, symbol string, limit int) ([]models.NewsItem, error)

	// Search finds symbols matching a query string
	Search(ctx context.Context, query string) ([]models.SearchResult, error)

	// GetEarnings retrieves the earnings calendar and reported history
	GetEarnings(ctx context.Context, symbol string) (*models.EarningsCalendar, error)

	// GetOptionChain retrieves the chain for an expiration date
	// (YYYY-MM-DD); an empty date selects the nearest expiration.
	GetOptionChain(ctx context.Context, symbol, expiration string) (*models.OptionChain, error)
}
