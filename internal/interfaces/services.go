package interfaces

import (
	"context"

	"github.com/bobmcallan/yfin/internal/response"
)

// MarketService builds tool response documents from market data. Each method
// is the fetch-then-reshape step for one tool, decoupled from the formatter.
//
// Methods may return a document that already carries an "error" key (for
// domain failures like empty data or an unavailable expiration date); a
// non-nil error is reserved for provider failures, which the caller wraps
// with tool-specific context.
type MarketService interface {
	// StockInfo returns price, valuation, and profile fields for a ticker
	StockInfo(ctx context.Context, ticker string) (*response.Document, error)

	// StockHistory returns OHLCV history for a period/interval
	StockHistory(ctx context.Context, ticker, period, interval string) (*response.Document, error)

	// StockFinancials returns a financial statement organized by period
	StockFinancials(ctx context.Context, ticker, statementType string) (*response.Document, error)

	// StockRecommendations returns analyst rating changes
	StockRecommendations(ctx context.Context, ticker string) (*response.Document, error)

	// StockNews returns up to maxItems recent articles
	StockNews(ctx context.Context, ticker string, maxItems int) (*response.Document, error)

	// MultipleQuotes returns current quotes for up to 20 tickers,
	// collecting per-ticker failures into an "errors" list
	MultipleQuotes(ctx context.Context, tickers []string) (*response.Document, error)

	// SearchStocks validates a ticker or finds matches for a query
	SearchStocks(ctx context.Context, query string) (*response.Document, error)

	// EarningsDates returns the next earnings date and reported history
	EarningsDates(ctx context.Context, ticker string) (*response.Document, error)

	// OptionsChain returns a filtered options chain
	OptionsChain(ctx context.Context, ticker string, opts OptionsChainOptions) (*response.Document, error)
}

// OptionsChainOptions holds the expiration selection and contract filters
// for the options chain tool. Nil pointer fields mean "no filter".
type OptionsChainOptions struct {
	ExpirationDate  string // YYYY-MM-DD, empty selects nearest
	OptionType      string // calls, puts, or both
	InTheMoney      *bool
	MinVolume       *int64
	MinOpenInterest *int64
	StrikeMin       *float64
	StrikeMax       *float64
}
