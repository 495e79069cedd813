package main

import (
	"context"
	"errors"

	"github.com/bobmcallan/yfin/internal/interfaces"
	"github.com/bobmcallan/yfin/internal/response"
)

// mockMarketService implements interfaces.MarketService with overridable
// functions. Unset functions fail the call.
type mockMarketService struct {
	stockInfoFunc            func(ctx context.Context, ticker string) (*response.Document, error)
	stockHistoryFunc         func(ctx context.Context, ticker, period, interval string) (*response.Document, error)
	stockFinancialsFunc      func(ctx context.Context, ticker, statementType string) (*response.Document, error)
	stockRecommendationsFunc func(ctx context.Context, ticker string) (*response.Document, error)
	stockNewsFunc            func(ctx context.Context, ticker string, maxItems int) (*response.Document, error)
	multipleQuotesFunc       func(ctx context.Context, tickers []string) (*response.Document, error)
	searchStocksFunc         func(ctx context.Context, query string) (*response.Document, error)
	earningsDatesFunc        func(ctx context.Context, ticker string) (*response.Document, error)
	optionsChainFunc         func(ctx context.Context, ticker string, opts interfaces.OptionsChainOptions) (*response.Document, error)
}

var errMockNotConfigured = errors.New("not configured")

func (m *mockMarketService) StockInfo(ctx context.Context, ticker string) (*response.Document, error) {
	if m.stockInfoFunc == nil {
		return nil, errMockNotConfigured
	}
	return m.stockInfoFunc(ctx, ticker)
}

func (m *mockMarketService) StockHistory(ctx context.Context, ticker, period, interval string) (*response.Document, error) {
	if m.stockHistoryFunc == nil {
		return nil, errMockNotConfigured
	}
	return m.stockHistoryFunc(ctx, ticker, period, interval)
}

func (m *mockMarketService) StockFinancials(ctx context.Context, ticker, statementType string) (*response.Document, error) {
	if m.stockFinancialsFunc == nil {
		return nil, errMockNotConfigured
	}
	return m.stockFinancialsFunc(ctx, ticker, statementType)
}

func (m *mockMarketService) StockRecommendations(ctx context.Context, ticker string) (*response.Document, error) {
	if m.stockRecommendationsFunc == nil {
		return nil, errMockNotConfigured
	}
	return m.stockRecommendationsFunc(ctx, ticker)
}

func (m *mockMarketService) StockNews(ctx context.Context, ticker string, maxItems int) (*response.Document, error) {
	if m.stockNewsFunc == nil {
		return nil, errMockNotConfigured
	}
	return m.stockNewsFunc(ctx, ticker, maxItems)
}

func (m *mockMarketService) MultipleQuotes(ctx context.Context, tickers []string) (*response.Document, error) {
	if m.multipleQuotesFunc == nil {
		return nil, errMockNotConfigured
	}
	return m.multipleQuotesFunc(ctx, tickers)
}

func (m *mockMarketService) SearchStocks(ctx context.Context, query string) (*response.Document, error) {
	if m.searchStocksFunc == nil {
		return nil, errMockNotConfigured
	}
	return m.searchStocksFunc(ctx, query)
}

func (m *mockMarketService) EarningsDates(ctx context.Context, ticker string) (*response.Document, error) {
	if m.earningsDatesFunc == nil {
		return nil, errMockNotConfigured
	}
	return m.earningsDatesFunc(ctx, ticker)
}

func (m *mockMarketService) OptionsChain(ctx context.Context, ticker string, opts interfaces.OptionsChainOptions) (*response.Document, error) {
	if m.optionsChainFunc == nil {
		return nil, errMockNotConfigured
	}
	return m.optionsChainFunc(ctx, ticker, opts)
}

var _ interfaces.MarketService = (*mockMarketService)(nil)
