package market

import (
	"context"
	"errors"

	"github.com/bobmcallan/yfin/internal/models"
)

// fakeYahoo implements interfaces.YahooClient with overridable functions.
// Unset functions fail the call.
type fakeYahoo struct {
	getStockInfoFunc         func(ctx context.Context, symbol string) (*models.StockInfo, error)
	getHistoryFunc           func(ctx context.Context, symbol, period, interval string) ([]models.Bar, error)
	getFinancialsFunc        func(ctx context.Context, symbol, statementType string) (*models.FinancialStatements, error)
	getUpgradeDowngradesFunc func(ctx context.Context, symbol string) ([]models.GradeChange, error)
	getNewsFunc              func(ctx context.Context, symbol string, limit int) ([]models.NewsItem, error)
	searchFunc               func(ctx context.Context, query string) ([]models.SearchResult, error)
	getEarningsFunc          func(ctx context.Context, symbol string) (*models.EarningsCalendar, error)
	getOptionChainFunc       func(ctx context.Context, symbol, expiration string) (*models.OptionChain, error)
}

var errNotConfigured = errors.New("not configured")

func (f *fakeYahoo) GetStockInfo(ctx context.Context, symbol string) (*models.StockInfo, error) {
	if f.getStockInfoFunc == nil {
		return nil, errNotConfigured
	}
	return f.getStockInfoFunc(ctx, symbol)
}

func (f *fakeYahoo) GetHistory(ctx context.Context, symbol, period, interval string) ([]models.Bar, error) {
	if f.getHistoryFunc == nil {
		return nil, errNotConfigured
	}
	return f.getHistoryFunc(ctx, symbol, period, interval)
}

func (f *fakeYahoo) GetFinancials(ctx context.Context, symbol, statementType string) (*models.FinancialStatements, error) {
	if f.getFinancialsFunc == nil {
		return nil, errNotConfigured
	}
	return f.getFinancialsFunc(ctx, symbol, statementType)
}

func (f *fakeYahoo) GetUpgradeDowngrades(ctx context.Context, symbol string) ([]models.GradeChange, error) {
	if f.getUpgradeDowngradesFunc == nil {
		return nil, errNotConfigured
	}
	return f.getUpgradeDowngradesFunc(ctx, symbol)
}

func (f *fakeYahoo) GetNews(ctx context.Context, symbol string, limit int) ([]models.NewsItem, error) {
	if f.getNewsFunc == nil {
		return nil, errNotConfigured
	}
	return f.getNewsFunc(ctx, symbol, limit)
}

func (f *fakeYahoo) Search(ctx context.Context, query string) ([]models.SearchResult, error) {
	if f.searchFunc == nil {
		return nil, errNotConfigured
	}
	return f.searchFunc(ctx, query)
}

func (f *fakeYahoo) GetEarnings(ctx context.Context, symbol string) (*models.EarningsCalendar, error) {
	if f.getEarningsFunc == nil {
		return nil, errNotConfigured
	}
	return f.getEarningsFunc(ctx, symbol)
}

func (f *fakeYahoo) GetOptionChain(ctx context.Context, symbol, expiration string) (*models.OptionChain, error) {
	if f.getOptionChainFunc == nil {
		return nil, errNotConfigured
	}
	return f.getOptionChainFunc(ctx, symbol, expiration)
}

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int64) *int64       { return &v }
func boolPtr(v bool) *bool        { return &v }
