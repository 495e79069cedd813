// Package market builds tool response documents from Yahoo Finance data.
package market

import (
	"context"
	"fmt"
	"strings"

	"github.com/bobmcallan/yfin/internal/common"
	"github.com/bobmcallan/yfin/internal/interfaces"
	"github.com/bobmcallan/yfin/internal/models"
	"github.com/bobmcallan/yfin/internal/response"
)

const (
	// maxNewsItems caps the news tool regardless of the requested count
	maxNewsItems = 50

	// maxQuoteTickers caps a single multiple-quotes request
	maxQuoteTickers = 20

	descriptionLimit = 500

	dateTimeLayout = "2006-01-02 15:04:05"
	dateLayout     = "2006-01-02"
)

// Service implements interfaces.MarketService on top of a Yahoo client.
type Service struct {
	yahoo  interfaces.YahooClient
	logger *common.Logger
}

// NewService creates a new market service
func NewService(yahoo interfaces.YahooClient, logger *common.Logger) *Service {
	if logger == nil {
		logger = common.NewSilentLogger()
	}
	return &Service{
		yahoo:  yahoo,
		logger: logger,
	}
}

// StockInfo returns the profile and headline figures for a ticker. Missing
// fields render as "N/A" rather than being dropped.
func (s *Service) StockInfo(ctx context.Context, ticker string) (*response.Document, error) {
	info, err := s.yahoo.GetStockInfo(ctx, ticker)
	if err != nil {
		return nil, err
	}

	s.logger.Debug().Str("ticker", ticker).Msg("Fetched stock info")

	description := "N/A"
	if info.Description != "" {
		description = clampRunes(info.Description, descriptionLimit)
	}

	doc := response.NewDocument().
		Set("ticker", ticker).
		Set("name", stringOrNA(info.Name)).
		Set("current_price", floatOrNA(info.CurrentPrice)).
		Set("currency", stringOrNA(info.Currency)).
		Set("market_cap", floatOrNA(info.MarketCap)).
		Set("pe_ratio", floatOrNA(info.TrailingPE)).
		Set("forward_pe", floatOrNA(info.ForwardPE)).
		Set("dividend_yield", floatOrNA(info.DividendYield)).
		Set("52_week_high", floatOrNA(info.WeekHigh52)).
		Set("52_week_low", floatOrNA(info.WeekLow52)).
		Set("avg_volume", intOrNA(info.AverageVolume)).
		Set("sector", stringOrNA(info.Sector)).
		Set("industry", stringOrNA(info.Industry)).
		Set("description", description)

	return doc, nil
}

// StockHistory returns OHLCV bars for a period and interval.
func (s *Service) StockHistory(ctx context.Context, ticker, period, interval string) (*response.Document, error) {
	bars, err := s.yahoo.GetHistory(ctx, ticker, period, interval)
	if err != nil {
		return nil, err
	}

	if len(bars) == 0 {
		return response.Errorf("No historical data found for %s with period=%s, interval=%s", ticker, period, interval), nil
	}

	s.logger.Debug().Str("ticker", ticker).Int("bars", len(bars)).Msg("Fetched price history")

	data := make([]any, 0, len(bars))
	for _, bar := range bars {
		data = append(data, response.NewDocument().
			Set("date", bar.Date.Format(dateTimeLayout)).
			Set("open", bar.Open).
			Set("high", bar.High).
			Set("low", bar.Low).
			Set("close", bar.Close).
			Set("volume", bar.Volume))
	}

	doc := response.NewDocument().
		Set("ticker", ticker).
		Set("period", period).
		Set("interval", interval).
		Set("count", len(bars)).
		Set("data", data)

	return doc, nil
}

// statementNames maps statement types to display names.
var statementNames = map[string]string{
	"income":   "Income Statement",
	"balance":  "Balance Sheet",
	"cashflow": "Cash Flow Statement",
}

// StockFinancials returns a financial statement organized by period end date.
func (s *Service) StockFinancials(ctx context.Context, ticker, statementType string) (*response.Document, error) {
	name, ok := statementNames[statementType]
	if !ok {
		return response.Errorf("Invalid statement_type: %s. Use 'income', 'balance', or 'cashflow'", statementType), nil
	}

	statements, err := s.yahoo.GetFinancials(ctx, ticker, statementType)
	if err != nil {
		return nil, err
	}

	if statements == nil || len(statements.Periods) == 0 {
		return response.Errorf("No %s data found for %s", strings.ToLower(name), ticker), nil
	}

	data := response.NewDocument()
	for _, period := range statements.Periods {
		lines := response.NewDocument()
		for _, line := range period.Lines {
			if line.Value != nil {
				lines.Set(humanizeLineName(line.Name), *line.Value)
			} else {
				lines.Set(humanizeLineName(line.Name), nil)
			}
		}
		data.Set(period.EndDate, lines)
	}

	doc := response.NewDocument().
		Set("ticker", ticker).
		Set("statement_type", name).
		Set("data", data)

	return doc, nil
}

// StockRecommendations returns analyst rating changes.
func (s *Service) StockRecommendations(ctx context.Context, ticker string) (*response.Document, error) {
	changes, err := s.yahoo.GetUpgradeDowngrades(ctx, ticker)
	if err != nil {
		return nil, err
	}

	if len(changes) == 0 {
		return response.Errorf("No recommendations found for %s", ticker), nil
	}

	recommendations := make([]any, 0, len(changes))
	for _, change := range changes {
		recommendations = append(recommendations, response.NewDocument().
			Set("date", change.Date.Format(dateTimeLayout)).
			Set("firm", stringOrNA(change.Firm)).
			Set("to_grade", stringOrNA(change.ToGrade)).
			Set("from_grade", stringOrNA(change.FromGrade)).
			Set("action", stringOrNA(change.Action)))
	}

	doc := response.NewDocument().
		Set("ticker", ticker).
		Set("recommendations", recommendations)

	return doc, nil
}

// StockNews returns up to maxItems recent articles for a ticker.
func (s *Service) StockNews(ctx context.Context, ticker string, maxItems int) (*response.Document, error) {
	if maxItems > maxNewsItems {
		maxItems = maxNewsItems
	}

	items, err := s.yahoo.GetNews(ctx, ticker, maxItems)
	if err != nil {
		return nil, err
	}

	if len(items) == 0 {
		return response.Errorf("No news found for %s", ticker), nil
	}

	if len(items) > maxItems {
		items = items[:maxItems]
	}

	news := make([]any, 0, len(items))
	for _, item := range items {
		published := "N/A"
		if !item.Published.IsZero() {
			published = item.Published.Format(dateTimeLayout)
		}
		news = append(news, response.NewDocument().
			Set("title", stringOrNA(item.Title)).
			Set("publisher", stringOrNA(item.Publisher)).
			Set("link", stringOrNA(item.Link)).
			Set("published", published).
			Set("type", stringOrNA(item.Type)))
	}

	doc := response.NewDocument().
		Set("ticker", ticker).
		Set("news", news)

	return doc, nil
}

// MultipleQuotes returns current quotes for up to 20 tickers. Per-ticker
// failures land in the errors list instead of failing the whole request.
func (s *Service) MultipleQuotes(ctx context.Context, tickers []string) (*response.Document, error) {
	quotes := response.NewDocument()
	errs := make([]any, 0)

	requested := tickers
	if len(requested) > maxQuoteTickers {
		requested = requested[:maxQuoteTickers]
	}

	for _, ticker := range requested {
		info, err := s.yahoo.GetStockInfo(ctx, ticker)
		if err != nil {
			errs = append(errs, fmt.Sprintf("%s: %v", ticker, err))
			continue
		}
		quotes.Set(ticker, response.NewDocument().
			Set("name", stringOrNA(info.Name)).
			Set("current_price", floatOrNA(info.CurrentPrice)).
			Set("currency", stringOrNA(info.Currency)).
			Set("change", floatOrNA(info.Change)).
			Set("change_percent", floatOrNA(info.ChangePercent)).
			Set("volume", intOrNA(info.Volume)))
	}

	doc := response.NewDocument().
		Set("quotes", quotes).
		Set("errors", errs)

	if len(tickers) > maxQuoteTickers {
		doc.Set("warning", fmt.Sprintf("Limited to first %d tickers out of %d requested", maxQuoteTickers, len(tickers)))
	}

	return doc, nil
}

// SearchStocks finds the best symbol match for a query.
func (s *Service) SearchStocks(ctx context.Context, query string) (*response.Document, error) {
	results, err := s.yahoo.Search(ctx, query)
	if err != nil {
		return nil, err
	}

	if len(results) == 0 {
		return response.NewDocument().
			Set("found", false).
			Set("message", fmt.Sprintf("No stock found for query: %s. Try using the exact ticker symbol.", query)), nil
	}

	match := results[0]
	doc := response.NewDocument().
		Set("found", true).
		Set("ticker", match.Symbol).
		Set("name", stringOrNA(match.Name)).
		Set("exchange", stringOrNA(match.Exchange)).
		Set("type", stringOrNA(match.QuoteType))

	return doc, nil
}

// EarningsDates returns the next scheduled earnings date and reported history.
func (s *Service) EarningsDates(ctx context.Context, ticker string) (*response.Document, error) {
	calendar, err := s.yahoo.GetEarnings(ctx, ticker)
	if err != nil {
		return nil, err
	}

	if calendar == nil || len(calendar.History) == 0 {
		return response.Errorf("No earnings dates found for %s", ticker), nil
	}

	nextEarnings := "N/A"
	if calendar.NextEarnings != nil {
		nextEarnings = calendar.NextEarnings.Format(dateTimeLayout)
	}

	history := make([]any, 0, len(calendar.History))
	for _, event := range calendar.History {
		history = append(history, response.NewDocument().
			Set("date", event.Date.Format(dateLayout)).
			Set("eps_estimate", floatOrNil(event.EPSEstimate)).
			Set("eps_reported", floatOrNil(event.EPSReported)).
			Set("surprise_percent", floatOrNil(event.SurprisePercent)))
	}

	doc := response.NewDocument().
		Set("ticker", ticker).
		Set("next_earnings_date", nextEarnings).
		Set("earnings_history", history)

	return doc, nil
}

// OptionsChain returns the filtered option chain for one expiration. When no
// expiration is given the nearest one is used and the full expiration list is
// included in the response.
func (s *Service) OptionsChain(ctx context.Context, ticker string, opts interfaces.OptionsChainOptions) (*response.Document, error) {
	chain, err := s.yahoo.GetOptionChain(ctx, ticker, "")
	if err != nil {
		return nil, err
	}

	if len(chain.Expirations) == 0 {
		return response.Errorf("No options data available for %s", ticker), nil
	}

	showAvailable := opts.ExpirationDate == ""
	if showAvailable {
		opts.ExpirationDate = chain.Expirations[0]
	} else {
		if !containsString(chain.Expirations, opts.ExpirationDate) {
			return response.Errorf("Expiration date %s not available for %s", opts.ExpirationDate, ticker).
				Set("available_expirations", toAnySlice(chain.Expirations)), nil
		}
		chain, err = s.yahoo.GetOptionChain(ctx, ticker, opts.ExpirationDate)
		if err != nil {
			return nil, err
		}
	}

	s.logger.Debug().
		Str("ticker", ticker).
		Str("expiration", opts.ExpirationDate).
		Msg("Fetched option chain")

	var strikeRange any
	if opts.StrikeMin != nil || opts.StrikeMax != nil {
		strikeRange = fmt.Sprintf("%s to %s", floatBound(opts.StrikeMin), floatBound(opts.StrikeMax))
	}

	filters := response.NewDocument().
		Set("option_type", opts.OptionType).
		Set("in_the_money", boolOrNil(opts.InTheMoney)).
		Set("min_volume", intOrNil(opts.MinVolume)).
		Set("min_open_interest", intOrNil(opts.MinOpenInterest)).
		Set("strike_range", strikeRange)

	doc := response.NewDocument().
		Set("ticker", ticker).
		Set("expiration_date", opts.ExpirationDate).
		Set("filters_applied", filters)

	if showAvailable {
		doc.Set("available_expirations", toAnySlice(chain.Expirations))
	}

	total := 0
	if opts.OptionType == "calls" || opts.OptionType == "both" {
		calls := filterContracts(chain.Calls, opts)
		doc.Set("calls_count", len(calls)).Set("calls", calls)
		total += len(calls)
	}
	if opts.OptionType == "puts" || opts.OptionType == "both" {
		puts := filterContracts(chain.Puts, opts)
		doc.Set("puts_count", len(puts)).Set("puts", puts)
		total += len(puts)
	}
	doc.Set("total_options", total)

	return doc, nil
}

// filterContracts applies the chain filters and reshapes contracts for the
// response. Missing volume and open interest count as zero.
func filterContracts(contracts []models.OptionContract, opts interfaces.OptionsChainOptions) []any {
	out := make([]any, 0, len(contracts))
	for _, c := range contracts {
		volume := int64(0)
		if c.Volume != nil {
			volume = *c.Volume
		}
		openInterest := int64(0)
		if c.OpenInterest != nil {
			openInterest = *c.OpenInterest
		}

		if opts.InTheMoney != nil && c.InTheMoney != *opts.InTheMoney {
			continue
		}
		if opts.MinVolume != nil && (c.Volume == nil || volume < *opts.MinVolume) {
			continue
		}
		if opts.MinOpenInterest != nil && (c.OpenInterest == nil || openInterest < *opts.MinOpenInterest) {
			continue
		}
		if opts.StrikeMin != nil && c.Strike < *opts.StrikeMin {
			continue
		}
		if opts.StrikeMax != nil && c.Strike > *opts.StrikeMax {
			continue
		}

		lastTrade := "N/A"
		if c.LastTradeDate != nil {
			lastTrade = c.LastTradeDate.Format(dateTimeLayout)
		}
		contractSize := c.ContractSize
		if contractSize == "" {
			contractSize = "REGULAR"
		}
		currency := c.Currency
		if currency == "" {
			currency = "USD"
		}

		out = append(out, response.NewDocument().
			Set("contract_symbol", stringOrNA(c.ContractSymbol)).
			Set("strike", c.Strike).
			Set("last_price", c.LastPrice).
			Set("bid", c.Bid).
			Set("ask", c.Ask).
			Set("change", floatOrNil(c.Change)).
			Set("percent_change", floatOrNil(c.PercentChange)).
			Set("volume", volume).
			Set("open_interest", openInterest).
			Set("implied_volatility", floatOrNil(c.ImpliedVolatility)).
			Set("in_the_money", c.InTheMoney).
			Set("last_trade_date", lastTrade).
			Set("contract_size", contractSize).
			Set("currency", currency))
	}
	return out
}

// humanizeLineName converts a camelCase line item to display form, e.g.
// "totalRevenue" becomes "Total Revenue".
func humanizeLineName(name string) string {
	var b strings.Builder
	for i, r := range name {
		if i == 0 {
			if r >= 'a' && r <= 'z' {
				r -= 'a' - 'A'
			}
			b.WriteRune(r)
			continue
		}
		if r >= 'A' && r <= 'Z' {
			b.WriteRune(' ')
		}
		b.WriteRune(r)
	}
	return b.String()
}

func stringOrNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

func floatOrNA(v *float64) any {
	if v == nil {
		return "N/A"
	}
	return *v
}

func intOrNA(v *int64) any {
	if v == nil {
		return "N/A"
	}
	return *v
}

func floatOrNil(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}

func intOrNil(v *int64) any {
	if v == nil {
		return nil
	}
	return *v
}

func boolOrNil(v *bool) any {
	if v == nil {
		return nil
	}
	return *v
}

func floatBound(v *float64) string {
	if v == nil {
		return "None"
	}
	return fmt.Sprintf("%g", *v)
}

func clampRunes(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}

func containsString(list []string, target string) bool {
	for _, item := range list {
		if item == target {
			return true
		}
	}
	return false
}

func toAnySlice(list []string) []any {
	out := make([]any, 0, len(list))
	for _, item := range list {
		out = append(out, item)
	}
	return out
}

// Ensure Service implements MarketService
var _ interfaces.MarketService = (*Service)(nil)
