package market

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bobmcallan/yfin/internal/common"
	"github.com/bobmcallan/yfin/internal/interfaces"
	"github.com/bobmcallan/yfin/internal/models"
	"github.com/bobmcallan/yfin/internal/response"
)

func newTestService(yahoo *fakeYahoo) *Service {
	return NewService(yahoo, common.NewSilentLogger())
}

// formatJSONForTest renders a document as indented JSON for content checks.
func formatJSONForTest(t *testing.T, doc *response.Document) string {
	t.Helper()
	return response.Format(doc, response.FormatJSON)
}

func TestStockInfo_BuildsDocument(t *testing.T) {
	yahoo := &fakeYahoo{
		getStockInfoFunc: func(ctx context.Context, symbol string) (*models.StockInfo, error) {
			return &models.StockInfo{
				Name:          "Apple Inc.",
				Currency:      "USD",
				Sector:        "Technology",
				Industry:      "Consumer Electronics",
				Description:   "Apple designs smartphones.",
				CurrentPrice:  floatPtr(175.5),
				MarketCap:     floatPtr(2800000000000),
				TrailingPE:    floatPtr(28.3),
				WeekHigh52:    floatPtr(199.62),
				AverageVolume: intPtr(58000000),
			}, nil
		},
	}
	svc := newTestService(yahoo)

	doc, err := svc.StockInfo(context.Background(), "AAPL")
	require.NoError(t, err)
	require.False(t, doc.IsError())

	assert.Equal(t, []string{
		"ticker", "name", "current_price", "currency", "market_cap",
		"pe_ratio", "forward_pe", "dividend_yield", "52_week_high",
		"52_week_low", "avg_volume", "sector", "industry", "description",
	}, doc.Keys())

	name, _ := doc.Get("name")
	assert.Equal(t, "Apple Inc.", name)
	price, _ := doc.Get("current_price")
	assert.Equal(t, 175.5, price)

	// Missing fields fall back to N/A
	forwardPE, _ := doc.Get("forward_pe")
	assert.Equal(t, "N/A", forwardPE)
	low, _ := doc.Get("52_week_low")
	assert.Equal(t, "N/A", low)
}

func TestStockInfo_ClampsDescription(t *testing.T) {
	yahoo := &fakeYahoo{
		getStockInfoFunc: func(ctx context.Context, symbol string) (*models.StockInfo, error) {
			return &models.StockInfo{Description: strings.Repeat("x", 800)}, nil
		},
	}
	svc := newTestService(yahoo)

	doc, err := svc.StockInfo(context.Background(), "AAPL")
	require.NoError(t, err)

	description, _ := doc.Get("description")
	assert.Len(t, description, 500)
}

func TestStockInfo_PropagatesClientError(t *testing.T) {
	yahoo := &fakeYahoo{
		getStockInfoFunc: func(ctx context.Context, symbol string) (*models.StockInfo, error) {
			return nil, errors.New("connection refused")
		},
	}
	svc := newTestService(yahoo)

	_, err := svc.StockInfo(context.Background(), "AAPL")
	assert.Error(t, err)
}

func TestStockHistory_BuildsDocument(t *testing.T) {
	yahoo := &fakeYahoo{
		getHistoryFunc: func(ctx context.Context, symbol, period, interval string) ([]models.Bar, error) {
			return []models.Bar{
				{Date: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), Open: 100, High: 101, Low: 99, Close: 100.5, Volume: 1000000},
				{Date: time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC), Open: 100.5, High: 102, Low: 100, Close: 101.5, Volume: 900000},
			}, nil
		},
	}
	svc := newTestService(yahoo)

	doc, err := svc.StockHistory(context.Background(), "AAPL", "1mo", "1d")
	require.NoError(t, err)

	count, _ := doc.Get("count")
	assert.Equal(t, 2, count)

	data, _ := doc.Get("data")
	require.Len(t, data.([]any), 2)

	rendered := formatJSONForTest(t, doc)
	assert.Contains(t, rendered, `"date": "2024-01-02 00:00:00"`)
	assert.Contains(t, rendered, `"close": 100.5`)
	assert.Contains(t, rendered, `"volume": 1000000`)
}

func TestStockHistory_Empty(t *testing.T) {
	yahoo := &fakeYahoo{
		getHistoryFunc: func(ctx context.Context, symbol, period, interval string) ([]models.Bar, error) {
			return nil, nil
		},
	}
	svc := newTestService(yahoo)

	doc, err := svc.StockHistory(context.Background(), "AAPL", "1d", "1m")
	require.NoError(t, err)
	require.True(t, doc.IsError())

	msg, _ := doc.Get("error")
	assert.Equal(t, "No historical data found for AAPL with period=1d, interval=1m", msg)
}

func TestStockFinancials_InvalidType(t *testing.T) {
	svc := newTestService(&fakeYahoo{})

	doc, err := svc.StockFinancials(context.Background(), "AAPL", "quarterly")
	require.NoError(t, err)
	require.True(t, doc.IsError())

	msg, _ := doc.Get("error")
	assert.Equal(t, "Invalid statement_type: quarterly. Use 'income', 'balance', or 'cashflow'", msg)
}

func TestStockFinancials_HumanizesLineNames(t *testing.T) {
	yahoo := &fakeYahoo{
		getFinancialsFunc: func(ctx context.Context, symbol, statementType string) (*models.FinancialStatements, error) {
			return &models.FinancialStatements{
				Periods: []models.StatementPeriod{
					{
						EndDate: "2023-12-31",
						Lines: []models.StatementLine{
							{Name: "netIncome", Value: floatPtr(96995000000)},
							{Name: "totalRevenue", Value: floatPtr(383285000000)},
							{Name: "researchDevelopment", Value: nil},
						},
					},
				},
			}, nil
		},
	}
	svc := newTestService(yahoo)

	doc, err := svc.StockFinancials(context.Background(), "AAPL", "income")
	require.NoError(t, err)

	statementType, _ := doc.Get("statement_type")
	assert.Equal(t, "Income Statement", statementType)

	rendered := formatJSONForTest(t, doc)
	assert.Contains(t, rendered, `"2023-12-31"`)
	assert.Contains(t, rendered, `"Net Income"`)
	assert.Contains(t, rendered, `"Total Revenue"`)
	assert.Contains(t, rendered, `"Research Development": null`)
}

func TestStockFinancials_Empty(t *testing.T) {
	yahoo := &fakeYahoo{
		getFinancialsFunc: func(ctx context.Context, symbol, statementType string) (*models.FinancialStatements, error) {
			return &models.FinancialStatements{}, nil
		},
	}
	svc := newTestService(yahoo)

	doc, err := svc.StockFinancials(context.Background(), "AAPL", "cashflow")
	require.NoError(t, err)
	require.True(t, doc.IsError())

	msg, _ := doc.Get("error")
	assert.Equal(t, "No cash flow statement data found for AAPL", msg)
}

func TestStockRecommendations_BuildsDocument(t *testing.T) {
	yahoo := &fakeYahoo{
		getUpgradeDowngradesFunc: func(ctx context.Context, symbol string) ([]models.GradeChange, error) {
			return []models.GradeChange{
				{
					Date:      time.Date(2024, 3, 28, 13, 30, 0, 0, time.UTC),
					Firm:      "Morgan Stanley",
					ToGrade:   "Overweight",
					FromGrade: "Equal-Weight",
					Action:    "up",
				},
			}, nil
		},
	}
	svc := newTestService(yahoo)

	doc, err := svc.StockRecommendations(context.Background(), "AAPL")
	require.NoError(t, err)

	rendered := formatJSONForTest(t, doc)
	assert.Contains(t, rendered, `"date": "2024-03-28 13:30:00"`)
	assert.Contains(t, rendered, `"firm": "Morgan Stanley"`)
	assert.Contains(t, rendered, `"to_grade": "Overweight"`)
}

func TestStockRecommendations_Empty(t *testing.T) {
	yahoo := &fakeYahoo{
		getUpgradeDowngradesFunc: func(ctx context.Context, symbol string) ([]models.GradeChange, error) {
			return nil, nil
		},
	}
	svc := newTestService(yahoo)

	doc, err := svc.StockRecommendations(context.Background(), "NOPE")
	require.NoError(t, err)
	require.True(t, doc.IsError())

	msg, _ := doc.Get("error")
	assert.Equal(t, "No recommendations found for NOPE", msg)
}

func TestStockNews_CapsMaxItems(t *testing.T) {
	var requestedLimit int
	yahoo := &fakeYahoo{
		getNewsFunc: func(ctx context.Context, symbol string, limit int) ([]models.NewsItem, error) {
			requestedLimit = limit
			items := make([]models.NewsItem, limit)
			for i := range items {
				items[i] = models.NewsItem{Title: "article", Publisher: "wire"}
			}
			return items, nil
		},
	}
	svc := newTestService(yahoo)

	doc, err := svc.StockNews(context.Background(), "AAPL", 200)
	require.NoError(t, err)

	assert.Equal(t, 50, requestedLimit)

	news, _ := doc.Get("news")
	assert.Len(t, news.([]any), 50)
}

func TestStockNews_MissingFieldsBecomeNA(t *testing.T) {
	yahoo := &fakeYahoo{
		getNewsFunc: func(ctx context.Context, symbol string, limit int) ([]models.NewsItem, error) {
			return []models.NewsItem{{Title: "Untimed article"}}, nil
		},
	}
	svc := newTestService(yahoo)

	doc, err := svc.StockNews(context.Background(), "AAPL", 10)
	require.NoError(t, err)

	rendered := formatJSONForTest(t, doc)
	assert.Contains(t, rendered, `"published": "N/A"`)
	assert.Contains(t, rendered, `"publisher": "N/A"`)
	assert.Contains(t, rendered, `"link": "N/A"`)
}

func TestStockNews_Empty(t *testing.T) {
	yahoo := &fakeYahoo{
		getNewsFunc: func(ctx context.Context, symbol string, limit int) ([]models.NewsItem, error) {
			return nil, nil
		},
	}
	svc := newTestService(yahoo)

	doc, err := svc.StockNews(context.Background(), "AAPL", 10)
	require.NoError(t, err)
	require.True(t, doc.IsError())
}

func TestMultipleQuotes_CollectsPerTickerErrors(t *testing.T) {
	yahoo := &fakeYahoo{
		getStockInfoFunc: func(ctx context.Context, symbol string) (*models.StockInfo, error) {
			if symbol == "BAD" {
				return nil, errors.New("no data returned for BAD")
			}
			return &models.StockInfo{
				Name:         symbol + " Corp",
				Currency:     "USD",
				CurrentPrice: floatPtr(100),
				Change:       floatPtr(1.5),
			}, nil
		},
	}
	svc := newTestService(yahoo)

	doc, err := svc.MultipleQuotes(context.Background(), []string{"AAPL", "BAD", "MSFT"})
	require.NoError(t, err)

	rendered := formatJSONForTest(t, doc)
	assert.Contains(t, rendered, `"AAPL"`)
	assert.Contains(t, rendered, `"MSFT"`)
	assert.Contains(t, rendered, "BAD: no data returned for BAD")
	assert.False(t, doc.Has("warning"))
}

func TestMultipleQuotes_LimitsToTwenty(t *testing.T) {
	var calls int
	yahoo := &fakeYahoo{
		getStockInfoFunc: func(ctx context.Context, symbol string) (*models.StockInfo, error) {
			calls++
			return &models.StockInfo{Name: symbol}, nil
		},
	}
	svc := newTestService(yahoo)

	tickers := make([]string, 25)
	for i := range tickers {
		tickers[i] = "T" + string(rune('A'+i%26)) + string(rune('A'+i/26))
	}

	doc, err := svc.MultipleQuotes(context.Background(), tickers)
	require.NoError(t, err)

	assert.Equal(t, 20, calls)

	warning, ok := doc.Get("warning")
	require.True(t, ok)
	assert.Equal(t, "Limited to first 20 tickers out of 25 requested", warning)
}

func TestSearchStocks_Found(t *testing.T) {
	yahoo := &fakeYahoo{
		searchFunc: func(ctx context.Context, query string) ([]models.SearchResult, error) {
			return []models.SearchResult{
				{Symbol: "AAPL", Name: "Apple Inc.", Exchange: "NMS", QuoteType: "EQUITY"},
				{Symbol: "APLE", Name: "Apple Hospitality", Exchange: "NYQ", QuoteType: "EQUITY"},
			}, nil
		},
	}
	svc := newTestService(yahoo)

	doc, err := svc.SearchStocks(context.Background(), "apple")
	require.NoError(t, err)

	found, _ := doc.Get("found")
	assert.Equal(t, true, found)
	ticker, _ := doc.Get("ticker")
	assert.Equal(t, "AAPL", ticker)
}

func TestSearchStocks_NotFound(t *testing.T) {
	yahoo := &fakeYahoo{
		searchFunc: func(ctx context.Context, query string) ([]models.SearchResult, error) {
			return nil, nil
		},
	}
	svc := newTestService(yahoo)

	doc, err := svc.SearchStocks(context.Background(), "zzzz")
	require.NoError(t, err)

	found, _ := doc.Get("found")
	assert.Equal(t, false, found)
	message, _ := doc.Get("message")
	assert.Equal(t, "No stock found for query: zzzz. Try using the exact ticker symbol.", message)
}

func TestEarningsDates_BuildsDocument(t *testing.T) {
	next := time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC)
	yahoo := &fakeYahoo{
		getEarningsFunc: func(ctx context.Context, symbol string) (*models.EarningsCalendar, error) {
			return &models.EarningsCalendar{
				NextEarnings: &next,
				History: []models.EarningsEvent{
					{
						Date:            time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
						EPSEstimate:     floatPtr(2.10),
						EPSReported:     floatPtr(2.18),
						SurprisePercent: floatPtr(3.81),
					},
					{
						Date: time.Date(2023, 11, 2, 0, 0, 0, 0, time.UTC),
					},
				},
			}, nil
		},
	}
	svc := newTestService(yahoo)

	doc, err := svc.EarningsDates(context.Background(), "AAPL")
	require.NoError(t, err)

	nextDate, _ := doc.Get("next_earnings_date")
	assert.Equal(t, "2024-05-02 00:00:00", nextDate)

	rendered := formatJSONForTest(t, doc)
	assert.Contains(t, rendered, `"date": "2024-02-01"`)
	assert.Contains(t, rendered, `"eps_estimate": 2.1`)
	assert.Contains(t, rendered, `"eps_reported": null`)
}

func TestEarningsDates_Empty(t *testing.T) {
	yahoo := &fakeYahoo{
		getEarningsFunc: func(ctx context.Context, symbol string) (*models.EarningsCalendar, error) {
			return &models.EarningsCalendar{}, nil
		},
	}
	svc := newTestService(yahoo)

	doc, err := svc.EarningsDates(context.Background(), "AAPL")
	require.NoError(t, err)
	require.True(t, doc.IsError())

	msg, _ := doc.Get("error")
	assert.Equal(t, "No earnings dates found for AAPL", msg)
}

func testChain() *models.OptionChain {
	lastTrade := time.Date(2024, 3, 28, 18, 20, 0, 0, time.UTC)
	return &models.OptionChain{
		Expirations:    []string{"2024-03-29", "2024-04-05"},
		ExpirationDate: "2024-03-29",
		Calls: []models.OptionContract{
			{
				ContractSymbol:    "AAPL240329C00170000",
				Strike:            170,
				LastPrice:         6.25,
				Bid:               6.20,
				Ask:               6.30,
				Change:            floatPtr(0.45),
				PercentChange:     floatPtr(7.76),
				Volume:            intPtr(1200),
				OpenInterest:      intPtr(5400),
				ImpliedVolatility: floatPtr(0.28),
				InTheMoney:        true,
				LastTradeDate:     &lastTrade,
				ContractSize:      "REGULAR",
				Currency:          "USD",
			},
			{
				ContractSymbol: "AAPL240329C00180000",
				Strike:         180,
				LastPrice:      1.10,
				InTheMoney:     false,
			},
		},
		Puts: []models.OptionContract{
			{
				ContractSymbol: "AAPL240329P00170000",
				Strike:         170,
				LastPrice:      1.05,
				Volume:         intPtr(300),
				InTheMoney:     false,
			},
		},
	}
}

func TestOptionsChain_NearestExpirationShowsAvailable(t *testing.T) {
	var requestedExpirations []string
	yahoo := &fakeYahoo{
		getOptionChainFunc: func(ctx context.Context, symbol, expiration string) (*models.OptionChain, error) {
			requestedExpirations = append(requestedExpirations, expiration)
			return testChain(), nil
		},
	}
	svc := newTestService(yahoo)

	doc, err := svc.OptionsChain(context.Background(), "AAPL", interfaces.OptionsChainOptions{OptionType: "both"})
	require.NoError(t, err)

	assert.Equal(t, []string{""}, requestedExpirations)

	expiration, _ := doc.Get("expiration_date")
	assert.Equal(t, "2024-03-29", expiration)
	assert.True(t, doc.Has("available_expirations"))

	callsCount, _ := doc.Get("calls_count")
	assert.Equal(t, 2, callsCount)
	putsCount, _ := doc.Get("puts_count")
	assert.Equal(t, 1, putsCount)
	total, _ := doc.Get("total_options")
	assert.Equal(t, 3, total)
}

func TestOptionsChain_ExplicitExpiration(t *testing.T) {
	var requestedExpirations []string
	yahoo := &fakeYahoo{
		getOptionChainFunc: func(ctx context.Context, symbol, expiration string) (*models.OptionChain, error) {
			requestedExpirations = append(requestedExpirations, expiration)
			return testChain(), nil
		},
	}
	svc := newTestService(yahoo)

	doc, err := svc.OptionsChain(context.Background(), "AAPL", interfaces.OptionsChainOptions{
		ExpirationDate: "2024-04-05",
		OptionType:     "both",
	})
	require.NoError(t, err)

	// First call discovers expirations, second fetches the dated chain
	assert.Equal(t, []string{"", "2024-04-05"}, requestedExpirations)
	assert.False(t, doc.Has("available_expirations"))
}

func TestOptionsChain_InvalidExpiration(t *testing.T) {
	yahoo := &fakeYahoo{
		getOptionChainFunc: func(ctx context.Context, symbol, expiration string) (*models.OptionChain, error) {
			return testChain(), nil
		},
	}
	svc := newTestService(yahoo)

	doc, err := svc.OptionsChain(context.Background(), "AAPL", interfaces.OptionsChainOptions{
		ExpirationDate: "2030-01-01",
		OptionType:     "both",
	})
	require.NoError(t, err)
	require.True(t, doc.IsError())

	msg, _ := doc.Get("error")
	assert.Equal(t, "Expiration date 2030-01-01 not available for AAPL", msg)
	assert.True(t, doc.Has("available_expirations"))
}

func TestOptionsChain_NoOptions(t *testing.T) {
	yahoo := &fakeYahoo{
		getOptionChainFunc: func(ctx context.Context, symbol, expiration string) (*models.OptionChain, error) {
			return &models.OptionChain{}, nil
		},
	}
	svc := newTestService(yahoo)

	doc, err := svc.OptionsChain(context.Background(), "XYZ", interfaces.OptionsChainOptions{OptionType: "both"})
	require.NoError(t, err)
	require.True(t, doc.IsError())

	msg, _ := doc.Get("error")
	assert.Equal(t, "No options data available for XYZ", msg)
}

func TestOptionsChain_Filters(t *testing.T) {
	yahoo := &fakeYahoo{
		getOptionChainFunc: func(ctx context.Context, symbol, expiration string) (*models.OptionChain, error) {
			return testChain(), nil
		},
	}
	svc := newTestService(yahoo)

	doc, err := svc.OptionsChain(context.Background(), "AAPL", interfaces.OptionsChainOptions{
		OptionType: "calls",
		InTheMoney: boolPtr(true),
		MinVolume:  intPtr(100),
	})
	require.NoError(t, err)

	callsCount, _ := doc.Get("calls_count")
	assert.Equal(t, 1, callsCount)
	assert.False(t, doc.Has("puts"))
	total, _ := doc.Get("total_options")
	assert.Equal(t, 1, total)

	rendered := formatJSONForTest(t, doc)
	assert.Contains(t, rendered, `"contract_symbol": "AAPL240329C00170000"`)
	assert.NotContains(t, rendered, "AAPL240329C00180000")
}

func TestOptionsChain_StrikeRangeFilterLabel(t *testing.T) {
	yahoo := &fakeYahoo{
		getOptionChainFunc: func(ctx context.Context, symbol, expiration string) (*models.OptionChain, error) {
			return testChain(), nil
		},
	}
	svc := newTestService(yahoo)

	doc, err := svc.OptionsChain(context.Background(), "AAPL", interfaces.OptionsChainOptions{
		OptionType: "both",
		StrikeMin:  floatPtr(150),
		StrikeMax:  floatPtr(175),
	})
	require.NoError(t, err)

	rendered := formatJSONForTest(t, doc)
	assert.Contains(t, rendered, `"strike_range": "150 to 175"`)
	// 180 strike is filtered out
	callsCount, _ := doc.Get("calls_count")
	assert.Equal(t, 1, callsCount)
}

func TestOptionsChain_DefaultsMissingContractFields(t *testing.T) {
	yahoo := &fakeYahoo{
		getOptionChainFunc: func(ctx context.Context, symbol, expiration string) (*models.OptionChain, error) {
			return testChain(), nil
		},
	}
	svc := newTestService(yahoo)

	doc, err := svc.OptionsChain(context.Background(), "AAPL", interfaces.OptionsChainOptions{OptionType: "calls"})
	require.NoError(t, err)

	rendered := formatJSONForTest(t, doc)
	assert.Contains(t, rendered, `"volume": 0`)
	assert.Contains(t, rendered, `"open_interest": 0`)
	assert.Contains(t, rendered, `"last_trade_date": "N/A"`)
	assert.Contains(t, rendered, `"contract_size": "REGULAR"`)
	assert.Contains(t, rendered, `"currency": "USD"`)
}
