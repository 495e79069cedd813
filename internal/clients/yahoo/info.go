package yahoo

import (
	"context"

	"github.com/bobmcallan/yfin/internal/models"
)

// stockInfoModules is the quoteSummary payload for GetStockInfo.
type stockInfoModules struct {
	Price struct {
		Symbol                     string   `json:"symbol"`
		LongName                   string   `json:"longName"`
		ShortName                  string   `json:"shortName"`
		Currency                   string   `json:"currency"`
		ExchangeName               string   `json:"exchangeName"`
		QuoteType                  string   `json:"quoteType"`
		RegularMarketPrice         rawValue `json:"regularMarketPrice"`
		RegularMarketChange        rawValue `json:"regularMarketChange"`
		RegularMarketChangePercent rawValue `json:"regularMarketChangePercent"`
		RegularMarketVolume        rawValue `json:"regularMarketVolume"`
		MarketCap                  rawValue `json:"marketCap"`
	} `json:"price"`
	SummaryDetail struct {
		TrailingPE       rawValue `json:"trailingPE"`
		ForwardPE        rawValue `json:"forwardPE"`
		DividendYield    rawValue `json:"dividendYield"`
		FiftyTwoWeekHigh rawValue `json:"fiftyTwoWeekHigh"`
		FiftyTwoWeekLow  rawValue `json:"fiftyTwoWeekLow"`
		AverageVolume    rawValue `json:"averageVolume"`
	} `json:"summaryDetail"`
	AssetProfile struct {
		Sector              string `json:"sector"`
		Industry            string `json:"industry"`
		LongBusinessSummary string `json:"longBusinessSummary"`
	} `json:"assetProfile"`
	CalendarEvents struct {
		Earnings struct {
			EarningsDate []rawValue `json:"earningsDate"`
		} `json:"earnings"`
	} `json:"calendarEvents"`
}

// GetStockInfo retrieves the profile and headline quote for a ticker
func (c *Client) GetStockInfo(ctx context.Context, symbol string) (*models.StockInfo, error) {
	var resp stockInfoModules
	modules := "price,summaryDetail,assetProfile,calendarEvents"
	if err := c.quoteSummary(ctx, symbol, modules, &resp); err != nil {
		return nil, err
	}

	name := resp.Price.LongName
	if name == "" {
		name = resp.Price.ShortName
	}

	info := &models.StockInfo{
		Symbol:        resp.Price.Symbol,
		Name:          name,
		Currency:      resp.Price.Currency,
		Exchange:      resp.Price.ExchangeName,
		QuoteType:     resp.Price.QuoteType,
		Sector:        resp.AssetProfile.Sector,
		Industry:      resp.AssetProfile.Industry,
		Description:   resp.AssetProfile.LongBusinessSummary,
		CurrentPrice:  resp.Price.RegularMarketPrice.Float(),
		MarketCap:     resp.Price.MarketCap.Float(),
		TrailingPE:    resp.SummaryDetail.TrailingPE.Float(),
		ForwardPE:     resp.SummaryDetail.ForwardPE.Float(),
		DividendYield: resp.SummaryDetail.DividendYield.Float(),
		WeekHigh52:    resp.SummaryDetail.FiftyTwoWeekHigh.Float(),
		WeekLow52:     resp.SummaryDetail.FiftyTwoWeekLow.Float(),
		AverageVolume: resp.SummaryDetail.AverageVolume.Int64(),
		Change:        resp.Price.RegularMarketChange.Float(),
		ChangePercent: resp.Price.RegularMarketChangePercent.Float(),
		Volume:        resp.Price.RegularMarketVolume.Int64(),
	}

	if dates := resp.CalendarEvents.Earnings.EarningsDate; len(dates) > 0 {
		info.NextEarnings = dates[0].Time()
	}

	return info, nil
}
