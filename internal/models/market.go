// Package models defines typed market data records returned by the Yahoo
// Finance client. Optional numerics are pointers: Yahoo omits fields freely
// and a missing value is not the same as zero.
package models

import "time"

// StockInfo holds the company profile and headline quote figures for a
// single ticker.
type StockInfo struct {
	Symbol        string
	Name          string
	Currency      string
	Exchange      string
	QuoteType     string
	Sector        string
	Industry      string
	Description   string
	CurrentPrice  *float64
	MarketCap     *float64
	TrailingPE    *float64
	ForwardPE     *float64
	DividendYield *float64
	WeekHigh52    *float64
	WeekLow52     *float64
	AverageVolume *int64

	// Regular market session figures, used by the quote tools
	Change        *float64
	ChangePercent *float64
	Volume        *int64

	NextEarnings *time.Time
}

// Bar is a single OHLCV interval from the chart endpoint.
type Bar struct {
	Date   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume int64
}

// StatementLine is one labeled figure within a financial statement period.
// Value is nil when Yahoo reports the line without a number.
type StatementLine struct {
	Name  string
	Value *float64
}

// StatementPeriod groups the reported lines for one fiscal period end date.
type StatementPeriod struct {
	EndDate string
	Lines   []StatementLine
}

// FinancialStatements holds one statement type (income, balance, cashflow)
// across reported periods, most recent first.
type FinancialStatements struct {
	Periods []StatementPeriod
}

// GradeChange is a single analyst rating action.
type GradeChange struct {
	Date      time.Time
	Firm      string
	ToGrade   string
	FromGrade string
	Action    string
}

// NewsItem is a single news article reference. Published is zero when the
// feed omits the timestamp.
type NewsItem struct {
	Title     string
	Publisher string
	Link      string
	Type      string
	Published time.Time
}

// SearchResult is one match from the symbol search endpoint.
type SearchResult struct {
	Symbol    string
	Name      string
	Exchange  string
	QuoteType string
}

// EarningsEvent is one historical earnings report with estimates.
type EarningsEvent struct {
	Date            time.Time
	EPSEstimate     *float64
	EPSReported     *float64
	SurprisePercent *float64
}

// EarningsCalendar holds the next scheduled earnings date (nil when unknown)
// and the reported history.
type EarningsCalendar struct {
	NextEarnings *time.Time
	History      []EarningsEvent
}

// OptionContract is a single listed option.
type OptionContract struct {
	ContractSymbol    string
	Strike            float64
	LastPrice         float64
	Bid               float64
	Ask               float64
	Change            *float64
	PercentChange     *float64
	Volume            *int64
	OpenInterest      *int64
	ImpliedVolatility *float64
	InTheMoney        bool
	LastTradeDate     *time.Time
	ContractSize      string
	Currency          string
}

// OptionChain holds the chain for one expiration plus the full list of
// available expiration dates (YYYY-MM-DD).
type OptionChain struct {
	Expirations    []string
	ExpirationDate string
	Calls          []OptionContract
	Puts           []OptionContract
}
