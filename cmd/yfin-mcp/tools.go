package main

import (
	"github.com/mark3labs/mcp-go/mcp"
)

// responseFormatOption is the shared response_format parameter.
func responseFormatOption() mcp.ToolOption {
	return mcp.WithString("response_format",
		mcp.Description("Output format - 'json' for structured data, 'markdown' for human-readable (default: 'markdown')"),
		mcp.Enum("json", "markdown"),
	)
}

// readOnlyAnnotations marks a tool as a read-only call against an external API.
func readOnlyAnnotations() []mcp.ToolOption {
	return []mcp.ToolOption{
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithOpenWorldHintAnnotation(true),
	}
}

func withAnnotations(opts ...mcp.ToolOption) []mcp.ToolOption {
	return append(opts, readOnlyAnnotations()...)
}

// createGetVersionTool returns the get_version tool definition
func createGetVersionTool() mcp.Tool {
	return mcp.NewTool("get_version",
		mcp.WithDescription("Get the yfin MCP server version and status. Use this to verify connectivity."),
	)
}

// createGetStockInfoTool returns the yfinance_get_stock_info tool definition
func createGetStockInfoTool() mcp.Tool {
	return mcp.NewTool("yfinance_get_stock_info",
		withAnnotations(
			mcp.WithDescription("Get comprehensive information about a stock including price, market cap, ratios, and company details."),
			mcp.WithString("ticker",
				mcp.Required(),
				mcp.Description("Stock ticker symbol (e.g., 'AAPL', 'MSFT', 'GOOGL')"),
			),
			responseFormatOption(),
		)...,
	)
}

// createGetStockHistoryTool returns the yfinance_get_stock_history tool definition
func createGetStockHistoryTool() mcp.Tool {
	return mcp.NewTool("yfinance_get_stock_history",
		withAnnotations(
			mcp.WithDescription("Get historical price data for a stock with customizable time period and interval. Large datasets may be truncated; use shorter periods or larger intervals to reduce size."),
			mcp.WithString("ticker",
				mcp.Required(),
				mcp.Description("Stock ticker symbol (e.g., 'AAPL', 'MSFT', 'GOOGL')"),
			),
			mcp.WithString("period",
				mcp.Description("Time period - valid values: 1d, 5d, 1mo, 3mo, 6mo, 1y, 2y, 5y, 10y, ytd, max (default: '1mo')"),
			),
			mcp.WithString("interval",
				mcp.Description("Data interval - valid values: 1m, 2m, 5m, 15m, 30m, 60m, 90m, 1h, 1d, 5d, 1wk, 1mo, 3mo (default: '1d')"),
			),
			responseFormatOption(),
		)...,
	)
}

// createGetStockFinancialsTool returns the yfinance_get_stock_financials tool definition
func createGetStockFinancialsTool() mcp.Tool {
	return mcp.NewTool("yfinance_get_stock_financials",
		withAnnotations(
			mcp.WithDescription("Get financial statements for a stock (income statement, balance sheet, or cash flow statement)."),
			mcp.WithString("ticker",
				mcp.Required(),
				mcp.Description("Stock ticker symbol (e.g., 'AAPL', 'MSFT', 'GOOGL')"),
			),
			mcp.WithString("statement_type",
				mcp.Description("Type of financial statement - 'income', 'balance', or 'cashflow' (default: 'income')"),
				mcp.Enum("income", "balance", "cashflow"),
			),
			responseFormatOption(),
		)...,
	)
}

// createGetStockRecommendationsTool returns the yfinance_get_stock_recommendations tool definition
func createGetStockRecommendationsTool() mcp.Tool {
	return mcp.NewTool("yfinance_get_stock_recommendations",
		withAnnotations(
			mcp.WithDescription("Get analyst recommendations and rating changes for a stock."),
			mcp.WithString("ticker",
				mcp.Required(),
				mcp.Description("Stock ticker symbol (e.g., 'AAPL', 'MSFT', 'GOOGL')"),
			),
			responseFormatOption(),
		)...,
	)
}

// createGetStockNewsTool returns the yfinance_get_stock_news tool definition
func createGetStockNewsTool() mcp.Tool {
	return mcp.NewTool("yfinance_get_stock_news",
		withAnnotations(
			mcp.WithDescription("Get recent news articles related to a stock."),
			mcp.WithString("ticker",
				mcp.Required(),
				mcp.Description("Stock ticker symbol (e.g., 'AAPL', 'MSFT', 'GOOGL')"),
			),
			mcp.WithNumber("max_items",
				mcp.Description("Maximum number of news items to return (default: 10, max: 50)"),
			),
			responseFormatOption(),
		)...,
	)
}

// createGetMultipleQuotesTool returns the yfinance_get_multiple_quotes tool definition
func createGetMultipleQuotesTool() mcp.Tool {
	return mcp.NewTool("yfinance_get_multiple_quotes",
		withAnnotations(
			mcp.WithDescription("Get current quotes for multiple stocks at once in a single request. Limited to 20 tickers per call."),
			mcp.WithArray("tickers",
				mcp.WithStringItems(),
				mcp.Required(),
				mcp.Description("List of stock ticker symbols (e.g., ['AAPL', 'MSFT', 'GOOGL'])"),
			),
			responseFormatOption(),
		)...,
	)
}

// createSearchStocksTool returns the yfinance_search_stocks tool definition
func createSearchStocksTool() mcp.Tool {
	return mcp.NewTool("yfinance_search_stocks",
		withAnnotations(
			mcp.WithDescription("Search for stocks by company name or ticker symbol to verify ticker validity."),
			mcp.WithString("query",
				mcp.Required(),
				mcp.Description("Search query (company name or ticker symbol)"),
			),
			responseFormatOption(),
		)...,
	)
}

// createGetEarningsDatesTool returns the yfinance_get_earnings_dates tool definition
func createGetEarningsDatesTool() mcp.Tool {
	return mcp.NewTool("yfinance_get_earnings_dates",
		withAnnotations(
			mcp.WithDescription("Get earnings calendar information including historical and upcoming earnings dates with estimates."),
			mcp.WithString("ticker",
				mcp.Required(),
				mcp.Description("Stock ticker symbol (e.g., 'AAPL', 'MSFT', 'GOOGL')"),
			),
			responseFormatOption(),
		)...,
	)
}

// createGetOptionsChainTool returns the yfinance_get_options_chain tool definition
func createGetOptionsChainTool() mcp.Tool {
	return mcp.NewTool("yfinance_get_options_chain",
		withAnnotations(
			mcp.WithDescription("Get options chain data (calls and/or puts) for a stock with filtering capabilities. To see available expiration dates, call this tool without specifying an expiration_date."),
			mcp.WithString("ticker",
				mcp.Required(),
				mcp.Description("Stock ticker symbol (e.g., 'AAPL', 'MSFT', 'GOOGL')"),
			),
			mcp.WithString("expiration_date",
				mcp.Description("Specific expiration date in 'YYYY-MM-DD' format. If omitted, uses nearest expiration."),
			),
			mcp.WithString("option_type",
				mcp.Description("Type of options to return - 'calls', 'puts', or 'both' (default: 'both')"),
				mcp.Enum("calls", "puts", "both"),
			),
			mcp.WithBoolean("in_the_money",
				mcp.Description("Filter by ITM status - true for ITM only, false for OTM only, omit for all"),
			),
			mcp.WithNumber("min_volume",
				mcp.Description("Minimum trading volume filter"),
			),
			mcp.WithNumber("min_open_interest",
				mcp.Description("Minimum open interest filter"),
			),
			mcp.WithNumber("strike_min",
				mcp.Description("Minimum strike price filter"),
			),
			mcp.WithNumber("strike_max",
				mcp.Description("Maximum strike price filter"),
			),
			responseFormatOption(),
		)...,
	)
}
