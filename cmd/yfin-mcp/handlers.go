package main

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/bobmcallan/yfin/internal/common"
	"github.com/bobmcallan/yfin/internal/interfaces"
	"github.com/bobmcallan/yfin/internal/response"
)

// handleGetVersion implements the get_version tool
func handleGetVersion() server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		result := fmt.Sprintf("yfin MCP Server\nVersion: %s\nBuild: %s\nCommit: %s\nStatus: OK",
			common.GetVersion(), common.GetBuild(), common.GetGitCommit())
		return textResult(result), nil
	}
}

// handleGetStockInfo implements the yfinance_get_stock_info tool
func handleGetStockInfo(marketService interfaces.MarketService, logger *common.Logger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		ticker, err := request.RequireString("ticker")
		if err != nil || ticker == "" {
			return errorResult("Error: ticker parameter is required"), nil
		}
		format := request.GetString("response_format", response.FormatMarkdown)

		doc, err := marketService.StockInfo(ctx, ticker)
		if err != nil {
			logger.Error().Err(err).Str("ticker", ticker).Msg("Stock info failed")
			doc = response.Errorf("Failed to fetch stock info for %s: %v. Verify the ticker symbol is correct.", ticker, err)
		}

		return formattedResult(doc, format), nil
	}
}

// handleGetStockHistory implements the yfinance_get_stock_history tool
func handleGetStockHistory(marketService interfaces.MarketService, logger *common.Logger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		ticker, err := request.RequireString("ticker")
		if err != nil || ticker == "" {
			return errorResult("Error: ticker parameter is required"), nil
		}
		period := request.GetString("period", "1mo")
		interval := request.GetString("interval", "1d")
		format := request.GetString("response_format", response.FormatMarkdown)

		doc, err := marketService.StockHistory(ctx, ticker, period, interval)
		if err != nil {
			logger.Error().Err(err).Str("ticker", ticker).Str("period", period).Str("interval", interval).Msg("Stock history failed")
			doc = response.Errorf("Failed to fetch history for %s: %v. Check period and interval parameters.", ticker, err)
		}

		return formattedResult(doc, format), nil
	}
}

// handleGetStockFinancials implements the yfinance_get_stock_financials tool
func handleGetStockFinancials(marketService interfaces.MarketService, logger *common.Logger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		ticker, err := request.RequireString("ticker")
		if err != nil || ticker == "" {
			return errorResult("Error: ticker parameter is required"), nil
		}
		statementType := request.GetString("statement_type", "income")
		format := request.GetString("response_format", response.FormatMarkdown)

		doc, err := marketService.StockFinancials(ctx, ticker, statementType)
		if err != nil {
			logger.Error().Err(err).Str("ticker", ticker).Str("statement_type", statementType).Msg("Stock financials failed")
			doc = response.Errorf("Failed to fetch financials for %s: %v", ticker, err)
		}

		return formattedResult(doc, format), nil
	}
}

// handleGetStockRecommendations implements the yfinance_get_stock_recommendations tool
func handleGetStockRecommendations(marketService interfaces.MarketService, logger *common.Logger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		ticker, err := request.RequireString("ticker")
		if err != nil || ticker == "" {
			return errorResult("Error: ticker parameter is required"), nil
		}
		format := request.GetString("response_format", response.FormatMarkdown)

		doc, err := marketService.StockRecommendations(ctx, ticker)
		if err != nil {
			logger.Error().Err(err).Str("ticker", ticker).Msg("Stock recommendations failed")
			doc = response.Errorf("Failed to fetch recommendations for %s: %v", ticker, err)
		}

		return formattedResult(doc, format), nil
	}
}

// handleGetStockNews implements the yfinance_get_stock_news tool
func handleGetStockNews(marketService interfaces.MarketService, logger *common.Logger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		ticker, err := request.RequireString("ticker")
		if err != nil || ticker == "" {
			return errorResult("Error: ticker parameter is required"), nil
		}
		maxItems := request.GetInt("max_items", 10)
		format := request.GetString("response_format", response.FormatMarkdown)

		doc, err := marketService.StockNews(ctx, ticker, maxItems)
		if err != nil {
			logger.Error().Err(err).Str("ticker", ticker).Msg("Stock news failed")
			doc = response.Errorf("Failed to fetch news for %s: %v", ticker, err)
		}

		return formattedResult(doc, format), nil
	}
}

// handleGetMultipleQuotes implements the yfinance_get_multiple_quotes tool
func handleGetMultipleQuotes(marketService interfaces.MarketService, logger *common.Logger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		tickers := request.GetStringSlice("tickers", nil)
		if len(tickers) == 0 {
			return errorResult("Error: tickers parameter is required"), nil
		}
		format := request.GetString("response_format", response.FormatMarkdown)

		doc, err := marketService.MultipleQuotes(ctx, tickers)
		if err != nil {
			logger.Error().Err(err).Int("tickers", len(tickers)).Msg("Multiple quotes failed")
			doc = response.Errorf("Failed to fetch quotes: %v", err)
		}

		return formattedResult(doc, format), nil
	}
}

// handleSearchStocks implements the yfinance_search_stocks tool
func handleSearchStocks(marketService interfaces.MarketService, logger *common.Logger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		query, err := request.RequireString("query")
		if err != nil || query == "" {
			return errorResult("Error: query parameter is required"), nil
		}
		format := request.GetString("response_format", response.FormatMarkdown)

		doc, err := marketService.SearchStocks(ctx, query)
		if err != nil {
			logger.Error().Err(err).Str("query", query).Msg("Stock search failed")
			doc = response.Errorf("Search failed: %v. Try using the exact ticker symbol instead.", err)
		}

		return formattedResult(doc, format), nil
	}
}

// handleGetEarningsDates implements the yfinance_get_earnings_dates tool
func handleGetEarningsDates(marketService interfaces.MarketService, logger *common.Logger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		ticker, err := request.RequireString("ticker")
		if err != nil || ticker == "" {
			return errorResult("Error: ticker parameter is required"), nil
		}
		format := request.GetString("response_format", response.FormatMarkdown)

		doc, err := marketService.EarningsDates(ctx, ticker)
		if err != nil {
			logger.Error().Err(err).Str("ticker", ticker).Msg("Earnings dates failed")
			doc = response.Errorf("Failed to fetch earnings dates for %s: %v", ticker, err)
		}

		return formattedResult(doc, format), nil
	}
}

// handleGetOptionsChain implements the yfinance_get_options_chain tool
func handleGetOptionsChain(marketService interfaces.MarketService, logger *common.Logger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		ticker, err := request.RequireString("ticker")
		if err != nil || ticker == "" {
			return errorResult("Error: ticker parameter is required"), nil
		}
		format := request.GetString("response_format", response.FormatMarkdown)

		opts := interfaces.OptionsChainOptions{
			ExpirationDate: request.GetString("expiration_date", ""),
			OptionType:     request.GetString("option_type", "both"),
		}

		// Optional filters only apply when the argument is present
		args := request.GetArguments()
		if _, ok := args["in_the_money"]; ok {
			v := request.GetBool("in_the_money", false)
			opts.InTheMoney = &v
		}
		if _, ok := args["min_volume"]; ok {
			v := int64(request.GetInt("min_volume", 0))
			opts.MinVolume = &v
		}
		if _, ok := args["min_open_interest"]; ok {
			v := int64(request.GetInt("min_open_interest", 0))
			opts.MinOpenInterest = &v
		}
		if _, ok := args["strike_min"]; ok {
			v := request.GetFloat("strike_min", 0)
			opts.StrikeMin = &v
		}
		if _, ok := args["strike_max"]; ok {
			v := request.GetFloat("strike_max", 0)
			opts.StrikeMax = &v
		}

		doc, err := marketService.OptionsChain(ctx, ticker, opts)
		if err != nil {
			logger.Error().Err(err).Str("ticker", ticker).Msg("Options chain failed")
			doc = response.Errorf("Failed to fetch options chain for %s: %v", ticker, err)
		}

		return formattedResult(doc, format), nil
	}
}

// Helper functions

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.NewTextContent(text),
		},
	}
}

func errorResult(message string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.NewTextContent(message),
		},
		IsError: true,
	}
}

// formattedResult renders a document in the requested format. Documents
// carrying an "error" key still return as normal text so clients see the
// rendered message.
func formattedResult(doc *response.Document, format string) *mcp.CallToolResult {
	return textResult(response.Format(doc, format))
}
