package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mark3labs/mcp-go/server"

	"github.com/bobmcallan/yfin/internal/clients/yahoo"
	"github.com/bobmcallan/yfin/internal/common"
	"github.com/bobmcallan/yfin/internal/interfaces"
	"github.com/bobmcallan/yfin/internal/services/market"
)

func main() {
	configFile := flag.String("config", "", "Path to config file")
	flag.Parse()

	configPath := *configFile
	if configPath == "" {
		configPath = os.Getenv("YFIN_CONFIG")
	}

	config, err := common.LoadConfig("yfin.toml", configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	common.LoadVersionFromFile()

	logger := common.NewLogger(config.Logging.Level)

	clientOpts := []yahoo.ClientOption{
		yahoo.WithLogger(logger),
		yahoo.WithTimeout(config.Clients.Yahoo.GetTimeout()),
	}
	if config.Clients.Yahoo.BaseURL != "" {
		clientOpts = append(clientOpts, yahoo.WithBaseURL(config.Clients.Yahoo.BaseURL))
	}
	if config.Clients.Yahoo.UserAgent != "" {
		clientOpts = append(clientOpts, yahoo.WithUserAgent(config.Clients.Yahoo.UserAgent))
	}
	yahooClient := yahoo.NewClient(clientOpts...)

	marketService := market.NewService(yahooClient, logger)

	mcpServer := server.NewMCPServer(
		"yfin",
		common.GetVersion(),
		server.WithToolCapabilities(true),
		server.WithToolHandlerMiddleware(toolLoggingMiddleware(logger)),
	)

	registerTools(mcpServer, marketService, logger)

	switch config.Transport {
	case common.TransportSSE:
		common.PrintBanner(config, logger)
		runSSE(mcpServer, config, logger)
	case common.TransportStreamableHTTP:
		common.PrintBanner(config, logger)
		runStreamableHTTP(mcpServer, config, logger)
	default:
		// stdio keeps stderr quiet apart from logs
		if err := server.ServeStdio(mcpServer); err != nil {
			logger.Error().Err(err).Msg("Stdio server error")
			os.Exit(1)
		}
	}
}

// registerTools registers all MCP tools on the server.
func registerTools(s *server.MCPServer, marketService interfaces.MarketService, logger *common.Logger) {
	s.AddTool(createGetVersionTool(), handleGetVersion())
	s.AddTool(createGetStockInfoTool(), handleGetStockInfo(marketService, logger))
	s.AddTool(createGetStockHistoryTool(), handleGetStockHistory(marketService, logger))
	s.AddTool(createGetStockFinancialsTool(), handleGetStockFinancials(marketService, logger))
	s.AddTool(createGetStockRecommendationsTool(), handleGetStockRecommendations(marketService, logger))
	s.AddTool(createGetStockNewsTool(), handleGetStockNews(marketService, logger))
	s.AddTool(createGetMultipleQuotesTool(), handleGetMultipleQuotes(marketService, logger))
	s.AddTool(createSearchStocksTool(), handleSearchStocks(marketService, logger))
	s.AddTool(createGetEarningsDatesTool(), handleGetEarningsDates(marketService, logger))
	s.AddTool(createGetOptionsChainTool(), handleGetOptionsChain(marketService, logger))
}

// runStreamableHTTP serves the MCP server over streamable HTTP until SIGINT
// or SIGTERM.
func runStreamableHTTP(mcpServer *server.MCPServer, config *common.Config, logger *common.Logger) {
	httpServer := server.NewStreamableHTTPServer(mcpServer,
		server.WithStateLess(true),
	)

	addr := fmt.Sprintf("%s:%d", config.Server.Host, config.Server.Port)

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", addr).Msg("Starting MCP Streamable HTTP server")
		errCh <- httpServer.Start(addr)
	}()

	waitForShutdown(errCh, logger, func(ctx context.Context) error {
		return httpServer.Shutdown(ctx)
	})
}

// runSSE serves the MCP server over SSE until SIGINT or SIGTERM.
func runSSE(mcpServer *server.MCPServer, config *common.Config, logger *common.Logger) {
	sseServer := server.NewSSEServer(mcpServer)

	addr := fmt.Sprintf("%s:%d", config.Server.Host, config.Server.Port)

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", addr).Msg("Starting MCP SSE server")
		errCh <- sseServer.Start(addr)
	}()

	waitForShutdown(errCh, logger, func(ctx context.Context) error {
		return sseServer.Shutdown(ctx)
	})
}

// waitForShutdown blocks until the server fails or a termination signal
// arrives, then runs the shutdown function with a timeout.
func waitForShutdown(errCh <-chan error, logger *common.Logger, shutdown func(context.Context) error) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			logger.Error().Err(err).Msg("Server error")
			os.Exit(1)
		}
	case sig := <-sigCh:
		logger.Info().Str("signal", sig.String()).Msg("Shutdown signal received")

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := shutdown(ctx); err != nil {
			logger.Error().Err(err).Msg("Shutdown error")
		}
		common.PrintShutdownBanner(logger)
	}
}
