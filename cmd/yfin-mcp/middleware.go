package main

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/bobmcallan/yfin/internal/common"
)

// toolLoggingMiddleware tags each tool call with an id and logs its duration.
func toolLoggingMiddleware(logger *common.Logger) server.ToolHandlerMiddleware {
	return func(next server.ToolHandlerFunc) server.ToolHandlerFunc {
		return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			callID := uuid.NewString()
			start := time.Now()

			logger.Debug().
				Str("call_id", callID).
				Str("tool", request.Params.Name).
				Msg("Tool call started")

			result, err := next(ctx, request)

			if err != nil {
				logger.Error().
					Err(err).
					Str("call_id", callID).
					Str("tool", request.Params.Name).
					Dur("duration", time.Since(start)).
					Msg("Tool call failed")
			} else {
				logger.Info().
					Str("call_id", callID).
					Str("tool", request.Params.Name).
					Dur("duration", time.Since(start)).
					Msg("Tool call completed")
			}

			return result, err
		}
	}
}
