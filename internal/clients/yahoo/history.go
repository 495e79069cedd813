package yahoo

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/bobmcallan/yfin/internal/models"
)

// chartEnvelope wraps the /v8/finance/chart response. Bar arrays are
// index-aligned with the timestamp array and may contain nulls for
// untraded intervals.
type chartEnvelope struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []*float64 `json:"open"`
					High   []*float64 `json:"high"`
					Low    []*float64 `json:"low"`
					Close  []*float64 `json:"close"`
					Volume []*int64   `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *apiErrorBody `json:"error"`
	} `json:"chart"`
}

// GetHistory retrieves OHLCV bars. period and interval pass through to the
// chart endpoint (1d..max / 1m..3mo); the API validates the combination.
func (c *Client) GetHistory(ctx context.Context, symbol, period, interval string) ([]models.Bar, error) {
	path := "/v8/finance/chart/" + url.PathEscape(symbol)

	params := url.Values{}
	params.Set("range", period)
	params.Set("interval", interval)
	params.Set("includePrePost", "false")

	var envelope chartEnvelope
	if err := c.get(ctx, path, params, &envelope); err != nil {
		return nil, err
	}

	if envelope.Chart.Error != nil {
		return nil, &APIError{
			StatusCode: http.StatusOK,
			Message:    envelope.Chart.Error.Description,
			Endpoint:   path,
		}
	}

	if len(envelope.Chart.Result) == 0 || len(envelope.Chart.Result[0].Indicators.Quote) == 0 {
		return nil, nil
	}

	result := envelope.Chart.Result[0]
	quote := result.Indicators.Quote[0]

	bars := make([]models.Bar, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		if i >= len(quote.Open) || i >= len(quote.High) || i >= len(quote.Low) || i >= len(quote.Close) {
			break
		}
		// Untraded intervals come back as nulls
		if quote.Open[i] == nil || quote.High[i] == nil || quote.Low[i] == nil || quote.Close[i] == nil {
			continue
		}

		bar := models.Bar{
			Date:  time.Unix(ts, 0).UTC(),
			Open:  *quote.Open[i],
			High:  *quote.High[i],
			Low:   *quote.Low[i],
			Close: *quote.Close[i],
		}
		if i < len(quote.Volume) && quote.Volume[i] != nil {
			bar.Volume = *quote.Volume[i]
		}
		bars = append(bars, bar)
	}

	return bars, nil
}
