// Package yahoo provides a client for the Yahoo Finance API
package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/bobmcallan/yfin/internal/common"
	"github.com/bobmcallan/yfin/internal/interfaces"
)

const (
	DefaultBaseURL = "https://query2.finance.yahoo.com"
	DefaultTimeout = 30 * time.Second

	// Yahoo rejects requests without a browser-like user agent
	defaultUserAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36"
)

// Client implements the YahooClient interface
type Client struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
	logger     *common.Logger
}

// ClientOption configures the client
type ClientOption func(*Client)

// WithBaseURL sets the base URL
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithLogger sets the logger
func WithLogger(logger *common.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithTimeout sets the HTTP timeout
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// WithUserAgent sets the User-Agent header
func WithUserAgent(userAgent string) ClientOption {
	return func(c *Client) {
		c.userAgent = userAgent
	}
}

// NewClient creates a new Yahoo Finance client
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		baseURL:   DefaultBaseURL,
		userAgent: defaultUserAgent,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		logger: common.NewSilentLogger(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// APIError represents an API error
type APIError struct {
	StatusCode int
	Message    string
	Endpoint   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("Yahoo Finance API error: %s (status: %d, endpoint: %s)", e.Message, e.StatusCode, e.Endpoint)
}

// apiErrorBody is the error object Yahoo embeds in response envelopes.
type apiErrorBody struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

// get performs a GET request and decodes the JSON response
func (c *Client) get(ctx context.Context, path string, params url.Values, result interface{}) error {
	reqURL := c.baseURL + path
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	c.logger.Debug().Str("url", c.baseURL+path).Msg("Yahoo Finance API request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    errorMessage(body),
			Endpoint:   path,
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

// errorMessage extracts the embedded error description from a failure body,
// falling back to the raw body.
func errorMessage(body []byte) string {
	var envelope map[string]struct {
		Error *apiErrorBody `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil {
		for _, section := range envelope {
			if section.Error != nil && section.Error.Description != "" {
				return section.Error.Description
			}
		}
	}
	return string(body)
}

// rawValue handles Yahoo's number envelope {"raw": 1.23, "fmt": "1.23"},
// which some endpoints flatten to a plain number. Strings, nulls, and empty
// envelopes decode to a missing value rather than an error.
type rawValue struct {
	Raw *float64
	Fmt string
}

func (v *rawValue) UnmarshalJSON(data []byte) error {
	var obj struct {
		Raw *float64 `json:"raw"`
		Fmt string   `json:"fmt"`
	}
	if err := json.Unmarshal(data, &obj); err == nil {
		v.Raw = obj.Raw
		v.Fmt = obj.Fmt
		return nil
	}

	var num float64
	if err := json.Unmarshal(data, &num); err == nil {
		v.Raw = &num
		return nil
	}

	*v = rawValue{}
	return nil
}

// Float returns the numeric value, or nil when missing.
func (v rawValue) Float() *float64 {
	return v.Raw
}

// Int64 returns the value truncated to int64, or nil when missing.
func (v rawValue) Int64() *int64 {
	if v.Raw == nil {
		return nil
	}
	n := int64(*v.Raw)
	return &n
}

// Time interprets the value as epoch seconds, or nil when missing.
func (v rawValue) Time() *time.Time {
	if v.Raw == nil {
		return nil
	}
	t := time.Unix(int64(*v.Raw), 0).UTC()
	return &t
}

// quoteSummaryEnvelope wraps every /v10/finance/quoteSummary response.
type quoteSummaryEnvelope struct {
	QuoteSummary struct {
		Result []json.RawMessage `json:"result"`
		Error  *apiErrorBody     `json:"error"`
	} `json:"quoteSummary"`
}

// quoteSummary fetches the requested modules for a symbol and decodes the
// first result into result.
func (c *Client) quoteSummary(ctx context.Context, symbol string, modules string, result interface{}) error {
	path := "/v10/finance/quoteSummary/" + url.PathEscape(symbol)

	params := url.Values{}
	params.Set("modules", modules)

	var envelope quoteSummaryEnvelope
	if err := c.get(ctx, path, params, &envelope); err != nil {
		return err
	}

	if envelope.QuoteSummary.Error != nil {
		return &APIError{
			StatusCode: http.StatusOK,
			Message:    envelope.QuoteSummary.Error.Description,
			Endpoint:   path,
		}
	}

	if len(envelope.QuoteSummary.Result) == 0 {
		return fmt.Errorf("no data returned for %s", symbol)
	}

	if err := json.Unmarshal(envelope.QuoteSummary.Result[0], result); err != nil {
		return fmt.Errorf("failed to decode quote summary: %w", err)
	}

	return nil
}

// Ensure Client implements YahooClient
var _ interfaces.YahooClient = (*Client)(nil)
