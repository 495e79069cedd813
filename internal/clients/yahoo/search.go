package yahoo

import (
	"context"
	"net/url"
	"strconv"
	"time"

	"github.com/bobmcallan/yfin/internal/models"
)

// searchEnvelope wraps the /v1/finance/search response, which carries both
// symbol matches and news.
type searchEnvelope struct {
	Quotes []struct {
		Symbol    string `json:"symbol"`
		ShortName string `json:"shortname"`
		LongName  string `json:"longname"`
		Exchange  string `json:"exchange"`
		QuoteType string `json:"quoteType"`
	} `json:"quotes"`
	News []struct {
		Title               string `json:"title"`
		Publisher           string `json:"publisher"`
		Link                string `json:"link"`
		Type                string `json:"type"`
		ProviderPublishTime int64  `json:"providerPublishTime"`
	} `json:"news"`
}

// search performs a raw search request.
func (c *Client) search(ctx context.Context, query string, quotesCount, newsCount int) (*searchEnvelope, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("quotesCount", strconv.Itoa(quotesCount))
	params.Set("newsCount", strconv.Itoa(newsCount))

	var envelope searchEnvelope
	if err := c.get(ctx, "/v1/finance/search", params, &envelope); err != nil {
		return nil, err
	}
	return &envelope, nil
}

// Search finds symbols matching a query string
func (c *Client) Search(ctx context.Context, query string) ([]models.SearchResult, error) {
	envelope, err := c.search(ctx, query, 10, 0)
	if err != nil {
		return nil, err
	}

	results := make([]models.SearchResult, 0, len(envelope.Quotes))
	for _, q := range envelope.Quotes {
		name := q.LongName
		if name == "" {
			name = q.ShortName
		}
		results = append(results, models.SearchResult{
			Symbol:    q.Symbol,
			Name:      name,
			Exchange:  q.Exchange,
			QuoteType: q.QuoteType,
		})
	}

	return results, nil
}

// GetNews retrieves recent news articles for a ticker
func (c *Client) GetNews(ctx context.Context, symbol string, limit int) ([]models.NewsItem, error) {
	envelope, err := c.search(ctx, symbol, 0, limit)
	if err != nil {
		return nil, err
	}

	news := make([]models.NewsItem, 0, len(envelope.News))
	for _, item := range envelope.News {
		entry := models.NewsItem{
			Title:     item.Title,
			Publisher: item.Publisher,
			Link:      item.Link,
			Type:      item.Type,
		}
		if item.ProviderPublishTime > 0 {
			entry.Published = time.Unix(item.ProviderPublishTime, 0).UTC()
		}
		news = append(news, entry)
	}

	return news, nil
}
