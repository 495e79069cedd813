package yahoo

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/bobmcallan/yfin/internal/models"
)

// optionsEnvelope wraps the /v7/finance/options response. Contract numerics
// are plain numbers here, not raw/fmt envelopes, but optional fields still
// go missing so they decode through pointers.
type optionsEnvelope struct {
	OptionChain struct {
		Result []struct {
			ExpirationDates []int64 `json:"expirationDates"`
			Options         []struct {
				ExpirationDate int64            `json:"expirationDate"`
				Calls          []optionContract `json:"calls"`
				Puts           []optionContract `json:"puts"`
			} `json:"options"`
		} `json:"result"`
		Error *apiErrorBody `json:"error"`
	} `json:"optionChain"`
}

type optionContract struct {
	ContractSymbol    string   `json:"contractSymbol"`
	Strike            float64  `json:"strike"`
	LastPrice         float64  `json:"lastPrice"`
	Bid               float64  `json:"bid"`
	Ask               float64  `json:"ask"`
	Change            *float64 `json:"change"`
	PercentChange     *float64 `json:"percentChange"`
	Volume            *int64   `json:"volume"`
	OpenInterest      *int64   `json:"openInterest"`
	ImpliedVolatility *float64 `json:"impliedVolatility"`
	InTheMoney        bool     `json:"inTheMoney"`
	LastTradeDate     *int64   `json:"lastTradeDate"`
	ContractSize      string   `json:"contractSize"`
	Currency          string   `json:"currency"`
}

// GetOptionChain retrieves the option chain for a symbol. expiration is a
// YYYY-MM-DD date; when empty the API returns the nearest expiration.
func (c *Client) GetOptionChain(ctx context.Context, symbol, expiration string) (*models.OptionChain, error) {
	path := "/v7/finance/options/" + url.PathEscape(symbol)

	params := url.Values{}
	if expiration != "" {
		t, err := time.ParseInLocation("2006-01-02", expiration, time.UTC)
		if err != nil {
			return nil, fmt.Errorf("invalid expiration date: %s", expiration)
		}
		params.Set("date", strconv.FormatInt(t.Unix(), 10))
	}

	var envelope optionsEnvelope
	if err := c.get(ctx, path, params, &envelope); err != nil {
		return nil, err
	}

	if envelope.OptionChain.Error != nil {
		return nil, &APIError{
			StatusCode: http.StatusOK,
			Message:    envelope.OptionChain.Error.Description,
			Endpoint:   path,
		}
	}

	if len(envelope.OptionChain.Result) == 0 {
		return nil, fmt.Errorf("no data returned for %s", symbol)
	}

	result := envelope.OptionChain.Result[0]

	chain := &models.OptionChain{
		Expirations: make([]string, 0, len(result.ExpirationDates)),
	}
	for _, epoch := range result.ExpirationDates {
		chain.Expirations = append(chain.Expirations, time.Unix(epoch, 0).UTC().Format("2006-01-02"))
	}

	if len(result.Options) == 0 {
		return chain, nil
	}

	listing := result.Options[0]
	chain.ExpirationDate = time.Unix(listing.ExpirationDate, 0).UTC().Format("2006-01-02")
	chain.Calls = mapContracts(listing.Calls)
	chain.Puts = mapContracts(listing.Puts)

	return chain, nil
}

func mapContracts(raw []optionContract) []models.OptionContract {
	contracts := make([]models.OptionContract, 0, len(raw))
	for _, r := range raw {
		contract := models.OptionContract{
			ContractSymbol:    r.ContractSymbol,
			Strike:            r.Strike,
			LastPrice:         r.LastPrice,
			Bid:               r.Bid,
			Ask:               r.Ask,
			Change:            r.Change,
			PercentChange:     r.PercentChange,
			Volume:            r.Volume,
			OpenInterest:      r.OpenInterest,
			ImpliedVolatility: r.ImpliedVolatility,
			InTheMoney:        r.InTheMoney,
			ContractSize:      r.ContractSize,
			Currency:          r.Currency,
		}
		if r.LastTradeDate != nil {
			t := time.Unix(*r.LastTradeDate, 0).UTC()
			contract.LastTradeDate = &t
		}
		contracts = append(contracts, contract)
	}
	return contracts
}
