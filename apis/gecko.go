// Package apis provides external reference price feed integrations
package apis

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// CoinGecko fetches the base asset's USD price from the CoinGecko
// simple-price API.
type CoinGecko struct {
	baseURL string
	assetID string
	client  *http.Client
}

// CurrencyPrice represents the per-asset price object CoinGecko returns
type CurrencyPrice struct {
	USD float64 `json:"usd"`
}

// NewCoinGecko creates a CoinGecko feed for one asset id (e.g. "ethereum")
func NewCoinGecko(baseURL, assetID string) *CoinGecko {
	return &CoinGecko{
		baseURL: baseURL,
		assetID: assetID,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Name tags audit records produced from this feed.
func (g *CoinGecko) Name() string { return "coingecko" }

// FetchPrice returns the current USD price for the configured asset.
func (g *CoinGecko) FetchPrice(ctx context.Context) (float64, error) {
	params := url.Values{}
	params.Add("ids", g.assetID)
	params.Add("vs_currencies", "usd")

	fullURL := fmt.Sprintf("%s?%s", g.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch price: %w", err)
	}

	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("API returned non-200 status: %d", resp.StatusCode)
	}

	var raw map[string]CurrencyPrice
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return 0, fmt.Errorf("failed to decode response: %w", err)
	}

	data, ok := raw[g.assetID]
	if !ok || data.USD <= 0 {
		return 0, fmt.Errorf("no usable price for %s in response", g.assetID)
	}

	return data.USD, nil
}
