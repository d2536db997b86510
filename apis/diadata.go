package apis

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"
)

// DiaData fetches the base asset's USD price from the DIA quotation
// API, which returns the price as a numeric string.
type DiaData struct {
	quoteURL string
	client   *http.Client
}

// diaQuote is the subset of the quotation payload we read.
type diaQuote struct {
	Price string `json:"price"`
}

// NewDiaData creates a DIA feed pointed at a full quotation URL.
func NewDiaData(quoteURL string) *DiaData {
	return &DiaData{
		quoteURL: quoteURL,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Name tags audit records produced from this feed.
func (d *DiaData) Name() string { return "diadata" }

// FetchPrice returns the current USD price from the quotation endpoint.
func (d *DiaData) FetchPrice(ctx context.Context) (float64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, d.quoteURL, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch price: %w", err)
	}

	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("API returned non-200 status: %d", resp.StatusCode)
	}

	var quote diaQuote
	if err := json.NewDecoder(resp.Body).Decode(&quote); err != nil {
		return 0, fmt.Errorf("failed to decode response: %w", err)
	}

	price, err := strconv.ParseFloat(quote.Price, 64)
	if err != nil {
		return 0, fmt.Errorf("malformed price %q: %w", quote.Price, err)
	}
	if price <= 0 {
		return 0, fmt.Errorf("no usable price in response")
	}

	return price, nil
}
