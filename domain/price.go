// Package domain defines core types and collaborator interfaces for the foodsync service
package domain

import (
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PriceSource marks where a quote was read from.
type PriceSource string

const (
	SourceChain    PriceSource = "chain"
	SourceFallback PriceSource = "fallback"
)

// FallbackUpdatedBy is the updatedBy sentinel recorded when no chain
// write path is configured.
const FallbackUpdatedBy = "development_mode"

// PriceQuote is an ephemeral read of the current price; it is never
// persisted on its own.
type PriceQuote struct {
	PriceUSD          decimal.Decimal
	PriceFixedPoint18 *big.Int
	Source            PriceSource
	ObservedAt        time.Time
}

// PriceUpdateRecord is one immutable audit entry describing a price
// change. AssetKey is nil for the base asset (ETH).
type PriceUpdateRecord struct {
	ID          string          `json:"id"`
	AssetKey    *common.Address `json:"assetKey,omitempty"`
	OldPriceUSD decimal.Decimal `json:"oldPriceUsd"`
	NewPriceUSD decimal.Decimal `json:"newPriceUsd"`
	Source      string          `json:"source"`
	UpdatedBy   string          `json:"updatedBy"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// NewRecordID builds a synthetic audit id from the current time and a
// random suffix.
func NewRecordID(now time.Time) string {
	return fmt.Sprintf("%d-%s", now.UnixMilli(), uuid.NewString()[:8])
}

// AssetBucket canonicalizes an optional asset key into a bucket label:
// "ETH" for the base asset, the checksummed hex address otherwise.
func AssetBucket(assetKey *common.Address) string {
	if assetKey == nil {
		return "ETH"
	}
	return assetKey.Hex()
}

// SameAsset reports whether two optional asset keys select the same
// price bucket.
func SameAsset(a, b *common.Address) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

// PriceUpdate is one requested price change, as accepted by batch and
// single-item update operations.
type PriceUpdate struct {
	AssetKey *common.Address
	PriceUSD decimal.Decimal
	Source   string
}

// Validate rejects updates before any network call is made.
func (u PriceUpdate) Validate() error {
	if !u.PriceUSD.IsPositive() {
		return fmt.Errorf("price must be positive, got %s", u.PriceUSD)
	}
	if u.Source == "" {
		return fmt.Errorf("source is required")
	}
	return nil
}

// BatchResult summarizes a batch price update for logging and callers.
type BatchResult struct {
	Total     int `json:"total"`
	Succeeded int `json:"succeeded"`
	Failed    int `json:"failed"`
}

// PriceStats aggregates the audit ledger.
type PriceStats struct {
	Total      int            `json:"total"`
	BySource   map[string]int `json:"bySource"`
	ByToken    map[string]int `json:"byToken"`
	LastUpdate *time.Time     `json:"lastUpdate,omitempty"`
}

// ToFixedPoint18 converts a USD decimal into the oracle's 18-decimal
// fixed-point representation, preserving the scale exactly.
func ToFixedPoint18(d decimal.Decimal) *big.Int {
	return d.Shift(18).BigInt()
}

// FromFixedPoint18 converts an 18-decimal fixed-point oracle value back
// into a USD decimal.
func FromFixedPoint18(v *big.Int) decimal.Decimal {
	return decimal.NewFromBigInt(v, -18)
}
