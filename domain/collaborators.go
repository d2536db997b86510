package domain

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// ChainPriceOracle is the on-chain FoodOracle contract, holding the
// authoritative current price as 18-decimal fixed point. Write calls
// block until the transaction is mined.
type ChainPriceOracle interface {
	CurrentEthPriceE18(ctx context.Context) (*big.Int, error)
	CurrentTokenPriceE18(ctx context.Context, token common.Address) (*big.Int, error)
	SetEthPrice(ctx context.Context, priceE18 *big.Int) error
	SetTokenPrice(ctx context.Context, token common.Address, priceE18 *big.Int) error

	// SignerAddress identifies the transacting account for audit records.
	SignerAddress() common.Address
}

// ReferenceFeed is one external USD price provider for the base asset.
type ReferenceFeed interface {
	// Name tags audit records produced from this feed.
	Name() string

	// FetchPrice returns the current base-asset USD price, or an error
	// when the provider is unreachable or its payload is unusable.
	FetchPrice(ctx context.Context) (float64, error)
}

// IndexerClient reads paginated entity snapshots from the blockchain
// indexer's materialized views, ordered by creation time descending.
type IndexerClient interface {
	FetchCustomers(ctx context.Context, first, skip int) ([]RemoteCustomer, error)
	FetchRestaurants(ctx context.Context, first, skip int) ([]RemoteRestaurant, error)
	FetchMenuItems(ctx context.Context, first, skip int) ([]RemoteMenuItem, error)
	FetchOrders(ctx context.Context, first, skip int) ([]RemoteOrder, error)

	// Meta performs a minimal health query against the indexer.
	Meta(ctx context.Context) error
}

// RemoteCustomer is the indexer's view of a customer.
type RemoteCustomer struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	CreatedAt int64  `json:"createdAt,string"`
}

// RemoteRestaurant is the indexer's view of a restaurant.
type RemoteRestaurant struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	MetadataURI string `json:"metadataUri"`
	Active      bool   `json:"active"`
	CreatedAt   int64  `json:"createdAt,string"`
}

// RemoteMenuItem is the indexer's view of a menu item. Restaurant is a
// nested reference carrying only the owning restaurant's natural key.
type RemoteMenuItem struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	PriceE18   string    `json:"price"`
	Available  bool      `json:"available"`
	Restaurant RemoteRef `json:"restaurant"`
	CreatedAt  int64     `json:"createdAt,string"`
}

// RemoteOrder is the indexer's view of an order.
type RemoteOrder struct {
	ID          string    `json:"id"`
	Status      string    `json:"status"`
	Payment     string    `json:"paymentMethod"`
	SlippageBps int64     `json:"slippageBps,string"`
	TotalE18    string    `json:"total"`
	Customer    RemoteRef `json:"customer"`
	Restaurant  RemoteRef `json:"restaurant"`
	CreatedAt   int64     `json:"createdAt,string"`
}

// RemoteRef is a nested entity reference by natural key.
type RemoteRef struct {
	ID string `json:"id"`
}
