// Package entitysync reconciles local entity projections with the
// blockchain indexer's materialized views.
package entitysync

import (
	"strings"
	"time"

	"github.com/sljivkov/foodsync/domain"
	"github.com/sljivkov/foodsync/kvstore"
)

// SyncMarker is bookkeeping metadata stored alongside the projections.
type SyncMarker struct {
	ID string    `json:"id"`
	At time.Time `json:"at"`
}

// Repositories bundles the per-kind projection stores. Each kind gets
// its own namespace over the shared key-value backend.
type Repositories struct {
	Customers   *kvstore.Repository[domain.Customer]
	Restaurants *kvstore.Repository[domain.Restaurant]
	MenuItems   *kvstore.Repository[domain.MenuItem]
	Orders      *kvstore.Repository[domain.Order]
	Meta        *kvstore.Repository[SyncMarker]
}

// NewRepositories wires one repository per entity kind.
func NewRepositories(kv kvstore.KeyValue) Repositories {
	return Repositories{
		Customers: kvstore.NewRepository(kv, kvstore.RepositoryConfig[domain.Customer]{
			Prefix: "customers",
			Key:    func(c domain.Customer) string { return strings.ToLower(c.WalletAddress) },
			Matches: func(c domain.Customer, term string) bool {
				return strings.Contains(strings.ToLower(c.Name), strings.ToLower(term))
			},
		}),
		Restaurants: kvstore.NewRepository(kv, kvstore.RepositoryConfig[domain.Restaurant]{
			Prefix: "restaurants",
			Key:    func(r domain.Restaurant) string { return strings.ToLower(r.WalletAddress) },
			Matches: func(r domain.Restaurant, term string) bool {
				return strings.Contains(strings.ToLower(r.Name), strings.ToLower(term))
			},
		}),
		MenuItems: kvstore.NewRepository(kv, kvstore.RepositoryConfig[domain.MenuItem]{
			Prefix: "menu_items",
			Key:    func(m domain.MenuItem) string { return m.ID },
			Matches: func(m domain.MenuItem, term string) bool {
				return strings.Contains(strings.ToLower(m.Name), strings.ToLower(term))
			},
		}),
		Orders: kvstore.NewRepository(kv, kvstore.RepositoryConfig[domain.Order]{
			Prefix: "orders",
			Key:    func(o domain.Order) string { return o.ID },
		}),
		Meta: kvstore.NewRepository(kv, kvstore.RepositoryConfig[SyncMarker]{
			Prefix: "sync_meta",
			Key:    func(m SyncMarker) string { return m.ID },
		}),
	}
}
