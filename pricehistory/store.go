// Package pricehistory keeps the append-only audit trail of price
// changes. The current price is always read live from the chain; this
// ledger only answers "what changed and when".
package pricehistory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/ethereum/go-ethereum/common"

	"github.com/sljivkov/foodsync/domain"
	"github.com/sljivkov/foodsync/kvstore"
)

const prefix = "price_history"

// DefaultHistoryLimit bounds History when the caller passes no limit.
const DefaultHistoryLimit = 100

// Store is the append-only price-update ledger over the key-value layer.
type Store struct {
	repo *kvstore.Repository[domain.PriceUpdateRecord]
	now  func() time.Time
}

// New builds a Store on the given key-value backend.
func New(kv kvstore.KeyValue) *Store {
	repo := kvstore.NewRepository(kv, kvstore.RepositoryConfig[domain.PriceUpdateRecord]{
		Prefix: prefix,
		Key:    func(r domain.PriceUpdateRecord) string { return r.ID },
	})

	return &Store{repo: repo, now: time.Now}
}

// Append writes one audit record. Records are write-once: an id is
// assigned here if missing and an existing record is never overwritten.
func (s *Store) Append(ctx context.Context, record domain.PriceUpdateRecord) error {
	now := s.now().UTC()

	if record.ID == "" {
		record.ID = domain.NewRecordID(now)
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = now
	}
	record.UpdatedAt = now

	if _, err := s.repo.FindByID(ctx, record.ID); err == nil {
		return fmt.Errorf("price history: record %s already exists", record.ID)
	}

	return s.repo.Save(ctx, record)
}

// Latest returns the newest record for the asset bucket, or nil when
// the bucket is empty. Linear scan; expected cardinality is small.
func (s *Store) Latest(ctx context.Context, assetKey *common.Address) (*domain.PriceUpdateRecord, error) {
	records, err := s.forAsset(ctx, assetKey)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}

	latest := records[0]
	for _, r := range records[1:] {
		if r.CreatedAt.After(latest.CreatedAt) {
			latest = r
		}
	}

	return &latest, nil
}

// History returns up to limit records for the asset bucket, newest
// first. limit <= 0 selects DefaultHistoryLimit.
func (s *Store) History(ctx context.Context, assetKey *common.Address, limit int) ([]domain.PriceUpdateRecord, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}

	records, err := s.forAsset(ctx, assetKey)
	if err != nil {
		return nil, err
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].CreatedAt.After(records[j].CreatedAt)
	})

	if len(records) > limit {
		records = records[:limit]
	}

	return records, nil
}

// PurgeOlderThan deletes records strictly older than now minus days and
// returns how many were removed. Records exactly at the cutoff stay.
func (s *Store) PurgeOlderThan(ctx context.Context, days int) (int, error) {
	cutoff := s.now().UTC().AddDate(0, 0, -days)

	all, err := s.repo.FindAll(ctx)
	if err != nil {
		return 0, err
	}

	removed := 0
	for _, r := range all {
		if !r.CreatedAt.Before(cutoff) {
			continue
		}
		if err := s.repo.Delete(ctx, r.ID); err != nil {
			return removed, fmt.Errorf("price history: purge %s: %w", r.ID, err)
		}
		removed++
	}

	return removed, nil
}

// Stats aggregates the ledger by source and asset bucket.
func (s *Store) Stats(ctx context.Context) (domain.PriceStats, error) {
	all, err := s.repo.FindAll(ctx)
	if err != nil {
		return domain.PriceStats{}, err
	}

	stats := domain.PriceStats{
		Total:    len(all),
		BySource: make(map[string]int),
		ByToken:  make(map[string]int),
	}

	for _, r := range all {
		stats.BySource[r.Source]++
		stats.ByToken[domain.AssetBucket(r.AssetKey)]++
		if stats.LastUpdate == nil || r.CreatedAt.After(*stats.LastUpdate) {
			t := r.CreatedAt
			stats.LastUpdate = &t
		}
	}

	return stats, nil
}

func (s *Store) forAsset(ctx context.Context, assetKey *common.Address) ([]domain.PriceUpdateRecord, error) {
	all, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	matched := make([]domain.PriceUpdateRecord, 0, len(all))
	for _, r := range all {
		if domain.SameAsset(r.AssetKey, assetKey) {
			matched = append(matched, r)
		}
	}

	return matched, nil
}
