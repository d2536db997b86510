package entitysync

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/sljivkov/foodsync/domain"
	"github.com/sljivkov/foodsync/kvstore"
	"github.com/sljivkov/foodsync/metrics"
)

// DefaultPageSize is how many snapshots one sync pass requests per
// kind. Each pass fetches exactly one page; entities beyond it wait for
// a later pass.
const DefaultPageSize = 100

// lastSyncMarkerID is the bookkeeping id SyncStats looks up. Nothing
// writes this marker yet, so the lookup always misses and LastSync
// stays unset.
const lastSyncMarkerID = "last_sync"

// Synchronizer pulls entity snapshots from the indexer and upserts them
// into the local projections, kind by kind.
type Synchronizer struct {
	indexer  domain.IndexerClient
	repos    Repositories
	pageSize int
	logger   *zap.Logger
	now      func() time.Time
}

// New builds a Synchronizer. pageSize <= 0 selects DefaultPageSize.
func New(indexer domain.IndexerClient, repos Repositories, pageSize int, logger *zap.Logger) *Synchronizer {
	if logger == nil {
		logger = zap.NewNop()
	}
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	return &Synchronizer{
		indexer:  indexer,
		repos:    repos,
		pageSize: pageSize,
		logger:   logger,
		now:      time.Now,
	}
}

// SyncAll reconciles every entity kind concurrently and joins all of
// them before returning. One kind's failure is logged and does not
// block the others.
func (s *Synchronizer) SyncAll(ctx context.Context) {
	var wg sync.WaitGroup
	for _, kind := range domain.AllEntityKinds {
		wg.Add(1)
		go func(kind domain.EntityKind) {
			defer wg.Done()

			if err := s.SyncEntityType(ctx, kind); err != nil {
				s.logger.Warn("entity sync failed", zap.String("kind", string(kind)), zap.Error(err))
			}
		}(kind)
	}
	wg.Wait()
}

// SyncEntityType reconciles one kind: fetch a single page of remote
// snapshots, then upsert record by record. A failing record is logged
// and the rest of the page still goes through.
func (s *Synchronizer) SyncEntityType(ctx context.Context, kind domain.EntityKind) error {
	start := s.now()
	defer func() {
		metrics.SyncDuration.WithLabelValues(string(kind)).Observe(time.Since(start).Seconds())
	}()

	var (
		total, failed int
		err           error
	)

	switch kind {
	case domain.KindCustomer:
		total, failed, err = s.syncCustomers(ctx)
	case domain.KindRestaurant:
		total, failed, err = s.syncRestaurants(ctx)
	case domain.KindMenuItem:
		total, failed, err = s.syncMenuItems(ctx)
	case domain.KindOrder:
		total, failed, err = s.syncOrders(ctx)
	default:
		return fmt.Errorf("unknown entity kind %q", kind)
	}

	if err != nil {
		return fmt.Errorf("sync %s: %w", kind, err)
	}

	s.logger.Info("entity sync complete",
		zap.String("kind", string(kind)),
		zap.Int("fetched", total),
		zap.Int("failed", failed),
	)

	return nil
}

func (s *Synchronizer) syncCustomers(ctx context.Context) (int, int, error) {
	snaps, err := s.indexer.FetchCustomers(ctx, s.pageSize, 0)
	if err != nil {
		return 0, 0, err
	}

	failed := 0
	for _, snap := range snaps {
		now := s.now().UTC()
		key := strings.ToLower(snap.ID)

		record, err := s.repos.Customers.FindByID(ctx, key)
		switch {
		case err == nil:
			record.Name = snap.Name
			record.Email = snap.Email
		case errors.Is(err, kvstore.ErrNotFound):
			record = domain.Customer{
				WalletAddress: key,
				Name:          snap.Name,
				Email:         snap.Email,
				CreatedAt:     remoteTime(snap.CreatedAt, now),
			}
		default:
			failed++
			s.upsertFailed(domain.KindCustomer, snap.ID, err)

			continue
		}
		record.UpdatedAt = now

		if err := s.repos.Customers.Save(ctx, record); err != nil {
			failed++
			s.upsertFailed(domain.KindCustomer, snap.ID, err)

			continue
		}
		metrics.SyncRecords.WithLabelValues(string(domain.KindCustomer), "ok").Inc()
	}

	return len(snaps), failed, nil
}

func (s *Synchronizer) syncRestaurants(ctx context.Context) (int, int, error) {
	snaps, err := s.indexer.FetchRestaurants(ctx, s.pageSize, 0)
	if err != nil {
		return 0, 0, err
	}

	failed := 0
	for _, snap := range snaps {
		now := s.now().UTC()
		key := strings.ToLower(snap.ID)

		record, err := s.repos.Restaurants.FindByID(ctx, key)
		switch {
		case err == nil:
			record.Name = snap.Name
			record.MetadataURI = snap.MetadataURI
			record.Active = snap.Active
		case errors.Is(err, kvstore.ErrNotFound):
			record = domain.Restaurant{
				WalletAddress: key,
				Name:          snap.Name,
				MetadataURI:   snap.MetadataURI,
				Active:        snap.Active,
				CreatedAt:     remoteTime(snap.CreatedAt, now),
			}
		default:
			failed++
			s.upsertFailed(domain.KindRestaurant, snap.ID, err)

			continue
		}
		record.UpdatedAt = now

		if err := s.repos.Restaurants.Save(ctx, record); err != nil {
			failed++
			s.upsertFailed(domain.KindRestaurant, snap.ID, err)

			continue
		}
		metrics.SyncRecords.WithLabelValues(string(domain.KindRestaurant), "ok").Inc()
	}

	return len(snaps), failed, nil
}

func (s *Synchronizer) syncMenuItems(ctx context.Context) (int, int, error) {
	snaps, err := s.indexer.FetchMenuItems(ctx, s.pageSize, 0)
	if err != nil {
		return 0, 0, err
	}

	failed := 0
	for _, snap := range snaps {
		now := s.now().UTC()

		record, err := s.repos.MenuItems.FindByID(ctx, snap.ID)
		switch {
		case err == nil:
			record.Name = snap.Name
			record.PriceE18 = snap.PriceE18
			record.Available = snap.Available
		case errors.Is(err, kvstore.ErrNotFound):
			record = domain.MenuItem{
				ID:               snap.ID,
				RestaurantWallet: strings.ToLower(snap.Restaurant.ID),
				Name:             snap.Name,
				PriceE18:         defaultString(snap.PriceE18, "0"),
				Available:        snap.Available,
				CreatedAt:        remoteTime(snap.CreatedAt, now),
			}
		default:
			failed++
			s.upsertFailed(domain.KindMenuItem, snap.ID, err)

			continue
		}
		record.UpdatedAt = now

		if err := s.repos.MenuItems.Save(ctx, record); err != nil {
			failed++
			s.upsertFailed(domain.KindMenuItem, snap.ID, err)

			continue
		}
		metrics.SyncRecords.WithLabelValues(string(domain.KindMenuItem), "ok").Inc()
	}

	return len(snaps), failed, nil
}

func (s *Synchronizer) syncOrders(ctx context.Context) (int, int, error) {
	snaps, err := s.indexer.FetchOrders(ctx, s.pageSize, 0)
	if err != nil {
		return 0, 0, err
	}

	failed := 0
	for _, snap := range snaps {
		now := s.now().UTC()

		record, err := s.repos.Orders.FindByID(ctx, snap.ID)
		switch {
		case err == nil:
			record.Status = domain.OrderStatusFromIndexer(snap.Status)
			record.SlippageBps = snap.SlippageBps
			record.TotalE18 = defaultString(snap.TotalE18, record.TotalE18)
		case errors.Is(err, kvstore.ErrNotFound):
			record = domain.Order{
				ID:             snap.ID,
				CustomerWallet: strings.ToLower(snap.Customer.ID),
				RestaurantID:   strings.ToLower(snap.Restaurant.ID),
				Status:         domain.OrderStatusFromIndexer(snap.Status),
				Payment:        domain.PaymentMethodFromIndexer(snap.Payment),
				SlippageBps:    snap.SlippageBps,
				TotalE18:       defaultString(snap.TotalE18, "0"),
				CreatedAt:      remoteTime(snap.CreatedAt, now),
			}
		default:
			failed++
			s.upsertFailed(domain.KindOrder, snap.ID, err)

			continue
		}
		record.UpdatedAt = now

		if err := s.repos.Orders.Save(ctx, record); err != nil {
			failed++
			s.upsertFailed(domain.KindOrder, snap.ID, err)

			continue
		}
		metrics.SyncRecords.WithLabelValues(string(domain.KindOrder), "ok").Inc()
	}

	return len(snaps), failed, nil
}

func (s *Synchronizer) upsertFailed(kind domain.EntityKind, id string, err error) {
	metrics.SyncRecords.WithLabelValues(string(kind), "error").Inc()
	s.logger.Warn("record upsert failed",
		zap.String("kind", string(kind)),
		zap.String("id", id),
		zap.Error(err),
	)
}

// CheckHealth reports whether the indexer answers a minimal meta query.
func (s *Synchronizer) CheckHealth(ctx context.Context) bool {
	return s.indexer.Meta(ctx) == nil
}

// SyncStats reports the projection sizes. LastSync comes from a marker
// lookup that currently never resolves, because no sync pass writes the
// marker; it reports unset until a writer exists.
func (s *Synchronizer) SyncStats(ctx context.Context) (domain.SyncStats, error) {
	var stats domain.SyncStats
	var err error

	if stats.Customers, err = s.repos.Customers.Count(ctx); err != nil {
		return stats, fmt.Errorf("count customers: %w", err)
	}
	if stats.Restaurants, err = s.repos.Restaurants.Count(ctx); err != nil {
		return stats, fmt.Errorf("count restaurants: %w", err)
	}
	if stats.MenuItems, err = s.repos.MenuItems.Count(ctx); err != nil {
		return stats, fmt.Errorf("count menu items: %w", err)
	}
	if stats.Orders, err = s.repos.Orders.Count(ctx); err != nil {
		return stats, fmt.Errorf("count orders: %w", err)
	}

	if marker, err := s.repos.Meta.FindByID(ctx, lastSyncMarkerID); err == nil {
		stats.LastSync = &marker.At
	}

	return stats, nil
}

func remoteTime(unix int64, fallback time.Time) time.Time {
	if unix <= 0 {
		return fallback
	}
	return time.Unix(unix, 0).UTC()
}

func defaultString(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
