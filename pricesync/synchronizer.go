// Package pricesync keeps the on-chain price oracle and the local audit
// ledger in agreement, tolerating chain unavailability.
package pricesync

import (
	"context"
	"math/big"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/sljivkov/foodsync/domain"
	"github.com/sljivkov/foodsync/metrics"
)

// Fallback quotes returned when no chain path is configured. The two
// values are deliberately distinct so the base-asset and token paths
// are distinguishable.
var (
	fallbackEthPriceUSD   = decimal.NewFromInt(2000)
	fallbackTokenPriceUSD = decimal.NewFromInt(1)
)

// AuditLog receives one record per accepted price update.
type AuditLog interface {
	Append(ctx context.Context, record domain.PriceUpdateRecord) error
}

// Synchronizer coordinates price reads/writes against the oracle and
// the audit ledger. The operating mode is fixed at construction: with a
// nil oracle every write is recorded locally only (fallback mode).
type Synchronizer struct {
	oracle  domain.ChainPriceOracle
	history AuditLog
	feeds   []domain.ReferenceFeed
	logger  *zap.Logger
	now     func() time.Time
}

// New builds a Synchronizer. oracle may be nil; that selects fallback
// mode for the process lifetime.
func New(oracle domain.ChainPriceOracle, history AuditLog, feeds []domain.ReferenceFeed, logger *zap.Logger) *Synchronizer {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Synchronizer{
		oracle:  oracle,
		history: history,
		feeds:   feeds,
		logger:  logger,
		now:     time.Now,
	}
}

// FallbackMode reports whether the chain write path is unavailable.
func (s *Synchronizer) FallbackMode() bool {
	return s.oracle == nil
}

// updateOutcome splits the primary action result from the audit write
// result so audit failures can be surfaced without changing the return
// contract.
type updateOutcome struct {
	applied  bool
	err      error
	auditErr error
}

// UpdateAssetPrice applies one price change. assetKey nil targets the
// base asset. In chain-write mode a failed chain call is returned to
// the caller; an audit failure after a successful write is logged and
// swallowed.
func (s *Synchronizer) UpdateAssetPrice(ctx context.Context, assetKey *common.Address, priceUSD decimal.Decimal, source string) (bool, error) {
	outcome := s.apply(ctx, domain.PriceUpdate{AssetKey: assetKey, PriceUSD: priceUSD, Source: source})

	if outcome.err != nil {
		metrics.PriceUpdates.WithLabelValues("error").Inc()
		return false, outcome.err
	}

	if outcome.auditErr != nil {
		metrics.AuditWriteFailures.Inc()
		s.logger.Warn("audit append failed after successful update",
			zap.String("asset", domain.AssetBucket(assetKey)),
			zap.String("source", source),
			zap.Error(outcome.auditErr),
		)
	}

	metrics.PriceUpdates.WithLabelValues("ok").Inc()

	return outcome.applied, nil
}

func (s *Synchronizer) apply(ctx context.Context, update domain.PriceUpdate) updateOutcome {
	if err := update.Validate(); err != nil {
		return updateOutcome{err: err}
	}

	if s.FallbackMode() {
		auditErr := s.appendAudit(ctx, update, decimal.Zero, domain.FallbackUpdatedBy)
		return updateOutcome{applied: true, auditErr: auditErr}
	}

	quote, err := s.GetCurrentPrice(ctx, update.AssetKey)
	if err != nil {
		return updateOutcome{err: err}
	}

	priceE18 := domain.ToFixedPoint18(update.PriceUSD)
	if update.AssetKey == nil {
		err = s.oracle.SetEthPrice(ctx, priceE18)
	} else {
		err = s.oracle.SetTokenPrice(ctx, *update.AssetKey, priceE18)
	}
	if err != nil {
		return updateOutcome{err: err}
	}

	s.logger.Info("price written to chain",
		zap.String("asset", domain.AssetBucket(update.AssetKey)),
		zap.String("price", update.PriceUSD.String()),
		zap.String("source", update.Source),
	)

	auditErr := s.appendAudit(ctx, update, quote.PriceUSD, s.oracle.SignerAddress().Hex())

	return updateOutcome{applied: true, auditErr: auditErr}
}

func (s *Synchronizer) appendAudit(ctx context.Context, update domain.PriceUpdate, oldPrice decimal.Decimal, updatedBy string) error {
	now := s.now().UTC()

	return s.history.Append(ctx, domain.PriceUpdateRecord{
		ID:          domain.NewRecordID(now),
		AssetKey:    update.AssetKey,
		OldPriceUSD: oldPrice,
		NewPriceUSD: update.PriceUSD,
		Source:      update.Source,
		UpdatedBy:   updatedBy,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
}

// BatchUpdatePrices attempts every update independently and joins all
// attempts before returning. The result slice preserves input order; a
// single item's failure never aborts its siblings.
func (s *Synchronizer) BatchUpdatePrices(ctx context.Context, updates []domain.PriceUpdate) ([]bool, domain.BatchResult) {
	results := make([]bool, len(updates))

	var wg sync.WaitGroup
	for i, update := range updates {
		wg.Add(1)
		go func(i int, update domain.PriceUpdate) {
			defer wg.Done()

			ok, err := s.UpdateAssetPrice(ctx, update.AssetKey, update.PriceUSD, update.Source)
			if err != nil {
				s.logger.Warn("batch item failed",
					zap.Int("index", i),
					zap.String("asset", domain.AssetBucket(update.AssetKey)),
					zap.Error(err),
				)
			}
			results[i] = ok && err == nil
		}(i, update)
	}
	wg.Wait()

	summary := domain.BatchResult{Total: len(updates)}
	for _, ok := range results {
		if ok {
			summary.Succeeded++
		} else {
			summary.Failed++
		}
	}

	s.logger.Info("batch price update complete",
		zap.Int("total", summary.Total),
		zap.Int("succeeded", summary.Succeeded),
		zap.Int("failed", summary.Failed),
	)

	return results, summary
}

// GetCurrentPrice reads the live price for an asset. In fallback mode a
// fixed configured default is returned instead of a chain read.
func (s *Synchronizer) GetCurrentPrice(ctx context.Context, assetKey *common.Address) (domain.PriceQuote, error) {
	observed := s.now().UTC()

	if s.FallbackMode() {
		price := fallbackEthPriceUSD
		if assetKey != nil {
			price = fallbackTokenPriceUSD
		}

		return domain.PriceQuote{
			PriceUSD:          price,
			PriceFixedPoint18: domain.ToFixedPoint18(price),
			Source:            domain.SourceFallback,
			ObservedAt:        observed,
		}, nil
	}

	var (
		raw *big.Int
		err error
	)
	if assetKey == nil {
		raw, err = s.oracle.CurrentEthPriceE18(ctx)
	} else {
		raw, err = s.oracle.CurrentTokenPriceE18(ctx, *assetKey)
	}
	if err != nil {
		return domain.PriceQuote{}, err
	}

	return domain.PriceQuote{
		PriceUSD:          domain.FromFixedPoint18(raw),
		PriceFixedPoint18: raw,
		Source:            domain.SourceChain,
		ObservedAt:        observed,
	}, nil
}

// PollExternalSources queries each reference feed in a fixed sequence.
// Every usable value triggers its own base-asset update immediately, so
// when several providers succeed the last one wins on chain for this
// cycle. A failed provider is logged and the next one is still tried.
func (s *Synchronizer) PollExternalSources(ctx context.Context) {
	for _, feed := range s.feeds {
		price, err := feed.FetchPrice(ctx)
		if err != nil {
			metrics.FeedPolls.WithLabelValues(feed.Name(), "error").Inc()
			s.logger.Warn("feed poll failed", zap.String("provider", feed.Name()), zap.Error(err))

			continue
		}

		metrics.FeedPolls.WithLabelValues(feed.Name(), "ok").Inc()
		s.logger.Info("feed price fetched",
			zap.String("provider", feed.Name()),
			zap.Float64("price", price),
		)

		if _, err := s.UpdateAssetPrice(ctx, nil, decimal.NewFromFloat(price), feed.Name()); err != nil {
			s.logger.Warn("feed price update failed", zap.String("provider", feed.Name()), zap.Error(err))
		}
	}
}

// CheckHealth reports whether the base-asset price resolves.
func (s *Synchronizer) CheckHealth(ctx context.Context) bool {
	_, err := s.GetCurrentPrice(ctx, nil)

	return err == nil
}
