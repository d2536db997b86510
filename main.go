package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/sljivkov/foodsync/apis"
	"github.com/sljivkov/foodsync/chains"
	"github.com/sljivkov/foodsync/config"
	"github.com/sljivkov/foodsync/domain"
	"github.com/sljivkov/foodsync/entitysync"
	"github.com/sljivkov/foodsync/graph"
	"github.com/sljivkov/foodsync/handler"
	"github.com/sljivkov/foodsync/kvstore"
	"github.com/sljivkov/foodsync/pricehistory"
	"github.com/sljivkov/foodsync/pricesync"
)

func main() {
	root := &cobra.Command{
		Use:          "foodsync",
		Short:        "Price oracle and indexer sync service",
		SilenceUsage: true,
	}

	root.PersistentFlags().String("env-file", "", "optional .env file path")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the sync daemon with the admin HTTP surface",
		RunE:  runServe,
	}

	syncCmd := &cobra.Command{
		Use:   "sync",
		Short: "Run one indexer reconciliation pass and exit",
		RunE:  runSync,
	}

	pollCmd := &cobra.Command{
		Use:   "poll",
		Short: "Poll the external price feeds once and exit",
		RunE:  runPoll,
	}

	purgeCmd := &cobra.Command{
		Use:   "purge",
		Short: "Delete audit records older than the retention window",
		RunE:  runPurge,
	}
	purgeCmd.Flags().Int("days", 90, "retention window in days")

	root.AddCommand(serveCmd, syncCmd, pollCmd, purgeCmd)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

// app bundles the wired service components. Everything is constructed
// once here and passed explicitly; there is no package-global state.
type app struct {
	cfg      *config.Config
	logger   *zap.Logger
	kv       kvstore.KeyValue
	history  *pricehistory.Store
	prices   *pricesync.Synchronizer
	entities *entitysync.Synchronizer
	handler  *handler.Handler
	oracle   *chains.FoodOracle // nil in fallback mode
	closeKV  func()
}

func buildApp(ctx context.Context, flags *pflag.FlagSet) (*app, error) {
	var opts []config.Option
	if envFile, _ := flags.GetString("env-file"); envFile != "" {
		opts = append(opts, config.WithEnvFile(envFile))
	}

	cfg, err := config.NewConfig(opts...)
	if err != nil {
		return nil, err
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	var (
		kv      kvstore.KeyValue
		closeKV = func() {}
	)
	if cfg.PostgresDSN != "" {
		pg, err := kvstore.NewPostgres(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, err
		}
		kv = pg
		closeKV = pg.Close
		logger.Info("using postgres store")
	} else {
		kv = kvstore.NewMemory()
		logger.Warn("no POSTGRES_DSN set, using in-memory store")
	}

	history := pricehistory.New(kv)

	var oracle *chains.FoodOracle
	if cfg.ChainWriteMode() {
		oracle, err = chains.NewFoodOracle(cfg.PrivateKey, cfg.Alchemy, cfg.Contract, logger)
		if err != nil {
			closeKV()
			return nil, fmt.Errorf("connect oracle: %w", err)
		}
		logger.Info("chain-write mode", zap.String("signer", oracle.SignerAddress().Hex()))
	} else {
		logger.Warn("chain write path not configured, running in fallback mode")
	}

	feeds := []domain.ReferenceFeed{
		apis.NewCoinGecko(cfg.GeckoURL, cfg.GeckoAsset),
		apis.NewDiaData(cfg.DiaURL),
	}

	// A nil interface must stay nil; wrapping a nil *FoodOracle would
	// defeat the fallback check.
	var chainOracle domain.ChainPriceOracle
	if oracle != nil {
		chainOracle = oracle
	}
	prices := pricesync.New(chainOracle, history, feeds, logger)

	repos := entitysync.NewRepositories(kv)
	entities := entitysync.New(graph.NewClient(cfg.IndexerURL), repos, cfg.PageSize, logger)

	return &app{
		cfg:      cfg,
		logger:   logger,
		kv:       kv,
		history:  history,
		prices:   prices,
		entities: entities,
		handler:  handler.New(prices, entities, history, logger),
		oracle:   oracle,
		closeKV:  closeKV,
	}, nil
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := buildApp(ctx, cmd.Flags())
	if err != nil {
		return err
	}
	defer a.closeKV()
	defer a.logger.Sync()

	if a.oracle != nil {
		events := make(chan chains.OraclePriceEvent)
		if err := a.oracle.WatchPriceUpdates(ctx, events); err != nil {
			a.logger.Warn("oracle event watch unavailable", zap.Error(err))
		} else {
			go func() {
				for ev := range events {
					a.logger.Info("on-chain price update",
						zap.String("asset", domain.AssetBucket(ev.Token)),
						zap.Float64("price", ev.PriceUSD),
						zap.Time("at", ev.At),
					)
				}
			}()
		}
	}

	go a.runLoops(ctx)

	srv := &http.Server{
		Addr:    ":" + a.cfg.Port,
		Handler: a.handler.Router(),
	}

	go func() {
		a.logger.Info("server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			a.logger.Error("server stopped", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	a.logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}

// runLoops drives the periodic poll and sync passes until shutdown.
func (a *app) runLoops(ctx context.Context) {
	pollTicker := time.NewTicker(a.cfg.PollInterval)
	defer pollTicker.Stop()

	syncTicker := time.NewTicker(a.cfg.SyncInterval)
	defer syncTicker.Stop()

	// One pass of each at startup so projections are warm.
	a.prices.PollExternalSources(ctx)
	a.entities.SyncAll(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-pollTicker.C:
			a.prices.PollExternalSources(ctx)
		case <-syncTicker.C:
			a.entities.SyncAll(ctx)
		}
	}
}

func runSync(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := buildApp(ctx, cmd.Flags())
	if err != nil {
		return err
	}
	defer a.closeKV()
	defer a.logger.Sync()

	a.entities.SyncAll(ctx)

	stats, err := a.entities.SyncStats(ctx)
	if err != nil {
		return err
	}

	return json.NewEncoder(os.Stdout).Encode(stats)
}

func runPoll(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := buildApp(ctx, cmd.Flags())
	if err != nil {
		return err
	}
	defer a.closeKV()
	defer a.logger.Sync()

	a.prices.PollExternalSources(ctx)

	return nil
}

func runPurge(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := buildApp(ctx, cmd.Flags())
	if err != nil {
		return err
	}
	defer a.closeKV()
	defer a.logger.Sync()

	days, _ := cmd.Flags().GetInt("days")

	removed, err := a.history.PurgeOlderThan(ctx, days)
	if err != nil {
		return err
	}

	a.logger.Info("purge complete", zap.Int("days", days), zap.Int("removed", removed))

	return nil
}

func newLogger(level string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevel()
	if err := cfg.Level.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	return cfg.Build()
}
