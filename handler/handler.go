// Package handler exposes the admin/ops HTTP surface: manual sync and
// poll triggers, price history queries and summary endpoints.
package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/ethereum/go-ethereum/common"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/sljivkov/foodsync/domain"
	"github.com/sljivkov/foodsync/entitysync"
	"github.com/sljivkov/foodsync/pricehistory"
	"github.com/sljivkov/foodsync/pricesync"
)

// Handler wires the synchronizers and the audit ledger into a router.
type Handler struct {
	prices   *pricesync.Synchronizer
	entities *entitysync.Synchronizer
	history  *pricehistory.Store
	logger   *zap.Logger
}

// New builds a Handler.
func New(prices *pricesync.Synchronizer, entities *entitysync.Synchronizer, history *pricehistory.Store, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Handler{prices: prices, entities: entities, history: history, logger: logger}
}

// Router returns the admin surface router.
func (h *Handler) Router() chi.Router {
	r := chi.NewRouter()

	r.Get("/healthz", h.health)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/sync", func(r chi.Router) {
		r.Post("/", h.triggerSync)
		r.Get("/stats", h.syncStats)
	})

	r.Route("/prices", func(r chi.Router) {
		r.Post("/poll", h.triggerPoll)
		r.Post("/update", h.updatePrice)
		r.Post("/batch", h.batchUpdate)
		r.Get("/current", h.currentPrice)
		r.Get("/history", h.priceHistory)
		r.Get("/stats", h.priceStats)
		r.Post("/purge", h.purge)
	})

	return r
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	status := map[string]bool{
		"price":   h.prices.CheckHealth(ctx),
		"indexer": h.entities.CheckHealth(ctx),
	}

	code := http.StatusOK
	if !status["price"] || !status["indexer"] {
		code = http.StatusServiceUnavailable
	}

	writeJSON(w, code, status)
}

func (h *Handler) triggerSync(w http.ResponseWriter, r *http.Request) {
	h.entities.SyncAll(r.Context())
	h.syncStats(w, r)
}

func (h *Handler) syncStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.entities.SyncStats(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	writeJSON(w, http.StatusOK, stats)
}

func (h *Handler) triggerPoll(w http.ResponseWriter, r *http.Request) {
	h.prices.PollExternalSources(r.Context())
	w.WriteHeader(http.StatusAccepted)
}

// priceUpdateRequest is the JSON body for single and batch updates.
type priceUpdateRequest struct {
	AssetKey *string         `json:"assetKey,omitempty"`
	PriceUSD decimal.Decimal `json:"priceUsd"`
	Source   string          `json:"source"`
}

func (req priceUpdateRequest) toUpdate() (domain.PriceUpdate, error) {
	update := domain.PriceUpdate{PriceUSD: req.PriceUSD, Source: req.Source}

	if req.AssetKey != nil {
		if !common.IsHexAddress(*req.AssetKey) {
			return update, errInvalidAsset
		}
		addr := common.HexToAddress(*req.AssetKey)
		update.AssetKey = &addr
	}

	return update, nil
}

var errInvalidAsset = &badRequestError{"invalid asset address"}

type badRequestError struct{ msg string }

func (e *badRequestError) Error() string { return e.msg }

func (h *Handler) updatePrice(w http.ResponseWriter, r *http.Request) {
	var req priceUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	update, err := req.toUpdate()
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	ok, err := h.prices.UpdateAssetPrice(r.Context(), update.AssetKey, update.PriceUSD, update.Source)
	if err != nil {
		writeError(w, http.StatusBadGateway, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"updated": ok})
}

func (h *Handler) batchUpdate(w http.ResponseWriter, r *http.Request) {
	var reqs []priceUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&reqs); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	updates := make([]domain.PriceUpdate, 0, len(reqs))
	for _, req := range reqs {
		update, err := req.toUpdate()
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		updates = append(updates, update)
	}

	results, summary := h.prices.BatchUpdatePrices(r.Context(), updates)

	writeJSON(w, http.StatusOK, map[string]any{
		"results": results,
		"summary": summary,
	})
}

func (h *Handler) currentPrice(w http.ResponseWriter, r *http.Request) {
	assetKey, err := assetParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	quote, err := h.prices.GetCurrentPrice(r.Context(), assetKey)
	if err != nil {
		writeError(w, http.StatusBadGateway, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"priceUsd":   quote.PriceUSD,
		"source":     quote.Source,
		"observedAt": quote.ObservedAt,
	})
}

func (h *Handler) priceHistory(w http.ResponseWriter, r *http.Request) {
	assetKey, err := assetParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	records, err := h.history.History(r.Context(), assetKey, limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	writeJSON(w, http.StatusOK, records)
}

func (h *Handler) priceStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.history.Stats(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	writeJSON(w, http.StatusOK, stats)
}

func (h *Handler) purge(w http.ResponseWriter, r *http.Request) {
	days, err := strconv.Atoi(r.URL.Query().Get("days"))
	if err != nil || days <= 0 {
		writeError(w, http.StatusBadRequest, &badRequestError{"days must be a positive integer"})
		return
	}

	removed, err := h.history.PurgeOlderThan(r.Context(), days)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]int{"removed": removed})
}

func assetParam(r *http.Request) (*common.Address, error) {
	asset := r.URL.Query().Get("asset")
	if asset == "" {
		return nil, nil
	}
	if !common.IsHexAddress(asset) {
		return nil, errInvalidAsset
	}

	addr := common.HexToAddress(asset)

	return &addr, nil
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func writeError(w http.ResponseWriter, code int, err error) {
	writeJSON(w, code, map[string]string{"error": err.Error()})
}
