// Package server exposes the operator HTTP API: health, status,
// runtime controls, the OAuth code exchange and a few seller helpers.
package server

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/sellerops/allegro-sentinel/internal/biz/domain"
	"github.com/sellerops/allegro-sentinel/internal/biz/repo"
	"github.com/sellerops/allegro-sentinel/internal/pricing"
)

// InsightsProvider generates seller-facing texts on demand.
type InsightsProvider interface {
	MarketReport(ctx context.Context, period, category string) (string, error)
	SafetyNotice(ctx context.Context, product string) (string, error)
}

// LedgerStats reports dedup ledger occupancy.
type LedgerStats interface {
	LedgerSize() int
}

// Handler contains shared dependencies for all HTTP handlers.
type Handler struct {
	mode     *domain.Mode
	market   repo.MarketplaceRepo
	monitor  LedgerStats
	insights InsightsProvider
	log      zerolog.Logger
}

// NewHandler creates a new Handler.
func NewHandler(mode *domain.Mode, market repo.MarketplaceRepo, monitor LedgerStats, insights InsightsProvider, log zerolog.Logger) *Handler {
	return &Handler{
		mode:     mode,
		market:   market,
		monitor:  monitor,
		insights: insights,
		log:      log.With().Str("component", "api").Logger(),
	}
}

// NewRouter creates and configures the HTTP router.
func NewRouter(h *Handler, log zerolog.Logger) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(requestLogger(log))
	r.Use(chimw.Recoverer)

	r.Handle("/metrics", promhttp.Handler())

	r.Get("/healthz", h.Health)
	r.Get("/status", h.Status)

	r.Post("/auth/exchange", h.AuthExchange)

	r.Post("/control/monitor", h.SetMonitor)
	r.Post("/control/responder", h.SetResponder)
	r.Post("/control/safety", h.SetSafety)

	r.Post("/insights/report", h.MarketReport)
	r.Post("/insights/safety-notice", h.SafetyNotice)

	r.Post("/pricing/margin", h.Margin)

	return r
}

// requestLogger logs one line per request, metrics scrapes excluded.
func requestLogger(log zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/metrics" {
				next.ServeHTTP(w, r)
				return
			}
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			log.Debug().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", ww.Status()).
				Msg("http request")
		})
	}
}

// JSON sends a JSON response with the given status code.
func (h *Handler) JSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// Error sends a JSON error response with the given status code.
func (h *Handler) Error(w http.ResponseWriter, status int, message string) {
	h.JSON(w, status, map[string]string{"error": message})
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		h.Error(w, http.StatusBadRequest, "invalid JSON body")
		return false
	}
	return true
}

// Health is the liveness probe.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	h.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// StatusResponse is the /status payload.
type StatusResponse struct {
	MonitorActive   bool   `json:"monitor_active"`
	ResponderActive bool   `json:"responder_active"`
	SafetyMode      string `json:"safety_mode"`
	Authorized      bool   `json:"authorized"`
	LedgerSize      int    `json:"ledger_size"`
}

// Status reports the runtime switches and ledger occupancy.
func (h *Handler) Status(w http.ResponseWriter, r *http.Request) {
	state := h.mode.Snapshot()
	h.JSON(w, http.StatusOK, StatusResponse{
		MonitorActive:   state.MonitorActive,
		ResponderActive: state.ResponderActive,
		SafetyMode:      string(state.Safety),
		Authorized:      h.market.Authorized(),
		LedgerSize:      h.monitor.LedgerSize(),
	})
}

// AuthExchange trades an OAuth authorization code for an access token.
func (h *Handler) AuthExchange(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Code string `json:"code"`
	}
	if !h.decode(w, r, &req) {
		return
	}
	if req.Code == "" {
		h.Error(w, http.StatusBadRequest, "code is required")
		return
	}

	if err := h.market.Authorize(r.Context(), req.Code); err != nil {
		h.log.Error().Err(err).Msg("authorization code exchange failed")
		h.Error(w, http.StatusUnauthorized, "code exchange failed")
		return
	}
	h.log.Info().Msg("marketplace authorization completed")
	h.JSON(w, http.StatusOK, map[string]string{"status": "authorized"})
}

// SetMonitor toggles the order monitor loop.
func (h *Handler) SetMonitor(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Active bool `json:"active"`
	}
	if !h.decode(w, r, &req) {
		return
	}
	h.mode.SetMonitor(req.Active)
	h.log.Info().Bool("active", req.Active).Msg("monitor switch changed")
	h.Status(w, r)
}

// SetResponder toggles the auto-responder.
func (h *Handler) SetResponder(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Active bool `json:"active"`
	}
	if !h.decode(w, r, &req) {
		return
	}
	h.mode.SetResponder(req.Active)
	h.log.Info().Bool("active", req.Active).Msg("responder switch changed")
	h.Status(w, r)
}

// SetSafety switches between TEST and LIVE reply modes.
func (h *Handler) SetSafety(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Mode string `json:"mode"`
	}
	if !h.decode(w, r, &req) {
		return
	}
	mode, err := domain.ParseSafetyMode(req.Mode)
	if err != nil {
		h.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	h.mode.SetSafety(mode)
	h.log.Warn().Str("mode", string(mode)).Msg("safety mode changed")
	h.Status(w, r)
}

// MarketReport generates a market trend report.
func (h *Handler) MarketReport(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Period   string `json:"period"`
		Category string `json:"category"`
	}
	if !h.decode(w, r, &req) {
		return
	}
	if req.Period == "" {
		req.Period = "7d"
	}

	report, err := h.insights.MarketReport(r.Context(), req.Period, req.Category)
	if err != nil {
		h.log.Error().Err(err).Msg("market report generation failed")
		h.Error(w, http.StatusBadGateway, "report generation failed")
		return
	}
	h.JSON(w, http.StatusOK, map[string]string{"report": report})
}

// SafetyNotice generates a product-safety notice draft.
func (h *Handler) SafetyNotice(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Product string `json:"product"`
	}
	if !h.decode(w, r, &req) {
		return
	}
	if req.Product == "" {
		h.Error(w, http.StatusBadRequest, "product is required")
		return
	}

	notice, err := h.insights.SafetyNotice(r.Context(), req.Product)
	if err != nil {
		h.log.Error().Err(err).Msg("safety notice generation failed")
		h.Error(w, http.StatusBadGateway, "notice generation failed")
		return
	}
	h.JSON(w, http.StatusOK, map[string]string{"notice": notice})
}

// MarginResponse is the /pricing/margin payload.
type MarginResponse struct {
	PurchaseNet float64        `json:"purchase_net"`
	Profit      *float64       `json:"profit,omitempty"`
	Goals       []pricing.Goal `json:"goals,omitempty"`
}

// Margin computes profit for a known sale price, or target prices for
// the default profit goals when no sale price is given.
func (h *Handler) Margin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Purchase float64  `json:"purchase"`
		Sale     *float64 `json:"sale"`
	}
	if !h.decode(w, r, &req) {
		return
	}
	if req.Purchase <= 0 {
		h.Error(w, http.StatusBadRequest, "purchase must be positive")
		return
	}

	resp := MarginResponse{PurchaseNet: pricing.Net(req.Purchase)}
	if req.Sale != nil {
		profit := pricing.Profit(req.Purchase, *req.Sale)
		resp.Profit = &profit
	} else {
		resp.Goals = pricing.Breakdown(req.Purchase)
	}
	h.JSON(w, http.StatusOK, resp)
}
