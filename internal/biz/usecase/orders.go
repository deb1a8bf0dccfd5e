package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/sellerops/allegro-sentinel/internal/biz/domain"
	"github.com/sellerops/allegro-sentinel/internal/biz/repo"
	"github.com/sellerops/allegro-sentinel/internal/metrics"
)

// OrderMonitorUsecase turns new marketplace orders into notifications.
//
// Two states: uninitialized (no successful fetch yet) and steady. The
// first successful fetch bulk-absorbs every visible order id without
// notifying, so a restart never replays history. In steady state each
// unseen order is recorded first and notified only if fresh.
type OrderMonitorUsecase struct {
	market   repo.MarketplaceRepo
	notifier repo.NotifierRepo
	mode     *domain.Mode
	ledger   *domain.Ledger
	render   RenderConfig

	window     time.Duration
	fetchLimit int

	// mu guards ledger and initialized: the loop goroutine writes,
	// status queries read.
	mu          sync.Mutex
	initialized bool

	now func() time.Time
	log zerolog.Logger
}

// NewOrderMonitorUsecase creates the order monitor usecase.
func NewOrderMonitorUsecase(
	market repo.MarketplaceRepo,
	notifier repo.NotifierRepo,
	mode *domain.Mode,
	ledger *domain.Ledger,
	render RenderConfig,
	window time.Duration,
	fetchLimit int,
	logger zerolog.Logger,
) *OrderMonitorUsecase {
	return &OrderMonitorUsecase{
		market:     market,
		notifier:   notifier,
		mode:       mode,
		ledger:     ledger,
		render:     render,
		window:     window,
		fetchLimit: fetchLimit,
		now:        time.Now,
		log:        logger.With().Str("component", "order-monitor").Logger(),
	}
}

// ProcessCycle runs one fetch → dedupe → filter → notify pass.
// Errors abort the cycle; the next scheduled tick is the retry.
func (uc *OrderMonitorUsecase) ProcessCycle(ctx context.Context) error {
	if !uc.mode.Snapshot().MonitorActive {
		metrics.PollCycles.WithLabelValues("orders", "skipped").Inc()
		return nil
	}

	orders, err := uc.market.ListRecentOrders(ctx, uc.fetchLimit)
	if err != nil {
		metrics.PollCycles.WithLabelValues("orders", "error").Inc()
		return err
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()

	if !uc.initialized {
		ids := make([]string, 0, len(orders))
		for _, o := range orders {
			ids = append(ids, o.ID)
		}
		uc.ledger.Absorb(ids)
		uc.initialized = true
		metrics.OrdersAbsorbed.Add(float64(len(ids)))
		metrics.PollCycles.WithLabelValues("orders", "ok").Inc()
		uc.log.Info().Int("absorbed", len(ids)).Msg("ledger initialized, no notifications for pre-existing orders")
		return nil
	}

	now := uc.now()
	for i := range orders {
		o := &orders[i]
		if uc.ledger.Seen(o.ID) {
			continue
		}
		// Record before the freshness test: stale orders are suppressed
		// but must never fire later.
		uc.ledger.Record(o.ID)

		if !domain.IsFresh(o.UpdatedAt, now, uc.window) {
			uc.log.Debug().Str("order", o.ID).Str("updated_at", o.UpdatedAt).Msg("stale order recorded without notification")
			continue
		}

		if err := uc.notifier.Push(ctx, domain.ClassOrder, uc.render.OrderNotification(o)); err != nil {
			metrics.NotificationFailures.Inc()
			uc.log.Error().Err(err).Str("order", o.ID).Msg("failed to push order notification")
			continue
		}
		metrics.NotificationsSent.WithLabelValues(string(domain.ClassOrder)).Inc()
		uc.log.Info().Str("order", o.ID).Str("buyer", o.Buyer).Msg("order notification sent")
	}

	metrics.PollCycles.WithLabelValues("orders", "ok").Inc()
	return nil
}

// LedgerSize reports the current ledger occupancy for status queries.
func (uc *OrderMonitorUsecase) LedgerSize() int {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.ledger.Len()
}
