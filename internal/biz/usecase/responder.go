package usecase

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/sellerops/allegro-sentinel/internal/biz/domain"
	"github.com/sellerops/allegro-sentinel/internal/biz/repo"
	"github.com/sellerops/allegro-sentinel/internal/metrics"
)

// ResponderUsecase handles unread buyer threads: it notifies about new
// messages and, behind the safety gate, sends the canned auto-reply.
//
// Notification dedup uses a seen-set keyed by message id. Reply dedup
// relies solely on the thread read flag: a reply whose MarkRead fails
// will be resent next cycle. That at-least-once behavior is accepted.
type ResponderUsecase struct {
	market   repo.MarketplaceRepo
	notifier repo.NotifierRepo
	mode     *domain.Mode
	msgSeen  *domain.Ledger
	render   RenderConfig

	window     time.Duration
	fetchLimit int

	now func() time.Time
	log zerolog.Logger
}

// NewResponderUsecase creates the auto-responder usecase.
func NewResponderUsecase(
	market repo.MarketplaceRepo,
	notifier repo.NotifierRepo,
	mode *domain.Mode,
	msgSeen *domain.Ledger,
	render RenderConfig,
	window time.Duration,
	fetchLimit int,
	logger zerolog.Logger,
) *ResponderUsecase {
	return &ResponderUsecase{
		market:     market,
		notifier:   notifier,
		mode:       mode,
		msgSeen:    msgSeen,
		render:     render,
		window:     window,
		fetchLimit: fetchLimit,
		now:        time.Now,
		log:        logger.With().Str("component", "responder").Logger(),
	}
}

// ProcessCycle runs one fetch → classify → notify/reply pass.
func (uc *ResponderUsecase) ProcessCycle(ctx context.Context) error {
	threads, err := uc.market.ListMessageThreads(ctx, uc.fetchLimit)
	if err != nil {
		metrics.PollCycles.WithLabelValues("messages", "error").Inc()
		return err
	}

	state := uc.mode.Snapshot()
	now := uc.now()

	for i := range threads {
		t := &threads[i]
		if !t.NeedsAttention() {
			continue
		}
		if !domain.IsFresh(t.LastMessage.CreatedAt, now, uc.window) {
			continue
		}

		uc.handleThread(ctx, t, state)
	}

	metrics.PollCycles.WithLabelValues("messages", "ok").Inc()
	return nil
}

func (uc *ResponderUsecase) handleThread(ctx context.Context, t *domain.MessageThread, state domain.ModeState) {
	msgID := t.LastMessage.ID

	// Notify (and TEST-preview) once per message id.
	if !uc.msgSeen.Seen(msgID) {
		uc.msgSeen.Record(msgID)

		if err := uc.notifier.Push(ctx, domain.ClassMessage, uc.render.MessageNotification(t)); err != nil {
			metrics.NotificationFailures.Inc()
			uc.log.Error().Err(err).Str("thread", t.ID).Msg("failed to push message notification")
		} else {
			metrics.NotificationsSent.WithLabelValues(string(domain.ClassMessage)).Inc()
		}

		if state.ResponderActive && state.Safety == domain.SafetyTest {
			// Preview only. The live account stays untouched: no reply,
			// no read marking.
			if err := uc.notifier.Push(ctx, domain.ClassMessage, uc.render.PreviewNotification(t)); err != nil {
				uc.log.Error().Err(err).Str("thread", t.ID).Msg("failed to push reply preview")
			} else {
				uc.log.Info().Str("thread", t.ID).Str("buyer", t.Interlocutor).Msg("reply preview sent (test mode)")
			}
		}
	}

	if !state.AllowsReply() {
		return
	}

	if err := uc.market.SendReply(ctx, t.ID, uc.render.CannedReply); err != nil {
		// Thread stays unread, so the next cycle retries.
		metrics.ReplyFailures.Inc()
		uc.log.Error().Err(err).Str("thread", t.ID).Msg("auto-reply failed, will retry next cycle")
		return
	}
	metrics.RepliesSent.Inc()
	uc.log.Info().Str("thread", t.ID).Str("buyer", t.Interlocutor).Msg("auto-reply sent")

	if err := uc.market.MarkRead(ctx, t.ID, msgID); err != nil {
		// Reply went out but the thread is still unread: the next cycle
		// will reply again. Flagged loudly instead of silently fixed.
		uc.log.Warn().Err(err).Str("thread", t.ID).Msg("mark-read failed after reply, duplicate reply possible")
	}
}
