package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Poll loop metrics
	PollCycles = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sentinel_poll_cycles_total",
			Help: "Total poll cycles per loop",
		},
		[]string{"loop", "result"}, // result: "ok", "error", "skipped"
	)

	// Notification metrics
	NotificationsSent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sentinel_notifications_total",
			Help: "Total notifications pushed to the sink",
		},
		[]string{"class"}, // "orders", "messages"
	)

	NotificationFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "sentinel_notification_failures_total",
			Help: "Total failed pushes to the sink",
		},
	)

	// Responder metrics
	RepliesSent = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "sentinel_replies_sent_total",
			Help: "Total auto-replies sent to the marketplace",
		},
	)

	ReplyFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "sentinel_reply_failures_total",
			Help: "Total failed auto-reply sends",
		},
	)

	// Ledger metrics
	OrdersAbsorbed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "sentinel_orders_absorbed_total",
			Help: "Order ids absorbed without notification on startup",
		},
	)
)
