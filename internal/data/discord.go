package data

import (
	"context"
	"fmt"

	"github.com/sellerops/allegro-sentinel/discordhook"
	"github.com/sellerops/allegro-sentinel/internal/biz/domain"
	"github.com/sellerops/allegro-sentinel/internal/biz/repo"
)

// discordNotifier routes notifications to the webhook configured for
// each notification class.
type discordNotifier struct {
	sinks map[domain.NotificationClass]*discordhook.Client
}

// NewDiscordNotifier creates a notifier backed by per-class Discord webhooks
func NewDiscordNotifier(orders, messages *discordhook.Client) repo.NotifierRepo {
	return &discordNotifier{
		sinks: map[domain.NotificationClass]*discordhook.Client{
			domain.ClassOrder:   orders,
			domain.ClassMessage: messages,
		},
	}
}

func (n *discordNotifier) Push(ctx context.Context, class domain.NotificationClass, notification *domain.Notification) error {
	sink, ok := n.sinks[class]
	if !ok || sink == nil {
		return fmt.Errorf("no webhook configured for class %q", class)
	}
	return sink.Push(ctx, notification)
}
