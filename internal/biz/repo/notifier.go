package repo

import (
	"context"

	"github.com/sellerops/allegro-sentinel/internal/biz/domain"
)

// NotifierRepo is the notification sink interface. Each notification
// class maps to one fixed channel on the sink side.
type NotifierRepo interface {
	Push(ctx context.Context, class domain.NotificationClass, n *domain.Notification) error
}
