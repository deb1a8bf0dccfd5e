package repo

import (
	"context"

	"github.com/sellerops/allegro-sentinel/internal/biz/domain"
)

// MarketplaceRepo is the marketplace data interface.
// Implementations fetch live state from the Allegro REST API; there is
// no local cache of orders or threads.
type MarketplaceRepo interface {
	// Authorize exchanges an authorization code for an access token and
	// stores it for subsequent calls.
	Authorize(ctx context.Context, code string) error

	// Authorized reports whether a credential is currently held.
	Authorized() bool

	// ListRecentOrders returns up to limit orders sorted ascending by
	// update time.
	ListRecentOrders(ctx context.Context, limit int) ([]domain.Order, error)

	// ListMessageThreads returns up to limit message threads.
	ListMessageThreads(ctx context.Context, limit int) ([]domain.MessageThread, error)

	// SendReply posts a text reply into a thread.
	SendReply(ctx context.Context, threadID, text string) error

	// MarkRead marks a thread read up to the given message. Best-effort.
	MarkRead(ctx context.Context, threadID, lastSeenMessageID string) error
}
