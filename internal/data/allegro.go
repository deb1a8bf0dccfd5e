package data

import (
	"context"

	"github.com/sellerops/allegro-sentinel/allegro"
	"github.com/sellerops/allegro-sentinel/internal/biz/domain"
	"github.com/sellerops/allegro-sentinel/internal/biz/repo"
)

// allegroRepo implements the marketplace repository over the Allegro
// REST client.
type allegroRepo struct {
	client *allegro.Client
}

// NewAllegroRepo creates a new Allegro marketplace repository
func NewAllegroRepo(client *allegro.Client) repo.MarketplaceRepo {
	return &allegroRepo{client: client}
}

func (r *allegroRepo) Authorize(ctx context.Context, code string) error {
	return r.client.Authorize(ctx, code)
}

func (r *allegroRepo) Authorized() bool {
	return r.client.Authorized()
}

func (r *allegroRepo) ListRecentOrders(ctx context.Context, limit int) ([]domain.Order, error) {
	return r.client.ListRecentOrders(ctx, limit)
}

func (r *allegroRepo) ListMessageThreads(ctx context.Context, limit int) ([]domain.MessageThread, error) {
	return r.client.ListMessageThreads(ctx, limit)
}

func (r *allegroRepo) SendReply(ctx context.Context, threadID, text string) error {
	return r.client.SendReply(ctx, threadID, text)
}

func (r *allegroRepo) MarkRead(ctx context.Context, threadID, lastSeenMessageID string) error {
	return r.client.MarkRead(ctx, threadID, lastSeenMessageID)
}
