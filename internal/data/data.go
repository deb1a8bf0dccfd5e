package data

import (
	"github.com/sellerops/allegro-sentinel/allegro"
	"github.com/sellerops/allegro-sentinel/discordhook"
	"github.com/sellerops/allegro-sentinel/internal/biz/repo"
)

// Repositories contains all repositories
type Repositories struct {
	Marketplace repo.MarketplaceRepo
	Notifier    repo.NotifierRepo
}

// NewRepositories creates all repositories
func NewRepositories(
	allegroClient *allegro.Client,
	ordersWebhook *discordhook.Client,
	messagesWebhook *discordhook.Client,
) *Repositories {
	return &Repositories{
		Marketplace: NewAllegroRepo(allegroClient),
		Notifier:    NewDiscordNotifier(ordersWebhook, messagesWebhook),
	}
}
