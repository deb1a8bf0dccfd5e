// Command send-test posts a sample embed to a Discord webhook, for
// checking channel wiring before pointing the daemon at it.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/sellerops/allegro-sentinel/discordhook"
	"github.com/sellerops/allegro-sentinel/internal/biz/domain"
)

func main() {
	godotenv.Load()

	webhookURL := os.Getenv("DISCORD_ORDERS_WEBHOOK_URL")
	if len(os.Args) > 1 {
		webhookURL = os.Args[1]
	}
	if webhookURL == "" {
		fmt.Println("Usage: send-test [webhook_url]  (or set DISCORD_ORDERS_WEBHOOK_URL)")
		os.Exit(1)
	}

	client := discordhook.NewClient(webhookURL, discordhook.ColorOrder)
	err := client.Push(context.Background(), &domain.Notification{
		Title: "Nowe zamówienie #TEST-123",
		Fields: []domain.Field{
			{Name: "Kupujący", Value: "testowy_kupujacy"},
			{Name: "Kwota", Value: "159.99 PLN"},
			{Name: "Przedmioty", Value: "1x Artykuł testowy"},
		},
		FooterText: "Allegro Sentinel (test)",
	})
	if err != nil {
		fmt.Printf("Webhook push failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("Test embed sent.")
}
