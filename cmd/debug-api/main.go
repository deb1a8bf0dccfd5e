// Command debug-api pokes the Allegro API directly with a pasted
// authorization code, printing raw orders and threads. Handy when the
// daemon reports data-shape errors.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/sellerops/allegro-sentinel/allegro"
)

func main() {
	godotenv.Load()

	if len(os.Args) < 2 {
		fmt.Println("Usage: debug-api <authorization_code>")
		os.Exit(1)
	}
	code := os.Args[1]

	client := allegro.NewClient(allegro.Config{
		ClientID:     os.Getenv("ALLEGRO_CLIENT_ID"),
		ClientSecret: os.Getenv("ALLEGRO_CLIENT_SECRET"),
		RedirectURI:  os.Getenv("ALLEGRO_REDIRECT_URI"),
	})

	ctx := context.Background()
	if err := client.Authorize(ctx, code); err != nil {
		fmt.Printf("Authorization failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("Authorized.")

	fmt.Println("\n=== Recent orders ===")
	orders, err := client.ListRecentOrders(ctx, 10)
	if err != nil {
		fmt.Printf("ListRecentOrders failed: %v\n", err)
	}
	for _, o := range orders {
		fmt.Printf("%s  %s  %s %s  (%d items)  updated %s\n",
			o.ID, o.Buyer, o.Total.Amount, o.Total.Currency, len(o.Items), o.UpdatedAt)
	}

	fmt.Println("\n=== Message threads ===")
	threads, err := client.ListMessageThreads(ctx, 10)
	if err != nil {
		fmt.Printf("ListMessageThreads failed: %v\n", err)
	}
	for _, t := range threads {
		marker := " "
		if t.NeedsAttention() {
			marker = "!"
		}
		fmt.Printf("%s %s  %s  [%s] %q\n",
			marker, t.ID, t.Interlocutor, t.LastMessage.Author, t.LastMessage.Text)
	}
}
