// Command sentinel-mcp exposes a running sentinel daemon as MCP tools
// over stdio. Point SENTINEL_API_URL at the daemon's HTTP API.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/sellerops/allegro-sentinel/internal/mcp"
)

const defaultAPIURL = "http://127.0.0.1:8080"

func main() {
	apiURL := os.Getenv("SENTINEL_API_URL")
	if apiURL == "" {
		apiURL = defaultAPIURL
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	server := mcp.NewServer(apiURL)
	if err := server.Run(ctx, &sdkmcp.StdioTransport{}); err != nil && ctx.Err() == nil {
		fmt.Fprintf(os.Stderr, "mcp server error: %v\n", err)
		os.Exit(1)
	}
}
