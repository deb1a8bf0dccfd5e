// Package discordhook posts notifications to Discord channel webhooks.
package discordhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/sellerops/allegro-sentinel/internal/biz/domain"
)

// Embed colors, matching the channel conventions of the seller bot.
const (
	ColorOrder   = 0x2ecc71 // green
	ColorMessage = 0x3498db // blue
)

type embedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline,omitempty"`
}

type embedFooter struct {
	Text string `json:"text"`
}

type embed struct {
	Title  string       `json:"title"`
	Color  int          `json:"color,omitempty"`
	Fields []embedField `json:"fields,omitempty"`
	Footer *embedFooter `json:"footer,omitempty"`
}

type webhookPayload struct {
	Content string  `json:"content,omitempty"`
	Embeds  []embed `json:"embeds"`
}

// Client posts embeds to a single webhook URL. One client per channel.
type Client struct {
	webhookURL string
	color      int
	http       *http.Client
}

// NewClient creates a webhook client for one channel.
func NewClient(webhookURL string, color int) *Client {
	return &Client{
		webhookURL: webhookURL,
		color:      color,
		http:       &http.Client{Timeout: 10 * time.Second},
	}
}

// Push renders a notification as a Discord embed and posts it.
// A notification may carry its own accent color, otherwise the
// channel default applies.
func (c *Client) Push(ctx context.Context, n *domain.Notification) error {
	color := c.color
	if n.Color != 0 {
		color = n.Color
	}
	e := embed{
		Title: n.Title,
		Color: color,
	}
	for _, f := range n.Fields {
		e.Fields = append(e.Fields, embedField{Name: f.Name, Value: f.Value})
	}
	if n.FooterText != "" {
		e.Footer = &embedFooter{Text: n.FooterText}
	}

	payload := webhookPayload{Embeds: []embed{e}}
	if n.MentionEveryone {
		payload.Content = "@everyone"
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal webhook payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.webhookURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("post webhook: %w", err)
	}
	defer resp.Body.Close()

	// Discord answers 204 on success
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("webhook status %d", resp.StatusCode)
	}
	return nil
}
