// Package allegro is a thin client for the Allegro seller REST API.
// It holds a single OAuth2 access token in memory: obtained once via
// the authorization-code exchange, never refreshed, never persisted.
package allegro

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/sellerops/allegro-sentinel/internal/biz/domain"
)

const (
	defaultAuthBaseURL = "https://allegro.pl"
	defaultAPIBaseURL  = "https://api.allegro.pl"

	// Allegro rejects requests without its vendored media type.
	acceptHeader = "application/vnd.allegro.public.v1+json"
)

// Config carries the OAuth application settings
type Config struct {
	ClientID     string
	ClientSecret string
	RedirectURI  string
	AuthBaseURL  string // override for tests
	APIBaseURL   string // override for tests
}

// Client is the Allegro API client
type Client struct {
	cfg  Config
	http *http.Client

	mu    sync.RWMutex
	token string
}

// NewClient creates a new Allegro client. The HTTP timeout is the only
// bound on an otherwise-unbounded call.
func NewClient(cfg Config) *Client {
	if cfg.AuthBaseURL == "" {
		cfg.AuthBaseURL = defaultAuthBaseURL
	}
	if cfg.APIBaseURL == "" {
		cfg.APIBaseURL = defaultAPIBaseURL
	}
	return &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: 15 * time.Second},
	}
}

// Authorized reports whether an access token is held.
func (c *Client) Authorized() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token != ""
}

func (c *Client) bearer() (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token, c.token != ""
}

// Authorize exchanges an authorization code for an access token.
func (c *Client) Authorize(ctx context.Context, code string) error {
	form := url.Values{}
	form.Set("grant_type", "authorization_code")
	form.Set("code", code)
	form.Set("redirect_uri", c.cfg.RedirectURI)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.cfg.AuthBaseURL+"/auth/oauth/token", bytes.NewBufferString(form.Encode()))
	if err != nil {
		return &domain.AuthError{Op: "allegro.authorize", Err: err}
	}
	req.SetBasicAuth(c.cfg.ClientID, c.cfg.ClientSecret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.http.Do(req)
	if err != nil {
		return &domain.AuthError{Op: "allegro.authorize", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &domain.AuthError{
			Op:  "allegro.authorize",
			Err: fmt.Errorf("status %d: %s", resp.StatusCode, body),
		}
	}

	var result struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return &domain.AuthError{Op: "allegro.authorize", Err: fmt.Errorf("decode: %w", err)}
	}
	if result.AccessToken == "" {
		return &domain.AuthError{Op: "allegro.authorize", Err: fmt.Errorf("empty access_token")}
	}

	c.mu.Lock()
	c.token = result.AccessToken
	c.mu.Unlock()
	return nil
}

// get performs an authenticated GET and decodes the body into out.
func (c *Client) get(ctx context.Context, op, path string, out interface{}) error {
	token, ok := c.bearer()
	if !ok {
		return &domain.AuthError{Op: op}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.APIBaseURL+path, nil)
	if err != nil {
		return &domain.TransientError{Op: op, Err: err}
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", acceptHeader)

	resp, err := c.http.Do(req)
	if err != nil {
		return &domain.TransientError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return &domain.AuthError{Op: op, Err: fmt.Errorf("status %d", resp.StatusCode)}
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return &domain.TransientError{Op: op, Status: resp.StatusCode}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &domain.DataShapeError{Op: op, Err: err}
	}
	return nil
}

type checkoutFormsResponse struct {
	CheckoutForms []struct {
		ID        string `json:"id"`
		UpdatedAt string `json:"updatedAt"`
		Buyer     struct {
			Login string `json:"login"`
		} `json:"buyer"`
		Summary struct {
			TotalToPay struct {
				Amount   string `json:"amount"`
				Currency string `json:"currency"`
			} `json:"totalToPay"`
		} `json:"summary"`
		LineItems []struct {
			Quantity int `json:"quantity"`
			Offer    struct {
				Name string `json:"name"`
			} `json:"offer"`
		} `json:"lineItems"`
	} `json:"checkoutForms"`
}

// ListRecentOrders fetches the latest checkout forms, sorted ascending
// by update time so callers process oldest first. Orders with
// unparseable timestamps sort last.
func (c *Client) ListRecentOrders(ctx context.Context, limit int) ([]domain.Order, error) {
	if limit <= 0 {
		limit = 20
	}

	var payload checkoutFormsResponse
	path := "/order/checkout-forms?limit=" + strconv.Itoa(limit)
	if err := c.get(ctx, "allegro.listOrders", path, &payload); err != nil {
		return nil, err
	}

	orders := make([]domain.Order, 0, len(payload.CheckoutForms))
	for _, f := range payload.CheckoutForms {
		order := domain.Order{
			ID:    f.ID,
			Buyer: f.Buyer.Login,
			Total: domain.Money{
				Amount:   f.Summary.TotalToPay.Amount,
				Currency: f.Summary.TotalToPay.Currency,
			},
			UpdatedAt: f.UpdatedAt,
		}
		for _, li := range f.LineItems {
			order.Items = append(order.Items, domain.LineItem{
				Name:     li.Offer.Name,
				Quantity: li.Quantity,
			})
		}
		orders = append(orders, order)
	}

	sort.SliceStable(orders, func(i, j int) bool {
		ti, erri := domain.ParseTimestamp(orders[i].UpdatedAt)
		tj, errj := domain.ParseTimestamp(orders[j].UpdatedAt)
		if erri != nil {
			return false
		}
		if errj != nil {
			return true
		}
		return ti.Before(tj)
	})

	return orders, nil
}

type threadsResponse struct {
	Threads []struct {
		ID           string `json:"id"`
		Read         bool   `json:"read"`
		Interlocutor struct {
			Login string `json:"login"`
		} `json:"interlocutor"`
		LastMessage struct {
			ID        string `json:"id"`
			CreatedAt string `json:"createdAt"`
			Text      string `json:"text"`
			Author    struct {
				Role string `json:"role"`
			} `json:"author"`
		} `json:"lastMessage"`
	} `json:"threads"`
}

// ListMessageThreads fetches the latest message threads.
func (c *Client) ListMessageThreads(ctx context.Context, limit int) ([]domain.MessageThread, error) {
	if limit <= 0 {
		limit = 20
	}

	var payload threadsResponse
	path := "/messaging/threads?limit=" + strconv.Itoa(limit)
	if err := c.get(ctx, "allegro.listThreads", path, &payload); err != nil {
		return nil, err
	}

	threads := make([]domain.MessageThread, 0, len(payload.Threads))
	for _, t := range payload.Threads {
		role := domain.RoleSeller
		if t.LastMessage.Author.Role == string(domain.RoleBuyer) {
			role = domain.RoleBuyer
		}
		threads = append(threads, domain.MessageThread{
			ID:           t.ID,
			Interlocutor: t.Interlocutor.Login,
			Read:         t.Read,
			LastMessage: domain.ThreadMessage{
				ID:        t.LastMessage.ID,
				Text:      t.LastMessage.Text,
				Author:    role,
				CreatedAt: t.LastMessage.CreatedAt,
			},
		})
	}
	return threads, nil
}

// SendReply posts a text message into a thread. Success is HTTP 201.
func (c *Client) SendReply(ctx context.Context, threadID, text string) error {
	token, ok := c.bearer()
	if !ok {
		return &domain.AuthError{Op: "allegro.sendReply"}
	}

	body, _ := json.Marshal(map[string]string{"text": text})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.cfg.APIBaseURL+"/messaging/threads/"+threadID+"/messages", bytes.NewReader(body))
	if err != nil {
		return &domain.WriteError{Op: "allegro.sendReply", Err: err}
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", acceptHeader)
	req.Header.Set("Content-Type", acceptHeader)

	resp, err := c.http.Do(req)
	if err != nil {
		return &domain.WriteError{Op: "allegro.sendReply", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		return &domain.WriteError{Op: "allegro.sendReply", Status: resp.StatusCode}
	}
	return nil
}

// MarkRead marks a thread read up to lastSeenMessageID. Best-effort:
// the response body is ignored, non-2xx becomes a WriteError the
// caller may choose to log and drop.
func (c *Client) MarkRead(ctx context.Context, threadID, lastSeenMessageID string) error {
	token, ok := c.bearer()
	if !ok {
		return &domain.AuthError{Op: "allegro.markRead"}
	}

	body, _ := json.Marshal(map[string]string{"lastSeenMessageId": lastSeenMessageID})
	req, err := http.NewRequestWithContext(ctx, http.MethodPut,
		c.cfg.APIBaseURL+"/messaging/threads/"+threadID+"/read", bytes.NewReader(body))
	if err != nil {
		return &domain.WriteError{Op: "allegro.markRead", Err: err}
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", acceptHeader)
	req.Header.Set("Content-Type", acceptHeader)

	resp, err := c.http.Do(req)
	if err != nil {
		return &domain.WriteError{Op: "allegro.markRead", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &domain.WriteError{Op: "allegro.markRead", Status: resp.StatusCode}
	}
	return nil
}
