// Package mcp exposes the running sentinel daemon as MCP tools over
// stdio, proxying every call to the daemon's HTTP API.
package mcp

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client is the HTTP client for communicating with the sentinel API
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new sentinel API client
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 120 * time.Second, // insights calls are slow
		},
	}
}

// Status mirrors the daemon's /status payload.
type Status struct {
	MonitorActive   bool   `json:"monitor_active"`
	ResponderActive bool   `json:"responder_active"`
	SafetyMode      string `json:"safety_mode"`
	Authorized      bool   `json:"authorized"`
	LedgerSize      int    `json:"ledger_size"`
}

// MarginGoal is one target-profit row.
type MarginGoal struct {
	Profit float64 `json:"profit"`
	Price  float64 `json:"price"`
}

// Margin mirrors the daemon's /pricing/margin payload.
type Margin struct {
	PurchaseNet float64      `json:"purchase_net"`
	Profit      *float64     `json:"profit,omitempty"`
	Goals       []MarginGoal `json:"goals,omitempty"`
}

// GetStatus fetches the daemon status
func (c *Client) GetStatus() (*Status, error) {
	var st Status
	if err := c.get("/status", &st); err != nil {
		return nil, err
	}
	return &st, nil
}

// AuthExchange trades an OAuth code for a marketplace token
func (c *Client) AuthExchange(code string) error {
	return c.post("/auth/exchange", map[string]string{"code": code}, nil)
}

// SetMonitor toggles the order monitor and returns the new status
func (c *Client) SetMonitor(active bool) (*Status, error) {
	var st Status
	if err := c.post("/control/monitor", map[string]bool{"active": active}, &st); err != nil {
		return nil, err
	}
	return &st, nil
}

// SetResponder toggles the auto-responder and returns the new status
func (c *Client) SetResponder(active bool) (*Status, error) {
	var st Status
	if err := c.post("/control/responder", map[string]bool{"active": active}, &st); err != nil {
		return nil, err
	}
	return &st, nil
}

// SetSafety switches the safety mode and returns the new status
func (c *Client) SetSafety(mode string) (*Status, error) {
	var st Status
	if err := c.post("/control/safety", map[string]string{"mode": mode}, &st); err != nil {
		return nil, err
	}
	return &st, nil
}

// GetMargin computes margin data for a purchase price
func (c *Client) GetMargin(purchase float64, sale *float64) (*Margin, error) {
	body := map[string]interface{}{"purchase": purchase}
	if sale != nil {
		body["sale"] = *sale
	}
	var m Margin
	if err := c.post("/pricing/margin", body, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// MarketReport asks the daemon for a trend report
func (c *Client) MarketReport(period, category string) (string, error) {
	var result struct {
		Report string `json:"report"`
	}
	body := map[string]string{"period": period, "category": category}
	if err := c.post("/insights/report", body, &result); err != nil {
		return "", err
	}
	return result.Report, nil
}

// SafetyNotice asks the daemon for a product-safety notice draft
func (c *Client) SafetyNotice(product string) (string, error) {
	var result struct {
		Notice string `json:"notice"`
	}
	body := map[string]string{"product": product}
	if err := c.post("/insights/safety-notice", body, &result); err != nil {
		return "", err
	}
	return result.Notice, nil
}

func (c *Client) get(path string, result interface{}) error {
	resp, err := c.httpClient.Get(c.baseURL + path)
	if err != nil {
		return fmt.Errorf("GET %s: %w", path, err)
	}
	defer resp.Body.Close()
	return c.decode(path, resp, result)
}

func (c *Client) post(path string, body, result interface{}) error {
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	resp, err := c.httpClient.Post(c.baseURL+path, "application/json", bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("POST %s: %w", path, err)
	}
	defer resp.Body.Close()
	return c.decode(path, resp, result)
}

func (c *Client) decode(path string, resp *http.Response, result interface{}) error {
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var apiErr struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(raw, &apiErr) == nil && apiErr.Error != "" {
			return fmt.Errorf("%s: %s (status %d)", path, apiErr.Error, resp.StatusCode)
		}
		return fmt.Errorf("%s: status %d", path, resp.StatusCode)
	}

	if result == nil {
		return nil
	}
	if err := json.Unmarshal(raw, result); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
