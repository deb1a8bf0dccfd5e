package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// SentinelMCPServer provides MCP tools for operating the sentinel daemon
type SentinelMCPServer struct {
	server *mcp.Server
	client *Client
}

// NewServer creates a new sentinel MCP server talking to the daemon at baseURL
func NewServer(baseURL string) *SentinelMCPServer {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "allegro-sentinel",
		Version: "v1.0.0",
	}, nil)

	s := &SentinelMCPServer{
		server: server,
		client: NewClient(baseURL),
	}
	s.registerTools()
	return s
}

// Run serves MCP over the given transport until the context ends
func (s *SentinelMCPServer) Run(ctx context.Context, transport mcp.Transport) error {
	return s.server.Run(ctx, transport)
}

func (s *SentinelMCPServer) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "sentinel_status",
		Description: "Get the sentinel daemon status: monitor and responder switches, safety mode, marketplace authorization and dedup ledger size.",
	}, s.handleStatus)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "sentinel_authorize",
		Description: "Exchange an Allegro OAuth authorization code for an access token. Required after every daemon restart before polling works.",
	}, s.handleAuthorize)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "sentinel_set_monitor",
		Description: "Turn the order monitor loop on or off.",
	}, s.handleSetMonitor)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "sentinel_set_responder",
		Description: "Turn the message auto-responder on or off. Replies are only sent when the safety mode is also LIVE.",
	}, s.handleSetResponder)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "sentinel_set_safety_mode",
		Description: "Switch between TEST (reply previews only, nothing written to the marketplace) and LIVE (real replies). Use LIVE with care.",
	}, s.handleSetSafety)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "sentinel_margin",
		Description: "Compute net margin for a gross purchase price (PLN, 23% VAT, 3% flat tax). With a sale price returns the profit, without it returns target prices for standard profit goals.",
	}, s.handleMargin)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "sentinel_market_report",
		Description: "Generate a market trend report for a sales category over a period such as 7d or 30d.",
	}, s.handleMarketReport)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "sentinel_safety_notice",
		Description: "Draft a GPSR product-safety notice for a product listing.",
	}, s.handleSafetyNotice)
}

// StatusInput is empty - no input needed
type StatusInput struct{}

// StatusOutput reports the daemon status
type StatusOutput struct {
	MonitorActive   bool   `json:"monitor_active"`
	ResponderActive bool   `json:"responder_active"`
	SafetyMode      string `json:"safety_mode"`
	Authorized      bool   `json:"authorized"`
	LedgerSize      int    `json:"ledger_size"`
	Error           string `json:"error,omitempty"`
}

func statusOutput(st *Status, err error) StatusOutput {
	if err != nil {
		return StatusOutput{Error: err.Error()}
	}
	return StatusOutput{
		MonitorActive:   st.MonitorActive,
		ResponderActive: st.ResponderActive,
		SafetyMode:      st.SafetyMode,
		Authorized:      st.Authorized,
		LedgerSize:      st.LedgerSize,
	}
}

func (s *SentinelMCPServer) handleStatus(ctx context.Context, req *mcp.CallToolRequest, input StatusInput) (*mcp.CallToolResult, StatusOutput, error) {
	st, err := s.client.GetStatus()
	return nil, statusOutput(st, err), nil
}

// AuthorizeInput carries the OAuth authorization code
type AuthorizeInput struct {
	Code string `json:"code" jsonschema:"The authorization code from the Allegro OAuth redirect"`
}

// AuthorizeOutput reports the exchange result
type AuthorizeOutput struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

func (s *SentinelMCPServer) handleAuthorize(ctx context.Context, req *mcp.CallToolRequest, input AuthorizeInput) (*mcp.CallToolResult, AuthorizeOutput, error) {
	if input.Code == "" {
		return nil, AuthorizeOutput{Success: false, Error: "code is required"}, nil
	}
	if err := s.client.AuthExchange(input.Code); err != nil {
		return nil, AuthorizeOutput{Success: false, Error: err.Error()}, nil
	}
	return nil, AuthorizeOutput{Success: true}, nil
}

// SwitchInput toggles a runtime switch
type SwitchInput struct {
	Active bool `json:"active" jsonschema:"true to enable, false to disable"`
}

func (s *SentinelMCPServer) handleSetMonitor(ctx context.Context, req *mcp.CallToolRequest, input SwitchInput) (*mcp.CallToolResult, StatusOutput, error) {
	st, err := s.client.SetMonitor(input.Active)
	return nil, statusOutput(st, err), nil
}

func (s *SentinelMCPServer) handleSetResponder(ctx context.Context, req *mcp.CallToolRequest, input SwitchInput) (*mcp.CallToolResult, StatusOutput, error) {
	st, err := s.client.SetResponder(input.Active)
	return nil, statusOutput(st, err), nil
}

// SafetyInput selects the reply safety mode
type SafetyInput struct {
	Mode string `json:"mode" jsonschema:"TEST or LIVE"`
}

func (s *SentinelMCPServer) handleSetSafety(ctx context.Context, req *mcp.CallToolRequest, input SafetyInput) (*mcp.CallToolResult, StatusOutput, error) {
	st, err := s.client.SetSafety(input.Mode)
	return nil, statusOutput(st, err), nil
}

// MarginInput carries gross prices in PLN
type MarginInput struct {
	Purchase float64  `json:"purchase" jsonschema:"Gross purchase price in PLN"`
	Sale     *float64 `json:"sale,omitempty" jsonschema:"Gross sale price in PLN, omit to get target prices for standard profit goals"`
}

// MarginOutput is the margin breakdown
type MarginOutput struct {
	PurchaseNet float64      `json:"purchase_net,omitempty"`
	Profit      *float64     `json:"profit,omitempty"`
	Goals       []MarginGoal `json:"goals,omitempty"`
	Error       string       `json:"error,omitempty"`
}

func (s *SentinelMCPServer) handleMargin(ctx context.Context, req *mcp.CallToolRequest, input MarginInput) (*mcp.CallToolResult, MarginOutput, error) {
	if input.Purchase <= 0 {
		return nil, MarginOutput{Error: "purchase must be positive"}, nil
	}
	m, err := s.client.GetMargin(input.Purchase, input.Sale)
	if err != nil {
		return nil, MarginOutput{Error: err.Error()}, nil
	}
	return nil, MarginOutput{PurchaseNet: m.PurchaseNet, Profit: m.Profit, Goals: m.Goals}, nil
}

// ReportInput selects the report scope
type ReportInput struct {
	Period   string `json:"period,omitempty" jsonschema:"Reporting period such as 7d or 30d (default 7d)"`
	Category string `json:"category,omitempty" jsonschema:"Sales category, empty for a general top-sellers report"`
}

// TextOutput carries generated text
type TextOutput struct {
	Text  string `json:"text,omitempty"`
	Error string `json:"error,omitempty"`
}

func (s *SentinelMCPServer) handleMarketReport(ctx context.Context, req *mcp.CallToolRequest, input ReportInput) (*mcp.CallToolResult, TextOutput, error) {
	report, err := s.client.MarketReport(input.Period, input.Category)
	if err != nil {
		return nil, TextOutput{Error: err.Error()}, nil
	}
	return nil, TextOutput{Text: report}, nil
}

// NoticeInput names the product
type NoticeInput struct {
	Product string `json:"product" jsonschema:"The product to draft a safety notice for"`
}

func (s *SentinelMCPServer) handleSafetyNotice(ctx context.Context, req *mcp.CallToolRequest, input NoticeInput) (*mcp.CallToolResult, TextOutput, error) {
	if input.Product == "" {
		return nil, TextOutput{Error: "product is required"}, nil
	}
	notice, err := s.client.SafetyNotice(input.Product)
	if err != nil {
		return nil, TextOutput{Error: err.Error()}, nil
	}
	return nil, TextOutput{Text: notice}, nil
}
