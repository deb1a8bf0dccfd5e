package mcp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

// newFakeAPI spins up a daemon API stub and returns a server wired to it.
func newFakeAPI(t *testing.T, handler http.HandlerFunc) *SentinelMCPServer {
	t.Helper()
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)
	return NewServer(ts.URL)
}

func TestHandleStatus(t *testing.T) {
	s := newFakeAPI(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/status" {
			t.Errorf("Unexpected path: %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(Status{
			MonitorActive: true,
			SafetyMode:    "TEST",
			LedgerSize:    42,
		})
	})

	_, out, err := s.handleStatus(context.Background(), nil, StatusInput{})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if out.Error != "" {
		t.Fatalf("Unexpected tool error: %s", out.Error)
	}
	if !out.MonitorActive || out.SafetyMode != "TEST" || out.LedgerSize != 42 {
		t.Errorf("Unexpected status: %+v", out)
	}
}

func TestHandleStatus_DaemonDown(t *testing.T) {
	s := NewServer("http://127.0.0.1:1") // nothing listens here

	_, out, err := s.handleStatus(context.Background(), nil, StatusInput{})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if out.Error == "" {
		t.Error("Expected an error message when the daemon is unreachable")
	}
}

func TestHandleAuthorize(t *testing.T) {
	var gotCode string
	s := newFakeAPI(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/exchange" {
			t.Errorf("Unexpected path: %s", r.URL.Path)
		}
		var req struct {
			Code string `json:"code"`
		}
		json.NewDecoder(r.Body).Decode(&req)
		gotCode = req.Code
		json.NewEncoder(w).Encode(map[string]string{"status": "authorized"})
	})

	_, out, _ := s.handleAuthorize(context.Background(), nil, AuthorizeInput{Code: "xyz"})
	if !out.Success {
		t.Fatalf("Expected success, got error %q", out.Error)
	}
	if gotCode != "xyz" {
		t.Errorf("Unexpected code forwarded: %q", gotCode)
	}
}

func TestHandleAuthorize_MissingCode(t *testing.T) {
	s := NewServer("http://unused")

	_, out, _ := s.handleAuthorize(context.Background(), nil, AuthorizeInput{})
	if out.Success || out.Error == "" {
		t.Errorf("Expected validation failure, got %+v", out)
	}
}

func TestHandleAuthorize_APIError(t *testing.T) {
	s := newFakeAPI(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"error": "code exchange failed"})
	})

	_, out, _ := s.handleAuthorize(context.Background(), nil, AuthorizeInput{Code: "bad"})
	if out.Success {
		t.Fatal("Expected failure")
	}
	if out.Error == "" {
		t.Error("Expected the API error message to surface")
	}
}

func TestHandleSetSafety(t *testing.T) {
	var gotMode string
	s := newFakeAPI(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/control/safety" {
			t.Errorf("Unexpected path: %s", r.URL.Path)
		}
		var req struct {
			Mode string `json:"mode"`
		}
		json.NewDecoder(r.Body).Decode(&req)
		gotMode = req.Mode
		json.NewEncoder(w).Encode(Status{SafetyMode: req.Mode})
	})

	_, out, _ := s.handleSetSafety(context.Background(), nil, SafetyInput{Mode: "LIVE"})
	if gotMode != "LIVE" {
		t.Errorf("Unexpected mode forwarded: %q", gotMode)
	}
	if out.SafetyMode != "LIVE" {
		t.Errorf("Unexpected status echoed back: %+v", out)
	}
}

func TestHandleMargin(t *testing.T) {
	s := newFakeAPI(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(Margin{
			PurchaseNet: 100,
			Goals:       []MarginGoal{{Profit: 20, Price: 150.04}},
		})
	})

	_, out, _ := s.handleMargin(context.Background(), nil, MarginInput{Purchase: 123})
	if out.Error != "" {
		t.Fatalf("Unexpected tool error: %s", out.Error)
	}
	if len(out.Goals) != 1 || out.Goals[0].Profit != 20 {
		t.Errorf("Unexpected goals: %+v", out.Goals)
	}
}

func TestHandleMargin_Validation(t *testing.T) {
	s := NewServer("http://unused")

	_, out, _ := s.handleMargin(context.Background(), nil, MarginInput{Purchase: -5})
	if out.Error == "" {
		t.Error("Expected validation failure for negative purchase price")
	}
}

func TestHandleMarketReport(t *testing.T) {
	s := newFakeAPI(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/insights/report" {
			t.Errorf("Unexpected path: %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(map[string]string{"report": "sprzedaż rośnie"})
	})

	_, out, _ := s.handleMarketReport(context.Background(), nil, ReportInput{Period: "7d"})
	if out.Text != "sprzedaż rośnie" {
		t.Errorf("Unexpected report: %q", out.Text)
	}
}

func TestHandleSafetyNotice_RequiresProduct(t *testing.T) {
	s := NewServer("http://unused")

	_, out, _ := s.handleSafetyNotice(context.Background(), nil, NoticeInput{})
	if out.Error == "" {
		t.Error("Expected validation failure for missing product")
	}
}
