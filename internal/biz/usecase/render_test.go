package usecase

import (
	"strings"
	"testing"

	"github.com/sellerops/allegro-sentinel/internal/biz/domain"
)

func TestOrderNotification(t *testing.T) {
	o := &domain.Order{
		ID:    "12345",
		Buyer: "anna",
		Total: domain.Money{Amount: "159.99", Currency: "PLN"},
		Items: []domain.LineItem{
			{Name: "Lampka biurkowa", Quantity: 1},
			{Name: "Kabel USB-C", Quantity: 3},
		},
	}

	n := DefaultRenderConfig.OrderNotification(o)

	if n.Title != "Nowe zamówienie #12345" {
		t.Errorf("Unexpected title: %s", n.Title)
	}
	if len(n.Fields) != 3 {
		t.Fatalf("Expected 3 fields, got %d", len(n.Fields))
	}
	if n.Fields[1].Value != "159.99 PLN" {
		t.Errorf("Unexpected total field: %s", n.Fields[1].Value)
	}
	if !strings.Contains(n.Fields[2].Value, "3x Kabel USB-C") {
		t.Errorf("Expected quantity prefix in items field, got %q", n.Fields[2].Value)
	}
	if n.FooterText != "Allegro Sentinel" {
		t.Errorf("Unexpected footer: %s", n.FooterText)
	}
}

func TestOrderNotification_NoItems(t *testing.T) {
	n := DefaultRenderConfig.OrderNotification(&domain.Order{ID: "1", Buyer: "b"})
	if n.Fields[2].Value != "-" {
		t.Errorf("Expected placeholder for empty items, got %q", n.Fields[2].Value)
	}
}

func TestPreviewNotification_CarriesCannedReply(t *testing.T) {
	th := &domain.MessageThread{
		Interlocutor: "anna",
		LastMessage:  domain.ThreadMessage{Text: "Kiedy wysyłka?"},
	}

	n := DefaultRenderConfig.PreviewNotification(th)

	if !strings.HasPrefix(n.Title, "[TEST]") {
		t.Errorf("Expected preview title to be marked, got %s", n.Title)
	}
	if n.Fields[1].Value != DefaultRenderConfig.CannedReply {
		t.Errorf("Expected canned reply in preview, got %q", n.Fields[1].Value)
	}
	if n.MentionEveryone {
		t.Error("Expected previews to never mention everyone")
	}
}

func TestTruncate_RuneSafe(t *testing.T) {
	long := strings.Repeat("ż", 1000)
	got := truncate(long, 900)
	if len([]rune(got)) != 901 { // 900 runes plus ellipsis
		t.Errorf("Unexpected truncated length: %d runes", len([]rune(got)))
	}
	if truncate("short", 900) != "short" {
		t.Error("Expected short strings unchanged")
	}
}
