package usecase

import (
	"fmt"
	"strings"

	"github.com/sellerops/allegro-sentinel/internal/biz/domain"
)

// RenderConfig contains the notification texts. Loaded from the
// templates YAML by conf and converted here.
type RenderConfig struct {
	OrderTitle        string // printf format, order id
	MessageTitle      string // printf format, interlocutor login
	PreviewTitle      string // printf format, interlocutor login
	FooterText        string
	OrderMentionAll   bool
	MessageMentionAll bool
	CannedReply       string
}

// previewAccent marks TEST-mode reply previews apart from real
// message notifications in the same channel.
const previewAccent = 0xff9900

// DefaultRenderConfig is used when no templates file is present.
var DefaultRenderConfig = RenderConfig{
	OrderTitle:   "Nowe zamówienie #%s",
	MessageTitle: "Nowa wiadomość od %s",
	PreviewTitle: "[TEST] Odpowiedź dla %s",
	FooterText:   "Allegro Sentinel",
	CannedReply:  "Dziękujemy za wiadomość! Odpowiemy najszybciej jak to możliwe.",
}

// OrderNotification renders an order embed payload.
func (c RenderConfig) OrderNotification(o *domain.Order) *domain.Notification {
	items := make([]string, 0, len(o.Items))
	for _, li := range o.Items {
		items = append(items, fmt.Sprintf("%dx %s", li.Quantity, li.Name))
	}
	itemsValue := strings.Join(items, "\n")
	if itemsValue == "" {
		itemsValue = "-"
	}

	return &domain.Notification{
		Title: fmt.Sprintf(c.OrderTitle, o.ID),
		Fields: []domain.Field{
			{Name: "Kupujący", Value: o.Buyer},
			{Name: "Kwota", Value: o.Total.Amount + " " + o.Total.Currency},
			{Name: "Przedmioty", Value: itemsValue},
		},
		FooterText:      c.FooterText,
		MentionEveryone: c.OrderMentionAll,
	}
}

// MessageNotification renders a new-buyer-message embed payload.
func (c RenderConfig) MessageNotification(t *domain.MessageThread) *domain.Notification {
	return &domain.Notification{
		Title: fmt.Sprintf(c.MessageTitle, t.Interlocutor),
		Fields: []domain.Field{
			{Name: "Treść", Value: truncate(t.LastMessage.Text, 900)},
		},
		FooterText:      c.FooterText,
		MentionEveryone: c.MessageMentionAll,
	}
}

// PreviewNotification renders the TEST-mode "would reply" embed.
func (c RenderConfig) PreviewNotification(t *domain.MessageThread) *domain.Notification {
	return &domain.Notification{
		Title: fmt.Sprintf(c.PreviewTitle, t.Interlocutor),
		Fields: []domain.Field{
			{Name: "Wiadomość kupującego", Value: truncate(t.LastMessage.Text, 900)},
			{Name: "Planowana odpowiedź", Value: c.CannedReply},
		},
		FooterText: c.FooterText,
		Color:      previewAccent,
	}
}

// truncate keeps embed field values inside Discord's limits.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "…"
}
