package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/sellerops/allegro-sentinel/internal/biz/domain"
)

// Fakes

type fakeMarketplace struct {
	orders    []domain.Order
	threads   []domain.MessageThread
	listErr   error
	replyErr  error
	readErr   error
	replies   []string // thread ids replied to
	readMarks []string // thread ids marked read
}

func (f *fakeMarketplace) Authorize(ctx context.Context, code string) error { return nil }
func (f *fakeMarketplace) Authorized() bool                                 { return true }

func (f *fakeMarketplace) ListRecentOrders(ctx context.Context, limit int) ([]domain.Order, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.orders, nil
}

func (f *fakeMarketplace) ListMessageThreads(ctx context.Context, limit int) ([]domain.MessageThread, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.threads, nil
}

func (f *fakeMarketplace) SendReply(ctx context.Context, threadID, text string) error {
	if f.replyErr != nil {
		return f.replyErr
	}
	f.replies = append(f.replies, threadID)
	return nil
}

func (f *fakeMarketplace) MarkRead(ctx context.Context, threadID, lastSeenMessageID string) error {
	if f.readErr != nil {
		return f.readErr
	}
	f.readMarks = append(f.readMarks, threadID)
	return nil
}

type fakeNotifier struct {
	pushed map[domain.NotificationClass][]*domain.Notification
}

func newFakeNotifier() *fakeNotifier {
	return &fakeNotifier{pushed: make(map[domain.NotificationClass][]*domain.Notification)}
}

func (f *fakeNotifier) Push(ctx context.Context, class domain.NotificationClass, n *domain.Notification) error {
	f.pushed[class] = append(f.pushed[class], n)
	return nil
}

func (f *fakeNotifier) count(class domain.NotificationClass) int {
	return len(f.pushed[class])
}

// Helpers

var testBase = time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)

func orderAt(id string, at time.Time) domain.Order {
	return domain.Order{
		ID:        id,
		Buyer:     "anna",
		Total:     domain.Money{Amount: "10.00", Currency: "PLN"},
		UpdatedAt: at.Format(time.RFC3339),
	}
}

func newOrderMonitor(market *fakeMarketplace, notifier *fakeNotifier, now time.Time) *OrderMonitorUsecase {
	uc := NewOrderMonitorUsecase(
		market, notifier, domain.NewMode(), domain.NewLedger(100),
		DefaultRenderConfig, 30*time.Minute, 20, zerolog.Nop(),
	)
	uc.now = func() time.Time { return now }
	return uc
}

// Tests

func TestOrderMonitor_FirstCycleAbsorbsWithoutNotifying(t *testing.T) {
	market := &fakeMarketplace{orders: []domain.Order{
		orderAt("101", testBase),
		orderAt("102", testBase.Add(5*time.Second)),
	}}
	notifier := newFakeNotifier()
	uc := newOrderMonitor(market, notifier, testBase.Add(time.Minute))

	if err := uc.ProcessCycle(context.Background()); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if notifier.count(domain.ClassOrder) != 0 {
		t.Errorf("Expected zero notifications on absorption cycle, got %d", notifier.count(domain.ClassOrder))
	}
	if uc.LedgerSize() != 2 {
		t.Errorf("Expected 2 absorbed ids, got %d", uc.LedgerSize())
	}
}

func TestOrderMonitor_NewFreshOrderNotifiesOnce(t *testing.T) {
	market := &fakeMarketplace{orders: []domain.Order{
		orderAt("101", testBase),
		orderAt("102", testBase.Add(5*time.Second)),
	}}
	notifier := newFakeNotifier()
	uc := newOrderMonitor(market, notifier, testBase.Add(2*time.Minute))

	// Cycle 1: absorption
	if err := uc.ProcessCycle(context.Background()); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	// Cycle 2: order 103 appears within the freshness window
	market.orders = append(market.orders, orderAt("103", testBase.Add(65*time.Second)))
	if err := uc.ProcessCycle(context.Background()); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if got := notifier.count(domain.ClassOrder); got != 1 {
		t.Fatalf("Expected exactly 1 notification for order 103, got %d", got)
	}
	if title := notifier.pushed[domain.ClassOrder][0].Title; title != "Nowe zamówienie #103" {
		t.Errorf("Unexpected notification title: %s", title)
	}

	// Cycle 3: the API re-returns all three orders
	if err := uc.ProcessCycle(context.Background()); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if got := notifier.count(domain.ClassOrder); got != 1 {
		t.Errorf("Expected no additional notifications on replay, got %d total", got)
	}
}

func TestOrderMonitor_StaleOrderRecordedButSuppressed(t *testing.T) {
	market := &fakeMarketplace{}
	notifier := newFakeNotifier()
	now := testBase.Add(2 * time.Hour)
	uc := newOrderMonitor(market, notifier, now)

	// Absorption on an empty marketplace still initializes the monitor.
	if err := uc.ProcessCycle(context.Background()); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	// A stale order (older than the 30 minute window) appears.
	market.orders = []domain.Order{orderAt("200", testBase)}
	if err := uc.ProcessCycle(context.Background()); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if notifier.count(domain.ClassOrder) != 0 {
		t.Error("Expected stale order to be suppressed")
	}
	if uc.LedgerSize() != 1 {
		t.Error("Expected stale order to be recorded anyway")
	}
}

func TestOrderMonitor_UnparseableTimestampFailsOpen(t *testing.T) {
	market := &fakeMarketplace{}
	notifier := newFakeNotifier()
	uc := newOrderMonitor(market, notifier, testBase)

	if err := uc.ProcessCycle(context.Background()); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	market.orders = []domain.Order{{ID: "300", Buyer: "anna", UpdatedAt: "garbage"}}
	if err := uc.ProcessCycle(context.Background()); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if notifier.count(domain.ClassOrder) != 1 {
		t.Error("Expected order with unparseable timestamp to notify (fail open)")
	}
}

func TestOrderMonitor_FetchErrorAbortsCycle(t *testing.T) {
	market := &fakeMarketplace{listErr: &domain.TransientError{Op: "allegro.listOrders", Status: 502}}
	notifier := newFakeNotifier()
	uc := newOrderMonitor(market, notifier, testBase)

	if err := uc.ProcessCycle(context.Background()); err == nil {
		t.Fatal("Expected error from failing fetch")
	}

	// Recovery: the failed cycle must not count as initialization.
	market.listErr = nil
	market.orders = []domain.Order{orderAt("101", testBase)}
	if err := uc.ProcessCycle(context.Background()); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if notifier.count(domain.ClassOrder) != 0 {
		t.Error("Expected first successful fetch after failures to absorb, not notify")
	}
}

func TestOrderMonitor_InactiveMonitorSkips(t *testing.T) {
	market := &fakeMarketplace{orders: []domain.Order{orderAt("101", testBase)}}
	notifier := newFakeNotifier()
	uc := newOrderMonitor(market, notifier, testBase)
	uc.mode.SetMonitor(false)

	if err := uc.ProcessCycle(context.Background()); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if uc.LedgerSize() != 0 {
		t.Error("Expected inactive monitor to leave the ledger untouched")
	}
}
