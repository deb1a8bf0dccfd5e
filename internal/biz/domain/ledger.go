package domain

// Ledger is a bounded set of previously-seen identifiers used to
// suppress repeat notifications. Eviction is deterministic: once the
// ledger exceeds capacity, the oldest entry by insertion order is
// dropped. Not safe for concurrent use; callers serialize access.
type Ledger struct {
	capacity int
	order    []string
	seen     map[string]struct{}
}

// DefaultLedgerCapacity bounds the ledger to the last 100 identifiers.
const DefaultLedgerCapacity = 100

// NewLedger creates an empty ledger. A non-positive capacity falls back
// to DefaultLedgerCapacity.
func NewLedger(capacity int) *Ledger {
	if capacity <= 0 {
		capacity = DefaultLedgerCapacity
	}
	return &Ledger{
		capacity: capacity,
		seen:     make(map[string]struct{}),
	}
}

// Seen reports whether id was recorded and not yet evicted.
func (l *Ledger) Seen(id string) bool {
	_, ok := l.seen[id]
	return ok
}

// Record inserts id, evicting the oldest entry if the ledger is full.
// Recording an already-present id is a no-op.
func (l *Ledger) Record(id string) {
	if l.Seen(id) {
		return
	}
	if len(l.order) >= l.capacity {
		oldest := l.order[0]
		l.order = l.order[1:]
		delete(l.seen, oldest)
	}
	l.order = append(l.order, id)
	l.seen[id] = struct{}{}
}

// Absorb bulk-records all ids. Used once on the first successful fetch
// after startup so pre-existing items never replay as notifications.
func (l *Ledger) Absorb(ids []string) {
	for _, id := range ids {
		l.Record(id)
	}
}

// Empty reports whether nothing has been recorded yet.
func (l *Ledger) Empty() bool {
	return len(l.order) == 0
}

// Len returns the number of live entries.
func (l *Ledger) Len() int {
	return len(l.order)
}
