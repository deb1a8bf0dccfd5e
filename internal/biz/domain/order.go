package domain

// Money represents a monetary amount with its currency
type Money struct {
	Amount   string
	Currency string
}

// LineItem represents a single purchased offer within an order
type LineItem struct {
	Name     string
	Quantity int
}

// Order represents a marketplace checkout form.
// Immutable once fetched; the monitor never re-reads a prior order.
type Order struct {
	ID        string
	Buyer     string // buyer login
	Total     Money
	Items     []LineItem
	UpdatedAt string // raw API timestamp, parsed lazily by the freshness filter
}
