package domain

// NotificationClass selects the target channel for a notification
type NotificationClass string

const (
	ClassOrder   NotificationClass = "orders"
	ClassMessage NotificationClass = "messages"
)

// Field is a single name/value pair inside a notification
type Field struct {
	Name  string
	Value string
}

// Notification is the structured payload pushed to the sink. Rendering
// to the sink's wire format is the sink's problem.
type Notification struct {
	Title           string
	Fields          []Field
	FooterText      string
	MentionEveryone bool
	Color           int // optional accent, sink default when zero
}
