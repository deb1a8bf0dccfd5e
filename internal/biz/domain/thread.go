package domain

// AuthorRole identifies who wrote the last message in a thread
type AuthorRole string

const (
	RoleBuyer  AuthorRole = "BUYER"
	RoleSeller AuthorRole = "SELLER"
)

// ThreadMessage is the last message carried by a thread listing
type ThreadMessage struct {
	ID        string
	Text      string
	Author    AuthorRole
	CreatedAt string // raw API timestamp
}

// MessageThread represents a buyer conversation.
// The read flag is the only reply-dedup state: a thread marked read is
// never acted on again until the marketplace flips it back to unread.
type MessageThread struct {
	ID           string
	Interlocutor string
	Read         bool
	LastMessage  ThreadMessage
}

// NeedsAttention reports whether the thread is an unread buyer message,
// the precondition for both notification and auto-reply.
func (t *MessageThread) NeedsAttention() bool {
	return !t.Read && t.LastMessage.Author == RoleBuyer
}
