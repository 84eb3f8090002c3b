package domain

// Message is a single entry in a session's conversation history.
// Immutable once appended.
type Message struct {
	Role      Role
	Content   string
	CreatedAt Timestamp
}
