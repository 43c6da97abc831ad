package domain

// Notification is a delivery intent computed by the core engine. The engine
// decides recipient and content; a transport adapter delivers it best-effort,
// independently of the primary effect.
type Notification struct {
	ChatID   int64
	Text     string
	Markdown bool
}
