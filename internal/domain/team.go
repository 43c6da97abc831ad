package domain

import "time"

// Team is one competing group chat. The chat ID is the stable external
// identity; teams are deactivated, never deleted.
type Team struct {
	ID        int64
	ChatID    int64
	Name      string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TeamMember is an append-only membership fact. IsInitialMember is fixed at
// creation time: true when the user was observed (or snapshotted) before the
// quest went active.
type TeamMember struct {
	ID              int64
	TeamID          int64
	UserID          int64
	Username        string
	FirstName       string
	LastName        string
	IsInitialMember bool
	CreatedAt       time.Time
}

// DisplayName returns the member's @username, falling back to the real name.
func (m TeamMember) DisplayName() string {
	if m.Username != "" {
		return "@" + m.Username
	}
	if m.LastName != "" {
		return m.FirstName + " " + m.LastName
	}
	return m.FirstName
}

// ChatUser is a chat participant as reported by the transport
// (message sender or chat administrator list entry).
type ChatUser struct {
	ID        int64
	Username  string
	FirstName string
	LastName  string
	IsBot     bool
}

// DisplayName returns the user's @username, falling back to the real name.
func (u ChatUser) DisplayName() string {
	if u.Username != "" {
		return "@" + u.Username
	}
	if u.LastName != "" {
		return u.FirstName + " " + u.LastName
	}
	return u.FirstName
}
