package domain

import "time"

// TaskKind selects how a task is validated.
type TaskKind string

const (
	// TaskKindRegular is validated against the task rule.
	TaskKindRegular TaskKind = "regular"
	// TaskKindAgent is validated against the task rule; the code is handed
	// out by a live agent rather than hidden on the route.
	TaskKindAgent TaskKind = "agent"
	// TaskKindPhoto accepts photo evidence only; text rules never apply and
	// accepted media is recorded correct for later human review.
	TaskKindPhoto TaskKind = "photo"
)

// Task is one admin-curated quest assignment. Ordinal is unique and defines
// both display order and the number used in /code submissions.
type Task struct {
	ID          int64
	Ordinal     int
	Title       string
	Description string
	Rule        string
	Cost        int
	Kind        TaskKind
	CreatedAt   time.Time
}
