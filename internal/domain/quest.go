package domain

import "time"

// QuestState is the single global lifecycle row. There is exactly one logical
// instance; transitions go through the lifecycle state machine only.
type QuestState struct {
	ID        int64
	IsActive  bool
	StartedAt *time.Time
	EndedAt   *time.Time
	UpdatedAt time.Time
}

// Setting keys consumed verbatim by the task listing renderer.
const (
	SettingHeader = "header"
	SettingFooter = "footer"
)
