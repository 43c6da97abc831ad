package domain

import "time"

// Submission is one attempt against one task by one team. Rows are an
// append-only audit log: current status for a (team, task) pair is the most
// recent row, never a mutated field.
type Submission struct {
	ID        int64
	TeamID    int64
	TaskID    int64
	Value     string
	IsCorrect bool
	CreatedAt time.Time
}

// TaskStatus is the derived per-task view for one team: the task itself and
// its latest submission, if any.
type TaskStatus struct {
	Task   Task
	Latest *Submission
}

// Done reports whether the latest attempt for this task is correct.
func (s TaskStatus) Done() bool {
	return s.Latest != nil && s.Latest.IsCorrect
}

// TeamProgress is the aggregated score view for one team, tasks ordered
// by ordinal.
type TeamProgress struct {
	Team         Team
	Tasks        []TaskStatus
	CorrectCount int
	TotalPoints  int
	// LastCorrectAt is the newest correct-submission timestamp across all
	// tasks; zero when the team has no correct submissions.
	LastCorrectAt time.Time
}
