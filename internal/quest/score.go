package quest

import (
	"context"

	"github.com/mkuznetsova/questbot/internal/domain"
)

// Aggregator derives a team's progress view from the append-only submission
// log. Only the most recent attempt per task counts: an incorrect
// resubmission after a correct one un-scores the task, and vice versa.
type Aggregator struct {
	teams TeamStore
	tasks TaskStore
	subs  SubmissionStore
}

func NewAggregator(teams TeamStore, tasks TaskStore, subs SubmissionStore) *Aggregator {
	return &Aggregator{teams: teams, tasks: tasks, subs: subs}
}

// Progress builds the per-task status for one team, ordered by task ordinal,
// with correct-count and point totals over latest-correct tasks.
func (a *Aggregator) Progress(ctx context.Context, teamID int64) (*domain.TeamProgress, error) {
	team, err := a.teams.GetByID(ctx, teamID)
	if err != nil {
		return nil, err
	}

	tasks, err := a.tasks.List(ctx)
	if err != nil {
		return nil, err
	}

	latest, err := a.subs.LatestByTeam(ctx, teamID)
	if err != nil {
		return nil, err
	}

	progress := &domain.TeamProgress{Team: *team}
	for _, task := range tasks {
		status := domain.TaskStatus{Task: task}
		if sub, ok := latest[task.ID]; ok {
			sub := sub
			status.Latest = &sub
		}
		if status.Done() {
			progress.CorrectCount++
			progress.TotalPoints += task.Cost
			if status.Latest.CreatedAt.After(progress.LastCorrectAt) {
				progress.LastCorrectAt = status.Latest.CreatedAt
			}
		}
		progress.Tasks = append(progress.Tasks, status)
	}
	return progress, nil
}
