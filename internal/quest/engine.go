package quest

import (
	"context"

	"github.com/mkuznetsova/questbot/internal/domain"
)

// Engine accepts team submissions. Every path is gated on the quest being
// active and resolves correctness before anything is written; submission
// rows are append-only.
type Engine struct {
	state    StateStore
	teams    TeamStore
	tasks    TaskStore
	subs     SubmissionStore
	settings SettingStore
	score    *Aggregator
}

func NewEngine(state StateStore, teams TeamStore, tasks TaskStore, subs SubmissionStore, settings SettingStore, score *Aggregator) *Engine {
	return &Engine{
		state:    state,
		teams:    teams,
		tasks:    tasks,
		subs:     subs,
		settings: settings,
		score:    score,
	}
}

func (e *Engine) requireActive(ctx context.Context) error {
	state, err := e.state.Get(ctx)
	if err != nil {
		return err
	}
	if !state.IsActive {
		return domain.ErrQuestNotActive
	}
	return nil
}

// SubmitCode records a text code attempt against the task with the given
// ordinal. Photo tasks reject text codes.
func (e *Engine) SubmitCode(ctx context.Context, chatID int64, ordinal int, code string) (*domain.Submission, error) {
	if err := e.requireActive(ctx); err != nil {
		return nil, err
	}

	team, err := e.teams.GetByChatID(ctx, chatID)
	if err != nil {
		return nil, err
	}

	task, err := e.tasks.GetByOrdinal(ctx, ordinal)
	if err != nil {
		return nil, err
	}
	if task.Kind == domain.TaskKindPhoto {
		return nil, domain.ErrWrongTaskKind
	}

	return e.subs.Create(ctx, domain.Submission{
		TeamID:    team.ID,
		TaskID:    task.ID,
		Value:     code,
		IsCorrect: IsCorrect(task.Rule, code),
	})
}

// ResolvePhotoTarget validates a photo submission before any media is
// fetched: quest active, known team, known task, photo kind. Splitting the
// check from RecordPhoto keeps a failed download from leaving partial state.
func (e *Engine) ResolvePhotoTarget(ctx context.Context, chatID int64, ordinal int) (*domain.Team, *domain.Task, error) {
	if err := e.requireActive(ctx); err != nil {
		return nil, nil, err
	}

	team, err := e.teams.GetByChatID(ctx, chatID)
	if err != nil {
		return nil, nil, err
	}

	task, err := e.tasks.GetByOrdinal(ctx, ordinal)
	if err != nil {
		return nil, nil, err
	}
	if task.Kind != domain.TaskKindPhoto {
		return nil, nil, domain.ErrWrongTaskKind
	}
	return team, task, nil
}

// RecordPhoto appends stored photo evidence. Review happens out-of-band, so
// the submission is correct unconditionally.
func (e *Engine) RecordPhoto(ctx context.Context, teamID, taskID int64, evidenceRef string) (*domain.Submission, error) {
	return e.subs.Create(ctx, domain.Submission{
		TeamID:    teamID,
		TaskID:    taskID,
		Value:     evidenceRef,
		IsCorrect: true,
	})
}

// SubmitPhoto is ResolvePhotoTarget followed by RecordPhoto, for callers
// that already hold the evidence reference.
func (e *Engine) SubmitPhoto(ctx context.Context, chatID int64, ordinal int, evidenceRef string) (*domain.Submission, error) {
	team, task, err := e.ResolvePhotoTarget(ctx, chatID, ordinal)
	if err != nil {
		return nil, err
	}
	return e.RecordPhoto(ctx, team.ID, task.ID, evidenceRef)
}

// TaskListing is the team-facing /tasks view: progress wrapped in the
// persisted header and footer texts.
type TaskListing struct {
	Header string
	Footer string
	Tasks  []domain.TaskStatus
}

// ListTasks returns the team's current task listing. Gated like submissions.
func (e *Engine) ListTasks(ctx context.Context, chatID int64) (*TaskListing, error) {
	if err := e.requireActive(ctx); err != nil {
		return nil, err
	}

	team, err := e.teams.GetByChatID(ctx, chatID)
	if err != nil {
		return nil, err
	}

	progress, err := e.score.Progress(ctx, team.ID)
	if err != nil {
		return nil, err
	}

	header, err := e.settings.Get(ctx, domain.SettingHeader)
	if err != nil {
		return nil, err
	}
	footer, err := e.settings.Get(ctx, domain.SettingFooter)
	if err != nil {
		return nil, err
	}

	return &TaskListing{
		Header: header,
		Footer: footer,
		Tasks:  progress.Tasks,
	}, nil
}
