package quest

import (
	"context"
	"log/slog"
	"time"

	"github.com/mkuznetsova/questbot/internal/domain"
)

// Lifecycle is the state machine over the single global quest state:
// Inactive → Active → Ended → Active → … Submissions are only accepted
// while Active.
type Lifecycle struct {
	state   StateStore
	teams   TeamStore
	roster  *Roster
	confirm string
}

func NewLifecycle(state StateStore, teams TeamStore, roster *Roster, confirmToken string) *Lifecycle {
	return &Lifecycle{
		state:   state,
		teams:   teams,
		roster:  roster,
		confirm: confirmToken,
	}
}

// Start activates the quest and snapshots every team's current chat admins
// as initial members. Requires the explicit confirmation token; a concurrent
// start loses the conditional update and gets ErrQuestAlreadyActive with no
// snapshot run.
func (l *Lifecycle) Start(ctx context.Context, confirm string) error {
	if confirm != l.confirm {
		return domain.ErrConfirmationRequired
	}

	started, err := l.state.Activate(ctx, time.Now())
	if err != nil {
		return err
	}
	if !started {
		return domain.ErrQuestAlreadyActive
	}

	l.snapshotRosters(ctx)
	return nil
}

// Stop deactivates the quest. Requires the confirmation token;
// ErrQuestNotStarted when the quest is not running.
func (l *Lifecycle) Stop(ctx context.Context, confirm string) error {
	if confirm != l.confirm {
		return domain.ErrConfirmationRequired
	}

	stopped, err := l.state.Deactivate(ctx, time.Now())
	if err != nil {
		return err
	}
	if !stopped {
		return domain.ErrQuestNotStarted
	}
	return nil
}

// IsActive reports the current gate for submission handling.
func (l *Lifecycle) IsActive(ctx context.Context) (bool, error) {
	state, err := l.state.Get(ctx)
	if err != nil {
		return false, err
	}
	return state.IsActive, nil
}

// snapshotRosters records who counts as present at kickoff. The chat
// platform cannot enumerate full membership, so the admin list stands in for
// it. Per-team fetch failures are logged and skipped: a partial snapshot is
// better than a failed start, and pre-quest activity has already folded most
// members in.
func (l *Lifecycle) snapshotRosters(ctx context.Context) {
	teams, err := l.teams.List(ctx)
	if err != nil {
		slog.Error("roster snapshot: list teams", "error", err)
		return
	}

	for _, team := range teams {
		added, err := l.roster.ImportInitialMembers(ctx, &team)
		if err != nil {
			slog.Error("roster snapshot", "error", err, "team", team.Name)
			continue
		}
		slog.Info("roster snapshot", "team", team.Name, "added", added)
	}
}
