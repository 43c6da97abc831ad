package quest

import (
	"context"
	"time"

	"github.com/mkuznetsova/questbot/internal/domain"
)

// Storage contracts consumed by the engine. Implemented by the pgx
// repositories in internal/repository; tests substitute in-memory fakes.

type TeamStore interface {
	GetByChatID(ctx context.Context, chatID int64) (*domain.Team, error)
	GetByID(ctx context.Context, id int64) (*domain.Team, error)
	List(ctx context.Context) ([]domain.Team, error)
	Create(ctx context.Context, chatID int64, name string) (*domain.Team, error)
	Rename(ctx context.Context, id int64, name string) error
	Deactivate(ctx context.Context, id int64) error
}

type MemberStore interface {
	// Create returns false when the (team, user) row already exists;
	// duplicates are never overwritten.
	Create(ctx context.Context, m domain.TeamMember) (bool, error)
	Get(ctx context.Context, teamID, userID int64) (*domain.TeamMember, error)
	ListByTeam(ctx context.Context, teamID int64) ([]domain.TeamMember, error)
}

type TaskStore interface {
	GetByOrdinal(ctx context.Context, ordinal int) (*domain.Task, error)
	List(ctx context.Context) ([]domain.Task, error)
}

type SubmissionStore interface {
	Create(ctx context.Context, s domain.Submission) (*domain.Submission, error)
	LatestByTeam(ctx context.Context, teamID int64) (map[int64]domain.Submission, error)
}

type StateStore interface {
	Get(ctx context.Context) (*domain.QuestState, error)
	// Activate and Deactivate return false when the state was already on the
	// target side; the caller maps that to AlreadyActive/NotActive.
	Activate(ctx context.Context, now time.Time) (bool, error)
	Deactivate(ctx context.Context, now time.Time) (bool, error)
}

type SettingStore interface {
	Get(ctx context.Context, key string) (string, error)
}

// AdminLister is the chat transport view the engine needs: the current
// administrator list of a channel. The platform cannot enumerate full chat
// membership, so the admin list is the documented approximation of "present
// at kickoff".
type AdminLister interface {
	ChatAdministrators(ctx context.Context, chatID int64) ([]domain.ChatUser, error)
}
