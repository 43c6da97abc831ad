package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mkuznetsova/questbot/internal/domain"
)

// questStateID is the fixed key of the single logical quest state row.
const questStateID = 1

type QuestStateRepo struct {
	db *pgxpool.Pool
}

func NewQuestStateRepo(db *pgxpool.Pool) *QuestStateRepo {
	return &QuestStateRepo{db: db}
}

// Get returns the singleton state, creating the inactive row on first access.
func (r *QuestStateRepo) Get(ctx context.Context) (*domain.QuestState, error) {
	_, err := r.db.Exec(ctx, `
		INSERT INTO quest_state (id, is_active) VALUES ($1, FALSE)
		ON CONFLICT (id) DO NOTHING
	`, questStateID)
	if err != nil {
		return nil, fmt.Errorf("init quest state: %w", err)
	}

	var s domain.QuestState
	err = r.db.QueryRow(ctx, `
		SELECT id, is_active, started_at, ended_at, updated_at
		FROM quest_state WHERE id = $1
	`, questStateID).Scan(&s.ID, &s.IsActive, &s.StartedAt, &s.EndedAt, &s.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("get quest state: %w", err)
	}
	return &s, nil
}

// Activate flips the singleton to active. The conditional UPDATE serializes
// concurrent starts: the loser affects zero rows and gets started=false.
func (r *QuestStateRepo) Activate(ctx context.Context, now time.Time) (bool, error) {
	tag, err := r.db.Exec(ctx, `
		UPDATE quest_state
		SET is_active = TRUE, started_at = $2, ended_at = NULL, updated_at = now()
		WHERE id = $1 AND NOT is_active
	`, questStateID, now)
	if err != nil {
		return false, fmt.Errorf("activate quest: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// Deactivate flips the singleton to inactive, same serialization rule as
// Activate.
func (r *QuestStateRepo) Deactivate(ctx context.Context, now time.Time) (bool, error) {
	tag, err := r.db.Exec(ctx, `
		UPDATE quest_state
		SET is_active = FALSE, ended_at = $2, updated_at = now()
		WHERE id = $1 AND is_active
	`, questStateID, now)
	if err != nil {
		return false, fmt.Errorf("deactivate quest: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}
