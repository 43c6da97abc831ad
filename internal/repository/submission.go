package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mkuznetsova/questbot/internal/domain"
)

type SubmissionRepo struct {
	db *pgxpool.Pool
}

func NewSubmissionRepo(db *pgxpool.Pool) *SubmissionRepo {
	return &SubmissionRepo{db: db}
}

// Create appends one attempt. Correctness must already be resolved by the
// caller; submission rows are never updated afterwards.
func (r *SubmissionRepo) Create(ctx context.Context, s domain.Submission) (*domain.Submission, error) {
	err := r.db.QueryRow(ctx, `
		INSERT INTO submission (team_id, task_id, value, is_correct)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`, s.TeamID, s.TaskID, s.Value, s.IsCorrect).Scan(&s.ID, &s.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("create submission: %w", err)
	}
	return &s, nil
}

// LatestByTeam returns the most recent submission per task for one team,
// keyed by task ID.
func (r *SubmissionRepo) LatestByTeam(ctx context.Context, teamID int64) (map[int64]domain.Submission, error) {
	rows, err := r.db.Query(ctx, `
		SELECT DISTINCT ON (task_id)
			id, team_id, task_id, value, is_correct, created_at
		FROM submission
		WHERE team_id = $1
		ORDER BY task_id, created_at DESC, id DESC
	`, teamID)
	if err != nil {
		return nil, fmt.Errorf("latest submissions: %w", err)
	}
	defer rows.Close()

	latest := make(map[int64]domain.Submission)
	for rows.Next() {
		var s domain.Submission
		if err := rows.Scan(&s.ID, &s.TeamID, &s.TaskID, &s.Value, &s.IsCorrect, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan submission: %w", err)
		}
		latest[s.TaskID] = s
	}
	return latest, rows.Err()
}
