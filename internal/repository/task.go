package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mkuznetsova/questbot/internal/domain"
)

type TaskRepo struct {
	db *pgxpool.Pool
}

func NewTaskRepo(db *pgxpool.Pool) *TaskRepo {
	return &TaskRepo{db: db}
}

const taskColumns = `id, ordinal, title, description, rule, cost, kind, created_at`

func scanTask(row pgx.Row) (*domain.Task, error) {
	var t domain.Task
	err := row.Scan(&t.ID, &t.Ordinal, &t.Title, &t.Description, &t.Rule, &t.Cost, &t.Kind, &t.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TaskRepo) GetByOrdinal(ctx context.Context, ordinal int) (*domain.Task, error) {
	task, err := scanTask(r.db.QueryRow(ctx, `
		SELECT `+taskColumns+` FROM task WHERE ordinal = $1
	`, ordinal))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, fmt.Errorf("get task by ordinal: %w", err)
	}
	return task, nil
}

func (r *TaskRepo) List(ctx context.Context) ([]domain.Task, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+taskColumns+` FROM task ORDER BY ordinal
	`)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	var tasks []domain.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		tasks = append(tasks, *task)
	}
	return tasks, rows.Err()
}
