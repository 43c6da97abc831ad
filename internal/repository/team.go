package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mkuznetsova/questbot/internal/domain"
)

type TeamRepo struct {
	db *pgxpool.Pool
}

func NewTeamRepo(db *pgxpool.Pool) *TeamRepo {
	return &TeamRepo{db: db}
}

const teamColumns = `id, chat_id, name, is_active, created_at, updated_at`

func scanTeam(row pgx.Row) (*domain.Team, error) {
	var t domain.Team
	err := row.Scan(&t.ID, &t.ChatID, &t.Name, &t.IsActive, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TeamRepo) GetByChatID(ctx context.Context, chatID int64) (*domain.Team, error) {
	team, err := scanTeam(r.db.QueryRow(ctx, `
		SELECT `+teamColumns+` FROM team WHERE chat_id = $1
	`, chatID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTeamNotFound
		}
		return nil, fmt.Errorf("get team by chat id: %w", err)
	}
	return team, nil
}

func (r *TeamRepo) GetByID(ctx context.Context, id int64) (*domain.Team, error) {
	team, err := scanTeam(r.db.QueryRow(ctx, `
		SELECT `+teamColumns+` FROM team WHERE id = $1
	`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTeamNotFound
		}
		return nil, fmt.Errorf("get team by id: %w", err)
	}
	return team, nil
}

func (r *TeamRepo) List(ctx context.Context) ([]domain.Team, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+teamColumns+` FROM team WHERE is_active ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}
	defer rows.Close()

	var teams []domain.Team
	for rows.Next() {
		team, err := scanTeam(rows)
		if err != nil {
			return nil, fmt.Errorf("scan team: %w", err)
		}
		teams = append(teams, *team)
	}
	return teams, rows.Err()
}

func (r *TeamRepo) Create(ctx context.Context, chatID int64, name string) (*domain.Team, error) {
	team, err := scanTeam(r.db.QueryRow(ctx, `
		INSERT INTO team (chat_id, name) VALUES ($1, $2)
		RETURNING `+teamColumns+`
	`, chatID, name))
	if err != nil {
		return nil, fmt.Errorf("create team: %w", err)
	}
	return team, nil
}

func (r *TeamRepo) Rename(ctx context.Context, id int64, name string) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE team SET name = $1, updated_at = now() WHERE id = $2
	`, name, id)
	if err != nil {
		return fmt.Errorf("rename team: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTeamNotFound
	}
	return nil
}

func (r *TeamRepo) Deactivate(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE team SET is_active = FALSE, updated_at = now() WHERE id = $1
	`, id)
	if err != nil {
		return fmt.Errorf("deactivate team: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTeamNotFound
	}
	return nil
}
