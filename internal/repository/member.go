package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mkuznetsova/questbot/internal/domain"
)

type MemberRepo struct {
	db *pgxpool.Pool
}

func NewMemberRepo(db *pgxpool.Pool) *MemberRepo {
	return &MemberRepo{db: db}
}

// Create inserts a membership row. The (team_id, user_id) uniqueness
// constraint makes this safe under concurrent observation of the same user:
// the losing insert hits ON CONFLICT DO NOTHING and reports created=false.
func (r *MemberRepo) Create(ctx context.Context, m domain.TeamMember) (bool, error) {
	err := r.db.QueryRow(ctx, `
		INSERT INTO team_member (team_id, user_id, username, first_name, last_name, is_initial_member)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (team_id, user_id) DO NOTHING
		RETURNING id
	`, m.TeamID, m.UserID, m.Username, m.FirstName, m.LastName, m.IsInitialMember).Scan(new(int64))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("create team member: %w", err)
	}
	return true, nil
}

func (r *MemberRepo) Get(ctx context.Context, teamID, userID int64) (*domain.TeamMember, error) {
	var m domain.TeamMember
	err := r.db.QueryRow(ctx, `
		SELECT id, team_id, user_id, username, first_name, last_name, is_initial_member, created_at
		FROM team_member WHERE team_id = $1 AND user_id = $2
	`, teamID, userID).Scan(
		&m.ID, &m.TeamID, &m.UserID, &m.Username, &m.FirstName, &m.LastName,
		&m.IsInitialMember, &m.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get team member: %w", err)
	}
	return &m, nil
}

func (r *MemberRepo) ListByTeam(ctx context.Context, teamID int64) ([]domain.TeamMember, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, team_id, user_id, username, first_name, last_name, is_initial_member, created_at
		FROM team_member WHERE team_id = $1 ORDER BY id
	`, teamID)
	if err != nil {
		return nil, fmt.Errorf("list team members: %w", err)
	}
	defer rows.Close()

	var members []domain.TeamMember
	for rows.Next() {
		var m domain.TeamMember
		if err := rows.Scan(
			&m.ID, &m.TeamID, &m.UserID, &m.Username, &m.FirstName, &m.LastName,
			&m.IsInitialMember, &m.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan team member: %w", err)
		}
		members = append(members, m)
	}
	return members, rows.Err()
}
