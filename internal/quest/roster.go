package quest

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mkuznetsova/questbot/internal/domain"
)

// Roster reconciles observed chat participants with stored team membership.
// Side effects are returned as notification intents; delivery is the
// transport adapter's concern.
type Roster struct {
	teams       TeamStore
	members     MemberStore
	state       StateStore
	admins      AdminLister
	adminChatID int64
}

func NewRoster(teams TeamStore, members MemberStore, state StateStore, admins AdminLister, adminChatID int64) *Roster {
	return &Roster{
		teams:       teams,
		members:     members,
		state:       state,
		admins:      admins,
		adminChatID: adminChatID,
	}
}

// ObserveUser records a chat participant as a team member if not yet known.
// Idempotent: an existing row is a silent no-op. A member first seen while
// the quest is active is a late joiner: flagged, not blocked, with a warning
// to the team chat and an audit alert to the admin chat.
func (r *Roster) ObserveUser(ctx context.Context, chatID int64, u domain.ChatUser) ([]domain.Notification, error) {
	if u.IsBot {
		return nil, nil
	}

	team, err := r.teams.GetByChatID(ctx, chatID)
	if err != nil {
		return nil, err
	}

	existing, err := r.members.Get(ctx, team.ID, u.ID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, nil
	}

	state, err := r.state.Get(ctx)
	if err != nil {
		return nil, err
	}

	created, err := r.members.Create(ctx, domain.TeamMember{
		TeamID:          team.ID,
		UserID:          u.ID,
		Username:        u.Username,
		FirstName:       u.FirstName,
		LastName:        u.LastName,
		IsInitialMember: !state.IsActive,
	})
	if err != nil {
		return nil, err
	}
	if !created || !state.IsActive {
		// Lost the race against a concurrent observation, or joined before
		// kickoff: either way the member is folded in silently.
		return nil, nil
	}

	slog.Info("late joiner recorded", "team", team.Name, "user_id", u.ID)
	return []domain.Notification{
		{
			ChatID: chatID,
			Text:   fmt.Sprintf("⚠️ Внимание! %s не был в команде на момент начала квеста.", u.DisplayName()),
		},
		{
			ChatID:   r.adminChatID,
			Text:     fmt.Sprintf("⚠️ В команду «%s» вступил новый участник [%s](tg://user?id=%d)", team.Name, u.DisplayName(), u.ID),
			Markdown: true,
		},
	}, nil
}

// RenameByChat updates the team name after a chat title change and emits an
// admin audit intent carrying both names.
func (r *Roster) RenameByChat(ctx context.Context, chatID int64, newName string) ([]domain.Notification, error) {
	team, err := r.teams.GetByChatID(ctx, chatID)
	if err != nil {
		return nil, err
	}

	oldName := team.Name
	if err := r.teams.Rename(ctx, team.ID, newName); err != nil {
		return nil, err
	}

	return []domain.Notification{{
		ChatID: r.adminChatID,
		Text:   fmt.Sprintf("✍🏼 Команда «%s» переименовалась в «%s»", oldName, newName),
	}}, nil
}

// RegisterChat handles bot induction: the engine's own identity appearing in
// a chat binds that chat to a team. An already-bound chat is renamed instead.
// Current chat admins are imported as initial members; this path never emits
// late-joiner alerts regardless of quest state.
func (r *Roster) RegisterChat(ctx context.Context, chatID int64, title string) ([]domain.Notification, error) {
	team, err := r.teams.GetByChatID(ctx, chatID)
	if err == nil {
		oldName := team.Name
		if err := r.teams.Rename(ctx, team.ID, title); err != nil {
			return nil, err
		}
		return []domain.Notification{{
			ChatID: r.adminChatID,
			Text:   fmt.Sprintf("✍🏼 Команда «%s» переименовалась в «%s»", oldName, title),
		}}, nil
	}
	if err != domain.ErrTeamNotFound {
		return nil, err
	}

	team, err = r.teams.Create(ctx, chatID, title)
	if err != nil {
		return nil, err
	}

	if _, err := r.ImportInitialMembers(ctx, team); err != nil {
		// The team binding is in place; a failed admin fetch only loses the
		// initial import, which the kickoff snapshot repeats anyway.
		slog.Error("import initial members", "error", err, "team", team.Name)
	}

	return []domain.Notification{
		{
			ChatID: chatID,
			Text:   "Привет! Я бот для проведения квеста. Используйте /help для просмотра доступных команд.",
		},
		{
			ChatID: r.adminChatID,
			Text:   fmt.Sprintf("🆕 Зарегистрирована команда «%s»", team.Name),
		},
	}, nil
}

// ImportInitialMembers records every non-bot administrator of the team's chat
// as an initial member, skipping rows that already exist. Returns the number
// of members actually added.
func (r *Roster) ImportInitialMembers(ctx context.Context, team *domain.Team) (int, error) {
	admins, err := r.admins.ChatAdministrators(ctx, team.ChatID)
	if err != nil {
		return 0, fmt.Errorf("fetch chat admins: %w", err)
	}

	added := 0
	for _, a := range admins {
		if a.IsBot {
			continue
		}
		created, err := r.members.Create(ctx, domain.TeamMember{
			TeamID:          team.ID,
			UserID:          a.ID,
			Username:        a.Username,
			FirstName:       a.FirstName,
			LastName:        a.LastName,
			IsInitialMember: true,
		})
		if err != nil {
			return added, err
		}
		if created {
			added++
		}
	}
	return added, nil
}

// DeactivateByChat marks a team inactive after the bot is removed from its
// chat. Membership and submissions are kept; teams are never hard-deleted.
func (r *Roster) DeactivateByChat(ctx context.Context, chatID int64) ([]domain.Notification, error) {
	team, err := r.teams.GetByChatID(ctx, chatID)
	if err != nil {
		return nil, err
	}
	if err := r.teams.Deactivate(ctx, team.ID); err != nil {
		return nil, err
	}
	return []domain.Notification{{
		ChatID: r.adminChatID,
		Text:   fmt.Sprintf("🚪 Команда «%s» удалила бота из чата и снята с квеста", team.Name),
	}}, nil
}
