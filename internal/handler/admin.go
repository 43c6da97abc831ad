package handler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/mkuznetsova/questbot/internal/config"
	"github.com/mkuznetsova/questbot/internal/domain"
	"github.com/mkuznetsova/questbot/internal/telegram"
	"golang.org/x/sync/errgroup"
)

// fromAdminChat verifies the caller identity: admin commands are accepted
// from the configured organizer chat only, before anything else happens.
func (h *Handler) fromAdminChat(update *models.Update) bool {
	return isGroupMessage(update) && h.cfg.IsAdminChat(update.Message.Chat.ID)
}

func (h *Handler) handleStartQuest(ctx context.Context, b *bot.Bot, update *models.Update) {
	if !h.fromAdminChat(update) {
		return
	}
	chatID := update.Message.Chat.ID

	confirm := strings.ToLower(commandArgs(update.Message.Text))
	err := h.lifecycle.Start(ctx, confirm)
	switch {
	case err == nil:
		h.reply(ctx, chatID, "Квест успешно начат!")
	case errors.Is(err, domain.ErrConfirmationRequired):
		h.reply(ctx, chatID, "Подтвердите запуск квеста, введите /start_quest yes")
	case errors.Is(err, domain.ErrQuestAlreadyActive):
		h.reply(ctx, chatID, "Квест уже запущен!")
	default:
		slog.Error("start quest", "error", err)
		h.reply(ctx, chatID, "Произошла ошибка при запуске квеста")
	}
}

func (h *Handler) handleStopQuest(ctx context.Context, b *bot.Bot, update *models.Update) {
	if !h.fromAdminChat(update) {
		return
	}
	chatID := update.Message.Chat.ID

	confirm := strings.ToLower(commandArgs(update.Message.Text))
	err := h.lifecycle.Stop(ctx, confirm)
	switch {
	case err == nil:
		h.reply(ctx, chatID, "Квест остановлен")
	case errors.Is(err, domain.ErrConfirmationRequired):
		h.reply(ctx, chatID, "Подтвердите остановку квеста, введите /stop_quest yes")
	case errors.Is(err, domain.ErrQuestNotStarted):
		h.reply(ctx, chatID, "Квест не был запущен!")
	default:
		slog.Error("stop quest", "error", err)
		h.reply(ctx, chatID, "Произошла ошибка при остановке квеста")
	}
}

func (h *Handler) handleListTeams(ctx context.Context, b *bot.Bot, update *models.Update) {
	if !h.fromAdminChat(update) {
		return
	}
	chatID := update.Message.Chat.ID

	teams, err := h.teams.List(ctx)
	if err != nil {
		slog.Error("list teams", "error", err)
		h.reply(ctx, chatID, "Произошла ошибка при получении списка команд")
		return
	}
	if len(teams) == 0 {
		h.reply(ctx, chatID, "Пока не зарегистрировано ни одной команды")
		return
	}

	var sb strings.Builder
	sb.WriteString("Список команд:\n")
	for _, team := range teams {
		fmt.Fprintf(&sb, "%d. %s\n", team.ID, team.Name)
	}
	h.reply(ctx, chatID, sb.String())
}

func (h *Handler) handleTeamDetails(ctx context.Context, b *bot.Bot, update *models.Update) {
	if !h.fromAdminChat(update) {
		return
	}
	// "/team" is a prefix of "/team_tasks"; route the longer command on.
	if strings.HasPrefix(update.Message.Text, "/team_tasks") {
		h.handleTeamTasks(ctx, b, update)
		return
	}
	chatID := update.Message.Chat.ID

	teamID, err := strconv.ParseInt(commandArgs(update.Message.Text), 10, 64)
	if err != nil {
		h.reply(ctx, chatID, "Использование: /team <id команды>")
		return
	}

	team, err := h.teams.GetByID(ctx, teamID)
	if err != nil {
		if errors.Is(err, domain.ErrTeamNotFound) {
			h.reply(ctx, chatID, "Команда не найдена")
			return
		}
		slog.Error("team details", "error", err)
		h.reply(ctx, chatID, "Произошла ошибка при получении информации о команде")
		return
	}

	members, err := h.members.ListByTeam(ctx, team.ID)
	if err != nil {
		slog.Error("team members", "error", err)
		h.reply(ctx, chatID, "Произошла ошибка при получении информации о команде")
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Команда: %s\n\nУчастники:\n", team.Name)
	for _, m := range members {
		mark := "✅"
		if !m.IsInitialMember {
			mark = "⚠️"
		}
		fmt.Fprintf(&sb, "%s %s\n", m.DisplayName(), mark)
	}
	h.reply(ctx, chatID, sb.String())
}

func (h *Handler) handleTeamTasks(ctx context.Context, b *bot.Bot, update *models.Update) {
	if !h.fromAdminChat(update) {
		return
	}
	chatID := update.Message.Chat.ID

	teamID, err := strconv.ParseInt(commandArgs(update.Message.Text), 10, 64)
	if err != nil {
		h.reply(ctx, chatID, "Использование: /team_tasks <id команды>")
		return
	}

	progress, err := h.score.Progress(ctx, teamID)
	if err != nil {
		if errors.Is(err, domain.ErrTeamNotFound) {
			h.reply(ctx, chatID, "Команда не найдена")
			return
		}
		slog.Error("team tasks", "error", err)
		h.reply(ctx, chatID, "Произошла ошибка при получении информации о заданиях")
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "*Задания команды «%s»*\n\n", progress.Team.Name)
	for _, status := range progress.Tasks {
		fmt.Fprintf(&sb, "%d. %s\n", status.Task.Ordinal, status.Task.Title)
		rule := telegram.EscapeCode(status.Task.Rule)
		if status.Latest != nil {
			mark := "❌"
			if status.Latest.IsCorrect {
				mark = "✅"
			}
			fmt.Fprintf(&sb, "%s `%s` / `%s`\n\n", mark, telegram.EscapeCode(status.Latest.Value), rule)
		} else {
			fmt.Fprintf(&sb, "❌ нет попыток / `%s`\n\n", rule)
		}
	}
	fmt.Fprintf(&sb, "*Правильно выполнено:* %d\n*Очки:* %d", progress.CorrectCount, progress.TotalPoints)
	if !progress.LastCorrectAt.IsZero() {
		fmt.Fprintf(&sb, "\n*Последний верный ответ:* %s", progress.LastCorrectAt.Format("02.01.2006 15:04"))
	}

	if err := telegram.SendLongMessage(ctx, b, chatID, sb.String(), true, nil); err != nil {
		slog.Error("send team tasks", "error", err)
	}
}

func (h *Handler) handleBroadcast(ctx context.Context, b *bot.Bot, update *models.Update) {
	if !h.fromAdminChat(update) {
		return
	}
	chatID := update.Message.Chat.ID

	message := commandArgs(update.Message.Text)
	if message == "" {
		h.reply(ctx, chatID, "Использование: /broadcast <сообщение>")
		return
	}

	teams, err := h.teams.List(ctx)
	if err != nil {
		slog.Error("broadcast: list teams", "error", err)
		h.reply(ctx, chatID, "Произошла ошибка при отправке сообщения")
		return
	}

	// Fan out; a failed chat does not block the rest.
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(config.BroadcastConcurrency)
	for _, team := range teams {
		team := team
		g.Go(func() error {
			sendCtx, cancel := context.WithTimeout(gctx, config.CollaboratorTimeout)
			defer cancel()
			if _, err := b.SendMessage(sendCtx, &bot.SendMessageParams{
				ChatID: team.ChatID,
				Text:   message,
			}); err != nil {
				slog.Error("broadcast", "error", err, "team", team.Name)
			}
			return nil
		})
	}
	g.Wait()

	h.reply(ctx, chatID, "Сообщение отправлено всем командам")
}

func (h *Handler) handleSetHeader(ctx context.Context, b *bot.Bot, update *models.Update) {
	h.handleSetSetting(ctx, update, domain.SettingHeader, "/set_header")
}

func (h *Handler) handleSetFooter(ctx context.Context, b *bot.Bot, update *models.Update) {
	h.handleSetSetting(ctx, update, domain.SettingFooter, "/set_footer")
}

func (h *Handler) handleSetSetting(ctx context.Context, update *models.Update, key, command string) {
	if !h.fromAdminChat(update) {
		return
	}
	chatID := update.Message.Chat.ID

	value := commandArgs(update.Message.Text)
	if value == "" {
		h.reply(ctx, chatID, fmt.Sprintf("Использование: %s <текст>", command))
		return
	}

	if err := h.settings.Set(ctx, key, value); err != nil {
		slog.Error("set setting", "error", err, "key", key)
		h.reply(ctx, chatID, "Произошла ошибка при сохранении настройки")
		return
	}
	h.reply(ctx, chatID, "Сохранено")
}
