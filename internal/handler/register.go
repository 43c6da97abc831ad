package handler

import (
	"context"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// Register registers all command handlers on the bot instance. Chat events
// (new members, renames, media) arrive through HandleDefault.
func (h *Handler) Register() {
	// Admin commands
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/start_quest", bot.MatchTypePrefix, h.handleStartQuest)
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/stop_quest", bot.MatchTypePrefix, h.handleStopQuest)
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/list_teams", bot.MatchTypePrefix, h.handleListTeams)
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/team_tasks", bot.MatchTypePrefix, h.handleTeamTasks)
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/team", bot.MatchTypePrefix, h.handleTeamDetails)
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/broadcast", bot.MatchTypePrefix, h.handleBroadcast)
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/set_header", bot.MatchTypePrefix, h.handleSetHeader)
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/set_footer", bot.MatchTypePrefix, h.handleSetFooter)

	// Team commands
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/code", bot.MatchTypePrefix, h.handleCodeSubmission)
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/tasks", bot.MatchTypePrefix, h.handleTaskList)
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/help", bot.MatchTypePrefix, h.handleHelp)
}

// isGroupMessage reports whether the update is a message in a group or
// supergroup chat. The quest runs in group chats only.
func isGroupMessage(update *models.Update) bool {
	if update.Message == nil {
		return false
	}
	t := update.Message.Chat.Type
	return t == models.ChatTypeGroup || t == models.ChatTypeSupergroup
}

// commandArgs strips the leading /command token (with an optional @bot
// mention) and returns the trimmed argument string.
func commandArgs(text string) string {
	_, args, _ := strings.Cut(text, " ")
	return strings.TrimSpace(args)
}

func (h *Handler) reply(ctx context.Context, chatID int64, text string) {
	h.bot.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   text,
	})
}

func (h *Handler) replyMarkdown(ctx context.Context, chatID int64, text string) {
	_, err := h.bot.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:    chatID,
		Text:      text,
		ParseMode: models.ParseModeMarkdownV1,
	})
	if err != nil {
		// Plain-text fallback mirrors the long-message sender.
		h.reply(ctx, chatID, text)
	}
}
