package handler

import (
	"context"
	"errors"
	"log/slog"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/mkuznetsova/questbot/internal/domain"
	"github.com/mkuznetsova/questbot/internal/telegram"
)

// HandleDefault routes everything that is not a registered command: roster
// events (new members, renames, the bot leaving) and media submissions.
// Plain human messages feed roster observation so pre-quest participants are
// folded in silently.
func (h *Handler) HandleDefault(ctx context.Context, b *bot.Bot, update *models.Update) {
	if !isGroupMessage(update) {
		return
	}
	msg := update.Message

	if len(msg.NewChatMembers) > 0 {
		h.handleNewChatMembers(ctx, update)
		return
	}
	if msg.LeftChatMember != nil {
		h.handleLeftChatMember(ctx, update)
		return
	}
	if msg.NewChatTitle != "" {
		h.handleChatTitleUpdate(ctx, update)
		return
	}

	// Organizer chat activity never creates teams or members.
	if h.fromAdminChat(update) {
		return
	}

	if len(msg.Photo) > 0 || msg.Document != nil {
		h.handlePhoto(ctx, b, update)
		return
	}

	h.observeSender(ctx, update)
}

// observeSender runs roster observation for the message author. Best-effort:
// a chat without a bound team is normal (the bot may be in unrelated chats)
// and observation failures never block the triggering command.
func (h *Handler) observeSender(ctx context.Context, update *models.Update) {
	msg := update.Message
	if msg.From == nil || msg.From.IsBot || h.fromAdminChat(update) {
		return
	}

	notifs, err := h.roster.ObserveUser(ctx, msg.Chat.ID, chatUser(msg.From))
	if err != nil {
		if !errors.Is(err, domain.ErrTeamNotFound) {
			slog.Error("observe user", "error", err, "chat_id", msg.Chat.ID)
		}
		return
	}
	telegram.Deliver(ctx, h.bot, notifs)
}

func (h *Handler) handleNewChatMembers(ctx context.Context, update *models.Update) {
	msg := update.Message
	if h.fromAdminChat(update) {
		return
	}

	// Bot induction first: our own identity joining a chat means team
	// registration, never membership.
	for _, member := range msg.NewChatMembers {
		if member.ID != h.botID {
			continue
		}
		notifs, err := h.roster.RegisterChat(ctx, msg.Chat.ID, msg.Chat.Title)
		if err != nil {
			slog.Error("register chat", "error", err, "chat_id", msg.Chat.ID)
			return
		}
		telegram.Deliver(ctx, h.bot, notifs)
		return
	}

	for _, member := range msg.NewChatMembers {
		if member.IsBot {
			continue
		}
		notifs, err := h.roster.ObserveUser(ctx, msg.Chat.ID, chatUser(&member))
		if err != nil {
			if !errors.Is(err, domain.ErrTeamNotFound) {
				slog.Error("observe new member", "error", err, "chat_id", msg.Chat.ID)
			}
			continue
		}
		telegram.Deliver(ctx, h.bot, notifs)
	}
}

func (h *Handler) handleLeftChatMember(ctx context.Context, update *models.Update) {
	msg := update.Message
	if h.fromAdminChat(update) || msg.LeftChatMember.ID != h.botID {
		return
	}

	notifs, err := h.roster.DeactivateByChat(ctx, msg.Chat.ID)
	if err != nil {
		if !errors.Is(err, domain.ErrTeamNotFound) {
			slog.Error("deactivate team", "error", err, "chat_id", msg.Chat.ID)
		}
		return
	}
	telegram.Deliver(ctx, h.bot, notifs)
}

func (h *Handler) handleChatTitleUpdate(ctx context.Context, update *models.Update) {
	msg := update.Message
	if h.fromAdminChat(update) {
		return
	}

	notifs, err := h.roster.RenameByChat(ctx, msg.Chat.ID, msg.NewChatTitle)
	if err != nil {
		if errors.Is(err, domain.ErrTeamNotFound) {
			// Renamed chat without a team binding: logged, not fatal.
			slog.Warn("rename for unknown chat", "chat_id", msg.Chat.ID, "title", msg.NewChatTitle)
		} else {
			slog.Error("rename team", "error", err, "chat_id", msg.Chat.ID)
		}
		return
	}
	telegram.Deliver(ctx, h.bot, notifs)
}

func chatUser(u *models.User) domain.ChatUser {
	return domain.ChatUser{
		ID:        u.ID,
		Username:  u.Username,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		IsBot:     u.IsBot,
	}
}
