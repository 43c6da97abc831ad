package telegram

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/mkuznetsova/questbot/internal/config"
	"github.com/mkuznetsova/questbot/internal/domain"
)

const MaxMessageLen = 4096

// SendLongMessage sends a potentially long message, splitting it into parts
// if needed. Falls back to plain text if Markdown parsing fails.
func SendLongMessage(ctx context.Context, b *bot.Bot, chatID int64, text string, markdown bool, replyToID *int) error {
	parts := SplitMessage(text, MaxMessageLen)

	for _, part := range parts {
		params := &bot.SendMessageParams{
			ChatID: chatID,
			Text:   part,
		}
		if markdown {
			params.ParseMode = models.ParseModeMarkdownV1
		}
		if replyToID != nil {
			params.ReplyParameters = &models.ReplyParameters{
				MessageID: *replyToID,
			}
			replyToID = nil // only reply to first part
		}

		_, err := b.SendMessage(ctx, params)
		if err != nil && markdown {
			slog.Warn("markdown send failed, falling back to plain text", "error", err)
			params.ParseMode = ""
			_, err = b.SendMessage(ctx, params)
		}
		if err != nil {
			return fmt.Errorf("send message: %w", err)
		}
	}

	return nil
}

// Deliver sends a batch of notification intents best-effort: one failed
// delivery is logged and does not stop the rest, and never rolls back the
// effect that produced the intent.
func Deliver(ctx context.Context, b *bot.Bot, notifs []domain.Notification) {
	for _, n := range notifs {
		sendCtx, cancel := context.WithTimeout(ctx, config.CollaboratorTimeout)
		err := SendLongMessage(sendCtx, b, n.ChatID, n.Text, n.Markdown, nil)
		cancel()
		if err != nil {
			slog.Error("deliver notification", "error", err, "chat_id", n.ChatID)
		}
	}
}

// SplitMessage splits a message into chunks of maxLen characters, trying to
// split at newlines when possible.
func SplitMessage(text string, maxLen int) []string {
	if utf8.RuneCountInString(text) <= maxLen {
		return []string{text}
	}

	var parts []string
	for len(text) > 0 {
		if utf8.RuneCountInString(text) <= maxLen {
			parts = append(parts, text)
			break
		}

		runes := []rune(text)
		splitAt := maxLen

		// Prefer a newline boundary in the second half of the chunk.
		for i := maxLen - 1; i > maxLen/2; i-- {
			if runes[i] == '\n' {
				splitAt = i + 1
				break
			}
		}

		parts = append(parts, string(runes[:splitAt]))
		text = string(runes[splitAt:])
	}

	return parts
}

// EscapeCode escapes backticks so a submitted value can be shown inside an
// inline code span.
func EscapeCode(s string) string {
	return strings.ReplaceAll(s, "`", "\\`")
}
