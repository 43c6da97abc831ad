package telegram

import (
	"context"
	"fmt"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/mkuznetsova/questbot/internal/config"
	"github.com/mkuznetsova/questbot/internal/domain"
)

// ChatAPI adapts the bot transport to the engine's chat contracts.
type ChatAPI struct {
	bot *bot.Bot
}

func NewChatAPI(b *bot.Bot) *ChatAPI {
	return &ChatAPI{bot: b}
}

// ChatAdministrators fetches the current administrator list of a chat.
func (c *ChatAPI) ChatAdministrators(ctx context.Context, chatID int64) ([]domain.ChatUser, error) {
	ctx, cancel := context.WithTimeout(ctx, config.CollaboratorTimeout)
	defer cancel()

	members, err := c.bot.GetChatAdministrators(ctx, &bot.GetChatAdministratorsParams{
		ChatID: chatID,
	})
	if err != nil {
		return nil, fmt.Errorf("get chat administrators: %w", err)
	}

	var users []domain.ChatUser
	for _, m := range members {
		var u *models.User
		switch {
		case m.Owner != nil:
			u = m.Owner.User
		case m.Administrator != nil:
			u = &m.Administrator.User
		}
		if u == nil {
			continue
		}
		users = append(users, domain.ChatUser{
			ID:        u.ID,
			Username:  u.Username,
			FirstName: u.FirstName,
			LastName:  u.LastName,
			IsBot:     u.IsBot,
		})
	}
	return users, nil
}
