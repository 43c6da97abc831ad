package handler

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

const adminHelpText = "Доступные команды:\n\n" +
	"/start\\_quest - Начать квест\n" +
	"/stop\\_quest - Остановить квест\n" +
	"/list\\_teams - Показать список команд\n" +
	"`/team` <id> - Показать состав команды\n" +
	"`/team_tasks` <id> - Показать задания команды\n" +
	"`/broadcast` <сообщение> - Отправить сообщение всем командам\n" +
	"`/set_header` <текст> - Заголовок списка заданий\n" +
	"`/set_footer` <текст> - Примечание к списку заданий\n"

const teamHelpText = "Доступные команды:\n\n" +
	"`/code` <номер задания> <код> - Отправить код (например `/code 1 секретныйкод`)\n" +
	"/tasks - Посмотреть список заданий\n" +
	"Фото с номером задания в подписи - сдать фотозадание\n"

func (h *Handler) handleHelp(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	if !isGroupMessage(update) {
		h.reply(ctx, update.Message.Chat.ID, "Я работаю только в групповых чатах. Добавьте меня в группу для участия в квесте.")
		return
	}

	text := teamHelpText
	if h.fromAdminChat(update) {
		text = adminHelpText
	} else {
		h.observeSender(ctx, update)
	}
	h.replyMarkdown(ctx, update.Message.Chat.ID, text)
}
