package handler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/mkuznetsova/questbot/internal/domain"
	"github.com/mkuznetsova/questbot/internal/telegram"
)

func (h *Handler) handleCodeSubmission(ctx context.Context, b *bot.Bot, update *models.Update) {
	if !isGroupMessage(update) || h.fromAdminChat(update) {
		return
	}
	chatID := update.Message.Chat.ID
	h.observeSender(ctx, update)

	ordinal, code, err := parseCodeArgs(commandArgs(update.Message.Text))
	if err != nil {
		h.reply(ctx, chatID, "Неверный формат команды. Используйте: /code <номер> <код>")
		return
	}

	_, err = h.engine.SubmitCode(ctx, chatID, ordinal, code)
	switch {
	case err == nil:
		msgID := update.Message.ID
		// Acknowledge receipt without revealing correctness.
		if sendErr := telegram.SendLongMessage(ctx, b, chatID, "Код принят", false, &msgID); sendErr != nil {
			slog.Error("send code ack", "error", sendErr)
		}
	case errors.Is(err, domain.ErrQuestNotActive):
		h.reply(ctx, chatID, "Квест не активен")
	case errors.Is(err, domain.ErrTeamNotFound):
		h.reply(ctx, chatID, "Команда не найдена")
	case errors.Is(err, domain.ErrTaskNotFound):
		h.reply(ctx, chatID, "Нет задания с таким номером...")
	case errors.Is(err, domain.ErrWrongTaskKind):
		h.reply(ctx, chatID, "Это задание принимает только фотографии. Отправьте фото с номером задания в подписи.")
	default:
		slog.Error("submit code", "error", err)
		h.reply(ctx, chatID, "Произошла ошибка при отправке кода")
	}
}

// parseCodeArgs splits "/code" arguments into the task ordinal and the
// submitted text; the code keeps its inner spaces.
func parseCodeArgs(args string) (int, string, error) {
	num, code, ok := strings.Cut(args, " ")
	code = strings.TrimSpace(code)
	if !ok || code == "" {
		return 0, "", domain.ErrBadSubmissionFormat
	}
	ordinal, err := strconv.Atoi(num)
	if err != nil {
		return 0, "", domain.ErrBadSubmissionFormat
	}
	return ordinal, code, nil
}

func (h *Handler) handleTaskList(ctx context.Context, b *bot.Bot, update *models.Update) {
	if !isGroupMessage(update) || h.fromAdminChat(update) {
		return
	}
	chatID := update.Message.Chat.ID
	h.observeSender(ctx, update)

	listing, err := h.engine.ListTasks(ctx, chatID)
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrQuestNotActive):
		h.reply(ctx, chatID, "Квест не активен")
		return
	case errors.Is(err, domain.ErrTeamNotFound):
		h.reply(ctx, chatID, "Команда не найдена")
		return
	default:
		slog.Error("task list", "error", err)
		h.reply(ctx, chatID, "Произошла ошибка при получении списка заданий")
		return
	}

	var sb strings.Builder
	if listing.Header != "" {
		sb.WriteString(listing.Header)
		sb.WriteString("\n\n")
	}
	for _, status := range listing.Tasks {
		fmt.Fprintf(&sb, "*%d. %s*\n", status.Task.Ordinal, status.Task.Title)
		if status.Task.Description != "" {
			sb.WriteString(status.Task.Description)
			sb.WriteString("\n")
		}
		switch {
		case status.Latest == nil:
			sb.WriteString("❌ Ещё не сдано\n")
		case status.Task.Kind == domain.TaskKindPhoto:
			sb.WriteString("📷 Фото принято\n")
		default:
			fmt.Fprintf(&sb, "✍️ Принят код: `%s`\n", telegram.EscapeCode(status.Latest.Value))
		}
		sb.WriteString("\n")
	}
	if listing.Footer != "" {
		sb.WriteString("\n")
		sb.WriteString(listing.Footer)
	}

	if err := telegram.SendLongMessage(ctx, b, chatID, sb.String(), true, nil); err != nil {
		slog.Error("send task list", "error", err)
	}
}

// handlePhoto processes photo or image-document evidence. The task ordinal
// comes from the media caption; the target is validated before the file is
// downloaded so a failed fetch writes nothing.
func (h *Handler) handlePhoto(ctx context.Context, b *bot.Bot, update *models.Update) {
	chatID := update.Message.Chat.ID
	h.observeSender(ctx, update)

	// Media without a caption is ordinary chat activity, not a submission.
	if strings.TrimSpace(update.Message.Caption) == "" {
		return
	}

	fileID, ext, err := evidenceFile(update.Message)
	if err != nil {
		if errors.Is(err, domain.ErrUnsupportedMedia) {
			h.reply(ctx, chatID, "Я принимаю только изображения")
		}
		return
	}

	ordinal, err := captionOrdinal(update.Message.Caption)
	if err != nil {
		h.reply(ctx, chatID, "Укажите номер задания в подписи к фото, например: 3")
		return
	}

	team, task, err := h.engine.ResolvePhotoTarget(ctx, chatID, ordinal)
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrQuestNotActive):
		h.reply(ctx, chatID, "Квест не активен")
		return
	case errors.Is(err, domain.ErrTeamNotFound):
		h.reply(ctx, chatID, "Команда не найдена")
		return
	case errors.Is(err, domain.ErrTaskNotFound):
		h.reply(ctx, chatID, "Нет задания с таким номером...")
		return
	case errors.Is(err, domain.ErrWrongTaskKind):
		h.reply(ctx, chatID, "Это задание принимает код, а не фото. Используйте /code")
		return
	default:
		slog.Error("resolve photo target", "error", err)
		h.reply(ctx, chatID, "Произошла ошибка при отправке фото")
		return
	}

	data, path, err := telegram.DownloadFile(ctx, b, fileID)
	if err != nil {
		slog.Error("download evidence", "error", err, "file_id", fileID)
		h.reply(ctx, chatID, "Не удалось загрузить фото, попробуйте ещё раз")
		return
	}
	if ext == "" {
		ext = filepath.Ext(path)
	}

	ref, err := h.evidence.Save(data, ext)
	if err != nil {
		slog.Error("save evidence", "error", err)
		h.reply(ctx, chatID, "Не удалось сохранить фото, попробуйте ещё раз")
		return
	}

	if _, err := h.engine.RecordPhoto(ctx, team.ID, task.ID, ref); err != nil {
		slog.Error("record photo", "error", err)
		h.reply(ctx, chatID, "Произошла ошибка при отправке фото")
		return
	}

	msgID := update.Message.ID
	if err := telegram.SendLongMessage(ctx, b, chatID, "Фото принято", false, &msgID); err != nil {
		slog.Error("send photo ack", "error", err)
	}
}

// evidenceFile picks the media to store: the largest photo size, or an
// image document. Anything else is unsupported.
func evidenceFile(msg *models.Message) (fileID, ext string, err error) {
	if len(msg.Photo) > 0 {
		// Sizes are ordered smallest to largest.
		return msg.Photo[len(msg.Photo)-1].FileID, ".jpg", nil
	}
	if msg.Document != nil {
		if !strings.HasPrefix(msg.Document.MimeType, "image/") {
			return "", "", domain.ErrUnsupportedMedia
		}
		return msg.Document.FileID, filepath.Ext(msg.Document.FileName), nil
	}
	return "", "", domain.ErrUnsupportedMedia
}

// captionOrdinal extracts the task ordinal from a media caption. The first
// field must be the number; the rest of the caption is free text.
func captionOrdinal(caption string) (int, error) {
	fields := strings.Fields(caption)
	if len(fields) == 0 {
		return 0, domain.ErrBadSubmissionFormat
	}
	ordinal, err := strconv.Atoi(fields[0])
	if err != nil {
		return 0, domain.ErrBadSubmissionFormat
	}
	return ordinal, nil
}
