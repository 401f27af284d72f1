package telegram

import (
	"path/filepath"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/arabic-stories-bot/internal/domain/entities"
)

func newHTMLMessage(chatID int64, text string) tgbotapi.MessageConfig {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	return msg
}

func newHTMLEdit(chatID int64, messageID int, text string) tgbotapi.EditMessageTextConfig {
	edit := tgbotapi.NewEditMessageText(chatID, messageID, text)
	edit.ParseMode = tgbotapi.ModeHTML
	return edit
}

// buildWordAudio returns the pronunciation file of the word with the card as
// caption, or nil when the word has no audio.
func buildWordAudio(w *entities.Word, chatID int64, audioDir, caption string) *tgbotapi.AudioConfig {
	if w.Audio == "" || audioDir == "" {
		return nil
	}

	path := filepath.Join(audioDir, filepath.Clean("/"+w.Audio))

	a := tgbotapi.NewAudio(chatID, tgbotapi.FilePath(path))
	a.Caption = caption
	a.ParseMode = tgbotapi.ModeHTML

	return &a
}
