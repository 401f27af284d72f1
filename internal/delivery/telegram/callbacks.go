package telegram

import (
	"context"
	"errors"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/arabic-stories-bot/internal/domain/entities"
	"github.com/aliskhannn/arabic-stories-bot/internal/service"
)

func (h *Handler) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	data := decodeCallback(cb.Data)
	userID := cb.From.ID
	chatID := cb.Message.Chat.ID
	messageID := cb.Message.MessageID

	// Toast shown to the user when the callback is answered.
	var toast string

	switch data.Action {
	case actionStories:
		_ = h.withErrorHandling(h.handleStories(userID))(ctx, chatID)

	case actionStory:
		_ = h.withErrorHandling(h.handleStory(userID, data.param(0)))(ctx, chatID)

	case actionWord:
		_ = h.withErrorHandling(h.handleWordCallback(userID, data.param(0)))(ctx, chatID)

	case actionDone:
		_ = h.withErrorHandling(h.handleDoneCallback(userID, messageID, data.param(0)))(ctx, chatID)

	case actionQuiz:
		switch data.param(0) {
		case quizStart:
			_ = h.withErrorHandling(h.handleQuizStart(userID))(ctx, chatID)
		case quizEnd:
			_ = h.withErrorHandling(h.handleQuizEnd(userID, messageID, data.param(1)))(ctx, chatID)
		default:
			h.logger.Warn("unknown quiz callback", zap.String("data", data.Raw))
		}

	case actionAnswer:
		index, err := strconv.Atoi(data.param(1))
		if err != nil {
			h.logger.Warn("invalid answer callback", zap.String("data", data.Raw))
			break
		}
		toast = h.answerQuiz(ctx, chatID, messageID, userID, data.param(0), index)

	case actionProgress:
		_ = h.withErrorHandling(h.handleProgress(userID))(ctx, chatID)

	case actionReset:
		_ = h.withErrorHandling(h.handleResetCallback(userID, messageID, data.param(0)))(ctx, chatID)

	default:
		h.logger.Warn("unknown callback", zap.String("data", data.Raw))
	}

	// Remove the user's "clock".
	h.answerCallback(cb.ID, toast)
}

// handleWordCallback shows the card of a tapped word and records the
// first encounter with it.
func (h *Handler) handleWordCallback(userID int64, wordID string) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		w, err := h.wordService.Get(wordID)
		if err != nil {
			return err
		}

		tracker, err := h.progressService.Tracker(ctx, userID)
		if err != nil {
			return err
		}
		tracker.Touch(w.ID)

		return h.sendWordCard(ctx, chatID, userID, w)
	}
}

// sendWordCard sends the word's meaning, with its pronunciation when there is
// an audio file. The previous card in the chat is removed.
func (h *Handler) sendWordCard(ctx context.Context, chatID, userID int64, w *entities.Word) error {
	tracker, err := h.progressService.Tracker(ctx, userID)
	if err != nil {
		return err
	}

	card := formatWordCard(w, tracker.Progress(w.ID), tracker.IsMastered(w.ID))

	var sent tgbotapi.Message
	if audio := buildWordAudio(w, chatID, h.audioDir, card); audio != nil {
		sent, err = h.bot.Send(audio)
		if err != nil {
			h.logger.Warn("failed to send word audio",
				zap.String("word_id", w.ID),
				zap.String("audio", w.Audio),
				zap.Error(err),
			)
		}
	}

	if sent.MessageID == 0 {
		sent, err = h.bot.Send(newHTMLMessage(chatID, card))
		if err != nil {
			return err
		}
	}

	if prev, ok := h.cards.Swap(userID, chatID, sent.MessageID); ok && prev.MessageID != sent.MessageID {
		h.deleteMessage(prev.ChatID, prev.MessageID)
	}

	return nil
}

// handleDoneCallback completes the story and unlocks its words.
func (h *Handler) handleDoneCallback(userID int64, messageID int, storyID string) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		story, err := h.storyService.Get(storyID)
		if err != nil {
			return err
		}

		if err := h.progressService.CompleteStory(ctx, userID, story); err != nil {
			return err
		}

		h.logger.Info("story completed",
			zap.Int64("user_id", userID),
			zap.String("story_id", story.ID),
		)

		// Swap the finish button for the practice one.
		vocab := h.storyService.Vocabulary(story)
		kb := buildStoryKeyboard(story, vocab, true)
		h.send(tgbotapi.NewEditMessageReplyMarkup(chatID, messageID, kb))

		msg := newHTMLMessage(chatID, formatStoryCompleted(story, len(vocab)))
		msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
			tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData("🎯 Start quiz", buildQuizStartCallback()),
			),
		)
		h.send(msg)
		return nil
	}
}

// answerQuiz applies the chosen option, replaces the question with feedback
// and sends either the next question or the result. It returns the toast text.
func (h *Handler) answerQuiz(ctx context.Context, chatID int64, messageID int, userID int64, sessionID string, index int) string {
	outcome, session, err := h.quizService.Answer(ctx, userID, sessionID, index)
	switch {
	case errors.Is(err, service.ErrSessionNotFound), errors.Is(err, entities.ErrSessionNotActive):
		h.send(newHTMLEdit(chatID, messageID, msgQuizExpired))
		return ""
	case errors.Is(err, service.ErrInvalidOption):
		h.logger.Warn("invalid quiz option",
			zap.String("session_id", sessionID),
			zap.Int("index", index),
		)
		return ""
	case err != nil:
		h.logger.Error("failed to answer quiz",
			zap.Int64("user_id", userID),
			zap.String("session_id", sessionID),
			zap.Error(err),
		)
		h.sendError(chatID, msgInternalError)
		return ""
	}

	h.send(newHTMLEdit(chatID, messageID, formatAnswerFeedback(outcome)))

	if outcome.Completed {
		msg := newHTMLMessage(chatID, formatQuizResult(session))
		msg.ReplyMarkup = buildQuizResultKeyboard()
		h.send(msg)
	} else if q, ok := session.Current(); ok {
		msg := newHTMLMessage(chatID, formatQuizQuestion(session, q))
		msg.ReplyMarkup = buildQuizAnswerKeyboard(session.ID, q)
		h.send(msg)
	}

	if outcome.IsCorrect {
		return "✅"
	}
	return "❌"
}

// handleQuizEnd stops the quiz early and shows the result so far.
func (h *Handler) handleQuizEnd(userID int64, messageID int, sessionID string) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		session, err := h.quizService.End(ctx, userID, sessionID)
		if errors.Is(err, service.ErrSessionNotFound) {
			h.send(newHTMLEdit(chatID, messageID, msgQuizExpired))
			return nil
		}
		if err != nil {
			return err
		}

		edit := newHTMLEdit(chatID, messageID, formatQuizResult(session))
		kb := buildQuizResultKeyboard()
		edit.ReplyMarkup = &kb
		h.send(edit)
		return nil
	}
}

func (h *Handler) handleResetCallback(userID int64, messageID int, choice string) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		if choice != resetConfirm {
			h.send(newHTMLEdit(chatID, messageID, msgResetCancelled))
			return nil
		}

		if err := h.resetService.ResetUser(ctx, userID); err != nil {
			return err
		}
		h.cards.Delete(userID)

		h.logger.Info("user progress reset", zap.Int64("user_id", userID))
		h.send(newHTMLEdit(chatID, messageID, msgResetDone))
		return nil
	}
}
