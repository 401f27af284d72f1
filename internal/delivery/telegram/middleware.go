package telegram

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/aliskhannn/arabic-stories-bot/internal/repository"
	"github.com/aliskhannn/arabic-stories-bot/internal/service"
)

type HandlerFunc func(ctx context.Context, chatID int64) error

// userErrors are expected failures the learner can act on.
var userErrors = []struct {
	err error
	msg string
}{
	{repository.ErrStoryNotFound, msgStoryNotFound},
	{repository.ErrWordNotFound, msgWordNotFound},
	{service.ErrNoUnlockedWords, msgNoUnlockedWords},
	{service.ErrNoQuestionsAvailable, msgNoQuestions},
}

// userMessage returns the reply for an expected failure.
func userMessage(err error) (string, bool) {
	for _, ue := range userErrors {
		if errors.Is(err, ue.err) {
			return ue.msg, true
		}
	}
	return "", false
}

func (h *Handler) withErrorHandling(fn HandlerFunc) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		err := fn(ctx, chatID)
		if err == nil {
			return nil
		}

		if msg, ok := userMessage(err); ok {
			h.logger.Debug("user error",
				zap.Int64("chat_id", chatID),
				zap.Error(err),
			)
			h.sendError(chatID, msg)
			return nil
		}

		h.logger.Error("handle error",
			zap.Int64("chat_id", chatID),
			zap.Error(err),
		)
		h.sendError(chatID, msgInternalError)
		return nil
	}
}
