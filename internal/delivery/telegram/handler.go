package telegram

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

type Handler struct {
	bot      *tgbotapi.BotAPI
	logger   *zap.Logger
	audioDir string

	userService     UserService
	storyService    StoryService
	wordService     WordService
	progressService ProgressService
	quizService     QuizService
	resetService    ResetService
	cards           CardStorage
}

func NewHandler(
	bot *tgbotapi.BotAPI,
	logger *zap.Logger,
	audioDir string,
	userService UserService,
	storyService StoryService,
	wordService WordService,
	progressService ProgressService,
	quizService QuizService,
	resetService ResetService,
	cards CardStorage,
) *Handler {
	return &Handler{
		bot:             bot,
		logger:          logger,
		audioDir:        audioDir,
		userService:     userService,
		storyService:    storyService,
		wordService:     wordService,
		progressService: progressService,
		quizService:     quizService,
		resetService:    resetService,
		cards:           cards,
	}
}

func (h *Handler) Run(ctx context.Context) error {
	h.logger.Info("telegram handler started")
	defer h.logger.Info("telegram handler stopped")

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := h.bot.GetUpdatesChan(u)
	defer h.bot.StopReceivingUpdates()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case update := <-updates:
			h.handleUpdate(ctx, update)
		}
	}
}

func (h *Handler) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	if cb := update.CallbackQuery; cb != nil {
		if cb.Message == nil {
			return
		}

		h.logger.Debug("callback received",
			zap.Int64("user_id", cb.From.ID),
			zap.String("data", cb.Data),
		)
		if !h.ensureUser(ctx, cb.From.ID, cb.Message.Chat.ID) {
			return
		}
		h.handleCallback(ctx, cb)
		return
	}

	if update.Message == nil || update.Message.From == nil {
		h.logger.Debug("update without message and callback")
		return
	}

	h.logger.Debug("update received",
		zap.Int64("chat_id", update.Message.Chat.ID),
		zap.String("text", update.Message.Text),
	)

	userID := update.Message.From.ID
	chatID := update.Message.Chat.ID

	if !h.ensureUser(ctx, userID, chatID) {
		return
	}

	if update.Message.IsCommand() {
		h.handleCommand(ctx, update.Message)
		return
	}

	_ = h.withErrorHandling(h.handleSearch(userID, update.Message.Text))(ctx, chatID)
}

// ensureUser registers the user before anything is stored for them.
func (h *Handler) ensureUser(ctx context.Context, userID, chatID int64) bool {
	created, err := h.userService.EnsureUser(ctx, userID, chatID)
	if err != nil {
		h.logger.Error("failed to ensure user",
			zap.Int64("user_id", userID),
			zap.Error(err),
		)
		h.sendError(chatID, msgInternalError)
		return false
	}

	if created {
		h.logger.Info("new user", zap.Int64("user_id", userID))
	}
	return true
}

func (h *Handler) sendError(chatID int64, err string) {
	msg := newHTMLMessage(chatID, err)
	h.send(msg)
}

func (h *Handler) send(c tgbotapi.Chattable) {
	if _, err := h.bot.Send(c); err != nil {
		h.logger.Error("failed to send telegram message",
			zap.Error(err),
		)
	}
}

// answerCallback removes the loading indicator, optionally with a toast.
func (h *Handler) answerCallback(cbID, text string) {
	if _, err := h.bot.Request(tgbotapi.NewCallback(cbID, text)); err != nil {
		h.logger.Warn("failed to answer callback", zap.Error(err))
	}
}

func (h *Handler) deleteMessage(chatID int64, messageID int) {
	if _, err := h.bot.Request(tgbotapi.NewDeleteMessage(chatID, messageID)); err != nil {
		h.logger.Debug("failed to delete message",
			zap.Int64("chat_id", chatID),
			zap.Int("message_id", messageID),
			zap.Error(err),
		)
	}
}
