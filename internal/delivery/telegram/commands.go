package telegram

import (
	"context"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// weakestWordsShown is how many low-score words the progress screen lists.
const weakestWordsShown = 5

func (h *Handler) handleCommand(ctx context.Context, m *tgbotapi.Message) {
	userID := m.From.ID
	chatID := m.Chat.ID
	args := strings.TrimSpace(m.CommandArguments())

	switch m.Command() {
	case "start":
		msg := newHTMLMessage(chatID, msgWelcome)
		msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
			tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData("📚 Stories", buildStoriesCallback()),
			),
		)
		h.send(msg)

	case "help":
		h.send(newHTMLMessage(chatID, msgHelp))

	case "stories":
		_ = h.withErrorHandling(h.handleStories(userID))(ctx, chatID)

	case "story":
		if args == "" {
			_ = h.withErrorHandling(h.handleStories(userID))(ctx, chatID)
			return
		}
		_ = h.withErrorHandling(h.handleStory(userID, args))(ctx, chatID)

	case "quiz":
		_ = h.withErrorHandling(h.handleQuizStart(userID))(ctx, chatID)

	case "progress":
		_ = h.withErrorHandling(h.handleProgress(userID))(ctx, chatID)

	case "word":
		if args == "" {
			h.send(newHTMLMessage(chatID, msgWordUsage))
			return
		}
		_ = h.withErrorHandling(h.handleSearch(userID, args))(ctx, chatID)

	case "reset":
		msg := newHTMLMessage(chatID, msgResetConfirm)
		msg.ReplyMarkup = buildResetKeyboard()
		h.send(msg)

	default:
		h.send(newHTMLMessage(chatID, msgUnknownCommand))
	}
}

// handleStories lists all stories, marking the finished ones.
func (h *Handler) handleStories(userID int64) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		stories := h.storyService.List()
		if len(stories) == 0 {
			h.send(newHTMLMessage(chatID, msgNoStories))
			return nil
		}

		completed, err := h.progressService.CompletedStoryIDs(ctx, userID)
		if err != nil {
			return err
		}

		msg := newHTMLMessage(chatID, formatStoryList(stories, completed))
		msg.ReplyMarkup = buildStoryListKeyboard(stories, completed)
		h.send(msg)
		return nil
	}
}

// handleStory sends the story text. Long stories are split over several
// messages, the last one carries the word buttons.
func (h *Handler) handleStory(userID int64, storyID string) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		story, err := h.storyService.Get(storyID)
		if err != nil {
			return err
		}

		completed, err := h.progressService.CompletedStoryIDs(ctx, userID)
		if err != nil {
			return err
		}

		h.logger.Debug("rendering story",
			zap.Int64("user_id", userID),
			zap.String("story_id", story.ID),
		)

		blocks := append([][]fragment{{rawFragment(formatStoryHeader(story))}}, storyFragments(h.storyService.Render(story))...)
		pages := paginate(blocks, maxMessageLen)

		for i, page := range pages {
			msg := newHTMLMessage(chatID, page)
			if i == len(pages)-1 {
				msg.ReplyMarkup = buildStoryKeyboard(story, h.storyService.Vocabulary(story), completed[story.ID])
			}
			h.send(msg)
		}

		return nil
	}
}

// handleSearch looks the text up in the vocabulary. A single hit opens its
// card right away.
func (h *Handler) handleSearch(userID int64, query string) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		words := h.wordService.Search(query)

		switch len(words) {
		case 0:
			h.send(newHTMLMessage(chatID, msgNoWordMatches))
		case 1:
			return h.sendWordCard(ctx, chatID, userID, words[0])
		default:
			msg := newHTMLMessage(chatID, formatSearchResults(words))
			msg.ReplyMarkup = buildSearchKeyboard(words)
			h.send(msg)
		}

		return nil
	}
}

// handleQuizStart starts a new quiz and sends its first question.
func (h *Handler) handleQuizStart(userID int64) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		session, err := h.quizService.Start(ctx, userID)
		if err != nil {
			return err
		}

		h.logger.Debug("quiz session created",
			zap.Int64("user_id", userID),
			zap.String("session_id", session.ID),
			zap.Int("questions", len(session.Questions)),
		)

		q, ok := session.Current()
		if !ok {
			h.send(newHTMLMessage(chatID, msgNoQuestions))
			return nil
		}

		msg := newHTMLMessage(chatID, formatQuizQuestion(session, q))
		msg.ReplyMarkup = buildQuizAnswerKeyboard(session.ID, q)
		h.send(msg)
		return nil
	}
}

// handleProgress displays user progress.
func (h *Handler) handleProgress(userID int64) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		h.logger.Debug("rendering progress", zap.Int64("user_id", userID))

		summary, err := h.progressService.GetProgressSummary(ctx, userID)
		if err != nil {
			h.logger.Error("failed to get progress summary",
				zap.Int64("user_id", userID),
				zap.Error(err),
			)
			h.send(newHTMLMessage(chatID, msgProgressUnavailable))
			return nil
		}

		weakest, err := h.progressService.WeakestWords(ctx, userID, weakestWordsShown)
		if err != nil {
			h.logger.Warn("failed to get weakest words",
				zap.Int64("user_id", userID),
				zap.Error(err),
			)
		}

		msg := newHTMLMessage(chatID, formatProgress(summary, weakest))
		msg.ReplyMarkup = buildProgressKeyboard()
		h.send(msg)
		return nil
	}
}
