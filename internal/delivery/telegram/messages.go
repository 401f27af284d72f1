package telegram

import (
	"fmt"
	"html"
	"strings"

	"github.com/aliskhannn/arabic-stories-bot/internal/domain/entities"
	"github.com/aliskhannn/arabic-stories-bot/internal/service"
)

const lrm = "\u200E"

const (
	msgWelcome = "<b>Ahlan wa sahlan!</b> 👋\n\n" +
		"Learn Arabic words by reading short stories.\n\n" +
		"1. Open a story with /stories\n" +
		"2. Tap the word buttons under it to see meanings and hear pronunciation\n" +
		"3. Press <b>Finish story</b> to unlock its words\n" +
		"4. Practice unlocked words with /quiz\n\n" +
		"Send /help to see all commands."

	msgHelp = "<b>Commands</b>\n\n" +
		"/stories - list stories\n" +
		"/story &lt;id&gt; - open a story\n" +
		"/quiz - practice unlocked words\n" +
		"/progress - your progress\n" +
		"/word &lt;text&gt; - look a word up\n" +
		"/reset - start over\n" +
		"/help - this message"

	msgInternalError       = "Something went wrong. Please try again later."
	msgUnknownCommand      = "Unknown command. Send /help to see what I can do."
	msgStoryNotFound       = "Story not found. Send /stories to see the list."
	msgNoStories           = "No stories yet."
	msgWordNotFound        = "Word not found."
	msgWordUsage           = "Usage: <code>/word kitab</code> or <code>/word book</code>"
	msgNoWordMatches       = "Nothing matches that word."
	msgNoUnlockedWords     = "You have no words to practice yet. Finish a story first: /stories"
	msgNoQuestions         = "Not enough words to build a quiz yet. Finish another story: /stories"
	msgQuizExpired         = "This quiz is no longer active. Start a new one with /quiz"
	msgProgressUnavailable = "Progress is unavailable right now."
	msgResetConfirm        = "⚠️ This deletes all your progress: finished stories, unlocked words and quiz history.\n\nAre you sure?"
	msgResetDone           = "Your progress has been reset."
	msgResetCancelled      = "Reset cancelled."
)

func formatStoryList(stories []*entities.Story, completed map[string]bool) string {
	var sb strings.Builder
	sb.WriteString("<b>📚 Stories</b>\n")

	level := 0
	for _, s := range stories {
		if s.Level != level {
			level = s.Level
			fmt.Fprintf(&sb, "\n<b>Level %d</b>\n", level)
		}
		mark := "▫️"
		if completed[s.ID] {
			mark = "✅"
		}
		fmt.Fprintf(&sb, "%s %s\n", mark, html.EscapeString(s.Title))
	}

	return sb.String()
}

func formatStoryHeader(story *entities.Story) string {
	return fmt.Sprintf("<b>%s</b>\n<i>Level %d</i>", html.EscapeString(story.Title), story.Level)
}

// formatWordCard formats a vocabulary entry with its mastery state.
func formatWordCard(w *entities.Word, progress float64, mastered bool) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s<b>%s</b>\n\n", lrm, html.EscapeString(w.Arabic))
	if w.Transliteration != "" {
		fmt.Fprintf(&sb, "<b>Transliteration:</b> %s\n", html.EscapeString(w.Transliteration))
	}
	fmt.Fprintf(&sb, "<b>Meaning:</b> %s\n", html.EscapeString(w.English))
	if w.PartOfSpeech != "" {
		fmt.Fprintf(&sb, "<b>Part of speech:</b> %s\n", html.EscapeString(w.PartOfSpeech))
	}

	status := buildProgressBar(int(progress*100), 100, 10)
	if mastered {
		status += " ✅ mastered"
	}
	fmt.Fprintf(&sb, "\n%s", status)

	return sb.String()
}

func formatSearchResults(words []*entities.Word) string {
	var sb strings.Builder
	sb.WriteString("<b>🔎 Found</b>\n\n")
	for _, w := range words {
		fmt.Fprintf(&sb, "%s%s - %s\n", lrm, html.EscapeString(w.Arabic), html.EscapeString(w.English))
	}
	return sb.String()
}

func formatStoryCompleted(story *entities.Story, unlocked int) string {
	return fmt.Sprintf(
		"🎉 You finished <b>%s</b>!\n\n%d words unlocked for practice.",
		html.EscapeString(story.Title),
		unlocked,
	)
}

func formatQuizQuestion(session *entities.QuizSession, q entities.QuizQuestion) string {
	ask := "What does this word mean?"
	if q.Type == entities.EnglishToArabic {
		ask = "How do you say this in Arabic?"
	}

	return fmt.Sprintf(
		"<i>Question %d of %d</i>\n\n%s\n\n%s<b>%s</b>",
		session.CurrentIndex+1,
		len(session.Questions),
		ask,
		lrm,
		html.EscapeString(q.Prompt),
	)
}

// formatAnswerFeedback formats feedback for a quiz answer.
func formatAnswerFeedback(outcome entities.AnswerOutcome) string {
	if outcome.IsCorrect {
		text := fmt.Sprintf("✅ Correct! <b>%+d</b>", outcome.Delta)
		if outcome.Streak > 1 {
			text += fmt.Sprintf("  🔥 %d in a row", outcome.Streak)
		}
		return text
	}

	return fmt.Sprintf(
		"❌ Wrong <b>%+d</b>\n%s<b>%s</b> = <b>%s</b>",
		outcome.Delta,
		lrm,
		html.EscapeString(outcome.Question.Prompt),
		html.EscapeString(outcome.Question.CorrectAnswer),
	)
}

func formatQuizResult(session *entities.QuizSession) string {
	answered := session.Answered()
	percentage := session.Accuracy() * 100

	emoji, message := "📚", "Keep reading and practicing!"
	switch {
	case answered == 0:
		emoji, message = "👋", "Quiz ended before any answers."
	case percentage >= 90:
		emoji, message = "🌟", "Excellent, mumtaz!"
	case percentage >= 70:
		emoji, message = "👍", "Good result!"
	case percentage >= 50:
		emoji, message = "💪", "Not bad, keep going!"
	}

	return fmt.Sprintf(
		"%s <b>Quiz finished!</b>\n\n"+
			"Result: <b>%d/%d (%.0f%%)</b>\n%s\n\n"+
			"Score: <b>%+d</b>\nBest streak: <b>%d</b>\n\n%s",
		emoji,
		session.CorrectCount,
		answered,
		percentage,
		buildProgressBar(session.CorrectCount, answered, 10),
		session.TotalScore,
		session.BestStreak,
		message,
	)
}

func formatProgress(summary *service.ProgressSummary, weakest []service.WordProgress) string {
	var sb strings.Builder

	fmt.Fprintf(&sb,
		"<b>📊 Your progress</b>\n\n"+
			"%s\n\n"+
			"📖 <b>Stories:</b> %d / %d\n"+
			"🔓 <b>Unlocked words:</b> %d\n"+
			"✅ <b>Mastered:</b> %d\n"+
			"📝 <b>Learning:</b> %d\n"+
			"⏳ <b>Not started:</b> %d\n\n"+
			"🎯 <b>Accuracy:</b> %.1f%%\n",
		buildProgressBar(summary.Mastered, summary.Unlocked, 20),
		summary.CompletedStories,
		summary.TotalStories,
		summary.Unlocked,
		summary.Mastered,
		summary.Learning,
		summary.NotStarted,
		summary.Accuracy*100,
	)

	if len(weakest) > 0 {
		sb.WriteString("\n<b>Needs practice:</b>\n")
		for _, wp := range weakest {
			fmt.Fprintf(&sb, "%s%s - %s (%d)\n",
				lrm,
				html.EscapeString(wp.Word.Arabic),
				html.EscapeString(wp.Word.English),
				wp.Score,
			)
		}
	}

	return sb.String()
}

// buildProgressBar creates ASCII progress bar.
func buildProgressBar(current, total, length int) string {
	if total <= 0 || current < 0 {
		return "[" + strings.Repeat("░", length) + "]"
	}

	filled := int(float64(current) / float64(total) * float64(length))
	if filled > length {
		filled = length
	}

	empty := length - filled

	bar := strings.Repeat("█", filled) + strings.Repeat("░", empty)
	return fmt.Sprintf("[%s]", bar)
}
