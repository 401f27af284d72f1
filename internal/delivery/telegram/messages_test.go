package telegram

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aliskhannn/arabic-stories-bot/internal/domain/entities"
	"github.com/aliskhannn/arabic-stories-bot/internal/service"
)

func TestBuildProgressBar(t *testing.T) {
	testCases := []struct {
		current, total, length int
		want                   string
	}{
		{0, 10, 5, "[░░░░░]"},
		{5, 10, 4, "[██░░]"},
		{10, 10, 3, "[███]"},
		{20, 10, 3, "[███]"},
		{1, 0, 3, "[░░░]"},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.want, buildProgressBar(tc.current, tc.total, tc.length))
	}
}

func TestFormatWordCardEscapes(t *testing.T) {
	w := &entities.Word{ID: "w1", Arabic: "كتاب", English: "book <n>", Transliteration: "kitab"}

	card := formatWordCard(w, 1, true)
	assert.Contains(t, card, "book &lt;n&gt;")
	assert.Contains(t, card, "kitab")
	assert.Contains(t, card, "mastered")
	assert.NotContains(t, card, "Part of speech")
}

func TestFormatAnswerFeedback(t *testing.T) {
	q := entities.QuizQuestion{Prompt: "كتاب", CorrectAnswer: "book"}

	correct := formatAnswerFeedback(entities.AnswerOutcome{Question: q, IsCorrect: true, Delta: 10, Streak: 3})
	assert.Contains(t, correct, "+10")
	assert.Contains(t, correct, "3 in a row")

	wrong := formatAnswerFeedback(entities.AnswerOutcome{Question: q, Delta: -20})
	assert.Contains(t, wrong, "-20")
	assert.Contains(t, wrong, "<b>book</b>")
}

func TestFormatQuizResultWithoutAnswers(t *testing.T) {
	s := entities.NewQuizSession("s", 1)
	assert.Contains(t, formatQuizResult(s), "before any answers")
}

func TestFormatStoryList(t *testing.T) {
	stories := []*entities.Story{
		{ID: "a", Title: "At <home>", Level: 1},
		{ID: "b", Title: "Market", Level: 2},
	}

	out := formatStoryList(stories, map[string]bool{"a": true})
	assert.Contains(t, out, "Level 1")
	assert.Contains(t, out, "Level 2")
	assert.Contains(t, out, "✅ At &lt;home&gt;")
	assert.Contains(t, out, "▫️ Market")
}

func TestFormatProgressListsWeakWords(t *testing.T) {
	summary := &service.ProgressSummary{Unlocked: 4, Mastered: 1, Learning: 2, NotStarted: 1, Accuracy: 0.5}
	weak := []service.WordProgress{{Word: &entities.Word{Arabic: "قلم", English: "pen"}, Score: -20}}

	out := formatProgress(summary, weak)
	assert.Contains(t, out, "50.0%")
	assert.Contains(t, out, "Needs practice")
	assert.Contains(t, out, "pen (-20)")
}
