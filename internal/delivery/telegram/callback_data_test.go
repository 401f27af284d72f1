package telegram

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeCallback(t *testing.T) {
	testCases := []struct {
		name   string
		data   string
		action string
		params []string
	}{
		{"no params", "progress", actionProgress, []string{}},
		{"story", "story:s1", actionStory, []string{"s1"}},
		{"answer", "ans:3f6c:2", actionAnswer, []string{"3f6c", "2"}},
		{"quiz end", "quiz:end:abc", actionQuiz, []string{quizEnd, "abc"}},
		{"empty", "", "", []string{}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cd := decodeCallback(tc.data)
			assert.Equal(t, tc.action, cd.Action)
			assert.Equal(t, tc.params, cd.Params)
			assert.Equal(t, tc.data, cd.Raw)
		})
	}
}

func TestCallbackBuildersRoundTrip(t *testing.T) {
	cd := decodeCallback(buildQuizAnswerCallback("0b8e2a9c-5f0e-4a53-9a4e-6f1a2b3c4d5e", 3))
	assert.Equal(t, actionAnswer, cd.Action)
	assert.Equal(t, "0b8e2a9c-5f0e-4a53-9a4e-6f1a2b3c4d5e", cd.param(0))
	assert.Equal(t, "3", cd.param(1))
	assert.Equal(t, "", cd.param(2))

	assert.Equal(t, "done:s2", buildDoneCallback("s2"))
	assert.Equal(t, "word:w7", buildWordCallback("w7"))
	assert.Equal(t, "quiz:start", buildQuizStartCallback())
	assert.Equal(t, "reset:confirm", buildResetConfirmCallback())
	assert.Equal(t, "reset:cancel", buildResetCancelCallback())
}

func TestCallbackDataFitsTelegramLimit(t *testing.T) {
	// UUID session IDs are the longest parameter in use.
	sessionID := "0b8e2a9c-5f0e-4a53-9a4e-6f1a2b3c4d5e"

	for _, data := range []string{
		buildQuizAnswerCallback(sessionID, 3),
		buildQuizEndCallback(sessionID),
	} {
		require.LessOrEqual(t, len(data), 64, data)
	}
}
