package telegram

import (
	"strconv"
	"strings"
)

// Callback action constants.
const (
	actionStory    = "story"
	actionWord     = "word"
	actionDone     = "done"
	actionStories  = "stories"
	actionQuiz     = "quiz"
	actionAnswer   = "ans"
	actionProgress = "progress"
	actionReset    = "reset"
)

// Quiz sub-actions.
const (
	quizStart = "start"
	quizEnd   = "end"
)

const (
	resetConfirm = "confirm"
	resetCancel  = "cancel"
)

// callbackData represents structured callback data.
type callbackData struct {
	Action string
	Params []string
	Raw    string
}

// encode creates callback string.
func (cd callbackData) encode() string {
	if len(cd.Params) == 0 {
		return cd.Action
	}
	return cd.Action + ":" + strings.Join(cd.Params, ":")
}

// param returns the i-th parameter or an empty string.
func (cd callbackData) param(i int) string {
	if i < 0 || i >= len(cd.Params) {
		return ""
	}
	return cd.Params[i]
}

// decodeCallback parses callback data string.
func decodeCallback(data string) callbackData {
	parts := strings.Split(data, ":")
	return callbackData{
		Action: parts[0],
		Params: parts[1:],
		Raw:    data,
	}
}

func buildStoryCallback(storyID string) string {
	return callbackData{Action: actionStory, Params: []string{storyID}}.encode()
}

func buildStoriesCallback() string {
	return actionStories
}

func buildWordCallback(wordID string) string {
	return callbackData{Action: actionWord, Params: []string{wordID}}.encode()
}

// buildDoneCallback builds callback data for finishing a story.
func buildDoneCallback(storyID string) string {
	return callbackData{Action: actionDone, Params: []string{storyID}}.encode()
}

func buildQuizStartCallback() string {
	return callbackData{Action: actionQuiz, Params: []string{quizStart}}.encode()
}

func buildQuizEndCallback(sessionID string) string {
	return callbackData{Action: actionQuiz, Params: []string{quizEnd, sessionID}}.encode()
}

// buildQuizAnswerCallback builds callback data for answering a quiz question.
// The answer is referenced by option index so long options fit the 64 byte limit.
func buildQuizAnswerCallback(sessionID string, optionIndex int) string {
	return callbackData{
		Action: actionAnswer,
		Params: []string{sessionID, strconv.Itoa(optionIndex)},
	}.encode()
}

func buildProgressCallback() string {
	return actionProgress
}

func buildResetConfirmCallback() string {
	return callbackData{Action: actionReset, Params: []string{resetConfirm}}.encode()
}

func buildResetCancelCallback() string {
	return callbackData{Action: actionReset, Params: []string{resetCancel}}.encode()
}
