package entities

import (
	"errors"
	"time"
)

var ErrSessionNotActive = errors.New("quiz session is not in progress")

// SessionStatus is the state of a quiz session.
type SessionStatus string

const (
	SessionNotStarted SessionStatus = "not_started"
	SessionInProgress SessionStatus = "in_progress"
	SessionComplete   SessionStatus = "complete"
)

// QuizSession is one run through a sequence of questions.
// Status moves NotStarted -> InProgress -> Complete and never back.
type QuizSession struct {
	ID            string
	UserID        int64
	Questions     []QuizQuestion
	CurrentIndex  int
	TotalScore    int // sum of answer deltas, not floored
	CorrectCount  int
	WrongCount    int
	CurrentStreak int // consecutive correct answers
	BestStreak    int
	Status        SessionStatus
	Skipped       []string // word IDs no question could be built for
	StartedAt     time.Time
	CompletedAt   *time.Time
}

// NewQuizSession creates a session that has not started yet.
func NewQuizSession(id string, userID int64) *QuizSession {
	return &QuizSession{
		ID:     id,
		UserID: userID,
		Status: SessionNotStarted,
	}
}

// AnswerOutcome describes the effect of one answer, for immediate feedback.
type AnswerOutcome struct {
	Question  QuizQuestion
	Selected  string
	IsCorrect bool
	Delta     int  // +10 or -20
	Streak    int  // streak after this answer
	Completed bool // this answer finished the session
}

// Start moves the session to InProgress with the given questions.
// A session without questions completes immediately.
func (s *QuizSession) Start(questions []QuizQuestion, now time.Time) error {
	if s.Status != SessionNotStarted {
		return ErrSessionNotActive
	}

	s.Questions = questions
	s.CurrentIndex = 0
	s.TotalScore = 0
	s.CorrectCount = 0
	s.WrongCount = 0
	s.CurrentStreak = 0
	s.BestStreak = 0
	s.StartedAt = now
	s.Status = SessionInProgress

	if len(questions) == 0 {
		s.complete(now)
	}
	return nil
}

// Current returns the question waiting for an answer.
func (s *QuizSession) Current() (QuizQuestion, bool) {
	if s.Status != SessionInProgress || s.CurrentIndex >= len(s.Questions) {
		return QuizQuestion{}, false
	}
	return s.Questions[s.CurrentIndex], true
}

// Answer checks the selected option against the current question and advances.
// Outside InProgress it returns ErrSessionNotActive and changes nothing.
func (s *QuizSession) Answer(option string, now time.Time) (AnswerOutcome, error) {
	q, ok := s.Current()
	if !ok {
		return AnswerOutcome{}, ErrSessionNotActive
	}

	out := AnswerOutcome{
		Question:  q,
		Selected:  option,
		IsCorrect: option == q.CorrectAnswer,
	}

	if out.IsCorrect {
		out.Delta = CorrectAnswerPoints
		s.CorrectCount++
		s.CurrentStreak++
		s.BestStreak = max(s.BestStreak, s.CurrentStreak)
	} else {
		out.Delta = -WrongAnswerPenalty
		s.WrongCount++
		s.CurrentStreak = 0
	}
	s.TotalScore += out.Delta
	s.CurrentIndex++
	out.Streak = s.CurrentStreak

	if s.CurrentIndex == len(s.Questions) {
		s.complete(now)
		out.Completed = true
	}

	return out, nil
}

// End forces an in-progress session to Complete, keeping the answers so far.
// It is a no-op in any other state.
func (s *QuizSession) End(now time.Time) {
	if s.Status != SessionInProgress {
		return
	}
	s.complete(now)
}

// IsComplete reports whether the session reached its terminal state.
func (s *QuizSession) IsComplete() bool {
	return s.Status == SessionComplete
}

// Answered returns the number of questions answered so far.
func (s *QuizSession) Answered() int {
	return s.CorrectCount + s.WrongCount
}

// Accuracy returns the share of correct answers among answered questions.
func (s *QuizSession) Accuracy() float64 {
	n := s.Answered()
	if n == 0 {
		return 0
	}
	return float64(s.CorrectCount) / float64(n)
}

func (s *QuizSession) complete(now time.Time) {
	s.Status = SessionComplete
	s.CompletedAt = &now
}
