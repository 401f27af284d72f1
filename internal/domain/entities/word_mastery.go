package entities

import "time"

// Scoring rule for quiz answers.
const (
	CorrectAnswerPoints = 10  // added for a correct answer
	WrongAnswerPenalty  = 20  // subtracted for a wrong answer
	MasteryThreshold    = 100 // score at which a word counts as mastered
)

// MasteryPolicy configures how scores are clamped and whether mastery can be lost.
type MasteryPolicy struct {
	Floor  int  // lowest score a word can drop to
	Sticky bool // once mastered, a word stays mastered
}

// DefaultMasteryPolicy floors scores at zero and evaluates mastery live from the score.
var DefaultMasteryPolicy = MasteryPolicy{Floor: 0, Sticky: false}

// WordMastery stores the learning state of a single word for one user.
type WordMastery struct {
	UserID         int64
	WordID         string
	TotalScore     int
	ReviewCount    int // quiz attempts on this word
	CorrectCount   int
	FirstSeenAt    time.Time
	LastReviewedAt *time.Time // nil until the first quiz attempt
	MasteredAt     *time.Time // first time the score reached MasteryThreshold
}

// NewWordMastery creates a zero-state record for a word seen for the first time.
func NewWordMastery(userID int64, wordID string, now time.Time) *WordMastery {
	return &WordMastery{
		UserID:      userID,
		WordID:      wordID,
		FirstSeenAt: now,
	}
}

// ApplyAnswer updates the record after a quiz answer and returns the
// nominal score delta (+10 or -20) shown to the learner.
func (m *WordMastery) ApplyAnswer(isCorrect bool, now time.Time, policy MasteryPolicy) int {
	delta := -WrongAnswerPenalty
	if isCorrect {
		delta = CorrectAnswerPoints
		m.CorrectCount++
	}

	m.TotalScore += delta
	if m.TotalScore < policy.Floor {
		m.TotalScore = policy.Floor
	}

	m.ReviewCount++
	m.LastReviewedAt = &now

	if m.MasteredAt == nil && m.TotalScore >= MasteryThreshold {
		m.MasteredAt = &now
	}

	return delta
}

// IsMastered reports whether the word counts as mastered under the policy.
func (m *WordMastery) IsMastered(policy MasteryPolicy) bool {
	if m.TotalScore >= MasteryThreshold {
		return true
	}
	return policy.Sticky && m.MasteredAt != nil
}

// Progress returns the score as a fraction of the mastery threshold, clamped to [0, 1].
func (m *WordMastery) Progress() float64 {
	p := float64(m.TotalScore) / MasteryThreshold
	return min(max(p, 0), 1)
}

// Accuracy returns the share of correct answers, or 0 without attempts.
func (m *WordMastery) Accuracy() float64 {
	if m.ReviewCount == 0 {
		return 0
	}
	return float64(m.CorrectCount) / float64(m.ReviewCount)
}
