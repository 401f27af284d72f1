package entities

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

func TestApplyAnswerScoring(t *testing.T) {
	m := NewWordMastery(1, "kitab", now)

	for range 5 {
		assert.Equal(t, 10, m.ApplyAnswer(true, now, DefaultMasteryPolicy))
	}
	assert.Equal(t, -20, m.ApplyAnswer(false, now, DefaultMasteryPolicy))

	assert.Equal(t, 30, m.TotalScore)
	assert.Equal(t, 6, m.ReviewCount)
	assert.Equal(t, 5, m.CorrectCount)
	assert.False(t, m.IsMastered(DefaultMasteryPolicy))
	assert.InDelta(t, 0.3, m.Progress(), 1e-9)
	require.NotNil(t, m.LastReviewedAt)
	assert.Equal(t, now, *m.LastReviewedAt)
}

func TestApplyAnswerReachesMasteryAfterTenCorrect(t *testing.T) {
	m := NewWordMastery(1, "bayt", now)

	for i := 1; i <= 10; i++ {
		m.ApplyAnswer(true, now, DefaultMasteryPolicy)
		if i < 10 {
			assert.False(t, m.IsMastered(DefaultMasteryPolicy), "mastered after %d answers", i)
			assert.Nil(t, m.MasteredAt)
		}
	}

	assert.True(t, m.IsMastered(DefaultMasteryPolicy))
	require.NotNil(t, m.MasteredAt)
	assert.Equal(t, 1.0, m.Progress())
}

func TestApplyAnswerFloor(t *testing.T) {
	m := NewWordMastery(1, "bab", now)

	m.ApplyAnswer(true, now, DefaultMasteryPolicy)
	m.ApplyAnswer(false, now, DefaultMasteryPolicy)
	assert.Equal(t, 0, m.TotalScore)

	m.ApplyAnswer(false, now, DefaultMasteryPolicy)
	assert.Equal(t, 0, m.TotalScore)
	assert.Equal(t, 0.0, m.Progress())

	negative := MasteryPolicy{Floor: -50}
	m.ApplyAnswer(false, now, negative)
	m.ApplyAnswer(false, now, negative)
	m.ApplyAnswer(false, now, negative)
	assert.Equal(t, -50, m.TotalScore)
	assert.Equal(t, 0.0, m.Progress())
}

func TestMasteryReversibility(t *testing.T) {
	m := NewWordMastery(1, "qalam", now)
	for range 10 {
		m.ApplyAnswer(true, now, DefaultMasteryPolicy)
	}
	m.ApplyAnswer(false, now, DefaultMasteryPolicy)

	assert.Equal(t, 80, m.TotalScore)
	assert.False(t, m.IsMastered(DefaultMasteryPolicy))
	assert.True(t, m.IsMastered(MasteryPolicy{Sticky: true}))
}

func TestAccuracy(t *testing.T) {
	m := NewWordMastery(1, "x", now)
	assert.Equal(t, 0.0, m.Accuracy())

	m.ApplyAnswer(true, now, DefaultMasteryPolicy)
	m.ApplyAnswer(false, now, DefaultMasteryPolicy)
	assert.InDelta(t, 0.5, m.Accuracy(), 1e-9)
}
