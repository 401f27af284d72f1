package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/aliskhannn/arabic-stories-bot/internal/domain/entities"
)

// ProgressSummary contains aggregated progress statistics for a user.
type ProgressSummary struct {
	Unlocked         int
	Mastered         int
	Learning         int // unlocked and answered at least once, not mastered
	NotStarted       int // unlocked, never answered
	CompletedStories int
	TotalStories     int
	Accuracy         float64 // across all quiz answers
	AverageProgress  float64 // mean progress of unlocked words, in [0, 1]
}

// WordProgress is the mastery state of one unlocked word.
type WordProgress struct {
	Word     *entities.Word
	Score    int
	Progress float64
	Mastered bool
}

// ProgressService keeps one MasteryTracker per user and persists it.
type ProgressService struct {
	words        WordRepository
	stories      StoryRepository
	masteryRepo  MasteryRepository
	progressRepo ProgressRepository
	policy       entities.MasteryPolicy
	logger       *zap.Logger

	mu       sync.Mutex
	trackers map[int64]*MasteryTracker
}

func NewProgressService(
	words WordRepository,
	stories StoryRepository,
	masteryRepo MasteryRepository,
	progressRepo ProgressRepository,
	policy entities.MasteryPolicy,
	logger *zap.Logger,
) *ProgressService {
	return &ProgressService{
		words:        words,
		stories:      stories,
		masteryRepo:  masteryRepo,
		progressRepo: progressRepo,
		policy:       policy,
		logger:       logger,
		trackers:     make(map[int64]*MasteryTracker),
	}
}

// Tracker returns the user's tracker, loading persisted records on first use.
func (s *ProgressService) Tracker(ctx context.Context, userID int64) (*MasteryTracker, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if t, ok := s.trackers[userID]; ok {
		return t, nil
	}

	records, err := s.masteryRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load mastery: %w", err)
	}

	t := NewMasteryTracker(userID, s.policy)
	t.Load(records)
	s.trackers[userID] = t

	return t, nil
}

// CompleteStory marks the story as read, unlocks its vocabulary and
// creates zero-state mastery records for newly seen words.
func (s *ProgressService) CompleteStory(ctx context.Context, userID int64, story *entities.Story) error {
	t, err := s.Tracker(ctx, userID)
	if err != nil {
		return err
	}

	if err := s.progressRepo.CompleteStory(ctx, userID, story.ID, story.WordIDs, time.Now()); err != nil {
		return fmt.Errorf("complete story %s: %w", story.ID, err)
	}

	for _, id := range story.WordIDs {
		t.Touch(id)
	}

	// The story is complete at this point; the flusher retries the records.
	if err := s.Save(ctx, userID); err != nil {
		s.logger.Error("failed to save mastery",
			zap.Error(err),
			zap.Int64("user_id", userID),
			zap.String("story_id", story.ID),
		)
	}

	return nil
}

// UnlockedWords returns the words from completed stories, in unlock order.
// IDs missing from the vocabulary are skipped.
func (s *ProgressService) UnlockedWords(ctx context.Context, userID int64) ([]*entities.Word, error) {
	ids, err := s.progressRepo.GetUnlockedWordIDs(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get unlocked words: %w", err)
	}

	words := make([]*entities.Word, 0, len(ids))
	for _, id := range ids {
		w, err := s.words.GetByID(id)
		if err != nil {
			s.logger.Warn("unlocked word missing from vocabulary",
				zap.Int64("user_id", userID),
				zap.String("word_id", id),
			)
			continue
		}
		words = append(words, w)
	}

	return words, nil
}

// WordsProgress returns the mastery state of every unlocked word.
func (s *ProgressService) WordsProgress(ctx context.Context, userID int64) ([]WordProgress, error) {
	t, err := s.Tracker(ctx, userID)
	if err != nil {
		return nil, err
	}

	words, err := s.UnlockedWords(ctx, userID)
	if err != nil {
		return nil, err
	}

	out := make([]WordProgress, 0, len(words))
	for _, w := range words {
		out = append(out, WordProgress{
			Word:     w,
			Score:    t.TotalScore(w.ID),
			Progress: t.Progress(w.ID),
			Mastered: t.IsMastered(w.ID),
		})
	}
	return out, nil
}

// WeakestWords returns up to n unlocked, unmastered words with the lowest scores.
func (s *ProgressService) WeakestWords(ctx context.Context, userID int64, n int) ([]WordProgress, error) {
	all, err := s.WordsProgress(ctx, userID)
	if err != nil {
		return nil, err
	}

	weak := make([]WordProgress, 0, len(all))
	for _, wp := range all {
		if !wp.Mastered {
			weak = append(weak, wp)
		}
	}
	sort.SliceStable(weak, func(i, j int) bool { return weak[i].Score < weak[j].Score })

	return takeFirst(weak, n), nil
}

// GetProgressSummary aggregates the user's progress over unlocked words.
func (s *ProgressService) GetProgressSummary(ctx context.Context, userID int64) (*ProgressSummary, error) {
	t, err := s.Tracker(ctx, userID)
	if err != nil {
		return nil, err
	}

	ids, err := s.progressRepo.GetUnlockedWordIDs(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get unlocked words: %w", err)
	}

	completed, err := s.progressRepo.GetCompletedStoryIDs(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get completed stories: %w", err)
	}

	summary := &ProgressSummary{
		Unlocked:         len(ids),
		CompletedStories: len(completed),
		TotalStories:     len(s.stories.GetAll()),
	}

	var progressSum float64
	var answers, correct int
	for _, id := range ids {
		rec, ok := t.Record(id)
		switch {
		case ok && rec.IsMastered(s.policy):
			summary.Mastered++
		case ok && rec.ReviewCount > 0:
			summary.Learning++
		default:
			summary.NotStarted++
		}
		progressSum += rec.Progress()
		answers += rec.ReviewCount
		correct += rec.CorrectCount
	}

	if len(ids) > 0 {
		summary.AverageProgress = progressSum / float64(len(ids))
	}
	if answers > 0 {
		summary.Accuracy = float64(correct) / float64(answers)
	}

	return summary, nil
}

// CompletedStoryIDs returns the IDs of stories the user has finished.
func (s *ProgressService) CompletedStoryIDs(ctx context.Context, userID int64) (map[string]bool, error) {
	ids, err := s.progressRepo.GetCompletedStoryIDs(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get completed stories: %w", err)
	}

	out := make(map[string]bool, len(ids))
	for _, id := range ids {
		out[id] = true
	}
	return out, nil
}

// Save persists the user's changed mastery records.
func (s *ProgressService) Save(ctx context.Context, userID int64) error {
	s.mu.Lock()
	t, ok := s.trackers[userID]
	s.mu.Unlock()
	if !ok {
		return nil
	}

	return s.save(ctx, t)
}

func (s *ProgressService) save(ctx context.Context, t *MasteryTracker) error {
	t.saveMu.Lock()
	defer t.saveMu.Unlock()

	if t.retired {
		return nil
	}

	dirty := t.Dirty()
	if len(dirty) == 0 {
		return nil
	}

	if err := s.masteryRepo.SaveAll(ctx, t.UserID(), dirty); err != nil {
		return fmt.Errorf("save mastery for user %d: %w", t.UserID(), err)
	}
	t.MarkClean(dirty)

	return nil
}

// Reset runs wipe and then drops the user's tracker without saving it.
// No save of the old tracker can run during or after wipe.
func (s *ProgressService) Reset(ctx context.Context, userID int64, wipe func(ctx context.Context, userID int64) error) error {
	s.mu.Lock()
	t := s.trackers[userID]
	s.mu.Unlock()

	if t != nil {
		t.saveMu.Lock()
		defer t.saveMu.Unlock()
	}

	if err := wipe(ctx, userID); err != nil {
		return err
	}

	if t != nil {
		t.retired = true
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if cur, ok := s.trackers[userID]; ok && cur == t {
		delete(s.trackers, userID)
	}

	return nil
}

// FlushAll saves every tracker with pending changes. A failing user does not
// stop the others; all errors are returned joined.
func (s *ProgressService) FlushAll(ctx context.Context) error {
	s.mu.Lock()
	trackers := make([]*MasteryTracker, 0, len(s.trackers))
	for _, t := range s.trackers {
		trackers = append(trackers, t)
	}
	s.mu.Unlock()

	var errs []error
	for _, t := range trackers {
		if err := s.save(ctx, t); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}
