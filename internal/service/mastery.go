package service

import (
	"sync"
	"time"

	"github.com/aliskhannn/arabic-stories-bot/internal/domain/entities"
)

// MasteryTracker owns the word mastery records of a single user.
// Every method is one critical section, so concurrent answers for the
// same word never lose an update.
type MasteryTracker struct {
	mu      sync.Mutex
	userID  int64
	policy  entities.MasteryPolicy
	records map[string]*entities.WordMastery
	dirty   map[string]struct{}
	now     func() time.Time

	// saveMu is held while the records are written to or wiped from storage.
	saveMu  sync.Mutex
	retired bool
}

// NewMasteryTracker creates an empty tracker for userID.
func NewMasteryTracker(userID int64, policy entities.MasteryPolicy) *MasteryTracker {
	return &MasteryTracker{
		userID:  userID,
		policy:  policy,
		records: make(map[string]*entities.WordMastery),
		dirty:   make(map[string]struct{}),
		now:     time.Now,
	}
}

// UserID returns the owner of the tracked records.
func (t *MasteryTracker) UserID() int64 {
	return t.userID
}

// Load replaces the in-memory records with persisted ones. Loaded records are clean.
func (t *MasteryTracker) Load(records []*entities.WordMastery) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.records = make(map[string]*entities.WordMastery, len(records))
	t.dirty = make(map[string]struct{})
	for _, r := range records {
		cp := *r
		cp.UserID = t.userID
		t.records[r.WordID] = &cp
	}
}

// getOrCreate returns the record for wordID, creating a zero-state one on first encounter.
// Caller must hold t.mu.
func (t *MasteryTracker) getOrCreate(wordID string) *entities.WordMastery {
	rec, ok := t.records[wordID]
	if !ok {
		rec = entities.NewWordMastery(t.userID, wordID, t.now())
		t.records[wordID] = rec
		t.dirty[wordID] = struct{}{}
	}
	return rec
}

// Touch records a first encounter of the word, e.g. from a story.
func (t *MasteryTracker) Touch(wordID string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.getOrCreate(wordID)
}

// RecordAnswer applies a quiz answer to the word and returns the updated record.
// Unknown words start from a zero-state record.
func (t *MasteryTracker) RecordAnswer(wordID string, isCorrect bool) entities.WordMastery {
	t.mu.Lock()
	defer t.mu.Unlock()

	rec := t.getOrCreate(wordID)
	rec.ApplyAnswer(isCorrect, t.now(), t.policy)
	t.dirty[wordID] = struct{}{}

	return *rec
}

// Record returns a copy of the record for wordID.
func (t *MasteryTracker) Record(wordID string) (entities.WordMastery, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	rec, ok := t.records[wordID]
	if !ok {
		return entities.WordMastery{}, false
	}
	return *rec, true
}

// TotalScore returns the score of the word, zero when it has never been seen.
func (t *MasteryTracker) TotalScore(wordID string) int {
	rec, _ := t.Record(wordID)
	return rec.TotalScore
}

// IsMastered reports whether the word reached the mastery threshold.
func (t *MasteryTracker) IsMastered(wordID string) bool {
	rec, ok := t.Record(wordID)
	if !ok {
		return false
	}
	return rec.IsMastered(t.policy)
}

// Progress returns the word's progress towards mastery in [0, 1].
func (t *MasteryTracker) Progress(wordID string) float64 {
	rec, _ := t.Record(wordID)
	return rec.Progress()
}

// Snapshot returns copies of all records.
func (t *MasteryTracker) Snapshot() []entities.WordMastery {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make([]entities.WordMastery, 0, len(t.records))
	for _, rec := range t.records {
		out = append(out, *rec)
	}
	return out
}

// Dirty returns copies of records changed since they were last saved.
func (t *MasteryTracker) Dirty() []entities.WordMastery {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make([]entities.WordMastery, 0, len(t.dirty))
	for id := range t.dirty {
		out = append(out, *t.records[id])
	}
	return out
}

// MarkClean clears the dirty flag of saved records that have not changed since the save.
func (t *MasteryTracker) MarkClean(saved []entities.WordMastery) {
	t.mu.Lock()
	defer t.mu.Unlock()

	for _, s := range saved {
		cur, ok := t.records[s.WordID]
		if !ok || cur.ReviewCount != s.ReviewCount || cur.TotalScore != s.TotalScore {
			continue
		}
		delete(t.dirty, s.WordID)
	}
}
