package service

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/aliskhannn/arabic-stories-bot/internal/domain/entities"
	"github.com/aliskhannn/arabic-stories-bot/internal/text"
)

// DefaultOptionsCount is the number of choices shown for every question.
const DefaultOptionsCount = 4

var (
	ErrInsufficientDistractors = errors.New("not enough distractors")
	ErrUnknownQuestionType     = errors.New("unknown question type")
)

// InsufficientDistractorsError means a question cannot be built for a word.
// Callers skip the word rather than fail the quiz.
type InsufficientDistractorsError struct {
	WordID string
	Need   int
	Have   int
}

func (e *InsufficientDistractorsError) Error() string {
	return fmt.Sprintf("word %s: need %d distractors, have %d", e.WordID, e.Need, e.Have)
}

func (e *InsufficientDistractorsError) Is(target error) bool {
	return target == ErrInsufficientDistractors
}

// QuizGenerator builds multiple choice questions and quiz sessions.
// Distractors are drawn from the whole vocabulary.
type QuizGenerator struct {
	vocabulary   []*entities.Word
	optionsCount int

	mu  sync.Mutex // guards rng
	rng *rand.Rand
	now func() time.Time
}

// NewQuizGenerator creates a generator over the vocabulary.
// A nil rng is seeded from the clock.
func NewQuizGenerator(vocabulary []*entities.Word, rng *rand.Rand) *QuizGenerator {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &QuizGenerator{
		vocabulary:   vocabulary,
		optionsCount: DefaultOptionsCount,
		rng:          rng,
		now:          time.Now,
	}
}

// BuildQuestion creates a question about word with options drawn from distractorPool.
// The correct answer is placed at a random position.
func (g *QuizGenerator) BuildQuestion(
	word *entities.Word,
	distractorPool []*entities.Word,
	questionType entities.QuestionType,
) (entities.QuizQuestion, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.buildQuestion(word, distractorPool, questionType)
}

func (g *QuizGenerator) buildQuestion(
	word *entities.Word,
	distractorPool []*entities.Word,
	questionType entities.QuestionType,
) (entities.QuizQuestion, error) {
	if questionType != entities.ArabicToEnglish && questionType != entities.EnglishToArabic {
		return entities.QuizQuestion{}, fmt.Errorf("%w: %q", ErrUnknownQuestionType, questionType)
	}

	correct := answerText(word, questionType)
	need := g.optionsCount - 1

	wrong := g.pickDistractors(word, distractorPool, questionType, need)
	if len(wrong) < need {
		return entities.QuizQuestion{}, &InsufficientDistractorsError{
			WordID: word.ID,
			Need:   need,
			Have:   len(wrong),
		}
	}

	// Randomly place the correct answer.
	correctIndex := g.rng.Intn(g.optionsCount)

	options := make([]string, 0, g.optionsCount)
	options = append(options, wrong[:correctIndex]...)
	options = append(options, correct)
	options = append(options, wrong[correctIndex:]...)

	return entities.QuizQuestion{
		WordID:        word.ID,
		Type:          questionType,
		Prompt:        promptText(word, questionType),
		Options:       options,
		CorrectIndex:  correctIndex,
		CorrectAnswer: correct,
	}, nil
}

// pickDistractors draws up to count answer texts that differ from the word's
// answer and from each other. Words with the same part of speech go first.
func (g *QuizGenerator) pickDistractors(
	word *entities.Word,
	pool []*entities.Word,
	questionType entities.QuestionType,
	count int,
) []string {
	candidates := make([]*entities.Word, 0, len(pool))
	for _, w := range pool {
		if w == nil || w.ID == word.ID || answerText(w, questionType) == "" {
			continue
		}
		candidates = append(candidates, w)
	}

	g.rng.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})

	if word.PartOfSpeech != "" {
		same := make([]*entities.Word, 0, len(candidates))
		other := make([]*entities.Word, 0, len(candidates))
		for _, c := range candidates {
			if c.PartOfSpeech == word.PartOfSpeech {
				same = append(same, c)
			} else {
				other = append(other, c)
			}
		}
		candidates = append(same, other...)
	}

	used := map[string]bool{answerKey(answerText(word, questionType), questionType): true}
	out := make([]string, 0, count)
	for _, c := range candidates {
		if len(out) == count {
			break
		}

		opt := answerText(c, questionType)
		key := answerKey(opt, questionType)
		if used[key] {
			continue
		}
		used[key] = true
		out = append(out, opt)
	}

	return out
}

// RunQuizSession builds a started session over up to size words drawn from
// pool without replacement. A word that cannot get enough distractors is
// listed in Skipped and the next candidate is tried instead.
func (g *QuizGenerator) RunQuizSession(pool []*entities.Word, size int) *entities.QuizSession {
	g.mu.Lock()
	defer g.mu.Unlock()

	questions := make([]entities.QuizQuestion, 0, max(size, 0))
	var skipped []string
	for _, w := range g.shuffled(uniqueWords(pool)) {
		if len(questions) >= size {
			break
		}

		qType := entities.QuestionTypes[g.rng.Intn(len(entities.QuestionTypes))]
		q, err := g.buildQuestion(w, g.vocabulary, qType)
		if err != nil {
			skipped = append(skipped, w.ID)
			continue
		}
		questions = append(questions, q)
	}

	session := entities.NewQuizSession(uuid.NewString(), 0)
	session.Skipped = skipped
	_ = session.Start(questions, g.now())

	return session
}

func answerText(w *entities.Word, questionType entities.QuestionType) string {
	if questionType == entities.EnglishToArabic {
		return w.Arabic
	}
	return w.English
}

func promptText(w *entities.Word, questionType entities.QuestionType) string {
	if questionType == entities.EnglishToArabic {
		return w.English
	}
	return w.Arabic
}

// answerKey is the comparison form used to detect duplicate options.
func answerKey(s string, questionType entities.QuestionType) string {
	s = strings.TrimSpace(s)
	if questionType == entities.EnglishToArabic {
		return text.Normalize(s)
	}
	return strings.ToLower(s)
}
