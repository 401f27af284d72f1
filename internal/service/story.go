package service

import (
	"go.uber.org/zap"

	"github.com/aliskhannn/arabic-stories-bot/internal/domain/entities"
	"github.com/aliskhannn/arabic-stories-bot/internal/text"
)

// RenderedBlock is one displayable unit of a story: the whole text of a
// mixed story or a single line of a bilingual one.
type RenderedBlock struct {
	Segments        []text.Segment
	English         string
	Transliteration string
}

type StoryService struct {
	stories StoryRepository
	words   *WordService
	logger  *zap.Logger
}

func NewStoryService(stories StoryRepository, words *WordService, logger *zap.Logger) *StoryService {
	return &StoryService{
		stories: stories,
		words:   words,
		logger:  logger,
	}
}

func (s *StoryService) Get(id string) (*entities.Story, error) {
	return s.stories.GetByID(id)
}

// List returns all stories ordered by level.
func (s *StoryService) List() []*entities.Story {
	return s.stories.GetAll()
}

// Render tokenizes the story. Arabic words with a vocabulary entry are marked
// as having a meaning. Malformed markup is logged and rendered as plain text.
func (s *StoryService) Render(story *entities.Story) []RenderedBlock {
	switch story.Format {
	case entities.FormatBilingual:
		blocks := make([]RenderedBlock, 0, len(story.Lines))
		for _, line := range story.Lines {
			blocks = append(blocks, RenderedBlock{
				Segments:        s.scan(story.ID, line.Arabic),
				English:         line.English,
				Transliteration: line.Transliteration,
			})
		}
		return blocks
	default:
		return []RenderedBlock{{Segments: s.scan(story.ID, story.Content)}}
	}
}

func (s *StoryService) scan(storyID, content string) []text.Segment {
	res := text.DefaultTokenizer.Scan(content, s.words.HasMeaning)
	for _, w := range res.Warnings {
		s.logger.Warn("malformed story markup",
			zap.String("story_id", storyID),
			zap.Int("offset", w.Offset),
			zap.String("tag", w.Tag),
		)
	}
	return res.Segments
}

// Vocabulary returns the words a story unlocks, skipping unknown IDs.
func (s *StoryService) Vocabulary(story *entities.Story) []*entities.Word {
	out := make([]*entities.Word, 0, len(story.WordIDs))
	for _, id := range story.WordIDs {
		w, err := s.words.Get(id)
		if err != nil {
			s.logger.Warn("story references unknown word",
				zap.String("story_id", story.ID),
				zap.String("word_id", id),
			)
			continue
		}
		out = append(out, w)
	}
	return out
}
