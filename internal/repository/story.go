package repository

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/aliskhannn/arabic-stories-bot/internal/domain/entities"
)

var ErrStoryNotFound = errors.New("story not found")

// StoryRepository provides access to the bundled stories.
type StoryRepository struct {
	stories []*entities.Story
	byID    map[string]*entities.Story
}

// NewStoryRepository loads and validates the story bundle.
func NewStoryRepository(path string) (*StoryRepository, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var wrapper struct {
		Stories []*entities.Story `json:"stories"`
	}
	if err = json.Unmarshal(data, &wrapper); err != nil {
		return nil, fmt.Errorf("failed to unmarshal stories JSON: %w", err)
	}

	return newStoryRepository(wrapper.Stories)
}

func newStoryRepository(stories []*entities.Story) (*StoryRepository, error) {
	r := &StoryRepository{
		stories: make([]*entities.Story, 0, len(stories)),
		byID:    make(map[string]*entities.Story, len(stories)),
	}

	for i, s := range stories {
		if s == nil {
			return nil, fmt.Errorf("story #%d is null", i)
		}
		if s.Format == "" {
			s.Format = entities.FormatMixed
		}
		if err := validate.Struct(s); err != nil {
			return nil, fmt.Errorf("story #%d (%s): %w", i, s.ID, err)
		}
		if _, ok := r.byID[s.ID]; ok {
			return nil, fmt.Errorf("story %s: %w", s.ID, ErrDuplicateID)
		}

		r.stories = append(r.stories, s)
		r.byID[s.ID] = s
	}

	sort.SliceStable(r.stories, func(i, j int) bool {
		if r.stories[i].Level != r.stories[j].Level {
			return r.stories[i].Level < r.stories[j].Level
		}
		return r.stories[i].ID < r.stories[j].ID
	})

	return r, nil
}

// GetByID returns the story with the given ID.
func (r *StoryRepository) GetByID(id string) (*entities.Story, error) {
	s, ok := r.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrStoryNotFound, id)
	}
	return s, nil
}

// GetAll returns all stories ordered by level, then ID.
func (r *StoryRepository) GetAll() []*entities.Story {
	return r.stories
}
