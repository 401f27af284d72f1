package repository

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aliskhannn/arabic-stories-bot/internal/domain/entities"
)

const storiesJSON = `{
  "stories": [
    {
      "id": "s2",
      "title": "At school",
      "difficultyLevel": 2,
      "format": "bilingual",
      "lines": [{"arabic": "ذَهَبَ إِلى <b>المَدْرَسَة</b>", "english": "He went to school"}],
      "wordIds": ["w2", "w3"]
    },
    {
      "id": "s1b",
      "title": "The book",
      "difficultyLevel": 1,
      "content": "I read a <b>book</b> كتاب.",
      "wordIds": ["w1"],
      "coverImageURL": "https://example.com/s1b.png",
      "imagePrompt": "a child reading"
    },
    {
      "id": "s1a",
      "title": "Home",
      "difficultyLevel": 1,
      "format": "mixed",
      "content": "My بيت is small.",
      "wordIds": ["w4"]
    }
  ]
}`

func TestNewStoryRepository(t *testing.T) {
	repo, err := NewStoryRepository(writeFile(t, "stories.json", storiesJSON))
	require.NoError(t, err)

	var ids []string
	for _, s := range repo.GetAll() {
		ids = append(ids, s.ID)
	}
	assert.Equal(t, []string{"s1a", "s1b", "s2"}, ids)

	s, err := repo.GetByID("s1b")
	require.NoError(t, err)
	assert.Equal(t, entities.FormatMixed, s.Format)
	assert.Equal(t, "https://example.com/s1b.png", s.CoverImageURL)
	assert.Equal(t, "a child reading", s.ImagePrompt)

	s, err = repo.GetByID("s2")
	require.NoError(t, err)
	require.Len(t, s.Lines, 1)
	assert.Equal(t, "He went to school", s.Lines[0].English)
	assert.Equal(t, []string{"w2", "w3"}, s.WordIDs)

	_, err = repo.GetByID("nope")
	assert.ErrorIs(t, err, ErrStoryNotFound)
}

func TestNewStoryRepositoryErrors(t *testing.T) {
	testCases := []struct {
		name    string
		content string
	}{
		{name: "broken json", content: `{"stories": {}}`},
		{name: "mixed without content", content: `{"stories": [{"id": "a", "title": "A", "difficultyLevel": 1}]}`},
		{name: "bilingual without lines", content: `{"stories": [{"id": "a", "title": "A", "difficultyLevel": 1, "format": "bilingual"}]}`},
		{name: "unknown format", content: `{"stories": [{"id": "a", "title": "A", "difficultyLevel": 1, "format": "comic", "content": "x"}]}`},
		{name: "colon in id", content: `{"stories": [{"id": "a:b", "title": "A", "difficultyLevel": 1, "content": "x"}]}`},
		{name: "id too long", content: `{"stories": [{"id": "` + strings.Repeat("s", 49) + `", "title": "A", "difficultyLevel": 1, "content": "x"}]}`},
		{name: "level zero", content: `{"stories": [{"id": "a", "title": "A", "content": "x"}]}`},
		{name: "line without arabic", content: `{"stories": [{"id": "a", "title": "A", "difficultyLevel": 1, "format": "bilingual", "lines": [{"english": "x"}]}]}`},
		{name: "duplicate id", content: `{"stories": [
			{"id": "a", "title": "A", "difficultyLevel": 1, "content": "x"},
			{"id": "a", "title": "B", "difficultyLevel": 1, "content": "y"}
		]}`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewStoryRepository(writeFile(t, "stories.json", tc.content))
			assert.Error(t, err)
		})
	}
}
