package repository

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const wordsJSON = `{
  "words": [
    {"id": "w1", "arabic": "كِتَاب", "english": "book", "transliteration": "kitāb", "partOfSpeech": "noun", "audio": "w1.mp3"},
    {"id": "w2", "arabic": "مَدْرَسَة", "english": "school", "partOfSpeech": "noun"},
    {"id": "w3", "arabic": "ذَهَبَ", "english": "went", "partOfSpeech": "verb"},
    {"id": "w4", "arabic": "بَيْت", "english": "house", "partOfSpeech": "noun"}
  ]
}`

func TestNewWordRepository(t *testing.T) {
	repo, err := NewWordRepository(writeFile(t, "words.json", wordsJSON))
	require.NoError(t, err)

	assert.Len(t, repo.GetAll(), 4)

	w, err := repo.GetByID("w1")
	require.NoError(t, err)
	assert.Equal(t, "book", w.English)
	assert.Equal(t, "kitāb", w.Transliteration)
	assert.Equal(t, "w1.mp3", w.Audio)

	_, err = repo.GetByID("nope")
	assert.ErrorIs(t, err, ErrWordNotFound)

	words, err := repo.GetByIDs([]string{"w3", "w1"})
	require.NoError(t, err)
	require.Len(t, words, 2)
	assert.Equal(t, "w3", words[0].ID)

	_, err = repo.GetByIDs([]string{"w1", "nope"})
	assert.ErrorIs(t, err, ErrWordNotFound)
}

func TestWordRepositoryFindByArabic(t *testing.T) {
	repo, err := NewWordRepository(writeFile(t, "words.json", wordsJSON))
	require.NoError(t, err)

	testCases := []struct {
		word   string
		wantID string
	}{
		{"كتاب", "w1"},
		{"كِتَابٌ", "w1"},
		{"الكتاب", "w1"},
		{"والكتاب", "w1"},
		{"بالبيت", "w4"},
		{"مدرسة", "w2"},
		{"المدرسه", "w2"},
		{"وذهب", "w3"},
		{"سيارة", ""},
		{"ب", ""},
	}

	for _, tc := range testCases {
		w, ok := repo.FindByArabic(tc.word)
		if tc.wantID == "" {
			assert.False(t, ok, "%q", tc.word)
			continue
		}
		require.True(t, ok, "%q", tc.word)
		assert.Equal(t, tc.wantID, w.ID, "%q", tc.word)
	}
}

func TestNewWordRepositoryErrors(t *testing.T) {
	testCases := []struct {
		name    string
		content string
	}{
		{name: "broken json", content: `{"words": [`},
		{name: "missing english", content: `{"words": [{"id": "w1", "arabic": "كتاب"}]}`},
		{name: "missing id", content: `{"words": [{"arabic": "كتاب", "english": "book"}]}`},
		{name: "null entry", content: `{"words": [null]}`},
		{name: "colon in id", content: `{"words": [{"id": "w:1", "arabic": "كتاب", "english": "book"}]}`},
		{name: "id too long", content: `{"words": [{"id": "` + strings.Repeat("w", 49) + `", "arabic": "كتاب", "english": "book"}]}`},
		{name: "duplicate id", content: `{"words": [
			{"id": "w1", "arabic": "كتاب", "english": "book"},
			{"id": "w1", "arabic": "بيت", "english": "house"}
		]}`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewWordRepository(writeFile(t, "words.json", tc.content))
			assert.Error(t, err)
		})
	}

	_, err := NewWordRepository(filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	id := strings.Repeat("w", 48)
	repo, err := NewWordRepository(writeFile(t, "words.json", `{"words": [{"id": "`+id+`", "arabic": "كتاب", "english": "book"}]}`))
	require.NoError(t, err)
	_, err = repo.GetByID(id)
	assert.NoError(t, err)
}
