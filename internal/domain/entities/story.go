package entities

// StoryFormat tells how story content is laid out.
type StoryFormat string

const (
	FormatMixed     StoryFormat = "mixed"     // English text with embedded Arabic words
	FormatBilingual StoryFormat = "bilingual" // Arabic lines paired with translation
)

// BilingualLine is one Arabic line of a bilingual story with its translation.
type BilingualLine struct {
	Arabic          string `json:"arabic" validate:"required"`
	English         string `json:"english"`
	Transliteration string `json:"transliteration"`
}

// Story is a graded reading text from the story bundle.
// IDs are sent back in callback data, so they stay short and free of ':'.
type Story struct {
	ID            string          `json:"id" validate:"required,excludes=:,max=48"`
	Title         string          `json:"title" validate:"required"`
	Level         int             `json:"difficultyLevel" validate:"gte=1"`
	Format        StoryFormat     `json:"format" validate:"required,oneof=mixed bilingual"`
	Content       string          `json:"content" validate:"required_if=Format mixed"`
	Lines         []BilingualLine `json:"lines" validate:"required_if=Format bilingual,dive"`
	WordIDs       []string        `json:"wordIds"` // vocabulary unlocked by finishing the story
	CoverImageURL string          `json:"coverImageURL"`
	ImagePrompt   string          `json:"imagePrompt"`
}
