package entities

// QuestionType selects which side of a word is asked and which is answered.
type QuestionType string

const (
	ArabicToEnglish QuestionType = "ar_en" // prompt in Arabic, options are English meanings
	EnglishToArabic QuestionType = "en_ar" // prompt in English, options are Arabic words
)

// QuestionTypes lists every supported question type.
var QuestionTypes = []QuestionType{ArabicToEnglish, EnglishToArabic}

// QuizQuestion is a multiple choice question about one word.
// Exactly one of Options equals CorrectAnswer.
type QuizQuestion struct {
	WordID        string
	Type          QuestionType
	Prompt        string   // text the learner has to translate
	Options       []string // multiple choice
	CorrectIndex  int
	CorrectAnswer string
}
