// Package entities contains domain entities used across the application.
package entities

// Word is a vocabulary entry that story text can link to.
type Word struct {
	ID              string `json:"id" validate:"required,excludes=:,max=48"` // goes into callback data
	Arabic          string `json:"arabic" validate:"required"`               // Arabic spelling, possibly with diacritics
	English         string `json:"english" validate:"required"`              // English meaning
	Transliteration string `json:"transliteration"`                          // Latin transliteration
	PartOfSpeech    string `json:"partOfSpeech"`                             // noun, verb, adjective...
	Audio           string `json:"audio"`                                    // pronunciation file, relative to the audio dir
}
