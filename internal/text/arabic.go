// Package text segments story text into tappable Arabic words and plain
// spans, and classifies Arabic characters.
package text

import (
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

const tatweel = 'ـ'

// arabicLetters covers base letters of the Arabic, Arabic Supplement,
// Arabic Extended-A/B and presentation-form blocks. Tatweel is included:
// it only ever appears inside words.
var arabicLetters = &unicode.RangeTable{
	R16: []unicode.Range16{
		{Lo: 0x0620, Hi: 0x064A, Stride: 1},
		{Lo: 0x066E, Hi: 0x066F, Stride: 1},
		{Lo: 0x0671, Hi: 0x06D3, Stride: 1},
		{Lo: 0x06D5, Hi: 0x06D5, Stride: 1},
		{Lo: 0x06E5, Hi: 0x06E6, Stride: 1},
		{Lo: 0x06EE, Hi: 0x06EF, Stride: 1},
		{Lo: 0x06FA, Hi: 0x06FC, Stride: 1},
		{Lo: 0x06FF, Hi: 0x06FF, Stride: 1},
		{Lo: 0x0750, Hi: 0x077F, Stride: 1},
		{Lo: 0x0870, Hi: 0x0887, Stride: 1},
		{Lo: 0x0889, Hi: 0x088E, Stride: 1},
		{Lo: 0x08A0, Hi: 0x08C9, Stride: 1},
		{Lo: 0xFB50, Hi: 0xFD3D, Stride: 1},
		{Lo: 0xFD50, Hi: 0xFDC7, Stride: 1},
		{Lo: 0xFDF0, Hi: 0xFDFB, Stride: 1},
		{Lo: 0xFE80, Hi: 0xFEFC, Stride: 1},
	},
}

// arabicDiacritics covers harakat, Quranic annotation marks and the
// spacing harakat forms of Presentation Forms-B.
var arabicDiacritics = &unicode.RangeTable{
	R16: []unicode.Range16{
		{Lo: 0x0610, Hi: 0x061A, Stride: 1},
		{Lo: 0x064B, Hi: 0x065F, Stride: 1},
		{Lo: 0x0670, Hi: 0x0670, Stride: 1},
		{Lo: 0x06D6, Hi: 0x06DC, Stride: 1},
		{Lo: 0x06DF, Hi: 0x06E4, Stride: 1},
		{Lo: 0x06E7, Hi: 0x06E8, Stride: 1},
		{Lo: 0x06EA, Hi: 0x06ED, Stride: 1},
		{Lo: 0x0898, Hi: 0x089F, Stride: 1},
		{Lo: 0x08CA, Hi: 0x08E1, Stride: 1},
		{Lo: 0x08E3, Hi: 0x08FF, Stride: 1},
		{Lo: 0xFE70, Hi: 0xFE72, Stride: 1},
		{Lo: 0xFE74, Hi: 0xFE74, Stride: 1},
		{Lo: 0xFE76, Hi: 0xFE7F, Stride: 1},
	},
}

// IsArabicLetter reports whether r is an Arabic base letter.
func IsArabicLetter(r rune) bool {
	return unicode.Is(arabicLetters, r)
}

// IsArabicDiacritic reports whether r is an Arabic combining mark.
// A diacritic never starts a word, it only extends one.
func IsArabicDiacritic(r rune) bool {
	return unicode.Is(arabicDiacritics, r)
}

// joinsCluster reports whether r belongs to the grapheme cluster before it:
// any combining mark, or a zero-width joiner or non-joiner.
func joinsCluster(r rune) bool {
	return unicode.In(r, unicode.Mn, unicode.Me) || r == '\u200C' || r == '\u200D'
}

// IsArabic reports whether s contains at least one Arabic letter.
func IsArabic(s string) bool {
	for _, r := range s {
		if IsArabicLetter(r) {
			return true
		}
	}
	return false
}

var letterFolds = map[rune]rune{
	'أ': 'ا', // alef with hamza above
	'إ': 'ا', // alef with hamza below
	'آ': 'ا', // alef with madda
	'ٱ': 'ا', // alef wasla
	'ة': 'ه', // teh marbuta
	'ى': 'ي', // alef maksura
}

var (
	stripMarks = runes.Remove(runes.Predicate(func(r rune) bool {
		return r == tatweel || IsArabicDiacritic(r)
	}))
	foldLetters = runes.Map(func(r rune) rune {
		if folded, ok := letterFolds[r]; ok {
			return folded
		}
		return r
	})
)

// Normalize returns the lookup form of an Arabic word: diacritics and
// tatweel removed, alef variants, teh marbuta and alef maksura folded.
// Non-Arabic text passes through unchanged.
func Normalize(s string) string {
	// Chain keeps internal buffers, so it is built per call.
	out, _, err := transform.String(transform.Chain(stripMarks, foldLetters), s)
	if err != nil {
		return s
	}
	return out
}
