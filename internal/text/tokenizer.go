package text

import (
	"fmt"
	"strings"
)

// Kind is the rendering class of a segment.
type Kind int

const (
	PlainText Kind = iota
	ArabicWord
	BoldPlainText
	BoldArabicWord
)

func (k Kind) String() string {
	switch k {
	case PlainText:
		return "plain"
	case ArabicWord:
		return "arabic"
	case BoldPlainText:
		return "bold_plain"
	case BoldArabicWord:
		return "bold_arabic"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// IsArabic reports whether the kind is one of the Arabic word kinds.
func (k Kind) IsArabic() bool {
	return k == ArabicWord || k == BoldArabicWord
}

// IsBold reports whether the kind is one of the bold kinds.
func (k Kind) IsBold() bool {
	return k == BoldPlainText || k == BoldArabicWord
}

func kindOf(arabic, bold bool) Kind {
	switch {
	case arabic && bold:
		return BoldArabicWord
	case arabic:
		return ArabicWord
	case bold:
		return BoldPlainText
	default:
		return PlainText
	}
}

// Segment is one renderable piece of parsed text.
// HasMeaning is only ever true for Arabic kinds.
type Segment struct {
	Text       string
	Kind       Kind
	HasMeaning bool
}

// Markup is a pair of inline bold markers.
type Markup struct {
	Open  string
	Close string
}

var (
	// HTMLBold is the markup used by story content.
	HTMLBold = Markup{Open: "<b>", Close: "</b>"}
	// MarkdownBold is the double-asterisk variant.
	MarkdownBold = Markup{Open: "**", Close: "**"}
)

// MalformedMarkupWarning reports a bold marker that had no partner.
// It never aborts parsing: the marker is dropped and the text around it is kept.
type MalformedMarkupWarning struct {
	Offset int    // byte offset of the marker in the input
	Tag    string // the marker itself
}

func (w MalformedMarkupWarning) Error() string {
	return fmt.Sprintf("unmatched markup %q at offset %d", w.Tag, w.Offset)
}

// Result is the full output of a scan.
type Result struct {
	Segments []Segment
	Warnings []MalformedMarkupWarning
}

// Tokenizer splits text into segments using the configured markup.
type Tokenizer struct {
	Markup Markup
}

// DefaultTokenizer parses story content with <b>...</b> markup.
var DefaultTokenizer = Tokenizer{Markup: HTMLBold}

// Parse segments text with the default markup and drops warnings.
func Parse(text string, hasMeaning func(word string) bool) []Segment {
	return DefaultTokenizer.Scan(text, hasMeaning).Segments
}

// Scan segments text. hasMeaning is called at most once per distinct
// Arabic word; a nil predicate treats every word as unknown.
func (t Tokenizer) Scan(text string, hasMeaning func(word string) bool) Result {
	s := scanner{
		hasMeaning: hasMeaning,
		known:      make(map[string]bool),
	}

	for _, sp := range t.spans(text, &s.warnings) {
		s.segment(sp.text, sp.bold)
	}

	return Result{Segments: s.out, Warnings: s.warnings}
}

type span struct {
	text string
	bold bool
}

// spans splits text into bold and non-bold pieces with every marker removed.
func (t Tokenizer) spans(text string, warnings *[]MalformedMarkupWarning) []span {
	open, closeTag := t.Markup.Open, t.Markup.Close
	if open == "" || closeTag == "" {
		return []span{{text: text}}
	}

	var out []span
	pos := 0
	for pos < len(text) {
		rest := text[pos:]
		oi := strings.Index(rest, open)

		if open != closeTag {
			ci := strings.Index(rest, closeTag)
			if ci >= 0 && (oi < 0 || ci < oi) {
				// Close marker with nothing open.
				out = append(out, span{text: rest[:ci]})
				*warnings = append(*warnings, MalformedMarkupWarning{Offset: pos + ci, Tag: closeTag})
				pos += ci + len(closeTag)
				continue
			}
		}

		if oi < 0 {
			out = append(out, span{text: rest})
			break
		}

		out = append(out, span{text: rest[:oi]})
		bodyStart := pos + oi + len(open)
		ci := strings.Index(text[bodyStart:], closeTag)
		if ci < 0 {
			// Unterminated: drop the marker, the rest stays non-bold.
			*warnings = append(*warnings, MalformedMarkupWarning{Offset: pos + oi, Tag: open})
			pos = bodyStart
			continue
		}

		body := text[bodyStart : bodyStart+ci]
		if open != closeTag {
			body = strings.ReplaceAll(body, open, "")
		}
		out = append(out, span{text: body, bold: true})
		pos = bodyStart + ci + len(closeTag)
	}

	return out
}

type scanner struct {
	hasMeaning func(string) bool
	known      map[string]bool
	out        []Segment
	warnings   []MalformedMarkupWarning
}

// segment splits one markup span into Arabic runs and plain runs.
func (s *scanner) segment(piece string, bold bool) {
	if piece == "" {
		return
	}

	start := 0
	inArabic := false
	for i, r := range piece {
		switch {
		case IsArabicLetter(r):
			if i == 0 {
				inArabic = true
				continue
			}
			if !inArabic {
				s.emit(piece[start:i], false, bold)
				start = i
				inArabic = true
			}
		case IsArabicDiacritic(r):
			// Extends whatever run it follows.
		case inArabic && joinsCluster(r):
		default:
			if inArabic {
				s.emit(piece[start:i], true, bold)
				start = i
				inArabic = false
			}
		}
	}
	s.emit(piece[start:], inArabic, bold)
}

func (s *scanner) emit(text string, arabic, bold bool) {
	if text == "" {
		return
	}

	kind := kindOf(arabic, bold)
	if !arabic {
		if n := len(s.out); n > 0 && s.out[n-1].Kind == kind {
			s.out[n-1].Text += text
			return
		}
		s.out = append(s.out, Segment{Text: text, Kind: kind})
		return
	}

	s.out = append(s.out, Segment{Text: text, Kind: kind, HasMeaning: s.lookup(text)})
}

func (s *scanner) lookup(word string) bool {
	if s.hasMeaning == nil {
		return false
	}
	if v, ok := s.known[word]; ok {
		return v
	}
	v := s.hasMeaning(word)
	s.known[word] = v
	return v
}

// ArabicWords returns the distinct Arabic word texts in order of first appearance.
func ArabicWords(segments []Segment) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, seg := range segments {
		if !seg.Kind.IsArabic() {
			continue
		}
		if _, ok := seen[seg.Text]; ok {
			continue
		}
		seen[seg.Text] = struct{}{}
		out = append(out, seg.Text)
	}
	return out
}

// Strip returns the text with the default markup removed.
func Strip(text string) string {
	var b strings.Builder
	for _, seg := range Parse(text, nil) {
		b.WriteString(seg.Text)
	}
	return b.String()
}
