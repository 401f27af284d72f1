package telegram

import (
	"html"
	"strings"
	"unicode/utf16"

	"github.com/aliskhannn/arabic-stories-bot/internal/service"
	"github.com/aliskhannn/arabic-stories-bot/internal/text"
)

// Telegram rejects messages longer than 4096 UTF-16 units.
const maxMessageLen = 4000

// fragment is a piece of a message that pages never cut through.
// open and close are trusted HTML, text is escaped when rendered.
type fragment struct {
	open  string
	text  string
	close string
}

func (f fragment) html() string {
	return f.open + html.EscapeString(f.text) + f.close
}

// rawFragment wraps already formatted HTML.
func rawFragment(s string) fragment {
	return fragment{open: s}
}

// split cuts the fragment into pieces of at most limit units, each
// carrying the fragment's tags. Escaped entities are never cut.
func (f fragment) split(limit int) []fragment {
	if messageLen(f.html()) <= limit {
		return []fragment{f}
	}

	budget := max(limit-messageLen(f.open)-messageLen(f.close), 1)

	var (
		out  []fragment
		cur  strings.Builder
		size int
	)
	for _, r := range f.text {
		n := messageLen(html.EscapeString(string(r)))
		if size > 0 && size+n > budget {
			out = append(out, fragment{open: f.open, text: cur.String(), close: f.close})
			cur.Reset()
			size = 0
		}
		cur.WriteRune(r)
		size += n
	}
	if size > 0 {
		out = append(out, fragment{open: f.open, text: cur.String(), close: f.close})
	}
	return out
}

// segmentFragments converts tokenized story text to Telegram HTML fragments.
// Arabic words that have a meaning are underlined so the reader knows
// they can be looked up.
func segmentFragments(segments []text.Segment) []fragment {
	out := make([]fragment, 0, len(segments))
	for _, seg := range segments {
		f := fragment{text: seg.Text}

		if seg.Kind.IsArabic() && seg.HasMeaning {
			f.open, f.close = "<u>", "</u>"
		}
		if seg.Kind.IsBold() {
			f.open, f.close = "<b>"+f.open, f.close+"</b>"
		}

		out = append(out, f)
	}
	return out
}

func renderSegments(segments []text.Segment) string {
	return joinFragments(segmentFragments(segments))
}

// blockFragments renders one block. Bilingual lines get their
// transliteration and translation below the Arabic.
func blockFragments(b service.RenderedBlock) []fragment {
	out := []fragment{rawFragment(lrm)}
	out = append(out, segmentFragments(b.Segments)...)
	if b.Transliteration != "" {
		out = append(out, fragment{open: "\n<i>", text: b.Transliteration, close: "</i>"})
	}
	if b.English != "" {
		out = append(out, fragment{open: "\n", text: b.English})
	}
	return out
}

func storyFragments(blocks []service.RenderedBlock) [][]fragment {
	out := make([][]fragment, 0, len(blocks))
	for _, b := range blocks {
		out = append(out, blockFragments(b))
	}
	return out
}

func renderBlocks(blocks []service.RenderedBlock) []string {
	out := make([]string, 0, len(blocks))
	for _, frags := range storyFragments(blocks) {
		out = append(out, joinFragments(frags))
	}
	return out
}

func joinFragments(frags []fragment) string {
	var sb strings.Builder
	for _, f := range frags {
		sb.WriteString(f.html())
	}
	return sb.String()
}

// paginate lays blocks out on pages of at most limit units. Blocks are
// separated by a blank line and start a new page when they do not fit;
// a block longer than a page breaks between fragments, and a fragment
// longer than a page breaks between characters.
func paginate(blocks [][]fragment, limit int) []string {
	const sep = "\n\n"

	var (
		pages []string
		cur   strings.Builder
		size  int
	)
	flush := func() {
		if size > 0 {
			pages = append(pages, cur.String())
			cur.Reset()
			size = 0
		}
	}

	for _, block := range blocks {
		// Keep a block whole when it fits on a page of its own.
		blockLen := messageLen(joinFragments(block))
		if size > 0 && blockLen <= limit && size+len(sep)+blockLen > limit {
			flush()
		}

		first := true
		for _, f := range block {
			for _, part := range f.split(limit) {
				s := part.html()
				n := messageLen(s)

				gap := ""
				if first && size > 0 {
					gap = sep
				}
				if size+len(gap)+n > limit {
					flush()
					gap = ""
				}

				cur.WriteString(gap + s)
				size += len(gap) + n
				first = false
			}
		}
	}
	flush()

	return pages
}

// messageLen counts UTF-16 units, the way Telegram measures messages.
func messageLen(s string) int {
	n := 0
	for _, r := range s {
		n += utf16.RuneLen(r)
	}
	return n
}
