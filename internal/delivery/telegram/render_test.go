package telegram

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aliskhannn/arabic-stories-bot/internal/service"
	"github.com/aliskhannn/arabic-stories-bot/internal/text"
)

func TestRenderSegments(t *testing.T) {
	testCases := []struct {
		name     string
		segments []text.Segment
		want     string
	}{
		{
			name:     "plain text is escaped",
			segments: []text.Segment{{Text: "a < b & c", Kind: text.PlainText}},
			want:     "a &lt; b &amp; c",
		},
		{
			name: "arabic word with meaning is underlined",
			segments: []text.Segment{
				{Text: "the ", Kind: text.PlainText},
				{Text: "كتاب", Kind: text.ArabicWord, HasMeaning: true},
			},
			want: "the <u>كتاب</u>",
		},
		{
			name:     "arabic word without meaning stays plain",
			segments: []text.Segment{{Text: "قلم", Kind: text.ArabicWord}},
			want:     "قلم",
		},
		{
			name: "bold kinds",
			segments: []text.Segment{
				{Text: "big", Kind: text.BoldPlainText},
				{Text: " ", Kind: text.PlainText},
				{Text: "بيت", Kind: text.BoldArabicWord, HasMeaning: true},
			},
			want: "<b>big</b> <b><u>بيت</u></b>",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, renderSegments(tc.segments))
		})
	}
}

func TestRenderBlocksBilingual(t *testing.T) {
	blocks := []service.RenderedBlock{{
		Segments:        []text.Segment{{Text: "ذهب", Kind: text.ArabicWord, HasMeaning: true}},
		Transliteration: "dhahaba",
		English:         "He went <home>",
	}}

	out := renderBlocks(blocks)
	require.Len(t, out, 1)
	assert.Equal(t, lrm+"<u>ذهب</u>\n<i>dhahaba</i>\nHe went &lt;home&gt;", out[0])
}

func plainBlocks(texts ...string) [][]fragment {
	out := make([][]fragment, 0, len(texts))
	for _, t := range texts {
		out = append(out, []fragment{{text: t}})
	}
	return out
}

func TestPaginate(t *testing.T) {
	t.Run("fits one page", func(t *testing.T) {
		pages := paginate(plainBlocks("aa", "bb"), 10)
		assert.Equal(t, []string{"aa\n\nbb"}, pages)
	})

	t.Run("splits at block boundary", func(t *testing.T) {
		pages := paginate(plainBlocks("aaaa", "bbbb", "cc"), 8)
		assert.Equal(t, []string{"aaaa", "bbbb\n\ncc"}, pages)
	})

	t.Run("oversized block is split to the limit", func(t *testing.T) {
		long := strings.Repeat("x", 20)
		pages := paginate(plainBlocks("a", long, "b"), 10)
		assert.Equal(t, []string{"a", long[:10], long[10:], "b"}, pages)
	})

	t.Run("counts characters not bytes", func(t *testing.T) {
		pages := paginate(plainBlocks("كتاب", "بيت"), 9)
		assert.Len(t, pages, 1)
	})

	t.Run("entities are never cut", func(t *testing.T) {
		pages := paginate([][]fragment{{{text: strings.Repeat("a&", 10)}}}, 12)
		require.Len(t, pages, 5)
		for _, p := range pages {
			assert.LessOrEqual(t, messageLen(p), 12)
			assert.Equal(t, strings.Count(p, "&"), strings.Count(p, "&amp;"), p)
		}
	})

	t.Run("tags wrap every piece", func(t *testing.T) {
		f := fragment{open: "<b>", text: strings.Repeat("x", 30), close: "</b>"}
		pages := paginate([][]fragment{{f}}, 12)
		require.Len(t, pages, 6)
		for _, p := range pages {
			assert.Equal(t, "<b>xxxxx</b>", p)
		}
	})

	t.Run("empty", func(t *testing.T) {
		assert.Empty(t, paginate(nil, 10))
	})
}

func TestPaginateLongMixedStory(t *testing.T) {
	segments := text.Parse(strings.Repeat("The city مدينة is old. ", 250), func(string) bool { return true })
	blocks := [][]fragment{{rawFragment("<b>Title</b>")}, segmentFragments(segments)}

	pages := paginate(blocks, maxMessageLen)
	require.Greater(t, len(pages), 1)

	for i, p := range pages {
		assert.LessOrEqual(t, messageLen(p), maxMessageLen, "page %d", i)
		assert.Equal(t, strings.Count(p, "<u>"), strings.Count(p, "</u>"), "page %d", i)
		assert.Equal(t, strings.Count(p, "<b>"), strings.Count(p, "</b>"), "page %d", i)
	}
	assert.Equal(t, 250, strings.Count(strings.Join(pages, ""), "<u>مدينة</u>"))
}
