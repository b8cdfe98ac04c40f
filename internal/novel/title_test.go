package novel_test

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/brogergvhs/noveld/internal/novel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeFilename(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", "untitled"},
		{"whitespace_only", " \t\n ", "untitled"},
		{"plain", "My Title", "My_Title"},
		{"surrounding_whitespace", "  My Title  ", "My_Title"},
		{"whitespace_run_collapses", "a \t\n b", "a_b"},
		{"nbsp_counts_as_whitespace", "a  b", "a_b"},
		{"nel_and_line_separators_collapse", "ab c d", "a_b_c_d"},
		{"unicode_whitespace_trimmed_at_edges", "  title", "title"},
		{"only_unicode_whitespace", "   ", "untitled"},
		{"reserved_removed_not_replaced", `a\b/c*d?e:f"g<h>i|j`, "abcdefghij"},
		{"only_reserved", `\/*?:"<>|`, "untitled"},
		{"only_dots", "...", "untitled"},
		{"untitled_case_insensitive", "UnTiTlEd", "untitled"},
		{"mixed", `  He said: "go/away"  now `, "He_said_goaway_now"},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, novel.SanitizeFilename(tc.in))
		})
	}
}

func TestSanitizeFilenameLength(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("x", 500)
	got := novel.SanitizeFilename(long)

	assert.Len(t, []rune(got), 200)
	assert.NotContainsf(t, got, `\`, "reserved character survived")
}

func mustDoc(t *testing.T, html string) *goquery.Document {
	t.Helper()

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)

	return doc
}

func TestTitleForFilename(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name string
		html string
		want string
	}{
		{
			name: "separator_splits_title",
			html: `<html><body><span class="title">Chapter&nbsp;&nbsp;My Title</span></body></html>`,
			want: "My_Title",
		},
		{
			name: "no_separator_falls_back",
			html: `<html><body><span class="title">Chapter Twelve</span></body></html>`,
			want: "untitled",
		},
		{
			name: "missing_marker_falls_back",
			html: `<html><body><h1>My Title</h1></body></html>`,
			want: "untitled",
		},
		{
			name: "empty_candidate_falls_back",
			html: `<html><body><span class="title">Chapter&nbsp;&nbsp;   </span></body></html>`,
			want: "untitled",
		},
		{
			name: "first_marker_wins",
			html: `<html><body><span class="title">Book&nbsp;&nbsp;First</span><span class="title">Book&nbsp;&nbsp;Second</span></body></html>`,
			want: "First",
		},
		{
			name: "split_on_first_separator_only",
			html: "<html><body><span class=\"title\">A  B  C</span></body></html>",
			want: "B_C",
		},
		{
			name: "single_nbsp_is_not_a_separator",
			html: "<html><body><span class=\"title\">Chapter My Title</span></body></html>",
			want: "untitled",
		},
		{
			name: "candidate_is_sanitized",
			html: "<html><body><span class=\"title\">Chapter  My: Title?</span></body></html>",
			want: "My_Title",
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, novel.TitleForFilename(mustDoc(t, tc.html)))
		})
	}
}
