package novel

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const fallbackName = "untitled"

// titleSeparator is the double non-breaking space the source site renders
// between the series name and the chapter title inside span.title.
const titleSeparator = "  "

var reForbidden = regexp.MustCompile(`[\\/*?:"<>|]`)

// SanitizeFilename makes s safe to use as a file name. Whitespace runs
// collapse to a single underscore, reserved characters are removed and the
// result is capped at 200 characters. Inputs that sanitize down to nothing
// useful yield "untitled".
func SanitizeFilename(s string) string {
	// Fields splits on every Unicode whitespace rune, trimming the edges
	// and collapsing runs in one pass.
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return fallbackName
	}

	s = strings.Join(fields, "_")
	s = reForbidden.ReplaceAllString(s, "")

	if r := []rune(s); len(r) > 200 {
		s = string(r[:200])
	}

	if s == "" || strings.Trim(s, ".") == "" || strings.EqualFold(s, fallbackName) {
		return fallbackName
	}

	return s
}

// TitleForFilename derives the output base name (no extension) from the
// first span.title element. The chapter title sits after the double
// non-breaking space; pages without the marker fall back to "untitled".
func TitleForFilename(doc *goquery.Document) string {
	sel := doc.Find("span.title").First()
	if sel.Length() == 0 {
		return fallbackName
	}

	full := sel.Text()
	idx := strings.Index(full, titleSeparator)
	if idx < 0 {
		return fallbackName
	}

	candidate := strings.TrimSpace(full[idx+len(titleSeparator):])
	if candidate == "" {
		return fallbackName
	}

	return SanitizeFilename(candidate)
}
