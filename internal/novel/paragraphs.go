package novel

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// boilerplateAncestors disqualify any paragraph nested below them.
const boilerplateAncestors = "header, footer, nav, aside"

// Paragraphs returns the body paragraphs of a page in document order. On the
// target layout, paragraphs carrying a class attribute belong to site
// chrome, as does anything under header/footer/nav/aside.
func Paragraphs(doc *goquery.Document) []string {
	var out []string

	doc.Find("p").Each(func(_ int, p *goquery.Selection) {
		if _, styled := p.Attr("class"); styled {
			return
		}

		if p.ParentsFiltered(boilerplateAncestors).Length() > 0 {
			return
		}

		text := strings.Join(strings.Fields(p.Text()), " ")
		if text == "" {
			return
		}

		out = append(out, text)
	})

	return out
}
