package novel

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// nextSelector matches the pagination anchor the source site renders on
// every chapter page.
const nextSelector = `a#pt_next.Readpage_up`

// sentinelHref marks the final page of a series.
const sentinelHref = "javascript:void(0);"

// Stop reasons reported by NextURL.
const (
	StopNoLink    = "no next-page link"
	StopEmptyHref = "next-page link has an empty href"
	StopBadHref   = "next-page href does not parse"
	StopSentinel  = "end-of-series marker reached"
	StopSameURL   = "next-page link points back to the current page"
)

// NextURL resolves the next page to visit from the current document. A
// non-empty stop reason means the crawl is complete; next is empty in that
// case.
func NextURL(doc *goquery.Document, currentURL string) (next, stop string) {
	sel := doc.Find(nextSelector).First()
	if sel.Length() == 0 {
		return "", StopNoLink
	}

	href := strings.TrimSpace(sel.AttrOr("href", ""))
	if href == "" {
		return "", StopEmptyHref
	}
	if strings.EqualFold(href, sentinelHref) {
		return "", StopSentinel
	}

	ref, err := url.Parse(href)
	if err != nil {
		return "", StopBadHref
	}

	base, err := url.Parse(currentURL)
	if err != nil {
		return "", StopBadHref
	}

	resolved := base.ResolveReference(ref).String()
	if resolved == currentURL {
		return "", StopSameURL
	}

	return resolved, ""
}
