package novel

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/PuerkitoBio/goquery"
	"github.com/saintfish/chardet"
	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"
)

type DebugLogger interface {
	Debugf(string, ...any)
}

type Scraper struct {
	client *http.Client
	log    DebugLogger
}

func NewScraper(c *http.Client, log DebugLogger) *Scraper {
	return &Scraper{client: c, log: log}
}

// FetchPage retrieves target and parses it into a document, decoding the
// body with the character encoding detected from headers and content.
func (s *Scraper) FetchPage(ctx context.Context, target string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", target, nil)
	if err != nil {
		return nil, err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("GET %s: unexpected status %s", target, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(s.decode(body, resp.Header.Get("Content-Type")))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", target, err)
	}

	return doc, nil
}

// decode picks a character decoder for body. Certain detections come from
// the Content-Type header, a byte-order mark or a meta tag; otherwise a
// statistical pass decides, with the HTML-standard fallback as a last
// resort.
func (s *Scraper) decode(body []byte, contentType string) io.Reader {
	enc, name, certain := charset.DetermineEncoding(body, contentType)

	if !certain {
		if best, err := chardet.NewHtmlDetector().DetectBest(body); err == nil {
			if e, err := htmlindex.Get(best.Charset); err == nil && e != nil {
				enc = e
				name = best.Charset
			}
		}
	}

	if s.log != nil {
		s.log.Debugf("decoding response as %s", name)
	}

	return transform.NewReader(bytes.NewReader(body), enc.NewDecoder())
}
