// Package crawler drives the page-by-page walk of a serialized novel:
// fetch, extract, write, resolve the next link, delay, repeat until a
// termination condition.
package crawler

import (
	"context"
	"path/filepath"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/brogergvhs/noveld/internal/novel"
	"github.com/brogergvhs/noveld/internal/txt"
	"github.com/brogergvhs/noveld/internal/ui"
)

// state enumerates the phases of the crawl loop.
type state int

const (
	stateFetching state = iota
	stateExtracting
	stateWriting
	stateResolvingNext
	stateDelaying
	stateTerminated
)

func (s state) String() string {
	switch s {
	case stateFetching:
		return "FETCHING"
	case stateExtracting:
		return "EXTRACTING"
	case stateWriting:
		return "WRITING"
	case stateResolvingNext:
		return "RESOLVING_NEXT"
	case stateDelaying:
		return "DELAYING"
	case stateTerminated:
		return "TERMINATED"
	}

	return "UNKNOWN"
}

// Logger is the injected diagnostics sink; ui.Logger satisfies it.
type Logger interface {
	Debugf(string, ...any)
	Infof(string, ...any)
	Warnf(string, ...any)
	Errorf(string, ...any)
}

type Options struct {
	OutputDir string
	Delay     time.Duration
	MaxPages  int
	DryRun    bool
}

type Crawler struct {
	scraper *novel.Scraper
	log     Logger
	stats   *ui.Stats
	ph      *ui.ProgressHandle
	opts    Options
}

func New(s *novel.Scraper, log Logger, stats *ui.Stats, ph *ui.ProgressHandle, opts Options) *Crawler {
	return &Crawler{
		scraper: s,
		log:     log,
		stats:   stats,
		ph:      ph,
		opts:    opts,
	}
}

// Result summarizes a finished crawl. Err is set when the run stopped on a
// failure rather than a pagination end condition.
type Result struct {
	OutputPath string
	Pages      int
	Paragraphs int
	Bytes      int64
	Reason     string
	Err        error
}

// Run walks the series starting at startURL until a stop condition, a
// failure or ctx cancellation. The result is meaningful even when its Err is
// set; whatever was already written stays on disk.
func (c *Crawler) Run(ctx context.Context, startURL string) Result {
	var (
		res    Result
		cursor = startURL
		doc    *goquery.Document
		paras  []string
		writer *txt.Writer
	)

	defer func() {
		if writer != nil {
			if err := writer.Close(); err != nil {
				c.log.Errorf("closing %s: %v", writer.Path(), err)
			}
		}
		if c.ph != nil {
			c.ph.MarkDone()
		}
	}()

	for st := stateFetching; st != stateTerminated; {
		// until the fetch has counted the page, the loop is working on the
		// next one
		pageNo := res.Pages
		if st == stateFetching || st == stateDelaying {
			pageNo++
		}
		c.log.Debugf("state %s (page %d)", st, pageNo)

		switch st {
		case stateFetching:
			if err := ctx.Err(); err != nil {
				res.Reason = "crawl cancelled"
				res.Err = err
				st = stateTerminated
				break
			}

			c.log.Infof("fetching %s", cursor)

			d, err := c.scraper.FetchPage(ctx, cursor)
			if err != nil {
				c.log.Errorf("fetch %s: %v", cursor, err)
				res.Reason = "fetch failed"
				res.Err = err
				st = stateTerminated
				break
			}

			doc = d
			res.Pages++
			c.stats.TotalPages.Add(1)

			// The first successful fetch fixes the output identity for the
			// whole run.
			if res.Pages == 1 {
				name := novel.TitleForFilename(doc) + ".txt"
				path := filepath.Join(c.opts.OutputDir, name)

				if c.opts.DryRun {
					c.log.Infof("dry run: would write %s", path)
				} else {
					w, err := txt.Create(path)
					if err != nil {
						c.log.Errorf("create %s: %v", path, err)
						res.Reason = "output file could not be created"
						res.Err = err
						st = stateTerminated
						break
					}

					writer = w
					res.OutputPath = path
					c.log.Infof("writing to %s", path)
				}
			}

			st = stateExtracting

		case stateExtracting:
			paras = novel.Paragraphs(doc)
			if len(paras) == 0 {
				c.log.Warnf("page %d contributed no paragraphs", res.Pages)
			} else {
				c.log.Infof("page %d: %d paragraphs", res.Pages, len(paras))
			}

			res.Paragraphs += len(paras)
			c.stats.TotalParagraphs.Add(int64(len(paras)))

			st = stateWriting

		case stateWriting:
			if writer != nil {
				n, err := writer.WritePage(paras)
				if err != nil {
					c.log.Errorf("write %s: %v", writer.Path(), err)
					res.Reason = "write failed"
					res.Err = err
					st = stateTerminated
					break
				}

				res.Bytes = writer.Bytes()
				c.stats.TotalBytes.Add(n)
			}

			if c.ph != nil {
				c.ph.Update(res.Pages, res.Bytes)
			}

			st = stateResolvingNext

		case stateResolvingNext:
			next, stop := novel.NextURL(doc, cursor)
			doc = nil

			if stop != "" {
				if stop == novel.StopSameURL {
					c.log.Warnf("stopping: %s", stop)
				} else {
					c.log.Infof("stopping: %s", stop)
				}

				res.Reason = stop
				st = stateTerminated
				break
			}

			if c.opts.MaxPages > 0 && res.Pages >= c.opts.MaxPages {
				c.log.Infof("stopping: page cap (%d) reached", c.opts.MaxPages)
				res.Reason = "page cap reached"
				st = stateTerminated
				break
			}

			cursor = next
			st = stateDelaying

		case stateDelaying:
			if err := c.sleep(ctx); err != nil {
				res.Reason = "crawl cancelled"
				res.Err = err
				st = stateTerminated
				break
			}

			st = stateFetching
		}
	}

	return res
}

// sleep pauses for the politeness delay, returning early on cancellation.
func (c *Crawler) sleep(ctx context.Context) error {
	if c.opts.Delay <= 0 {
		return nil
	}

	t := time.NewTimer(c.opts.Delay)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
