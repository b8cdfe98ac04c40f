// Package txt owns the crawl's output artifact: one text file created on the
// first page and appended to for the rest of the run.
package txt

import (
	"io"
	"os"
	"strings"
)

// separator sits between paragraphs and between contributing pages.
const separator = "\n\n"

// Writer is the single output stream for a crawl. It is created in truncate
// mode once the output name is known and stays open until Close.
type Writer struct {
	f     *os.File
	path  string
	pages int
	bytes int64
}

// Create opens path with truncate/create semantics. The file exists on disk
// from this point even when nothing is written afterwards.
func Create(path string) (*Writer, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}

	return &Writer{f: f, path: path}, nil
}

func (w *Writer) Path() string {
	return w.path
}

// Bytes reports the total number of bytes written so far.
func (w *Writer) Bytes() int64 {
	return w.bytes
}

// WritePage appends one page's paragraphs. Pages after the first are
// preceded by a blank line when they contribute content; an empty page
// writes nothing. Paragraphs are joined by blank lines with no trailing
// separator.
func (w *Writer) WritePage(paragraphs []string) (int64, error) {
	w.pages++

	if len(paragraphs) == 0 {
		return 0, nil
	}

	var sb strings.Builder
	if w.pages > 1 {
		sb.WriteString(separator)
	}
	sb.WriteString(strings.Join(paragraphs, separator))

	n, err := io.WriteString(w.f, sb.String())
	w.bytes += int64(n)

	return int64(n), err
}

func (w *Writer) Close() error {
	return w.f.Close()
}
