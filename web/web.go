// ABOUTME: Embedded viewer page and bookmarklet templates
// ABOUTME: Renders the reader page, the injectable script and its javascript: loader link

package web

import (
	"embed"
	"encoding/json"
	htmltemplate "html/template"
	"io"
	"math"
	"net/url"
	"text/template"
	"time"

	"readerview/core/domain"
)

//go:embed templates/*.tmpl
var files embed.FS

// WordsPerMinute is the reading speed used for the reading time estimate.
const WordsPerMinute = 200

var (
	readerTemplate = htmltemplate.Must(htmltemplate.ParseFS(files, "templates/reader.html.tmpl"))

	bookmarkletTemplate = template.Must(template.New("bookmarklet.js.tmpl").Funcs(template.FuncMap{
		"json": toJSON,
	}).ParseFS(files, "templates/bookmarklet.js.tmpl"))
)

// ReaderPage is the data behind the viewer page.
type ReaderPage struct {
	// State is one of waiting, loaded or failed, as reported by the receiver.
	State string

	Article *domain.Article

	// Content is the article body, already made inert.
	Content htmltemplate.HTML

	Error          string
	MessageType    string
	TimeoutMs      int64
	TimeoutMessage string
}

// WordsPerMinute is exposed to the page script.
func (p ReaderPage) WordsPerMinute() int {
	return WordsPerMinute
}

// ReadingMinutes estimates the reading time of the loaded article.
func (p ReaderPage) ReadingMinutes() int {
	if p.Article == nil {
		return 0
	}
	return int(math.Ceil(float64(p.Article.Length) / WordsPerMinute))
}

// RenderReader writes the viewer page.
func RenderReader(w io.Writer, page ReaderPage) error {
	return readerTemplate.Execute(w, page)
}

// Bookmarklet configures the injectable script.
type Bookmarklet struct {
	ViewerURL     string
	ViewerOrigin  string
	Sources       []string
	MessageType   string
	IndicatorText string

	CharThreshold          int
	ExcerptLength          int
	PresentationAttributes []string

	Interval    time.Duration
	MinSends    int
	MaxAttempts int
	Deadline    time.Duration
}

// IntervalMs is the send interval in milliseconds.
func (b Bookmarklet) IntervalMs() int64 {
	return b.Interval.Milliseconds()
}

// DeadlineMs is the delivery deadline in milliseconds.
func (b Bookmarklet) DeadlineMs() int64 {
	return b.Deadline.Milliseconds()
}

// RenderBookmarklet writes the injectable script for b.
func RenderBookmarklet(w io.Writer, b Bookmarklet) error {
	return bookmarkletTemplate.Execute(w, b)
}

// LoaderLink returns the javascript: URL users save as a bookmark. It
// injects scriptURL into the current page, bypassing caches.
func LoaderLink(scriptURL string) string {
	quoted, _ := json.Marshal(scriptURL)
	src := "(function(){var s=document.createElement('script');s.src=" + string(quoted) +
		"+'?t='+Date.now();document.body.appendChild(s);})();"
	return "javascript:" + url.PathEscape(src)
}

func toJSON(v interface{}) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
