package web

import (
	"bytes"
	"net/url"
	"strings"
	"testing"
	"time"

	"readerview/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderReader_Waiting(t *testing.T) {
	var buf bytes.Buffer

	err := RenderReader(&buf, ReaderPage{
		State:          "waiting",
		MessageType:    domain.MessageType,
		TimeoutMs:      10000,
		TimeoutMessage: "No article data received.",
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, `data-reader-state="waiting"`)
	assert.Contains(t, out, `var MESSAGE_TYPE = "READER_VIEW_ARTICLE";`)
	assert.Contains(t, out, "10000")
	assert.Contains(t, out, "addEventListener('message'")
}

func TestRenderReader_Loaded(t *testing.T) {
	var buf bytes.Buffer
	article := &domain.Article{
		Title:       "A <b>bold</b> title",
		Byline:      domain.StringPtr("Jane"),
		Content:     "<p>Body</p>",
		TextContent: "Body",
		Length:      450,
		SiteName:    domain.StringPtr("example.com"),
	}

	err := RenderReader(&buf, ReaderPage{
		State:   "loaded",
		Article: article,
		Content: "<p>Body</p>",
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, `data-reader-state="loaded"`)
	assert.Contains(t, out, "A &lt;b&gt;bold&lt;/b&gt; title")
	assert.Contains(t, out, "<p>Body</p>")
	assert.Contains(t, out, "Jane")
	assert.Contains(t, out, "example.com")
	assert.Contains(t, out, "3 min read")
	assert.NotContains(t, out, "addEventListener('message'")
}

func TestRenderReader_Failed(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, RenderReader(&buf, ReaderPage{State: "failed", Error: "No article data received."}))

	out := buf.String()
	assert.Contains(t, out, `data-reader-state="failed"`)
	assert.Contains(t, out, "No article data received.")
}

func TestReadingMinutes(t *testing.T) {
	assert.Equal(t, 0, ReaderPage{}.ReadingMinutes())
	assert.Equal(t, 1, ReaderPage{Article: &domain.Article{Length: 1}}.ReadingMinutes())
	assert.Equal(t, 1, ReaderPage{Article: &domain.Article{Length: 200}}.ReadingMinutes())
	assert.Equal(t, 2, ReaderPage{Article: &domain.Article{Length: 201}}.ReadingMinutes())
}

func TestRenderBookmarklet(t *testing.T) {
	var buf bytes.Buffer

	err := RenderBookmarklet(&buf, Bookmarklet{
		ViewerURL:              "http://localhost:8000/reader",
		ViewerOrigin:           "http://localhost:8000",
		Sources:                []string{"http://localhost:8000/engine/readability.js", "https://cdn.example/r.js"},
		MessageType:            domain.MessageType,
		IndicatorText:          "📖 Extracting article...",
		CharThreshold:          500,
		ExcerptLength:          200,
		PresentationAttributes: []string{"style", "class", "color", "bgcolor"},
		Interval:               200 * time.Millisecond,
		MinSends:               5,
		MaxAttempts:            50,
		Deadline:               10 * time.Second,
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, `var VIEWER_URL = "http://localhost:8000/reader";`)
	assert.Contains(t, out, `var VIEWER_ORIGIN = "http://localhost:8000";`)
	assert.Contains(t, out, `var SOURCES = ["http://localhost:8000/engine/readability.js","https://cdn.example/r.js"];`)
	assert.Contains(t, out, `var MESSAGE_TYPE = "READER_VIEW_ARTICLE";`)
	assert.Contains(t, out, `var CHAR_THRESHOLD = 500;`)
	assert.Contains(t, out, `var INTERVAL_MS = 200;`)
	assert.Contains(t, out, `var MIN_SENDS = 5;`)
	assert.Contains(t, out, `var MAX_ATTEMPTS = 50;`)
	assert.Contains(t, out, `var DEADLINE_MS = 10000;`)
	assert.Contains(t, out, `"bgcolor"`)
}

func TestRenderBookmarklet_EscapesValues(t *testing.T) {
	var buf bytes.Buffer

	err := RenderBookmarklet(&buf, Bookmarklet{ViewerURL: `http://x/"</script>`})
	require.NoError(t, err)

	assert.NotContains(t, buf.String(), "</script>")
	assert.Contains(t, buf.String(), `http://x/\"\u003c/script\u003e`)
}

func TestLoaderLink(t *testing.T) {
	link := LoaderLink("http://localhost:8000/bookmarklet.js")

	require.True(t, strings.HasPrefix(link, "javascript:"))
	src, err := url.PathUnescape(strings.TrimPrefix(link, "javascript:"))
	require.NoError(t, err)
	assert.Contains(t, src, `s.src="http://localhost:8000/bookmarklet.js"`)
	assert.Contains(t, src, "document.body.appendChild(s)")
	assert.NotContains(t, link, " ")
}
