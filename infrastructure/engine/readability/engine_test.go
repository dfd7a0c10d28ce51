package readability

import (
	"net/url"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

func parseFile(t *testing.T, path string) *html.Node {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	doc, err := html.Parse(f)
	require.NoError(t, err)
	return doc
}

func TestEngine_Extract_Article(t *testing.T) {
	doc := parseFile(t, "testdata/article.html")
	pageURL, _ := url.Parse("https://gazette.example.com/science/tidal")

	ext, err := NewEngine().Extract(doc, pageURL)

	require.NoError(t, err)
	require.NotNil(t, ext)
	assert.Contains(t, ext.Title, "Tidal Energy Comes of Age")
	assert.Contains(t, ext.TextContent, "underwater turbines")
	assert.Contains(t, ext.Content, "standardized modules")
	assert.NotContains(t, ext.TextContent, "Copyright Example Gazette")
}

func TestEngine_Extract_EmptyDocument(t *testing.T) {
	doc, err := html.Parse(strings.NewReader("<html><head><title>Empty</title></head><body></body></html>"))
	require.NoError(t, err)

	ext, err := NewEngine().Extract(doc, nil)

	assert.NoError(t, err)
	assert.Nil(t, ext)
}

func TestEngine_Extract_NilDocument(t *testing.T) {
	ext, err := NewEngine().Extract(nil, nil)

	assert.NoError(t, err)
	assert.Nil(t, ext)
}
