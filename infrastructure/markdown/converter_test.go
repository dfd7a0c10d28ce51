package markdown

import (
	"testing"

	"readerview/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConverter_Convert(t *testing.T) {
	conv := NewConverter()

	t.Run("paragraphs and links", func(t *testing.T) {
		md, err := conv.Convert(`<p>Read the <a href="https://example.com/data">data</a>.</p>`)

		require.NoError(t, err)
		assert.Contains(t, md, "[data](https://example.com/data)")
	})

	t.Run("headings", func(t *testing.T) {
		md, err := conv.Convert(`<h2>Section</h2><p>Text</p>`)

		require.NoError(t, err)
		assert.Contains(t, md, "## Section")
	})

	t.Run("tables", func(t *testing.T) {
		md, err := conv.Convert(`<table><tr><th>Site</th></tr><tr><td>Orkney</td></tr></table>`)

		require.NoError(t, err)
		assert.Contains(t, md, "| Site")
		assert.Contains(t, md, "Orkney")
	})

	t.Run("empty input", func(t *testing.T) {
		_, err := conv.Convert("   ")

		assert.Error(t, err)
	})
}

func TestConverter_Article(t *testing.T) {
	conv := NewConverter()
	a := &domain.Article{
		Title:       "Tidal Energy Comes of Age",
		Byline:      domain.StringPtr("Ana Ruiz"),
		SiteName:    domain.StringPtr("example.com"),
		Content:     "<p>Turbines are <strong>spinning</strong>.</p>",
		TextContent: "Turbines are spinning.",
		Length:      3,
	}

	md, err := conv.Article(a)

	require.NoError(t, err)
	assert.Contains(t, md, "# Tidal Energy Comes of Age\n\n")
	assert.Contains(t, md, "_Ana Ruiz · example.com_")
	assert.Contains(t, md, "**spinning**")
}

func TestConverter_ArticleWithoutMeta(t *testing.T) {
	md, err := NewConverter().Article(&domain.Article{Title: "T", Content: "<p>x</p>", TextContent: "x", Length: 1})

	require.NoError(t, err)
	assert.Equal(t, "# T\n\nx\n", md)
}

func TestConverter_ArticleNil(t *testing.T) {
	_, err := NewConverter().Article(nil)

	assert.Error(t, err)
}
