package article

import (
	"strings"
	"testing"

	"readerview/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssemble_NilExtraction(t *testing.T) {
	got, err := Assemble(nil, domain.PageInfo{Title: "Page"})

	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestAssemble_EmptyTextIsNoResult(t *testing.T) {
	got, err := Assemble(&domain.Extraction{Title: "T", Content: "<p></p>", TextContent: "  "}, domain.PageInfo{})

	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestAssemble_UsesEngineFields(t *testing.T) {
	ext := &domain.Extraction{
		Title:       "Engine Title",
		Byline:      "Jane Doe",
		Content:     `<p class="x">one two three</p>`,
		TextContent: "one two three",
		Excerpt:     "summary",
		SiteName:    "Example News",
	}

	got, err := Assemble(ext, domain.PageInfo{Title: "Doc Title", Hostname: "example.com"})
	require.NoError(t, err)
	require.NotNil(t, got)

	assert.Equal(t, "Engine Title", got.Title)
	assert.Equal(t, "Jane Doe", *got.Byline)
	assert.Equal(t, "<p>one two three</p>", got.Content)
	assert.Equal(t, 3, got.Length)
	assert.Equal(t, "summary", *got.Excerpt)
	assert.Equal(t, "Example News", *got.SiteName)
	assert.True(t, got.Valid())
}

func TestAssemble_Fallbacks(t *testing.T) {
	textContent := strings.Repeat("word ", 100)
	ext := &domain.Extraction{
		Content:     "<p>" + textContent + "</p>",
		TextContent: textContent,
	}

	got, err := Assemble(ext, domain.PageInfo{Title: "Doc Title", Hostname: "example.com"})
	require.NoError(t, err)
	require.NotNil(t, got)

	assert.Equal(t, "Doc Title", got.Title)
	assert.Nil(t, got.Byline)
	assert.Equal(t, textContent[:ExcerptLength], *got.Excerpt)
	assert.Equal(t, "example.com", *got.SiteName)
	assert.Equal(t, 100, got.Length)
}

func TestAssemble_TitleFallsBackToHostnameThenUntitled(t *testing.T) {
	ext := &domain.Extraction{Content: "<p>x</p>", TextContent: "x"}

	got, err := Assemble(ext, domain.PageInfo{Hostname: "example.com"})
	require.NoError(t, err)
	assert.Equal(t, "example.com", got.Title)

	got, err = Assemble(ext, domain.PageInfo{})
	require.NoError(t, err)
	assert.Equal(t, "Untitled", got.Title)
	assert.Nil(t, got.SiteName)
}
