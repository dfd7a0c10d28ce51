// ABOUTME: Renders an extracted Article as a Markdown document
// ABOUTME: Wraps html-to-markdown with the commonmark and table plugins

package markdown

import (
	"errors"
	"strings"

	"readerview/core/domain"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
)

// Converter turns article content into Markdown.
type Converter struct {
	conv *converter.Converter
}

func NewConverter() *Converter {
	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
			table.NewTablePlugin(),
		),
	)
	return &Converter{conv: conv}
}

// Convert transforms an HTML fragment into Markdown.
func (c *Converter) Convert(html string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", errors.New("empty HTML input")
	}
	return c.conv.ConvertString(html)
}

// Article renders a heading, the byline and site, then the body.
func (c *Converter) Article(a *domain.Article) (string, error) {
	if a == nil {
		return "", errors.New("nil article")
	}

	body, err := c.Convert(a.Content)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.WriteString("# ")
	sb.WriteString(a.Title)
	sb.WriteString("\n\n")

	var meta []string
	if a.Byline != nil {
		meta = append(meta, *a.Byline)
	}
	if a.SiteName != nil {
		meta = append(meta, *a.SiteName)
	}
	if len(meta) > 0 {
		sb.WriteString("_")
		sb.WriteString(strings.Join(meta, " · "))
		sb.WriteString("_\n\n")
	}

	sb.WriteString(strings.TrimSpace(body))
	sb.WriteString("\n")
	return sb.String(), nil
}
