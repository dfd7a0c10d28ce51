// ABOUTME: Builds the canonical Article from a raw engine extraction
// ABOUTME: Applies sanitizing and the title, excerpt, site name and length fallbacks

package article

import (
	"strings"

	"readerview/core/domain"
	"readerview/core/sanitize"
	"readerview/pkg/utils/text"
)

// ExcerptLength is the number of characters of text used when the engine
// provides no excerpt.
const ExcerptLength = 200

// Assemble turns an engine extraction into an Article. It returns nil when the
// extraction has no text, so callers never see a partial record.
func Assemble(ext *domain.Extraction, page domain.PageInfo) (*domain.Article, error) {
	if ext == nil || strings.TrimSpace(ext.TextContent) == "" {
		return nil, nil
	}

	content, err := sanitize.Sanitize(ext.Content)
	if err != nil {
		return nil, err
	}

	length := text.WordCount(ext.TextContent)

	excerpt := ext.Excerpt
	if excerpt == "" {
		excerpt = text.Excerpt(ext.TextContent, ExcerptLength)
	}

	siteName := ext.SiteName
	if siteName == "" {
		siteName = page.Hostname
	}

	return &domain.Article{
		Title:       title(ext.Title, page),
		Byline:      domain.StringPtr(strings.TrimSpace(ext.Byline)),
		Content:     content,
		TextContent: ext.TextContent,
		Length:      length,
		Excerpt:     domain.StringPtr(excerpt),
		SiteName:    domain.StringPtr(siteName),
	}, nil
}

func title(extracted string, page domain.PageInfo) string {
	for _, candidate := range []string{extracted, page.Title, page.Hostname} {
		if t := strings.TrimSpace(candidate); t != "" {
			return t
		}
	}
	return "Untitled"
}
