// ABOUTME: Domain models for extracted articles and the cross-context delivery envelope
// ABOUTME: Article is the canonical output of both extractors; Envelope frames it for delivery

package domain

// MessageType is the discriminator tag carried by every delivery envelope.
// Receivers ignore messages that do not carry it.
const MessageType = "READER_VIEW_ARTICLE"

// Article is the readable body of a web page, produced by either extractor.
// Optional fields are pointers so that absent values serialize as null.
type Article struct {
	Title       string  `json:"title" doc:"Article title, never empty"`
	Byline      *string `json:"byline" doc:"Author attribution, null when unknown"`
	Content     string  `json:"content" doc:"Sanitized HTML fragment"`
	TextContent string  `json:"textContent" doc:"Plain text rendering of content"`
	Length      int     `json:"length" doc:"Approximate word count of textContent"`
	Excerpt     *string `json:"excerpt" doc:"Short summary"`
	SiteName    *string `json:"siteName" doc:"Publisher name or source hostname"`
}

// Valid reports whether the article satisfies the minimum shape a viewer needs.
func (a *Article) Valid() bool {
	return a != nil && a.Title != "" && a.TextContent != "" && a.Length >= 0
}

// Extraction is the raw result returned by an extraction engine, before
// sanitizing and fallback rules are applied.
type Extraction struct {
	Title       string
	Byline      string
	Content     string
	TextContent string
	Excerpt     string
	SiteName    string
}

// PageInfo describes the document an extraction was taken from. Its values
// are used when the engine leaves a field empty.
type PageInfo struct {
	Title    string
	Hostname string
}

// Envelope is the unit exchanged over the delivery channel.
type Envelope struct {
	Type string   `json:"type"`
	Data *Article `json:"data"`
}

// NewEnvelope wraps an article in an envelope carrying MessageType.
func NewEnvelope(article *Article) Envelope {
	return Envelope{Type: MessageType, Data: article}
}

// StringPtr returns nil for an empty string and a pointer to s otherwise.
func StringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
