// ABOUTME: Request DTOs for the article extraction endpoints
// ABOUTME: URL presence and format are checked by the reader service so errors share one shape

package requests

// MaxBatchURLs caps the number of URLs in one batch request.
const MaxBatchURLs = 20

// ExtractRequest asks for the article at a single URL
type ExtractRequest struct {
	_ struct{} `json:"-" additionalProperties:"true"`

	// URL is the page to extract. Missing or malformed values yield a 400.
	URL string `json:"url,omitempty" example:"https://example.com/article" doc:"Absolute http or https URL of the article"`
}

// BatchExtractRequest asks for the articles at several URLs
type BatchExtractRequest struct {
	_ struct{} `json:"-" additionalProperties:"true"`

	// URLs must hold 1 to MaxBatchURLs entries; the handler answers 400 otherwise.
	URLs []string `json:"urls" doc:"Article URLs, extracted independently (at most 20)"`
}
