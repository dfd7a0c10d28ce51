// ABOUTME: Response DTOs for the article extraction endpoints
// ABOUTME: Error bodies are a single error string, matching what the bookmarklet expects

package responses

import "readerview/core/domain"

// ExtractResponse wraps a successfully extracted article
type ExtractResponse struct {
	Success bool            `json:"success" doc:"Always true on 200"`
	Data    *domain.Article `json:"data"`
}

// BatchExtractResponse holds one result per requested URL, in request order
type BatchExtractResponse struct {
	Results []domain.BatchResult `json:"results"`
}

// ErrorResponse is the body of every API error
type ErrorResponse struct {
	Status  int    `json:"-"`
	Message string `json:"error" doc:"User-facing explanation"`
}

// Error implements the error interface
func (e *ErrorResponse) Error() string {
	return e.Message
}

// GetStatus implements huma.StatusError
func (e *ErrorResponse) GetStatus() int {
	return e.Status
}
