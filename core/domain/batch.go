package domain

// BatchResult is the outcome of one URL in a batch extraction.
type BatchResult struct {
	URL     string   `json:"url"`
	Success bool     `json:"success"`
	Data    *Article `json:"data,omitempty"`
	Error   string   `json:"error,omitempty"`

	// Status is the HTTP status the single-URL endpoint would have answered with.
	Status int `json:"status"`
}
