// ABOUTME: Extraction handlers for the Huma API
// ABOUTME: POST /api/extract returns one article, POST /api/extract/batch fans out over several URLs

package handlers

import (
	"context"
	"net/http"

	"readerview/api/dto/requests"
	"readerview/api/dto/responses"
	"readerview/core/interfaces"
	"readerview/pkg/featureflags"

	"github.com/danielgtaylor/huma/v2"
)

// ExtractHandler handles article extraction requests
type ExtractHandler struct {
	readerService interfaces.ReaderService
	flags         featureflags.Manager
}

// NewExtractHandler creates a new extraction handler
func NewExtractHandler(readerService interfaces.ReaderService, flags featureflags.Manager) *ExtractHandler {
	if flags == nil {
		flags = featureflags.NewEnvManager("")
	}
	return &ExtractHandler{
		readerService: readerService,
		flags:         flags,
	}
}

// RegisterRoutes registers all extraction routes
func (h *ExtractHandler) RegisterRoutes(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "extractArticle",
		Method:      http.MethodPost,
		Path:        "/api/extract",
		Summary:     "Extract an article",
		Description: "Fetches the page server-side and returns its readable, sanitized body",
		Tags:        []string{"Extract"},
		Errors:      []int{400, 403, 422, 429, 502, 504},
	}, h.Extract)

	huma.Register(api, huma.Operation{
		OperationID: "extractArticles",
		Method:      http.MethodPost,
		Path:        "/api/extract/batch",
		Summary:     "Extract several articles",
		Description: "Extracts every URL independently; each result carries the status the single endpoint would return",
		Tags:        []string{"Extract"},
	}, h.ExtractBatch)
}

// ExtractInput defines the input for the Extract operation
type ExtractInput struct {
	Body requests.ExtractRequest
}

// ExtractOutput defines the output for the Extract operation
type ExtractOutput struct {
	Body responses.ExtractResponse
}

// Extract handles single article extraction
func (h *ExtractHandler) Extract(ctx context.Context, input *ExtractInput) (*ExtractOutput, error) {
	article, err := h.readerService.Extract(ctx, input.Body.URL)
	if err != nil {
		return nil, toHTTPError(err)
	}

	return &ExtractOutput{
		Body: responses.ExtractResponse{
			Success: true,
			Data:    article,
		},
	}, nil
}

// ExtractBatchInput defines the input for the ExtractBatch operation
type ExtractBatchInput struct {
	Body requests.BatchExtractRequest
}

// ExtractBatchOutput defines the output for the ExtractBatch operation
type ExtractBatchOutput struct {
	Body responses.BatchExtractResponse
}

// ExtractBatch handles batch extraction. Per-URL failures do not fail the request.
func (h *ExtractHandler) ExtractBatch(ctx context.Context, input *ExtractBatchInput) (*ExtractBatchOutput, error) {
	if !h.flags.IsEnabled(ctx, featureflags.BatchExtract) {
		return nil, huma.Error404NotFound("Batch extraction is disabled")
	}
	if len(input.Body.URLs) == 0 {
		return nil, huma.Error400BadRequest("No URLs provided")
	}
	if len(input.Body.URLs) > requests.MaxBatchURLs {
		return nil, huma.Error400BadRequest("Too many URLs")
	}

	return &ExtractBatchOutput{
		Body: responses.BatchExtractResponse{
			Results: h.readerService.ExtractMany(ctx, input.Body.URLs),
		},
	}, nil
}
