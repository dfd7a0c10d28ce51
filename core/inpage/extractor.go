// ABOUTME: In-Page Extractor: runs the extraction engine inside the page the user is reading
// ABOUTME: Loads the engine capability, extracts from a document clone and hands the article to delivery

package inpage

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"readerview/core/article"
	"readerview/core/delivery"
	"readerview/core/domain"
	coreerrors "readerview/core/errors"
	"readerview/core/interfaces"

	"golang.org/x/net/html"
)

// IndicatorText is shown on the page while extraction runs.
const IndicatorText = "📖 Extracting article..."

// Page is the live document the extractor runs against.
type Page interface {
	// Info returns the document title, hostname and location.
	Info(ctx context.Context) (domain.PageInfo, *url.URL, error)

	// Clone returns a deep copy of the live document. The live DOM is never
	// handed to the engine.
	Clone(ctx context.Context) (*html.Node, error)

	// Indicate shows a progress indicator and returns a function removing it.
	Indicate(ctx context.Context, text string) (func(), error)

	// Notify shows a message to the user.
	Notify(ctx context.Context, message string) error
}

// Loader makes the engine capability available in the page.
type Loader interface {
	// Loaded returns the engine when the page already has it.
	Loaded(ctx context.Context) (interfaces.ExtractionEngine, bool)

	// Load fetches the engine from source into the page.
	Load(ctx context.Context, source string) (interfaces.ExtractionEngine, error)
}

// Deliverer hands an article to the viewer.
type Deliverer interface {
	Deliver(ctx context.Context, article *domain.Article) (*delivery.Broadcast, error)
}

type Extractor struct {
	loader    Loader
	sources   []string
	deliverer Deliverer
	logger    interfaces.Logger
}

// NewExtractor creates an extractor that loads the engine from sources in order.
func NewExtractor(loader Loader, sources []string, deliverer Deliverer, logger interfaces.Logger) *Extractor {
	return &Extractor{
		loader:    loader,
		sources:   sources,
		deliverer: deliverer,
		logger:    logger,
	}
}

// Run extracts the article from page and starts delivering it. Every failure
// is shown to the user on the page and returned; a nil Broadcast means nothing
// was sent.
func (e *Extractor) Run(ctx context.Context, page Page) (*delivery.Broadcast, error) {
	remove, err := page.Indicate(ctx, IndicatorText)
	if err != nil {
		e.logger.Debug("Progress indicator unavailable", map[string]interface{}{
			"error": err.Error(),
		})
		remove = func() {}
	}
	defer remove()

	b, err := e.run(ctx, page)
	if err != nil {
		e.notify(ctx, page, err)
		return nil, err
	}
	return b, nil
}

func (e *Extractor) run(ctx context.Context, page Page) (*delivery.Broadcast, error) {
	engine, err := e.engine(ctx)
	if err != nil {
		return nil, err
	}

	info, pageURL, err := page.Info(ctx)
	if err != nil {
		return nil, coreerrors.WrapError(err, "reading page")
	}

	clone, err := page.Clone(ctx)
	if err != nil {
		return nil, coreerrors.WrapError(err, "cloning document")
	}

	ext, err := engine.Extract(clone, pageURL)
	if err != nil {
		return nil, coreerrors.WrapError(err, "Error extracting article")
	}

	result, err := article.Assemble(ext, info)
	if err != nil {
		return nil, coreerrors.WrapError(err, "Error extracting article")
	}
	if result == nil {
		return nil, coreerrors.NotExtractable()
	}

	e.logger.Info("Article extracted in page", map[string]interface{}{
		"url":    pageURL.String(),
		"title":  result.Title,
		"length": result.Length,
	})

	return e.deliverer.Deliver(ctx, result)
}

// engine returns the page's engine, loading it from the first source that works.
func (e *Extractor) engine(ctx context.Context) (interfaces.ExtractionEngine, error) {
	if engine, ok := e.loader.Loaded(ctx); ok {
		return engine, nil
	}

	var errs []error
	for _, source := range e.sources {
		engine, err := e.loader.Load(ctx, source)
		if err == nil {
			return engine, nil
		}
		e.logger.Warn("Engine source failed", map[string]interface{}{
			"source": source,
			"error":  err.Error(),
		})
		errs = append(errs, fmt.Errorf("%s: %w", source, err))
		if ctx.Err() != nil {
			break
		}
	}

	if len(errs) == 0 {
		errs = append(errs, errors.New("no engine sources configured"))
	}
	return nil, coreerrors.CapabilityLoadFailed(errors.Join(errs...))
}

func (e *Extractor) notify(ctx context.Context, page Page, err error) {
	message := err.Error()
	if extractionErr := coreerrors.As(err); extractionErr != nil {
		message = extractionErr.Message
	}

	if notifyErr := page.Notify(ctx, message); notifyErr != nil {
		e.logger.Error("Could not notify user", map[string]interface{}{
			"message": message,
			"error":   notifyErr.Error(),
		})
	}
}
