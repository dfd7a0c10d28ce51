// ABOUTME: Live in-page extraction driven through a real browser
// ABOUTME: Extracts from the loaded page, delivers into a viewer tab and reports how the viewer settled

package readerlib

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"readerview/api/handlers"
	"readerview/core/delivery"
	"readerview/core/inpage"
	"readerview/core/reader"
	"readerview/infrastructure/browser/rod"
	"readerview/pkg/featureflags"

	"github.com/go-chi/chi/v5"
)

// LiveResult reports one live extraction
type LiveResult struct {
	// ViewerURL is the viewer the article was delivered to
	ViewerURL string

	// State is the viewer's receiver state once it settled: loaded or failed
	State string

	Attempts  int
	Successes int
}

// Live opens pageURL in a browser, runs the in-page extractor on it and
// delivers the article to viewerURL. An empty viewerURL serves a viewer
// from this process for the duration of the call.
func (c *Client) Live(ctx context.Context, pageURL, viewerURL string) (*LiveResult, error) {
	if _, err := reader.ValidateURL(pageURL); err != nil {
		return nil, err
	}

	browser, err := c.openBrowser()
	if err != nil {
		return nil, NewError(ErrorTypeBrowser, "failed to start browser").WithCause(err)
	}
	defer browser.Close()

	if viewerURL == "" {
		local, stop, err := c.serveViewer()
		if err != nil {
			return nil, err
		}
		defer stop()
		viewerURL = local
	}

	origin, err := delivery.Origin(viewerURL)
	if err != nil {
		return nil, NewError(ErrorTypeConfiguration, "invalid viewer URL").WithCause(err)
	}

	page, err := browser.Open(ctx, pageURL)
	if err != nil {
		return nil, NewError(ErrorTypeBrowser, "failed to open page").WithCause(err)
	}
	defer page.Close()

	opener := browser.Opener()
	channel, err := delivery.NewChannel(opener, viewerURL, c.config.Logger, delivery.WithCadence(c.config.Cadence))
	if err != nil {
		return nil, err
	}

	sources := append([]string{origin + handlers.EnginePath}, c.config.EngineSources...)
	extractor := inpage.NewExtractor(page.Loader(), sources, channel, c.config.Logger)

	broadcast, err := extractor.Run(ctx, page)
	if err != nil {
		return nil, err
	}
	if err := broadcast.Wait(ctx); err != nil {
		return nil, err
	}

	result := &LiveResult{
		ViewerURL: viewerURL,
		Attempts:  broadcast.Attempts(),
		Successes: broadcast.Successes(),
	}

	window := opener.LastWindow()
	if window == nil {
		return result, nil
	}
	defer window.Close()

	settleCtx, cancel := context.WithTimeout(ctx, c.config.ReceiveTimeout+time.Second)
	defer cancel()
	result.State, err = window.WaitSettled(settleCtx)
	if err != nil {
		return result, err
	}
	return result, nil
}

func (c *Client) openBrowser() (*rod.Browser, error) {
	if c.config.BrowserControlURL != "" {
		return rod.Connect(c.config.BrowserControlURL)
	}
	return rod.Launch(c.config.Headless)
}

// serveViewer starts the viewer routes on a loopback port.
func (c *Client) serveViewer() (string, func(), error) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return "", nil, err
	}
	viewerURL := "http://" + ln.Addr().String() + "/reader"

	viewer, err := handlers.NewViewerHandler(c.capability, featureflags.AllEnabled(), c.config.Logger, handlers.ViewerConfig{
		ViewerURL:      viewerURL,
		EngineSources:  c.config.EngineSources,
		Cadence:        c.config.Cadence,
		ReceiveTimeout: c.config.ReceiveTimeout,
	})
	if err != nil {
		_ = ln.Close()
		return "", nil, err
	}

	router := chi.NewRouter()
	viewer.RegisterRoutes(router)
	srv := &http.Server{Handler: router, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			c.config.Logger.Error("Viewer server failed", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}()

	stop := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}
	return viewerURL, stop, nil
}
