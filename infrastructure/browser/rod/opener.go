// ABOUTME: Viewer tabs as delivery targets: opening them and posting envelopes into them
// ABOUTME: Posts go through window.postMessage with the viewer's explicit origin

package rod

import (
	"context"
	"sync"
	"time"

	"readerview/core/delivery"
	"readerview/core/domain"
	coreerrors "readerview/core/errors"

	"github.com/go-rod/rod"
)

// StateAttribute is the root element attribute where the viewer reports its receiver state.
const StateAttribute = "data-reader-state"

var (
	_ delivery.Opener = (*Opener)(nil)
	_ delivery.Window = (*Window)(nil)
)

// Opener opens viewer tabs in a Browser.
type Opener struct {
	browser *Browser

	mu   sync.Mutex
	last *Window
}

// Open creates a tab at viewerURL. A tab that cannot be created is reported
// the way a blocked popup would be.
func (o *Opener) Open(ctx context.Context, viewerURL string) (delivery.Window, error) {
	page, err := o.browser.newTab(ctx, viewerURL)
	if err != nil {
		return nil, coreerrors.PopupBlocked(err)
	}

	w := &Window{page: page}
	o.mu.Lock()
	o.last = w
	o.mu.Unlock()
	return w, nil
}

// LastWindow returns the most recently opened viewer tab, or nil.
func (o *Opener) LastWindow() *Window {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.last
}

// Window is an open viewer tab.
type Window struct {
	page *rod.Page
}

// PostMessage dispatches env to the viewer as a message event.
func (w *Window) PostMessage(ctx context.Context, env domain.Envelope, targetOrigin string) error {
	_, err := w.page.Context(ctx).Eval(`(env, origin) => { window.postMessage(env, origin); }`, env, targetOrigin)
	return err
}

// State reads the receiver state the viewer exposes on its root element.
func (w *Window) State(ctx context.Context) (string, error) {
	res, err := w.page.Context(ctx).Eval(`(attr) => document.documentElement.getAttribute(attr) || ''`, StateAttribute)
	if err != nil {
		return "", err
	}
	return res.Value.Str(), nil
}

// WaitSettled polls State until the viewer leaves "waiting" or ctx ends.
func (w *Window) WaitSettled(ctx context.Context) (string, error) {
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		state, err := w.State(ctx)
		if err != nil {
			return "", err
		}
		if state != "" && state != "waiting" {
			return state, nil
		}

		select {
		case <-ctx.Done():
			return state, ctx.Err()
		case <-ticker.C:
		}
	}
}

// Close closes the viewer tab.
func (w *Window) Close() error {
	return w.page.Close()
}
