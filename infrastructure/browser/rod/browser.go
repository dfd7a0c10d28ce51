// ABOUTME: Browser session management on go-rod for driving the in-page extractor live
// ABOUTME: Launches or attaches to Chrome and opens article and viewer tabs

package rod

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// Browser owns a Chrome instance. It is safe for concurrent use.
type Browser struct {
	browser  *rod.Browser
	launcher *launcher.Launcher
	closed   atomic.Bool
}

// Launch starts a new Chrome, downloading one if none is installed.
func Launch(headless bool) (*Browser, error) {
	l := launcher.New().
		Set("disable-background-timer-throttling").
		Set("disable-backgrounding-occluded-windows").
		Set("disable-renderer-backgrounding").
		Set("disable-dev-shm-usage").
		Set("disable-popup-blocking").
		Leakless(true).
		Headless(headless)

	u, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("launching browser: %w", err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return nil, fmt.Errorf("connecting to browser: %w", err)
	}

	return &Browser{browser: browser, launcher: l}, nil
}

// Connect attaches to an already running Chrome via its DevTools websocket URL.
func Connect(controlURL string) (*Browser, error) {
	browser := rod.New().ControlURL(controlURL)
	if err := browser.Connect(); err != nil {
		return nil, fmt.Errorf("connecting to browser: %w", err)
	}
	return &Browser{browser: browser}, nil
}

// Open navigates a new tab to url and waits for it to load.
func (b *Browser) Open(ctx context.Context, url string) (*Page, error) {
	page, err := b.newTab(ctx, url)
	if err != nil {
		return nil, err
	}
	return &Page{page: page}, nil
}

// Opener returns a delivery opener that creates viewer tabs in this browser.
func (b *Browser) Opener() *Opener {
	return &Opener{browser: b}
}

func (b *Browser) newTab(ctx context.Context, url string) (*rod.Page, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	page, err := b.browser.Page(proto.TargetCreateTarget{URL: url})
	if err != nil {
		return nil, err
	}

	if err := page.Context(ctx).WaitLoad(); err != nil {
		_ = page.Close()
		return nil, fmt.Errorf("loading %s: %w", url, err)
	}
	return page, nil
}

// Close releases browser resources. Close is safe to call multiple times.
func (b *Browser) Close() error {
	if !b.closed.CompareAndSwap(false, true) {
		return nil
	}

	err := b.browser.Close()
	if b.launcher != nil {
		b.launcher.Kill()
	}
	return err
}
