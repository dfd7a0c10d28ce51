// ABOUTME: Live page adapter giving the in-page extractor access to a rod tab
// ABOUTME: Reads and clones the document, and shows the progress indicator and notices

package rod

import (
	"context"
	"net/url"
	"strings"

	"readerview/core/domain"
	"readerview/core/inpage"

	"github.com/go-rod/rod"
	"golang.org/x/net/html"
)

// Ensure Page implements inpage.Page at compile time.
var _ inpage.Page = (*Page)(nil)

const (
	indicatorID = "reader-view-loading"
	noticeID    = "reader-view-notice"

	boxStyle = "position:fixed;top:20px;right:20px;color:white;padding:16px 24px;border-radius:8px;z-index:999999;font-family:system-ui;font-size:14px;box-shadow:0 4px 6px rgba(0,0,0,0.1);"
)

// Page is a tab showing the article the user wants to read.
type Page struct {
	page *rod.Page
}

// Info returns the document title and location.
func (p *Page) Info(ctx context.Context) (domain.PageInfo, *url.URL, error) {
	info, err := p.page.Context(ctx).Info()
	if err != nil {
		return domain.PageInfo{}, nil, err
	}

	u, err := url.Parse(info.URL)
	if err != nil {
		return domain.PageInfo{}, nil, err
	}
	return domain.PageInfo{Title: info.Title, Hostname: u.Hostname()}, u, nil
}

// Clone parses a snapshot of the live DOM into a detached tree.
func (p *Page) Clone(ctx context.Context) (*html.Node, error) {
	src, err := p.page.Context(ctx).HTML()
	if err != nil {
		return nil, err
	}
	return html.Parse(strings.NewReader(src))
}

// Indicate adds the progress box to the page.
func (p *Page) Indicate(ctx context.Context, text string) (func(), error) {
	_, err := p.page.Context(ctx).Eval(`(id, style, text) => {
		const div = document.createElement('div');
		div.id = id;
		div.style.cssText = style + 'background:#2563eb;';
		div.textContent = text;
		document.body.appendChild(div);
	}`, indicatorID, boxStyle, text)
	if err != nil {
		return nil, err
	}

	return func() {
		_, _ = p.page.Eval(`(id) => { const el = document.getElementById(id); if (el) el.remove(); }`, indicatorID)
	}, nil
}

// Notify shows message in a box on the page. A modal alert would block the
// DevTools session, so a dismissable element is used instead.
func (p *Page) Notify(ctx context.Context, message string) error {
	_, err := p.page.Context(ctx).Eval(`(id, style, text) => {
		let div = document.getElementById(id);
		if (!div) {
			div = document.createElement('div');
			div.id = id;
			div.style.cssText = style + 'background:#dc2626;cursor:pointer;white-space:pre-line;';
			div.onclick = () => div.remove();
			document.body.appendChild(div);
		}
		div.textContent = text;
	}`, noticeID, boxStyle, message)
	return err
}

// Notice returns the message currently shown by Notify, if any.
func (p *Page) Notice(ctx context.Context) (string, error) {
	res, err := p.page.Context(ctx).Eval(`(id) => { const el = document.getElementById(id); return el ? el.textContent : ''; }`, noticeID)
	if err != nil {
		return "", err
	}
	return res.Value.Str(), nil
}

// Loader returns the engine loader bound to this page.
func (p *Page) Loader() *Loader {
	return &Loader{page: p.page}
}

// Close closes the tab.
func (p *Page) Close() error {
	return p.page.Close()
}
