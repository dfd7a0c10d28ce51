// ABOUTME: Delivery Channel: opens the viewer context and repeatedly posts the article envelope to it
// ABOUTME: Best-effort at-least-once broadcast bounded by a send ceiling and a hard deadline

package delivery

import (
	"context"
	"fmt"
	"net/url"
	"sync/atomic"
	"time"

	"readerview/core/domain"
	coreerrors "readerview/core/errors"
	"readerview/core/interfaces"
)

// Window is a handle on an opened viewer context.
type Window interface {
	// PostMessage delivers env to the window. targetOrigin must match the
	// window's own origin or the message is dropped by the receiving side.
	PostMessage(ctx context.Context, env domain.Envelope, targetOrigin string) error
}

// Opener creates viewer contexts. An error means the context could not be
// created at all, as when a browser blocks a popup.
type Opener interface {
	Open(ctx context.Context, viewerURL string) (Window, error)
}

// Cadence controls how often and for how long an envelope is re-sent.
type Cadence struct {
	Interval    time.Duration
	MinSends    int
	MaxAttempts int
	Deadline    time.Duration
}

// DefaultCadence sends every 200ms, stops after five successful sends, and
// never exceeds fifty attempts or ten seconds.
var DefaultCadence = Cadence{
	Interval:    200 * time.Millisecond,
	MinSends:    5,
	MaxAttempts: 50,
	Deadline:    10 * time.Second,
}

type Channel struct {
	opener    Opener
	viewerURL string
	origin    string
	cadence   Cadence
	logger    interfaces.Logger
}

// Option configures a Channel.
type Option func(*Channel)

// WithCadence replaces DefaultCadence.
func WithCadence(c Cadence) Option {
	return func(ch *Channel) {
		ch.cadence = c
	}
}

// NewChannel builds a channel that delivers to viewerURL. The target origin of
// every send is derived from viewerURL.
func NewChannel(opener Opener, viewerURL string, logger interfaces.Logger, opts ...Option) (*Channel, error) {
	origin, err := Origin(viewerURL)
	if err != nil {
		return nil, err
	}

	c := &Channel{
		opener:    opener,
		viewerURL: viewerURL,
		origin:    origin,
		cadence:   DefaultCadence,
		logger:    logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Origin returns the scheme://host[:port] of an absolute URL.
func Origin(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("viewer URL %q has no origin", raw)
	}
	return u.Scheme + "://" + u.Host, nil
}

// TargetOrigin is the origin every send is addressed to.
func (c *Channel) TargetOrigin() string {
	return c.origin
}

// Deliver opens the viewer and starts broadcasting article to it. A refused
// open returns PopupBlocked and nothing is sent.
func (c *Channel) Deliver(ctx context.Context, article *domain.Article) (*Broadcast, error) {
	window, err := c.opener.Open(ctx, c.viewerURL)
	if err != nil || window == nil {
		c.logger.Warn("Viewer could not be opened", map[string]interface{}{
			"viewer": c.viewerURL,
			"error":  fmt.Sprint(err),
		})
		return nil, coreerrors.PopupBlocked(err)
	}

	loopCtx, cancel := context.WithTimeout(ctx, c.cadence.Deadline)
	b := &Broadcast{
		cancel: cancel,
		done:   make(chan struct{}),
	}

	go c.run(loopCtx, b, window, domain.NewEnvelope(article))

	return b, nil
}

func (c *Channel) run(ctx context.Context, b *Broadcast, window Window, env domain.Envelope) {
	defer close(b.done)
	defer b.cancel()

	ticker := time.NewTicker(c.cadence.Interval)
	defer ticker.Stop()

	for {
		c.send(ctx, b, window, env)

		if int(b.successes.Load()) >= c.cadence.MinSends || int(b.attempts.Load()) >= c.cadence.MaxAttempts {
			c.logger.Debug("Broadcast finished", map[string]interface{}{
				"attempts":  b.attempts.Load(),
				"successes": b.successes.Load(),
			})
			return
		}

		select {
		case <-ctx.Done():
			c.logger.Debug("Broadcast stopped", map[string]interface{}{
				"attempts":  b.attempts.Load(),
				"successes": b.successes.Load(),
				"reason":    ctx.Err().Error(),
			})
			return
		case <-ticker.C:
		}
	}
}

// send makes one attempt. Failures are expected while the viewer is still
// loading, so they are only logged.
func (c *Channel) send(ctx context.Context, b *Broadcast, window Window, env domain.Envelope) {
	n := b.attempts.Add(1)
	if err := window.PostMessage(ctx, env, c.origin); err != nil {
		c.logger.Debug("Send failed", map[string]interface{}{
			"attempt": n,
			"error":   err.Error(),
		})
		return
	}
	b.successes.Add(1)
}

// Broadcast is a running delivery. It owns the viewer window handle until Done closes.
type Broadcast struct {
	attempts  atomic.Int32
	successes atomic.Int32
	cancel    context.CancelFunc
	done      chan struct{}
}

// Cancel stops the broadcast early. It is safe to call more than once.
func (b *Broadcast) Cancel() {
	b.cancel()
}

// Done is closed when the send loop has exited.
func (b *Broadcast) Done() <-chan struct{} {
	return b.done
}

// Wait blocks until the broadcast ends or ctx is done.
func (b *Broadcast) Wait(ctx context.Context) error {
	select {
	case <-b.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Attempts is the number of sends tried so far.
func (b *Broadcast) Attempts() int {
	return int(b.attempts.Load())
}

// Successes is the number of sends that were accepted by the window.
func (b *Broadcast) Successes() int {
	return int(b.successes.Load())
}
