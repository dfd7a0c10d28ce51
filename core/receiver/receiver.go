// ABOUTME: Receiver: the viewer-side state machine that accepts exactly one article
// ABOUTME: Consumes an inline payload or the first tagged message, and fails after a timeout

package receiver

import (
	"context"
	"encoding/json"
	"net/url"
	"sync"
	"time"

	"readerview/core/delivery"
	"readerview/core/domain"
	coreerrors "readerview/core/errors"
	"readerview/core/interfaces"
)

// State is the receiver lifecycle position. Loaded and Failed are terminal.
type State string

const (
	Waiting State = "waiting"
	Loaded  State = "loaded"
	Failed  State = "failed"
)

// DefaultTimeout is how long a receiver waits for an article.
const DefaultTimeout = 10 * time.Second

// InlineParam is the query parameter carrying an inline article.
const InlineParam = "data"

// Ensure Receiver can be targeted by the delivery channel.
var _ delivery.Window = (*Receiver)(nil)

type Receiver struct {
	origin string
	logger interfaces.Logger

	mu      sync.Mutex
	state   State
	article *domain.Article
	err     error
	timer   *time.Timer
	done    chan struct{}
}

// New creates a receiver for the viewer at viewerURL and starts its timeout.
func New(viewerURL string, timeout time.Duration, logger interfaces.Logger) (*Receiver, error) {
	origin, err := delivery.Origin(viewerURL)
	if err != nil {
		return nil, err
	}

	r := &Receiver{
		origin: origin,
		logger: logger,
		state:  Waiting,
		done:   make(chan struct{}),
	}
	r.timer = time.AfterFunc(timeout, r.expire)
	return r, nil
}

// Origin is the origin posts must target to be accepted.
func (r *Receiver) Origin() string {
	return r.origin
}

// AcceptInline consumes the inline payload from a viewer query string. It
// reports whether the receiver moved to Loaded.
func (r *Receiver) AcceptInline(query url.Values) bool {
	raw := query.Get(InlineParam)
	if raw == "" {
		return false
	}

	article, ok := decodeArticle([]byte(raw))
	if !ok {
		// Some callers encode the payload twice.
		unescaped, err := url.QueryUnescape(raw)
		if err != nil {
			return false
		}
		if article, ok = decodeArticle([]byte(unescaped)); !ok {
			r.logger.Warn("Inline payload is not an article", nil)
			return false
		}
	}

	return r.load(article, "inline")
}

// HandleMessage offers a raw message to the receiver. Only the first message
// carrying the article tag and a valid article is accepted.
func (r *Receiver) HandleMessage(data []byte) bool {
	var env struct {
		Type string          `json:"type"`
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(data, &env); err != nil || env.Type != domain.MessageType {
		return false
	}

	article, ok := decodeArticle(env.Data)
	if !ok {
		return false
	}
	return r.load(article, "message")
}

// PostMessage implements delivery.Window for in-process delivery. Posts aimed
// at another origin are dropped without error, as a browser would.
func (r *Receiver) PostMessage(_ context.Context, env domain.Envelope, targetOrigin string) error {
	if targetOrigin != r.origin {
		r.logger.Debug("Dropped message for another origin", map[string]interface{}{
			"target": targetOrigin,
			"origin": r.origin,
		})
		return nil
	}

	data, err := json.Marshal(env)
	if err != nil {
		return err
	}
	r.HandleMessage(data)
	return nil
}

func (r *Receiver) load(article *domain.Article, via string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state != Waiting {
		return false
	}
	r.timer.Stop()
	r.state = Loaded
	r.article = article
	close(r.done)

	r.logger.Debug("Article received", map[string]interface{}{
		"via":   via,
		"title": article.Title,
	})
	return true
}

func (r *Receiver) expire() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state != Waiting {
		return
	}
	r.state = Failed
	r.err = coreerrors.DeliveryTimeout()
	close(r.done)

	r.logger.Warn("No article received before timeout", nil)
}

// Close abandons a waiting receiver without failing it.
func (r *Receiver) Close() {
	r.timer.Stop()
}

// State returns the current lifecycle position.
func (r *Receiver) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Article returns the accepted article, or nil.
func (r *Receiver) Article() *domain.Article {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.article
}

// Err returns DeliveryTimeout once the receiver has failed.
func (r *Receiver) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.err
}

// Done is closed when the receiver leaves Waiting.
func (r *Receiver) Done() <-chan struct{} {
	return r.done
}

// Wait blocks until the receiver reaches a terminal state or ctx is done.
func (r *Receiver) Wait(ctx context.Context) (*domain.Article, error) {
	select {
	case <-r.done:
		return r.Article(), r.Err()
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func decodeArticle(data []byte) (*domain.Article, bool) {
	if len(data) == 0 {
		return nil, false
	}
	var a domain.Article
	if err := json.Unmarshal(data, &a); err != nil || !a.Valid() {
		return nil, false
	}
	return &a, true
}
