// ABOUTME: Browser-facing routes: the viewer page, the bookmarklet and the engine proxy
// ABOUTME: Plain chi handlers since they serve HTML and JavaScript rather than JSON

package handlers

import (
	"bytes"
	"encoding/json"
	htmltemplate "html/template"
	"net/http"
	"strings"
	"time"

	"readerview/core/article"
	"readerview/core/capability"
	"readerview/core/delivery"
	"readerview/core/domain"
	coreerrors "readerview/core/errors"
	"readerview/core/inpage"
	"readerview/core/interfaces"
	"readerview/core/receiver"
	"readerview/core/sanitize"
	"readerview/pkg/featureflags"
	"readerview/web"

	"github.com/go-chi/chi/v5"
)

const (
	// EnginePath serves the proxied extraction engine script.
	EnginePath = "/engine/readability.js"

	// BookmarkletPath serves the injectable script.
	BookmarkletPath = "/bookmarklet.js"

	// CharThreshold is the minimum article size the in-page engine accepts.
	CharThreshold = 500
)

// ViewerConfig holds the values baked into the viewer page and bookmarklet
type ViewerConfig struct {
	// ViewerURL is the public address of GET /reader.
	ViewerURL string

	// EngineSources are tried after the proxy, in order.
	EngineSources []string

	Cadence        delivery.Cadence
	ReceiveTimeout time.Duration
}

// ViewerHandler serves the browser-facing routes
type ViewerHandler struct {
	capability interfaces.CapabilityService
	flags      featureflags.Manager
	logger     interfaces.Logger
	cfg        ViewerConfig
	origin     string
}

// NewViewerHandler creates a viewer handler. The viewer URL must be absolute.
func NewViewerHandler(capabilityService interfaces.CapabilityService, flags featureflags.Manager, logger interfaces.Logger, cfg ViewerConfig) (*ViewerHandler, error) {
	origin, err := delivery.Origin(cfg.ViewerURL)
	if err != nil {
		return nil, err
	}
	if flags == nil {
		flags = featureflags.NewEnvManager("")
	}
	if cfg.Cadence == (delivery.Cadence{}) {
		cfg.Cadence = delivery.DefaultCadence
	}
	if cfg.ReceiveTimeout <= 0 {
		cfg.ReceiveTimeout = receiver.DefaultTimeout
	}
	if cfg.EngineSources == nil {
		cfg.EngineSources = capability.DefaultSources
	}

	return &ViewerHandler{
		capability: capabilityService,
		flags:      flags,
		logger:     logger,
		cfg:        cfg,
		origin:     origin,
	}, nil
}

// RegisterRoutes registers the browser-facing routes on the router
func (h *ViewerHandler) RegisterRoutes(r chi.Router) {
	r.Get("/reader", h.Reader)
	r.Get(BookmarkletPath, h.BookmarkletScript)
	r.Get("/bookmarklet", h.BookmarkletLink)
	r.Get(EnginePath, h.EngineScript)
}

// Reader renders the viewer. An inline payload is consumed server-side and
// rendered directly; otherwise the page waits for a delivered message.
func (h *ViewerHandler) Reader(w http.ResponseWriter, r *http.Request) {
	page := web.ReaderPage{
		State:          string(receiver.Waiting),
		MessageType:    domain.MessageType,
		TimeoutMs:      h.cfg.ReceiveTimeout.Milliseconds(),
		TimeoutMessage: coreerrors.DeliveryTimeout().Message,
	}

	if h.flags.IsEnabled(r.Context(), featureflags.InlinePayload) && r.URL.Query().Has(receiver.InlineParam) {
		if inline := h.acceptInline(r); inline != nil {
			content, err := sanitize.Inert(inline.Content)
			if err != nil {
				h.logger.Warn("Failed to render inline article", map[string]interface{}{
					"error": err.Error(),
				})
			} else {
				page.State = string(receiver.Loaded)
				page.Article = inline
				page.Content = htmltemplate.HTML(content)
			}
		}
	}

	var buf bytes.Buffer
	if err := web.RenderReader(&buf, page); err != nil {
		h.logger.Error("Failed to render viewer", map[string]interface{}{
			"error": err.Error(),
		})
		writeError(w, http.StatusInternalServerError, "Failed to render viewer")
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write(buf.Bytes())
}

func (h *ViewerHandler) acceptInline(r *http.Request) *domain.Article {
	rcv, err := receiver.New(h.cfg.ViewerURL, h.cfg.ReceiveTimeout, h.logger)
	if err != nil {
		return nil
	}
	defer rcv.Close()

	if !rcv.AcceptInline(r.URL.Query()) {
		return nil
	}
	return rcv.Article()
}

// Sources lists the engine sources in the order the bookmarklet tries them.
func (h *ViewerHandler) Sources(r *http.Request) []string {
	sources := make([]string, 0, len(h.cfg.EngineSources)+1)
	if h.capability != nil && h.flags.IsEnabled(r.Context(), featureflags.EngineProxy) {
		sources = append(sources, h.origin+EnginePath)
	}
	return append(sources, h.cfg.EngineSources...)
}

// BookmarkletScript serves the injectable script
func (h *ViewerHandler) BookmarkletScript(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	err := web.RenderBookmarklet(&buf, web.Bookmarklet{
		ViewerURL:              h.cfg.ViewerURL,
		ViewerOrigin:           h.origin,
		Sources:                h.Sources(r),
		MessageType:            domain.MessageType,
		IndicatorText:          inpage.IndicatorText,
		CharThreshold:          CharThreshold,
		ExcerptLength:          article.ExcerptLength,
		PresentationAttributes: sanitize.PresentationAttributes,
		Interval:               h.cfg.Cadence.Interval,
		MinSends:               h.cfg.Cadence.MinSends,
		MaxAttempts:            h.cfg.Cadence.MaxAttempts,
		Deadline:               h.cfg.Cadence.Deadline,
	})
	if err != nil {
		h.logger.Error("Failed to render bookmarklet", map[string]interface{}{
			"error": err.Error(),
		})
		writeError(w, http.StatusInternalServerError, "Failed to render bookmarklet")
		return
	}

	w.Header().Set("Content-Type", "application/javascript; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	_, _ = w.Write(buf.Bytes())
}

// BookmarkletLink returns the javascript: link to save as a bookmark
func (h *ViewerHandler) BookmarkletLink(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(web.LoaderLink(h.origin + BookmarkletPath)))
}

// EngineScript proxies the extraction engine from the first CDN that serves it
func (h *ViewerHandler) EngineScript(w http.ResponseWriter, r *http.Request) {
	if h.capability == nil || !h.flags.IsEnabled(r.Context(), featureflags.EngineProxy) {
		writeError(w, http.StatusNotFound, "Engine proxy is disabled")
		return
	}

	script, err := h.capability.Script(r.Context())
	if err != nil {
		message := err.Error()
		if e := coreerrors.As(err); e != nil {
			message = e.Message
		}
		writeError(w, http.StatusBadGateway, message)
		return
	}

	w.Header().Set("Content-Type", script.ContentType)
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.Header().Set("X-Engine-Source", script.Source)
	_, _ = w.Write(script.Body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	body, _ := json.Marshal(map[string]string{"error": strings.TrimSpace(message)})
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}
