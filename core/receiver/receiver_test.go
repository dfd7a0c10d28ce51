package receiver

import (
	"context"
	"encoding/json"
	"net/url"
	"sync"
	"testing"
	"time"

	"readerview/core/delivery"
	"readerview/core/domain"
	coreerrors "readerview/core/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Debug(string, map[string]interface{}) {}
func (nopLogger) Info(string, map[string]interface{})  {}
func (nopLogger) Warn(string, map[string]interface{})  {}
func (nopLogger) Error(string, map[string]interface{}) {}

const viewerURL = "https://viewer.example.com/reader"

func newTestReceiver(t *testing.T, timeout time.Duration) *Receiver {
	t.Helper()
	r, err := New(viewerURL, timeout, nopLogger{})
	require.NoError(t, err)
	t.Cleanup(r.Close)
	return r
}

func article(title string) *domain.Article {
	return &domain.Article{
		Title:       title,
		Content:     "<p>Body text</p>",
		TextContent: "Body text",
		Length:      2,
		SiteName:    domain.StringPtr("example.com"),
	}
}

func envelopeJSON(t *testing.T, typ string, a *domain.Article) []byte {
	t.Helper()
	data, err := json.Marshal(domain.Envelope{Type: typ, Data: a})
	require.NoError(t, err)
	return data
}

func TestReceiver_StartsWaiting(t *testing.T) {
	r := newTestReceiver(t, time.Minute)

	assert.Equal(t, Waiting, r.State())
	assert.Nil(t, r.Article())
	assert.NoError(t, r.Err())
	assert.Equal(t, "https://viewer.example.com", r.Origin())
}

func TestReceiver_FirstValidMessageWins(t *testing.T) {
	r := newTestReceiver(t, time.Minute)

	assert.True(t, r.HandleMessage(envelopeJSON(t, domain.MessageType, article("First"))))
	assert.False(t, r.HandleMessage(envelopeJSON(t, domain.MessageType, article("Second"))))

	assert.Equal(t, Loaded, r.State())
	assert.Equal(t, "First", r.Article().Title)
}

func TestReceiver_IgnoresUntaggedAndInvalid(t *testing.T) {
	r := newTestReceiver(t, time.Minute)

	assert.False(t, r.HandleMessage([]byte(`not json`)))
	assert.False(t, r.HandleMessage(envelopeJSON(t, "SOMETHING_ELSE", article("Other"))))
	assert.False(t, r.HandleMessage([]byte(`{"type":"READER_VIEW_ARTICLE"}`)))
	assert.False(t, r.HandleMessage([]byte(`{"type":"READER_VIEW_ARTICLE","data":{"title":""}}`)))

	assert.Equal(t, Waiting, r.State())

	assert.True(t, r.HandleMessage(envelopeJSON(t, domain.MessageType, article("Real"))))
	assert.Equal(t, "Real", r.Article().Title)
}

func TestReceiver_TimesOut(t *testing.T) {
	r := newTestReceiver(t, 20*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	a, err := r.Wait(ctx)

	assert.Nil(t, a)
	assert.True(t, coreerrors.IsKind(err, coreerrors.KindDeliveryTimeout))
	assert.Equal(t, Failed, r.State())

	assert.False(t, r.HandleMessage(envelopeJSON(t, domain.MessageType, article("Late"))))
	assert.Equal(t, Failed, r.State())
}

func TestReceiver_LoadStopsTimer(t *testing.T) {
	r := newTestReceiver(t, 30*time.Millisecond)

	require.True(t, r.HandleMessage(envelopeJSON(t, domain.MessageType, article("On time"))))
	time.Sleep(60 * time.Millisecond)

	assert.Equal(t, Loaded, r.State())
	assert.NoError(t, r.Err())
}

func TestReceiver_AcceptInline(t *testing.T) {
	payload, err := json.Marshal(article("Inline"))
	require.NoError(t, err)

	tests := []struct {
		name     string
		query    url.Values
		accepted bool
	}{
		{"absent", url.Values{}, false},
		{"plain json", url.Values{InlineParam: {string(payload)}}, true},
		{"encoded twice", url.Values{InlineParam: {url.QueryEscape(string(payload))}}, true},
		{"garbage", url.Values{InlineParam: {"%%%"}}, false},
		{"not an article", url.Values{InlineParam: {`{"foo":1}`}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestReceiver(t, time.Minute)

			assert.Equal(t, tt.accepted, r.AcceptInline(tt.query))
			if tt.accepted {
				assert.Equal(t, Loaded, r.State())
				assert.Equal(t, "Inline", r.Article().Title)
			} else {
				assert.Equal(t, Waiting, r.State())
			}
		})
	}
}

func TestReceiver_InlineTakesPriority(t *testing.T) {
	payload, err := json.Marshal(article("Inline"))
	require.NoError(t, err)
	r := newTestReceiver(t, time.Minute)

	require.True(t, r.AcceptInline(url.Values{InlineParam: {string(payload)}}))
	assert.False(t, r.HandleMessage(envelopeJSON(t, domain.MessageType, article("Posted"))))

	assert.Equal(t, "Inline", r.Article().Title)
}

func TestReceiver_PostMessageChecksOrigin(t *testing.T) {
	r := newTestReceiver(t, time.Minute)
	ctx := context.Background()

	require.NoError(t, r.PostMessage(ctx, domain.NewEnvelope(article("Wrong")), "https://evil.example.net"))
	require.NoError(t, r.PostMessage(ctx, domain.NewEnvelope(article("Wildcard")), "*"))
	assert.Equal(t, Waiting, r.State())

	require.NoError(t, r.PostMessage(ctx, domain.NewEnvelope(article("Right")), r.Origin()))
	assert.Equal(t, "Right", r.Article().Title)
}

func TestReceiver_ConcurrentMessagesLoadOnce(t *testing.T) {
	r := newTestReceiver(t, time.Minute)

	data := envelopeJSON(t, domain.MessageType, article("Any"))

	var wg sync.WaitGroup
	accepted := make(chan bool, 20)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			accepted <- r.HandleMessage(data)
		}()
	}
	wg.Wait()
	close(accepted)

	count := 0
	for ok := range accepted {
		if ok {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

// opener hands the channel an in-process receiver as the viewer window.
type opener struct {
	receiver *Receiver
}

func (o opener) Open(context.Context, string) (delivery.Window, error) {
	return o.receiver, nil
}

func TestReceiver_EndToEndWithChannel(t *testing.T) {
	r := newTestReceiver(t, time.Minute)
	cadence := delivery.Cadence{Interval: time.Millisecond, MinSends: 5, MaxAttempts: 50, Deadline: time.Second}
	ch, err := delivery.NewChannel(opener{r}, viewerURL, nopLogger{}, delivery.WithCadence(cadence))
	require.NoError(t, err)

	b, err := ch.Deliver(context.Background(), article("Delivered"))
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	got, err := r.Wait(ctx)
	require.NoError(t, err)
	require.NoError(t, b.Wait(ctx))

	assert.Equal(t, "Delivered", got.Title)
	assert.Equal(t, 5, b.Successes())
}
