package errutil_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/getsentry/sentry-go"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/casebook/pkg/utils/errutil"
)

type eventRecorder struct {
	mu     sync.Mutex
	events []*sentry.Event
}

func (r *eventRecorder) record(event *sentry.Event, _ *sentry.EventHint) *sentry.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
	// Dropped so nothing is sent
	return nil
}

func (r *eventRecorder) captured() []*sentry.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.events
}

func bindRecorder(t *testing.T) *eventRecorder {
	t.Helper()
	rec := &eventRecorder{}
	client, err := sentry.NewClient(sentry.ClientOptions{BeforeSend: rec.record})
	gt.NoError(t, err).Required()

	hub := sentry.CurrentHub()
	prev := hub.Client()
	hub.BindClient(client)
	t.Cleanup(func() { hub.BindClient(prev) })
	return rec
}

func TestHandle(t *testing.T) {
	t.Run("nil error", func(t *testing.T) {
		gt.NoError(t, errutil.Handle(context.Background(), nil, "ignored"))
	})

	t.Run("reports goerr values to sentry", func(t *testing.T) {
		rec := bindRecorder(t)
		err := goerr.New("write failed", goerr.V("storage_key", "special_ed_case_files"))

		gt.Error(t, errutil.Handle(context.Background(), err, "failed to persist case list")).Is(err)

		events := rec.captured()
		gt.Array(t, events).Length(1).Required()
		gt.Value(t, events[0].Tags["message"]).Equal("failed to persist case list")
		gt.Value(t, events[0].Contexts["goerr"]["storage_key"]).Equal(any("special_ed_case_files"))
	})

	t.Run("plain error has no goerr context", func(t *testing.T) {
		rec := bindRecorder(t)
		gt.Error(t, errutil.Handle(context.Background(), errors.New("boom"), "plain failure"))

		events := rec.captured()
		gt.Array(t, events).Length(1).Required()
		_, ok := events[0].Contexts["goerr"]
		gt.Bool(t, ok).False()
	})
}

func TestHandleHTTP(t *testing.T) {
	t.Run("server error is reported", func(t *testing.T) {
		rec := bindRecorder(t)
		w := httptest.NewRecorder()
		errutil.HandleHTTP(context.Background(), w, errors.New("db down"), http.StatusInternalServerError)

		gt.Number(t, w.Code).Equal(http.StatusInternalServerError)
		gt.Array(t, rec.captured()).Length(1)
	})

	t.Run("client error is not reported", func(t *testing.T) {
		rec := bindRecorder(t)
		w := httptest.NewRecorder()
		errutil.HandleHTTP(context.Background(), w, errors.New("bad body"), http.StatusBadRequest)

		gt.Number(t, w.Code).Equal(http.StatusBadRequest)
		gt.String(t, w.Body.String()).Contains("bad body")
		gt.Array(t, rec.captured()).Length(0)
	})
}
