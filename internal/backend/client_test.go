package backend

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c, err := NewClient(srv.URL, 2*time.Second, 3)
	if err != nil {
		t.Fatal(err)
	}
	return c, srv
}

func TestUserGetNotFoundMeansNoRecord(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"detail":"user not found"}`))
	}))
	rec, err := c.UserGet(context.Background(), "alice")
	if err != nil {
		t.Fatalf("404 must not be an error: %v", err)
	}
	if rec != nil {
		t.Fatalf("rec = %+v, want nil", rec)
	}
}

func TestUserGetAndSave(t *testing.T) {
	var saved []byte
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/users/alice" {
			t.Errorf("path = %s", r.URL.Path)
		}
		switch r.Method {
		case http.MethodGet:
			w.Write([]byte(`{"user":"alice","tg_token":"tok","chat_id":"42","options_json":"{}"}`))
		case http.MethodPost:
			if ct := r.Header.Get("Content-Type"); ct != "application/json" {
				t.Errorf("content type = %s", ct)
			}
			body, _ := io.ReadAll(r.Body)
			saved = body
			w.WriteHeader(http.StatusOK)
		}
	}))

	rec, err := c.UserGet(context.Background(), "alice")
	if err != nil {
		t.Fatal(err)
	}
	if rec.TgToken != "tok" || rec.ChatID != "42" {
		t.Errorf("rec = %+v", rec)
	}

	rec.OptionsJSON = `{"timezone":"UTC"}`
	if err := c.UserSave(context.Background(), rec); err != nil {
		t.Fatal(err)
	}
	if len(saved) == 0 {
		t.Fatal("nothing saved")
	}
}

func TestRetryOn5xxThenSuccess(t *testing.T) {
	var calls int32
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte(`{"user":"bob"}`))
	}))
	rec, err := c.UserGet(context.Background(), "bob")
	if err != nil {
		t.Fatalf("should succeed after retries: %v", err)
	}
	if rec.User != "bob" {
		t.Errorf("rec = %+v", rec)
	}
	if n := atomic.LoadInt32(&calls); n != 3 {
		t.Errorf("calls = %d, want 3", n)
	}
}

func TestNoRetryOn4xxWithDetail(t *testing.T) {
	var calls int32
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"detail":"options_json is not valid json"}`))
	}))
	_, err := c.UserGet(context.Background(), "carol")
	if err == nil {
		t.Fatal("expected error")
	}
	if n := atomic.LoadInt32(&calls); n != 1 {
		t.Errorf("4xx retried: calls = %d", n)
	}
	if got := err.Error(); got != "backend: options_json is not valid json" {
		t.Errorf("error = %q", got)
	}
}

func TestExhaustedRetries(t *testing.T) {
	var calls int32
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	_, err := c.SpikesStats(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}
	if n := atomic.LoadInt32(&calls); n != 3 {
		t.Errorf("calls = %d, want maxRetries", n)
	}
}

func TestStatusEndpoints(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/status/exchanges":
			w.Write([]byte(`[{"exchange":"binance","connected":true,"updated_at":1700000000}]`))
		case "/status/spikes":
			w.Write([]byte(`{"total":120,"last_hour":7}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))

	exs, err := c.ExchangesStatus(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(exs) != 1 || exs[0].Exchange != "binance" || !exs[0].Connected {
		t.Errorf("exchanges = %+v", exs)
	}

	stats, err := c.SpikesStats(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if stats.Total != 120 || stats.LastHour != 7 {
		t.Errorf("stats = %+v", stats)
	}
}

func TestNewClientValidatesURL(t *testing.T) {
	if _, err := NewClient("not a url", time.Second, 3); err == nil {
		t.Error("expected error for bad url")
	}
	if _, err := NewClient("/relative/only", time.Second, 3); err == nil {
		t.Error("expected error for url without host")
	}
}
