package httpclient

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestRestyClientGetExposesResponse(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if r.Header.Get("Authorization") != "Bearer k" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Retry-After", "7")
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"error":"busy"}`))
	}))
	defer srv.Close()

	resp, err := NewRestyClient(2*time.Second).Get(context.Background(), srv.URL+"/x?a=1", map[string]string{"Authorization": "Bearer k"})
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if resp.StatusCode() != http.StatusServiceUnavailable || string(resp.Body()) != `{"error":"busy"}` {
		t.Fatalf("unexpected response %d %s", resp.StatusCode(), resp.Body())
	}
	if resp.Header().Get("Retry-After") != "7" {
		t.Fatalf("missing header, got %v", resp.Header())
	}
	if resp.URL() != srv.URL+"/x?a=1" {
		t.Fatalf("unexpected url %s", resp.URL())
	}
	if calls != 1 {
		t.Fatalf("adapter must not retry, got %d calls", calls)
	}
}

func TestRestyClientStream(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "" {
			t.Errorf("unexpected auth header")
		}
		_, _ = w.Write([]byte("audio-bytes"))
	}))
	defer srv.Close()

	body, status, err := NewRestyClient(time.Second).Stream(context.Background(), srv.URL, nil)
	if err != nil {
		t.Fatalf("Stream: %v", err)
	}
	defer body.Close()
	data, err := io.ReadAll(body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	if status != http.StatusOK || string(data) != "audio-bytes" {
		t.Fatalf("unexpected stream %d %q", status, data)
	}
}
