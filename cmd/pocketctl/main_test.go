package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Adda-Baaj/pocket-sync/pkg/pocket"
)

func newAPI(t *testing.T) {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/api/v1/public/folders":
			_, _ = w.Write([]byte(`{"data":[{"id":"f1","name":"Inbox","is_default":true}]}`))
		case "/api/v1/public/recordings/r1":
			if r.URL.Query().Get("include_summary") != "false" {
				t.Errorf("expected summary to be excluded, query %s", r.URL.RawQuery)
			}
			_, _ = w.Write([]byte(`{"data":{"id":"r1","title":"Standup","duration":90,"state":"completed","tags":[]}}`))
		default:
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"error":"Recording not found"}`))
		}
	}))
	t.Cleanup(srv.Close)
	t.Setenv("POCKET_API_KEY", "pk_test")
	t.Setenv("POCKET_BASE_URL", srv.URL)
}

func TestRunFoldersYAML(t *testing.T) {
	newAPI(t)
	var out bytes.Buffer
	if err := run(context.Background(), []string{"folders"}, &out); err != nil {
		t.Fatalf("run: %v", err)
	}
	got := out.String()
	if !strings.Contains(got, "name: Inbox") || !strings.Contains(got, "is_default: true") {
		t.Fatalf("unexpected yaml output:\n%s", got)
	}
}

func TestRunRecordingJSON(t *testing.T) {
	newAPI(t)
	var out bytes.Buffer
	if err := run(context.Background(), []string{"-o", "json", "recording", "r1", "-no-summary"}, &out); err != nil {
		t.Fatalf("run: %v", err)
	}
	var rec pocket.Recording
	if err := json.Unmarshal(out.Bytes(), &rec); err != nil {
		t.Fatalf("output is not a recording: %v\n%s", err, out.String())
	}
	if rec.Title != "Standup" || rec.Duration != 90 {
		t.Fatalf("unexpected recording %+v", rec)
	}
}

func TestRunSurfacesAPIErrors(t *testing.T) {
	newAPI(t)
	err := run(context.Background(), []string{"recording", "missing"}, &bytes.Buffer{})
	if !pocket.IsNotFound(err) {
		t.Fatalf("expected not found error, got %v", err)
	}
}

func TestRunUsageErrors(t *testing.T) {
	cases := [][]string{
		nil,
		{"-o", "xml", "folders"},
		{"bogus"},
		{"audio-url"},
		{"recordings", "-since", "yesterday"},
	}
	newAPI(t)
	for _, args := range cases {
		if err := run(context.Background(), args, &bytes.Buffer{}); !errors.Is(err, errUsage) {
			t.Fatalf("args %v: expected usage error, got %v", args, err)
		}
	}
}
