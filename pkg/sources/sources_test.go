package sources

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadSourcesYAML(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "sources.yaml")
	content := `
sources:
  - id: " standups "
    name: Team standups
    folder_id: fld_1
    tag_ids: [" t1 ", "", t2]
    lookback_days: 7
    include_summary: false
    archive_audio: true
    request_delay_ms: 750
  - id: everything
`
	if err := os.WriteFile(file, []byte(content), 0o644); err != nil {
		t.Fatalf("write sources file: %v", err)
	}

	reg, err := Load(file)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if got := len(reg.All()); got != 2 {
		t.Fatalf("expected 2 sources, got %d", got)
	}

	s, ok := reg.ByID("standups")
	if !ok {
		t.Fatalf("expected source id standups to be loaded")
	}
	if len(s.TagIDs) != 2 || s.TagIDs[0] != "t1" || s.TagIDs[1] != "t2" {
		t.Fatalf("unexpected tag ids: %v", s.TagIDs)
	}
	if s.RequestDelay() != 750*time.Millisecond {
		t.Fatalf("unexpected request delay: %v", s.RequestDelay())
	}

	get := s.GetOptions()
	if get.ExcludeTranscript || !get.ExcludeSummary || get.ExcludeActionItems {
		t.Fatalf("unexpected get options: %+v", get)
	}

	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	list := s.ListOptions(now)
	if list.FolderID != "fld_1" || !list.StartDate.Equal(now.AddDate(0, 0, -7)) || !list.EndDate.Equal(now) {
		t.Fatalf("unexpected list options: %+v", list)
	}

	all, _ := reg.ByID("everything")
	if all.Name != "everything" || all.RequestDelay() != 500*time.Millisecond {
		t.Fatalf("defaults not applied: %+v", all)
	}
	if opts := all.ListOptions(now); !opts.StartDate.IsZero() {
		t.Fatalf("expected no date window without lookback, got %+v", opts)
	}
}

func TestParseSourcesJSON(t *testing.T) {
	reg, err := Parse([]byte(`{"sources":[{"id":"a","tag_ids":["x"]}]}`), ".json")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if s, ok := reg.ByID("a"); !ok || len(s.TagIDs) != 1 {
		t.Fatalf("unexpected source: %+v", s)
	}
}

func TestLoadSourcesRejectsBadInput(t *testing.T) {
	cases := map[string]string{
		"duplicate": "sources:\n  - id: a\n  - id: a\n",
		"missing":   "sources:\n  - name: nameless\n",
		"empty":     "sources: []\n",
		"negative":  "sources:\n  - id: a\n    lookback_days: -1\n",
	}
	for name, content := range cases {
		if _, err := Parse([]byte(content), ".yaml"); err == nil {
			t.Fatalf("%s: expected error, got nil", name)
		}
	}

	if _, err := Load(""); err == nil {
		t.Fatalf("expected error for empty path")
	}
}
