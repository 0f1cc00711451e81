package logger

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]zapcore.Level{
		"debug":   zapcore.DebugLevel,
		"warning": zapcore.WarnLevel,
		"error":   zapcore.ErrorLevel,
		"":        zapcore.InfoLevel,
		"verbose": zapcore.InfoLevel,
	}
	for name, want := range cases {
		if got := parseLevel(name); got != want {
			t.Fatalf("parseLevel(%q) = %s, want %s", name, got, want)
		}
	}
}

func TestNewWrapsZap(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := New(zap.New(core))

	l.InfoObj("synced", "recording_id", "rec_1")
	l.WarnObj("skipped", "reason", "processing")

	entries := logs.All()
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].ContextMap()["recording_id"] != "rec_1" {
		t.Fatalf("missing field: %+v", entries[0].ContextMap())
	}
}

func TestNilZapIsNop(t *testing.T) {
	if _, ok := New(nil).(NopLogger); !ok {
		t.Fatalf("expected NopLogger for nil zap logger")
	}
}

func TestPackageHelpersBeforeInit(t *testing.T) {
	S = nil
	Default().InfoObj("ignored", "k", 1)
	if Zap() == nil {
		t.Fatalf("Zap must never return nil")
	}
}
