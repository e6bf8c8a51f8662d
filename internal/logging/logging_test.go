package logging

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]zapcore.Level{
		"":      zapcore.InfoLevel,
		"debug": zapcore.DebugLevel,
		"warn":  zapcore.WarnLevel,
		"error": zapcore.ErrorLevel,
	}
	for in, want := range cases {
		got, err := ParseLevel(in)
		if err != nil {
			t.Fatalf("ParseLevel(%q): %v", in, err)
		}
		if got != want {
			t.Fatalf("ParseLevel(%q) = %s, want %s", in, got, want)
		}
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Fatalf("expected error for unknown level")
	}
}

func TestNew(t *testing.T) {
	for _, dev := range []bool{false, true} {
		logger, err := New("debug", dev)
		if err != nil {
			t.Fatalf("New(dev=%v): %v", dev, err)
		}
		if !logger.Core().Enabled(zapcore.DebugLevel) {
			t.Fatalf("debug level not enabled (dev=%v)", dev)
		}
		_ = logger.Sync()
	}
}
