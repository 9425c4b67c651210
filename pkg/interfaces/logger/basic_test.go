package logger

import (
	"bytes"
	"testing"
)

func TestBasicLoggerWritesFields(t *testing.T) {
	var buf bytes.Buffer
	lgr := New(&buf).With(F("format", "hal"))
	lgr.Warn("render rejected", F("reason", "nested"))

	want := "[WARN] render rejected format=hal reason=nested\n"
	if buf.String() != want {
		t.Fatalf("expected %q, got %q", want, buf.String())
	}
}

func TestBasicLoggerWithDoesNotLeak(t *testing.T) {
	var buf bytes.Buffer
	base := New(&buf)
	_ = base.With(F("a", 1))
	base.Info("plain")
	if buf.String() != "[INFO] plain\n" {
		t.Fatalf("unexpected output %q", buf.String())
	}
}
