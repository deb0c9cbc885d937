package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"
)

// quietSpinner returns a spinner drawing into a buffer instead of stderr.
func quietSpinner(ctx context.Context, message string) (*Spinner, *bytes.Buffer) {
	var buf bytes.Buffer
	s := newSpinnerWithContext(ctx, message)
	s.w = &buf
	return s, &buf
}

func TestSpinnerBasic(t *testing.T) {
	s, buf := quietSpinner(context.Background(), "Priming people...")
	s.Start()
	time.Sleep(100 * time.Millisecond)
	s.Stop()

	if !strings.Contains(buf.String(), "Priming people...") {
		t.Errorf("spinner output %q should contain the message", buf.String())
	}
	if !strings.HasSuffix(buf.String(), "\r") {
		t.Error("Stop should leave the line cleared")
	}
}

func TestSpinnerUpdate(t *testing.T) {
	s, buf := quietSpinner(context.Background(), "Priming people...")
	s.Start()
	time.Sleep(100 * time.Millisecond)
	s.Update("Priming films...")
	time.Sleep(100 * time.Millisecond)
	s.Stop()

	if !strings.Contains(buf.String(), "Priming films...") {
		t.Errorf("spinner output %q should contain the updated message", buf.String())
	}
}

func TestSpinnerWithContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	s, _ := quietSpinner(ctx, "Testing with context...")
	s.Start()

	cancel()
	time.Sleep(100 * time.Millisecond)

	if !s.Cancelled() {
		t.Error("Spinner should be cancelled after context cancellation")
	}
}

func TestSpinnerWithTimeout(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	s, _ := quietSpinner(ctx, "Testing with timeout...")
	s.Start()

	time.Sleep(100 * time.Millisecond)

	if !s.Cancelled() {
		t.Error("Spinner should be cancelled after context timeout")
	}
}

func TestSpinnerStopIsIdempotent(t *testing.T) {
	s, _ := quietSpinner(context.Background(), "Testing idempotent stop...")
	s.Start()

	s.Stop()
	s.Stop()
	s.Stop()
}

func TestSpinnerStopWithStatus(t *testing.T) {
	out := captureStdout(t)

	s, _ := quietSpinner(context.Background(), "Testing...")
	s.Start()
	s.StopWithSuccess("Primed 15 entities")

	s, _ = quietSpinner(context.Background(), "Testing...")
	s.Start()
	s.StopWithError("Priming failed")

	for _, want := range []string{iconSuccess + " Primed 15 entities", iconError + " Priming failed"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output %q should contain %q", out.String(), want)
		}
	}
}
