package cli

import (
	"bytes"
	"context"
	"io"
	"strings"
	"sync"
	"testing"
	"time"
)

// syncBuffer guards a bytes.Buffer shared with the spinner goroutine.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestSpinner_WritesFrames(t *testing.T) {
	var out syncBuffer
	s := startSpinner(context.Background(), &out, "Rendering g.gv")
	time.Sleep(3 * spinnerInterval)
	s.stop()

	got := out.String()
	if !strings.Contains(got, "Rendering g.gv") {
		t.Errorf("output missing message: %q", got)
	}
	if !strings.HasSuffix(got, "\r") {
		t.Errorf("line not cleared on stop: %q", got)
	}
}

func TestSpinner_StopIsIdempotent(t *testing.T) {
	s := startSpinner(context.Background(), io.Discard, "x")
	s.stop()
	s.stop()
	if s.interrupted() {
		t.Error("stop alone should not count as an interrupt")
	}
}

func TestSpinner_Interrupted(t *testing.T) {
	tests := []struct {
		name   string
		parent func() (context.Context, context.CancelFunc)
	}{
		{"cancel", func() (context.Context, context.CancelFunc) {
			return context.WithCancel(context.Background())
		}},
		{"timeout", func() (context.Context, context.CancelFunc) {
			return context.WithTimeout(context.Background(), time.Millisecond)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, cancel := tt.parent()
			s := startSpinner(ctx, io.Discard, "x")
			cancel()
			<-s.exited
			if !s.interrupted() {
				t.Error("spinner should report the interrupt")
			}
			s.stop()
		})
	}
}

func TestSpinner_Fail(t *testing.T) {
	var status bytes.Buffer
	prev := statusOut
	statusOut = &status
	t.Cleanup(func() { statusOut = prev })

	s := startSpinner(context.Background(), io.Discard, "x")
	s.fail("Render failed")
	if !strings.Contains(status.String(), "Render failed") {
		t.Errorf("status = %q", status.String())
	}
}
