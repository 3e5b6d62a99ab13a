package render

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/fatih/color"
	"go.uber.org/zap/zaptest"
)

func TestCountdownActive(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		until  time.Time
		active bool
	}{
		{"one hour ahead", now.Add(time.Hour), true},
		{"one second ahead", now.Add(time.Second), true},
		{"exactly now", now, false},
		{"in the past", now.Add(-time.Minute), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Countdown{Until: tt.until}
			if got := c.Active(now); got != tt.active {
				t.Errorf("Active = %v, want %v", got, tt.active)
			}
		})
	}
}

func TestRemainingNeverNegative(t *testing.T) {
	now := time.Now()
	c := Countdown{Until: now.Add(-time.Hour)}
	if got := c.Remaining(now); got != 0 {
		t.Errorf("expected 0 remaining for expired countdown, got %v", got)
	}
}

func TestFormatCountdown(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{time.Hour, "01:00:00"},
		{90 * time.Minute, "01:30:00"},
		{59 * time.Second, "00:00:59"},
		{1500 * time.Millisecond, "00:00:02"}, // rounds up
		{0, "00:00:00"},
	}

	for _, tt := range tests {
		if got := FormatCountdown(tt.d); got != tt.want {
			t.Errorf("FormatCountdown(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

func TestCountdownTicksDownAndStops(t *testing.T) {
	color.NoColor = true
	var buf bytes.Buffer
	theme, _ := ThemeByName("mono")
	r := New(&buf, theme, zaptest.NewLogger(t))

	start := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	var mu sync.Mutex
	clock := start
	r.now = func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		return clock
	}

	c := Countdown{Until: start.Add(3 * time.Second)}

	done := make(chan struct{})
	go func() {
		defer close(done)
		r.Countdown(context.Background(), c, 5*time.Millisecond)
	}()

	// Advance the fake clock past expiry; the ticker drives redraws.
	for i := 0; i < 4; i++ {
		time.Sleep(15 * time.Millisecond)
		mu.Lock()
		clock = clock.Add(time.Second)
		mu.Unlock()
	}

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("countdown did not stop after expiry")
	}

	out := buf.String()
	if !strings.Contains(out, "00:00:03") {
		t.Errorf("expected initial remaining time rendered:\n%q", out)
	}
	if !strings.Contains(out, "Available now") {
		t.Errorf("expected countdown to end with availability message:\n%q", out)
	}
}

func TestCountdownInactiveRendersNothing(t *testing.T) {
	color.NoColor = true
	var buf bytes.Buffer
	theme, _ := ThemeByName("mono")
	r := New(&buf, theme, zaptest.NewLogger(t))

	r.Countdown(context.Background(), Countdown{Until: time.Now().Add(-time.Hour)}, time.Millisecond)
	if buf.Len() != 0 {
		t.Errorf("expected no output for expired countdown, got %q", buf.String())
	}
}

func TestCountdownCancel(t *testing.T) {
	color.NoColor = true
	var buf bytes.Buffer
	theme, _ := ThemeByName("mono")
	r := New(&buf, theme, zaptest.NewLogger(t))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	done := make(chan struct{})
	go func() {
		defer close(done)
		r.Countdown(ctx, Countdown{Until: time.Now().Add(time.Hour)}, time.Millisecond)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("countdown did not honor cancellation")
	}
}
