package render

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// Countdown tracks time remaining until an entity becomes available. It is
// active only while the availability timestamp is strictly in the future.
type Countdown struct {
	Until time.Time
}

// Active reports whether there is still time to count down at now.
func (c Countdown) Active(now time.Time) bool {
	return c.Until.After(now)
}

// Remaining returns the time left at now, never negative.
func (c Countdown) Remaining(now time.Time) time.Duration {
	d := c.Until.Sub(now)
	if d < 0 {
		return 0
	}
	return d
}

// FormatCountdown renders a duration as hh:mm:ss, rounded up so the display
// reaches 00:00:00 exactly at expiry.
func FormatCountdown(d time.Duration) string {
	secs := int((d + time.Second - 1) / time.Second)
	return fmt.Sprintf("%02d:%02d:%02d", secs/3600, (secs%3600)/60, secs%60)
}

// Countdown redraws the remaining time on one line every tick and stops once
// the timestamp is reached or ctx is canceled. It renders nothing when the
// countdown is not active.
func (r *Renderer) Countdown(ctx context.Context, c Countdown, tick time.Duration) {
	now := r.now()
	if !c.Active(now) {
		return
	}

	r.logger.Debug("countdown started", zap.Time("until", c.Until))
	label := r.theme.Warn.Sprint("Available in")
	fmt.Fprintf(r.out, "\r%s %s", label, FormatCountdown(c.Remaining(now)))

	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			fmt.Fprintln(r.out)
			return
		case <-ticker.C:
			now = r.now()
			if !c.Active(now) {
				fmt.Fprintf(r.out, "\r%s\n", r.theme.Warn.Sprint("Available now            "))
				return
			}
			fmt.Fprintf(r.out, "\r%s %s", label, FormatCountdown(c.Remaining(now)))
		}
	}
}
