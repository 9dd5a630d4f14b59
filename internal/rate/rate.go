// Package rate paces window updates to a minimum frame period.
package rate

import "time"

// DefaultPeriod caps updates at 250 per second.
const DefaultPeriod = 4 * time.Millisecond

// Limiter sleeps the residual of the period since the previous Wait
// returned. Overshoot is absorbed rather than paid back on later frames.
// Timing uses the monotonic reading carried by time.Now.
type Limiter struct {
	period time.Duration
	last   time.Time

	now   func() time.Time
	sleep func(time.Duration)
}

// New returns a limiter with the given period; zero or negative disables
// pacing.
func New(period time.Duration) *Limiter {
	return &Limiter{period: period, now: time.Now, sleep: time.Sleep}
}

// SetPeriod changes the period. A nil period disables pacing.
func (l *Limiter) SetPeriod(period *time.Duration) {
	if period == nil {
		l.period = 0
		return
	}
	l.period = *period
}

func (l *Limiter) Period() time.Duration {
	return l.period
}

// Wait blocks until at least one period has passed since the last call
// returned.
func (l *Limiter) Wait() {
	now := l.now()
	if l.period > 0 && !l.last.IsZero() {
		if d := l.last.Add(l.period).Sub(now); d > 0 {
			l.sleep(d)
			now = l.now()
		}
	}
	l.last = now
}
