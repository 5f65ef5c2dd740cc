package timer

import "time"

// Clock is the external once-per-interval trigger a Controller arms and
// disarms. It never calls into the Controller itself; whoever owns the
// Controller reads the clock and calls Tick.
type Clock interface {
	Arm()
	Disarm()
}

// Ticker is a Clock backed by a time.Ticker.
type Ticker struct {
	interval time.Duration
	ticker   *time.Ticker
}

// NewTicker returns a disarmed Ticker. Non-positive intervals mean one second.
func NewTicker(interval time.Duration) *Ticker {
	if interval <= 0 {
		interval = time.Second
	}
	return &Ticker{interval: interval}
}

// Arm starts the underlying ticker. Arming an armed Ticker does nothing.
func (t *Ticker) Arm() {
	if t.ticker != nil {
		return
	}
	t.ticker = time.NewTicker(t.interval)
}

// Disarm stops the underlying ticker. It is safe to call repeatedly.
func (t *Ticker) Disarm() {
	if t.ticker == nil {
		return
	}
	t.ticker.Stop()
	t.ticker = nil
}

// C returns the tick channel, or nil while disarmed so that a select on it
// blocks.
func (t *Ticker) C() <-chan time.Time {
	if t.ticker == nil {
		return nil
	}
	return t.ticker.C
}

// Armed reports whether the ticker is running.
func (t *Ticker) Armed() bool {
	return t.ticker != nil
}
