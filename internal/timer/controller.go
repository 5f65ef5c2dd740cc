// Package timer runs an interval workout session: it owns the phase state
// machine, advances it once per external clock tick and reports progress
// through callbacks.
//
// A Controller is not safe for concurrent use. All methods, including Tick,
// must be called from one goroutine (see Drive).
package timer

import (
	"io"
	"log/slog"

	"github.com/misterclayt0n/tabata/internal/models"
)

// WarningAt is the remaining time, in seconds, at which work and rest phases
// fire their warning.
const WarningAt = 3

// Callbacks receive session notifications. Nil callbacks are skipped.
// States passed to callbacks are copies and may be kept by the receiver.
type Callbacks struct {
	OnTick    func(models.SessionState)
	OnPhase   func(models.SessionState)
	OnWarning func(models.SessionState)
	OnDone    func()
}

// Config contains runtime options for a Controller.
type Config struct {
	AutoNext  bool
	Callbacks Callbacks
	// Clock is armed by Start and disarmed by Stop and Reset. Nil means the
	// caller arms its own tick source.
	Clock  Clock
	Logger *slog.Logger
}

// DefaultConfig advances phases automatically and has no clock.
func DefaultConfig() Config {
	return Config{AutoNext: true}
}

// Controller is the session state machine.
type Controller struct {
	totals    models.Totals
	autoNext  bool
	callbacks Callbacks
	clock     Clock
	logger    *slog.Logger

	phase            models.Phase
	remaining        int
	currentRound     int
	currentCycle     int
	sessionTotal     int
	sessionElapsed   int
	running          bool
	armed            bool
	warningTriggered bool
}

// New creates a Controller for totals and immediately resets it, which
// fires the phase and tick callbacks for the prepare phase.
func New(totals models.Totals, config Config) *Controller {
	logger := config.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	c := &Controller{
		autoNext:  config.AutoNext,
		callbacks: config.Callbacks,
		clock:     config.Clock,
		logger:    logger,
	}
	c.Reset(totals)
	return c
}

// SessionTotal is the planned length of a session in seconds. Prep is
// counted once per cycle even though a session only prepares once.
func SessionTotal(t models.Totals) int {
	oneRound := t.Work + t.Rest
	perCycle := t.Prep + oneRound*t.Rounds
	betweenCycles := 0
	if t.Cycles > 1 {
		betweenCycles = t.LongRest * (t.Cycles - 1)
	}
	return perCycle*t.Cycles + betweenCycles
}

// State returns a snapshot of the session.
func (c *Controller) State() models.SessionState {
	return models.SessionState{
		Phase:                 c.phase,
		Remaining:             c.remaining,
		CurrentRound:          c.currentRound,
		CurrentCycle:          c.currentCycle,
		SessionTotalSeconds:   c.sessionTotal,
		SessionElapsedSeconds: c.sessionElapsed,
		Totals:                c.totals,
		Running:               c.running,
	}
}

func (c *Controller) SetAutoNext(on bool) {
	c.autoNext = on
}

func (c *Controller) AutoNext() bool {
	return c.autoNext
}

// Reset stops the session and starts over with totals in the prepare phase.
func (c *Controller) Reset(totals models.Totals) {
	c.Stop()
	c.totals = totals
	c.currentRound = 1
	c.currentCycle = 1
	c.phase = models.PhasePrepare
	c.remaining = totals.Prep
	c.sessionTotal = SessionTotal(totals)
	c.sessionElapsed = 0
	c.warningTriggered = false
	c.logger.Debug("session reset", "total", c.sessionTotal)
	c.notifyPhase()
	c.notifyTick()
}

// Start resumes ticking. The clock is armed only if it is not already.
// A finished session stays finished until Reset.
func (c *Controller) Start() {
	if c.running || c.phase == models.PhaseDone {
		return
	}
	c.running = true
	if !c.armed {
		c.armed = true
		if c.clock != nil {
			c.clock.Arm()
		}
	}
}

// Pause stops counting but leaves the clock armed, so resuming keeps the
// clock's alignment.
func (c *Controller) Pause() {
	c.running = false
}

// Stop stops counting and disarms the clock.
func (c *Controller) Stop() {
	c.running = false
	if !c.armed {
		return
	}
	c.armed = false
	if c.clock != nil {
		c.clock.Disarm()
	}
}

// Skip ends the current phase now. It does nothing once the session is done.
func (c *Controller) Skip() {
	if c.phase == models.PhaseDone {
		return
	}
	c.advance()
}

// Tick accounts for one elapsed second. It is a no-op while not running.
func (c *Controller) Tick() {
	if !c.running {
		return
	}
	c.remaining = max(0, c.remaining-1)
	c.sessionElapsed = min(c.sessionTotal, c.sessionElapsed+1)

	if (c.phase == models.PhaseWork || c.phase == models.PhaseRest) &&
		c.remaining == WarningAt && !c.warningTriggered {
		c.warningTriggered = true
		if c.callbacks.OnWarning != nil {
			c.callbacks.OnWarning(c.State())
		}
	}

	c.notifyTick()

	if c.remaining <= 0 && c.phase != models.PhaseDone && c.autoNext {
		c.advance()
	}
}

func (c *Controller) advance() {
	from := c.phase
	switch c.phase {
	case models.PhasePrepare:
		c.enter(models.PhaseWork, c.totals.Work)
	case models.PhaseWork:
		if c.currentRound < c.totals.Rounds && c.totals.Rest > 0 {
			c.enter(models.PhaseRest, c.totals.Rest)
		} else {
			c.completeRound()
		}
	case models.PhaseRest:
		c.completeRound()
	case models.PhaseLongRest:
		c.currentRound = 1
		c.enter(models.PhaseWork, c.totals.Work)
	}

	c.warningTriggered = false
	c.logger.Debug("phase transition",
		"from", from, "to", c.phase, "round", c.currentRound, "cycle", c.currentCycle)
	c.notifyPhase()
	c.notifyTick()
	if c.phase == models.PhaseDone && c.callbacks.OnDone != nil {
		c.callbacks.OnDone()
	}
}

func (c *Controller) completeRound() {
	if c.currentRound < c.totals.Rounds {
		c.currentRound++
		c.enter(models.PhaseWork, c.totals.Work)
		return
	}
	c.completeCycle()
}

func (c *Controller) completeCycle() {
	if c.currentCycle >= c.totals.Cycles {
		c.enter(models.PhaseDone, 0)
		c.Stop()
		return
	}
	c.currentCycle++
	if c.totals.LongRest > 0 {
		c.enter(models.PhaseLongRest, c.totals.LongRest)
		return
	}
	c.currentRound = 1
	c.enter(models.PhaseWork, c.totals.Work)
}

func (c *Controller) enter(phase models.Phase, remaining int) {
	c.phase = phase
	c.remaining = remaining
}

func (c *Controller) notifyPhase() {
	if c.callbacks.OnPhase != nil {
		c.callbacks.OnPhase(c.State())
	}
}

func (c *Controller) notifyTick() {
	if c.callbacks.OnTick != nil {
		c.callbacks.OnTick(c.State())
	}
}
