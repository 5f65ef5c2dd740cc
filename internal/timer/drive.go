package timer

import (
	"context"
	"time"

	"github.com/misterclayt0n/tabata/internal/models"
)

// Command is a user request delivered to Drive.
type Command int

const (
	CommandToggle Command = iota // start when stopped or paused, pause when running
	CommandSkip
	CommandReset
	CommandQuit
)

// TickSource is what Drive needs from a clock: a channel that is nil while
// disarmed.
type TickSource interface {
	C() <-chan time.Time
}

// Drive runs the session loop on the calling goroutine until the session is
// done, a CommandQuit arrives, commands is closed or ctx is cancelled. Every
// Controller call happens here, so the Controller is never used concurrently.
// Reset re-runs the current totals.
//
// The returned state is the final snapshot. The error is ctx.Err() when the
// context ended the loop and nil otherwise.
func Drive(ctx context.Context, c *Controller, clock TickSource, commands <-chan Command) (models.SessionState, error) {
	for {
		if c.State().Phase == models.PhaseDone {
			return c.State(), nil
		}

		select {
		case <-ctx.Done():
			c.Stop()
			return c.State(), ctx.Err()
		case <-clock.C():
			c.Tick()
		case cmd, ok := <-commands:
			if !ok {
				c.Stop()
				return c.State(), nil
			}
			switch cmd {
			case CommandToggle:
				if c.State().Running {
					c.Pause()
				} else {
					c.Start()
				}
			case CommandSkip:
				c.Skip()
			case CommandReset:
				c.Reset(c.State().Totals)
			case CommandQuit:
				c.Stop()
				return c.State(), nil
			}
		}
	}
}
