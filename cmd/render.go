package cmd

import (
	"fmt"
	"io"
	"strings"
	"sync/atomic"

	"github.com/fatih/color"
	"github.com/misterclayt0n/tabata/internal/models"
	"github.com/misterclayt0n/tabata/internal/timer"
	"github.com/misterclayt0n/tabata/internal/utils"
)

const barWidth = 20

var phaseColors = map[models.Phase]*color.Color{
	models.PhasePrepare:  color.New(color.FgYellow, color.Bold),
	models.PhaseWork:     color.New(color.FgRed, color.Bold),
	models.PhaseRest:     color.New(color.FgGreen, color.Bold),
	models.PhaseLongRest: color.New(color.FgBlue, color.Bold),
	models.PhaseDone:     color.New(color.FgCyan, color.Bold),
}

// terminalRenderer draws the session on a terminal and rings the bell for
// audio cues. The tick line is redrawn in place.
type terminalRenderer struct {
	out         io.Writer
	sessionBeep bool
	sound       atomic.Bool
}

func newTerminalRenderer(out io.Writer, sessionBeep, soundEnabled bool) *terminalRenderer {
	r := &terminalRenderer{out: out, sessionBeep: sessionBeep}
	r.sound.Store(soundEnabled)
	return r
}

// toggleSound flips the sound switch and reports the new value. It may be
// called from any goroutine.
func (r *terminalRenderer) toggleSound() bool {
	for {
		old := r.sound.Load()
		if r.sound.CompareAndSwap(old, !old) {
			return !old
		}
	}
}

func (r *terminalRenderer) callbacks() timer.Callbacks {
	return timer.Callbacks{
		OnTick: func(s models.SessionState) {
			fmt.Fprintf(r.out, "\r\x1b[K%s", statusLine(s))
		},
		OnPhase: func(s models.SessionState) {
			fmt.Fprint(r.out, "\r\n")
			r.cue(phaseCue(s.Phase))
		},
		OnWarning: func(s models.SessionState) {
			r.cue("\a")
		},
		OnDone: func() {
			fmt.Fprint(r.out, "\r\n")
			fmt.Fprint(r.out, color.New(color.FgGreen, color.Bold).Sprint("Workout complete!"))
			fmt.Fprint(r.out, "\r\n")
		},
	}
}

func (r *terminalRenderer) cue(bell string) {
	if bell == "" || !r.sessionBeep || !r.sound.Load() {
		return
	}
	fmt.Fprint(r.out, bell)
}

// phaseCue is the bell pattern played when a phase starts.
func phaseCue(p models.Phase) string {
	switch p {
	case models.PhaseWork, models.PhaseDone:
		return "\a"
	case models.PhaseRest:
		return "\a\a\a"
	case models.PhaseLongRest:
		return "\a"
	default:
		return ""
	}
}

func phaseBadge(p models.Phase) string {
	label := fmt.Sprintf("[%-9s]", p.Label())
	if c, ok := phaseColors[p]; ok {
		return c.Sprint(label)
	}
	return label
}

// statusLine renders one frame: phase, clock, position and progress.
func statusLine(s models.SessionState) string {
	return fmt.Sprintf("%s %s  %s  %s %3.0f%%  session %s %3.0f%%",
		phaseBadge(s.Phase),
		utils.FormatClock(s.Remaining),
		s.Subline(),
		utils.ProgressBar(s.IntervalProgress(), barWidth/2),
		s.IntervalProgress()*100,
		utils.ProgressBar(s.SessionProgress(), barWidth),
		s.SessionProgress()*100,
	)
}

// statsLine summarizes a plan before it runs.
func statsLine(t models.Totals) string {
	return strings.Join([]string{
		fmt.Sprintf("Total session time: %s", utils.FormatClock(timer.SessionTotal(t))),
		fmt.Sprintf("Work: %ds", t.Work),
		fmt.Sprintf("Rest: %ds", t.Rest),
		fmt.Sprintf("Rounds: %d", t.Rounds),
		fmt.Sprintf("Cycles: %d", t.Cycles),
	}, " • ")
}
