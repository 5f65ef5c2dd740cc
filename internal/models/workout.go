package models

import (
	"fmt"
	"strings"
	"time"
)

type Phase string

const (
	PhasePrepare  Phase = "prepare"
	PhaseWork     Phase = "work"
	PhaseRest     Phase = "rest"
	PhaseLongRest Phase = "longrest"
	PhaseDone     Phase = "done"
)

var phaseLabels = map[Phase]string{
	PhasePrepare:  "Prepare",
	PhaseWork:     "Work",
	PhaseRest:     "Rest",
	PhaseLongRest: "Long Rest",
	PhaseDone:     "Done",
}

// Label returns the human readable name of the phase.
func (p Phase) Label() string {
	if label, ok := phaseLabels[p]; ok {
		return label
	}
	return string(p)
}

type Mode string

const (
	ModeTabata  Mode = "tabata"
	ModeEMOM    Mode = "emom"
	ModeForTime Mode = "fortime"
	ModeAMRAP   Mode = "amrap"
)

var Modes = []Mode{ModeTabata, ModeEMOM, ModeForTime, ModeAMRAP}

// ParseMode accepts a mode tag case insensitively.
func ParseMode(s string) (Mode, error) {
	tag := Mode(strings.ToLower(strings.TrimSpace(s)))
	for _, m := range Modes {
		if m == tag {
			return m, nil
		}
	}
	return "", fmt.Errorf("unknown mode %q (want one of tabata, emom, fortime, amrap)", s)
}

// Totals is the normalized plan of one session. Durations are in seconds.
type Totals struct {
	Prep     int `json:"prep" toml:"prep" yaml:"prep"`
	Work     int `json:"work" toml:"work" yaml:"work"`
	Rest     int `json:"rest" toml:"rest" yaml:"rest"`
	Rounds   int `json:"rounds" toml:"rounds" yaml:"rounds"`
	Cycles   int `json:"cycles" toml:"cycles" yaml:"cycles"`
	LongRest int `json:"longrest" toml:"longrest" yaml:"longrest"`
}

// PhaseLength is the configured length of a phase. Done has length 1 so
// progress computations never divide by zero.
func (t Totals) PhaseLength(p Phase) int {
	switch p {
	case PhasePrepare:
		return t.Prep
	case PhaseWork:
		return t.Work
	case PhaseRest:
		return t.Rest
	case PhaseLongRest:
		return t.LongRest
	default:
		return 1
	}
}

// SessionState is a snapshot of a running session.
type SessionState struct {
	Phase                 Phase  `json:"phase"`
	Remaining             int    `json:"remaining"`
	CurrentRound          int    `json:"current_round"`
	CurrentCycle          int    `json:"current_cycle"`
	SessionTotalSeconds   int    `json:"session_total_seconds"`
	SessionElapsedSeconds int    `json:"session_elapsed_seconds"`
	Totals                Totals `json:"totals"`
	Running               bool   `json:"running"`
}

// IntervalProgress is the completed fraction of the current phase in [0, 1].
func (s SessionState) IntervalProgress() float64 {
	total := s.Totals.PhaseLength(s.Phase)
	if total == 0 {
		return 1
	}
	return clamp01(1 - float64(s.Remaining)/float64(total))
}

// SessionProgress is the completed fraction of the whole session in [0, 1].
func (s SessionState) SessionProgress() float64 {
	if s.SessionTotalSeconds == 0 {
		return 0
	}
	return clamp01(float64(s.SessionElapsedSeconds) / float64(s.SessionTotalSeconds))
}

// Subline describes where in the session we are.
func (s SessionState) Subline() string {
	if s.Phase == PhaseLongRest || s.Phase == PhaseDone {
		return fmt.Sprintf("Cycle %d / %d", s.CurrentCycle, s.Totals.Cycles)
	}
	return fmt.Sprintf("Round %d / %d • Cycle %d / %d",
		s.CurrentRound, s.Totals.Rounds, s.CurrentCycle, s.Totals.Cycles)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Workout is one recorded session in the history.
type Workout struct {
	ID             string     `json:"id"`
	Mode           Mode       `json:"mode"`
	PresetName     string     `json:"preset_name,omitempty"`
	Totals         Totals     `json:"totals"`
	StartTime      time.Time  `json:"start_time"`
	EndTime        *time.Time `json:"end_time,omitempty"`
	ElapsedSeconds int        `json:"elapsed_seconds"`
	TotalSeconds   int        `json:"total_seconds"`
	Completed      bool       `json:"completed"`
	Notes          string     `json:"notes"`
}

// Preset is a named, saved plan.
type Preset struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Mode        Mode      `json:"mode"`
	Totals      Totals    `json:"totals"`
	CreatedAt   time.Time `json:"created_at"`
}

//
// For TOML parsing only
//

type PresetTOML struct {
	Name        string   `toml:"name"`
	Description string   `toml:"description"`
	Mode        string   `toml:"mode"`
	Prep        *float64 `toml:"prep,omitempty"`
	Work        *float64 `toml:"work,omitempty"`
	Rest        *float64 `toml:"rest,omitempty"`
	Rounds      *float64 `toml:"rounds,omitempty"`
	Cycles      *float64 `toml:"cycles,omitempty"`
	LongRest    *float64 `toml:"longrest,omitempty"`
}
