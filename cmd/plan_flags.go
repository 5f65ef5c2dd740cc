package cmd

import (
	"strconv"

	"github.com/misterclayt0n/tabata/internal/settings"
	"github.com/spf13/cobra"
)

// planFlags are the plan inputs shared by commands that build a session.
type planFlags struct {
	mode     string
	prep     int
	work     int
	rest     int
	rounds   int
	cycles   int
	longRest int
}

func (f *planFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.mode, "mode", "m", "", "Workout mode: tabata, emom, fortime or amrap")
	cmd.Flags().IntVar(&f.prep, "prep", 0, "Prepare phase length in seconds")
	cmd.Flags().IntVarP(&f.work, "work", "w", 0, "Work interval in seconds")
	cmd.Flags().IntVarP(&f.rest, "rest", "r", 0, "Rest interval in seconds")
	cmd.Flags().IntVarP(&f.rounds, "rounds", "n", 0, "Rounds per cycle (minutes for emom)")
	cmd.Flags().IntVarP(&f.cycles, "cycles", "c", 0, "Number of cycles")
	cmd.Flags().IntVar(&f.longRest, "longrest", 0, "Long rest between cycles in seconds")
}

// apply overlays the flags the user actually passed onto s.
func (f *planFlags) apply(cmd *cobra.Command, s *settings.Settings) error {
	if cmd.Flags().Changed("mode") {
		if err := s.Set("mode", f.mode); err != nil {
			return err
		}
	}
	for name, value := range map[string]int{
		"prep":     f.prep,
		"work":     f.work,
		"rest":     f.rest,
		"rounds":   f.rounds,
		"cycles":   f.cycles,
		"longrest": f.longRest,
	} {
		if !cmd.Flags().Changed(name) {
			continue
		}
		if err := s.Set(name, strconv.Itoa(value)); err != nil {
			return err
		}
	}
	return nil
}
