package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/misterclayt0n/tabata/internal/timer"
	"github.com/misterclayt0n/tabata/internal/utils"
	"github.com/spf13/cobra"
)

var showWorkoutCmd = &cobra.Command{
	Use:   "show-workout [id]",
	Short: "Show a recorded workout",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStorage()
		if err != nil {
			return err
		}
		defer st.Close()

		w, err := st.GetWorkoutByID(args[0])
		if err != nil {
			return err
		}

		cyan := color.New(color.FgCyan).SprintFunc()
		green := color.New(color.FgGreen).SprintFunc()
		red := color.New(color.FgRed).SprintFunc()

		fmt.Printf("%s %s\n", green("Workout"), w.ID)
		fmt.Printf("%s %s\n", cyan("Mode:"), w.Mode)
		if w.PresetName != "" {
			fmt.Printf("%s %s\n", cyan("Preset:"), w.PresetName)
		}
		fmt.Printf("%s %s\n", cyan("Started:"), utils.FormatLocal(w.StartTime))
		if w.EndTime != nil {
			fmt.Printf("%s %s (%s)\n", cyan("Ended:"), utils.FormatLocal(*w.EndTime), workoutDuration(w))
		}
		fmt.Printf("%s %s of %s\n", cyan("Timer:"),
			utils.FormatClock(w.ElapsedSeconds), utils.FormatClock(w.TotalSeconds))
		if w.Completed {
			fmt.Println(green("Completed"))
		} else {
			fmt.Println(red("Stopped early"))
		}
		fmt.Println(statsLine(w.Totals))
		if w.TotalSeconds != timer.SessionTotal(w.Totals) {
			fmt.Printf("%s recorded total differs from plan\n", red("Note:"))
		}
		if w.Notes != "" {
			fmt.Printf("%s %s\n", cyan("Notes:"), w.Notes)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(showWorkoutCmd)
}
