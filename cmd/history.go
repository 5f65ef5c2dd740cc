package cmd

import (
	"fmt"
	"sort"
	"time"

	"github.com/misterclayt0n/tabata/internal/models"
	"github.com/misterclayt0n/tabata/internal/utils"
	"github.com/spf13/cobra"
)

var (
	filterMode string
	filterDay  string
)

// historyCmd shows the workout history grouped by mode and day.
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Display workout history, optionally filtered by mode and/or day",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStorage()
		if err != nil {
			return err
		}
		defer st.Close()

		workouts, err := st.GetAllWorkouts()
		if err != nil {
			return fmt.Errorf("failed to retrieve workouts: %w", err)
		}

		if filterMode != "" {
			mode, err := models.ParseMode(filterMode)
			if err != nil {
				return err
			}
			workouts = filterWorkouts(workouts, func(w *models.Workout) bool { return w.Mode == mode })
		}

		if filterDay != "" {
			day, err := utils.ParseDay(filterDay)
			if err != nil {
				return err
			}
			workouts = filterWorkouts(workouts, func(w *models.Workout) bool {
				return w.StartTime.Local().Format("2006-01-02") == day.Format("2006-01-02")
			})
		}

		grouped := groupByModeAndDay(workouts)

		var modes []string
		for m := range grouped {
			modes = append(modes, m)
		}
		sort.Strings(modes)
		for _, mode := range modes {
			fmt.Printf("Mode: %s\n", mode)
			var days []string
			for d := range grouped[mode] {
				days = append(days, d)
			}
			sort.Strings(days)
			for _, d := range days {
				fmt.Printf("  Date: %s\n", d)
				for _, w := range grouped[mode][d] {
					status := "stopped"
					if w.Completed {
						status = "completed"
					}
					fmt.Printf("    Workout %s | Start: %s | Time: %s / %s | %s\n",
						w.ID,
						w.StartTime.Local().Format("15:04"),
						utils.FormatClock(w.ElapsedSeconds),
						utils.FormatClock(w.TotalSeconds),
						status,
					)
				}
			}
			fmt.Println()
		}

		return nil
	},
}

func filterWorkouts(workouts []*models.Workout, keep func(*models.Workout) bool) []*models.Workout {
	var filtered []*models.Workout
	for _, w := range workouts {
		if keep(w) {
			filtered = append(filtered, w)
		}
	}
	return filtered
}

// groupByModeAndDay buckets workouts by mode and local day, each bucket
// sorted by start time.
func groupByModeAndDay(workouts []*models.Workout) map[string]map[string][]*models.Workout {
	grouped := make(map[string]map[string][]*models.Workout)
	for _, w := range workouts {
		mode := string(w.Mode)
		if _, ok := grouped[mode]; !ok {
			grouped[mode] = make(map[string][]*models.Workout)
		}
		day := w.StartTime.Local().Format("2006-01-02")
		grouped[mode][day] = append(grouped[mode][day], w)
	}
	for _, days := range grouped {
		for _, list := range days {
			sort.Slice(list, func(i, j int) bool {
				return list[i].StartTime.Before(list[j].StartTime)
			})
		}
	}
	return grouped
}

// workoutDuration is wall clock time from start to end, or zero if the
// workout has no end.
func workoutDuration(w *models.Workout) time.Duration {
	if w.EndTime == nil {
		return 0
	}
	return w.EndTime.Sub(w.StartTime).Round(time.Second)
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().StringVarP(&filterMode, "mode", "m", "", "Filter by mode")
	historyCmd.Flags().StringVarP(&filterDay, "day", "d", "", "Filter by day (e.g. 2025-02-07 or 07/02/25)")
}
