package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/misterclayt0n/tabata/internal/models"
	"github.com/misterclayt0n/tabata/internal/utils"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show workout count, time under the timer, completion rate, week streak and workouts per mode (current week)",
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

		sum := summarize(workouts, time.Now())

		printBoxedHeader("STATUS")

		printMetric("Total workouts", sum.workouts)
		printMetric("Completed", fmt.Sprintf("%d of %d", sum.completed, sum.workouts))
		printMetric("Time under the timer", utils.FormatClock(sum.elapsedSeconds))
		printMetric("Week streak", fmt.Sprintf("%d weeks", sum.weekStreak))
		fmt.Println()

		header := color.New(color.FgGreen, color.Bold).Sprintf("Workouts per mode (current week):")
		fmt.Println(header)
		for _, m := range models.Modes {
			if n := sum.thisWeek[m]; n > 0 {
				fmt.Printf("  • %s: %d\n", color.New(color.FgMagenta, color.Bold).Sprint(m), n)
			}
		}
		fmt.Println()

		return nil
	},
}

type workoutSummary struct {
	workouts       int
	completed      int
	elapsedSeconds int
	weekStreak     int
	thisWeek       map[models.Mode]int
}

func summarize(workouts []*models.Workout, now time.Time) workoutSummary {
	sum := workoutSummary{thisWeek: make(map[models.Mode]int)}
	currentYear, currentWeek := now.ISOWeek()
	for _, w := range workouts {
		sum.workouts++
		sum.completed += utils.BoolToInt(w.Completed)
		sum.elapsedSeconds += w.ElapsedSeconds
		year, week := w.StartTime.Local().ISOWeek()
		if year == currentYear && week == currentWeek {
			sum.thisWeek[w.Mode]++
		}
	}
	sum.weekStreak = computeWeekStreak(workouts, now)
	return sum
}

// printBoxedHeader prints the title in a Unicode box with a fixed width.
func printBoxedHeader(title string) {
	width := 40
	cyanBold := color.New(color.FgCyan, color.Bold).SprintFunc()
	border := strings.Repeat("═", width)
	fmt.Println(cyanBold("╔" + border + "╗"))
	fmt.Println(cyanBold("║" + padCenter(title, width) + "║"))
	fmt.Println(cyanBold("╚" + border + "╝"))
}

func printMetric(label string, value interface{}) {
	yellowBold := color.New(color.FgYellow, color.Bold).SprintFunc()
	fmt.Printf("  %s: %v\n", yellowBold(label), value)
}

// computeWeekStreak counts consecutive ISO weeks, ending with the week of
// now, that have at least one workout.
func computeWeekStreak(workouts []*models.Workout, now time.Time) int {
	weekSet := make(map[string]bool)
	for _, w := range workouts {
		year, week := w.StartTime.Local().ISOWeek()
		weekSet[fmt.Sprintf("%d-%02d", year, week)] = true
	}

	streak := 0
	year, week := now.ISOWeek()
	for weekSet[fmt.Sprintf("%d-%02d", year, week)] {
		streak++
		now = now.AddDate(0, 0, -7)
		year, week = now.ISOWeek()
	}
	return streak
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
