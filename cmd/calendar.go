package cmd

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/misterclayt0n/tabata/internal/models"
	"github.com/misterclayt0n/tabata/internal/utils"
	"github.com/spf13/cobra"
)

var details bool

var modeColors = map[models.Mode]*color.Color{
	models.ModeTabata:  color.New(color.FgRed),
	models.ModeEMOM:    color.New(color.FgGreen),
	models.ModeForTime: color.New(color.FgYellow),
	models.ModeAMRAP:   color.New(color.FgMagenta),
}

// calendarCmd prints a month grid. Days with workouts are colored by the
// mode of the first workout that day.
var calendarCmd = &cobra.Command{
	Use:   "calendar [month] [year]",
	Short: "Display a calendar of workout days with a legend mapping colors to modes",
	Args:  cobra.RangeArgs(0, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		now := time.Now()
		month := now.Month()
		year := now.Year()
		if len(args) >= 1 {
			m, err := strconv.Atoi(args[0])
			if err != nil || m < 1 || m > 12 {
				return fmt.Errorf("invalid month: %s", args[0])
			}
			month = time.Month(m)
		}
		if len(args) == 2 {
			y, err := strconv.Atoi(args[1])
			if err != nil || y < 1 {
				return fmt.Errorf("invalid year: %s", args[1])
			}
			year = y
		}

		firstOfMonth := time.Date(year, month, 1, 0, 0, 0, 0, time.Local)
		lastOfMonth := firstOfMonth.AddDate(0, 1, -1)

		st, err := openStorage()
		if err != nil {
			return err
		}
		defer st.Close()

		workouts, err := st.GetWorkoutsBetween(firstOfMonth, lastOfMonth)
		if err != nil {
			return fmt.Errorf("failed to get workouts: %w", err)
		}

		byDay := make(map[int][]*models.Workout)
		for _, w := range workouts {
			day := w.StartTime.Local().Day()
			byDay[day] = append(byDay[day], w)
		}
		for _, list := range byDay {
			sort.Slice(list, func(i, j int) bool { return list[i].StartTime.Before(list[j].StartTime) })
		}

		fmt.Print(renderMonth(firstOfMonth, byDay))

		fmt.Println("Legend:")
		for _, m := range models.Modes {
			fmt.Printf("  %s: %s\n", modeColors[m].Sprint("██"), m)
		}

		if details {
			fmt.Println("\nWorkout Details:")
			var days []int
			for d := range byDay {
				days = append(days, d)
			}
			sort.Ints(days)
			for _, day := range days {
				dayDate := time.Date(year, month, day, 0, 0, 0, 0, time.Local)
				fmt.Printf("\n%s:\n", dayDate.Format("Mon, 02 Jan 2006"))
				for _, w := range byDay[day] {
					fmt.Printf("  Workout %s (%s) at %s, %s", w.ID, w.Mode,
						w.StartTime.Local().Format("15:04"), utils.FormatClock(w.ElapsedSeconds))
					if !w.Completed {
						fmt.Print(" (stopped)")
					}
					fmt.Println()
				}
			}
		}

		return nil
	},
}

// renderMonth draws the grid for the month starting at first. Days present
// in byDay are marked with a star in their mode color.
func renderMonth(first time.Time, byDay map[int][]*models.Workout) string {
	var b strings.Builder
	b.WriteString(padCenter(fmt.Sprintf("%s %d", first.Month(), first.Year()), 20))
	b.WriteString("\nSu Mo Tu We Th Fr Sa\n")

	weekday := int(first.Weekday())
	b.WriteString(strings.Repeat("   ", weekday))

	last := first.AddDate(0, 1, -1).Day()
	for day := 1; day <= last; day++ {
		dayStr := fmt.Sprintf("%2d", day)
		if list, ok := byDay[day]; ok {
			c, known := modeColors[list[0].Mode]
			if !known {
				c = color.New(color.FgWhite)
			}
			dayStr = c.Sprint(dayStr + "*")
		}
		b.WriteString(dayStr + " ")
		weekday++
		if weekday%7 == 0 {
			b.WriteString("\n")
		}
	}
	b.WriteString("\n\n")
	return b.String()
}

// padCenter centers s in a field of the given width.
func padCenter(s string, width int) string {
	n := len([]rune(s))
	if n >= width {
		return s
	}
	padding := (width - n) / 2
	return strings.Repeat(" ", padding) + s + strings.Repeat(" ", width-n-padding)
}

func init() {
	rootCmd.AddCommand(calendarCmd)
	calendarCmd.Flags().BoolVarP(&details, "details", "d", false, "Print additional workout details")
}
