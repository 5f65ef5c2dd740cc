package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var deleteWorkoutCmd = &cobra.Command{
	Use:   "delete-workout [id]",
	Short: "Delete a recorded workout",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStorage()
		if err != nil {
			return err
		}
		defer st.Close()

		if err := st.DeleteWorkout(args[0]); err != nil {
			return fmt.Errorf("failed to delete workout: %w", err)
		}

		fmt.Printf("✅ Workout '%s' deleted successfully\n", args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(deleteWorkoutCmd)
}
