package cmd

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/misterclayt0n/tabata/internal/timer"
	"github.com/misterclayt0n/tabata/internal/utils"
	"github.com/spf13/cobra"
)

var presetCmd = &cobra.Command{
	Use:   "preset",
	Short: "Manage saved workout presets",
}

var presetAddCmd = &cobra.Command{
	Use:   "add [file.toml]",
	Short: "Add or replace a preset from a TOML file",
	Long: `Add a preset from a TOML file, replacing any preset with the same name.

Example:

  name = "classic"
  description = "8 rounds of 20 on, 10 off"
  mode = "tabata"
  prep = 10
  work = 20
  rest = 10
  rounds = 8`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read file: %w", err)
		}

		st, err := openStorage()
		if err != nil {
			return err
		}
		defer st.Close()

		preset, err := st.CreatePreset(data)
		if err != nil {
			return fmt.Errorf("failed to create preset: %w", err)
		}

		fmt.Printf("✅ Preset '%s' saved (%s)\n", preset.Name, preset.Mode)
		return nil
	},
}

var presetListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved presets",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStorage()
		if err != nil {
			return err
		}
		defer st.Close()

		presets, err := st.GetPresets()
		if err != nil {
			return fmt.Errorf("failed to retrieve presets: %w", err)
		}
		if len(presets) == 0 {
			fmt.Println("No presets saved.")
			return nil
		}

		name := color.New(color.FgCyan, color.Bold).SprintFunc()
		for _, p := range presets {
			fmt.Printf("%s [%s] %s\n", name(p.Name), p.Mode, utils.FormatClock(timer.SessionTotal(p.Totals)))
			if p.Description != "" {
				fmt.Printf("  %s\n", p.Description)
			}
			fmt.Printf("  %s\n", statsLine(p.Totals))
		}
		return nil
	},
}

var presetDeleteCmd = &cobra.Command{
	Use:   "delete [name]",
	Short: "Delete a preset by name",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStorage()
		if err != nil {
			return err
		}
		defer st.Close()

		if err := st.DeletePresetByName(args[0]); err != nil {
			return fmt.Errorf("failed to delete preset: %w", err)
		}
		fmt.Printf("✅ Preset '%s' deleted successfully\n", args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(presetCmd)
	presetCmd.AddCommand(presetAddCmd, presetListCmd, presetDeleteCmd)
}
