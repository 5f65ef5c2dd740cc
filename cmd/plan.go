package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/fatih/color"
	"github.com/misterclayt0n/tabata/internal/models"
	"github.com/misterclayt0n/tabata/internal/settings"
	"github.com/misterclayt0n/tabata/internal/timer"
	"github.com/misterclayt0n/tabata/internal/utils"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	planInputs planFlags
	planOutput string
)

type planDoc struct {
	Mode           models.Mode   `toml:"mode" yaml:"mode"`
	Totals         models.Totals `toml:"totals" yaml:"totals"`
	SessionSeconds int           `toml:"session_seconds" yaml:"session_seconds"`
}

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Show the intervals a workout would run",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := settings.Load()
		if err != nil {
			return fmt.Errorf("failed to load settings: %w", err)
		}
		if err := planInputs.apply(cmd, &s); err != nil {
			return err
		}
		totals := s.Totals()
		return printPlan(cmd.OutOrStdout(), s.Mode, totals, planOutput)
	},
}

func printPlan(out io.Writer, mode models.Mode, totals models.Totals, format string) error {
	doc := planDoc{Mode: mode, Totals: totals, SessionSeconds: timer.SessionTotal(totals)}
	switch strings.ToLower(format) {
	case "toml":
		return toml.NewEncoder(out).Encode(doc)
	case "yaml", "yml":
		enc := yaml.NewEncoder(out)
		defer enc.Close()
		return enc.Encode(doc)
	case "", "text":
	default:
		return fmt.Errorf("unknown output format %q (want text, toml or yaml)", format)
	}

	cyan := color.New(color.FgCyan).SprintFunc()
	fmt.Fprintf(out, "%s %s\n", cyan("Mode:"), mode)
	fmt.Fprintf(out, "%s %ds\n", cyan("Prepare:"), totals.Prep)
	fmt.Fprintf(out, "%s %ds\n", cyan("Work:"), totals.Work)
	fmt.Fprintf(out, "%s %ds\n", cyan("Rest:"), totals.Rest)
	fmt.Fprintf(out, "%s %d\n", cyan("Rounds:"), totals.Rounds)
	fmt.Fprintf(out, "%s %d\n", cyan("Cycles:"), totals.Cycles)
	fmt.Fprintf(out, "%s %ds\n", cyan("Long rest:"), totals.LongRest)
	fmt.Fprintf(out, "%s %s\n", cyan("Session:"), utils.FormatClock(doc.SessionSeconds))
	fmt.Fprintln(out, statsLine(totals))
	return nil
}

func init() {
	rootCmd.AddCommand(planCmd)
	planInputs.register(planCmd)
	planCmd.Flags().StringVarP(&planOutput, "output", "o", "text", "Output format: text, toml or yaml")
}
