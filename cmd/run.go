package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/misterclayt0n/tabata/internal/models"
	"github.com/misterclayt0n/tabata/internal/settings"
	"github.com/misterclayt0n/tabata/internal/storage"
	"github.com/misterclayt0n/tabata/internal/timer"
	"github.com/spf13/cobra"
)

var (
	runPlan       planFlags
	runPreset     string
	runNoAutoNext bool
	runSave       bool
	runNoRecord   bool
	runPaused     bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a workout timer",
	Long: `Run a workout timer in the terminal.

Plan inputs come from the saved settings, overridden by flags or a preset.

Keys: space/p start or pause, n skip interval, r reset, m mute, q quit.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := settings.Load()
		if err != nil {
			slog.Warn("using default settings", "error", err)
		}
		if err := runPlan.apply(cmd, &s); err != nil {
			return err
		}
		if runNoAutoNext {
			s.AutoNext = false
		}
		if runSave {
			if err := settings.Save(s); err != nil {
				return fmt.Errorf("failed to save settings: %w", err)
			}
		}

		mode := s.Mode
		totals := s.Totals()
		if runPreset != "" {
			preset, err := loadPreset(runPreset)
			if err != nil {
				return err
			}
			mode, totals = preset.Mode, preset.Totals
		}

		out := cmd.OutOrStdout()
		bold := color.New(color.Bold).SprintFunc()
		fmt.Fprintf(out, "%s %s\r\n", bold(string(mode)), statsLine(totals))

		renderer := newTerminalRenderer(out, s.SessionBeep, s.SoundEnabled)
		clock := timer.NewTicker(time.Second)
		cfg := timer.DefaultConfig()
		cfg.AutoNext = s.AutoNext
		cfg.Clock = clock
		cfg.Logger = slog.Default()
		cfg.Callbacks = renderer.callbacks()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		save := settings.Save
		commands, restore := readKeys(ctx, cmd.InOrStdin(), keyHooks{
			onMute:  persistMute(renderer, &s, save),
			onReset: persistSettings(&s, save),
		})
		defer restore()

		ctrl := timer.New(totals, cfg)
		started := time.Now()
		if !runPaused {
			ctrl.Start()
		}
		final, err := timer.Drive(ctx, ctrl, clock, commands)
		restore()
		fmt.Fprintln(out)
		if err != nil && !errors.Is(err, context.Canceled) {
			return err
		}

		if runNoRecord {
			return nil
		}
		return recordWorkout(mode, runPreset, started, final)
	},
}

// persistMute flips the renderer's sound and stores the new value in s.
func persistMute(r *terminalRenderer, s *settings.Settings, save func(settings.Settings) error) func() {
	return func() {
		s.SoundEnabled = r.toggleSound()
		if err := save(*s); err != nil {
			slog.Warn("failed to save settings", "error", err)
		}
	}
}

func persistSettings(s *settings.Settings, save func(settings.Settings) error) func() {
	return func() {
		if err := save(*s); err != nil {
			slog.Warn("failed to save settings", "error", err)
		}
	}
}

func loadPreset(name string) (*models.Preset, error) {
	st, err := openStorage()
	if err != nil {
		return nil, err
	}
	defer st.Close()

	preset, err := st.GetPresetByName(name)
	if err != nil {
		return nil, fmt.Errorf("failed to load preset: %w", err)
	}
	return preset, nil
}

// newWorkout builds the history record for a finished or abandoned session.
// It returns nil when nothing was done.
func newWorkout(mode models.Mode, presetName string, started, ended time.Time, final models.SessionState) *models.Workout {
	completed := final.Phase == models.PhaseDone
	if final.SessionElapsedSeconds == 0 && !completed {
		return nil
	}
	return &models.Workout{
		ID:             uuid.New().String(),
		Mode:           mode,
		PresetName:     presetName,
		Totals:         final.Totals,
		StartTime:      started,
		EndTime:        &ended,
		ElapsedSeconds: final.SessionElapsedSeconds,
		TotalSeconds:   final.SessionTotalSeconds,
		Completed:      completed,
	}
}

func recordWorkout(mode models.Mode, presetName string, started time.Time, final models.SessionState) error {
	w := newWorkout(mode, presetName, started, time.Now(), final)
	if w == nil {
		slog.Info("nothing to record")
		return nil
	}

	st, err := openStorage()
	if errors.Is(err, storage.ErrNoDatabase) {
		slog.Info("workout not recorded", "reason", err)
		return nil
	}
	if err != nil {
		return err
	}
	defer st.Close()

	if err := st.SaveWorkout(w); err != nil {
		return err
	}
	fmt.Printf("✅ Workout %s recorded\n", w.ID)
	return nil
}

func init() {
	rootCmd.AddCommand(runCmd)

	runPlan.register(runCmd)
	runCmd.Flags().StringVar(&runPreset, "preset", "", "Run a saved preset instead of the settings")
	runCmd.Flags().BoolVar(&runNoAutoNext, "no-auto-next", false, "Wait for n before moving to the next interval")
	runCmd.Flags().BoolVar(&runSave, "save", false, "Save the plan flags as the new settings")
	runCmd.Flags().BoolVar(&runNoRecord, "no-record", false, "Do not record the workout in the history")
	runCmd.Flags().BoolVar(&runPaused, "paused", false, "Start paused; press space to begin")
}
