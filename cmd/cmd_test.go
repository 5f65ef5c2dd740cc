package cmd

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/misterclayt0n/tabata/internal/models"
	"github.com/misterclayt0n/tabata/internal/settings"
	"github.com/misterclayt0n/tabata/internal/timer"
)

func init() {
	color.NoColor = true
}

func TestRootCommandName(t *testing.T) {
	if rootCmd.Use != "tabata" {
		t.Fatalf("expected root command name tabata, got %q", rootCmd.Use)
	}
}

func TestStatsLine(t *testing.T) {
	totals := models.Totals{Prep: 10, Work: 20, Rest: 10, Rounds: 8, Cycles: 1, LongRest: 60}
	want := "Total session time: 04:10 • Work: 20s • Rest: 10s • Rounds: 8 • Cycles: 1"
	if got := statsLine(totals); got != want {
		t.Fatalf("statsLine = %q, want %q", got, want)
	}
}

func TestStatusLine(t *testing.T) {
	s := models.SessionState{
		Phase:                 models.PhaseWork,
		Remaining:             15,
		CurrentRound:          2,
		CurrentCycle:          1,
		SessionTotalSeconds:   250,
		SessionElapsedSeconds: 50,
		Totals:                models.Totals{Prep: 10, Work: 20, Rest: 10, Rounds: 8, Cycles: 1},
	}
	line := statusLine(s)
	for _, part := range []string{
		"[Work     ]",
		"00:15",
		"Round 2 / 8 • Cycle 1 / 1",
		"███░░░░░░░  25%",
		"session ████░░░░░░░░░░░░░░░░  20%",
	} {
		if !strings.Contains(line, part) {
			t.Errorf("status line %q missing %q", line, part)
		}
	}
}

func TestRendererCues(t *testing.T) {
	var out bytes.Buffer
	r := newTerminalRenderer(&out, true, true)
	cb := r.callbacks()

	cb.OnPhase(models.SessionState{Phase: models.PhaseRest})
	if got := strings.Count(out.String(), "\a"); got != 3 {
		t.Fatalf("rest cue rang %d bells, want 3", got)
	}

	out.Reset()
	if r.toggleSound() {
		t.Fatal("toggleSound should report sound off")
	}
	cb.OnWarning(models.SessionState{Phase: models.PhaseWork})
	cb.OnPhase(models.SessionState{Phase: models.PhaseWork})
	if strings.Contains(out.String(), "\a") {
		t.Fatalf("muted renderer rang the bell: %q", out.String())
	}

	out.Reset()
	cb.OnDone()
	if !strings.Contains(out.String(), "Workout complete!") {
		t.Fatalf("done output %q", out.String())
	}
}

func TestRendererSessionBeepOff(t *testing.T) {
	var out bytes.Buffer
	r := newTerminalRenderer(&out, false, true)
	r.callbacks().OnWarning(models.SessionState{})
	if out.Len() != 0 {
		t.Fatalf("unexpected output %q", out.String())
	}
}

func TestKeyAction(t *testing.T) {
	tests := []struct {
		key  rune
		cmd  timer.Command
		ok   bool
		mute bool
	}{
		{' ', timer.CommandToggle, true, false},
		{'p', timer.CommandToggle, true, false},
		{'n', timer.CommandSkip, true, false},
		{'R', timer.CommandReset, true, false},
		{'q', timer.CommandQuit, true, false},
		{3, timer.CommandQuit, true, false},
		{'m', 0, false, true},
		{'x', 0, false, false},
	}
	for _, tt := range tests {
		cmd, ok, mute := keyAction(tt.key)
		if cmd != tt.cmd || ok != tt.ok || mute != tt.mute {
			t.Errorf("keyAction(%q) = %v, %v, %v; want %v, %v, %v", tt.key, cmd, ok, mute, tt.cmd, tt.ok, tt.mute)
		}
	}
}

func TestReadKeys(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	mutes, resets := 0, 0
	hooks := keyHooks{onMute: func() { mutes++ }, onReset: func() { resets++ }}
	commands, restore := readKeys(ctx, strings.NewReader("pn\nxmrq"), hooks)
	defer restore()

	want := []timer.Command{timer.CommandToggle, timer.CommandSkip, timer.CommandReset, timer.CommandQuit}
	for i, w := range want {
		select {
		case got := <-commands:
			if got != w {
				t.Fatalf("command %d = %v, want %v", i, got, w)
			}
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out waiting for command %d", i)
		}
	}
	if mutes != 1 || resets != 1 {
		t.Fatalf("hooks ran mute=%d reset=%d, want 1 each", mutes, resets)
	}
}

func TestPersistMute(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.toml")
	save := func(s settings.Settings) error { return settings.SaveTo(path, s) }

	s := settings.Default()
	r := newTerminalRenderer(&bytes.Buffer{}, true, s.SoundEnabled)
	mute := persistMute(r, &s, save)

	mute()
	got, err := settings.LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if got.SoundEnabled || s.SoundEnabled {
		t.Fatalf("mute not saved: file %+v, live %+v", got, s)
	}

	mute()
	got, err = settings.LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if !got.SoundEnabled {
		t.Fatal("unmute not saved")
	}
}

func TestPersistSettingsOnReset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.toml")
	s := settings.Default()
	s.Work = 45
	persistSettings(&s, func(s settings.Settings) error { return settings.SaveTo(path, s) })()

	got, err := settings.LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if got.Work != 45 {
		t.Fatalf("saved work = %d, want 45", got.Work)
	}
}

func TestNewWorkout(t *testing.T) {
	started := time.Date(2026, 3, 2, 7, 0, 0, 0, time.UTC)
	ended := started.Add(5 * time.Minute)
	totals := models.Totals{Prep: 10, Work: 20, Rest: 10, Rounds: 8, Cycles: 1}

	untouched := models.SessionState{Phase: models.PhasePrepare, Remaining: 10, Totals: totals, SessionTotalSeconds: 250}
	if w := newWorkout(models.ModeTabata, "", started, ended, untouched); w != nil {
		t.Fatalf("expected no record for an untouched session, got %+v", w)
	}

	done := models.SessionState{
		Phase:                 models.PhaseDone,
		Totals:                totals,
		SessionTotalSeconds:   250,
		SessionElapsedSeconds: 250,
	}
	w := newWorkout(models.ModeTabata, "classic", started, ended, done)
	if w == nil {
		t.Fatal("expected a record")
	}
	if !w.Completed || w.ElapsedSeconds != 250 || w.TotalSeconds != 250 || w.PresetName != "classic" {
		t.Fatalf("workout %+v", w)
	}
	if w.ID == "" || w.EndTime == nil || !w.EndTime.Equal(ended) {
		t.Fatalf("workout id/end %q %v", w.ID, w.EndTime)
	}

	stopped := done
	stopped.Phase = models.PhaseRest
	stopped.SessionElapsedSeconds = 40
	if w := newWorkout(models.ModeTabata, "", started, ended, stopped); w == nil || w.Completed {
		t.Fatalf("stopped workout %+v", w)
	}
}

func TestComputeWeekStreak(t *testing.T) {
	now := time.Date(2026, 10, 14, 12, 0, 0, 0, time.Local)
	at := func(daysAgo int) *models.Workout {
		return &models.Workout{StartTime: now.AddDate(0, 0, -daysAgo)}
	}

	if got := computeWeekStreak(nil, now); got != 0 {
		t.Fatalf("empty streak = %d", got)
	}
	if got := computeWeekStreak([]*models.Workout{at(0), at(7), at(21)}, now); got != 2 {
		t.Fatalf("streak = %d, want 2", got)
	}
	if got := computeWeekStreak([]*models.Workout{at(7)}, now); got != 0 {
		t.Fatalf("streak without this week = %d, want 0", got)
	}
}

func TestSummarize(t *testing.T) {
	now := time.Date(2026, 10, 14, 12, 0, 0, 0, time.Local)
	workouts := []*models.Workout{
		{Mode: models.ModeTabata, StartTime: now, ElapsedSeconds: 250, Completed: true},
		{Mode: models.ModeTabata, StartTime: now.Add(-time.Hour), ElapsedSeconds: 30},
		{Mode: models.ModeEMOM, StartTime: now.AddDate(0, 0, -30), ElapsedSeconds: 600, Completed: true},
	}
	sum := summarize(workouts, now)
	if sum.workouts != 3 || sum.completed != 2 || sum.elapsedSeconds != 880 || sum.weekStreak != 1 {
		t.Fatalf("summary %+v", sum)
	}
	if sum.thisWeek[models.ModeTabata] != 2 || sum.thisWeek[models.ModeEMOM] != 0 {
		t.Fatalf("this week %v", sum.thisWeek)
	}
}

func TestGroupByModeAndDay(t *testing.T) {
	day := time.Date(2026, 5, 4, 0, 0, 0, 0, time.Local)
	late := &models.Workout{ID: "late", Mode: models.ModeTabata, StartTime: day.Add(18 * time.Hour)}
	early := &models.Workout{ID: "early", Mode: models.ModeTabata, StartTime: day.Add(7 * time.Hour)}
	emom := &models.Workout{ID: "emom", Mode: models.ModeEMOM, StartTime: day.Add(9 * time.Hour)}

	grouped := groupByModeAndDay([]*models.Workout{late, emom, early})
	list := grouped["tabata"]["2026-05-04"]
	if len(list) != 2 || list[0].ID != "early" || list[1].ID != "late" {
		t.Fatalf("tabata group %v", list)
	}
	if len(grouped["emom"]["2026-05-04"]) != 1 {
		t.Fatalf("emom group %v", grouped["emom"])
	}
}

func TestRenderMonth(t *testing.T) {
	// February 2026 starts on a Sunday and has exactly four weeks.
	first := time.Date(2026, 2, 1, 0, 0, 0, 0, time.Local)
	byDay := map[int][]*models.Workout{3: {{Mode: models.ModeTabata}}}

	got := renderMonth(first, byDay)
	if !strings.HasPrefix(got, "   February 2026    \nSu Mo Tu We Th Fr Sa\n") {
		t.Fatalf("header %q", got)
	}
	if !strings.Contains(got, " 1  2  3*  4 ") {
		t.Fatalf("first week %q", got)
	}
	if !strings.Contains(got, "22 23 24 25 26 27 28 \n") {
		t.Fatalf("last week %q", got)
	}
}

func TestPadCenter(t *testing.T) {
	if got := padCenter("ab", 6); got != "  ab  " {
		t.Fatalf("padCenter = %q", got)
	}
	if got := padCenter("toolong", 3); got != "toolong" {
		t.Fatalf("padCenter = %q", got)
	}
}

func TestPrintPlan(t *testing.T) {
	totals := models.Totals{Work: 15, Rest: 45, Rounds: 5, Cycles: 1}

	var text bytes.Buffer
	if err := printPlan(&text, models.ModeEMOM, totals, "text"); err != nil {
		t.Fatal(err)
	}
	for _, part := range []string{"Mode: emom", "Rest: 45s", "Session: 05:00"} {
		if !strings.Contains(text.String(), part) {
			t.Errorf("text plan missing %q:\n%s", part, text.String())
		}
	}

	var tomlOut bytes.Buffer
	if err := printPlan(&tomlOut, models.ModeEMOM, totals, "toml"); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(tomlOut.String(), `mode = "emom"`) || !strings.Contains(tomlOut.String(), "session_seconds = 300") {
		t.Errorf("toml plan:\n%s", tomlOut.String())
	}

	var yamlOut bytes.Buffer
	if err := printPlan(&yamlOut, models.ModeEMOM, totals, "yaml"); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(yamlOut.String(), "mode: emom") || !strings.Contains(yamlOut.String(), "rest: 45") {
		t.Errorf("yaml plan:\n%s", yamlOut.String())
	}

	if err := printPlan(&bytes.Buffer{}, models.ModeEMOM, totals, "json"); err == nil {
		t.Fatal("expected an error for an unknown format")
	}
}
