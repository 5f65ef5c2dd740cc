package timer

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/misterclayt0n/tabata/internal/models"
)

type chanSource struct {
	ch chan time.Time
}

func (s chanSource) C() <-chan time.Time { return s.ch }

type driveResult struct {
	state models.SessionState
	err   error
}

func startDrive(ctx context.Context, c *Controller, src TickSource, commands <-chan Command) <-chan driveResult {
	out := make(chan driveResult, 1)
	go func() {
		state, err := Drive(ctx, c, src, commands)
		out <- driveResult{state, err}
	}()
	return out
}

func waitResult(t *testing.T, out <-chan driveResult) driveResult {
	t.Helper()
	select {
	case res := <-out:
		return res
	case <-time.After(2 * time.Second):
		t.Fatal("Drive did not return")
		return driveResult{}
	}
}

func TestDriveRunsToDone(t *testing.T) {
	c := New(models.Totals{Prep: 1, Work: 2, Rounds: 1, Cycles: 1}, DefaultConfig())
	src := chanSource{ch: make(chan time.Time)}
	commands := make(chan Command)
	out := startDrive(context.Background(), c, src, commands)

	commands <- CommandToggle
	for i := 0; i < 3; i++ {
		src.ch <- time.Now()
	}

	res := waitResult(t, out)
	if res.err != nil {
		t.Fatalf("err = %v", res.err)
	}
	if res.state.Phase != models.PhaseDone || res.state.SessionElapsedSeconds != 3 {
		t.Fatalf("final state %+v", res.state)
	}
}

func TestDriveCommands(t *testing.T) {
	c := New(models.Totals{Prep: 10, Work: 5, Rest: 5, Rounds: 2, Cycles: 1}, DefaultConfig())
	src := chanSource{ch: make(chan time.Time)}
	commands := make(chan Command)
	out := startDrive(context.Background(), c, src, commands)

	commands <- CommandToggle // start
	src.ch <- time.Now()
	commands <- CommandToggle // pause
	commands <- CommandSkip
	commands <- CommandSkip
	commands <- CommandReset
	commands <- CommandSkip
	commands <- CommandQuit

	res := waitResult(t, out)
	if res.err != nil {
		t.Fatalf("err = %v", res.err)
	}
	s := res.state
	if s.Phase != models.PhaseWork || s.Remaining != 5 || s.CurrentRound != 1 || s.SessionElapsedSeconds != 0 || s.Running {
		t.Fatalf("final state %+v", s)
	}
}

func TestDriveStopsOnContext(t *testing.T) {
	clock := &fakeClock{}
	cfg := DefaultConfig()
	cfg.Clock = clock
	c := New(models.Totals{Prep: 10, Work: 5, Rounds: 1, Cycles: 1}, cfg)
	ctx, cancel := context.WithCancel(context.Background())
	commands := make(chan Command)
	out := startDrive(ctx, c, chanSource{ch: make(chan time.Time)}, commands)

	commands <- CommandToggle
	cancel()

	res := waitResult(t, out)
	if !errors.Is(res.err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", res.err)
	}
	if clock.arms != 1 || clock.disarms != 1 {
		t.Fatalf("clock = %+v", clock)
	}
}

func TestDriveClosedCommands(t *testing.T) {
	c := New(models.Totals{Prep: 10, Work: 5, Rounds: 1, Cycles: 1}, DefaultConfig())
	commands := make(chan Command)
	out := startDrive(context.Background(), c, chanSource{ch: make(chan time.Time)}, commands)
	close(commands)
	res := waitResult(t, out)
	if res.err != nil || res.state.Phase != models.PhasePrepare {
		t.Fatalf("result %+v", res)
	}
}

func TestTickerArmDisarm(t *testing.T) {
	tk := NewTicker(0)
	if tk.C() != nil || tk.Armed() {
		t.Fatal("new ticker must be disarmed")
	}
	tk.Arm()
	first := tk.C()
	tk.Arm()
	if tk.C() != first {
		t.Fatal("second Arm replaced the ticker")
	}
	tk.Disarm()
	tk.Disarm()
	if tk.C() != nil || tk.Armed() {
		t.Fatal("ticker still armed")
	}
}

func TestTickerDrivesController(t *testing.T) {
	tk := NewTicker(5 * time.Millisecond)
	cfg := DefaultConfig()
	cfg.Clock = tk
	c := New(models.Totals{Prep: 1, Work: 2, Rounds: 1, Cycles: 1}, cfg)
	c.Start()

	state, err := Drive(context.Background(), c, tk, nil)
	if err != nil {
		t.Fatalf("err = %v", err)
	}
	if state.Phase != models.PhaseDone {
		t.Fatalf("phase = %s", state.Phase)
	}
	if tk.Armed() {
		t.Fatal("ticker left armed after done")
	}
}
