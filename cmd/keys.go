package cmd

import (
	"bufio"
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/misterclayt0n/tabata/internal/timer"
	"golang.org/x/term"
)

const keyCtrlC = 3

// keyAction maps a key press to a timer command. ok is false for keys the
// timer does not handle; mute reports the sound toggle key.
func keyAction(key rune) (cmd timer.Command, ok, mute bool) {
	switch key {
	case ' ', 'p', 'P':
		return timer.CommandToggle, true, false
	case 'n', 'N':
		return timer.CommandSkip, true, false
	case 'r', 'R':
		return timer.CommandReset, true, false
	case 'q', 'Q', keyCtrlC:
		return timer.CommandQuit, true, false
	case 'm', 'M':
		return 0, false, true
	}
	return 0, false, false
}

// keyHooks run on the reader goroutine when their key is pressed. onReset
// runs before the reset command is delivered.
type keyHooks struct {
	onMute  func()
	onReset func()
}

// readKeys turns keyboard input into timer commands until ctx is done. On a
// terminal single key presses are read in raw mode; otherwise input is line
// buffered and every character of a line counts. The returned restore func
// puts the terminal back.
//
// The reader goroutine may stay blocked in ReadRune after ctx is done; it is
// left to die with the process.
func readKeys(ctx context.Context, in io.Reader, hooks keyHooks) (<-chan timer.Command, func()) {
	commands := make(chan timer.Command)
	restore := func() {}
	if in == nil {
		return commands, restore
	}

	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		state, err := term.MakeRaw(int(f.Fd()))
		if err != nil {
			slog.Warn("failed to enter raw mode, falling back to line input", "error", err)
		} else {
			restore = func() { _ = term.Restore(int(f.Fd()), state) }
		}
	}

	reader := bufio.NewReader(in)
	go func() {
		for {
			r, _, err := reader.ReadRune()
			if err != nil {
				if err != io.EOF {
					slog.Debug("keyboard input closed", "error", err)
				}
				return
			}
			if strings.ContainsRune("\r\n", r) {
				continue
			}
			cmd, ok, mute := keyAction(r)
			if mute && hooks.onMute != nil {
				hooks.onMute()
			}
			if !ok {
				continue
			}
			if cmd == timer.CommandReset && hooks.onReset != nil {
				hooks.onReset()
			}
			select {
			case commands <- cmd:
			case <-ctx.Done():
				return
			}
		}
	}()

	return commands, restore
}
