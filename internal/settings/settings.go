// Package settings persists the user's timer preferences.
package settings

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/misterclayt0n/tabata/internal/config"
	"github.com/misterclayt0n/tabata/internal/models"
	"github.com/misterclayt0n/tabata/internal/plan"
)

const fileName = "settings.toml"

// Settings are the last used plan inputs and toggles.
type Settings struct {
	Mode         models.Mode `toml:"mode"`
	Prep         int         `toml:"prep"`
	Work         int         `toml:"work"`
	Rest         int         `toml:"rest"`
	Rounds       int         `toml:"rounds"`
	Cycles       int         `toml:"cycles"`
	LongRest     int         `toml:"longrest"`
	AutoNext     bool        `toml:"auto_next"`
	SessionBeep  bool        `toml:"session_beep"`
	SoundEnabled bool        `toml:"sound_enabled"`
}

func Default() Settings {
	return Settings{
		Mode:         models.ModeTabata,
		Prep:         10,
		Work:         20,
		Rest:         10,
		Rounds:       8,
		Cycles:       1,
		LongRest:     60,
		AutoNext:     true,
		SessionBeep:  true,
		SoundEnabled: true,
	}
}

// Inputs returns the plan inputs stored in s.
func (s Settings) Inputs() plan.Inputs {
	return plan.Inputs{
		plan.FieldPrep:     s.Prep,
		plan.FieldWork:     s.Work,
		plan.FieldRest:     s.Rest,
		plan.FieldRounds:   s.Rounds,
		plan.FieldCycles:   s.Cycles,
		plan.FieldLongRest: s.LongRest,
	}
}

// Totals builds the plan for the stored mode and inputs.
func (s Settings) Totals() models.Totals {
	return plan.Build(s.Mode, s.Inputs())
}

// SetTotals stores t as the plan inputs.
func (s *Settings) SetTotals(t models.Totals) {
	s.Prep = t.Prep
	s.Work = t.Work
	s.Rest = t.Rest
	s.Rounds = t.Rounds
	s.Cycles = t.Cycles
	s.LongRest = t.LongRest
}

// Keys lists the names accepted by Set.
func Keys() []string {
	keys := []string{"mode", "prep", "work", "rest", "rounds", "cycles", "longrest", "auto_next", "session_beep", "sound_enabled"}
	sort.Strings(keys)
	return keys
}

// Set assigns one field by its TOML name.
func (s *Settings) Set(key, value string) error {
	value = strings.TrimSpace(value)
	switch strings.ToLower(strings.TrimSpace(key)) {
	case "mode":
		m, err := models.ParseMode(value)
		if err != nil {
			return err
		}
		s.Mode = m
	case "prep", "work", "rest", "rounds", "cycles", "longrest":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%s: %q is not a whole number", key, value)
		}
		*s.intField(strings.ToLower(key)) = n
	case "auto_next", "session_beep", "sound_enabled":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%s: %q is not a boolean", key, value)
		}
		switch strings.ToLower(key) {
		case "auto_next":
			s.AutoNext = b
		case "session_beep":
			s.SessionBeep = b
		default:
			s.SoundEnabled = b
		}
	default:
		return fmt.Errorf("unknown setting %q (want one of %s)", key, strings.Join(Keys(), ", "))
	}
	return nil
}

func (s *Settings) intField(key string) *int {
	switch key {
	case "prep":
		return &s.Prep
	case "work":
		return &s.Work
	case "rest":
		return &s.Rest
	case "rounds":
		return &s.Rounds
	case "cycles":
		return &s.Cycles
	default:
		return &s.LongRest
	}
}

// normalize pushes the numeric fields through the tabata rule so a hand
// edited file can never produce an invalid plan.
func (s *Settings) normalize() {
	if _, err := models.ParseMode(string(s.Mode)); err != nil {
		s.Mode = models.ModeTabata
	}
	s.SetTotals(plan.Build(models.ModeTabata, s.Inputs()))
}

// Path returns ~/.config/tabata/settings.toml.
func Path() (string, error) {
	dir, err := config.Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, fileName), nil
}

func Load() (Settings, error) {
	path, err := Path()
	if err != nil {
		return Default(), err
	}
	return LoadFrom(path)
}

// LoadFrom reads settings from path. Keys missing from the file keep their
// defaults and a missing file yields Default().
func LoadFrom(path string) (Settings, error) {
	s := Default()
	if _, err := toml.DecodeFile(path, &s); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return Default(), fmt.Errorf("parse settings: %w", err)
	}
	s.normalize()
	return s, nil
}

func Save(s Settings) error {
	path, err := Path()
	if err != nil {
		return err
	}
	return SaveTo(path, s)
}

// SaveTo writes s to path after normalizing it, so the file never holds
// values the plan builder would reject.
func SaveTo(path string, s Settings) error {
	s.normalize()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("write settings: %w", err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(s); err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	return f.Close()
}
