// Package plan turns a workout mode and loosely typed user inputs into the
// normalized Totals a timer session runs on.
package plan

import (
	"math"
	"strconv"
	"strings"

	"github.com/misterclayt0n/tabata/internal/models"
)

// Input field names.
const (
	FieldPrep     = "prep"
	FieldWork     = "work"
	FieldRest     = "rest"
	FieldRounds   = "rounds"
	FieldMinutes  = "minutes"
	FieldCycles   = "cycles"
	FieldLongRest = "longrest"
)

// Inputs maps a field name to a raw value: any integer or float type, a
// numeric string, a bool, or nil.
type Inputs map[string]any

type rule func(in Inputs) models.Totals

var rules = map[models.Mode]rule{
	models.ModeTabata: func(in Inputs) models.Totals {
		return models.Totals{
			Prep:     in.seconds(FieldPrep),
			Work:     in.work(),
			Rest:     in.seconds(FieldRest),
			Rounds:   in.count(FieldRounds),
			Cycles:   in.count(FieldCycles),
			LongRest: in.seconds(FieldLongRest),
		}
	},
	// Each minute starts a new round; whatever the work leaves of the minute is rest.
	models.ModeEMOM: func(in Inputs) models.Totals {
		work := in.work()
		rounds := in.count(FieldRounds)
		if _, ok := in[FieldMinutes]; ok {
			rounds = in.count(FieldMinutes)
		}
		return models.Totals{
			Work:   work,
			Rest:   max(0, 60-work),
			Rounds: rounds,
			Cycles: 1,
		}
	},
	models.ModeForTime: singleInterval,
	models.ModeAMRAP:   singleInterval,
}

func singleInterval(in Inputs) models.Totals {
	return models.Totals{Work: in.work(), Rounds: 1, Cycles: 1}
}

// Build derives the Totals for mode. It never fails: unknown modes fall back
// to tabata and unusable inputs fall back to safe defaults.
func Build(mode models.Mode, in Inputs) models.Totals {
	r, ok := rules[mode]
	if !ok {
		r = rules[models.ModeTabata]
	}
	return r(in)
}

func (in Inputs) seconds(field string) int {
	n, ok := in.number(field)
	if !ok || n < 0 {
		return 0
	}
	return n
}

func (in Inputs) work() int {
	n, ok := in.number(FieldWork)
	if !ok || n < 1 {
		return 1
	}
	return n
}

func (in Inputs) count(field string) int {
	n, ok := in.number(field)
	if !ok || n < 1 {
		return 1
	}
	return n
}

// number coerces a raw value to a whole number of units, truncating any
// fraction. Zero is reported as missing, matching an empty form field.
func (in Inputs) number(field string) (int, bool) {
	var f float64
	switch v := in[field].(type) {
	case int:
		f = float64(v)
	case int8:
		f = float64(v)
	case int16:
		f = float64(v)
	case int32:
		f = float64(v)
	case int64:
		f = float64(v)
	case uint:
		f = float64(v)
	case uint8:
		f = float64(v)
	case uint16:
		f = float64(v)
	case uint32:
		f = float64(v)
	case uint64:
		f = float64(v)
	case float32:
		f = float64(v)
	case float64:
		f = v
	case bool:
		if v {
			f = 1
		}
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	f = math.Trunc(f)
	if f == 0 {
		return 0, false
	}
	if f > math.MaxInt32 {
		f = math.MaxInt32
	}
	if f < math.MinInt32 {
		f = math.MinInt32
	}
	return int(f), true
}
