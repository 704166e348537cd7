package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/xhit/go-str2duration/v2"
)

// Duration is a time.Duration that reads from TOML and the environment.
// A bare number is a count of seconds ("30", "0.5"); anything else is parsed
// as a duration string such as "500ms", "5m" or "1d".
type Duration time.Duration

// ParseDuration parses s as described on [Duration].
func ParseDuration(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if secs, err := strconv.ParseFloat(s, 64); err == nil {
		return time.Duration(secs * float64(time.Second)), nil
	}
	return str2duration.ParseDuration(s)
}

// Std returns the value as a time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// String formats the duration compactly, e.g. "5m" or "1d2h".
func (d Duration) String() string { return str2duration.String(time.Duration(d)) }

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalTOML accepts TOML integers and floats as seconds in addition to
// strings.
func (d *Duration) UnmarshalTOML(v any) error {
	switch x := v.(type) {
	case int64:
		*d = Duration(time.Duration(x) * time.Second)
	case float64:
		*d = Duration(time.Duration(x * float64(time.Second)))
	case string:
		return d.UnmarshalText([]byte(x))
	default:
		return fmt.Errorf("invalid duration %v (%T)", v, v)
	}
	return nil
}
