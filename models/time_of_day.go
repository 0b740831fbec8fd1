package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// TimeOfDay is a wall-clock time stored as seconds since midnight
type TimeOfDay int32

const secondsPerDay = 24 * 60 * 60

// ParseTimeOfDay accepts "HH:MM" (HTML time inputs) and "HH:MM:SS"
func ParseTimeOfDay(value string) (TimeOfDay, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, fmt.Errorf("empty time")
	}

	t, err := time.Parse("15:04", value)
	if err != nil {
		t, err = time.Parse("15:04:05", value)
		if err != nil {
			return 0, fmt.Errorf("invalid time %q: expected HH:MM or HH:MM:SS", value)
		}
	}

	return TimeOfDay(t.Hour()*3600 + t.Minute()*60 + t.Second()), nil
}

// MustParseTimeOfDay is ParseTimeOfDay for literals known to be valid
func MustParseTimeOfDay(value string) TimeOfDay {
	t, err := ParseTimeOfDay(value)
	if err != nil {
		panic(err)
	}
	return t
}

// Seconds returns the number of seconds since midnight
func (t TimeOfDay) Seconds() int64 {
	return int64(t)
}

// On combines the time of day with the calendar date d in d's location
func (t TimeOfDay) On(d time.Time) time.Time {
	y, m, day := d.Date()
	return time.Date(y, m, day, 0, 0, 0, 0, d.Location()).Add(time.Duration(t) * time.Second)
}

// String formats as HH:MM:SS
func (t TimeOfDay) String() string {
	s := int(t)
	return fmt.Sprintf("%02d:%02d:%02d", s/3600, (s%3600)/60, s%60)
}

// Short formats as HH:MM
func (t TimeOfDay) Short() string {
	s := int(t)
	return fmt.Sprintf("%02d:%02d", s/3600, (s%3600)/60)
}

// Value implements driver.Valuer
func (t TimeOfDay) Value() (driver.Value, error) {
	return t.String(), nil
}

// Scan implements sql.Scanner
func (t *TimeOfDay) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*t = 0
		return nil
	case string:
		return t.scanString(v)
	case []byte:
		return t.scanString(string(v))
	case time.Time:
		*t = TimeOfDay(v.Hour()*3600 + v.Minute()*60 + v.Second())
		return nil
	case int64:
		if v < 0 || v >= secondsPerDay {
			return fmt.Errorf("time of day out of range: %d", v)
		}
		*t = TimeOfDay(v)
		return nil
	default:
		return fmt.Errorf("cannot scan %T into TimeOfDay", src)
	}
}

func (t *TimeOfDay) scanString(v string) error {
	// Postgres may return fractional seconds ("09:30:00.000000")
	if i := strings.IndexByte(v, '.'); i > 0 {
		v = v[:i]
	}
	parsed, err := ParseTimeOfDay(v)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// MarshalJSON encodes as "HH:MM"
func (t TimeOfDay) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Short())
}

// UnmarshalJSON decodes "HH:MM" or "HH:MM:SS"
func (t *TimeOfDay) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseTimeOfDay(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
