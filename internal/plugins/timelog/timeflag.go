package timelog

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

var (
	absoluteTime   = regexp.MustCompile(`^([0-9]+):([0-9]+)$`)
	relativeHourMn = regexp.MustCompile(`^([+-])([0-9]+):([0-9]+)$`)
	relativeMin    = regexp.MustCompile(`^([+-])([0-9]+)$`)
)

// ParseTime reads an absolute time of day (HH:MM, today) or an offset from
// now (+MM, -MM, +HH:MM, -HH:MM).
func ParseTime(value string, now time.Time) (time.Time, error) {
	if m := absoluteTime.FindStringSubmatch(value); m != nil {
		hour, _ := strconv.Atoi(m[1])
		minute, _ := strconv.Atoi(m[2])
		if hour > 23 || minute > 59 {
			return time.Time{}, fmt.Errorf("%q is not a valid time of day", value)
		}
		return time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location()), nil
	}

	var sign string
	var offset time.Duration
	if m := relativeHourMn.FindStringSubmatch(value); m != nil {
		hours, _ := strconv.Atoi(m[2])
		minutes, _ := strconv.Atoi(m[3])
		sign, offset = m[1], time.Duration(hours)*time.Hour+time.Duration(minutes)*time.Minute
	} else if m := relativeMin.FindStringSubmatch(value); m != nil {
		minutes, _ := strconv.Atoi(m[2])
		sign, offset = m[1], time.Duration(minutes)*time.Minute
	} else {
		return time.Time{}, fmt.Errorf("expected absolute time (e.g. 14:34) or time delta (e.g. -10, -2:30, +1:15), got %q", value)
	}

	if sign == "-" {
		offset = -offset
	}
	return now.Add(offset), nil
}

// TimeValue is a pflag.Value for --time. When the flag is not given, At
// returns the current time.
type TimeValue struct {
	now   func() time.Time
	value time.Time
	set   bool
}

// NewTimeValue returns an unset TimeValue reading the clock from now.
func NewTimeValue(now func() time.Time) *TimeValue {
	return &TimeValue{now: now}
}

// Set implements pflag.Value.
func (v *TimeValue) Set(s string) error {
	t, err := ParseTime(s, v.now())
	if err != nil {
		return err
	}
	v.value, v.set = t, true
	return nil
}

// String implements pflag.Value.
func (v *TimeValue) String() string {
	if !v.set {
		return ""
	}
	return v.value.Format("15:04")
}

// Type implements pflag.Value.
func (v *TimeValue) Type() string { return "time" }

// At returns the parsed time, or now when the flag was not given.
func (v *TimeValue) At() time.Time {
	if v.set {
		return v.value
	}
	return v.now()
}
