package models

import (
	"encoding/json"
	"fmt"
)

// Clock is a minute-precision wall-clock time of day.
type Clock struct {
	Hour   int
	Minute int
}

// ParseClock reads an "HH:MM" formatted value.
func ParseClock(raw string) (Clock, error) {
	var c Clock
	if _, err := fmt.Sscanf(raw, "%d:%d", &c.Hour, &c.Minute); err != nil {
		return Clock{}, fmt.Errorf("invalid clock value %q", raw)
	}
	if c.Hour < 0 || c.Hour > 23 || c.Minute < 0 || c.Minute > 59 {
		return Clock{}, fmt.Errorf("clock value %q out of range", raw)
	}
	return c, nil
}

// Minutes returns the offset since midnight.
func (c Clock) Minutes() int {
	return c.Hour*60 + c.Minute
}

// Before reports whether c precedes other.
func (c Clock) Before(other Clock) bool {
	return c.Minutes() < other.Minutes()
}

func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

// MarshalJSON encodes the clock as "HH:MM".
func (c Clock) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

// UnmarshalJSON decodes an "HH:MM" string.
func (c *Clock) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := ParseClock(raw)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// TimeSlot is a same-day half-open interval [Start, End).
type TimeSlot struct {
	Start Clock `json:"start"`
	End   Clock `json:"end"`
}

// NewTimeSlot builds a slot, rejecting inverted or empty intervals.
func NewTimeSlot(start, end Clock) (TimeSlot, error) {
	if !start.Before(end) {
		return TimeSlot{}, fmt.Errorf("time slot start %s must precede end %s", start, end)
	}
	return TimeSlot{Start: start, End: end}, nil
}

// Overlaps reports half-open interval intersection; touching slots do not overlap.
func (t TimeSlot) Overlaps(other TimeSlot) bool {
	return t.Start.Before(other.End) && other.Start.Before(t.End)
}

func (t TimeSlot) String() string {
	return fmt.Sprintf("%s-%s", t.Start, t.End)
}
