package models

import (
	"encoding/json"
	"fmt"
	"strings"
)

// DayOfWeek indexes weekdays starting from Monday = 0.
type DayOfWeek int

const (
	Monday DayOfWeek = iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

var dayNames = [...]string{
	"MONDAY",
	"TUESDAY",
	"WEDNESDAY",
	"THURSDAY",
	"FRIDAY",
	"SATURDAY",
	"SUNDAY",
}

// Days lists all weekdays in order.
func Days() []DayOfWeek {
	return []DayOfWeek{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}
}

// Valid reports whether the day falls inside the week.
func (d DayOfWeek) Valid() bool {
	return d >= Monday && d <= Sunday
}

func (d DayOfWeek) String() string {
	if !d.Valid() {
		return fmt.Sprintf("DAY(%d)", int(d))
	}
	return dayNames[d]
}

// ParseDay resolves a case-insensitive day name.
func ParseDay(name string) (DayOfWeek, error) {
	upper := strings.ToUpper(strings.TrimSpace(name))
	for i, candidate := range dayNames {
		if candidate == upper {
			return DayOfWeek(i), nil
		}
	}
	return 0, fmt.Errorf("unknown day of week %q", name)
}

// MarshalJSON encodes the day as its uppercase name.
func (d DayOfWeek) MarshalJSON() ([]byte, error) {
	if !d.Valid() {
		return nil, fmt.Errorf("day of week %d out of range", int(d))
	}
	return json.Marshal(d.String())
}

// UnmarshalJSON accepts a case-insensitive day name.
func (d *DayOfWeek) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	day, err := ParseDay(raw)
	if err != nil {
		return err
	}
	*d = day
	return nil
}
