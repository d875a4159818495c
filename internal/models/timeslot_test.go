package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustSlot(t *testing.T, start, end string) TimeSlot {
	t.Helper()
	s, err := ParseClock(start)
	require.NoError(t, err)
	e, err := ParseClock(end)
	require.NoError(t, err)
	slot, err := NewTimeSlot(s, e)
	require.NoError(t, err)
	return slot
}

func TestParseClock(t *testing.T) {
	c, err := ParseClock("08:30")
	require.NoError(t, err)
	assert.Equal(t, 8, c.Hour)
	assert.Equal(t, 30, c.Minute)
	assert.Equal(t, "08:30", c.String())

	_, err = ParseClock("25:00")
	assert.Error(t, err)
	_, err = ParseClock("10:75")
	assert.Error(t, err)
	_, err = ParseClock("not-a-time")
	assert.Error(t, err)
}

func TestNewTimeSlotRejectsInvertedAndEmpty(t *testing.T) {
	ten := Clock{Hour: 10}
	eight := Clock{Hour: 8}

	_, err := NewTimeSlot(ten, eight)
	assert.Error(t, err)

	_, err = NewTimeSlot(ten, ten)
	assert.Error(t, err)

	slot, err := NewTimeSlot(eight, ten)
	require.NoError(t, err)
	assert.Equal(t, "08:00-10:00", slot.String())
}

func TestTimeSlotOverlaps(t *testing.T) {
	base := mustSlot(t, "08:00", "10:00")

	cases := []struct {
		name  string
		other TimeSlot
		want  bool
	}{
		{"identical", mustSlot(t, "08:00", "10:00"), true},
		{"partial overlap", mustSlot(t, "09:00", "11:00"), true},
		{"contained", mustSlot(t, "08:30", "09:30"), true},
		{"touching end to start", mustSlot(t, "10:00", "12:00"), false},
		{"touching start to end", mustSlot(t, "06:00", "08:00"), false},
		{"disjoint", mustSlot(t, "13:00", "15:00"), false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, base.Overlaps(tc.other))
			// Overlap is symmetric.
			assert.Equal(t, tc.want, tc.other.Overlaps(base))
		})
	}
}

func TestTimeSlotJSONRoundTrip(t *testing.T) {
	slot := mustSlot(t, "08:00", "09:45")
	raw, err := json.Marshal(slot)
	require.NoError(t, err)
	assert.JSONEq(t, `{"start":"08:00","end":"09:45"}`, string(raw))

	var decoded TimeSlot
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, slot, decoded)
}

func TestParseDay(t *testing.T) {
	day, err := ParseDay("monday")
	require.NoError(t, err)
	assert.Equal(t, Monday, day)

	day, err = ParseDay("  FRIDAY ")
	require.NoError(t, err)
	assert.Equal(t, Friday, day)

	_, err = ParseDay("funday")
	assert.Error(t, err)
}

func TestDayOfWeekJSON(t *testing.T) {
	raw, err := json.Marshal(Wednesday)
	require.NoError(t, err)
	assert.Equal(t, `"WEDNESDAY"`, string(raw))

	var day DayOfWeek
	require.NoError(t, json.Unmarshal([]byte(`"sunday"`), &day))
	assert.Equal(t, Sunday, day)

	_, err = json.Marshal(DayOfWeek(9))
	assert.Error(t, err)
}

func TestRoomCanAccommodate(t *testing.T) {
	room := Room{ID: "R101", Name: "Lab A", Capacity: 40}
	assert.True(t, room.CanAccommodate(40))
	assert.True(t, room.CanAccommodate(1))
	assert.False(t, room.CanAccommodate(41))
}
