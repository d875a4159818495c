package models

import "fmt"

// Room represents a bookable classroom.
type Room struct {
	ID       string `json:"room_id"`
	Name     string `json:"room_name"`
	Capacity int    `json:"capacity"`
	Building string `json:"building"`
}

// CanAccommodate reports whether the room fits the given headcount.
func (r Room) CanAccommodate(numStudents int) bool {
	return numStudents <= r.Capacity
}

func (r Room) String() string {
	return fmt.Sprintf("%s (Cap: %d)", r.Name, r.Capacity)
}
