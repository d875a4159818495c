package models

import (
	"fmt"
	"time"
)

// Schedule represents a timetabled course session. Room holds a snapshot of
// the room taken at assignment time, not a live reference.
type Schedule struct {
	ID           string    `json:"schedule_id"`
	CourseName   string    `json:"course_name"`
	CourseCode   string    `json:"course_code"`
	LecturerName string    `json:"lecturer_name"`
	Day          DayOfWeek `json:"day"`
	TimeSlot     TimeSlot  `json:"time_slot"`
	Room         Room      `json:"room"`
	NumStudents  int       `json:"num_students"`
	KRSID        *string   `json:"krs_id,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Payload flattens the schedule for notification fan-out.
func (s Schedule) Payload() map[string]any {
	payload := map[string]any{
		"schedule_id":   s.ID,
		"course_name":   s.CourseName,
		"course_code":   s.CourseCode,
		"lecturer_name": s.LecturerName,
		"day":           s.Day.String(),
		"time_slot":     s.TimeSlot.String(),
		"room":          s.Room.String(),
		"num_students":  s.NumStudents,
	}
	if s.KRSID != nil {
		payload["krs_id"] = *s.KRSID
	}
	return payload
}

func (s Schedule) String() string {
	return fmt.Sprintf("%s (%s) - %s %s @ %s - By %s",
		s.CourseName, s.CourseCode, s.Day, s.TimeSlot, s.Room.Name, s.LecturerName)
}
