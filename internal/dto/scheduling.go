package dto

import "github.com/akademix/jadwal-api/internal/models"

// CandidateSlot is one (day, time slot, room) tuple offered to the
// suggestion engine as a possible relocation target.
type CandidateSlot struct {
	Day      models.DayOfWeek `json:"day"`
	TimeSlot models.TimeSlot  `json:"time_slot"`
	Room     models.Room      `json:"room"`
}

// Suggestion is a ranked alternative placement for a conflicted schedule.
type Suggestion struct {
	Day              string `json:"day"`
	TimeSlot         string `json:"time_slot"`
	Room             string `json:"room"`
	RoomCapacity     int    `json:"room_capacity"`
	LecturerConflict bool   `json:"lecturer_conflict"`
	DisruptionScore  int    `json:"disruption_score"`
	Reason           string `json:"reason"`
}

// SuggestionRequest is the HTTP payload for requesting alternatives.
type SuggestionRequest struct {
	ScheduleID     string                 `json:"schedule_id" validate:"required"`
	AvailableSlots []CandidateSlotRequest `json:"available_slots" validate:"required,min=1,dive"`
	NumSuggestions int                    `json:"num_suggestions"`
}

// CandidateSlotRequest is the wire form of a candidate slot; the room is
// referenced by ID and resolved against the room registry.
type CandidateSlotRequest struct {
	Day       string `json:"day" validate:"required"`
	StartTime string `json:"start_time" validate:"required"`
	EndTime   string `json:"end_time" validate:"required"`
	RoomID    string `json:"room_id" validate:"required"`
}

// RegisterObserverRequest subscribes a role-templated observer.
type RegisterObserverRequest struct {
	Role  string `json:"role" validate:"required,oneof=student lecturer admin"`
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
}

// ObserverRegistration is returned after a successful subscription.
type ObserverRegistration struct {
	ObserverID string `json:"observer_id"`
	Role       string `json:"role"`
	Name       string `json:"name"`
	Email      string `json:"email"`
}
