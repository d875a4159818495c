package models

// EventType identifies a schedule change notification.
type EventType string

const (
	EventScheduleCreated  EventType = "SCHEDULE_CREATED"
	EventScheduleUpdated  EventType = "SCHEDULE_UPDATED"
	EventScheduleDeleted  EventType = "SCHEDULE_DELETED"
	EventConflictDetected EventType = "CONFLICT_DETECTED"
	// EventScheduleResolved is declared for observers that track conflict
	// resolution flows; the scheduling service does not emit it yet.
	EventScheduleResolved EventType = "SCHEDULE_RESOLVED"
)
