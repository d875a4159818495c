package models

import "fmt"

// ConflictType classifies a detected scheduling conflict.
type ConflictType string

const (
	ConflictRoom     ConflictType = "room_conflict"
	ConflictLecturer ConflictType = "lecturer_conflict"
	// ConflictTimeOverlap is reserved for callers that want to flag a bare
	// time collision; the detection engine does not emit it.
	ConflictTimeOverlap      ConflictType = "time_overlap"
	ConflictCapacityExceeded ConflictType = "capacity_exceeded"
)

// Severity labels conflict urgency.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityMedium   Severity = "medium"
	SeverityLow      Severity = "low"
)

// Conflict is a detected violation between schedules. Schedule2 is nil for
// unary conflicts such as capacity overflow. Conflicts carry no identity;
// the full list is rebuilt from scratch on every mutation.
type Conflict struct {
	Type        ConflictType `json:"conflict_type"`
	Schedule1   Schedule     `json:"schedule_1"`
	Schedule2   *Schedule    `json:"schedule_2,omitempty"`
	Description string       `json:"description"`
	Severity    Severity     `json:"severity"`
}

// Payload flattens the conflict for notification fan-out.
func (c Conflict) Payload() map[string]any {
	payload := map[string]any{
		"conflict_type": string(c.Type),
		"schedule_1":    c.Schedule1.Payload(),
		"description":   c.Description,
		"severity":      string(c.Severity),
	}
	if c.Schedule2 != nil {
		payload["schedule_2"] = c.Schedule2.Payload()
	}
	return payload
}

func (c Conflict) String() string {
	return fmt.Sprintf("[%s] %s", c.Type, c.Description)
}

// ConflictSummary aggregates the current conflict list.
type ConflictSummary struct {
	TotalConflicts    int                  `json:"total_conflicts"`
	ByType            map[ConflictType]int `json:"by_type"`
	BySeverity        map[Severity]int     `json:"by_severity"`
	AffectedSchedules []string             `json:"affected_schedules"`
}
