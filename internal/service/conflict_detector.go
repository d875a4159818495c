package service

import (
	"fmt"
	"sort"
	"strings"

	"github.com/akademix/jadwal-api/internal/models"
)

// DetectConflicts recomputes the complete conflict list for the given
// schedule set. It is a pure function: same input, same output, no state.
//
// Two passes: capacity violations first (O(n)), then pairwise room and
// lecturer double-bookings (O(n²)). A single pair can produce both a room
// and a lecturer conflict.
func DetectConflicts(schedules []models.Schedule) []models.Conflict {
	conflicts := make([]models.Conflict, 0)

	for _, sched := range schedules {
		if sched.Room.CanAccommodate(sched.NumStudents) {
			continue
		}
		conflicts = append(conflicts, models.Conflict{
			Type:      models.ConflictCapacityExceeded,
			Schedule1: sched,
			Description: fmt.Sprintf("%s: %d students exceed room capacity of %d",
				sched.CourseName, sched.NumStudents, sched.Room.Capacity),
			Severity: models.SeverityHigh,
		})
	}

	for i := 0; i < len(schedules); i++ {
		for j := i + 1; j < len(schedules); j++ {
			first, second := schedules[i], schedules[j]
			if first.Day != second.Day {
				continue
			}
			if !first.TimeSlot.Overlaps(second.TimeSlot) {
				continue
			}

			if first.Room.ID == second.Room.ID {
				other := second
				conflicts = append(conflicts, models.Conflict{
					Type:      models.ConflictRoom,
					Schedule1: first,
					Schedule2: &other,
					Description: fmt.Sprintf("Room '%s' double-booked: %s vs %s",
						first.Room.Name, first.CourseName, second.CourseName),
					Severity: models.SeverityCritical,
				})
			}

			if strings.EqualFold(first.LecturerName, second.LecturerName) {
				other := second
				conflicts = append(conflicts, models.Conflict{
					Type:      models.ConflictLecturer,
					Schedule1: first,
					Schedule2: &other,
					Description: fmt.Sprintf("Lecturer '%s' double-booked: %s (%s %s) vs %s (%s %s)",
						first.LecturerName,
						first.CourseName, first.Day, first.TimeSlot,
						second.CourseName, second.Day, second.TimeSlot),
					Severity: models.SeverityCritical,
				})
			}
		}
	}

	return conflicts
}

// SummarizeConflicts aggregates a conflict list by type, severity and the
// set of schedule IDs touched by any conflict.
func SummarizeConflicts(conflicts []models.Conflict) models.ConflictSummary {
	summary := models.ConflictSummary{
		TotalConflicts:    len(conflicts),
		ByType:            make(map[models.ConflictType]int),
		BySeverity:        make(map[models.Severity]int),
		AffectedSchedules: make([]string, 0),
	}

	affected := make(map[string]struct{})
	for _, conflict := range conflicts {
		summary.ByType[conflict.Type]++
		summary.BySeverity[conflict.Severity]++
		affected[conflict.Schedule1.ID] = struct{}{}
		if conflict.Schedule2 != nil {
			affected[conflict.Schedule2.ID] = struct{}{}
		}
	}

	for id := range affected {
		summary.AffectedSchedules = append(summary.AffectedSchedules, id)
	}
	sort.Strings(summary.AffectedSchedules)
	return summary
}
