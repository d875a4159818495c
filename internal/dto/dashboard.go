package dto

import (
	"time"

	"github.com/akademix/jadwal-api/internal/models"
)

// RoomUtilization summarises weekly usage of one room.
type RoomUtilization struct {
	TotalSlots         int     `json:"total_slots"`
	UsedSlots          int     `json:"used_slots"`
	UtilizationPercent float64 `json:"utilization_percent"`
}

// DashboardSummary is the aggregate view over the current scheduling state.
type DashboardSummary struct {
	TotalSchedules  int                        `json:"total_schedules"`
	TotalRooms      int                        `json:"total_rooms"`
	TotalConflicts  int                        `json:"total_conflicts"`
	ConflictSummary models.ConflictSummary     `json:"conflict_summary"`
	SchedulesByDay  map[string]int             `json:"schedules_by_day"`
	RoomUtilization map[string]RoomUtilization `json:"room_utilization"`
}

// ConflictReport is the detailed conflict view, suitable for export.
type ConflictReport struct {
	Timestamp      time.Time              `json:"timestamp"`
	TotalConflicts int                    `json:"total_conflicts"`
	Conflicts      []models.Conflict      `json:"conflicts"`
	Summary        models.ConflictSummary `json:"summary"`
}

// RoomSchedule pairs a room with its assigned schedules.
type RoomSchedule struct {
	Room      models.Room       `json:"room"`
	Schedules []models.Schedule `json:"schedules"`
}
