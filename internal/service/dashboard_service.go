package service

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/akademix/jadwal-api/internal/dto"
	"github.com/akademix/jadwal-api/internal/models"
	appErrors "github.com/akademix/jadwal-api/pkg/errors"
	"github.com/akademix/jadwal-api/pkg/export"
)

// Weekly capacity assumed per room: 10 teaching slots across 5 weekdays.
const weeklyRoomSlots = 10 * 5

type schedulingReader interface {
	ListSchedules() []models.Schedule
	ListRooms() []models.Room
	GetRoom(roomID string) (models.Room, error)
	GetSchedulesByRoom(roomID string) []models.Schedule
	GetConflicts() []models.Conflict
	GetConflictSummary() models.ConflictSummary
}

// DashboardService composes reporting views over the scheduling state.
type DashboardService struct {
	scheduling schedulingReader
	cache      *CacheService
	csv        *export.CSVExporter
	pdf        *export.PDFExporter
	logger     *zap.Logger
	now        func() time.Time
	cacheTTL   time.Duration
}

// NewDashboardService constructs a DashboardService.
func NewDashboardService(scheduling schedulingReader, cache *CacheService, cacheTTL time.Duration, logger *zap.Logger) *DashboardService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cacheTTL <= 0 {
		cacheTTL = 5 * time.Minute
	}
	return &DashboardService{
		scheduling: scheduling,
		cache:      cache,
		csv:        export.NewCSVExporter(),
		pdf:        export.NewPDFExporter(),
		logger:     logger,
		now:        time.Now,
		cacheTTL:   cacheTTL,
	}
}

// Summary returns the dashboard aggregate and whether it came from cache.
func (s *DashboardService) Summary(ctx context.Context) (*dto.DashboardSummary, bool, error) {
	const cacheKey = "jadwal:dash:summary"
	if s.cache.Enabled() {
		var cached dto.DashboardSummary
		if hit, err := s.cache.Get(ctx, cacheKey, &cached); err == nil && hit {
			return &cached, true, nil
		}
	}

	schedules := s.scheduling.ListSchedules()
	rooms := s.scheduling.ListRooms()
	conflicts := s.scheduling.GetConflicts()

	summary := &dto.DashboardSummary{
		TotalSchedules:  len(schedules),
		TotalRooms:      len(rooms),
		TotalConflicts:  len(conflicts),
		ConflictSummary: s.scheduling.GetConflictSummary(),
		SchedulesByDay:  countByDay(schedules),
		RoomUtilization: s.roomUtilization(rooms),
	}

	if err := s.cache.Set(ctx, cacheKey, summary, s.cacheTTL); err != nil {
		s.logger.Warn("dashboard summary cache write failed", zap.Error(err))
	}
	return summary, false, nil
}

// ConflictReport returns the detailed conflict report and cache status.
func (s *DashboardService) ConflictReport(ctx context.Context) (*dto.ConflictReport, bool, error) {
	const cacheKey = "jadwal:dash:conflict-report"
	if s.cache.Enabled() {
		var cached dto.ConflictReport
		if hit, err := s.cache.Get(ctx, cacheKey, &cached); err == nil && hit {
			return &cached, true, nil
		}
	}

	conflicts := s.scheduling.GetConflicts()
	report := &dto.ConflictReport{
		Timestamp:      s.now().UTC(),
		TotalConflicts: len(conflicts),
		Conflicts:      conflicts,
		Summary:        s.scheduling.GetConflictSummary(),
	}

	if err := s.cache.Set(ctx, cacheKey, report, s.cacheTTL); err != nil {
		s.logger.Warn("conflict report cache write failed", zap.Error(err))
	}
	return report, false, nil
}

// RoomSchedule lists a room's schedules ordered by day then start time.
func (s *DashboardService) RoomSchedule(roomID string) (*dto.RoomSchedule, error) {
	room, err := s.scheduling.GetRoom(roomID)
	if err != nil {
		return nil, err
	}
	schedules := s.scheduling.GetSchedulesByRoom(roomID)
	sort.SliceStable(schedules, func(i, j int) bool {
		if schedules[i].Day != schedules[j].Day {
			return schedules[i].Day < schedules[j].Day
		}
		return schedules[i].TimeSlot.Start.Before(schedules[j].TimeSlot.Start)
	})
	return &dto.RoomSchedule{Room: room, Schedules: schedules}, nil
}

// ExportConflictReport renders the current conflict report as CSV or PDF.
func (s *DashboardService) ExportConflictReport(ctx context.Context, format string) ([]byte, string, error) {
	report, _, err := s.ConflictReport(ctx)
	if err != nil {
		return nil, "", err
	}
	dataset := conflictDataset(report)

	switch format {
	case "csv", "":
		payload, err := s.csv.Render(dataset)
		if err != nil {
			return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv report")
		}
		return payload, "text/csv", nil
	case "pdf":
		payload, err := s.pdf.Render(dataset, "Schedule Conflict Report")
		if err != nil {
			return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf report")
		}
		return payload, "application/pdf", nil
	default:
		return nil, "", appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported export format %q", format))
	}
}

func (s *DashboardService) roomUtilization(rooms []models.Room) map[string]dto.RoomUtilization {
	stats := make(map[string]dto.RoomUtilization, len(rooms))
	for _, room := range rooms {
		used := len(s.scheduling.GetSchedulesByRoom(room.ID))
		percent := float64(used) / float64(weeklyRoomSlots) * 100
		stats[room.Name] = dto.RoomUtilization{
			TotalSlots:         weeklyRoomSlots,
			UsedSlots:          used,
			UtilizationPercent: roundTwo(percent),
		}
	}
	return stats
}

func countByDay(schedules []models.Schedule) map[string]int {
	counts := make(map[string]int, 7)
	for _, day := range models.Days() {
		counts[day.String()] = 0
	}
	for _, schedule := range schedules {
		counts[schedule.Day.String()]++
	}
	return counts
}

func conflictDataset(report *dto.ConflictReport) export.Dataset {
	headers := []string{"Type", "Severity", "Schedule 1", "Schedule 2", "Description"}
	rows := make([]map[string]string, 0, len(report.Conflicts))
	for _, conflict := range report.Conflicts {
		row := map[string]string{
			"Type":        string(conflict.Type),
			"Severity":    string(conflict.Severity),
			"Schedule 1":  conflict.Schedule1.ID,
			"Schedule 2":  "",
			"Description": conflict.Description,
		}
		if conflict.Schedule2 != nil {
			row["Schedule 2"] = conflict.Schedule2.ID
		}
		rows = append(rows, row)
	}
	return export.Dataset{Headers: headers, Rows: rows}
}

func roundTwo(value float64) float64 {
	return math.Round(value*100) / 100
}
