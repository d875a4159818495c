package service

import (
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/akademix/jadwal-api/internal/dto"
	"github.com/akademix/jadwal-api/internal/models"
)

const defaultSuggestionCount = 3

type scheduleDirectory interface {
	GetSchedule(scheduleID string) (*models.Schedule, error)
	GetRoom(roomID string) (models.Room, error)
	GetSchedulesByLecturer(lecturerName string) []models.Schedule
}

// SuggestionService ranks alternative (day, slot, room) placements for a
// conflicted schedule. Scoring is a fixed heuristic; ranking is
// deterministic for a fixed candidate list.
type SuggestionService struct {
	schedules scheduleDirectory
	logger    *zap.Logger
}

// NewSuggestionService constructs a SuggestionService.
func NewSuggestionService(schedules scheduleDirectory, logger *zap.Logger) *SuggestionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SuggestionService{schedules: schedules, logger: logger}
}

// Suggest resolves a wire-level request against the schedule and room
// registries and returns ranked alternatives.
func (s *SuggestionService) Suggest(req dto.SuggestionRequest) ([]dto.Suggestion, error) {
	schedule, err := s.schedules.GetSchedule(req.ScheduleID)
	if err != nil {
		return nil, err
	}

	candidates := make([]dto.CandidateSlot, 0, len(req.AvailableSlots))
	for _, slot := range req.AvailableSlots {
		day, timeSlot, err := parseDayAndSlot(slot.Day, slot.StartTime, slot.EndTime)
		if err != nil {
			return nil, err
		}
		room, err := s.schedules.GetRoom(slot.RoomID)
		if err != nil {
			return nil, err
		}
		candidates = append(candidates, dto.CandidateSlot{Day: day, TimeSlot: timeSlot, Room: room})
	}

	suggestions := s.SuggestAlternatives(*schedule, candidates, req.NumSuggestions)
	s.logger.Debug("suggestions computed",
		zap.String("schedule_id", req.ScheduleID),
		zap.Int("candidates", len(candidates)),
		zap.Int("returned", len(suggestions)))
	return suggestions, nil
}

// SuggestAlternatives filters candidates by capacity, ranks the survivors by
// time and day preference, and annotates the top numSuggestions with the
// lecturer-conflict flag and a disruption score.
func (s *SuggestionService) SuggestAlternatives(conflicted models.Schedule, candidates []dto.CandidateSlot, numSuggestions int) []dto.Suggestion {
	if numSuggestions <= 0 {
		numSuggestions = defaultSuggestionCount
	}

	valid := make([]dto.CandidateSlot, 0, len(candidates))
	for _, candidate := range candidates {
		if candidate.Room.CanAccommodate(conflicted.NumStudents) {
			valid = append(valid, candidate)
		}
	}

	ranked := rankCandidates(conflicted, valid)
	if len(ranked) > numSuggestions {
		ranked = ranked[:numSuggestions]
	}

	suggestions := make([]dto.Suggestion, 0, len(ranked))
	for _, candidate := range ranked {
		lecturerConflict := s.hasLecturerConflict(conflicted, candidate)
		disruption := disruptionScore(conflicted, candidate.Day, candidate.TimeSlot)

		reasons := []string{
			fmt.Sprintf("Room capacity: %d (need: %d)", candidate.Room.Capacity, conflicted.NumStudents),
		}
		if lecturerConflict {
			reasons = append(reasons, "Conflicts with lecturer schedule")
		} else {
			reasons = append(reasons, "No lecturer conflict")
		}
		reasons = append(reasons, fmt.Sprintf("Disruption score: %d/10", disruption))

		suggestions = append(suggestions, dto.Suggestion{
			Day:              candidate.Day.String(),
			TimeSlot:         candidate.TimeSlot.String(),
			Room:             fmt.Sprintf("%s (%s)", candidate.Room.Name, candidate.Room.ID),
			RoomCapacity:     candidate.Room.Capacity,
			LecturerConflict: lecturerConflict,
			DisruptionScore:  disruption,
			Reason:           strings.Join(reasons, "; "),
		})
	}
	return suggestions
}

func (s *SuggestionService) hasLecturerConflict(conflicted models.Schedule, candidate dto.CandidateSlot) bool {
	for _, other := range s.schedules.GetSchedulesByLecturer(conflicted.LecturerName) {
		if other.ID == conflicted.ID {
			continue
		}
		if other.Day == candidate.Day && other.TimeSlot.Overlaps(candidate.TimeSlot) {
			return true
		}
	}
	return false
}

// rankCandidates sorts by preference score, descending; the sort is stable
// so equally scored candidates keep their input order.
func rankCandidates(schedule models.Schedule, candidates []dto.CandidateSlot) []dto.CandidateSlot {
	ranked := make([]dto.CandidateSlot, len(candidates))
	copy(ranked, candidates)
	sort.SliceStable(ranked, func(i, j int) bool {
		return preferenceScore(schedule, ranked[i]) > preferenceScore(schedule, ranked[j])
	})
	return ranked
}

func preferenceScore(schedule models.Schedule, candidate dto.CandidateSlot) int {
	hour := candidate.TimeSlot.Start.Hour
	timePreference := 3
	switch {
	case hour >= 8 && hour < 12:
		timePreference = 10
	case hour >= 12 && hour < 17:
		timePreference = 8
	}

	dayDistance := int(candidate.Day) - int(schedule.Day)
	if dayDistance < 0 {
		dayDistance = -dayDistance
	}
	return timePreference + (10 - dayDistance)
}

// disruptionScore measures deviation from the original placement, 0-10,
// lower is better. Informational only; it does not affect ranking.
func disruptionScore(original models.Schedule, day models.DayOfWeek, slot models.TimeSlot) int {
	score := 0
	if original.Day != day {
		score += 2
	}

	hourDiff := original.TimeSlot.Start.Hour - slot.Start.Hour
	if hourDiff < 0 {
		hourDiff = -hourDiff
	}
	if hourDiff > 3 {
		score += 4
	} else if hourDiff > 0 {
		score += 2
	}

	if slot.Start.Hour >= 17 {
		score += 2
	}

	if score > 10 {
		score = 10
	}
	return score
}
