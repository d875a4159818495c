package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akademix/jadwal-api/internal/dto"
	"github.com/akademix/jadwal-api/internal/models"
	appErrors "github.com/akademix/jadwal-api/pkg/errors"
)

type directoryStub struct {
	schedules map[string]models.Schedule
	rooms     map[string]models.Room
	byLect    []models.Schedule
}

func (s *directoryStub) GetSchedule(id string) (*models.Schedule, error) {
	if sched, ok := s.schedules[id]; ok {
		return &sched, nil
	}
	return nil, appErrors.ErrNotFound
}

func (s *directoryStub) GetRoom(id string) (models.Room, error) {
	if room, ok := s.rooms[id]; ok {
		return room, nil
	}
	return models.Room{}, appErrors.ErrNotFound
}

func (s *directoryStub) GetSchedulesByLecturer(name string) []models.Schedule {
	return s.byLect
}

func candidate(t *testing.T, day models.DayOfWeek, start, end string, room models.Room) dto.CandidateSlot {
	t.Helper()
	return dto.CandidateSlot{Day: day, TimeSlot: testSlot(t, start, end), Room: room}
}

func TestSuggestAlternativesFiltersByCapacity(t *testing.T) {
	conflicted := testSchedule(t, "S1", "Algorithms", "Dr. Sari", models.Monday, "08:00", "10:00", labA, 35)
	svc := NewSuggestionService(&directoryStub{}, nil)

	small := models.Room{ID: "R201", Name: "Seminar", Capacity: 20}
	suggestions := svc.SuggestAlternatives(conflicted, []dto.CandidateSlot{
		candidate(t, models.Monday, "10:00", "12:00", small),
		candidate(t, models.Monday, "10:00", "12:00", labA),
	}, 5)

	require.Len(t, suggestions, 1)
	assert.Equal(t, "Lab A (R101)", suggestions[0].Room)
	assert.Equal(t, 40, suggestions[0].RoomCapacity)
}

func TestSuggestAlternativesRankingPrefersMorningsAndNearDays(t *testing.T) {
	conflicted := testSchedule(t, "S1", "Algorithms", "Dr. Sari", models.Monday, "08:00", "10:00", labA, 35)
	svc := NewSuggestionService(&directoryStub{}, nil)

	suggestions := svc.SuggestAlternatives(conflicted, []dto.CandidateSlot{
		candidate(t, models.Friday, "18:00", "20:00", labA),
		candidate(t, models.Monday, "10:00", "12:00", labA),
		candidate(t, models.Tuesday, "13:00", "15:00", labA),
	}, 3)

	require.Len(t, suggestions, 3)
	assert.Equal(t, "MONDAY", suggestions[0].Day)
	assert.Equal(t, "10:00-12:00", suggestions[0].TimeSlot)
	assert.Equal(t, "TUESDAY", suggestions[1].Day)
	assert.Equal(t, "FRIDAY", suggestions[2].Day)
}

func TestSuggestAlternativesStableForTies(t *testing.T) {
	conflicted := testSchedule(t, "S1", "Algorithms", "Dr. Sari", models.Monday, "08:00", "10:00", labA, 25)
	svc := NewSuggestionService(&directoryStub{}, nil)

	other := models.Room{ID: "R202", Name: "Lab C", Capacity: 30}
	candidates := []dto.CandidateSlot{
		candidate(t, models.Monday, "09:00", "11:00", labA),
		candidate(t, models.Monday, "09:00", "11:00", other),
	}

	first := svc.SuggestAlternatives(conflicted, candidates, 2)
	second := svc.SuggestAlternatives(conflicted, candidates, 2)
	require.Len(t, first, 2)
	assert.Equal(t, "Lab A (R101)", first[0].Room)
	assert.Equal(t, first, second)
}

func TestSuggestAlternativesTruncatesToRequestedCount(t *testing.T) {
	conflicted := testSchedule(t, "S1", "Algorithms", "Dr. Sari", models.Monday, "08:00", "10:00", labA, 25)
	svc := NewSuggestionService(&directoryStub{}, nil)

	candidates := []dto.CandidateSlot{
		candidate(t, models.Monday, "08:00", "10:00", labA),
		candidate(t, models.Tuesday, "08:00", "10:00", labA),
		candidate(t, models.Wednesday, "08:00", "10:00", labA),
		candidate(t, models.Thursday, "08:00", "10:00", labA),
	}

	assert.Len(t, svc.SuggestAlternatives(conflicted, candidates, 2), 2)
	// Zero falls back to the default of three.
	assert.Len(t, svc.SuggestAlternatives(conflicted, candidates, 0), 3)
}

func TestSuggestAlternativesFlagsLecturerConflict(t *testing.T) {
	conflicted := testSchedule(t, "S1", "Algorithms", "Dr. Sari", models.Monday, "08:00", "10:00", labA, 35)
	busy := testSchedule(t, "S2", "Databases", "Dr. Sari", models.Tuesday, "10:00", "12:00", labB, 20)

	svc := NewSuggestionService(&directoryStub{byLect: []models.Schedule{conflicted, busy}}, nil)

	suggestions := svc.SuggestAlternatives(conflicted, []dto.CandidateSlot{
		candidate(t, models.Tuesday, "11:00", "13:00", labA),
		candidate(t, models.Wednesday, "08:00", "10:00", labA),
	}, 2)

	require.Len(t, suggestions, 2)
	for _, suggestion := range suggestions {
		switch suggestion.Day {
		case "TUESDAY":
			assert.True(t, suggestion.LecturerConflict)
			assert.Contains(t, suggestion.Reason, "Conflicts with lecturer schedule")
		case "WEDNESDAY":
			assert.False(t, suggestion.LecturerConflict)
			assert.Contains(t, suggestion.Reason, "No lecturer conflict")
		default:
			t.Fatalf("unexpected day %s", suggestion.Day)
		}
	}
}

func TestSuggestAlternativesIgnoresOwnScheduleForLecturerCheck(t *testing.T) {
	conflicted := testSchedule(t, "S1", "Algorithms", "Dr. Sari", models.Monday, "08:00", "10:00", labA, 35)
	svc := NewSuggestionService(&directoryStub{byLect: []models.Schedule{conflicted}}, nil)

	suggestions := svc.SuggestAlternatives(conflicted, []dto.CandidateSlot{
		candidate(t, models.Monday, "08:00", "10:00", labA),
	}, 1)
	require.Len(t, suggestions, 1)
	assert.False(t, suggestions[0].LecturerConflict)
}

func TestSuggestAlternativesDisruptionScore(t *testing.T) {
	conflicted := testSchedule(t, "S1", "Algorithms", "Dr. Sari", models.Monday, "08:00", "10:00", labA, 35)
	svc := NewSuggestionService(&directoryStub{}, nil)

	cases := []struct {
		name string
		slot dto.CandidateSlot
		want int
	}{
		{"same placement", candidate(t, models.Monday, "08:00", "10:00", labA), 0},
		{"same day small shift", candidate(t, models.Monday, "10:00", "12:00", labA), 2},
		{"day change big shift", candidate(t, models.Friday, "13:00", "15:00", labA), 6},
		{"evening far shift", candidate(t, models.Friday, "18:00", "20:00", labA), 8},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			suggestions := svc.SuggestAlternatives(conflicted, []dto.CandidateSlot{tc.slot}, 1)
			require.Len(t, suggestions, 1)
			assert.Equal(t, tc.want, suggestions[0].DisruptionScore)
			assert.Contains(t, suggestions[0].Reason, "Disruption score:")
		})
	}
}

func TestSuggestResolvesRequest(t *testing.T) {
	conflicted := testSchedule(t, "S1", "Algorithms", "Dr. Sari", models.Monday, "08:00", "10:00", labA, 35)
	stub := &directoryStub{
		schedules: map[string]models.Schedule{"S1": conflicted},
		rooms:     map[string]models.Room{"R101": labA},
	}
	svc := NewSuggestionService(stub, nil)

	suggestions, err := svc.Suggest(dto.SuggestionRequest{
		ScheduleID: "S1",
		AvailableSlots: []dto.CandidateSlotRequest{
			{Day: "TUESDAY", StartTime: "08:00", EndTime: "10:00", RoomID: "R101"},
		},
	})
	require.NoError(t, err)
	require.Len(t, suggestions, 1)
	assert.Equal(t, "TUESDAY", suggestions[0].Day)
}

func TestSuggestUnknownScheduleAndRoom(t *testing.T) {
	stub := &directoryStub{
		schedules: map[string]models.Schedule{},
		rooms:     map[string]models.Room{},
	}
	svc := NewSuggestionService(stub, nil)

	_, err := svc.Suggest(dto.SuggestionRequest{ScheduleID: "missing"})
	assert.Error(t, err)

	stub.schedules["S1"] = testSchedule(t, "S1", "Algorithms", "Dr. Sari", models.Monday, "08:00", "10:00", labA, 35)
	_, err = svc.Suggest(dto.SuggestionRequest{
		ScheduleID: "S1",
		AvailableSlots: []dto.CandidateSlotRequest{
			{Day: "TUESDAY", StartTime: "08:00", EndTime: "10:00", RoomID: "missing"},
		},
	})
	assert.Error(t, err)
}
