package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akademix/jadwal-api/internal/models"
	appErrors "github.com/akademix/jadwal-api/pkg/errors"
)

type memoryCacheRepo struct {
	entries map[string][]byte
	sets    int
}

func newMemoryCacheRepo() *memoryCacheRepo {
	return &memoryCacheRepo{entries: make(map[string][]byte)}
}

func (r *memoryCacheRepo) Get(ctx context.Context, key string, dest interface{}) error {
	raw, ok := r.entries[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	return json.Unmarshal(raw, dest)
}

func (r *memoryCacheRepo) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	r.entries[key] = raw
	r.sets++
	return nil
}

func (r *memoryCacheRepo) DeleteByPattern(ctx context.Context, pattern string) error {
	r.entries = make(map[string][]byte)
	return nil
}

func newDashboardFixture(t *testing.T) *SchedulingService {
	t.Helper()
	svc, _, _ := newTestService(t)
	addTestRoom(t, svc, "R101", 40)
	addTestRoom(t, svc, "R102", 30)

	_, err := svc.CreateSchedule(context.Background(), createRequest("S1", "Dr. Sari", "R101", 35))
	require.NoError(t, err)
	_, err = svc.CreateSchedule(context.Background(), createRequest("S2", "Dr. Budi", "R101", 20))
	require.NoError(t, err)

	req := createRequest("S3", "Dr. Tono", "R102", 25)
	req.Day = "WEDNESDAY"
	req.StartTime = "13:00"
	req.EndTime = "15:00"
	_, err = svc.CreateSchedule(context.Background(), req)
	require.NoError(t, err)
	return svc
}

func TestDashboardSummary(t *testing.T) {
	scheduling := newDashboardFixture(t)
	dash := NewDashboardService(scheduling, nil, time.Minute, nil)

	summary, cacheHit, err := dash.Summary(context.Background())
	require.NoError(t, err)
	assert.False(t, cacheHit)
	assert.Equal(t, 3, summary.TotalSchedules)
	assert.Equal(t, 2, summary.TotalRooms)
	assert.Equal(t, 1, summary.TotalConflicts)
	assert.Equal(t, 2, summary.SchedulesByDay["MONDAY"])
	assert.Equal(t, 1, summary.SchedulesByDay["WEDNESDAY"])
	assert.Equal(t, 0, summary.SchedulesByDay["SUNDAY"])

	labA := summary.RoomUtilization["Room R101"]
	assert.Equal(t, 50, labA.TotalSlots)
	assert.Equal(t, 2, labA.UsedSlots)
	assert.Equal(t, 4.0, labA.UtilizationPercent)
}

func TestDashboardSummaryUsesCache(t *testing.T) {
	scheduling := newDashboardFixture(t)
	repo := newMemoryCacheRepo()
	cacheSvc := NewCacheService(repo, nil, time.Minute, nil, true)
	dash := NewDashboardService(scheduling, cacheSvc, time.Minute, nil)

	_, cacheHit, err := dash.Summary(context.Background())
	require.NoError(t, err)
	assert.False(t, cacheHit)
	assert.Equal(t, 1, repo.sets)

	cached, cacheHit, err := dash.Summary(context.Background())
	require.NoError(t, err)
	assert.True(t, cacheHit)
	assert.Equal(t, 3, cached.TotalSchedules)
	assert.Equal(t, 1, repo.sets)
}

func TestConflictReport(t *testing.T) {
	scheduling := newDashboardFixture(t)
	dash := NewDashboardService(scheduling, nil, time.Minute, nil)
	fixed := time.Date(2026, time.March, 2, 12, 0, 0, 0, time.UTC)
	dash.now = func() time.Time { return fixed }

	report, cacheHit, err := dash.ConflictReport(context.Background())
	require.NoError(t, err)
	assert.False(t, cacheHit)
	assert.Equal(t, fixed, report.Timestamp)
	assert.Equal(t, 1, report.TotalConflicts)
	require.Len(t, report.Conflicts, 1)
	assert.Equal(t, models.ConflictRoom, report.Conflicts[0].Type)
	assert.Equal(t, 1, report.Summary.TotalConflicts)
}

func TestRoomSchedule(t *testing.T) {
	scheduling := newDashboardFixture(t)
	dash := NewDashboardService(scheduling, nil, time.Minute, nil)

	req := createRequest("S4", "Dr. Sari", "R101", 10)
	req.Day = "MONDAY"
	req.StartTime = "06:00"
	req.EndTime = "07:00"
	_, err := scheduling.CreateSchedule(context.Background(), req)
	require.NoError(t, err)

	view, err := dash.RoomSchedule("R101")
	require.NoError(t, err)
	assert.Equal(t, "R101", view.Room.ID)
	require.Len(t, view.Schedules, 3)
	// Ordered by day then start time.
	assert.Equal(t, "S4", view.Schedules[0].ID)
	assert.Equal(t, "S1", view.Schedules[1].ID)
	assert.Equal(t, "S2", view.Schedules[2].ID)

	_, err = dash.RoomSchedule("missing")
	assert.Error(t, err)
}

func TestExportConflictReportCSV(t *testing.T) {
	scheduling := newDashboardFixture(t)
	dash := NewDashboardService(scheduling, nil, time.Minute, nil)

	payload, contentType, err := dash.ExportConflictReport(context.Background(), "csv")
	require.NoError(t, err)
	assert.Equal(t, "text/csv", contentType)
	content := string(payload)
	assert.Contains(t, content, "Type,Severity,Schedule 1,Schedule 2,Description")
	assert.Contains(t, content, "room_conflict")
	assert.Contains(t, content, "S1")
	assert.Contains(t, content, "S2")
}

func TestExportConflictReportPDF(t *testing.T) {
	scheduling := newDashboardFixture(t)
	dash := NewDashboardService(scheduling, nil, time.Minute, nil)

	payload, contentType, err := dash.ExportConflictReport(context.Background(), "pdf")
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", contentType)
	assert.True(t, len(payload) > 0)
	assert.Equal(t, "%PDF", string(payload[:4]))
}

func TestExportConflictReportUnknownFormat(t *testing.T) {
	scheduling := newDashboardFixture(t)
	dash := NewDashboardService(scheduling, nil, time.Minute, nil)

	_, _, err := dash.ExportConflictReport(context.Background(), "xlsx")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}
