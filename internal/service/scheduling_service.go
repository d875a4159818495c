package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/akademix/jadwal-api/internal/models"
	"github.com/akademix/jadwal-api/internal/notify"
	appErrors "github.com/akademix/jadwal-api/pkg/errors"
)

// KRSInvalidation describes a registration record that must be voided
// because the schedule it depends on went away.
type KRSInvalidation struct {
	KRSID      string `json:"krs_id"`
	CourseName string `json:"course_name"`
	Reason     string `json:"reason"`
}

type krsInvalidator interface {
	Invalidate(inv KRSInvalidation)
}

type dashboardCacheInvalidator interface {
	Invalidate(ctx context.Context, pattern string) error
}

// AddRoomRequest represents payload for registering rooms.
type AddRoomRequest struct {
	RoomID   string `json:"room_id" validate:"required"`
	RoomName string `json:"room_name" validate:"required"`
	Capacity int    `json:"capacity" validate:"required,gt=0"`
	Building string `json:"building"`
}

// CreateScheduleRequest represents payload for creating schedules.
type CreateScheduleRequest struct {
	ScheduleID   string  `json:"schedule_id" validate:"required"`
	CourseName   string  `json:"course_name" validate:"required"`
	CourseCode   string  `json:"course_code" validate:"required"`
	LecturerName string  `json:"lecturer_name" validate:"required"`
	Day          string  `json:"day" validate:"required"`
	StartTime    string  `json:"start_time" validate:"required"`
	EndTime      string  `json:"end_time" validate:"required"`
	RoomID       string  `json:"room_id" validate:"required"`
	NumStudents  int     `json:"num_students" validate:"required,gt=0"`
	KRSID        *string `json:"krs_id"`
}

// UpdateScheduleRequest represents payload for replacing a schedule. The
// schedule keeps its identity; everything else may change.
type UpdateScheduleRequest struct {
	CourseName   string  `json:"course_name" validate:"required"`
	CourseCode   string  `json:"course_code" validate:"required"`
	LecturerName string  `json:"lecturer_name" validate:"required"`
	Day          string  `json:"day" validate:"required"`
	StartTime    string  `json:"start_time" validate:"required"`
	EndTime      string  `json:"end_time" validate:"required"`
	RoomID       string  `json:"room_id" validate:"required"`
	NumStudents  int     `json:"num_students" validate:"required,gt=0"`
	KRSID        *string `json:"krs_id"`
}

// SchedulingService owns the authoritative room and schedule collections.
// Every mutation recomputes the full conflict list and fans events out to
// attached observers before returning. All state is in memory.
type SchedulingService struct {
	mu        sync.RWMutex
	rooms     map[string]models.Room
	schedules map[string]models.Schedule
	order     []string
	conflicts []models.Conflict

	subject   *notify.Subject
	krs       krsInvalidator
	cache     dashboardCacheInvalidator
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// SchedulingServiceParams groups constructor dependencies.
type SchedulingServiceParams struct {
	KRS       krsInvalidator
	Cache     dashboardCacheInvalidator
	Metrics   *MetricsService
	Validator *validator.Validate
	Logger    *zap.Logger
}

// NewSchedulingService constructs an empty scheduling service.
func NewSchedulingService(params SchedulingServiceParams) *SchedulingService {
	if params.Validator == nil {
		params.Validator = validator.New()
	}
	if params.Logger == nil {
		params.Logger = zap.NewNop()
	}
	return &SchedulingService{
		rooms:     make(map[string]models.Room),
		schedules: make(map[string]models.Schedule),
		conflicts: make([]models.Conflict, 0),
		subject:   notify.NewSubject(params.Logger),
		krs:       params.KRS,
		cache:     params.Cache,
		metrics:   params.Metrics,
		validator: params.Validator,
		logger:    params.Logger,
		now:       time.Now,
	}
}

// Attach registers an observer for schedule events. Idempotent.
func (s *SchedulingService) Attach(observer notify.Observer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subject.Attach(observer)
}

// Detach removes a previously attached observer.
func (s *SchedulingService) Detach(observer notify.Observer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subject.Detach(observer)
}

// AddRoom registers a new room. Rooms alone cannot conflict, so no
// recomputation happens here.
func (s *SchedulingService) AddRoom(ctx context.Context, req AddRoomRequest) (models.Room, error) {
	if err := s.validator.Struct(req); err != nil {
		return models.Room{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid room payload")
	}
	building := req.Building
	if building == "" {
		building = "Main Building"
	}
	room := models.Room{ID: req.RoomID, Name: req.RoomName, Capacity: req.Capacity, Building: building}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.rooms[room.ID]; exists {
		return models.Room{}, appErrors.Clone(appErrors.ErrAlreadyExists, fmt.Sprintf("room %s already exists", room.ID))
	}
	s.rooms[room.ID] = room
	s.logger.Info("room added", zap.String("room_id", room.ID), zap.Int("capacity", room.Capacity))
	return room, nil
}

// GetRoom returns a room by ID.
func (s *SchedulingService) GetRoom(roomID string) (models.Room, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	room, ok := s.rooms[roomID]
	if !ok {
		return models.Room{}, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("room %s not found", roomID))
	}
	return room, nil
}

// ListRooms returns all rooms ordered by ID.
func (s *SchedulingService) ListRooms() []models.Room {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rooms := make([]models.Room, 0, len(s.rooms))
	for _, room := range s.rooms {
		rooms = append(rooms, room)
	}
	sort.Slice(rooms, func(i, j int) bool { return rooms[i].ID < rooms[j].ID })
	return rooms
}

// CreateSchedule validates and inserts a schedule, then recomputes conflicts
// and publishes CONFLICT_DETECTED per conflict followed by SCHEDULE_CREATED.
func (s *SchedulingService) CreateSchedule(ctx context.Context, req CreateScheduleRequest) (*models.Schedule, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid schedule payload")
	}
	day, slot, err := parseDayAndSlot(req.Day, req.StartTime, req.EndTime)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	if _, exists := s.schedules[req.ScheduleID]; exists {
		s.mu.Unlock()
		return nil, appErrors.Clone(appErrors.ErrAlreadyExists, fmt.Sprintf("schedule %s already exists", req.ScheduleID))
	}
	room, err := s.resolveRoomLocked(req.RoomID, req.NumStudents)
	if err != nil {
		s.mu.Unlock()
		return nil, err
	}

	now := s.now()
	schedule := models.Schedule{
		ID:           req.ScheduleID,
		CourseName:   req.CourseName,
		CourseCode:   req.CourseCode,
		LecturerName: req.LecturerName,
		Day:          day,
		TimeSlot:     slot,
		Room:         room,
		NumStudents:  req.NumStudents,
		KRSID:        req.KRSID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	s.schedules[schedule.ID] = schedule
	s.order = append(s.order, schedule.ID)
	s.logger.Info("schedule created", zap.String("schedule_id", schedule.ID), zap.String("course", schedule.CourseName))

	s.recomputeAndPublishLocked()
	s.subject.Notify(models.EventScheduleCreated, schedule.Payload())
	s.mu.Unlock()

	s.invalidateDashboards(ctx)
	return &schedule, nil
}

// UpdateSchedule replaces a stored schedule in place, preserving identity and
// the original creation timestamp.
func (s *SchedulingService) UpdateSchedule(ctx context.Context, scheduleID string, req UpdateScheduleRequest) (*models.Schedule, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid schedule payload")
	}
	day, slot, err := parseDayAndSlot(req.Day, req.StartTime, req.EndTime)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	existing, ok := s.schedules[scheduleID]
	if !ok {
		s.mu.Unlock()
		return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("schedule %s not found", scheduleID))
	}
	room, err := s.resolveRoomLocked(req.RoomID, req.NumStudents)
	if err != nil {
		s.mu.Unlock()
		return nil, err
	}

	schedule := models.Schedule{
		ID:           scheduleID,
		CourseName:   req.CourseName,
		CourseCode:   req.CourseCode,
		LecturerName: req.LecturerName,
		Day:          day,
		TimeSlot:     slot,
		Room:         room,
		NumStudents:  req.NumStudents,
		KRSID:        req.KRSID,
		CreatedAt:    existing.CreatedAt,
		UpdatedAt:    s.now(),
	}
	s.schedules[scheduleID] = schedule
	s.logger.Info("schedule updated", zap.String("schedule_id", scheduleID), zap.String("course", schedule.CourseName))

	s.recomputeAndPublishLocked()
	s.subject.Notify(models.EventScheduleUpdated, schedule.Payload())
	s.mu.Unlock()

	s.invalidateDashboards(ctx)
	return &schedule, nil
}

// DeleteSchedule removes a schedule, recomputes (possibly shrinking) the
// conflict list, and triggers best-effort KRS invalidation when applicable.
func (s *SchedulingService) DeleteSchedule(ctx context.Context, scheduleID string) error {
	s.mu.Lock()
	schedule, ok := s.schedules[scheduleID]
	if !ok {
		s.mu.Unlock()
		return appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("schedule %s not found", scheduleID))
	}
	delete(s.schedules, scheduleID)
	for i, id := range s.order {
		if id == scheduleID {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	s.logger.Info("schedule deleted", zap.String("schedule_id", scheduleID), zap.String("course", schedule.CourseName))

	s.recomputeAndPublishLocked()
	s.subject.Notify(models.EventScheduleDeleted, schedule.Payload())
	s.mu.Unlock()

	if schedule.KRSID != nil && s.krs != nil {
		s.krs.Invalidate(KRSInvalidation{
			KRSID:      *schedule.KRSID,
			CourseName: schedule.CourseName,
			Reason:     "Schedule changed",
		})
	}
	s.invalidateDashboards(ctx)
	return nil
}

// GetSchedule returns a schedule by ID.
func (s *SchedulingService) GetSchedule(scheduleID string) (*models.Schedule, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	schedule, ok := s.schedules[scheduleID]
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("schedule %s not found", scheduleID))
	}
	return &schedule, nil
}

// ListSchedules returns every schedule in creation order.
func (s *SchedulingService) ListSchedules() []models.Schedule {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

// GetSchedulesByLecturer matches the lecturer name case-insensitively.
func (s *SchedulingService) GetSchedulesByLecturer(lecturerName string) []models.Schedule {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]models.Schedule, 0)
	for _, schedule := range s.snapshotLocked() {
		if strings.EqualFold(schedule.LecturerName, lecturerName) {
			result = append(result, schedule)
		}
	}
	return result
}

// GetSchedulesByRoom filters schedules assigned to the given room.
func (s *SchedulingService) GetSchedulesByRoom(roomID string) []models.Schedule {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]models.Schedule, 0)
	for _, schedule := range s.snapshotLocked() {
		if schedule.Room.ID == roomID {
			result = append(result, schedule)
		}
	}
	return result
}

// GetSchedulesByDay filters schedules on the given day.
func (s *SchedulingService) GetSchedulesByDay(day models.DayOfWeek) []models.Schedule {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]models.Schedule, 0)
	for _, schedule := range s.snapshotLocked() {
		if schedule.Day == day {
			result = append(result, schedule)
		}
	}
	return result
}

// GetConflicts returns the conflict list computed by the last mutation.
func (s *SchedulingService) GetConflicts() []models.Conflict {
	s.mu.RLock()
	defer s.mu.RUnlock()
	conflicts := make([]models.Conflict, len(s.conflicts))
	copy(conflicts, s.conflicts)
	return conflicts
}

// GetConflictsForSchedule returns conflicts where the schedule appears as
// either party.
func (s *SchedulingService) GetConflictsForSchedule(scheduleID string) []models.Conflict {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]models.Conflict, 0)
	for _, conflict := range s.conflicts {
		if conflict.Schedule1.ID == scheduleID ||
			(conflict.Schedule2 != nil && conflict.Schedule2.ID == scheduleID) {
			result = append(result, conflict)
		}
	}
	return result
}

// GetConflictSummary aggregates the current conflict snapshot.
func (s *SchedulingService) GetConflictSummary() models.ConflictSummary {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return SummarizeConflicts(s.conflicts)
}

func (s *SchedulingService) resolveRoomLocked(roomID string, numStudents int) (models.Room, error) {
	room, ok := s.rooms[roomID]
	if !ok {
		return models.Room{}, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("room %s not found", roomID))
	}
	if !room.CanAccommodate(numStudents) {
		return models.Room{}, appErrors.Clone(appErrors.ErrValidation,
			fmt.Sprintf("room capacity exceeded: %d > %d", numStudents, room.Capacity))
	}
	return room, nil
}

// recomputeAndPublishLocked rebuilds the whole conflict list and publishes
// CONFLICT_DETECTED per conflict. Caller must hold the write lock.
func (s *SchedulingService) recomputeAndPublishLocked() {
	start := s.now()
	s.conflicts = DetectConflicts(s.snapshotLocked())
	if s.metrics != nil {
		s.metrics.RecordConflictDetection(s.conflicts, time.Since(start))
	}
	if len(s.conflicts) > 0 {
		s.logger.Warn("conflicts detected", zap.Int("count", len(s.conflicts)))
	}
	for _, conflict := range s.conflicts {
		s.subject.Notify(models.EventConflictDetected, conflict.Payload())
	}
}

func (s *SchedulingService) snapshotLocked() []models.Schedule {
	schedules := make([]models.Schedule, 0, len(s.order))
	for _, id := range s.order {
		if schedule, ok := s.schedules[id]; ok {
			schedules = append(schedules, schedule)
		}
	}
	return schedules
}

func (s *SchedulingService) invalidateDashboards(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, "jadwal:dash:*"); err != nil {
		s.logger.Warn("dashboard cache invalidation failed", zap.Error(err))
	}
}

func parseDayAndSlot(day, start, end string) (models.DayOfWeek, models.TimeSlot, error) {
	parsedDay, err := models.ParseDay(day)
	if err != nil {
		return 0, models.TimeSlot{}, appErrors.Clone(appErrors.ErrValidation, err.Error())
	}
	startClock, err := models.ParseClock(start)
	if err != nil {
		return 0, models.TimeSlot{}, appErrors.Clone(appErrors.ErrValidation, err.Error())
	}
	endClock, err := models.ParseClock(end)
	if err != nil {
		return 0, models.TimeSlot{}, appErrors.Clone(appErrors.ErrValidation, err.Error())
	}
	slot, err := models.NewTimeSlot(startClock, endClock)
	if err != nil {
		return 0, models.TimeSlot{}, appErrors.Clone(appErrors.ErrValidation, err.Error())
	}
	return parsedDay, slot, nil
}
