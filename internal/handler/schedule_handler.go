package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/akademix/jadwal-api/internal/models"
	"github.com/akademix/jadwal-api/internal/service"
	appErrors "github.com/akademix/jadwal-api/pkg/errors"
	"github.com/akademix/jadwal-api/pkg/response"
)

type scheduleService interface {
	CreateSchedule(ctx context.Context, req service.CreateScheduleRequest) (*models.Schedule, error)
	UpdateSchedule(ctx context.Context, scheduleID string, req service.UpdateScheduleRequest) (*models.Schedule, error)
	DeleteSchedule(ctx context.Context, scheduleID string) error
	GetSchedule(scheduleID string) (*models.Schedule, error)
	ListSchedules() []models.Schedule
	GetSchedulesByLecturer(lecturerName string) []models.Schedule
	GetSchedulesByRoom(roomID string) []models.Schedule
	GetSchedulesByDay(day models.DayOfWeek) []models.Schedule
}

// ScheduleHandler exposes schedule CRUD and filtered listings.
type ScheduleHandler struct {
	service scheduleService
}

// NewScheduleHandler constructs the handler.
func NewScheduleHandler(service scheduleService) *ScheduleHandler {
	return &ScheduleHandler{service: service}
}

// Create godoc
// @Summary Create a schedule
// @Tags Schedules
// @Accept json
// @Produce json
// @Param payload body service.CreateScheduleRequest true "Schedule payload"
// @Success 201 {object} response.Envelope
// @Router /schedules [post]
func (h *ScheduleHandler) Create(c *gin.Context) {
	var req service.CreateScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid request body"))
		return
	}
	schedule, err := h.service.CreateSchedule(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, schedule)
}

// Update godoc
// @Summary Replace a schedule
// @Tags Schedules
// @Accept json
// @Produce json
// @Param scheduleId path string true "Schedule ID"
// @Param payload body service.UpdateScheduleRequest true "Schedule payload"
// @Success 200 {object} response.Envelope
// @Router /schedules/{scheduleId} [put]
func (h *ScheduleHandler) Update(c *gin.Context) {
	var req service.UpdateScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid request body"))
		return
	}
	schedule, err := h.service.UpdateSchedule(c.Request.Context(), c.Param("scheduleId"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, schedule, nil)
}

// Delete godoc
// @Summary Delete a schedule
// @Tags Schedules
// @Param scheduleId path string true "Schedule ID"
// @Success 204
// @Router /schedules/{scheduleId} [delete]
func (h *ScheduleHandler) Delete(c *gin.Context) {
	if err := h.service.DeleteSchedule(c.Request.Context(), c.Param("scheduleId")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Get godoc
// @Summary Get a schedule by ID
// @Tags Schedules
// @Produce json
// @Param scheduleId path string true "Schedule ID"
// @Success 200 {object} response.Envelope
// @Router /schedules/{scheduleId} [get]
func (h *ScheduleHandler) Get(c *gin.Context) {
	schedule, err := h.service.GetSchedule(c.Param("scheduleId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, schedule, nil)
}

// List godoc
// @Summary List schedules, optionally filtered
// @Description Filters are mutually exclusive; the first of lecturer, room, day wins.
// @Tags Schedules
// @Produce json
// @Param lecturer query string false "Lecturer name (case-insensitive)"
// @Param room query string false "Room ID"
// @Param day query string false "Day of week name"
// @Success 200 {object} response.Envelope
// @Router /schedules [get]
func (h *ScheduleHandler) List(c *gin.Context) {
	if lecturer := strings.TrimSpace(c.Query("lecturer")); lecturer != "" {
		response.JSON(c, http.StatusOK, h.service.GetSchedulesByLecturer(lecturer), nil)
		return
	}
	if roomID := strings.TrimSpace(c.Query("room")); roomID != "" {
		response.JSON(c, http.StatusOK, h.service.GetSchedulesByRoom(roomID), nil)
		return
	}
	if dayName := strings.TrimSpace(c.Query("day")); dayName != "" {
		day, err := models.ParseDay(dayName)
		if err != nil {
			response.Error(c, appErrors.Clone(appErrors.ErrValidation, err.Error()))
			return
		}
		response.JSON(c, http.StatusOK, h.service.GetSchedulesByDay(day), nil)
		return
	}
	response.JSON(c, http.StatusOK, h.service.ListSchedules(), nil)
}
