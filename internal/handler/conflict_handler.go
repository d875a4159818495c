package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/akademix/jadwal-api/internal/models"
	"github.com/akademix/jadwal-api/pkg/response"
)

type conflictReader interface {
	GetConflicts() []models.Conflict
	GetConflictsForSchedule(scheduleID string) []models.Conflict
	GetConflictSummary() models.ConflictSummary
}

// ConflictHandler exposes the current conflict snapshot.
type ConflictHandler struct {
	service conflictReader
}

// NewConflictHandler constructs the handler.
func NewConflictHandler(service conflictReader) *ConflictHandler {
	return &ConflictHandler{service: service}
}

// List godoc
// @Summary List all current conflicts
// @Tags Conflicts
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /conflicts [get]
func (h *ConflictHandler) List(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.service.GetConflicts(), nil)
}

// Summary godoc
// @Summary Aggregate conflict counts
// @Tags Conflicts
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /conflicts/summary [get]
func (h *ConflictHandler) Summary(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.service.GetConflictSummary(), nil)
}

// ForSchedule godoc
// @Summary Conflicts involving one schedule
// @Tags Conflicts
// @Produce json
// @Param scheduleId path string true "Schedule ID"
// @Success 200 {object} response.Envelope
// @Router /schedules/{scheduleId}/conflicts [get]
func (h *ConflictHandler) ForSchedule(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.service.GetConflictsForSchedule(c.Param("scheduleId")), nil)
}
