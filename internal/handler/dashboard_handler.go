package handler

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/akademix/jadwal-api/internal/dto"
	"github.com/akademix/jadwal-api/pkg/response"
)

type dashboardService interface {
	Summary(ctx context.Context) (*dto.DashboardSummary, bool, error)
	ConflictReport(ctx context.Context) (*dto.ConflictReport, bool, error)
	RoomSchedule(roomID string) (*dto.RoomSchedule, error)
	ExportConflictReport(ctx context.Context, format string) ([]byte, string, error)
}

// DashboardHandler wires the dashboard service to HTTP endpoints.
type DashboardHandler struct {
	service dashboardService
}

// NewDashboardHandler constructs the handler.
func NewDashboardHandler(service dashboardService) *DashboardHandler {
	return &DashboardHandler{service: service}
}

// Summary godoc
// @Summary Scheduling dashboard summary
// @Tags Dashboard
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /dashboard [get]
func (h *DashboardHandler) Summary(c *gin.Context) {
	start := time.Now()
	summary, cacheHit, err := h.service.Summary(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, summary, nil, requestMeta(start, cacheHit))
}

// ConflictReport godoc
// @Summary Detailed conflict report
// @Tags Dashboard
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /dashboard/conflicts [get]
func (h *DashboardHandler) ConflictReport(c *gin.Context) {
	start := time.Now()
	report, cacheHit, err := h.service.ConflictReport(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, report, nil, requestMeta(start, cacheHit))
}

// RoomSchedule godoc
// @Summary Weekly schedule for one room
// @Tags Dashboard
// @Produce json
// @Param roomId path string true "Room ID"
// @Success 200 {object} response.Envelope
// @Router /dashboard/rooms/{roomId} [get]
func (h *DashboardHandler) RoomSchedule(c *gin.Context) {
	view, err := h.service.RoomSchedule(c.Param("roomId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, view, nil)
}

// ExportConflicts godoc
// @Summary Download the conflict report
// @Tags Dashboard
// @Produce text/csv
// @Produce application/pdf
// @Param format query string false "csv (default) or pdf"
// @Success 200 {file} file
// @Router /dashboard/conflicts/export [get]
func (h *DashboardHandler) ExportConflicts(c *gin.Context) {
	format := c.DefaultQuery("format", "csv")
	payload, contentType, err := h.service.ExportConflictReport(c.Request.Context(), format)
	if err != nil {
		response.Error(c, err)
		return
	}
	filename := fmt.Sprintf("conflict-report-%s.%s", time.Now().UTC().Format("20060102-150405"), format)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, contentType, payload)
}

func requestMeta(start time.Time, cacheHit bool) map[string]interface{} {
	return map[string]interface{}{
		"cache_hit":          cacheHit,
		"processing_time_ms": time.Since(start).Milliseconds(),
	}
}
