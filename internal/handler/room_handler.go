package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/akademix/jadwal-api/internal/models"
	"github.com/akademix/jadwal-api/internal/service"
	appErrors "github.com/akademix/jadwal-api/pkg/errors"
	"github.com/akademix/jadwal-api/pkg/response"
)

type roomService interface {
	AddRoom(ctx context.Context, req service.AddRoomRequest) (models.Room, error)
	GetRoom(roomID string) (models.Room, error)
	ListRooms() []models.Room
}

// RoomHandler exposes the room registry over HTTP.
type RoomHandler struct {
	service roomService
}

// NewRoomHandler constructs the handler.
func NewRoomHandler(service roomService) *RoomHandler {
	return &RoomHandler{service: service}
}

// Create godoc
// @Summary Register a room
// @Tags Rooms
// @Accept json
// @Produce json
// @Param payload body service.AddRoomRequest true "Room payload"
// @Success 201 {object} response.Envelope
// @Router /rooms [post]
func (h *RoomHandler) Create(c *gin.Context) {
	var req service.AddRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid request body"))
		return
	}
	room, err := h.service.AddRoom(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, room)
}

// Get godoc
// @Summary Get a room by ID
// @Tags Rooms
// @Produce json
// @Param roomId path string true "Room ID"
// @Success 200 {object} response.Envelope
// @Router /rooms/{roomId} [get]
func (h *RoomHandler) Get(c *gin.Context) {
	room, err := h.service.GetRoom(c.Param("roomId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, room, nil)
}

// List godoc
// @Summary List all rooms
// @Tags Rooms
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /rooms [get]
func (h *RoomHandler) List(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.service.ListRooms(), nil)
}
