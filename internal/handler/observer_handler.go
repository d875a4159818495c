package handler

import (
	"net/http"
	"sort"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/akademix/jadwal-api/internal/dto"
	"github.com/akademix/jadwal-api/internal/notify"
	appErrors "github.com/akademix/jadwal-api/pkg/errors"
	"github.com/akademix/jadwal-api/pkg/response"
)

type observerRegistry interface {
	Attach(observer notify.Observer)
	Detach(observer notify.Observer)
}

// ObserverHandler manages role-based notification subscriptions. Registered
// observers are kept by ID so they can be detached later.
type ObserverHandler struct {
	registry  observerRegistry
	validator *validator.Validate
	logger    *zap.Logger

	mu        sync.Mutex
	observers map[string]*notify.RoleObserver
}

// NewObserverHandler constructs the handler.
func NewObserverHandler(registry observerRegistry, validate *validator.Validate, logger *zap.Logger) *ObserverHandler {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ObserverHandler{
		registry:  registry,
		validator: validate,
		logger:    logger,
		observers: make(map[string]*notify.RoleObserver),
	}
}

// Register godoc
// @Summary Subscribe an observer to schedule events
// @Tags Observers
// @Accept json
// @Produce json
// @Param payload body dto.RegisterObserverRequest true "Observer payload"
// @Success 201 {object} response.Envelope
// @Router /observers [post]
func (h *ObserverHandler) Register(c *gin.Context) {
	var req dto.RegisterObserverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid request body"))
		return
	}
	if err := h.validator.Struct(req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid observer payload"))
		return
	}

	observer := notify.NewRoleObserver(uuid.NewString(), notify.Role(req.Role), req.Name, req.Email, h.logger)
	h.registry.Attach(observer)

	h.mu.Lock()
	h.observers[observer.ID] = observer
	h.mu.Unlock()

	response.Created(c, dto.ObserverRegistration{
		ObserverID: observer.ID,
		Role:       req.Role,
		Name:       req.Name,
		Email:      req.Email,
	})
}

// Unregister godoc
// @Summary Remove a previously registered observer
// @Tags Observers
// @Param observerId path string true "Observer ID"
// @Success 204
// @Router /observers/{observerId} [delete]
func (h *ObserverHandler) Unregister(c *gin.Context) {
	observerID := c.Param("observerId")

	h.mu.Lock()
	observer, ok := h.observers[observerID]
	if ok {
		delete(h.observers, observerID)
	}
	h.mu.Unlock()

	if !ok {
		response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "observer not found"))
		return
	}
	h.registry.Detach(observer)
	response.NoContent(c)
}

// List godoc
// @Summary List registered observers
// @Tags Observers
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /observers [get]
func (h *ObserverHandler) List(c *gin.Context) {
	h.mu.Lock()
	registrations := make([]dto.ObserverRegistration, 0, len(h.observers))
	for _, observer := range h.observers {
		registrations = append(registrations, dto.ObserverRegistration{
			ObserverID: observer.ID,
			Role:       string(observer.Role),
			Name:       observer.Name,
			Email:      observer.Email,
		})
	}
	h.mu.Unlock()

	sort.Slice(registrations, func(i, j int) bool {
		return registrations[i].ObserverID < registrations[j].ObserverID
	})
	response.JSON(c, http.StatusOK, registrations, nil)
}
