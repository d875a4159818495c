package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/akademix/jadwal-api/internal/dto"
	appErrors "github.com/akademix/jadwal-api/pkg/errors"
	"github.com/akademix/jadwal-api/pkg/response"
)

type suggestionService interface {
	Suggest(req dto.SuggestionRequest) ([]dto.Suggestion, error)
}

// SuggestionHandler exposes the alternative-slot suggestion engine.
type SuggestionHandler struct {
	service   suggestionService
	validator *validator.Validate
}

// NewSuggestionHandler constructs the handler.
func NewSuggestionHandler(service suggestionService, validate *validator.Validate) *SuggestionHandler {
	if validate == nil {
		validate = validator.New()
	}
	return &SuggestionHandler{service: service, validator: validate}
}

// Suggest godoc
// @Summary Suggest alternative slots for a conflicted schedule
// @Tags Suggestions
// @Accept json
// @Produce json
// @Param payload body dto.SuggestionRequest true "Candidate slots"
// @Success 200 {object} response.Envelope
// @Router /suggestions [post]
func (h *SuggestionHandler) Suggest(c *gin.Context) {
	var req dto.SuggestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid request body"))
		return
	}
	if err := h.validator.Struct(req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid suggestion request"))
		return
	}
	suggestions, err := h.service.Suggest(req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, suggestions, nil)
}
