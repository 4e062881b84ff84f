package admin

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"camperrent/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/blocked-dates", h.ListBlockedDates)
	rg.POST("/blocked-dates", h.CreateBlockedDate)
	rg.DELETE("/blocked-dates/:id", h.DeleteBlockedDate)

	rg.GET("/seasons", h.ListSeasons)
	rg.POST("/seasons", h.CreateSeason)
	rg.PUT("/seasons/:id", h.UpdateSeason)
	rg.DELETE("/seasons/:id", h.DeleteSeason)
}

func (h *Handler) CreateBlockedDate(c *gin.Context) {
	var req CreateBlockedDateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	b, err := h.service.CreateBlockedDate(c.Request.Context(), req, c.GetString("user_id"))
	if err != nil {
		h.writeError(c, err, "Failed to create blocked date")
		return
	}
	response.Success(c, http.StatusCreated, b)
}

func (h *Handler) ListBlockedDates(c *gin.Context) {
	blocks, err := h.service.ListBlockedDates(c.Request.Context(), c.Query("vehicle_id"))
	if err != nil {
		h.writeError(c, err, "Failed to list blocked dates")
		return
	}
	response.Success(c, http.StatusOK, blocks)
}

func (h *Handler) DeleteBlockedDate(c *gin.Context) {
	if err := h.service.DeleteBlockedDate(c.Request.Context(), c.Param("id")); err != nil {
		h.writeError(c, err, "Failed to delete blocked date")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

func (h *Handler) CreateSeason(c *gin.Context) {
	var req CreateSeasonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	season, err := h.service.CreateSeason(c.Request.Context(), req)
	if err != nil {
		h.writeError(c, err, "Failed to create season")
		return
	}
	response.Success(c, http.StatusCreated, season)
}

func (h *Handler) UpdateSeason(c *gin.Context) {
	var req UpdateSeasonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	season, err := h.service.UpdateSeason(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.writeError(c, err, "Failed to update season")
		return
	}
	response.Success(c, http.StatusOK, season)
}

func (h *Handler) DeleteSeason(c *gin.Context) {
	if err := h.service.DeleteSeason(c.Request.Context(), c.Param("id")); err != nil {
		h.writeError(c, err, "Failed to delete season")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

func (h *Handler) ListSeasons(c *gin.Context) {
	seasons, err := h.service.ListSeasons(c.Request.Context())
	if err != nil {
		h.writeError(c, err, "Failed to list seasons")
		return
	}
	response.Success(c, http.StatusOK, seasons)
}

func (h *Handler) writeError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", err.Error())
	default:
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", fallback)
	}
}
