package payment

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
	rg.POST("/payments/redsys/initiate", h.Initiate)
	rg.POST("/payments/redsys/notification", h.Notification)
	rg.POST("/payments/verify", h.Verify)
}

func (h *Handler) Initiate(c *gin.Context) {
	var req InitiateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	res, err := h.service.Initiate(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotConfigured):
			response.Error(c, http.StatusServiceUnavailable, "GATEWAY_NOT_CONFIGURED", "Payment gateway is not configured")
		case errors.Is(err, ErrNotFound):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Booking not found")
		case errors.Is(err, ErrValidation):
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		case errors.Is(err, ErrAmountMismatch):
			response.Error(c, http.StatusBadRequest, "AMOUNT_MISMATCH", err.Error())
		default:
			_ = c.Error(err)
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to initiate payment")
		}
		return
	}

	response.Success(c, http.StatusCreated, res)
}

// Notification is the gateway's server-to-server callback. It posts form
// fields, not JSON, and expects a 2xx once the message is accepted. A bad
// signature gets 403 so the gateway logs the rejection.
func (h *Handler) Notification(c *gin.Context) {
	var req NotificationRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Missing notification fields")
		return
	}

	res, err := h.service.HandleNotification(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidSignature):
			response.Error(c, http.StatusForbidden, "INVALID_SIGNATURE", "Signature validation failed")
		case errors.Is(err, ErrNotConfigured):
			response.Error(c, http.StatusServiceUnavailable, "GATEWAY_NOT_CONFIGURED", "Payment gateway is not configured")
		case errors.Is(err, ErrNotFound):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Unknown order number")
		case errors.Is(err, ErrAmountMismatch):
			response.Error(c, http.StatusBadRequest, "AMOUNT_MISMATCH", "Notification amount does not match the payment")
		case errors.Is(err, ErrValidation):
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		default:
			_ = c.Error(err)
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to process notification")
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"status":       "ok",
		"order_number": res.Payment.OrderNumber,
	})
}

func (h *Handler) Verify(c *gin.Context) {
	var req VerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "order_number and response_code are required")
		return
	}

	resp, res, err := h.service.Verify(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidSignature):
			response.Error(c, http.StatusForbidden, "INVALID_SIGNATURE", "Signature validation failed")
		case errors.Is(err, ErrNotFound):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Unknown order number")
		default:
			_ = c.Error(err)
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to verify payment")
		}
		return
	}

	if res.Conflict {
		response.ErrorWithDetails(c, http.StatusConflict, "PAYMENT_CONFLICT", "Payment received for dates that are no longer available", resp)
		return
	}

	response.Success(c, http.StatusOK, resp)
}
