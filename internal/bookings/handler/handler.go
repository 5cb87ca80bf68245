package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"umroh_travel_backend/internal/bookings/service"
	"umroh_travel_backend/internal/bookings/transport"
	"umroh_travel_backend/internal/permissions"
	"umroh_travel_backend/platform/httpkit"
	"umroh_travel_backend/platform/validator"
)

type Handler struct {
	svc    *service.Service
	val    *validator.Validator
	policy *permissions.Policy
}

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
	msgInvalidID        = "invalid booking id"
)

func New(svc *service.Service, val *validator.Validator, policy *permissions.Policy) *Handler {
	return &Handler{svc: svc, val: val, policy: policy}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	read := h.policy.Require(permissions.BookingsRead)

	rg.GET("", read, h.ListByCustomer)
	rg.GET("/:id", read, h.GetByID)
	rg.POST("/:id/payment-proof-url", h.policy.Require(permissions.BookingsPayment), h.PaymentProofUploadURL)
}

// ListByCustomer lists bookings of ?customerId=.
func (h *Handler) ListByCustomer(c *gin.Context) {
	var req transport.ListBookingsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, validator.FieldErrors(err))
		return
	}

	items, err := h.svc.ListByCustomer(c.Request.Context(), uuid.MustParse(req.CustomerID))
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, gin.H{"items": items})
}

func (h *Handler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidID, nil)
		return
	}

	result, err := h.svc.Get(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

func (h *Handler) PaymentProofUploadURL(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidID, nil)
		return
	}

	var req transport.PaymentProofURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, validator.FieldErrors(err))
		return
	}

	result, err := h.svc.PaymentProofUploadURL(c.Request.Context(), id, req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}
