package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"umroh_travel_backend/internal/customers/service"
	"umroh_travel_backend/internal/customers/transport"
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
	msgInvalidID        = "invalid customer id"
)

func New(svc *service.Service, val *validator.Validator, policy *permissions.Policy) *Handler {
	return &Handler{svc: svc, val: val, policy: policy}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	read := h.policy.Require(permissions.CustomersRead)
	write := h.policy.Require(permissions.CustomersWrite)

	rg.GET("", read, h.List)
	rg.GET("/:id", read, h.GetByID)
	rg.PUT("/:id", write, h.Update)
	rg.GET("/:id/passport-check", read, h.CheckPassport)
}

func (h *Handler) List(c *gin.Context) {
	var req transport.ListCustomersRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, validator.FieldErrors(err))
		return
	}

	result, err := h.svc.List(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
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

func (h *Handler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidID, nil)
		return
	}

	var req transport.UpdateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, validator.FieldErrors(err))
		return
	}

	result, err := h.svc.Update(c.Request.Context(), id, req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// CheckPassport validates a draft expiry (?expiry=YYYY-MM-DD) or the stored
// one while staff edit the profile.
func (h *Handler) CheckPassport(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidID, nil)
		return
	}

	var req transport.PassportCheckRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, validator.FieldErrors(err))
		return
	}

	result, err := h.svc.CheckPassport(c.Request.Context(), id, req.Expiry)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, gin.H{"passportCheck": result})
}
