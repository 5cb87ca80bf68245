package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"umroh_travel_backend/internal/documents/service"
	"umroh_travel_backend/internal/documents/transport"
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
)

func New(svc *service.Service, val *validator.Validator, policy *permissions.Policy) *Handler {
	return &Handler{svc: svc, val: val, policy: policy}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.policy.Require(permissions.BookingsRead), h.List)
	rg.GET("/:id/download", h.policy.Require(permissions.BookingsRead), h.Download)
	rg.POST("", h.policy.Require(permissions.DocumentsGenerate), h.Generate)
}

func (h *Handler) Generate(c *gin.Context) {
	var req transport.GenerateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, validator.FieldErrors(err))
		return
	}

	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	result, err := h.svc.Generate(c.Request.Context(), req, identity.UserID())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.JSON(c, http.StatusCreated, result)
}

// List lists documents of ?bookingId=.
func (h *Handler) List(c *gin.Context) {
	var req transport.ListDocumentsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, validator.FieldErrors(err))
		return
	}

	items, err := h.svc.ListByBooking(c.Request.Context(), uuid.MustParse(req.BookingID))
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, gin.H{"items": items})
}

func (h *Handler) Download(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}

	result, err := h.svc.DownloadURL(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}
