package handler

import (
	"fmt"
	"net/http"

	"umroh_travel_backend/internal/leads/analytics"
	"umroh_travel_backend/internal/leads/transport"
	"umroh_travel_backend/internal/permissions"
	"umroh_travel_backend/platform/httpkit"
	"umroh_travel_backend/platform/validator"

	"github.com/gin-gonic/gin"
)

const defaultPeriodMonths = 3

// AnalyticsHandler serves the lead funnel dashboard.
type AnalyticsHandler struct {
	svc    *analytics.Service
	val    *validator.Validator
	policy *permissions.Policy
}

func NewAnalytics(svc *analytics.Service, val *validator.Validator, policy *permissions.Policy) *AnalyticsHandler {
	return &AnalyticsHandler{svc: svc, val: val, policy: policy}
}

func (h *AnalyticsHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.Use(h.policy.Require(permissions.AnalyticsRead))
	rg.GET("", h.Report)
	rg.GET("/export/sources.csv", h.ExportSources)
	rg.GET("/export/trend.csv", h.ExportTrend)
}

func (h *AnalyticsHandler) Report(c *gin.Context) {
	report, ok := h.load(c)
	if !ok {
		return
	}
	httpkit.OK(c, report)
}

func (h *AnalyticsHandler) ExportSources(c *gin.Context) {
	report, ok := h.load(c)
	if !ok {
		return
	}
	writeCSV(c, fmt.Sprintf("lead-sources-%dm.csv", report.PeriodMonths), func() error {
		return analytics.WriteSourceCSV(c.Writer, report)
	})
}

func (h *AnalyticsHandler) ExportTrend(c *gin.Context) {
	report, ok := h.load(c)
	if !ok {
		return
	}
	writeCSV(c, fmt.Sprintf("lead-trend-%dm.csv", report.PeriodMonths), func() error {
		return analytics.WriteTrendCSV(c.Writer, report)
	})
}

func (h *AnalyticsHandler) load(c *gin.Context) (analytics.Report, bool) {
	var req transport.AnalyticsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return analytics.Report{}, false
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, validator.FieldErrors(err))
		return analytics.Report{}, false
	}
	if req.Months == 0 {
		req.Months = defaultPeriodMonths
	}

	report, err := h.svc.Report(c.Request.Context(), req.Months)
	if httpkit.HandleError(c, err) {
		return analytics.Report{}, false
	}
	return report, true
}

func writeCSV(c *gin.Context, filename string, write func() error) {
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Status(http.StatusOK)
	if err := write(); err != nil {
		_ = c.Error(err)
	}
}
