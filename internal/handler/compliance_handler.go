package handler

import (
	"net/http"
	"time"

	"vendordocs/internal/middleware"
	"vendordocs/internal/permission"
	"vendordocs/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"vendordocs/pkg/response"
)

type ComplianceHandler struct {
	complianceService service.ComplianceService
}

func NewComplianceHandler(complianceService service.ComplianceService) *ComplianceHandler {
	return &ComplianceHandler{complianceService: complianceService}
}

// RegisterRoutes binds the endpoints to the gin Engine or RouterGroup
func (h *ComplianceHandler) RegisterRoutes(router *gin.RouterGroup) {
	compliance := router.Group("/compliance", middleware.RequireCapability(permission.CapViewComplianceRpts))
	{
		compliance.GET("/vendors/:id", h.VendorStatus)
		compliance.GET("/report", h.FleetReport)
	}
}

// asOf parses an optional as_of query parameter, defaulting to now.
func asOf(c *gin.Context) (time.Time, bool) {
	raw := c.Query("as_of")
	if raw == "" {
		return time.Now().UTC(), true
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid as_of date, expected RFC3339 or YYYY-MM-DD"))
	return time.Time{}, false
}

// VendorStatus handles GET /compliance/vendors/:id
// @Summary      Vendor compliance status
// @Description  Computes the vendor's compliance standing from its latest approved documents of each required type
// @Tags         compliance
// @Produce      json
// @Security     BearerAuth
// @Param        id     path      string  true   "Vendor ID"
// @Param        as_of  query     string  false  "Evaluation date (RFC3339 or YYYY-MM-DD, default now)"
// @Success      200    {object}  response.Response{data=service.VendorComplianceResult}
// @Failure      403    {object}  response.Response
// @Failure      404    {object}  response.Response
// @Router       /compliance/vendors/{id} [get]
func (h *ComplianceHandler) VendorStatus(c *gin.Context) {
	vendorID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid vendor ID"))
		return
	}

	at, ok := asOf(c)
	if !ok {
		return
	}

	result, err := h.complianceService.ComputeVendorStatus(c.Request.Context(), vendorID, at)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, result))
}

// FleetReport handles GET /compliance/report
// @Summary      Fleet compliance report
// @Description  Computes compliance for every active vendor plus fleet aggregates
// @Tags         compliance
// @Produce      json
// @Security     BearerAuth
// @Param        as_of  query     string  false  "Evaluation date (RFC3339 or YYYY-MM-DD, default now)"
// @Success      200    {object}  response.Response{data=service.FleetComplianceReport}
// @Failure      403    {object}  response.Response
// @Router       /compliance/report [get]
func (h *ComplianceHandler) FleetReport(c *gin.Context) {
	at, ok := asOf(c)
	if !ok {
		return
	}

	report, err := h.complianceService.ComputeFleetReport(c.Request.Context(), at)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, report))
}
