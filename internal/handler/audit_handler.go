package handler

import (
	"net/http"

	"vendordocs/internal/middleware"
	"vendordocs/internal/permission"
	"vendordocs/internal/service"

	"github.com/gin-gonic/gin"

	"vendordocs/pkg/pagination"
	"vendordocs/pkg/response"
)

type AuditHandler struct {
	auditService service.AuditService
}

func NewAuditHandler(auditService service.AuditService) *AuditHandler {
	return &AuditHandler{auditService: auditService}
}

// RegisterRoutes binds the endpoints to the gin Engine or RouterGroup
func (h *AuditHandler) RegisterRoutes(router *gin.RouterGroup) {
	audit := router.Group("/audit", middleware.RequireCapability(permission.CapViewAuditTrail))
	{
		audit.GET("", h.ListAll)
		audit.GET("/:subjectId", h.ListForSubject)
	}
}

// ListAll handles GET /audit with pagination, newest first
// @Summary      Global audit feed
// @Description  Paginated feed of all audit events across subjects, newest first
// @Tags         audit
// @Produce      json
// @Security     BearerAuth
// @Param        page   query     int  false  "Page number (default 1)"
// @Param        limit  query     int  false  "Items per page (default 20)"
// @Success      200    {object}  response.Response{data=response.Listing}
// @Failure      403    {object}  response.Response
// @Router       /audit [get]
func (h *AuditHandler) ListAll(c *gin.Context) {
	p := pagination.Parse(c)

	events, total, err := h.auditService.ListAll(c.Request.Context(), p.Page, p.Limit)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.List(http.StatusOK, events, p.Meta(total)))
}

// ListForSubject handles GET /audit/:subjectId in chronological order
// @Summary      Subject audit trail
// @Description  Full ordered history for one subject (a document or login approval), oldest first; repeated reads return the same ordering
// @Tags         audit
// @Produce      json
// @Security     BearerAuth
// @Param        subjectId  path      string  true  "Subject ID"
// @Success      200        {object}  response.Response{data=[]service.AuditEventResponse}
// @Failure      403        {object}  response.Response
// @Router       /audit/{subjectId} [get]
func (h *AuditHandler) ListForSubject(c *gin.Context) {
	events, err := h.auditService.ListForSubject(c.Request.Context(), c.Param("subjectId"))
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, events))
}
