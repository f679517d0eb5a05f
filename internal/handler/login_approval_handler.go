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

type LoginApprovalHandler struct {
	approvalService service.LoginApprovalService
}

func NewLoginApprovalHandler(approvalService service.LoginApprovalService) *LoginApprovalHandler {
	return &LoginApprovalHandler{approvalService: approvalService}
}

// RegisterRoutes binds the endpoints to the gin Engine or RouterGroup
func (h *LoginApprovalHandler) RegisterRoutes(router *gin.RouterGroup) {
	approvals := router.Group("/login-approvals", middleware.RequireCapability(permission.CapApproveLogins))
	{
		approvals.GET("", h.ListPending)
		approvals.POST("/:id/approve", h.Approve)
		approvals.POST("/:id/reject", h.Reject)
	}
}

// ListPending handles GET /login-approvals
// @Summary      List pending login approvals
// @Description  Lists pending vendor login requests; consultants only see requests from vendors assigned to them
// @Tags         login-approvals
// @Produce      json
// @Security     BearerAuth
// @Param        page   query     int  false  "Page number (default 1)"
// @Param        limit  query     int  false  "Items per page (default 20)"
// @Success      200    {object}  response.Response{data=response.Listing}
// @Failure      403    {object}  response.Response
// @Router       /login-approvals [get]
func (h *LoginApprovalHandler) ListPending(c *gin.Context) {
	actor, ok := actorID(c)
	if !ok {
		return
	}

	p := pagination.Parse(c)
	approvals, total, err := h.approvalService.ListPending(c.Request.Context(), actor, p.Page, p.Limit)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.List(http.StatusOK, approvals, p.Meta(total)))
}

// Approve handles POST /login-approvals/:id/approve
// @Summary      Approve a login request
// @Description  Approves a pending vendor login request; the decision is final
// @Tags         login-approvals
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Approval ID"
// @Success      200  {object}  response.Response{data=service.LoginApprovalResponse}
// @Failure      403  {object}  response.Response
// @Failure      409  {object}  response.Response
// @Failure      410  {object}  response.Response
// @Router       /login-approvals/{id}/approve [post]
func (h *LoginApprovalHandler) Approve(c *gin.Context) {
	h.decide(c, true)
}

// Reject handles POST /login-approvals/:id/reject
// @Summary      Reject a login request
// @Description  Rejects a pending vendor login request; the decision is final
// @Tags         login-approvals
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Approval ID"
// @Success      200  {object}  response.Response{data=service.LoginApprovalResponse}
// @Failure      403  {object}  response.Response
// @Failure      409  {object}  response.Response
// @Failure      410  {object}  response.Response
// @Router       /login-approvals/{id}/reject [post]
func (h *LoginApprovalHandler) Reject(c *gin.Context) {
	h.decide(c, false)
}

func (h *LoginApprovalHandler) decide(c *gin.Context, approve bool) {
	actor, ok := actorID(c)
	if !ok {
		return
	}

	decided, err := h.approvalService.Decide(c.Request.Context(), c.Param("id"), approve, actor)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, decided))
}
