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

type VendorHandler struct {
	vendorService service.VendorService
}

// NewVendorHandler sets up the routing dependencies for Vendor endpoints
func NewVendorHandler(vendorService service.VendorService) *VendorHandler {
	return &VendorHandler{vendorService: vendorService}
}

// RegisterRoutes binds the endpoints to the gin Engine or RouterGroup
func (h *VendorHandler) RegisterRoutes(router *gin.RouterGroup) {
	vendors := router.Group("/vendors", middleware.Authenticated())
	{
		vendors.GET("", h.ListVendors)
		vendors.GET("/:id", h.GetVendor)
		vendors.POST("", middleware.RequireCapability(permission.CapManageVendors), h.CreateVendor)
		vendors.PUT("/:id", middleware.RequireCapability(permission.CapManageVendors), h.UpdateVendor)
		vendors.PUT("/:id/consultant", middleware.RequireCapability(permission.CapManageVendors), h.AssignConsultant)
	}
}

// CreateVendor handles POST /vendors
// @Summary      Create a vendor
// @Description  Registers a new vendor company
// @Tags         vendors
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      service.CreateVendorRequest  true  "Create Vendor Payload"
// @Success      201      {object}  response.Response{data=service.VendorResponse}
// @Failure      400      {object}  response.Response
// @Failure      403      {object}  response.Response
// @Router       /vendors [post]
func (h *VendorHandler) CreateVendor(c *gin.Context) {
	actor, ok := actorID(c)
	if !ok {
		return
	}

	var req service.CreateVendorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	vendor, err := h.vendorService.CreateVendor(c.Request.Context(), actor, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, vendor))
}

// ListVendors handles GET /vendors scoped to the caller's role
// @Summary      List vendors
// @Description  Lists vendors; consultants only see vendors assigned to them
// @Tags         vendors
// @Produce      json
// @Security     BearerAuth
// @Param        page   query     int  false  "Page number (default 1)"
// @Param        limit  query     int  false  "Items per page (default 20)"
// @Success      200    {object}  response.Response{data=response.Listing}
// @Failure      403    {object}  response.Response
// @Router       /vendors [get]
func (h *VendorHandler) ListVendors(c *gin.Context) {
	actor, ok := actorID(c)
	if !ok {
		return
	}

	p := pagination.Parse(c)
	vendors, total, err := h.vendorService.ListVendors(c.Request.Context(), actor, p.Page, p.Limit)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.List(http.StatusOK, vendors, p.Meta(total)))
}

// GetVendor handles GET /vendors/:id
// @Summary      Get vendor
// @Description  Fetch a single vendor, subject to assignment scoping for consultants
// @Tags         vendors
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Vendor ID"
// @Success      200  {object}  response.Response{data=service.VendorResponse}
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /vendors/{id} [get]
func (h *VendorHandler) GetVendor(c *gin.Context) {
	actor, ok := actorID(c)
	if !ok {
		return
	}

	vendor, err := h.vendorService.GetVendor(c.Request.Context(), c.Param("id"), actor)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, vendor))
}

// UpdateVendor handles PUT /vendors/:id
// @Summary      Update vendor
// @Description  Updates a vendor's contact and company details
// @Tags         vendors
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                       true  "Vendor ID"
// @Param        payload  body      service.UpdateVendorRequest  true  "Update Vendor Payload"
// @Success      200      {object}  response.Response{data=service.VendorResponse}
// @Failure      400      {object}  response.Response
// @Failure      403      {object}  response.Response
// @Router       /vendors/{id} [put]
func (h *VendorHandler) UpdateVendor(c *gin.Context) {
	actor, ok := actorID(c)
	if !ok {
		return
	}

	var req service.UpdateVendorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload"))
		return
	}

	vendor, err := h.vendorService.UpdateVendor(c.Request.Context(), c.Param("id"), actor, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, vendor))
}

// AssignConsultant handles PUT /vendors/:id/consultant
// @Summary      Assign consultant
// @Description  Assigns (or unassigns, with a null consultant_id) a consultant to the vendor
// @Tags         vendors
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                            true  "Vendor ID"
// @Param        payload  body      service.AssignConsultantRequest   true  "Assignment Payload"
// @Success      200      {object}  response.Response{data=service.VendorResponse}
// @Failure      400      {object}  response.Response
// @Failure      403      {object}  response.Response
// @Router       /vendors/{id}/consultant [put]
func (h *VendorHandler) AssignConsultant(c *gin.Context) {
	actor, ok := actorID(c)
	if !ok {
		return
	}

	var req service.AssignConsultantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload"))
		return
	}

	vendor, err := h.vendorService.AssignConsultant(c.Request.Context(), c.Param("id"), actor, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, vendor))
}
