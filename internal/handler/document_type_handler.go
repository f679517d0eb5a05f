package handler

import (
	"net/http"

	"vendordocs/internal/middleware"
	"vendordocs/internal/permission"
	"vendordocs/internal/service"

	"github.com/gin-gonic/gin"

	"vendordocs/pkg/response"
)

type DocumentTypeHandler struct {
	typeService service.DocumentTypeService
}

func NewDocumentTypeHandler(typeService service.DocumentTypeService) *DocumentTypeHandler {
	return &DocumentTypeHandler{typeService: typeService}
}

// RegisterRoutes binds the endpoints to the gin Engine or RouterGroup
func (h *DocumentTypeHandler) RegisterRoutes(router *gin.RouterGroup) {
	types := router.Group("/document-types", middleware.Authenticated())
	{
		types.GET("", h.ListTypes)
		types.POST("", middleware.RequireCapability(permission.CapManageDocTypes), h.CreateType)
	}
}

// ListTypes handles GET /document-types
// @Summary      List document types
// @Description  Lists the document type catalog with requirement categories
// @Tags         document-types
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response{data=[]service.DocumentTypeResponse}
// @Failure      500  {object}  response.Response
// @Router       /document-types [get]
func (h *DocumentTypeHandler) ListTypes(c *gin.Context) {
	types, err := h.typeService.ListTypes(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, types))
}

// CreateType handles POST /document-types
// @Summary      Create document type
// @Description  Adds a document type to the catalog; category is fixed at creation
// @Tags         document-types
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      service.CreateDocumentTypeRequest  true  "Create Type Payload"
// @Success      201      {object}  response.Response{data=service.DocumentTypeResponse}
// @Failure      400      {object}  response.Response
// @Failure      403      {object}  response.Response
// @Router       /document-types [post]
func (h *DocumentTypeHandler) CreateType(c *gin.Context) {
	actor, ok := actorID(c)
	if !ok {
		return
	}

	var req service.CreateDocumentTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	created, err := h.typeService.CreateType(c.Request.Context(), actor, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, created))
}
