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

type DocumentHandler struct {
	docService service.DocumentService
}

// NewDocumentHandler sets up the routing dependencies for Document endpoints
func NewDocumentHandler(docService service.DocumentService) *DocumentHandler {
	return &DocumentHandler{docService: docService}
}

// RegisterRoutes binds the endpoints to the gin Engine or RouterGroup
func (h *DocumentHandler) RegisterRoutes(router *gin.RouterGroup) {
	docs := router.Group("/documents", middleware.Authenticated())
	{
		docs.POST("", middleware.RequireCapability(permission.CapCreateSubmissions), h.CreateDocument)
		docs.GET("", h.ListDocuments)
		docs.GET("/:id", h.GetDocument)
		docs.POST("/:id/submit", middleware.RequireCapability(permission.CapCreateSubmissions), h.Submit)
		docs.POST("/:id/review", middleware.RequireCapability(permission.CapConsultantReview), h.BeginReview)
		docs.POST("/:id/approve", h.Approve)
		docs.POST("/:id/reject", middleware.RequireCapability(permission.CapRejectDocuments), h.Reject)
		docs.POST("/:id/resubmit", middleware.RequireCapability(permission.CapResubmitDocuments), h.Resubmit)
		docs.POST("/:id/comments", middleware.RequireCapability(permission.CapCommentDocuments), h.Comment)
	}
}

// CreateDocument handles POST /documents
// @Summary      Create a document
// @Description  Creates a draft (or immediately submitted) document for the caller's vendor
// @Tags         documents
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      service.CreateDocumentRequest  true  "Create Document Payload"
// @Success      201      {object}  response.Response{data=service.DocumentResponse}
// @Failure      400      {object}  response.Response
// @Failure      403      {object}  response.Response
// @Router       /documents [post]
func (h *DocumentHandler) CreateDocument(c *gin.Context) {
	actor, ok := actorID(c)
	if !ok {
		return
	}

	var req service.CreateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	doc, err := h.docService.CreateDocument(c.Request.Context(), actor, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, doc))
}

// ListDocuments handles GET /documents scoped to the caller's role
// @Summary      List documents
// @Description  Lists documents visible to the caller: vendors see their own, consultants their assigned vendors, verifiers and approvers everything except drafts
// @Tags         documents
// @Produce      json
// @Security     BearerAuth
// @Param        status     query     string  false  "Filter by status"
// @Param        vendor_id  query     string  false  "Filter by vendor"
// @Param        type_id    query     string  false  "Filter by document type"
// @Param        page       query     int     false  "Page number (default 1)"
// @Param        limit      query     int     false  "Items per page (default 20)"
// @Success      200        {object}  response.Response{data=response.Listing}
// @Failure      403        {object}  response.Response
// @Router       /documents [get]
func (h *DocumentHandler) ListDocuments(c *gin.Context) {
	actor, ok := actorID(c)
	if !ok {
		return
	}

	p := pagination.Parse(c)
	filter := service.DocumentFilter{
		Status:   c.Query("status"),
		VendorID: c.Query("vendor_id"),
		TypeID:   c.Query("type_id"),
		Page:     p.Page,
		Limit:    p.Limit,
	}

	docs, total, err := h.docService.ListDocuments(c.Request.Context(), actor, filter)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.List(http.StatusOK, docs, p.Meta(total)))
}

// GetDocument handles GET /documents/:id including the audit history
// @Summary      Get document
// @Description  Fetch a single document with its files and audit history, subject to ownership and assignment scoping
// @Tags         documents
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Document ID"
// @Success      200  {object}  response.Response{data=service.DocumentDetailResponse}
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /documents/{id} [get]
func (h *DocumentHandler) GetDocument(c *gin.Context) {
	actor, ok := actorID(c)
	if !ok {
		return
	}

	doc, err := h.docService.GetDocument(c.Request.Context(), c.Param("id"), actor)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, doc))
}

// Submit handles POST /documents/:id/submit moving a draft into review intake
// @Summary      Submit a draft
// @Description  Moves a draft document to pending, making it visible to reviewers
// @Tags         documents
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Document ID"
// @Success      200  {object}  response.Response{data=service.DocumentResponse}
// @Failure      403  {object}  response.Response
// @Failure      409  {object}  response.Response
// @Router       /documents/{id}/submit [post]
func (h *DocumentHandler) Submit(c *gin.Context) {
	actor, ok := actorID(c)
	if !ok {
		return
	}

	doc, err := h.docService.Submit(c.Request.Context(), c.Param("id"), actor)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, doc))
}

// BeginReview handles POST /documents/:id/review
// @Summary      Begin review
// @Description  Moves a pending document into the consultant review stage
// @Tags         documents
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Document ID"
// @Success      200  {object}  response.Response{data=service.DocumentResponse}
// @Failure      403  {object}  response.Response
// @Failure      409  {object}  response.Response
// @Router       /documents/{id}/review [post]
func (h *DocumentHandler) BeginReview(c *gin.Context) {
	actor, ok := actorID(c)
	if !ok {
		return
	}

	doc, err := h.docService.BeginReview(c.Request.Context(), c.Param("id"), actor)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, doc))
}

// Approve handles POST /documents/:id/approve for whichever stage is current.
// Stage capability is enforced in the service, not here, because the required
// capability depends on the document's current review stage.
// @Summary      Approve at current stage
// @Description  Advances the document through consultant review, cross verification and final approval; each stage requires its own capability
// @Tags         documents
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Document ID"
// @Success      200  {object}  response.Response{data=service.DocumentResponse}
// @Failure      403  {object}  response.Response
// @Failure      409  {object}  response.Response
// @Router       /documents/{id}/approve [post]
func (h *DocumentHandler) Approve(c *gin.Context) {
	actor, ok := actorID(c)
	if !ok {
		return
	}

	doc, err := h.docService.Approve(c.Request.Context(), c.Param("id"), actor)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, doc))
}

type rejectRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// Reject handles POST /documents/:id/reject
// @Summary      Reject a document
// @Description  Rejects a document at any review stage with a mandatory reason; rejection is terminal and the vendor must resubmit as a new record
// @Tags         documents
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string         true  "Document ID"
// @Param        payload  body      rejectRequest  true  "Rejection Reason"
// @Success      200      {object}  response.Response{data=service.DocumentResponse}
// @Failure      400      {object}  response.Response
// @Failure      403      {object}  response.Response
// @Failure      409      {object}  response.Response
// @Router       /documents/{id}/reject [post]
func (h *DocumentHandler) Reject(c *gin.Context) {
	actor, ok := actorID(c)
	if !ok {
		return
	}

	var req rejectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Rejection reason is required"))
		return
	}

	doc, err := h.docService.Reject(c.Request.Context(), c.Param("id"), actor, req.Reason)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, doc))
}

// Resubmit handles POST /documents/:id/resubmit
// @Summary      Resubmit a rejected document
// @Description  Creates a fresh submission superseding a rejected document; the rejected record and its history stay intact
// @Tags         documents
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                           true  "Rejected Document ID"
// @Param        payload  body      service.ResubmitDocumentRequest  true  "Resubmission Payload"
// @Success      201      {object}  response.Response{data=service.DocumentResponse}
// @Failure      403      {object}  response.Response
// @Failure      409      {object}  response.Response
// @Router       /documents/{id}/resubmit [post]
func (h *DocumentHandler) Resubmit(c *gin.Context) {
	actor, ok := actorID(c)
	if !ok {
		return
	}

	var req service.ResubmitDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload"))
		return
	}

	doc, err := h.docService.Resubmit(c.Request.Context(), c.Param("id"), actor, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, doc))
}

type commentRequest struct {
	Comment string `json:"comment" binding:"required"`
}

// Comment handles POST /documents/:id/comments
// @Summary      Comment on a document
// @Description  Appends a comment to the document's audit history without changing its status
// @Tags         documents
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string          true  "Document ID"
// @Param        payload  body      commentRequest  true  "Comment Payload"
// @Success      200      {object}  response.Response{data=service.DocumentResponse}
// @Failure      400      {object}  response.Response
// @Failure      403      {object}  response.Response
// @Router       /documents/{id}/comments [post]
func (h *DocumentHandler) Comment(c *gin.Context) {
	actor, ok := actorID(c)
	if !ok {
		return
	}

	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Comment text is required"))
		return
	}

	doc, err := h.docService.Comment(c.Request.Context(), c.Param("id"), actor, req.Comment)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, doc))
}
