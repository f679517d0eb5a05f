package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"vendordocs/internal/model"
	"vendordocs/internal/permission"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// --- DTOs ---

type FileInput struct {
	FileName  string `json:"file_name" binding:"required"`
	FilePath  string `json:"file_path" binding:"required"`
	MimeType  string `json:"mime_type"`
	SizeBytes int64  `json:"size_bytes"`
}

type CreateDocumentRequest struct {
	DocumentTypeID string      `json:"document_type_id" binding:"required"`
	Title          string      `json:"title" binding:"required"`
	Files          []FileInput `json:"files"`
	Submit         bool        `json:"submit"` // submit immediately instead of keeping a draft
}

type ResubmitDocumentRequest struct {
	Title string      `json:"title"`
	Files []FileInput `json:"files"`
}

type DocumentFilter struct {
	Status   string
	VendorID string
	TypeID   string
	Page     int
	Limit    int
}

type DocumentFileResponse struct {
	ID        string `json:"id"`
	FileName  string `json:"file_name"`
	FilePath  string `json:"file_path"`
	MimeType  string `json:"mime_type"`
	SizeBytes int64  `json:"size_bytes"`
}

type DocumentResponse struct {
	ID               string                 `json:"id"`
	VendorID         string                 `json:"vendor_id"`
	VendorName       string                 `json:"vendor_name,omitempty"`
	DocumentTypeID   string                 `json:"document_type_id"`
	DocumentTypeCode string                 `json:"document_type_code"`
	Category         string                 `json:"category"`
	Title            string                 `json:"title"`
	Status           string                 `json:"status"`
	ReviewStage      string                 `json:"review_stage,omitempty"`
	StatusLabel      string                 `json:"status_label"`
	SupersedesID     *string                `json:"supersedes_id,omitempty"`
	Version          int                    `json:"version"`
	Files            []DocumentFileResponse `json:"files"`
	CreatedAt        string                 `json:"created_at"`
	UpdatedAt        string                 `json:"updated_at"`
}

type DocumentDetailResponse struct {
	DocumentResponse
	History []AuditEventResponse `json:"history"`
}

// --- Interface ---

type DocumentService interface {
	CreateDocument(ctx context.Context, actorID string, req CreateDocumentRequest) (*DocumentResponse, error)
	Submit(ctx context.Context, docID, actorID string) (*DocumentResponse, error)
	BeginReview(ctx context.Context, docID, actorID string) (*DocumentResponse, error)
	Approve(ctx context.Context, docID, actorID string) (*DocumentResponse, error)
	Reject(ctx context.Context, docID, actorID, reason string) (*DocumentResponse, error)
	Resubmit(ctx context.Context, docID, actorID string, req ResubmitDocumentRequest) (*DocumentResponse, error)
	Comment(ctx context.Context, docID, actorID, comment string) (*DocumentResponse, error)
	GetDocument(ctx context.Context, docID, actorID string) (*DocumentDetailResponse, error)
	ListDocuments(ctx context.Context, actorID string, filter DocumentFilter) ([]DocumentResponse, int64, error)
}

type documentService struct {
	db  *gorm.DB
	hub interface{ GetBroadcast() chan []byte } // optional websocket hub
}

func NewDocumentService(db *gorm.DB, hub interface{ GetBroadcast() chan []byte }) DocumentService {
	return &documentService{db: db, hub: hub}
}

// --- Implementation ---

// statusLabel renders the effective status including the pending review stage,
// e.g. "UNDER_REVIEW:CONSULTANT". Used in audit metadata and responses.
func statusLabel(status, stage string) string {
	if status == model.DocStatusUnderReview && stage != model.StageNone {
		return status + ":" + stage
	}
	return status
}

// stageCapabilities maps each review stage to the capability allowed to
// approve it. A role may only approve its own stage.
var stageCapabilities = map[string]permission.Capability{
	model.StageConsultant:        permission.CapApproveDocuments,
	model.StageCrossVerification: permission.CapCrossVerification,
	model.StageFinal:             permission.CapFinalApproval,
}

func (s *documentService) CreateDocument(ctx context.Context, actorID string, req CreateDocumentRequest) (*DocumentResponse, error) {
	typeID, err := uuid.Parse(req.DocumentTypeID)
	if err != nil {
		return nil, fmt.Errorf("invalid document_type_id: %w", err)
	}

	var doc model.Document
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		actor, user, txErr := loadActor(tx, actorID)
		if txErr != nil {
			return txErr
		}
		if checkErr := permission.Check(actor.Role, permission.CapCreateSubmissions); checkErr != nil {
			return checkErr
		}
		if user.VendorID == nil {
			return fmt.Errorf("actor has no vendor profile: %w", permission.ErrCapabilityDenied)
		}

		var docType model.DocumentType
		if findErr := tx.First(&docType, "id = ?", typeID).Error; findErr != nil {
			return notFoundOrStorage("document type", findErr)
		}

		status := model.DocStatusDraft
		if req.Submit {
			status = model.DocStatusPending
		}

		doc = model.Document{
			VendorID:       *user.VendorID,
			DocumentTypeID: docType.ID,
			Title:          req.Title,
			Status:         status,
			ReviewStage:    model.StageNone,
			Version:        1,
		}
		for i, f := range req.Files {
			doc.Files = append(doc.Files, model.DocumentFile{
				FileName:  f.FileName,
				FilePath:  f.FilePath,
				MimeType:  f.MimeType,
				SizeBytes: f.SizeBytes,
				Position:  i,
			})
		}
		if createErr := tx.Create(&doc).Error; createErr != nil {
			return fmt.Errorf("create document: %w: %v", ErrStorageUnavailable, createErr)
		}

		return appendAuditEvent(tx, &model.AuditEvent{
			SubjectID: doc.ID.String(),
			Action:    model.AuditActionCreated,
			ActorID:   &user.ID,
			ActorName: user.Username,
			ActorRole: user.Role,
			Detail:    "document created",
			NewStatus: status,
		})
	})
	if err != nil {
		return nil, err
	}

	s.notify("document.created", doc.ID.String(), doc.Status)
	return s.reload(ctx, doc.ID)
}

func (s *documentService) Submit(ctx context.Context, docID, actorID string) (*DocumentResponse, error) {
	return s.transition(ctx, docID, actorID, transitionSpec{
		action:     "submit",
		capability: permission.CapCreateSubmissions,
		from:       model.DocStatusDraft,
		toStatus:   model.DocStatusPending,
		toStage:    model.StageNone,
		audit:      model.AuditActionUpdated,
		detail:     "document submitted for review",
	})
}

func (s *documentService) BeginReview(ctx context.Context, docID, actorID string) (*DocumentResponse, error) {
	return s.transition(ctx, docID, actorID, transitionSpec{
		action:     "begin_review",
		capability: permission.CapConsultantReview,
		from:       model.DocStatusPending,
		toStatus:   model.DocStatusUnderReview,
		toStage:    model.StageConsultant,
		audit:      model.AuditActionReviewed,
		detail:     "consultant review started",
	})
}

// Approve advances the pending review stage, or finalizes the document when
// the final stage signs off. Stage order is strict: a holder of a later
// stage's capability acting early is an invalid transition, not a denial.
func (s *documentService) Approve(ctx context.Context, docID, actorID string) (*DocumentResponse, error) {
	id, err := uuid.Parse(docID)
	if err != nil {
		return nil, fmt.Errorf("invalid document id: %w", ErrNotFound)
	}

	var newStatus, newStage string
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		actor, user, txErr := loadActor(tx, actorID)
		if txErr != nil {
			return txErr
		}

		var doc model.Document
		if findErr := tx.First(&doc, "id = ?", id).Error; findErr != nil {
			return notFoundOrStorage("document", findErr)
		}

		// Denials must precede any observable effect.
		stageCap, ok := stageCapabilities[doc.ReviewStage]
		anyApprovalCap := permission.HasCapability(actor.Role, permission.CapApproveDocuments) ||
			permission.HasCapability(actor.Role, permission.CapCrossVerification) ||
			permission.HasCapability(actor.Role, permission.CapFinalApproval)
		if !anyApprovalCap {
			return permission.Check(actor.Role, permission.CapApproveDocuments)
		}
		if doc.Status != model.DocStatusUnderReview || !ok {
			return fmt.Errorf("approve from %s: %w", statusLabel(doc.Status, doc.ReviewStage), ErrInvalidTransition)
		}
		if !permission.HasCapability(actor.Role, stageCap) {
			// Actor can approve some stage, just not this one — stage skipped.
			return fmt.Errorf("stage %s is pending: %w", doc.ReviewStage, ErrInvalidTransition)
		}
		scope, scopeErr := documentScope(tx, &doc)
		if scopeErr != nil {
			return scopeErr
		}
		if scopeErr := permission.CanActOnDocument(actor, stageCap, scope); scopeErr != nil {
			return scopeErr
		}

		switch doc.ReviewStage {
		case model.StageConsultant:
			newStatus, newStage = model.DocStatusUnderReview, model.StageCrossVerification
		case model.StageCrossVerification:
			newStatus, newStage = model.DocStatusUnderReview, model.StageFinal
		case model.StageFinal:
			newStatus, newStage = model.DocStatusApproved, model.StageNone
		}

		if applyErr := applyVersioned(tx, &doc, newStatus, newStage); applyErr != nil {
			return applyErr
		}

		return appendAuditEvent(tx, &model.AuditEvent{
			SubjectID:      doc.ID.String(),
			Action:         model.AuditActionApproved,
			ActorID:        &user.ID,
			ActorName:      user.Username,
			ActorRole:      user.Role,
			Detail:         fmt.Sprintf("approved at stage %s", doc.ReviewStage),
			PreviousStatus: statusLabel(doc.Status, doc.ReviewStage),
			NewStatus:      statusLabel(newStatus, newStage),
		})
	})
	if err != nil {
		return nil, err
	}

	s.notify("document.approved", docID, statusLabel(newStatus, newStage))
	return s.reload(ctx, id)
}

func (s *documentService) Reject(ctx context.Context, docID, actorID, reason string) (*DocumentResponse, error) {
	return s.transition(ctx, docID, actorID, transitionSpec{
		action:     "reject",
		capability: permission.CapRejectDocuments,
		from:       model.DocStatusUnderReview,
		toStatus:   model.DocStatusRejected,
		toStage:    model.StageNone,
		audit:      model.AuditActionRejected,
		detail:     "document rejected",
		comment:    reason,
	})
}

// Resubmit creates a brand-new document superseding the rejected one. The
// rejected record and its audit trail are never touched.
func (s *documentService) Resubmit(ctx context.Context, docID, actorID string, req ResubmitDocumentRequest) (*DocumentResponse, error) {
	id, err := uuid.Parse(docID)
	if err != nil {
		return nil, fmt.Errorf("invalid document id: %w", ErrNotFound)
	}

	var replacement model.Document
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		actor, user, txErr := loadActor(tx, actorID)
		if txErr != nil {
			return txErr
		}

		var prior model.Document
		if findErr := tx.First(&prior, "id = ?", id).Error; findErr != nil {
			return notFoundOrStorage("document", findErr)
		}

		scope, scopeErr := documentScope(tx, &prior)
		if scopeErr != nil {
			return scopeErr
		}
		if scopeErr := permission.CanActOnDocument(actor, permission.CapResubmitDocuments, scope); scopeErr != nil {
			return scopeErr
		}
		if prior.Status != model.DocStatusRejected {
			return fmt.Errorf("resubmit from %s: %w", statusLabel(prior.Status, prior.ReviewStage), ErrInvalidTransition)
		}

		title := req.Title
		if title == "" {
			title = prior.Title
		}
		replacement = model.Document{
			VendorID:       prior.VendorID,
			DocumentTypeID: prior.DocumentTypeID,
			Title:          title,
			Status:         model.DocStatusPending,
			ReviewStage:    model.StageNone,
			SupersedesID:   &prior.ID,
			Version:        1,
		}
		for i, f := range req.Files {
			replacement.Files = append(replacement.Files, model.DocumentFile{
				FileName:  f.FileName,
				FilePath:  f.FilePath,
				MimeType:  f.MimeType,
				SizeBytes: f.SizeBytes,
				Position:  i,
			})
		}
		if createErr := tx.Create(&replacement).Error; createErr != nil {
			return fmt.Errorf("create resubmission: %w: %v", ErrStorageUnavailable, createErr)
		}

		return appendAuditEvent(tx, &model.AuditEvent{
			SubjectID: replacement.ID.String(),
			Action:    model.AuditActionCreated,
			ActorID:   &user.ID,
			ActorName: user.Username,
			ActorRole: user.Role,
			Detail:    fmt.Sprintf("resubmission of rejected document %s", prior.ID),
			NewStatus: model.DocStatusPending,
		})
	})
	if err != nil {
		return nil, err
	}

	s.notify("document.resubmitted", replacement.ID.String(), model.DocStatusPending)
	return s.reload(ctx, replacement.ID)
}

// Comment appends a COMMENTED audit event without touching the document.
func (s *documentService) Comment(ctx context.Context, docID, actorID, comment string) (*DocumentResponse, error) {
	id, err := uuid.Parse(docID)
	if err != nil {
		return nil, fmt.Errorf("invalid document id: %w", ErrNotFound)
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		actor, user, txErr := loadActor(tx, actorID)
		if txErr != nil {
			return txErr
		}

		var doc model.Document
		if findErr := tx.First(&doc, "id = ?", id).Error; findErr != nil {
			return notFoundOrStorage("document", findErr)
		}
		scope, scopeErr := documentScope(tx, &doc)
		if scopeErr != nil {
			return scopeErr
		}
		if scopeErr := permission.CanActOnDocument(actor, permission.CapCommentDocuments, scope); scopeErr != nil {
			return scopeErr
		}

		return appendAuditEvent(tx, &model.AuditEvent{
			SubjectID: doc.ID.String(),
			Action:    model.AuditActionCommented,
			ActorID:   &user.ID,
			ActorName: user.Username,
			ActorRole: user.Role,
			Detail:    "comment added",
			Comment:   comment,
		})
	})
	if err != nil {
		return nil, err
	}

	return s.reload(ctx, id)
}

func (s *documentService) GetDocument(ctx context.Context, docID, actorID string) (*DocumentDetailResponse, error) {
	id, err := uuid.Parse(docID)
	if err != nil {
		return nil, fmt.Errorf("invalid document id: %w", ErrNotFound)
	}

	actor, _, err := loadActor(s.db.WithContext(ctx), actorID)
	if err != nil {
		return nil, err
	}

	var doc model.Document
	if err := s.db.WithContext(ctx).
		Preload("DocumentType").Preload("Files").Preload("Vendor").
		First(&doc, "id = ?", id).Error; err != nil {
		return nil, notFoundOrStorage("document", err)
	}

	scope, err := documentScope(s.db.WithContext(ctx), &doc)
	if err != nil {
		return nil, err
	}
	if err := permission.CanActOnDocument(actor, viewCapability(actor.Role), scope); err != nil {
		return nil, err
	}

	var events []model.AuditEvent
	if err := s.db.WithContext(ctx).
		Where("subject_id = ?", doc.ID.String()).
		Order("created_at ASC, seq ASC").
		Find(&events).Error; err != nil {
		return nil, fmt.Errorf("load document history: %w: %v", ErrStorageUnavailable, err)
	}

	detail := DocumentDetailResponse{DocumentResponse: toDocumentResponse(doc)}
	for _, ev := range events {
		detail.History = append(detail.History, toAuditEventResponse(ev))
	}
	return &detail, nil
}

func (s *documentService) ListDocuments(ctx context.Context, actorID string, filter DocumentFilter) ([]DocumentResponse, int64, error) {
	actor, _, err := loadActor(s.db.WithContext(ctx), actorID)
	if err != nil {
		return nil, 0, err
	}
	if err := permission.Check(actor.Role, viewCapability(actor.Role)); err != nil {
		return nil, 0, err
	}

	query := s.db.WithContext(ctx).Model(&model.Document{})

	switch actor.Role {
	case permission.RoleVendor:
		query = query.Where("documents.vendor_id = ?", actor.VendorID)
	case permission.RoleConsultant:
		// Assignment scoping: only documents of vendors assigned to this consultant.
		query = query.Joins("JOIN vendors ON vendors.id = documents.vendor_id").
			Where("vendors.assigned_consultant_id = ?", actor.ID).
			Where("documents.status <> ?", model.DocStatusDraft)
	default:
		// Drafts stay private to the owning vendor, admins included.
		query = query.Where("documents.status <> ?", model.DocStatusDraft)
	}

	if filter.Status != "" {
		query = query.Where("documents.status = ?", filter.Status)
	}
	if filter.VendorID != "" {
		query = query.Where("documents.vendor_id = ?", filter.VendorID)
	}
	if filter.TypeID != "" {
		query = query.Where("documents.document_type_id = ?", filter.TypeID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count documents: %w: %v", ErrStorageUnavailable, err)
	}

	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.Limit <= 0 {
		filter.Limit = 20
	}

	var docs []model.Document
	if err := query.
		Preload("DocumentType").Preload("Files").Preload("Vendor").
		Order("documents.created_at DESC").
		Offset((filter.Page - 1) * filter.Limit).Limit(filter.Limit).
		Find(&docs).Error; err != nil {
		return nil, 0, fmt.Errorf("fetch documents: %w: %v", ErrStorageUnavailable, err)
	}

	result := make([]DocumentResponse, 0, len(docs))
	for _, d := range docs {
		result = append(result, toDocumentResponse(d))
	}
	return result, total, nil
}

// --- Transition core ---

type transitionSpec struct {
	action     string
	capability permission.Capability
	from       string
	toStatus   string
	toStage    string
	audit      string
	detail     string
	comment    string
}

// transition validates permission first, then status legality, then applies
// the mutation and the audit append in one transaction. A failed validation
// performs no writes at all.
func (s *documentService) transition(ctx context.Context, docID, actorID string, spec transitionSpec) (*DocumentResponse, error) {
	id, err := uuid.Parse(docID)
	if err != nil {
		return nil, fmt.Errorf("invalid document id: %w", ErrNotFound)
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		actor, user, txErr := loadActor(tx, actorID)
		if txErr != nil {
			return txErr
		}

		var doc model.Document
		if findErr := tx.First(&doc, "id = ?", id).Error; findErr != nil {
			return notFoundOrStorage("document", findErr)
		}

		scope, scopeErr := documentScope(tx, &doc)
		if scopeErr != nil {
			return scopeErr
		}
		if scopeErr := permission.CanActOnDocument(actor, spec.capability, scope); scopeErr != nil {
			return scopeErr
		}
		if doc.Status != spec.from {
			return fmt.Errorf("%s from %s: %w", spec.action, statusLabel(doc.Status, doc.ReviewStage), ErrInvalidTransition)
		}

		if applyErr := applyVersioned(tx, &doc, spec.toStatus, spec.toStage); applyErr != nil {
			return applyErr
		}

		return appendAuditEvent(tx, &model.AuditEvent{
			SubjectID:      doc.ID.String(),
			Action:         spec.audit,
			ActorID:        &user.ID,
			ActorName:      user.Username,
			ActorRole:      user.Role,
			Detail:         spec.detail,
			PreviousStatus: statusLabel(doc.Status, doc.ReviewStage),
			NewStatus:      statusLabel(spec.toStatus, spec.toStage),
			Comment:        spec.comment,
		})
	})
	if err != nil {
		return nil, err
	}

	s.notify("document."+spec.action, docID, statusLabel(spec.toStatus, spec.toStage))
	return s.reload(ctx, id)
}

// applyVersioned performs the optimistic status mutation. A stale writer
// (version moved underneath us) gets ErrConcurrentModification and may retry.
func applyVersioned(tx *gorm.DB, doc *model.Document, newStatus, newStage string) error {
	res := tx.Model(&model.Document{}).
		Where("id = ? AND version = ?", doc.ID, doc.Version).
		Updates(map[string]interface{}{
			"status":       newStatus,
			"review_stage": newStage,
			"version":      doc.Version + 1,
		})
	if res.Error != nil {
		return fmt.Errorf("update document: %w: %v", ErrStorageUnavailable, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("document %s version %d: %w", doc.ID, doc.Version, ErrConcurrentModification)
	}
	return nil
}

// --- Helpers ---

// loadActor resolves the authenticated user id into a permission actor.
func loadActor(db *gorm.DB, actorID string) (permission.Actor, *model.User, error) {
	id, err := uuid.Parse(actorID)
	if err != nil {
		return permission.Actor{}, nil, fmt.Errorf("invalid actor id: %w", ErrNotFound)
	}
	var user model.User
	if err := db.First(&user, "id = ?", id).Error; err != nil {
		return permission.Actor{}, nil, notFoundOrStorage("actor", err)
	}
	actor := permission.Actor{
		ID:       user.ID,
		Name:     user.Username,
		Role:     permission.Role(user.Role),
		VendorID: user.VendorID,
	}
	return actor, &user, nil
}

// documentScope loads the assignment fact alongside the ownership fact.
// A missing vendor row means no assignment; any other load failure is a
// storage error so a consultant is not misreported as unassigned.
func documentScope(db *gorm.DB, doc *model.Document) (permission.DocumentScope, error) {
	scope := permission.DocumentScope{
		VendorID: doc.VendorID,
		Draft:    doc.Status == model.DocStatusDraft,
	}
	var vendor model.Vendor
	if err := db.Select("assigned_consultant_id").First(&vendor, "id = ?", doc.VendorID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return scope, nil
		}
		return scope, fmt.Errorf("vendor assignment: %w: %v", ErrStorageUnavailable, err)
	}
	scope.AssignedConsultantID = vendor.AssignedConsultantID
	return scope, nil
}

func viewCapability(role permission.Role) permission.Capability {
	switch role {
	case permission.RoleVendor:
		return permission.CapViewOwnDocuments
	case permission.RoleConsultant:
		return permission.CapViewAssignedDocs
	default:
		return permission.CapViewAllDocuments
	}
}

func notFoundOrStorage(what string, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s: %w", what, ErrNotFound)
	}
	return fmt.Errorf("%s: %w: %v", what, ErrStorageUnavailable, err)
}

func (s *documentService) reload(ctx context.Context, id uuid.UUID) (*DocumentResponse, error) {
	var doc model.Document
	if err := s.db.WithContext(ctx).
		Preload("DocumentType").Preload("Files").Preload("Vendor").
		First(&doc, "id = ?", id).Error; err != nil {
		return nil, notFoundOrStorage("document", err)
	}
	resp := toDocumentResponse(doc)
	return &resp, nil
}

func (s *documentService) notify(event, docID, status string) {
	if s.hub == nil {
		return
	}
	msg, _ := json.Marshal(map[string]string{
		"event":       event,
		"document_id": docID,
		"status":      status,
		"at":          time.Now().UTC().Format(time.RFC3339),
	})
	select {
	case s.hub.GetBroadcast() <- msg:
	default:
	}
}

func toDocumentResponse(d model.Document) DocumentResponse {
	resp := DocumentResponse{
		ID:               d.ID.String(),
		VendorID:         d.VendorID.String(),
		DocumentTypeID:   d.DocumentTypeID.String(),
		DocumentTypeCode: d.DocumentType.Code,
		Category:         d.DocumentType.Category,
		Title:            d.Title,
		Status:           d.Status,
		ReviewStage:      d.ReviewStage,
		StatusLabel:      statusLabel(d.Status, d.ReviewStage),
		Version:          d.Version,
		Files:            make([]DocumentFileResponse, 0, len(d.Files)),
		CreatedAt:        d.CreatedAt.Format(time.RFC3339),
		UpdatedAt:        d.UpdatedAt.Format(time.RFC3339),
	}
	if d.Vendor != nil {
		resp.VendorName = d.Vendor.Name
	}
	if d.SupersedesID != nil {
		sup := d.SupersedesID.String()
		resp.SupersedesID = &sup
	}
	for _, f := range d.Files {
		resp.Files = append(resp.Files, DocumentFileResponse{
			ID:        f.ID.String(),
			FileName:  f.FileName,
			FilePath:  f.FilePath,
			MimeType:  f.MimeType,
			SizeBytes: f.SizeBytes,
		})
	}
	return resp
}
