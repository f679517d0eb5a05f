package service

import (
	"context"
	"fmt"
	"time"

	"vendordocs/internal/model"

	"gorm.io/gorm"
)

// appendAuditEvent writes one event inside the caller's transaction.
// The audit trail is append-only: this is the only write path, and it shares
// the transaction with the status mutation so neither is observable alone.
func appendAuditEvent(tx *gorm.DB, ev *model.AuditEvent) error {
	if ev.CreatedAt.IsZero() {
		ev.CreatedAt = time.Now().UTC()
	}
	if err := tx.Create(ev).Error; err != nil {
		return fmt.Errorf("append audit event: %w: %v", ErrStorageUnavailable, err)
	}
	return nil
}

type AuditEventResponse struct {
	ID             string `json:"id"`
	Seq            int64  `json:"seq"`
	SubjectID      string `json:"subject_id"`
	Action         string `json:"action"`
	ActorID        string `json:"actor_id"`
	ActorName      string `json:"actor_name"`
	ActorRole      string `json:"actor_role"`
	Detail         string `json:"detail"`
	PreviousStatus string `json:"previous_status,omitempty"`
	NewStatus      string `json:"new_status,omitempty"`
	Comment        string `json:"comment,omitempty"`
	CreatedAt      string `json:"created_at"`
}

type AuditService interface {
	// ListForSubject reconstructs the full history for a document or login
	// approval, ordered by timestamp ascending with insertion order breaking ties.
	ListForSubject(ctx context.Context, subjectID string) ([]AuditEventResponse, error)
	ListAll(ctx context.Context, page, limit int) ([]AuditEventResponse, int64, error)
}

type auditService struct {
	db *gorm.DB
}

// NewAuditService creates a new AuditService instance
func NewAuditService(db *gorm.DB) AuditService {
	return &auditService{db: db}
}

func (s *auditService) ListForSubject(ctx context.Context, subjectID string) ([]AuditEventResponse, error) {
	var events []model.AuditEvent
	if err := s.db.WithContext(ctx).
		Where("subject_id = ?", subjectID).
		Order("created_at ASC, seq ASC").
		Find(&events).Error; err != nil {
		return nil, fmt.Errorf("list audit events: %w: %v", ErrStorageUnavailable, err)
	}

	res := make([]AuditEventResponse, 0, len(events))
	for _, ev := range events {
		res = append(res, toAuditEventResponse(ev))
	}
	return res, nil
}

// ListAll retrieves the global paginated feed, newest first
func (s *auditService) ListAll(ctx context.Context, page, limit int) ([]AuditEventResponse, int64, error) {
	var events []model.AuditEvent
	var total int64

	if err := s.db.WithContext(ctx).Model(&model.AuditEvent{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count audit events: %w: %v", ErrStorageUnavailable, err)
	}

	offset := (page - 1) * limit
	if err := s.db.WithContext(ctx).
		Order("created_at DESC, seq DESC").
		Offset(offset).Limit(limit).
		Find(&events).Error; err != nil {
		return nil, 0, fmt.Errorf("list audit events: %w: %v", ErrStorageUnavailable, err)
	}

	res := make([]AuditEventResponse, 0, len(events))
	for _, ev := range events {
		res = append(res, toAuditEventResponse(ev))
	}
	return res, total, nil
}

func toAuditEventResponse(ev model.AuditEvent) AuditEventResponse {
	resp := AuditEventResponse{
		ID:             ev.ID.String(),
		Seq:            ev.Seq,
		SubjectID:      ev.SubjectID,
		Action:         ev.Action,
		ActorName:      ev.ActorName,
		ActorRole:      ev.ActorRole,
		Detail:         ev.Detail,
		PreviousStatus: ev.PreviousStatus,
		NewStatus:      ev.NewStatus,
		Comment:        ev.Comment,
		CreatedAt:      ev.CreatedAt.Format(time.RFC3339),
	}
	if ev.ActorID != nil {
		resp.ActorID = ev.ActorID.String()
	}
	return resp
}
