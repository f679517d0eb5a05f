package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"vendordocs/internal/model"
	"vendordocs/internal/permission"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const defaultLoginApprovalTTL = 15 * time.Minute

// loginApprovalTTL reads the configured approval window, falling back to 15 minutes.
func loginApprovalTTL() time.Duration {
	if v := os.Getenv("LOGIN_APPROVAL_TTL_MINUTES"); v != "" {
		if minutes, err := strconv.Atoi(v); err == nil && minutes > 0 {
			return time.Duration(minutes) * time.Minute
		}
	}
	return defaultLoginApprovalTTL
}

// --- DTOs ---

type LoginApprovalResponse struct {
	ID         string  `json:"id"`
	VendorID   string  `json:"vendor_id"`
	VendorName string  `json:"vendor_name,omitempty"`
	Status     string  `json:"status"`
	DecidedBy  *string `json:"decided_by,omitempty"`
	DecidedAt  *string `json:"decided_at,omitempty"`
	CreatedAt  string  `json:"created_at"`
	ExpiresAt  string  `json:"expires_at"`
}

// PendingLoginResponse is handed to the vendor-facing login flow; the token
// is the secret the vendor presents when polling for the decision.
type PendingLoginResponse struct {
	ApprovalID   string `json:"approval_id"`
	RequestToken string `json:"request_token"`
	ExpiresAt    string `json:"expires_at"`
}

// --- Interface ---

type LoginApprovalService interface {
	// RequestApproval opens a pending approval for the vendor. Fails with
	// ErrDuplicatePendingApproval when a pending, non-expired one exists.
	RequestApproval(ctx context.Context, vendorID uuid.UUID) (*PendingLoginResponse, error)

	// Decide settles a pending approval. Requires the logins.approve
	// capability; consultants may only decide for their assigned vendors.
	Decide(ctx context.Context, approvalID string, approve bool, actorID string) (*LoginApprovalResponse, error)

	// Redeem verifies that the approval identified by id+token is approved
	// and unexpired, returning the vendor it belongs to.
	Redeem(ctx context.Context, approvalID, requestToken string) (uuid.UUID, error)

	ListPending(ctx context.Context, actorID string, page, limit int) ([]LoginApprovalResponse, int64, error)
}

type loginApprovalService struct {
	db  *gorm.DB
	hub interface{ GetBroadcast() chan []byte } // optional websocket hub
	now func() time.Time
}

func NewLoginApprovalService(db *gorm.DB, hub interface{ GetBroadcast() chan []byte }) LoginApprovalService {
	return &loginApprovalService{db: db, hub: hub, now: time.Now}
}

// --- Implementation ---

func (s *loginApprovalService) RequestApproval(ctx context.Context, vendorID uuid.UUID) (*PendingLoginResponse, error) {
	now := s.now().UTC()
	var approval model.LoginApproval

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Serialize per vendor so concurrent logins cannot both open a pending approval.
		if tx.Dialector.Name() == "postgres" {
			if lockErr := tx.Exec("SELECT pg_advisory_xact_lock(hashtext(?))", "login_approval:"+vendorID.String()).Error; lockErr != nil {
				return fmt.Errorf("advisory lock: %w: %v", ErrStorageUnavailable, lockErr)
			}
		}

		var vendor model.Vendor
		if findErr := tx.First(&vendor, "id = ?", vendorID).Error; findErr != nil {
			return notFoundOrStorage("vendor", findErr)
		}

		var existing model.LoginApproval
		findErr := tx.Where("vendor_id = ? AND status = ? AND expires_at > ?",
			vendorID, model.LoginApprovalPending, now).
			First(&existing).Error
		switch {
		case findErr == nil:
			return fmt.Errorf("vendor %s: %w", vendorID, ErrDuplicatePendingApproval)
		case !errors.Is(findErr, gorm.ErrRecordNotFound):
			return fmt.Errorf("check pending approval: %w: %v", ErrStorageUnavailable, findErr)
		}

		approval = model.LoginApproval{
			VendorID:     vendorID,
			Status:       model.LoginApprovalPending,
			RequestToken: uuid.NewString(),
			CreatedAt:    now,
			ExpiresAt:    now.Add(loginApprovalTTL()),
		}
		if createErr := tx.Create(&approval).Error; createErr != nil {
			return fmt.Errorf("create login approval: %w: %v", ErrStorageUnavailable, createErr)
		}

		return appendAuditEvent(tx, &model.AuditEvent{
			SubjectID: approval.ID.String(),
			Action:    model.AuditActionLoginRequest,
			ActorName: vendor.Name,
			ActorRole: string(permission.RoleVendor),
			Detail:    "vendor login pending approval",
			NewStatus: model.LoginApprovalPending,
		})
	})
	if err != nil {
		return nil, err
	}

	s.notify("login_approval.requested", approval)
	return &PendingLoginResponse{
		ApprovalID:   approval.ID.String(),
		RequestToken: approval.RequestToken,
		ExpiresAt:    approval.ExpiresAt.Format(time.RFC3339),
	}, nil
}

func (s *loginApprovalService) Decide(ctx context.Context, approvalID string, approve bool, actorID string) (*LoginApprovalResponse, error) {
	id, err := uuid.Parse(approvalID)
	if err != nil {
		return nil, fmt.Errorf("invalid approval id: %w", ErrNotFound)
	}

	now := s.now().UTC()
	var approval model.LoginApproval

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		actor, user, txErr := loadActor(tx, actorID)
		if txErr != nil {
			return txErr
		}

		if findErr := tx.First(&approval, "id = ?", id).Error; findErr != nil {
			return notFoundOrStorage("login approval", findErr)
		}

		var vendor model.Vendor
		if findErr := tx.First(&vendor, "id = ?", approval.VendorID).Error; findErr != nil {
			return notFoundOrStorage("vendor", findErr)
		}
		if scopeErr := permission.CanActOnVendor(actor, permission.CapApproveLogins, vendor.ID, vendor.AssignedConsultantID); scopeErr != nil {
			return scopeErr
		}

		// Expiry wins over stored status.
		if approval.ExpiredAt(now) {
			return fmt.Errorf("approval %s: %w", approval.ID, ErrApprovalExpired)
		}
		if approval.Status != model.LoginApprovalPending {
			return fmt.Errorf("approval %s is %s: %w", approval.ID, approval.Status, ErrAlreadyDecided)
		}

		newStatus := model.LoginApprovalRejected
		auditAction := model.AuditActionLoginRejected
		if approve {
			newStatus = model.LoginApprovalApproved
			auditAction = model.AuditActionLoginApproved
		}

		approval.Status = newStatus
		approval.DecidedBy = &user.ID
		approval.DecidedAt = &now
		if saveErr := tx.Save(&approval).Error; saveErr != nil {
			return fmt.Errorf("update login approval: %w: %v", ErrStorageUnavailable, saveErr)
		}

		return appendAuditEvent(tx, &model.AuditEvent{
			SubjectID:      approval.ID.String(),
			Action:         auditAction,
			ActorID:        &user.ID,
			ActorName:      user.Username,
			ActorRole:      user.Role,
			Detail:         "login approval decided",
			PreviousStatus: model.LoginApprovalPending,
			NewStatus:      newStatus,
		})
	})
	if err != nil {
		return nil, err
	}

	s.notify("login_approval.decided", approval)
	resp := s.toResponse(approval, now)
	return &resp, nil
}

func (s *loginApprovalService) Redeem(ctx context.Context, approvalID, requestToken string) (uuid.UUID, error) {
	id, err := uuid.Parse(approvalID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid approval id: %w", ErrNotFound)
	}

	var approval model.LoginApproval
	if err := s.db.WithContext(ctx).
		First(&approval, "id = ? AND request_token = ?", id, requestToken).Error; err != nil {
		return uuid.Nil, notFoundOrStorage("login approval", err)
	}

	now := s.now().UTC()
	if approval.ExpiredAt(now) {
		return uuid.Nil, fmt.Errorf("approval %s: %w", approval.ID, ErrApprovalExpired)
	}
	if approval.Status != model.LoginApprovalApproved {
		return uuid.Nil, fmt.Errorf("approval %s is %s: %w", approval.ID, approval.EffectiveStatus(now), ErrAlreadyDecided)
	}
	return approval.VendorID, nil
}

func (s *loginApprovalService) ListPending(ctx context.Context, actorID string, page, limit int) ([]LoginApprovalResponse, int64, error) {
	actor, _, err := loadActor(s.db.WithContext(ctx), actorID)
	if err != nil {
		return nil, 0, err
	}
	if err := permission.Check(actor.Role, permission.CapApproveLogins); err != nil {
		return nil, 0, err
	}

	now := s.now().UTC()
	query := s.db.WithContext(ctx).Model(&model.LoginApproval{}).
		Where("status = ? AND expires_at > ?", model.LoginApprovalPending, now)
	if actor.Role == permission.RoleConsultant {
		query = query.Joins("JOIN vendors ON vendors.id = login_approvals.vendor_id").
			Where("vendors.assigned_consultant_id = ?", actor.ID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count login approvals: %w: %v", ErrStorageUnavailable, err)
	}

	var approvals []model.LoginApproval
	if err := query.Preload("Vendor").
		Order("login_approvals.created_at ASC").
		Offset((page - 1) * limit).Limit(limit).
		Find(&approvals).Error; err != nil {
		return nil, 0, fmt.Errorf("fetch login approvals: %w: %v", ErrStorageUnavailable, err)
	}

	res := make([]LoginApprovalResponse, 0, len(approvals))
	for _, a := range approvals {
		res = append(res, s.toResponse(a, now))
	}
	return res, total, nil
}

// --- Helpers ---

func (s *loginApprovalService) toResponse(a model.LoginApproval, now time.Time) LoginApprovalResponse {
	resp := LoginApprovalResponse{
		ID:        a.ID.String(),
		VendorID:  a.VendorID.String(),
		Status:    a.EffectiveStatus(now),
		CreatedAt: a.CreatedAt.Format(time.RFC3339),
		ExpiresAt: a.ExpiresAt.Format(time.RFC3339),
	}
	if a.Vendor != nil {
		resp.VendorName = a.Vendor.Name
	}
	if a.DecidedBy != nil {
		v := a.DecidedBy.String()
		resp.DecidedBy = &v
	}
	if a.DecidedAt != nil {
		v := a.DecidedAt.Format(time.RFC3339)
		resp.DecidedAt = &v
	}
	return resp
}

func (s *loginApprovalService) notify(event string, a model.LoginApproval) {
	if s.hub == nil {
		return
	}
	msg, _ := json.Marshal(map[string]string{
		"event":       event,
		"approval_id": a.ID.String(),
		"vendor_id":   a.VendorID.String(),
		"status":      a.Status,
	})
	select {
	case s.hub.GetBroadcast() <- msg:
	default:
	}
}
