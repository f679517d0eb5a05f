package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"vendordocs/internal/model"
	"vendordocs/internal/permission"
	"vendordocs/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// --- DTOs ---

type CreateVendorRequest struct {
	Name          string `json:"name" binding:"required"`
	CompanyName   string `json:"company_name"`
	TaxCode       string `json:"tax_code"`
	ContactPerson string `json:"contact_person"`
	Phone         string `json:"phone"`
	Email         string `json:"email" binding:"omitempty,email"`
}

type UpdateVendorRequest struct {
	Name          string `json:"name"`
	CompanyName   string `json:"company_name"`
	TaxCode       string `json:"tax_code"`
	ContactPerson string `json:"contact_person"`
	Phone         string `json:"phone"`
	Email         string `json:"email" binding:"omitempty,email"`
	IsActive      *bool  `json:"is_active"`
}

type AssignConsultantRequest struct {
	ConsultantID *string `json:"consultant_id"` // null unassigns
}

type VendorResponse struct {
	ID                   string  `json:"id"`
	Name                 string  `json:"name"`
	CompanyName          string  `json:"company_name"`
	TaxCode              string  `json:"tax_code"`
	ContactPerson        string  `json:"contact_person"`
	Phone                string  `json:"phone"`
	Email                string  `json:"email"`
	IsActive             bool    `json:"is_active"`
	AssignedConsultantID *string `json:"assigned_consultant_id"`
	AssignedConsultant   string  `json:"assigned_consultant,omitempty"`
	CreatedAt            string  `json:"created_at"`
}

// --- Interface ---

type VendorService interface {
	CreateVendor(ctx context.Context, actorID string, req CreateVendorRequest) (*VendorResponse, error)
	GetVendor(ctx context.Context, vendorID, actorID string) (*VendorResponse, error)
	ListVendors(ctx context.Context, actorID string, page, limit int) ([]VendorResponse, int64, error)
	UpdateVendor(ctx context.Context, vendorID, actorID string, req UpdateVendorRequest) (*VendorResponse, error)
	AssignConsultant(ctx context.Context, vendorID, actorID string, req AssignConsultantRequest) (*VendorResponse, error)
}

type vendorService struct {
	vendors repository.VendorRepository
	users   repository.UserRepository
	tx      repository.TransactionManager
	db      *gorm.DB
}

func NewVendorService(db *gorm.DB, vendors repository.VendorRepository, users repository.UserRepository, tx repository.TransactionManager) VendorService {
	return &vendorService{vendors: vendors, users: users, tx: tx, db: db}
}

// --- Implementation ---

func (s *vendorService) CreateVendor(ctx context.Context, actorID string, req CreateVendorRequest) (*VendorResponse, error) {
	actor, _, err := loadActor(s.db.WithContext(ctx), actorID)
	if err != nil {
		return nil, err
	}
	if err := permission.Check(actor.Role, permission.CapManageVendors); err != nil {
		return nil, err
	}

	vendor := &model.Vendor{
		Name:          req.Name,
		CompanyName:   req.CompanyName,
		TaxCode:       req.TaxCode,
		ContactPerson: req.ContactPerson,
		Phone:         req.Phone,
		Email:         req.Email,
		IsActive:      true,
	}
	if err := s.vendors.Create(ctx, vendor); err != nil {
		return nil, fmt.Errorf("create vendor: %w: %v", ErrStorageUnavailable, err)
	}

	resp := toVendorResponse(vendor)
	return &resp, nil
}

func (s *vendorService) GetVendor(ctx context.Context, vendorID, actorID string) (*VendorResponse, error) {
	id, err := uuid.Parse(vendorID)
	if err != nil {
		return nil, fmt.Errorf("invalid vendor id: %w", ErrNotFound)
	}

	actor, _, err := loadActor(s.db.WithContext(ctx), actorID)
	if err != nil {
		return nil, err
	}

	vendor, err := s.vendors.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOrStorage("vendor", err)
	}

	// Vendors see their own profile; consultants their assignments; the rest
	// are capability-gated.
	viewCap := permission.CapManageVendors
	switch actor.Role {
	case permission.RoleVendor:
		viewCap = permission.CapViewOwnDocuments
	case permission.RoleConsultant:
		viewCap = permission.CapViewAssignedDocs
	case permission.RoleCrossVerifier, permission.RoleApprover:
		viewCap = permission.CapViewAllDocuments
	}
	if err := permission.CanActOnVendor(actor, viewCap, vendor.ID, vendor.AssignedConsultantID); err != nil {
		return nil, err
	}

	resp := toVendorResponse(vendor)
	return &resp, nil
}

func (s *vendorService) ListVendors(ctx context.Context, actorID string, page, limit int) ([]VendorResponse, int64, error) {
	actor, _, err := loadActor(s.db.WithContext(ctx), actorID)
	if err != nil {
		return nil, 0, err
	}

	filter := repository.VendorFilter{}
	switch actor.Role {
	case permission.RoleConsultant:
		// Assignment scoping.
		filter.ConsultantID = &actor.ID
	case permission.RoleVendor:
		return nil, 0, permission.Check(actor.Role, permission.CapManageVendors)
	}

	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}

	vendors, total, err := s.vendors.List(ctx, filter, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("list vendors: %w: %v", ErrStorageUnavailable, err)
	}

	res := make([]VendorResponse, 0, len(vendors))
	for i := range vendors {
		res = append(res, toVendorResponse(&vendors[i]))
	}
	return res, total, nil
}

func (s *vendorService) UpdateVendor(ctx context.Context, vendorID, actorID string, req UpdateVendorRequest) (*VendorResponse, error) {
	id, err := uuid.Parse(vendorID)
	if err != nil {
		return nil, fmt.Errorf("invalid vendor id: %w", ErrNotFound)
	}

	actor, _, err := loadActor(s.db.WithContext(ctx), actorID)
	if err != nil {
		return nil, err
	}
	if err := permission.Check(actor.Role, permission.CapManageVendors); err != nil {
		return nil, err
	}

	vendor, err := s.vendors.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOrStorage("vendor", err)
	}

	if req.Name != "" {
		vendor.Name = req.Name
	}
	if req.CompanyName != "" {
		vendor.CompanyName = req.CompanyName
	}
	if req.TaxCode != "" {
		vendor.TaxCode = req.TaxCode
	}
	if req.ContactPerson != "" {
		vendor.ContactPerson = req.ContactPerson
	}
	if req.Phone != "" {
		vendor.Phone = req.Phone
	}
	if req.Email != "" {
		vendor.Email = req.Email
	}
	if req.IsActive != nil {
		vendor.IsActive = *req.IsActive
	}

	if err := s.vendors.Update(ctx, vendor); err != nil {
		return nil, fmt.Errorf("update vendor: %w: %v", ErrStorageUnavailable, err)
	}

	resp := toVendorResponse(vendor)
	return &resp, nil
}

// AssignConsultant validates the consultant user and flips the assignment in
// one transaction. One consultant per vendor at a time; null unassigns.
func (s *vendorService) AssignConsultant(ctx context.Context, vendorID, actorID string, req AssignConsultantRequest) (*VendorResponse, error) {
	id, err := uuid.Parse(vendorID)
	if err != nil {
		return nil, fmt.Errorf("invalid vendor id: %w", ErrNotFound)
	}

	actor, _, err := loadActor(s.db.WithContext(ctx), actorID)
	if err != nil {
		return nil, err
	}
	if err := permission.Check(actor.Role, permission.CapManageVendors); err != nil {
		return nil, err
	}

	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if _, getErr := s.vendors.GetByID(txCtx, id); getErr != nil {
			return notFoundOrStorage("vendor", getErr)
		}

		var consultantID *uuid.UUID
		if req.ConsultantID != nil && *req.ConsultantID != "" {
			parsed, parseErr := uuid.Parse(*req.ConsultantID)
			if parseErr != nil {
				return fmt.Errorf("invalid consultant id: %w", ErrNotFound)
			}
			consultant, getErr := s.users.GetByID(txCtx, parsed.String())
			if getErr != nil {
				return fmt.Errorf("consultant: %w", ErrNotFound)
			}
			if consultant.Role != string(permission.RoleConsultant) {
				return errors.New("assigned user is not a consultant")
			}
			consultantID = &parsed
		}

		return s.vendors.SetAssignedConsultant(txCtx, id, consultantID)
	})
	if err != nil {
		return nil, err
	}

	vendor, err := s.vendors.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOrStorage("vendor", err)
	}
	resp := toVendorResponse(vendor)
	return &resp, nil
}

// --- Helpers ---

func toVendorResponse(v *model.Vendor) VendorResponse {
	resp := VendorResponse{
		ID:            v.ID.String(),
		Name:          v.Name,
		CompanyName:   v.CompanyName,
		TaxCode:       v.TaxCode,
		ContactPerson: v.ContactPerson,
		Phone:         v.Phone,
		Email:         v.Email,
		IsActive:      v.IsActive,
		CreatedAt:     v.CreatedAt.Format(time.RFC3339),
	}
	if v.AssignedConsultantID != nil {
		cid := v.AssignedConsultantID.String()
		resp.AssignedConsultantID = &cid
	}
	if v.AssignedConsultant != nil {
		resp.AssignedConsultant = v.AssignedConsultant.Username
	}
	return resp
}
