package repository

import (
	"context"

	"vendordocs/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// VendorFilter narrows vendor listings by assignment or active state.
type VendorFilter struct {
	ConsultantID *uuid.UUID // only vendors assigned to this consultant
	ActiveOnly   bool
}

// VendorRepository defines the interface for data access of Vendor entities
type VendorRepository interface {
	Create(ctx context.Context, vendor *model.Vendor) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Vendor, error)
	List(ctx context.Context, filter VendorFilter, page, limit int) ([]model.Vendor, int64, error)
	Update(ctx context.Context, vendor *model.Vendor) error
	SetAssignedConsultant(ctx context.Context, vendorID uuid.UUID, consultantID *uuid.UUID) error
}

type vendorRepository struct {
	db *gorm.DB
}

// NewVendorRepository returns a new instance of VendorRepository
func NewVendorRepository(db *gorm.DB) VendorRepository {
	return &vendorRepository{db: db}
}

func (r *vendorRepository) Create(ctx context.Context, vendor *model.Vendor) error {
	return GetDB(ctx, r.db).Create(vendor).Error
}

func (r *vendorRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Vendor, error) {
	var vendor model.Vendor
	if err := GetDB(ctx, r.db).Preload("AssignedConsultant").First(&vendor, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &vendor, nil
}

func (r *vendorRepository) List(ctx context.Context, filter VendorFilter, page, limit int) ([]model.Vendor, int64, error) {
	var vendors []model.Vendor
	var total int64

	query := GetDB(ctx, r.db).Model(&model.Vendor{})
	if filter.ConsultantID != nil {
		query = query.Where("assigned_consultant_id = ?", *filter.ConsultantID)
	}
	if filter.ActiveOnly {
		query = query.Where("is_active = ?", true)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := query.Preload("AssignedConsultant").
		Order("name ASC").
		Offset(offset).Limit(limit).
		Find(&vendors).Error; err != nil {
		return nil, 0, err
	}

	return vendors, total, nil
}

func (r *vendorRepository) Update(ctx context.Context, vendor *model.Vendor) error {
	return GetDB(ctx, r.db).Save(vendor).Error
}

func (r *vendorRepository) SetAssignedConsultant(ctx context.Context, vendorID uuid.UUID, consultantID *uuid.UUID) error {
	return GetDB(ctx, r.db).Model(&model.Vendor{}).
		Where("id = ?", vendorID).
		Update("assigned_consultant_id", consultantID).Error
}
