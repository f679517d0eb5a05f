package service

import (
	"context"
	"errors"
	"fmt"

	"vendordocs/internal/model"
	"vendordocs/internal/permission"

	"gorm.io/gorm"
)

// --- DTOs ---

type CreateDocumentTypeRequest struct {
	Code     string `json:"code" binding:"required"`
	Name     string `json:"name" binding:"required"`
	Category string `json:"category" binding:"required,oneof=MONTHLY_MANDATORY ANNUAL_MANDATORY ONE_TIME_OPTIONAL"`
}

type DocumentTypeResponse struct {
	ID       string `json:"id"`
	Code     string `json:"code"`
	Name     string `json:"name"`
	Category string `json:"category"`
}

// --- Interface ---

type DocumentTypeService interface {
	ListTypes(ctx context.Context) ([]DocumentTypeResponse, error)
	CreateType(ctx context.Context, actorID string, req CreateDocumentTypeRequest) (*DocumentTypeResponse, error)
	SeedDefaultTypes(ctx context.Context) error
}

type documentTypeService struct {
	db *gorm.DB
}

func NewDocumentTypeService(db *gorm.DB) DocumentTypeService {
	return &documentTypeService{db: db}
}

// --- Implementation ---

func (s *documentTypeService) ListTypes(ctx context.Context) ([]DocumentTypeResponse, error) {
	var types []model.DocumentType
	if err := s.db.WithContext(ctx).Order("category ASC, code ASC").Find(&types).Error; err != nil {
		return nil, fmt.Errorf("fetch document types: %w: %v", ErrStorageUnavailable, err)
	}

	res := make([]DocumentTypeResponse, 0, len(types))
	for _, t := range types {
		res = append(res, toDocumentTypeResponse(t))
	}
	return res, nil
}

// CreateType adds a catalog entry. The category is fixed here and has no
// update path anywhere — membership is immutable.
func (s *documentTypeService) CreateType(ctx context.Context, actorID string, req CreateDocumentTypeRequest) (*DocumentTypeResponse, error) {
	actor, _, err := loadActor(s.db.WithContext(ctx), actorID)
	if err != nil {
		return nil, err
	}
	if err := permission.Check(actor.Role, permission.CapManageDocTypes); err != nil {
		return nil, err
	}

	var existing model.DocumentType
	findErr := s.db.WithContext(ctx).Where("code = ?", req.Code).First(&existing).Error
	if findErr == nil {
		return nil, fmt.Errorf("document type '%s' already exists", req.Code)
	}
	if !errors.Is(findErr, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check document type: %w: %v", ErrStorageUnavailable, findErr)
	}

	docType := model.DocumentType{
		Code:     req.Code,
		Name:     req.Name,
		Category: req.Category,
	}
	if err := s.db.WithContext(ctx).Create(&docType).Error; err != nil {
		return nil, fmt.Errorf("create document type: %w: %v", ErrStorageUnavailable, err)
	}

	resp := toDocumentTypeResponse(docType)
	return &resp, nil
}

// SeedDefaultTypes creates the standard compliance catalog if not already present
func (s *documentTypeService) SeedDefaultTypes(ctx context.Context) error {
	defaults := []model.DocumentType{
		{Code: "INVOICE", Name: "Monthly Invoice", Category: model.CategoryMonthlyMandatory},
		{Code: "GST_RETURN", Name: "GST Return", Category: model.CategoryMonthlyMandatory},
		{Code: "PF_CHALLAN", Name: "Provident Fund Challan", Category: model.CategoryMonthlyMandatory},
		{Code: "ESI_CHALLAN", Name: "ESI Contribution Challan", Category: model.CategoryMonthlyMandatory},
		{Code: "LABOUR_WELFARE_FUND", Name: "Labour Welfare Fund Return", Category: model.CategoryAnnualMandatory},
		{Code: "ANNUAL_COMPLIANCE_CERT", Name: "Annual Compliance Certificate", Category: model.CategoryAnnualMandatory},
		{Code: "REGISTRATION_CERT", Name: "Company Registration Certificate", Category: model.CategoryOneTimeOptional},
		{Code: "BANK_MANDATE", Name: "Bank Mandate Form", Category: model.CategoryOneTimeOptional},
	}

	for _, t := range defaults {
		var existing model.DocumentType
		result := s.db.WithContext(ctx).Where("code = ?", t.Code).First(&existing)
		if result.Error != nil {
			if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
				return fmt.Errorf("check document type '%s': %w", t.Code, result.Error)
			}
			if err := s.db.WithContext(ctx).Create(&t).Error; err != nil {
				return fmt.Errorf("seed document type '%s': %w", t.Code, err)
			}
		}
	}
	return nil
}

// --- Helpers ---

func toDocumentTypeResponse(t model.DocumentType) DocumentTypeResponse {
	return DocumentTypeResponse{
		ID:       t.ID.String(),
		Code:     t.Code,
		Name:     t.Name,
		Category: t.Category,
	}
}
