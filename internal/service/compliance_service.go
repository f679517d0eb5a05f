package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"vendordocs/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ComplianceStatus enum constants
const (
	StatusCompliant    = "COMPLIANT"
	StatusNonCompliant = "NON_COMPLIANT"
)

// complianceWindowDays — a vendor is compliant while its newest approved
// mandatory document is at most this many days old.
const complianceWindowDays = 30

// fleetWorkers bounds the fan-out of the fleet report. Per-vendor
// computations are independent reads and may run in parallel.
const fleetWorkers = 8

// --- DTOs ---

type VendorComplianceResult struct {
	VendorID            string  `json:"vendor_id"`
	VendorName          string  `json:"vendor_name"`
	Status              string  `json:"status"`
	DaysSinceLastUpload *int    `json:"days_since_last_upload"`
	LastUploadDate      *string `json:"last_upload_date"`
}

type FleetComplianceSummary struct {
	TotalVendors           int     `json:"total_vendors"`
	CompliantVendors       int     `json:"compliant_vendors"`
	NonCompliantVendors    int     `json:"non_compliant_vendors"`
	AverageDaysSinceUpload float64 `json:"average_days_since_upload"`
}

type FleetComplianceReport struct {
	AsOf    string                   `json:"as_of"`
	Vendors []VendorComplianceResult `json:"vendors"`
	Summary FleetComplianceSummary   `json:"summary"`
}

// --- Interface ---

type ComplianceService interface {
	// ComputeVendorStatus classifies one vendor against the document types
	// required for the month of asOf.
	ComputeVendorStatus(ctx context.Context, vendorID uuid.UUID, asOf time.Time) (*VendorComplianceResult, error)

	// ComputeFleetReport aggregates per-vendor results across active vendors.
	ComputeFleetReport(ctx context.Context, asOf time.Time) (*FleetComplianceReport, error)
}

type complianceService struct {
	db *gorm.DB
}

func NewComplianceService(db *gorm.DB) ComplianceService {
	return &complianceService{db: db}
}

// --- Implementation ---

func (s *complianceService) ComputeVendorStatus(ctx context.Context, vendorID uuid.UUID, asOf time.Time) (*VendorComplianceResult, error) {
	var result *VendorComplianceResult

	// One transaction per vendor keeps the two document reads on a single
	// consistent snapshot even while transitions run concurrently.
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var vendor model.Vendor
		if findErr := tx.First(&vendor, "id = ?", vendorID).Error; findErr != nil {
			return notFoundOrStorage("vendor", findErr)
		}

		requiredTypeIDs, typesErr := requiredTypeIDs(tx, asOf.Month())
		if typesErr != nil {
			return typesErr
		}

		res, computeErr := computeForVendor(tx, vendor, requiredTypeIDs, asOf)
		if computeErr != nil {
			return computeErr
		}
		result = res
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *complianceService) ComputeFleetReport(ctx context.Context, asOf time.Time) (*FleetComplianceReport, error) {
	var vendors []model.Vendor
	if err := s.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("name ASC").
		Find(&vendors).Error; err != nil {
		return nil, fmt.Errorf("fetch vendors: %w: %v", ErrStorageUnavailable, err)
	}

	results := make([]VendorComplianceResult, len(vendors))
	errs := make([]error, len(vendors))

	sem := make(chan struct{}, fleetWorkers)
	var wg sync.WaitGroup
	for i := range vendors {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int) {
			defer wg.Done()
			defer func() { <-sem }()
			res, err := s.ComputeVendorStatus(ctx, vendors[i].ID, asOf)
			if err != nil {
				errs[i] = err
				return
			}
			results[i] = *res
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	sort.Slice(results, func(i, j int) bool { return results[i].VendorName < results[j].VendorName })

	summary := FleetComplianceSummary{TotalVendors: len(results)}
	daysSum := decimal.Zero
	daysCount := 0
	for _, r := range results {
		if r.Status == StatusCompliant {
			summary.CompliantVendors++
		} else {
			summary.NonCompliantVendors++
		}
		if r.DaysSinceLastUpload != nil {
			daysSum = daysSum.Add(decimal.NewFromInt(int64(*r.DaysSinceLastUpload)))
			daysCount++
		}
	}
	// No vendor with a numeric day count averages to zero, not an error.
	if daysCount > 0 {
		summary.AverageDaysSinceUpload = daysSum.
			Div(decimal.NewFromInt(int64(daysCount))).
			Round(1).InexactFloat64()
	}

	return &FleetComplianceReport{
		AsOf:    asOf.Format("2006-01-02"),
		Vendors: results,
		Summary: summary,
	}, nil
}

// --- Helpers ---

// requiredTypeIDs resolves the mandatory catalog entries for a calendar
// month: every monthly type, plus annual types in January only.
func requiredTypeIDs(tx *gorm.DB, month time.Month) ([]uuid.UUID, error) {
	categories := []string{model.CategoryMonthlyMandatory}
	if month == time.January {
		categories = append(categories, model.CategoryAnnualMandatory)
	}

	var types []model.DocumentType
	if err := tx.Where("category IN ?", categories).Find(&types).Error; err != nil {
		return nil, fmt.Errorf("fetch document types: %w: %v", ErrStorageUnavailable, err)
	}

	ids := make([]uuid.UUID, 0, len(types))
	for _, t := range types {
		ids = append(ids, t.ID)
	}
	return ids, nil
}

func computeForVendor(tx *gorm.DB, vendor model.Vendor, requiredTypeIDs []uuid.UUID, asOf time.Time) (*VendorComplianceResult, error) {
	result := &VendorComplianceResult{
		VendorID:   vendor.ID.String(),
		VendorName: vendor.Name,
		Status:     StatusNonCompliant,
	}

	// Most recent approved document of a required type.
	if len(requiredTypeIDs) > 0 {
		var doc model.Document
		err := tx.Where("vendor_id = ? AND status = ? AND document_type_id IN ?",
			vendor.ID, model.DocStatusApproved, requiredTypeIDs).
			Order("created_at DESC").
			First(&doc).Error
		switch {
		case err == nil:
			days := daysBetween(doc.CreatedAt, asOf)
			result.DaysSinceLastUpload = &days
			date := doc.CreatedAt.Format("2006-01-02")
			result.LastUploadDate = &date
			if days <= complianceWindowDays {
				result.Status = StatusCompliant
			}
			return result, nil
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return nil, fmt.Errorf("fetch compliance document: %w: %v", ErrStorageUnavailable, err)
		}
	}

	// Fallback: newest document of any type populates the display fields
	// only. The verdict stays NON_COMPLIANT unconditionally here.
	var fallback model.Document
	err := tx.Where("vendor_id = ?", vendor.ID).
		Order("created_at DESC").
		First(&fallback).Error
	switch {
	case err == nil:
		days := daysBetween(fallback.CreatedAt, asOf)
		result.DaysSinceLastUpload = &days
		date := fallback.CreatedAt.Format("2006-01-02")
		result.LastUploadDate = &date
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, fmt.Errorf("fetch fallback document: %w: %v", ErrStorageUnavailable, err)
	}
	return result, nil
}

// daysBetween returns whole days from upload to the reference date,
// truncated toward zero.
func daysBetween(uploaded, asOf time.Time) int {
	return int(asOf.Sub(uploaded).Hours() / 24)
}
