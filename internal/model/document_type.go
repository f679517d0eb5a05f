package model

import (
	"time"

	"github.com/google/uuid"
)

// ComplianceCategory enum constants — drives which calendar months require a type
const (
	CategoryMonthlyMandatory = "MONTHLY_MANDATORY"
	CategoryAnnualMandatory  = "ANNUAL_MANDATORY" // required in January only
	CategoryOneTimeOptional  = "ONE_TIME_OPTIONAL"
)

// DocumentType classifies a regulatory document. Category is immutable once created.
type DocumentType struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Code      string    `gorm:"type:varchar(100);uniqueIndex;not null" json:"code"` // e.g. "INVOICE", "LABOUR_WELFARE_FUND"
	Name      string    `gorm:"type:varchar(255);not null" json:"name"`
	Category  string    `gorm:"type:varchar(30);not null;index" json:"category"`
	CreatedAt time.Time `json:"created_at"`
}

// RequiredIn reports whether this type is mandatory for the given calendar month.
func (t DocumentType) RequiredIn(month time.Month) bool {
	switch t.Category {
	case CategoryMonthlyMandatory:
		return true
	case CategoryAnnualMandatory:
		return month == time.January
	default:
		return false
	}
}
