package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Vendor represents a supplier organization submitting regulatory documents
type Vendor struct {
	ID            uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name          string    `gorm:"type:varchar(255);not null" json:"name"`
	CompanyName   string    `gorm:"type:varchar(255)" json:"company_name"`
	TaxCode       string    `gorm:"type:varchar(50)" json:"tax_code"`
	ContactPerson string    `gorm:"type:varchar(255)" json:"contact_person"`
	Phone         string    `gorm:"type:varchar(50)" json:"phone"`
	Email         string    `gorm:"type:varchar(255)" json:"email"`
	// No column default here: gorm omits zero-valued plain fields on insert,
	// so a default:true would persist IsActive:false vendors as active.
	IsActive bool `json:"is_active"`

	// AssignedConsultantID scopes consultant visibility — one consultant per vendor at a time.
	AssignedConsultantID *uuid.UUID `gorm:"type:uuid;index" json:"assigned_consultant_id"`
	AssignedConsultant   *User      `gorm:"foreignKey:AssignedConsultantID" json:"assigned_consultant,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
