package model

import (
	"time"

	"github.com/google/uuid"
)

// DocumentStatus enum constants
const (
	DocStatusDraft       = "DRAFT"
	DocStatusPending     = "PENDING"
	DocStatusUnderReview = "UNDER_REVIEW"
	DocStatusApproved    = "APPROVED"
	DocStatusRejected    = "REJECTED" // soft-terminal: resubmission creates a new document
)

// ReviewStage enum constants — which approval role must act next while UNDER_REVIEW.
// Stages advance strictly consultant -> cross_verification -> final.
const (
	StageNone              = ""
	StageConsultant        = "CONSULTANT"
	StageCrossVerification = "CROSS_VERIFICATION"
	StageFinal             = "FINAL"
)

// Document is a single vendor submission. Exactly one current status at any time;
// history lives in the audit trail, never on the record itself.
type Document struct {
	ID             uuid.UUID    `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	VendorID       uuid.UUID    `gorm:"type:uuid;not null;index" json:"vendor_id"`
	Vendor         *Vendor      `gorm:"foreignKey:VendorID" json:"vendor,omitempty"`
	DocumentTypeID uuid.UUID    `gorm:"type:uuid;not null;index" json:"document_type_id"`
	DocumentType   DocumentType `gorm:"foreignKey:DocumentTypeID" json:"document_type"`
	Title          string       `gorm:"type:varchar(255);not null" json:"title"`
	Status         string       `gorm:"type:varchar(20);not null;default:'DRAFT';index" json:"status"`
	ReviewStage    string       `gorm:"type:varchar(30);not null;default:''" json:"review_stage"`

	// SupersedesID links a resubmission back to the rejected document it replaces.
	SupersedesID *uuid.UUID `gorm:"type:uuid;index" json:"supersedes_id,omitempty"`

	// Version is the optimistic concurrency counter — stale writers are rejected.
	Version int `gorm:"not null;default:1" json:"version"`

	Files []DocumentFile `gorm:"foreignKey:DocumentID;constraint:OnDelete:CASCADE" json:"files"`

	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DocumentFile holds attachment metadata. The path is opaque — storage lives elsewhere.
type DocumentFile struct {
	ID         uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	DocumentID uuid.UUID `gorm:"type:uuid;not null;index" json:"document_id"`
	FileName   string    `gorm:"type:varchar(255);not null" json:"file_name"`
	FilePath   string    `gorm:"type:text;not null" json:"file_path"`
	MimeType   string    `gorm:"type:varchar(100)" json:"mime_type"`
	SizeBytes  int64     `json:"size_bytes"`
	Position   int       `gorm:"not null;default:0" json:"position"`
	CreatedAt  time.Time `json:"created_at"`
}
