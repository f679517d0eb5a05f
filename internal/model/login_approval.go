package model

import (
	"time"

	"github.com/google/uuid"
)

// LoginApprovalStatus enum constants
const (
	LoginApprovalPending  = "PENDING"
	LoginApprovalApproved = "APPROVED"
	LoginApprovalRejected = "REJECTED"
	// LoginApprovalExpired is a computed read-time status, never stored.
	LoginApprovalExpired = "EXPIRED"
)

// LoginApproval gates a vendor login behind an explicit sign-off.
// At most one pending, non-expired approval exists per vendor; once the status
// leaves PENDING it is terminal — a new login attempt creates a new record.
type LoginApproval struct {
	ID           uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	VendorID     uuid.UUID  `gorm:"type:uuid;not null;index" json:"vendor_id"`
	Vendor       *Vendor    `gorm:"foreignKey:VendorID" json:"vendor,omitempty"`
	Status       string     `gorm:"type:varchar(20);not null;default:'PENDING';index" json:"status"`
	RequestToken string     `gorm:"type:varchar(255);uniqueIndex;not null" json:"-"`
	DecidedBy    *uuid.UUID `gorm:"type:uuid" json:"decided_by,omitempty"`
	DecidedAt    *time.Time `json:"decided_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	ExpiresAt    time.Time  `gorm:"not null" json:"expires_at"`
}

// ExpiredAt reports whether the approval has lapsed at the given instant.
// Expiry is evaluated lazily on read, never by an active timer.
func (a LoginApproval) ExpiredAt(now time.Time) bool {
	return now.After(a.ExpiresAt)
}

// EffectiveStatus resolves the read-time status: a pending approval past its
// expiry is reported as EXPIRED and treated like a rejection by consumers.
func (a LoginApproval) EffectiveStatus(now time.Time) string {
	if a.Status == LoginApprovalPending && a.ExpiredAt(now) {
		return LoginApprovalExpired
	}
	return a.Status
}
