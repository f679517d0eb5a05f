package model

import (
	"time"

	"github.com/google/uuid"
)

// Audit action constants
const (
	AuditActionCreated       = "CREATED"
	AuditActionUpdated       = "UPDATED"
	AuditActionReviewed      = "REVIEWED"
	AuditActionApproved      = "APPROVED"
	AuditActionRejected      = "REJECTED"
	AuditActionCommented     = "COMMENTED"
	AuditActionLoginRequest  = "LOGIN_REQUESTED"
	AuditActionLoginApproved = "LOGIN_APPROVED"
	AuditActionLoginRejected = "LOGIN_REJECTED"
)

// AuditEvent tracks Who, What, and When for every governance action.
// Append-only: no update or delete path exists anywhere in the codebase.
// Ordering is created_at ascending; Seq breaks timestamp ties deterministically.
type AuditEvent struct {
	ID        uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Seq       int64      `gorm:"autoIncrement;uniqueIndex" json:"seq"`
	SubjectID string     `gorm:"type:varchar(50);not null;index" json:"subject_id"` // document or login-approval id
	Action    string     `gorm:"type:varchar(50);not null;index" json:"action"`
	ActorID   *uuid.UUID `gorm:"type:uuid;index" json:"actor_id"` // Nullable gracefully if automated
	Actor     *User      `gorm:"foreignKey:ActorID" json:"actor,omitempty"`
	ActorName string     `gorm:"type:varchar(255)" json:"actor_name"`
	ActorRole string     `gorm:"type:varchar(50)" json:"actor_role"`
	Detail    string     `gorm:"type:text" json:"detail"`

	// Transition metadata, empty for non-transition events
	PreviousStatus string `gorm:"type:varchar(30)" json:"previous_status,omitempty"`
	NewStatus      string `gorm:"type:varchar(30)" json:"new_status,omitempty"`
	Comment        string `gorm:"type:text" json:"comment,omitempty"`

	CreatedAt time.Time `gorm:"index" json:"created_at"`
}
