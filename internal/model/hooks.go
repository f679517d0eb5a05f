package model

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// IDs are assigned app-side so create paths behave identically across
// dialects; the column default remains a safety net for raw inserts.

func assignID(id *uuid.UUID) {
	if *id == uuid.Nil {
		*id = uuid.New()
	}
}

func (u *User) BeforeCreate(*gorm.DB) error          { assignID(&u.ID); return nil }
func (r *RefreshToken) BeforeCreate(*gorm.DB) error  { assignID(&r.ID); return nil }
func (v *Vendor) BeforeCreate(*gorm.DB) error        { assignID(&v.ID); return nil }
func (t *DocumentType) BeforeCreate(*gorm.DB) error  { assignID(&t.ID); return nil }
func (d *Document) BeforeCreate(*gorm.DB) error      { assignID(&d.ID); return nil }
func (f *DocumentFile) BeforeCreate(*gorm.DB) error  { assignID(&f.ID); return nil }
func (e *AuditEvent) BeforeCreate(*gorm.DB) error    { assignID(&e.ID); return nil }
func (a *LoginApproval) BeforeCreate(*gorm.DB) error { assignID(&a.ID); return nil }
