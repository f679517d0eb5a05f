package service

import (
	"testing"
	"time"

	"vendordocs/internal/model"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// --- SQLite-friendly schemas only for tests (no postgres column defaults) ---

type userSQLite struct {
	ID                    string `gorm:"size:36;primaryKey"`
	Username              string `gorm:"uniqueIndex"`
	Email                 string `gorm:"uniqueIndex"`
	Phone                 string
	Password              string
	Role                  string
	VendorID              *string `gorm:"size:36"`
	RequiresLoginApproval bool
	CreatedAt             time.Time
	UpdatedAt             time.Time
	DeletedAt             gorm.DeletedAt
}

func (userSQLite) TableName() string { return "users" }

type refreshTokenSQLite struct {
	ID        string `gorm:"size:36;primaryKey"`
	UserID    string `gorm:"size:36"`
	Token     string `gorm:"uniqueIndex"`
	ExpiresAt time.Time
	CreatedAt time.Time
}

func (refreshTokenSQLite) TableName() string { return "refresh_tokens" }

type vendorSQLite struct {
	ID                   string `gorm:"size:36;primaryKey"`
	Name                 string
	CompanyName          string
	TaxCode              string
	ContactPerson        string
	Phone                string
	Email                string
	IsActive             bool
	AssignedConsultantID *string `gorm:"size:36"`
	CreatedAt            time.Time
	UpdatedAt            time.Time
	DeletedAt            gorm.DeletedAt
}

func (vendorSQLite) TableName() string { return "vendors" }

type documentTypeSQLite struct {
	ID        string `gorm:"size:36;primaryKey"`
	Code      string `gorm:"uniqueIndex"`
	Name      string
	Category  string
	CreatedAt time.Time
}

func (documentTypeSQLite) TableName() string { return "document_types" }

type documentSQLite struct {
	ID             string `gorm:"size:36;primaryKey"`
	VendorID       string `gorm:"size:36;index"`
	DocumentTypeID string `gorm:"size:36;index"`
	Title          string
	Status         string
	ReviewStage    string
	SupersedesID   *string `gorm:"size:36"`
	Version        int
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (documentSQLite) TableName() string { return "documents" }

type documentFileSQLite struct {
	ID         string `gorm:"size:36;primaryKey"`
	DocumentID string `gorm:"size:36;index"`
	FileName   string
	FilePath   string
	MimeType   string
	SizeBytes  int64
	Position   int
	CreatedAt  time.Time
}

func (documentFileSQLite) TableName() string { return "document_files" }

// Seq is the integer primary key here so sqlite assigns it monotonically,
// matching the bigserial behavior the real schema relies on for tie-breaks.
type auditEventSQLite struct {
	Seq            int64  `gorm:"primaryKey;autoIncrement"`
	ID             string `gorm:"size:36;uniqueIndex"`
	SubjectID      string `gorm:"index"`
	Action         string
	ActorID        *string `gorm:"size:36"`
	ActorName      string
	ActorRole      string
	Detail         string
	PreviousStatus string
	NewStatus      string
	Comment        string
	CreatedAt      time.Time `gorm:"index"`
}

func (auditEventSQLite) TableName() string { return "audit_events" }

type loginApprovalSQLite struct {
	ID           string `gorm:"size:36;primaryKey"`
	VendorID     string `gorm:"size:36;index"`
	Status       string
	RequestToken string  `gorm:"uniqueIndex"`
	DecidedBy    *string `gorm:"size:36"`
	DecidedAt    *time.Time
	CreatedAt    time.Time
	ExpiresAt    time.Time
}

func (loginApprovalSQLite) TableName() string { return "login_approvals" }

// openTestDB creates an in-memory sqlite DB and migrates ONLY the
// sqlite-safe schemas. A single connection keeps the memory DB stable
// across goroutines.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
		&userSQLite{},
		&refreshTokenSQLite{},
		&vendorSQLite{},
		&documentTypeSQLite{},
		&documentSQLite{},
		&documentFileSQLite{},
		&auditEventSQLite{},
		&loginApprovalSQLite{},
	); err != nil {
		t.Fatalf("auto-migrate: %v", err)
	}
	return db
}

// fixtures is the standard cast: one vendor with its user, the assigned
// consultant, and one user per reviewing role.
type fixtures struct {
	vendor        *model.Vendor
	vendorUser    *model.User
	consultant    *model.User
	crossVerifier *model.User
	approver      *model.User
	admin         *model.User

	monthlyType  *model.DocumentType
	annualType   *model.DocumentType
	optionalType *model.DocumentType
}

func mustCreate(t *testing.T, db *gorm.DB, value interface{}) {
	t.Helper()
	if err := db.Create(value).Error; err != nil {
		t.Fatalf("seed %T: %v", value, err)
	}
}

func seedFixtures(t *testing.T, db *gorm.DB) fixtures {
	t.Helper()

	consultant := &model.User{Username: "consultant", Email: "consultant@example.com", Phone: "1", Password: "x", Role: "consultant"}
	mustCreate(t, db, consultant)

	vendor := &model.Vendor{Name: "Acme Supplies", IsActive: true, AssignedConsultantID: &consultant.ID}
	mustCreate(t, db, vendor)

	vendorUser := &model.User{Username: "acme", Email: "acme@example.com", Phone: "2", Password: "x", Role: "vendor", VendorID: &vendor.ID}
	mustCreate(t, db, vendorUser)

	crossVerifier := &model.User{Username: "verifier", Email: "verifier@example.com", Phone: "3", Password: "x", Role: "cross_verifier"}
	mustCreate(t, db, crossVerifier)

	approver := &model.User{Username: "approver", Email: "approver@example.com", Phone: "4", Password: "x", Role: "approver"}
	mustCreate(t, db, approver)

	admin := &model.User{Username: "admin", Email: "admin@example.com", Phone: "5", Password: "x", Role: "admin"}
	mustCreate(t, db, admin)

	monthly := &model.DocumentType{Code: "GST_RETURN", Name: "GST Return", Category: model.CategoryMonthlyMandatory}
	mustCreate(t, db, monthly)
	annual := &model.DocumentType{Code: "ANNUAL_COMPLIANCE_CERT", Name: "Annual Compliance Certificate", Category: model.CategoryAnnualMandatory}
	mustCreate(t, db, annual)
	optional := &model.DocumentType{Code: "BANK_MANDATE", Name: "Bank Mandate Form", Category: model.CategoryOneTimeOptional}
	mustCreate(t, db, optional)

	return fixtures{
		vendor:        vendor,
		vendorUser:    vendorUser,
		consultant:    consultant,
		crossVerifier: crossVerifier,
		approver:      approver,
		admin:         admin,
		monthlyType:   monthly,
		annualType:    annual,
		optionalType:  optional,
	}
}

// auditCount returns the number of audit events recorded for a subject.
func auditCount(t *testing.T, db *gorm.DB, subjectID string) int64 {
	t.Helper()
	var n int64
	if err := db.Model(&model.AuditEvent{}).Where("subject_id = ?", subjectID).Count(&n).Error; err != nil {
		t.Fatalf("count audit events: %v", err)
	}
	return n
}
