package permission

import (
	"errors"
	"fmt"
	"sort"

	"github.com/google/uuid"
)

// Role enumerates the fixed user roles.
type Role string

const (
	RoleAdmin         Role = "admin"
	RoleConsultant    Role = "consultant"
	RoleCrossVerifier Role = "cross_verifier"
	RoleApprover      Role = "approver"
	RoleVendor        Role = "vendor"
)

// Capability is a named permission code granted to a role.
type Capability string

const (
	CapCreateSubmissions  Capability = "documents.create_submissions"
	CapResubmitDocuments  Capability = "documents.resubmit"
	CapConsultantReview   Capability = "documents.consultant_review"
	CapApproveDocuments   Capability = "documents.approve"
	CapCrossVerification  Capability = "documents.cross_verify"
	CapFinalApproval      Capability = "documents.final_approve"
	CapRejectDocuments    Capability = "documents.reject"
	CapCommentDocuments   Capability = "documents.comment"
	CapViewOwnDocuments   Capability = "documents.view_own"
	CapViewAssignedDocs   Capability = "documents.view_assigned"
	CapViewAllDocuments   Capability = "documents.view_all"
	CapApproveLogins      Capability = "logins.approve"
	CapManageVendors      Capability = "vendors.manage"
	CapManageUsers        Capability = "users.manage"
	CapManageDocTypes     Capability = "document_types.manage"
	CapViewAuditTrail     Capability = "audit.read"
	CapViewComplianceRpts Capability = "compliance.read"
)

// Denial reason sentinels. All of them mean "access denied" to the caller,
// but they stay distinguishable for diagnostics and error payloads.
var (
	ErrRoleNotRecognized     = errors.New("role not recognized")
	ErrCapabilityDenied      = errors.New("capability denied")
	ErrNotDocumentOwner      = errors.New("document belongs to another vendor")
	ErrNotAssignedConsultant = errors.New("vendor is not assigned to this consultant")
	ErrDraftNotVisible       = errors.New("draft documents are private to the owning vendor")
)

type capabilitySet map[Capability]struct{}

func caps(list ...Capability) capabilitySet {
	s := make(capabilitySet, len(list))
	for _, c := range list {
		s[c] = struct{}{}
	}
	return s
}

// roleCapabilities is the static role -> capability table. Built once at
// process start and never mutated; unknown roles fail closed.
var roleCapabilities = map[Role]capabilitySet{
	RoleAdmin: caps(
		CapCreateSubmissions, CapResubmitDocuments,
		CapConsultantReview, CapApproveDocuments, CapCrossVerification,
		CapFinalApproval, CapRejectDocuments, CapCommentDocuments,
		CapViewOwnDocuments, CapViewAssignedDocs, CapViewAllDocuments,
		CapApproveLogins, CapManageVendors, CapManageUsers, CapManageDocTypes,
		CapViewAuditTrail, CapViewComplianceRpts,
	),
	RoleConsultant: caps(
		CapConsultantReview, CapApproveDocuments, CapRejectDocuments,
		CapCommentDocuments, CapViewAssignedDocs,
		CapApproveLogins, CapViewAuditTrail, CapViewComplianceRpts,
	),
	RoleCrossVerifier: caps(
		CapCrossVerification, CapRejectDocuments, CapCommentDocuments,
		CapViewAllDocuments, CapViewAuditTrail,
	),
	RoleApprover: caps(
		CapFinalApproval, CapRejectDocuments, CapCommentDocuments,
		CapViewAllDocuments, CapViewAuditTrail, CapViewComplianceRpts,
	),
	RoleVendor: caps(
		CapCreateSubmissions, CapResubmitDocuments, CapCommentDocuments,
		CapViewOwnDocuments,
	),
}

// Actor is the authenticated identity the governance core acts for.
// VendorID is set only for vendor-role actors.
type Actor struct {
	ID       uuid.UUID
	Name     string
	Role     Role
	VendorID *uuid.UUID
}

// DocumentScope carries the ownership and assignment facts a permission
// decision needs, without handing the full record to the predicate.
type DocumentScope struct {
	VendorID             uuid.UUID
	AssignedConsultantID *uuid.UUID
	Draft                bool
}

// ValidRole reports whether the role exists in the capability table.
func ValidRole(role Role) bool {
	_, ok := roleCapabilities[role]
	return ok
}

// Roles returns the known roles, for validation and seeding.
func Roles() []Role {
	return []Role{RoleAdmin, RoleConsultant, RoleCrossVerifier, RoleApprover, RoleVendor}
}

// Capabilities returns the sorted capability list for a role, empty for
// unknown roles.
func Capabilities(role Role) []Capability {
	set, ok := roleCapabilities[role]
	if !ok {
		return []Capability{}
	}
	out := make([]Capability, 0, len(set))
	for cap := range set {
		out = append(out, cap)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// HasCapability looks up the static table. Unknown roles and capabilities
// return false — never default-allow.
func HasCapability(role Role, cap Capability) bool {
	set, ok := roleCapabilities[role]
	if !ok {
		return false
	}
	_, ok = set[cap]
	return ok
}

// Check is the error-returning form of HasCapability, distinguishing an
// unrecognized role from a plain capability denial.
func Check(role Role, cap Capability) error {
	set, ok := roleCapabilities[role]
	if !ok {
		return fmt.Errorf("role %q: %w", role, ErrRoleNotRecognized)
	}
	if _, ok := set[cap]; !ok {
		return fmt.Errorf("role %q lacks %q: %w", role, cap, ErrCapabilityDenied)
	}
	return nil
}

// CanActOnDocument decides whether the actor may exercise the capability
// against the scoped document. Pure predicate, no side effects.
//
// Vendors must own the document. Consultants must be assigned to its vendor.
// Admins bypass assignment scoping. Cross-verifiers and approvers are
// capability-gated only. Drafts are visible to no one but the owning vendor.
func CanActOnDocument(actor Actor, cap Capability, scope DocumentScope) error {
	if err := Check(actor.Role, cap); err != nil {
		return err
	}

	owner := actor.VendorID != nil && *actor.VendorID == scope.VendorID
	if scope.Draft && !owner {
		return ErrDraftNotVisible
	}

	switch actor.Role {
	case RoleVendor:
		if !owner {
			return ErrNotDocumentOwner
		}
	case RoleConsultant:
		if scope.AssignedConsultantID == nil || *scope.AssignedConsultantID != actor.ID {
			return ErrNotAssignedConsultant
		}
	}
	return nil
}

// CanActOnVendor mirrors the document scoping rule for vendor-level actions,
// reused by vendor-profile and login-approval checks.
func CanActOnVendor(actor Actor, cap Capability, vendorID uuid.UUID, assignedConsultantID *uuid.UUID) error {
	if err := Check(actor.Role, cap); err != nil {
		return err
	}

	switch actor.Role {
	case RoleVendor:
		if actor.VendorID == nil || *actor.VendorID != vendorID {
			return ErrNotDocumentOwner
		}
	case RoleConsultant:
		if assignedConsultantID == nil || *assignedConsultantID != actor.ID {
			return ErrNotAssignedConsultant
		}
	}
	return nil
}

// IsDenial reports whether err is any of the permission denial reasons.
func IsDenial(err error) bool {
	return errors.Is(err, ErrRoleNotRecognized) ||
		errors.Is(err, ErrCapabilityDenied) ||
		errors.Is(err, ErrNotDocumentOwner) ||
		errors.Is(err, ErrNotAssignedConsultant) ||
		errors.Is(err, ErrDraftNotVisible)
}
