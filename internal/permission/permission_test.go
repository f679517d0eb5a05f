package permission

import (
	"errors"
	"testing"

	"github.com/google/uuid"
)

func TestUnknownRolesFailClosed(t *testing.T) {
	for _, role := range []Role{"", "superuser", "ADMIN", "manager"} {
		if ValidRole(role) {
			t.Errorf("role %q should not be recognized", role)
		}
		if HasCapability(role, CapViewAllDocuments) {
			t.Errorf("role %q should hold no capability", role)
		}
		if err := Check(role, CapViewAllDocuments); !errors.Is(err, ErrRoleNotRecognized) {
			t.Errorf("role %q: expected ErrRoleNotRecognized, got %v", role, err)
		}
	}
}

func TestCapabilityMatrix(t *testing.T) {
	cases := []struct {
		role Role
		cap  Capability
		want bool
	}{
		{RoleAdmin, CapManageUsers, true},
		{RoleAdmin, CapFinalApproval, true},
		{RoleVendor, CapCreateSubmissions, true},
		{RoleVendor, CapResubmitDocuments, true},
		{RoleVendor, CapApproveDocuments, false},
		{RoleVendor, CapViewAllDocuments, false},
		{RoleConsultant, CapApproveDocuments, true},
		{RoleConsultant, CapApproveLogins, true},
		{RoleConsultant, CapCrossVerification, false},
		{RoleConsultant, CapFinalApproval, false},
		{RoleCrossVerifier, CapCrossVerification, true},
		{RoleCrossVerifier, CapApproveDocuments, false},
		{RoleCrossVerifier, CapApproveLogins, false},
		{RoleApprover, CapFinalApproval, true},
		{RoleApprover, CapCrossVerification, false},
		{RoleApprover, CapCreateSubmissions, false},
	}

	for _, tc := range cases {
		if got := HasCapability(tc.role, tc.cap); got != tc.want {
			t.Errorf("HasCapability(%s, %s) = %v, want %v", tc.role, tc.cap, got, tc.want)
		}
	}
}

func TestAdminHoldsEveryListedCapability(t *testing.T) {
	for _, role := range Roles() {
		for _, cap := range Capabilities(role) {
			if !HasCapability(RoleAdmin, cap) {
				t.Errorf("admin missing %s held by %s", cap, role)
			}
		}
	}
}

func TestCheckDistinguishesDenialReasons(t *testing.T) {
	if err := Check(RoleVendor, CapApproveDocuments); !errors.Is(err, ErrCapabilityDenied) {
		t.Fatalf("expected ErrCapabilityDenied, got %v", err)
	}
	if err := Check("ghost", CapApproveDocuments); !errors.Is(err, ErrRoleNotRecognized) {
		t.Fatalf("expected ErrRoleNotRecognized, got %v", err)
	}
	if err := Check(RoleApprover, CapFinalApproval); err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
}

func TestCanActOnDocumentScoping(t *testing.T) {
	vendorID := uuid.New()
	otherVendorID := uuid.New()
	consultantID := uuid.New()

	owner := Actor{ID: uuid.New(), Role: RoleVendor, VendorID: &vendorID}
	foreign := Actor{ID: uuid.New(), Role: RoleVendor, VendorID: &otherVendorID}
	assigned := Actor{ID: consultantID, Role: RoleConsultant}
	unassigned := Actor{ID: uuid.New(), Role: RoleConsultant}
	admin := Actor{ID: uuid.New(), Role: RoleAdmin}

	scope := DocumentScope{VendorID: vendorID, AssignedConsultantID: &consultantID}

	if err := CanActOnDocument(owner, CapViewOwnDocuments, scope); err != nil {
		t.Errorf("owner should pass: %v", err)
	}
	if err := CanActOnDocument(foreign, CapViewOwnDocuments, scope); !errors.Is(err, ErrNotDocumentOwner) {
		t.Errorf("foreign vendor: expected ErrNotDocumentOwner, got %v", err)
	}
	if err := CanActOnDocument(assigned, CapConsultantReview, scope); err != nil {
		t.Errorf("assigned consultant should pass: %v", err)
	}
	if err := CanActOnDocument(unassigned, CapConsultantReview, scope); !errors.Is(err, ErrNotAssignedConsultant) {
		t.Errorf("unassigned consultant: expected ErrNotAssignedConsultant, got %v", err)
	}
	if err := CanActOnDocument(admin, CapViewAllDocuments, scope); err != nil {
		t.Errorf("admin should bypass assignment scoping: %v", err)
	}
}

func TestDraftsVisibleOnlyToOwner(t *testing.T) {
	vendorID := uuid.New()
	consultantID := uuid.New()
	draft := DocumentScope{VendorID: vendorID, AssignedConsultantID: &consultantID, Draft: true}

	owner := Actor{ID: uuid.New(), Role: RoleVendor, VendorID: &vendorID}
	if err := CanActOnDocument(owner, CapViewOwnDocuments, draft); err != nil {
		t.Errorf("owner should see own draft: %v", err)
	}

	for _, actor := range []Actor{
		{ID: uuid.New(), Role: RoleAdmin},
		{ID: consultantID, Role: RoleConsultant},
		{ID: uuid.New(), Role: RoleApprover},
	} {
		cap := CapViewAllDocuments
		if actor.Role == RoleConsultant {
			cap = CapViewAssignedDocs
		}
		if err := CanActOnDocument(actor, cap, draft); !errors.Is(err, ErrDraftNotVisible) {
			t.Errorf("%s: expected ErrDraftNotVisible, got %v", actor.Role, err)
		}
	}
}

func TestIsDenial(t *testing.T) {
	for _, err := range []error{
		ErrRoleNotRecognized,
		ErrCapabilityDenied,
		ErrNotDocumentOwner,
		ErrNotAssignedConsultant,
		ErrDraftNotVisible,
	} {
		if !IsDenial(err) {
			t.Errorf("IsDenial(%v) = false", err)
		}
	}
	if IsDenial(errors.New("disk full")) {
		t.Errorf("unrelated error misclassified as denial")
	}
}
