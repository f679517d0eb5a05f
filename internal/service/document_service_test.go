package service

import (
	"context"
	"errors"
	"testing"

	"vendordocs/internal/model"
	"vendordocs/internal/permission"
)

func TestFullApprovalLifecycle(t *testing.T) {
	db := openTestDB(t)
	f := seedFixtures(t, db)
	svc := NewDocumentService(db, nil)
	ctx := context.Background()

	doc, err := svc.CreateDocument(ctx, f.vendorUser.ID.String(), CreateDocumentRequest{
		DocumentTypeID: f.monthlyType.ID.String(),
		Title:          "GST Return March",
		Files:          []FileInput{{FileName: "gst.pdf", FilePath: "/uploads/gst.pdf"}},
		Submit:         true,
	})
	if err != nil {
		t.Fatalf("CreateDocument: %v", err)
	}
	if doc.Status != model.DocStatusPending {
		t.Fatalf("expected PENDING after submit-on-create, got %s", doc.Status)
	}

	doc, err = svc.BeginReview(ctx, doc.ID, f.consultant.ID.String())
	if err != nil {
		t.Fatalf("BeginReview: %v", err)
	}
	if doc.StatusLabel != "UNDER_REVIEW:CONSULTANT" {
		t.Fatalf("expected UNDER_REVIEW:CONSULTANT, got %s", doc.StatusLabel)
	}

	doc, err = svc.Approve(ctx, doc.ID, f.consultant.ID.String())
	if err != nil {
		t.Fatalf("consultant Approve: %v", err)
	}
	if doc.StatusLabel != "UNDER_REVIEW:CROSS_VERIFICATION" {
		t.Fatalf("expected UNDER_REVIEW:CROSS_VERIFICATION, got %s", doc.StatusLabel)
	}

	doc, err = svc.Approve(ctx, doc.ID, f.crossVerifier.ID.String())
	if err != nil {
		t.Fatalf("cross-verifier Approve: %v", err)
	}
	if doc.StatusLabel != "UNDER_REVIEW:FINAL" {
		t.Fatalf("expected UNDER_REVIEW:FINAL, got %s", doc.StatusLabel)
	}

	doc, err = svc.Approve(ctx, doc.ID, f.approver.ID.String())
	if err != nil {
		t.Fatalf("approver Approve: %v", err)
	}
	if doc.Status != model.DocStatusApproved {
		t.Fatalf("expected APPROVED, got %s", doc.Status)
	}

	// CREATED + REVIEWED + three APPROVED events, exactly one per action.
	if n := auditCount(t, db, doc.ID); n != 5 {
		t.Fatalf("expected 5 audit events, got %d", n)
	}
}

func TestDraftSubmitThenReject(t *testing.T) {
	db := openTestDB(t)
	f := seedFixtures(t, db)
	svc := NewDocumentService(db, nil)
	ctx := context.Background()

	doc, err := svc.CreateDocument(ctx, f.vendorUser.ID.String(), CreateDocumentRequest{
		DocumentTypeID: f.monthlyType.ID.String(),
		Title:          "Draft return",
	})
	if err != nil {
		t.Fatalf("CreateDocument: %v", err)
	}
	if doc.Status != model.DocStatusDraft {
		t.Fatalf("expected DRAFT, got %s", doc.Status)
	}

	if doc, err = svc.Submit(ctx, doc.ID, f.vendorUser.ID.String()); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if doc, err = svc.BeginReview(ctx, doc.ID, f.consultant.ID.String()); err != nil {
		t.Fatalf("BeginReview: %v", err)
	}

	doc, err = svc.Reject(ctx, doc.ID, f.consultant.ID.String(), "missing challan number")
	if err != nil {
		t.Fatalf("Reject: %v", err)
	}
	if doc.Status != model.DocStatusRejected {
		t.Fatalf("expected REJECTED, got %s", doc.Status)
	}

	// Rejection reason lands in the audit trail.
	var ev model.AuditEvent
	if err := db.Where("subject_id = ? AND action = ?", doc.ID, model.AuditActionRejected).First(&ev).Error; err != nil {
		t.Fatalf("load rejection event: %v", err)
	}
	if ev.Comment != "missing challan number" {
		t.Fatalf("expected rejection reason in audit comment, got %q", ev.Comment)
	}
}

func TestInvalidTransitionLeavesStatusUntouched(t *testing.T) {
	db := openTestDB(t)
	f := seedFixtures(t, db)
	svc := NewDocumentService(db, nil)
	ctx := context.Background()

	doc, err := svc.CreateDocument(ctx, f.vendorUser.ID.String(), CreateDocumentRequest{
		DocumentTypeID: f.monthlyType.ID.String(),
		Title:          "Pending doc",
		Submit:         true,
	})
	if err != nil {
		t.Fatalf("CreateDocument: %v", err)
	}
	before := auditCount(t, db, doc.ID)

	// PENDING cannot be approved; review has not started.
	if _, err := svc.Approve(ctx, doc.ID, f.consultant.ID.String()); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}

	var stored model.Document
	if err := db.First(&stored, "id = ?", doc.ID).Error; err != nil {
		t.Fatalf("reload document: %v", err)
	}
	if stored.Status != model.DocStatusPending {
		t.Fatalf("status changed on failed transition: %s", stored.Status)
	}
	if after := auditCount(t, db, doc.ID); after != before {
		t.Fatalf("failed transition appended audit events: %d -> %d", before, after)
	}
}

func TestStageOrderIsStrict(t *testing.T) {
	db := openTestDB(t)
	f := seedFixtures(t, db)
	svc := NewDocumentService(db, nil)
	ctx := context.Background()

	doc, err := svc.CreateDocument(ctx, f.vendorUser.ID.String(), CreateDocumentRequest{
		DocumentTypeID: f.monthlyType.ID.String(),
		Title:          "Stage order",
		Submit:         true,
	})
	if err != nil {
		t.Fatalf("CreateDocument: %v", err)
	}
	if _, err := svc.BeginReview(ctx, doc.ID, f.consultant.ID.String()); err != nil {
		t.Fatalf("BeginReview: %v", err)
	}

	// The final approver holds an approval capability, but the consultant
	// stage is still pending: invalid transition, not a permission denial.
	_, err = svc.Approve(ctx, doc.ID, f.approver.ID.String())
	if !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition for stage skip, got %v", err)
	}

	// A vendor holds no approval capability at all: denial.
	_, err = svc.Approve(ctx, doc.ID, f.vendorUser.ID.String())
	if !permission.IsDenial(err) {
		t.Fatalf("expected permission denial for vendor, got %v", err)
	}
}

func TestDenialProducesNoAuditEvent(t *testing.T) {
	db := openTestDB(t)
	f := seedFixtures(t, db)
	svc := NewDocumentService(db, nil)
	ctx := context.Background()

	// Second vendor, not assigned to the consultant, with its own user.
	otherVendor := &model.Vendor{Name: "Other Corp", IsActive: true}
	mustCreate(t, db, otherVendor)
	otherUser := &model.User{Username: "other", Email: "other@example.com", Phone: "9", Password: "x", Role: "vendor", VendorID: &otherVendor.ID}
	mustCreate(t, db, otherUser)

	doc, err := svc.CreateDocument(ctx, f.vendorUser.ID.String(), CreateDocumentRequest{
		DocumentTypeID: f.monthlyType.ID.String(),
		Title:          "Private draft",
	})
	if err != nil {
		t.Fatalf("CreateDocument: %v", err)
	}
	before := auditCount(t, db, doc.ID)

	if _, err := svc.Submit(ctx, doc.ID, otherUser.ID.String()); !permission.IsDenial(err) {
		t.Fatalf("expected denial for foreign vendor, got %v", err)
	}
	if after := auditCount(t, db, doc.ID); after != before {
		t.Fatalf("denied attempt appended audit events: %d -> %d", before, after)
	}
}

func TestDraftsArePrivateToOwner(t *testing.T) {
	db := openTestDB(t)
	f := seedFixtures(t, db)
	svc := NewDocumentService(db, nil)
	ctx := context.Background()

	doc, err := svc.CreateDocument(ctx, f.vendorUser.ID.String(), CreateDocumentRequest{
		DocumentTypeID: f.monthlyType.ID.String(),
		Title:          "Unsubmitted",
	})
	if err != nil {
		t.Fatalf("CreateDocument: %v", err)
	}

	// Even the admin cannot read a draft.
	if _, err := svc.GetDocument(ctx, doc.ID, f.admin.ID.String()); !errors.Is(err, permission.ErrDraftNotVisible) {
		t.Fatalf("expected ErrDraftNotVisible for admin, got %v", err)
	}
	// The owner can.
	if _, err := svc.GetDocument(ctx, doc.ID, f.vendorUser.ID.String()); err != nil {
		t.Fatalf("owner GetDocument: %v", err)
	}

	// Drafts are absent from every non-owner listing.
	docs, _, err := svc.ListDocuments(ctx, f.admin.ID.String(), DocumentFilter{})
	if err != nil {
		t.Fatalf("admin ListDocuments: %v", err)
	}
	for _, d := range docs {
		if d.ID == doc.ID {
			t.Fatalf("draft leaked into admin listing")
		}
	}
}

func TestResubmitCreatesNewRecord(t *testing.T) {
	db := openTestDB(t)
	f := seedFixtures(t, db)
	svc := NewDocumentService(db, nil)
	ctx := context.Background()

	doc, err := svc.CreateDocument(ctx, f.vendorUser.ID.String(), CreateDocumentRequest{
		DocumentTypeID: f.monthlyType.ID.String(),
		Title:          "First try",
		Submit:         true,
	})
	if err != nil {
		t.Fatalf("CreateDocument: %v", err)
	}

	// Resubmitting a non-rejected document is an invalid transition.
	if _, err := svc.Resubmit(ctx, doc.ID, f.vendorUser.ID.String(), ResubmitDocumentRequest{}); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}

	if _, err := svc.BeginReview(ctx, doc.ID, f.consultant.ID.String()); err != nil {
		t.Fatalf("BeginReview: %v", err)
	}
	if _, err := svc.Reject(ctx, doc.ID, f.consultant.ID.String(), "wrong period"); err != nil {
		t.Fatalf("Reject: %v", err)
	}

	replacement, err := svc.Resubmit(ctx, doc.ID, f.vendorUser.ID.String(), ResubmitDocumentRequest{
		Title: "Second try",
		Files: []FileInput{{FileName: "v2.pdf", FilePath: "/uploads/v2.pdf"}},
	})
	if err != nil {
		t.Fatalf("Resubmit: %v", err)
	}
	if replacement.ID == doc.ID {
		t.Fatalf("resubmission reused the rejected document id")
	}
	if replacement.Status != model.DocStatusPending {
		t.Fatalf("expected PENDING resubmission, got %s", replacement.Status)
	}
	if replacement.SupersedesID == nil || *replacement.SupersedesID != doc.ID {
		t.Fatalf("expected supersedes link to %s, got %v", doc.ID, replacement.SupersedesID)
	}

	// The rejected record stays rejected with its history intact.
	var prior model.Document
	if err := db.First(&prior, "id = ?", doc.ID).Error; err != nil {
		t.Fatalf("reload prior document: %v", err)
	}
	if prior.Status != model.DocStatusRejected {
		t.Fatalf("rejected document mutated: %s", prior.Status)
	}
}

func TestStaleWriterGetsConcurrentModification(t *testing.T) {
	db := openTestDB(t)
	f := seedFixtures(t, db)
	svc := NewDocumentService(db, nil)
	ctx := context.Background()

	created, err := svc.CreateDocument(ctx, f.vendorUser.ID.String(), CreateDocumentRequest{
		DocumentTypeID: f.monthlyType.ID.String(),
		Title:          "Contended",
		Submit:         true,
	})
	if err != nil {
		t.Fatalf("CreateDocument: %v", err)
	}

	var stale model.Document
	if err := db.First(&stale, "id = ?", created.ID).Error; err != nil {
		t.Fatalf("load document: %v", err)
	}

	// First writer wins.
	if err := applyVersioned(db, &stale, model.DocStatusUnderReview, model.StageConsultant); err != nil {
		t.Fatalf("first applyVersioned: %v", err)
	}
	// Second writer still holds the old version and must lose.
	err = applyVersioned(db, &stale, model.DocStatusRejected, model.StageNone)
	if !errors.Is(err, ErrConcurrentModification) {
		t.Fatalf("expected ErrConcurrentModification, got %v", err)
	}
}

func TestConsultantScopedToAssignedVendors(t *testing.T) {
	db := openTestDB(t)
	f := seedFixtures(t, db)
	svc := NewDocumentService(db, nil)
	ctx := context.Background()

	// A vendor with no consultant assigned.
	orphanVendor := &model.Vendor{Name: "Orphan Ltd", IsActive: true}
	mustCreate(t, db, orphanVendor)
	orphanUser := &model.User{Username: "orphan", Email: "orphan@example.com", Phone: "7", Password: "x", Role: "vendor", VendorID: &orphanVendor.ID}
	mustCreate(t, db, orphanUser)

	doc, err := svc.CreateDocument(ctx, orphanUser.ID.String(), CreateDocumentRequest{
		DocumentTypeID: f.monthlyType.ID.String(),
		Title:          "Unassigned vendor doc",
		Submit:         true,
	})
	if err != nil {
		t.Fatalf("CreateDocument: %v", err)
	}

	if _, err := svc.BeginReview(ctx, doc.ID, f.consultant.ID.String()); !errors.Is(err, permission.ErrNotAssignedConsultant) {
		t.Fatalf("expected ErrNotAssignedConsultant, got %v", err)
	}

	docs, _, err := svc.ListDocuments(ctx, f.consultant.ID.String(), DocumentFilter{})
	if err != nil {
		t.Fatalf("consultant ListDocuments: %v", err)
	}
	for _, d := range docs {
		if d.ID == doc.ID {
			t.Fatalf("unassigned vendor's document leaked into consultant listing")
		}
	}
}

// A failed assignment lookup must surface as a storage error, never as an
// unassigned-consultant denial.
func TestScopeLoadFailureIsStorageError(t *testing.T) {
	db := openTestDB(t)
	f := seedFixtures(t, db)

	doc := &model.Document{VendorID: f.vendor.ID, Status: model.DocStatusPending}

	scope, err := documentScope(db, doc)
	if err != nil {
		t.Fatalf("documentScope: %v", err)
	}
	if scope.AssignedConsultantID == nil || *scope.AssignedConsultantID != f.consultant.ID {
		t.Fatalf("expected assignment to consultant, got %+v", scope.AssignedConsultantID)
	}

	if err := db.Exec("DROP TABLE vendors").Error; err != nil {
		t.Fatalf("drop vendors: %v", err)
	}

	_, err = documentScope(db, doc)
	if !errors.Is(err, ErrStorageUnavailable) {
		t.Fatalf("expected ErrStorageUnavailable, got %v", err)
	}
	if permission.IsDenial(err) {
		t.Fatalf("storage failure misreported as permission denial: %v", err)
	}
}
