package service

import (
	"context"
	"testing"
	"time"

	"vendordocs/internal/model"
)

func TestSubjectHistoryOrderIsDeterministic(t *testing.T) {
	db := openTestDB(t)
	svc := NewAuditService(db)
	ctx := context.Background()

	subject := "doc-under-test"
	base := time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC)

	// Three events share one timestamp; seq must break the tie in
	// insertion order. A fourth, earlier event must sort first regardless
	// of insertion order.
	for _, action := range []string{model.AuditActionCreated, model.AuditActionReviewed, model.AuditActionApproved} {
		if err := appendAuditEvent(db, &model.AuditEvent{
			SubjectID: subject,
			Action:    action,
			ActorName: "tester",
			CreatedAt: base,
		}); err != nil {
			t.Fatalf("appendAuditEvent: %v", err)
		}
	}
	if err := appendAuditEvent(db, &model.AuditEvent{
		SubjectID: subject,
		Action:    model.AuditActionUpdated,
		ActorName: "tester",
		CreatedAt: base.Add(-time.Hour),
	}); err != nil {
		t.Fatalf("appendAuditEvent: %v", err)
	}

	want := []string{
		model.AuditActionUpdated,
		model.AuditActionCreated,
		model.AuditActionReviewed,
		model.AuditActionApproved,
	}

	// Repeated reads return the identical sequence.
	for round := 0; round < 3; round++ {
		events, err := svc.ListForSubject(ctx, subject)
		if err != nil {
			t.Fatalf("ListForSubject round %d: %v", round, err)
		}
		if len(events) != len(want) {
			t.Fatalf("round %d: expected %d events, got %d", round, len(want), len(events))
		}
		for i, ev := range events {
			if ev.Action != want[i] {
				t.Fatalf("round %d: position %d: expected %s, got %s", round, i, want[i], ev.Action)
			}
		}
		for i := 1; i < len(events); i++ {
			if events[i].CreatedAt == events[i-1].CreatedAt && events[i].Seq <= events[i-1].Seq {
				t.Fatalf("seq tie-break violated at position %d: %d after %d", i, events[i].Seq, events[i-1].Seq)
			}
		}
	}
}

func TestListForSubjectFiltersOtherSubjects(t *testing.T) {
	db := openTestDB(t)
	svc := NewAuditService(db)
	ctx := context.Background()

	for _, subject := range []string{"subject-a", "subject-b"} {
		if err := appendAuditEvent(db, &model.AuditEvent{
			SubjectID: subject,
			Action:    model.AuditActionCreated,
			ActorName: "tester",
		}); err != nil {
			t.Fatalf("appendAuditEvent: %v", err)
		}
	}

	events, err := svc.ListForSubject(ctx, "subject-a")
	if err != nil {
		t.Fatalf("ListForSubject: %v", err)
	}
	if len(events) != 1 || events[0].SubjectID != "subject-a" {
		t.Fatalf("expected only subject-a events, got %+v", events)
	}
}

func TestListAllPaginatesNewestFirst(t *testing.T) {
	db := openTestDB(t)
	svc := NewAuditService(db)
	ctx := context.Background()

	base := time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		if err := appendAuditEvent(db, &model.AuditEvent{
			SubjectID: "feed",
			Action:    model.AuditActionCommented,
			ActorName: "tester",
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}); err != nil {
			t.Fatalf("appendAuditEvent: %v", err)
		}
	}

	page1, total, err := svc.ListAll(ctx, 1, 2)
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if total != 5 || len(page1) != 2 {
		t.Fatalf("expected total=5 page of 2, got total=%d len=%d", total, len(page1))
	}
	if page1[0].CreatedAt < page1[1].CreatedAt {
		t.Fatalf("expected newest first, got %s then %s", page1[0].CreatedAt, page1[1].CreatedAt)
	}
}
