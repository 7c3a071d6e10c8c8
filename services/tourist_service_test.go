package services

import (
	"context"
	"testing"

	"github.com/localxp/localxp_backend/models"
	"github.com/localxp/localxp_backend/repositories/memstore"
	"github.com/localxp/localxp_backend/utils"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func strPtr(s string) *string { return &s }

func storedPassword(t *testing.T, store *memstore.Tourists, id primitive.ObjectID) string {
	t.Helper()
	tourist, err := store.FindByID(context.Background(), id)
	if err != nil {
		t.Fatal(err)
	}
	return tourist.Password
}

func TestTouristService_CRUD(t *testing.T) {
	store := memstore.NewTourists()
	svc := NewTouristService(store)
	ctx := context.Background()

	ana, err := svc.Create(ctx, models.TouristSignupRequest{FullName: "Ana", Email: "ana@example.com", Password: "secret123", Country: "PT"})
	if err != nil {
		t.Fatal(err)
	}
	if ana.Password != "" {
		t.Fatalf("password returned to caller")
	}
	ben, err := svc.Create(ctx, models.TouristSignupRequest{FullName: "Ben", Email: "ben@example.com", Password: "secret123", Country: "UK"})
	if err != nil {
		t.Fatal(err)
	}

	list, err := svc.List(ctx)
	if err != nil || len(list) != 2 {
		t.Fatalf("expected 2 tourists, got %d (%v)", len(list), err)
	}
	for _, tr := range list {
		if tr.Password != "" {
			t.Fatalf("password leaked in list")
		}
	}

	_, err = svc.Update(ctx, ana.ID.Hex(), models.TouristUpdateRequest{Email: strPtr("BEN@example.com")})
	assertKind(t, err, KindValidation)

	updated, err := svc.Update(ctx, ana.ID.Hex(), models.TouristUpdateRequest{
		Country:  strPtr("Spain"),
		Password: strPtr("new-secret"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Country != "Spain" || updated.FullName != "Ana" {
		t.Fatalf("unexpected update result %+v", updated)
	}
	if !utils.CheckPassword(storedPassword(t, store, ana.ID), "new-secret") {
		t.Fatalf("password was not rehashed")
	}

	hash := storedPassword(t, store, ana.ID)
	if _, err := svc.Update(ctx, ana.ID.Hex(), models.TouristUpdateRequest{Password: strPtr("abc")}); err != nil {
		t.Fatal(err)
	}
	if storedPassword(t, store, ana.ID) != hash {
		t.Fatalf("short password must be ignored")
	}

	if err := svc.Delete(ctx, ben.ID.Hex()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertKind(t, svc.Delete(ctx, ben.ID.Hex()), KindNotFound)
	_, err = svc.Update(ctx, "xyz", models.TouristUpdateRequest{})
	assertKind(t, err, KindValidation)
}

func TestContactService(t *testing.T) {
	store := memstore.NewContacts()
	notifier := &recordingNotifier{}
	mailer := &recordingMailer{}
	svc := NewContactService(store, notifier, mailer)
	ctx := context.Background()

	_, err := svc.Submit(ctx, models.ContactRequest{Name: "Ana", Email: "ana@example.com"})
	assertKind(t, err, KindValidation)
	_, err = svc.Submit(ctx, models.ContactRequest{Name: "Ana", Email: "ana", Message: "hi"})
	assertKind(t, err, KindValidation)

	msg, err := svc.Submit(ctx, models.ContactRequest{Name: " Ana ", Email: "Ana@Example.com", Message: "Do you run tours in May?"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if msg.Name != "Ana" || msg.Email != "ana@example.com" {
		t.Fatalf("input was not normalized: %+v", msg)
	}
	if len(notifier.events) != 1 || len(mailer.subjects) != 1 {
		t.Fatalf("expected one notice and one mail")
	}

	list, _ := svc.List(ctx)
	if len(list) != 1 {
		t.Fatalf("expected 1 message, got %d", len(list))
	}
	if err := svc.Delete(ctx, msg.ID.Hex()); err != nil {
		t.Fatal(err)
	}
	assertKind(t, svc.Delete(ctx, msg.ID.Hex()), KindNotFound)
}
