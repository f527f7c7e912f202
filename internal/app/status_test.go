package app_test

import (
	"context"
	"errors"
	"testing"

	"homeventure/internal/app"
	"homeventure/internal/domain"
)

func TestStatus_GetAbsentReturnsNil(t *testing.T) {
	svc := app.NewStatusService(newMemStore())

	st, err := svc.Get(context.Background(), domain.CatalogID(52))
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if st != nil {
		t.Fatalf("expected nil for absent status, got %+v", st)
	}
}

func TestStatus_SetThenGet(t *testing.T) {
	svc := app.NewStatusService(newMemStore())
	ctx := context.Background()

	in := domain.PropertyStatus{Status: domain.StatusInterested, Notes: "owners home at 6pm"}
	if err := svc.Set(ctx, domain.CatalogID(52), in); err != nil {
		t.Fatalf("set: %v", err)
	}

	st, err := svc.Get(ctx, domain.CatalogID(52))
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if st == nil || st.Status != domain.StatusInterested || st.Notes != "owners home at 6pm" {
		t.Fatalf("unexpected status: %+v", st)
	}
	if st.UpdatedAt == "" {
		t.Fatal("expected UpdatedAt to be stamped")
	}
}

func TestStatus_SetOverwritesWhole(t *testing.T) {
	svc := app.NewStatusService(newMemStore())
	ctx := context.Background()
	id := domain.UserID("u1700000000000-abcd1234")

	knocked := "2026-02-01"
	first := domain.PropertyStatus{Status: domain.StatusKnocked, Notes: "first pass", KnockedDate: &knocked}
	if err := svc.Set(ctx, id, first); err != nil {
		t.Fatalf("set: %v", err)
	}
	// second write carries no knock date; last writer wins, no merge
	if err := svc.Set(ctx, id, domain.PropertyStatus{Status: domain.StatusHidden}); err != nil {
		t.Fatalf("set: %v", err)
	}

	st, _ := svc.Get(ctx, id)
	if st == nil || st.Status != domain.StatusHidden || st.KnockedDate != nil || st.Notes != "" {
		t.Fatalf("expected full overwrite, got %+v", st)
	}
}

func TestStatus_SetRejectsUnknownEnum(t *testing.T) {
	svc := app.NewStatusService(newMemStore())

	err := svc.Set(context.Background(), domain.CatalogID(1), domain.PropertyStatus{Status: "snoozed"})
	if err == nil {
		t.Fatal("expected error for unknown status value")
	}
}

func TestStatus_AllSkipsMalformed(t *testing.T) {
	store := newMemStore()
	svc := app.NewStatusService(store)
	ctx := context.Background()

	if err := svc.Set(ctx, domain.CatalogID(52), domain.PropertyStatus{Status: domain.StatusActive}); err != nil {
		t.Fatalf("set: %v", err)
	}
	store.seedRaw("status:64", []byte(`{not json`))
	if err := svc.Set(ctx, domain.UserID("u1-x"), domain.PropertyStatus{Status: domain.StatusToView}); err != nil {
		t.Fatalf("set: %v", err)
	}

	all, err := svc.All(ctx)
	if err != nil {
		t.Fatalf("all: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected malformed entry skipped, got %d entries: %v", len(all), all)
	}
	if all["52"].Status != domain.StatusActive || all["u1-x"].Status != domain.StatusToView {
		t.Fatalf("unexpected map: %+v", all)
	}
}

func TestStatus_StoreDownSurfaces(t *testing.T) {
	store := newMemStore()
	store.down = true
	svc := app.NewStatusService(store)

	if _, err := svc.All(context.Background()); !errors.Is(err, domain.ErrStoreUnavailable) {
		t.Fatalf("expected storage unavailable, got %v", err)
	}
	if _, err := svc.Get(context.Background(), domain.CatalogID(1)); !errors.Is(err, domain.ErrStoreUnavailable) {
		t.Fatalf("expected storage unavailable, got %v", err)
	}
}
