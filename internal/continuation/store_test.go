package continuation

import (
	"context"
	"testing"

	"github.com/sublimeanger/vintifi-sub000/internal/models"
)

func TestMemoryStoreConsumeIsOneShot(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	token := models.ContinuationToken{OwnerID: "owner-1", ItemID: "itm-1", Step: 4}
	if err := store.Save(ctx, token); err != nil {
		t.Fatal(err)
	}

	got, err := store.Consume(ctx, "owner-1")
	if err != nil {
		t.Fatal(err)
	}
	if got == nil || got.ItemID != "itm-1" || got.Step != 4 {
		t.Fatalf("unexpected token: %+v", got)
	}

	got, err = store.Consume(ctx, "owner-1")
	if err != nil {
		t.Fatal(err)
	}
	if got != nil {
		t.Fatal("a consumed token must not be observable again")
	}
}

func TestMemoryStoreConsumeMissing(t *testing.T) {
	store := NewMemoryStore()
	got, err := store.Consume(context.Background(), "nobody")
	if err != nil {
		t.Fatal(err)
	}
	if got != nil {
		t.Fatal("expected no token for an unknown owner")
	}
}

func TestMemoryStoreDelete(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	if err := store.Save(ctx, models.ContinuationToken{OwnerID: "owner-1", ItemID: "itm-1", Step: 4}); err != nil {
		t.Fatal(err)
	}
	if err := store.Delete(ctx, "owner-1"); err != nil {
		t.Fatal(err)
	}
	got, err := store.Consume(ctx, "owner-1")
	if err != nil {
		t.Fatal(err)
	}
	if got != nil {
		t.Fatal("expected the token gone after delete")
	}
}
