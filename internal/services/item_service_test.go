package services

import (
	"context"
	"testing"

	"github.com/sublimeanger/vintifi-sub000/internal/models"
	"github.com/sublimeanger/vintifi-sub000/internal/wizard"
)

func TestCreateItemAdvancesAndSetsPrimaryPhoto(t *testing.T) {
	store := newFakeStore()
	uploader := &fakeUploader{}
	svc := &ItemService{Repo: store, Storage: uploader}
	sess := newTestSession()

	created, err := svc.CreateItem(context.Background(), sess, models.CreateItemRequest{
		Title:     "Vintage denim jacket",
		Brand:     "Levi's",
		Category:  "Jackets",
		Condition: "good",
		PhotoURLs: []string{"https://cdn.test/items/a.jpg"},
		StagedPhotos: []models.StagedPhoto{
			{Name: "front.jpg", Data: []byte("jpegbytes")},
		},
	})
	if err != nil {
		t.Fatal(err)
	}

	if created.ID == "" {
		t.Fatal("expected an item id")
	}
	if created.OwnerID != sess.OwnerID() {
		t.Fatalf("expected item owned by %s, got %s", sess.OwnerID(), created.OwnerID)
	}
	if uploader.uploads != 1 {
		t.Fatalf("expected one staged upload, got %d", uploader.uploads)
	}
	if len(created.PhotoURLs) != 2 {
		t.Fatalf("expected two photo urls, got %d", len(created.PhotoURLs))
	}
	if created.PrimaryPhotoURL != "https://cdn.test/items/a.jpg" {
		t.Fatalf("expected first url as primary, got %s", created.PrimaryPhotoURL)
	}
	if sess.Step() != wizard.StepPrice {
		t.Fatalf("expected the wizard to land on price, got %s", sess.Step())
	}
}

func TestCreateItemIdempotentWithinSession(t *testing.T) {
	store := newFakeStore()
	svc := &ItemService{Repo: store}
	sess := newTestSession()

	first, err := svc.CreateItem(context.Background(), sess, models.CreateItemRequest{Title: "Wool scarf"})
	if err != nil {
		t.Fatal(err)
	}
	// back to step one and submit again
	if _, err := sess.Back(); err != nil {
		t.Fatal(err)
	}
	second, err := svc.CreateItem(context.Background(), sess, models.CreateItemRequest{Title: "Wool scarf (edited)"})
	if err != nil {
		t.Fatal(err)
	}

	if store.creates != 1 {
		t.Fatalf("expected exactly one insert, got %d", store.creates)
	}
	if second.ID != first.ID {
		t.Fatalf("expected the existing record back, got %s and %s", first.ID, second.ID)
	}
	if second.Title != "Wool scarf" {
		t.Fatalf("resubmission must not overwrite the record, got title %q", second.Title)
	}
}

func TestCreateItemDedupesPhotoURLs(t *testing.T) {
	store := newFakeStore()
	svc := &ItemService{Repo: store}
	sess := newTestSession()

	created, err := svc.CreateItem(context.Background(), sess, models.CreateItemRequest{
		Title:     "Silk shirt",
		PhotoURLs: []string{"https://cdn.test/items/a.jpg", "", "https://cdn.test/items/a.jpg"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(created.PhotoURLs) != 1 {
		t.Fatalf("expected duplicates and blanks dropped, got %v", created.PhotoURLs)
	}
}
