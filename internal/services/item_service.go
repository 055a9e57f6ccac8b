package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/sublimeanger/vintifi-sub000/internal/models"
	"github.com/sublimeanger/vintifi-sub000/internal/wizard"
)

// ItemService creates the one item record a wizard session converges on.
type ItemService struct {
	Repo    ItemStore
	Storage Uploader
}

// CreateItem is idempotent within a session: if the session already holds an
// item reference the existing record is returned, so back-then-forward
// navigation can never create a duplicate. Otherwise staged photos are
// uploaded, merged with imported URLs, and the record is inserted with the
// first photo as primary.
func (s *ItemService) CreateItem(ctx context.Context, sess *wizard.Session, req models.CreateItemRequest) (models.Item, error) {
	if id := sess.ItemID(); id != "" {
		return s.Repo.GetItemByID(ctx, id)
	}

	urls := make([]string, 0, len(req.PhotoURLs)+len(req.StagedPhotos))
	urls = append(urls, req.PhotoURLs...)
	for _, photo := range req.StagedPhotos {
		if len(photo.Data) == 0 {
			continue
		}
		if s.Storage == nil {
			return models.Item{}, fmt.Errorf("photo storage is not configured")
		}
		name := uuid.NewString() + ".jpg"
		url, err := s.Storage.Upload(photo.Data, name, "items")
		if err != nil {
			return models.Item{}, fmt.Errorf("upload staged photo: %w", err)
		}
		urls = append(urls, url)
	}
	urls = dedupeURLs(urls)

	item := models.Item{
		OwnerID:       sess.OwnerID(),
		Title:         req.Title,
		Description:   req.Description,
		Brand:         req.Brand,
		Category:      req.Category,
		Size:          req.Size,
		Condition:     req.Condition,
		Color:         req.Color,
		Material:      req.Material,
		PurchasePrice: req.PurchasePrice,
		ShippingCost:  req.ShippingCost,
		SellerNotes:   req.SellerNotes,
		PhotoURLs:     urls,
		EntryMethod:   sess.EntryMethod(),
	}
	if len(urls) > 0 {
		item.PrimaryPhotoURL = urls[0]
	}

	created, err := s.Repo.CreateItem(ctx, item)
	if err != nil {
		return models.Item{}, err
	}

	// Completion callback: this, not a generic continue action, is what
	// moves the wizard past the add-item step. The photo-edit baseline is
	// captured here.
	sess.ItemCreated(created.ID, created.LastPhotoEdit)
	return created, nil
}

func dedupeURLs(urls []string) []string {
	seen := make(map[string]struct{}, len(urls))
	out := urls[:0]
	for _, u := range urls {
		if u == "" {
			continue
		}
		if _, ok := seen[u]; ok {
			continue
		}
		seen[u] = struct{}{}
		out = append(out, u)
	}
	return out
}
