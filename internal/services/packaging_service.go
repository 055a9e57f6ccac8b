package services

import (
	"context"
	"strings"

	"github.com/sublimeanger/vintifi-sub000/internal/config"
	"github.com/sublimeanger/vintifi-sub000/internal/continuation"
	"github.com/sublimeanger/vintifi-sub000/internal/models"
	"github.com/sublimeanger/vintifi-sub000/internal/wizard"
)

// PackagingService assembles the terminal step's shareable output and owns
// the full session reset.
type PackagingService struct {
	Repo          ItemStore
	Continuations continuation.Store
	Cfg           config.WizardConfig
}

// Preview builds the final output from the best available fields: optimised
// title and description when present, raw ones otherwise. If optimisation
// was never saved or scored below the configured threshold, the preview
// carries a suggestion to return to the optimise step.
func (s *PackagingService) Preview(ctx context.Context, sess *wizard.Session) (models.PackagePreview, error) {
	itemID := sess.ItemID()
	if itemID == "" {
		return models.PackagePreview{}, models.ErrNoItem
	}
	item, err := s.Repo.GetItemByID(ctx, itemID)
	if err != nil {
		return models.PackagePreview{}, err
	}

	title := item.OptimizedTitle
	if title == "" {
		title = item.Title
	}
	description := item.OptimizedDescription
	if description == "" {
		description = item.Description
	}

	return models.PackagePreview{
		Title:              title,
		Description:        description,
		PhotoURLs:          item.PhotoURLs,
		PrimaryPhotoURL:    item.PrimaryPhotoURL,
		Price:              item.CurrentPrice,
		HealthScore:        item.HealthScore,
		SuggestReoptimize:  item.LastOptimized == nil || item.HealthScore < s.Cfg.HealthScoreThreshold,
		ExternalListingURL: item.ExternalListingURL,
	}, nil
}

// RecordListingRef stores the destination-marketplace reference as the
// closing action of the flow.
func (s *PackagingService) RecordListingRef(ctx context.Context, sess *wizard.Session, url string) error {
	if strings.TrimSpace(url) == "" {
		return models.ErrEmptyListingURL
	}
	if sess.ItemID() == "" {
		return models.ErrNoItem
	}
	return s.Repo.UpdateExternalListing(ctx, sess.ItemID(), url)
}

// Reset clears the wizard session, forgets the item reference, and removes
// any lingering continuation token. Token deletion is best effort.
func (s *PackagingService) Reset(ctx context.Context, sess *wizard.Session) {
	sess.Reset()
	_ = s.Continuations.Delete(ctx, sess.OwnerID())
}
