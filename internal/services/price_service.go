package services

import (
	"context"

	"github.com/sublimeanger/vintifi-sub000/internal/models"
	"github.com/sublimeanger/vintifi-sub000/internal/wizard"
)

// PriceService drives the pricing step: one automatic assessment per step
// entry, then an accept (suggested or custom) that writes the price back.
type PriceService struct {
	Pricing PricingAPI
	Repo    ItemStore
}

// Assessment returns the cached price assessment, invoking the pricing
// service on first entry. The begin/finish pair on the session guarantees at
// most one in-flight call, and a reset while the call is out drops the
// result instead of applying it.
func (s *PriceService) Assessment(ctx context.Context, sess *wizard.Session) (*models.PriceAssessment, error) {
	if cached := sess.PriceResult(); cached != nil {
		return cached, nil
	}
	itemID := sess.ItemID()
	if itemID == "" {
		return nil, models.ErrNoItem
	}

	gen, ok := sess.BeginPriceCall()
	if !ok {
		if cached := sess.PriceResult(); cached != nil {
			return cached, nil
		}
		return nil, models.ErrAssessmentPending
	}

	item, err := s.Repo.GetItemByID(ctx, itemID)
	if err != nil {
		sess.FinishPriceCall(gen, nil, err)
		return nil, err
	}

	result, err := s.Pricing.Assess(ctx, models.PricingRequest{
		Brand:        item.Brand,
		Category:     item.Category,
		Condition:    item.Condition,
		Title:        item.Title,
		Size:         item.Size,
		CurrentPrice: item.CurrentPrice,
	})
	if err != nil {
		sess.FinishPriceCall(gen, nil, err)
		return nil, err
	}
	sess.FinishPriceCall(gen, &result, nil)

	cached := sess.PriceResult()
	if cached == nil {
		// session reset while the call was in flight
		return nil, models.ErrNoAssessment
	}
	return cached, nil
}

// AcceptSuggested takes the recommendation verbatim: current and recommended
// price both become the suggested figure and the price-check marker is
// stamped.
func (s *PriceService) AcceptSuggested(ctx context.Context, sess *wizard.Session) error {
	result := sess.PriceResult()
	if result == nil {
		return models.ErrNoAssessment
	}
	if err := s.Repo.UpdatePricing(ctx, sess.ItemID(), result.RecommendedPrice, result.RecommendedPrice); err != nil {
		return err
	}
	sess.PriceAcceptedMark()
	return nil
}

// AcceptCustom writes a user-supplied price while still recording the AI
// recommendation separately for later reference.
func (s *PriceService) AcceptCustom(ctx context.Context, sess *wizard.Session, price float64) error {
	if price <= 0 {
		return models.ErrInvalidPrice
	}
	if sess.ItemID() == "" {
		return models.ErrNoItem
	}
	recommended := price
	if result := sess.PriceResult(); result != nil {
		recommended = result.RecommendedPrice
	}
	if err := s.Repo.UpdatePricing(ctx, sess.ItemID(), price, recommended); err != nil {
		return err
	}
	sess.PriceAcceptedMark()
	return nil
}

// Rerun discards the cached assessment and invokes the service again. A
// previously accepted price keeps its guard state.
func (s *PriceService) Rerun(ctx context.Context, sess *wizard.Session) (*models.PriceAssessment, error) {
	sess.ClearPriceResult()
	return s.Assessment(ctx, sess)
}
