package services

import (
	"context"

	"github.com/sublimeanger/vintifi-sub000/internal/models"
	"github.com/sublimeanger/vintifi-sub000/internal/wizard"
)

// OptimizerService drives the optimisation step: automatic invocation on
// first entry, explicit save, manual re-generate.
type OptimizerService struct {
	Optimizer OptimizerAPI
	Repo      ItemStore
}

// OptimizationView is what the step renders: the result plus the
// non-blocking disclosure warning.
type OptimizationView struct {
	Result            *models.OptimizationResult `json:"result"`
	DisclosureWarning bool                       `json:"disclosure_warning"`
}

func (s *OptimizerService) Result(ctx context.Context, sess *wizard.Session) (OptimizationView, error) {
	if cached := sess.OptimizationResult(); cached != nil {
		return OptimizationView{Result: cached, DisclosureWarning: sess.DisclosureWarning()}, nil
	}
	itemID := sess.ItemID()
	if itemID == "" {
		return OptimizationView{}, models.ErrNoItem
	}

	gen, ok := sess.BeginOptimizeCall()
	if !ok {
		if cached := sess.OptimizationResult(); cached != nil {
			return OptimizationView{Result: cached, DisclosureWarning: sess.DisclosureWarning()}, nil
		}
		return OptimizationView{}, models.ErrAssessmentPending
	}

	item, err := s.Repo.GetItemByID(ctx, itemID)
	if err != nil {
		sess.FinishOptimizeCall(gen, nil, err)
		return OptimizationView{}, err
	}

	result, err := s.Optimizer.Optimize(ctx, models.OptimizationRequest{
		Title:       item.Title,
		Description: item.Description,
		Brand:       item.Brand,
		Category:    item.Category,
		Size:        item.Size,
		Condition:   item.Condition,
		Color:       item.Color,
		Material:    item.Material,
		SellerNotes: item.SellerNotes,
	})
	if err != nil {
		sess.FinishOptimizeCall(gen, nil, err)
		return OptimizationView{}, err
	}
	sess.FinishOptimizeCall(gen, &result, nil)
	sess.SetDisclosureWarning(item.SellerNotes != "" && !result.SellerNotesDisclosed)

	cached := sess.OptimizationResult()
	if cached == nil {
		return OptimizationView{}, models.ErrNoOptimization
	}
	return OptimizationView{Result: cached, DisclosureWarning: sess.DisclosureWarning()}, nil
}

// Save persists the optimised copy and overall health score onto the item
// and satisfies the step guard. The disclosure warning never blocks save.
func (s *OptimizerService) Save(ctx context.Context, sess *wizard.Session) error {
	result := sess.OptimizationResult()
	if result == nil {
		return models.ErrNoOptimization
	}
	err := s.Repo.UpdateOptimization(ctx, sess.ItemID(),
		result.OptimizedTitle, result.OptimizedDescription, result.HealthScore.Overall)
	if err != nil {
		return err
	}
	sess.OptimizationSavedMark()
	return nil
}

// Rerun discards the cached result and invokes the optimiser again.
func (s *OptimizerService) Rerun(ctx context.Context, sess *wizard.Session) (OptimizationView, error) {
	sess.ClearOptimization()
	return s.Result(ctx, sess)
}
