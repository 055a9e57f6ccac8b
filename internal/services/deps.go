package services

import (
	"context"
	"time"

	"github.com/sublimeanger/vintifi-sub000/internal/models"
)

// ItemStore is the slice of the record repository the wizard coordinators
// use. Each coordinator only writes the fields it owns.
type ItemStore interface {
	CreateItem(ctx context.Context, item models.Item) (models.Item, error)
	GetItemByID(ctx context.Context, id string) (models.Item, error)
	UpdatePricing(ctx context.Context, id string, current, recommended float64) error
	UpdateOptimization(ctx context.Context, id, title, description string, score int) error
	UpdateExternalListing(ctx context.Context, id, url string) error
	GetPhotoEditStamp(ctx context.Context, id string) (*time.Time, error)
}

// PricingAPI is the Market Pricing Service boundary.
type PricingAPI interface {
	Assess(ctx context.Context, req models.PricingRequest) (models.PriceAssessment, error)
}

// OptimizerAPI is the Listing Optimisation Service boundary.
type OptimizerAPI interface {
	Optimize(ctx context.Context, req models.OptimizationRequest) (models.OptimizationResult, error)
}

// Uploader stores staged photo bytes and returns a public URL.
type Uploader interface {
	Upload(file []byte, name string, folder string) (string, error)
}
