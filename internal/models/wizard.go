package models

import (
	"time"
)

// PriceAssessment is the result of one Market Pricing Service call. It is not
// persisted; only the accepted price is written onto the item.
type PriceAssessment struct {
	RecommendedPrice float64 `json:"recommended_price"`
	PriceRangeLow    float64 `json:"price_range_low"`
	PriceRangeHigh   float64 `json:"price_range_high"`
	ConfidenceScore  int     `json:"confidence_score"`
	AIInsights       string  `json:"ai_insights"`
}

type PricingRequest struct {
	Brand        string  `json:"brand,omitempty"`
	Category     string  `json:"category,omitempty"`
	Condition    string  `json:"condition,omitempty"`
	Title        string  `json:"title,omitempty"`
	Size         string  `json:"size,omitempty"`
	CurrentPrice float64 `json:"current_price,omitempty"`
}

// HealthScore is the four-part listing quality breakdown returned by the
// Listing Optimisation Service. All values are 0-100.
type HealthScore struct {
	Overall           int `json:"overall"`
	TitleScore        int `json:"title_score"`
	DescriptionScore  int `json:"description_score"`
	PhotoScore        int `json:"photo_score"`
	CompletenessScore int `json:"completeness_score"`
}

// OptimizationResult is the ephemeral result of one optimisation call.
type OptimizationResult struct {
	OptimizedTitle       string      `json:"optimized_title"`
	OptimizedDescription string      `json:"optimized_description"`
	HealthScore          HealthScore `json:"health_score"`
	SellerNotesDisclosed bool        `json:"seller_notes_disclosed"`
}

type OptimizationRequest struct {
	Title       string `json:"current_title,omitempty"`
	Description string `json:"current_description,omitempty"`
	Brand       string `json:"brand,omitempty"`
	Category    string `json:"category,omitempty"`
	Size        string `json:"size,omitempty"`
	Condition   string `json:"condition,omitempty"`
	Color       string `json:"color,omitempty"`
	Material    string `json:"material,omitempty"`
	SellerNotes string `json:"seller_notes,omitempty"`
}

// ContinuationToken records where to resume the wizard after handing off to
// the external photo studio. Written just before navigating away, consumed
// exactly once on the next mount.
type ContinuationToken struct {
	OwnerID string `json:"owner_id"`
	ItemID  string `json:"item_id"`
	Step    int    `json:"step"`
}

// Wizard event types pushed over the session event stream.
const (
	EventStepChanged   = "step_changed"
	EventPhotoComplete = "photo_complete"
	EventSessionReset  = "session_reset"
)

type WizardEvent struct {
	SessionID string    `json:"session_id"`
	Type      string    `json:"type"`
	Step      int       `json:"step"`
	Status    string    `json:"status,omitempty"`
	At        time.Time `json:"at"`
}

// WizardSnapshot is the JSON view of a wizard session returned to the client.
type WizardSnapshot struct {
	SessionID          string         `json:"session_id"`
	Step               int            `json:"step"`
	Statuses           map[int]string `json:"statuses"`
	EntryMethod        string         `json:"entry_method,omitempty"`
	ItemID             string         `json:"item_id,omitempty"`
	PriceAccepted      bool           `json:"price_accepted"`
	OptimizationSaved  bool           `json:"optimization_saved"`
	VisitedPhotoStudio bool           `json:"visited_photo_studio"`
	Resumed            bool           `json:"resumed,omitempty"`
}

// HandoffResult is returned when the wizard hands navigation off to the
// external photo studio.
type HandoffResult struct {
	StudioURL      string `json:"studio_url"`
	LimitedResults bool   `json:"limited_results"`
}

// PackagePreview is the final shareable output assembled from whichever
// fields are best available.
type PackagePreview struct {
	Title              string   `json:"title"`
	Description        string   `json:"description"`
	PhotoURLs          []string `json:"photo_urls"`
	PrimaryPhotoURL    string   `json:"primary_photo_url,omitempty"`
	Price              float64  `json:"price"`
	HealthScore        int      `json:"health_score"`
	SuggestReoptimize  bool     `json:"suggest_reoptimize"`
	ExternalListingURL string   `json:"external_listing_url,omitempty"`
}
