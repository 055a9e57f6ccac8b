package models

import (
	"time"
)

// Entry methods recorded on an item at creation time.
const (
	EntryMethodManual = "manual"
	EntryMethodPhoto  = "photo"
	EntryMethodURL    = "url"
)

// Item is the single record the whole sell wizard converges on. It is created
// once at the end of the add-item step and only updated afterwards.
type Item struct {
	ID      string `json:"id"`
	OwnerID string `json:"owner_id"`

	Title       string `json:"title"`
	Description string `json:"description"`
	Brand       string `json:"brand,omitempty"`
	Category    string `json:"category,omitempty"`
	Size        string `json:"size,omitempty"`
	Condition   string `json:"condition,omitempty"`
	Color       string `json:"color,omitempty"`
	Material    string `json:"material,omitempty"`

	CurrentPrice     float64 `json:"current_price"`
	RecommendedPrice float64 `json:"recommended_price"`
	PurchasePrice    float64 `json:"purchase_price"`
	ShippingCost     float64 `json:"shipping_cost"`

	PhotoURLs       []string `json:"photo_urls"`
	PrimaryPhotoURL string   `json:"primary_photo_url,omitempty"`

	OptimizedTitle       string `json:"optimized_title,omitempty"`
	OptimizedDescription string `json:"optimized_description,omitempty"`
	HealthScore          int    `json:"health_score"`

	LastPriceCheck *time.Time `json:"last_price_check,omitempty"`
	LastOptimized  *time.Time `json:"last_optimized,omitempty"`
	LastPhotoEdit  *time.Time `json:"last_photo_edit,omitempty"`

	EntryMethod        string `json:"entry_method"`
	SellerNotes        string `json:"seller_notes,omitempty"`
	ExternalListingURL string `json:"external_listing_url,omitempty"`

	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

// StagedPhoto is a locally selected photo uploaded during item creation.
// Data arrives base64-encoded in the request body.
type StagedPhoto struct {
	Name string `json:"name"`
	Data []byte `json:"data"`
}

type CreateItemRequest struct {
	Title         string        `json:"title"`
	Description   string        `json:"description"`
	Brand         string        `json:"brand,omitempty"`
	Category      string        `json:"category,omitempty"`
	Size          string        `json:"size,omitempty"`
	Condition     string        `json:"condition,omitempty"`
	Color         string        `json:"color,omitempty"`
	Material      string        `json:"material,omitempty"`
	PurchasePrice float64       `json:"purchase_price,omitempty"`
	ShippingCost  float64       `json:"shipping_cost,omitempty"`
	SellerNotes   string        `json:"seller_notes,omitempty"`
	PhotoURLs     []string      `json:"photo_urls,omitempty"`
	StagedPhotos  []StagedPhoto `json:"staged_photos,omitempty"`
}

// ImportPreview is what the URL importer extracts from a source listing page
// to prefill the intake form.
type ImportPreview struct {
	SourceURL   string   `json:"source_url"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	PhotoURLs   []string `json:"photo_urls"`
}
