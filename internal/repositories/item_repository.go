package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/sublimeanger/vintifi-sub000/internal/models"
)

type ItemRepository struct {
	DB *sql.DB
}

func (r *ItemRepository) CreateItem(ctx context.Context, item models.Item) (models.Item, error) {
	item.ID = ulid.Make().String()
	item.CreatedAt = time.Now()

	photos, err := json.Marshal(item.PhotoURLs)
	if err != nil {
		return models.Item{}, err
	}

	query := `
INSERT INTO items (id, owner_id, title, description, brand, category, size, item_condition, color, material,
                   current_price, recommended_price, purchase_price, shipping_cost,
                   photo_urls, primary_photo_url, entry_method, seller_notes, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, NOW())
	`
	_, err = r.DB.ExecContext(ctx, query,
		item.ID, item.OwnerID, item.Title, item.Description, item.Brand, item.Category, item.Size,
		item.Condition, item.Color, item.Material,
		item.CurrentPrice, item.RecommendedPrice, item.PurchasePrice, item.ShippingCost,
		string(photos), item.PrimaryPhotoURL, item.EntryMethod, item.SellerNotes,
	)
	if err != nil {
		return models.Item{}, err
	}
	return item, nil
}

func (r *ItemRepository) GetItemByID(ctx context.Context, id string) (models.Item, error) {
	query := `
SELECT id, owner_id, title, description, brand, category, size, item_condition, color, material,
       current_price, recommended_price, purchase_price, shipping_cost,
       photo_urls, primary_photo_url, optimized_title, optimized_description, health_score,
       last_price_check, last_optimized, last_photo_edit,
       entry_method, seller_notes, external_listing_url, created_at, updated_at
FROM items
WHERE id = ?
	`
	var item models.Item
	var photos sql.NullString
	var primary, optTitle, optDesc, sellerNotes, listingURL sql.NullString
	var healthScore sql.NullInt64
	var lastPriceCheck, lastOptimized, lastPhotoEdit, updatedAt sql.NullTime

	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&item.ID, &item.OwnerID, &item.Title, &item.Description, &item.Brand, &item.Category,
		&item.Size, &item.Condition, &item.Color, &item.Material,
		&item.CurrentPrice, &item.RecommendedPrice, &item.PurchasePrice, &item.ShippingCost,
		&photos, &primary, &optTitle, &optDesc, &healthScore,
		&lastPriceCheck, &lastOptimized, &lastPhotoEdit,
		&item.EntryMethod, &sellerNotes, &listingURL, &item.CreatedAt, &updatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Item{}, models.ErrItemNotFound
	}
	if err != nil {
		return models.Item{}, err
	}

	if photos.Valid && photos.String != "" {
		if err := json.Unmarshal([]byte(photos.String), &item.PhotoURLs); err != nil {
			return models.Item{}, err
		}
	}
	item.PrimaryPhotoURL = primary.String
	item.OptimizedTitle = optTitle.String
	item.OptimizedDescription = optDesc.String
	item.HealthScore = int(healthScore.Int64)
	item.SellerNotes = sellerNotes.String
	item.ExternalListingURL = listingURL.String
	if lastPriceCheck.Valid {
		item.LastPriceCheck = &lastPriceCheck.Time
	}
	if lastOptimized.Valid {
		item.LastOptimized = &lastOptimized.Time
	}
	if lastPhotoEdit.Valid {
		item.LastPhotoEdit = &lastPhotoEdit.Time
	}
	if updatedAt.Valid {
		item.UpdatedAt = &updatedAt.Time
	}
	return item, nil
}

// UpdatePricing writes the accepted and recommended prices and stamps the
// price-check marker. Pricing never touches optimisation or photo fields.
func (r *ItemRepository) UpdatePricing(ctx context.Context, id string, current, recommended float64) error {
	query := `
		UPDATE items
		SET current_price = ?, recommended_price = ?, last_price_check = NOW(), updated_at = NOW()
		WHERE id = ?
	`
	_, err := r.DB.ExecContext(ctx, query, current, recommended, id)
	return err
}

// UpdateOptimization persists the saved optimisation result and stamps the
// last-optimised marker.
func (r *ItemRepository) UpdateOptimization(ctx context.Context, id, title, description string, score int) error {
	query := `
		UPDATE items
		SET optimized_title = ?, optimized_description = ?, health_score = ?, last_optimized = NOW(), updated_at = NOW()
		WHERE id = ?
	`
	_, err := r.DB.ExecContext(ctx, query, title, description, score, id)
	return err
}

func (r *ItemRepository) UpdateExternalListing(ctx context.Context, id, url string) error {
	query := `UPDATE items SET external_listing_url = ?, updated_at = NOW() WHERE id = ?`
	_, err := r.DB.ExecContext(ctx, query, url, id)
	return err
}

// GetPhotoEditStamp fetches only the last-photo-edit marker; poll ticks call
// this instead of loading the whole record.
func (r *ItemRepository) GetPhotoEditStamp(ctx context.Context, id string) (*time.Time, error) {
	var stamp sql.NullTime
	err := r.DB.QueryRowContext(ctx, `SELECT last_photo_edit FROM items WHERE id = ?`, id).Scan(&stamp)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrItemNotFound
	}
	if err != nil {
		return nil, err
	}
	if !stamp.Valid {
		return nil, nil
	}
	return &stamp.Time, nil
}

// TouchPhotoEditStamp is the write side of the photo-completion signal. The
// photo studio calls it after saving enhanced photos; the wizard only ever
// reads the stamp.
func (r *ItemRepository) TouchPhotoEditStamp(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `UPDATE items SET last_photo_edit = NOW(), updated_at = NOW() WHERE id = ?`, id)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return models.ErrItemNotFound
	}
	return nil
}
