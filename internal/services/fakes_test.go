package services

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/sublimeanger/vintifi-sub000/internal/models"
	"github.com/sublimeanger/vintifi-sub000/internal/wizard"
)

// fakeStore is an in-memory ItemStore tracking call counts for the
// single-invocation assertions.
type fakeStore struct {
	mu         sync.Mutex
	items      map[string]models.Item
	seq        int
	creates    int
	stampReads int
	getErr     error
}

func newFakeStore() *fakeStore {
	return &fakeStore{items: make(map[string]models.Item)}
}

func (f *fakeStore) CreateItem(ctx context.Context, item models.Item) (models.Item, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.creates++
	f.seq++
	item.ID = fmt.Sprintf("itm-%d", f.seq)
	item.CreatedAt = time.Now()
	f.items[item.ID] = item
	return item, nil
}

func (f *fakeStore) GetItemByID(ctx context.Context, id string) (models.Item, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return models.Item{}, f.getErr
	}
	item, ok := f.items[id]
	if !ok {
		return models.Item{}, models.ErrItemNotFound
	}
	return item, nil
}

func (f *fakeStore) UpdatePricing(ctx context.Context, id string, current, recommended float64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	item, ok := f.items[id]
	if !ok {
		return models.ErrItemNotFound
	}
	now := time.Now()
	item.CurrentPrice = current
	item.RecommendedPrice = recommended
	item.LastPriceCheck = &now
	f.items[id] = item
	return nil
}

func (f *fakeStore) UpdateOptimization(ctx context.Context, id, title, description string, score int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	item, ok := f.items[id]
	if !ok {
		return models.ErrItemNotFound
	}
	now := time.Now()
	item.OptimizedTitle = title
	item.OptimizedDescription = description
	item.HealthScore = score
	item.LastOptimized = &now
	f.items[id] = item
	return nil
}

func (f *fakeStore) UpdateExternalListing(ctx context.Context, id, url string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	item, ok := f.items[id]
	if !ok {
		return models.ErrItemNotFound
	}
	item.ExternalListingURL = url
	f.items[id] = item
	return nil
}

func (f *fakeStore) GetPhotoEditStamp(ctx context.Context, id string) (*time.Time, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stampReads++
	item, ok := f.items[id]
	if !ok {
		return nil, models.ErrItemNotFound
	}
	return item.LastPhotoEdit, nil
}

func (f *fakeStore) setPhotoEditStamp(id string, t time.Time) {
	f.mu.Lock()
	defer f.mu.Unlock()
	item := f.items[id]
	item.LastPhotoEdit = &t
	f.items[id] = item
}

func (f *fakeStore) item(id string) models.Item {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.items[id]
}

func (f *fakeStore) stampReadCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.stampReads
}

type fakePricing struct {
	mu     sync.Mutex
	calls  int
	result models.PriceAssessment
	err    error
}

func (f *fakePricing) Assess(ctx context.Context, req models.PricingRequest) (models.PriceAssessment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return models.PriceAssessment{}, f.err
	}
	return f.result, nil
}

func (f *fakePricing) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type fakeOptimizer struct {
	mu     sync.Mutex
	calls  int
	result models.OptimizationResult
	err    error
}

func (f *fakeOptimizer) Optimize(ctx context.Context, req models.OptimizationRequest) (models.OptimizationResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return models.OptimizationResult{}, f.err
	}
	return f.result, nil
}

func (f *fakeOptimizer) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type fakeUploader struct {
	uploads int
}

func (f *fakeUploader) Upload(file []byte, name, folder string) (string, error) {
	f.uploads++
	return "https://cdn.test/" + folder + "/" + name, nil
}

func newTestSession() *wizard.Session {
	return wizard.NewManager().Create("owner-1", models.EntryMethodManual, "")
}

// seedItem creates an item through the store and binds it to the session the
// way the intake step would.
func seedItem(t *testing.T, store *fakeStore, sess *wizard.Session, item models.Item) models.Item {
	t.Helper()
	item.OwnerID = sess.OwnerID()
	created, err := store.CreateItem(context.Background(), item)
	if err != nil {
		t.Fatal(err)
	}
	sess.ItemCreated(created.ID, created.LastPhotoEdit)
	return created
}
