package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/sublimeanger/vintifi-sub000/internal/config"
	"github.com/sublimeanger/vintifi-sub000/internal/continuation"
	"github.com/sublimeanger/vintifi-sub000/internal/models"
	"github.com/sublimeanger/vintifi-sub000/internal/wizard"
)

func testWizardConfig() config.WizardConfig {
	return config.WizardConfig{
		PollInterval:         5 * time.Millisecond,
		AutoAdvanceDelay:     time.Millisecond,
		HealthScoreThreshold: 60,
		StudioBaseURL:        "https://studio.test",
	}
}

func newPhotoService(store *fakeStore) (*PhotoService, *continuation.MemoryStore) {
	tokens := continuation.NewMemoryStore()
	return &PhotoService{
		Repo:          store,
		Continuations: tokens,
		Cfg:           testWizardConfig(),
	}, tokens
}

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(2 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}

// sessionAtPhotos walks a fresh session through the first three steps with the
// given item and lands the pointer on the photos step.
func sessionAtPhotos(t *testing.T, store *fakeStore, item models.Item) (*wizard.Session, models.Item) {
	t.Helper()
	sess := newTestSession()
	created := seedItem(t, store, sess, item)
	sess.PriceAcceptedMark()
	if _, err := sess.Advance(); err != nil {
		t.Fatal(err)
	}
	sess.OptimizationSavedMark()
	if _, err := sess.Advance(); err != nil {
		t.Fatal(err)
	}
	return sess, created
}

func TestHandoffWritesTokenAndFlagsLimitedResults(t *testing.T) {
	store := newFakeStore()
	svc, tokens := newPhotoService(store)
	sess, created := sessionAtPhotos(t, store, models.Item{Title: "Vintage denim jacket"})

	result, err := svc.Handoff(context.Background(), sess)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(result.StudioURL, created.ID) {
		t.Fatalf("expected the studio url to reference the item, got %s", result.StudioURL)
	}
	if !result.LimitedResults {
		t.Fatal("expected the limited-results flag without a primary photo")
	}
	if !sess.VisitedStudio() {
		t.Fatal("expected the studio flag set")
	}

	token, err := tokens.Consume(context.Background(), sess.OwnerID())
	if err != nil {
		t.Fatal(err)
	}
	if token == nil || token.ItemID != created.ID || token.Step != int(wizard.StepPhotos) {
		t.Fatalf("unexpected continuation token: %+v", token)
	}
}

func TestHandoffWithPrimaryPhoto(t *testing.T) {
	store := newFakeStore()
	svc, _ := newPhotoService(store)
	sess, _ := sessionAtPhotos(t, store, models.Item{
		Title:           "Vintage denim jacket",
		PhotoURLs:       []string{"https://cdn.test/items/a.jpg"},
		PrimaryPhotoURL: "https://cdn.test/items/a.jpg",
	})

	result, err := svc.Handoff(context.Background(), sess)
	if err != nil {
		t.Fatal(err)
	}
	if result.LimitedResults {
		t.Fatal("a primary photo means full results")
	}
}

func TestResumeRestoresSessionAndConsumesToken(t *testing.T) {
	store := newFakeStore()
	svc, tokens := newPhotoService(store)

	baseline := time.Now().Add(-time.Hour)
	created, err := store.CreateItem(context.Background(), models.Item{
		OwnerID:       "owner-1",
		Title:         "Vintage denim jacket",
		LastPhotoEdit: &baseline,
	})
	if err != nil {
		t.Fatal(err)
	}
	if err := tokens.Save(context.Background(), models.ContinuationToken{
		OwnerID: "owner-1",
		ItemID:  created.ID,
		Step:    int(wizard.StepPhotos),
	}); err != nil {
		t.Fatal(err)
	}

	sess := newTestSession()
	if !svc.Resume(context.Background(), sess) {
		t.Fatal("expected the session restored from the token")
	}
	defer sess.StopPoller()

	if sess.Step() != wizard.StepPhotos {
		t.Fatalf("expected the photos step, got %s", sess.Step())
	}
	if sess.ItemID() != created.ID {
		t.Fatalf("expected restored item %s, got %s", created.ID, sess.ItemID())
	}
	if !sess.PollerActive() {
		t.Fatal("expected polling to start on resume")
	}

	// the token is gone; a second mount starts clean
	fresh := newTestSession()
	if svc.Resume(context.Background(), fresh) {
		t.Fatal("a consumed token must not resume a second session")
	}
	if fresh.Step() != wizard.StepAddItem {
		t.Fatalf("expected a clean session at step one, got %s", fresh.Step())
	}
}

func TestResumeOwnerMismatchFailsOpen(t *testing.T) {
	store := newFakeStore()
	svc, tokens := newPhotoService(store)

	created, err := store.CreateItem(context.Background(), models.Item{
		OwnerID: "someone-else",
		Title:   "Vintage denim jacket",
	})
	if err != nil {
		t.Fatal(err)
	}
	if err := tokens.Save(context.Background(), models.ContinuationToken{
		OwnerID: "owner-1",
		ItemID:  created.ID,
		Step:    int(wizard.StepPhotos),
	}); err != nil {
		t.Fatal(err)
	}

	sess := newTestSession()
	if svc.Resume(context.Background(), sess) {
		t.Fatal("a token for someone else's item must not resume")
	}
	if sess.Step() != wizard.StepAddItem {
		t.Fatalf("expected the session untouched, got %s", sess.Step())
	}
}

func TestPollingDetectsCompletionExactlyOnce(t *testing.T) {
	store := newFakeStore()
	svc, _ := newPhotoService(store)

	baseline := time.Now().Add(-time.Hour)
	sess, created := sessionAtPhotos(t, store, models.Item{
		Title:         "Vintage denim jacket",
		LastPhotoEdit: &baseline,
	})
	sess.SetVisitedStudio(true)

	svc.StartPolling(sess)
	if !sess.PollerActive() {
		t.Fatal("expected an active poller")
	}

	store.setPhotoEditStamp(created.ID, time.Now())

	waitFor(t, "photo completion", func() bool {
		return sess.Status(wizard.StepPhotos) == wizard.StatusDone
	})
	waitFor(t, "auto-advance to pack", func() bool {
		return sess.Step() == wizard.StepPack
	})
	if sess.PollerActive() {
		t.Fatal("expected the poller stopped after completion")
	}

	// the timer is gone; the stamp read count settles
	settled := store.stampReadCount()
	time.Sleep(30 * time.Millisecond)
	if store.stampReadCount() != settled {
		t.Fatal("expected no further polling after completion")
	}
}

func TestReenterDetectsChangeWithoutPolling(t *testing.T) {
	store := newFakeStore()
	svc, _ := newPhotoService(store)

	baseline := time.Now().Add(-time.Hour)
	sess, created := sessionAtPhotos(t, store, models.Item{
		Title:         "Vintage denim jacket",
		LastPhotoEdit: &baseline,
	})
	store.setPhotoEditStamp(created.ID, time.Now())

	svc.Reenter(context.Background(), sess)

	if sess.Status(wizard.StepPhotos) != wizard.StatusDone {
		t.Fatalf("expected the change detected on re-entry, got %s", sess.Status(wizard.StepPhotos))
	}
	if sess.PollerActive() {
		t.Fatal("a detected change must not start polling")
	}
	if store.stampReadCount() != 1 {
		t.Fatalf("expected a single stamp read, got %d", store.stampReadCount())
	}
}

func TestReenterStartsPollingOnlyAfterStudioVisit(t *testing.T) {
	store := newFakeStore()
	svc, _ := newPhotoService(store)

	baseline := time.Now().Add(-time.Hour)
	sess, _ := sessionAtPhotos(t, store, models.Item{
		Title:         "Vintage denim jacket",
		LastPhotoEdit: &baseline,
	})

	svc.Reenter(context.Background(), sess)
	if sess.PollerActive() {
		t.Fatal("no polling before the studio was visited")
	}

	sess.SetVisitedStudio(true)
	svc.Reenter(context.Background(), sess)
	if !sess.PollerActive() {
		t.Fatal("expected polling after the studio visit")
	}
	svc.StopPolling(sess)
	if sess.PollerActive() {
		t.Fatal("expected the poller stopped")
	}
	if sess.Status(wizard.StepPhotos) != wizard.StatusPending {
		t.Fatal("stopping the poll must leave the step pending")
	}
}

func TestSkipAdvancesWithoutSignal(t *testing.T) {
	store := newFakeStore()
	svc, _ := newPhotoService(store)
	sess, _ := sessionAtPhotos(t, store, models.Item{Title: "Vintage denim jacket"})

	svc.Skip(sess)

	if sess.Step() != wizard.StepPack {
		t.Fatalf("expected the pack step after skip, got %s", sess.Step())
	}
	if sess.Status(wizard.StepPhotos) != wizard.StatusSkipped {
		t.Fatalf("expected photos skipped, got %s", sess.Status(wizard.StepPhotos))
	}
	if store.stampReadCount() != 0 {
		t.Fatal("skipping must not touch the photo-edit stamp")
	}
}
