package services

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/sublimeanger/vintifi-sub000/internal/config"
	"github.com/sublimeanger/vintifi-sub000/internal/continuation"
	"github.com/sublimeanger/vintifi-sub000/internal/models"
	"github.com/sublimeanger/vintifi-sub000/internal/wizard"
)

// PhotoService never edits photos itself. Enhancement happens in the external
// photo studio; this service hands navigation off, then detects — via the
// item's last-photo-edit stamp — that work happened there.
type PhotoService struct {
	Repo          ItemStore
	Continuations continuation.Store
	Notifier      *NotifyService
	Cfg           config.WizardConfig
	ErrorLog      *log.Logger
}

// Handoff writes the continuation token, flags the session as having visited
// the studio, and returns the studio URL. With no primary photo the hand-off
// is still offered, flagged so the UI can warn that results will be limited.
func (s *PhotoService) Handoff(ctx context.Context, sess *wizard.Session) (models.HandoffResult, error) {
	itemID := sess.ItemID()
	if itemID == "" {
		return models.HandoffResult{}, models.ErrNoItem
	}
	item, err := s.Repo.GetItemByID(ctx, itemID)
	if err != nil {
		return models.HandoffResult{}, err
	}

	token := models.ContinuationToken{
		OwnerID: sess.OwnerID(),
		ItemID:  itemID,
		Step:    int(wizard.StepPhotos),
	}
	if err := s.Continuations.Save(ctx, token); err != nil {
		return models.HandoffResult{}, err
	}
	sess.SetVisitedStudio(true)

	return models.HandoffResult{
		StudioURL:      s.Cfg.StudioBaseURL + "/editor?item=" + itemID,
		LimitedResults: item.PrimaryPhotoURL == "",
	}, nil
}

// Resume runs once when a session mounts. A pending continuation token is
// consumed immediately — read then deleted, so a hard refresh cannot
// re-trigger it — and on success the session is restored to the photos step
// with the earlier steps done. Every failure is fail-open: the token is
// already gone and the session simply stays at step one.
func (s *PhotoService) Resume(ctx context.Context, sess *wizard.Session) bool {
	token, err := s.Continuations.Consume(ctx, sess.OwnerID())
	if err != nil {
		s.errorf("consume continuation token: %v", err)
		return false
	}
	if token == nil {
		return false
	}

	item, err := s.Repo.GetItemByID(ctx, token.ItemID)
	if err != nil {
		s.errorf("resume fetch item %s: %v", token.ItemID, err)
		return false
	}
	if item.OwnerID != sess.OwnerID() {
		return false
	}

	sess.RestoreForPhotos(item.ID, item.LastPhotoEdit)
	s.StartPolling(sess)
	return true
}

// Reenter runs when the session returns to the photos step without a full
// remount. One fetch decides: a stamp change since the baseline means the
// work already happened and polling is skipped entirely; otherwise polling
// starts if the studio was visited.
func (s *PhotoService) Reenter(ctx context.Context, sess *wizard.Session) {
	status := sess.Status(wizard.StepPhotos)
	if status == wizard.StatusDone || status == wizard.StatusSkipped {
		return
	}
	if sess.ItemID() == "" {
		return
	}

	stamp, err := s.Repo.GetPhotoEditStamp(ctx, sess.ItemID())
	if err == nil && stampChanged(sess.Baseline(), stamp) {
		s.complete(sess, stamp)
		return
	}
	if sess.VisitedStudio() {
		s.StartPolling(sess)
	}
}

// StartPolling owns the one background timer this subsystem runs. Starting
// always cancels any prior poll for the session first, so at most one timer
// exists; fetch failures are swallowed and the next tick retries.
func (s *PhotoService) StartPolling(sess *wizard.Session) {
	stop := make(chan struct{})
	var once sync.Once
	cancel := func() { once.Do(func() { close(stop) }) }
	sess.SetPoller(cancel)

	go func() {
		ticker := time.NewTicker(s.Cfg.PollInterval)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				stamp, err := s.Repo.GetPhotoEditStamp(context.Background(), sess.ItemID())
				if err != nil {
					continue
				}
				if !stampChanged(sess.Baseline(), stamp) {
					continue
				}
				cancel()
				s.complete(sess, stamp)
				return
			}
		}
	}()
}

// StopPolling cancels the active poll and leaves the step pending.
func (s *PhotoService) StopPolling(sess *wizard.Session) {
	sess.StopPoller()
}

// Skip marks the photos step skipped and advances immediately, no completion
// signal required.
func (s *PhotoService) Skip(sess *wizard.Session) {
	sess.SkipPhotos()
}

func (s *PhotoService) complete(sess *wizard.Session, stamp *time.Time) {
	if !sess.MarkPhotosDone(stamp) {
		return
	}
	sess.StopPoller()
	if s.Notifier != nil {
		s.Notifier.PhotosReady(context.Background(), sess.DeviceToken())
	}
	time.AfterFunc(s.Cfg.AutoAdvanceDelay, func() {
		sess.AdvanceIfAt(wizard.StepPhotos)
	})
}

func (s *PhotoService) errorf(format string, args ...interface{}) {
	if s.ErrorLog != nil {
		s.ErrorLog.Printf(format, args...)
	}
}

// stampChanged compares the fetched photo-edit stamp against the captured
// baseline. A nil stamp never signals completion; a stamp appearing where
// the baseline was nil does.
func stampChanged(baseline, current *time.Time) bool {
	if current == nil {
		return false
	}
	if baseline == nil {
		return true
	}
	return !current.Equal(*baseline)
}
