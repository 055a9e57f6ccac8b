package wizard

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/sublimeanger/vintifi-sub000/internal/models"
)

// CallState is the explicit sub-state of a coordinator's automatic service
// call, so re-renders and repeated fetches cannot trigger duplicate requests.
type CallState int

const (
	CallIdle CallState = iota
	CallLoading
	CallSucceeded
	CallFailed
)

// Session is the ephemeral wizard state for one run of the guided flow. Every
// mutation goes through a named transition method under the session lock.
type Session struct {
	mu sync.Mutex

	id          string
	ownerID     string
	entryMethod string
	deviceToken string

	step     Step
	statuses map[Step]string

	itemID            string
	priceAccepted     bool
	optimizationSaved bool

	visitedStudio bool
	photoBaseline *time.Time

	priceState  CallState
	priceResult *models.PriceAssessment
	optState    CallState
	optResult   *models.OptimizationResult
	optWarning  bool

	// generation changes on reset; in-flight call results from a previous
	// generation are dropped instead of applied.
	generation uint64

	stopPoll func()

	events chan<- models.WizardEvent
}

func newSession(ownerID, entryMethod, deviceToken string, events chan<- models.WizardEvent) *Session {
	s := &Session{
		id:          uuid.NewString(),
		ownerID:     ownerID,
		entryMethod: entryMethod,
		deviceToken: deviceToken,
		step:        firstStep,
		statuses:    make(map[Step]string),
		events:      events,
	}
	for st := firstStep; st <= lastStep; st++ {
		s.statuses[st] = StatusPending
	}
	return s
}

func (s *Session) ID() string { return s.id }

func (s *Session) OwnerID() string { return s.ownerID }

func (s *Session) EntryMethod() string { return s.entryMethod }

func (s *Session) DeviceToken() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.deviceToken
}

func (s *Session) Step() Step {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.step
}

func (s *Session) Status(step Step) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.statuses[step]
}

func (s *Session) ItemID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.itemID
}

func (s *Session) Generation() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generation
}

// CanAdvance reports whether the current step's guard holds.
func (s *Session) CanAdvance() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return canAdvance(s, s.step)
}

// Advance moves the pointer forward by one once the current step's guard
// holds. The completed step keeps its skipped status if it was skipped,
// otherwise it is marked done. The pointer clamps at the terminal step.
func (s *Session) Advance() (Step, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !canAdvance(s, s.step) {
		return s.step, models.ErrStepLocked
	}
	if s.statuses[s.step] != StatusSkipped {
		s.statuses[s.step] = StatusDone
	}
	s.step = next(s.step)
	s.publishLocked(models.EventStepChanged, s.statuses[s.step])
	return s.step, nil
}

// Back moves the pointer one step back without clearing any recorded status.
func (s *Session) Back() (Step, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.step == firstStep {
		return s.step, models.ErrAtFirstStep
	}
	s.step--
	s.publishLocked(models.EventStepChanged, s.statuses[s.step])
	return s.step, nil
}

// Reset returns the wizard to step one with every status pending, discards
// the item reference and cached results, and invalidates in-flight calls.
func (s *Session) Reset() {
	s.mu.Lock()
	stop := s.stopPoll
	s.stopPoll = nil
	s.step = firstStep
	for st := firstStep; st <= lastStep; st++ {
		s.statuses[st] = StatusPending
	}
	s.itemID = ""
	s.priceAccepted = false
	s.optimizationSaved = false
	s.visitedStudio = false
	s.photoBaseline = nil
	s.priceState = CallIdle
	s.priceResult = nil
	s.optState = CallIdle
	s.optResult = nil
	s.optWarning = false
	s.generation++
	s.publishLocked(models.EventSessionReset, StatusPending)
	s.mu.Unlock()
	if stop != nil {
		stop()
	}
}

// SetStepStatus overrides one step's status. Coordinators use the named
// transitions below; this exists for the loading markers.
func (s *Session) SetStepStatus(step Step, status string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.statuses[step] = status
}

// ItemCreated records the created item and completes the add-item step. The
// create callback is the only way past step one. Calling it again within the
// session is a no-op.
func (s *Session) ItemCreated(itemID string, baseline *time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.itemID != "" {
		return
	}
	s.itemID = itemID
	s.photoBaseline = baseline
	s.statuses[StepAddItem] = StatusDone
	if s.step == StepAddItem {
		s.step = StepPrice
	}
	s.publishLocked(models.EventStepChanged, s.statuses[s.step])
}

// BeginPriceCall claims the automatic pricing invocation. It refuses when a
// result is already cached or a call is in flight, which is what keeps the
// auto-invoke at most once per step entry.
func (s *Session) BeginPriceCall() (uint64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.priceResult != nil || s.priceState == CallLoading {
		return s.generation, false
	}
	s.priceState = CallLoading
	s.statuses[StepPrice] = StatusLoading
	return s.generation, true
}

// FinishPriceCall applies the pricing result unless the session was reset
// while the call was in flight.
func (s *Session) FinishPriceCall(gen uint64, result *models.PriceAssessment, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.generation {
		return
	}
	if err != nil {
		s.priceState = CallFailed
		s.statuses[StepPrice] = StatusPending
		return
	}
	s.priceState = CallSucceeded
	s.priceResult = result
	s.statuses[StepPrice] = StatusPending
}

func (s *Session) PriceResult() *models.PriceAssessment {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.priceResult
}

// ClearPriceResult discards the cached assessment for a manual re-run. An
// already accepted price keeps its guard state.
func (s *Session) ClearPriceResult() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.priceResult = nil
	s.priceState = CallIdle
}

// PriceAcceptedMark satisfies the pricing step guard after a successful write.
func (s *Session) PriceAcceptedMark() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.priceAccepted = true
}

func (s *Session) BeginOptimizeCall() (uint64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.optResult != nil || s.optState == CallLoading {
		return s.generation, false
	}
	s.optState = CallLoading
	s.statuses[StepOptimize] = StatusLoading
	return s.generation, true
}

func (s *Session) FinishOptimizeCall(gen uint64, result *models.OptimizationResult, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.generation {
		return
	}
	if err != nil {
		s.optState = CallFailed
		s.statuses[StepOptimize] = StatusPending
		return
	}
	s.optState = CallSucceeded
	s.optResult = result
	s.statuses[StepOptimize] = StatusPending
}

func (s *Session) OptimizationResult() *models.OptimizationResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.optResult
}

func (s *Session) ClearOptimization() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.optResult = nil
	s.optState = CallIdle
	s.optWarning = false
}

// SetDisclosureWarning records that seller notes were supplied but not
// detected in the generated description. Non-blocking; save still proceeds.
func (s *Session) SetDisclosureWarning(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.optWarning = v
}

func (s *Session) DisclosureWarning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.optWarning
}

// OptimizationSavedMark satisfies the optimise step guard.
func (s *Session) OptimizationSavedMark() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.optimizationSaved = true
}

func (s *Session) Baseline() *time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.photoBaseline
}

func (s *Session) SetBaseline(t *time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.photoBaseline = t
}

func (s *Session) VisitedStudio() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.visitedStudio
}

func (s *Session) SetVisitedStudio(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.visitedStudio = v
}

// MarkPhotosDone records the detected photo-edit completion exactly once and
// moves the comparison baseline forward. Returns false if the step had
// already completed.
func (s *Session) MarkPhotosDone(stamp *time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.statuses[StepPhotos] == StatusDone {
		return false
	}
	s.statuses[StepPhotos] = StatusDone
	s.photoBaseline = stamp
	s.publishLocked(models.EventPhotoComplete, StatusDone)
	return true
}

// SkipPhotos marks the photos step skipped and advances immediately; no
// completion signal is required.
func (s *Session) SkipPhotos() Step {
	s.mu.Lock()
	stop := s.stopPoll
	s.stopPoll = nil
	s.statuses[StepPhotos] = StatusSkipped
	if s.step == StepPhotos {
		s.step = next(s.step)
	}
	s.publishLocked(models.EventStepChanged, StatusSkipped)
	s.mu.Unlock()
	if stop != nil {
		stop()
	}
	return StepPack
}

// RestoreForPhotos rebuilds a torn-down session from a continuation token:
// pointer on the photos step, steps one through three done, studio flag set
// so polling starts.
func (s *Session) RestoreForPhotos(itemID string, baseline *time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.itemID = itemID
	s.priceAccepted = true
	s.optimizationSaved = true
	s.statuses[StepAddItem] = StatusDone
	s.statuses[StepPrice] = StatusDone
	s.statuses[StepOptimize] = StatusDone
	s.step = StepPhotos
	s.visitedStudio = true
	s.photoBaseline = baseline
	s.publishLocked(models.EventStepChanged, s.statuses[StepPhotos])
}

// AdvanceIfAt advances only when the pointer still sits on the given step,
// used by the delayed auto-advance after photo completion.
func (s *Session) AdvanceIfAt(step Step) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.step != step || !canAdvance(s, s.step) {
		return
	}
	if s.statuses[s.step] != StatusSkipped {
		s.statuses[s.step] = StatusDone
	}
	s.step = next(s.step)
	s.publishLocked(models.EventStepChanged, s.statuses[s.step])
}

// SetPoller hands the session ownership of a polling cancel function. Any
// previous poller is stopped first so at most one timer runs per session.
func (s *Session) SetPoller(stop func()) {
	s.mu.Lock()
	prev := s.stopPoll
	s.stopPoll = stop
	s.mu.Unlock()
	if prev != nil {
		prev()
	}
}

// StopPoller cancels the active poller, if any.
func (s *Session) StopPoller() {
	s.mu.Lock()
	stop := s.stopPoll
	s.stopPoll = nil
	s.mu.Unlock()
	if stop != nil {
		stop()
	}
}

// PollerActive reports whether the session currently owns a polling timer.
func (s *Session) PollerActive() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stopPoll != nil
}

func (s *Session) Snapshot(resumed bool) models.WizardSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	statuses := make(map[int]string, len(s.statuses))
	for st, v := range s.statuses {
		statuses[int(st)] = v
	}
	return models.WizardSnapshot{
		SessionID:          s.id,
		Step:               int(s.step),
		Statuses:           statuses,
		EntryMethod:        s.entryMethod,
		ItemID:             s.itemID,
		PriceAccepted:      s.priceAccepted,
		OptimizationSaved:  s.optimizationSaved,
		VisitedPhotoStudio: s.visitedStudio,
		Resumed:            resumed,
	}
}

func (s *Session) publishLocked(eventType, status string) {
	if s.events == nil {
		return
	}
	evt := models.WizardEvent{
		SessionID: s.id,
		Type:      eventType,
		Step:      int(s.step),
		Status:    status,
		At:        time.Now(),
	}
	select {
	case s.events <- evt:
	default:
	}
}
