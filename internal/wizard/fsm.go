package wizard

// Step identifies one of the five ordered wizard stages.
type Step int

const (
	StepAddItem Step = iota + 1
	StepPrice
	StepOptimize
	StepPhotos
	StepPack
)

const (
	firstStep = StepAddItem
	lastStep  = StepPack
)

func (s Step) String() string {
	switch s {
	case StepAddItem:
		return "add_item"
	case StepPrice:
		return "price"
	case StepOptimize:
		return "optimize"
	case StepPhotos:
		return "photos"
	case StepPack:
		return "pack"
	}
	return "unknown"
}

// StepStatus values used by the wizard state machine.
const (
	StatusPending = "pending"
	StatusLoading = "loading"
	StatusDone    = "done"
	StatusSkipped = "skipped"
)

// skippable reports whether a step may be completed without its guard signal.
// Only the photos step can be skipped.
func skippable(s Step) bool {
	return s == StepPhotos
}

func next(s Step) Step {
	if s >= lastStep {
		return lastStep
	}
	return s + 1
}

// guards holds the per-step advance predicate over the session's completion
// flags. The add-item step is driven by the create callback, never by a
// generic continue action; pack is terminal.
var guards = map[Step]func(*Session) bool{
	StepAddItem: func(s *Session) bool { return s.itemID != "" },
	StepPrice:   func(s *Session) bool { return s.priceAccepted },
	StepOptimize: func(s *Session) bool {
		return s.optimizationSaved
	},
	StepPhotos: func(s *Session) bool {
		return s.statuses[StepPhotos] == StatusDone || s.statuses[StepPhotos] == StatusSkipped
	},
	StepPack: func(s *Session) bool { return false },
}

// canAdvance evaluates the guard for the given step. Callers must hold the
// session lock.
func canAdvance(s *Session, step Step) bool {
	guard, ok := guards[step]
	if !ok {
		return false
	}
	return guard(s)
}
