package models

import (
	"errors"
)

var ErrItemNotFound = errors.New("models: item not found")
var ErrNotOwner = errors.New("models: item does not belong to caller")
var (
	ErrSessionNotFound   = errors.New("models: wizard session not found")
	ErrStepLocked        = errors.New("models: step guard not satisfied")
	ErrAtFirstStep       = errors.New("models: already at first step")
	ErrInvalidPrice      = errors.New("models: price must be a positive number")
	ErrNoAssessment      = errors.New("models: no price assessment available")
	ErrNoOptimization    = errors.New("models: no optimization result available")
	ErrNoItem            = errors.New("models: no item created for this session")
	ErrAssessmentPending = errors.New("models: assessment already in progress")
	ErrInvalidTicket     = errors.New("models: invalid or expired event ticket")
	ErrEmptyListingURL   = errors.New("models: listing reference must not be empty")
)
