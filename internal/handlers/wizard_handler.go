package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/sublimeanger/vintifi-sub000/internal/models"
	"github.com/sublimeanger/vintifi-sub000/internal/services"
	"github.com/sublimeanger/vintifi-sub000/internal/wizard"
)

type WizardHandler struct {
	Sessions  *wizard.Manager
	Items     *services.ItemService
	Prices    *services.PriceService
	Optimizer *services.OptimizerService
	Photos    *services.PhotoService
	Packaging *services.PackagingService
	Importer  *services.ImporterService
}

type openSessionRequest struct {
	EntryMethod string `json:"entry_method"`
	DeviceToken string `json:"device_token,omitempty"`
}

// OpenSession creates a wizard session for the caller and immediately runs
// resume detection: a pending continuation token restores the session to the
// photos step before the first snapshot is returned.
func (h *WizardHandler) OpenSession(w http.ResponseWriter, r *http.Request) {
	var req openSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	owner := OwnerFromContext(r.Context())
	if owner == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	if req.EntryMethod == "" {
		req.EntryMethod = models.EntryMethodManual
	}

	sess := h.Sessions.Create(owner, req.EntryMethod, req.DeviceToken)
	resumed := h.Photos.Resume(r.Context(), sess)
	json.NewEncoder(w).Encode(sess.Snapshot(resumed))
}

func (h *WizardHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	json.NewEncoder(w).Encode(sess.Snapshot(false))
}

func (h *WizardHandler) Advance(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	step, err := sess.Advance()
	if err != nil {
		h.respondError(w, err)
		return
	}
	if step == wizard.StepPhotos {
		h.Photos.Reenter(r.Context(), sess)
	}
	json.NewEncoder(w).Encode(sess.Snapshot(false))
}

func (h *WizardHandler) Back(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	step, err := sess.Back()
	if err != nil {
		h.respondError(w, err)
		return
	}
	if step == wizard.StepPhotos {
		h.Photos.Reenter(r.Context(), sess)
	}
	json.NewEncoder(w).Encode(sess.Snapshot(false))
}

func (h *WizardHandler) Reset(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	h.Packaging.Reset(r.Context(), sess)
	json.NewEncoder(w).Encode(sess.Snapshot(false))
}

// CreateItem is the add-item completion path. Repeating it within one
// session returns the already created record.
func (h *WizardHandler) CreateItem(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	var req models.CreateItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	item, err := h.Items.CreateItem(r.Context(), sess, req)
	if err != nil {
		h.respondError(w, err)
		return
	}
	json.NewEncoder(w).Encode(item)
}

func (h *WizardHandler) GetAssessment(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	assessment, err := h.Prices.Assessment(r.Context(), sess)
	if err != nil {
		h.respondError(w, err)
		return
	}
	json.NewEncoder(w).Encode(assessment)
}

type acceptPriceRequest struct {
	UseSuggested bool    `json:"use_suggested"`
	CustomPrice  float64 `json:"custom_price,omitempty"`
}

func (h *WizardHandler) AcceptPrice(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	var req acceptPriceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	var err error
	if req.UseSuggested {
		err = h.Prices.AcceptSuggested(r.Context(), sess)
	} else {
		err = h.Prices.AcceptCustom(r.Context(), sess, req.CustomPrice)
	}
	if err != nil {
		h.respondError(w, err)
		return
	}
	json.NewEncoder(w).Encode(sess.Snapshot(false))
}

func (h *WizardHandler) RerunAssessment(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	assessment, err := h.Prices.Rerun(r.Context(), sess)
	if err != nil {
		h.respondError(w, err)
		return
	}
	json.NewEncoder(w).Encode(assessment)
}

func (h *WizardHandler) GetOptimization(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	view, err := h.Optimizer.Result(r.Context(), sess)
	if err != nil {
		h.respondError(w, err)
		return
	}
	json.NewEncoder(w).Encode(view)
}

func (h *WizardHandler) SaveOptimization(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	if err := h.Optimizer.Save(r.Context(), sess); err != nil {
		h.respondError(w, err)
		return
	}
	json.NewEncoder(w).Encode(sess.Snapshot(false))
}

func (h *WizardHandler) RerunOptimization(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	view, err := h.Optimizer.Rerun(r.Context(), sess)
	if err != nil {
		h.respondError(w, err)
		return
	}
	json.NewEncoder(w).Encode(view)
}

func (h *WizardHandler) PhotoHandoff(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	result, err := h.Photos.Handoff(r.Context(), sess)
	if err != nil {
		h.respondError(w, err)
		return
	}
	json.NewEncoder(w).Encode(result)
}

func (h *WizardHandler) StartPhotoPoll(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	h.Photos.Reenter(r.Context(), sess)
	json.NewEncoder(w).Encode(sess.Snapshot(false))
}

func (h *WizardHandler) StopPhotoPoll(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	h.Photos.StopPolling(sess)
	json.NewEncoder(w).Encode(sess.Snapshot(false))
}

func (h *WizardHandler) SkipPhotos(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	h.Photos.Skip(sess)
	json.NewEncoder(w).Encode(sess.Snapshot(false))
}

func (h *WizardHandler) GetPackage(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	preview, err := h.Packaging.Preview(r.Context(), sess)
	if err != nil {
		h.respondError(w, err)
		return
	}
	json.NewEncoder(w).Encode(preview)
}

type listingRefRequest struct {
	URL string `json:"url"`
}

func (h *WizardHandler) RecordListingRef(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	var req listingRefRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.Packaging.RecordListingRef(r.Context(), sess, req.URL); err != nil {
		h.respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *WizardHandler) IssueEventTicket(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	ticket, err := h.Sessions.IssueTicket(sess.ID())
	if err != nil {
		h.respondError(w, err)
		return
	}
	json.NewEncoder(w).Encode(map[string]string{"ticket": ticket})
}

type importRequest struct {
	URL string `json:"url"`
}

func (h *WizardHandler) ImportListing(w http.ResponseWriter, r *http.Request) {
	var req importRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	preview, err := h.Importer.Import(r.Context(), req.URL)
	if err != nil {
		http.Error(w, "Failed to import listing", http.StatusBadGateway)
		return
	}
	json.NewEncoder(w).Encode(preview)
}

// session resolves the :sid route param to a live session owned by the
// caller.
func (h *WizardHandler) session(w http.ResponseWriter, r *http.Request) (*wizard.Session, bool) {
	sid := r.URL.Query().Get(":sid")
	sess, err := h.Sessions.Get(sid)
	if err != nil {
		http.Error(w, "Session not found", http.StatusNotFound)
		return nil, false
	}
	if sess.OwnerID() != OwnerFromContext(r.Context()) {
		http.Error(w, "Session not found", http.StatusNotFound)
		return nil, false
	}
	return sess, true
}

func (h *WizardHandler) respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, models.ErrStepLocked), errors.Is(err, models.ErrAtFirstStep):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, models.ErrInvalidPrice), errors.Is(err, models.ErrEmptyListingURL),
		errors.Is(err, models.ErrNoItem):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, models.ErrNoAssessment), errors.Is(err, models.ErrNoOptimization),
		errors.Is(err, models.ErrAssessmentPending):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, models.ErrItemNotFound), errors.Is(err, models.ErrSessionNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	default:
		log.Printf("wizard handler error: %v", err)
		http.Error(w, "Something went wrong", http.StatusInternalServerError)
	}
}
