package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/sublimeanger/vintifi-sub000/internal/models"
	"github.com/sublimeanger/vintifi-sub000/internal/repositories"
)

type ItemHandler struct {
	Repo *repositories.ItemRepository
}

// GetItemByID serves the owner-scoped record detail view.
func (h *ItemHandler) GetItemByID(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get(":id")
	if id == "" {
		http.Error(w, "Invalid item ID", http.StatusBadRequest)
		return
	}
	item, err := h.Repo.GetItemByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, models.ErrItemNotFound) {
			http.Error(w, "Item not found", http.StatusNotFound)
			return
		}
		log.Printf("GetItemByID error: %v", err)
		http.Error(w, "Failed to get item", http.StatusInternalServerError)
		return
	}
	if item.OwnerID != OwnerFromContext(r.Context()) {
		http.Error(w, "Item not found", http.StatusNotFound)
		return
	}
	json.NewEncoder(w).Encode(item)
}

// MarkPhotoEdited is the photo studio's write side of the completion signal:
// it stamps last_photo_edit, which the wizard detects by polling.
func (h *ItemHandler) MarkPhotoEdited(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get(":id")
	if id == "" {
		http.Error(w, "Invalid item ID", http.StatusBadRequest)
		return
	}
	item, err := h.Repo.GetItemByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, models.ErrItemNotFound) {
			http.Error(w, "Item not found", http.StatusNotFound)
			return
		}
		log.Printf("MarkPhotoEdited error: %v", err)
		http.Error(w, "Failed to load item", http.StatusInternalServerError)
		return
	}
	if item.OwnerID != OwnerFromContext(r.Context()) {
		http.Error(w, "Item not found", http.StatusNotFound)
		return
	}
	if err := h.Repo.TouchPhotoEditStamp(r.Context(), id); err != nil {
		log.Printf("MarkPhotoEdited error: %v", err)
		http.Error(w, "Failed to update item", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
}
