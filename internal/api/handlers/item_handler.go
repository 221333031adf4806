package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/avelarm/taskbox-be/internal/auth"
	"github.com/avelarm/taskbox-be/internal/models"
	"github.com/avelarm/taskbox-be/internal/services"
)

// ItemHandler handles HTTP requests for a user's items. Every method
// runs behind the auth middleware, so the authenticated user ID is
// always present in the request context.
type ItemHandler struct {
	service services.ItemServiceProvider
}

// NewItemHandler creates a new ItemHandler.
func NewItemHandler(service services.ItemServiceProvider) *ItemHandler {
	return &ItemHandler{service: service}
}

// CreateItemPayload defines the structure for item creation requests.
type CreateItemPayload struct {
	Title  string `json:"title"`
	IsDone bool   `json:"is_done"`
}

// List handles the request to get all of the caller's items.
func (h *ItemHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Missing Authorization Header")
		return
	}

	items, err := h.service.ListByOwner(userID)
	if err != nil {
		log.Error().Err(err).Int64("user_id", userID).Msg("Failed to list items")
		respondError(w, http.StatusInternalServerError, "failed to retrieve items")
		return
	}

	respondJSON(w, http.StatusOK, items)
}

// Create handles the request to create a new item for the caller.
func (h *ItemHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Missing Authorization Header")
		return
	}

	var payload CreateItemPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "title is required")
		return
	}
	if payload.Title == "" {
		respondError(w, http.StatusBadRequest, "title is required")
		return
	}

	item, err := h.service.Create(userID, payload.Title, payload.IsDone)
	if err != nil {
		log.Error().Err(err).Int64("user_id", userID).Msg("Failed to create item")
		respondError(w, http.StatusInternalServerError, "failed to create item")
		return
	}

	respondJSON(w, http.StatusCreated, item)
}

// Get handles the request to get a single item by its ID.
func (h *ItemHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Missing Authorization Header")
		return
	}

	itemID, err := itemIDParam(r)
	if err != nil {
		respondError(w, http.StatusNotFound, "not found")
		return
	}

	item, err := h.service.GetByOwner(userID, itemID)
	if err != nil {
		h.respondItemError(w, err, userID, itemID, "Failed to get item")
		return
	}

	respondJSON(w, http.StatusOK, item)
}

// Update handles the request to partially update an item.
func (h *ItemHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Missing Authorization Header")
		return
	}

	itemID, err := itemIDParam(r)
	if err != nil {
		respondError(w, http.StatusNotFound, "not found")
		return
	}

	var patch models.ItemPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	item, err := h.service.UpdateByOwner(userID, itemID, patch)
	if err != nil {
		h.respondItemError(w, err, userID, itemID, "Failed to update item")
		return
	}

	respondJSON(w, http.StatusOK, item)
}

// Delete handles the request to delete an item.
func (h *ItemHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Missing Authorization Header")
		return
	}

	itemID, err := itemIDParam(r)
	if err != nil {
		respondError(w, http.StatusNotFound, "not found")
		return
	}

	if err := h.service.DeleteByOwner(userID, itemID); err != nil {
		h.respondItemError(w, err, userID, itemID, "Failed to delete item")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// itemIDParam parses the {id} route parameter. A non-numeric ID cannot
// name an existing item and is treated as not found.
func itemIDParam(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

func (h *ItemHandler) respondItemError(w http.ResponseWriter, err error, userID, itemID int64, msg string) {
	if errors.Is(err, services.ErrItemNotFound) {
		respondError(w, http.StatusNotFound, "not found")
		return
	}
	log.Error().Err(err).Int64("user_id", userID).Int64("item_id", itemID).Msg(msg)
	respondError(w, http.StatusInternalServerError, "internal error")
}
