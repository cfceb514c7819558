package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/webstack/services/backend/internal/repo"
)

// itemRequest is the body of POST /items and PUT /items/{id}. Pointer
// fields distinguish absent from empty.
type itemRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

func (s *Server) handleListItems(w http.ResponseWriter, r *http.Request) {
	items, err := s.store.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (s *Server) handleCreateItem(w http.ResponseWriter, r *http.Request) {
	var req itemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Request must contain JSON")
		return
	}
	if req.Name == nil || *req.Name == "" {
		writeError(w, http.StatusBadRequest, "Item name is required")
		return
	}

	description := ""
	if req.Description != nil {
		description = *req.Description
	}

	item, err := s.store.Create(r.Context(), *req.Name, description)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	if s.events != nil {
		if err := s.events.PublishItemCreated(r.Context(), item); err != nil {
			s.log.Warn("Failed to publish item.created", zap.Int64("id", item.ID), zap.Error(err))
		}
	}

	writeJSON(w, http.StatusCreated, item)
}

func (s *Server) handleGetItem(w http.ResponseWriter, r *http.Request) {
	id, ok := itemID(w, r)
	if !ok {
		return
	}

	item, err := s.store.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, repo.ErrItemNotFound) {
			writeError(w, http.StatusNotFound, "Item not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (s *Server) handleUpdateItem(w http.ResponseWriter, r *http.Request) {
	id, ok := itemID(w, r)
	if !ok {
		return
	}

	var req itemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Request must contain JSON")
		return
	}

	upd := repo.ItemUpdate{
		Name:        req.Name,
		Description: req.Description,
	}
	item, err := s.store.Update(r.Context(), id, upd)
	if err != nil {
		switch {
		case errors.Is(err, repo.ErrNoFieldsToUpdate):
			writeError(w, http.StatusBadRequest, "At least one field to update is required")
		case errors.Is(err, repo.ErrItemNotFound):
			writeError(w, http.StatusNotFound, "Item not found")
		default:
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	if s.events != nil {
		if err := s.events.PublishItemUpdated(r.Context(), item, changedFields(upd)); err != nil {
			s.log.Warn("Failed to publish item.updated", zap.Int64("id", item.ID), zap.Error(err))
		}
	}

	writeJSON(w, http.StatusOK, item)
}

func (s *Server) handleDeleteItem(w http.ResponseWriter, r *http.Request) {
	id, ok := itemID(w, r)
	if !ok {
		return
	}

	if err := s.store.Delete(r.Context(), id); err != nil {
		if errors.Is(err, repo.ErrItemNotFound) {
			writeError(w, http.StatusNotFound, "Item not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	if s.events != nil {
		if err := s.events.PublishItemDeleted(r.Context(), id); err != nil {
			s.log.Warn("Failed to publish item.deleted", zap.Int64("id", id), zap.Error(err))
		}
	}

	writeJSON(w, http.StatusOK, messageResponse{Message: "Item deleted successfully"})
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Reset(r.Context()); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "Table reset successfully"})
}

// itemID parses the {id} path segment. Non-integer ids never name a
// resource, so they report not found.
func itemID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusNotFound, "Item not found")
		return 0, false
	}
	return id, true
}

func changedFields(upd repo.ItemUpdate) []string {
	fields := make([]string, 0, 2)
	if upd.Name != nil {
		fields = append(fields, "name")
	}
	if upd.Description != nil {
		fields = append(fields, "description")
	}
	return fields
}
