// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/eventease/insights/internal/domain/model"
)

// PreferencesDependencies defines the interface for preference updates.
type PreferencesDependencies interface {
	SetPreferences(ctx context.Context, prefs model.Preferences) error
}

// PreferencesHandler handles preference update requests.
type PreferencesHandler struct {
	deps PreferencesDependencies
}

// NewPreferencesHandler creates a new preferences handler.
func NewPreferencesHandler(deps PreferencesDependencies) *PreferencesHandler {
	return &PreferencesHandler{deps: deps}
}

// preferencesRequest mirrors the OpenAPI schema for PUT /preferences/{user_id}.
type preferencesRequest struct {
	Categories []string `json:"categories"`
	Tags       []string `json:"tags"`
}

// HandlePutPreferences handles PUT /preferences/{user_id} requests.
// Preference writes are synchronous so the next recommendation request
// already reflects them.
func (h *PreferencesHandler) HandlePutPreferences(w http.ResponseWriter, r *http.Request) {
	const op = "api.put_preferences"
	if r.Method != http.MethodPut {
		http.NotFound(w, r)
		return
	}
	userID, ok := pathParam(r, "/preferences/")
	if !ok {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}
	var req preferencesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	prefs := model.Preferences{
		UserID:     userID,
		Categories: req.Categories,
		Tags:       req.Tags,
	}
	if err := h.deps.SetPreferences(r.Context(), prefs); err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, ackResponse{Status: "stored", ID: userID})
}
