// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"

	"github.com/eventease/insights/internal/domain/types"
)

// FeedbackDependencies defines the interface for feedback analysis.
type FeedbackDependencies interface {
	Feedback(ctx context.Context, eventID string) (types.FeedbackAnalysis, error)
}

// FeedbackHandler handles feedback analysis requests.
type FeedbackHandler struct {
	deps FeedbackDependencies
}

// NewFeedbackHandler creates a new feedback handler.
func NewFeedbackHandler(deps FeedbackDependencies) *FeedbackHandler {
	return &FeedbackHandler{deps: deps}
}

// HandleGetFeedback handles GET /feedback/{event_id} requests.
func (h *FeedbackHandler) HandleGetFeedback(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_feedback"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	eventID, ok := pathParam(r, "/feedback/")
	if !ok {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}

	analysis, err := h.deps.Feedback(r.Context(), eventID)
	if err != nil {
		if isNotFound(err) {
			writeError(w, http.StatusNotFound, "not_found", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, analysis)
}
