// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/eventease/insights/internal/domain/schedule"
	"github.com/eventease/insights/internal/domain/types"
)

// ScheduleDependencies defines the interface for schedule synthesis.
type ScheduleDependencies interface {
	SchedulePlan(ctx context.Context, eventID string, c schedule.Constraints) (types.SchedulePlan, error)
}

// ScheduleHandler handles schedule synthesis requests.
type ScheduleHandler struct {
	deps ScheduleDependencies
}

// NewScheduleHandler creates a new schedule handler.
func NewScheduleHandler(deps ScheduleDependencies) *ScheduleHandler {
	return &ScheduleHandler{deps: deps}
}

// scheduleRequest mirrors the OpenAPI schema for POST /schedule.
type scheduleRequest struct {
	EventID     string               `json:"event_id"`
	Constraints schedule.Constraints `json:"constraints"`
}

func (s scheduleRequest) validate() error {
	if strings.TrimSpace(s.EventID) == "" {
		return errors.New("missing event_id")
	}
	return nil
}

// HandlePostSchedule handles POST /schedule requests.
func (h *ScheduleHandler) HandlePostSchedule(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_schedule"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req scheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	plan, err := h.deps.SchedulePlan(r.Context(), req.EventID, req.Constraints)
	if err != nil {
		if isNotFound(err) {
			writeError(w, http.StatusNotFound, "not_found", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, plan)
}
