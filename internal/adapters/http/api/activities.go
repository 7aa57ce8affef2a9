package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/okian/mergington/internal/adapters/repository"
	"github.com/okian/mergington/pkg/logger"
)

// ActivitiesHandler serves the activity list and roster changes.
type ActivitiesHandler struct {
	deps   Dependencies
	logger logger.Logger
}

// NewActivitiesHandler creates a new activities handler.
func NewActivitiesHandler(deps Dependencies, l logger.Logger) *ActivitiesHandler {
	if l == nil {
		l = logger.Nop()
	}
	return &ActivitiesHandler{deps: deps, logger: l}
}

// HandleList handles GET /activities.
func (h *ActivitiesHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}
	activities, err := h.deps.Activities(r.Context())
	if err != nil {
		h.internalError(w, r, "api.list_activities", err)
		return
	}
	writeJSON(w, http.StatusOK, activities)
}

// HandleMembership handles POST /activities/{activity_name}/signup and
// POST /activities/{activity_name}/remove, both taking ?email=.
func (h *ActivitiesHandler) HandleMembership(w http.ResponseWriter, r *http.Request) {
	req, err := parseMembershipRoute(r)
	switch {
	case errors.Is(err, ErrRouteNotFound):
		writeError(w, http.StatusNotFound, "Not Found")
		return
	case err != nil:
		writeError(w, http.StatusBadRequest, "Invalid activity name")
		return
	}
	if r.Method != http.MethodPost {
		methodNotAllowed(w, http.MethodPost)
		return
	}

	req.bindQuery(r)
	if err := req.validate(); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	if req.Action == actionSignup {
		h.signup(w, r, req)
		return
	}
	h.remove(w, r, req)
}

func (h *ActivitiesHandler) signup(w http.ResponseWriter, r *http.Request, req membershipRequest) {
	err := h.deps.Signup(r.Context(), req.Activity, req.Email)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, messageResponse{
			Message: fmt.Sprintf("Signed up %s for %s", req.Email, req.Activity),
		})
	case errors.Is(err, repository.ErrNotFound):
		writeError(w, http.StatusNotFound, "Activity not found")
	case errors.Is(err, repository.ErrAlreadyRegistered):
		writeError(w, http.StatusBadRequest, fmt.Sprintf("%s is already signed up", req.Email))
	default:
		h.internalError(w, r, "api.signup", err)
	}
}

func (h *ActivitiesHandler) remove(w http.ResponseWriter, r *http.Request, req membershipRequest) {
	err := h.deps.Remove(r.Context(), req.Activity, req.Email)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, messageResponse{
			Message: fmt.Sprintf("Removed %s from %s", req.Email, req.Activity),
		})
	case errors.Is(err, repository.ErrNotFound):
		writeError(w, http.StatusNotFound, "Activity not found")
	case errors.Is(err, repository.ErrNotRegistered):
		writeError(w, http.StatusBadRequest, fmt.Sprintf("%s is not signed up for this activity", req.Email))
	default:
		h.internalError(w, r, "api.remove", err)
	}
}

func (h *ActivitiesHandler) internalError(w http.ResponseWriter, r *http.Request, op string, err error) {
	h.logger.Error(r.Context(), "request failed",
		logger.String("op", op),
		logger.String("path", r.URL.Path),
		logger.String("request_id", RequestIDFromContext(r.Context())),
		logger.Error(err),
	)
	writeError(w, http.StatusInternalServerError, "Internal Server Error")
}
