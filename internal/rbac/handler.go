package rbac

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"

	"github.com/frahmantamala/project-tracker/internal"
	"github.com/frahmantamala/project-tracker/internal/transport"
	"github.com/frahmantamala/project-tracker/pkg/logger"
)

type ServiceAPI interface {
	List(userID, projectID string) ([]*RoleAssignment, error)
	Assign(ctx context.Context, actorID string, dto AssignRoleDTO) (*RoleAssignment, error)
	UpdateRole(ctx context.Context, actorID, id string, dto UpdateRoleDTO) (*RoleAssignment, error)
	Remove(ctx context.Context, actorID, id string) error
	EffectiveRole(userID, projectID string) (*EffectiveRoleResponse, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(svc ServiceAPI) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     svc,
	}
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	assignments, err := h.Service.List(r.URL.Query().Get("userId"), r.URL.Query().Get("projectId"))
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, assignments)
}

func (h *Handler) Assign(w http.ResponseWriter, r *http.Request) {
	actorID, ok := internal.UserIDFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto AssignRoleDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	assignment, err := h.Service.Assign(r.Context(), actorID, dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusCreated, assignment)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	actorID, ok := internal.UserIDFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto UpdateRoleDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	assignment, err := h.Service.UpdateRole(r.Context(), actorID, chi.URLParam(r, "id"), dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, assignment)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	actorID, ok := internal.UserIDFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	if err := h.Service.Remove(r.Context(), actorID, chi.URLParam(r, "id")); err != nil {
		h.HandleServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// EffectiveRole reports the display role of a user on a project. The caller
// asks about itself unless a userId query parameter is given.
func (h *Handler) EffectiveRole(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		id, ok := internal.UserIDFromContext(r.Context())
		if !ok {
			h.WriteError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		userID = id
	}

	resp, err := h.Service.EffectiveRole(userID, r.URL.Query().Get("projectId"))
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, resp)
}
