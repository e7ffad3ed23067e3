package audit

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"

	"github.com/frahmantamala/project-tracker/internal/transport"
	"github.com/frahmantamala/project-tracker/pkg/logger"
)

type ServiceAPI interface {
	List(filter Filter) ([]*Log, error)
	GetByID(id string) (*Log, error)
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
	q := r.URL.Query()

	limit := 0
	if raw := q.Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			h.WriteError(w, http.StatusBadRequest, "limit must be an integer")
			return
		}
		limit = parsed
	}

	logs, err := h.Service.List(Filter{
		ProjectID: q.Get("projectId"),
		UserID:    q.Get("userId"),
		Resource:  q.Get("resource"),
		Limit:     limit,
	})
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, logs)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	log, err := h.Service.GetByID(chi.URLParam(r, "id"))
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, log)
}
