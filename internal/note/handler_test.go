package note

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/project-tracker/internal"
	"github.com/frahmantamala/project-tracker/internal/rbac"
)

type stubService struct {
	note *Note
	err  error
}

func (s *stubService) List(projectID string) ([]*Note, error) {
	if s.err != nil {
		return nil, s.err
	}
	return []*Note{s.note}, nil
}

func (s *stubService) GetByID(id string) (*Note, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.note, nil
}

func (s *stubService) Create(ctx context.Context, principalID string, dto CreateNoteDTO) (*Note, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.note, nil
}

func (s *stubService) Update(ctx context.Context, principalID, id string, dto UpdateNoteDTO) (*Note, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.note, nil
}

func (s *stubService) Delete(ctx context.Context, principalID, id string) error {
	return s.err
}

var _ = Describe("Note Handler", func() {
	var (
		stub   *stubService
		router *chi.Mux
	)

	authed := func(r *http.Request) *http.Request {
		return r.WithContext(internal.ContextWithUserID(r.Context(), "user-1"))
	}

	BeforeEach(func() {
		stub = &stubService{note: &Note{ID: "n1", ProjectID: "proj-1", Content: "hello"}}
		h := NewHandler(stub)

		router = chi.NewRouter()
		router.Get("/notes", h.List)
		router.Post("/notes", h.Create)
		router.Get("/notes/{id}", h.Get)
		router.Put("/notes/{id}", h.Update)
		router.Delete("/notes/{id}", h.Delete)
	})

	It("creates a note and returns 201", func() {
		req := authed(httptest.NewRequest(http.MethodPost, "/notes", strings.NewReader(`{"projectId":"proj-1","content":"hello"}`)))
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, req)

		Expect(rec.Code).To(Equal(http.StatusCreated))
		Expect(rec.Body.String()).To(ContainSubstring(`"id":"n1"`))
	})

	It("rejects an unauthenticated create", func() {
		req := httptest.NewRequest(http.MethodPost, "/notes", strings.NewReader(`{}`))
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, req)

		Expect(rec.Code).To(Equal(http.StatusUnauthorized))
	})

	It("rejects a malformed body", func() {
		req := authed(httptest.NewRequest(http.MethodPost, "/notes", strings.NewReader(`{not json`)))
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, req)

		Expect(rec.Code).To(Equal(http.StatusBadRequest))
	})

	It("maps an authorization denial to 403", func() {
		stub.err = rbac.ErrInsufficientRole
		req := authed(httptest.NewRequest(http.MethodDelete, "/notes/n1", nil))
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, req)

		Expect(rec.Code).To(Equal(http.StatusForbidden))
	})

	It("maps a missing note to 404", func() {
		stub.err = ErrNoteNotFound
		req := httptest.NewRequest(http.MethodGet, "/notes/ghost", nil)
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, req)

		Expect(rec.Code).To(Equal(http.StatusNotFound))
	})

	It("returns 204 on delete", func() {
		req := authed(httptest.NewRequest(http.MethodDelete, "/notes/n1", nil))
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, req)

		Expect(rec.Code).To(Equal(http.StatusNoContent))
	})
})
