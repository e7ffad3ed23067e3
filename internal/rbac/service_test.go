package rbac

import (
	"context"
	"log/slog"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/project-tracker/internal/audit"
)

type mockRepo struct {
	*mockAssignments
	byID    map[string]*RoleAssignment
	created []*RoleAssignment
}

func newMockRepo() *mockRepo {
	return &mockRepo{
		mockAssignments: newMockAssignments(),
		byID:            make(map[string]*RoleAssignment),
	}
}

func (m *mockRepo) List(userID, projectID string) ([]*RoleAssignment, error) {
	var out []*RoleAssignment
	for _, a := range m.assignments {
		if userID != "" && a.UserID != userID {
			continue
		}
		if projectID != "" && a.ProjectID != projectID {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

func (m *mockRepo) GetByID(id string) (*RoleAssignment, error) {
	if a, ok := m.byID[id]; ok {
		return a, nil
	}
	return nil, ErrAssignmentNotFound
}

func (m *mockRepo) Create(a *RoleAssignment) error {
	m.assignments[a.UserID+"/"+a.ProjectID] = a
	m.byID[a.ID] = a
	m.created = append(m.created, a)
	return nil
}

func (m *mockRepo) UpdateRole(id string, role Role) error {
	a, ok := m.byID[id]
	if !ok {
		return ErrAssignmentNotFound
	}
	a.Role = role
	return nil
}

func (m *mockRepo) Delete(id string) error {
	a, ok := m.byID[id]
	if !ok {
		return ErrAssignmentNotFound
	}
	delete(m.byID, id)
	delete(m.assignments, a.UserID+"/"+a.ProjectID)
	return nil
}

type mockDefaultRoles struct {
	roles map[string]string
}

func (m *mockDefaultRoles) DefaultRole(userID string) (string, error) {
	if role, ok := m.roles[userID]; ok {
		return role, nil
	}
	return "NoAccess", nil
}

type capturingRecorder struct {
	entries []audit.Entry
}

func (r *capturingRecorder) Record(_ context.Context, entry audit.Entry) {
	r.entries = append(r.entries, entry)
}

var _ = Describe("RBAC Service", func() {
	var (
		repo     *mockRepo
		projects *mockProjects
		users    *mockDefaultRoles
		recorder *capturingRecorder
		service  *Service
	)

	BeforeEach(func() {
		repo = newMockRepo()
		projects = &mockProjects{owners: map[string]string{"proj-1": "owner-1"}}
		users = &mockDefaultRoles{roles: map[string]string{"user-2": "Editor"}}
		recorder = &capturingRecorder{}
		authorizer := NewAuthorizer(repo, projects, slog.Default())
		service = NewService(repo, authorizer, users, recorder, slog.Default())
	})

	Describe("Assign", func() {
		It("creates an assignment when the actor owns the project", func() {
			assignment, err := service.Assign(context.Background(), "owner-1", AssignRoleDTO{
				UserID:    "user-1",
				ProjectID: "proj-1",
				Role:      "Editor",
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(assignment.ID).NotTo(BeEmpty())
			Expect(assignment.Role).To(Equal(RoleEditor))

			Expect(recorder.entries).To(HaveLen(1))
			Expect(recorder.entries[0].Action).To(Equal(audit.ActionAssign))
			Expect(recorder.entries[0].Success).To(BeTrue())
		})

		It("rejects a duplicate user and project pair with a conflict", func() {
			_, err := service.Assign(context.Background(), "owner-1", AssignRoleDTO{
				UserID: "user-1", ProjectID: "proj-1", Role: "Viewer",
			})
			Expect(err).NotTo(HaveOccurred())

			_, err = service.Assign(context.Background(), "owner-1", AssignRoleDTO{
				UserID: "user-1", ProjectID: "proj-1", Role: "Editor",
			})
			Expect(err).To(MatchError(ErrDuplicateAssignment))
		})

		It("rejects an actor who neither owns the project nor is an admin", func() {
			_, err := service.Assign(context.Background(), "user-9", AssignRoleDTO{
				UserID: "user-1", ProjectID: "proj-1", Role: "Viewer",
			})
			Expect(err).To(MatchError(ErrInsufficientRole))
			Expect(repo.created).To(BeEmpty())
		})

		It("rejects an invalid role before any store access", func() {
			_, err := service.Assign(context.Background(), "owner-1", AssignRoleDTO{
				UserID: "user-1", ProjectID: "proj-1", Role: "Superuser",
			})
			Expect(err).To(MatchError(ErrInvalidRole))
		})

		It("rejects missing fields", func() {
			_, err := service.Assign(context.Background(), "owner-1", AssignRoleDTO{Role: "Viewer"})
			Expect(err).To(MatchError(ErrMissingAssignmentFields))
		})
	})

	Describe("UpdateRole", func() {
		It("changes the role and records the transition", func() {
			created, err := service.Assign(context.Background(), "owner-1", AssignRoleDTO{
				UserID: "user-1", ProjectID: "proj-1", Role: "Viewer",
			})
			Expect(err).NotTo(HaveOccurred())

			updated, err := service.UpdateRole(context.Background(), "owner-1", created.ID, UpdateRoleDTO{Role: "Admin"})
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.Role).To(Equal(RoleAdmin))

			last := recorder.entries[len(recorder.entries)-1]
			Expect(last.Action).To(Equal(audit.ActionUpdate))
			Expect(last.Details).To(ContainSubstring("Viewer"))
			Expect(last.Details).To(ContainSubstring("Admin"))
		})

		It("returns not found for an unknown assignment", func() {
			_, err := service.UpdateRole(context.Background(), "owner-1", "missing", UpdateRoleDTO{Role: "Admin"})
			Expect(err).To(MatchError(ErrAssignmentNotFound))
		})
	})

	Describe("Remove", func() {
		It("deletes the assignment", func() {
			created, err := service.Assign(context.Background(), "owner-1", AssignRoleDTO{
				UserID: "user-1", ProjectID: "proj-1", Role: "Viewer",
			})
			Expect(err).NotTo(HaveOccurred())

			Expect(service.Remove(context.Background(), "owner-1", created.ID)).To(Succeed())
			_, err = repo.GetByID(created.ID)
			Expect(err).To(MatchError(ErrAssignmentNotFound))
		})
	})

	Describe("EffectiveRole", func() {
		It("prefers the explicit assignment", func() {
			_, err := service.Assign(context.Background(), "owner-1", AssignRoleDTO{
				UserID: "user-2", ProjectID: "proj-1", Role: "Viewer",
			})
			Expect(err).NotTo(HaveOccurred())

			resp, err := service.EffectiveRole("user-2", "proj-1")
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.Role).To(Equal(RoleViewer))
			Expect(resp.Source).To(Equal(EffectiveRoleSourceAssignment))
		})

		It("falls back to the default role when no assignment exists", func() {
			resp, err := service.EffectiveRole("user-2", "proj-1")
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.Role).To(Equal(RoleEditor))
			Expect(resp.Source).To(Equal(EffectiveRoleSourceDefault))
		})

		It("treats an unknown stored default as NoAccess", func() {
			users.roles["user-3"] = "garbage"
			resp, err := service.EffectiveRole("user-3", "proj-1")
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.Role).To(Equal(RoleNoAccess))
		})

		It("requires both identifiers", func() {
			_, err := service.EffectiveRole("", "proj-1")
			Expect(err).To(MatchError(ErrMissingPrincipal))

			_, err = service.EffectiveRole("user-2", "")
			Expect(err).To(MatchError(ErrMissingProject))
		})
	})
})
