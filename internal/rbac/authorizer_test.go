package rbac

import (
	"errors"
	"log/slog"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

type mockAssignments struct {
	assignments map[string]*RoleAssignment // key: userID + "/" + projectID
	admins      map[string]bool
	err         error
}

func newMockAssignments() *mockAssignments {
	return &mockAssignments{
		assignments: make(map[string]*RoleAssignment),
		admins:      make(map[string]bool),
	}
}

func (m *mockAssignments) set(userID, projectID string, role Role) {
	m.assignments[userID+"/"+projectID] = &RoleAssignment{
		ID:        "assignment-" + userID,
		UserID:    userID,
		ProjectID: projectID,
		Role:      role,
	}
	if role == RoleAdmin {
		m.admins[userID] = true
	}
}

func (m *mockAssignments) GetByUserAndProject(userID, projectID string) (*RoleAssignment, error) {
	if m.err != nil {
		return nil, m.err
	}
	if a, ok := m.assignments[userID+"/"+projectID]; ok {
		return a, nil
	}
	return nil, ErrAssignmentNotFound
}

func (m *mockAssignments) HasAdminAnywhere(userID string) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	return m.admins[userID], nil
}

type mockProjects struct {
	owners map[string]string
	err    error
}

func (m *mockProjects) OwnerID(projectID string) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	if owner, ok := m.owners[projectID]; ok {
		return owner, nil
	}
	return "", errors.New("project not found")
}

var _ = Describe("Authorizer", func() {
	var (
		assignments *mockAssignments
		projects    *mockProjects
		authorizer  *Authorizer
	)

	BeforeEach(func() {
		assignments = newMockAssignments()
		projects = &mockProjects{owners: map[string]string{"proj-1": "owner-1"}}
		authorizer = NewAuthorizer(assignments, projects, slog.Default())
	})

	Describe("Authorize", func() {
		It("rejects an empty principal before touching any store", func() {
			err := authorizer.Authorize("", "proj-1", RoleAdmin)
			Expect(err).To(MatchError(ErrMissingPrincipal))
		})

		It("rejects an empty project id", func() {
			err := authorizer.Authorize("user-1", "", RoleAdmin)
			Expect(err).To(MatchError(ErrMissingProject))
		})

		It("allows the project owner without any assignment", func() {
			err := authorizer.Authorize("owner-1", "proj-1", RoleAdmin)
			Expect(err).NotTo(HaveOccurred())
		})

		It("denies a user with no assignment", func() {
			err := authorizer.Authorize("user-1", "proj-1", RoleViewer)
			Expect(err).To(MatchError(ErrNoProjectAccess))
		})

		It("allows a held role that satisfies an accepted role", func() {
			assignments.set("user-1", "proj-1", RoleEditor)
			err := authorizer.Authorize("user-1", "proj-1", RoleAdmin, RoleEditor)
			Expect(err).NotTo(HaveOccurred())
		})

		It("allows through the hierarchy, not just exact matches", func() {
			assignments.set("user-1", "proj-1", RoleAdmin)
			err := authorizer.Authorize("user-1", "proj-1", RoleViewer)
			Expect(err).NotTo(HaveOccurred())
		})

		It("denies a held role below every accepted role", func() {
			assignments.set("user-1", "proj-1", RoleViewer)
			err := authorizer.Authorize("user-1", "proj-1", RoleAdmin, RoleEditor)
			Expect(err).To(MatchError(ErrInsufficientRole))
		})

		It("denies a NoAccess assignment for every accepted role", func() {
			assignments.set("user-1", "proj-1", RoleNoAccess)
			err := authorizer.Authorize("user-1", "proj-1", RoleViewer)
			Expect(err).To(MatchError(ErrInsufficientRole))
		})

		It("never consults the default role", func() {
			// No assignment at all; even a user whose default role would be
			// Admin is denied because Authorize only reads assignments.
			err := authorizer.Authorize("user-default-admin", "proj-1", RoleAdmin)
			Expect(err).To(MatchError(ErrNoProjectAccess))
		})

		It("propagates store errors unchanged", func() {
			assignments.err = errors.New("connection refused")
			err := authorizer.Authorize("user-1", "proj-1", RoleViewer)
			Expect(err).To(MatchError(assignments.err))
		})
	})

	Describe("CanViewProject", func() {
		It("allows the owner", func() {
			Expect(authorizer.CanViewProject("owner-1", "proj-1")).To(Succeed())
		})

		It("allows any assigned role except NoAccess", func() {
			assignments.set("user-1", "proj-1", RoleViewer)
			Expect(authorizer.CanViewProject("user-1", "proj-1")).To(Succeed())
		})

		It("denies a NoAccess assignment", func() {
			assignments.set("user-1", "proj-1", RoleNoAccess)
			err := authorizer.CanViewProject("user-1", "proj-1")
			Expect(err).To(MatchError(ErrNoProjectAccess))
		})

		It("denies a user with no assignment", func() {
			err := authorizer.CanViewProject("user-1", "proj-1")
			Expect(err).To(MatchError(ErrNoProjectAccess))
		})
	})

	Describe("CanManageRoles", func() {
		It("allows the project owner", func() {
			Expect(authorizer.CanManageRoles("owner-1", "proj-1")).To(Succeed())
		})

		It("allows an admin from another project", func() {
			projects.owners["proj-2"] = "owner-2"
			assignments.set("user-1", "proj-2", RoleAdmin)
			Expect(authorizer.CanManageRoles("user-1", "proj-1")).To(Succeed())
		})

		It("denies everyone else", func() {
			assignments.set("user-1", "proj-1", RoleEditor)
			err := authorizer.CanManageRoles("user-1", "proj-1")
			Expect(err).To(MatchError(ErrInsufficientRole))
		})
	})

	Describe("IsAdminAnywhere", func() {
		It("reports an admin assignment on any project", func() {
			assignments.set("user-1", "proj-1", RoleAdmin)
			isAdmin, err := authorizer.IsAdminAnywhere("user-1")
			Expect(err).NotTo(HaveOccurred())
			Expect(isAdmin).To(BeTrue())
		})

		It("is false for an empty user id", func() {
			isAdmin, err := authorizer.IsAdminAnywhere("")
			Expect(err).NotTo(HaveOccurred())
			Expect(isAdmin).To(BeFalse())
		})
	})
})
