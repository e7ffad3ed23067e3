package note

import (
	"context"
	"errors"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/gorm"

	"github.com/frahmantamala/project-tracker/internal/audit"
	"github.com/frahmantamala/project-tracker/internal/rbac"
	"github.com/frahmantamala/project-tracker/pkg/logger"
)

func TestNote(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Note Module Suite")
}

type mockRepo struct {
	notes map[string]*Note
}

func (m *mockRepo) List(projectID string) ([]*Note, error) {
	var out []*Note
	for _, n := range m.notes {
		if n.ProjectID == projectID {
			out = append(out, n)
		}
	}
	return out, nil
}

func (m *mockRepo) GetByID(id string) (*Note, error) {
	if n, ok := m.notes[id]; ok {
		return n, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockRepo) Create(n *Note) error {
	m.notes[n.ID] = n
	return nil
}

func (m *mockRepo) Update(n *Note) error {
	m.notes[n.ID] = n
	return nil
}

func (m *mockRepo) Delete(id string) error {
	delete(m.notes, id)
	return nil
}

// mockAssignments and mockProjects back a real authorizer so these tests
// exercise the actual role hierarchy instead of a canned policy.
type mockAssignments struct {
	roles map[string]rbac.Role // key: userID + "/" + projectID
}

func (m *mockAssignments) GetByUserAndProject(userID, projectID string) (*rbac.RoleAssignment, error) {
	role, ok := m.roles[userID+"/"+projectID]
	if !ok {
		return nil, rbac.ErrAssignmentNotFound
	}
	return &rbac.RoleAssignment{UserID: userID, ProjectID: projectID, Role: role}, nil
}

func (m *mockAssignments) HasAdminAnywhere(userID string) (bool, error) {
	for key, role := range m.roles {
		if role == rbac.RoleAdmin && len(key) > len(userID) && key[:len(userID)+1] == userID+"/" {
			return true, nil
		}
	}
	return false, nil
}

type mockProjects struct {
	owners map[string]string
}

func (m *mockProjects) OwnerID(projectID string) (string, error) {
	if owner, ok := m.owners[projectID]; ok {
		return owner, nil
	}
	return "", errors.New("project not found")
}

type capturingRecorder struct {
	entries []audit.Entry
}

func (r *capturingRecorder) Record(_ context.Context, entry audit.Entry) {
	r.entries = append(r.entries, entry)
}

var _ = Describe("Note Service", func() {
	var (
		repo     *mockRepo
		roles    *mockAssignments
		recorder *capturingRecorder
		service  *Service
	)

	BeforeEach(func() {
		repo = &mockRepo{notes: make(map[string]*Note)}
		roles = &mockAssignments{roles: map[string]rbac.Role{
			"admin/proj-1":  rbac.RoleAdmin,
			"editor/proj-1": rbac.RoleEditor,
			"viewer/proj-1": rbac.RoleViewer,
		}}
		projects := &mockProjects{owners: map[string]string{"proj-1": "owner"}}
		recorder = &capturingRecorder{}

		authorizer := rbac.NewAuthorizer(roles, projects, logger.LoggerWrapper())
		service = NewService(repo, authorizer, recorder, logger.LoggerWrapper())
	})

	Describe("Create", func() {
		It("allows an editor", func() {
			n, err := service.Create(context.Background(), "editor", CreateNoteDTO{
				ProjectID: "proj-1",
				Content:   "release checklist",
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(repo.notes).To(HaveKey(n.ID))
		})

		It("denies a viewer", func() {
			_, err := service.Create(context.Background(), "viewer", CreateNoteDTO{
				ProjectID: "proj-1",
				Content:   "release checklist",
			})
			Expect(err).To(MatchError(rbac.ErrInsufficientRole))
			Expect(repo.notes).To(BeEmpty())
		})

		It("denies an outsider with no assignment", func() {
			_, err := service.Create(context.Background(), "stranger", CreateNoteDTO{
				ProjectID: "proj-1",
				Content:   "release checklist",
			})
			Expect(err).To(MatchError(rbac.ErrNoProjectAccess))
		})

		It("rejects empty content before any access check", func() {
			_, err := service.Create(context.Background(), "editor", CreateNoteDTO{ProjectID: "proj-1"})
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("Update", func() {
		It("allows an editor", func() {
			repo.notes["n1"] = &Note{ID: "n1", ProjectID: "proj-1", Content: "old"}

			content := "new"
			updated, err := service.Update(context.Background(), "editor", "n1", UpdateNoteDTO{Content: &content})
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.Content).To(Equal("new"))
		})

		It("returns not found for a missing note", func() {
			content := "new"
			_, err := service.Update(context.Background(), "editor", "missing", UpdateNoteDTO{Content: &content})
			Expect(err).To(MatchError(ErrNoteNotFound))
		})
	})

	Describe("Delete", func() {
		BeforeEach(func() {
			repo.notes["n1"] = &Note{ID: "n1", ProjectID: "proj-1", Content: "keep"}
		})

		It("allows an admin", func() {
			Expect(service.Delete(context.Background(), "admin", "n1")).To(Succeed())
			Expect(repo.notes).To(BeEmpty())
		})

		It("allows the project owner without an assignment", func() {
			Expect(service.Delete(context.Background(), "owner", "n1")).To(Succeed())
		})

		It("denies an editor and records the attempt", func() {
			err := service.Delete(context.Background(), "editor", "n1")
			Expect(err).To(MatchError(rbac.ErrInsufficientRole))
			Expect(repo.notes).To(HaveKey("n1"))

			Expect(recorder.entries).To(HaveLen(1))
			entry := recorder.entries[0]
			Expect(entry.Action).To(Equal(audit.ActionDelete))
			Expect(entry.Success).To(BeFalse())
			Expect(entry.ErrorMessage).NotTo(BeEmpty())
		})
	})
})
