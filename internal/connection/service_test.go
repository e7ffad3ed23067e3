package connection

import (
	"context"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/gorm"

	"github.com/frahmantamala/project-tracker/internal/audit"
	"github.com/frahmantamala/project-tracker/internal/rbac"
	"github.com/frahmantamala/project-tracker/pkg/logger"
)

func TestConnection(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Connection Module Suite")
}

type mockRepo struct {
	connections map[string]*Connection
}

func (m *mockRepo) List(projectID string) ([]*Connection, error) {
	var out []*Connection
	for _, c := range m.connections {
		if projectID == "" || (c.ProjectID != nil && *c.ProjectID == projectID) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *mockRepo) GetByID(id string) (*Connection, error) {
	if c, ok := m.connections[id]; ok {
		return c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockRepo) Create(c *Connection) error {
	m.connections[c.ID] = c
	return nil
}

func (m *mockRepo) Update(c *Connection) error {
	m.connections[c.ID] = c
	return nil
}

func (m *mockRepo) Delete(id string) error {
	delete(m.connections, id)
	return nil
}

// denyAllPolicy makes the gate-skip for global connections observable: any
// call that reaches Authorize fails.
type denyAllPolicy struct {
	called bool
}

func (p *denyAllPolicy) Authorize(principalID, projectID string, accepted ...rbac.Role) error {
	p.called = true
	return rbac.ErrInsufficientRole
}

type capturingRecorder struct {
	entries []audit.Entry
}

func (r *capturingRecorder) Record(_ context.Context, entry audit.Entry) {
	r.entries = append(r.entries, entry)
}

var _ = Describe("Connection Service", func() {
	var (
		repo     *mockRepo
		policy   *denyAllPolicy
		recorder *capturingRecorder
		service  *Service
	)

	ptr := func(s string) *string { return &s }

	BeforeEach(func() {
		repo = &mockRepo{connections: make(map[string]*Connection)}
		policy = &denyAllPolicy{}
		recorder = &capturingRecorder{}
		service = NewService(repo, policy, recorder, logger.LoggerWrapper())
	})

	Describe("Create", func() {
		It("skips the project gate for a global connection", func() {
			c, err := service.Create(context.Background(), "user-1", CreateConnectionDTO{
				Name: "Slack",
				Kind: "webhook",
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(policy.called).To(BeFalse())
			Expect(c.ProjectID).To(BeNil())
			Expect(c.Status).To(Equal(StatusInactive))
		})

		It("gates a project-scoped connection", func() {
			_, err := service.Create(context.Background(), "user-1", CreateConnectionDTO{
				ProjectID: ptr("proj-1"),
				Name:      "CI",
				Kind:      "webhook",
			})
			Expect(err).To(MatchError(rbac.ErrInsufficientRole))
			Expect(policy.called).To(BeTrue())
			Expect(repo.connections).To(BeEmpty())
		})

		It("rejects an unknown status", func() {
			_, err := service.Create(context.Background(), "user-1", CreateConnectionDTO{
				Name:   "Slack",
				Kind:   "webhook",
				Status: "paused",
			})
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("Update", func() {
		It("lets any authenticated user touch a global connection", func() {
			repo.connections["c1"] = &Connection{ID: "c1", Name: "Slack", Kind: "webhook", Status: StatusInactive}

			status := StatusActive
			updated, err := service.Update(context.Background(), "user-1", "c1", UpdateConnectionDTO{Status: &status})
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.Status).To(Equal(StatusActive))
			Expect(policy.called).To(BeFalse())
		})

		It("gates a project-scoped connection", func() {
			repo.connections["c1"] = &Connection{ID: "c1", ProjectID: ptr("proj-1"), Name: "CI", Kind: "webhook", Status: StatusActive}

			name := "CI renamed"
			_, err := service.Update(context.Background(), "user-1", "c1", UpdateConnectionDTO{Name: &name})
			Expect(err).To(MatchError(rbac.ErrInsufficientRole))
		})
	})

	Describe("Delete", func() {
		It("records a denied project-scoped delete", func() {
			repo.connections["c1"] = &Connection{ID: "c1", ProjectID: ptr("proj-1"), Name: "CI", Kind: "webhook"}

			err := service.Delete(context.Background(), "user-1", "c1")
			Expect(err).To(MatchError(rbac.ErrInsufficientRole))
			Expect(repo.connections).To(HaveKey("c1"))
			Expect(recorder.entries).To(HaveLen(1))
			Expect(recorder.entries[0].Success).To(BeFalse())
		})

		It("deletes a global connection without a gate", func() {
			repo.connections["c1"] = &Connection{ID: "c1", Name: "Slack", Kind: "webhook"}

			Expect(service.Delete(context.Background(), "user-1", "c1")).To(Succeed())
			Expect(repo.connections).To(BeEmpty())
			Expect(policy.called).To(BeFalse())
		})
	})
})
