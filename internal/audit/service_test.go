package audit_test

import (
	"context"
	"errors"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/project-tracker/internal/audit"
	auditDatamodel "github.com/frahmantamala/project-tracker/internal/core/datamodel/audit"
	"github.com/frahmantamala/project-tracker/internal/core/events"
	"github.com/frahmantamala/project-tracker/pkg/logger"
)

func TestAudit(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Audit Module Suite")
}

type mockRepo struct {
	rows       []*auditDatamodel.AuditLog
	createErr  error
	lastFilter audit.Filter
}

func (m *mockRepo) Create(row *auditDatamodel.AuditLog) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.rows = append(m.rows, row)
	return nil
}

func (m *mockRepo) List(filter audit.Filter) ([]*auditDatamodel.AuditLog, error) {
	m.lastFilter = filter
	return m.rows, nil
}

func (m *mockRepo) GetByID(id string) (*auditDatamodel.AuditLog, error) {
	for _, row := range m.rows {
		if row.ID == id {
			return row, nil
		}
	}
	return nil, audit.ErrLogNotFound
}

var _ = Describe("Audit Service", func() {
	var (
		repo    *mockRepo
		service *audit.Service
	)

	BeforeEach(func() {
		repo = &mockRepo{}
		service = audit.NewService(repo, logger.LoggerWrapper())
	})

	Describe("HandleAuditEvent", func() {
		It("persists the event as one log row", func() {
			event := events.NewAuditRecordedEvent(
				"user-1", audit.ActionDelete, "note", "n1", "proj-1",
				"removed stale note", false, "insufficient role",
				"203.0.113.7", "curl/8.0",
			)

			Expect(service.HandleAuditEvent(context.Background(), event)).To(Succeed())
			Expect(repo.rows).To(HaveLen(1))

			row := repo.rows[0]
			Expect(row.ID).NotTo(BeEmpty())
			Expect(*row.UserID).To(Equal("user-1"))
			Expect(row.Action).To(Equal(audit.ActionDelete))
			Expect(row.Resource).To(Equal("note"))
			Expect(*row.ProjectID).To(Equal("proj-1"))
			Expect(row.Success).To(BeFalse())
			Expect(*row.ErrorMessage).To(Equal("insufficient role"))
			Expect(*row.IPAddress).To(Equal("203.0.113.7"))
		})

		It("stores empty strings as NULLs", func() {
			event := events.NewAuditRecordedEvent(
				"", audit.ActionCreate, "project", "p1", "",
				"", true, "", "", "",
			)

			Expect(service.HandleAuditEvent(context.Background(), event)).To(Succeed())

			row := repo.rows[0]
			Expect(row.UserID).To(BeNil())
			Expect(row.ProjectID).To(BeNil())
			Expect(row.ErrorMessage).To(BeNil())
		})

		It("swallows a write failure", func() {
			repo.createErr = errors.New("disk full")
			event := events.NewAuditRecordedEvent(
				"user-1", audit.ActionCreate, "note", "n1", "proj-1",
				"", true, "", "", "",
			)

			Expect(service.HandleAuditEvent(context.Background(), event)).To(Succeed())
			Expect(repo.rows).To(BeEmpty())
		})

		It("rejects an unexpected payload type", func() {
			event := events.BaseEvent{Type: events.EventTypeAuditRecorded}
			Expect(service.HandleAuditEvent(context.Background(), event)).To(HaveOccurred())
		})
	})

	Describe("List", func() {
		It("defaults the limit to 100", func() {
			_, err := service.List(audit.Filter{})
			Expect(err).NotTo(HaveOccurred())
			Expect(repo.lastFilter.Limit).To(Equal(100))
		})

		It("clamps an oversized limit to the maximum", func() {
			_, err := service.List(audit.Filter{Limit: 10000})
			Expect(err).NotTo(HaveOccurred())
			Expect(repo.lastFilter.Limit).To(Equal(500))
		})

		It("keeps a sane caller limit and passes filters through", func() {
			_, err := service.List(audit.Filter{ProjectID: "proj-1", Resource: "note", Limit: 25})
			Expect(err).NotTo(HaveOccurred())
			Expect(repo.lastFilter.Limit).To(Equal(25))
			Expect(repo.lastFilter.ProjectID).To(Equal("proj-1"))
			Expect(repo.lastFilter.Resource).To(Equal("note"))
		})
	})
})
