package task

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

func TestTask(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Task Module Suite")
}

type mockRepo struct {
	tasks map[string]*Task
}

func (m *mockRepo) List(projectID string) ([]*Task, error) {
	var out []*Task
	for _, t := range m.tasks {
		if t.ProjectID == projectID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (m *mockRepo) GetByID(id string) (*Task, error) {
	if t, ok := m.tasks[id]; ok {
		return t, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockRepo) ListChildren(parentID string) ([]*Task, error) {
	var out []*Task
	for _, t := range m.tasks {
		if t.ParentID != nil && *t.ParentID == parentID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (m *mockRepo) Create(t *Task) error {
	m.tasks[t.ID] = t
	return nil
}

func (m *mockRepo) Update(t *Task) error {
	m.tasks[t.ID] = t
	return nil
}

func (m *mockRepo) Delete(id string) error {
	for _, t := range m.tasks {
		if t.ParentID != nil && *t.ParentID == id {
			t.ParentID = nil
		}
	}
	delete(m.tasks, id)
	return nil
}

type allowAllPolicy struct {
	denyWith error
}

func (p *allowAllPolicy) Authorize(principalID, projectID string, accepted ...rbac.Role) error {
	return p.denyWith
}

type capturingRecorder struct {
	entries []audit.Entry
}

func (r *capturingRecorder) Record(_ context.Context, entry audit.Entry) {
	r.entries = append(r.entries, entry)
}

var _ = Describe("Task Service", func() {
	var (
		repo     *mockRepo
		policy   *allowAllPolicy
		recorder *capturingRecorder
		service  *Service
	)

	ptr := func(s string) *string { return &s }

	BeforeEach(func() {
		repo = &mockRepo{tasks: make(map[string]*Task)}
		policy = &allowAllPolicy{}
		recorder = &capturingRecorder{}
		service = NewService(repo, policy, recorder, logger.LoggerWrapper())
	})

	Describe("Create", func() {
		It("defaults the status to todo", func() {
			t, err := service.Create(context.Background(), "user-1", CreateTaskDTO{
				ProjectID: "proj-1",
				Title:     "Write release notes",
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(t.Status).To(Equal(StatusTodo))
		})

		It("rejects an unknown status", func() {
			_, err := service.Create(context.Background(), "user-1", CreateTaskDTO{
				ProjectID: "proj-1",
				Title:     "Write release notes",
				Status:    "blocked",
			})
			Expect(err).To(MatchError(ErrInvalidTaskStatus))
		})

		It("rejects a parent from another project", func() {
			repo.tasks["other"] = &Task{ID: "other", ProjectID: "proj-2", Title: "Elsewhere"}

			_, err := service.Create(context.Background(), "user-1", CreateTaskDTO{
				ProjectID: "proj-1",
				Title:     "Subtask",
				ParentID:  ptr("other"),
			})
			Expect(err).To(MatchError(ErrParentWrongScope))
		})

		It("rejects a missing parent", func() {
			_, err := service.Create(context.Background(), "user-1", CreateTaskDTO{
				ProjectID: "proj-1",
				Title:     "Subtask",
				ParentID:  ptr("ghost"),
			})
			Expect(err).To(MatchError(ErrParentNotFound))
		})
	})

	Describe("Update", func() {
		BeforeEach(func() {
			repo.tasks["t1"] = &Task{ID: "t1", ProjectID: "proj-1", Title: "Parent"}
			repo.tasks["t2"] = &Task{ID: "t2", ProjectID: "proj-1", Title: "Child"}
		})

		It("rejects a task as its own parent", func() {
			_, err := service.Update(context.Background(), "user-1", "t1", UpdateTaskDTO{ParentID: ptr("t1")})
			Expect(err).To(MatchError(ErrSelfParent))
		})

		It("reparents under another task in the same project", func() {
			updated, err := service.Update(context.Background(), "user-1", "t2", UpdateTaskDTO{ParentID: ptr("t1")})
			Expect(err).NotTo(HaveOccurred())
			Expect(*updated.ParentID).To(Equal("t1"))
		})

		It("detaches with an empty parent id", func() {
			repo.tasks["t2"].ParentID = ptr("t1")

			updated, err := service.Update(context.Background(), "user-1", "t2", UpdateTaskDTO{ParentID: ptr("")})
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.ParentID).To(BeNil())
		})
	})

	Describe("GetByID", func() {
		It("expands direct children only", func() {
			repo.tasks["root"] = &Task{ID: "root", ProjectID: "proj-1", Title: "Root"}
			repo.tasks["child"] = &Task{ID: "child", ProjectID: "proj-1", Title: "Child", ParentID: ptr("root")}
			repo.tasks["grandchild"] = &Task{ID: "grandchild", ProjectID: "proj-1", Title: "Grandchild", ParentID: ptr("child")}

			t, err := service.GetByID("root")
			Expect(err).NotTo(HaveOccurred())
			Expect(t.Children).To(HaveLen(1))
			Expect(t.Children[0].ID).To(Equal("child"))
		})
	})

	Describe("Delete", func() {
		It("detaches children instead of deleting them", func() {
			repo.tasks["t1"] = &Task{ID: "t1", ProjectID: "proj-1", Title: "Parent"}
			repo.tasks["t2"] = &Task{ID: "t2", ProjectID: "proj-1", Title: "Child", ParentID: ptr("t1")}

			Expect(service.Delete(context.Background(), "user-1", "t1")).To(Succeed())
			Expect(repo.tasks).NotTo(HaveKey("t1"))
			Expect(repo.tasks["t2"].ParentID).To(BeNil())
		})

		It("records a denied delete", func() {
			repo.tasks["t1"] = &Task{ID: "t1", ProjectID: "proj-1", Title: "Keep"}
			policy.denyWith = rbac.ErrInsufficientRole

			err := service.Delete(context.Background(), "user-1", "t1")
			Expect(err).To(MatchError(rbac.ErrInsufficientRole))
			Expect(repo.tasks).To(HaveKey("t1"))

			Expect(recorder.entries).To(HaveLen(1))
			Expect(recorder.entries[0].Success).To(BeFalse())
		})
	})
})
