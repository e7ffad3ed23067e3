package user

import (
	"context"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/gorm"

	"github.com/frahmantamala/project-tracker/internal/audit"
	"github.com/frahmantamala/project-tracker/internal/auth"
	userDatamodel "github.com/frahmantamala/project-tracker/internal/core/datamodel/user"
	"github.com/frahmantamala/project-tracker/pkg/logger"
)

func TestUser(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "User Module Suite")
}

type mockRepo struct {
	byID    map[string]*userDatamodel.User
	byEmail map[string]*userDatamodel.User
}

func newMockRepo() *mockRepo {
	return &mockRepo{
		byID:    make(map[string]*userDatamodel.User),
		byEmail: make(map[string]*userDatamodel.User),
	}
}

func (m *mockRepo) add(u *userDatamodel.User) {
	m.byID[u.ID] = u
	m.byEmail[u.Email] = u
}

func (m *mockRepo) List() ([]*userDatamodel.User, error) {
	out := make([]*userDatamodel.User, 0, len(m.byID))
	for _, u := range m.byID {
		out = append(out, u)
	}
	return out, nil
}

func (m *mockRepo) GetByID(id string) (*userDatamodel.User, error) {
	if u, ok := m.byID[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockRepo) GetByEmail(email string) (*userDatamodel.User, error) {
	if u, ok := m.byEmail[email]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockRepo) Create(u *userDatamodel.User) error {
	m.add(u)
	return nil
}

func (m *mockRepo) Update(u *userDatamodel.User) error {
	m.add(u)
	return nil
}

func (m *mockRepo) Delete(id string) error {
	if u, ok := m.byID[id]; ok {
		delete(m.byEmail, u.Email)
		delete(m.byID, id)
	}
	return nil
}

type mockAdmins struct {
	admins map[string]bool
}

func (m *mockAdmins) IsAdminAnywhere(userID string) (bool, error) {
	return m.admins[userID], nil
}

type capturingRecorder struct {
	entries []audit.Entry
}

func (r *capturingRecorder) Record(_ context.Context, entry audit.Entry) {
	r.entries = append(r.entries, entry)
}

var _ = Describe("User Service", func() {
	var (
		repo     *mockRepo
		admins   *mockAdmins
		recorder *capturingRecorder
		service  *Service
	)

	BeforeEach(func() {
		repo = newMockRepo()
		admins = &mockAdmins{admins: make(map[string]bool)}
		recorder = &capturingRecorder{}
		service = NewService(repo, admins, recorder, logger.LoggerWrapper(), 10)

		repo.add(&userDatamodel.User{ID: "actor", Email: "actor@example.com", DefaultRole: "NoAccess"})
		repo.add(&userDatamodel.User{ID: "target", Email: "target@example.com", DefaultRole: "NoAccess"})
	})

	Describe("Create", func() {
		It("hashes the placeholder password when none is given", func() {
			created, err := service.Create(context.Background(), "actor", CreateUserDTO{Email: "new@example.com"})
			Expect(err).NotTo(HaveOccurred())

			row := repo.byEmail["new@example.com"]
			Expect(row.PasswordHash).NotTo(BeEmpty())
			Expect(auth.VerifyPassword(row.PasswordHash, "password")).To(Succeed())
			Expect(created.DefaultRole).To(Equal("NoAccess"))
		})

		It("rejects a duplicate email", func() {
			_, err := service.Create(context.Background(), "actor", CreateUserDTO{Email: "target@example.com"})
			Expect(err).To(MatchError(ErrEmailInUse))
		})

		It("rejects an unknown default role", func() {
			_, err := service.Create(context.Background(), "actor", CreateUserDTO{
				Email:       "new@example.com",
				DefaultRole: "Superuser",
			})
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("Update", func() {
		It("rejects the actor targeting itself", func() {
			name := "Me"
			_, err := service.Update(context.Background(), "actor", "actor", UpdateUserDTO{Name: &name})
			Expect(err).To(MatchError(ErrSelfModification))
		})

		It("blocks a non-admin touching an admin account", func() {
			admins.admins["target"] = true

			name := "Renamed"
			_, err := service.Update(context.Background(), "actor", "target", UpdateUserDTO{Name: &name})
			Expect(err).To(MatchError(ErrAdminProtected))

			Expect(recorder.entries).To(HaveLen(1))
			Expect(recorder.entries[0].Success).To(BeFalse())
		})

		It("allows an admin touching another admin account", func() {
			admins.admins["target"] = true
			admins.admins["actor"] = true

			name := "Renamed"
			updated, err := service.Update(context.Background(), "actor", "target", UpdateUserDTO{Name: &name})
			Expect(err).NotTo(HaveOccurred())
			Expect(*updated.Name).To(Equal("Renamed"))
		})

		It("rejects changing to a taken email", func() {
			email := "actor@example.com"
			_, err := service.Update(context.Background(), "actor", "target", UpdateUserDTO{Email: &email})
			Expect(err).To(MatchError(ErrEmailInUse))
		})
	})

	Describe("Delete", func() {
		It("rejects self-deletion", func() {
			Expect(service.Delete(context.Background(), "actor", "actor")).To(MatchError(ErrSelfModification))
		})

		It("blocks a non-admin deleting an admin account", func() {
			admins.admins["target"] = true
			Expect(service.Delete(context.Background(), "actor", "target")).To(MatchError(ErrAdminProtected))
			Expect(repo.byID).To(HaveKey("target"))
		})

		It("deletes an unprotected account and records it", func() {
			Expect(service.Delete(context.Background(), "actor", "target")).To(Succeed())
			Expect(repo.byID).NotTo(HaveKey("target"))

			Expect(recorder.entries).To(HaveLen(1))
			Expect(recorder.entries[0].Action).To(Equal(audit.ActionDelete))
			Expect(recorder.entries[0].Success).To(BeTrue())
		})

		It("returns not found for an unknown target", func() {
			Expect(service.Delete(context.Background(), "actor", "ghost")).To(MatchError(ErrUserNotFound))
		})
	})
})
