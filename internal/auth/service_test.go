package auth

import (
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	userDatamodel "github.com/frahmantamala/project-tracker/internal/core/datamodel/user"
	"github.com/frahmantamala/project-tracker/pkg/logger"
)

func TestAuth(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Auth Module Suite")
}

type mockUserRepo struct {
	byID    map[string]*userDatamodel.User
	byEmail map[string]*userDatamodel.User
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{
		byID:    make(map[string]*userDatamodel.User),
		byEmail: make(map[string]*userDatamodel.User),
	}
}

func (m *mockUserRepo) GetByEmail(email string) (*userDatamodel.User, error) {
	if u, ok := m.byEmail[email]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByID(id string) (*userDatamodel.User, error) {
	if u, ok := m.byID[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) Create(u *userDatamodel.User) error {
	m.byID[u.ID] = u
	m.byEmail[u.Email] = u
	return nil
}

var _ = Describe("Auth Service", func() {
	var (
		repo     *mockUserRepo
		tokenGen *JWTTokenGenerator
		service  *Service
	)

	BeforeEach(func() {
		repo = newMockUserRepo()
		tokenGen = NewJWTTokenGenerator(
			"test-access-secret-at-least-32-chars!",
			"test-refresh-secret-at-least-32-char",
			15*time.Minute,
			7*24*time.Hour,
		)
		service = NewService(repo, tokenGen, bcrypt.MinCost, logger.LoggerWrapper())
	})

	Describe("Signup", func() {
		It("creates an account with the NoAccess default role", func() {
			u, err := service.Signup(SignupDTO{Email: "new@example.com", Password: "secret"})
			Expect(err).NotTo(HaveOccurred())
			Expect(u.DefaultRole).To(Equal("NoAccess"))

			stored := repo.byEmail["new@example.com"]
			Expect(stored.PasswordHash).NotTo(Equal("secret"))
			Expect(VerifyPassword(stored.PasswordHash, "secret")).To(Succeed())
		})

		It("rejects a taken email", func() {
			_, err := service.Signup(SignupDTO{Email: "new@example.com", Password: "secret"})
			Expect(err).NotTo(HaveOccurred())

			_, err = service.Signup(SignupDTO{Email: "new@example.com", Password: "other"})
			Expect(err).To(MatchError(ErrEmailTaken))
		})

		It("requires email and password", func() {
			_, err := service.Signup(SignupDTO{Email: "new@example.com"})
			Expect(err).To(HaveOccurred())

			_, err = service.Signup(SignupDTO{Password: "secret"})
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("CreateAdmin", func() {
		It("creates an account with the Admin default role", func() {
			u, err := service.CreateAdmin(SignupDTO{Email: "boss@example.com", Password: "secret"})
			Expect(err).NotTo(HaveOccurred())
			Expect(u.DefaultRole).To(Equal("Admin"))
		})
	})

	Describe("Authenticate", func() {
		BeforeEach(func() {
			_, err := service.Signup(SignupDTO{Email: "user@example.com", Password: "secret"})
			Expect(err).NotTo(HaveOccurred())
		})

		It("returns tokens for valid credentials", func() {
			tokens, u, err := service.Authenticate(LoginDTO{Email: "user@example.com", Password: "secret"})
			Expect(err).NotTo(HaveOccurred())
			Expect(tokens.AccessToken).NotTo(BeEmpty())
			Expect(tokens.RefreshToken).NotTo(BeEmpty())
			Expect(u.Email).To(Equal("user@example.com"))
		})

		It("rejects a wrong password", func() {
			_, _, err := service.Authenticate(LoginDTO{Email: "user@example.com", Password: "nope"})
			Expect(err).To(MatchError(ErrInvalidCredentials))
		})

		It("rejects an unknown email with the same error", func() {
			_, _, err := service.Authenticate(LoginDTO{Email: "ghost@example.com", Password: "secret"})
			Expect(err).To(MatchError(ErrInvalidCredentials))
		})
	})

	Describe("Tokens", func() {
		It("validates an access token and returns its claims", func() {
			token, err := tokenGen.GenerateAccessToken("user-1", "user@example.com")
			Expect(err).NotTo(HaveOccurred())

			claims, err := service.ValidateAccessToken(token)
			Expect(err).NotTo(HaveOccurred())
			Expect(claims.UserID).To(Equal("user-1"))
			Expect(claims.Email).To(Equal("user@example.com"))
		})

		It("rejects garbage tokens", func() {
			_, err := service.ValidateAccessToken("not-a-token")
			Expect(err).To(MatchError(ErrInvalidToken))
		})

		It("rejects an expired token", func() {
			token, err := tokenGen.signToken("user-1", "user@example.com", -time.Minute, tokenGen.AccessTokenSecret)
			Expect(err).NotTo(HaveOccurred())

			_, err = service.ValidateAccessToken(token)
			Expect(err).To(MatchError(ErrTokenExpired))
		})

		It("issues a fresh pair from a refresh token", func() {
			refresh, err := tokenGen.GenerateRefreshToken("user-1", "user@example.com")
			Expect(err).NotTo(HaveOccurred())

			tokens, err := service.RefreshTokens(refresh)
			Expect(err).NotTo(HaveOccurred())
			Expect(tokens.AccessToken).NotTo(BeEmpty())
			Expect(tokens.RefreshToken).NotTo(BeEmpty())

			claims, err := tokenGen.ValidateToken(tokens.AccessToken)
			Expect(err).NotTo(HaveOccurred())
			Expect(claims.UserID).To(Equal("user-1"))
		})

		It("rejects refresh with an invalid token", func() {
			_, err := service.RefreshTokens("bogus")
			Expect(err).To(MatchError(ErrInvalidToken))
		})
	})
})
