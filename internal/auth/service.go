package auth

import (
	"errors"
	"log/slog"
	"time"

	userDatamodel "github.com/frahmantamala/project-tracker/internal/core/datamodel/user"
	"github.com/frahmantamala/project-tracker/internal/rbac"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Service is the main auth service with dependencies
type Service struct {
	userRepo       RepositoryAPI
	tokenGenerator TokenGeneratorAPI
	bcryptCost     int
	logger         *slog.Logger
}

// NewService creates a new auth service
func NewService(userRepo RepositoryAPI, tokenGen TokenGeneratorAPI, bcryptCost int, logger *slog.Logger) *Service {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &Service{
		userRepo:       userRepo,
		tokenGenerator: tokenGen,
		bcryptCost:     bcryptCost,
		logger:         logger,
	}
}

// Signup creates a regular account with the NoAccess default role.
func (s *Service) Signup(dto SignupDTO) (*User, error) {
	return s.createUser(dto, string(rbac.RoleNoAccess))
}

// CreateAdmin creates an account whose display-layer default role is Admin.
// The default role never feeds the mutation gate; real access still comes
// from ownership or role assignments.
func (s *Service) CreateAdmin(dto SignupDTO) (*User, error) {
	return s.createUser(dto, string(rbac.RoleAdmin))
}

func (s *Service) createUser(dto SignupDTO, defaultRole string) (*User, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.userRepo.GetByEmail(dto.Email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := HashPassword(dto.Password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	row := &userDatamodel.User{
		ID:           uuid.NewString(),
		Email:        dto.Email,
		Name:         dto.Name,
		PasswordHash: hash,
		DefaultRole:  defaultRole,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.userRepo.Create(row); err != nil {
		s.logger.Error("failed to create user", "error", err, "email", dto.Email)
		return nil, err
	}

	s.logger.Info("user created", "user_id", row.ID, "email", row.Email, "default_role", defaultRole)
	return FromDataModel(row), nil
}

// Authenticate validates credentials and returns tokens plus the user.
func (s *Service) Authenticate(dto LoginDTO) (AuthTokens, *User, error) {
	if err := dto.Validate(); err != nil {
		return AuthTokens{}, nil, err
	}

	row, err := s.userRepo.GetByEmail(dto.Email)
	if err != nil {
		return AuthTokens{}, nil, ErrInvalidCredentials
	}

	if err := VerifyPassword(row.PasswordHash, dto.Password); err != nil {
		return AuthTokens{}, nil, ErrInvalidCredentials
	}

	accessToken, err := s.tokenGenerator.GenerateAccessToken(row.ID, row.Email)
	if err != nil {
		return AuthTokens{}, nil, err
	}

	refreshToken, err := s.tokenGenerator.GenerateRefreshToken(row.ID, row.Email)
	if err != nil {
		return AuthTokens{}, nil, err
	}

	return AuthTokens{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, FromDataModel(row), nil
}

// RefreshTokens validates refresh token and returns new tokens
func (s *Service) RefreshTokens(refreshToken string) (AuthTokens, error) {
	claims, err := s.tokenGenerator.ValidateToken(refreshToken)
	if err != nil {
		return AuthTokens{}, err
	}

	accessToken, err := s.tokenGenerator.GenerateAccessToken(claims.UserID, claims.Email)
	if err != nil {
		return AuthTokens{}, err
	}

	newRefreshToken, err := s.tokenGenerator.GenerateRefreshToken(claims.UserID, claims.Email)
	if err != nil {
		return AuthTokens{}, err
	}

	return AuthTokens{
		AccessToken:  accessToken,
		RefreshToken: newRefreshToken,
	}, nil
}

// ValidateAccessToken validates access token and returns claims
func (s *Service) ValidateAccessToken(tokenString string) (*Claims, error) {
	return s.tokenGenerator.ValidateToken(tokenString)
}

// GetUserByID resolves the principal for middleware and /auth/me.
func (s *Service) GetUserByID(userID string) (*User, error) {
	row, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	return FromDataModel(row), nil
}
