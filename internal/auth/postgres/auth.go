package postgres

import (
	"github.com/frahmantamala/project-tracker/internal/auth"
	userDatamodel "github.com/frahmantamala/project-tracker/internal/core/datamodel/user"
	"gorm.io/gorm"
)

// AuthRepository implements auth.RepositoryAPI using GORM
type AuthRepository struct {
	db *gorm.DB
}

func NewAuthRepository(db *gorm.DB) auth.RepositoryAPI {
	return &AuthRepository{db: db}
}

func (r *AuthRepository) GetByEmail(email string) (*userDatamodel.User, error) {
	var row userDatamodel.User
	if err := r.db.Where("email = ?", email).First(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *AuthRepository) GetByID(id string) (*userDatamodel.User, error) {
	var row userDatamodel.User
	if err := r.db.Where("id = ?", id).First(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *AuthRepository) Create(user *userDatamodel.User) error {
	return r.db.Create(user).Error
}
