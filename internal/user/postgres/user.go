package postgres

import (
	userDatamodel "github.com/frahmantamala/project-tracker/internal/core/datamodel/user"
	"gorm.io/gorm"
)

// UserRepository implements user.RepositoryAPI using GORM
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) List() ([]*userDatamodel.User, error) {
	var rows []*userDatamodel.User
	if err := r.db.Order("created_at ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *UserRepository) GetByID(id string) (*userDatamodel.User, error) {
	var row userDatamodel.User
	if err := r.db.Where("id = ?", id).First(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *UserRepository) GetByEmail(email string) (*userDatamodel.User, error) {
	var row userDatamodel.User
	if err := r.db.Where("email = ?", email).First(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *UserRepository) Create(user *userDatamodel.User) error {
	return r.db.Create(user).Error
}

func (r *UserRepository) Update(user *userDatamodel.User) error {
	return r.db.Save(user).Error
}

func (r *UserRepository) Delete(id string) error {
	return r.db.Where("id = ?", id).Delete(&userDatamodel.User{}).Error
}
