package postgres

import (
	"errors"

	rbacDatamodel "github.com/frahmantamala/project-tracker/internal/core/datamodel/rbac"
	"github.com/frahmantamala/project-tracker/internal/rbac"
	"gorm.io/gorm"
)

// RBACRepository implements rbac.RepositoryAPI using GORM
type RBACRepository struct {
	db *gorm.DB
}

func NewRBACRepository(db *gorm.DB) *RBACRepository {
	return &RBACRepository{db: db}
}

func (r *RBACRepository) List(userID, projectID string) ([]*rbac.RoleAssignment, error) {
	query := r.db.Model(&rbacDatamodel.RoleAssignment{})
	if userID != "" {
		query = query.Where("user_id = ?", userID)
	}
	if projectID != "" {
		query = query.Where("project_id = ?", projectID)
	}

	var rows []rbacDatamodel.RoleAssignment
	if err := query.Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}

	assignments := make([]*rbac.RoleAssignment, 0, len(rows))
	for i := range rows {
		assignments = append(assignments, rbac.FromDataModel(&rows[i]))
	}
	return assignments, nil
}

func (r *RBACRepository) GetByID(id string) (*rbac.RoleAssignment, error) {
	var row rbacDatamodel.RoleAssignment
	if err := r.db.Where("id = ?", id).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, rbac.ErrAssignmentNotFound
		}
		return nil, err
	}
	return rbac.FromDataModel(&row), nil
}

func (r *RBACRepository) GetByUserAndProject(userID, projectID string) (*rbac.RoleAssignment, error) {
	var row rbacDatamodel.RoleAssignment
	err := r.db.Where("user_id = ? AND project_id = ?", userID, projectID).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, rbac.ErrAssignmentNotFound
		}
		return nil, err
	}
	return rbac.FromDataModel(&row), nil
}

func (r *RBACRepository) Create(assignment *rbac.RoleAssignment) error {
	err := r.db.Create(rbac.ToDataModel(assignment)).Error
	if err != nil && errors.Is(err, gorm.ErrDuplicatedKey) {
		return rbac.ErrDuplicateAssignment
	}
	return err
}

func (r *RBACRepository) UpdateRole(id string, role rbac.Role) error {
	result := r.db.Model(&rbacDatamodel.RoleAssignment{}).
		Where("id = ?", id).
		Update("role", string(role))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return rbac.ErrAssignmentNotFound
	}
	return nil
}

func (r *RBACRepository) Delete(id string) error {
	result := r.db.Where("id = ?", id).Delete(&rbacDatamodel.RoleAssignment{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return rbac.ErrAssignmentNotFound
	}
	return nil
}

func (r *RBACRepository) HasAdminAnywhere(userID string) (bool, error) {
	var count int64
	err := r.db.Model(&rbacDatamodel.RoleAssignment{}).
		Where("user_id = ? AND role = ?", userID, "Admin").
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
