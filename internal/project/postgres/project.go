package postgres

import (
	"errors"

	projectDatamodel "github.com/frahmantamala/project-tracker/internal/core/datamodel/project"
	rbacDatamodel "github.com/frahmantamala/project-tracker/internal/core/datamodel/rbac"
	"github.com/frahmantamala/project-tracker/internal/project"
	"gorm.io/gorm"
)

// ProjectRepository implements project.RepositoryAPI and the ownership lookup
// the authorizer needs.
type ProjectRepository struct {
	db *gorm.DB
}

func NewProjectRepository(db *gorm.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

func (r *ProjectRepository) GetByID(id string) (*project.Project, error) {
	var row projectDatamodel.Project
	if err := r.db.Where("id = ?", id).First(&row).Error; err != nil {
		return nil, err
	}
	return project.FromDataModel(&row), nil
}

func (r *ProjectRepository) ListOwned(ownerID string) ([]*project.Project, error) {
	var rows []projectDatamodel.Project
	if err := r.db.Where("owner_id = ?", ownerID).Order("created_at ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return fromRows(rows), nil
}

// ListAssigned returns projects where the user holds a role assignment other
// than NoAccess.
func (r *ProjectRepository) ListAssigned(userID string) ([]*project.Project, error) {
	var rows []projectDatamodel.Project
	err := r.db.
		Joins("JOIN role_assignments ON role_assignments.project_id = projects.id").
		Where("role_assignments.user_id = ? AND role_assignments.role <> ?", userID, "NoAccess").
		Order("projects.created_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return fromRows(rows), nil
}

func (r *ProjectRepository) Create(p *project.Project) error {
	return r.db.Create(project.ToDataModel(p)).Error
}

func (r *ProjectRepository) Update(p *project.Project) error {
	return r.db.Save(project.ToDataModel(p)).Error
}

// Delete removes the project and its role assignments in one transaction.
// Resource rows keep their project_id and become unreachable through the API.
func (r *ProjectRepository) Delete(id string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("project_id = ?", id).Delete(&rbacDatamodel.RoleAssignment{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&projectDatamodel.Project{}).Error
	})
}

func (r *ProjectRepository) OwnerID(projectID string) (string, error) {
	var row projectDatamodel.Project
	err := r.db.Select("owner_id").Where("id = ?", projectID).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", project.ErrProjectNotFound
		}
		return "", err
	}
	return row.OwnerID, nil
}

func fromRows(rows []projectDatamodel.Project) []*project.Project {
	projects := make([]*project.Project, 0, len(rows))
	for i := range rows {
		projects = append(projects, project.FromDataModel(&rows[i]))
	}
	return projects
}
