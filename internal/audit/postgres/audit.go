package postgres

import (
	"errors"

	"github.com/frahmantamala/project-tracker/internal/audit"
	auditDatamodel "github.com/frahmantamala/project-tracker/internal/core/datamodel/audit"
	"gorm.io/gorm"
)

// AuditRepository implements audit.RepositoryAPI using GORM
type AuditRepository struct {
	db *gorm.DB
}

func NewAuditRepository(db *gorm.DB) *AuditRepository {
	return &AuditRepository{db: db}
}

func (r *AuditRepository) Create(log *auditDatamodel.AuditLog) error {
	return r.db.Create(log).Error
}

func (r *AuditRepository) List(filter audit.Filter) ([]*auditDatamodel.AuditLog, error) {
	query := r.db.Model(&auditDatamodel.AuditLog{})
	if filter.ProjectID != "" {
		query = query.Where("project_id = ?", filter.ProjectID)
	}
	if filter.UserID != "" {
		query = query.Where("user_id = ?", filter.UserID)
	}
	if filter.Resource != "" {
		query = query.Where("resource = ?", filter.Resource)
	}

	var rows []*auditDatamodel.AuditLog
	if err := query.Order("created_at DESC").Limit(filter.Limit).Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *AuditRepository) GetByID(id string) (*auditDatamodel.AuditLog, error) {
	var row auditDatamodel.AuditLog
	if err := r.db.Where("id = ?", id).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, audit.ErrLogNotFound
		}
		return nil, err
	}
	return &row, nil
}
