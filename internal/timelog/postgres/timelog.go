package postgres

import (
	timelogDatamodel "github.com/frahmantamala/project-tracker/internal/core/datamodel/timelog"
	"github.com/frahmantamala/project-tracker/internal/timelog"
	"gorm.io/gorm"
)

// TimeLogRepository implements timelog.RepositoryAPI using GORM
type TimeLogRepository struct {
	db *gorm.DB
}

func NewTimeLogRepository(db *gorm.DB) *TimeLogRepository {
	return &TimeLogRepository{db: db}
}

func (r *TimeLogRepository) List(filter timelog.ListFilter) ([]*timelog.TimeLog, error) {
	query := r.db.Model(&timelogDatamodel.TimeLog{})
	if filter.ProjectID != "" {
		query = query.Where("project_id = ?", filter.ProjectID)
	}
	if filter.UserID != "" {
		query = query.Where("user_id = ?", filter.UserID)
	}
	if filter.TaskID != "" {
		query = query.Where("task_id = ?", filter.TaskID)
	}

	var rows []timelogDatamodel.TimeLog
	if err := query.Order("logged_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}

	logs := make([]*timelog.TimeLog, 0, len(rows))
	for i := range rows {
		logs = append(logs, timelog.FromDataModel(&rows[i]))
	}
	return logs, nil
}

func (r *TimeLogRepository) GetByID(id string) (*timelog.TimeLog, error) {
	var row timelogDatamodel.TimeLog
	if err := r.db.Where("id = ?", id).First(&row).Error; err != nil {
		return nil, err
	}
	return timelog.FromDataModel(&row), nil
}

func (r *TimeLogRepository) Create(t *timelog.TimeLog) error {
	return r.db.Create(timelog.ToDataModel(t)).Error
}

func (r *TimeLogRepository) Update(t *timelog.TimeLog) error {
	return r.db.Save(timelog.ToDataModel(t)).Error
}

func (r *TimeLogRepository) Delete(id string) error {
	return r.db.Where("id = ?", id).Delete(&timelogDatamodel.TimeLog{}).Error
}
