package postgres

import (
	taskDatamodel "github.com/frahmantamala/project-tracker/internal/core/datamodel/task"
	"github.com/frahmantamala/project-tracker/internal/task"
	"gorm.io/gorm"
)

// TaskRepository implements task.RepositoryAPI using GORM
type TaskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

func (r *TaskRepository) List(projectID string) ([]*task.Task, error) {
	query := r.db.Model(&taskDatamodel.Task{})
	if projectID != "" {
		query = query.Where("project_id = ?", projectID)
	}

	var rows []taskDatamodel.Task
	if err := query.Order("created_at ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return fromRows(rows), nil
}

func (r *TaskRepository) GetByID(id string) (*task.Task, error) {
	var row taskDatamodel.Task
	if err := r.db.Where("id = ?", id).First(&row).Error; err != nil {
		return nil, err
	}
	return task.FromDataModel(&row), nil
}

func (r *TaskRepository) ListChildren(parentID string) ([]*task.Task, error) {
	var rows []taskDatamodel.Task
	if err := r.db.Where("parent_id = ?", parentID).Order("created_at ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return fromRows(rows), nil
}

func (r *TaskRepository) Create(t *task.Task) error {
	return r.db.Create(task.ToDataModel(t)).Error
}

func (r *TaskRepository) Update(t *task.Task) error {
	return r.db.Save(task.ToDataModel(t)).Error
}

// Delete detaches direct children before removing the task so the subtree
// survives as top-level tasks.
func (r *TaskRepository) Delete(id string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&taskDatamodel.Task{}).
			Where("parent_id = ?", id).
			Update("parent_id", nil).Error
		if err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&taskDatamodel.Task{}).Error
	})
}

func fromRows(rows []taskDatamodel.Task) []*task.Task {
	tasks := make([]*task.Task, 0, len(rows))
	for i := range rows {
		tasks = append(tasks, task.FromDataModel(&rows[i]))
	}
	return tasks
}
