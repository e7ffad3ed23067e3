package task

import "time"

// Task forms a tree via ParentID. Acyclicity is a convention of the write
// paths, not a database constraint.
type Task struct {
	ID          string    `gorm:"primaryKey"`
	ProjectID   string    `gorm:"column:project_id;not null;index"`
	ParentID    *string   `gorm:"column:parent_id;index"`
	Title       string    `gorm:"column:title;not null"`
	Description string    `gorm:"column:description"`
	Status      string    `gorm:"column:status;default:'todo'"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (Task) TableName() string {
	return "tasks"
}
